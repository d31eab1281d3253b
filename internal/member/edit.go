package member

// RecordGetter is the read side of the store used to seed a draft.
type RecordGetter interface {
	Get(id ID) (Record, bool)
}

// RecordUpdater is the write side of the store used on commit.
type RecordUpdater interface {
	UpdateOne(id ID, d Draft) bool
}

// EditSession tracks the single record in inline-edit mode. The zero value
// is Idle.
type EditSession struct {
	target  ID
	editing bool
	draft   Draft
}

// Begin moves to Editing on id, discarding any previous draft. It is a no-op
// returning false when id is not in src.
func (e *EditSession) Begin(id ID, src RecordGetter) bool {
	r, ok := src.Get(id)
	if !ok {
		return false
	}
	e.target = id
	e.editing = true
	e.draft = r.Draft()
	return true
}

// SetField changes one draft field. No-op while Idle.
func (e *EditSession) SetField(f Field, v string) bool {
	if !e.editing {
		return false
	}
	e.draft = e.draft.With(f, v)
	return true
}

// Commit writes the draft through dst and returns to Idle. The result
// reports whether a record was actually updated; a target deleted mid-edit
// still clears the session.
func (e *EditSession) Commit(dst RecordUpdater) bool {
	if !e.editing {
		return false
	}
	updated := dst.UpdateOne(e.target, e.draft)
	e.Cancel()
	return updated
}

// Cancel discards the draft.
func (e *EditSession) Cancel() {
	*e = EditSession{}
}

func (e *EditSession) Target() (ID, bool) {
	return e.target, e.editing
}

// Editing reports whether id is the current edit target.
func (e *EditSession) Editing(id ID) bool {
	return e.editing && e.target == id
}

func (e *EditSession) Active() bool { return e.editing }

// Draft returns a copy of the current draft.
func (e *EditSession) Draft() Draft { return e.draft }
