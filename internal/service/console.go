package service

import (
	"log/slog"

	"github.com/jask/memberadmin/internal/member"
)

// Console owns the record store, the selection, the edit session and the
// view parameters. Every user intent is a method; each one runs to
// completion and leaves the page inside [1, pageCount] for the current
// filtered length.
type Console struct {
	store    *member.Store
	sel      *member.Selection
	edit     member.EditSession
	query    string
	page     int
	pageSize int
	log      *slog.Logger
}

// DeleteResult reports what DeleteSelected did.
type DeleteResult struct {
	Removed []member.ID
	// Locked is set when the edit target was selected and therefore kept.
	Locked bool
}

func NewConsole(pageSize int, logger *slog.Logger) *Console {
	if pageSize <= 0 {
		pageSize = member.DefaultPageSize
	}
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &Console{
		store:    member.NewStore(),
		sel:      member.NewSelection(),
		page:     1,
		pageSize: pageSize,
		log:      logger,
	}
}

// Load replaces the whole collection. Selected ids that no longer exist are
// dropped and an edit on a vanished record is cancelled.
func (c *Console) Load(records []member.Record) {
	c.store.ReplaceAll(records)
	c.sel.Retain(c.store.Has)
	if id, ok := c.edit.Target(); ok && !c.store.Has(id) {
		c.edit.Cancel()
	}
	c.clamp()
	c.log.Info("records loaded", "count", c.store.Len())
}

// Search sets the query and returns to page 1.
func (c *Console) Search(text string) {
	c.query = text
	c.page = 1
	c.clamp()
	c.log.Debug("search", "query", text, "page", c.page)
}

func (c *Console) GotoPage(n int) { c.move(c.window().Goto(n)) }

func (c *Console) FirstPage() { c.move(c.window().First()) }

func (c *Console) PrevPage() { c.move(c.window().Prev()) }

func (c *Console) NextPage() { c.move(c.window().Next()) }

func (c *Console) LastPage() { c.move(c.window().Last()) }

func (c *Console) ToggleSelect(id member.ID) {
	if !c.store.Has(id) {
		return
	}
	c.sel.Toggle(id)
}

// ToggleSelectAllVisible selects every row on the current page, or clears
// the whole selection when this page is already fully selected.
func (c *Console) ToggleSelectAllVisible() {
	visible := c.visibleIDs()
	if c.sel.IsAllVisibleSelected(visible) {
		c.sel.ClearAll()
		c.log.Debug("selection cleared")
		return
	}
	c.sel.SelectAllVisible(visible)
	c.log.Debug("page selected", "page", c.page, "selected", c.sel.Len())
}

// DeleteOne removes a single record. The edit target cannot be deleted;
// an unknown id is a no-op.
func (c *Console) DeleteOne(id member.ID) error {
	if c.edit.Editing(id) {
		return member.ErrRowLocked
	}
	removed := c.store.RemoveWhere(func(rid member.ID) bool { return rid == id })
	c.sel.Purge(removed)
	c.clamp()
	if len(removed) > 0 {
		c.log.Info("record deleted", "id", id)
	}
	return nil
}

// DeleteSelected removes every selected record except the edit target,
// empties the selection and re-clamps the page in one step.
func (c *Console) DeleteSelected() DeleteResult {
	var res DeleteResult
	res.Removed = c.store.RemoveWhere(func(id member.ID) bool {
		if !c.sel.Has(id) {
			return false
		}
		if c.edit.Editing(id) {
			res.Locked = true
			return false
		}
		return true
	})
	c.sel.ClearAll()
	c.clamp()
	c.log.Info("selected records deleted", "removed", len(res.Removed), "locked", res.Locked)
	return res
}

// BeginEdit opens id for inline editing, discarding any other draft.
func (c *Console) BeginEdit(id member.ID) bool {
	ok := c.edit.Begin(id, c.store)
	c.log.Debug("begin edit", "id", id, "ok", ok)
	return ok
}

// EditField sets one draft field. It is a no-op while no edit is open.
func (c *Console) EditField(name, value string) error {
	f, err := member.ParseField(name)
	if err != nil {
		return err
	}
	c.edit.SetField(f, value)
	return nil
}

// SaveEdit commits the draft and closes the session. It reports whether a
// record was updated.
func (c *Console) SaveEdit() bool {
	id, _ := c.edit.Target()
	ok := c.edit.Commit(c.store)
	c.clamp()
	c.log.Info("edit saved", "id", id, "updated", ok)
	return ok
}

func (c *Console) CancelEdit() {
	c.edit.Cancel()
}

// Query returns the current search text.
func (c *Console) Query() string { return c.query }

// Page returns the current 1-based page.
func (c *Console) Page() int { return c.page }

// Selected returns the selected ids sorted.
func (c *Console) Selected() []member.ID { return c.sel.IDs() }

// Records returns a copy of the full unfiltered collection.
func (c *Console) Records() []member.Record { return c.store.All() }

// EditTarget returns the record under edit, if any.
func (c *Console) EditTarget() (member.ID, bool) { return c.edit.Target() }

func (c *Console) filtered() []member.Record {
	return member.Filter(c.store.All(), c.query)
}

func (c *Console) window() member.Window {
	return member.Window{Page: c.page, Size: c.pageSize, Total: len(c.filtered())}.Clamp()
}

func (c *Console) visibleIDs() []member.ID {
	win := member.Paginate(c.filtered(), c.window().Page, c.pageSize)
	ids := make([]member.ID, len(win))
	for i, r := range win {
		ids[i] = r.ID
	}
	return ids
}

func (c *Console) move(w member.Window) {
	c.page = w.Page
	c.log.Debug("page", "page", c.page, "count", w.Count())
}

func (c *Console) clamp() {
	c.page = c.window().Page
}
