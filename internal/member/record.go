// Package member holds the record view/selection state machine: the record
// store, the search filter, the pagination window, the selection tracker and
// the inline edit session. Every type here is synchronous and owns its data;
// nothing hands out references into another component's storage.
package member

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrRowLocked is returned when deleting the record currently being edited.
	ErrRowLocked = errors.New("member: record is being edited")
	// ErrUnknownField is returned for an editable field name that does not exist.
	ErrUnknownField = errors.New("member: unknown field")
)

// ID identifies a record. Numeric ids from the remote payload are kept as
// their decimal text.
type ID string

// Record represents one member row.
type Record struct {
	ID    ID
	Name  string
	Email string
	Role  string
}

// Draft is the detached copy of a record's editable fields.
type Draft struct {
	Name  string
	Email string
	Role  string
}

// Field names an editable record field.
type Field string

const (
	FieldName  Field = "name"
	FieldEmail Field = "email"
	FieldRole  Field = "role"
)

// Fields lists the editable fields in display order.
var Fields = []Field{FieldName, FieldEmail, FieldRole}

// ParseField resolves a field name case-insensitively.
func ParseField(s string) (Field, error) {
	switch f := Field(strings.ToLower(strings.TrimSpace(s))); f {
	case FieldName, FieldEmail, FieldRole:
		return f, nil
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownField, s)
}

// Draft returns the record's editable fields.
func (r Record) Draft() Draft {
	return Draft{Name: r.Name, Email: r.Email, Role: r.Role}
}

// Apply returns r with the draft fields merged in. The id never changes.
func (r Record) Apply(d Draft) Record {
	r.Name, r.Email, r.Role = d.Name, d.Email, d.Role
	return r
}

// Get returns the draft value for f.
func (d Draft) Get(f Field) string {
	switch f {
	case FieldName:
		return d.Name
	case FieldEmail:
		return d.Email
	case FieldRole:
		return d.Role
	}
	return ""
}

// With returns a copy of d with f set to v. Unknown fields leave d unchanged.
func (d Draft) With(f Field, v string) Draft {
	switch f {
	case FieldName:
		d.Name = v
	case FieldEmail:
		d.Email = v
	case FieldRole:
		d.Role = v
	}
	return d
}
