// Package routing defines the mail routing settings objects and projects
// them into the ordered parameter sets passed to remote admin commands.
package routing

import "errors"

// ErrEmptyName is returned by the constructors when no identity is given.
var ErrEmptyName = errors.New("settings name must not be empty")

// Settings is implemented by every settings variant.
type Settings interface {
	Kind() Kind
	Name() string
	Skipped() bool
	Params(op Operation) *Params
}

// Project converts s into the parameter set for op. It does not modify s
// and returns a fresh Params on every call.
func Project(s Settings, op Operation) *Params {
	return s.Params(op)
}

// Bool returns a pointer to v, for populating optional fields.
func Bool(v bool) *bool { return &v }

// Int returns a pointer to v, for populating optional fields.
func Int(v int) *int { return &v }

func newParams(name string, op Operation) *Params {
	p := NewParams()
	p.Set(op.IdentityKey(), name)
	return p
}
