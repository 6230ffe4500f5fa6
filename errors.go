package kontrol

import (
	"errors"
	"fmt"
)

var (
	ErrMissingField     = errors.New("missing field")
	ErrUnknownType      = errors.New("unknown parameter type")
	ErrNoTypeTag        = errors.New("missing parameter type tag")
	ErrInvalidParameter = errors.New("invalid parameter")
	ErrDuplicateID      = errors.New("duplicate parameter id")
	ErrNotFound         = errors.New("parameter not found")
)

// MissingFieldError is returned when a required positional field of a flat
// value list is absent or holds the wrong variant.
type MissingFieldError struct {
	ID    string // id of the parameter, "" if the id itself was missing
	Field string // "id", "displayName", "min", "max" or "def"
}

func (e *MissingFieldError) Error() string {
	id := e.ID
	if id == "" {
		id = "null"
	}
	return fmt.Sprintf("%s: missing %s", id, e.Field)
}

func (e *MissingFieldError) Unwrap() error { return ErrMissingField }

// UnknownTypeError is returned when the type tag matches no kind.
type UnknownTypeError struct {
	Tag string
}

func (e *UnknownTypeError) Error() string {
	return fmt.Sprintf("parameter type not found: %q", e.Tag)
}

func (e *UnknownTypeError) Unwrap() error { return ErrUnknownType }
