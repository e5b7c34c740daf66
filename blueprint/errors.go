package blueprint

import (
	"errors"
	"fmt"
)

var (
	ErrBadKind             = errors.New("kind must be a named pointer to struct")
	ErrUnknownKind         = errors.New("unknown kind")
	ErrMissingName         = errors.New("object has no name")
	ErrDuplicateName       = errors.New("name is already used")
	ErrUnknownField        = errors.New("kind has no such field")
	ErrUnresolvedReference = errors.New("reference to undeclared object")
	ErrReferenceType       = errors.New("referenced object cannot be assigned to field")
)

func newObjectError(cause error, name, kind string) error {
	return &ObjectError{cause: cause, Object: name, Kind: kind}
}

type ObjectError struct {
	cause  error
	Object string
	Kind   string
}

func (err *ObjectError) Error() string {
	return fmt.Sprintf("blueprint object %q of kind %q: %s", err.Object, err.Kind, err.cause)
}

func (err *ObjectError) Unwrap() error {
	return err.cause
}
