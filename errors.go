package injective

import (
	"errors"
	"fmt"
	"reflect"
	"strings"
)

var (
	ErrNilType                 = errors.New("type is nil")
	ErrNilFactory              = errors.New("factory function is nil")
	ErrNilInstance             = errors.New("singleton instance is nil")
	ErrInterfaceWithoutFactory = errors.New("interface type can only be registered with a factory or an instance")
	ErrNotACapability          = errors.New("capability must be an interface type")
	ErrOddKeyValues            = errors.New("odd number of key/value arguments")
	ErrUnaddressable           = errors.New("object must be a pointer to receive properties")
)

func typeName(t reflect.Type) string {
	if t == nil {
		return "<nil>"
	}

	return t.String()
}

type ModeUnsupportedError string

func (mode ModeUnsupportedError) Error() string {
	return fmt.Sprintf("%s Mode is unsupported", string(mode))
}

func newBadRegistrationError(cause error, t reflect.Type) error {
	return &BadRegistrationError{
		cause:    cause,
		TypeName: typeName(t),
	}
}

type BadRegistrationError struct {
	cause    error
	TypeName string
}

func (err *BadRegistrationError) Error() string {
	return fmt.Sprintf("bad registration of %s: %s", err.TypeName, err.cause)
}

func (err *BadRegistrationError) Unwrap() error {
	return err.cause
}

func newUnregisteredTypeError(t reflect.Type) error {
	return &UnregisteredTypeError{
		TypeName: typeName(t),
	}
}

type UnregisteredTypeError struct {
	TypeName string
}

func (err *UnregisteredTypeError) Error() string {
	return fmt.Sprintf("%s is not registered", err.TypeName)
}

func newMissingRequiredPropertyError(property string, t reflect.Type) error {
	return &MissingRequiredPropertyError{
		Property: property,
		TypeName: typeName(t),
	}
}

type MissingRequiredPropertyError struct {
	Property string
	TypeName string
}

func (err *MissingRequiredPropertyError) Error() string {
	return fmt.Sprintf("%s requires property %q", err.TypeName, err.Property)
}

func newUnknownPropertyError(property string, t reflect.Type) error {
	return &UnknownPropertyError{
		Property: property,
		TypeName: typeName(t),
	}
}

type UnknownPropertyError struct {
	Property string
	TypeName string
}

func (err *UnknownPropertyError) Error() string {
	return fmt.Sprintf("%s does not expose property %q", err.TypeName, err.Property)
}

func newPropertyTypeError(property string, expected reflect.Type, value any) error {
	return &PropertyTypeError{
		Property: property,
		Expected: expected,
		Got:      reflect.TypeOf(value),
	}
}

type PropertyTypeError struct {
	Expected reflect.Type
	Got      reflect.Type
	Property string
}

func (err *PropertyTypeError) Error() string {
	return fmt.Sprintf("property %q expects %s, got %s", err.Property, err.Expected, typeName(err.Got))
}

func newNoImplementerError(capability reflect.Type) error {
	return &NoImplementerError{
		Capability: typeName(capability),
	}
}

type NoImplementerError struct {
	Capability string
}

func (err *NoImplementerError) Error() string {
	return fmt.Sprintf("no registered type implements %s", err.Capability)
}

func newAmbiguousCapabilityError(capability reflect.Type, candidates []reflect.Type) error {
	names := make([]string, len(candidates))
	for i, candidate := range candidates {
		names[i] = typeName(candidate)
	}

	return &AmbiguousCapabilityError{
		Capability: typeName(capability),
		Candidates: names,
	}
}

type AmbiguousCapabilityError struct {
	Capability string
	Candidates []string
}

func (err *AmbiguousCapabilityError) Error() string {
	return fmt.Sprintf(
		"%s is implemented by %d registered types: %s",
		err.Capability,
		len(err.Candidates),
		strings.Join(err.Candidates, ", "),
	)
}

func newFactoryError(cause error, mode Mode, t reflect.Type) error {
	return &FactoryError{
		cause:    cause,
		Mode:     mode,
		TypeName: typeName(t),
	}
}

type FactoryError struct {
	cause    error
	TypeName string
	Mode     Mode
}

func (err *FactoryError) Error() string {
	return fmt.Sprintf("factory of %s %s failed: %s", err.Mode, err.TypeName, err.cause)
}

func (err *FactoryError) Unwrap() error {
	return err.cause
}

func newUnexpectedResultError(result any, expected reflect.Type) error {
	return &UnexpectedResultError{
		Result:   result,
		Expected: expected,
	}
}

type UnexpectedResultError struct {
	Result   any
	Expected reflect.Type
}

func (err *UnexpectedResultError) Error() string {
	return fmt.Sprintf("unexpected result %#v, expected %s", err.Result, typeName(err.Expected))
}

type BadPropertyKeyError struct {
	Key   any
	Index int
}

func (err *BadPropertyKeyError) Error() string {
	return fmt.Sprintf("key at position %d must be a string, got %T", err.Index, err.Key)
}
