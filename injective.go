package injective

// This package fills the properties of objects it constructs.
// It does NOT call constructors with arguments:
// a registered type is built with its zero value or a factory,
// then every property found in the supplied Properties is assigned by name.

import (
	"reflect"
)

type Mode int

const (
	// For `Factory` type new instance is returned on every call.
	Factory Mode = iota
	// For `Singleton` type same instance is returned after first successful construction.
	Singleton
)

func (m Mode) String() string {
	switch m {
	case Factory:
		return "Factory"
	case Singleton:
		return "Singleton"
	default:
		return "Unknown"
	}
}

// Properties maps property names to the values assigned on instantiation.
type Properties map[string]any

// FactoryFunc overrides zero value construction of a registered type.
// Returned instance still receives properties and AwakeFromInjection call.
type FactoryFunc func(props Properties) (any, error)

// RequiredPropertiesDeclarer is implemented by types that cannot be instantiated
// without some properties.
// It is queried once on registration on a zero value of the type,
// so implementation should not depend on instance state.
type RequiredPropertiesDeclarer interface {
	RequiredProperties() []string
}

// Awaker is implemented by types that need to run logic once all properties are set.
type Awaker interface {
	AwakeFromInjection()
}

// PropertySetter is implemented by types exposing properties that are not struct fields.
// It is consulted only for names that do not match a field.
// Returning false means property is not exposed.
type PropertySetter interface {
	SetInjectedProperty(name string, value any) (bool, error)
}

// PropertySource provides properties for objects constructed by a host
// outside of Instantiate.
type PropertySource interface {
	Properties(t reflect.Type) (Properties, error)
}

// PropertySourceFunc is an adapter to use ordinary function as PropertySource.
type PropertySourceFunc func(t reflect.Type) (Properties, error)

func (fn PropertySourceFunc) Properties(t reflect.Type) (Properties, error) {
	return fn(t)
}

// HostHook is called by host synchronously, once per object it has constructed.
type HostHook func(obj any) error

// TypeOf returns reflect.Type used to register and resolve T.
// Works for interface types as well.
func TypeOf[T any]() reflect.Type {
	return reflect.TypeOf((*T)(nil)).Elem()
}
