package injective

import (
	"errors"
	"fmt"
	"log/slog"
	"maps"
	"reflect"
	"slices"
)

var (
	propertySetterInterface = reflect.TypeOf((*PropertySetter)(nil)).Elem()

	ErrDuplicateProperty = errors.New("property is exposed by more than one field")
)

// PropertyDescriptor describes single property of a registrable type.
type PropertyDescriptor struct {
	// Type is nil for properties exposed only through PropertySetter.
	Type     reflect.Type
	Name     string
	Required bool
}

// Props builds Properties from alternating key/value arguments:
//
//	injective.Props("Name", "Bob", "Age", 42)
func Props(keyValues ...any) (Properties, error) {
	if len(keyValues)%2 != 0 {
		return nil, ErrOddKeyValues
	}

	props := make(Properties, len(keyValues)/2)
	for i := 0; i < len(keyValues); i += 2 {
		key, ok := keyValues[i].(string)
		if !ok {
			return nil, &BadPropertyKeyError{Key: keyValues[i], Index: i}
		}

		props[key] = keyValues[i+1]
	}

	return props, nil
}

// Describe returns properties exposed by t sorted by name.
// Fields are exposed by their name or by the name in `inject:"name"` tag,
// `inject:"-"` hides a field.
func Describe(t reflect.Type) ([]PropertyDescriptor, error) {
	if t == nil {
		return nil, ErrNilType
	}

	table, err := newPropertyTable(t)
	if err != nil {
		return nil, err
	}

	names := slices.Collect(maps.Keys(table.types))
	for _, name := range table.required {
		if _, ok := table.types[name]; !ok {
			names = append(names, name)
		}
	}

	slices.Sort(names)

	descriptors := make([]PropertyDescriptor, len(names))
	for i, name := range names {
		descriptors[i] = PropertyDescriptor{
			Name:     name,
			Type:     table.types[name],
			Required: slices.Contains(table.required, name),
		}
	}

	return descriptors, nil
}

type fieldSetter func(target reflect.Value, name string, value any) error

type propertyTable struct {
	t        reflect.Type
	setters  map[string]fieldSetter
	types    map[string]reflect.Type
	required []string
	dynamic  bool
}

func newPropertyTable(t reflect.Type) (*propertyTable, error) {
	table := &propertyTable{
		t:       t,
		setters: make(map[string]fieldSetter),
		types:   make(map[string]reflect.Type),
	}

	if t.Kind() == reflect.Interface {
		return table, nil
	}

	base := t
	if base.Kind() == reflect.Pointer {
		base = base.Elem()
	}

	table.dynamic = reflect.PointerTo(base).Implements(propertySetterInterface)

	if base.Kind() == reflect.Struct {
		for i := 0; i < base.NumField(); i++ {
			field := base.Field(i)
			if !field.IsExported() {
				continue
			}

			name := field.Name
			if tag, ok := field.Tag.Lookup("inject"); ok {
				if tag == "-" {
					continue
				}

				if tag != "" {
					name = tag
				}
			}

			if _, ok := table.setters[name]; ok {
				return nil, fmt.Errorf("%w: %s", ErrDuplicateProperty, name)
			}

			table.setters[name] = newFieldSetter(field)
			table.types[name] = field.Type
		}
	}

	table.required = declaredRequiredProperties(base)
	for _, name := range table.required {
		if _, ok := table.setters[name]; !ok && !table.dynamic {
			return nil, newUnknownPropertyError(name, t)
		}
	}

	return table, nil
}

// base must not be an interface, its pointer is used as a probe
// so declaration works for both value and pointer receivers.
func declaredRequiredProperties(base reflect.Type) []string {
	declarer, ok := reflect.New(base).Interface().(RequiredPropertiesDeclarer)
	if !ok {
		return nil
	}

	names := slices.Clone(declarer.RequiredProperties())
	slices.Sort(names)

	return slices.Compact(names)
}

func newFieldSetter(field reflect.StructField) fieldSetter {
	index := field.Index
	fieldType := field.Type

	return func(target reflect.Value, name string, value any) error {
		f := target.FieldByIndex(index)

		if value == nil {
			if !nillable(fieldType.Kind()) {
				return newPropertyTypeError(name, fieldType, value)
			}

			f.SetZero()
			return nil
		}

		v := reflect.ValueOf(value)
		if !v.Type().AssignableTo(fieldType) {
			return newPropertyTypeError(name, fieldType, value)
		}

		f.Set(v)

		return nil
	}
}

func nillable(kind reflect.Kind) bool {
	switch kind {
	case reflect.Pointer, reflect.Interface, reflect.Map, reflect.Slice, reflect.Func, reflect.Chan:
		return true
	default:
		return false
	}
}

func (table *propertyTable) checkRequired(props Properties) error {
	for _, name := range table.required {
		if _, ok := props[name]; !ok {
			return newMissingRequiredPropertyError(name, table.t)
		}
	}

	return nil
}

// inject assigns props onto instance, instance must not be a nil pointer.
// Non-pointer instances are copied, so returned value should be used instead of instance.
func (table *propertyTable) inject(log *slog.Logger, instance any, props Properties, strict bool) (any, error) {
	if len(props) == 0 {
		return instance, nil
	}

	target, result := addressable(instance)

	var dynamic PropertySetter
	if table.dynamic {
		dynamic, _ = target.Addr().Interface().(PropertySetter)
	}

	for _, name := range slices.Sorted(maps.Keys(props)) {
		value := props[name]

		if set, ok := table.setters[name]; ok {
			if err := set(target, name, value); err != nil {
				return nil, err
			}

			continue
		}

		if dynamic != nil {
			ok, err := dynamic.SetInjectedProperty(name, value)
			if err != nil {
				return nil, fmt.Errorf("property %q of %s: %w", name, table.t, err)
			}

			if ok {
				continue
			}
		}

		if strict {
			return nil, newUnknownPropertyError(name, table.t)
		}

		log.Debug("skipping unknown property", "type", table.t.String(), "property", name)
	}

	return result(), nil
}

func addressable(instance any) (reflect.Value, func() any) {
	v := reflect.ValueOf(instance)
	if v.Kind() == reflect.Pointer {
		return v.Elem(), func() any { return instance }
	}

	p := reflect.New(v.Type()).Elem()
	p.Set(v)

	return p, p.Interface
}
