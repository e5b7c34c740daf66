package injective

import (
	"fmt"
	"reflect"
)

// Wire fills properties of obj constructed outside of Instantiate
// and calls AwakeFromInjection.
// obj is neither constructed nor cached, so Wire should be called once per object.
func (c *Context) Wire(obj any, props Properties) error {
	if obj == nil {
		return newUnregisteredTypeError(nil)
	}

	t := reflect.TypeOf(obj)

	r, ok := c.lookup(t)
	if !ok {
		return newUnregisteredTypeError(t)
	}

	if err := r.table.checkRequired(props); err != nil {
		return err
	}

	if t.Kind() == reflect.Pointer && reflect.ValueOf(obj).IsNil() {
		return newUnexpectedResultError(obj, t)
	}

	if len(props) > 0 {
		if t.Kind() != reflect.Pointer {
			return fmt.Errorf("%s: %w", t, ErrUnaddressable)
		}

		if _, err := r.table.inject(c.log(), obj, props, c.strict); err != nil {
			return err
		}
	}

	awake(obj)

	return nil
}

// HostHook returns callback for host framework to notify Context
// about every object it has finished constructing.
// Properties for the object are read from source, nil source provides none.
func (c *Context) HostHook(source PropertySource) HostHook {
	return func(obj any) error {
		var props Properties

		if source != nil && obj != nil {
			var err error
			if props, err = source.Properties(reflect.TypeOf(obj)); err != nil {
				return fmt.Errorf("reading properties of %T: %w", obj, err)
			}
		}

		return c.Wire(obj, props)
	}
}
