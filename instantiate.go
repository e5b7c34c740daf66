package injective

import (
	"fmt"
	"maps"
	"reflect"
)

// Instantiate returns fully wired instance of registered type t.
//
// Singleton instance is returned unchanged once constructed, props are ignored then.
// Otherwise instance is constructed by registered factory or from zero value,
// every entry of props is assigned to a property with same name,
// entries instance does not expose are skipped,
// and AwakeFromInjection is called after all properties are set.
func (c *Context) Instantiate(t reflect.Type, props Properties) (any, error) {
	r, ok := c.lookup(t)
	if !ok {
		return nil, newUnregisteredTypeError(t)
	}

	switch r.mode {
	case Singleton:
		return c.getSingleton(r, props)
	case Factory:
		instance, err := c.build(r, props)
		if err != nil {
			return nil, err
		}

		return awake(instance), nil
	default:
		panic(fmt.Errorf(
			"broken record %s: %w",
			r.t,
			ModeUnsupportedError(r.mode.String())),
		)
	}
}

// InstantiateImplementing instantiates the only registered type implementing capability.
func (c *Context) InstantiateImplementing(capability reflect.Type, props Properties) (any, error) {
	if capability == nil || capability.Kind() != reflect.Interface {
		return nil, fmt.Errorf("%s: %w", typeName(capability), ErrNotACapability)
	}

	candidates := c.LookupByCapability(capability)

	switch len(candidates) {
	case 0:
		return nil, newNoImplementerError(capability)
	case 1:
		return c.Instantiate(candidates[0], props)
	default:
		return nil, newAmbiguousCapabilityError(capability, candidates)
	}
}

// InstantiateAllImplementing instantiates every registered type implementing capability
// in order of registration.
// Singletons are kept per registered type, not per capability.
func (c *Context) InstantiateAllImplementing(capability reflect.Type, props Properties) ([]any, error) {
	if capability == nil || capability.Kind() != reflect.Interface {
		return nil, fmt.Errorf("%s: %w", typeName(capability), ErrNotACapability)
	}

	candidates := c.LookupByCapability(capability)
	instances := make([]any, 0, len(candidates))

	for _, t := range candidates {
		instance, err := c.Instantiate(t, props)
		if err != nil {
			return nil, err
		}

		instances = append(instances, instance)
	}

	return instances, nil
}

func (c *Context) getSingleton(r *record, props Properties) (any, error) {
	if instance := r.instance.Load(); instance != nil {
		return *instance, nil
	}

	r.mu.Lock()

	if instance := r.instance.Load(); instance != nil {
		r.mu.Unlock()
		return *instance, nil
	}

	instance, err := c.build(r, props)
	if err != nil {
		r.mu.Unlock()
		return nil, err
	}

	stored := &instance
	r.instance.Store(stored)
	r.mu.Unlock()

	awakened := awake(instance)
	r.instance.CompareAndSwap(stored, &awakened)
	c.track(awakened)

	return awakened, nil
}

// build constructs and fills instance, nothing is stored on failure.
func (c *Context) build(r *record, props Properties) (any, error) {
	if err := r.table.checkRequired(props); err != nil {
		return nil, err
	}

	instance, err := c.construct(r, props)
	if err != nil {
		return nil, err
	}

	table := r.table
	if r.t.Kind() == reflect.Interface {
		if table, err = c.propertyTable(reflect.TypeOf(instance)); err != nil {
			return nil, newFactoryError(err, r.mode, r.t)
		}

		if err := table.checkRequired(props); err != nil {
			return nil, err
		}
	}

	return table.inject(c.log(), instance, props, c.strict)
}

func (c *Context) construct(r *record, props Properties) (instance any, err error) {
	if r.factory == nil {
		switch r.t.Kind() {
		case reflect.Interface:
			return nil, newFactoryError(ErrInterfaceWithoutFactory, r.mode, r.t)
		case reflect.Pointer:
			return reflect.New(r.t.Elem()).Interface(), nil
		default:
			return reflect.Zero(r.t).Interface(), nil
		}
	}

	defer func() {
		if rp := recover(); rp != nil {
			instance = nil
			err = newFactoryError(fmt.Errorf("recovered from panic: %v", rp), r.mode, r.t)
		}
	}()

	instance, err = r.factory(maps.Clone(props))
	if err != nil {
		return nil, newFactoryError(err, r.mode, r.t)
	}

	if !validInstance(instance, r.t) {
		return nil, newFactoryError(newUnexpectedResultError(instance, r.t), r.mode, r.t)
	}

	return instance, nil
}

func validInstance(instance any, t reflect.Type) bool {
	if instance == nil || !reflect.TypeOf(instance).AssignableTo(t) {
		return false
	}

	v := reflect.ValueOf(instance)

	return v.Kind() != reflect.Pointer || !v.IsNil()
}

// awake returns instance after AwakeFromInjection.
// Values with pointer receiver callback are awakened on a copy, that is returned instead.
func awake(instance any) any {
	if awaker, ok := instance.(Awaker); ok {
		awaker.AwakeFromInjection()
		return instance
	}

	v := reflect.ValueOf(instance)
	if !v.IsValid() || v.Kind() == reflect.Pointer {
		return instance
	}

	p := reflect.New(v.Type())
	awaker, ok := p.Interface().(Awaker)
	if !ok {
		return instance
	}

	p.Elem().Set(v)
	awaker.AwakeFromInjection()

	return p.Elem().Interface()
}
