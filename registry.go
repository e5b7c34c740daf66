package injective

import (
	"reflect"
	"slices"
	"sync"
	"sync/atomic"
)

type record struct {
	t        reflect.Type
	factory  FactoryFunc
	table    *propertyTable
	instance atomic.Pointer[any]
	id       int
	mode     Mode
	mu       sync.Mutex
	adopted  bool
}

// Record is a snapshot of registration.
type Record struct {
	Type        reflect.Type
	Mode        Mode
	HasFactory  bool
	HasInstance bool
}

func (r *record) snapshot() Record {
	return Record{
		Type:        r.t,
		Mode:        r.mode,
		HasFactory:  r.factory != nil,
		HasInstance: r.instance.Load() != nil,
	}
}

// Register registers t to be constructed from its zero value.
// Registering same type again replaces previous registration and drops its singleton instance.
func (c *Context) Register(t reflect.Type, mode Mode) error {
	return c.register(t, mode, nil, nil)
}

// RegisterFactory registers t to be constructed by factory.
func (c *Context) RegisterFactory(t reflect.Type, mode Mode, factory FactoryFunc) error {
	if factory == nil {
		return newBadRegistrationError(ErrNilFactory, t)
	}

	return c.register(t, mode, factory, nil)
}

// RegisterSingletonInstance adopts instance as Singleton of type t.
// No factory is invoked and no properties are assigned for it later.
// Adopted instance belongs to the caller, Teardown keeps it.
func (c *Context) RegisterSingletonInstance(instance any, t reflect.Type) error {
	if instance == nil {
		return newBadRegistrationError(ErrNilInstance, t)
	}

	if t != nil && !validInstance(instance, t) {
		return newBadRegistrationError(newUnexpectedResultError(instance, t), t)
	}

	return c.register(t, Singleton, nil, &instance)
}

func (c *Context) register(t reflect.Type, mode Mode, factory FactoryFunc, instance *any) error {
	if t == nil {
		return newBadRegistrationError(ErrNilType, t)
	}

	if mode != Factory && mode != Singleton {
		return newBadRegistrationError(ModeUnsupportedError(mode.String()), t)
	}

	if t.Kind() == reflect.Interface && factory == nil && instance == nil {
		return newBadRegistrationError(ErrInterfaceWithoutFactory, t)
	}

	table, err := newPropertyTable(t)
	if err != nil {
		return newBadRegistrationError(err, t)
	}

	r := &record{
		t:       t,
		mode:    mode,
		factory: factory,
		table:   table,
		adopted: instance != nil,
	}

	if instance != nil {
		r.instance.Store(instance)
	}

	c.recordsRWM.Lock()
	defer c.recordsRWM.Unlock()

	if previous, ok := c.records[t]; ok {
		c.log().Debug(
			"replacing registration",
			"type", t.String(),
			"from", previous.mode.String(),
			"to", mode.String(),
		)
	}

	r.id = c.nextID
	c.nextID++

	c.records[t] = r
	clear(c.capabilities)

	return nil
}

// Lookup returns registration of exactly t.
func (c *Context) Lookup(t reflect.Type) (Record, bool) {
	r, ok := c.lookup(t)
	if !ok {
		return Record{}, false
	}

	return r.snapshot(), true
}

func (c *Context) lookup(t reflect.Type) (*record, bool) {
	c.recordsRWM.RLock()
	defer c.recordsRWM.RUnlock()

	r, ok := c.records[t]

	return r, ok
}

// LookupByCapability returns registered types implementing capability interface
// in order of registration.
// Result is empty if capability is not an interface or nothing implements it.
func (c *Context) LookupByCapability(capability reflect.Type) []reflect.Type {
	if capability == nil || capability.Kind() != reflect.Interface {
		return []reflect.Type{}
	}

	c.recordsRWM.RLock()
	types, ok := c.capabilities[capability]
	c.recordsRWM.RUnlock()

	if ok {
		return slices.Clone(types)
	}

	c.recordsRWM.Lock()
	defer c.recordsRWM.Unlock()

	if types, ok := c.capabilities[capability]; ok {
		return slices.Clone(types)
	}

	implementers := make([]*record, 0)
	for t, r := range c.records {
		if t.Implements(capability) {
			implementers = append(implementers, r)
		}
	}

	slices.SortFunc(implementers, func(a, b *record) int { return a.id - b.id })

	types = make([]reflect.Type, len(implementers))
	for i, r := range implementers {
		types[i] = r.t
	}

	c.capabilities[capability] = types

	return slices.Clone(types)
}
