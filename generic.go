package injective

// Register registers T to be constructed from its zero value,
// for pointer types new value is allocated.
func Register[T any](c *Context, mode Mode) error {
	return c.Register(TypeOf[T](), mode)
}

// RegisterFactory registers T to be constructed by factory.
func RegisterFactory[T any](c *Context, mode Mode, factory func(props Properties) (T, error)) error {
	if factory == nil {
		return newBadRegistrationError(ErrNilFactory, TypeOf[T]())
	}

	return c.RegisterFactory(TypeOf[T](), mode, func(props Properties) (any, error) {
		return factory(props)
	})
}

// RegisterSingletonInstance adopts instance as Singleton of T.
func RegisterSingletonInstance[T any](c *Context, instance T) error {
	return c.RegisterSingletonInstance(instance, TypeOf[T]())
}

// Instantiate returns fully wired instance of T.
func Instantiate[T any](c *Context, props Properties) (T, error) {
	instance, err := c.Instantiate(TypeOf[T](), props)
	if err != nil {
		return *new(T), err
	}

	return instance.(T), nil
}

// InstantiateWith is Instantiate with properties passed as alternating key/value arguments.
func InstantiateWith[T any](c *Context, keyValues ...any) (T, error) {
	props, err := Props(keyValues...)
	if err != nil {
		return *new(T), err
	}

	return Instantiate[T](c, props)
}

// MustInstantiate is like Instantiate, but panics on error.
func MustInstantiate[T any](c *Context, props Properties) T {
	instance, err := Instantiate[T](c, props)
	if err != nil {
		panic(err)
	}

	return instance
}

// InstantiateImplementing returns instance of the only registered type implementing I.
func InstantiateImplementing[I any](c *Context, props Properties) (I, error) {
	instance, err := c.InstantiateImplementing(TypeOf[I](), props)
	if err != nil {
		return *new(I), err
	}

	return instance.(I), nil
}

// InstantiateAllImplementing returns instances of every registered type implementing I.
func InstantiateAllImplementing[I any](c *Context, props Properties) ([]I, error) {
	instances, err := c.InstantiateAllImplementing(TypeOf[I](), props)
	if err != nil {
		return nil, err
	}

	result := make([]I, len(instances))
	for i, instance := range instances {
		result[i] = instance.(I)
	}

	return result, nil
}
