/*
This package provides a small container that constructs objects and fills their properties.
Types are registered with Factory or Singleton mode and are built either from their zero value
or by a factory function, after that every supplied property is assigned by name.

To install injective:

	go get -u github.com/andriiyaremenko/injective

How to use:

	type Greeter interface {
		Greet() string
	}

	type Store struct {
		Capacity int
	}

	type Service struct {
		Store    *Store
		Greeting string `inject:"greeting"`
		ready    bool
	}

	func (*Service) RequiredProperties() []string {
		return []string{"Store", "greeting"}
	}

	func (s *Service) AwakeFromInjection() {
		s.ready = true
	}

	func (s *Service) Greet() string {
		return s.Greeting
	}

	c := injective.New()
	if err := injective.Register[*Store](c, injective.Singleton); err != nil {
		// handle error
	}

	if err := injective.Register[*Service](c, injective.Factory); err != nil {
		// handle error
	}

	store, err := injective.Instantiate[*Store](c, injective.Properties{"Capacity": 10})
	if err != nil {
		// handle error
	}

	service, err := injective.InstantiateWith[*Service](c, "Store", store, "greeting", "hello")
	if err != nil {
		// handle error
	}

	greeter, err := injective.InstantiateImplementing[Greeter](c, injective.Properties{
		"Store":    store,
		"greeting": "hi",
	})
	if err != nil {
		// handle error
	}

Objects constructed by a host outside of Instantiate are wired through a hook:

	hook := c.HostHook(source)
	obj := &Service{}
	if err := hook(obj); err != nil {
		// handle error
	}

Functions:
  - injective.New
  - injective.Default
  - injective.SetDefault
  - injective.Register
  - injective.RegisterFactory
  - injective.RegisterSingletonInstance
  - injective.Instantiate
  - injective.InstantiateWith
  - injective.MustInstantiate
  - injective.InstantiateImplementing
  - injective.InstantiateAllImplementing
  - injective.Props
  - injective.Describe
  - injective.SetDefaultLogger

Mode constants:

	injective.Factory
	injective.Singleton

Type contract (all optional):
  - RequiredProperties() []string - names that must be present in Properties.
  - AwakeFromInjection() - called once all properties are set.
  - SetInjectedProperty(name string, value any) (bool, error) - properties that are not struct fields.
*/
package injective
