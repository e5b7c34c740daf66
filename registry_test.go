package injective_test

import (
	"errors"
	"reflect"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/andriiyaremenko/injective"
)

var _ = Describe("Registry", func() {
	var c *injective.Context

	BeforeEach(func() {
		c = injective.New()
	})

	It("should register Factory", func() {
		Expect(injective.Register[*Store](c, injective.Factory)).Should(Succeed())

		record, ok := c.Lookup(injective.TypeOf[*Store]())

		Expect(ok).Should(BeTrue())
		Expect(record.Type).Should(Equal(reflect.TypeOf(&Store{})))
		Expect(record.Mode).Should(Equal(injective.Factory))
		Expect(record.HasFactory).Should(BeFalse())
		Expect(record.HasInstance).Should(BeFalse())
	})

	It("should register Singleton with factory", func() {
		err := injective.RegisterFactory(c, injective.Singleton, func(injective.Properties) (*Store, error) {
			return &Store{}, nil
		})
		Expect(err).ShouldNot(HaveOccurred())

		record, ok := c.Lookup(injective.TypeOf[*Store]())

		Expect(ok).Should(BeTrue())
		Expect(record.Mode).Should(Equal(injective.Singleton))
		Expect(record.HasFactory).Should(BeTrue())
	})

	It("should not find unregistered type", func() {
		_, ok := c.Lookup(injective.TypeOf[*Store]())
		Expect(ok).Should(BeFalse())
	})

	It("should mark Singleton as having instance once it is constructed", func() {
		Expect(injective.Register[*Store](c, injective.Singleton)).Should(Succeed())

		_, err := injective.Instantiate[*Store](c, nil)
		Expect(err).ShouldNot(HaveOccurred())

		record, _ := c.Lookup(injective.TypeOf[*Store]())
		Expect(record.HasInstance).Should(BeTrue())
	})

	It("should refuse nil type", func() {
		err := c.Register(nil, injective.Factory)

		Expect(err).Should(BeAssignableToTypeOf(new(injective.BadRegistrationError)))
		Expect(errors.Unwrap(err)).Should(MatchError(injective.ErrNilType))
	})

	It("should refuse unsupported mode", func() {
		err := injective.Register[*Store](c, injective.Mode(42))

		Expect(err).Should(BeAssignableToTypeOf(new(injective.BadRegistrationError)))
		Expect(errors.Unwrap(err)).Should(BeAssignableToTypeOf(injective.ModeUnsupportedError("")))
	})

	It("should refuse interface without factory", func() {
		err := injective.Register[Greeter](c, injective.Factory)

		Expect(err).Should(BeAssignableToTypeOf(new(injective.BadRegistrationError)))
		Expect(errors.Unwrap(err)).Should(MatchError(injective.ErrInterfaceWithoutFactory))
	})

	It("should refuse nil factory", func() {
		err := injective.RegisterFactory[*Store](c, injective.Factory, nil)
		Expect(errors.Unwrap(err)).Should(MatchError(injective.ErrNilFactory))

		err = c.RegisterFactory(injective.TypeOf[*Store](), injective.Factory, nil)
		Expect(errors.Unwrap(err)).Should(MatchError(injective.ErrNilFactory))
	})

	It("should refuse required property type does not expose", func() {
		err := injective.Register[Broken](c, injective.Factory)

		Expect(err).Should(BeAssignableToTypeOf(new(injective.BadRegistrationError)))
		Expect(errors.Unwrap(err)).Should(BeAssignableToTypeOf(new(injective.UnknownPropertyError)))
	})

	It("should refuse two fields exposing same property", func() {
		err := injective.Register[*Twins](c, injective.Factory)

		Expect(err).Should(BeAssignableToTypeOf(new(injective.BadRegistrationError)))
		Expect(err).Should(MatchError(injective.ErrDuplicateProperty))
	})

	It("should accept required property exposed through SetInjectedProperty", func() {
		Expect(injective.Register[*Bag](c, injective.Factory)).Should(Succeed())
	})

	It("should refuse singleton instance of another type", func() {
		err := c.RegisterSingletonInstance(&Store{}, injective.TypeOf[*Service]())

		Expect(err).Should(BeAssignableToTypeOf(new(injective.BadRegistrationError)))
		Expect(errors.Unwrap(err)).Should(BeAssignableToTypeOf(new(injective.UnexpectedResultError)))

		err = c.RegisterSingletonInstance(nil, injective.TypeOf[*Service]())
		Expect(errors.Unwrap(err)).Should(MatchError(injective.ErrNilInstance))
	})

	It("should refuse typed nil singleton instance", func() {
		err := injective.RegisterSingletonInstance(c, (*Store)(nil))

		Expect(err).Should(BeAssignableToTypeOf(new(injective.BadRegistrationError)))
		Expect(errors.Unwrap(err)).Should(BeAssignableToTypeOf(new(injective.UnexpectedResultError)))

		_, ok := c.Lookup(injective.TypeOf[*Store]())
		Expect(ok).Should(BeFalse())
	})

	It("should adopt singleton instance", func() {
		Expect(injective.RegisterSingletonInstance(c, &Store{Capacity: 3})).Should(Succeed())

		record, ok := c.Lookup(injective.TypeOf[*Store]())

		Expect(ok).Should(BeTrue())
		Expect(record.Mode).Should(Equal(injective.Singleton))
		Expect(record.HasInstance).Should(BeTrue())
		Expect(record.HasFactory).Should(BeFalse())
	})

	It("should replace registration", func() {
		Expect(injective.Register[*Store](c, injective.Singleton)).Should(Succeed())

		store1, err := injective.Instantiate[*Store](c, nil)
		Expect(err).ShouldNot(HaveOccurred())

		Expect(injective.Register[*Store](c, injective.Factory)).Should(Succeed())

		record, _ := c.Lookup(injective.TypeOf[*Store]())
		Expect(record.Mode).Should(Equal(injective.Factory))
		Expect(record.HasInstance).Should(BeFalse())

		store2, err := injective.Instantiate[*Store](c, nil)
		Expect(err).ShouldNot(HaveOccurred())

		store3, err := injective.Instantiate[*Store](c, nil)
		Expect(err).ShouldNot(HaveOccurred())

		Expect(store2).NotTo(BeIdenticalTo(store1))
		Expect(store3).NotTo(BeIdenticalTo(store2))
	})

	Context("LookupByCapability", func() {
		It("should return implementers in order of registration", func() {
			Expect(injective.Register[*SpanishGreeter](c, injective.Factory)).Should(Succeed())
			Expect(injective.Register[*Store](c, injective.Factory)).Should(Succeed())
			Expect(injective.Register[*EnglishGreeter](c, injective.Singleton)).Should(Succeed())

			Expect(c.LookupByCapability(injective.TypeOf[Greeter]())).Should(Equal([]reflect.Type{
				injective.TypeOf[*SpanishGreeter](),
				injective.TypeOf[*EnglishGreeter](),
			}))
		})

		It("should reflect registrations made after lookup", func() {
			Expect(injective.Register[*EnglishGreeter](c, injective.Factory)).Should(Succeed())
			Expect(c.LookupByCapability(injective.TypeOf[Greeter]())).Should(HaveLen(1))

			Expect(injective.Register[*SpanishGreeter](c, injective.Factory)).Should(Succeed())
			Expect(c.LookupByCapability(injective.TypeOf[Greeter]())).Should(Equal([]reflect.Type{
				injective.TypeOf[*EnglishGreeter](),
				injective.TypeOf[*SpanishGreeter](),
			}))

			Expect(injective.Register[*EnglishGreeter](c, injective.Singleton)).Should(Succeed())
			Expect(c.LookupByCapability(injective.TypeOf[Greeter]())).Should(Equal([]reflect.Type{
				injective.TypeOf[*SpanishGreeter](),
				injective.TypeOf[*EnglishGreeter](),
			}))
		})

		It("should return empty result", func() {
			Expect(c.LookupByCapability(injective.TypeOf[Greeter]())).Should(BeEmpty())
			Expect(c.LookupByCapability(injective.TypeOf[*Store]())).Should(BeEmpty())
			Expect(c.LookupByCapability(nil)).Should(BeEmpty())
		})

		It("should not let caller modify index", func() {
			Expect(injective.Register[*EnglishGreeter](c, injective.Factory)).Should(Succeed())

			types := c.LookupByCapability(injective.TypeOf[Greeter]())
			types[0] = injective.TypeOf[*Store]()

			Expect(c.LookupByCapability(injective.TypeOf[Greeter]())).
				Should(Equal([]reflect.Type{injective.TypeOf[*EnglishGreeter]()}))
		})
	})
})
