package injective_test

import (
	"errors"
	"strings"

	"github.com/andriiyaremenko/injective"
)

type Greeter interface {
	Greet() string
}

type Store struct {
	Capacity int
	closed   bool
}

func (s *Store) Close() error {
	s.closed = true
	return nil
}

func (s *Store) Closed() bool {
	return s.closed
}

type Service struct {
	Store    *Store
	Greeting string `inject:"greeting"`
	Internal string `inject:"-"`

	storeOnAwake    *Store
	greetingOnAwake string
	awoken          int
}

func (*Service) RequiredProperties() []string {
	return []string{"Store", "greeting"}
}

func (s *Service) AwakeFromInjection() {
	s.awoken++
	s.storeOnAwake = s.Store
	s.greetingOnAwake = s.Greeting
}

func (s *Service) Greet() string {
	return s.Greeting
}

type EnglishGreeter struct {
	Name string
}

func (g *EnglishGreeter) Greet() string {
	return "Hello " + g.Name
}

type SpanishGreeter struct {
	Name string
}

func (g *SpanishGreeter) Greet() string {
	return "Hola " + g.Name
}

type Bag struct {
	values map[string]any
}

func (*Bag) RequiredProperties() []string {
	return []string{"x-id"}
}

func (b *Bag) SetInjectedProperty(name string, value any) (bool, error) {
	if !strings.HasPrefix(name, "x-") {
		return false, nil
	}

	if value == nil {
		return true, errors.New("nil is not allowed")
	}

	if b.values == nil {
		b.values = make(map[string]any)
	}

	b.values[name] = value

	return true, nil
}

type Counter struct {
	N int
}

type Broken struct{}

func (Broken) RequiredProperties() []string {
	return []string{"Missing"}
}

type Twins struct {
	First  string `inject:"name"`
	Second string `inject:"name"`
}

type FaultyCloser struct{}

func (*FaultyCloser) Close() error {
	return errors.New("cannot close")
}

type PanickyCloser struct{}

func (*PanickyCloser) Close() error {
	panic("closing")
}

type SelfResolving struct {
	self *SelfResolving
}

func (s *SelfResolving) AwakeFromInjection() {
	s.self, _ = injective.Instantiate[*SelfResolving](injective.Default(), nil)
}

type Tally struct {
	N        int
	nOnAwake int
	awoken   bool
}

func (t *Tally) AwakeFromInjection() {
	t.awoken = true
	t.nOnAwake = t.N
}

type FormalGreeter struct {
	Name string
}

func (*FormalGreeter) RequiredProperties() []string {
	return []string{"Name"}
}

func (g *FormalGreeter) Greet() string {
	return "Good day " + g.Name
}
