package blueprint

import (
	"fmt"
	"slices"

	"github.com/andriiyaremenko/injective"
)

// Graph holds objects built from a document by name.
type Graph struct {
	objects map[string]any
	names   []string
}

func newGraph(size int) *Graph {
	return &Graph{
		objects: make(map[string]any, size),
		names:   make([]string, 0, size),
	}
}

func (g *Graph) add(name string, obj any) {
	g.objects[name] = obj
	g.names = append(g.names, name)
}

// Object returns object declared under name.
func (g *Graph) Object(name string) (any, bool) {
	obj, ok := g.objects[name]
	return obj, ok
}

// Names returns object names in document order.
func (g *Graph) Names() []string {
	return slices.Clone(g.names)
}

// Get returns object declared under name as T.
func Get[T any](g *Graph, name string) (T, error) {
	obj, ok := g.objects[name]
	if !ok {
		return *new(T), fmt.Errorf("%s: %w", name, ErrUnresolvedReference)
	}

	result, ok := obj.(T)
	if !ok {
		return *new(T), fmt.Errorf("%s is %T, not %s: %w", name, obj, injective.TypeOf[T](), ErrReferenceType)
	}

	return result, nil
}
