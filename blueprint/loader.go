// Package blueprint builds objects described by a YAML document
// and hands every object to a host hook once the whole document is built.
//
// Document lists objects in order, objects can refer to objects declared before them:
//
//	objects:
//	  - name: db
//	    kind: database
//	    properties:
//	      dsn: postgres://localhost/app
//	  - name: users
//	    kind: repository
//	    properties:
//	      db: {$ref: db}
//	      table: users
//
// Properties are matched to struct fields by `yaml` tag or by field name.
package blueprint

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"reflect"
	"slices"

	"gopkg.in/yaml.v3"

	"github.com/andriiyaremenko/injective"
)

const refKey = "$ref"

type document struct {
	Objects []objectSpec `yaml:"objects"`
}

type objectSpec struct {
	Properties map[string]yaml.Node `yaml:"properties"`
	Name       string               `yaml:"name"`
	Kind       string               `yaml:"kind"`
}

type Option func(*Loader)

func WithLogger(logger *slog.Logger) Option {
	return func(l *Loader) { l.logger = logger }
}

// Loader constructs objects of registered kinds.
type Loader struct {
	kinds  map[string]reflect.Type
	hook   injective.HostHook
	logger *slog.Logger
}

// NewLoader returns Loader that notifies hook about every object it builds.
func NewLoader(hook injective.HostHook, opts ...Option) *Loader {
	l := &Loader{
		kinds:  make(map[string]reflect.Type),
		hook:   hook,
		logger: slog.Default(),
	}

	for _, opt := range opts {
		opt(l)
	}

	return l
}

// Kind makes T available to documents under name.
// T must be a pointer to struct.
func Kind[T any](l *Loader, name string) error {
	t := injective.TypeOf[T]()

	if name == "" || t.Kind() != reflect.Pointer || t.Elem().Kind() != reflect.Struct {
		return fmt.Errorf("%s as %q: %w", t, name, ErrBadKind)
	}

	if _, ok := l.kinds[name]; ok {
		return fmt.Errorf("%s as %q: %w", t, name, ErrDuplicateName)
	}

	l.kinds[name] = t

	return nil
}

// LoadFile is Load for a file.
func (l *Loader) LoadFile(path string) (*Graph, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	return l.Load(f)
}

// Load builds every object of the document, sets its properties
// and then calls hook for each object in document order.
// Nothing is returned if any object fails.
func (l *Loader) Load(r io.Reader) (*Graph, error) {
	var doc document
	if err := yaml.NewDecoder(r).Decode(&doc); err != nil && err != io.EOF {
		return nil, fmt.Errorf("decoding blueprint: %w", err)
	}

	g := newGraph(len(doc.Objects))
	kinds := make(map[string]string, len(doc.Objects))

	for _, spec := range doc.Objects {
		obj, err := l.build(g, spec)
		if err != nil {
			return nil, newObjectError(err, spec.Name, spec.Kind)
		}

		g.add(spec.Name, obj)
		kinds[spec.Name] = spec.Kind
	}

	for _, name := range g.names {
		obj := g.objects[name]

		if l.hook != nil {
			if err := l.hook(obj); err != nil {
				return nil, newObjectError(err, name, kinds[name])
			}
		}

		l.logger.Debug("blueprint object wired", "name", name, "kind", kinds[name])
	}

	return g, nil
}

func (l *Loader) build(g *Graph, spec objectSpec) (any, error) {
	if spec.Name == "" {
		return nil, ErrMissingName
	}

	if _, ok := g.objects[spec.Name]; ok {
		return nil, ErrDuplicateName
	}

	t, ok := l.kinds[spec.Kind]
	if !ok {
		return nil, ErrUnknownKind
	}

	obj := reflect.New(t.Elem())
	fields := fieldIndex(t.Elem())

	names := make([]string, 0, len(spec.Properties))
	for name := range spec.Properties {
		names = append(names, name)
	}

	slices.Sort(names)

	for _, name := range names {
		index, ok := fields[name]
		if !ok {
			return nil, fmt.Errorf("%s: %w", name, ErrUnknownField)
		}

		node := spec.Properties[name]
		field := obj.Elem().FieldByIndex(index)

		if ref, ok := reference(&node); ok {
			target, ok := g.objects[ref]
			if !ok {
				return nil, fmt.Errorf("%s: %s: %w", name, ref, ErrUnresolvedReference)
			}

			v := reflect.ValueOf(target)
			if !v.Type().AssignableTo(field.Type()) {
				return nil, fmt.Errorf("%s: %s: %w", name, ref, ErrReferenceType)
			}

			field.Set(v)

			continue
		}

		if err := node.Decode(field.Addr().Interface()); err != nil {
			return nil, fmt.Errorf("%s: %w", name, err)
		}
	}

	return obj.Interface(), nil
}

func fieldIndex(t reflect.Type) map[string][]int {
	fields := make(map[string][]int)

	for i := 0; i < t.NumField(); i++ {
		field := t.Field(i)
		if !field.IsExported() {
			continue
		}

		name := field.Name
		if tag, ok := field.Tag.Lookup("yaml"); ok {
			if tag == "-" {
				continue
			}

			if tag != "" {
				name = tag
			}
		}

		fields[name] = field.Index
	}

	return fields
}

func reference(node *yaml.Node) (string, bool) {
	if node.Kind != yaml.MappingNode || len(node.Content) != 2 {
		return "", false
	}

	if node.Content[0].Value != refKey || node.Content[1].Kind != yaml.ScalarNode {
		return "", false
	}

	return node.Content[1].Value, true
}
