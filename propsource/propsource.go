// Package propsource provides injective.PropertySource implementations
// for host hooks: fixed maps, environment variables and chains of sources.
package propsource

import (
	"maps"
	"reflect"

	"github.com/andriiyaremenko/injective"
)

var (
	_ injective.PropertySource = Map{}
	_ injective.PropertySource = Chain{}
	_ injective.PropertySource = new(Env)
)

// Map provides same properties for every object of a type.
type Map map[reflect.Type]injective.Properties

func (m Map) Properties(t reflect.Type) (injective.Properties, error) {
	return maps.Clone(m[t]), nil
}

// Set stores props for T.
func Set[T any](m Map, props injective.Properties) {
	m[injective.TypeOf[T]()] = props
}

// Chain merges properties of its sources, value from earlier source wins.
type Chain []injective.PropertySource

func (ch Chain) Properties(t reflect.Type) (injective.Properties, error) {
	result := make(injective.Properties)

	for _, source := range ch {
		props, err := source.Properties(t)
		if err != nil {
			return nil, err
		}

		for name, value := range props {
			if _, ok := result[name]; !ok {
				result[name] = value
			}
		}
	}

	return result, nil
}
