package property

import (
	"fmt"
	"maps"
	"reflect"

	"go.uber.org/multierr"
)

var _ WritableMap[string, int] = (*MapProperty[string, int])(nil)

// MapProperty holds a map from K to V. Keys and values are described by their
// own prototype properties.
type MapProperty[K comparable, V any] struct {
	*Base[map[K]V]
	keyProperty   Readable[K]
	valueProperty Readable[V]
}

func NewMapProperty[K comparable, V any](name string, keyProperty Readable[K], valueProperty Readable[V], metadata Metadata[map[K]V]) *MapProperty[K, V] {
	return &MapProperty[K, V]{
		Base:          New(name, metadata),
		keyProperty:   keyProperty,
		valueProperty: valueProperty,
	}
}

func (p *MapProperty[K, V]) KeyProperty() Readable[K] {
	return p.keyProperty
}

func (p *MapProperty[K, V]) ValueProperty() Readable[V] {
	return p.valueProperty
}

func (p *MapProperty[K, V]) KeyType() reflect.Type {
	return componentType(p.keyProperty)
}

func (p *MapProperty[K, V]) ComponentType() reflect.Type {
	return componentType(p.valueProperty)
}

func (p *MapProperty[K, V]) Len() int {
	return len(p.Get())
}

func (p *MapProperty[K, V]) Lookup(key K) (V, bool) {
	value, ok := p.Get()[key]
	return value, ok
}

func (p *MapProperty[K, V]) Put(key K, value V) error {
	return p.update(func(current map[K]V) (map[K]V, error) {
		next := maps.Clone(current)
		if next == nil {
			next = make(map[K]V, 1)
		}
		next[key] = value
		return next, nil
	})
}

func (p *MapProperty[K, V]) Delete(key K) error {
	return p.update(func(current map[K]V) (map[K]V, error) {
		if _, ok := current[key]; !ok {
			return nil, errUnchanged
		}
		next := maps.Clone(current)
		delete(next, key)
		return next, nil
	})
}

// Validate checks the map, then every key and value against their prototypes.
func (p *MapProperty[K, V]) Validate() error {
	var entries error
	for key, value := range p.Get() {
		label := fmt.Sprintf("[%v]", key)
		entries = multierr.Append(entries, validateElement(p.keyProperty, label+" key", key))
		entries = multierr.Append(entries, validateElement(p.valueProperty, label, value))
	}
	return validateContainer(p.Name(), p.Base.Validate(), entries)
}

func (p *MapProperty[K, V]) ReadOnly() Readable[map[K]V] {
	return readOnlyView[map[K]V]{p}
}
