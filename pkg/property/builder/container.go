package builder

import (
	"fmt"

	"github.com/zeusync/property/pkg/property"
	"github.com/zeusync/property/pkg/property/factory"
	"github.com/zeusync/property/pkg/property/validation"
)

// prototypeSource holds either a ready prototype or a builder for one. The
// last setter called wins.
type prototypeSource[V any] struct {
	property property.Readable[V]
	builder  Prototype[V]
}

func (s *prototypeSource[V]) setProperty(p property.Readable[V]) {
	s.property = p
	s.builder = nil
}

func (s *prototypeSource[V]) setBuilder(b Prototype[V]) {
	s.builder = b
	s.property = nil
}

// resolve returns the prototype, building it on first use. It returns nil
// when nothing was configured.
func (s *prototypeSource[V]) resolve(name string) (property.Readable[V], error) {
	if s.builder != nil {
		p, err := s.builder.prototype(name)
		if err != nil {
			return nil, fmt.Errorf("prototype %s: %w", name, err)
		}
		s.setProperty(p)
	}
	return s.property, nil
}

func (s *prototypeSource[V]) require(name string, missing error) (property.Readable[V], error) {
	p, err := s.resolve(name)
	if err != nil {
		return nil, err
	}
	if p == nil {
		return nil, fmt.Errorf("%w: %s", missing, name)
	}
	return p, nil
}

type ListBuilder[E any] struct {
	Builder[[]E, *property.ListProperty[E], *validation.Collection[[]E, *ListBuilder[E]], *ListBuilder[E]]
	value prototypeSource[E]
}

// List returns a builder for a list of E. The element prototype is
// mandatory.
func List[E any](b *Builders) *ListBuilder[E] {
	lb := &ListBuilder[E]{}
	lb.init(b, lb, func(parent *ListBuilder[E]) *validation.Collection[[]E, *ListBuilder[E]] {
		return validation.NewCollection(parent, func(v []E) int { return len(v) })
	}, lb.newList)
	return lb
}

func (b *ListBuilder[E]) ValueProperty(p property.Readable[E]) *ListBuilder[E] {
	b.value.setProperty(p)
	return b
}

// ValueBuilder describes the elements with a sub-builder, built when the list
// is built.
func (b *ListBuilder[E]) ValueBuilder(sub Prototype[E]) *ListBuilder[E] {
	b.value.setBuilder(sub)
	return b
}

func (b *ListBuilder[E]) newList(name string, md property.Metadata[[]E]) (*property.ListProperty[E], error) {
	value, err := b.value.require(name+".value", ErrMissingValueProperty)
	if err != nil {
		return nil, err
	}
	return property.NewListProperty(name, value, md), nil
}

type SetBuilder[E comparable] struct {
	Builder[map[E]struct{}, *property.SetProperty[E], *validation.Collection[map[E]struct{}, *SetBuilder[E]], *SetBuilder[E]]
	value prototypeSource[E]
}

func Set[E comparable](b *Builders) *SetBuilder[E] {
	sb := &SetBuilder[E]{}
	sb.init(b, sb, func(parent *SetBuilder[E]) *validation.Collection[map[E]struct{}, *SetBuilder[E]] {
		return validation.NewCollection(parent, func(v map[E]struct{}) int { return len(v) })
	}, sb.newSet)
	return sb
}

func (b *SetBuilder[E]) ValueProperty(p property.Readable[E]) *SetBuilder[E] {
	b.value.setProperty(p)
	return b
}

func (b *SetBuilder[E]) ValueBuilder(sub Prototype[E]) *SetBuilder[E] {
	b.value.setBuilder(sub)
	return b
}

func (b *SetBuilder[E]) newSet(name string, md property.Metadata[map[E]struct{}]) (*property.SetProperty[E], error) {
	value, err := b.value.require(name+".value", ErrMissingValueProperty)
	if err != nil {
		return nil, err
	}
	return property.NewSetProperty(name, value, md), nil
}

type MapBuilder[K comparable, V any] struct {
	Builder[map[K]V, *property.MapProperty[K, V], *validation.Collection[map[K]V, *MapBuilder[K, V]], *MapBuilder[K, V]]
	key   prototypeSource[K]
	value prototypeSource[V]
}

// Map returns a builder for a map from K to V. The value prototype is
// mandatory; a missing key prototype is created through the registry of the
// parent builders.
func Map[K comparable, V any](b *Builders) *MapBuilder[K, V] {
	mb := &MapBuilder[K, V]{}
	mb.init(b, mb, func(parent *MapBuilder[K, V]) *validation.Collection[map[K]V, *MapBuilder[K, V]] {
		return validation.NewCollection(parent, func(v map[K]V) int { return len(v) })
	}, mb.newMap)
	return mb
}

func (b *MapBuilder[K, V]) KeyProperty(p property.Readable[K]) *MapBuilder[K, V] {
	b.key.setProperty(p)
	return b
}

func (b *MapBuilder[K, V]) KeyBuilder(sub Prototype[K]) *MapBuilder[K, V] {
	b.key.setBuilder(sub)
	return b
}

func (b *MapBuilder[K, V]) ValueProperty(p property.Readable[V]) *MapBuilder[K, V] {
	b.value.setProperty(p)
	return b
}

func (b *MapBuilder[K, V]) ValueBuilder(sub Prototype[V]) *MapBuilder[K, V] {
	b.value.setBuilder(sub)
	return b
}

func (b *MapBuilder[K, V]) newMap(name string, md property.Metadata[map[K]V]) (*property.MapProperty[K, V], error) {
	value, err := b.value.require(name+".value", ErrMissingValueProperty)
	if err != nil {
		return nil, err
	}

	key, err := b.key.resolve(name + ".key")
	if err != nil {
		return nil, err
	}
	if key == nil {
		if key, err = b.defaultKey(name + ".key"); err != nil {
			return nil, err
		}
	}

	return property.NewMapProperty(name, key, value, md), nil
}

func (b *MapBuilder[K, V]) defaultKey(name string) (property.Readable[K], error) {
	registry := b.parent.Registry()
	if registry == nil {
		return nil, fmt.Errorf("%w: %s", ErrMissingKeyProperty, name)
	}
	key, err := factory.CreateValue[K](registry, name)
	if err != nil {
		if factory.IsNotFound(err) {
			return nil, fmt.Errorf("%w: %s: %w", ErrMissingKeyProperty, name, err)
		}
		return nil, err
	}
	b.key.setProperty(key)
	return key, nil
}
