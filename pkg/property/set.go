package property

import (
	"fmt"
	"maps"
	"reflect"

	"go.uber.org/multierr"
)

var _ WritableSet[string] = (*SetProperty[string])(nil)

// SetProperty holds a set of E. Mutations replace the stored map.
type SetProperty[E comparable] struct {
	*Base[map[E]struct{}]
	valueProperty Readable[E]
}

func NewSetProperty[E comparable](name string, valueProperty Readable[E], metadata Metadata[map[E]struct{}]) *SetProperty[E] {
	return &SetProperty[E]{
		Base:          New(name, metadata),
		valueProperty: valueProperty,
	}
}

func (p *SetProperty[E]) ValueProperty() Readable[E] {
	return p.valueProperty
}

func (p *SetProperty[E]) ComponentType() reflect.Type {
	return componentType(p.valueProperty)
}

func (p *SetProperty[E]) Len() int {
	return len(p.Get())
}

func (p *SetProperty[E]) Contains(element E) bool {
	_, ok := p.Get()[element]
	return ok
}

func (p *SetProperty[E]) Add(elements ...E) error {
	return p.update(func(current map[E]struct{}) (map[E]struct{}, error) {
		next := maps.Clone(current)
		if next == nil {
			next = make(map[E]struct{}, len(elements))
		}
		added := false
		for _, element := range elements {
			if _, ok := next[element]; !ok {
				next[element] = struct{}{}
				added = true
			}
		}
		if !added {
			return nil, errUnchanged
		}
		return next, nil
	})
}

func (p *SetProperty[E]) Remove(element E) error {
	return p.update(func(current map[E]struct{}) (map[E]struct{}, error) {
		if _, ok := current[element]; !ok {
			return nil, errUnchanged
		}
		next := maps.Clone(current)
		delete(next, element)
		return next, nil
	})
}

func (p *SetProperty[E]) Validate() error {
	var elements error
	for element := range p.Get() {
		elements = multierr.Append(elements, validateElement(p.valueProperty, fmt.Sprintf("{%v}", element), element))
	}
	return validateContainer(p.Name(), p.Base.Validate(), elements)
}

func (p *SetProperty[E]) ReadOnly() Readable[map[E]struct{}] {
	return readOnlyView[map[E]struct{}]{p}
}
