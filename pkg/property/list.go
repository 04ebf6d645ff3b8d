package property

import (
	"fmt"
	"reflect"
	"slices"

	"go.uber.org/multierr"
)

var _ WritableList[string] = (*ListProperty[string])(nil)

// ListProperty holds an ordered sequence of E. Every mutation replaces the
// stored slice, so a slice returned by Get is never modified afterwards.
type ListProperty[E any] struct {
	*Base[[]E]
	valueProperty Readable[E]
}

// NewListProperty creates a list whose elements are described by
// valueProperty.
func NewListProperty[E any](name string, valueProperty Readable[E], metadata Metadata[[]E]) *ListProperty[E] {
	return &ListProperty[E]{
		Base:          New(name, metadata),
		valueProperty: valueProperty,
	}
}

func (p *ListProperty[E]) ValueProperty() Readable[E] {
	return p.valueProperty
}

func (p *ListProperty[E]) ComponentType() reflect.Type {
	return componentType(p.valueProperty)
}

func (p *ListProperty[E]) Len() int {
	return len(p.Get())
}

func (p *ListProperty[E]) At(index int) (E, bool) {
	values := p.Get()
	if index < 0 || index >= len(values) {
		var zero E
		return zero, false
	}
	return values[index], true
}

func (p *ListProperty[E]) Append(values ...E) error {
	if len(values) == 0 {
		return nil
	}
	return p.update(func(current []E) ([]E, error) {
		return append(slices.Clip(current), values...), nil
	})
}

func (p *ListProperty[E]) RemoveAt(index int) error {
	return p.update(func(current []E) ([]E, error) {
		if index < 0 || index >= len(current) {
			return nil, fmt.Errorf("%w: %s[%d], len %d", ErrOutOfRange, p.Name(), index, len(current))
		}
		return slices.Delete(slices.Clone(current), index, index+1), nil
	})
}

// Validate checks the list itself and then each element.
func (p *ListProperty[E]) Validate() error {
	var elements error
	for i, value := range p.Get() {
		elements = multierr.Append(elements, validateElement(p.valueProperty, fmt.Sprintf("[%d]", i), value))
	}
	return validateContainer(p.Name(), p.Base.Validate(), elements)
}

func (p *ListProperty[E]) ReadOnly() Readable[[]E] {
	return readOnlyView[[]E]{p}
}
