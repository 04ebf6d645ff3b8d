package property

import (
	"fmt"
	"reflect"
)

var _ WritableObject = (*ObjectProperty)(nil)

type ReadableObject interface {
	Readable[any]
}

type WritableObject interface {
	Writable[any]
}

// ObjectProperty holds a value of a type chosen at construction. It is the
// parametric property: one implementation serves any value type.
type ObjectProperty struct {
	*Base[any]
}

// NewObjectProperty creates a property accepting values assignable to
// valueType. A nil valueType accepts any value.
func NewObjectProperty(name string, valueType reflect.Type, metadata Metadata[any]) *ObjectProperty {
	if valueType == nil {
		valueType = reflect.TypeFor[any]()
	}
	return &ObjectProperty{Base: newBase(name, valueType, metadata)}
}

func (p *ObjectProperty) Set(value any) error {
	if err := p.check(value); err != nil {
		return err
	}
	return p.Base.Set(value)
}

func (p *ObjectProperty) SetAny(value any) error {
	return p.Set(value)
}

func (p *ObjectProperty) ReadOnly() Readable[any] {
	return readOnlyView[any]{p}
}

func (p *ObjectProperty) initialize(value any) error {
	if err := p.check(value); err != nil {
		return err
	}
	return p.Base.initialize(value)
}

func (p *ObjectProperty) check(value any) error {
	if value == nil {
		return nil
	}
	if t := reflect.TypeOf(value); !t.AssignableTo(p.ValueType()) {
		return fmt.Errorf("%w: %s expects %s, got %s", ErrTypeMismatch, p.Name(), p.ValueType(), t)
	}
	return nil
}
