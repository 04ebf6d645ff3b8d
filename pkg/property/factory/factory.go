package factory

import (
	"fmt"
	"reflect"

	"github.com/zeusync/property/pkg/property"
)

// Factory creates properties of one implementation type. A factory is keyed
// in the registry by its readable, writable and implementation types and, when
// ValueType is non-nil, by its value type.
type Factory interface {
	// ValueType returns the value type the factory is pinned to, or nil when
	// the factory is parametric over the value type.
	ValueType() reflect.Type

	ReadableType() reflect.Type
	WritableType() reflect.Type
	ImplementationType() reflect.Type

	// New creates a fresh property. valueType may be nil for factories pinned
	// to a value type; metadata may be nil or a property.Metadata of the
	// factory's value type.
	New(name string, valueType reflect.Type, metadata any) (property.Property, error)
}

// Constructor builds a P for the given name, value type and metadata. The
// metadata is never nil.
type Constructor[V any, P property.Writable[V]] func(name string, valueType reflect.Type, metadata property.Metadata[V]) P

// Descriptor is the typed Factory implementation.
type Descriptor[V any, P property.Writable[V]] struct {
	valueType  reflect.Type
	readable   reflect.Type
	writable   reflect.Type
	construct  Constructor[V, P]
	parametric bool
}

// Define describes a factory pinned to the value type V.
func Define[V any, P property.Writable[V]](readable, writable reflect.Type, ctor Constructor[V, P]) *Descriptor[V, P] {
	return &Descriptor[V, P]{
		valueType: reflect.TypeFor[V](),
		readable:  readable,
		writable:  writable,
		construct: ctor,
	}
}

// DefineParametric describes a factory that accepts any value type chosen at
// creation time. It is never matched by value type.
func DefineParametric[V any, P property.Writable[V]](readable, writable reflect.Type, ctor Constructor[V, P]) *Descriptor[V, P] {
	d := Define(readable, writable, ctor)
	d.parametric = true
	return d
}

func (d *Descriptor[V, P]) ValueType() reflect.Type {
	if d.parametric {
		return nil
	}
	return d.valueType
}

func (d *Descriptor[V, P]) ReadableType() reflect.Type       { return d.readable }
func (d *Descriptor[V, P]) WritableType() reflect.Type       { return d.writable }
func (d *Descriptor[V, P]) ImplementationType() reflect.Type { return reflect.TypeFor[P]() }

func (d *Descriptor[V, P]) New(name string, valueType reflect.Type, metadata any) (property.Property, error) {
	var md property.Metadata[V]
	if metadata != nil {
		typed, ok := metadata.(property.Metadata[V])
		if !ok {
			return nil, fmt.Errorf("%w: factory %s expects metadata of %s, got %T",
				property.ErrTypeMismatch, d.ImplementationType(), d.valueType, metadata)
		}
		md = typed
	}
	return d.Create(name, valueType, md)
}

// Create is the typed form of New.
func (d *Descriptor[V, P]) Create(name string, valueType reflect.Type, metadata property.Metadata[V]) (P, error) {
	var zero P
	if valueType == nil {
		valueType = d.valueType
	}
	if !d.parametric && valueType != d.valueType {
		return zero, fmt.Errorf("%w: factory %s creates %s, not %s",
			property.ErrTypeMismatch, d.ImplementationType(), d.valueType, valueType)
	}
	if metadata == nil {
		metadata = property.None[V]()
	}
	return d.construct(name, valueType, metadata), nil
}

func (d *Descriptor[V, P]) String() string {
	return describe(d)
}

func describe(f Factory) string {
	vt := "*"
	if t := f.ValueType(); t != nil {
		vt = t.String()
	}
	return fmt.Sprintf("%s[%s]", f.ImplementationType(), vt)
}
