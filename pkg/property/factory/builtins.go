package factory

import (
	"fmt"
	"reflect"
	"time"

	"go.uber.org/multierr"

	"github.com/zeusync/property/pkg/property"
	"github.com/zeusync/property/pkg/property/validation"
)

// scalar adapts a constructor that ignores the value type.
func scalar[V any, P property.Writable[V]](ctor func(name string, md property.Metadata[V]) P) Constructor[V, P] {
	return func(name string, _ reflect.Type, md property.Metadata[V]) P {
		return ctor(name, md)
	}
}

func String() *Descriptor[string, *property.StringProperty] {
	return Define(
		reflect.TypeFor[property.ReadableString](),
		reflect.TypeFor[property.WritableString](),
		scalar(property.NewStringProperty),
	)
}

func Boolean() *Descriptor[bool, *property.BooleanProperty] {
	return Define(
		reflect.TypeFor[property.ReadableBoolean](),
		reflect.TypeFor[property.WritableBoolean](),
		scalar(property.NewBooleanProperty),
	)
}

func Number[N property.Numeric]() *Descriptor[N, *property.NumberProperty[N]] {
	return Define(
		reflect.TypeFor[property.ReadableNumber[N]](),
		reflect.TypeFor[property.WritableNumber[N]](),
		scalar(property.NewNumberProperty[N]),
	)
}

func Time() *Descriptor[time.Time, *property.TimeProperty] {
	return Define(
		reflect.TypeFor[property.ReadableTime](),
		reflect.TypeFor[property.WritableTime](),
		scalar(property.NewTimeProperty),
	)
}

func Duration() *Descriptor[time.Duration, *property.DurationProperty] {
	return Define(
		reflect.TypeFor[property.ReadableDuration](),
		reflect.TypeFor[property.WritableDuration](),
		scalar(property.NewDurationProperty),
	)
}

// Object is the parametric factory: the created property holds values of the
// type passed to New.
func Object() *Descriptor[any, *property.ObjectProperty] {
	return DefineParametric[any, *property.ObjectProperty](
		reflect.TypeFor[property.ReadableObject](),
		reflect.TypeFor[property.WritableObject](),
		property.NewObjectProperty,
	)
}

// List is the parametric list factory. The value type passed to New is the
// element type; without one the list holds any value.
func List() *Descriptor[[]any, *property.ListProperty[any]] {
	return DefineParametric[[]any, *property.ListProperty[any]](
		reflect.TypeFor[property.ReadableList[any]](),
		reflect.TypeFor[property.WritableList[any]](),
		func(name string, elementType reflect.Type, md property.Metadata[[]any]) *property.ListProperty[any] {
			return property.NewListProperty[any](name, element(name+".value", elementType, reflect.TypeFor[[]any]()), md)
		},
	)
}

// Map is the parametric factory of string keyed maps. The value type passed
// to New is the type of the map values.
func Map() *Descriptor[map[string]any, *property.MapProperty[string, any]] {
	return DefineParametric[map[string]any, *property.MapProperty[string, any]](
		reflect.TypeFor[property.ReadableMap[string, any]](),
		reflect.TypeFor[property.WritableMap[string, any]](),
		func(name string, valueType reflect.Type, md property.Metadata[map[string]any]) *property.MapProperty[string, any] {
			key := property.NewStringProperty(name+".key", property.None[string]())
			value := element(name+".value", valueType, reflect.TypeFor[map[string]any]())
			return property.NewMapProperty[string, any](name, key, value, md)
		},
	)
}

// element returns the prototype of container elements of type t. It rejects
// elements of another type on validation. container is the default value type
// of the factory and stands for no element type.
func element(name string, t, container reflect.Type) *property.ObjectProperty {
	if t == nil || t == container {
		return property.NewObjectProperty(name, nil, property.None[any]())
	}
	check := validation.Predicate("element-type", "must be of type "+t.String(), func(v any) bool {
		return v != nil && reflect.TypeOf(v).AssignableTo(t)
	})
	return property.NewObjectProperty(name, t, property.NewMetadata(property.WithValidator(check)))
}

// RegisterBuiltins registers the factories of the built-in property types.
func RegisterBuiltins(r *Registry) error {
	return multierr.Combine(
		r.Register(String()),
		r.Register(Boolean()),
		r.Register(Number[int]()),
		r.Register(Number[int32]()),
		r.Register(Number[int64]()),
		r.Register(Number[uint]()),
		r.Register(Number[float32]()),
		r.Register(Number[float64]()),
		r.Register(Time()),
		r.Register(Duration()),
		r.Register(Object()),
		r.Register(List()),
		r.Register(Map()),
	)
}

// NewDefaultRegistry returns a frozen registry holding the built-in factories.
func NewDefaultRegistry(opts ...Option) (*Registry, error) {
	r := NewRegistry(opts...)
	if err := RegisterBuiltins(r); err != nil {
		return nil, err
	}
	r.Freeze()
	return r, nil
}

// Create creates a property through the factory registered for P. valueType
// may be nil when the factory is pinned to a value type.
func Create[P property.Property](r *Registry, valueType reflect.Type, name string, metadata any) (P, error) {
	var zero P
	p, err := r.Create(reflect.TypeFor[P](), valueType, name, metadata)
	if err != nil {
		return zero, err
	}
	typed, ok := p.(P)
	if !ok {
		return zero, fmt.Errorf("%w: factory created %T, not %s", property.ErrTypeMismatch, p, reflect.TypeFor[P]())
	}
	return typed, nil
}

// CreateValue creates a writable property through the factory registered for
// the value type V.
func CreateValue[V any](r *Registry, name string, metadata ...property.Metadata[V]) (property.Writable[V], error) {
	var md property.Metadata[V]
	if len(metadata) > 0 {
		md = metadata[0]
	}

	var mdAny any
	if md != nil {
		mdAny = md
	}
	p, err := r.Create(nil, reflect.TypeFor[V](), name, mdAny)
	if err != nil {
		return nil, err
	}
	w, ok := p.(property.Writable[V])
	if !ok {
		return nil, fmt.Errorf("%w: factory created %T, not a writable %s", property.ErrTypeMismatch, p, reflect.TypeFor[V]())
	}
	return w, nil
}
