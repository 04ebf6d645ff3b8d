package builder

import (
	"cmp"
	"reflect"
	"time"

	"github.com/zeusync/property/pkg/property"
	"github.com/zeusync/property/pkg/property/validation"
)

func plain[V any, P any](ctor func(string, property.Metadata[V]) P) func(string, property.Metadata[V]) (P, error) {
	return func(name string, md property.Metadata[V]) (P, error) {
		return ctor(name, md), nil
	}
}

type StringBuilder struct {
	Builder[string, *property.StringProperty, *validation.String[*StringBuilder], *StringBuilder]
}

func (b *Builders) String() *StringBuilder {
	sb := &StringBuilder{}
	sb.init(b, sb, validation.NewString[*StringBuilder], plain(property.NewStringProperty))
	return sb
}

type BooleanBuilder struct {
	Builder[bool, *property.BooleanProperty, *validation.Object[bool, *BooleanBuilder], *BooleanBuilder]
}

func (b *Builders) Boolean() *BooleanBuilder {
	bb := &BooleanBuilder{}
	bb.init(b, bb, validation.NewObject[bool, *BooleanBuilder], plain(property.NewBooleanProperty))
	return bb
}

type NumberBuilder[N property.Numeric] struct {
	Builder[N, *property.NumberProperty[N], *validation.Number[N, *NumberBuilder[N]], *NumberBuilder[N]]
}

// Number returns a builder for a property holding an N.
func Number[N property.Numeric](b *Builders) *NumberBuilder[N] {
	nb := &NumberBuilder[N]{}
	nb.init(b, nb, validation.NewNumber[N, *NumberBuilder[N]], plain(property.NewNumberProperty[N]))
	return nb
}

func (b *Builders) Int() *NumberBuilder[int] {
	return Number[int](b)
}

func (b *Builders) Int64() *NumberBuilder[int64] {
	return Number[int64](b)
}

func (b *Builders) Float64() *NumberBuilder[float64] {
	return Number[float64](b)
}

type TimeBuilder struct {
	Builder[time.Time, *property.TimeProperty, *validation.Time[*TimeBuilder], *TimeBuilder]
}

func (b *Builders) Time() *TimeBuilder {
	tb := &TimeBuilder{}
	tb.init(b, tb, validation.NewTime[*TimeBuilder], plain(property.NewTimeProperty))
	return tb
}

type DurationBuilder struct {
	Builder[time.Duration, *property.DurationProperty, *validation.Number[time.Duration, *DurationBuilder], *DurationBuilder]
}

func (b *Builders) Duration() *DurationBuilder {
	db := &DurationBuilder{}
	db.init(b, db, validation.NewNumber[time.Duration, *DurationBuilder], plain(property.NewDurationProperty))
	return db
}

// ObjectBuilder builds a property for values of a type chosen with Type.
type ObjectBuilder struct {
	Builder[any, *property.ObjectProperty, *validation.Object[any, *ObjectBuilder], *ObjectBuilder]
	valueType reflect.Type
}

func (b *Builders) Object() *ObjectBuilder {
	ob := &ObjectBuilder{}
	ob.init(b, ob, validation.NewObject[any, *ObjectBuilder], ob.newObject)
	return ob
}

// Type restricts the values the property accepts. Without it any value is
// accepted.
func (b *ObjectBuilder) Type(valueType reflect.Type) *ObjectBuilder {
	b.valueType = valueType
	return b
}

func (b *ObjectBuilder) newObject(name string, md property.Metadata[any]) (*property.ObjectProperty, error) {
	return property.NewObjectProperty(name, b.valueType, md), nil
}

// ValueBuilder builds a plain property for any value type.
type ValueBuilder[V any] struct {
	Builder[V, *property.Base[V], *validation.Object[V, *ValueBuilder[V]], *ValueBuilder[V]]
}

func Value[V any](b *Builders) *ValueBuilder[V] {
	vb := &ValueBuilder[V]{}
	vb.init(b, vb, validation.NewObject[V, *ValueBuilder[V]], plain(property.New[V]))
	return vb
}

// OrderedBuilder builds a plain property for ordered values, with range rules
// on its validator.
type OrderedBuilder[V cmp.Ordered] struct {
	Builder[V, *property.Base[V], *validation.Comparable[V, *OrderedBuilder[V]], *OrderedBuilder[V]]
}

func Ordered[V cmp.Ordered](b *Builders) *OrderedBuilder[V] {
	ob := &OrderedBuilder[V]{}
	ob.init(b, ob, validation.NewComparable[V, *OrderedBuilder[V]], plain(property.New[V]))
	return ob
}
