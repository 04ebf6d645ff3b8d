package schema

import (
	"context"
	"fmt"
	"regexp"
	"runtime"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/zeusync/property/pkg/property"
	"github.com/zeusync/property/pkg/property/builder"
	"github.com/zeusync/property/pkg/property/validation"
)

// Build creates every property of doc through b. Definitions are independent
// and built concurrently; the result follows document order. The properties
// are registered with b only once all of them are built, so a failing document
// leaves b unchanged.
func Build(ctx context.Context, b *builder.Builders, doc *Document) ([]property.Property, error) {
	if err := doc.Validate(); err != nil {
		return nil, err
	}

	out := make([]property.Property, len(doc.Properties))
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(runtime.GOMAXPROCS(0))
	for i, def := range doc.Properties {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			p, err := buildDefinition(b, def)
			if err != nil {
				return fmt.Errorf("property %s: %w", def.Name, err)
			}
			out[i] = p
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	if err := b.Register(out...); err != nil {
		return nil, err
	}
	return out, nil
}

func buildDefinition(b *builder.Builders, def Definition) (property.Property, error) {
	switch def.Kind {
	case KindObject:
		return buildObject(b, def)
	case KindList:
		return element(def.Element).list(b, def)
	case KindSet:
		return element(def.Element).set(b, def)
	case KindMap:
		key := KindString
		if def.Key != nil {
			key = def.Key.Kind
		}
		return element(def.Element).mapOf(b, def, key)
	}
	k, ok := kinds[def.Kind]
	if !ok {
		return nil, fmt.Errorf("%w: unknown kind %q", ErrInvalidDocument, def.Kind)
	}
	return k.scalar(b, def)
}

func element(def *Definition) elementKind {
	if def == nil {
		return invalidKind{}
	}
	if k, ok := kinds[def.Kind]; ok {
		return k
	}
	return invalidKind{def.Kind}
}

// elementKind builds properties whose value or element type is fixed by a
// scalar kind.
type elementKind interface {
	scalar(b *builder.Builders, def Definition) (property.Property, error)
	list(b *builder.Builders, def Definition) (property.Property, error)
	set(b *builder.Builders, def Definition) (property.Property, error)
	mapOf(b *builder.Builders, def Definition, key Kind) (property.Property, error)
}

var kinds = map[Kind]elementKind{
	KindString:   stringKind,
	KindBool:     boolKind,
	KindInt:      intKind,
	KindInt64:    int64Kind,
	KindFloat64:  float64Kind,
	KindTime:     timeKind,
	KindDuration: durationKind,
}

var (
	stringKind   = newKind[string, *property.StringProperty](toString, stringBuilder)
	boolKind     = newKind[bool, *property.BooleanProperty](toBool, booleanBuilder)
	intKind      = newKind[int, *property.NumberProperty[int]](toNumber[int], numberBuilder[int])
	int64Kind    = newKind[int64, *property.NumberProperty[int64]](toNumber[int64], numberBuilder[int64])
	float64Kind  = newKind[float64, *property.NumberProperty[float64]](toNumber[float64], numberBuilder[float64])
	timeKind     = newKind[time.Time, *property.TimeProperty](toTime, timeBuilder)
	durationKind = newKind[time.Duration, *property.DurationProperty](toDuration, durationBuilder)
)

type scalarBuilder[E any, P any] interface {
	builder.Prototype[E]
	BuildPrototype(name string) (P, error)
}

type kind[E comparable] struct {
	convert   func(any) (E, error)
	prototype func(*builder.Builders, Definition) (builder.Prototype[E], error)
	create    func(*builder.Builders, Definition) (property.Property, error)
}

func newKind[E comparable, P property.Property, B scalarBuilder[E, P]](convert func(any) (E, error), configure func(*builder.Builders, Definition) (B, error)) kind[E] {
	return kind[E]{
		convert: convert,
		prototype: func(b *builder.Builders, def Definition) (builder.Prototype[E], error) {
			sb, err := configure(b, def)
			if err != nil {
				return nil, err
			}
			return sb, nil
		},
		create: func(b *builder.Builders, def Definition) (property.Property, error) {
			sb, err := configure(b, def)
			if err != nil {
				return nil, err
			}
			return erase(sb.BuildPrototype(def.Name))
		},
	}
}

func (k kind[E]) scalar(b *builder.Builders, def Definition) (property.Property, error) {
	return k.create(b, def)
}

func (k kind[E]) list(b *builder.Builders, def Definition) (property.Property, error) {
	value, err := k.prototype(b, *def.Element)
	if err != nil {
		return nil, err
	}

	lb := builder.List[E](b).ValueBuilder(value)
	configure(lb, def)
	collectionRules(lb.WithValidator(), def.Rules)
	if err = initial(lb, def.Value, func(v any) ([]E, error) { return toSlice(v, k.convert) }); err != nil {
		return nil, err
	}
	return erase(lb.BuildPrototype(def.Name))
}

func (k kind[E]) set(b *builder.Builders, def Definition) (property.Property, error) {
	value, err := k.prototype(b, *def.Element)
	if err != nil {
		return nil, err
	}

	sb := builder.Set[E](b).ValueBuilder(value)
	configure(sb, def)
	collectionRules(sb.WithValidator(), def.Rules)
	if err = initial(sb, def.Value, func(v any) (map[E]struct{}, error) { return toSet(v, k.convert) }); err != nil {
		return nil, err
	}
	return erase(sb.BuildPrototype(def.Name))
}

func (k kind[E]) mapOf(b *builder.Builders, def Definition, key Kind) (property.Property, error) {
	switch key {
	case KindString:
		return buildMap(b, def, stringKind, k)
	case KindInt:
		return buildMap(b, def, intKind, k)
	case KindInt64:
		return buildMap(b, def, int64Kind, k)
	}
	return nil, fmt.Errorf("%w: unsupported key kind %q", ErrInvalidDocument, key)
}

func buildMap[K comparable, V comparable](b *builder.Builders, def Definition, key kind[K], value kind[V]) (property.Property, error) {
	mb := builder.Map[K, V](b)

	vp, err := value.prototype(b, *def.Element)
	if err != nil {
		return nil, err
	}
	mb.ValueBuilder(vp)

	// Without a key definition the key prototype comes from the registry.
	if def.Key != nil {
		kp, err := key.prototype(b, *def.Key)
		if err != nil {
			return nil, err
		}
		mb.KeyBuilder(kp)
	}

	configure(mb, def)
	collectionRules(mb.WithValidator(), def.Rules)
	if err = initial(mb, def.Value, func(v any) (map[K]V, error) { return toMap(v, key.convert, value.convert) }); err != nil {
		return nil, err
	}
	return erase(mb.BuildPrototype(def.Name))
}

type invalidKind struct{ kind Kind }

func (k invalidKind) err() error {
	return fmt.Errorf("%w: unsupported element kind %q", ErrInvalidDocument, k.kind)
}

func (k invalidKind) scalar(*builder.Builders, Definition) (property.Property, error) {
	return nil, k.err()
}

func (k invalidKind) list(*builder.Builders, Definition) (property.Property, error) {
	return nil, k.err()
}

func (k invalidKind) set(*builder.Builders, Definition) (property.Property, error) {
	return nil, k.err()
}

func (k invalidKind) mapOf(*builder.Builders, Definition, Kind) (property.Property, error) {
	return nil, k.err()
}

func erase[P property.Property](p P, err error) (property.Property, error) {
	if err != nil {
		return nil, err
	}
	return p, nil
}

type configurable[S any] interface {
	ReadOnly() S
	Attribute(key string, value any) S
}

func configure[S configurable[S]](s S, def Definition) {
	if def.ReadOnly {
		s.ReadOnly()
	}
	for key, value := range def.Attributes {
		s.Attribute(key, value)
	}
}

type valued[V any, S any] interface {
	Value(value V) S
}

func initial[V any, S valued[V, S]](s S, value any, convert func(any) (V, error)) error {
	if value == nil {
		return nil
	}
	v, err := convert(value)
	if err != nil {
		return fmt.Errorf("value: %w", err)
	}
	s.Value(v)
	return nil
}

func collectionRules[V any, P any](v *validation.Collection[V, P], r Rules) {
	if r.Mandatory {
		v.Mandatory()
	}
	if r.NotEmpty {
		v.NotEmpty()
	}
	if r.MinSize != nil || r.MaxSize != nil {
		v.Size(deref(r.MinSize, 0), deref(r.MaxSize, -1))
	}
}

func deref[T any](p *T, fallback T) T {
	if p == nil {
		return fallback
	}
	return *p
}

func stringBuilder(b *builder.Builders, def Definition) (*builder.StringBuilder, error) {
	sb := b.String()
	configure(sb, def)

	r, v := def.Rules, sb.WithValidator()
	if r.Mandatory {
		v.Mandatory()
	}
	if r.NotEmpty {
		v.NotEmpty()
	}
	if r.MinLength != nil || r.MaxLength != nil {
		v.Length(deref(r.MinLength, 0), deref(r.MaxLength, -1))
	}
	if r.Pattern != "" {
		re, err := regexp.Compile(r.Pattern)
		if err != nil {
			return nil, fmt.Errorf("%w: pattern: %w", ErrInvalidDocument, err)
		}
		v.Pattern(re)
	}
	return sb, initial(sb, def.Value, toString)
}

func booleanBuilder(b *builder.Builders, def Definition) (*builder.BooleanBuilder, error) {
	bb := b.Boolean()
	configure(bb, def)
	if def.Rules.Mandatory {
		bb.WithValidator().Mandatory()
	}
	return bb, initial(bb, def.Value, toBool)
}

func numberBuilder[N property.Numeric](b *builder.Builders, def Definition) (*builder.NumberBuilder[N], error) {
	nb := builder.Number[N](b)
	configure(nb, def)

	r, v := def.Rules, nb.WithValidator()
	if r.Mandatory {
		v.Mandatory()
	}
	if r.Min != nil {
		lo, err := bound[N]("min", *r.Min)
		if err != nil {
			return nil, err
		}
		v.Min(lo)
	}
	if r.Max != nil {
		hi, err := bound[N]("max", *r.Max)
		if err != nil {
			return nil, err
		}
		v.Max(hi)
	}
	return nb, initial(nb, def.Value, toNumber[N])
}

func bound[N property.Numeric](rule string, value float64) (N, error) {
	n, err := fromFloat[N](value)
	if err != nil {
		return 0, fmt.Errorf("%w: %s: %w", ErrInvalidDocument, rule, err)
	}
	return n, nil
}

func timeBuilder(b *builder.Builders, def Definition) (*builder.TimeBuilder, error) {
	tb := b.Time()
	configure(tb, def)

	r, v := def.Rules, tb.WithValidator()
	if r.Mandatory {
		v.Mandatory()
	}
	if r.Past {
		v.Past()
	}
	if r.Future {
		v.Future()
	}
	return tb, initial(tb, def.Value, toTime)
}

// durationBuilder reads min and max as seconds.
func durationBuilder(b *builder.Builders, def Definition) (*builder.DurationBuilder, error) {
	db := b.Duration()
	configure(db, def)

	r, v := def.Rules, db.WithValidator()
	if r.Mandatory {
		v.Mandatory()
	}
	if r.Min != nil {
		v.Min(time.Duration(*r.Min * float64(time.Second)))
	}
	if r.Max != nil {
		v.Max(time.Duration(*r.Max * float64(time.Second)))
	}
	return db, initial(db, def.Value, toDuration)
}

func buildObject(b *builder.Builders, def Definition) (property.Property, error) {
	ob := b.Object()
	configure(ob, def)
	if def.Rules.Mandatory {
		ob.WithValidator().Mandatory()
	}
	if def.Value != nil {
		ob.Value(def.Value)
	}
	return erase(ob.BuildPrototype(def.Name))
}
