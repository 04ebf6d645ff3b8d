package builder

import (
	"fmt"
	"maps"

	"github.com/zeusync/property/pkg/property"
	"github.com/zeusync/property/pkg/property/validation"
)

// Prototype is implemented by every builder. Container builders use it to
// build the property describing their elements.
type Prototype[V any] interface {
	prototype(name string) (property.Readable[V], error)
}

// Builder is the shared base of all property builders. V is the value type,
// P the built property, VB the validator builder flavour and S the concrete
// builder returned by the fluent setters.
//
// A Builder is single-owner and not safe for concurrent use. Build is
// terminal.
type Builder[V any, P property.Writable[V], VB validation.Source[V], S any] struct {
	parent    *Builders
	self      S
	newVB     func(S) VB
	construct func(name string, md property.Metadata[V]) (P, error)

	validator    VB
	hasValidator bool
	readOnly     bool
	value        V
	hasValue     bool
	attributes   map[string]any
	built        bool
}

func (b *Builder[V, P, VB, S]) init(parent *Builders, self S, newVB func(S) VB, construct func(string, property.Metadata[V]) (P, error)) {
	b.parent = parent
	b.self = self
	b.newVB = newVB
	b.construct = construct
}

// ReadOnly makes the built property reject writes.
func (b *Builder[V, P, VB, S]) ReadOnly() S {
	b.readOnly = true
	return b.self
}

// Value sets the initial value. It is applied even to read-only properties.
func (b *Builder[V, P, VB, S]) Value(value V) S {
	b.value = value
	b.hasValue = true
	return b.self
}

func (b *Builder[V, P, VB, S]) Attribute(key string, value any) S {
	if b.attributes == nil {
		b.attributes = make(map[string]any)
	}
	b.attributes[key] = value
	return b.self
}

// Validator adds a single rule.
func (b *Builder[V, P, VB, S]) Validator(v validation.Validator[V]) S {
	b.WithValidator().Add(v)
	return b.self
}

// WithValidator returns the validator builder of this property. Its And
// method returns to the property builder.
func (b *Builder[V, P, VB, S]) WithValidator() VB {
	if !b.hasValidator {
		b.validator = b.newVB(b.self)
		b.hasValidator = true
	}
	return b.validator
}

// Build creates the property and registers it with the parent. The name is
// claimed before anything is built, so a duplicate name leaves the builder and
// its sub-builders untouched.
func (b *Builder[V, P, VB, S]) Build(name string) (P, error) {
	var zero P
	if err := b.check(name); err != nil {
		return zero, err
	}
	if err := b.parent.reserve(name); err != nil {
		return zero, err
	}
	p, err := b.create(name)
	if err != nil {
		b.parent.release(name)
		return zero, err
	}
	b.parent.commit(p)
	b.built = true
	return p, nil
}

// MustBuild is Build that panics on error.
func (b *Builder[V, P, VB, S]) MustBuild(name string) P {
	p, err := b.Build(name)
	if err != nil {
		panic(err)
	}
	return p
}

// BuildPrototype creates the property without registering it with the parent.
func (b *Builder[V, P, VB, S]) BuildPrototype(name string) (P, error) {
	var zero P
	p, err := b.create(name)
	if err != nil {
		return zero, err
	}
	b.built = true
	return p, nil
}

func (b *Builder[V, P, VB, S]) prototype(name string) (property.Readable[V], error) {
	p, err := b.BuildPrototype(name)
	if err != nil {
		return nil, err
	}
	return p, nil
}

func (b *Builder[V, P, VB, S]) check(name string) error {
	if b.built {
		return fmt.Errorf("%w: %s", ErrAlreadyBuilt, name)
	}
	if name == "" {
		return ErrMissingName
	}
	return nil
}

func (b *Builder[V, P, VB, S]) create(name string) (P, error) {
	var zero P
	if err := b.check(name); err != nil {
		return zero, err
	}

	p, err := b.construct(name, b.metadata())
	if err != nil {
		return zero, err
	}
	if b.hasValue {
		if err = property.Initialize[V](p, b.value); err != nil {
			return zero, err
		}
	}
	return p, nil
}

func (b *Builder[V, P, VB, S]) metadata() property.Metadata[V] {
	opts := []property.MetadataOption[V]{
		property.WithReadOnly[V](b.readOnly),
		property.WithAttributes[V](maps.Clone(b.attributes)),
	}
	if b.hasValidator {
		opts = append(opts, property.WithValidator(b.validator.Validator()))
	}
	if b.parent != nil {
		opts = append(opts, property.WithOwner[V](b.parent))
	}
	return property.NewMetadata(opts...)
}
