package property

import (
	"maps"

	"github.com/zeusync/property/pkg/property/validation"
)

// Owner is the context a property belongs to. When the owner reports
// read-only, all of its properties reject writes.
type Owner interface {
	IsReadOnly() bool
}

// Metadata is the immutable side data attached to a property at
// construction.
type Metadata[V any] interface {
	Validator() validation.Validator[V]
	Owner() Owner
	IsReadOnly() bool
	Attribute(key string) (any, bool)
}

type noneMetadata[V any] struct{}

// None returns the shared metadata representing absence of metadata. The
// value is zero-sized, so it never allocates and always compares equal to
// itself.
func None[V any]() Metadata[V] {
	return noneMetadata[V]{}
}

// IsNone reports whether md is nil or the shared none metadata.
func IsNone[V any](md Metadata[V]) bool {
	if md == nil {
		return true
	}
	_, ok := md.(noneMetadata[V])
	return ok
}

func (noneMetadata[V]) Validator() validation.Validator[V] { return validation.None[V]() }
func (noneMetadata[V]) Owner() Owner                       { return nil }
func (noneMetadata[V]) IsReadOnly() bool                   { return false }
func (noneMetadata[V]) Attribute(string) (any, bool)       { return nil, false }

type metadata[V any] struct {
	validator  validation.Validator[V]
	owner      Owner
	readOnly   bool
	attributes map[string]any
}

// MetadataOption configures metadata created by NewMetadata.
type MetadataOption[V any] func(*metadata[V])

func WithValidator[V any](v validation.Validator[V]) MetadataOption[V] {
	return func(md *metadata[V]) {
		md.validator = v
	}
}

func WithOwner[V any](owner Owner) MetadataOption[V] {
	return func(md *metadata[V]) {
		md.owner = owner
	}
}

func WithReadOnly[V any](readOnly bool) MetadataOption[V] {
	return func(md *metadata[V]) {
		md.readOnly = readOnly
	}
}

func WithAttributes[V any](attributes map[string]any) MetadataOption[V] {
	return func(md *metadata[V]) {
		if md.attributes == nil {
			md.attributes = make(map[string]any, len(attributes))
		}
		maps.Copy(md.attributes, attributes)
	}
}

// NewMetadata creates metadata from opts. Without options, or when the options
// leave every field empty, the shared None instance is returned.
func NewMetadata[V any](opts ...MetadataOption[V]) Metadata[V] {
	if len(opts) == 0 {
		return None[V]()
	}

	md := &metadata[V]{}
	for _, opt := range opts {
		opt(md)
	}

	if validation.IsNone(md.validator) && md.owner == nil && !md.readOnly && len(md.attributes) == 0 {
		return None[V]()
	}
	if md.validator == nil {
		md.validator = validation.None[V]()
	}

	return md
}

func (md *metadata[V]) Validator() validation.Validator[V] { return md.validator }

func (md *metadata[V]) Owner() Owner { return md.owner }

func (md *metadata[V]) IsReadOnly() bool {
	return md.readOnly || (md.owner != nil && md.owner.IsReadOnly())
}

func (md *metadata[V]) Attribute(key string) (any, bool) {
	v, ok := md.attributes[key]
	return v, ok
}
