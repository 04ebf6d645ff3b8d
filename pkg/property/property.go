package property

import (
	"reflect"

	"github.com/zeusync/property/pkg/property/validation"
)

// Numeric is the set of built-in number types.
type Numeric = validation.Numeric

// Property is the type-erased read view implemented by every property.
type Property interface {
	// Name returns the property name.
	Name() string

	// ValueType returns the type of the wrapped value.
	ValueType() reflect.Type

	// IsReadOnly reports whether writes are currently rejected, either because
	// of the metadata flag or because the owner is read-only.
	IsReadOnly() bool

	// GetAny returns the current value as an interface.
	GetAny() any

	// Validate checks the current value against the metadata validator.
	Validate() error
}

// Readable is the read-only view of a property holding a V.
type Readable[V any] interface {
	Property

	// Get returns the current value.
	Get() V

	// Metadata returns the metadata supplied at construction.
	Metadata() Metadata[V]

	// Version is incremented on every successful write.
	Version() uint64

	// Subscribe registers fn to be called synchronously after every write,
	// in subscription order.
	Subscribe(fn func(oldValue, newValue V)) Subscription
}

// Writable is the read-write view of a property holding a V.
type Writable[V any] interface {
	Readable[V]

	// Set replaces the current value. It fails with ErrReadOnly when the
	// property is read-only.
	Set(value V) error

	// SetAny is the type-erased Set; it fails with ErrTypeMismatch when value
	// is not a V.
	SetAny(value any) error

	// ReadOnly returns a view of the property without write access.
	ReadOnly() Readable[V]
}

// Comparable is implemented by properties whose values are ordered.
type Comparable[V any] interface {
	Readable[V]

	// Compare returns -1, 0 or +1 comparing the current value with other.
	Compare(other V) int
}

// Container is the read view shared by list, set and map properties.
type Container[V any] interface {
	Readable[V]

	// Len returns the number of elements.
	Len() int

	// ComponentType returns the type of the contained elements.
	ComponentType() reflect.Type
}

type ReadableList[E any] interface {
	Container[[]E]
	At(index int) (E, bool)
	ValueProperty() Readable[E]
}

type WritableList[E any] interface {
	ReadableList[E]
	Writable[[]E]
	Append(values ...E) error
	RemoveAt(index int) error
}

type ReadableSet[E comparable] interface {
	Container[map[E]struct{}]
	Contains(element E) bool
	ValueProperty() Readable[E]
}

type WritableSet[E comparable] interface {
	ReadableSet[E]
	Writable[map[E]struct{}]
	Add(elements ...E) error
	Remove(element E) error
}

type ReadableMap[K comparable, V any] interface {
	Container[map[K]V]
	Lookup(key K) (V, bool)
	KeyType() reflect.Type
	KeyProperty() Readable[K]
	ValueProperty() Readable[V]
}

type WritableMap[K comparable, V any] interface {
	ReadableMap[K, V]
	Writable[map[K]V]
	Put(key K, value V) error
	Delete(key K) error
}
