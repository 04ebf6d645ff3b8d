package property

import (
	"errors"
	"fmt"
	"reflect"
	"sync"
	"sync/atomic"
)

var _ Writable[any] = (*Base[any])(nil)

// Base is the generic value slot every built-in property embeds. It is safe
// for concurrent use.
type Base[V any] struct {
	name        string
	valueType   reflect.Type
	metadata    Metadata[V]
	mx          sync.RWMutex   // protects value
	value       V              // current value
	version     atomic.Uint64  // incremented on every write
	subscribers subscribers[V] // change callbacks
}

// New creates a plain property holding a V. A nil metadata means None.
func New[V any](name string, metadata Metadata[V]) *Base[V] {
	return newBase(name, reflect.TypeFor[V](), metadata)
}

func newBase[V any](name string, valueType reflect.Type, metadata Metadata[V]) *Base[V] {
	if metadata == nil {
		metadata = None[V]()
	}
	return &Base[V]{
		name:      name,
		valueType: valueType,
		metadata:  metadata,
	}
}

func (b *Base[V]) Name() string {
	return b.name
}

func (b *Base[V]) ValueType() reflect.Type {
	return b.valueType
}

func (b *Base[V]) Metadata() Metadata[V] {
	return b.metadata
}

func (b *Base[V]) IsReadOnly() bool {
	return b.metadata.IsReadOnly()
}

func (b *Base[V]) Get() V {
	b.mx.RLock()
	defer b.mx.RUnlock()
	return b.value
}

func (b *Base[V]) GetAny() any {
	return b.Get()
}

func (b *Base[V]) Set(value V) error {
	return b.update(func(V) (V, error) { return value, nil })
}

func (b *Base[V]) SetAny(value any) error {
	typed, err := assertValue[V](b.name, value)
	if err != nil {
		return err
	}
	return b.Set(typed)
}

func (b *Base[V]) Version() uint64 {
	return b.version.Load()
}

func (b *Base[V]) Subscribe(fn func(oldValue, newValue V)) Subscription {
	return b.subscribers.add(fn)
}

// Validate runs the metadata validator against the current value.
func (b *Base[V]) Validate() error {
	if err := b.metadata.Validator().Validate(b.Get()); err != nil {
		return fmt.Errorf("property %s: %w", b.name, err)
	}
	return nil
}

func (b *Base[V]) ReadOnly() Readable[V] {
	return readOnlyView[V]{b}
}

func (b *Base[V]) String() string {
	return fmt.Sprintf("%s=%v", b.name, b.Get())
}

// errUnchanged is returned by an update function to skip the write.
var errUnchanged = errors.New("unchanged")

// update applies fn to the current value under the write lock and notifies
// subscribers once the lock is released.
func (b *Base[V]) update(fn func(current V) (V, error)) error {
	if b.IsReadOnly() {
		return fmt.Errorf("%w: %s", ErrReadOnly, b.name)
	}

	b.mx.Lock()
	oldValue := b.value
	newValue, err := fn(oldValue)
	if err != nil {
		b.mx.Unlock()
		if errors.Is(err, errUnchanged) {
			return nil
		}
		return err
	}
	b.value = newValue
	b.version.Add(1)
	b.mx.Unlock()

	b.subscribers.notify(oldValue, newValue)
	return nil
}

// initialize stores the initial value without the read-only check and
// without notifying.
func (b *Base[V]) initialize(value V) error {
	b.mx.Lock()
	b.value = value
	b.mx.Unlock()
	return nil
}

type initializer[V any] interface {
	initialize(value V) error
}

// Initialize stores the initial value of a freshly constructed property. Built-in
// properties accept it even when read-only; other implementations fall back to
// Set.
func Initialize[V any](p Readable[V], value V) error {
	if i, ok := p.(initializer[V]); ok {
		return i.initialize(value)
	}
	if w, ok := p.(Writable[V]); ok {
		return w.Set(value)
	}
	return fmt.Errorf("%w: %s cannot be initialized", ErrReadOnly, p.Name())
}

func assertValue[V any](name string, value any) (V, error) {
	var zero V
	if value == nil {
		return zero, nil
	}
	typed, ok := value.(V)
	if !ok {
		return zero, fmt.Errorf("%w: %s expects %s, got %T", ErrTypeMismatch, name, reflect.TypeFor[V](), value)
	}
	return typed, nil
}

// readOnlyView hides the write methods of a property.
type readOnlyView[V any] struct {
	p Readable[V]
}

func (v readOnlyView[V]) Name() string            { return v.p.Name() }
func (v readOnlyView[V]) ValueType() reflect.Type { return v.p.ValueType() }
func (v readOnlyView[V]) IsReadOnly() bool        { return true }
func (v readOnlyView[V]) GetAny() any             { return v.p.GetAny() }
func (v readOnlyView[V]) Validate() error         { return v.p.Validate() }
func (v readOnlyView[V]) Get() V                  { return v.p.Get() }
func (v readOnlyView[V]) Metadata() Metadata[V]   { return v.p.Metadata() }
func (v readOnlyView[V]) Version() uint64         { return v.p.Version() }
func (v readOnlyView[V]) String() string          { return fmt.Sprintf("%s=%v", v.p.Name(), v.p.Get()) }
func (v readOnlyView[V]) Subscribe(fn func(oldValue, newValue V)) Subscription {
	return v.p.Subscribe(fn)
}
