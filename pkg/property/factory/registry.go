package factory

import (
	"fmt"
	"maps"
	"reflect"
	"slices"
	"strings"
	"sync"
	"sync/atomic"

	"github.com/cespare/xxhash/v2"

	"github.com/zeusync/property/internal/core/observability/log"
	"github.com/zeusync/property/pkg/property"
)

var _ Lookup = (*Registry)(nil)

// tables is an immutable snapshot of the registry content.
type tables struct {
	byProperty map[reflect.Type]Factory
	byValue    map[reflect.Type]Factory
	factories  []Factory
}

func (t *tables) clone() *tables {
	return &tables{
		byProperty: maps.Clone(t.byProperty),
		byValue:    maps.Clone(t.byValue),
		factories:  slices.Clone(t.factories),
	}
}

// Registry maps property types and value types to factories. It is populated
// during startup and frozen afterwards. Lookups never lock: they read the
// current immutable snapshot.
type Registry struct {
	mu      sync.Mutex // serializes writers
	state   atomic.Pointer[tables]
	frozen  atomic.Bool
	log     log.Log
	metrics *Metrics
}

type Option func(*Registry)

func WithLogger(l log.Log) Option {
	return func(r *Registry) {
		r.log = l
	}
}

func WithMetrics(m *Metrics) Option {
	return func(r *Registry) {
		r.metrics = m
	}
}

func NewRegistry(opts ...Option) *Registry {
	r := &Registry{log: log.Provide()}
	for _, opt := range opts {
		opt(r)
	}
	r.log = r.log.Named("factory")
	r.state.Store(&tables{
		byProperty: make(map[reflect.Type]Factory),
		byValue:    make(map[reflect.Type]Factory),
	})
	return r
}

// Register adds f under its readable, writable and implementation types and,
// when f is pinned to one, its value type. Either every key is inserted or
// none is.
func (r *Registry) Register(f Factory) error {
	if err := validate(f); err != nil {
		return err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if r.frozen.Load() {
		return fmt.Errorf("%w: cannot register %s", ErrFrozen, describe(f))
	}

	current := r.state.Load()
	keys := propertyKeys(f)
	for _, key := range keys {
		if existing, ok := current.byProperty[key]; ok {
			return fmt.Errorf("%w: %s already registered for %s by %s", ErrDuplicateFactory, key, describe(existing), describe(f))
		}
	}
	valueType := f.ValueType()
	if valueType != nil {
		if existing, ok := current.byValue[valueType]; ok {
			return fmt.Errorf("%w: value type %s already registered by %s", ErrDuplicateFactory, valueType, describe(existing))
		}
	}

	next := current.clone()
	for _, key := range keys {
		next.byProperty[key] = f
	}
	if valueType != nil {
		next.byValue[valueType] = f
	}
	next.factories = append(next.factories, f)
	r.state.Store(next)

	r.metrics.setRegistered(len(next.factories))
	r.log.Debug("factory registered", log.String("factory", describe(f)), log.Int("keys", len(keys)))
	return nil
}

// MustRegister registers every factory and panics on the first error.
func (r *Registry) MustRegister(fs ...Factory) {
	for _, f := range fs {
		if err := r.Register(f); err != nil {
			panic(err)
		}
	}
}

// Freeze rejects further registrations. It is safe to call more than once.
func (r *Registry) Freeze() {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.frozen.Swap(true) {
		return
	}
	r.log.Info("registry frozen",
		log.Int("factories", r.Len()),
		log.String("fingerprint", fmt.Sprintf("%016x", r.Fingerprint())))
}

func (r *Registry) IsFrozen() bool {
	return r.frozen.Load()
}

func (r *Registry) ForPropertyType(propertyType reflect.Type) (Factory, bool) {
	f, ok := r.state.Load().byProperty[propertyType]
	return f, ok
}

func (r *Registry) ForValueType(valueType reflect.Type) (Factory, bool) {
	f, ok := r.state.Load().byValue[valueType]
	return f, ok
}

// Factory resolves the factory for propertyType and valueType. See Resolve.
func (r *Registry) Factory(propertyType, valueType reflect.Type) (Factory, bool) {
	f, outcome := resolve(r, propertyType, valueType)
	r.metrics.observe(outcome)
	return f, outcome != OutcomeMiss
}

// RequiredFactory is Factory with a *NotFoundError on a miss.
func (r *Registry) RequiredFactory(propertyType, valueType reflect.Type) (Factory, error) {
	f, ok := r.Factory(propertyType, valueType)
	if !ok {
		return nil, &NotFoundError{PropertyType: propertyType, ValueType: valueType}
	}
	return f, nil
}

// Create resolves the required factory and creates a new property. A nil
// metadata means none.
func (r *Registry) Create(propertyType, valueType reflect.Type, name string, metadata any) (property.Property, error) {
	f, err := r.RequiredFactory(propertyType, valueType)
	if err != nil {
		return nil, err
	}
	return f.New(name, valueType, metadata)
}

// Factories returns the registered factories ordered by implementation type.
func (r *Registry) Factories() []Factory {
	out := slices.Clone(r.state.Load().factories)
	slices.SortFunc(out, func(a, b Factory) int {
		return strings.Compare(describe(a), describe(b))
	})
	return out
}

func (r *Registry) Len() int {
	return len(r.state.Load().factories)
}

// Fingerprint hashes the registry content. Two registries holding the same
// factories have the same fingerprint regardless of registration order.
func (r *Registry) Fingerprint() uint64 {
	d := xxhash.New()
	for _, f := range r.Factories() {
		_, _ = d.WriteString(describe(f))
		_, _ = d.WriteString("\n")
	}
	return d.Sum64()
}

func propertyKeys(f Factory) []reflect.Type {
	keys := make([]reflect.Type, 0, 3)
	for _, t := range []reflect.Type{f.ReadableType(), f.WritableType(), f.ImplementationType()} {
		if !slices.Contains(keys, t) {
			keys = append(keys, t)
		}
	}
	return keys
}

func validate(f Factory) error {
	if f == nil {
		return fmt.Errorf("%w: nil factory", ErrInvalidFactory)
	}

	readable, writable, impl := f.ReadableType(), f.WritableType(), f.ImplementationType()
	switch {
	case readable == nil || writable == nil || impl == nil:
		return fmt.Errorf("%w: %T has a nil type", ErrInvalidFactory, f)
	case readable.Kind() != reflect.Interface:
		return fmt.Errorf("%w: readable type %s is not an interface", ErrInvalidFactory, readable)
	case writable.Kind() != reflect.Interface:
		return fmt.Errorf("%w: writable type %s is not an interface", ErrInvalidFactory, writable)
	case !writable.Implements(readable):
		return fmt.Errorf("%w: writable type %s does not extend %s", ErrInvalidFactory, writable, readable)
	case !impl.Implements(writable):
		return fmt.Errorf("%w: %s does not implement %s", ErrInvalidFactory, impl, writable)
	}
	return nil
}
