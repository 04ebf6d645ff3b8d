package builder

import (
	"fmt"
	"slices"
	"sync"
	"sync/atomic"

	"github.com/zeusync/property/internal/core/observability/log"
	"github.com/zeusync/property/pkg/property"
	"github.com/zeusync/property/pkg/property/factory"
)

var _ property.Owner = (*Builders)(nil)

// Builders is the parent context of property builders. It owns every property
// built from it: once locked, all of them reject writes. Individual builders
// are single-owner; Builders itself is safe for concurrent use.
type Builders struct {
	registry *factory.Registry
	log      log.Log
	locked   atomic.Bool

	mx         sync.RWMutex
	properties []property.Property
	byName     map[string]property.Property
	reserved   map[string]struct{}
}

type Option func(*Builders)

// WithRegistry sets the registry used to resolve prototypes that were not
// configured explicitly, such as map keys.
func WithRegistry(r *factory.Registry) Option {
	return func(b *Builders) {
		b.registry = r
	}
}

func WithLogger(l log.Log) Option {
	return func(b *Builders) {
		b.log = l
	}
}

func New(opts ...Option) *Builders {
	b := &Builders{
		log:      log.Provide(),
		byName:   make(map[string]property.Property),
		reserved: make(map[string]struct{}),
	}
	for _, opt := range opts {
		opt(b)
	}
	b.log = b.log.Named("builder")
	return b
}

func (b *Builders) IsReadOnly() bool {
	return b.locked.Load()
}

// Lock makes every property owned by b read-only.
func (b *Builders) Lock() {
	if !b.locked.Swap(true) {
		b.log.Debug("builders locked", log.Int("properties", b.Len()))
	}
}

// Registry returns the registry of b, nil when b has none or b is nil.
func (b *Builders) Registry() *factory.Registry {
	if b == nil {
		return nil
	}
	return b.registry
}

// Properties returns the built properties in build order.
func (b *Builders) Properties() []property.Property {
	b.mx.RLock()
	defer b.mx.RUnlock()
	return slices.Clone(b.properties)
}

func (b *Builders) Property(name string) (property.Property, bool) {
	b.mx.RLock()
	defer b.mx.RUnlock()
	p, ok := b.byName[name]
	return p, ok
}

func (b *Builders) Len() int {
	b.mx.RLock()
	defer b.mx.RUnlock()
	return len(b.properties)
}

// Register adds properties built elsewhere, typically with BuildPrototype,
// to b. Either all of them are added, in order, or none is.
func (b *Builders) Register(props ...property.Property) error {
	if b == nil {
		return ErrMissingParent
	}

	b.mx.Lock()
	defer b.mx.Unlock()

	seen := make(map[string]struct{}, len(props))
	for _, p := range props {
		if _, ok := seen[p.Name()]; ok || b.taken(p.Name()) {
			return fmt.Errorf("%w: %s", ErrDuplicateProperty, p.Name())
		}
		seen[p.Name()] = struct{}{}
	}
	for _, p := range props {
		b.insert(p)
	}
	return nil
}

// reserve claims name for a build in progress so that a failing build never
// leaves a half registered property behind.
func (b *Builders) reserve(name string) error {
	if b == nil {
		return ErrMissingParent
	}

	b.mx.Lock()
	defer b.mx.Unlock()

	if b.taken(name) {
		return fmt.Errorf("%w: %s", ErrDuplicateProperty, name)
	}
	b.reserved[name] = struct{}{}
	return nil
}

func (b *Builders) release(name string) {
	b.mx.Lock()
	defer b.mx.Unlock()
	delete(b.reserved, name)
}

func (b *Builders) commit(p property.Property) {
	b.mx.Lock()
	defer b.mx.Unlock()
	delete(b.reserved, p.Name())
	b.insert(p)
}

func (b *Builders) taken(name string) bool {
	_, built := b.byName[name]
	_, pending := b.reserved[name]
	return built || pending
}

func (b *Builders) insert(p property.Property) {
	b.byName[p.Name()] = p
	b.properties = append(b.properties, p)
	b.log.Debug("property built", log.String("name", p.Name()), log.Stringer("type", p.ValueType()))
}
