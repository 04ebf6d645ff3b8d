package property

import (
	"sync"

	"github.com/google/uuid"
)

// Subscription is the handle returned by Subscribe.
type Subscription interface {
	ID() string
	Cancel()
}

type subscriber[V any] struct {
	id string
	fn func(oldValue, newValue V)
}

// subscribers keeps callbacks in subscription order.
type subscribers[V any] struct {
	mx    sync.RWMutex
	items []subscriber[V]
}

func (s *subscribers[V]) add(fn func(oldValue, newValue V)) Subscription {
	s.mx.Lock()
	defer s.mx.Unlock()

	id := uuid.NewString()
	s.items = append(s.items, subscriber[V]{id: id, fn: fn})

	return &subscription{id: id, cancel: func() { s.remove(id) }}
}

func (s *subscribers[V]) remove(id string) {
	s.mx.Lock()
	defer s.mx.Unlock()

	for i, item := range s.items {
		if item.id == id {
			s.items = append(s.items[:i:i], s.items[i+1:]...)
			return
		}
	}
}

func (s *subscribers[V]) notify(oldValue, newValue V) {
	s.mx.RLock()
	batch := make([]subscriber[V], len(s.items))
	copy(batch, s.items)
	s.mx.RUnlock()

	for _, item := range batch {
		item.fn(oldValue, newValue)
	}
}

func (s *subscribers[V]) len() int {
	s.mx.RLock()
	defer s.mx.RUnlock()
	return len(s.items)
}

type subscription struct {
	id     string
	once   sync.Once
	cancel func()
}

func (s *subscription) ID() string {
	return s.id
}

func (s *subscription) Cancel() {
	s.once.Do(s.cancel)
}
