package mem

import (
	"errors"
	"sync"
	"time"
)

var ErrKeyNotFound = errors.New("key not found or expired")

// Store keeps values in process memory until their TTL runs out.
type Store[V any] interface {
	Set(key string, value V, ttl time.Duration)

	// Peek reads without touching the expiry.
	Peek(key string) (V, bool)

	// Update runs fn on the live value under the write lock and stores the
	// result with a fresh TTL. fn errors leave the stored value untouched.
	Update(key string, ttl time.Duration, fn func(V) (V, error)) (V, error)

	// Sweep drops expired entries and reports how many went away.
	Sweep() int
}

type entry[V any] struct {
	value     V
	expiresAt time.Time
}

type TTLStore[V any] struct {
	mu   sync.RWMutex
	data map[string]entry[V]
	now  func() time.Time
}

func NewTTLStore[V any]() *TTLStore[V] {
	return &TTLStore[V]{
		data: make(map[string]entry[V]),
		now:  time.Now,
	}
}

// WithClock swaps the time source; tests use it to expire entries.
func (s *TTLStore[V]) WithClock(now func() time.Time) *TTLStore[V] {
	s.now = now
	return s
}

func (s *TTLStore[V]) Set(key string, value V, ttl time.Duration) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.data[key] = entry[V]{value: value, expiresAt: s.now().Add(ttl)}
}

func (s *TTLStore[V]) Peek(key string) (V, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	e, ok := s.data[key]
	if !ok || s.now().After(e.expiresAt) {
		var zero V
		return zero, false
	}
	return e.value, true
}

func (s *TTLStore[V]) Update(key string, ttl time.Duration, fn func(V) (V, error)) (V, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var zero V
	e, ok := s.data[key]
	if !ok {
		return zero, ErrKeyNotFound
	}
	if s.now().After(e.expiresAt) {
		delete(s.data, key)
		return zero, ErrKeyNotFound
	}

	next, err := fn(e.value)
	if err != nil {
		return zero, err
	}
	s.data[key] = entry[V]{value: next, expiresAt: s.now().Add(ttl)}
	return next, nil
}

func (s *TTLStore[V]) Sweep() int {
	s.mu.Lock()
	defer s.mu.Unlock()

	removed := 0
	now := s.now()
	for key, e := range s.data {
		if now.After(e.expiresAt) {
			delete(s.data, key)
			removed++
		}
	}
	return removed
}
