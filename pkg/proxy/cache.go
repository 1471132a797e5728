package proxy

import (
	"context"
	"sync"

	"github.com/nodeproxy/nodeproxy-go/pkg/model"
)

// slot holds the last known value of one attribute. Stores and future
// completions happen under mu, so the value in a slot always belongs to
// the operation that completed last.
type slot struct {
	mu    sync.RWMutex
	value any
	set   bool
}

func (s *slot) load() (any, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.value, s.set
}

func (s *slot) store(v any) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.value = v
	s.set = true
}

// AttributeCache maps attribute keys to their last known values. It never
// touches the network. Slots are created on first use and never removed.
type AttributeCache struct {
	mu    sync.RWMutex
	slots map[model.AttributeIdent]*slot
}

// NewAttributeCache creates an empty cache.
func NewAttributeCache() *AttributeCache {
	return &AttributeCache{slots: make(map[model.AttributeIdent]*slot)}
}

func (c *AttributeCache) slot(key model.AttributeKey) *slot {
	id := key.Ident()

	c.mu.RLock()
	s, ok := c.slots[id]
	c.mu.RUnlock()
	if ok {
		return s
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	if s, ok := c.slots[id]; ok {
		return s
	}
	s = &slot{}
	c.slots[id] = s
	return s
}

// Get returns the cached value of key. The boolean is false if the slot
// was never populated.
func (c *AttributeCache) Get(key model.AttributeKey) (any, bool) {
	c.mu.RLock()
	s, ok := c.slots[key.Ident()]
	c.mu.RUnlock()
	if !ok {
		return nil, false
	}
	return s.load()
}

// Set overwrites the cached value of key.
func (c *AttributeCache) Set(key model.AttributeKey, v any) {
	c.slot(key).store(v)
}

// Snapshot returns a copy of every populated slot.
func (c *AttributeCache) Snapshot() map[model.AttributeIdent]any {
	c.mu.RLock()
	defer c.mu.RUnlock()

	out := make(map[model.AttributeIdent]any, len(c.slots))
	for id, s := range c.slots {
		if v, ok := s.load(); ok {
			out[id] = v
		}
	}
	return out
}

// commit completes f with result and, on success, stores value in s.
// Nothing is stored when err is set or ctx is done.
func commit[T any](ctx context.Context, s *slot, f *Future[T], result T, value any, err error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err == nil {
		err = ctx.Err()
	}
	if err != nil {
		var zero T
		f.complete(zero, err)
		return
	}
	if f.complete(result, nil) {
		s.value = value
		s.set = true
	}
}
