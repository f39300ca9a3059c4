// Package cache provides the capacity-bounded word caches used by the
// morphology analyzer. All implementations are safe for concurrent use.
package cache

import (
	"fmt"
	"strings"
	"sync"

	"github.com/golang/groupcache/lru"
)

// Cache maps a word form to a memoized value.
type Cache[V any] interface {
	Get(key string) (V, bool)
	Add(key string, v V)
	Len() int
	Cap() int
}

// Policy selects what happens when a cache is full.
type Policy string

const (
	// PolicyLRU evicts the least recently used entry.
	PolicyLRU Policy = "lru"
	// PolicyFreeze stops admitting new entries.
	PolicyFreeze Policy = "freeze"
)

// ParsePolicy parses a user-provided policy name.
func ParsePolicy(raw string) (Policy, error) {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "", string(PolicyLRU):
		return PolicyLRU, nil
	case string(PolicyFreeze):
		return PolicyFreeze, nil
	default:
		return "", fmt.Errorf("unknown cache policy %q (supported: lru, freeze)", raw)
	}
}

// New builds a cache with the given policy. A capacity of zero or less
// disables caching.
func New[V any](policy Policy, capacity int) Cache[V] {
	if capacity <= 0 {
		return Disabled[V]{}
	}
	if policy == PolicyFreeze {
		return NewFreeze[V](capacity)
	}
	return NewLRU[V](capacity)
}

// LRU evicts the least recently used entry once full.
type LRU[V any] struct {
	mu       sync.Mutex
	lru      *lru.Cache
	capacity int
}

// NewLRU returns an LRU cache holding at most capacity entries.
func NewLRU[V any](capacity int) *LRU[V] {
	return &LRU[V]{lru: lru.New(capacity), capacity: capacity}
}

// Get returns the cached value and marks it recently used.
func (c *LRU[V]) Get(key string) (V, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	v, ok := c.lru.Get(key)
	if !ok {
		var zero V
		return zero, false
	}
	return v.(V), true
}

// Add stores v, evicting the oldest entry when full.
func (c *LRU[V]) Add(key string, v V) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.lru.Add(key, v)
}

// Len returns the number of cached entries.
func (c *LRU[V]) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.lru.Len()
}

// Cap returns the configured capacity.
func (c *LRU[V]) Cap() int {
	return c.capacity
}

// Freeze admits entries until it is full and never evicts.
type Freeze[V any] struct {
	mu       sync.RWMutex
	entries  map[string]V
	capacity int
}

// NewFreeze returns a cache that stops admitting at capacity.
func NewFreeze[V any](capacity int) *Freeze[V] {
	return &Freeze[V]{entries: make(map[string]V), capacity: capacity}
}

// Get returns the cached value.
func (c *Freeze[V]) Get(key string) (V, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	v, ok := c.entries[key]
	return v, ok
}

// Add stores v while capacity remains. Existing keys are overwritten.
func (c *Freeze[V]) Add(key string, v V) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if _, ok := c.entries[key]; !ok && len(c.entries) >= c.capacity {
		return
	}
	c.entries[key] = v
}

// Len returns the number of cached entries.
func (c *Freeze[V]) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.entries)
}

// Cap returns the configured capacity.
func (c *Freeze[V]) Cap() int {
	return c.capacity
}

// Disabled never stores anything.
type Disabled[V any] struct{}

// Get always misses.
func (Disabled[V]) Get(string) (V, bool) {
	var zero V
	return zero, false
}

// Add discards v.
func (Disabled[V]) Add(string, V) {}

// Len is always zero.
func (Disabled[V]) Len() int { return 0 }

// Cap is always zero.
func (Disabled[V]) Cap() int { return 0 }
