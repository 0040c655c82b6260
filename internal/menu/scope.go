package menu

import (
	"sort"
	"sync"
)

// Scopes keeps one registry per window so contributions from one window never
// leak into another window's menu bar.
type Scopes struct {
	mu       sync.Mutex
	registry map[string]*Registry
	opts     []RegistryOption
}

// NewScopes creates an empty scope table. opts apply to every registry it
// creates.
func NewScopes(opts ...RegistryOption) *Scopes {
	return &Scopes{registry: make(map[string]*Registry), opts: opts}
}

// For returns the registry for key, creating it on first use.
func (s *Scopes) For(key string) *Registry {
	s.mu.Lock()
	defer s.mu.Unlock()
	if reg, ok := s.registry[key]; ok {
		return reg
	}
	reg := NewRegistry(s.opts...)
	s.registry[key] = reg
	return reg
}

// Lookup returns the registry for key without creating one.
func (s *Scopes) Lookup(key string) (*Registry, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	reg, ok := s.registry[key]
	return reg, ok
}

// Drop forgets the registry for key.
func (s *Scopes) Drop(key string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.registry, key)
}

// Keys lists the scoped keys in sorted order.
func (s *Scopes) Keys() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	keys := make([]string, 0, len(s.registry))
	for k := range s.registry {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// Each calls fn for every scoped registry in key order.
func (s *Scopes) Each(fn func(key string, reg *Registry)) {
	for _, key := range s.Keys() {
		if reg, ok := s.Lookup(key); ok {
			fn(key, reg)
		}
	}
}
