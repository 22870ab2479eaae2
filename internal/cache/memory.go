package cache

import (
	"context"
	"slices"
	"time"

	"github.com/hashicorp/golang-lru/v2/expirable"

	"arch1ve/internal/core"
)

// MemoryStore keeps results in a process-local LRU whose entries expire
// after a fixed TTL. It is safe for concurrent use.
type MemoryStore struct {
	lru *expirable.LRU[string, []core.SearchResult]
}

// NewMemoryStore creates a store holding at most size entries.
func NewMemoryStore(size int, ttl time.Duration) *MemoryStore {
	return &MemoryStore{
		lru: expirable.NewLRU[string, []core.SearchResult](size, nil, ttl),
	}
}

// Get returns a copy so callers cannot modify the cached entry.
func (m *MemoryStore) Get(_ context.Context, key string) ([]core.SearchResult, error) {
	results, ok := m.lru.Get(key)
	if !ok {
		return nil, ErrMiss
	}
	return slices.Clone(results), nil
}

func (m *MemoryStore) Set(_ context.Context, key string, results []core.SearchResult) error {
	m.lru.Add(key, slices.Clone(results))
	return nil
}

// Len reports the number of live entries.
func (m *MemoryStore) Len() int {
	return m.lru.Len()
}

func (m *MemoryStore) Close() error {
	m.lru.Purge()
	return nil
}
