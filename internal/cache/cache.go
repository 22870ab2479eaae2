// Package cache stores provider search results so repeated queries skip the
// upstream API.
package cache

import (
	"context"
	"errors"
	"strconv"
	"strings"

	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/zap"

	"arch1ve/internal/core"
)

// ErrMiss is returned by Store.Get when the key is absent or expired.
var ErrMiss = errors.New("cache miss")

// Lookup outcomes recorded on the lookup counter.
const (
	ResultHit   = "hit"
	ResultMiss  = "miss"
	ResultError = "error"
)

// Store is a result store with a fixed entry lifetime.
type Store interface {
	Get(ctx context.Context, key string) ([]core.SearchResult, error)
	Set(ctx context.Context, key string, results []core.SearchResult) error
	Close() error
}

// Pinger is implemented by stores backed by a remote service.
type Pinger interface {
	Ping(ctx context.Context) error
}

// Key identifies a search by platform, normalized query and limit. Credentials
// are never part of the key.
func Key(platform core.Platform, query string, limit int) string {
	var b strings.Builder
	b.WriteString(string(platform))
	b.WriteByte(':')
	b.WriteString(strconv.Itoa(limit))
	b.WriteByte(':')
	b.WriteString(strings.ToLower(query))
	return b.String()
}

// Adapter serves searches from a Store and falls back to the wrapped adapter.
type Adapter struct {
	next    core.Adapter
	store   Store
	logger  *zap.Logger
	lookups *prometheus.CounterVec
}

// Option customizes an Adapter.
type Option func(*Adapter)

// WithLookupCounter records every lookup on a counter labeled by platform and
// result.
func WithLookupCounter(counter *prometheus.CounterVec) Option {
	return func(a *Adapter) {
		a.lookups = counter
	}
}

// Wrap caches the successful results of next in store. Partial results pass
// through uncached. Store failures are logged and never fail a search.
func Wrap(next core.Adapter, store Store, logger *zap.Logger, opts ...Option) *Adapter {
	if logger == nil {
		logger = zap.NewNop()
	}
	a := &Adapter{next: next, store: store, logger: logger}
	for _, opt := range opts {
		opt(a)
	}
	return a
}

// Platform implements core.Adapter.
func (a *Adapter) Platform() core.Platform {
	return a.next.Platform()
}

// Search implements core.Adapter.
func (a *Adapter) Search(ctx context.Context, query, credential string, limit int) ([]core.SearchResult, error) {
	key := Key(a.next.Platform(), query, limit)

	cached, err := a.store.Get(ctx, key)
	switch {
	case err == nil:
		a.record(ResultHit)
		a.logger.Debug("Cache hit", zap.String("key", key), zap.Int("results", len(cached)))
		return cached, nil
	case errors.Is(err, ErrMiss):
		a.record(ResultMiss)
	default:
		a.record(ResultError)
		a.logger.Warn("Cache lookup failed", zap.String("key", key), zap.Error(err))
	}

	results, err := a.next.Search(ctx, query, credential, limit)
	if errors.Is(err, core.ErrPartialResults) {
		a.logger.Debug("Not caching partial results", zap.String("key", key))
		return results, err
	}
	if err != nil {
		return nil, err
	}

	if err := a.store.Set(ctx, key, results); err != nil {
		a.logger.Warn("Failed to store results", zap.String("key", key), zap.Error(err))
	}
	return results, nil
}

func (a *Adapter) record(result string) {
	if a.lookups != nil {
		a.lookups.WithLabelValues(string(a.next.Platform()), result).Inc()
	}
}
