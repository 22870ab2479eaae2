package throttle

import (
	"context"
	"fmt"

	"golang.org/x/time/rate"

	"arch1ve/internal/core"
)

// LimitedAdapter waits on a token bucket before every upstream search.
type LimitedAdapter struct {
	next    core.Adapter
	limiter *rate.Limiter
}

// NewLimiter builds a token bucket for rps requests per second. A
// non-positive rps yields nil, meaning unlimited.
func NewLimiter(rps float64, burst int) *rate.Limiter {
	if rps <= 0 {
		return nil
	}
	if burst <= 0 {
		burst = 1
	}
	return rate.NewLimiter(rate.Limit(rps), burst)
}

// Limit wraps next with limiter. A nil limiter returns next unchanged.
func Limit(next core.Adapter, limiter *rate.Limiter) core.Adapter {
	if limiter == nil {
		return next
	}
	return &LimitedAdapter{next: next, limiter: limiter}
}

// Platform implements core.Adapter.
func (a *LimitedAdapter) Platform() core.Platform {
	return a.next.Platform()
}

// Search implements core.Adapter. It fails without calling upstream when the
// context ends before a token is available.
func (a *LimitedAdapter) Search(ctx context.Context, query, credential string, limit int) ([]core.SearchResult, error) {
	if err := a.limiter.Wait(ctx); err != nil {
		return nil, fmt.Errorf("%s rate limit: %w", a.next.Platform(), err)
	}
	return a.next.Search(ctx, query, credential, limit)
}
