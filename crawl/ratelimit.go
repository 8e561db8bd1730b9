package crawl

import (
	"context"
	"math/rand/v2"
	"sync"
	"time"

	"github.com/fwojciec/discodex"
	"golang.org/x/time/rate"
)

var _ discodex.Limiter = (*HostLimiter)(nil)

// HostLimiter paces requests using a token bucket per host, plus a
// random jitter after each wait. Evenly spaced requests are themselves a
// bot signature; the jitter makes the cadence look like a person
// clicking through pages.
type HostLimiter struct {
	mu       sync.Mutex
	limiters map[string]*rate.Limiter
	rps      float64
	jitter   time.Duration
}

// NewHostLimiter creates a HostLimiter allowing rps requests per second
// per host (burst of 1, no bursting), with up to jitter of extra random
// delay per request. A zero jitter disables it.
func NewHostLimiter(rps float64, jitter time.Duration) *HostLimiter {
	return &HostLimiter{
		limiters: make(map[string]*rate.Limiter),
		rps:      rps,
		jitter:   jitter,
	}
}

// Wait blocks until the rate limit allows a request to the host.
// Returns an error if the context is canceled before the wait completes.
func (l *HostLimiter) Wait(ctx context.Context, host string) error {
	l.mu.Lock()
	limiter, ok := l.limiters[host]
	if !ok {
		limiter = rate.NewLimiter(rate.Limit(l.rps), 1)
		l.limiters[host] = limiter
	}
	l.mu.Unlock()

	if err := limiter.Wait(ctx); err != nil {
		return err
	}

	if l.jitter > 0 {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(rand.N(l.jitter)):
		}
	}

	return nil
}
