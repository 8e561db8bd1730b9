package mock

import (
	"context"

	"github.com/fwojciec/discodex"
)

var _ discodex.Limiter = (*Limiter)(nil)

// Limiter is a mock implementation of discodex.Limiter.
type Limiter struct {
	WaitFn func(ctx context.Context, host string) error
}

func (l *Limiter) Wait(ctx context.Context, host string) error {
	if l.WaitFn == nil {
		return nil
	}
	return l.WaitFn(ctx, host)
}
