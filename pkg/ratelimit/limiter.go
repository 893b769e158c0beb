// Package ratelimit paces calls to a single backend by enforcing a minimum
// gap between successive calls, process-wide.
package ratelimit

import (
	"context"
	"fmt"
	"time"

	"golang.org/x/time/rate"
)

// Limiter admits one call per minGap for one backend.
// Instances must not be shared between backends.
type Limiter struct {
	name string
	lim  *rate.Limiter

	onWait func(name string, wait time.Duration)
}

// Option configures a Limiter.
type Option func(*Limiter)

// WithWaitObserver registers fn to be told how long each admitted Acquire waited.
func WithWaitObserver(fn func(name string, wait time.Duration)) Option {
	return func(l *Limiter) {
		l.onWait = fn
	}
}

// New creates a Limiter that admits at most one call per minGap.
// A non-positive minGap disables pacing.
func New(name string, minGap time.Duration, opts ...Option) *Limiter {
	limit := rate.Inf
	if minGap > 0 {
		limit = rate.Every(minGap)
	}
	// Burst 1: an idle limiter never banks more than the next call.
	l := &Limiter{
		name: name,
		lim:  rate.NewLimiter(limit, 1),
	}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

// Name returns the backend this limiter paces.
func (l *Limiter) Name() string {
	return l.name
}

// Acquire blocks until the next slot opens and returns with it taken.
// A caller whose ctx ends first gets ctx's error and gives its slot back,
// so abandoned waits do not push later callers out.
func (l *Limiter) Acquire(ctx context.Context) error {
	start := time.Now()
	if err := l.lim.Wait(ctx); err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return ctxErr
		}
		// The slot lies past ctx's deadline; nothing was reserved.
		return fmt.Errorf("%s: %w: %v", l.name, context.DeadlineExceeded, err)
	}
	if l.onWait != nil {
		l.onWait(l.name, time.Since(start))
	}
	return nil
}
