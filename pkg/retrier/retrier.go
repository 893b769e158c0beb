// Package retrier retries operations along a fixed backoff schedule.
package retrier

import (
	"context"
	"math/rand/v2"
	"time"
)

var defaultSchedule = []time.Duration{500 * time.Millisecond, time.Second, 2 * time.Second}

// Retrier re-runs an operation while it fails with a retryable error.
// The delay before retry n is schedule[min(n, len(schedule)-1)].
type Retrier struct {
	schedule   []time.Duration
	maxRetries int
	retryIf    func(error) bool
	onRetry    func(attempt int, delay time.Duration, err error)
}

// Option configures a Retrier.
type Option func(*Retrier)

// WithSchedule sets the backoff delays. The last delay repeats once the schedule runs out.
func WithSchedule(delays ...time.Duration) Option {
	return func(r *Retrier) {
		if len(delays) > 0 {
			r.schedule = delays
		}
	}
}

// WithMaxRetries sets how many retries follow the first attempt.
func WithMaxRetries(n int) Option {
	return func(r *Retrier) {
		r.maxRetries = n
	}
}

// WithRetryIf limits retries to errors for which fn returns true.
func WithRetryIf(fn func(error) bool) Option {
	return func(r *Retrier) {
		r.retryIf = fn
	}
}

// WithOnRetry registers a hook called before each backoff sleep.
func WithOnRetry(fn func(attempt int, delay time.Duration, err error)) Option {
	return func(r *Retrier) {
		r.onRetry = fn
	}
}

// New creates a Retrier. Defaults: 500ms/1s/2s, 3 retries, every error retryable.
func New(opts ...Option) *Retrier {
	r := &Retrier{
		schedule:   defaultSchedule,
		maxRetries: len(defaultSchedule),
		retryIf:    func(error) bool { return true },
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Delay returns the backoff before retry number attempt (zero based).
func (r *Retrier) Delay(attempt int) time.Duration {
	return ScheduleDelay(r.schedule, attempt)
}

// Do executes fn until it succeeds, fails with a non-retryable error, or retries run out.
// The last error is returned.
func (r *Retrier) Do(ctx context.Context, fn func(ctx context.Context) error) error {
	var err error
	for attempt := 0; ; attempt++ {
		err = fn(ctx)
		if err == nil {
			return nil
		}
		if attempt >= r.maxRetries || !r.retryIf(err) {
			return err
		}

		delay := r.Delay(attempt)
		if r.onRetry != nil {
			r.onRetry(attempt+1, delay, err)
		}
		if sleepErr := Sleep(ctx, delay); sleepErr != nil {
			return err
		}
	}
}

// DoWithData executes fn with retries and returns its value.
func DoWithData[T any](r *Retrier, ctx context.Context, fn func(ctx context.Context) (T, error)) (T, error) {
	var result T
	err := r.Do(ctx, func(ctx context.Context) error {
		var e error
		result, e = fn(ctx)
		return e
	})
	return result, err
}

// ScheduleDelay returns schedule[attempt], capped at the last entry.
func ScheduleDelay(schedule []time.Duration, attempt int) time.Duration {
	if len(schedule) == 0 {
		return 0
	}
	if attempt < 0 {
		attempt = 0
	}
	if attempt >= len(schedule) {
		attempt = len(schedule) - 1
	}
	return schedule[attempt]
}

// Sleep pauses for d or until ctx is done.
func Sleep(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return ctx.Err()
	}
	timer := time.NewTimer(d)
	defer timer.Stop()

	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}

// Jitter returns base plus a uniformly random duration in [0, spread).
func Jitter(base, spread time.Duration) time.Duration {
	if spread <= 0 {
		return base
	}
	return base + rand.N(spread)
}
