package rate_limiter

import (
	"context"

	"golang.org/x/sync/semaphore"
	"golang.org/x/time/rate"
)

// APILimiter bounds both the rate and the concurrency of calls to an API
// every successful Wait must be paired with a Release
type APILimiter struct {
	Name string

	// underlying rate limiter
	limiter *rate.Limiter
	// semaphore to control concurrency
	sem *semaphore.Weighted

	definition *Definition
}

func NewAPILimiter(d *Definition) *APILimiter {
	res := &APILimiter{
		Name:       d.Name,
		definition: d,
	}
	if d.FillRate > 0 {
		res.limiter = rate.NewLimiter(d.FillRate, d.BucketSize)
	}
	if d.MaxConcurrency > 0 {
		res.sem = semaphore.NewWeighted(d.MaxConcurrency)
	}
	return res
}

func (l *APILimiter) String() string {
	return l.definition.String()
}

// Wait blocks until a concurrency slot is free and the rate limit allows a call
func (l *APILimiter) Wait(ctx context.Context) error {
	if l.sem != nil {
		if err := l.sem.Acquire(ctx, 1); err != nil {
			return err
		}
	}
	if l.limiter != nil {
		if err := l.limiter.Wait(ctx); err != nil {
			// give back the slot we took
			l.Release()
			return err
		}
	}
	return nil
}

func (l *APILimiter) Release() {
	if l.sem == nil {
		return
	}
	l.sem.Release(1)
}
