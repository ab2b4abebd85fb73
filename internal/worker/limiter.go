// Package worker provides bounded concurrent execution of per-claim
// generation calls: a semaphore-bounded runner and a rate limiter in
// front of the external generator.
package worker

import (
	"context"
	"sync"

	"golang.org/x/time/rate"
)

// Limiter implements per-bucket rate limiting. Buckets are named
// after generator providers so two providers in one process do not
// share a budget.
type Limiter struct {
	limiters     map[string]*rate.Limiter
	mu           sync.RWMutex
	defaultRate  rate.Limit
	defaultBurst int
}

// NewLimiter creates a new rate limiter. A non-positive rate means
// unlimited.
func NewLimiter(requestsPerSecond float64, burst int) *Limiter {
	r := rate.Limit(requestsPerSecond)
	if requestsPerSecond <= 0 {
		r = rate.Inf
	}
	if burst <= 0 {
		burst = 1
	}

	return &Limiter{
		limiters:     make(map[string]*rate.Limiter),
		defaultRate:  r,
		defaultBurst: burst,
	}
}

// Wait blocks until the bucket grants a slot or the context ends
func (l *Limiter) Wait(ctx context.Context, bucket string) error {
	return l.getLimiter(bucket).Wait(ctx)
}

// Allow checks if a request is allowed without waiting
func (l *Limiter) Allow(bucket string) bool {
	return l.getLimiter(bucket).Allow()
}

// SetBucketRate sets a custom rate limit for a specific bucket
func (l *Limiter) SetBucketRate(bucket string, requestsPerSecond float64, burst int) {
	l.mu.Lock()
	defer l.mu.Unlock()

	r := rate.Limit(requestsPerSecond)
	if requestsPerSecond <= 0 {
		r = rate.Inf
	}
	if burst <= 0 {
		burst = l.defaultBurst
	}
	l.limiters[bucket] = rate.NewLimiter(r, burst)
}

func (l *Limiter) getLimiter(bucket string) *rate.Limiter {
	l.mu.RLock()
	limiter, exists := l.limiters[bucket]
	l.mu.RUnlock()

	if exists {
		return limiter
	}

	l.mu.Lock()
	defer l.mu.Unlock()

	// Double-check after acquiring the write lock
	if limiter, exists := l.limiters[bucket]; exists {
		return limiter
	}

	limiter = rate.NewLimiter(l.defaultRate, l.defaultBurst)
	l.limiters[bucket] = limiter

	return limiter
}
