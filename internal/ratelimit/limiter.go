// Package ratelimit throttles calls against the document store, one token
// bucket per store operation, so a burst of dashboard reloads cannot drain
// the container's request-unit budget.
package ratelimit

import (
	"context"
	"sync"

	"golang.org/x/time/rate"
)

type OperationLimiter struct {
	limiters map[string]*rate.Limiter
	mu       sync.RWMutex
	defaults Config
}

type Config struct {
	RequestsPerSecond float64
	BurstSize         int
}

func DefaultConfig() Config {
	return Config{
		RequestsPerSecond: 10,
		BurstSize:         20,
	}
}

// NewOperationLimiter builds a limiter; a non-positive rate disables
// throttling.
func NewOperationLimiter(config Config) *OperationLimiter {
	return &OperationLimiter{
		limiters: make(map[string]*rate.Limiter),
		defaults: config,
	}
}

func (l *OperationLimiter) limiter(operation string) *rate.Limiter {
	l.mu.RLock()
	limiter, exists := l.limiters[operation]
	l.mu.RUnlock()

	if exists {
		return limiter
	}

	l.mu.Lock()
	defer l.mu.Unlock()

	if limiter, exists = l.limiters[operation]; exists {
		return limiter
	}

	limiter = newLimiter(l.defaults.RequestsPerSecond, l.defaults.BurstSize)
	l.limiters[operation] = limiter
	return limiter
}

func newLimiter(rps float64, burst int) *rate.Limiter {
	limit := rate.Limit(rps)
	if rps <= 0 {
		limit = rate.Inf
	}
	if burst <= 0 {
		burst = 1
	}
	return rate.NewLimiter(limit, burst)
}

// SetLimit overrides the bucket of a single operation.
func (l *OperationLimiter) SetLimit(operation string, rps float64, burst int) {
	l.mu.Lock()
	defer l.mu.Unlock()

	l.limiters[operation] = newLimiter(rps, burst)
}

// Wait blocks until operation may proceed or ctx is done.
func (l *OperationLimiter) Wait(ctx context.Context, operation string) error {
	return l.limiter(operation).Wait(ctx)
}
