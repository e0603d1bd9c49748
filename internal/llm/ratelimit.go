package llm

import (
	"context"
	"fmt"
	"sync"
	"time"
)

// rateLimiter is a token bucket refilled lazily on demand, sized in
// requests per minute.
type rateLimiter struct {
	lastRefill time.Time
	tokens     float64
	perMinute  float64
	mu         sync.Mutex
}

// newRateLimiter creates a rate limiter allowing requestsPerMinute
// outbound calls, starting with a full bucket.
func newRateLimiter(requestsPerMinute int) *rateLimiter {
	if requestsPerMinute <= 0 {
		requestsPerMinute = 60
	}
	return &rateLimiter{
		tokens:     float64(requestsPerMinute),
		perMinute:  float64(requestsPerMinute),
		lastRefill: time.Now(),
	}
}

// wait blocks until a token is available or the context is done.
func (rl *rateLimiter) wait(ctx context.Context) error {
	for {
		if rl.tryAcquire() {
			return nil
		}

		select {
		case <-ctx.Done():
			return fmt.Errorf("rate limiter canceled: %w", ctx.Err())
		case <-time.After(100 * time.Millisecond):
		}
	}
}

// tryAcquire refills the bucket for elapsed time and takes a token if
// one is available.
func (rl *rateLimiter) tryAcquire() bool {
	rl.mu.Lock()
	defer rl.mu.Unlock()

	now := time.Now()
	rl.tokens += now.Sub(rl.lastRefill).Minutes() * rl.perMinute
	if rl.tokens > rl.perMinute {
		rl.tokens = rl.perMinute
	}
	rl.lastRefill = now

	if rl.tokens >= 1 {
		rl.tokens--
		return true
	}
	return false
}
