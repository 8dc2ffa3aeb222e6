// Package ratelimiter provides a small requests-per-interval limiter for
// guarding calls to a remote image model.
package ratelimiter

import (
	"sync"
	"time"
)

// Limiter defines the interface for request rate limiters. Implementations
// can be local (in-memory) or distributed.
type Limiter interface {
	// Allow atomically consumes one request slot if available. Returns
	// false if the limit is currently exhausted.
	Allow() bool

	// TimeUntilAvailable returns how long until a slot frees up (read-only).
	TimeUntilAvailable() time.Duration
}

// RequestLimiter is an in-memory token bucket counting whole requests. The
// bucket refills to capacity once per interval.
type RequestLimiter struct {
	mu             sync.Mutex
	capacity       int
	remaining      int
	refillInterval time.Duration
	lastRefill     time.Time
}

// Ensure RequestLimiter implements Limiter.
var _ Limiter = (*RequestLimiter)(nil)

// New creates a limiter allowing requestsPerMinute requests each minute.
func New(requestsPerMinute int) *RequestLimiter {
	return NewWithInterval(requestsPerMinute, time.Minute)
}

// NewWithInterval creates a limiter with a custom refill interval.
func NewWithInterval(capacity int, refillInterval time.Duration) *RequestLimiter {
	return &RequestLimiter{
		capacity:       capacity,
		remaining:      capacity,
		refillInterval: refillInterval,
		lastRefill:     time.Now(),
	}
}

// Allow atomically consumes one request slot if available.
func (l *RequestLimiter) Allow() bool {
	l.mu.Lock()
	defer l.mu.Unlock()

	l.refill()
	if l.remaining <= 0 {
		return false
	}
	l.remaining--
	return true
}

// TimeUntilAvailable returns how long until a slot would be available. Zero
// means a request can proceed now.
func (l *RequestLimiter) TimeUntilAvailable() time.Duration {
	l.mu.Lock()
	defer l.mu.Unlock()

	l.refill()
	if l.remaining > 0 {
		return 0
	}
	wait := l.refillInterval - time.Since(l.lastRefill)
	if wait < 0 {
		wait = 0
	}
	return wait
}

// refill resets the bucket when the interval has elapsed. Callers must hold mu.
func (l *RequestLimiter) refill() {
	now := time.Now()
	if now.Sub(l.lastRefill) >= l.refillInterval {
		l.remaining = l.capacity
		l.lastRefill = now
	}
}
