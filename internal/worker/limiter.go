package worker

import (
	"context"
	"sync"

	"golang.org/x/time/rate"
)

// KeyLimiter applies an independent token bucket per key. The server
// keys on client address so one chatty client cannot starve the rest.
type KeyLimiter struct {
	limiters     map[string]*rate.Limiter
	mu           sync.RWMutex
	defaultRate  rate.Limit
	defaultBurst int
}

// NewKeyLimiter creates a limiter granting perSecond tokens with the
// given burst to each key.
func NewKeyLimiter(perSecond float64, burst int) *KeyLimiter {
	if burst <= 0 {
		burst = 5
	}
	return &KeyLimiter{
		limiters:     make(map[string]*rate.Limiter),
		defaultRate:  rate.Limit(perSecond),
		defaultBurst: burst,
	}
}

// Wait blocks until the key may proceed or ctx ends.
func (l *KeyLimiter) Wait(ctx context.Context, key string) error {
	return l.get(key).Wait(ctx)
}

// Allow reports whether the key may proceed right now.
func (l *KeyLimiter) Allow(key string) bool {
	return l.get(key).Allow()
}

func (l *KeyLimiter) get(key string) *rate.Limiter {
	l.mu.RLock()
	limiter, exists := l.limiters[key]
	l.mu.RUnlock()
	if exists {
		return limiter
	}

	l.mu.Lock()
	defer l.mu.Unlock()
	if limiter, exists := l.limiters[key]; exists {
		return limiter
	}
	limiter = rate.NewLimiter(l.defaultRate, l.defaultBurst)
	l.limiters[key] = limiter
	return limiter
}

// SetRate overrides the bucket for one key.
func (l *KeyLimiter) SetRate(key string, perSecond float64, burst int) {
	l.mu.Lock()
	defer l.mu.Unlock()
	if burst <= 0 {
		burst = l.defaultBurst
	}
	l.limiters[key] = rate.NewLimiter(rate.Limit(perSecond), burst)
}
