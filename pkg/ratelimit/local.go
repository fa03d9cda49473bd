package ratelimit

import (
	"context"
	"sync"
	"time"

	"golang.org/x/time/rate"
)

// LocalLimiter keeps one token bucket per client and route class in memory.
// Used when Redis is not available; limits are per process.
type LocalLimiter struct {
	config   *Config
	mu       sync.Mutex
	limiters map[string]*rate.Limiter
}

func NewLocalLimiter(config *Config) *LocalLimiter {
	return &LocalLimiter{
		config:   config,
		limiters: make(map[string]*rate.Limiter),
	}
}

func (l *LocalLimiter) IsAllowed(ctx context.Context, clientIP string, limitType RateLimitType) (*Result, error) {
	limit := l.config.limit(limitType)
	if !l.config.Enabled || l.config.isWhitelisted(clientIP) {
		return l.config.unlimited(limit), nil
	}

	now := time.Now()
	lim := l.get(string(limitType)+":"+clientIP, limit)
	allowed := lim.AllowN(now, 1)

	remaining := int(lim.TokensAt(now))
	if remaining < 0 {
		remaining = 0
	}

	return &Result{
		Allowed:   allowed,
		Limit:     limit,
		Remaining: remaining,
		ResetTime: now.Add(l.config.WindowDuration).Unix(),
	}, nil
}

func (l *LocalLimiter) get(key string, limit int) *rate.Limiter {
	l.mu.Lock()
	defer l.mu.Unlock()

	lim, ok := l.limiters[key]
	if !ok {
		every := l.config.WindowDuration / time.Duration(max(limit, 1))
		lim = rate.NewLimiter(rate.Every(every), limit)
		l.limiters[key] = lim
	}
	return lim
}
