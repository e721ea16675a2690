package middleware

import (
	"context"
	"net/http"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"golang.org/x/time/rate"
)

// limiterInfo is a struct that holds a rate limiter and the last time it was seen.
type limiterInfo struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

// IPRateLimiter hands out one token bucket per client IP.
type IPRateLimiter struct {
	mu       sync.Mutex
	limiters map[string]*limiterInfo
	rps      int
	now      func() time.Time
}

// NewIPRateLimiter creates a limiter allowing rps requests per second per
// IP, with a burst of the same size.
func NewIPRateLimiter(rps int) *IPRateLimiter {
	if rps <= 0 {
		rps = 1
	}
	return &IPRateLimiter{
		limiters: make(map[string]*limiterInfo),
		rps:      rps,
		now:      time.Now,
	}
}

// Allow reports whether a request from ip may proceed.
func (l *IPRateLimiter) Allow(ip string) bool {
	l.mu.Lock()
	defer l.mu.Unlock()

	info, ok := l.limiters[ip]
	if !ok {
		info = &limiterInfo{limiter: rate.NewLimiter(rate.Limit(l.rps), l.rps)}
		l.limiters[ip] = info
	}
	info.lastSeen = l.now()
	return info.limiter.AllowN(info.lastSeen, 1)
}

// Cleanup drops limiters not seen within expiration.
func (l *IPRateLimiter) Cleanup(expiration time.Duration) {
	l.mu.Lock()
	defer l.mu.Unlock()

	for ip, info := range l.limiters {
		if l.now().Sub(info.lastSeen) > expiration {
			delete(l.limiters, ip)
		}
	}
}

// RunCleanup calls Cleanup every interval until ctx is done.
func (l *IPRateLimiter) RunCleanup(ctx context.Context, interval, expiration time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			l.Cleanup(expiration)
		}
	}
}

// RateLimitByIP applies rate limiting to requests per IP address.
func RateLimitByIP(limiter *IPRateLimiter) gin.HandlerFunc {
	return func(c *gin.Context) {
		if !limiter.Allow(c.ClientIP()) {
			c.Header("Retry-After", "1")
			c.JSON(http.StatusTooManyRequests, gin.H{"error_code": "rate_limited", "message": "Too many requests"})
			c.Abort()
			return
		}

		c.Next()
	}
}
