package middleware

import (
	"sync"
	"time"

	"cashflow-api/internal/errors"
	"cashflow-api/internal/handlers"

	"github.com/labstack/echo/v4"
	"golang.org/x/time/rate"
)

const (
	defaultRequestsPerSecond = 5
	defaultBurstSize         = 10

	visitorSweepInterval = time.Minute
	visitorIdleTimeout   = 3 * time.Minute
)

// ipLimiter hands out one token bucket per client IP and drops buckets
// that have been idle for visitorIdleTimeout
type ipLimiter struct {
	mu      sync.Mutex
	buckets map[string]*clientBucket
	rps     rate.Limit
	burst   int
}

type clientBucket struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

func newIPLimiter(rps int, burst int) *ipLimiter {
	l := &ipLimiter{
		buckets: make(map[string]*clientBucket),
		rps:     rate.Limit(rps),
		burst:   burst,
	}
	go l.sweep()
	return l
}

func (l *ipLimiter) allow(ip string) bool {
	l.mu.Lock()
	defer l.mu.Unlock()

	b, ok := l.buckets[ip]
	if !ok {
		b = &clientBucket{limiter: rate.NewLimiter(l.rps, l.burst)}
		l.buckets[ip] = b
	}
	b.lastSeen = time.Now()

	return b.limiter.Allow()
}

func (l *ipLimiter) sweep() {
	for {
		time.Sleep(visitorSweepInterval)

		l.mu.Lock()
		for ip, b := range l.buckets {
			if time.Since(b.lastSeen) > visitorIdleTimeout {
				delete(l.buckets, ip)
			}
		}
		l.mu.Unlock()
	}
}

// RateLimiter limits requests per client IP with default settings
func RateLimiter() echo.MiddlewareFunc {
	return RateLimiterWithConfig(defaultRequestsPerSecond, defaultBurstSize)
}

// RateLimiterWithConfig limits requests per client IP at the given rate
// and burst size
func RateLimiterWithConfig(rps int, burst int) echo.MiddlewareFunc {
	limiter := newIPLimiter(rps, burst)

	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			if !limiter.allow(clientIP(c)) {
				return handlers.SendError(c, errors.SystemRateLimitExceeded)
			}
			return next(c)
		}
	}
}

func clientIP(c echo.Context) string {
	if xff := c.Request().Header.Get("X-Forwarded-For"); xff != "" {
		return xff
	}
	if xri := c.Request().Header.Get("X-Real-IP"); xri != "" {
		return xri
	}
	return c.RealIP()
}
