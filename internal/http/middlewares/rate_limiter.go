package middlewares

import (
	"net"
	"net/http"
	"strconv"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
)

type Decision struct {
	Allowed    bool
	RetryAfter time.Duration
}

// Limiter counts hits per key inside a fixed window.
type Limiter interface {
	Allow(key string) Decision
}

// MemoryLimiter is the single-process fixed-window limiter.
type MemoryLimiter struct {
	mu      sync.Mutex
	window  time.Duration
	limit   int
	now     func() time.Time
	clients map[string]*clientBucket

	nextSweep time.Time
}

type clientBucket struct {
	count     int
	windowEnd time.Time
}

func NewMemoryLimiter(limit int, window time.Duration) *MemoryLimiter {
	return &MemoryLimiter{
		limit:   limit,
		window:  window,
		now:     time.Now,
		clients: make(map[string]*clientBucket),
	}
}

func (rl *MemoryLimiter) Allow(key string) Decision {
	if rl.limit <= 0 {
		return Decision{Allowed: true}
	}

	now := rl.now()

	rl.mu.Lock()
	defer rl.mu.Unlock()

	// drop buckets whose window closed, at most once per window
	if now.After(rl.nextSweep) {
		for k, cb := range rl.clients {
			if now.After(cb.windowEnd) {
				delete(rl.clients, k)
			}
		}
		rl.nextSweep = now.Add(rl.window)
	}

	b, ok := rl.clients[key]

	if !ok || now.After(b.windowEnd) {
		rl.clients[key] = &clientBucket{count: 1, windowEnd: now.Add(rl.window)}
		return Decision{Allowed: true}
	}

	if b.count >= rl.limit {
		return Decision{Allowed: false, RetryAfter: b.windowEnd.Sub(now)}
	}

	b.count++
	return Decision{Allowed: true}
}

// RateLimit enforces l for the key derived by keyFn.
func RateLimit(l Limiter, keyFn func(*gin.Context) string) gin.HandlerFunc {
	return func(c *gin.Context) {
		key := keyFn(c)

		if key == "" {
			// fallback to IP if key cannot be derived
			key = clientIP(c)
		}

		d := l.Allow(key)
		if d.Allowed {
			c.Next()
			return
		}

		retryAfter := int(d.RetryAfter.Seconds())
		if retryAfter < 0 {
			retryAfter = 0
		}

		c.Header("Retry-After", strconv.Itoa(retryAfter))

		c.AbortWithStatusJSON(http.StatusTooManyRequests, gin.H{
			"error": gin.H{
				"code":    "rate_limited",
				"message": "Too many requests. Please try again shortly.",
			},
		})
	}
}

// for unauthenticated endpoints: rate limit by IP and route
func KeyByRouteAndIP(c *gin.Context) string {
	return c.FullPath() + "|" + clientIP(c)
}

func clientIP(c *gin.Context) string {
	// Gin's ClientIP respects X-Forwarded-For / X-Real-IP if configured.
	ip := c.ClientIP()

	host, _, err := net.SplitHostPort(ip)

	if err == nil && host != "" {
		return host
	}

	return ip
}
