package middleware

import (
	"strconv"
	"sync"
	"time"

	"github.com/hari2128-cell/CureVox/pkg/apperrors"

	"github.com/gin-gonic/gin"
	"golang.org/x/time/rate"
)

// clientLimiter is one caller's bucket plus its last activity stamp.
type clientLimiter struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

// RateLimiter keeps a token bucket per caller. Callers are keyed by user ID
// when authenticated, client IP otherwise. Idle buckets are evicted by a
// background sweep so the map does not grow without bound.
type RateLimiter struct {
	mu      sync.Mutex
	clients map[string]*clientLimiter
	limit   rate.Limit
	burst   int
}

// NewRateLimiter allows eventsPer period with the given burst and starts the
// eviction sweep.
func NewRateLimiter(events int, period time.Duration, burst int) *RateLimiter {
	rl := &RateLimiter{
		clients: make(map[string]*clientLimiter),
		limit:   rate.Limit(float64(events) / period.Seconds()),
		burst:   burst,
	}
	go rl.sweep(3 * period)
	return rl
}

func (rl *RateLimiter) sweep(idleFor time.Duration) {
	ticker := time.NewTicker(idleFor)
	defer ticker.Stop()
	for range ticker.C {
		cutoff := time.Now().Add(-idleFor)
		rl.mu.Lock()
		for key, client := range rl.clients {
			if client.lastSeen.Before(cutoff) {
				delete(rl.clients, key)
			}
		}
		rl.mu.Unlock()
	}
}

// Allow reports whether the caller identified by key may proceed.
func (rl *RateLimiter) Allow(key string) bool {
	rl.mu.Lock()
	defer rl.mu.Unlock()

	client, ok := rl.clients[key]
	if !ok {
		client = &clientLimiter{limiter: rate.NewLimiter(rl.limit, rl.burst)}
		rl.clients[key] = client
	}
	client.lastSeen = time.Now()
	return client.limiter.Allow()
}

// Middleware rejects over-limit callers with 429 and a Retry-After hint.
func (rl *RateLimiter) Middleware() gin.HandlerFunc {
	retryAfter := strconv.Itoa(int(time.Duration(float64(time.Second) / float64(rl.limit)).Seconds()) + 1)
	return func(c *gin.Context) {
		key := GetUserID(c)
		if key == "" {
			key = c.ClientIP()
		}
		if !rl.Allow(key) {
			c.Header("Retry-After", retryAfter)
			apperrors.HandleError(c, apperrors.ErrRateLimited)
			c.Abort()
			return
		}
		c.Next()
	}
}
