package middleware

import (
	"net/http"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"golang.org/x/time/rate"
)

// idleEviction is how long an IP may go unseen before its limiter is
// dropped; it bounds the per-IP map for one-shot clients.
const idleEviction = 10 * time.Minute

type ipLimiter struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

// RateLimiter keeps one token bucket per client IP. Entries idle past
// idleEviction are swept out on the next lookup.
type RateLimiter struct {
	mu    sync.Mutex
	ips   map[string]*ipLimiter
	rate  rate.Limit
	burst int

	lastSweep time.Time
}

func NewRateLimiter(r rate.Limit, b int) *RateLimiter {
	return &RateLimiter{
		ips:       make(map[string]*ipLimiter),
		rate:      r,
		burst:     b,
		lastSweep: time.Now(),
	}
}

// Allow reports whether the IP may proceed and refreshes its entry.
func (rl *RateLimiter) Allow(ip string) bool {
	now := time.Now()

	rl.mu.Lock()
	defer rl.mu.Unlock()

	if now.Sub(rl.lastSweep) > idleEviction {
		rl.sweep(now)
		rl.lastSweep = now
	}

	entry, ok := rl.ips[ip]
	if !ok {
		entry = &ipLimiter{limiter: rate.NewLimiter(rl.rate, rl.burst)}
		rl.ips[ip] = entry
	}
	entry.lastSeen = now
	return entry.limiter.Allow()
}

// sweep drops entries idle past the eviction window. Caller holds mu.
func (rl *RateLimiter) sweep(now time.Time) {
	for ip, entry := range rl.ips {
		if now.Sub(entry.lastSeen) > idleEviction {
			delete(rl.ips, ip)
		}
	}
}

// RateLimit limits requests per client IP; used on the checkout route to
// keep a stuck retry loop from spamming the webhook.
func RateLimit(r rate.Limit, burst int) gin.HandlerFunc {
	rl := NewRateLimiter(r, burst)

	return func(c *gin.Context) {
		if !rl.Allow(c.ClientIP()) {
			c.JSON(http.StatusTooManyRequests, gin.H{"error": "Rate limit exceeded"})
			c.Abort()
			return
		}
		c.Next()
	}
}
