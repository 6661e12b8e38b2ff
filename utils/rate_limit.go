package utils

import (
	"net/http"
	"sync/atomic"
	"time"

	"github.com/gin-gonic/gin"
	cmap "github.com/orcaman/concurrent-map/v2"
	"golang.org/x/time/rate"
)

type visitor struct {
	limiter  *rate.Limiter
	lastSeen atomic.Int64 // unix nano
}

type rateLimiter struct {
	limit     rate.Limit
	burst     int
	idle      time.Duration // a visitor idle for this long has a full bucket again
	clients   cmap.ConcurrentMap[string, *visitor]
	lastSweep atomic.Int64
	now       func() time.Time
}

func newRateLimiter(r rate.Limit, burst int) *rateLimiter {
	idle := time.Minute
	if refill := time.Duration(float64(burst) / float64(r) * float64(time.Second)); refill > idle {
		idle = refill
	}
	rl := &rateLimiter{
		limit:   r,
		burst:   burst,
		idle:    idle,
		clients: cmap.New[*visitor](),
		now:     time.Now,
	}
	rl.lastSweep.Store(rl.now().UnixNano())
	return rl
}

func (rl *rateLimiter) allow(ip string) bool {
	now := rl.now()
	v := rl.clients.Upsert(ip, nil, func(exist bool, valueInMap, _ *visitor) *visitor {
		if exist {
			return valueInMap
		}
		return &visitor{limiter: rate.NewLimiter(rl.limit, rl.burst)}
	})
	v.lastSeen.Store(now.UnixNano())
	allowed := v.limiter.AllowN(now, 1)
	rl.sweep(now)
	return allowed
}

// sweep forgets idle visitors, at most once per idle period
func (rl *rateLimiter) sweep(now time.Time) {
	last := rl.lastSweep.Load()
	if now.UnixNano()-last < int64(rl.idle) || !rl.lastSweep.CompareAndSwap(last, now.UnixNano()) {
		return
	}
	cutoff := now.Add(-rl.idle).UnixNano()
	for _, ip := range rl.clients.Keys() {
		rl.clients.RemoveCb(ip, func(_ string, v *visitor, exists bool) bool {
			return exists && v.lastSeen.Load() < cutoff
		})
	}
}

// RateLimiter allows burst requests per client IP, refilled at r. r or burst <= 0 disables it.
func RateLimiter(r rate.Limit, burst int) gin.HandlerFunc {
	if r <= 0 || burst <= 0 {
		return func(c *gin.Context) {
			c.Next()
		}
	}
	rl := newRateLimiter(r, burst)
	return func(c *gin.Context) {
		if !rl.allow(c.ClientIP()) {
			c.AbortWithStatusJSON(http.StatusTooManyRequests, gin.H{"error": "too many requests"})
			return
		}
		c.Next()
	}
}
