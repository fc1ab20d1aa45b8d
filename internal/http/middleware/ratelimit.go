package middleware

import (
	"net/http"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"golang.org/x/time/rate"
)

// limiterTTL is how long an idle client keeps its limiter before eviction.
const limiterTTL = 10 * time.Minute

type limiterEntry struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

// limiterPool holds one token bucket per client IP. Entries idle past the TTL
// are swept lazily on lookup, at most once per TTL interval, so the map stays
// bounded by the number of recently active clients.
type limiterPool struct {
	mu        sync.Mutex
	entries   map[string]*limiterEntry
	limit     rate.Limit
	burst     int
	ttl       time.Duration
	lastSweep time.Time
	now       func() time.Time
}

func newLimiterPool(perMinute int, ttl time.Duration, now func() time.Time) *limiterPool {
	if now == nil {
		now = time.Now
	}
	return &limiterPool{
		entries: map[string]*limiterEntry{},
		limit:   rate.Limit(float64(perMinute) / 60.0),
		burst:   perMinute,
		ttl:     ttl,
		now:     now,
	}
}

func (p *limiterPool) get(ip string) *rate.Limiter {
	p.mu.Lock()
	defer p.mu.Unlock()

	ts := p.now()
	if ts.Sub(p.lastSweep) >= p.ttl {
		for key, e := range p.entries {
			if ts.Sub(e.lastSeen) >= p.ttl {
				delete(p.entries, key)
			}
		}
		p.lastSweep = ts
	}

	e, ok := p.entries[ip]
	if !ok {
		e = &limiterEntry{limiter: rate.NewLimiter(p.limit, p.burst)}
		p.entries[ip] = e
	}
	e.lastSeen = ts
	return e.limiter
}

func (p *limiterPool) size() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return len(p.entries)
}

// RateLimit applies a per-client-IP token bucket of perMinute requests per
// minute. A non-positive limit disables the middleware.
func RateLimit(perMinute int) gin.HandlerFunc {
	if perMinute <= 0 {
		return func(c *gin.Context) { c.Next() }
	}

	pool := newLimiterPool(perMinute, limiterTTL, nil)

	return func(c *gin.Context) {
		if !pool.get(c.ClientIP()).Allow() {
			c.AbortWithStatusJSON(http.StatusTooManyRequests, gin.H{
				"error": gin.H{
					"code":    "RATE_LIMITED",
					"message": "Too many requests",
				},
			})
			return
		}
		c.Next()
	}
}
