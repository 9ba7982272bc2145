package middleware

import (
	"net/http"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"golang.org/x/time/rate"
)

const (
	secondsPerMinute = 60
	pruneInterval    = 5 * time.Minute
	staleAfter       = 10 * time.Minute
)

// ClientLimiter admits requests per client address using a token bucket
// refilled at perMinute/60 tokens per second with a burst of perMinute.
// Within one window a client gets at most perMinute requests; the next one
// is rejected without reaching the handler.
type ClientLimiter struct {
	mu        sync.Mutex
	clients   map[string]*clientEntry
	limit     rate.Limit
	burst     int
	lastPrune time.Time
}

type clientEntry struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

// NewClientLimiter creates a limiter allowing perMinute requests per client.
func NewClientLimiter(perMinute int) *ClientLimiter {
	return &ClientLimiter{
		clients:   make(map[string]*clientEntry),
		limit:     rate.Limit(float64(perMinute) / secondsPerMinute),
		burst:     perMinute,
		lastPrune: time.Now(),
	}
}

// Allow reports whether the client identified by addr may proceed now.
func (l *ClientLimiter) Allow(addr string) bool {
	l.mu.Lock()
	defer l.mu.Unlock()

	now := time.Now()
	entry, ok := l.clients[addr]
	if !ok {
		entry = &clientEntry{limiter: rate.NewLimiter(l.limit, l.burst)}
		l.clients[addr] = entry
	}
	entry.lastSeen = now

	if now.Sub(l.lastPrune) > pruneInterval {
		l.pruneLocked(now)
	}

	return entry.limiter.Allow()
}

// pruneLocked drops clients not seen recently. Caller holds l.mu.
func (l *ClientLimiter) pruneLocked(now time.Time) {
	for addr, entry := range l.clients {
		if now.Sub(entry.lastSeen) > staleAfter {
			delete(l.clients, addr)
		}
	}
	l.lastPrune = now
}

// Middleware rejects over-quota requests with 429 before the handler runs.
func (l *ClientLimiter) Middleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		if !l.Allow(c.ClientIP()) {
			c.AbortWithStatusJSON(http.StatusTooManyRequests, gin.H{
				"ok":    false,
				"error": "rate limited",
			})
			return
		}
		c.Next()
	}
}
