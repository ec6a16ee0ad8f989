package middleware

import (
	"math"
	"net/http"
	"strconv"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/guttosm/candleview/internal/domain/dto"
)

const maxTrackedClients = 10000

// Limiter counts requests per key in fixed windows.
//
// Every dashboard trigger costs one upstream fetch, so the limit also
// protects the market data provider's quota.
type Limiter struct {
	mu      sync.Mutex
	limit   int
	window  time.Duration
	clients map[string]*client
}

// client is the state of one key inside the current window.
type client struct {
	windowStart time.Time
	count       int
}

// NewLimiter allows up to limit requests per key within each window.
func NewLimiter(limit int, window time.Duration) *Limiter {
	return &Limiter{limit: limit, window: window, clients: make(map[string]*client)}
}

// Allow records a request for key at now. When the key is over its limit it
// returns false and how long until its window resets.
func (l *Limiter) Allow(key string, now time.Time) (bool, time.Duration) {
	l.mu.Lock()
	defer l.mu.Unlock()

	cl, ok := l.clients[key]
	if !ok || now.Sub(cl.windowStart) >= l.window {
		if !ok && len(l.clients) >= maxTrackedClients {
			l.evictStale(now)
		}
		l.clients[key] = &client{windowStart: now, count: 1}
		return true, 0
	}

	cl.count++
	if cl.count > l.limit {
		return false, cl.windowStart.Add(l.window).Sub(now)
	}
	return true, 0
}

// evictStale drops keys whose window has expired. Caller holds l.mu.
func (l *Limiter) evictStale(now time.Time) {
	for key, cl := range l.clients {
		if now.Sub(cl.windowStart) >= l.window {
			delete(l.clients, key)
		}
	}
}

// Handler limits requests per client IP.
//
// Response when limit exceeded:
//
//	HTTP/1.1 429 Too Many Requests
//	Retry-After: 12
//	{"message":"rate limit exceeded","timestamp":"..."}
func (l *Limiter) Handler() gin.HandlerFunc {
	return func(c *gin.Context) {
		ok, retry := l.Allow(c.ClientIP(), time.Now())
		if !ok {
			secs := int(math.Ceil(retry.Seconds()))
			c.Header("Retry-After", strconv.Itoa(max(secs, 1)))
			c.AbortWithStatusJSON(http.StatusTooManyRequests, dto.NewErrorResponse("rate limit exceeded", nil))
			return
		}
		c.Next()
	}
}

var (
	defaultLimiterMu sync.RWMutex
	defaultLimiter   = NewLimiter(60, time.Minute)
)

// SetRateLimit replaces the shared limiter used by RateLimiter.
func SetRateLimit(n int, w time.Duration) {
	defaultLimiterMu.Lock()
	defaultLimiter = NewLimiter(n, w)
	defaultLimiterMu.Unlock()
}

// RateLimiter limits requests per client IP with the shared limiter
// (default: 60 requests per minute, see SetRateLimit).
func RateLimiter() gin.HandlerFunc {
	defaultLimiterMu.RLock()
	l := defaultLimiter
	defaultLimiterMu.RUnlock()
	return l.Handler()
}
