package http

import (
	"net"
	"net/http"
	"strconv"
	"sync"
	"time"

	"golang.org/x/time/rate"
)

// limiterIdleTTL is how long an idle client's limiter is kept
const limiterIdleTTL = 5 * time.Minute

type clientLimiter struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

// RateLimitMiddleware throttles requests per client IP. It guards the public
// auth endpoints against credential stuffing.
type RateLimitMiddleware struct {
	mu        sync.Mutex
	limiters  map[string]*clientLimiter
	rate      rate.Limit
	burst     int
	lastPrune time.Time
	now       func() time.Time
}

// NewRateLimitMiddleware allows perMinute requests per client with the given burst
func NewRateLimitMiddleware(perMinute, burst int) *RateLimitMiddleware {
	if burst <= 0 {
		burst = 1
	}
	return &RateLimitMiddleware{
		limiters: make(map[string]*clientLimiter),
		rate:     rate.Limit(float64(perMinute) / 60),
		burst:    burst,
		now:      time.Now,
	}
}

func (m *RateLimitMiddleware) limiterFor(ip string) *rate.Limiter {
	m.mu.Lock()
	defer m.mu.Unlock()

	now := m.now()
	if now.Sub(m.lastPrune) > limiterIdleTTL {
		for key, l := range m.limiters {
			if now.Sub(l.lastSeen) > limiterIdleTTL {
				delete(m.limiters, key)
			}
		}
		m.lastPrune = now
	}

	if l, ok := m.limiters[ip]; ok {
		l.lastSeen = now
		return l.limiter
	}
	l := &clientLimiter{limiter: rate.NewLimiter(m.rate, m.burst), lastSeen: now}
	m.limiters[ip] = l
	return l.limiter
}

// Handler wraps an http.Handler with the per-client limit
func (m *RateLimitMiddleware) Handler(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if !m.limiterFor(clientIP(r)).AllowN(m.now(), 1) {
			retryAfter := 1
			if m.rate > 0 {
				retryAfter = max(int(1/float64(m.rate)), 1)
			}
			w.Header().Set("Retry-After", strconv.Itoa(retryAfter))
			writeError(w, http.StatusTooManyRequests, "too many attempts, please wait a moment")
			return
		}
		next.ServeHTTP(w, r)
	})
}

// clientIP returns the remote host without its port
func clientIP(r *http.Request) string {
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}
