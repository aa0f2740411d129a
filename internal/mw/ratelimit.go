package mw

import (
	"net/http"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"golang.org/x/time/rate"
)

// staleAfter bounds the memory held for one-off client IPs.
const staleAfter = 10 * time.Minute

type clientLimiter struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

// IPRateLimiter stores a rate limiter for each client IP address.
type IPRateLimiter struct {
	clients map[string]*clientLimiter
	mu      sync.Mutex
	r       rate.Limit
	b       int
}

// NewIPRateLimiter creates a new IPRateLimiter.
func NewIPRateLimiter(r rate.Limit, b int) *IPRateLimiter {
	return &IPRateLimiter{
		clients: make(map[string]*clientLimiter),
		r:       r,
		b:       b,
	}
}

// GetLimiter returns the rate limiter for an IP address, creating one on
// first sight and evicting limiters of IPs not seen recently.
func (i *IPRateLimiter) GetLimiter(ip string) *rate.Limiter {
	i.mu.Lock()
	defer i.mu.Unlock()

	now := time.Now()
	cl, exists := i.clients[ip]
	if !exists {
		for addr, old := range i.clients {
			if now.Sub(old.lastSeen) > staleAfter {
				delete(i.clients, addr)
			}
		}
		cl = &clientLimiter{limiter: rate.NewLimiter(i.r, i.b)}
		i.clients[ip] = cl
	}
	cl.lastSeen = now
	return cl.limiter
}

// RateLimiter is a middleware for IP-based rate limiting.
func RateLimiter(r rate.Limit, b int) gin.HandlerFunc {
	limiter := NewIPRateLimiter(r, b)
	return func(c *gin.Context) {
		if !limiter.GetLimiter(c.ClientIP()).Allow() {
			c.AbortWithStatus(http.StatusTooManyRequests)
			return
		}
		c.Next()
	}
}
