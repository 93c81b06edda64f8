package httpserver

import (
	"net/http"
	"net/url"
	"sync"
	"time"

	"storefront/internal/auth"
	"storefront/internal/domain"
	"github.com/gin-gonic/gin"
	"golang.org/x/time/rate"
)

const (
	userKey       = "user"
	signInPath    = "/auth/signin"
	limiterIdleAt = 10 * time.Minute
)

func securityHeaders() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Header("X-Frame-Options", "DENY")
		c.Header("X-Content-Type-Options", "nosniff")
		c.Header("Referrer-Policy", "strict-origin-when-cross-origin")
		c.Header("Strict-Transport-Security", "max-age=31536000; includeSubDomains")
		c.Header("Cache-Control", "no-store")
		c.Next()
	}
}

type limiterEntry struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

// ipLimiter hands out one token bucket per client IP. Idle buckets are
// swept lazily.
type ipLimiter struct {
	mu        sync.Mutex
	entries   map[string]*limiterEntry
	rate      rate.Limit
	burst     int
	lastSweep time.Time
	now       func() time.Time
}

func newIPLimiter(r rate.Limit, burst int) *ipLimiter {
	return &ipLimiter{
		entries:   make(map[string]*limiterEntry),
		rate:      r,
		burst:     burst,
		lastSweep: time.Now(),
		now:       time.Now,
	}
}

func (l *ipLimiter) allow(ip string) bool {
	l.mu.Lock()
	defer l.mu.Unlock()

	now := l.now()
	if now.Sub(l.lastSweep) > limiterIdleAt {
		for k, e := range l.entries {
			if now.Sub(e.lastSeen) > limiterIdleAt {
				delete(l.entries, k)
			}
		}
		l.lastSweep = now
	}
	e, ok := l.entries[ip]
	if !ok {
		e = &limiterEntry{limiter: rate.NewLimiter(l.rate, l.burst)}
		l.entries[ip] = e
	}
	e.lastSeen = now
	return e.limiter.AllowN(now, 1)
}

func rateLimit(l *ipLimiter) gin.HandlerFunc {
	return func(c *gin.Context) {
		if !l.allow(c.ClientIP()) {
			c.Header("Retry-After", "1")
			c.AbortWithStatusJSON(http.StatusTooManyRequests, gin.H{"error": "too many requests"})
			return
		}
		c.Next()
	}
}

// authenticate attaches the signed-in user when a valid bearer token is
// present. Without one, mock mode acts as the fixture user.
func authenticate(verifier *auth.Verifier, mockUser func() *domain.User) gin.HandlerFunc {
	return func(c *gin.Context) {
		if token := auth.BearerToken(c.GetHeader("Authorization")); token != "" && verifier.Enabled() {
			if u, err := verifier.Verify(token); err == nil {
				c.Set(userKey, u)
				c.Next()
				return
			}
		}
		if u := mockUser(); u != nil {
			c.Set(userKey, u)
		}
		c.Next()
	}
}

// requireUser rejects anonymous requests with a pointer to the sign-in page
// that returns the user to the requested path.
func requireUser() gin.HandlerFunc {
	return func(c *gin.Context) {
		if currentUser(c) == nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
				"error":    "authentication required",
				"redirect": signInPath + "?redirect=" + url.QueryEscape(c.Request.URL.RequestURI()),
			})
			return
		}
		c.Next()
	}
}

func currentUser(c *gin.Context) *domain.User {
	v, ok := c.Get(userKey)
	if !ok {
		return nil
	}
	u, _ := v.(*domain.User)
	return u
}
