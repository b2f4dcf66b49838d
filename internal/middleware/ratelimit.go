package middleware

import (
	"net/http"
	"sync"
	"time"

	"golang.org/x/time/rate"
)

// clientLimiter pairs a token bucket with the time it was last used, so
// idle entries can be evicted.
type clientLimiter struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

// NewRateLimiter returns a middleware enforcing a per-client request rate,
// keyed by RemoteAddr. Wire it after chi's RealIP middleware so clients
// behind a proxy are keyed by their real address. Requests over the limit
// are rejected with 429.
//
// Buckets idle for more than ten minutes are evicted lazily on the next
// request, keeping the map bounded under churny client populations.
func NewRateLimiter(rps rate.Limit, burst int) func(http.Handler) http.Handler {
	var (
		mu      sync.Mutex
		clients = make(map[string]*clientLimiter)
		lastGC  = time.Now()
	)
	const idleEviction = 10 * time.Minute

	limiterFor := func(key string) *rate.Limiter {
		mu.Lock()
		defer mu.Unlock()

		now := time.Now()
		if now.Sub(lastGC) > idleEviction {
			for k, c := range clients {
				if now.Sub(c.lastSeen) > idleEviction {
					delete(clients, k)
				}
			}
			lastGC = now
		}

		c, ok := clients[key]
		if !ok {
			c = &clientLimiter{limiter: rate.NewLimiter(rps, burst)}
			clients[key] = c
		}
		c.lastSeen = now
		return c.limiter
	}

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if !limiterFor(r.RemoteAddr).Allow() {
				w.Header().Set("Content-Type", "application/json")
				w.WriteHeader(http.StatusTooManyRequests)
				_, _ = w.Write([]byte(`{"error":{"code":"rate_limited","message":"too many requests"}}`))
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}
