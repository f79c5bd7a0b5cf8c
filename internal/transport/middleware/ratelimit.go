package middleware

import (
	"math"
	"net"
	"net/http"
	"strconv"
	"sync"
	"time"

	"github.com/heartmarshall/wordlookup/pkg/ctxutil"
)

// bucketIdleTTL is how long an untouched bucket survives the sweep.
const bucketIdleTTL = 10 * time.Minute

// RateLimiter keeps one token bucket per caller. Extension installs are keyed
// by their client ID, anonymous callers by remote IP.
type RateLimiter struct {
	buckets sync.Map // key -> *bucket
	now     func() time.Time
	stop    chan struct{}
}

type bucket struct {
	mu       sync.Mutex
	tokens   float64
	capacity float64
	perSec   float64
	seen     time.Time
}

// NewRateLimiter starts a limiter that sweeps idle buckets every
// cleanupInterval. Call Stop on shutdown.
func NewRateLimiter(cleanupInterval time.Duration) *RateLimiter {
	return newRateLimiter(cleanupInterval, time.Now)
}

func newRateLimiter(cleanupInterval time.Duration, now func() time.Time) *RateLimiter {
	rl := &RateLimiter{now: now, stop: make(chan struct{})}
	go rl.sweepEvery(cleanupInterval)
	return rl
}

// Stop ends the sweep goroutine.
func (rl *RateLimiter) Stop() {
	close(rl.stop)
}

// Limit allows each caller a burst of perMinute requests refilled evenly over
// a minute. Rejections get a JSON 429 with Retry-After in whole seconds.
func (rl *RateLimiter) Limit(perMinute int) Middleware {
	retryAfter := strconv.Itoa(int(math.Ceil(60 / float64(perMinute))))

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if !rl.take(callerKey(r), perMinute) {
				w.Header().Set("Retry-After", retryAfter)
				w.Header().Set("Content-Type", "application/json")
				w.WriteHeader(http.StatusTooManyRequests)
				_, _ = w.Write([]byte(`{"error":"rate limit exceeded"}` + "\n"))
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

func callerKey(r *http.Request) string {
	if id, ok := ctxutil.ClientIDFromCtx(r.Context()); ok {
		return "client:" + id.String()
	}
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		host = r.RemoteAddr
	}
	return "ip:" + host
}

func (rl *RateLimiter) take(key string, perMinute int) bool {
	now := rl.now()
	capacity := float64(perMinute)
	v, _ := rl.buckets.LoadOrStore(key, &bucket{
		tokens:   capacity,
		capacity: capacity,
		perSec:   capacity / 60,
		seen:     now,
	})

	b := v.(*bucket)
	b.mu.Lock()
	defer b.mu.Unlock()

	b.tokens = min(b.capacity, b.tokens+now.Sub(b.seen).Seconds()*b.perSec)
	b.seen = now
	if b.tokens < 1 {
		return false
	}
	b.tokens--
	return true
}

func (rl *RateLimiter) sweepEvery(interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-rl.stop:
			return
		case <-ticker.C:
			rl.sweep(rl.now())
		}
	}
}

// sweep drops buckets idle for longer than bucketIdleTTL. A dropped bucket
// would have refilled to capacity anyway.
func (rl *RateLimiter) sweep(now time.Time) {
	rl.buckets.Range(func(key, v any) bool {
		b := v.(*bucket)
		b.mu.Lock()
		idle := now.Sub(b.seen)
		b.mu.Unlock()
		if idle > bucketIdleTTL {
			rl.buckets.Delete(key)
		}
		return true
	})
}
