package mw

import (
	"math"
	"net/http"
	"strconv"
	"sync"
	"time"

	"github.com/MrSnakeDoc/folio/internal/utils"
)

// RateLimitConfig sizes the per-IP token buckets guarding the login form.
type RateLimitConfig struct {
	Burst             int // attempts available to a fresh client
	RefillPerIPPerMin int // attempts regained per minute
	MaxEntries        int // tracked clients before an early sweep (0 = unbounded)
	SweepInterval     time.Duration
	TrustProxy        bool             // resolve IP from proxy headers when true
	Now               func() time.Time // defaults to time.Now
}

type bucket struct {
	tokens  float64
	updated time.Time
}

// attemptLimiter keeps one bucket per client. A bucket that would be full
// again is indistinguishable from a new one, so sweeps simply drop it.
type attemptLimiter struct {
	cfg      RateLimitConfig
	rate     float64 // tokens per second
	capacity float64

	mu        sync.Mutex
	buckets   map[string]*bucket
	lastSweep time.Time
}

func newAttemptLimiter(cfg RateLimitConfig) *attemptLimiter {
	cfg.Burst = max(cfg.Burst, 1)
	cfg.RefillPerIPPerMin = max(cfg.RefillPerIPPerMin, 1)
	if cfg.SweepInterval <= 0 {
		cfg.SweepInterval = time.Minute
	}
	if cfg.Now == nil {
		cfg.Now = time.Now
	}
	return &attemptLimiter{
		cfg:       cfg,
		rate:      float64(cfg.RefillPerIPPerMin) / 60,
		capacity:  float64(cfg.Burst),
		buckets:   make(map[string]*bucket),
		lastSweep: cfg.Now(),
	}
}

// take spends one attempt for key. When none is left it reports how long
// until the next one.
func (l *attemptLimiter) take(key string, now time.Time) (remaining int, wait time.Duration, ok bool) {
	l.mu.Lock()
	defer l.mu.Unlock()

	full := l.cfg.MaxEntries > 0 && len(l.buckets) >= l.cfg.MaxEntries
	if full || now.Sub(l.lastSweep) >= l.cfg.SweepInterval {
		l.sweep(now)
	}

	b := l.buckets[key]
	if b == nil {
		b = &bucket{tokens: l.capacity, updated: now}
		l.buckets[key] = b
	}
	b.tokens = l.level(b, now)
	b.updated = now

	if b.tokens < 1 {
		wait = time.Duration((1 - b.tokens) / l.rate * float64(time.Second))
		return 0, wait, false
	}
	b.tokens--
	return int(b.tokens), 0, true
}

// level is the token count of b at now.
func (l *attemptLimiter) level(b *bucket, now time.Time) float64 {
	elapsed := now.Sub(b.updated).Seconds()
	if elapsed <= 0 {
		return b.tokens
	}
	return math.Min(l.capacity, b.tokens+elapsed*l.rate)
}

func (l *attemptLimiter) sweep(now time.Time) {
	for key, b := range l.buckets {
		if l.level(b, now) >= l.capacity {
			delete(l.buckets, key)
		}
	}
	l.lastSweep = now
}

// RateLimit answers 429 with Retry-After once the client IP has spent its
// attempts. Only the wrapped routes consume them.
func RateLimit(cfg RateLimitConfig) func(http.Handler) http.Handler {
	l := newAttemptLimiter(cfg)
	limit := strconv.Itoa(l.cfg.Burst)

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			remaining, wait, ok := l.take(utils.ClientIP(r, l.cfg.TrustProxy), l.cfg.Now())

			w.Header().Set("X-RateLimit-Limit", limit)
			w.Header().Set("X-RateLimit-Remaining", strconv.Itoa(remaining))
			if !ok {
				w.Header().Set("Retry-After", strconv.Itoa(max(1, int(math.Ceil(wait.Seconds())))))
				http.Error(w, http.StatusText(http.StatusTooManyRequests), http.StatusTooManyRequests)
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}
