package middleware

import (
	"fmt"
	"math"
	"strconv"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog/log"
	"golang.org/x/time/rate"
)

// Quota is the request allowance of a single API token
type Quota struct {
	PerMinute int
	Burst     int
}

// DefaultQuota is 100 requests per minute with bursts of 10
var DefaultQuota = Quota{PerMinute: 100, Burst: 10}

const (
	sweepEvery = 5 * time.Minute
	idleAfter  = 10 * time.Minute
)

// Verdict is the outcome of charging one request against a token's bucket
type Verdict struct {
	Allowed    bool
	Remaining  int
	RetryAfter time.Duration
	// FullAt is when the bucket is back at its burst size
	FullAt time.Time
}

// RateLimiter keeps one token bucket per API token. Idle buckets are swept.
type RateLimiter struct {
	quota   Quota
	refill  rate.Limit
	mu      sync.Mutex
	buckets map[uuid.UUID]*bucket
	stop    chan struct{}
	once    sync.Once
}

type bucket struct {
	limiter *rate.Limiter
	touched time.Time
}

// NewRateLimiter starts a limiter that applies quota to every API token
func NewRateLimiter(quota Quota) *RateLimiter {
	rl := &RateLimiter{
		quota:   quota,
		refill:  rate.Limit(float64(quota.PerMinute) / 60),
		buckets: make(map[uuid.UUID]*bucket),
		stop:    make(chan struct{}),
	}
	go rl.sweep()
	return rl
}

// Charge spends one request from the token's bucket. A refused request
// costs nothing.
func (r *RateLimiter) Charge(tokenID uuid.UUID) Verdict {
	now := time.Now()

	r.mu.Lock()
	defer r.mu.Unlock()

	b, ok := r.buckets[tokenID]
	if !ok {
		b = &bucket{limiter: rate.NewLimiter(r.refill, r.quota.Burst)}
		r.buckets[tokenID] = b
	}
	b.touched = now

	reservation := b.limiter.ReserveN(now, 1)
	if wait := reservation.DelayFrom(now); wait > 0 {
		reservation.CancelAt(now)
		return Verdict{RetryAfter: wait, FullAt: r.fullAt(b, now)}
	}

	left := b.limiter.TokensAt(now)
	return Verdict{Allowed: true, Remaining: int(math.Max(0, left)), FullAt: r.fullAt(b, now)}
}

func (r *RateLimiter) fullAt(b *bucket, now time.Time) time.Time {
	missing := float64(r.quota.Burst) - b.limiter.TokensAt(now)
	if missing <= 0 {
		return now
	}
	return now.Add(time.Duration(missing / float64(r.refill) * float64(time.Second)))
}

func (r *RateLimiter) sweep() {
	ticker := time.NewTicker(sweepEvery)
	defer ticker.Stop()

	for {
		select {
		case <-r.stop:
			return
		case now := <-ticker.C:
			r.mu.Lock()
			for id, b := range r.buckets {
				if now.Sub(b.touched) > idleAfter {
					delete(r.buckets, id)
				}
			}
			tracked := len(r.buckets)
			r.mu.Unlock()
			log.Debug().Int("tracked_tokens", tracked).Msg("Swept idle rate limit buckets")
		}
	}
}

// Stop ends the sweeper. Safe to call more than once.
func (r *RateLimiter) Stop() {
	r.once.Do(func() { close(r.stop) })
}

// RateLimitMiddleware applies the per-token quota to API token requests.
// Browser sessions are not limited.
func RateLimitMiddleware(rl *RateLimiter) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			tokenID := GetAPITokenID(c)
			if !IsAPITokenAuth(c) || tokenID == uuid.Nil {
				return next(c)
			}

			verdict := rl.Charge(tokenID)
			header := c.Response().Header()
			header.Set("X-RateLimit-Limit", strconv.Itoa(rl.quota.PerMinute))
			header.Set("X-RateLimit-Remaining", strconv.Itoa(verdict.Remaining))
			header.Set("X-RateLimit-Reset", strconv.FormatInt(verdict.FullAt.Unix(), 10))

			if verdict.Allowed {
				return next(c)
			}

			seconds := int(math.Ceil(verdict.RetryAfter.Seconds()))
			header.Set("Retry-After", strconv.Itoa(seconds))
			log.Warn().
				Str("token_id", tokenID.String()).
				Int32("workspace_id", GetWorkspaceID(c)).
				Int("retry_after", seconds).
				Msg("API token over quota")
			return rateLimitError(c, fmt.Sprintf("Too many requests. Please retry after %d seconds.", seconds))
		}
	}
}
