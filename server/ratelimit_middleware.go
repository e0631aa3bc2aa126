package server

import (
	"net/http"
	"strconv"
	"sync"
	"time"

	apperrors "github.com/microbiomedata/nmdc-orcid-creditor/internal/errors"
	"github.com/rs/zerolog"
	"golang.org/x/time/rate"
)

// keyedLimiter hands out one token bucket per key
type keyedLimiter struct {
	limiters sync.Map // map[string]*rate.Limiter
	rate     rate.Limit
	burst    int

	mu          sync.Mutex
	lastCleanup time.Time
}

func newKeyedLimiter(perMinute int) *keyedLimiter {
	if perMinute <= 0 {
		perMinute = 1
	}
	return &keyedLimiter{
		rate:        rate.Limit(float64(perMinute) / time.Minute.Seconds()),
		burst:       perMinute,
		lastCleanup: time.Now(),
	}
}

func (kl *keyedLimiter) get(key string) *rate.Limiter {
	if limiter, ok := kl.limiters.Load(key); ok {
		return limiter.(*rate.Limiter)
	}
	actual, _ := kl.limiters.LoadOrStore(key, rate.NewLimiter(kl.rate, kl.burst))
	kl.maybeCleanup()
	return actual.(*rate.Limiter)
}

// maybeCleanup drops limiters whose bucket has refilled, at most every five minutes
func (kl *keyedLimiter) maybeCleanup() {
	kl.mu.Lock()
	defer kl.mu.Unlock()

	if time.Since(kl.lastCleanup) < 5*time.Minute {
		return
	}
	kl.lastCleanup = time.Now()

	kl.limiters.Range(func(key, value any) bool {
		if value.(*rate.Limiter).Tokens() >= float64(kl.burst) {
			kl.limiters.Delete(key)
		}
		return true
	})
}

// ClaimRateLimitMiddleware limits claim attempts per ORCID iD. It must run after
// RequireCredential.
func (s *Server) ClaimRateLimitMiddleware() func(http.HandlerFunc) http.HandlerFunc {
	limiter := newKeyedLimiter(s.config.GetClaimRateLimitPerMinute())

	return func(next http.HandlerFunc) http.HandlerFunc {
		return func(w http.ResponseWriter, r *http.Request) {
			cred, ok := credentialFromContext(r.Context())
			if !ok {
				unauthorizedJSON(w, r)
				return
			}

			l := limiter.get(cred.OrcidID)
			if !l.Allow() {
				reservation := l.Reserve()
				delay := reservation.Delay()
				reservation.Cancel()

				retryAfter := max(int(delay.Seconds()), 1)
				w.Header().Set("Retry-After", strconv.Itoa(retryAfter))
				zerolog.Ctx(r.Context()).Warn().Int("retry_after", retryAfter).Msg("claim rate limit exceeded")
				writeError(w, apperrors.ErrRateLimited)
				return
			}

			next(w, r)
		}
	}
}
