package hook

import (
	"sync"
	"time"

	"github.com/hypergonial/hikari-arc-sub000/internal/core/command"
	"golang.org/x/time/rate"
)

// RateLimiter is a limiter hook that allows limit invocations per period in
// each bucket. Buckets refill continuously. An exhausted bucket aborts the
// invocation with *command.UnderCooldownError.
type RateLimiter struct {
	mu        sync.Mutex
	period    time.Duration
	limit     int
	keyFunc   KeyFunc
	buckets   map[string]*rate.Limiter
	lastPrune time.Time
}

func NewRateLimiter(period time.Duration, limit int, key KeyFunc) *RateLimiter {
	return &RateLimiter{
		period:  period,
		limit:   limit,
		keyFunc: key,
		buckets: make(map[string]*rate.Limiter),
	}
}

// GlobalLimiter shares one bucket between every invocation.
func GlobalLimiter(period time.Duration, limit int) *RateLimiter {
	return NewRateLimiter(period, limit, globalKey)
}

func GuildLimiter(period time.Duration, limit int) *RateLimiter {
	return NewRateLimiter(period, limit, guildKey)
}

func ChannelLimiter(period time.Duration, limit int) *RateLimiter {
	return NewRateLimiter(period, limit, channelKey)
}

func UserLimiter(period time.Duration, limit int) *RateLimiter {
	return NewRateLimiter(period, limit, userKey)
}

// MemberLimiter keys by user and guild, so the same user gets a separate
// bucket in every guild.
func MemberLimiter(period time.Duration, limit int) *RateLimiter {
	return NewRateLimiter(period, limit, memberKey)
}

func (l *RateLimiter) Check(ctx *command.Context) (command.HookResult, error) {
	now := ctx.Client().Clock().Now()

	l.mu.Lock()
	defer l.mu.Unlock()

	b := l.bucket(l.keyFunc(ctx), now)

	r := b.ReserveN(now, 1)
	if !r.OK() {
		return pass, &command.UnderCooldownError{RetryAfter: l.period, Limit: l.limit, Period: l.period}
	}

	if delay := r.DelayFrom(now); delay > 0 {
		r.CancelAt(now)
		return pass, &command.UnderCooldownError{RetryAfter: delay, Limit: l.limit, Period: l.period}
	}

	return pass, nil
}

// Reset refills the bucket of the context.
func (l *RateLimiter) Reset(ctx *command.Context) {
	l.mu.Lock()
	delete(l.buckets, l.keyFunc(ctx))
	l.mu.Unlock()
}

func (l *RateLimiter) IsRateLimited(ctx *command.Context) bool {
	now := ctx.Client().Clock().Now()

	l.mu.Lock()
	defer l.mu.Unlock()

	b, ok := l.buckets[l.keyFunc(ctx)]
	if !ok {
		return false
	}

	return b.TokensAt(now) < 1
}

// bucket returns the limiter for key, dropping full buckets at most once per period.
func (l *RateLimiter) bucket(key string, now time.Time) *rate.Limiter {
	if now.Sub(l.lastPrune) > l.period {
		for k, b := range l.buckets {
			if b.TokensAt(now) >= float64(l.limit) {
				delete(l.buckets, k)
			}
		}
		l.lastPrune = now
	}

	b, ok := l.buckets[key]
	if !ok {
		b = rate.NewLimiter(rate.Every(l.period/time.Duration(max(l.limit, 1))), l.limit)
		l.buckets[key] = b
	}

	return b
}
