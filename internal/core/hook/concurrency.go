package hook

import (
	"sync"

	"github.com/hypergonial/hikari-arc-sub000/internal/core/command"
	"golang.org/x/sync/semaphore"
)

// ConcurrencyLimiter bounds the number of invocations running at once in
// each bucket. Attach it with command.WithConcurrencyLimiter.
type ConcurrencyLimiter struct {
	mu      sync.Mutex
	limit   int
	keyFunc KeyFunc
	buckets map[string]*slot
}

type slot struct {
	sem  *semaphore.Weighted
	refs int
}

func NewConcurrencyLimiter(limit int, key KeyFunc) *ConcurrencyLimiter {
	return &ConcurrencyLimiter{limit: limit, keyFunc: key, buckets: make(map[string]*slot)}
}

func GlobalConcurrency(limit int) *ConcurrencyLimiter {
	return NewConcurrencyLimiter(limit, globalKey)
}

func GuildConcurrency(limit int) *ConcurrencyLimiter {
	return NewConcurrencyLimiter(limit, guildKey)
}

func ChannelConcurrency(limit int) *ConcurrencyLimiter {
	return NewConcurrencyLimiter(limit, channelKey)
}

func UserConcurrency(limit int) *ConcurrencyLimiter {
	return NewConcurrencyLimiter(limit, userKey)
}

func MemberConcurrency(limit int) *ConcurrencyLimiter {
	return NewConcurrencyLimiter(limit, memberKey)
}

func (l *ConcurrencyLimiter) TryAcquire(ctx *command.Context) bool {
	key := l.keyFunc(ctx)

	l.mu.Lock()
	defer l.mu.Unlock()

	s, ok := l.buckets[key]
	if !ok {
		s = &slot{sem: semaphore.NewWeighted(int64(l.limit))}
		l.buckets[key] = s
	}

	if !s.sem.TryAcquire(1) {
		if s.refs == 0 {
			delete(l.buckets, key)
		}
		return false
	}

	s.refs++

	return true
}

func (l *ConcurrencyLimiter) Release(ctx *command.Context) {
	key := l.keyFunc(ctx)

	l.mu.Lock()
	defer l.mu.Unlock()

	s, ok := l.buckets[key]
	if !ok {
		return
	}

	s.sem.Release(1)
	s.refs--

	if s.refs == 0 {
		delete(l.buckets, key)
	}
}

func (l *ConcurrencyLimiter) Limit() int {
	return l.limit
}

// Active returns how many invocations hold a slot in the context's bucket.
func (l *ConcurrencyLimiter) Active(ctx *command.Context) int {
	l.mu.Lock()
	defer l.mu.Unlock()

	if s, ok := l.buckets[l.keyFunc(ctx)]; ok {
		return s.refs
	}

	return 0
}
