package command

import (
	"sync"
	"time"

	"github.com/hypergonial/hikari-arc-sub000/internal/core/domain"
)

// seenSet remembers interaction IDs for a fixed time.
type seenSet struct {
	mu        sync.Mutex
	ttl       time.Duration
	clock     Clock
	seen      map[domain.Snowflake]time.Time
	lastPrune time.Time
}

func newSeenSet(ttl time.Duration, clock Clock) *seenSet {
	return &seenSet{ttl: ttl, clock: clock, seen: make(map[domain.Snowflake]time.Time)}
}

// observe records id and reports whether it was already seen within the ttl.
func (s *seenSet) observe(id domain.Snowflake) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.clock.Now()

	if now.Sub(s.lastPrune) > s.ttl {
		for k, at := range s.seen {
			if now.Sub(at) > s.ttl {
				delete(s.seen, k)
			}
		}
		s.lastPrune = now
	}

	if at, ok := s.seen[id]; ok && now.Sub(at) <= s.ttl {
		return true
	}

	s.seen[id] = now

	return false
}
