package service

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/hypergonial/hikari-arc-sub000/internal/core/domain"
	"github.com/rs/zerolog/log"
	"github.com/spf13/viper"
)

type Tracker interface {
	AddUsage(userID domain.Snowflake, tokens int)
	CheckLimit(userID domain.Snowflake) error
}

// BudgetExceededError is returned by CheckLimit once a user has spent their
// daily token budget.
type BudgetExceededError struct {
	Limit   int
	ResetIn time.Duration
}

func (e *BudgetExceededError) Error() string {
	return fmt.Sprintf("You have used up your daily budget of %d tokens. It resets in %s.", e.Limit, e.ResetIn)
}

// UsageTracker counts generated tokens per user and resets the counts at midnight.
type UsageTracker struct {
	users      map[domain.Snowflake]int
	dailyLimit int
	mutex      *sync.Mutex
	now        func() time.Time
}

func NewUsageTracker(ctx context.Context) *UsageTracker {
	ut := &UsageTracker{
		users:      make(map[domain.Snowflake]int),
		dailyLimit: viper.GetInt("usage.daily_token_limit"),
		mutex:      &sync.Mutex{},
		now:        time.Now,
	}

	go ut.ResetDailyLimit(ctx)

	return ut
}

func (t *UsageTracker) AddUsage(userID domain.Snowflake, tokens int) {
	t.mutex.Lock()
	t.users[userID] += tokens
	t.mutex.Unlock()
}

// CheckLimit returns a *BudgetExceededError if the user spent more than the
// daily limit. A limit of zero disables the check.
func (t *UsageTracker) CheckLimit(userID domain.Snowflake) error {
	t.mutex.Lock()
	used := t.users[userID]
	t.mutex.Unlock()

	if t.dailyLimit <= 0 || used <= t.dailyLimit {
		return nil
	}

	now := t.now()

	return &BudgetExceededError{
		Limit:   t.dailyLimit,
		ResetIn: nextResetTime(now).Sub(now).Truncate(time.Second),
	}
}

// Usage returns the tokens the user spent today.
func (t *UsageTracker) Usage(userID domain.Snowflake) int {
	t.mutex.Lock()
	defer t.mutex.Unlock()

	return t.users[userID]
}

func (t *UsageTracker) ResetDailyLimit(ctx context.Context) {
	reset := nextResetTime(t.now())

	for {
		log.Debug().Time("reset", reset).Msg("running reset timer")
		select {
		case <-time.After(reset.Sub(t.now())):
			log.Debug().Msg("resetting daily token usage")
			t.reset()
			time.Sleep(time.Second)
			reset = nextResetTime(t.now())
		case <-ctx.Done():
			log.Debug().Msg("stopping daily usage reset")
			return
		}
	}
}

func (t *UsageTracker) reset() {
	t.mutex.Lock()
	t.users = make(map[domain.Snowflake]int)
	t.mutex.Unlock()
}

func nextResetTime(now time.Time) time.Time {
	return time.Date(now.Year(), now.Month(), now.Day()+1, 0, 0, 0, 0, now.Location())
}
