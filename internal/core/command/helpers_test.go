package command

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/hypergonial/hikari-arc-sub000/internal/core/domain"
	"github.com/stretchr/testify/require"
)

var epoch = time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)

type fakeClock struct {
	mu      sync.Mutex
	now     time.Time
	waiters []fakeWaiter
}

type fakeWaiter struct {
	at time.Time
	ch chan time.Time
}

func newFakeClock() *fakeClock {
	return &fakeClock{now: epoch}
}

func (c *fakeClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()

	return c.now
}

func (c *fakeClock) After(d time.Duration) <-chan time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()

	ch := make(chan time.Time, 1)
	if d <= 0 {
		ch <- c.now
		return ch
	}

	c.waiters = append(c.waiters, fakeWaiter{at: c.now.Add(d), ch: ch})

	return ch
}

// Advance moves the clock forward and fires every timer that became due.
func (c *fakeClock) Advance(d time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.now = c.now.Add(d)

	pending := c.waiters[:0]
	for _, w := range c.waiters {
		if !w.at.After(c.now) {
			w.ch <- c.now
			continue
		}
		pending = append(pending, w)
	}
	c.waiters = pending
}

func (c *fakeClock) pending() int {
	c.mu.Lock()
	defer c.mu.Unlock()

	return len(c.waiters)
}

// waitForTimers blocks until n timers are armed on the clock.
func waitForTimers(t *testing.T, clock *fakeClock, n int) {
	t.Helper()
	require.Eventually(t, func() bool { return clock.pending() >= n }, time.Second, time.Millisecond)
}

type sent struct {
	Kind    string
	Type    domain.ResponseType
	Content string
	Flags   domain.MessageFlags
}

type recordingResponder struct {
	mu      sync.Mutex
	sent    []sent
	choices [][]domain.Choice
	nextID  domain.Snowflake
	failErr error
}

func (r *recordingResponder) record(s sent) {
	r.mu.Lock()
	r.sent = append(r.sent, s)
	r.mu.Unlock()
}

func (r *recordingResponder) Sent() []sent {
	r.mu.Lock()
	defer r.mu.Unlock()

	if len(r.sent) == 0 {
		return nil
	}

	out := make([]sent, len(r.sent))
	copy(out, r.sent)

	return out
}

func (r *recordingResponder) message(content string) *domain.Message {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.nextID++

	return &domain.Message{ID: 1000 + r.nextID, Content: content}
}

func (r *recordingResponder) CreateInitialResponse(_ context.Context, _ *domain.Interaction,
	resp domain.InitialResponse) error {
	if r.failErr != nil {
		return r.failErr
	}

	s := sent{Kind: "initial", Type: resp.Type, Flags: resp.Flags}
	if resp.Message != nil {
		s.Content = resp.Message.Content
		s.Flags = resp.Message.Flags
	}
	if resp.Modal != nil {
		s.Content = resp.Modal.Title
	}
	r.record(s)

	return nil
}

func (r *recordingResponder) CreateFollowup(_ context.Context, _ *domain.Interaction,
	payload domain.MessagePayload) (*domain.Message, error) {
	if r.failErr != nil {
		return nil, r.failErr
	}

	r.record(sent{Kind: "followup", Content: payload.Content, Flags: payload.Flags})

	return r.message(payload.Content), nil
}

func (r *recordingResponder) FetchInitialResponse(context.Context, *domain.Interaction) (*domain.Message, error) {
	return &domain.Message{ID: 1, Content: "initial"}, nil
}

func (r *recordingResponder) EditInitialResponse(_ context.Context, _ *domain.Interaction,
	payload domain.MessagePayload) (*domain.Message, error) {
	r.record(sent{Kind: "edit_initial", Content: payload.Content})
	return &domain.Message{ID: 1, Content: payload.Content}, nil
}

func (r *recordingResponder) EditFollowup(_ context.Context, _ *domain.Interaction, _ domain.Snowflake,
	payload domain.MessagePayload) (*domain.Message, error) {
	r.record(sent{Kind: "edit_followup", Content: payload.Content})
	return r.message(payload.Content), nil
}

func (r *recordingResponder) DeleteInitialResponse(context.Context, *domain.Interaction) error {
	r.record(sent{Kind: "delete_initial"})
	return nil
}

func (r *recordingResponder) DeleteFollowup(context.Context, *domain.Interaction, domain.Snowflake) error {
	r.record(sent{Kind: "delete_followup"})
	return nil
}

func (r *recordingResponder) CreateAutocompleteResponse(_ context.Context, _ *domain.Interaction,
	choices []domain.Choice) error {
	r.mu.Lock()
	r.choices = append(r.choices, choices)
	r.mu.Unlock()

	return nil
}

func newTestClient(t *testing.T, opts ...Option) (*Client, *recordingResponder, *fakeClock) {
	t.Helper()

	responder := &recordingResponder{}
	clock := newFakeClock()

	client, err := NewClient(responder, append([]Option{WithClock(clock)}, opts...)...)
	require.NoError(t, err)

	return client, responder, clock
}

func slashInteraction(name string, options ...*domain.InteractionOption) *domain.Interaction {
	return &domain.Interaction{
		ID:          42,
		Type:        domain.InteractionCommand,
		CommandName: name,
		CommandType: domain.CommandSlash,
		Options:     options,
		User:        &domain.User{ID: 7, Username: "alice"},
		ChannelID:   99,
		CreatedAt:   epoch,
	}
}

func opt(name string, optionType domain.OptionType, value any) *domain.InteractionOption {
	return &domain.InteractionOption{Name: name, Type: optionType, Value: value}
}

func sub(name string, options ...*domain.InteractionOption) *domain.InteractionOption {
	return &domain.InteractionOption{Name: name, Type: domain.OptionSubCommand, Options: options}
}

func subgroup(name string, options ...*domain.InteractionOption) *domain.InteractionOption {
	return &domain.InteractionOption{Name: name, Type: domain.OptionSubCommandGroup, Options: options}
}

// testContext builds a context for cmd without dispatching it.
func testContext(t *testing.T, client *Client, cmd Callable) *Context {
	t.Helper()
	return newContext(context.Background(), client, cmd, slashInteraction(cmd.Name()))
}

func noop(*Context) error { return nil }
