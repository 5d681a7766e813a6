package hook

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/hypergonial/hikari-arc-sub000/internal/core/command"
	"github.com/hypergonial/hikari-arc-sub000/internal/core/domain"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type MockResponder struct{ mock.Mock }

func (m *MockResponder) CreateInitialResponse(ctx context.Context, interaction *domain.Interaction,
	response domain.InitialResponse) error {
	args := m.Called(ctx, interaction, response)
	return args.Error(0)
}

func (m *MockResponder) CreateFollowup(ctx context.Context, interaction *domain.Interaction,
	payload domain.MessagePayload) (*domain.Message, error) {
	args := m.Called(ctx, interaction, payload)
	return args.Get(0).(*domain.Message), args.Error(1)
}

func (m *MockResponder) FetchInitialResponse(ctx context.Context, interaction *domain.Interaction) (*domain.Message, error) {
	args := m.Called(ctx, interaction)
	return args.Get(0).(*domain.Message), args.Error(1)
}

func (m *MockResponder) EditInitialResponse(ctx context.Context, interaction *domain.Interaction,
	payload domain.MessagePayload) (*domain.Message, error) {
	args := m.Called(ctx, interaction, payload)
	return args.Get(0).(*domain.Message), args.Error(1)
}

func (m *MockResponder) EditFollowup(ctx context.Context, interaction *domain.Interaction, messageID domain.Snowflake,
	payload domain.MessagePayload) (*domain.Message, error) {
	args := m.Called(ctx, interaction, messageID, payload)
	return args.Get(0).(*domain.Message), args.Error(1)
}

func (m *MockResponder) DeleteInitialResponse(ctx context.Context, interaction *domain.Interaction) error {
	return m.Called(ctx, interaction).Error(0)
}

func (m *MockResponder) DeleteFollowup(ctx context.Context, interaction *domain.Interaction,
	messageID domain.Snowflake) error {
	return m.Called(ctx, interaction, messageID).Error(0)
}

// manualClock only moves when told to.
type manualClock struct {
	mu  sync.Mutex
	now time.Time
}

func (c *manualClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()

	return c.now
}

func (c *manualClock) After(time.Duration) <-chan time.Time {
	return make(chan time.Time)
}

func (c *manualClock) Advance(d time.Duration) {
	c.mu.Lock()
	c.now = c.now.Add(d)
	c.mu.Unlock()
}

var start = time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)

func newClient(t *testing.T, responder *MockResponder, opts ...command.Option) (*command.Client, *manualClock) {
	t.Helper()

	clock := &manualClock{now: start}
	client, err := command.NewClient(responder,
		append([]command.Option{command.WithClock(clock), command.WithAutodefer(command.AutodeferOff)}, opts...)...)
	require.NoError(t, err)

	return client, clock
}

// capture returns an error handler that records what reaches it.
func capture(errs *[]error) command.ErrorHandler {
	return func(_ *command.Context, err error) error {
		*errs = append(*errs, err)
		return nil
	}
}

type invocation struct {
	user      domain.Snowflake
	guild     domain.Snowflake
	channel   domain.Snowflake
	member    *domain.Member
	appPerms  *domain.Permissions
	createdAt time.Time
}

func (i invocation) interaction(name string) *domain.Interaction {
	user := &domain.User{ID: i.user, Username: "user"}

	inter := &domain.Interaction{
		ID:             domain.Snowflake(time.Now().UnixNano()),
		Type:           domain.InteractionCommand,
		CommandName:    name,
		CommandType:    domain.CommandSlash,
		User:           user,
		GuildID:        i.guild,
		ChannelID:      i.channel,
		AppPermissions: i.appPerms,
		CreatedAt:      i.createdAt,
	}

	if i.member != nil {
		member := *i.member
		member.User = user
		inter.Member = &member
	}

	return inter
}
