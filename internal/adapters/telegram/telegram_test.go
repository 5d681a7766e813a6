package telegram

import (
	"context"
	"fmt"
	"testing"

	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"
	"github.com/hypergonial/hikari-arc-sub000/internal/core/command"
	"github.com/hypergonial/hikari-arc-sub000/internal/core/domain"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type MockBot struct {
	mock.Mock
}

func (m *MockBot) SendMessage(ctx context.Context, params *bot.SendMessageParams) (*models.Message, error) {
	args := m.Called(ctx, params)
	msg, _ := args.Get(0).(*models.Message)
	return msg, args.Error(1)
}

func (m *MockBot) SendChatAction(ctx context.Context, params *bot.SendChatActionParams) (bool, error) {
	args := m.Called(ctx, params)
	return args.Bool(0), args.Error(1)
}

func (m *MockBot) EditMessageText(ctx context.Context, params *bot.EditMessageTextParams) (*models.Message, error) {
	args := m.Called(ctx, params)
	msg, _ := args.Get(0).(*models.Message)
	return msg, args.Error(1)
}

func (m *MockBot) DeleteMessage(ctx context.Context, params *bot.DeleteMessageParams) (bool, error) {
	args := m.Called(ctx, params)
	return args.Bool(0), args.Error(1)
}

var (
	sumA = command.NewParam[int64]("a", command.IntParams{Description: "First number"})
	sumB = command.NewParam[int64]("b", command.IntParams{Description: "Second number"})
	note = command.NewParam[string]("note", command.StrParams{Description: "A note"}).Optional()
	whom = command.NewParam[*domain.User]("user", command.UserParams{Description: "Target"}).Optional()
)

// newClient builds a client with a sum command and a settings group with a
// nested subgroup.
func newClient(t *testing.T, responder *Responder) *command.Client {
	t.Helper()

	client, err := command.NewClient(responder, command.WithAutodefer(command.AutodeferOff))
	require.NoError(t, err)

	sum := command.Must(command.NewSlashCommand("sum", "Add two numbers", func(ctx *command.Context) error {
		_, err := ctx.Respond(fmt.Sprintf("Sum: %d", sumA.Value(ctx)+sumB.Value(ctx)))
		return err
	}, command.WithParams(sumA, sumB)))

	settings := command.Must(command.NewSlashGroup("settings", "Bot settings"))
	show := command.Must(command.NewSlashSubcommand("show", "Show settings", func(ctx *command.Context) error {
		_, err := ctx.Respond("settings")
		return err
	}))
	user := command.Must(command.NewSlashSubgroup("user", "Per-user settings"))
	set := command.Must(command.NewSlashSubcommand("set", "Set a note", func(ctx *command.Context) error {
		target, _ := whom.Lookup(ctx)
		name := "you"
		if target != nil {
			name = target.Username
		}
		_, err := ctx.Respond(fmt.Sprintf("%s: %s", name, note.Value(ctx)))
		return err
	}, command.WithParams(note, whom)))

	require.NoError(t, settings.Include(show))
	require.NoError(t, user.Include(set))
	require.NoError(t, settings.IncludeSubgroup(user))
	require.NoError(t, client.Include(sum))
	require.NoError(t, client.Include(settings))

	return client
}

func textUpdate(text string) *models.Update {
	return &models.Update{
		ID: 500,
		Message: &models.Message{
			ID:   42,
			Text: text,
			Chat: models.Chat{ID: -1001234, Type: models.ChatTypeSupergroup},
			From: &models.User{ID: 200, Username: "bob", FirstName: "Bob", LanguageCode: "de"},
		},
	}
}
