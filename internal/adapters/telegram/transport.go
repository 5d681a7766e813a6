package telegram

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"
	"github.com/hypergonial/hikari-arc-sub000/internal/core/command"
	"github.com/hypergonial/hikari-arc-sub000/internal/core/domain"
	"github.com/rs/zerolog/log"
	"github.com/spf13/viper"
)

// Transport feeds telegram text commands into a command client.
type Transport struct {
	bot          *bot.Bot
	client       *command.Client
	username     string
	timeout      time.Duration
	syncCommands bool
}

func NewBot(token string) (*bot.Bot, error) {
	b, err := bot.New(token, bot.WithDefaultHandler(noOpHandler))
	if err != nil {
		return nil, fmt.Errorf("failed initializing telegram bot: %w", err)
	}

	return b, nil
}

func NewTransport(b *bot.Bot, client *command.Client) *Transport {
	return &Transport{
		bot:          b,
		client:       client,
		timeout:      viper.GetDuration("handler.timeout"),
		syncCommands: viper.GetBool("telegram.sync_commands"),
	}
}

// Run registers the command handler and polls for updates until ctx is done.
func (t *Transport) Run(ctx context.Context) error {
	me, err := t.bot.GetMe(ctx)
	if err != nil {
		return fmt.Errorf("failed fetching bot user: %w", err)
	}

	t.username = me.Username

	if t.syncCommands {
		if _, err := t.bot.SetMyCommands(ctx, &bot.SetMyCommandsParams{Commands: BotCommands(t.client)}); err != nil {
			return fmt.Errorf("failed setting bot commands: %w", err)
		}
	}

	if err := t.client.Start(ctx); err != nil {
		return err
	}

	t.bot.RegisterHandler(bot.HandlerTypeMessageText, "/", bot.MatchTypePrefix, t.Handle)

	log.Info().Str("username", t.username).Msg("telegram bot listening")
	t.bot.Start(ctx)

	if err := t.client.Close(context.WithoutCancel(ctx)); err != nil {
		log.Warn().Err(err).Msg("shutdown hooks failed")
	}

	return nil
}

func (t *Transport) Handle(ctx context.Context, _ *bot.Bot, update *models.Update) {
	go t.dispatch(ctx, update)
}

func (t *Transport) dispatch(ctx context.Context, update *models.Update) {
	interaction, err := toInteraction(update, t.client, t.username, time.Now())
	if errors.Is(err, ErrNotACommand) {
		return
	}

	var usageErr *UsageError
	if errors.As(err, &usageErr) {
		t.replyUsage(ctx, interaction, usageErr)
		return
	}

	if err != nil {
		log.Warn().Err(err).Msg("failed converting telegram message")
		return
	}

	log.Debug().Str("command", interaction.CommandName).Msg("received command")

	if t.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, t.timeout)
		defer cancel()
	}

	if err := t.client.HandleCommandInteraction(ctx, interaction); err != nil {
		log.Error().Err(err).Str("command", interaction.CommandName).Msg("failed to respond to command")
	}
}

func (t *Transport) replyUsage(ctx context.Context, interaction *domain.Interaction, usageErr *UsageError) {
	payload := domain.InitialResponse{
		Type:    domain.ResponseMessage,
		Message: &domain.MessagePayload{Content: usageErr.Error()},
	}

	if err := t.client.Responder().CreateInitialResponse(ctx, interaction, payload); err != nil {
		log.Error().Err(err).Msg("failed to send usage")
	}
}

// BotCommands lists the top-level slash commands for the telegram command menu.
func BotCommands(client *command.Client) []models.BotCommand {
	var cmds []models.BotCommand

	for _, def := range client.Definitions() {
		if def.Type != domain.CommandSlash {
			continue
		}

		cmds = append(cmds, models.BotCommand{Command: def.Name, Description: def.Description})
	}

	return cmds
}

func noOpHandler(_ context.Context, _ *bot.Bot, _ *models.Update) {}
