package discord

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/bwmarrin/discordgo"
	"github.com/hypergonial/hikari-arc-sub000/internal/core/command"
	"github.com/hypergonial/hikari-arc-sub000/internal/core/domain"
	"github.com/rs/zerolog/log"
	"github.com/spf13/viper"
)

// Gateway is the subset of *discordgo.Session needed to receive events.
type Gateway interface {
	Session
	AddHandler(handler interface{}) func()
	Open() error
	Close() error
}

// Bot feeds gateway interactions into a command client.
type Bot struct {
	session      Gateway
	client       *command.Client
	syncCommands bool
	timeout      time.Duration
}

// NewSession creates a gateway session authenticated with a bot token.
func NewSession(token string) (*discordgo.Session, error) {
	session, err := discordgo.New("Bot " + token)
	if err != nil {
		return nil, fmt.Errorf("failed initializing discord session: %w", err)
	}

	session.Identify.Intents = discordgo.IntentsGuilds

	return session, nil
}

func NewBot(session Gateway, client *command.Client) *Bot {
	return &Bot{
		session:      session,
		client:       client,
		syncCommands: viper.GetBool("discord.sync_commands"),
		timeout:      viper.GetDuration("handler.timeout"),
	}
}

// Run opens the gateway, prepares the client and blocks until ctx is done.
func (b *Bot) Run(ctx context.Context) error {
	remove := b.session.AddHandler(func(_ *discordgo.Session, i *discordgo.InteractionCreate) {
		b.handle(ctx, i.Interaction)
	})
	defer remove()

	if err := b.session.Open(); err != nil {
		return fmt.Errorf("failed opening discord gateway: %w", err)
	}

	defer func() {
		if err := b.session.Close(); err != nil {
			log.Warn().Err(err).Msg("failed closing discord gateway")
		}
	}()

	if err := b.prepare(ctx); err != nil {
		return err
	}

	log.Info().Msg("discord bot listening")
	<-ctx.Done()

	if err := b.client.Close(context.WithoutCancel(ctx)); err != nil {
		log.Warn().Err(err).Msg("shutdown hooks failed")
	}

	return nil
}

// prepare discovers the application owners, syncs commands and runs the
// client's startup hooks.
func (b *Bot) prepare(ctx context.Context) error {
	app, err := b.session.Application("@me")
	if err != nil {
		return fmt.Errorf("failed fetching application: %w", err)
	}

	owners := append(b.client.OwnerIDs(), applicationOwners(app)...)
	b.client.SetOwnerIDs(owners...)

	log.Debug().Int("owners", len(owners)).Msg("resolved application owners")

	if b.syncCommands {
		if err := SyncCommands(ctx, b.session, app.ID, b.client.Definitions()); err != nil {
			return err
		}
	}

	if err := b.client.Start(ctx); err != nil {
		return err
	}

	return nil
}

func (b *Bot) handle(ctx context.Context, raw *discordgo.Interaction) {
	interaction, err := toInteraction(raw)
	if errors.Is(err, domain.ErrUnsupported) {
		log.Debug().Str("interaction", raw.ID).Msg("ignoring unsupported interaction")
		return
	}

	if err != nil {
		log.Warn().Err(err).Msg("failed converting interaction")
		return
	}

	if b.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, b.timeout)
		defer cancel()
	}

	if err := b.client.HandleInteraction(ctx, interaction); err != nil {
		log.Error().Err(err).Str("interaction", interaction.ID.String()).Msg("failed handling interaction")
	}
}

func applicationOwners(app *discordgo.Application) []domain.Snowflake {
	var owners []domain.Snowflake

	if app.Owner != nil {
		owners = append(owners, snowflake(app.Owner.ID))
	}

	if app.Team != nil {
		for _, m := range app.Team.Members {
			if m.User != nil {
				owners = append(owners, snowflake(m.User.ID))
			}
		}
	}

	return owners
}
