package commands

import (
	"errors"
	"fmt"
	"time"

	"github.com/hypergonial/hikari-arc-sub000/internal/core/command"
	"github.com/hypergonial/hikari-arc-sub000/internal/core/domain"
	"github.com/hypergonial/hikari-arc-sub000/internal/core/hook"
	"github.com/hypergonial/hikari-arc-sub000/internal/core/port"
	"github.com/hypergonial/hikari-arc-sub000/internal/core/service"
	"github.com/rs/zerolog/log"
	"github.com/spf13/viper"
)

// MessageLimit is the longest message content a reply chunk may have.
const MessageLimit = 2000

// UsageTracker is the view of the usage service the commands need.
type UsageTracker interface {
	service.Tracker
	Usage(userID domain.Snowflake) int
}

// Deps are the services the command set is built on. Generator and Usage are
// required for the ai plugin; without them it is left out.
type Deps struct {
	Generator   port.TextGenerator
	Usage       UsageTracker
	Attachments port.AttachmentFetcher
	Models      *service.ModelSelector
}

// Set holds the commands registered against one client.
type Set struct {
	deps Deps

	askLimiter *hook.RateLimiter
	ask        *command.SlashCommand
	prompt     *command.Arg[string]
	file       *command.Arg[*domain.Attachment]
}

// Register builds the command set and adds its plugins to client. Every call
// builds fresh commands, so one Deps can serve several clients.
func Register(client *command.Client, deps Deps) (*Set, error) {
	s := &Set{deps: deps}

	builders := []func() (*command.Plugin, error){s.general, s.menus, s.admin}
	if deps.Generator != nil && deps.Usage != nil && deps.Models != nil {
		builders = append(builders, s.ai)
	} else {
		log.Info().Msg("text generation not configured, skipping ai commands")
	}

	for _, build := range builders {
		plugin, err := build()
		if err != nil {
			return nil, err
		}

		if err := client.AddPlugin(plugin); err != nil {
			return nil, fmt.Errorf("failed to add plugin: %w", err)
		}
	}

	return s, nil
}

// askRateLimit reads the ask cooldown, falling back to two calls per ten seconds.
func askRateLimit() (time.Duration, int) {
	period := viper.GetDuration("ask.rate_period")
	if period <= 0 {
		period = 10 * time.Second
	}

	limit := viper.GetInt("ask.rate_limit")
	if limit <= 0 {
		limit = 2
	}

	return period, limit
}

// respondEphemeral replies privately, as a followup if something was already sent.
func respondEphemeral(ctx *command.Context, content string) error {
	_, err := ctx.Respond(content, command.WithEphemeral())
	return err
}

var errNoAuthor = errors.New("interaction has no author")
