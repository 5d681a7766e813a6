package commands

import (
	"errors"
	"fmt"
	"time"

	"github.com/hypergonial/hikari-arc-sub000/internal/core/command"
	"github.com/hypergonial/hikari-arc-sub000/internal/core/domain"
	"github.com/hypergonial/hikari-arc-sub000/internal/core/hook"
	"github.com/hypergonial/hikari-arc-sub000/internal/core/service"
	"github.com/spf13/viper"
)

const forbidden = "You are not authorized to use this bot. Please contact @%s with this ID to get access: %d"

// handleError tells the user about errors they can act on. Everything else is
// passed on to the client.
func (s *Set) handleError(ctx *command.Context, err error) error {
	msg, ok := userMessage(err)
	if !ok {
		return err
	}

	if rerr := respondEphemeral(ctx, msg); rerr != nil {
		ctx.Logger().Warn().Err(rerr).AnErr("cause", err).Msg("failed to report error to user")
	}

	return nil
}

func userMessage(err error) (string, bool) {
	var (
		cooldown     *command.UnderCooldownError
		busy         *command.MaxConcurrencyReachedError
		invokerPerms *command.InvokerMissingPermissionsError
		botPerms     *command.BotMissingPermissionsError
		decodeErr    *command.OptionDecodeError
		notAllowed   *hook.ChannelNotAllowedError
		budget       *service.BudgetExceededError
	)

	switch {
	case errors.As(err, &cooldown):
		return fmt.Sprintf("⏳ Slow down! Try again in %s.", retryAfter(cooldown.RetryAfter)), true
	case errors.As(err, &busy):
		return "⏳ Please wait until your previous request is finished.", true
	case errors.As(err, new(*command.NotOwnerError)):
		return "❌ You are not the owner of the bot.", true
	case errors.As(err, new(*command.GuildOnlyError)):
		return "❌ This command can only be used in a server.", true
	case errors.As(err, new(*command.DMOnlyError)):
		return "❌ This command can only be used in direct messages.", true
	case errors.As(err, &invokerPerms):
		return fmt.Sprintf("❌ You are missing permissions: %s", invokerPerms.Missing), true
	case errors.As(err, &botPerms):
		return fmt.Sprintf("❌ I am missing permissions: %s", botPerms.Missing), true
	case errors.As(err, &notAllowed):
		return fmt.Sprintf(forbidden, viper.GetString("telegram.admin_username"), int64(notAllowed.ChannelID)), true
	case errors.As(err, &decodeErr):
		return fmt.Sprintf("❌ Invalid value for `%s`: %s", decodeErr.Option, decodeErr.Reason), true
	case errors.As(err, &budget):
		return "💸 " + budget.Error(), true
	case errors.Is(err, service.ErrUnknownModel):
		return "❌ I don't know that model. See /settings model list.", true
	case errors.Is(err, domain.ErrEmptyPrompt):
		return "❌ Please tell me what you want to know.", true
	case errors.Is(err, domain.ErrUnsupported):
		return "❌ This is not supported here.", true
	}

	return "", false
}

func retryAfter(d time.Duration) time.Duration {
	if d < time.Second {
		return d.Round(100 * time.Millisecond)
	}

	return d.Round(time.Second)
}
