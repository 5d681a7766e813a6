package hook

import (
	"github.com/hypergonial/hikari-arc-sub000/internal/core/command"
	"github.com/hypergonial/hikari-arc-sub000/internal/core/domain"
)

var pass = command.HookResult{}

// GuildOnly rejects invocations outside of a guild with *command.GuildOnlyError.
func GuildOnly() command.Hook {
	return command.HookFunc(func(ctx *command.Context) (command.HookResult, error) {
		if !ctx.Interaction().InGuild() {
			return pass, &command.GuildOnlyError{}
		}

		return pass, nil
	})
}

// DMOnly rejects invocations inside a guild with *command.DMOnlyError.
func DMOnly() command.Hook {
	return command.HookFunc(func(ctx *command.Context) (command.HookResult, error) {
		if ctx.Interaction().InGuild() {
			return pass, &command.DMOnlyError{}
		}

		return pass, nil
	})
}

// OwnerOnly rejects invokers that are not among the client's owner IDs.
func OwnerOnly() command.Hook {
	return command.HookFunc(func(ctx *command.Context) (command.HookResult, error) {
		author := ctx.Author()
		if author == nil || !ctx.Client().IsOwner(author.ID) {
			return pass, &command.NotOwnerError{}
		}

		return pass, nil
	})
}

// HasPermissions requires the invoking member to hold perms in the channel.
// It implies GuildOnly.
func HasPermissions(perms domain.Permissions) command.Hook {
	return command.HookFunc(func(ctx *command.Context) (command.HookResult, error) {
		member := ctx.Member()
		if member == nil {
			return pass, &command.GuildOnlyError{}
		}

		if missing := member.Permissions.Missing(perms); missing != domain.PermissionsNone {
			return pass, &command.InvokerMissingPermissionsError{Missing: missing}
		}

		return pass, nil
	})
}

// BotHasPermissions requires the application to hold perms in the channel.
// It implies GuildOnly.
func BotHasPermissions(perms domain.Permissions) command.Hook {
	return command.HookFunc(func(ctx *command.Context) (command.HookResult, error) {
		appPerms := ctx.Interaction().AppPermissions
		if appPerms == nil || !ctx.Interaction().InGuild() {
			return pass, &command.GuildOnlyError{}
		}

		if missing := appPerms.Missing(perms); missing != domain.PermissionsNone {
			return pass, &command.BotMissingPermissionsError{Missing: missing}
		}

		return pass, nil
	})
}
