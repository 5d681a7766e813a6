package hook

import (
	"github.com/hypergonial/hikari-arc-sub000/internal/core/command"
)

// KeyFunc maps an invocation to the bucket it is limited in.
type KeyFunc func(ctx *command.Context) string

func globalKey(*command.Context) string {
	return "global"
}

func guildKey(ctx *command.Context) string {
	return ctx.GuildID().String()
}

func channelKey(ctx *command.Context) string {
	return ctx.ChannelID().String()
}

func userKey(ctx *command.Context) string {
	if author := ctx.Author(); author != nil {
		return author.ID.String()
	}

	return "0"
}

// memberKey separates the same user across guilds.
func memberKey(ctx *command.Context) string {
	return userKey(ctx) + ":" + ctx.GuildID().String()
}
