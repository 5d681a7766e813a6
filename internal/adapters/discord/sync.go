package discord

import (
	"context"
	"fmt"
	"sort"

	"github.com/bwmarrin/discordgo"
	"github.com/hypergonial/hikari-arc-sub000/internal/core/domain"
	"github.com/rs/zerolog/log"
)

// SyncCommands overwrites the registered commands with defs, once globally and
// once per guild that any definition is scoped to.
func SyncCommands(ctx context.Context, session Session, appID string, defs []domain.CommandDefinition) error {
	scopes := groupByGuild(defs)

	guilds := make([]string, 0, len(scopes))
	for guild := range scopes {
		guilds = append(guilds, guild)
	}
	sort.Strings(guilds)

	for _, guild := range guilds {
		cmds := scopes[guild]

		logger := log.With().Str("guild", guild).Int("commands", len(cmds)).Logger()
		logger.Debug().Msg("overwriting application commands")

		if _, err := session.ApplicationCommandBulkOverwrite(appID, guild, cmds, discordgo.WithContext(ctx)); err != nil {
			return fmt.Errorf("syncing commands for guild '%s': %w", guild, err)
		}

		logger.Info().Msg("synced application commands")
	}

	return nil
}

// groupByGuild maps each guild ID, or "" for global commands, to its commands.
// The global scope is always present so that stale global commands are removed.
func groupByGuild(defs []domain.CommandDefinition) map[string][]*discordgo.ApplicationCommand {
	scopes := map[string][]*discordgo.ApplicationCommand{"": {}}

	for _, def := range defs {
		cmd := toApplicationCommand(def)

		if len(def.GuildIDs) == 0 {
			scopes[""] = append(scopes[""], cmd)
			continue
		}

		for _, guild := range def.GuildIDs {
			scopes[guild.String()] = append(scopes[guild.String()], cmd)
		}
	}

	return scopes
}

func toApplicationCommand(def domain.CommandDefinition) *discordgo.ApplicationCommand {
	cmd := &discordgo.ApplicationCommand{
		Type:         discordgo.ApplicationCommandType(def.Type),
		Name:         def.Name,
		Description:  def.Description,
		DMPermission: &def.DMEnabled,
		NSFW:         &def.NSFW,
		Options:      toCommandOptions(def.Options),
	}

	if len(def.NameLocalizations) > 0 {
		loc := toLocalizations(def.NameLocalizations)
		cmd.NameLocalizations = &loc
	}

	if len(def.DescriptionLocalizations) > 0 {
		loc := toLocalizations(def.DescriptionLocalizations)
		cmd.DescriptionLocalizations = &loc
	}

	if def.DefaultPermissions != nil {
		perms := int64(*def.DefaultPermissions)
		cmd.DefaultMemberPermissions = &perms
	}

	return cmd
}

func toCommandOptions(defs []domain.OptionDefinition) []*discordgo.ApplicationCommandOption {
	if len(defs) == 0 {
		return nil
	}

	out := make([]*discordgo.ApplicationCommandOption, 0, len(defs))
	for _, def := range defs {
		opt := &discordgo.ApplicationCommandOption{
			Type:                     discordgo.ApplicationCommandOptionType(def.Type),
			Name:                     def.Name,
			Description:              def.Description,
			NameLocalizations:        toLocalizations(def.NameLocalizations),
			DescriptionLocalizations: toLocalizations(def.DescriptionLocalizations),
			Required:                 def.Required,
			Autocomplete:             def.Autocomplete,
			MinValue:                 def.MinValue,
			MinLength:                def.MinLength,
			Options:                  toCommandOptions(def.Options),
		}

		if def.MaxValue != nil {
			opt.MaxValue = *def.MaxValue
		}

		if def.MaxLength != nil {
			opt.MaxLength = *def.MaxLength
		}

		for _, ct := range def.ChannelTypes {
			opt.ChannelTypes = append(opt.ChannelTypes, discordgo.ChannelType(ct))
		}

		for _, c := range def.Choices {
			opt.Choices = append(opt.Choices, &discordgo.ApplicationCommandOptionChoice{Name: c.Name, Value: c.Value})
		}

		out = append(out, opt)
	}

	return out
}

func toLocalizations(in map[domain.Locale]string) map[discordgo.Locale]string {
	if len(in) == 0 {
		return nil
	}

	out := make(map[discordgo.Locale]string, len(in))
	for k, v := range in {
		out[discordgo.Locale(k)] = v
	}

	return out
}
