package command

import (
	"github.com/hypergonial/hikari-arc-sub000/internal/core/domain"
)

func (c *SlashCommand) Definition() domain.CommandDefinition {
	def := topLevelDefinition(c, c.Guilds(), c.nameLocalizations, c.descriptionLocalizations)
	def.Options = optionDefinitions(c.params)

	return def
}

// Definition serializes the group with its subcommands and subgroups as options.
func (g *SlashGroup) Definition() domain.CommandDefinition {
	def := topLevelDefinition(g, g.Guilds(), g.nameLocalizations, g.descriptionLocalizations)

	for _, child := range g.Children() {
		switch n := child.(type) {
		case *SlashSubcommand:
			def.Options = append(def.Options, n.definition())
		case *SlashSubgroup:
			sub := domain.OptionDefinition{
				Type:                     domain.OptionSubCommandGroup,
				Name:                     n.name,
				Description:              n.description,
				NameLocalizations:        n.nameLocalizations,
				DescriptionLocalizations: n.descriptionLocalizations,
			}
			for _, leaf := range n.Subcommands() {
				sub.Options = append(sub.Options, leaf.definition())
			}
			def.Options = append(def.Options, sub)
		}
	}

	return def
}

func (s *SlashSubcommand) definition() domain.OptionDefinition {
	return domain.OptionDefinition{
		Type:                     domain.OptionSubCommand,
		Name:                     s.name,
		Description:              s.description,
		NameLocalizations:        s.nameLocalizations,
		DescriptionLocalizations: s.descriptionLocalizations,
		Options:                  optionDefinitions(s.params),
	}
}

func (c *ContextMenuCommand) Definition() domain.CommandDefinition {
	return topLevelDefinition(c, c.Guilds(), c.nameLocalizations, nil)
}

func topLevelDefinition(n TopLevelCommand, guilds []domain.Snowflake,
	nameLoc, descLoc map[domain.Locale]string) domain.CommandDefinition {
	settings := n.ResolvedSettings()

	return domain.CommandDefinition{
		Type:                     n.CommandType(),
		Name:                     n.Name(),
		Description:              n.Description(),
		NameLocalizations:        nameLoc,
		DescriptionLocalizations: descLoc,
		DefaultPermissions:       settings.DefaultPermissions,
		DMEnabled:                settings.DMEnabled,
		NSFW:                     settings.NSFW,
		GuildIDs:                 guilds,
	}
}

// Definitions serializes every registered top-level command, slash commands
// first, each type sorted by name.
func (c *Client) Definitions() []domain.CommandDefinition {
	var defs []domain.CommandDefinition
	for _, t := range []domain.CommandType{domain.CommandSlash, domain.CommandUser, domain.CommandMessage} {
		for _, cmd := range c.topLevel(t) {
			defs = append(defs, cmd.Definition())
		}
	}

	return defs
}
