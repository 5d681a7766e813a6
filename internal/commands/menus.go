package commands

import (
	"fmt"
	"strings"

	"github.com/hypergonial/hikari-arc-sub000/internal/core/command"
	"github.com/hypergonial/hikari-arc-sub000/internal/core/domain"
)

func (s *Set) menus() (*command.Plugin, error) {
	plugin, err := command.NewPlugin("menus",
		command.WithAutodefer(command.AutodeferOff),
		command.WithErrorHandler(s.handleError),
	)
	if err != nil {
		return nil, err
	}

	userinfo, err := command.NewUserCommand("userinfo", userInfo)
	if err != nil {
		return nil, err
	}

	quote, err := command.NewMessageCommand("quote", func(ctx *command.Context, target *domain.Message) error {
		_, err := ctx.Respond(quoteMessage(target))
		return err
	})
	if err != nil {
		return nil, err
	}

	for _, cmd := range []command.TopLevelCommand{userinfo, quote} {
		if err := plugin.Include(cmd); err != nil {
			return nil, err
		}
	}

	return plugin, nil
}

func userInfo(ctx *command.Context, target *domain.User) error {
	embed := domain.Embed{
		Title: target.DisplayName(),
		Fields: []domain.EmbedField{
			{Name: "Username", Value: target.Username, Inline: true},
			{Name: "ID", Value: target.ID.String(), Inline: true},
			{Name: "Created", Value: fmt.Sprintf("<t:%d:R>", target.ID.Time().Unix()), Inline: true},
		},
	}

	if target.IsBot {
		embed.Description = "🤖 This user is a bot."
	}

	if member := ctx.TargetMember(); member != nil {
		if member.Nickname != "" {
			embed.Fields = append(embed.Fields, domain.EmbedField{Name: "Nickname", Value: member.Nickname, Inline: true})
		}

		roles := make([]string, 0, len(member.RoleIDs))
		for _, id := range member.RoleIDs {
			roles = append(roles, fmt.Sprintf("<@&%s>", id))
		}

		if len(roles) > 0 {
			embed.Fields = append(embed.Fields, domain.EmbedField{Name: "Roles", Value: strings.Join(roles, " ")})
		}
	}

	_, err := ctx.Respond("", command.WithEmbeds(embed), command.WithEphemeral())

	return err
}

func quoteMessage(m *domain.Message) string {
	content := strings.TrimSpace(m.Content)
	if content == "" {
		content = "*no text content*"
	}

	lines := strings.Split(content, "\n")
	for i, line := range lines {
		lines[i] = "> " + line
	}

	author := "unknown"
	if m.Author != nil {
		author = m.Author.DisplayName()
	}

	return fmt.Sprintf("%s\n- **%s**", strings.Join(lines, "\n"), author)
}
