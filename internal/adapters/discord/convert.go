package discord

import (
	"fmt"
	"strconv"

	"github.com/bwmarrin/discordgo"
	"github.com/hypergonial/hikari-arc-sub000/internal/core/domain"
)

// toInteraction converts a gateway interaction into the platform-neutral model.
// Only application command and autocomplete interactions are supported.
func toInteraction(i *discordgo.Interaction) (*domain.Interaction, error) {
	var interactionType domain.InteractionType

	switch i.Type {
	case discordgo.InteractionApplicationCommand:
		interactionType = domain.InteractionCommand
	case discordgo.InteractionApplicationCommandAutocomplete:
		interactionType = domain.InteractionAutocomplete
	default:
		return nil, fmt.Errorf("interaction type %s: %w", i.Type, domain.ErrUnsupported)
	}

	id, err := domain.ParseSnowflake(i.ID)
	if err != nil {
		return nil, fmt.Errorf("parsing interaction id: %w", err)
	}

	data := i.ApplicationCommandData()

	out := &domain.Interaction{
		ID:            id,
		ApplicationID: snowflake(i.AppID),
		Token:         i.Token,
		Type:          interactionType,
		CommandID:     snowflake(data.ID),
		CommandName:   data.Name,
		CommandType:   domain.CommandType(data.CommandType),
		TargetID:      snowflake(data.TargetID),
		Options:       toOptions(data.Options),
		Resolved:      toResolved(data.Resolved),
		User:          toUser(i.User),
		Member:        toMember(i.Member, i.GuildID),
		GuildID:       snowflake(i.GuildID),
		ChannelID:     snowflake(i.ChannelID),
		Locale:        domain.Locale(i.Locale),
		CreatedAt:     id.Time(),
	}

	if i.GuildLocale != nil {
		out.GuildLocale = domain.Locale(*i.GuildLocale)
	}

	if i.GuildID != "" {
		perms := domain.Permissions(i.AppPermissions)
		out.AppPermissions = &perms
	}

	return out, nil
}

func toOptions(options []*discordgo.ApplicationCommandInteractionDataOption) []*domain.InteractionOption {
	if len(options) == 0 {
		return nil
	}

	out := make([]*domain.InteractionOption, 0, len(options))
	for _, o := range options {
		out = append(out, &domain.InteractionOption{
			Name:    o.Name,
			Type:    domain.OptionType(o.Type),
			Value:   optionValue(domain.OptionType(o.Type), o.Value),
			Focused: o.Focused,
			Options: toOptions(o.Options),
		})
	}

	return out
}

// optionValue normalizes a JSON-decoded option value: integers arrive as
// float64 and foreign references as string IDs.
func optionValue(t domain.OptionType, v any) any {
	switch t {
	case domain.OptionInteger:
		switch n := v.(type) {
		case float64:
			return int64(n)
		case string:
			// autocomplete delivers partial input as typed
			if parsed, err := strconv.ParseInt(n, 10, 64); err == nil {
				return parsed
			}
		}
	case domain.OptionUser, domain.OptionChannel, domain.OptionRole,
		domain.OptionMentionable, domain.OptionAttachment:
		if s, ok := v.(string); ok {
			if id, err := domain.ParseSnowflake(s); err == nil {
				return id
			}
		}
	}

	return v
}

func toResolved(r *discordgo.ApplicationCommandInteractionDataResolved) *domain.ResolvedData {
	if r == nil {
		return nil
	}

	out := &domain.ResolvedData{
		Users:       make(map[domain.Snowflake]*domain.User, len(r.Users)),
		Members:     make(map[domain.Snowflake]*domain.Member, len(r.Members)),
		Roles:       make(map[domain.Snowflake]*domain.Role, len(r.Roles)),
		Channels:    make(map[domain.Snowflake]*domain.Channel, len(r.Channels)),
		Attachments: make(map[domain.Snowflake]*domain.Attachment, len(r.Attachments)),
		Messages:    make(map[domain.Snowflake]*domain.Message, len(r.Messages)),
	}

	for id, u := range r.Users {
		out.Users[snowflake(id)] = toUser(u)
	}

	for id, m := range r.Members {
		out.Members[snowflake(id)] = toMember(m, m.GuildID)
	}

	for id, role := range r.Roles {
		out.Roles[snowflake(id)] = &domain.Role{
			ID:          snowflake(role.ID),
			Name:        role.Name,
			Color:       role.Color,
			Permissions: domain.Permissions(role.Permissions),
		}
	}

	for id, ch := range r.Channels {
		out.Channels[snowflake(id)] = &domain.Channel{
			ID:   snowflake(ch.ID),
			Name: ch.Name,
			Type: domain.ChannelType(ch.Type),
		}
	}

	for id, a := range r.Attachments {
		out.Attachments[snowflake(id)] = &domain.Attachment{
			ID:          snowflake(a.ID),
			Filename:    a.Filename,
			URL:         a.URL,
			ContentType: a.ContentType,
			Size:        a.Size,
		}
	}

	for id, m := range r.Messages {
		out.Messages[snowflake(id)] = toMessage(m)
	}

	return out
}

func toUser(u *discordgo.User) *domain.User {
	if u == nil {
		return nil
	}

	return &domain.User{
		ID:         snowflake(u.ID),
		Username:   u.Username,
		GlobalName: u.GlobalName,
		IsBot:      u.Bot,
	}
}

func toMember(m *discordgo.Member, guildID string) *domain.Member {
	if m == nil {
		return nil
	}

	roles := make([]domain.Snowflake, 0, len(m.Roles))
	for _, r := range m.Roles {
		roles = append(roles, snowflake(r))
	}

	return &domain.Member{
		User:        toUser(m.User),
		GuildID:     snowflake(guildID),
		Nickname:    m.Nick,
		RoleIDs:     roles,
		Permissions: domain.Permissions(m.Permissions),
	}
}

func toMessage(m *discordgo.Message) *domain.Message {
	if m == nil {
		return nil
	}

	return &domain.Message{
		ID:        snowflake(m.ID),
		ChannelID: snowflake(m.ChannelID),
		Content:   m.Content,
		Author:    toUser(m.Author),
	}
}

// snowflake parses an ID, mapping empty or malformed IDs to zero.
func snowflake(s string) domain.Snowflake {
	id, err := domain.ParseSnowflake(s)
	if err != nil {
		return 0
	}

	return id
}

// rawInteraction rebuilds the minimal gateway interaction the REST endpoints need.
func rawInteraction(i *domain.Interaction) *discordgo.Interaction {
	return &discordgo.Interaction{
		ID:    i.ID.String(),
		AppID: i.ApplicationID.String(),
		Token: i.Token,
	}
}

func toEmbeds(embeds []domain.Embed) []*discordgo.MessageEmbed {
	if len(embeds) == 0 {
		return nil
	}

	out := make([]*discordgo.MessageEmbed, 0, len(embeds))
	for _, e := range embeds {
		fields := make([]*discordgo.MessageEmbedField, 0, len(e.Fields))
		for _, f := range e.Fields {
			fields = append(fields, &discordgo.MessageEmbedField{Name: f.Name, Value: f.Value, Inline: f.Inline})
		}

		out = append(out, &discordgo.MessageEmbed{
			Title:       e.Title,
			Description: e.Description,
			URL:         e.URL,
			Color:       e.Color,
			Fields:      fields,
		})
	}

	return out
}

func toModal(m *domain.Modal) *discordgo.InteractionResponseData {
	rows := make([]discordgo.MessageComponent, 0, len(m.Inputs))
	for _, in := range m.Inputs {
		rows = append(rows, discordgo.ActionsRow{
			Components: []discordgo.MessageComponent{
				discordgo.TextInput{
					CustomID:    in.CustomID,
					Label:       in.Label,
					Style:       discordgo.TextInputStyle(in.Style),
					Placeholder: in.Placeholder,
					Value:       in.Value,
					Required:    in.Required,
					MinLength:   in.MinLength,
					MaxLength:   in.MaxLength,
				},
			},
		})
	}

	return &discordgo.InteractionResponseData{
		CustomID:   m.CustomID,
		Title:      m.Title,
		Components: rows,
	}
}
