package discord

import (
	"testing"

	"github.com/bwmarrin/discordgo"
	"github.com/hypergonial/hikari-arc-sub000/internal/core/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestToInteraction(t *testing.T) {
	guildLocale := discordgo.German

	raw := &discordgo.Interaction{
		ID:             "175928847299117063",
		AppID:          "11",
		Token:          "token",
		Type:           discordgo.InteractionApplicationCommand,
		GuildID:        "22",
		ChannelID:      "33",
		Locale:         discordgo.EnglishUS,
		GuildLocale:    &guildLocale,
		AppPermissions: int64(domain.PermissionSendMessages),
		Member: &discordgo.Member{
			User:        &discordgo.User{ID: "7", Username: "alice", GlobalName: "Alice"},
			Nick:        "ally",
			Roles:       []string{"55"},
			Permissions: int64(domain.PermissionAdministrator),
		},
		Data: discordgo.ApplicationCommandInteractionData{
			ID:          "44",
			Name:        "settings",
			CommandType: discordgo.ChatApplicationCommand,
			Options: []*discordgo.ApplicationCommandInteractionDataOption{
				{
					Name: "user",
					Type: discordgo.ApplicationCommandOptionSubCommandGroup,
					Options: []*discordgo.ApplicationCommandInteractionDataOption{
						{
							Name: "limit",
							Type: discordgo.ApplicationCommandOptionSubCommand,
							Options: []*discordgo.ApplicationCommandInteractionDataOption{
								{Name: "amount", Type: discordgo.ApplicationCommandOptionInteger, Value: float64(5)},
								{Name: "target", Type: discordgo.ApplicationCommandOptionUser, Value: "8"},
								{Name: "note", Type: discordgo.ApplicationCommandOptionString, Value: "hi"},
							},
						},
					},
				},
			},
			Resolved: &discordgo.ApplicationCommandInteractionDataResolved{
				Users: map[string]*discordgo.User{
					"8": {ID: "8", Username: "bob", Bot: true},
				},
				Members: map[string]*discordgo.Member{
					"8": {Nick: "bobby", GuildID: "22"},
				},
				Roles: map[string]*discordgo.Role{
					"55": {ID: "55", Name: "mods", Color: 0xFF0000},
				},
				Channels: map[string]*discordgo.Channel{
					"33": {ID: "33", Name: "general", Type: discordgo.ChannelTypeGuildText},
				},
				Attachments: map[string]*discordgo.MessageAttachment{
					"66": {ID: "66", Filename: "cat.png", URL: "https://cdn/cat.png", ContentType: "image/png", Size: 10},
				},
			},
		},
	}

	got, err := toInteraction(raw)
	require.NoError(t, err)

	assert.Equal(t, domain.Snowflake(175928847299117063), got.ID)
	assert.Equal(t, domain.Snowflake(11), got.ApplicationID)
	assert.Equal(t, domain.InteractionCommand, got.Type)
	assert.Equal(t, domain.CommandSlash, got.CommandType)
	assert.Equal(t, []string{"settings", "user", "limit"}, got.CommandPath())
	assert.Equal(t, domain.LocaleEnglishUS, got.Locale)
	assert.Equal(t, domain.LocaleGerman, got.GuildLocale)
	assert.Equal(t, got.ID.Time(), got.CreatedAt)
	require.NotNil(t, got.AppPermissions)
	assert.Equal(t, domain.PermissionSendMessages, *got.AppPermissions)

	assert.Equal(t, "ally", got.Member.DisplayName())
	assert.Equal(t, domain.Snowflake(22), got.Member.GuildID)
	assert.Equal(t, []domain.Snowflake{55}, got.Member.RoleIDs)
	assert.Equal(t, domain.Snowflake(7), got.Author().ID)

	leaf := got.LeafOptions()
	require.Len(t, leaf, 3)
	assert.Equal(t, int64(5), leaf[0].Value)
	assert.Equal(t, domain.Snowflake(8), leaf[1].Value)
	assert.Equal(t, "hi", leaf[2].Value)

	require.NotNil(t, got.Resolved)
	assert.True(t, got.Resolved.Users[8].IsBot)
	assert.Equal(t, "bobby", got.Resolved.Members[8].Nickname)
	assert.Nil(t, got.Resolved.Members[8].User)
	assert.Equal(t, "mods", got.Resolved.Roles[55].Name)
	assert.Equal(t, domain.ChannelGuildText, got.Resolved.Channels[33].Type)
	assert.Equal(t, "cat.png", got.Resolved.Attachments[66].Filename)
}

func TestToInteraction_Types(t *testing.T) {
	tests := []struct {
		name    string
		raw     *discordgo.Interaction
		want    domain.InteractionType
		wantErr error
	}{
		{
			name: "autocomplete in DM",
			raw: &discordgo.Interaction{
				ID:   "1",
				Type: discordgo.InteractionApplicationCommandAutocomplete,
				User: &discordgo.User{ID: "7"},
				Data: discordgo.ApplicationCommandInteractionData{
					Name: "ask",
					Options: []*discordgo.ApplicationCommandInteractionDataOption{
						{Name: "model", Type: discordgo.ApplicationCommandOptionString, Value: "gp", Focused: true},
					},
				},
			},
			want: domain.InteractionAutocomplete,
		},
		{
			name:    "component interaction",
			raw:     &discordgo.Interaction{ID: "1", Type: discordgo.InteractionMessageComponent},
			wantErr: domain.ErrUnsupported,
		},
		{
			name: "malformed id",
			raw: &discordgo.Interaction{
				ID:   "abc",
				Type: discordgo.InteractionApplicationCommand,
				Data: discordgo.ApplicationCommandInteractionData{Name: "ping"},
			},
			wantErr: assert.AnError,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := toInteraction(tt.raw)

			switch {
			case tt.wantErr == assert.AnError:
				require.Error(t, err)
			case tt.wantErr != nil:
				require.ErrorIs(t, err, tt.wantErr)
			default:
				require.NoError(t, err)
				assert.Equal(t, tt.want, got.Type)
				assert.False(t, got.InGuild())
				assert.Nil(t, got.AppPermissions)
				assert.Equal(t, domain.Snowflake(7), got.Author().ID)
			}
		})
	}
}

func TestOptionValue(t *testing.T) {
	tests := []struct {
		name string
		typ  domain.OptionType
		in   any
		want any
	}{
		{name: "integer from json number", typ: domain.OptionInteger, in: float64(42), want: int64(42)},
		{name: "integer typed during autocomplete", typ: domain.OptionInteger, in: "12", want: int64(12)},
		{name: "partial integer stays raw", typ: domain.OptionInteger, in: "1-", want: "1-"},
		{name: "float stays float", typ: domain.OptionFloat, in: 1.5, want: 1.5},
		{name: "role id", typ: domain.OptionRole, in: "99", want: domain.Snowflake(99)},
		{name: "attachment id", typ: domain.OptionAttachment, in: "100", want: domain.Snowflake(100)},
		{name: "string", typ: domain.OptionString, in: "99", want: "99"},
		{name: "boolean", typ: domain.OptionBoolean, in: true, want: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, optionValue(tt.typ, tt.in))
		})
	}
}
