package discord

import (
	"errors"
	"testing"

	"github.com/bwmarrin/discordgo"
	"github.com/hypergonial/hikari-arc-sub000/internal/core/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestToApplicationCommand(t *testing.T) {
	perms := domain.PermissionManageGuild
	minValue, maxValue := 1.0, 10.0
	maxLength := 100

	cmd := toApplicationCommand(domain.CommandDefinition{
		Type:               domain.CommandSlash,
		Name:               "sum",
		Description:        "Add two numbers",
		NameLocalizations:  map[domain.Locale]string{domain.LocaleGerman: "summe"},
		DefaultPermissions: &perms,
		DMEnabled:          false,
		NSFW:               true,
		Options: []domain.OptionDefinition{
			{
				Type:        domain.OptionInteger,
				Name:        "a",
				Description: "First",
				Required:    true,
				MinValue:    &minValue,
				MaxValue:    &maxValue,
				Choices:     []domain.Choice{{Name: "one", Value: int64(1)}},
			},
			{
				Type:         domain.OptionChannel,
				Name:         "where",
				Description:  "Channel",
				MaxLength:    &maxLength,
				ChannelTypes: []domain.ChannelType{domain.ChannelGuildText, domain.ChannelGuildNews},
				Autocomplete: true,
			},
		},
	})

	assert.Equal(t, discordgo.ChatApplicationCommand, cmd.Type)
	assert.Equal(t, "sum", cmd.Name)
	require.NotNil(t, cmd.NameLocalizations)
	assert.Equal(t, "summe", (*cmd.NameLocalizations)[discordgo.German])
	assert.Nil(t, cmd.DescriptionLocalizations)
	assert.Equal(t, int64(domain.PermissionManageGuild), *cmd.DefaultMemberPermissions)
	assert.False(t, *cmd.DMPermission)
	assert.True(t, *cmd.NSFW)

	require.Len(t, cmd.Options, 2)
	a := cmd.Options[0]
	assert.Equal(t, discordgo.ApplicationCommandOptionInteger, a.Type)
	assert.True(t, a.Required)
	assert.Equal(t, 1.0, *a.MinValue)
	assert.Equal(t, 10.0, a.MaxValue)
	assert.Equal(t, int64(1), a.Choices[0].Value)

	where := cmd.Options[1]
	assert.Equal(t, []discordgo.ChannelType{discordgo.ChannelTypeGuildText, discordgo.ChannelTypeGuildNews}, where.ChannelTypes)
	assert.Equal(t, 100, where.MaxLength)
	assert.True(t, where.Autocomplete)
}

func TestToApplicationCommand_Nested(t *testing.T) {
	cmd := toApplicationCommand(domain.CommandDefinition{
		Type:        domain.CommandSlash,
		Name:        "settings",
		Description: "Settings",
		DMEnabled:   true,
		Options: []domain.OptionDefinition{
			{
				Type:        domain.OptionSubCommandGroup,
				Name:        "user",
				Description: "User settings",
				Options: []domain.OptionDefinition{
					{Type: domain.OptionSubCommand, Name: "show", Description: "Show"},
				},
			},
		},
	})

	require.Len(t, cmd.Options, 1)
	assert.Equal(t, discordgo.ApplicationCommandOptionSubCommandGroup, cmd.Options[0].Type)
	require.Len(t, cmd.Options[0].Options, 1)
	assert.Equal(t, discordgo.ApplicationCommandOptionSubCommand, cmd.Options[0].Options[0].Type)
	assert.Nil(t, cmd.Options[0].Options[0].Options)
	assert.Nil(t, cmd.DefaultMemberPermissions)
	assert.True(t, *cmd.DMPermission)
}

func TestSyncCommands(t *testing.T) {
	defs := []domain.CommandDefinition{
		{Type: domain.CommandSlash, Name: "ping", Description: "Ping"},
		{Type: domain.CommandSlash, Name: "admin", Description: "Admin", GuildIDs: []domain.Snowflake{10, 20}},
		{Type: domain.CommandUser, Name: "Info", GuildIDs: []domain.Snowflake{10}},
	}

	names := func(want ...string) interface{} {
		return mock.MatchedBy(func(cmds []*discordgo.ApplicationCommand) bool {
			if len(cmds) != len(want) {
				return false
			}
			for i, c := range cmds {
				if c.Name != want[i] {
					return false
				}
			}
			return true
		})
	}

	tests := []struct {
		name      string
		defs      []domain.CommandDefinition
		setupMock func(s *MockSession)
		wantErr   bool
	}{
		{
			name: "global and guild scopes",
			defs: defs,
			setupMock: func(s *MockSession) {
				s.On("ApplicationCommandBulkOverwrite", "app", "", names("ping")).Return(nil, nil).Once()
				s.On("ApplicationCommandBulkOverwrite", "app", "10", names("admin", "Info")).Return(nil, nil).Once()
				s.On("ApplicationCommandBulkOverwrite", "app", "20", names("admin")).Return(nil, nil).Once()
			},
		},
		{
			name: "empty tree clears global commands",
			defs: nil,
			setupMock: func(s *MockSession) {
				s.On("ApplicationCommandBulkOverwrite", "app", "", names()).Return(nil, nil).Once()
			},
		},
		{
			name: "api failure stops sync",
			defs: defs,
			setupMock: func(s *MockSession) {
				s.On("ApplicationCommandBulkOverwrite", "app", "", mock.Anything).
					Return(nil, errors.New("missing access")).
					Once()
			},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			session := new(MockSession)
			tt.setupMock(session)

			err := SyncCommands(t.Context(), session, "app", tt.defs)
			if tt.wantErr {
				require.Error(t, err)
			} else {
				require.NoError(t, err)
			}

			session.AssertExpectations(t)
		})
	}
}
