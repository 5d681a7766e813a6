package discord

import (
	"context"
	"testing"
	"time"

	"github.com/bwmarrin/discordgo"
	"github.com/hypergonial/hikari-arc-sub000/internal/core/command"
	"github.com/hypergonial/hikari-arc-sub000/internal/core/domain"
	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestBot_Run(t *testing.T) {
	t.Cleanup(viper.Reset)
	viper.Set("discord.sync_commands", true)
	viper.Set("handler.timeout", "5s")

	gw := &MockGateway{opened: make(chan struct{})}
	responded := make(chan struct{})

	gw.On("Open").Return(nil).Once()
	gw.On("Close").Return(nil).Once()
	gw.On("Application", "@me").Return(&discordgo.Application{
		ID:    "app",
		Owner: &discordgo.User{ID: "9"},
		Team: &discordgo.Team{Members: []*discordgo.TeamMember{
			{User: &discordgo.User{ID: "10"}},
		}},
	}, nil).Once()
	gw.On("ApplicationCommandBulkOverwrite", "app", "", mock.MatchedBy(func(cmds []*discordgo.ApplicationCommand) bool {
		return len(cmds) == 1 && cmds[0].Name == "ping"
	})).Return(nil, nil).Once()
	gw.On("InteractionRespond", mock.Anything, mock.MatchedBy(func(resp *discordgo.InteractionResponse) bool {
		return resp.Data != nil && resp.Data.Content == "Pong!"
	})).Return(nil).Once().Run(func(mock.Arguments) { close(responded) })

	client, err := command.NewClient(NewResponder(gw), command.WithAutodefer(command.AutodeferOff))
	require.NoError(t, err)

	started := make(chan struct{})
	client.AddStartupHook(func(context.Context, *command.Client) error {
		close(started)
		return nil
	})

	ping := command.Must(command.NewSlashCommand("ping", "Ping the bot", func(ctx *command.Context) error {
		_, err := ctx.Respond("Pong!")
		return err
	}))
	require.NoError(t, client.Include(ping))

	bot := NewBot(gw, client)
	assert.Equal(t, 5*time.Second, bot.timeout)

	ctx, cancel := context.WithCancel(t.Context())
	done := make(chan error, 1)
	go func() { done <- bot.Run(ctx) }()

	<-gw.opened
	<-started

	assert.True(t, client.IsOwner(9))
	assert.True(t, client.IsOwner(10))

	// component interactions are ignored without touching the session
	gw.handler(nil, &discordgo.InteractionCreate{Interaction: &discordgo.Interaction{
		ID:   "1",
		Type: discordgo.InteractionMessageComponent,
	}})

	gw.handler(nil, &discordgo.InteractionCreate{Interaction: &discordgo.Interaction{
		ID:    "175928847299117063",
		AppID: "app",
		Token: "tok",
		Type:  discordgo.InteractionApplicationCommand,
		User:  &discordgo.User{ID: "7"},
		Data: discordgo.ApplicationCommandInteractionData{
			ID:          "1",
			Name:        "ping",
			CommandType: discordgo.ChatApplicationCommand,
		},
	}})

	select {
	case <-responded:
	case <-time.After(time.Second):
		t.Fatal("ping was not answered")
	}

	cancel()
	require.NoError(t, <-done)

	gw.AssertExpectations(t)
}

func TestApplicationOwners(t *testing.T) {
	tests := []struct {
		name string
		app  *discordgo.Application
		want []domain.Snowflake
	}{
		{
			name: "single owner",
			app:  &discordgo.Application{Owner: &discordgo.User{ID: "1"}},
			want: []domain.Snowflake{1},
		},
		{
			name: "team",
			app: &discordgo.Application{
				Owner: &discordgo.User{ID: "1"},
				Team: &discordgo.Team{Members: []*discordgo.TeamMember{
					{User: &discordgo.User{ID: "2"}},
					{},
				}},
			},
			want: []domain.Snowflake{1, 2},
		},
		{
			name: "no owner",
			app:  &discordgo.Application{},
			want: nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, applicationOwners(tt.app))
		})
	}
}
