package discord

import (
	"github.com/bwmarrin/discordgo"
	"github.com/stretchr/testify/mock"
)

type MockSession struct {
	mock.Mock
}

func (m *MockSession) InteractionRespond(interaction *discordgo.Interaction, resp *discordgo.InteractionResponse,
	_ ...discordgo.RequestOption) error {
	args := m.Called(interaction, resp)
	return args.Error(0)
}

func (m *MockSession) InteractionResponse(interaction *discordgo.Interaction,
	_ ...discordgo.RequestOption) (*discordgo.Message, error) {
	args := m.Called(interaction)
	msg, _ := args.Get(0).(*discordgo.Message)
	return msg, args.Error(1)
}

func (m *MockSession) InteractionResponseEdit(interaction *discordgo.Interaction, newresp *discordgo.WebhookEdit,
	_ ...discordgo.RequestOption) (*discordgo.Message, error) {
	args := m.Called(interaction, newresp)
	msg, _ := args.Get(0).(*discordgo.Message)
	return msg, args.Error(1)
}

func (m *MockSession) InteractionResponseDelete(interaction *discordgo.Interaction,
	_ ...discordgo.RequestOption) error {
	args := m.Called(interaction)
	return args.Error(0)
}

func (m *MockSession) FollowupMessageCreate(interaction *discordgo.Interaction, wait bool,
	data *discordgo.WebhookParams, _ ...discordgo.RequestOption) (*discordgo.Message, error) {
	args := m.Called(interaction, wait, data)
	msg, _ := args.Get(0).(*discordgo.Message)
	return msg, args.Error(1)
}

func (m *MockSession) FollowupMessageEdit(interaction *discordgo.Interaction, messageID string,
	data *discordgo.WebhookEdit, _ ...discordgo.RequestOption) (*discordgo.Message, error) {
	args := m.Called(interaction, messageID, data)
	msg, _ := args.Get(0).(*discordgo.Message)
	return msg, args.Error(1)
}

func (m *MockSession) FollowupMessageDelete(interaction *discordgo.Interaction, messageID string,
	_ ...discordgo.RequestOption) error {
	args := m.Called(interaction, messageID)
	return args.Error(0)
}

func (m *MockSession) ApplicationCommandBulkOverwrite(appID string, guildID string,
	commands []*discordgo.ApplicationCommand, _ ...discordgo.RequestOption) ([]*discordgo.ApplicationCommand, error) {
	args := m.Called(appID, guildID, commands)
	cmds, _ := args.Get(0).([]*discordgo.ApplicationCommand)
	return cmds, args.Error(1)
}

func (m *MockSession) Application(appID string) (*discordgo.Application, error) {
	args := m.Called(appID)
	app, _ := args.Get(0).(*discordgo.Application)
	return app, args.Error(1)
}

// MockGateway adds the event loop methods to MockSession.
type MockGateway struct {
	MockSession
	handler func(*discordgo.Session, *discordgo.InteractionCreate)
	opened  chan struct{}
}

func (m *MockGateway) AddHandler(handler interface{}) func() {
	m.handler = handler.(func(*discordgo.Session, *discordgo.InteractionCreate))
	return func() {}
}

func (m *MockGateway) Open() error {
	args := m.Called()
	close(m.opened)
	return args.Error(0)
}

func (m *MockGateway) Close() error {
	args := m.Called()
	return args.Error(0)
}
