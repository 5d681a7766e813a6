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

var testInteraction = &domain.Interaction{ID: 1, ApplicationID: 2, Token: "tok"}

func matchesInteraction(i *discordgo.Interaction) bool {
	return i.ID == "1" && i.AppID == "2" && i.Token == "tok"
}

func TestResponder_CreateInitialResponse(t *testing.T) {
	tests := []struct {
		name     string
		response domain.InitialResponse
		check    func(resp *discordgo.InteractionResponse) bool
		apiErr   error
		wantErr  error
	}{
		{
			name: "message",
			response: domain.InitialResponse{
				Type: domain.ResponseMessage,
				Message: &domain.MessagePayload{
					Content: "Pong!",
					Flags:   domain.FlagEphemeral,
					Embeds:  []domain.Embed{{Title: "t", Fields: []domain.EmbedField{{Name: "a", Value: "b"}}}},
				},
			},
			check: func(resp *discordgo.InteractionResponse) bool {
				return resp.Type == discordgo.InteractionResponseChannelMessageWithSource &&
					resp.Data.Content == "Pong!" &&
					resp.Data.Flags == discordgo.MessageFlagsEphemeral &&
					len(resp.Data.Embeds) == 1 && resp.Data.Embeds[0].Fields[0].Value == "b"
			},
		},
		{
			name:     "deferred",
			response: domain.InitialResponse{Type: domain.ResponseDeferred, Flags: domain.FlagEphemeral},
			check: func(resp *discordgo.InteractionResponse) bool {
				return resp.Type == discordgo.InteractionResponseDeferredChannelMessageWithSource &&
					resp.Data.Flags == discordgo.MessageFlagsEphemeral
			},
		},
		{
			name: "modal",
			response: domain.InitialResponse{
				Type: domain.ResponseModal,
				Modal: &domain.Modal{
					CustomID: "feedback",
					Title:    "Feedback",
					Inputs: []domain.TextInput{
						{CustomID: "body", Label: "Body", Style: domain.TextInputParagraph, Required: true},
					},
				},
			},
			check: func(resp *discordgo.InteractionResponse) bool {
				if resp.Type != discordgo.InteractionResponseModal || resp.Data.CustomID != "feedback" {
					return false
				}
				row, ok := resp.Data.Components[0].(discordgo.ActionsRow)
				if !ok {
					return false
				}
				input, ok := row.Components[0].(discordgo.TextInput)
				return ok && input.Style == discordgo.TextInputParagraph && input.Required
			},
		},
		{
			name:     "api failure",
			response: domain.InitialResponse{Type: domain.ResponseDeferred},
			check:    func(*discordgo.InteractionResponse) bool { return true },
			apiErr:   errors.New("unknown interaction"),
			wantErr:  errors.New("discord API error: unknown interaction"),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			session := new(MockSession)
			session.On("InteractionRespond", mock.MatchedBy(matchesInteraction), mock.MatchedBy(tt.check)).
				Return(tt.apiErr).
				Once()

			err := NewResponder(session).CreateInitialResponse(t.Context(), testInteraction, tt.response)
			if tt.wantErr != nil {
				require.EqualError(t, err, tt.wantErr.Error())
			} else {
				require.NoError(t, err)
			}

			session.AssertExpectations(t)
		})
	}
}

func TestResponder_UnknownResponseType(t *testing.T) {
	session := new(MockSession)

	err := NewResponder(session).CreateInitialResponse(t.Context(), testInteraction, domain.InitialResponse{})
	require.ErrorIs(t, err, domain.ErrUnsupported)
	session.AssertNotCalled(t, "InteractionRespond", mock.Anything, mock.Anything)
}

func TestResponder_Followups(t *testing.T) {
	session := new(MockSession)
	responder := NewResponder(session)

	session.On("FollowupMessageCreate", mock.MatchedBy(matchesInteraction), true,
		mock.MatchedBy(func(p *discordgo.WebhookParams) bool {
			return p.Content == "second" && p.TTS
		})).
		Return(&discordgo.Message{ID: "77", ChannelID: "33", Content: "second"}, nil).
		Once()
	session.On("FollowupMessageEdit", mock.MatchedBy(matchesInteraction), "77",
		mock.MatchedBy(func(e *discordgo.WebhookEdit) bool {
			return *e.Content == "edited" && e.Embeds == nil
		})).
		Return(&discordgo.Message{ID: "77", Content: "edited"}, nil).
		Once()
	session.On("FollowupMessageDelete", mock.MatchedBy(matchesInteraction), "77").Return(nil).Once()

	msg, err := responder.CreateFollowup(t.Context(), testInteraction, domain.MessagePayload{Content: "second", TTS: true})
	require.NoError(t, err)
	assert.Equal(t, domain.Snowflake(77), msg.ID)
	assert.Equal(t, domain.Snowflake(33), msg.ChannelID)

	msg, err = responder.EditFollowup(t.Context(), testInteraction, 77, domain.MessagePayload{Content: "edited"})
	require.NoError(t, err)
	assert.Equal(t, "edited", msg.Content)

	require.NoError(t, responder.DeleteFollowup(t.Context(), testInteraction, 77))

	session.AssertExpectations(t)
}

func TestResponder_InitialResponseMessage(t *testing.T) {
	session := new(MockSession)
	responder := NewResponder(session)

	session.On("InteractionResponse", mock.MatchedBy(matchesInteraction)).
		Return(&discordgo.Message{ID: "5", Content: "first"}, nil).
		Once()
	session.On("InteractionResponseEdit", mock.MatchedBy(matchesInteraction),
		mock.MatchedBy(func(e *discordgo.WebhookEdit) bool {
			return *e.Content == "changed" && len(*e.Embeds) == 1
		})).
		Return(&discordgo.Message{ID: "5", Content: "changed"}, nil).
		Once()
	session.On("InteractionResponseDelete", mock.MatchedBy(matchesInteraction)).
		Return(errors.New("unknown message")).
		Once()

	msg, err := responder.FetchInitialResponse(t.Context(), testInteraction)
	require.NoError(t, err)
	assert.Equal(t, "first", msg.Content)

	msg, err = responder.EditInitialResponse(t.Context(), testInteraction, domain.MessagePayload{
		Content: "changed",
		Embeds:  []domain.Embed{{Title: "x"}},
	})
	require.NoError(t, err)
	assert.Equal(t, "changed", msg.Content)

	require.EqualError(t, responder.DeleteInitialResponse(t.Context(), testInteraction),
		"discord API error: unknown message")

	session.AssertExpectations(t)
}

func TestResponder_CreateAutocompleteResponse(t *testing.T) {
	session := new(MockSession)

	session.On("InteractionRespond", mock.MatchedBy(matchesInteraction),
		mock.MatchedBy(func(resp *discordgo.InteractionResponse) bool {
			return resp.Type == discordgo.InteractionApplicationCommandAutocompleteResult &&
				len(resp.Data.Choices) == 2 &&
				resp.Data.Choices[1].Value == "b"
		})).
		Return(nil).
		Once()

	err := NewResponder(session).CreateAutocompleteResponse(t.Context(), testInteraction, []domain.Choice{
		{Name: "a", Value: "a"},
		{Name: "b", Value: "b"},
	})
	require.NoError(t, err)
	session.AssertExpectations(t)
}
