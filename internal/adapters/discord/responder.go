package discord

import (
	"context"
	"fmt"

	"github.com/bwmarrin/discordgo"
	"github.com/hypergonial/hikari-arc-sub000/internal/core/domain"
)

// Session is the subset of *discordgo.Session the transport uses.
type Session interface {
	InteractionRespond(interaction *discordgo.Interaction, resp *discordgo.InteractionResponse,
		options ...discordgo.RequestOption) error
	InteractionResponse(interaction *discordgo.Interaction, options ...discordgo.RequestOption) (*discordgo.Message, error)
	InteractionResponseEdit(interaction *discordgo.Interaction, newresp *discordgo.WebhookEdit,
		options ...discordgo.RequestOption) (*discordgo.Message, error)
	InteractionResponseDelete(interaction *discordgo.Interaction, options ...discordgo.RequestOption) error
	FollowupMessageCreate(interaction *discordgo.Interaction, wait bool, data *discordgo.WebhookParams,
		options ...discordgo.RequestOption) (*discordgo.Message, error)
	FollowupMessageEdit(interaction *discordgo.Interaction, messageID string, data *discordgo.WebhookEdit,
		options ...discordgo.RequestOption) (*discordgo.Message, error)
	FollowupMessageDelete(interaction *discordgo.Interaction, messageID string, options ...discordgo.RequestOption) error
	ApplicationCommandBulkOverwrite(appID string, guildID string, commands []*discordgo.ApplicationCommand,
		options ...discordgo.RequestOption) ([]*discordgo.ApplicationCommand, error)
	Application(appID string) (*discordgo.Application, error)
}

// Responder answers interactions through the Discord REST API.
type Responder struct {
	session Session
}

func NewResponder(session Session) *Responder {
	return &Responder{session: session}
}

func (r *Responder) CreateInitialResponse(ctx context.Context, interaction *domain.Interaction,
	response domain.InitialResponse) error {
	resp := &discordgo.InteractionResponse{}

	switch response.Type {
	case domain.ResponseMessage:
		resp.Type = discordgo.InteractionResponseChannelMessageWithSource
		resp.Data = &discordgo.InteractionResponseData{
			Content: response.Message.Content,
			Embeds:  toEmbeds(response.Message.Embeds),
			Flags:   discordgo.MessageFlags(response.Message.Flags),
			TTS:     response.Message.TTS,
		}
	case domain.ResponseDeferred:
		resp.Type = discordgo.InteractionResponseDeferredChannelMessageWithSource
		resp.Data = &discordgo.InteractionResponseData{Flags: discordgo.MessageFlags(response.Flags)}
	case domain.ResponseModal:
		resp.Type = discordgo.InteractionResponseModal
		resp.Data = toModal(response.Modal)
	default:
		return fmt.Errorf("response type %s: %w", response.Type, domain.ErrUnsupported)
	}

	if err := r.session.InteractionRespond(rawInteraction(interaction), resp, discordgo.WithContext(ctx)); err != nil {
		return fmt.Errorf("discord API error: %w", err)
	}

	return nil
}

func (r *Responder) CreateFollowup(ctx context.Context, interaction *domain.Interaction,
	payload domain.MessagePayload) (*domain.Message, error) {
	msg, err := r.session.FollowupMessageCreate(rawInteraction(interaction), true, &discordgo.WebhookParams{
		Content: payload.Content,
		Embeds:  toEmbeds(payload.Embeds),
		Flags:   discordgo.MessageFlags(payload.Flags),
		TTS:     payload.TTS,
	}, discordgo.WithContext(ctx))
	if err != nil {
		return nil, fmt.Errorf("discord API error: %w", err)
	}

	return toMessage(msg), nil
}

func (r *Responder) FetchInitialResponse(ctx context.Context, interaction *domain.Interaction) (*domain.Message, error) {
	msg, err := r.session.InteractionResponse(rawInteraction(interaction), discordgo.WithContext(ctx))
	if err != nil {
		return nil, fmt.Errorf("discord API error: %w", err)
	}

	return toMessage(msg), nil
}

func (r *Responder) EditInitialResponse(ctx context.Context, interaction *domain.Interaction,
	payload domain.MessagePayload) (*domain.Message, error) {
	msg, err := r.session.InteractionResponseEdit(rawInteraction(interaction), webhookEdit(payload),
		discordgo.WithContext(ctx))
	if err != nil {
		return nil, fmt.Errorf("discord API error: %w", err)
	}

	return toMessage(msg), nil
}

func (r *Responder) EditFollowup(ctx context.Context, interaction *domain.Interaction, messageID domain.Snowflake,
	payload domain.MessagePayload) (*domain.Message, error) {
	msg, err := r.session.FollowupMessageEdit(rawInteraction(interaction), messageID.String(), webhookEdit(payload),
		discordgo.WithContext(ctx))
	if err != nil {
		return nil, fmt.Errorf("discord API error: %w", err)
	}

	return toMessage(msg), nil
}

func (r *Responder) DeleteInitialResponse(ctx context.Context, interaction *domain.Interaction) error {
	if err := r.session.InteractionResponseDelete(rawInteraction(interaction), discordgo.WithContext(ctx)); err != nil {
		return fmt.Errorf("discord API error: %w", err)
	}

	return nil
}

func (r *Responder) DeleteFollowup(ctx context.Context, interaction *domain.Interaction, messageID domain.Snowflake) error {
	err := r.session.FollowupMessageDelete(rawInteraction(interaction), messageID.String(), discordgo.WithContext(ctx))
	if err != nil {
		return fmt.Errorf("discord API error: %w", err)
	}

	return nil
}

func (r *Responder) CreateAutocompleteResponse(ctx context.Context, interaction *domain.Interaction,
	choices []domain.Choice) error {
	out := make([]*discordgo.ApplicationCommandOptionChoice, 0, len(choices))
	for _, c := range choices {
		out = append(out, &discordgo.ApplicationCommandOptionChoice{Name: c.Name, Value: c.Value})
	}

	err := r.session.InteractionRespond(rawInteraction(interaction), &discordgo.InteractionResponse{
		Type: discordgo.InteractionApplicationCommandAutocompleteResult,
		Data: &discordgo.InteractionResponseData{Choices: out},
	}, discordgo.WithContext(ctx))
	if err != nil {
		return fmt.Errorf("discord API error: %w", err)
	}

	return nil
}

func webhookEdit(payload domain.MessagePayload) *discordgo.WebhookEdit {
	content := payload.Content
	embeds := toEmbeds(payload.Embeds)

	edit := &discordgo.WebhookEdit{Content: &content}
	if embeds != nil {
		edit.Embeds = &embeds
	}

	return edit
}
