package port

import (
	"context"

	"github.com/hypergonial/hikari-arc-sub000/internal/core/domain"
)

type InteractionResponder interface {
	// CreateInitialResponse sends the first reply to an interaction: a message, a deferred placeholder or a modal.
	CreateInitialResponse(ctx context.Context, interaction *domain.Interaction, response domain.InitialResponse) error
	// CreateFollowup sends a reply after the initial response and returns the created message.
	CreateFollowup(ctx context.Context, interaction *domain.Interaction, payload domain.MessagePayload) (*domain.Message, error)
	// FetchInitialResponse returns the message created by the initial response.
	FetchInitialResponse(ctx context.Context, interaction *domain.Interaction) (*domain.Message, error)
	// EditInitialResponse replaces the content of the initial response message.
	EditInitialResponse(ctx context.Context, interaction *domain.Interaction, payload domain.MessagePayload) (*domain.Message, error)
	// EditFollowup replaces the content of a followup message.
	EditFollowup(ctx context.Context, interaction *domain.Interaction, messageID domain.Snowflake, payload domain.MessagePayload) (*domain.Message, error)
	// DeleteInitialResponse removes the initial response message.
	DeleteInitialResponse(ctx context.Context, interaction *domain.Interaction) error
	// DeleteFollowup removes a followup message.
	DeleteFollowup(ctx context.Context, interaction *domain.Interaction, messageID domain.Snowflake) error
}

type AutocompleteResponder interface {
	// CreateAutocompleteResponse answers an autocomplete interaction with a list of suggestions.
	CreateAutocompleteResponse(ctx context.Context, interaction *domain.Interaction, choices []domain.Choice) error
}
