package port

import (
	"context"

	"github.com/hypergonial/hikari-arc-sub000/internal/core/domain"
)

type TextGenerator interface {
	// GenerateFromPrompt sends a prompt to the given model and returns its answer along with token usage.
	GenerateFromPrompt(ctx context.Context, model, prompt string) (domain.ModelResponse, error)
}
