package generator

import (
	"context"
	"errors"
	"fmt"

	"github.com/hypergonial/hikari-arc-sub000/internal/core/domain"
	"github.com/revrost/go-openrouter"
)

type chatCompleter interface {
	CreateChatCompletion(ctx context.Context, ccr openrouter.ChatCompletionRequest) (openrouter.ChatCompletionResponse, error)
}

type OpenRouter struct {
	client       chatCompleter
	systemPrompt string
}

func NewOpenRouter(apiKey, systemPrompt string) *OpenRouter {
	return &OpenRouter{
		systemPrompt: systemPrompt,
		client: openrouter.NewClient(
			apiKey,
			openrouter.WithXTitle("hikari-arc"),
		),
	}
}

func (c *OpenRouter) GenerateFromPrompt(ctx context.Context, model, prompt string) (domain.ModelResponse, error) {
	if prompt == "" {
		return domain.ModelResponse{}, domain.ErrEmptyPrompt
	}

	messages := []openrouter.ChatCompletionMessage{
		{
			Role:    openrouter.ChatMessageRoleUser,
			Content: openrouter.Content{Text: prompt},
		},
	}

	if c.systemPrompt != "" {
		messages = append([]openrouter.ChatCompletionMessage{{
			Role:    openrouter.ChatMessageRoleSystem,
			Content: openrouter.Content{Text: c.systemPrompt},
		}}, messages...)
	}

	resp, err := c.client.CreateChatCompletion(ctx, openrouter.ChatCompletionRequest{
		Messages: messages,
		Model:    model,
	})
	if err != nil {
		return domain.ModelResponse{}, fmt.Errorf("openrouter API error: %w", err)
	}

	if len(resp.Choices) == 0 {
		return domain.ModelResponse{}, errors.New("openrouter returned no choices")
	}

	metadata := domain.ResponseMetadata{Model: resp.Model}
	if resp.Usage != nil {
		metadata.CompletionTokens = resp.Usage.CompletionTokens
		metadata.TotalTokens = resp.Usage.TotalTokens
	}

	return domain.ModelResponse{
		Response: resp.Choices[0].Message.Content.Text,
		Metadata: metadata,
	}, nil
}
