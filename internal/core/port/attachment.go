package port

import (
	"context"

	"github.com/hypergonial/hikari-arc-sub000/internal/core/domain"
)

type AttachmentFetcher interface {
	// FetchText downloads a text attachment and returns its content.
	FetchText(ctx context.Context, attachment *domain.Attachment) (string, error)
}
