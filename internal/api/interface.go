package api

import (
	"context"
	"iter"

	"github.com/diogo/geminichat/internal/models"
)

// GeminiClientInterface is implemented by GeminiClient and MockGeminiClient
type GeminiClientInterface interface {
	ValidateModel(ctx context.Context, model string) error
	StartChat(model string) *ChatSession
	StreamGenerateContent(ctx context.Context, model string, contents []models.Content) iter.Seq2[string, error]
	Close()
	IsClosed() bool
}

var _ GeminiClientInterface = (*GeminiClient)(nil)
