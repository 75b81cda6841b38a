package api

import (
	"context"
	"iter"
	"strings"
	"sync"

	apierrors "github.com/diogo/geminichat/internal/errors"
	"github.com/diogo/geminichat/internal/models"
)

// Streamer is the part of GeminiClient a ChatSession depends on
type Streamer interface {
	StreamGenerateContent(ctx context.Context, model string, contents []models.Content) iter.Seq2[string, error]
}

// ChatSession maintains conversation context across messages
type ChatSession struct {
	client  Streamer
	mu      sync.RWMutex // Protects history
	model   string
	history []models.Content
}

// NewChatSession creates a session on top of any Streamer
func NewChatSession(client Streamer, model string) *ChatSession {
	return &ChatSession{client: client, model: model}
}

// Model returns the model the session talks to
func (s *ChatSession) Model() string {
	return s.model
}

// History returns a copy of the completed turns
func (s *ChatSession) History() []models.Content {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]models.Content, len(s.history))
	copy(out, s.history)
	return out
}

// Len returns the number of completed turns
func (s *ChatSession) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.history)
}

// SendMessageStream sends prompt with the session history and yields the
// reply. The exchange is recorded only once the stream has been fully
// drained without error.
func (s *ChatSession) SendMessageStream(ctx context.Context, prompt string) iter.Seq2[string, error] {
	return func(yield func(string, error) bool) {
		if strings.TrimSpace(prompt) == "" {
			yield("", apierrors.ErrEmptyMessage)
			return
		}

		s.mu.RLock()
		contents := make([]models.Content, 0, len(s.history)+1)
		contents = append(contents, s.history...)
		s.mu.RUnlock()
		contents = append(contents, models.NewUserContent(prompt))

		var reply strings.Builder
		for text, err := range s.client.StreamGenerateContent(ctx, s.model, contents) {
			if err != nil {
				yield("", err)
				return
			}
			reply.WriteString(text)
			if !yield(text, nil) {
				return
			}
		}

		s.mu.Lock()
		s.history = append(s.history, models.NewUserContent(prompt), models.NewModelContent(reply.String()))
		s.mu.Unlock()
	}
}

// Reset drops the conversation history
func (s *ChatSession) Reset() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.history = nil
}
