package api

import (
	"context"
	"iter"
	"sync"

	"github.com/diogo/geminichat/internal/models"
)

// MockGeminiClient is a mock implementation of GeminiClientInterface for testing
type MockGeminiClient struct {
	// Mock return values
	ValidateErr error
	Fragments   []string
	StreamErr   error
	// WaitForCancel makes the stream block after the fragments until the
	// context is cancelled, then yield the context error.
	WaitForCancel bool

	// Call counters/recorders
	mu             sync.Mutex
	ValidateCalled bool
	ValidatedModel string
	StreamCalls    int
	LastModel      string
	LastContents   []models.Content
	CloseCalled    bool
	closed         bool
}

// Ensure MockGeminiClient implements GeminiClientInterface
var _ GeminiClientInterface = (*MockGeminiClient)(nil)

func (m *MockGeminiClient) ValidateModel(ctx context.Context, model string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.ValidateCalled = true
	m.ValidatedModel = model
	return m.ValidateErr
}

func (m *MockGeminiClient) StartChat(model string) *ChatSession {
	return NewChatSession(m, model)
}

func (m *MockGeminiClient) StreamGenerateContent(ctx context.Context, model string, contents []models.Content) iter.Seq2[string, error] {
	return func(yield func(string, error) bool) {
		m.mu.Lock()
		m.StreamCalls++
		m.LastModel = model
		m.LastContents = append([]models.Content(nil), contents...)
		fragments := append([]string(nil), m.Fragments...)
		streamErr := m.StreamErr
		wait := m.WaitForCancel
		m.mu.Unlock()

		for _, f := range fragments {
			if !yield(f, nil) {
				return
			}
		}
		if wait {
			<-ctx.Done()
			yield("", ctx.Err())
			return
		}
		if streamErr != nil {
			yield("", streamErr)
		}
	}
}

func (m *MockGeminiClient) Close() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.CloseCalled = true
	m.closed = true
}

func (m *MockGeminiClient) IsClosed() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.closed
}

// Calls returns the number of streams started, safe for concurrent use
func (m *MockGeminiClient) Calls() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.StreamCalls
}

// WasClosed reports whether Close was called, safe for concurrent use
func (m *MockGeminiClient) WasClosed() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.CloseCalled
}
