package chat

import (
	"context"
	"iter"
	"log/slog"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"github.com/google/uuid"

	"github.com/diogo/geminichat/internal/api"
	"github.com/diogo/geminichat/internal/config"
	apierrors "github.com/diogo/geminichat/internal/errors"
	"github.com/diogo/geminichat/internal/logging"
	"github.com/diogo/geminichat/internal/models"
)

// User-facing configuration messages
const (
	MsgEmptyAPIKey      = "Please enter your API key."
	MsgUnsupportedModel = "Please select a supported model."
	MsgInvalidKey       = "Configuration failed. The API key is likely invalid."
	MsgUnreachable      = "Configuration failed. Could not reach the Gemini API."
	MsgCanceled         = "Configuration cancelled."
)

// ClientFactory builds a model client for an API key
type ClientFactory func(apiKey string) (api.GeminiClientInterface, error)

// SettingsSaver persists an accepted key/model pair
type SettingsSaver interface {
	Save(config.Settings) error
}

// Session is the handle of one conversation with the model
type Session struct {
	id        string
	model     string
	client    api.GeminiClientInterface
	chat      *api.ChatSession
	createdAt time.Time
}

// ID returns the session's unique id
func (s *Session) ID() string { return s.id }

// Model returns the model name
func (s *Session) Model() string { return s.model }

// Turns returns the number of completed turns kept as context
func (s *Session) Turns() int { return s.chat.Len() }

// CreatedAt returns when the session was configured
func (s *Session) CreatedAt() time.Time { return s.createdAt }

// Manager owns at most one active Session
type Manager struct {
	factory ClientFactory
	store   SettingsSaver
	logger  *slog.Logger

	mu     sync.Mutex
	active *Session
}

// NewManager creates a new Manager. store may be nil when nothing should
// be persisted.
func NewManager(factory ClientFactory, store SettingsSaver, logger *slog.Logger) *Manager {
	return &Manager{
		factory: factory,
		store:   store,
		logger:  logging.OrDiscard(logger),
	}
}

// CheckInput validates a key/model pair before any request is made
func CheckInput(apiKey, modelName string) error {
	if strings.TrimSpace(apiKey) == "" {
		return apierrors.NewConfigError(MsgEmptyAPIKey, apierrors.ErrEmptyAPIKey)
	}
	if !models.IsSupported(modelName) {
		return apierrors.NewConfigError(MsgUnsupportedModel, apierrors.NewModelError(modelName, "not in the supported list"))
	}
	return nil
}

// Configure validates the key against the API, persists the pair and
// returns a fresh session with empty history. On failure the current
// session, if any, is left untouched.
func (m *Manager) Configure(ctx context.Context, apiKey, modelName string) (*Session, error) {
	apiKey = strings.TrimSpace(apiKey)
	if err := CheckInput(apiKey, modelName); err != nil {
		return nil, err
	}

	m.logger.Debug("configuring", "model", modelName)

	client, err := m.factory(apiKey)
	if err != nil {
		m.logger.Error("client creation failed", "error", err)
		return nil, apierrors.NewConfigError(MsgInvalidKey, err)
	}

	if err := client.ValidateModel(ctx, modelName); err != nil {
		client.Close()
		m.logger.Warn("configuration rejected", "model", modelName, "error", err)
		return nil, configFailure(err)
	}

	if m.store != nil {
		if err := m.store.Save(config.Settings{APIKey: apiKey, ModelName: modelName}); err != nil {
			m.logger.Error("failed to persist settings", "error", err)
		}
	}

	s := &Session{
		id:        uuid.NewString(),
		model:     modelName,
		client:    client,
		chat:      client.StartChat(modelName),
		createdAt: time.Now(),
	}

	m.mu.Lock()
	prev := m.active
	m.active = s
	m.mu.Unlock()

	if prev != nil {
		prev.client.Close()
		m.logger.Debug("session replaced", "old", prev.id, "new", s.id)
	}

	m.logger.Info("session started", "session", s.id, "model", modelName)
	return s, nil
}

func configFailure(err error) error {
	switch {
	case apierrors.IsCanceled(err):
		return apierrors.NewConfigError(MsgCanceled, err)
	case apierrors.IsNetworkError(err), apierrors.IsTimeoutError(err):
		return apierrors.NewConfigError(MsgUnreachable, err)
	}
	return apierrors.NewConfigError(MsgInvalidKey, err)
}

// Active returns the active session or nil
func (m *Manager) Active() *Session {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.active
}

// IsActive reports whether s is the active session
func (m *Manager) IsActive(s *Session) bool {
	return s != nil && m.Active() == s
}

// End drops s if it is the active session and closes its client
func (m *Manager) End(s *Session) {
	if s == nil {
		return
	}

	m.mu.Lock()
	if m.active != s {
		m.mu.Unlock()
		return
	}
	m.active = nil
	m.mu.Unlock()

	s.client.Close()
	m.logger.Info("session ended", "session", s.id)
}

// Send streams the reply to text. The returned sequence can be ranged
// over once; a second iteration yields ErrStreamConsumed. Every error it
// yields is a *errors.SendError.
func (m *Manager) Send(ctx context.Context, s *Session, text string) iter.Seq2[string, error] {
	var used atomic.Bool

	return func(yield func(string, error) bool) {
		if used.Swap(true) {
			yield("", apierrors.NewSendError("", apierrors.ErrStreamConsumed))
			return
		}
		if strings.TrimSpace(text) == "" {
			yield("", apierrors.NewSendError("", apierrors.ErrEmptyMessage))
			return
		}
		if s == nil {
			yield("", apierrors.NewSendError("", apierrors.ErrNoSession))
			return
		}
		if !m.IsActive(s) {
			yield("", apierrors.NewSendError("", apierrors.ErrSessionInactive))
			return
		}

		start := time.Now()
		fragments := 0
		m.logger.Debug("stream started", "session", s.id, "chars", len(text))

		for frag, err := range s.chat.SendMessageStream(ctx, text) {
			if err != nil {
				m.logger.Warn("stream failed", "session", s.id, "fragments", fragments, "error", err)
				yield("", apierrors.NewSendError("", err))
				return
			}
			fragments++
			if !yield(frag, nil) {
				m.logger.Debug("stream abandoned", "session", s.id, "fragments", fragments)
				return
			}
		}

		m.logger.Debug("stream finished", "session", s.id, "fragments", fragments, "elapsed", time.Since(start))
	}
}
