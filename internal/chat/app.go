package chat

import (
	"context"
	"errors"
	"iter"
	"log/slog"
	"strings"

	"github.com/diogo/geminichat/internal/config"
	apierrors "github.com/diogo/geminichat/internal/errors"
	"github.com/diogo/geminichat/internal/logging"
	"github.com/diogo/geminichat/internal/models"
)

// View is one of the two screens
type View int

const (
	ViewConfiguration View = iota
	ViewChat
)

func (v View) String() string {
	if v == ViewChat {
		return "chat"
	}
	return "configuration"
}

// Transcript texts
const (
	PlaceholderText = "Gemini is thinking..."
	StoppedText     = "Response stopped."
	ErrorPrefix     = "An error occurred: "
)

// ErrNotStreaming is returned by Drain when no submission is in flight
var ErrNotStreaming = errors.New("no response in flight")

// App is the application state shared by both screens. Like Transcript it
// belongs to the UI loop.
type App struct {
	manager    *Manager
	transcript *Transcript
	greeting   string
	logger     *slog.Logger

	view     View
	session  *Session
	settings config.Settings

	streaming     bool
	placeholderID int
	replyID       int
}

// NewApp creates the application state on the configuration screen
func NewApp(manager *Manager, greeting string, logger *slog.Logger) *App {
	if greeting == "" {
		greeting = config.DefaultGreeting
	}
	return &App{
		manager:       manager,
		transcript:    NewTranscript(),
		greeting:      greeting,
		logger:        logging.OrDiscard(logger),
		view:          ViewConfiguration,
		placeholderID: -1,
		replyID:       -1,
	}
}

// View returns the visible screen
func (a *App) View() View { return a.view }

// Session returns the active session, nil on the configuration screen
func (a *App) Session() *Session { return a.session }

// Transcript returns the chat transcript
func (a *App) Transcript() *Transcript { return a.transcript }

// Streaming reports whether a reply is in flight
func (a *App) Streaming() bool { return a.streaming }

// Settings returns the last accepted key/model pair, used to prefill the
// configuration screen
func (a *App) Settings() config.Settings { return a.settings }

// Prefill sets the values shown on the configuration screen
func (a *App) Prefill(st config.Settings) { a.settings = st }

// Configure asks the manager for a session and switches to the chat screen
// on success. On failure the configuration screen stays visible.
func (a *App) Configure(ctx context.Context, apiKey, modelName string) error {
	a.settings = config.Settings{APIKey: apiKey, ModelName: modelName}

	s, err := a.Connect(ctx, apiKey, modelName)
	if err != nil {
		return err
	}
	a.ShowChat(s)
	return nil
}

// Connect asks the manager for a session without touching screen state.
// Unlike the other methods it may run off the UI loop; hand the session
// to ShowChat once it returns.
func (a *App) Connect(ctx context.Context, apiKey, modelName string) (*Session, error) {
	return a.manager.Configure(ctx, apiKey, modelName)
}

// ShowChat reveals the chat screen for s with a transcript holding only
// the greeting
func (a *App) ShowChat(s *Session) {
	if s == nil {
		return
	}
	if a.session != nil && a.session != s {
		a.manager.End(a.session)
	}

	a.session = s
	a.settings.ModelName = s.Model()
	a.view = ViewChat
	a.resetStream()
	a.transcript.Reset()
	a.transcript.Append(models.RoleAssistant, a.greeting)

	a.logger.Debug("view switched", "view", a.view.String(), "session", s.ID())
}

// ShowConfiguration returns to the configuration screen, ending the
// session and clearing the transcript. Refused while a reply streams.
func (a *App) ShowConfiguration() bool {
	if a.streaming {
		return false
	}
	if a.session != nil {
		a.manager.End(a.session)
		a.session = nil
	}
	a.view = ViewConfiguration
	a.transcript.Reset()

	a.logger.Debug("view switched", "view", a.view.String())
	return true
}

// Submit records a user message and the loading placeholder. It returns
// the text to send and false when the submission is a no-op: blank input,
// no session, or a reply already in flight.
func (a *App) Submit(raw string) (string, bool) {
	if strings.TrimSpace(raw) == "" || a.session == nil || a.streaming {
		return "", false
	}

	a.transcript.Append(models.RoleUser, raw)
	ph := a.transcript.Append(models.RolePlaceholder, PlaceholderText)
	a.placeholderID = ph.ID
	a.replyID = -1
	a.streaming = true
	return raw, true
}

// Stream starts the reply for a submitted text
func (a *App) Stream(ctx context.Context, text string) iter.Seq2[string, error] {
	return a.manager.Send(ctx, a.session, text)
}

// ApplyFragment appends frag to the in-flight reply. The first fragment
// replaces the placeholder with an empty assistant entry.
func (a *App) ApplyFragment(frag string) (models.Message, bool) {
	if !a.streaming {
		return models.Message{}, false
	}

	if a.replyID < 0 {
		a.dropPlaceholder()
		reply := a.transcript.Append(models.RoleAssistant, "")
		a.replyID = reply.ID
		a.transcript.SetStreaming(reply.ID, true)
	}

	return a.transcript.AppendText(a.replyID, frag)
}

// FinishStream ends the in-flight reply. The placeholder is always
// removed; err, if any, is appended as a system error entry. It returns
// the finished assistant entry when one was created.
func (a *App) FinishStream(err error) (models.Message, bool) {
	if !a.streaming {
		return models.Message{}, false
	}
	defer a.resetStream()

	a.dropPlaceholder()

	if err == nil && a.replyID < 0 {
		reply := a.transcript.Append(models.RoleAssistant, "")
		a.replyID = reply.ID
	}

	var reply models.Message
	hasReply := false
	if a.replyID >= 0 {
		a.transcript.SetStreaming(a.replyID, false)
		reply, hasReply = a.transcript.Get(a.replyID)
	}

	if err != nil {
		a.transcript.Append(models.RoleSystemError, ErrorText(err))
	}

	return reply, hasReply
}

// Drain consumes seq into the in-flight reply, calling refresh after each
// fragment. It stops at the first error, keeps the partial text and
// returns the error.
func (a *App) Drain(seq iter.Seq2[string, error], refresh func(models.Message)) error {
	if !a.streaming {
		return ErrNotStreaming
	}

	for frag, err := range seq {
		if err != nil {
			a.FinishStream(err)
			return err
		}
		msg, _ := a.ApplyFragment(frag)
		if refresh != nil {
			refresh(msg)
		}
	}

	a.FinishStream(nil)
	return nil
}

// ErrorText is the transcript text for a failed reply
func ErrorText(err error) string {
	if apierrors.IsCanceled(err) {
		return StoppedText
	}
	return ErrorPrefix + err.Error()
}

func (a *App) dropPlaceholder() {
	if a.placeholderID >= 0 {
		a.transcript.Remove(a.placeholderID)
		a.placeholderID = -1
	}
}

func (a *App) resetStream() {
	a.streaming = false
	a.placeholderID = -1
	a.replyID = -1
}
