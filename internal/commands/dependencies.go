package commands

import (
	"os"
	"time"

	"golang.org/x/term"

	"github.com/diogo/geminichat/internal/api"
	"github.com/diogo/geminichat/internal/chat"
	"github.com/diogo/geminichat/internal/config"
	"github.com/diogo/geminichat/internal/tui"
)

// TUIInterface defines the methods required from the TUI package.
type TUIInterface interface {
	Run(app *chat.App, opts tui.Options) error
}

// Dependencies holds the external dependencies for the commands.
// This allows for dependency injection and easier testing.
type Dependencies struct {
	// NewClient builds the Gemini client for an API key.
	NewClient func(apiKey string, timeout time.Duration) (api.GeminiClientInterface, error)

	// OpenStore opens the settings store.
	OpenStore func() (*config.SettingsStore, error)

	// TUI is the terminal user interface.
	TUI TUIInterface

	// IsTerminal reports whether the file descriptor is a terminal.
	IsTerminal func(fd uintptr) bool

	// CopyText writes text to the system clipboard.
	CopyText func(text string) error
}

// DefaultTUI is the production implementation of TUIInterface.
type DefaultTUI struct{}

func (d *DefaultTUI) Run(app *chat.App, opts tui.Options) error {
	return tui.Run(app, opts)
}

// NewDependencies creates a new Dependencies struct with default implementations.
func NewDependencies() *Dependencies {
	return &Dependencies{
		NewClient: func(apiKey string, timeout time.Duration) (api.GeminiClientInterface, error) {
			client, err := api.NewClient(apiKey, api.WithTimeout(timeout))
			if err != nil {
				return nil, err
			}
			return client, nil
		},
		OpenStore:  config.OpenDefaultSettingsStore,
		TUI:        &DefaultTUI{},
		IsTerminal: func(fd uintptr) bool { return term.IsTerminal(int(fd)) },
		CopyText:   copyToClipboard,
	}
}

// factory binds the client constructor to the configured timeout
func (d *Dependencies) factory(cfg config.Config) chat.ClientFactory {
	timeout := cfg.Timeout()
	return func(apiKey string) (api.GeminiClientInterface, error) {
		return d.NewClient(apiKey, timeout)
	}
}

func (d *Dependencies) stdoutIsTerminal() bool {
	return d.IsTerminal != nil && d.IsTerminal(os.Stdout.Fd())
}

func (d *Dependencies) stderrIsTerminal() bool {
	return d.IsTerminal != nil && d.IsTerminal(os.Stderr.Fd())
}
