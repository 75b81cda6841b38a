package tui

import (
	tea "github.com/charmbracelet/bubbletea"

	"github.com/diogo/geminichat/internal/chat"
	"github.com/diogo/geminichat/internal/config"
)

// AppModel switches between the configuration and chat screens following
// the app's current view
type AppModel struct {
	app    *chat.App
	config ConfigModel
	chat   ChatModel
}

// Options tunes the program started by Run
type Options struct {
	Config       config.Config
	SettingsPath string
}

// NewAppModel creates the root model for app
func NewAppModel(app *chat.App, opts Options) AppModel {
	return AppModel{
		app:    app,
		config: NewConfigModel(app, opts.Config.Timeout()).WithSettingsPath(opts.SettingsPath),
		chat:   NewChatModel(app, opts.Config),
	}
}

// Init initializes the model
func (m AppModel) Init() tea.Cmd {
	if m.app.View() == chat.ViewChat {
		return m.chat.Init()
	}
	return m.config.Init()
}

// Update handles messages and updates the model
func (m AppModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		// Both screens keep their size so switching needs no resize
		var chatCmd tea.Cmd
		m.config, cmd = m.config.Update(msg)
		m.chat, chatCmd = m.chat.Update(msg)
		return m, tea.Batch(cmd, chatCmd)

	case configuredMsg:
		m.config, cmd = m.config.Update(msg)
		if msg.err != nil || msg.session == nil {
			return m, cmd
		}
		m.app.ShowChat(msg.session)
		m.chat = m.chat.start()
		return m, m.chat.Init()

	case settingsRequestMsg:
		if m.app.ShowConfiguration() {
			m.config = m.config.reset()
			return m, m.config.Init()
		}
		return m, nil

	case fragmentMsg, streamDoneMsg, clipboardMsg:
		m.chat, cmd = m.chat.Update(msg)
		return m, cmd
	}

	if m.app.View() == chat.ViewChat {
		m.chat, cmd = m.chat.Update(msg)
	} else {
		m.config, cmd = m.config.Update(msg)
	}
	return m, cmd
}

// View renders the visible screen
func (m AppModel) View() string {
	if m.app.View() == chat.ViewChat {
		return m.chat.View()
	}
	return m.config.View()
}

// Run starts the full-screen program and blocks until the user quits
func Run(app *chat.App, opts Options) error {
	p := tea.NewProgram(
		NewAppModel(app, opts),
		tea.WithAltScreen(),
		tea.WithMouseCellMotion(),
	)

	_, err := p.Run()
	return err
}
