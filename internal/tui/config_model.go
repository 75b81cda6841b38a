package tui

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/sahilm/fuzzy"

	"github.com/diogo/geminichat/internal/chat"
	"github.com/diogo/geminichat/internal/config"
	"github.com/diogo/geminichat/internal/models"
)

// StatusConfiguring is shown while a key/model pair is being checked
const StatusConfiguring = "Configuring Gemini..."

// configField is the focused control on the configuration screen
type configField int

const (
	fieldAPIKey configField = iota
	fieldModel
	fieldCount
)

// configuredMsg carries the result of a configuration attempt
type configuredMsg struct {
	session *chat.Session
	err     error
}

// ConfigModel is the configuration screen: model list, API key field and
// status line
type ConfigModel struct {
	app     *chat.App
	timeout time.Duration

	apiKey    textinput.Model
	revealKey bool
	focus     configField

	// Model list
	filter   string
	filtered []models.Model
	cursor   int

	// Status line
	busy   bool
	status string
	cancel context.CancelFunc

	settingsPath string

	width  int
	height int
}

// NewConfigModel creates the configuration screen prefilled from the
// app's last settings
func NewConfigModel(app *chat.App, timeout time.Duration) ConfigModel {
	ti := textinput.New()
	ti.Placeholder = "Paste your Gemini API key"
	ti.EchoMode = textinput.EchoPassword
	ti.EchoCharacter = '•'
	ti.CharLimit = 256
	ti.Width = 48
	ti.Prompt = ""
	ti.TextStyle = lipgloss.NewStyle().Foreground(colorText)
	ti.PlaceholderStyle = lipgloss.NewStyle().Foreground(colorTextDim)

	if timeout <= 0 {
		timeout = config.DefaultConfig().Timeout()
	}

	m := ConfigModel{
		app:     app,
		timeout: timeout,
		apiKey:  ti,
	}
	return m.reset()
}

// WithSettingsPath sets the settings location shown under the form
func (m ConfigModel) WithSettingsPath(path string) ConfigModel {
	m.settingsPath = path
	return m
}

// reset reloads the form from the app settings and clears the status line
func (m ConfigModel) reset() ConfigModel {
	st := m.app.Settings()

	m.apiKey.SetValue(st.APIKey)
	m.apiKey.CursorEnd()
	m.revealKey = false
	m.apiKey.EchoMode = textinput.EchoPassword

	m.filter = ""
	m.filtered = models.AllModels()
	m.cursor = 0
	if i := models.IndexOf(st.ModelName); i >= 0 {
		m.cursor = i
	} else if i := models.IndexOf(models.DefaultModel.Name); i >= 0 {
		m.cursor = i
	}

	m.busy = false
	m.status = ""
	m.cancel = nil

	if st.APIKey == "" {
		m = m.focusField(fieldAPIKey)
	} else {
		m = m.focusField(fieldModel)
	}
	return m
}

// Init initializes the model
func (m ConfigModel) Init() tea.Cmd {
	return textinput.Blink
}

// APIKey returns the key typed in the form
func (m ConfigModel) APIKey() string {
	return m.apiKey.Value()
}

// SelectedModel returns the highlighted model name, or "" when the filter
// matches nothing
func (m ConfigModel) SelectedModel() string {
	if m.cursor < 0 || m.cursor >= len(m.filtered) {
		return ""
	}
	return m.filtered[m.cursor].Name
}

// Status returns the status line text
func (m ConfigModel) Status() string {
	return m.status
}

// Busy reports whether a configuration attempt is running
func (m ConfigModel) Busy() bool {
	return m.busy
}

// Update handles messages and updates the model
func (m ConfigModel) Update(msg tea.Msg) (ConfigModel, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case configuredMsg:
		return m.finish(msg), nil

	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c":
			if m.cancel != nil {
				m.cancel()
			}
			return m, tea.Quit

		case "esc":
			if m.busy {
				if m.cancel != nil {
					m.cancel()
				}
				return m, nil
			}
			if m.focus == fieldModel && m.filter != "" {
				return m.setFilter(""), nil
			}
			return m, tea.Quit

		case "ctrl+r":
			m.revealKey = !m.revealKey
			if m.revealKey {
				m.apiKey.EchoMode = textinput.EchoNormal
			} else {
				m.apiKey.EchoMode = textinput.EchoPassword
			}
			return m, nil
		}

		if m.busy {
			return m, nil
		}

		switch msg.String() {
		case "enter":
			return m.submit()

		case "tab":
			return m.focusField((m.focus + 1) % fieldCount), nil

		case "shift+tab":
			return m.focusField((m.focus + fieldCount - 1) % fieldCount), nil
		}

		if m.focus == fieldModel {
			return m.updateModelList(msg), nil
		}

		var cmd tea.Cmd
		m.apiKey, cmd = m.apiKey.Update(msg)
		return m, cmd
	}

	if m.focus == fieldAPIKey {
		var cmd tea.Cmd
		m.apiKey, cmd = m.apiKey.Update(msg)
		return m, cmd
	}
	return m, nil
}

// updateModelList moves the cursor or edits the filter
func (m ConfigModel) updateModelList(msg tea.KeyMsg) ConfigModel {
	switch msg.String() {
	case "up", "ctrl+p":
		if len(m.filtered) > 0 {
			m.cursor--
			if m.cursor < 0 {
				m.cursor = len(m.filtered) - 1
			}
		}

	case "down", "ctrl+n":
		if len(m.filtered) > 0 {
			m.cursor++
			if m.cursor >= len(m.filtered) {
				m.cursor = 0
			}
		}

	case "backspace":
		if m.filter != "" {
			r := []rune(m.filter)
			return m.setFilter(string(r[:len(r)-1]))
		}

	default:
		if msg.Type == tea.KeyRunes && !msg.Alt {
			return m.setFilter(m.filter + string(msg.Runes))
		}
	}
	return m
}

// setFilter narrows the model list with a fuzzy match on the model names
func (m ConfigModel) setFilter(filter string) ConfigModel {
	m.filter = filter
	m.cursor = 0

	all := models.AllModels()
	if strings.TrimSpace(filter) == "" {
		m.filtered = all
		return m
	}

	matches := fuzzy.Find(filter, models.ModelNames())
	m.filtered = make([]models.Model, 0, len(matches))
	for _, match := range matches {
		m.filtered = append(m.filtered, all[match.Index])
	}
	return m
}

func (m ConfigModel) focusField(f configField) ConfigModel {
	m.focus = f
	if f == fieldAPIKey {
		m.apiKey.Focus()
	} else {
		m.apiKey.Blur()
	}
	return m
}

// submit starts a configuration attempt off the UI loop
func (m ConfigModel) submit() (ConfigModel, tea.Cmd) {
	key := m.apiKey.Value()
	modelName := m.SelectedModel()

	// Input errors need no request
	if err := chat.CheckInput(key, modelName); err != nil {
		m.status = err.Error()
		return m, nil
	}

	m.app.Prefill(config.Settings{APIKey: strings.TrimSpace(key), ModelName: modelName})

	ctx, cancel := context.WithTimeout(context.Background(), m.timeout)
	m.cancel = cancel
	m.busy = true
	m.status = StatusConfiguring

	app := m.app
	return m, func() tea.Msg {
		defer cancel()
		s, err := app.Connect(ctx, key, modelName)
		return configuredMsg{session: s, err: err}
	}
}

// finish records the result of a configuration attempt. Switching to the
// chat screen on success is left to the parent model.
func (m ConfigModel) finish(msg configuredMsg) ConfigModel {
	m.busy = false
	m.cancel = nil
	if msg.err != nil {
		m.status = msg.err.Error()
		return m
	}
	m.status = ""
	return m
}

// View renders the configuration screen
func (m ConfigModel) View() string {
	width := m.width - 8
	if width < 50 {
		width = 50
	}

	var content strings.Builder

	content.WriteString(configHeaderStyle.Width(width).Render("✦ Gemini Chat"))
	content.WriteString("\n")

	// API key
	content.WriteString(m.sectionTitle("API Key", fieldAPIKey))
	content.WriteString("\n")
	content.WriteString(configMenuItemStyle.Render(m.apiKey.View()))
	content.WriteString("\n")
	reveal := "ctrl+r to show"
	if m.revealKey {
		reveal = "ctrl+r to hide"
	}
	content.WriteString(configMenuItemStyle.Render(hintStyle.Render(reveal)))
	content.WriteString("\n")

	// Model list
	content.WriteString(m.sectionTitle("Model", fieldModel))
	content.WriteString("\n")
	if m.filter != "" {
		content.WriteString(configMenuItemStyle.Render(inputLabelStyle.Render("Filter:") + m.filter + "_"))
		content.WriteString("\n")
	}
	content.WriteString(m.renderModelList())
	content.WriteString("\n")

	// Status line
	switch {
	case m.busy:
		content.WriteString(configBusyStyle.Render(m.status))
	case m.status != "":
		content.WriteString(configStatusErrorStyle.Render(m.status))
	}

	panel := configPanelStyle.Width(width).Render(content.String())

	sections := []string{panel}
	if m.settingsPath != "" {
		sections = append(sections, configPathStyle.Render("Settings: "+m.settingsPath))
	}
	sections = append(sections, configStatusBarStyle.Width(width).Render(
		"enter start chatting • tab switch field • ↑/↓ select model • esc quit",
	))

	return lipgloss.JoinVertical(lipgloss.Left, sections...)
}

func (m ConfigModel) sectionTitle(title string, f configField) string {
	if m.focus == f {
		return configSectionTitleStyle.Render("▸ " + title)
	}
	return configSectionTitleStyle.Render("  " + title)
}

func (m ConfigModel) renderModelList() string {
	if len(m.filtered) == 0 {
		return configMenuItemStyle.Render(hintStyle.Render("No models match filter"))
	}

	lines := make([]string, 0, len(m.filtered))
	for i, model := range m.filtered {
		cursor := "  "
		name := lipgloss.NewStyle().Foreground(colorText).Render(model.Name)
		if i == m.cursor {
			cursor = configCursorStyle.Render("▸ ")
			name = configMenuSelectedStyle.Render(model.Name)
		}
		line := fmt.Sprintf("%s%s", cursor, name)
		if model.Name == models.DefaultModel.Name {
			line += configValueStyle.Render(" (default)")
		}
		lines = append(lines, line)
	}
	return strings.Join(lines, "\n")
}
