package tui

import (
	"context"
	"fmt"
	"iter"
	"strings"

	"github.com/atotto/clipboard"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textarea"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/diogo/geminichat/internal/chat"
	"github.com/diogo/geminichat/internal/config"
	"github.com/diogo/geminichat/internal/models"
	"github.com/diogo/geminichat/internal/render"
)

// Message types for the chat screen
type (
	// fragmentMsg carries one piece of the in-flight reply
	fragmentMsg struct {
		id   int
		text string
	}
	// streamDoneMsg ends the in-flight reply, err is nil on success
	streamDoneMsg struct {
		id  int
		err error
	}
	// clipboardMsg reports the result of a copy
	clipboardMsg struct {
		err error
	}
	// settingsRequestMsg asks the parent to show the configuration screen
	settingsRequestMsg struct{}
)

// fragmentStream pulls a reply one fragment per command so the UI loop
// never blocks on the network
type fragmentStream struct {
	id     int
	next   func() (string, error, bool)
	stop   func()
	cancel context.CancelFunc
}

func (s *fragmentStream) wait() tea.Cmd {
	return func() tea.Msg {
		frag, err, ok := s.next()
		if !ok {
			return streamDoneMsg{id: s.id}
		}
		if err != nil {
			return streamDoneMsg{id: s.id, err: err}
		}
		return fragmentMsg{id: s.id, text: frag}
	}
}

// ChatModel is the chat screen
type ChatModel struct {
	app *chat.App

	copyOnComplete bool
	markdown       render.Options
	copyText       func(string) error

	// UI components
	viewport viewport.Model
	textarea textarea.Model
	spinner  spinner.Model

	// State
	stream   *fragmentStream
	streamID int
	notice   string
	frame    int
	ready    bool

	// Rendered markdown of finished entries, keyed by entry id
	rendered      map[int]string
	renderedWidth int

	// Dimensions
	width  int
	height int
}

// NewChatModel creates the chat screen for app
func NewChatModel(app *chat.App, cfg config.Config) ChatModel {
	ta := textarea.New()
	ta.Placeholder = "Type your message here..."
	ta.CharLimit = 8000
	ta.ShowLineNumbers = false
	ta.Prompt = ""
	ta.SetHeight(3)
	ta.KeyMap.InsertNewline = key.NewBinding(key.WithKeys("alt+enter", "ctrl+j"))
	ta.Focus()

	ta.FocusedStyle.CursorLine = lipgloss.NewStyle()
	ta.FocusedStyle.Base = lipgloss.NewStyle().Foreground(colorText)
	ta.FocusedStyle.Placeholder = lipgloss.NewStyle().Foreground(colorTextDim)
	ta.BlurredStyle = ta.FocusedStyle

	s := spinner.New()
	s.Spinner = spinner.Dot
	s.Style = loadingStyle

	return ChatModel{
		app:            app,
		copyOnComplete: cfg.CopyOnComplete,
		markdown:       render.OptionsFromConfig(cfg.Markdown),
		copyText:       clipboard.WriteAll,
		textarea:       ta,
		spinner:        s,
		rendered:       make(map[int]string),
	}
}

// newViewport builds a transcript viewport that only scrolls on page keys,
// leaving the arrows to the textarea
func newViewport(width, height int) viewport.Model {
	vp := viewport.New(width, height)
	vp.KeyMap = viewport.KeyMap{
		PageUp:   key.NewBinding(key.WithKeys("pgup")),
		PageDown: key.NewBinding(key.WithKeys("pgdown")),
	}
	vp.MouseWheelEnabled = true
	return vp
}

// Init initializes the model
func (m ChatModel) Init() tea.Cmd {
	return textarea.Blink
}

// start prepares the screen for a freshly shown chat
func (m ChatModel) start() ChatModel {
	m.stream = nil
	m.notice = ""
	m.textarea.Reset()
	m.textarea.Focus()
	m.refresh(true)
	return m
}

// Streaming reports whether a reply is being pulled
func (m ChatModel) Streaming() bool {
	return m.stream != nil
}

// Update handles messages and updates the model
func (m ChatModel) Update(msg tea.Msg) (ChatModel, tea.Cmd) {
	var cmds []tea.Cmd
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.layout()
		m.refresh(true)
		return m, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c":
			if m.stream != nil {
				m.stream.cancel()
			}
			return m, tea.Quit

		case "esc":
			if m.stream != nil {
				m.stream.cancel()
				m.notice = "Stopping..."
				return m, nil
			}
			return m, tea.Quit

		case "ctrl+s":
			if m.stream != nil {
				m.notice = "Wait for the reply to finish, or press esc to stop it"
				return m, nil
			}
			return m, func() tea.Msg { return settingsRequestMsg{} }

		case "ctrl+y":
			reply, ok := m.app.Transcript().Last(models.RoleAssistant)
			if !ok || reply.Streaming || reply.Text == "" {
				m.notice = "Nothing to copy"
				return m, nil
			}
			return m, m.copyCmd(reply.Text)

		case "pgup", "pgdown":
			m.viewport, cmd = m.viewport.Update(msg)
			return m, cmd

		case "enter":
			return m.submit()
		}

		if m.stream == nil {
			m.textarea, cmd = m.textarea.Update(msg)
			cmds = append(cmds, cmd)
		}

	case tea.MouseMsg:
		m.viewport, cmd = m.viewport.Update(msg)
		cmds = append(cmds, cmd)

	case fragmentMsg:
		if m.stream == nil || msg.id != m.stream.id {
			return m, nil
		}
		m.app.ApplyFragment(msg.text)
		m.refresh(false)
		return m, m.stream.wait()

	case streamDoneMsg:
		if m.stream == nil || msg.id != m.stream.id {
			return m, nil
		}
		return m.finish(msg.err)

	case clipboardMsg:
		if msg.err != nil {
			m.notice = "Copy failed: " + msg.err.Error()
		} else {
			m.notice = "Reply copied to clipboard"
		}

	case spinner.TickMsg:
		if m.stream != nil {
			m.spinner, cmd = m.spinner.Update(msg)
			m.frame++
			m.refresh(false)
			cmds = append(cmds, cmd)
		}

	default:
		if m.stream == nil {
			m.textarea, cmd = m.textarea.Update(msg)
			cmds = append(cmds, cmd)
		}
	}

	return m, tea.Batch(cmds...)
}

// submit records the input and starts pulling the reply
func (m ChatModel) submit() (ChatModel, tea.Cmd) {
	text, ok := m.app.Submit(m.textarea.Value())
	if !ok {
		return m, nil
	}

	m.textarea.Reset()
	m.textarea.Blur()
	m.notice = ""
	m.frame = 0

	ctx, cancel := context.WithCancel(context.Background())
	next, stop := iter.Pull2(m.app.Stream(ctx, text))
	m.streamID++
	m.stream = &fragmentStream{id: m.streamID, next: next, stop: stop, cancel: cancel}

	m.refresh(true)
	return m, tea.Batch(m.stream.wait(), m.spinner.Tick)
}

// finish closes the in-flight reply, always handing focus back to the input
func (m ChatModel) finish(err error) (ChatModel, tea.Cmd) {
	m.stream.stop()
	m.stream.cancel()
	m.stream = nil

	reply, ok := m.app.FinishStream(err)

	m.notice = ""
	m.textarea.Focus()
	m.refresh(true)

	if err == nil && ok && m.copyOnComplete && reply.Text != "" {
		return m, tea.Batch(textarea.Blink, m.copyCmd(reply.Text))
	}
	return m, textarea.Blink
}

func (m ChatModel) copyCmd(text string) tea.Cmd {
	copyText := m.copyText
	return func() tea.Msg {
		return clipboardMsg{err: copyText(text)}
	}
}

// layout sizes the viewport and textarea from the window size
func (m *ChatModel) layout() {
	headerHeight := 3 // Header panel with border
	inputHeight := 6  // Input panel with border
	statusHeight := 1 // Status bar
	borders := 2      // Messages panel border

	vpHeight := m.height - headerHeight - inputHeight - statusHeight - borders
	if vpHeight < 5 {
		vpHeight = 5
	}

	contentWidth := m.width - 4
	if contentWidth < 20 {
		contentWidth = 20
	}

	if !m.ready {
		m.viewport = newViewport(contentWidth, vpHeight)
		m.ready = true
	} else {
		m.viewport.Width = contentWidth
		m.viewport.Height = vpHeight
	}
	m.textarea.SetWidth(contentWidth - 4)
}

// refresh rebuilds the transcript view. It follows the bottom when forced
// or when the user had not scrolled away from it.
func (m *ChatModel) refresh(force bool) {
	if !m.ready {
		return
	}
	follow := force || m.viewport.AtBottom()
	m.viewport.SetContent(m.renderTranscript())
	if follow {
		m.viewport.GotoBottom()
	}
}

func (m *ChatModel) bubbleWidth() int {
	w := m.viewport.Width - 6
	if w < 20 {
		w = 20
	}
	return w
}

// renderTranscript renders every entry as a labelled bubble
func (m *ChatModel) renderTranscript() string {
	width := m.bubbleWidth()
	if width != m.renderedWidth {
		clear(m.rendered)
		m.renderedWidth = width
	}

	var content strings.Builder
	for i, entry := range m.app.Transcript().Entries() {
		if i > 0 {
			content.WriteString("\n")
		}
		content.WriteString(m.renderEntry(entry, width))
		content.WriteString("\n")
	}
	return content.String()
}

func (m *ChatModel) renderEntry(entry models.Message, width int) string {
	switch entry.Role {
	case models.RoleUser:
		label := userLabelStyle.Render("● " + entry.Author)
		return label + "\n" + userBubbleStyle.Width(width).Render(entry.Text)

	case models.RolePlaceholder:
		return m.spinner.View() + " " + placeholderStyle.Render(entry.Text)

	case models.RoleSystemError:
		label := errorLabelStyle.Render("⚠ " + entry.Author)
		return label + "\n" + errorBubbleStyle.Width(width).Render(entry.Text)
	}

	label := assistantLabelStyle.Render("✦ " + entry.Author)
	if entry.Streaming {
		return label + "\n" + assistantBubbleStyle.Width(width).Render(entry.Text+loadingStyle.Render("▍"))
	}

	body, ok := m.rendered[entry.ID]
	if !ok {
		body = render.MarkdownOrPlain(entry.Text, m.markdown.WithWidth(width-2))
		m.rendered[entry.ID] = body
	}
	return label + "\n" + assistantBubbleStyle.Width(width).Render(body)
}

// View renders the chat screen
func (m ChatModel) View() string {
	if !m.ready {
		return loadingStyle.Render("  Initializing...")
	}

	contentWidth := m.width - 4
	if contentWidth < 20 {
		contentWidth = 20
	}

	modelName := ""
	if s := m.app.Session(); s != nil {
		modelName = s.Model()
	}

	header := headerStyle.Width(contentWidth).Render(lipgloss.JoinHorizontal(
		lipgloss.Center,
		titleStyle.Render("✦ Chat with "+modelName),
		hintStyle.Render("  •  ctrl+s settings"),
	))

	messages := messagesAreaStyle.
		Width(contentWidth).
		Height(m.viewport.Height).
		Render(m.viewport.View())

	var inputContent string
	if m.stream != nil {
		inputContent = lipgloss.JoinVertical(
			lipgloss.Left,
			m.renderThinking(),
			hintStyle.Render("esc to stop"),
		)
	} else {
		inputContent = lipgloss.JoinVertical(
			lipgloss.Left,
			inputLabelStyle.Render("You"),
			m.textarea.View(),
		)
	}
	input := inputPanelStyle.Width(contentWidth).Render(inputContent)

	return lipgloss.JoinVertical(lipgloss.Left, header, messages, input, m.renderStatusBar(contentWidth))
}

// renderThinking renders an animated bar while a reply streams
func (m ChatModel) renderThinking() string {
	barWidth := 16
	var bar strings.Builder
	for i := 0; i < barWidth; i++ {
		c := gradientColors[(i+m.frame)%len(gradientColors)]
		bar.WriteString(lipgloss.NewStyle().Foreground(c).Render("━"))
	}
	text := lipgloss.NewStyle().Foreground(colorText).Render(" Gemini is responding")
	return fmt.Sprintf("%s %s%s", m.spinner.View(), bar.String(), text)
}

// renderStatusBar renders the bottom status bar with shortcuts, or the
// current notice
func (m ChatModel) renderStatusBar(width int) string {
	if m.notice != "" {
		return statusBarStyle.Width(width).Align(lipgloss.Center).
			Render(lipgloss.NewStyle().Foreground(colorWarning).Render(m.notice))
	}

	shortcuts := []struct {
		key  string
		desc string
	}{
		{"Enter", "Send"},
		{"Alt+Enter", "Newline"},
		{"Esc", "Stop/Quit"},
		{"Ctrl+Y", "Copy"},
		{"PgUp/PgDn", "Scroll"},
	}

	var items []string
	for _, s := range shortcuts {
		items = append(items, statusKeyStyle.Render(s.key)+statusDescStyle.Render(" "+s.desc))
	}

	return statusBarStyle.Width(width).Align(lipgloss.Center).Render(strings.Join(items, "  │  "))
}
