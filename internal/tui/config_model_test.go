package tui

import (
	"strings"
	"testing"
	"time"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/diogo/geminichat/internal/api"
	"github.com/diogo/geminichat/internal/chat"
	"github.com/diogo/geminichat/internal/config"
	apierrors "github.com/diogo/geminichat/internal/errors"
	"github.com/diogo/geminichat/internal/models"
)

func newConfigScreen(t *testing.T, client *api.MockGeminiClient) (ConfigModel, *chat.App) {
	t.Helper()
	app := newTestApp(t, singleClient(client))
	m := NewConfigModel(app, time.Second)
	m, _ = m.Update(tea.WindowSizeMsg{Width: 100, Height: 40})
	return m, app
}

func TestNewConfigModel_Defaults(t *testing.T) {
	m, _ := newConfigScreen(t, &api.MockGeminiClient{})

	if m.APIKey() != "" {
		t.Errorf("Expected empty key, got %q", m.APIKey())
	}
	if m.SelectedModel() != models.DefaultModel.Name {
		t.Errorf("Expected default model %s, got %s", models.DefaultModel.Name, m.SelectedModel())
	}
	if m.focus != fieldAPIKey {
		t.Errorf("Expected focus on the key field, got %d", m.focus)
	}
	if m.apiKey.EchoMode != textinput.EchoPassword {
		t.Error("Expected the key to be masked")
	}
	if m.Busy() || m.Status() != "" {
		t.Error("Expected an idle status line")
	}
}

func TestNewConfigModel_Prefill(t *testing.T) {
	app := newTestApp(t, singleClient(&api.MockGeminiClient{}))
	app.Prefill(config.Settings{APIKey: "stored-key", ModelName: "gemini-2.5-pro"})

	m := NewConfigModel(app, 0)

	if m.APIKey() != "stored-key" {
		t.Errorf("Expected stored key, got %q", m.APIKey())
	}
	if m.SelectedModel() != "gemini-2.5-pro" {
		t.Errorf("Expected gemini-2.5-pro, got %s", m.SelectedModel())
	}
	if m.focus != fieldModel {
		t.Error("Expected focus on the model list when a key is stored")
	}
	if m.timeout != config.DefaultConfig().Timeout() {
		t.Errorf("Expected default timeout, got %v", m.timeout)
	}
}

func TestConfigModel_TypingKey(t *testing.T) {
	m, _ := newConfigScreen(t, &api.MockGeminiClient{})

	m, _ = m.Update(runes("abc"))
	m, _ = m.Update(runes("123"))

	if m.APIKey() != "abc123" {
		t.Errorf("Expected 'abc123', got %q", m.APIKey())
	}
	if strings.Contains(plain(m.View()), "abc123") {
		t.Error("Expected the key to be masked in the view")
	}

	m, _ = m.Update(keyOf(tea.KeyCtrlR))
	if !strings.Contains(plain(m.View()), "abc123") {
		t.Error("Expected ctrl+r to reveal the key")
	}

	m, _ = m.Update(keyOf(tea.KeyCtrlR))
	if m.apiKey.EchoMode != textinput.EchoPassword {
		t.Error("Expected a second ctrl+r to mask the key again")
	}
}

func TestConfigModel_FocusCycle(t *testing.T) {
	m, _ := newConfigScreen(t, &api.MockGeminiClient{})

	m, _ = m.Update(keyOf(tea.KeyTab))
	if m.focus != fieldModel {
		t.Errorf("Expected model focus after tab, got %d", m.focus)
	}
	if m.apiKey.Focused() {
		t.Error("Expected key field to be blurred")
	}

	m, _ = m.Update(keyOf(tea.KeyTab))
	if m.focus != fieldAPIKey {
		t.Errorf("Expected key focus after second tab, got %d", m.focus)
	}

	m, _ = m.Update(keyOf(tea.KeyShiftTab))
	if m.focus != fieldModel {
		t.Errorf("Expected model focus after shift+tab, got %d", m.focus)
	}
}

func TestConfigModel_ModelNavigation(t *testing.T) {
	m, _ := newConfigScreen(t, &api.MockGeminiClient{})
	m, _ = m.Update(keyOf(tea.KeyTab))

	all := models.AllModels()

	m, _ = m.Update(keyOf(tea.KeyDown))
	if m.SelectedModel() != all[1].Name {
		t.Errorf("Expected %s, got %s", all[1].Name, m.SelectedModel())
	}

	m, _ = m.Update(keyOf(tea.KeyUp))
	m, _ = m.Update(keyOf(tea.KeyUp))
	if m.SelectedModel() != all[len(all)-1].Name {
		t.Errorf("Expected wrap to %s, got %s", all[len(all)-1].Name, m.SelectedModel())
	}
}

func TestConfigModel_Filter(t *testing.T) {
	tests := []struct {
		name   string
		filter string
		want   string
	}{
		{"pro", "pro", "gemini-2.5-pro"},
		{"gemma 27b", "27b", "gemma-3-27b-it"},
		{"no match", "zzz", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m, _ := newConfigScreen(t, &api.MockGeminiClient{})
			m, _ = m.Update(keyOf(tea.KeyTab))
			m, _ = m.Update(runes(tt.filter))

			if m.SelectedModel() != tt.want {
				t.Errorf("Expected %q, got %q", tt.want, m.SelectedModel())
			}
			if m.APIKey() != "" {
				t.Error("Expected filter typing not to reach the key field")
			}
		})
	}
}

func TestConfigModel_FilterBackspaceAndEsc(t *testing.T) {
	m, _ := newConfigScreen(t, &api.MockGeminiClient{})
	m, _ = m.Update(keyOf(tea.KeyTab))
	m, _ = m.Update(runes("zz"))

	m, _ = m.Update(keyOf(tea.KeyBackspace))
	if m.filter != "z" {
		t.Errorf("Expected filter 'z', got %q", m.filter)
	}

	m, cmd := m.Update(keyOf(tea.KeyEsc))
	if cmd != nil {
		t.Error("Expected esc to clear the filter, not quit")
	}
	if m.filter != "" || len(m.filtered) != len(models.AllModels()) {
		t.Error("Expected the full list after clearing the filter")
	}
}

func TestConfigModel_SubmitInputErrors(t *testing.T) {
	tests := []struct {
		name   string
		key    string
		filter string
		want   string
	}{
		{"empty key", "", "", chat.MsgEmptyAPIKey},
		{"blank key", "   ", "", chat.MsgEmptyAPIKey},
		{"no model", "key", "zzz", chat.MsgUnsupportedModel},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			client := &api.MockGeminiClient{}
			m, app := newConfigScreen(t, client)
			m.apiKey.SetValue(tt.key)
			if tt.filter != "" {
				m = m.focusField(fieldModel).setFilter(tt.filter)
			}

			m, cmd := m.Update(keyOf(tea.KeyEnter))

			if cmd != nil {
				t.Error("Expected no request for invalid input")
			}
			if m.Status() != tt.want {
				t.Errorf("Expected status %q, got %q", tt.want, m.Status())
			}
			if m.Busy() {
				t.Error("Expected not busy")
			}
			if client.ValidateCalled {
				t.Error("Expected no validation request")
			}
			if app.View() != chat.ViewConfiguration {
				t.Error("Expected to stay on the configuration screen")
			}
		})
	}
}

func TestConfigModel_SubmitSuccess(t *testing.T) {
	client := &api.MockGeminiClient{}
	m, app := newConfigScreen(t, client)
	m.apiKey.SetValue("valid-key")

	m, cmd := m.Update(keyOf(tea.KeyEnter))
	if cmd == nil {
		t.Fatal("Expected a configuration command")
	}
	if !m.Busy() || m.Status() != StatusConfiguring {
		t.Errorf("Expected busy status %q, got %q", StatusConfiguring, m.Status())
	}
	if !strings.Contains(plain(m.View()), StatusConfiguring) {
		t.Error("Expected the status line in the view")
	}

	msg, ok := cmd().(configuredMsg)
	if !ok {
		t.Fatal("Expected configuredMsg")
	}
	if msg.err != nil || msg.session == nil {
		t.Fatalf("Expected a session, got err %v", msg.err)
	}
	if client.ValidatedModel != models.DefaultModel.Name {
		t.Errorf("Expected %s validated, got %s", models.DefaultModel.Name, client.ValidatedModel)
	}
	if app.Settings().APIKey != "valid-key" {
		t.Error("Expected the app settings to hold the key")
	}

	m, _ = m.Update(msg)
	if m.Busy() || m.Status() != "" {
		t.Error("Expected an idle, empty status after success")
	}
}

func TestConfigModel_SubmitRejected(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want string
	}{
		{"auth", apierrors.NewAuthError("API key not valid"), chat.MsgInvalidKey},
		{"network", apierrors.NewNetworkError("validate model", nil), chat.MsgUnreachable},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			client := &api.MockGeminiClient{ValidateErr: tt.err}
			m, app := newConfigScreen(t, client)
			m.apiKey.SetValue("some-key")

			m, cmd := m.Update(keyOf(tea.KeyEnter))
			m, _ = m.Update(cmd())

			if m.Status() != tt.want {
				t.Errorf("Expected status %q, got %q", tt.want, m.Status())
			}
			if m.Busy() {
				t.Error("Expected not busy after failure")
			}
			if app.Session() != nil {
				t.Error("Expected no session")
			}
		})
	}
}

func TestConfigModel_IgnoresKeysWhileBusy(t *testing.T) {
	m, _ := newConfigScreen(t, &api.MockGeminiClient{})
	m.apiKey.SetValue("key")

	m, _ = m.Update(keyOf(tea.KeyEnter))
	m, cmd := m.Update(keyOf(tea.KeyEnter))
	if cmd != nil {
		t.Error("Expected a second enter to be ignored while busy")
	}

	m, cmd = m.Update(keyOf(tea.KeyEsc))
	if cmd != nil {
		t.Error("Expected esc to cancel, not quit, while busy")
	}
	if !m.Busy() {
		t.Error("Expected to stay busy until the result arrives")
	}
}

func TestConfigModel_View(t *testing.T) {
	m, _ := newConfigScreen(t, &api.MockGeminiClient{})
	m = m.WithSettingsPath("/tmp/settings.db")

	view := plain(m.View())
	for _, want := range []string{"API Key", "Model", models.DefaultModel.Name, "(default)", "/tmp/settings.db"} {
		if !strings.Contains(view, want) {
			t.Errorf("Expected view to contain %q", want)
		}
	}
}
