package tui

import (
	"context"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/x/ansi"

	"github.com/diogo/geminichat/internal/api"
	"github.com/diogo/geminichat/internal/chat"
	"github.com/diogo/geminichat/internal/config"
)

// newTestApp returns an app whose factory hands out clients from next
func newTestApp(t *testing.T, next func() *api.MockGeminiClient) *chat.App {
	t.Helper()
	factory := func(apiKey string) (api.GeminiClientInterface, error) {
		return next(), nil
	}
	return chat.NewApp(chat.NewManager(factory, nil, nil), "", nil)
}

func singleClient(c *api.MockGeminiClient) func() *api.MockGeminiClient {
	return func() *api.MockGeminiClient { return c }
}

// newChatScreen returns a sized chat screen on a configured app
func newChatScreen(t *testing.T, client *api.MockGeminiClient, cfg config.Config) (ChatModel, *chat.App) {
	t.Helper()
	app := newTestApp(t, singleClient(client))
	if err := app.Configure(context.Background(), "test-key", "gemini-2.5-flash"); err != nil {
		t.Fatalf("Configure() error = %v", err)
	}

	m := NewChatModel(app, cfg)
	m, _ = m.Update(tea.WindowSizeMsg{Width: 100, Height: 40})
	return m.start(), app
}

// drain pumps the in-flight stream to completion
func drain(t *testing.T, m ChatModel) ChatModel {
	t.Helper()
	for i := 0; m.stream != nil; i++ {
		if i > 100 {
			t.Fatal("stream did not finish")
		}
		m, _ = m.Update(m.stream.wait()())
	}
	return m
}

func keyOf(t tea.KeyType) tea.KeyMsg {
	return tea.KeyMsg{Type: t}
}

func runes(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

// plain strips styling so views can be searched for text
func plain(s string) string {
	return ansi.Strip(s)
}
