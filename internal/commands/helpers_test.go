package commands

import (
	"bytes"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/diogo/geminichat/internal/api"
	"github.com/diogo/geminichat/internal/chat"
	"github.com/diogo/geminichat/internal/config"
	"github.com/diogo/geminichat/internal/tui"
)

// fakeTUI records what the interactive chat would have started with
type fakeTUI struct {
	called   bool
	settings config.Settings
	opts     tui.Options
	err      error
}

func (f *fakeTUI) Run(app *chat.App, opts tui.Options) error {
	f.called = true
	f.settings = app.Settings()
	f.opts = opts
	return f.err
}

type testEnv struct {
	deps      *Dependencies
	tui       *fakeTUI
	client    *api.MockGeminiClient
	storePath string
	copied    []string
	terminal  bool
}

// newTestEnv points the config directory at a temp dir and wires fakes
func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	home := t.TempDir()
	t.Setenv(config.HomeEnv, home)

	env := &testEnv{
		tui:       &fakeTUI{},
		client:    &api.MockGeminiClient{Fragments: []string{"Hello", ", world"}},
		storePath: filepath.Join(home, "settings.db"),
	}
	env.deps = &Dependencies{
		NewClient: func(apiKey string, timeout time.Duration) (api.GeminiClientInterface, error) {
			return env.client, nil
		},
		OpenStore: func() (*config.SettingsStore, error) {
			return config.OpenSettingsStore(env.storePath)
		},
		TUI:        env.tui,
		IsTerminal: func(fd uintptr) bool { return env.terminal },
		CopyText: func(text string) error {
			env.copied = append(env.copied, text)
			return nil
		},
	}
	return env
}

// seed writes settings to the store
func (e *testEnv) seed(t *testing.T, st config.Settings) {
	t.Helper()
	store, err := config.OpenSettingsStore(e.storePath)
	if err != nil {
		t.Fatalf("OpenSettingsStore() error = %v", err)
	}
	defer store.Close()
	if err := store.Save(st); err != nil {
		t.Fatalf("Save() error = %v", err)
	}
}

// stored reads the settings back from the store
func (e *testEnv) stored(t *testing.T) config.Settings {
	t.Helper()
	store, err := config.OpenSettingsStore(e.storePath)
	if err != nil {
		t.Fatalf("OpenSettingsStore() error = %v", err)
	}
	defer store.Close()
	st, err := store.Load()
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	return st
}

// run executes the root command with args and stdin
func (e *testEnv) run(stdin string, args ...string) (string, string, error) {
	cmd := NewRootCmd(e.deps)
	var stdout, stderr bytes.Buffer
	cmd.SetOut(&stdout)
	cmd.SetErr(&stderr)
	cmd.SetIn(strings.NewReader(stdin))
	// A nil slice makes cobra fall back to os.Args
	if args == nil {
		args = []string{}
	}
	cmd.SetArgs(args)
	err := cmd.Execute()
	return stdout.String(), stderr.String(), err
}
