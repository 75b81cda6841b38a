package commands

import (
	"errors"
	"fmt"
	"io"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/diogo/geminichat/internal/chat"
	"github.com/diogo/geminichat/internal/config"
	"github.com/diogo/geminichat/internal/logging"
	"github.com/diogo/geminichat/internal/render"
	"github.com/diogo/geminichat/internal/tui"
)

// ErrNotTerminal is returned when the interactive chat is started without a terminal
var ErrNotTerminal = errors.New("the interactive chat needs a terminal; pass a prompt to run a single query")

// runChat opens the settings store and starts the TUI on the configuration
// screen, prefilled with the stored key and model
func runChat(cmd *cobra.Command, deps *Dependencies, cfg config.Config, modelOverride string) error {
	if !deps.stdoutIsTerminal() {
		return ErrNotTerminal
	}

	logger, closer, err := openLogger(cfg)
	if err != nil {
		return err
	}
	defer closer.Close()

	if cfg.TUITheme != "" && !render.SetTUITheme(cfg.TUITheme) {
		fmt.Fprintf(cmd.ErrOrStderr(), "Warning: unknown theme %q, using %s\n", cfg.TUITheme, render.GetTUITheme().Name)
	}
	tui.UpdateTheme()

	store, err := deps.OpenStore()
	if err != nil {
		return fmt.Errorf("failed to open settings: %w", err)
	}
	defer store.Close()

	stored, err := store.Load()
	if err != nil {
		logger.Warn("failed to load settings", "error", err)
	}
	if modelOverride != "" {
		stored.ModelName = modelOverride
	}

	manager := chat.NewManager(deps.factory(cfg), store, logger)
	defer func() {
		manager.End(manager.Active())
	}()

	app := chat.NewApp(manager, cfg.GreetingText(), logger)
	app.Prefill(stored)

	logger.Info("starting chat", "settings", store.Path(), "stored_key", stored.APIKey != "")

	return deps.TUI.Run(app, tui.Options{Config: cfg, SettingsPath: store.Path()})
}

// openLogger opens the debug log when debugging is enabled
func openLogger(cfg config.Config) (*slog.Logger, io.Closer, error) {
	if !cfg.Debug {
		return logging.OpenFile("", false)
	}
	path, err := config.GetLogPath()
	if err != nil {
		return nil, nil, err
	}
	return logging.OpenFile(path, true)
}
