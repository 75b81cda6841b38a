// Package commands provides CLI commands for geminichat.
package commands

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/diogo/geminichat/internal/config"
	"github.com/diogo/geminichat/internal/models"
	"github.com/diogo/geminichat/internal/render"
	"github.com/diogo/geminichat/internal/tui"
)

var (
	// Version info (set at build time)
	Version   = "0.1.0"
	BuildTime = "unknown"
)

// rootOptions holds the root command flags
type rootOptions struct {
	model   string
	theme   string
	debug   bool
	version bool
}

// NewRootCmd creates the root command with its subcommands
func NewRootCmd(deps *Dependencies) *cobra.Command {
	opts := &rootOptions{}

	cmd := &cobra.Command{
		Use:   "geminichat [prompt]",
		Short: "Terminal chat client for the Gemini API",
		Long: `geminichat is a terminal chat client for Google's Gemini models.
It asks for an API key and a model once, remembers them, and streams
every reply into the chat as it is generated.

Examples:
  geminichat                            Start the interactive chat
  geminichat -m gemini-2.5-pro          Start with a model pre-selected
  geminichat "What is Go?"              Send a single query
  cat prompt.md | geminichat            Read a single query from stdin
  geminichat models                     List the supported models
  geminichat settings show              Show the stored settings`,
		Args:          cobra.MaximumNArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			if opts.version {
				fmt.Fprintf(cmd.OutOrStdout(), "geminichat %s (built %s)\n", Version, BuildTime)
				return nil
			}

			if opts.model != "" && !models.IsSupported(opts.model) {
				return fmt.Errorf("unsupported model %q (see 'geminichat models')", opts.model)
			}

			cfg := loadConfig(cmd.ErrOrStderr())
			if opts.debug {
				cfg.Debug = true
			}
			if opts.theme != "" {
				cfg.TUITheme = opts.theme
			}

			if len(args) > 0 {
				return runQuery(cmd, deps, cfg, opts.model, args[0])
			}

			prompt, piped, err := readPipedPrompt(cmd.InOrStdin())
			if err != nil {
				return err
			}
			if piped {
				return runQuery(cmd, deps, cfg, opts.model, prompt)
			}

			return runChat(cmd, deps, cfg, opts.model)
		},
	}

	cmd.PersistentFlags().StringVarP(&opts.model, "model", "m", "", "Model to use (e.g., gemini-2.5-flash)")
	cmd.PersistentFlags().BoolVar(&opts.debug, "debug", false, "Write a debug log to the config directory")
	cmd.Flags().StringVar(&opts.theme, "theme", "", "TUI color theme ("+strings.Join(render.TUIThemeNames(), ", ")+")")
	cmd.Flags().BoolVarP(&opts.version, "version", "v", false, "Show version and exit")

	cmd.AddCommand(NewModelsCmd(deps))
	cmd.AddCommand(NewSettingsCmd(deps))

	return cmd
}

// rootCmd represents the base command
var rootCmd = NewRootCmd(NewDependencies())

// Execute runs the root command
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		tui.PrintError(err)
		os.Exit(1)
	}
}

// loadConfig returns the user preferences, falling back to defaults with a
// warning when the file cannot be read
func loadConfig(stderr io.Writer) config.Config {
	cfg, err := config.LoadConfig()
	if err != nil {
		fmt.Fprintf(stderr, "Warning: %v, using defaults\n", err)
		return config.DefaultConfig()
	}
	return cfg
}

// readPipedPrompt reads a prompt from r unless r is an interactive terminal.
// Empty input counts as no prompt.
func readPipedPrompt(r io.Reader) (string, bool, error) {
	if r == nil {
		return "", false, nil
	}
	if f, ok := r.(*os.File); ok {
		stat, err := f.Stat()
		if err != nil || stat.Mode()&os.ModeCharDevice != 0 {
			return "", false, nil
		}
	}

	data, err := io.ReadAll(r)
	if err != nil {
		return "", false, fmt.Errorf("failed to read stdin: %w", err)
	}
	prompt := strings.TrimSpace(string(data))
	return prompt, prompt != "", nil
}
