package commands

import (
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strings"
	"sync"
	"time"

	"github.com/atotto/clipboard"
	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	"github.com/diogo/geminichat/internal/chat"
	"github.com/diogo/geminichat/internal/config"
	apierrors "github.com/diogo/geminichat/internal/errors"
	"github.com/diogo/geminichat/internal/models"
)

// ErrNoStoredKey is returned by a single query when no API key was saved yet
var ErrNoStoredKey = errors.New("no API key stored; run 'geminichat' once to configure one")

// Gradient colors for animation
var gradientColors = []lipgloss.Color{
	lipgloss.Color("#4285f4"), // Blue
	lipgloss.Color("#5e8ef6"),
	lipgloss.Color("#7b6cf6"), // Violet
	lipgloss.Color("#9b72cb"), // Purple
	lipgloss.Color("#c86f9b"),
	lipgloss.Color("#d96570"), // Rose
}

var (
	colorText     = lipgloss.Color("#c0caf5")
	colorTextMute = lipgloss.Color("#3b4261")
	colorSuccess  = lipgloss.Color("#9ece6a")
)

// spinner handles the animated loading indicator
type spinner struct {
	out     io.Writer
	message string
	stop    chan struct{}
	done    chan struct{}
	mu      sync.Mutex
	frame   int
	stopped bool // Flag to prevent double-close
}

// newSpinner creates a new animated spinner writing to out
func newSpinner(out io.Writer, message string) *spinner {
	return &spinner{
		out:     out,
		message: message,
		stop:    make(chan struct{}),
		done:    make(chan struct{}),
	}
}

// start begins the animation
func (s *spinner) start() {
	go func() {
		defer close(s.done)

		ticker := time.NewTicker(80 * time.Millisecond)
		defer ticker.Stop()

		// Hide cursor
		fmt.Fprint(s.out, "\033[?25l")

		for {
			select {
			case <-s.stop:
				// Clear line and show cursor
				fmt.Fprint(s.out, "\r\033[K\033[?25h")
				return
			case <-ticker.C:
				s.mu.Lock()
				s.render()
				s.frame++
				s.mu.Unlock()
			}
		}
	}()
}

// render draws the current animation frame
func (s *spinner) render() {
	chars := []string{"⣾", "⣽", "⣻", "⢿", "⡿", "⣟", "⣯", "⣷"}

	spinIdx := s.frame % len(chars)
	spinColor := gradientColors[s.frame%len(gradientColors)]
	spinnerChar := lipgloss.NewStyle().Foreground(spinColor).Bold(true).Render(chars[spinIdx])

	var dots strings.Builder
	numDots := (s.frame / 3) % 4
	for i := 0; i < 3; i++ {
		if i < numDots {
			dotColor := gradientColors[(s.frame+i)%len(gradientColors)]
			dots.WriteString(lipgloss.NewStyle().Foreground(dotColor).Render("●"))
		} else {
			dots.WriteString(lipgloss.NewStyle().Foreground(colorTextMute).Render("○"))
		}
	}

	msg := lipgloss.NewStyle().Foreground(colorText).Render(s.message)

	fmt.Fprintf(s.out, "\r\033[K%s %s %s", spinnerChar, msg, dots.String())
}

// stopOnce safely closes the stop channel only once
func (s *spinner) stopOnce() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.stopped {
		close(s.stop)
		s.stopped = true
	}
}

// stopWithSuccess stops the spinner and shows success message
func (s *spinner) stopWithSuccess(message string) {
	s.stopOnce()
	<-s.done

	checkmark := lipgloss.NewStyle().Foreground(colorSuccess).Bold(true).Render("✓")
	msg := lipgloss.NewStyle().Foreground(colorSuccess).Render(message)
	fmt.Fprintf(s.out, "%s %s\n", checkmark, msg)
}

// stopWithError stops the spinner without a message
func (s *spinner) stopWithError() {
	s.stopOnce()
	<-s.done
}

// progress shows spinners on stderr when it is a terminal and does
// nothing otherwise
type progress struct {
	out     io.Writer
	enabled bool
	spin    *spinner
}

func (p *progress) start(message string) {
	if !p.enabled {
		return
	}
	p.spin = newSpinner(p.out, message)
	p.spin.start()
}

func (p *progress) success(message string) {
	if p.spin != nil {
		p.spin.stopWithSuccess(message)
		p.spin = nil
	}
}

func (p *progress) fail() {
	if p.spin != nil {
		p.spin.stopWithError()
		p.spin = nil
	}
}

// runQuery sends a single prompt with the stored key and prints the reply
// as it streams
func runQuery(cmd *cobra.Command, deps *Dependencies, cfg config.Config, modelOverride, prompt string) error {
	prompt = strings.TrimSpace(prompt)
	if prompt == "" {
		return fmt.Errorf("prompt cannot be empty")
	}

	store, err := deps.OpenStore()
	if err != nil {
		return fmt.Errorf("failed to open settings: %w", err)
	}
	stored, err := store.Load()
	store.Close()
	if err != nil {
		return fmt.Errorf("failed to load settings: %w", err)
	}
	if stored.APIKey == "" {
		return ErrNoStoredKey
	}

	modelName := stored.ModelName
	if modelOverride != "" {
		modelName = modelOverride
	}
	if modelName == "" {
		modelName = models.DefaultModel.Name
	}

	logger, closer, err := openLogger(cfg)
	if err != nil {
		return err
	}
	defer closer.Close()

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt)
	defer stop()

	// Nothing is persisted: a --model override applies to this query only
	manager := chat.NewManager(deps.factory(cfg), nil, logger)
	app := chat.NewApp(manager, "", logger)
	defer func() {
		manager.End(manager.Active())
	}()

	prog := &progress{out: cmd.ErrOrStderr(), enabled: deps.stderrIsTerminal()}

	prog.start("Connecting to Gemini")
	if err := app.Configure(ctx, stored.APIKey, modelName); err != nil {
		prog.fail()
		return err
	}
	prog.success("Connected to " + modelName)

	text, ok := app.Submit(prompt)
	if !ok {
		return fmt.Errorf("prompt cannot be empty")
	}

	out := cmd.OutOrStdout()
	printed := 0
	prog.start("Generating response")

	err = app.Drain(app.Stream(ctx, text), func(msg models.Message) {
		prog.fail()
		fmt.Fprint(out, msg.Text[printed:])
		printed = len(msg.Text)
	})
	prog.fail()

	if printed > 0 {
		fmt.Fprintln(out)
	}
	if err != nil {
		if apierrors.IsCanceled(err) {
			return errors.New(chat.StoppedText)
		}
		return err
	}

	if cfg.CopyOnComplete {
		if reply, ok := app.Transcript().Last(models.RoleAssistant); ok && reply.Text != "" {
			if err := deps.CopyText(reply.Text); err != nil {
				fmt.Fprintf(cmd.ErrOrStderr(), "Warning: failed to copy reply: %v\n", err)
			}
		}
	}

	return nil
}

func copyToClipboard(text string) error {
	return clipboard.WriteAll(text)
}
