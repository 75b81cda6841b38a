package render

import (
	"sync"

	"github.com/charmbracelet/lipgloss"
)

// TUITheme defines the color scheme for the TUI interface
type TUITheme struct {
	Name        string
	Description string

	// MarkdownStyle is the glamour style that matches the palette
	MarkdownStyle string

	// Base colors
	Background lipgloss.Color
	Surface    lipgloss.Color
	Border     lipgloss.Color

	// Accent colors
	Primary   lipgloss.Color
	Secondary lipgloss.Color
	Accent    lipgloss.Color
	Warning   lipgloss.Color
	Error     lipgloss.Color

	// Text colors
	Text     lipgloss.Color
	TextDim  lipgloss.Color
	TextMute lipgloss.Color

	// Bubble backgrounds
	UserBubble      lipgloss.Color
	AssistantBubble lipgloss.Color
}

// Built-in TUI themes
var (
	// TokyoNightTheme is the default dark theme
	TokyoNightTheme = TUITheme{
		Name:          "tokyonight",
		Description:   "Tokyo Night - Dark theme with blue accents",
		MarkdownStyle: ThemeTokyoNight,

		Background: lipgloss.Color("#1a1b26"),
		Surface:    lipgloss.Color("#24283b"),
		Border:     lipgloss.Color("#414868"),

		Primary:   lipgloss.Color("#7aa2f7"),
		Secondary: lipgloss.Color("#9ece6a"),
		Accent:    lipgloss.Color("#bb9af7"),
		Warning:   lipgloss.Color("#e0af68"),
		Error:     lipgloss.Color("#f7768e"),

		Text:     lipgloss.Color("#c0caf5"),
		TextDim:  lipgloss.Color("#565f89"),
		TextMute: lipgloss.Color("#3b4261"),

		UserBubble:      lipgloss.Color("#2e3c64"),
		AssistantBubble: lipgloss.Color("#24283b"),
	}

	// GeminiTheme follows the Gemini blue-to-violet gradient
	GeminiTheme = TUITheme{
		Name:          "gemini",
		Description:   "Gemini - Deep navy with blue and violet accents",
		MarkdownStyle: ThemeDark,

		Background: lipgloss.Color("#131314"),
		Surface:    lipgloss.Color("#1e1f20"),
		Border:     lipgloss.Color("#444746"),

		Primary:   lipgloss.Color("#4285f4"),
		Secondary: lipgloss.Color("#34a853"),
		Accent:    lipgloss.Color("#9b72cb"),
		Warning:   lipgloss.Color("#fbbc04"),
		Error:     lipgloss.Color("#ea4335"),

		Text:     lipgloss.Color("#e3e3e3"),
		TextDim:  lipgloss.Color("#8e918f"),
		TextMute: lipgloss.Color("#444746"),

		UserBubble:      lipgloss.Color("#1a3a6b"),
		AssistantBubble: lipgloss.Color("#1e1f20"),
	}

	// CatppuccinMochaTheme is based on Catppuccin Mocha palette
	CatppuccinMochaTheme = TUITheme{
		Name:          "catppuccin",
		Description:   "Catppuccin Mocha - Warm dark theme with pastel colors",
		MarkdownStyle: ThemeDark,

		Background: lipgloss.Color("#1e1e2e"),
		Surface:    lipgloss.Color("#313244"),
		Border:     lipgloss.Color("#45475a"),

		Primary:   lipgloss.Color("#89b4fa"),
		Secondary: lipgloss.Color("#a6e3a1"),
		Accent:    lipgloss.Color("#cba6f7"),
		Warning:   lipgloss.Color("#f9e2af"),
		Error:     lipgloss.Color("#f38ba8"),

		Text:     lipgloss.Color("#cdd6f4"),
		TextDim:  lipgloss.Color("#6c7086"),
		TextMute: lipgloss.Color("#45475a"),

		UserBubble:      lipgloss.Color("#313a5a"),
		AssistantBubble: lipgloss.Color("#313244"),
	}

	// NordTheme is based on the Nord color palette
	NordTheme = TUITheme{
		Name:          "nord",
		Description:   "Nord - Arctic-inspired theme with cool tones",
		MarkdownStyle: ThemeDark,

		Background: lipgloss.Color("#2e3440"),
		Surface:    lipgloss.Color("#3b4252"),
		Border:     lipgloss.Color("#4c566a"),

		Primary:   lipgloss.Color("#88c0d0"),
		Secondary: lipgloss.Color("#a3be8c"),
		Accent:    lipgloss.Color("#b48ead"),
		Warning:   lipgloss.Color("#ebcb8b"),
		Error:     lipgloss.Color("#bf616a"),

		Text:     lipgloss.Color("#eceff4"),
		TextDim:  lipgloss.Color("#7b88a1"),
		TextMute: lipgloss.Color("#4c566a"),

		UserBubble:      lipgloss.Color("#434c5e"),
		AssistantBubble: lipgloss.Color("#3b4252"),
	}

	// DraculaTheme is based on the Dracula color palette
	DraculaTheme = TUITheme{
		Name:          "dracula",
		Description:   "Dracula - Dark theme with vibrant colors",
		MarkdownStyle: ThemeDracula,

		Background: lipgloss.Color("#282a36"),
		Surface:    lipgloss.Color("#44475a"),
		Border:     lipgloss.Color("#6272a4"),

		Primary:   lipgloss.Color("#8be9fd"),
		Secondary: lipgloss.Color("#50fa7b"),
		Accent:    lipgloss.Color("#ff79c6"),
		Warning:   lipgloss.Color("#f1fa8c"),
		Error:     lipgloss.Color("#ff5555"),

		Text:     lipgloss.Color("#f8f8f2"),
		TextDim:  lipgloss.Color("#6272a4"),
		TextMute: lipgloss.Color("#44475a"),

		UserBubble:      lipgloss.Color("#3d4166"),
		AssistantBubble: lipgloss.Color("#44475a"),
	}

	// LightTheme is for bright terminals
	LightTheme = TUITheme{
		Name:          "light",
		Description:   "Light - Dark text on a bright background",
		MarkdownStyle: ThemeLight,

		Background: lipgloss.Color("#ffffff"),
		Surface:    lipgloss.Color("#f0f4f9"),
		Border:     lipgloss.Color("#c4c7c5"),

		Primary:   lipgloss.Color("#0b57d0"),
		Secondary: lipgloss.Color("#146c2e"),
		Accent:    lipgloss.Color("#8430ce"),
		Warning:   lipgloss.Color("#b06000"),
		Error:     lipgloss.Color("#b3261e"),

		Text:     lipgloss.Color("#1f1f1f"),
		TextDim:  lipgloss.Color("#5e5e5e"),
		TextMute: lipgloss.Color("#c4c7c5"),

		UserBubble:      lipgloss.Color("#d3e3fd"),
		AssistantBubble: lipgloss.Color("#f0f4f9"),
	}
)

var (
	tuiThemeMu      sync.RWMutex
	currentTUITheme = TokyoNightTheme
)

// GetTUITheme returns the currently active TUI theme
func GetTUITheme() TUITheme {
	tuiThemeMu.RLock()
	defer tuiThemeMu.RUnlock()
	return currentTUITheme
}

// SetTUITheme sets the active TUI theme by name
func SetTUITheme(name string) bool {
	theme, ok := GetTUIThemeByName(name)
	if !ok {
		return false
	}
	tuiThemeMu.Lock()
	currentTUITheme = theme
	tuiThemeMu.Unlock()
	return true
}

// GetTUIThemeByName returns a TUI theme by its name
func GetTUIThemeByName(name string) (TUITheme, bool) {
	for _, theme := range AvailableTUIThemes() {
		if theme.Name == name {
			return theme, true
		}
	}
	return TUITheme{}, false
}

// AvailableTUIThemes returns a list of all available TUI themes
func AvailableTUIThemes() []TUITheme {
	return []TUITheme{
		TokyoNightTheme,
		GeminiTheme,
		CatppuccinMochaTheme,
		NordTheme,
		DraculaTheme,
		LightTheme,
	}
}

// TUIThemeNames returns just the theme names for selection
func TUIThemeNames() []string {
	themes := AvailableTUIThemes()
	names := make([]string, len(themes))
	for i, t := range themes {
		names[i] = t.Name
	}
	return names
}
