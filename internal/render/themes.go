package render

import (
	"github.com/charmbracelet/glamour/styles"
)

// Markdown style names accepted in Options.Style
const (
	ThemeDark       = styles.DarkStyle
	ThemeLight      = styles.LightStyle
	ThemeDracula    = styles.DraculaStyle
	ThemeTokyoNight = styles.TokyoNightStyle
	ThemePink       = styles.PinkStyle
	ThemeNoTTY      = styles.NoTTYStyle
	ThemeASCII      = styles.AsciiStyle
)

// styleAliases maps TUI theme spellings to glamour style names
var styleAliases = map[string]string{
	"tokyonight": ThemeTokyoNight,
	"plain":      ThemeNoTTY,
}

// ResolveStyle returns the glamour style name for style and whether it is
// a built-in one. Anything else is treated as a JSON theme path.
func ResolveStyle(style string) (string, bool) {
	if alias, ok := styleAliases[style]; ok {
		style = alias
	}
	_, ok := styles.DefaultStyles[style]
	return style, ok
}

// IsBuiltinStyle returns true if the style is one of glamour's built-in styles
func IsBuiltinStyle(style string) bool {
	_, ok := ResolveStyle(style)
	return ok
}

// ThemeInfo contains information about a theme for display purposes.
type ThemeInfo struct {
	Name        string
	Description string
}

// AvailableThemes returns the built-in markdown styles.
func AvailableThemes() []ThemeInfo {
	return []ThemeInfo{
		{Name: ThemeDark, Description: "Dark theme (default)"},
		{Name: ThemeLight, Description: "Light theme for bright terminals"},
		{Name: ThemeTokyoNight, Description: "Tokyo Night color scheme"},
		{Name: ThemeDracula, Description: "Dracula color scheme"},
		{Name: ThemePink, Description: "Pink accents"},
		{Name: ThemeNoTTY, Description: "Plain text (no styling)"},
		{Name: ThemeASCII, Description: "ASCII-only output"},
	}
}

// ThemeNames returns just the theme names for selection.
func ThemeNames() []string {
	themes := AvailableThemes()
	names := make([]string, len(themes))
	for i, t := range themes {
		names[i] = t.Name
	}
	return names
}
