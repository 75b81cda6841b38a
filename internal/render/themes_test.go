package render

import (
	"strings"
	"testing"
)

func TestResolveStyle(t *testing.T) {
	tests := []struct {
		in      string
		want    string
		builtin bool
	}{
		{"dark", "dark", true},
		{"light", "light", true},
		{"tokyo-night", "tokyo-night", true},
		{"tokyonight", "tokyo-night", true},
		{"plain", "notty", true},
		{"pink", "pink", true},
		{"/home/me/theme.json", "/home/me/theme.json", false},
		{"", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, builtin := ResolveStyle(tt.in)
			if got != tt.want || builtin != tt.builtin {
				t.Errorf("ResolveStyle(%q) = (%q, %v), want (%q, %v)", tt.in, got, builtin, tt.want, tt.builtin)
			}
			if IsBuiltinStyle(tt.in) != tt.builtin {
				t.Errorf("IsBuiltinStyle(%q) disagrees", tt.in)
			}
		})
	}
}

func TestAvailableThemes(t *testing.T) {
	themes := AvailableThemes()
	if len(themes) == 0 {
		t.Fatal("expected themes")
	}

	for _, th := range themes {
		if !IsBuiltinStyle(th.Name) {
			t.Errorf("theme %s is listed but not built in", th.Name)
		}
		if th.Description == "" {
			t.Errorf("theme %s has no description", th.Name)
		}
	}
}

func TestThemeNames(t *testing.T) {
	names := ThemeNames()
	if len(names) != len(AvailableThemes()) {
		t.Errorf("expected %d names, got %d", len(AvailableThemes()), len(names))
	}
	if names[0] != ThemeDark {
		t.Errorf("expected dark first, got %s", names[0])
	}
}

func TestMarkdownWithEveryTheme(t *testing.T) {
	for _, name := range ThemeNames() {
		t.Run(name, func(t *testing.T) {
			out, err := Markdown("# Heading\n\n`code`", DefaultOptions().WithStyle(name))
			if err != nil {
				t.Fatalf("Markdown() error = %v", err)
			}
			if !strings.Contains(out, "Heading") {
				t.Errorf("expected heading in output, got %q", out)
			}
		})
	}
}
