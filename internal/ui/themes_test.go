package ui

import (
	"slices"
	"testing"
)

// The theme is package state, so these tests do not run in parallel.

func TestSetTheme(t *testing.T) {
	defer SetCurrentTheme(GetCurrentTheme())

	tests := []struct {
		name  string
		want  string
		known bool
	}{
		{"light", "light", true},
		{"none", "none", true},
		{"dark", "dark", true},
		{"solarized", "dark", false},
	}
	for _, tt := range tests {
		if known := SetTheme(tt.name); known != tt.known {
			t.Errorf("SetTheme(%q) = %v, want %v", tt.name, known, tt.known)
		}
		if got := GetCurrentTheme().Name; got != tt.want {
			t.Errorf("after SetTheme(%q) theme is %q, want %q", tt.name, got, tt.want)
		}
	}
}

func TestThemeNames(t *testing.T) {
	if got := ThemeNames(); !slices.Equal(got, []string{"dark", "light", "none"}) {
		t.Errorf("ThemeNames() = %v", got)
	}
}

func TestInitTheme(t *testing.T) {
	defer SetCurrentTheme(GetCurrentTheme())

	t.Setenv("NO_COLOR", "1")
	InitTheme(false)
	if GetCurrentTheme().Name != "none" {
		t.Error("NO_COLOR did not disable colors")
	}
	if GetCurrentTUITheme() != NoColorTUITheme {
		t.Error("TUI palette still colored under NO_COLOR")
	}
	if ColorRed() != "" || ColorReset() != "" {
		t.Error("color shorthands not empty without colors")
	}
}

func TestInitThemeNoColorFlag(t *testing.T) {
	defer SetCurrentTheme(GetCurrentTheme())

	InitTheme(true)
	if GetCurrentTheme() != NoColorTheme {
		t.Errorf("InitTheme(true) selected %q", GetCurrentTheme().Name)
	}
	SetCurrentTheme(DarkTheme)
	if ColorGreen() != DarkTheme.Success || GetCurrentTUITheme() != DarkTUITheme {
		t.Error("dark theme shorthands mismatch")
	}
}
