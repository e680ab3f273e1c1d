package tui

import (
	"slices"
	"testing"

	"github.com/charmbracelet/bubbles/key"
)

func TestDefaultKeyMap_AllBindingsDefined(t *testing.T) {
	km := DefaultKeyMap()

	bindings := []struct {
		name    string
		binding key.Binding
	}{
		{"Submit", km.Submit},
		{"Cancel", km.Cancel},
		{"Clear", km.Clear},
		{"HistoryPrev", km.HistoryPrev},
		{"HistoryNext", km.HistoryNext},
		{"PageUp", km.PageUp},
		{"PageDown", km.PageDown},
		{"Help", km.Help},
		{"Quit", km.Quit},
	}

	for _, b := range bindings {
		t.Run(b.name, func(t *testing.T) {
			if !b.binding.Enabled() {
				t.Errorf("expected %s binding to be enabled", b.name)
			}
			if len(b.binding.Keys()) == 0 {
				t.Errorf("expected %s binding to have at least one key", b.name)
			}
			if b.binding.Help().Desc == "" {
				t.Errorf("%s binding has no help text", b.name)
			}
		})
	}
}

func TestDefaultKeyMap_QuitKeys(t *testing.T) {
	keys := DefaultKeyMap().Quit.Keys()
	if !slices.Contains(keys, "ctrl+c") || !slices.Contains(keys, "ctrl+d") {
		t.Errorf("Quit keys = %v, want ctrl+c and ctrl+d", keys)
	}
	if slices.Contains(keys, "q") {
		t.Error("q must stay typeable in expressions")
	}
}

func TestKeyMapHelp(t *testing.T) {
	km := DefaultKeyMap()
	if len(km.ShortHelp()) == 0 {
		t.Error("empty short help")
	}
	n := 0
	for _, col := range km.FullHelp() {
		n += len(col)
	}
	if n != 9 {
		t.Errorf("full help lists %d bindings, want 9", n)
	}
}
