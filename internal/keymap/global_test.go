package keymap

import (
	"testing"

	"github.com/driveterm/drive/internal/config"
)

func TestInitializeGlobalKeyMap(t *testing.T) {
	// Test with custom keymaps
	customKeymaps := config.KeyMaps{
		config.CommandQuit: "ctrl+q",
		config.CommandHelp: "?",
	}

	InitializeGlobalKeyMap(customKeymaps)

	if len(GlobalKeyBindings.Quit.Keys()) == 0 || GlobalKeyBindings.Quit.Keys()[0] != "ctrl+q" {
		t.Errorf("Expected quit key to be 'ctrl+q', got %v", GlobalKeyBindings.Quit.Keys())
	}

	if len(GlobalKeyBindings.Help.Keys()) == 0 || GlobalKeyBindings.Help.Keys()[0] != "?" {
		t.Errorf("Expected help key to be '?', got %v", GlobalKeyBindings.Help.Keys())
	}

	// Test that defaults are used for unspecified keys
	if len(GlobalKeyBindings.Settings.Keys()) == 0 || GlobalKeyBindings.Settings.Keys()[0] != "ctrl+s" {
		t.Errorf("Expected settings key to be 'ctrl+s' (default), got %v", GlobalKeyBindings.Settings.Keys())
	}
}

func TestInitializeGlobalKeyMapWithDefaults(t *testing.T) {
	InitializeGlobalKeyMap(nil)

	tests := []struct {
		name     string
		binding  string
		expected string
	}{
		{"quit", GetGlobalQuitKey(), "ctrl+c"},
		{"help", GetGlobalHelpKey(), "ctrl+g"},
		{"settings", GetGlobalSettingsKey(), "ctrl+s"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.binding != tt.expected {
				t.Errorf("Expected %s key to be %s, got %s", tt.name, tt.expected, tt.binding)
			}
		})
	}
}

func TestBinding_EmptyCustomKeyFallsBack(t *testing.T) {
	b := Binding(config.KeyMaps{config.CommandRefresh: ""}, config.CommandRefresh, "ctrl+r", "refresh")
	if b.Keys()[0] != "ctrl+r" {
		t.Errorf("Expected empty custom key to fall back to 'ctrl+r', got %s", b.Keys()[0])
	}
	if b.Help().Desc != "refresh" {
		t.Errorf("Expected help desc 'refresh', got %s", b.Help().Desc)
	}
}
