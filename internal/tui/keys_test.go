package tui

import (
	"testing"

	"github.com/charmbracelet/bubbles/v2/key"
	"github.com/driveterm/drive/internal/config"
)

func TestDefaultKeyMap(t *testing.T) {
	keyMap := DefaultKeyMap()

	tests := []struct {
		name     string
		binding  key.Binding
		expected string
	}{
		{"quit", keyMap.Quit, "ctrl+c"},
		{"help", keyMap.Help, "ctrl+g"},
		{"settings", keyMap.Settings, "ctrl+s"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if len(tt.binding.Keys()) == 0 {
				t.Errorf("Expected %s to have keys, but got empty", tt.name)
				return
			}
			if tt.binding.Keys()[0] != tt.expected {
				t.Errorf("Expected %s key to be %s, got %s", tt.name, tt.expected, tt.binding.Keys()[0])
			}
		})
	}
}

func TestNewKeyMapWithCustom_EmptyKeymaps(t *testing.T) {
	keyMap := NewKeyMapWithCustom(make(config.KeyMaps))
	defaultKeyMap := DefaultKeyMap()

	if keyMap.Quit.Keys()[0] != defaultKeyMap.Quit.Keys()[0] {
		t.Errorf("Expected quit key to remain default when empty keymaps provided")
	}
}

func TestNewKeyMapWithCustom_PartialOverride(t *testing.T) {
	customKeymaps := config.KeyMaps{
		config.CommandHelp:     "?",
		config.CommandSettings: "ctrl+o",
	}
	keyMap := NewKeyMapWithCustom(customKeymaps)

	tests := []struct {
		name         string
		binding      key.Binding
		expected     string
		expectedHelp string
	}{
		{"quit", keyMap.Quit, "ctrl+c", "quit"},
		{"help", keyMap.Help, "?", "more"},
		{"settings", keyMap.Settings, "ctrl+o", "settings"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if len(tt.binding.Keys()) == 0 {
				t.Errorf("Expected %s to have keys, but got empty", tt.name)
				return
			}
			if tt.binding.Keys()[0] != tt.expected {
				t.Errorf("Expected %s key to be %s, got %s", tt.name, tt.expected, tt.binding.Keys()[0])
			}
			if tt.binding.Help().Desc != tt.expectedHelp {
				t.Errorf("Expected %s help to be %s, got %s", tt.name, tt.expectedHelp, tt.binding.Help().Desc)
			}
		})
	}
}

func TestKeyMap_HelpInterface(t *testing.T) {
	keyMap := NewKeyMapWithCustom(config.KeyMaps{config.CommandHelp: "?"})

	submit := key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "submit"))
	pageHelp := key.NewBinding(key.WithKeys("ctrl+g"), key.WithHelp("ctrl+g", "more"))
	pageQuit := key.NewBinding(key.WithKeys("ctrl+c"), key.WithHelp("ctrl+c", "quit"))
	keyMap.pageBindings = []key.Binding{submit, pageHelp, pageQuit}

	shortHelp := keyMap.ShortHelp()
	if len(shortHelp) != 4 { // submit + more + quit + settings
		t.Fatalf("Expected 4 bindings in ShortHelp, got %d", len(shortHelp))
	}

	if shortHelp[0].Keys()[0] != "enter" {
		t.Errorf("Expected page binding 'enter' first, got %s", shortHelp[0].Keys()[0])
	}
	if shortHelp[1].Keys()[0] != "?" {
		t.Errorf("Expected custom help key '?' in place of 'ctrl+g', got %s", shortHelp[1].Keys()[0])
	}
	if shortHelp[3].Help().Desc != "settings" {
		t.Errorf("Expected settings appended last, got %s", shortHelp[3].Help().Desc)
	}

	fullHelp := keyMap.FullHelp()
	if len(fullHelp) != 1 {
		t.Errorf("Expected 1 group in FullHelp, got %d", len(fullHelp))
	}
	if len(fullHelp[0]) != len(shortHelp) {
		t.Errorf("Expected FullHelp to match ShortHelp length, got %d vs %d", len(fullHelp[0]), len(shortHelp))
	}
}
