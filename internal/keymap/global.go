package keymap

import (
	"github.com/charmbracelet/bubbles/v2/key"
	"github.com/driveterm/drive/internal/config"
)

// Default keys for the app-level commands.
const (
	DefaultQuitKey     = "ctrl+c"
	DefaultHelpKey     = "ctrl+g"
	DefaultSettingsKey = "ctrl+s"
)

// GlobalKeyBindings holds the merged app-level keybindings that are used throughout the app
var GlobalKeyBindings struct {
	Quit     key.Binding
	Help     key.Binding
	Settings key.Binding
}

// Binding returns the binding for cmd, using the custom key when one is
// configured.
func Binding(customKeymaps config.KeyMaps, cmd config.Command, defaultKey, desc string) key.Binding {
	k := defaultKey
	if custom, ok := customKeymaps[cmd]; ok && custom != "" {
		k = custom
	}
	return key.NewBinding(
		key.WithKeys(k),
		key.WithHelp(k, desc),
	)
}

// InitializeGlobalKeyMap merges user custom keymaps with defaults and stores them for use while the app is running
func InitializeGlobalKeyMap(customKeymaps config.KeyMaps) {
	GlobalKeyBindings.Quit = Binding(customKeymaps, config.CommandQuit, DefaultQuitKey, "quit")
	GlobalKeyBindings.Help = Binding(customKeymaps, config.CommandHelp, DefaultHelpKey, "more")
	GlobalKeyBindings.Settings = Binding(customKeymaps, config.CommandSettings, DefaultSettingsKey, "settings")
}

func firstKey(b key.Binding, fallback string) string {
	if len(b.Keys()) > 0 {
		return b.Keys()[0]
	}
	return fallback
}

// GetGlobalQuitKey returns the resolved quit keymap
func GetGlobalQuitKey() string {
	return firstKey(GlobalKeyBindings.Quit, DefaultQuitKey)
}

// GetGlobalHelpKey returns the resolved help keymap
func GetGlobalHelpKey() string {
	return firstKey(GlobalKeyBindings.Help, DefaultHelpKey)
}

// GetGlobalSettingsKey returns the resolved settings keymap
func GetGlobalSettingsKey() string {
	return firstKey(GlobalKeyBindings.Settings, DefaultSettingsKey)
}
