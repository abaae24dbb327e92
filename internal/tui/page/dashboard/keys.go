package dashboard

import (
	"github.com/charmbracelet/bubbles/v2/key"
	"github.com/driveterm/drive/internal/config"
	"github.com/driveterm/drive/internal/keymap"
)

type KeyMap struct {
	Refresh      key.Binding
	Search       key.Binding
	NewFolder    key.Binding
	Upload       key.Binding
	ToggleLayout key.Binding
	Logout       key.Binding

	Up       key.Binding
	Down     key.Binding
	Left     key.Binding
	Right    key.Binding
	Open     key.Binding
	Back     key.Binding
	Home     key.Binding
	NextView key.Binding
	PrevView key.Binding
	Views    key.Binding

	Delete     key.Binding
	Restore    key.Binding
	Star       key.Binding
	Rename     key.Binding
	Download   key.Binding
	View       key.Binding
	EmptyTrash key.Binding
}

func DefaultKeyMap() KeyMap {
	return NewKeyMapWithCustom(nil)
}

func NewKeyMapWithCustom(customKeymaps config.KeyMaps) KeyMap {
	return KeyMap{
		Refresh:      keymap.Binding(customKeymaps, config.CommandRefresh, "ctrl+r", "refresh"),
		Search:       keymap.Binding(customKeymaps, config.CommandSearch, "/", "search"),
		NewFolder:    keymap.Binding(customKeymaps, config.CommandNewFolder, "n", "new folder"),
		Upload:       keymap.Binding(customKeymaps, config.CommandUpload, "u", "upload"),
		ToggleLayout: keymap.Binding(customKeymaps, config.CommandToggleLayout, "l", "grid/list"),
		Logout:       keymap.Binding(customKeymaps, config.CommandLogout, "ctrl+l", "logout"),

		Up: key.NewBinding(
			key.WithKeys("up", "k"),
			key.WithHelp("↑", "up"),
		),
		Down: key.NewBinding(
			key.WithKeys("down", "j"),
			key.WithHelp("↓", "down"),
		),
		Left: key.NewBinding(
			key.WithKeys("left", "h"),
			key.WithHelp("←", "left"),
		),
		Right: key.NewBinding(
			key.WithKeys("right"),
			key.WithHelp("→", "right"),
		),
		Open: key.NewBinding(
			key.WithKeys("enter"),
			key.WithHelp("enter", "open"),
		),
		Back: key.NewBinding(
			key.WithKeys("backspace"),
			key.WithHelp("backspace", "parent folder"),
		),
		Home: key.NewBinding(
			key.WithKeys("g", "home"),
			key.WithHelp("g", "root"),
		),
		NextView: key.NewBinding(
			key.WithKeys("]"),
			key.WithHelp("]", "next view"),
		),
		PrevView: key.NewBinding(
			key.WithKeys("["),
			key.WithHelp("[", "previous view"),
		),
		Views: key.NewBinding(
			key.WithKeys("1", "2", "3", "4"),
			key.WithHelp("1-4", "switch view"),
		),

		Delete: key.NewBinding(
			key.WithKeys("x", "delete"),
			key.WithHelp("x", "delete"),
		),
		Restore: key.NewBinding(
			key.WithKeys("R"),
			key.WithHelp("R", "restore"),
		),
		Star: key.NewBinding(
			key.WithKeys("s"),
			key.WithHelp("s", "star"),
		),
		Rename: key.NewBinding(
			key.WithKeys("r", "f2"),
			key.WithHelp("r", "rename"),
		),
		Download: key.NewBinding(
			key.WithKeys("d"),
			key.WithHelp("d", "download"),
		),
		View: key.NewBinding(
			key.WithKeys("v"),
			key.WithHelp("v", "copy view link"),
		),
		EmptyTrash: key.NewBinding(
			key.WithKeys("E"),
			key.WithHelp("E", "empty trash"),
		),
	}
}

// KeyBindings returns the bindings shown in the help bar.
func (k KeyMap) KeyBindings() []key.Binding {
	return []key.Binding{
		k.Open,
		k.Back,
		k.Search,
		k.Upload,
		k.NewFolder,
		k.Rename,
		k.Star,
		k.Delete,
		k.Restore,
		k.Download,
		k.View,
		k.EmptyTrash,
		k.Views,
		k.ToggleLayout,
		k.Refresh,
		k.Logout,
	}
}
