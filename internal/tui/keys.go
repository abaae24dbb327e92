package tui

import (
	"github.com/charmbracelet/bubbles/v2/key"
	"github.com/driveterm/drive/internal/config"
	"github.com/driveterm/drive/internal/keymap"
)

type KeyMap struct {
	Quit     key.Binding
	Help     key.Binding
	Settings key.Binding

	pageBindings []key.Binding
}

func DefaultKeyMap() KeyMap {
	return NewKeyMapWithCustom(nil)
}

func NewKeyMapWithCustom(customKeymaps config.KeyMaps) KeyMap {
	keymap.InitializeGlobalKeyMap(customKeymaps)
	return KeyMap{
		Quit:     keymap.GlobalKeyBindings.Quit,
		Help:     keymap.GlobalKeyBindings.Help,
		Settings: keymap.GlobalKeyBindings.Settings,
	}
}

func (k KeyMap) globals() []key.Binding {
	return []key.Binding{k.Quit, k.Help, k.Settings}
}

// ShortHelp lists the page bindings followed by the global ones. A page
// binding that shares its description with a global binding is replaced by
// the global one, so custom keys show up in place of the defaults.
func (k KeyMap) ShortHelp() []key.Binding {
	globals := k.globals()
	used := make([]bool, len(globals))
	bindings := make([]key.Binding, 0, len(k.pageBindings)+len(globals))
	for _, pb := range k.pageBindings {
		replaced := false
		for i, g := range globals {
			if !used[i] && g.Help().Desc == pb.Help().Desc {
				bindings = append(bindings, g)
				used[i] = true
				replaced = true
				break
			}
		}
		if !replaced {
			bindings = append(bindings, pb)
		}
	}
	for i, g := range globals {
		if !used[i] {
			bindings = append(bindings, g)
		}
	}
	return bindings
}

func (k KeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{k.ShortHelp()}
}
