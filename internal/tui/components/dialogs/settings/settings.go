package settings

import (
	"strings"

	"github.com/charmbracelet/bubbles/v2/help"
	"github.com/charmbracelet/bubbles/v2/key"
	tea "github.com/charmbracelet/bubbletea/v2"
	"github.com/charmbracelet/lipgloss/v2"
	"github.com/driveterm/drive/internal/config"
	"github.com/driveterm/drive/internal/tui/components/core"
	"github.com/driveterm/drive/internal/tui/components/dialogs"
	"github.com/driveterm/drive/internal/tui/styles"
	"github.com/driveterm/drive/internal/tui/util"
)

const (
	SettingsDialogID dialogs.DialogID = "settings"

	defaultWidth = 44
)

// ThemeSelectedMsg is sent when a theme is selected
type ThemeSelectedMsg struct {
	ThemeName string
}

// LayoutSelectedMsg is sent when a listing layout is selected.
type LayoutSelectedMsg struct {
	Layout string
}

type option struct {
	section string
	label   string
	value   string
}

var options = []option{
	{"Theme", "Dark", config.ThemeDark},
	{"Theme", "Light", config.ThemeLight},
	{"Layout", "Grid", config.LayoutGrid},
	{"Layout", "List", config.LayoutList},
}

// SettingsDialog lets the user switch the theme and the layout.
type SettingsDialog interface {
	dialogs.DialogModel
}

type settingsDialogCmp struct {
	width   int
	wWidth  int
	wHeight int

	theme    string
	layout   string
	selected int
	keyMap   KeyMap
	help     help.Model
}

// NewSettingsDialog opens with the current theme and layout marked.
func NewSettingsDialog(theme, layout string) SettingsDialog {
	t := styles.CurrentTheme()
	help := help.New()
	help.Styles = t.S().Help

	s := &settingsDialogCmp{
		width:  defaultWidth,
		theme:  theme,
		layout: layout,
		keyMap: DefaultKeyMap(),
		help:   help,
	}
	for i, o := range options {
		if o.section == "Theme" && o.value == theme {
			s.selected = i
		}
	}
	return s
}

func (s *settingsDialogCmp) Init() tea.Cmd {
	return nil
}

func (s *settingsDialogCmp) current(o option) bool {
	if o.section == "Theme" {
		return o.value == s.theme
	}
	return o.value == s.layout
}

func (s *settingsDialogCmp) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		s.wWidth = msg.Width
		s.wHeight = msg.Height
		return s, nil
	case tea.KeyPressMsg:
		switch {
		case key.Matches(msg, s.keyMap.Next):
			s.selected = (s.selected + 1) % len(options)
		case key.Matches(msg, s.keyMap.Previous):
			s.selected = (s.selected - 1 + len(options)) % len(options)
		case key.Matches(msg, s.keyMap.Select):
			o := options[s.selected]
			if o.section == "Theme" {
				s.theme = o.value
				return s, util.CmdHandler(ThemeSelectedMsg{ThemeName: o.value})
			}
			s.layout = o.value
			return s, util.CmdHandler(LayoutSelectedMsg{Layout: o.value})
		case key.Matches(msg, s.keyMap.Close):
			return s, util.CmdHandler(dialogs.CloseDialogMsg{})
		}
	}
	return s, nil
}

func (s *settingsDialogCmp) View() string {
	t := styles.CurrentTheme()
	innerWidth := s.width - 4

	var b strings.Builder
	section := ""
	for i, o := range options {
		if o.section != section {
			if section != "" {
				b.WriteString("\n")
			}
			section = o.section
			b.WriteString(core.Section(section, innerWidth))
			b.WriteString("\n")
		}
		marker := "  "
		label := o.label
		if s.current(o) {
			marker = "● "
			label += " (current)"
		}
		line := t.S().Text.Width(innerWidth).Render(marker + label)
		if i == s.selected {
			line = t.S().TextSelected.Width(innerWidth).Render(marker + label)
		}
		b.WriteString(line)
		b.WriteString("\n")
	}

	content := lipgloss.JoinVertical(
		lipgloss.Left,
		t.S().Base.Padding(0, 1, 1, 1).Render(core.Title("Settings", innerWidth)),
		t.S().Base.PaddingLeft(1).Render(strings.TrimSuffix(b.String(), "\n")),
		"",
		t.S().Base.Width(s.width-2).PaddingLeft(1).AlignHorizontal(lipgloss.Left).Render(s.help.View(s.keyMap)),
	)
	return s.style().Render(content)
}

func (s *settingsDialogCmp) style() lipgloss.Style {
	t := styles.CurrentTheme()
	return t.S().Base.
		Width(s.width).
		Border(lipgloss.RoundedBorder()).
		BorderForeground(t.BorderFocus)
}

func (s *settingsDialogCmp) ID() dialogs.DialogID {
	return SettingsDialogID
}
