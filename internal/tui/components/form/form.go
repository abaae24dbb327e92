// Package form is a vertical stack of labeled text inputs with one of them
// focused at a time.
package form

import (
	"github.com/charmbracelet/bubbles/v2/key"
	"github.com/charmbracelet/bubbles/v2/textinput"
	tea "github.com/charmbracelet/bubbletea/v2"
	"github.com/charmbracelet/lipgloss/v2"
	"github.com/driveterm/drive/internal/tui/styles"
)

type Field struct {
	Label       string
	Placeholder string
	Value       string
	Password    bool
}

type KeyMap struct {
	Next     key.Binding
	Previous key.Binding
}

func DefaultKeyMap() KeyMap {
	return KeyMap{
		Next: key.NewBinding(
			key.WithKeys("tab", "down"),
			key.WithHelp("tab", "next field"),
		),
		Previous: key.NewBinding(
			key.WithKeys("shift+tab", "up"),
			key.WithHelp("shift+tab", "previous field"),
		),
	}
}

type Form struct {
	fields []Field
	inputs []textinput.Model
	focus  int
	width  int
	keyMap KeyMap
}

func New(fields ...Field) *Form {
	f := &Form{
		fields: fields,
		inputs: make([]textinput.Model, len(fields)),
		keyMap: DefaultKeyMap(),
	}
	t := styles.CurrentTheme()
	for i, field := range fields {
		ti := textinput.New()
		ti.Placeholder = field.Placeholder
		ti.SetValue(field.Value)
		ti.SetStyles(t.S().TextInput)
		if field.Password {
			ti.EchoMode = textinput.EchoPassword
			ti.EchoCharacter = '•'
		}
		f.inputs[i] = ti
	}
	f.Focus(0)
	return f
}

func (f *Form) KeyMap() KeyMap {
	return f.keyMap
}

// Focus moves the cursor to the field at i and returns the blink command.
func (f *Form) Focus(i int) tea.Cmd {
	if len(f.inputs) == 0 {
		return nil
	}
	i = (i + len(f.inputs)) % len(f.inputs)
	f.inputs[f.focus].Blur()
	f.focus = i
	return f.inputs[i].Focus()
}

func (f *Form) Focused() int {
	return f.focus
}

// OnLast reports whether the last field has focus.
func (f *Form) OnLast() bool {
	return f.focus == len(f.inputs)-1
}

func (f *Form) Next() tea.Cmd {
	return f.Focus(f.focus + 1)
}

func (f *Form) Previous() tea.Cmd {
	return f.Focus(f.focus - 1)
}

func (f *Form) Value(i int) string {
	if i < 0 || i >= len(f.inputs) {
		return ""
	}
	return f.inputs[i].Value()
}

func (f *Form) SetValue(i int, value string) {
	if i < 0 || i >= len(f.inputs) {
		return
	}
	f.inputs[i].SetValue(value)
}

func (f *Form) Values() []string {
	values := make([]string, len(f.inputs))
	for i := range f.inputs {
		values[i] = f.inputs[i].Value()
	}
	return values
}

func (f *Form) SetWidth(width int) {
	f.width = width
	for i := range f.inputs {
		f.inputs[i].SetWidth(max(1, width-2))
	}
}

// Update moves focus on tab and arrow keys and forwards everything else to
// the focused input.
func (f *Form) Update(msg tea.Msg) tea.Cmd {
	if len(f.inputs) == 0 {
		return nil
	}
	if msg, ok := msg.(tea.KeyPressMsg); ok {
		switch {
		case key.Matches(msg, f.keyMap.Next):
			return f.Next()
		case key.Matches(msg, f.keyMap.Previous):
			return f.Previous()
		}
	}
	var cmd tea.Cmd
	f.inputs[f.focus], cmd = f.inputs[f.focus].Update(msg)
	return cmd
}

func (f *Form) View() string {
	t := styles.CurrentTheme()
	parts := make([]string, 0, len(f.inputs)*2)
	for i, field := range f.fields {
		label := t.S().Label
		if i == f.focus {
			label = t.S().LabelFocused
		}
		parts = append(parts,
			label.Render(field.Label),
			t.S().Base.PaddingLeft(1).PaddingBottom(1).Render(f.inputs[i].View()),
		)
	}
	return lipgloss.JoinVertical(lipgloss.Left, parts...)
}
