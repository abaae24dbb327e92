package prompt

import (
	"unicode/utf8"

	"github.com/charmbracelet/bubbles/v2/help"
	"github.com/charmbracelet/bubbles/v2/key"
	"github.com/charmbracelet/bubbles/v2/textinput"
	tea "github.com/charmbracelet/bubbletea/v2"
	"github.com/charmbracelet/lipgloss/v2"
	"github.com/driveterm/drive/internal/tui/components/core"
	"github.com/driveterm/drive/internal/tui/components/dialogs"
	"github.com/driveterm/drive/internal/tui/styles"
	"github.com/driveterm/drive/internal/tui/util"
)

const (
	NewFolderDialogID dialogs.DialogID = "new_folder"
	RenameDialogID    dialogs.DialogID = "rename"
	UploadDialogID    dialogs.DialogID = "upload"

	maxWidth = 72
)

// Dialog asks for a single line of text.
type Dialog interface {
	dialogs.DialogModel
	Value() string
}

type Options struct {
	ID          dialogs.DialogID
	Title       string
	Placeholder string
	Value       string
	// Hint is rendered muted under the input.
	Hint string
	// Validate, if set, keeps the dialog open and reports the error when
	// the value is rejected.
	Validate func(string) error
	// OnSubmit builds the command to run after the dialog closes.
	OnSubmit func(string) tea.Cmd
}

type promptDialogCmp struct {
	wWidth  int
	wHeight int
	width   int
	opts    Options
	keyMap  KeyMap
	input   textinput.Model
	help    help.Model
}

func New(opts Options) Dialog {
	t := styles.CurrentTheme()

	ti := textinput.New()
	ti.Placeholder = opts.Placeholder
	ti.SetValue(opts.Value)
	ti.SetCursor(utf8.RuneCountInString(opts.Value))
	ti.SetStyles(t.S().TextInput)
	ti.Focus()

	help := help.New()
	help.Styles = t.S().Help

	return &promptDialogCmp{
		width:  maxWidth,
		opts:   opts,
		keyMap: DefaultKeyMap(),
		input:  ti,
		help:   help,
	}
}

func (p *promptDialogCmp) ID() dialogs.DialogID {
	return p.opts.ID
}

func (p *promptDialogCmp) Value() string {
	return p.input.Value()
}

func (p *promptDialogCmp) Init() tea.Cmd {
	return p.input.Focus()
}

func (p *promptDialogCmp) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		p.wWidth = msg.Width
		p.wHeight = msg.Height
		p.width = maxWidth
		if p.wWidth > 0 {
			p.width = min(maxWidth, p.wWidth-8)
		}
		p.input.SetWidth(p.inputWidth())
		return p, nil
	case tea.KeyPressMsg:
		switch {
		case key.Matches(msg, p.keyMap.Confirm):
			value := p.input.Value()
			if p.opts.Validate != nil {
				if err := p.opts.Validate(value); err != nil {
					return p, util.ReportError(err)
				}
			}
			cmds := []tea.Cmd{util.CmdHandler(dialogs.CloseDialogMsg{})}
			if p.opts.OnSubmit != nil {
				cmds = append(cmds, p.opts.OnSubmit(value))
			}
			return p, tea.Sequence(cmds...)
		case key.Matches(msg, p.keyMap.Close):
			return p, util.CmdHandler(dialogs.CloseDialogMsg{})
		default:
			u, cmd := p.input.Update(msg)
			p.input = u
			return p, cmd
		}
	}
	return p, nil
}

func (p *promptDialogCmp) View() string {
	t := styles.CurrentTheme()
	inputStyle := t.S().Base.PaddingLeft(1).PaddingBottom(1)
	parts := []string{
		t.S().Base.Padding(0, 1, 1, 1).Render(core.Title(p.opts.Title, p.width-4)),
		inputStyle.Render(p.input.View()),
	}
	if p.opts.Hint != "" {
		parts = append(parts, t.S().Subtle.PaddingLeft(1).Width(p.width-2).Render(p.opts.Hint), "")
	}
	parts = append(parts,
		t.S().Base.Width(p.width-2).PaddingLeft(1).AlignHorizontal(lipgloss.Left).Render(p.help.View(p.keyMap)),
	)
	content := lipgloss.JoinVertical(lipgloss.Left, parts...)

	return p.style().Render(content)
}

func (p *promptDialogCmp) style() lipgloss.Style {
	t := styles.CurrentTheme()
	return t.S().Base.
		Width(p.width).
		Border(lipgloss.RoundedBorder()).
		BorderForeground(t.BorderFocus)
}

func (p *promptDialogCmp) inputWidth() int {
	return p.width - 4 // border and padding
}
