package confirm

import (
	"github.com/charmbracelet/bubbles/v2/key"
	tea "github.com/charmbracelet/bubbletea/v2"
	"github.com/charmbracelet/lipgloss/v2"
	"github.com/driveterm/drive/internal/tui/components/core"
	"github.com/driveterm/drive/internal/tui/components/dialogs"
	"github.com/driveterm/drive/internal/tui/styles"
	"github.com/driveterm/drive/internal/tui/util"
)

const (
	QuitDialogID    dialogs.DialogID = "quit"
	ConfirmDialogID dialogs.DialogID = "confirm"

	quitQuestion = "Are you sure you want to quit?"
)

// Dialog asks a yes/no question and runs OnYes when confirmed.
type Dialog interface {
	dialogs.DialogModel
}

type Options struct {
	ID       dialogs.DialogID
	Question string
	// Labels of the two buttons.
	YesText, NoText string
	// Danger highlights the confirm button with the error color.
	Danger bool
	// OnYes runs after the dialog closes when the user confirms.
	OnYes tea.Cmd
}

type confirmDialogCmp struct {
	wWidth  int
	wHeight int

	opts       Options
	selectedNo bool // true if "No" button is selected
	keymap     KeyMap
}

// New creates a confirmation dialog. "No" is selected initially.
func New(opts Options) Dialog {
	if opts.ID == "" {
		opts.ID = ConfirmDialogID
	}
	if opts.YesText == "" {
		opts.YesText = "[Y]es"
	}
	if opts.NoText == "" {
		opts.NoText = "[N]o"
	}
	return &confirmDialogCmp{
		opts:       opts,
		selectedNo: true,
		keymap:     DefaultKeymap(),
	}
}

// NewQuitDialog creates the dialog shown before leaving the application.
func NewQuitDialog() Dialog {
	return New(Options{
		ID:       QuitDialogID,
		Question: quitQuestion,
		YesText:  "[Y]es, quit",
		NoText:   "[N]o, continue",
		OnYes:    tea.Quit,
	})
}

func (q *confirmDialogCmp) Init() tea.Cmd {
	return nil
}

func (q *confirmDialogCmp) confirm() tea.Cmd {
	if q.opts.OnYes == nil {
		return util.CmdHandler(dialogs.CloseDialogMsg{})
	}
	return tea.Sequence(util.CmdHandler(dialogs.CloseDialogMsg{}), q.opts.OnYes)
}

// Update handles keyboard input for the dialog.
func (q *confirmDialogCmp) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		q.wWidth = msg.Width
		q.wHeight = msg.Height
	case tea.KeyPressMsg:
		switch {
		case key.Matches(msg, q.keymap.LeftRight, q.keymap.Tab):
			q.selectedNo = !q.selectedNo
			return q, nil
		case key.Matches(msg, q.keymap.EnterSpace):
			if !q.selectedNo {
				return q, q.confirm()
			}
			return q, util.CmdHandler(dialogs.CloseDialogMsg{})
		case key.Matches(msg, q.keymap.Yes):
			return q, q.confirm()
		case key.Matches(msg, q.keymap.No, q.keymap.Close):
			return q, util.CmdHandler(dialogs.CloseDialogMsg{})
		}
	}
	return q, nil
}

// View renders the question with Yes/No buttons.
func (q *confirmDialogCmp) View() string {
	t := styles.CurrentTheme()
	baseStyle := t.S().Base

	buttons := core.Buttons([]core.ButtonOpts{
		{Text: q.opts.YesText, Selected: !q.selectedNo},
		{Text: q.opts.NoText, Selected: q.selectedNo},
	}, 3)

	maxWidth := max(lipgloss.Width(q.opts.Question), lipgloss.Width(buttons))
	if q.wWidth > 0 {
		maxWidth = min(maxWidth, q.wWidth-8)
	}

	question := q.opts.Question
	if q.opts.Danger {
		question = t.S().Warning.Render(question)
	}

	content := baseStyle.Width(maxWidth).Align(lipgloss.Center).Render(
		lipgloss.JoinVertical(
			lipgloss.Center,
			question,
			"",
			buttons,
		),
	)

	border := t.BorderFocus
	if q.opts.Danger {
		border = t.Error
	}
	dialogStyle := baseStyle.
		Padding(1, 2).
		Border(lipgloss.RoundedBorder()).
		BorderForeground(border)

	return dialogStyle.Render(content)
}

func (q *confirmDialogCmp) ID() dialogs.DialogID {
	return q.opts.ID
}
