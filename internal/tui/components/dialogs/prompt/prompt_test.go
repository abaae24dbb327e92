package prompt

import (
	"errors"
	"testing"

	tea "github.com/charmbracelet/bubbletea/v2"
	"github.com/charmbracelet/x/ansi"
	"github.com/driveterm/drive/internal/tui/util"
	"github.com/stretchr/testify/require"
)

type submittedMsg struct{ value string }

func TestPrompt_SubmitsValue(t *testing.T) {
	d := New(Options{
		ID:    RenameDialogID,
		Title: "Rename",
		Value: "report.pdf",
		OnSubmit: func(v string) tea.Cmd {
			return func() tea.Msg { return submittedMsg{v} }
		},
	})
	d.Update(tea.WindowSizeMsg{Width: 100, Height: 40})
	require.Equal(t, "report.pdf", d.Value())
	require.Contains(t, ansi.Strip(d.View()), "Rename")

	d.Update(tea.KeyPressMsg{Text: "x", Code: 'x'})
	require.Equal(t, "report.pdfx", d.Value())

	_, cmd := d.Update(tea.KeyPressMsg{Code: tea.KeyEnter})
	require.NotNil(t, cmd)
}

func TestPrompt_ValidationKeepsDialogOpen(t *testing.T) {
	submitted := false
	d := New(Options{
		ID:       NewFolderDialogID,
		Title:    "New Folder",
		Validate: func(string) error { return errors.New("Folder name cannot be empty") },
		OnSubmit: func(string) tea.Cmd { submitted = true; return nil },
	})

	_, cmd := d.Update(tea.KeyPressMsg{Code: tea.KeyEnter})
	require.Equal(t, util.InfoMsg{Type: util.InfoTypeError, Msg: "Folder name cannot be empty"}, cmd())
	require.False(t, submitted)
}
