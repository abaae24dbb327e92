package status

import (
	"testing"

	tea "github.com/charmbracelet/bubbletea/v2"
	"github.com/charmbracelet/x/ansi"
	"github.com/driveterm/drive/internal/tui/util"
	"github.com/stretchr/testify/require"
)

func TestStatus_ShowsAndClearsInfo(t *testing.T) {
	t.Parallel()

	s := NewStatusCmp()
	s.Update(tea.WindowSizeMsg{Width: 80, Height: 24})

	_, cmd := s.Update(util.InfoMsg{Type: util.InfoTypeSuccess, Msg: "Folder created successfully"})
	require.NotNil(t, cmd)
	require.Contains(t, ansi.Strip(s.View()), "Folder created successfully")

	s.Update(clearMsg{seq: 1})
	require.Empty(t, s.Info().Msg)
}

func TestStatus_StaleClearKeepsNewerMessage(t *testing.T) {
	t.Parallel()

	s := NewStatusCmp()
	s.Update(tea.WindowSizeMsg{Width: 80, Height: 24})
	s.Update(util.InfoMsg{Type: util.InfoTypeInfo, Msg: "first"})
	s.Update(util.InfoMsg{Type: util.InfoTypeError, Msg: "Failed to load files"})

	s.Update(clearMsg{seq: 1})
	require.Equal(t, "Failed to load files", s.Info().Msg)
	view := ansi.Strip(s.View())
	require.Contains(t, view, "ERROR")
	require.Contains(t, view, "Failed to load files")

	s.Update(util.ClearStatusMsg{})
	require.Empty(t, s.Info().Msg)
}
