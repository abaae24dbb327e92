package header

import (
	"testing"

	"github.com/charmbracelet/lipgloss/v2"
	"github.com/charmbracelet/x/ansi"
	"github.com/driveterm/drive/internal/proto"
	"github.com/stretchr/testify/require"
)

func TestHeader_ShowsUser(t *testing.T) {
	h := New()
	h.SetWidth(100)
	h.SetUser(proto.User{FirstName: "Ada", LastName: "Lovelace", Email: "ada@example.com"})

	view := ansi.Strip(h.View())
	require.Contains(t, view, "CLOUD DRIVE")
	require.Contains(t, view, "AL")
	require.Contains(t, view, "Ada Lovelace")
	require.Contains(t, view, "ada@example.com")
	require.LessOrEqual(t, lipgloss.Width(h.View()), 100)
}

func TestHeader_NarrowDropsEmail(t *testing.T) {
	h := New()
	h.SetWidth(40)
	h.SetUser(proto.User{FirstName: "Ada", LastName: "Lovelace", Email: "ada@example.com"})

	view := ansi.Strip(h.View())
	require.NotContains(t, view, "ada@example.com")
	require.Contains(t, view, "AL")
}
