package styles

import (
	"testing"

	"github.com/charmbracelet/x/ansi"
	"github.com/stretchr/testify/require"
)

func TestLightTheme(t *testing.T) {
	theme := NewLightTheme()

	if theme.Name != "light" {
		t.Errorf("Expected theme name 'light', got '%s'", theme.Name)
	}

	if theme.IsDark {
		t.Error("Expected the light theme to have IsDark = false")
	}

	if theme.Primary == nil {
		t.Error("Primary color should not be nil")
	}

	if theme.BgBase == nil {
		t.Error("BgBase color should not be nil")
	}

	styles := theme.S()
	if styles == nil {
		t.Error("Styles should not be nil")
	}

	manager := &Manager{
		themes: make(map[string]*Theme),
	}
	manager.Register(theme)

	if len(manager.themes) != 1 {
		t.Errorf("Expected 1 theme in manager, got %d", len(manager.themes))
	}

	if manager.themes["light"] == nil {
		t.Error("Theme should be registered with correct name")
	}
}

func TestThemeManager(t *testing.T) {
	manager := NewManager("dark")

	require.Equal(t, []string{"dark", "light"}, manager.List())
	require.Equal(t, "dark", manager.Current().Name)

	require.NoError(t, manager.SetTheme("light"))
	require.Equal(t, "light", manager.Current().Name)

	require.Error(t, manager.SetTheme("non-existent"))
	require.Equal(t, "light", manager.Current().Name)

	require.Equal(t, "dark", NewManager("unknown").Current().Name)
}

func TestParseHex(t *testing.T) {
	r, g, b, a := ParseHex("#ff8000").RGBA()
	require.Equal(t, uint32(0xffff), r)
	require.Equal(t, uint32(0x8080), g)
	require.Equal(t, uint32(0), b)
	require.Equal(t, uint32(0xffff), a)

	r, g, b, _ = ParseHex("nope").RGBA()
	require.Zero(t, r+g+b)
}

func TestForegroundGrad(t *testing.T) {
	theme := NewDarkTheme()

	parts := ForegroundGrad("DRIVE", true, theme.Secondary, theme.Primary)
	require.Len(t, parts, 5)

	out := ApplyBoldForegroundGrad("DRIVE", theme.Secondary, theme.Primary)
	require.Contains(t, ansi.Strip(out), "DRIVE")

	require.Equal(t, []string{""}, ForegroundGrad("", false, theme.Secondary, theme.Primary))
	require.Len(t, blendColors(3, theme.Secondary, theme.Primary), 3)
}

func TestKindIcon(t *testing.T) {
	theme := NewDarkTheme()
	for _, kind := range []string{"folder", "pdf", "document", "image", "file", "other"} {
		require.NotEmpty(t, theme.KindIcon(kind).String(), kind)
	}
}
