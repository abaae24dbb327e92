package tui

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	tea "github.com/charmbracelet/bubbletea/v2"
	"github.com/driveterm/drive/internal/app"
	"github.com/driveterm/drive/internal/config"
	"github.com/driveterm/drive/internal/proto"
	"github.com/driveterm/drive/internal/tui/components/dialogs"
	"github.com/driveterm/drive/internal/tui/components/dialogs/confirm"
	"github.com/driveterm/drive/internal/tui/components/dialogs/settings"
	"github.com/driveterm/drive/internal/tui/page"
	"github.com/driveterm/drive/internal/tui/styles"
	"github.com/stretchr/testify/require"
)

var ada = proto.User{ID: "u1", FirstName: "Ada", LastName: "Lovelace", Email: "ada@example.com"}

func testApp(t *testing.T) *app.App {
	t.Helper()
	ts := httptest.NewServer(http.NotFoundHandler())
	t.Cleanup(ts.Close)

	retries := 0
	cfg := &config.Config{
		API: config.API{URL: ts.URL + "/api", Retries: &retries},
		Options: &config.Options{
			DataDirectory: t.TempDir(),
			Theme:         config.ThemeDark,
			Layout:        config.LayoutGrid,
		},
	}
	a, err := app.New(context.Background(), cfg)
	require.NoError(t, err)
	t.Cleanup(a.Shutdown)
	return a
}

type persisted map[string]any

func newModel(t *testing.T, a *app.App, opts Options) (*appModel, persisted) {
	t.Helper()
	m := New(a, opts).(*appModel)
	saved := persisted{}
	m.persist = func(key string, value any) error {
		saved[key] = value
		return nil
	}
	m.Update(tea.WindowSizeMsg{Width: 120, Height: 40})
	return m, saved
}

func ctrl(r rune) tea.KeyPressMsg {
	return tea.KeyPressMsg{Code: r, Mod: tea.ModCtrl}
}

func TestNew_StartPage(t *testing.T) {
	t.Run("login without a session", func(t *testing.T) {
		m, _ := newModel(t, testApp(t), Options{})
		require.Equal(t, page.Login, m.currentPage)
		require.Contains(t, m.View(), "Welcome Back")
	})

	t.Run("dashboard with a session", func(t *testing.T) {
		a := testApp(t)
		require.NoError(t, a.Session.Login(ada, "tok"))
		m, _ := newModel(t, a, Options{})
		require.Equal(t, page.Dashboard, m.currentPage)
		require.NotNil(t, m.dashboard)
	})

	t.Run("verify link", func(t *testing.T) {
		m, _ := newModel(t, testApp(t), Options{StartPage: page.VerifyEmail, Email: "ada@example.com", Token: "abc"})
		require.Equal(t, page.VerifyEmail, m.currentPage)
	})

	t.Run("reset link", func(t *testing.T) {
		m, _ := newModel(t, testApp(t), Options{StartPage: page.ResetPassword, Email: "ada@example.com", Token: "abc"})
		require.Equal(t, page.ResetPassword, m.currentPage)
	})
}

func TestPageChange(t *testing.T) {
	m, _ := newModel(t, testApp(t), Options{})

	m.Update(page.PageChangeMsg{ID: page.Register, Email: "ada@example.com"})
	require.Equal(t, page.Register, m.currentPage)

	m.Update(page.PageChangeMsg{ID: page.ForgotPassword})
	require.Equal(t, page.ForgotPassword, m.currentPage)

	m.Update(page.PageChangeMsg{ID: "unknown"})
	require.Equal(t, page.Login, m.currentPage)
}

func TestLoggedInAndLogout(t *testing.T) {
	a := testApp(t)
	m, _ := newModel(t, a, Options{})
	require.NoError(t, a.Session.Login(ada, "tok"))

	m.Update(page.LoggedInMsg{User: ada})
	require.Equal(t, page.Dashboard, m.currentPage)
	require.NotNil(t, m.dashboard)

	m.Update(page.LogoutMsg{})
	require.Equal(t, page.Login, m.currentPage)
	require.Nil(t, m.dashboard)
	require.False(t, a.Session.Authenticated())
}

func TestQuitAsksFirst(t *testing.T) {
	m, _ := newModel(t, testApp(t), Options{})

	_, cmd := m.Update(ctrl('c'))
	require.NotNil(t, cmd)
	open, ok := cmd().(dialogs.OpenDialogMsg)
	require.True(t, ok)
	m.Update(open)
	require.Equal(t, confirm.QuitDialogID, m.dialog.ActiveDialogID())

	_, cmd = m.Update(ctrl('c'))
	require.NotNil(t, cmd)
	require.IsType(t, tea.QuitMsg{}, cmd())
}

func TestSettingsKeyOpensDialog(t *testing.T) {
	m, _ := newModel(t, testApp(t), Options{})

	_, cmd := m.Update(ctrl('s'))
	require.NotNil(t, cmd)
	open, ok := cmd().(dialogs.OpenDialogMsg)
	require.True(t, ok)
	require.Equal(t, settings.SettingsDialogID, open.Model.ID())

	m.Update(open)
	require.True(t, m.dialog.HasDialogs())
	require.NotEmpty(t, m.View())

	m.Update(dialogs.CloseDialogMsg{})
	require.False(t, m.dialog.HasDialogs())
}

func TestLayoutSelectedIsSaved(t *testing.T) {
	a := testApp(t)
	require.NoError(t, a.Session.Login(ada, "tok"))
	m, saved := newModel(t, a, Options{})

	m.Update(settings.LayoutSelectedMsg{Layout: config.LayoutList})
	require.Equal(t, config.LayoutList, a.Config().Options.Layout)
	require.Equal(t, config.LayoutList, m.dashboard.Layout())
	require.Equal(t, config.LayoutList, saved["options.layout"])
}

func TestThemeSelectedIsSaved(t *testing.T) {
	t.Cleanup(func() { _ = styles.DefaultManager().SetTheme(config.ThemeDark) })

	a := testApp(t)
	m, saved := newModel(t, a, Options{})

	m.Update(settings.ThemeSelectedMsg{ThemeName: config.ThemeLight})
	require.Equal(t, config.ThemeLight, styles.CurrentTheme().Name)
	require.Equal(t, config.ThemeLight, a.Config().Options.Theme)
	require.Equal(t, config.ThemeLight, saved["options.theme"])
	require.Equal(t, "Light", themeLabel(config.ThemeLight))
}

func TestHelpBarFollowsPage(t *testing.T) {
	m, _ := newModel(t, testApp(t), Options{})
	login := len(m.keyMap.pageBindings)
	require.NotZero(t, login)

	m.Update(page.PageChangeMsg{ID: page.ForgotPassword})
	require.NotEqual(t, login, len(m.keyMap.pageBindings))
	help := m.keyMap.ShortHelp()
	require.Equal(t, m.keyMap.Quit.Help(), help[len(help)-3].Help())
}
