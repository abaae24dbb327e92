package tui

import (
	"context"
	"log/slog"

	"github.com/charmbracelet/bubbles/v2/key"
	tea "github.com/charmbracelet/bubbletea/v2"
	"github.com/charmbracelet/lipgloss/v2"
	"github.com/driveterm/drive/internal/app"
	"github.com/driveterm/drive/internal/config"
	"github.com/driveterm/drive/internal/drive"
	"github.com/driveterm/drive/internal/pubsub"
	"github.com/driveterm/drive/internal/tui/components/dialogs"
	"github.com/driveterm/drive/internal/tui/components/dialogs/confirm"
	"github.com/driveterm/drive/internal/tui/components/dialogs/settings"
	"github.com/driveterm/drive/internal/tui/components/status"
	"github.com/driveterm/drive/internal/tui/page"
	"github.com/driveterm/drive/internal/tui/page/auth"
	"github.com/driveterm/drive/internal/tui/page/dashboard"
	"github.com/driveterm/drive/internal/tui/styles"
	"github.com/driveterm/drive/internal/tui/util"
)

// Options selects the first page. Email and Token prefill the verify and
// reset pages when the UI is started from a link.
type Options struct {
	StartPage page.PageID
	Email     string
	Token     string
}

// appModel represents the main application model that manages pages,
// dialogs and the status line.
type appModel struct {
	wWidth, wHeight int
	keyMap          KeyMap

	app *app.App

	currentPage page.PageID
	page        page.Page
	// dashboard outlives page switches so upload events keep landing.
	dashboard dashboard.Dashboard

	status status.StatusCmp
	dialog dialogs.DialogCmp

	// persist writes a single config field; swapped in tests.
	persist func(key string, value any) error
}

// New creates and initializes a new TUI application model.
func New(app *app.App, opts Options) tea.Model {
	cfg := app.Config()
	_ = styles.DefaultManager().SetTheme(cfg.Options.Theme)

	m := &appModel{
		keyMap:  NewKeyMapWithCustom(cfg.KeyMaps),
		app:     app,
		status:  status.NewStatusCmp(),
		dialog:  dialogs.NewDialogCmp(),
		persist: config.SetConfigField,
	}
	m.setPage(m.startPage(opts))
	return m
}

func (a *appModel) startPage(opts Options) page.PageChangeMsg {
	switch opts.StartPage {
	case page.VerifyEmail, page.ResetPassword, page.Register, page.ForgotPassword:
		return page.PageChangeMsg{ID: opts.StartPage, Email: opts.Email, Token: opts.Token}
	}
	if a.app.Session.Authenticated() {
		return page.PageChangeMsg{ID: page.Dashboard}
	}
	return page.PageChangeMsg{ID: page.Login, Email: opts.Email}
}

// Init initializes the application model and returns initial commands.
func (a *appModel) Init() tea.Cmd {
	return tea.Batch(a.page.Init(), a.status.Init())
}

// Update handles incoming messages and updates the application state.
func (a *appModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	cmd := a.update(msg)
	a.keyMap.pageBindings = a.page.Bindings()
	a.status.SetKeyMap(a.keyMap)
	return a, cmd
}

func (a *appModel) update(msg tea.Msg) tea.Cmd {
	var cmds []tea.Cmd
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		return a.handleWindowResize(msg.Width, msg.Height)

	// Status messages
	case util.InfoMsg, util.ClearStatusMsg:
		u, cmd := a.status.Update(msg)
		a.status = u.(status.StatusCmp)
		return cmd

	// Dialog messages
	case dialogs.OpenDialogMsg, dialogs.CloseDialogMsg:
		u, cmd := a.dialog.Update(msg)
		a.dialog = u.(dialogs.DialogCmp)
		return cmd

	// Page change messages
	case page.PageChangeMsg:
		return a.changePage(msg)
	case page.LoggedInMsg:
		cmd := a.changePage(page.PageChangeMsg{ID: page.Dashboard})
		return tea.Batch(cmd, a.dashboard.SetUser(msg.User))
	case page.LogoutMsg:
		if err := a.app.Logout(); err != nil {
			slog.Warn("Failed to clear saved session", "error", err)
		}
		a.dashboard = nil
		return tea.Batch(
			a.changePage(page.PageChangeMsg{ID: page.Login}),
			util.ReportInfo(app.MsgLoggedOut),
		)

	// Settings
	case settings.ThemeSelectedMsg:
		return a.selectTheme(msg.ThemeName)
	case settings.LayoutSelectedMsg:
		return a.selectLayout(msg.Layout)

	case pubsub.Event[drive.UploadProgress]:
		if a.dashboard == nil {
			return nil
		}
		_, cmd := a.dashboard.Update(msg)
		return cmd

	case tea.KeyPressMsg:
		return a.handleKeyPressMsg(msg)
	}

	// Anything else goes to the status line, the open dialog and the page.
	u, cmd := a.status.Update(msg)
	a.status = u.(status.StatusCmp)
	cmds = append(cmds, cmd)
	if a.dialog.HasDialogs() {
		u, cmd := a.dialog.Update(msg)
		a.dialog = u.(dialogs.DialogCmp)
		cmds = append(cmds, cmd)
	}
	cmds = append(cmds, a.updatePage(msg))
	return tea.Batch(cmds...)
}

func (a *appModel) updatePage(msg tea.Msg) tea.Cmd {
	u, cmd := a.page.Update(msg)
	a.page = u.(page.Page)
	return cmd
}

// handleWindowResize processes window resize events. The page gets every
// line except the status line.
func (a *appModel) handleWindowResize(width, height int) tea.Cmd {
	var cmds []tea.Cmd
	a.wWidth, a.wHeight = width, height

	u, cmd := a.status.Update(tea.WindowSizeMsg{Width: width, Height: height})
	a.status = u.(status.StatusCmp)
	cmds = append(cmds, cmd)

	cmds = append(cmds, a.page.SetSize(width, a.pageHeight()))
	if a.dashboard != nil && a.currentPage != page.Dashboard {
		cmds = append(cmds, a.dashboard.SetSize(width, a.pageHeight()))
	}

	u, cmd = a.dialog.Update(tea.WindowSizeMsg{Width: width, Height: height})
	a.dialog = u.(dialogs.DialogCmp)
	cmds = append(cmds, cmd)
	return tea.Batch(cmds...)
}

func (a *appModel) pageHeight() int {
	return max(0, a.wHeight-1)
}

// handleKeyPressMsg processes keyboard input. Quit always works; the rest
// goes to the open dialog first.
func (a *appModel) handleKeyPressMsg(msg tea.KeyPressMsg) tea.Cmd {
	switch {
	case key.Matches(msg, a.keyMap.Quit):
		if a.dialog.ActiveDialogID() == confirm.QuitDialogID {
			return tea.Quit
		}
		return util.CmdHandler(dialogs.OpenDialogMsg{Model: confirm.NewQuitDialog()})
	case a.dialog.HasDialogs():
		u, cmd := a.dialog.Update(msg)
		a.dialog = u.(dialogs.DialogCmp)
		return cmd
	case key.Matches(msg, a.keyMap.Help):
		a.status.ToggleFullHelp()
		return nil
	case key.Matches(msg, a.keyMap.Settings):
		cfg := a.app.Config()
		layout := cfg.Options.Layout
		if a.dashboard != nil {
			layout = a.dashboard.Layout()
		}
		return util.CmdHandler(dialogs.OpenDialogMsg{
			Model: settings.NewSettingsDialog(cfg.Options.Theme, layout),
		})
	}
	return a.updatePage(msg)
}

// changePage builds the target page. Auth pages start fresh every time;
// the dashboard is created once per login.
func (a *appModel) changePage(msg page.PageChangeMsg) tea.Cmd {
	a.setPage(msg)
	return tea.Batch(
		a.page.SetSize(a.wWidth, a.pageHeight()),
		a.page.Init(),
	)
}

func (a *appModel) setPage(msg page.PageChangeMsg) {
	a.currentPage = msg.ID
	switch msg.ID {
	case page.Register:
		a.page = auth.NewRegister(a.app, msg.Email)
	case page.ForgotPassword:
		a.page = auth.NewForgot(a.app, msg.Email)
	case page.ResetPassword:
		a.page = auth.NewReset(a.app, msg.Email, msg.Token)
	case page.VerifyEmail:
		a.page = auth.NewVerify(a.app, msg.Email, msg.Token)
	case page.Dashboard:
		if a.dashboard == nil {
			cfg := a.app.Config()
			a.dashboard = dashboard.New(a.app.Drive, dashboard.Options{
				User:        a.app.Session.User(),
				Layout:      cfg.Options.Layout,
				DownloadDir: cfg.Options.DownloadDir,
				KeyMaps:     cfg.KeyMaps,
			})
		}
		a.page = a.dashboard
	default:
		a.currentPage = page.Login
		a.page = auth.NewLogin(a.app, msg.Email)
	}
}

func (a *appModel) selectTheme(name string) tea.Cmd {
	if err := styles.DefaultManager().SetTheme(name); err != nil {
		return util.ReportError(err)
	}
	a.app.Config().Options.Theme = name
	// Components cache their styles at construction, so rebuild the line.
	a.status = status.NewStatusCmp()
	u, _ := a.status.Update(tea.WindowSizeMsg{Width: a.wWidth, Height: a.wHeight})
	a.status = u.(status.StatusCmp)
	if err := a.persist("options.theme", name); err != nil {
		slog.Error("Failed to save theme", "error", err)
		return util.ReportError(err)
	}
	return util.ReportSuccess(themeLabel(name) + " theme activated!")
}

func (a *appModel) selectLayout(layout string) tea.Cmd {
	a.app.Config().Options.Layout = layout
	var cmd tea.Cmd
	if a.dashboard != nil {
		cmd = a.dashboard.SetLayout(layout)
	}
	if err := a.persist("options.layout", layout); err != nil {
		slog.Error("Failed to save layout", "error", err)
		return tea.Batch(cmd, util.ReportError(err))
	}
	return cmd
}

func themeLabel(name string) string {
	if name == config.ThemeLight {
		return "Light"
	}
	return "Dark"
}

// View renders the complete application interface. An open dialog is
// centered over a blank screen.
func (a *appModel) View() string {
	if a.wWidth == 0 || a.wHeight == 0 {
		return ""
	}
	if a.dialog.HasDialogs() {
		return lipgloss.JoinVertical(lipgloss.Left,
			lipgloss.Place(a.wWidth, a.pageHeight(), lipgloss.Center, lipgloss.Center, a.dialog.View()),
			a.status.View(),
		)
	}
	body := lipgloss.NewStyle().
		Width(a.wWidth).
		Height(a.pageHeight()).
		MaxHeight(a.pageHeight()).
		Render(a.page.View())
	return lipgloss.JoinVertical(lipgloss.Left, body, a.status.View())
}

// Run starts the interactive UI and blocks until it exits. Upload events
// from the app are forwarded into the program.
func Run(ctx context.Context, a *app.App, opts Options) error {
	program := tea.NewProgram(
		New(a, opts),
		tea.WithAltScreen(),
		tea.WithContext(ctx),
	)
	go a.Subscribe(program)
	_, err := program.Run()
	return err
}
