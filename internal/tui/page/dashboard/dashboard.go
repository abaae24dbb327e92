package dashboard

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/atotto/clipboard"
	"github.com/charmbracelet/bubbles/v2/key"
	"github.com/charmbracelet/bubbles/v2/textinput"
	tea "github.com/charmbracelet/bubbletea/v2"
	"github.com/driveterm/drive/internal/client"
	"github.com/driveterm/drive/internal/config"
	"github.com/driveterm/drive/internal/drive"
	"github.com/driveterm/drive/internal/proto"
	"github.com/driveterm/drive/internal/pubsub"
	"github.com/driveterm/drive/internal/session"
	"github.com/driveterm/drive/internal/tui/components/dialogs"
	"github.com/driveterm/drive/internal/tui/components/dialogs/confirm"
	"github.com/driveterm/drive/internal/tui/components/dialogs/prompt"
	"github.com/driveterm/drive/internal/tui/components/dialogs/settings"
	"github.com/driveterm/drive/internal/tui/components/header"
	"github.com/driveterm/drive/internal/tui/components/uploads"
	"github.com/driveterm/drive/internal/tui/page"
	"github.com/driveterm/drive/internal/tui/styles"
	"github.com/driveterm/drive/internal/tui/util"
)

const logoutQuestion = "Are you sure you want to log out?"

type (
	refreshedMsg struct {
		err error
	}
	opResultMsg struct {
		msg string
		err error
	}
	uploadDoneMsg struct {
		res drive.UploadResult
	}
	viewURLMsg struct {
		url string
		err error
	}
)

// Dashboard is the file browser page.
type Dashboard interface {
	page.Page
	SetUser(user proto.User) tea.Cmd
	SetLayout(layout string) tea.Cmd
	Layout() string
}

type Options struct {
	User        proto.User
	Layout      string
	DownloadDir string
	KeyMaps     config.KeyMaps
}

type dashboardPage struct {
	width, height int

	drive  *drive.Dashboard
	header header.Header
	keyMap KeyMap

	search    textinput.Model
	searching bool

	// cursor indexes the filtered listing; offset is the first visible row.
	cursor int
	offset int

	layout      string
	downloadDir string
	tracker     uploads.Tracker

	copyToClipboard func(string) error
}

func New(d *drive.Dashboard, opts Options) Dashboard {
	t := styles.CurrentTheme()

	search := textinput.New()
	search.Placeholder = "Search files..."
	search.Prompt = "/ "
	search.SetStyles(t.S().TextInput)

	p := &dashboardPage{
		drive:           d,
		header:          header.New(),
		keyMap:          NewKeyMapWithCustom(opts.KeyMaps),
		search:          search,
		layout:          opts.Layout,
		downloadDir:     opts.DownloadDir,
		copyToClipboard: clipboard.WriteAll,
	}
	if p.layout != config.LayoutList {
		p.layout = config.LayoutGrid
	}
	if p.downloadDir == "" {
		p.downloadDir = "."
	}
	p.header.SetUser(opts.User)
	return p
}

func (p *dashboardPage) Init() tea.Cmd {
	return p.refresh()
}

func (p *dashboardPage) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		return p, p.SetSize(msg.Width, msg.Height)
	case refreshedMsg:
		p.clampCursor()
		if msg.err != nil {
			return p, reportError(msg.err)
		}
		return p, nil
	case opResultMsg:
		p.clampCursor()
		if msg.err != nil {
			return p, reportError(msg.err)
		}
		return p, util.ReportSuccess(msg.msg)
	case viewURLMsg:
		if msg.err != nil {
			return p, util.ReportError(msg.err)
		}
		if err := p.copyToClipboard(msg.url); err != nil {
			return p, util.ReportInfo("Open " + msg.url)
		}
		return p, util.ReportSuccess("Link copied to clipboard: " + msg.url)
	case uploadDoneMsg:
		p.clampCursor()
		return p, util.CmdHandler(uploadSummary(msg.res))
	case pubsub.Event[drive.UploadProgress]:
		p.tracker.Update(msg)
		switch msg.Type {
		case drive.UploadCompletedEvent:
			return p, util.ReportSuccess(msg.Payload.Message)
		case drive.UploadFailedEvent:
			return p, util.CmdHandler(util.InfoMsg{Type: util.InfoTypeError, Msg: msg.Payload.Message})
		}
		return p, nil
	case tea.KeyPressMsg:
		if p.searching {
			return p, p.handleSearchKey(msg)
		}
		return p, p.handleKey(msg)
	}
	return p, nil
}

func (p *dashboardPage) handleSearchKey(msg tea.KeyPressMsg) tea.Cmd {
	switch msg.String() {
	case "esc":
		p.search.SetValue("")
		p.drive.SetSearch("")
		p.stopSearch()
		return nil
	case "enter", "tab":
		p.stopSearch()
		return nil
	}
	var cmd tea.Cmd
	p.search, cmd = p.search.Update(msg)
	p.drive.SetSearch(p.search.Value())
	p.cursor, p.offset = 0, 0
	return cmd
}

func (p *dashboardPage) stopSearch() {
	p.searching = false
	p.search.Blur()
	p.clampCursor()
}

func (p *dashboardPage) handleKey(msg tea.KeyPressMsg) tea.Cmd {
	state := p.drive.Snapshot()
	entry, hasEntry := p.selected()

	switch {
	case key.Matches(msg, p.keyMap.Search):
		p.searching = true
		return p.search.Focus()
	case key.Matches(msg, p.keyMap.Up):
		p.move(-p.step())
	case key.Matches(msg, p.keyMap.Down):
		p.move(p.step())
	case key.Matches(msg, p.keyMap.Left):
		if p.layout == config.LayoutGrid {
			p.move(-1)
		}
	case key.Matches(msg, p.keyMap.Right):
		if p.layout == config.LayoutGrid {
			p.move(1)
		}
	case key.Matches(msg, p.keyMap.Open):
		if !hasEntry {
			return nil
		}
		if entry.IsFolder() {
			if state.InTrash() {
				return util.ReportWarn("Restore the folder to open it")
			}
			return p.navigate(func(ctx context.Context) error {
				return p.drive.OpenFolder(ctx, entry.ID, entry.FileName)
			})
		}
		return p.viewURL(entry)
	case key.Matches(msg, p.keyMap.Back):
		switch n := len(state.Path); {
		case n > 1:
			return p.navigate(func(ctx context.Context) error { return p.drive.NavigateTo(ctx, n-2) })
		case n == 1:
			return p.navigate(p.drive.NavigateHome)
		}
	case key.Matches(msg, p.keyMap.Home):
		return p.navigate(p.drive.NavigateHome)
	case key.Matches(msg, p.keyMap.NextView):
		return p.changeView(p.viewAt(1))
	case key.Matches(msg, p.keyMap.PrevView):
		return p.changeView(p.viewAt(-1))
	case key.Matches(msg, p.keyMap.Views):
		i := int(msg.Code - '1')
		if i >= 0 && i < len(proto.Views) {
			return p.changeView(proto.Views[i])
		}
	case key.Matches(msg, p.keyMap.Refresh):
		return p.refresh()
	case key.Matches(msg, p.keyMap.ToggleLayout):
		next := config.LayoutList
		if p.layout == config.LayoutList {
			next = config.LayoutGrid
		}
		return util.CmdHandler(settings.LayoutSelectedMsg{Layout: next})
	case key.Matches(msg, p.keyMap.NewFolder):
		if state.InTrash() {
			return util.ReportWarn("Folders cannot be created in the trash")
		}
		return p.openNewFolder()
	case key.Matches(msg, p.keyMap.Upload):
		if state.InTrash() {
			return util.ReportWarn("Files cannot be uploaded to the trash")
		}
		return p.openUpload()
	case key.Matches(msg, p.keyMap.EmptyTrash):
		if !state.InTrash() {
			return util.ReportWarn("Open the trash to empty it")
		}
		if len(state.Files) == 0 {
			return util.ReportInfo("Trash is already empty")
		}
		return openDialog(confirm.New(confirm.Options{
			Question: drive.ConfirmEmptyTrash,
			YesText:  "Empty Trash",
			NoText:   "Cancel",
			Danger:   true,
			OnYes:    p.op(p.drive.EmptyTrash),
		}))
	case key.Matches(msg, p.keyMap.Logout):
		return openDialog(confirm.New(confirm.Options{
			Question: logoutQuestion,
			YesText:  "Log out",
			NoText:   "Cancel",
			OnYes:    util.CmdHandler(page.LogoutMsg{}),
		}))
	}

	if !hasEntry {
		return nil
	}
	return p.handleEntryKey(msg, state, entry)
}

// handleEntryKey runs the operations on the selected entry.
func (p *dashboardPage) handleEntryKey(msg tea.KeyPressMsg, state drive.State, entry proto.FileEntry) tea.Cmd {
	switch {
	case key.Matches(msg, p.keyMap.Delete):
		yes := "Move to Trash"
		if state.InTrash() {
			yes = "Delete Forever"
		}
		return openDialog(confirm.New(confirm.Options{
			Question: p.drive.DeletePrompt(),
			YesText:  yes,
			NoText:   "Cancel",
			Danger:   true,
			OnYes: p.op(func(ctx context.Context) (string, error) {
				return p.drive.Delete(ctx, entry)
			}),
		}))
	case key.Matches(msg, p.keyMap.Restore):
		if !state.InTrash() {
			return util.ReportWarn("Only items in the trash can be restored")
		}
		return p.op(func(ctx context.Context) (string, error) {
			return p.drive.Restore(ctx, entry)
		})
	case key.Matches(msg, p.keyMap.Star):
		if state.InTrash() {
			return util.ReportWarn("Items in the trash cannot be starred")
		}
		return p.op(func(ctx context.Context) (string, error) {
			return p.drive.ToggleStar(ctx, entry)
		})
	case key.Matches(msg, p.keyMap.Rename):
		if state.InTrash() {
			return util.ReportWarn("Restore the item to rename it")
		}
		return p.openRename(entry)
	case key.Matches(msg, p.keyMap.Download):
		cmd := p.op(func(ctx context.Context) (string, error) {
			path, err := p.drive.Download(ctx, entry, p.downloadDir)
			if err != nil {
				return "", err
			}
			return drive.DownloadMessage(entry, path), nil
		})
		if entry.IsFolder() {
			return tea.Batch(util.ReportInfo("Preparing ZIP file..."), cmd)
		}
		return cmd
	case key.Matches(msg, p.keyMap.View):
		return p.viewURL(entry)
	}
	return nil
}

// reportError shows err, and ends the session when the server no longer
// accepts the token.
func reportError(err error) tea.Cmd {
	if errors.Is(err, client.ErrUnauthorized) {
		return tea.Batch(
			util.ReportWarn(session.ErrExpired.Error()),
			util.CmdHandler(page.LogoutMsg{}),
		)
	}
	return util.ReportError(err)
}

func openDialog(d dialogs.DialogModel) tea.Cmd {
	return util.CmdHandler(dialogs.OpenDialogMsg{Model: d})
}

func (p *dashboardPage) openNewFolder() tea.Cmd {
	return openDialog(prompt.New(prompt.Options{
		ID:          prompt.NewFolderDialogID,
		Title:       "Create New Folder",
		Placeholder: "Folder name",
		Validate: func(v string) error {
			if strings.TrimSpace(v) == "" {
				return drive.ErrEmptyFolderName
			}
			return nil
		},
		OnSubmit: func(name string) tea.Cmd {
			return p.op(func(ctx context.Context) (string, error) {
				return p.drive.CreateFolder(ctx, name)
			})
		},
	}))
}

func (p *dashboardPage) openRename(entry proto.FileEntry) tea.Cmd {
	return openDialog(prompt.New(prompt.Options{
		ID:          prompt.RenameDialogID,
		Title:       "Rename",
		Placeholder: "New name",
		Value:       entry.FileName,
		Validate: func(v string) error {
			if strings.TrimSpace(v) == "" {
				return drive.ErrEmptyFileName
			}
			return nil
		},
		OnSubmit: func(name string) tea.Cmd {
			return p.op(func(ctx context.Context) (string, error) {
				return p.drive.Rename(ctx, entry, name)
			})
		},
	}))
}

func (p *dashboardPage) openUpload() tea.Cmd {
	return openDialog(prompt.New(prompt.Options{
		ID:          prompt.UploadDialogID,
		Title:       "Upload Files",
		Placeholder: "~/report.pdf photos/**/*.jpg",
		Hint:        "Separate paths with spaces. Glob patterns such as docs/**/*.pdf are expanded.",
		Validate: func(v string) error {
			_, err := drive.ExpandPaths(expandHome(strings.Fields(v)))
			return err
		},
		OnSubmit: func(v string) tea.Cmd {
			paths, err := drive.ExpandPaths(expandHome(strings.Fields(v)))
			if err != nil {
				return util.ReportError(err)
			}
			return p.upload(paths)
		},
	}))
}

func expandHome(args []string) []string {
	home, err := os.UserHomeDir()
	if err != nil {
		return args
	}
	out := make([]string, len(args))
	for i, a := range args {
		if a == "~" || strings.HasPrefix(a, "~/") {
			a = filepath.Join(home, strings.TrimPrefix(a, "~"))
		}
		out[i] = a
	}
	return out
}

func (p *dashboardPage) upload(paths []string) tea.Cmd {
	label := fmt.Sprintf("Uploading %d files...", len(paths))
	if len(paths) == 1 {
		label = fmt.Sprintf("Uploading %s...", filepath.Base(paths[0]))
	}
	return tea.Batch(
		util.ReportInfo(label),
		func() tea.Msg {
			return uploadDoneMsg{res: p.drive.Upload(context.Background(), paths)}
		},
	)
}

func uploadSummary(res drive.UploadResult) util.InfoMsg {
	uploaded, failed := len(res.Uploaded), len(res.Failed)
	switch {
	case failed == 0 && uploaded == 1:
		return util.InfoMsg{Type: util.InfoTypeSuccess, Msg: fmt.Sprintf("%s uploaded successfully", filepath.Base(res.Uploaded[0]))}
	case failed == 0:
		return util.InfoMsg{Type: util.InfoTypeSuccess, Msg: fmt.Sprintf("%d files uploaded successfully", uploaded)}
	case uploaded == 0 && failed == 1:
		return util.InfoMsg{Type: util.InfoTypeError, Msg: res.Failed[0].Message()}
	case uploaded == 0:
		return util.InfoMsg{Type: util.InfoTypeError, Msg: fmt.Sprintf("Failed to upload %d files. %s", failed, res.Failed[0].Message())}
	default:
		return util.InfoMsg{
			Type: util.InfoTypeWarn,
			Msg:  fmt.Sprintf("Uploaded %d of %d files. %s", uploaded, uploaded+failed, res.Failed[0].Message()),
		}
	}
}

func (p *dashboardPage) refresh() tea.Cmd {
	return func() tea.Msg {
		return refreshedMsg{err: p.drive.Refresh(context.Background())}
	}
}

// navigate leaves the current listing; the selection starts over.
func (p *dashboardPage) navigate(fn func(ctx context.Context) error) tea.Cmd {
	p.cursor, p.offset = 0, 0
	return func() tea.Msg {
		return refreshedMsg{err: fn(context.Background())}
	}
}

func (p *dashboardPage) changeView(v proto.View) tea.Cmd {
	return p.navigate(func(ctx context.Context) error {
		return p.drive.ChangeView(ctx, v)
	})
}

// viewAt returns the view delta steps away from the current one in
// sidebar order, wrapping around.
func (p *dashboardPage) viewAt(delta int) proto.View {
	i := slices.Index(proto.Views, p.drive.Snapshot().View)
	n := len(proto.Views)
	return proto.Views[((i+delta)%n+n)%n]
}

func (p *dashboardPage) op(fn func(ctx context.Context) (string, error)) tea.Cmd {
	return func() tea.Msg {
		msg, err := fn(context.Background())
		return opResultMsg{msg: msg, err: err}
	}
}

func (p *dashboardPage) viewURL(entry proto.FileEntry) tea.Cmd {
	return func() tea.Msg {
		u, err := p.drive.ViewURL(context.Background(), entry)
		return viewURLMsg{url: u, err: err}
	}
}

func (p *dashboardPage) selected() (proto.FileEntry, bool) {
	files := p.drive.Filtered()
	if p.cursor < 0 || p.cursor >= len(files) {
		return proto.FileEntry{}, false
	}
	return files[p.cursor], true
}

func (p *dashboardPage) step() int {
	if p.layout == config.LayoutGrid {
		return p.columns()
	}
	return 1
}

func (p *dashboardPage) move(delta int) {
	n := len(p.drive.Filtered())
	if n == 0 {
		p.cursor = 0
		return
	}
	p.cursor = max(0, min(n-1, p.cursor+delta))
	p.scrollToCursor()
}

func (p *dashboardPage) clampCursor() {
	n := len(p.drive.Filtered())
	p.cursor = max(0, min(n-1, p.cursor))
	p.scrollToCursor()
}

func (p *dashboardPage) scrollToCursor() {
	row := p.cursor / p.perRow()
	visible := max(1, p.visibleRows())
	if row < p.offset {
		p.offset = row
	}
	if row >= p.offset+visible {
		p.offset = row - visible + 1
	}
	p.offset = max(0, p.offset)
}

func (p *dashboardPage) perRow() int {
	if p.layout == config.LayoutGrid {
		return p.columns()
	}
	return 1
}

func (p *dashboardPage) SetSize(width, height int) tea.Cmd {
	p.width, p.height = width, height
	p.header.SetWidth(width)
	p.search.SetWidth(max(10, p.mainWidth()-4))
	p.scrollToCursor()
	return nil
}

func (p *dashboardPage) SetUser(user proto.User) tea.Cmd {
	return p.header.SetUser(user)
}

func (p *dashboardPage) SetLayout(layout string) tea.Cmd {
	if layout != config.LayoutList {
		layout = config.LayoutGrid
	}
	p.layout = layout
	p.offset = 0
	p.scrollToCursor()
	return nil
}

func (p *dashboardPage) Layout() string {
	return p.layout
}

func (p *dashboardPage) Bindings() []key.Binding {
	if p.searching {
		return []key.Binding{
			key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "done")),
			key.NewBinding(key.WithKeys("esc"), key.WithHelp("esc", "clear search")),
		}
	}
	return p.keyMap.KeyBindings()
}
