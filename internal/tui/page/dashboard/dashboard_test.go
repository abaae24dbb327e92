package dashboard

import (
	"context"
	"errors"
	"io"
	"strings"
	"sync"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea/v2"
	"github.com/charmbracelet/x/ansi"
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
	"github.com/driveterm/drive/internal/tui/page"
	"github.com/driveterm/drive/internal/tui/util"
	"github.com/stretchr/testify/require"
)

type backend struct {
	mu    sync.Mutex
	calls []string
	// listings by folder id, for the home view.
	folders map[string][]proto.FileEntry
	trash   []proto.FileEntry
	listErr error
}

func (b *backend) record(call string) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.calls = append(b.calls, call)
}

func (b *backend) called(call string) bool {
	b.mu.Lock()
	defer b.mu.Unlock()
	for _, c := range b.calls {
		if c == call {
			return true
		}
	}
	return false
}

func (b *backend) ListFiles(_ context.Context, folderID string, view proto.View) ([]proto.FileEntry, error) {
	b.record("list " + folderID + " " + string(view))
	b.mu.Lock()
	err := b.listErr
	b.mu.Unlock()
	if err != nil {
		return nil, err
	}
	if view == proto.ViewTrash {
		return b.trash, nil
	}
	return b.folders[folderID], nil
}

func (b *backend) CreateFolder(_ context.Context, name, parentID string) (*proto.MessageResponse, error) {
	b.record("mkdir " + name)
	return &proto.MessageResponse{}, nil
}

func (b *backend) UploadFile(_ context.Context, params client.UploadParams) (*proto.MessageResponse, error) {
	b.record("upload " + params.Name)
	return &proto.MessageResponse{}, nil
}

func (b *backend) DownloadURL(_ context.Context, fileID string, mode proto.DownloadMode) (string, error) {
	b.record("url " + fileID + " " + string(mode))
	return "https://files.example.com/" + fileID, nil
}

func (b *backend) DownloadFolder(_ context.Context, folderID string) (io.ReadCloser, error) {
	return io.NopCloser(strings.NewReader("zip")), nil
}

func (b *backend) Fetch(_ context.Context, rawURL string) (io.ReadCloser, error) {
	return io.NopCloser(strings.NewReader("data")), nil
}

func (b *backend) DeleteFile(_ context.Context, fileID string, permanent bool) (*proto.MessageResponse, error) {
	b.record("delete " + fileID)
	return &proto.MessageResponse{}, nil
}

func (b *backend) RestoreFile(_ context.Context, fileID string) (*proto.MessageResponse, error) {
	b.record("restore " + fileID)
	return &proto.MessageResponse{}, nil
}

func (b *backend) ToggleStar(_ context.Context, fileID string) (*proto.MessageResponse, error) {
	b.record("star " + fileID)
	return &proto.MessageResponse{Message: "File starred"}, nil
}

func (b *backend) EmptyTrash(context.Context) (*proto.MessageResponse, error) {
	b.record("empty")
	return &proto.MessageResponse{}, nil
}

func (b *backend) RenameFile(_ context.Context, fileID, name string) (*proto.MessageResponse, error) {
	b.record("rename " + fileID + " " + name)
	return &proto.MessageResponse{}, nil
}

func newBackend() *backend {
	now := time.Now().Add(-48 * time.Hour)
	return &backend{
		folders: map[string][]proto.FileEntry{
			"": {
				{ID: "f1", FileName: "Projects", FileType: proto.FileTypeFolder, UploadedAt: now},
				{ID: "a1", FileName: "report.pdf", FileType: "application/pdf", FileSize: 2048, UploadedAt: now},
				{ID: "a2", FileName: "photo.png", FileType: "image/png", FileSize: 1536, UploadedAt: now, IsStarred: true},
			},
			"f1": {
				{ID: "a3", FileName: "plan.docx", FileType: "application/msword", FileSize: 10, UploadedAt: now},
			},
		},
		trash: []proto.FileEntry{
			{ID: "t1", FileName: "old.txt", FileType: "text/plain", FileSize: 1, UploadedAt: now},
		},
	}
}

// run executes cmd and every command it batches, returning the messages.
func run(cmd tea.Cmd) []tea.Msg {
	if cmd == nil {
		return nil
	}
	msg := cmd()
	if batch, ok := msg.(tea.BatchMsg); ok {
		var msgs []tea.Msg
		for _, c := range batch {
			msgs = append(msgs, run(c)...)
		}
		return msgs
	}
	return []tea.Msg{msg}
}

// feed runs cmd and hands every resulting message back to the page.
func feed(p Dashboard, cmd tea.Cmd) []tea.Msg {
	var out []tea.Msg
	for _, msg := range run(cmd) {
		out = append(out, msg)
		_, next := p.Update(msg)
		out = append(out, run(next)...)
	}
	return out
}

func press(p Dashboard, k tea.KeyPressMsg) []tea.Msg {
	_, cmd := p.Update(k)
	return feed(p, cmd)
}

func keyText(s string) tea.KeyPressMsg {
	r := []rune(s)[0]
	return tea.KeyPressMsg{Code: r, Text: s}
}

func findMsg[T any](msgs []tea.Msg) (T, bool) {
	for _, m := range msgs {
		if v, ok := m.(T); ok {
			return v, true
		}
	}
	var zero T
	return zero, false
}

func setup(t *testing.T) (Dashboard, *backend) {
	t.Helper()
	b := newBackend()
	p := New(drive.New(b), Options{
		User:        proto.User{FirstName: "Ada", LastName: "Lovelace", Email: "ada@example.com"},
		Layout:      config.LayoutList,
		DownloadDir: t.TempDir(),
	})
	p.SetSize(120, 40)
	feed(p, p.Init())
	return p, b
}

func TestDashboard_InitialListing(t *testing.T) {
	t.Parallel()

	p, b := setup(t)
	require.True(t, b.called("list  home"))

	view := ansi.Strip(p.View())
	require.Contains(t, view, "My Drive (3)")
	require.Contains(t, view, "report.pdf")
	require.Contains(t, view, "2 KB")
	require.Contains(t, view, "2 days ago")
	require.Contains(t, view, "Ada Lovelace")
}

func TestDashboard_OpenFolderAndBack(t *testing.T) {
	t.Parallel()

	p, b := setup(t)
	press(p, tea.KeyPressMsg{Code: tea.KeyEnter})
	require.True(t, b.called("list f1 home"))
	view := ansi.Strip(p.View())
	require.Contains(t, view, "My Drive › Projects")
	require.Contains(t, view, "plan.docx")

	press(p, tea.KeyPressMsg{Code: tea.KeyBackspace})
	require.Contains(t, ansi.Strip(p.View()), "report.pdf")
}

func TestDashboard_SearchFiltersWithoutFetching(t *testing.T) {
	t.Parallel()

	p, b := setup(t)
	b.mu.Lock()
	listCalls := len(b.calls)
	b.mu.Unlock()

	p.Update(keyText("/"))
	for _, r := range "PHO" {
		p.Update(keyText(string(r)))
	}
	view := ansi.Strip(p.View())
	require.Contains(t, view, "photo.png")
	require.NotContains(t, view, "report.pdf")

	b.mu.Lock()
	require.Len(t, b.calls, listCalls)
	b.mu.Unlock()

	p.Update(tea.KeyPressMsg{Code: tea.KeyEscape})
	require.Contains(t, ansi.Strip(p.View()), "report.pdf")
}

func TestDashboard_SwitchViews(t *testing.T) {
	t.Parallel()

	p, b := setup(t)
	press(p, keyText("4"))
	require.True(t, b.called("list  trash"))
	require.Contains(t, ansi.Strip(p.View()), "Trash (1)")

	msgs := press(p, keyText("s"))
	info, ok := findMsg[util.InfoMsg](msgs)
	require.True(t, ok)
	require.Equal(t, util.InfoTypeWarn, info.Type)

	msgs = press(p, keyText("R"))
	require.True(t, b.called("restore t1"))
	info, _ = findMsg[util.InfoMsg](msgs)
	require.Equal(t, "Item restored successfully", info.Msg)

	press(p, keyText("["))
	require.True(t, b.called("list  starred"))
}

func TestDashboard_StarShowsServerMessage(t *testing.T) {
	t.Parallel()

	p, b := setup(t)
	press(p, tea.KeyPressMsg{Code: tea.KeyDown})
	msgs := press(p, keyText("s"))
	require.True(t, b.called("star a1"))
	info, ok := findMsg[util.InfoMsg](msgs)
	require.True(t, ok)
	require.Equal(t, "File starred", info.Msg)
}

func TestDashboard_DeleteAsksForConfirmation(t *testing.T) {
	t.Parallel()

	p, b := setup(t)
	press(p, tea.KeyPressMsg{Code: tea.KeyDown})
	_, cmd := p.Update(keyText("x"))
	open, ok := cmd().(dialogs.OpenDialogMsg)
	require.True(t, ok)
	require.Equal(t, confirm.ConfirmDialogID, open.Model.ID())
	require.Contains(t, ansi.Strip(open.Model.View()), drive.ConfirmTrash)
	require.False(t, b.called("delete a1"))
}

func TestDashboard_NewFolderAndRenameOpenPrompts(t *testing.T) {
	t.Parallel()

	p, _ := setup(t)
	_, cmd := p.Update(keyText("n"))
	open, ok := cmd().(dialogs.OpenDialogMsg)
	require.True(t, ok)
	require.Equal(t, prompt.NewFolderDialogID, open.Model.ID())

	press(p, tea.KeyPressMsg{Code: tea.KeyDown})
	_, cmd = p.Update(keyText("r"))
	open, ok = cmd().(dialogs.OpenDialogMsg)
	require.True(t, ok)
	require.Equal(t, prompt.RenameDialogID, open.Model.ID())
	require.Equal(t, "report.pdf", open.Model.(prompt.Dialog).Value())
}

func TestDashboard_ToggleLayout(t *testing.T) {
	t.Parallel()

	p, _ := setup(t)
	_, cmd := p.Update(keyText("l"))
	msg, ok := cmd().(settings.LayoutSelectedMsg)
	require.True(t, ok)
	require.Equal(t, config.LayoutGrid, msg.Layout)

	p.SetLayout(msg.Layout)
	require.Equal(t, config.LayoutGrid, p.Layout())
	view := ansi.Strip(p.View())
	require.Contains(t, view, "Projects")
	require.Contains(t, view, "Folder")
}

func TestDashboard_ViewCopiesLink(t *testing.T) {
	t.Parallel()

	p, b := setup(t)
	var copied string
	p.(*dashboardPage).copyToClipboard = func(s string) error {
		copied = s
		return nil
	}
	press(p, tea.KeyPressMsg{Code: tea.KeyDown})
	msgs := press(p, keyText("v"))
	require.True(t, b.called("url a1 view"))
	require.Equal(t, "https://files.example.com/a1", copied)
	info, _ := findMsg[util.InfoMsg](msgs)
	require.Contains(t, info.Msg, "Link copied")

	p.(*dashboardPage).copyToClipboard = func(string) error { return errors.New("no clipboard") }
	msgs = press(p, keyText("v"))
	info, _ = findMsg[util.InfoMsg](msgs)
	require.Equal(t, util.InfoTypeInfo, info.Type)
	require.Contains(t, info.Msg, "https://files.example.com/a1")
}

func TestDashboard_Download(t *testing.T) {
	t.Parallel()

	p, _ := setup(t)
	press(p, tea.KeyPressMsg{Code: tea.KeyDown})
	msgs := press(p, keyText("d"))
	info, ok := findMsg[util.InfoMsg](msgs)
	require.True(t, ok)
	require.Equal(t, util.InfoTypeSuccess, info.Type)
	require.Contains(t, info.Msg, "report.pdf saved to")
}

func TestDashboard_LogoutConfirm(t *testing.T) {
	t.Parallel()

	p, _ := setup(t)
	_, cmd := p.Update(tea.KeyPressMsg{Code: 'l', Mod: tea.ModCtrl})
	open, ok := cmd().(dialogs.OpenDialogMsg)
	require.True(t, ok)
	require.Contains(t, ansi.Strip(open.Model.View()), logoutQuestion)
}

func TestDashboard_UploadEvents(t *testing.T) {
	t.Parallel()

	p, _ := setup(t)
	_, cmd := p.Update(pubsub.Event[drive.UploadProgress]{
		Type:    drive.UploadStartedEvent,
		Payload: drive.UploadProgress{Name: "a.txt", Total: 2},
	})
	require.Nil(t, cmd)
	require.Contains(t, ansi.Strip(p.View()), "Uploading 0/2")

	_, cmd = p.Update(pubsub.Event[drive.UploadProgress]{
		Type:    drive.UploadFailedEvent,
		Payload: drive.UploadProgress{Name: "a.txt", Total: 2, Message: "Failed to upload a.txt: too big"},
	})
	info, ok := findMsg[util.InfoMsg](run(cmd))
	require.True(t, ok)
	require.Equal(t, util.InfoTypeError, info.Type)
	require.Equal(t, "Failed to upload a.txt: too big", info.Msg)
}

func TestDashboard_UnauthorizedEndsSession(t *testing.T) {
	t.Parallel()

	p, b := setup(t)
	b.mu.Lock()
	b.listErr = &client.APIError{StatusCode: 401}
	b.mu.Unlock()

	msgs := press(p, tea.KeyPressMsg{Code: 'r', Mod: tea.ModCtrl})
	_, ok := findMsg[page.LogoutMsg](msgs)
	require.True(t, ok)
	info, ok := findMsg[util.InfoMsg](msgs)
	require.True(t, ok)
	require.Equal(t, util.InfoTypeWarn, info.Type)
	require.Equal(t, session.ErrExpired.Error(), info.Msg)
	// The listing on screen stays until the app switches pages.
	require.Contains(t, ansi.Strip(p.View()), "report.pdf")
}

func TestDashboard_OtherErrorsKeepSession(t *testing.T) {
	t.Parallel()

	p, b := setup(t)
	b.mu.Lock()
	b.listErr = &client.APIError{StatusCode: 500, Message: "boom"}
	b.mu.Unlock()

	msgs := press(p, tea.KeyPressMsg{Code: 'r', Mod: tea.ModCtrl})
	_, ok := findMsg[page.LogoutMsg](msgs)
	require.False(t, ok)
	info, ok := findMsg[util.InfoMsg](msgs)
	require.True(t, ok)
	require.Equal(t, util.InfoTypeError, info.Type)
}

func TestUploadSummary(t *testing.T) {
	t.Parallel()

	fail := drive.UploadFailure{Path: "/tmp/b.txt", Err: errors.New("quota exceeded")}
	tests := []struct {
		name string
		res  drive.UploadResult
		typ  util.InfoType
		msg  string
	}{
		{"one", drive.UploadResult{Uploaded: []string{"/tmp/a.txt"}}, util.InfoTypeSuccess, "a.txt uploaded successfully"},
		{"many", drive.UploadResult{Uploaded: []string{"a", "b"}}, util.InfoTypeSuccess, "2 files uploaded successfully"},
		{"one failed", drive.UploadResult{Failed: []drive.UploadFailure{fail}}, util.InfoTypeError, "Failed to upload b.txt: quota exceeded"},
		{"partial", drive.UploadResult{Uploaded: []string{"a"}, Failed: []drive.UploadFailure{fail}}, util.InfoTypeWarn, "Uploaded 1 of 2 files. Failed to upload b.txt: quota exceeded"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			got := uploadSummary(tt.res)
			require.Equal(t, tt.typ, got.Type)
			require.Equal(t, tt.msg, got.Msg)
		})
	}
}
