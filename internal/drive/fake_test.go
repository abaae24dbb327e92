package drive

import (
	"context"
	"errors"
	"io"
	"strings"
	"sync"

	"github.com/driveterm/drive/internal/client"
	"github.com/driveterm/drive/internal/proto"
)

type listCall struct {
	folderID string
	view     proto.View
}

// fakeBackend records calls and serves listings keyed by folder and view.
type fakeBackend struct {
	mu       sync.Mutex
	listings map[listCall][]proto.FileEntry
	lists    []listCall
	calls    []string
	uploads  map[string]string
	listErr  error
	failOn   map[string]error
	// block, when set, is waited on by ListFiles for the given folder.
	block map[string]chan struct{}
}

func newFake() *fakeBackend {
	return &fakeBackend{
		listings: map[listCall][]proto.FileEntry{},
		uploads:  map[string]string{},
		failOn:   map[string]error{},
		block:    map[string]chan struct{}{},
	}
}

func (f *fakeBackend) record(call string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls = append(f.calls, call)
	for prefix, err := range f.failOn {
		if strings.HasPrefix(call, prefix) {
			return err
		}
	}
	return nil
}

func (f *fakeBackend) Calls() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]string(nil), f.calls...)
}

func (f *fakeBackend) Lists() []listCall {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]listCall(nil), f.lists...)
}

func (f *fakeBackend) ListFiles(ctx context.Context, folderID string, view proto.View) ([]proto.FileEntry, error) {
	f.mu.Lock()
	f.lists = append(f.lists, listCall{folderID, view})
	ch := f.block[folderID]
	err := f.listErr
	files := f.listings[listCall{folderID, view}]
	f.mu.Unlock()
	if ch != nil {
		<-ch
	}
	if err != nil {
		return nil, err
	}
	if files == nil {
		files = []proto.FileEntry{}
	}
	return files, nil
}

func (f *fakeBackend) CreateFolder(ctx context.Context, name, parentID string) (*proto.MessageResponse, error) {
	if err := f.record("mkdir " + name + " in " + parentID); err != nil {
		return nil, err
	}
	return &proto.MessageResponse{Message: "ok"}, nil
}

func (f *fakeBackend) UploadFile(ctx context.Context, params client.UploadParams) (*proto.MessageResponse, error) {
	if err := f.record("upload " + params.Name + " to " + params.ParentFolderID); err != nil {
		return nil, err
	}
	data, err := io.ReadAll(params.Body)
	if err != nil {
		return nil, err
	}
	if params.OnProgress != nil {
		params.OnProgress(int64(len(data)) / 2)
		params.OnProgress(int64(len(data)))
	}
	f.mu.Lock()
	f.uploads[params.Name] = string(data)
	f.mu.Unlock()
	return &proto.MessageResponse{Message: "uploaded"}, nil
}

func (f *fakeBackend) DownloadURL(ctx context.Context, fileID string, mode proto.DownloadMode) (string, error) {
	if err := f.record("url " + fileID + " " + string(mode)); err != nil {
		return "", err
	}
	return "https://cdn.example.com/" + fileID + "?mode=" + string(mode), nil
}

func (f *fakeBackend) DownloadFolder(ctx context.Context, folderID string) (io.ReadCloser, error) {
	if err := f.record("zip " + folderID); err != nil {
		return nil, err
	}
	return io.NopCloser(strings.NewReader("PK-zip-" + folderID)), nil
}

func (f *fakeBackend) Fetch(ctx context.Context, rawURL string) (io.ReadCloser, error) {
	if err := f.record("fetch " + rawURL); err != nil {
		return nil, err
	}
	return io.NopCloser(strings.NewReader("content of " + rawURL)), nil
}

func (f *fakeBackend) DeleteFile(ctx context.Context, fileID string, permanent bool) (*proto.MessageResponse, error) {
	call := "delete " + fileID
	if permanent {
		call += " permanent"
	}
	if err := f.record(call); err != nil {
		return nil, err
	}
	return &proto.MessageResponse{Message: "deleted"}, nil
}

func (f *fakeBackend) RestoreFile(ctx context.Context, fileID string) (*proto.MessageResponse, error) {
	if err := f.record("restore " + fileID); err != nil {
		return nil, err
	}
	return &proto.MessageResponse{Message: "restored"}, nil
}

func (f *fakeBackend) ToggleStar(ctx context.Context, fileID string) (*proto.MessageResponse, error) {
	if err := f.record("star " + fileID); err != nil {
		return nil, err
	}
	return &proto.MessageResponse{Message: "File starred"}, nil
}

func (f *fakeBackend) EmptyTrash(ctx context.Context) (*proto.MessageResponse, error) {
	if err := f.record("empty-trash"); err != nil {
		return nil, err
	}
	return &proto.MessageResponse{Message: "emptied"}, nil
}

func (f *fakeBackend) RenameFile(ctx context.Context, fileID, name string) (*proto.MessageResponse, error) {
	if err := f.record("rename " + fileID + " " + name); err != nil {
		return nil, err
	}
	return &proto.MessageResponse{Message: "renamed"}, nil
}

var errBoom = errors.New("boom")
