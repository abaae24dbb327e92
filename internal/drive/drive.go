// Package drive is the dashboard core: where the user is in the folder
// tree, which view is selected, the last fetched listing, and every
// operation on it. The terminal UI and the commands both drive it.
package drive

import (
	"context"
	"io"
	"log/slog"
	"slices"
	"sync"

	"github.com/driveterm/drive/internal/client"
	"github.com/driveterm/drive/internal/proto"
	"github.com/driveterm/drive/internal/pubsub"
)

// Backend is the subset of the API the dashboard needs. [*client.Client]
// implements it.
type Backend interface {
	ListFiles(ctx context.Context, folderID string, view proto.View) ([]proto.FileEntry, error)
	CreateFolder(ctx context.Context, name, parentID string) (*proto.MessageResponse, error)
	UploadFile(ctx context.Context, params client.UploadParams) (*proto.MessageResponse, error)
	DownloadURL(ctx context.Context, fileID string, mode proto.DownloadMode) (string, error)
	DownloadFolder(ctx context.Context, folderID string) (io.ReadCloser, error)
	Fetch(ctx context.Context, rawURL string) (io.ReadCloser, error)
	DeleteFile(ctx context.Context, fileID string, permanent bool) (*proto.MessageResponse, error)
	RestoreFile(ctx context.Context, fileID string) (*proto.MessageResponse, error)
	ToggleStar(ctx context.Context, fileID string) (*proto.MessageResponse, error)
	EmptyTrash(ctx context.Context) (*proto.MessageResponse, error)
	RenameFile(ctx context.Context, fileID, name string) (*proto.MessageResponse, error)
}

var _ Backend = (*client.Client)(nil)

// Segment is one breadcrumb of the folder path.
type Segment struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// State is a snapshot of the dashboard.
type State struct {
	FolderID string
	Path     []Segment
	View     proto.View
	Search   string
	// Files is the last successful listing for (FolderID, View).
	Files   []proto.FileEntry
	Loading bool
	// Loaded is false until the first fetch succeeds.
	Loaded bool
}

// Title is the heading of the current view.
func (s State) Title() string {
	return s.View.Title()
}

// InTrash reports whether deletes are permanent.
func (s State) InTrash() bool {
	return s.View == proto.ViewTrash
}

type Option func(*Dashboard)

// WithFuzzySearch ranks search results by fuzzy match instead of
// filtering by substring.
func WithFuzzySearch(enabled bool) Option {
	return func(d *Dashboard) { d.fuzzy = enabled }
}

// UploadBus carries upload progress. [pubsub.Broker] implements it.
type UploadBus interface {
	pubsub.Publisher[UploadProgress]
	pubsub.Subscriber[UploadProgress]
}

// WithUploadBroker publishes upload progress on b.
func WithUploadBroker(b UploadBus) Option {
	return func(d *Dashboard) { d.uploads = b }
}

// Dashboard holds navigation state and the current listing. It is safe for
// concurrent use.
type Dashboard struct {
	backend Backend
	fuzzy   bool
	uploads UploadBus

	mu    sync.RWMutex
	state State
	// gen is bumped on every navigation so that a fetch for a location the
	// user already left never overwrites the listing.
	gen uint64
	// seq numbers fetches; applied is the seq of the listing on screen.
	// A fetch older than applied is dropped.
	seq     uint64
	applied uint64
}

func New(backend Backend, opts ...Option) *Dashboard {
	d := &Dashboard{
		backend: backend,
		state:   State{View: proto.ViewHome, Files: []proto.FileEntry{}},
	}
	for _, opt := range opts {
		opt(d)
	}
	if d.uploads == nil {
		d.uploads = pubsub.NewBroker[UploadProgress]()
	}
	return d
}

// Uploads returns the broker carrying upload progress.
func (d *Dashboard) Uploads() pubsub.Subscriber[UploadProgress] {
	return d.uploads
}

// Snapshot returns a copy of the current state.
func (d *Dashboard) Snapshot() State {
	d.mu.RLock()
	defer d.mu.RUnlock()
	s := d.state
	s.Path = slices.Clone(d.state.Path)
	s.Files = slices.Clone(d.state.Files)
	return s
}

// Refresh fetches the listing for the current folder and view. On failure
// the previous listing is kept.
func (d *Dashboard) Refresh(ctx context.Context) error {
	d.mu.Lock()
	gen := d.gen
	d.seq++
	seq := d.seq
	folderID, view := d.state.FolderID, d.state.View
	d.state.Loading = true
	d.mu.Unlock()

	files, err := d.backend.ListFiles(ctx, folderID, view)

	d.mu.Lock()
	defer d.mu.Unlock()
	if gen != d.gen || seq < d.applied {
		// Navigated away or a newer listing landed first.
		return nil
	}
	if seq == d.seq {
		d.state.Loading = false
	}
	if err != nil {
		slog.Error("Failed to load files", "folder", folderID, "view", view, "error", err)
		return wrap("Failed to load files", err)
	}
	d.applied = seq
	d.state.Files = files
	d.state.Loaded = true
	return nil
}

func (d *Dashboard) navigate(fn func(s *State)) {
	d.mu.Lock()
	defer d.mu.Unlock()
	fn(&d.state)
	d.gen++
}

// OpenFolder enters a folder, pushing it on the path.
func (d *Dashboard) OpenFolder(ctx context.Context, id, name string) error {
	d.navigate(func(s *State) {
		s.FolderID = id
		s.Path = append(s.Path, Segment{ID: id, Name: name})
	})
	return d.Refresh(ctx)
}

// NavigateTo jumps back to the breadcrumb at index, dropping the deeper
// segments.
func (d *Dashboard) NavigateTo(ctx context.Context, index int) error {
	var ok bool
	d.navigate(func(s *State) {
		if index < 0 || index >= len(s.Path) {
			return
		}
		ok = true
		s.Path = s.Path[:index+1]
		s.FolderID = s.Path[index].ID
	})
	if !ok {
		return nil
	}
	return d.Refresh(ctx)
}

// NavigateHome returns to the root of the current view.
func (d *Dashboard) NavigateHome(ctx context.Context) error {
	d.navigate(func(s *State) {
		s.FolderID = ""
		s.Path = nil
	})
	return d.Refresh(ctx)
}

// ChangeView switches the view. It always leaves the current folder.
func (d *Dashboard) ChangeView(ctx context.Context, view proto.View) error {
	if view == "" {
		view = proto.ViewHome
	}
	d.navigate(func(s *State) {
		s.View = view
		s.FolderID = ""
		s.Path = nil
	})
	return d.Refresh(ctx)
}

// Reset forgets the listing and returns to the home view. Used on logout.
func (d *Dashboard) Reset() {
	d.navigate(func(s *State) {
		*s = State{View: proto.ViewHome, Files: []proto.FileEntry{}}
	})
}

// SetSearch sets the filter term. It never fetches.
func (d *Dashboard) SetSearch(term string) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.state.Search = term
}

// Filtered returns the listing narrowed by the search term.
func (d *Dashboard) Filtered() []proto.FileEntry {
	d.mu.RLock()
	defer d.mu.RUnlock()
	return Filter(d.state.Files, d.state.Search, d.fuzzy)
}
