package drive

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/bmatcuk/doublestar/v4"

	"github.com/driveterm/drive/internal/client"
	"github.com/driveterm/drive/internal/pubsub"
)

// Upload event types published on [Dashboard.Uploads].
const (
	UploadStartedEvent   pubsub.EventType = "upload_started"
	UploadProgressEvent  pubsub.EventType = "upload_progress"
	UploadCompletedEvent pubsub.EventType = "upload_completed"
	UploadFailedEvent    pubsub.EventType = "upload_failed"
	UploadBatchDoneEvent pubsub.EventType = "upload_batch_done"
)

// UploadProgress describes the file currently being uploaded.
type UploadProgress struct {
	Name    string `json:"name"`
	Index   int    `json:"index"`
	Total   int    `json:"total"`
	Sent    int64  `json:"sent"`
	Size    int64  `json:"size"`
	Percent int    `json:"percent"`
	// Message is the notification text for completed and failed uploads.
	Message string `json:"message,omitempty"`
}

// UploadFailure is one file that could not be uploaded.
type UploadFailure struct {
	Path string
	Err  error
}

// Message is the notification text for the failure.
func (f UploadFailure) Message() string {
	return fmt.Sprintf("Failed to upload %s: %s", filepath.Base(f.Path), client.ErrorMessage(f.Err, ""))
}

// UploadResult summarizes a batch.
type UploadResult struct {
	Uploaded []string
	Failed   []UploadFailure
}

// Err joins the failures, or returns nil when every file was uploaded.
func (r UploadResult) Err() error {
	errs := make([]error, 0, len(r.Failed))
	for _, f := range r.Failed {
		errs = append(errs, &Error{Message: f.Message(), Err: f.Err})
	}
	return errors.Join(errs...)
}

// Upload sends files to the current folder one at a time. A failing file
// does not stop the rest of the batch. The listing is refreshed once, after
// the last file.
func (d *Dashboard) Upload(ctx context.Context, paths []string) UploadResult {
	parent := d.Snapshot().FolderID
	var res UploadResult
	for i, path := range paths {
		if ctx.Err() != nil {
			res.Failed = append(res.Failed, UploadFailure{Path: path, Err: ctx.Err()})
			continue
		}
		if err := d.uploadOne(ctx, path, parent, i, len(paths)); err != nil {
			f := UploadFailure{Path: path, Err: err}
			slog.Error("Upload failed", "path", path, "error", err)
			d.uploads.Publish(UploadFailedEvent, UploadProgress{
				Name:    filepath.Base(path),
				Index:   i,
				Total:   len(paths),
				Message: f.Message(),
			})
			res.Failed = append(res.Failed, f)
			continue
		}
		res.Uploaded = append(res.Uploaded, path)
	}

	if err := d.Refresh(ctx); err != nil {
		slog.Warn("Refresh after upload failed", "error", err)
	}
	d.uploads.Publish(UploadBatchDoneEvent, UploadProgress{
		Index:   len(res.Uploaded),
		Total:   len(paths),
		Percent: 100,
	})
	return res
}

func (d *Dashboard) uploadOne(ctx context.Context, path, parent string, index, total int) error {
	f, err := os.Open(path)
	if err != nil {
		return err
	}
	defer f.Close()

	fi, err := f.Stat()
	if err != nil {
		return err
	}
	if fi.IsDir() {
		return fmt.Errorf("%s is a directory", path)
	}

	progress := UploadProgress{
		Name:  filepath.Base(path),
		Index: index,
		Total: total,
		Size:  fi.Size(),
	}
	d.uploads.Publish(UploadStartedEvent, progress)

	lastPercent := 0
	_, err = d.backend.UploadFile(ctx, client.UploadParams{
		Name:           progress.Name,
		Body:           f,
		ParentFolderID: parent,
		OnProgress: func(sent int64) {
			p := percent(sent, progress.Size)
			// Keep 100 for the completed event; the server has not
			// answered yet.
			if p <= lastPercent || p >= 100 {
				return
			}
			lastPercent = p
			ev := progress
			ev.Sent, ev.Percent = sent, p
			d.uploads.Publish(UploadProgressEvent, ev)
		},
	})
	if err != nil {
		return err
	}

	progress.Sent, progress.Percent = progress.Size, 100
	progress.Message = fmt.Sprintf("%s uploaded successfully", progress.Name)
	d.uploads.Publish(UploadCompletedEvent, progress)
	return nil
}

func percent(n, total int64) int {
	if total <= 0 {
		return 100
	}
	return int(n * 100 / total)
}

// ExpandPaths resolves upload arguments into files. Arguments with glob
// meta characters, including "**", are matched against the file system;
// other arguments are kept as given. The result keeps the argument order
// and has no duplicates.
func ExpandPaths(args []string) ([]string, error) {
	var paths []string
	seen := make(map[string]bool)
	add := func(p string) {
		if !seen[p] {
			seen[p] = true
			paths = append(paths, p)
		}
	}
	for _, arg := range args {
		arg = strings.TrimSpace(arg)
		if arg == "" {
			continue
		}
		if !strings.ContainsAny(arg, "*?[{") {
			add(arg)
			continue
		}
		matches, err := doublestar.FilepathGlob(arg, doublestar.WithFilesOnly())
		if err != nil {
			return nil, fmt.Errorf("invalid pattern %q: %w", arg, err)
		}
		if len(matches) == 0 {
			return nil, fmt.Errorf("no files match %q", arg)
		}
		for _, m := range matches {
			add(m)
		}
	}
	if len(paths) == 0 {
		return nil, errors.New("no files to upload")
	}
	return paths, nil
}
