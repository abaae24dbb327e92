package drive

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/driveterm/drive/internal/proto"
)

// FolderZipExtension is appended to folder names on download.
const FolderZipExtension = ".zip"

// Download saves entry into dir and returns the written path. Folders are
// saved as a zip archive. Existing files are never overwritten; a numeric
// suffix is added instead.
func (d *Dashboard) Download(ctx context.Context, entry proto.FileEntry, dir string) (string, error) {
	path, err := d.download(ctx, entry, dir)
	if err != nil {
		return "", wrap("Failed to download. Try again.", err)
	}
	return path, nil
}

func (d *Dashboard) download(ctx context.Context, entry proto.FileEntry, dir string) (string, error) {
	name := safeName(entry.FileName)
	var body io.ReadCloser
	if entry.IsFolder() {
		name += FolderZipExtension
		rc, err := d.backend.DownloadFolder(ctx, entry.ID)
		if err != nil {
			return "", err
		}
		body = rc
	} else {
		u, err := d.backend.DownloadURL(ctx, entry.ID, proto.DownloadModeDownload)
		if err != nil {
			return "", err
		}
		rc, err := d.backend.Fetch(ctx, u)
		if err != nil {
			return "", err
		}
		body = rc
	}
	defer body.Close()

	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", err
	}
	f, path, err := createUnique(dir, name)
	if err != nil {
		return "", err
	}
	if _, err := io.Copy(f, body); err != nil {
		f.Close()
		os.Remove(path)
		return "", err
	}
	if err := f.Close(); err != nil {
		os.Remove(path)
		return "", err
	}
	return path, nil
}

// DownloadMessage is the notification text for a finished download.
func DownloadMessage(entry proto.FileEntry, path string) string {
	if entry.IsFolder() {
		return fmt.Sprintf("%s downloaded successfully", filepath.Base(path))
	}
	return fmt.Sprintf("%s saved to %s", entry.FileName, path)
}

func safeName(name string) string {
	name = filepath.Base(strings.ReplaceAll(name, "\\", "/"))
	switch name {
	case "", ".", "..", "/":
		return "download"
	}
	return name
}

func createUnique(dir, name string) (*os.File, string, error) {
	ext := filepath.Ext(name)
	stem := strings.TrimSuffix(name, ext)
	for i := 0; i < 1000; i++ {
		candidate := name
		if i > 0 {
			candidate = fmt.Sprintf("%s (%d)%s", stem, i, ext)
		}
		path := filepath.Join(dir, candidate)
		f, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0o644)
		if err == nil {
			return f, path, nil
		}
		if !errors.Is(err, os.ErrExist) {
			return nil, "", err
		}
	}
	return nil, "", fmt.Errorf("no free file name for %s in %s", name, dir)
}
