package drive

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/driveterm/drive/internal/proto"
)

// Confirmation prompts for destructive operations.
const (
	ConfirmTrash      = "Are you sure you want to move this item to trash?"
	ConfirmPermanent  = "Are you sure you want to permanently delete this item?"
	ConfirmEmptyTrash = "Are you sure you want to permanently delete all items in trash? This action cannot be undone."
)

// mutate runs fn and, when it succeeds, refreshes the listing. A failed
// refresh after a successful mutation is logged, not returned: the
// mutation itself went through.
func (d *Dashboard) mutate(ctx context.Context, failure string, fn func() (string, error)) (string, error) {
	msg, err := fn()
	if err != nil {
		slog.Error(failure, "error", err)
		return "", wrap(failure, err)
	}
	if err := d.Refresh(ctx); err != nil {
		slog.Warn("Refresh after update failed", "error", err)
	}
	return msg, nil
}

// CreateFolder creates a folder in the current location.
func (d *Dashboard) CreateFolder(ctx context.Context, name string) (string, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return "", ErrEmptyFolderName
	}
	parent := d.Snapshot().FolderID
	return d.mutate(ctx, "Failed to create folder", func() (string, error) {
		if _, err := d.backend.CreateFolder(ctx, name, parent); err != nil {
			return "", err
		}
		return "Folder created successfully", nil
	})
}

// Rename gives entry a new name.
func (d *Dashboard) Rename(ctx context.Context, entry proto.FileEntry, name string) (string, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return "", ErrEmptyFileName
	}
	return d.mutate(ctx, "Failed to rename file", func() (string, error) {
		if _, err := d.backend.RenameFile(ctx, entry.ID, name); err != nil {
			return "", err
		}
		return "File renamed successfully", nil
	})
}

// DeletePrompt returns the confirmation to show before [Dashboard.Delete].
func (d *Dashboard) DeletePrompt() string {
	if d.Snapshot().InTrash() {
		return ConfirmPermanent
	}
	return ConfirmTrash
}

// Delete moves entry to the trash, or deletes it for good when the trash
// view is open. Callers confirm with the user first.
func (d *Dashboard) Delete(ctx context.Context, entry proto.FileEntry) (string, error) {
	permanent := d.Snapshot().InTrash()
	return d.mutate(ctx, "Failed to delete item", func() (string, error) {
		if _, err := d.backend.DeleteFile(ctx, entry.ID, permanent); err != nil {
			return "", err
		}
		if permanent {
			return "Item permanently deleted", nil
		}
		return "Item moved to trash", nil
	})
}

// Restore brings entry back from the trash.
func (d *Dashboard) Restore(ctx context.Context, entry proto.FileEntry) (string, error) {
	return d.mutate(ctx, "Failed to restore item", func() (string, error) {
		if _, err := d.backend.RestoreFile(ctx, entry.ID); err != nil {
			return "", err
		}
		return "Item restored successfully", nil
	})
}

// ToggleStar flips the starred flag. The message comes from the server.
func (d *Dashboard) ToggleStar(ctx context.Context, entry proto.FileEntry) (string, error) {
	return d.mutate(ctx, "Failed to update star status", func() (string, error) {
		rsp, err := d.backend.ToggleStar(ctx, entry.ID)
		if err != nil {
			return "", err
		}
		if rsp.Message == "" {
			if entry.IsStarred {
				return fmt.Sprintf("Removed %s from starred", entry.FileName), nil
			}
			return fmt.Sprintf("Added %s to starred", entry.FileName), nil
		}
		return rsp.Message, nil
	})
}

// EmptyTrash permanently deletes everything in the trash. Callers confirm
// with [ConfirmEmptyTrash] first.
func (d *Dashboard) EmptyTrash(ctx context.Context) (string, error) {
	return d.mutate(ctx, "Failed to empty trash", func() (string, error) {
		if _, err := d.backend.EmptyTrash(ctx); err != nil {
			return "", err
		}
		return "Trash emptied successfully", nil
	})
}

// ViewURL resolves the URL that renders entry inline.
func (d *Dashboard) ViewURL(ctx context.Context, entry proto.FileEntry) (string, error) {
	if entry.IsFolder() {
		return "", &Error{Message: "Folders cannot be previewed"}
	}
	u, err := d.backend.DownloadURL(ctx, entry.ID, proto.DownloadModeView)
	if err != nil {
		return "", wrap("Failed to open file", err)
	}
	return u, nil
}

// Lookup finds an entry of the current listing by id or exact name.
func (d *Dashboard) Lookup(ref string) (proto.FileEntry, bool) {
	d.mu.RLock()
	defer d.mu.RUnlock()
	for _, f := range d.state.Files {
		if f.ID == ref {
			return f, true
		}
	}
	for _, f := range d.state.Files {
		if f.FileName == ref {
			return f, true
		}
	}
	return proto.FileEntry{}, false
}
