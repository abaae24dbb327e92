// Package uploads renders the progress of an upload batch.
package uploads

import (
	"fmt"

	"github.com/charmbracelet/lipgloss/v2"
	"github.com/charmbracelet/x/ansi"
	"github.com/driveterm/drive/internal/drive"
	"github.com/driveterm/drive/internal/pubsub"
	"github.com/driveterm/drive/internal/tui/styles"
)

type Status int

const (
	StatusPending Status = iota
	StatusInProgress
	StatusCompleted
	StatusFailed
)

// Item is one file of the batch as last reported.
type Item struct {
	Name    string
	Status  Status
	Percent int
	Message string
}

// Tracker folds upload events into per file items. The zero value is
// ready to use.
type Tracker struct {
	items []Item
	total int
	done  bool
}

// Update applies an upload event. It reports whether the batch finished.
func (t *Tracker) Update(ev pubsub.Event[drive.UploadProgress]) bool {
	p := ev.Payload
	if ev.Type == drive.UploadBatchDoneEvent {
		t.done = true
		return true
	}
	if t.done || p.Total != t.total {
		t.reset(p.Total)
	}
	if p.Index < 0 || p.Index >= len(t.items) {
		return false
	}
	item := &t.items[p.Index]
	item.Name = p.Name
	item.Percent = p.Percent
	switch ev.Type {
	case drive.UploadStartedEvent, drive.UploadProgressEvent:
		item.Status = StatusInProgress
	case drive.UploadCompletedEvent:
		item.Status = StatusCompleted
		item.Percent = 100
		item.Message = p.Message
	case drive.UploadFailedEvent:
		item.Status = StatusFailed
		item.Message = p.Message
	}
	return false
}

func (t *Tracker) reset(total int) {
	t.total = total
	t.done = false
	t.items = make([]Item, total)
}

// Items returns the tracked files in batch order.
func (t *Tracker) Items() []Item {
	return t.items
}

// Active reports whether a batch is running.
func (t *Tracker) Active() bool {
	return len(t.items) > 0 && !t.done
}

// Count returns the number of items with the given status.
func (t *Tracker) Count(status Status) int {
	n := 0
	for _, it := range t.items {
		if it.Status == status {
			n++
		}
	}
	return n
}

type RenderOptions struct {
	MaxWidth    int
	MaxItems    int
	ShowSection bool
	SectionName string
}

func RenderUploadBlock(t *Tracker, options RenderOptions) string {
	if t == nil || len(t.items) == 0 {
		return ""
	}

	th := styles.CurrentTheme()
	parts := []string{}

	if options.ShowSection {
		parts = append(parts, options.SectionName)
	}

	maxItems := options.MaxItems
	if maxItems <= 0 || maxItems > len(t.items) {
		maxItems = len(t.items)
	}

	for i := 0; i < maxItems; i++ {
		parts = append(parts, renderItem(t.items[i], options.MaxWidth))
	}

	if len(t.items) > maxItems {
		remaining := len(t.items) - maxItems
		parts = append(parts, th.S().Muted.Render(fmt.Sprintf("... and %d more", remaining)))
	}

	return lipgloss.JoinVertical(lipgloss.Left, parts...)
}

func renderItem(item Item, maxWidth int) string {
	t := styles.CurrentTheme()

	var statusIcon string
	var statusStyle lipgloss.Style

	switch item.Status {
	case StatusInProgress:
		statusIcon = "◐"
		statusStyle = t.S().Base.Foreground(t.Secondary)
	case StatusCompleted:
		statusIcon = "●"
		statusStyle = t.S().Base.Foreground(t.Success)
	case StatusFailed:
		statusIcon = "✗"
		statusStyle = t.S().Base.Foreground(t.Error)
	default:
		statusIcon = "○"
		statusStyle = t.S().Base.Foreground(t.FgMuted)
	}

	suffix := ""
	if item.Status == StatusInProgress {
		suffix = fmt.Sprintf(" %3d%%", item.Percent)
	}

	content := item.Name
	if item.Status == StatusFailed && item.Message != "" {
		content = item.Message
	}
	if maxWidth > 0 {
		iconWidth := 2
		content = ansi.Truncate(content, max(0, maxWidth-iconWidth-len(suffix)), "...")
	}

	contentStyle := t.S().Text
	if item.Status == StatusCompleted {
		contentStyle = t.S().Muted
	}

	return fmt.Sprintf("%s %s%s",
		statusStyle.Render(statusIcon),
		contentStyle.Render(content),
		t.S().Subtle.Render(suffix),
	)
}

// RenderUploadSummary is the one line form: "Uploading 2/5".
func RenderUploadSummary(t *Tracker, maxWidth int) string {
	if t == nil || len(t.items) == 0 {
		return ""
	}
	th := styles.CurrentTheme()

	completed := t.Count(StatusCompleted)
	failed := t.Count(StatusFailed)
	label := "Uploading"
	if t.done {
		label = "Uploaded"
	}
	summary := fmt.Sprintf("%s %d/%d", label, completed, len(t.items))
	if failed > 0 {
		summary += th.S().Error.Render(fmt.Sprintf(" (%d failed)", failed))
	}
	return ansi.Truncate(th.S().Text.Render(summary), maxWidth, "…")
}
