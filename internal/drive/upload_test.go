package drive

import (
	"context"
	"os"
	"path/filepath"
	"sync"
	"testing"

	"github.com/driveterm/drive/internal/client"
	"github.com/driveterm/drive/internal/pubsub"
	"github.com/stretchr/testify/require"
)

func writeTemp(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func drain(ch <-chan pubsub.Event[UploadProgress]) []pubsub.Event[UploadProgress] {
	var out []pubsub.Event[UploadProgress]
	for {
		select {
		case ev := <-ch:
			out = append(out, ev)
		default:
			return out
		}
	}
}

func TestUpload_SequentialContinuesPastFailures(t *testing.T) {
	t.Parallel()

	ctx := t.Context()
	dir := t.TempDir()
	a := writeTemp(t, dir, "a.txt", "hello world")
	b := writeTemp(t, dir, "b.txt", "second")
	missing := filepath.Join(dir, "missing.txt")

	fake := seeded()
	fake.failOn["upload b.txt"] = &client.APIError{StatusCode: 413, Message: "File too large"}
	d := New(fake)
	require.NoError(t, d.OpenFolder(ctx, "f1", "docs"))

	events := d.Uploads().Subscribe(ctx)
	res := d.Upload(ctx, []string{a, b, missing})

	require.Equal(t, []string{a}, res.Uploaded)
	require.Len(t, res.Failed, 2)
	require.Equal(t, "Failed to upload b.txt: File too large", res.Failed[0].Message())
	require.Equal(t, missing, res.Failed[1].Path)
	require.Error(t, res.Err())

	require.Equal(t, "hello world", fake.uploads["a.txt"])
	require.Equal(t, []string{"upload a.txt to f1", "upload b.txt to f1"}, fake.Calls())
	// One fetch for opening the folder, one after the batch.
	require.Len(t, fake.Lists(), 2)

	var types []pubsub.EventType
	var completed UploadProgress
	for _, ev := range drain(events) {
		types = append(types, ev.Type)
		if ev.Type == UploadCompletedEvent {
			completed = ev.Payload
		}
	}
	require.Equal(t, []pubsub.EventType{
		UploadStartedEvent,
		UploadProgressEvent,
		UploadCompletedEvent,
		UploadStartedEvent,
		UploadFailedEvent,
		UploadFailedEvent,
		UploadBatchDoneEvent,
	}, types)
	require.Equal(t, 100, completed.Percent)
	require.Equal(t, "a.txt uploaded successfully", completed.Message)
	require.Equal(t, 3, completed.Total)
}

func TestUpload_AllSucceed(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	fake := seeded()
	d := New(fake)

	res := d.Upload(t.Context(), []string{
		writeTemp(t, dir, "one.pdf", "1"),
		writeTemp(t, dir, "two.pdf", "2"),
	})
	require.NoError(t, res.Err())
	require.Len(t, res.Uploaded, 2)
	require.Equal(t, []string{"upload one.pdf to ", "upload two.pdf to "}, fake.Calls())
}

func TestUpload_RejectsDirectories(t *testing.T) {
	t.Parallel()

	d := New(seeded())
	res := d.Upload(t.Context(), []string{t.TempDir()})
	require.Len(t, res.Failed, 1)
	require.Contains(t, res.Failed[0].Message(), "is a directory")
}

func TestExpandPaths(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	require.NoError(t, os.MkdirAll(filepath.Join(dir, "docs", "nested"), 0o755))
	a := writeTemp(t, filepath.Join(dir, "docs"), "a.pdf", "a")
	b := writeTemp(t, filepath.Join(dir, "docs", "nested"), "b.pdf", "b")
	writeTemp(t, filepath.Join(dir, "docs"), "notes.txt", "n")
	literal := filepath.Join(dir, "missing-but-literal.txt")

	paths, err := ExpandPaths([]string{filepath.Join(dir, "docs", "**", "*.pdf"), a, literal})
	require.NoError(t, err)
	require.ElementsMatch(t, []string{a, b, literal}, paths)
	require.Len(t, paths, 3)

	_, err = ExpandPaths([]string{filepath.Join(dir, "*.zip")})
	require.ErrorContains(t, err, "no files match")

	_, err = ExpandPaths([]string{" ", ""})
	require.Error(t, err)
}

// recordingBus keeps published event types without any subscribers.
type recordingBus struct {
	mu    sync.Mutex
	types []pubsub.EventType
}

func (b *recordingBus) Publish(t pubsub.EventType, _ UploadProgress) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.types = append(b.types, t)
}

func (b *recordingBus) Subscribe(ctx context.Context) <-chan pubsub.Event[UploadProgress] {
	ch := make(chan pubsub.Event[UploadProgress])
	close(ch)
	return ch
}

func TestUpload_PublishesOnCustomBus(t *testing.T) {
	t.Parallel()

	a := writeTemp(t, t.TempDir(), "a.txt", "hi")
	bus := &recordingBus{}
	d := New(seeded(), WithUploadBroker(bus))

	res := d.Upload(t.Context(), []string{a})
	require.NoError(t, res.Err())

	bus.mu.Lock()
	defer bus.mu.Unlock()
	require.Equal(t, UploadStartedEvent, bus.types[0])
	require.Equal(t, UploadBatchDoneEvent, bus.types[len(bus.types)-1])
	require.Contains(t, bus.types, UploadCompletedEvent)
}
