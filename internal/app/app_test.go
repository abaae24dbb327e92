package app

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"os"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea/v2"
	"github.com/driveterm/drive/internal/config"
	"github.com/driveterm/drive/internal/drive"
	"github.com/driveterm/drive/internal/proto"
	"github.com/driveterm/drive/internal/pubsub"
	"github.com/driveterm/drive/internal/session"
	"github.com/stretchr/testify/require"
)

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func testConfig(t *testing.T, url string) *config.Config {
	t.Helper()
	retries := 0
	return &config.Config{
		API: config.API{URL: url + "/api", Retries: &retries},
		Options: &config.Options{
			DataDirectory: t.TempDir(),
		},
	}
}

func testApp(t *testing.T, handler http.Handler) *App {
	t.Helper()
	ts := httptest.NewServer(handler)
	t.Cleanup(ts.Close)
	app, err := New(context.Background(), testConfig(t, ts.URL))
	require.NoError(t, err)
	t.Cleanup(app.Shutdown)
	return app
}

func TestLogin_StartsAndPersistsSession(t *testing.T) {
	t.Parallel()

	var gotAuth atomic.Value
	app := testApp(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/api/auth/login":
			writeJSON(w, http.StatusOK, proto.LoginResponse{
				User:  proto.User{ID: "u1", FirstName: "Ada", LastName: "Lovelace", Email: "ada@example.com"},
				Token: "opaque-token",
			})
		case "/api/files":
			gotAuth.Store(r.Header.Get("Authorization"))
			writeJSON(w, http.StatusOK, proto.ListFilesResponse{})
		default:
			http.NotFound(w, r)
		}
	}))

	user, err := app.Login(context.Background(), "  ada@example.com ", "secret")
	require.NoError(t, err)
	require.Equal(t, "Ada Lovelace", user.FullName())
	require.True(t, app.Session.Authenticated())
	require.FileExists(t, app.Config().SessionFile())

	require.NoError(t, app.Drive.Refresh(context.Background()))
	require.Equal(t, "Bearer opaque-token", gotAuth.Load())

	require.NoError(t, app.Logout())
	require.False(t, app.Session.Authenticated())
	require.Empty(t, app.Client.Token())
	_, err = os.Stat(app.Config().SessionFile())
	require.True(t, os.IsNotExist(err))
}

func TestLogin_Failure(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		status  int
		body    any
		message string
	}{
		{"server message", http.StatusUnauthorized, proto.Error{Error: "Invalid credentials"}, "Invalid credentials"},
		{"no message", http.StatusInternalServerError, map[string]string{}, "Login failed"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			app := testApp(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				writeJSON(w, tt.status, tt.body)
			}))

			_, err := app.Login(context.Background(), "ada@example.com", "wrong")
			var authErr *AuthError
			require.True(t, errors.As(err, &authErr))
			require.Equal(t, tt.message, authErr.UserMessage())
			require.False(t, app.Session.Authenticated())
		})
	}
}

func TestRegister_ValidatesBeforeSending(t *testing.T) {
	t.Parallel()

	var calls atomic.Int32
	app := testApp(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		writeJSON(w, http.StatusCreated, proto.MessageResponse{Message: "ok"})
	}))

	req := proto.RegisterRequest{
		Username: "ada@example.com", FirstName: "Ada", LastName: "Lovelace",
		Password: "secret1", ConfirmPassword: "secret2",
	}
	_, err := app.Register(context.Background(), req)
	require.ErrorIs(t, err, proto.ErrPasswordMismatch)

	req.ConfirmPassword = req.Password
	msg, err := app.Register(context.Background(), req)
	require.NoError(t, err)
	require.Equal(t, MsgAccountCreated, msg)
	require.EqualValues(t, 1, calls.Load())
}

func TestAuthFlows(t *testing.T) {
	t.Parallel()

	app := testApp(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/api/auth/verify-email", "/api/auth/forgot-password", "/api/auth/reset-password":
			writeJSON(w, http.StatusOK, proto.MessageResponse{Message: "ok"})
		default:
			http.NotFound(w, r)
		}
	}))
	ctx := context.Background()

	msg, err := app.VerifyEmail(ctx, "tok", "ada@example.com")
	require.NoError(t, err)
	require.Equal(t, MsgEmailVerified, msg)

	_, err = app.VerifyEmail(ctx, "", "ada@example.com")
	require.ErrorIs(t, err, proto.ErrMissingFields)

	msg, err = app.ForgotPassword(ctx, "ada@example.com")
	require.NoError(t, err)
	require.Equal(t, MsgResetLinkSent, msg)

	msg, err = app.ResetPassword(ctx, proto.ResetPasswordRequest{
		Token: "tok", Email: "ada@example.com", Password: "secret", ConfirmPassword: "secret",
	})
	require.NoError(t, err)
	require.Equal(t, MsgPasswordReset, msg)

	_, err = app.ResetPassword(ctx, proto.ResetPasswordRequest{
		Token: "tok", Email: "ada@example.com", Password: "abc", ConfirmPassword: "abc",
	})
	require.ErrorIs(t, err, proto.ErrPasswordTooShort)
}

func TestNew_RestoresSavedSession(t *testing.T) {
	t.Parallel()

	cfg := testConfig(t, "http://127.0.0.1:1")
	store := session.NewStore(cfg.SessionFile())
	require.NoError(t, store.Save(session.Saved{
		User:  proto.User{ID: "u1", Email: "ada@example.com"},
		Token: "saved-token",
	}))

	app, err := New(context.Background(), cfg)
	require.NoError(t, err)
	defer app.Shutdown()

	require.True(t, app.Session.Authenticated())
	require.Equal(t, "saved-token", app.Client.Token())
}

func TestNew_SessionPersistenceDisabled(t *testing.T) {
	t.Parallel()

	cfg := testConfig(t, "http://127.0.0.1:1")
	cfg.Options.DisableSessionPersistence = true
	require.NoError(t, session.NewStore(cfg.SessionFile()).Save(session.Saved{Token: "saved-token"}))

	app, err := New(context.Background(), cfg)
	require.NoError(t, err)
	defer app.Shutdown()

	require.False(t, app.Session.Authenticated())
}

type recordingSender struct {
	mu   sync.Mutex
	msgs []tea.Msg
}

func (r *recordingSender) Send(msg tea.Msg) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.msgs = append(r.msgs, msg)
}

func (r *recordingSender) len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.msgs)
}

func TestSubscribe_ForwardsUploadEvents(t *testing.T) {
	t.Parallel()

	app := testApp(t, http.NotFoundHandler())
	sender := &recordingSender{}
	done := make(chan struct{})
	go func() {
		defer close(done)
		app.Subscribe(sender)
	}()

	require.Eventually(t, func() bool {
		return app.uploads.GetSubscriberCount() > 0
	}, time.Second, 5*time.Millisecond)

	app.uploads.Publish(drive.UploadStartedEvent, drive.UploadProgress{Name: "a.txt", Total: 1})
	require.Eventually(t, func() bool { return sender.len() == 1 }, time.Second, 5*time.Millisecond)

	sender.mu.Lock()
	ev, ok := sender.msgs[0].(pubsub.Event[drive.UploadProgress])
	sender.mu.Unlock()
	require.True(t, ok)
	require.Equal(t, "a.txt", ev.Payload.Name)

	app.Shutdown()
	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("Subscribe did not return after shutdown")
	}
}

func TestDownload_FolderLongerThanRequestTimeout(t *testing.T) {
	t.Parallel()

	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/zip")
		w.WriteHeader(http.StatusOK)
		for range 15 {
			_, _ = w.Write([]byte("PK"))
			w.(http.Flusher).Flush()
			time.Sleep(100 * time.Millisecond)
		}
	}))
	t.Cleanup(ts.Close)
	cfg := testConfig(t, ts.URL)
	cfg.API.Timeout = 1
	app, err := New(context.Background(), cfg)
	require.NoError(t, err)
	t.Cleanup(app.Shutdown)

	entry := proto.FileEntry{ID: "d1", FileName: "photos", FileType: proto.FileTypeFolder}
	path, err := app.Drive.Download(t.Context(), entry, t.TempDir())
	require.NoError(t, err)
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	require.Len(t, data, 30)
}
