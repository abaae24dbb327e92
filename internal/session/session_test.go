package session

import (
	"os"
	"path/filepath"
	"runtime"
	"testing"
	"time"

	"github.com/driveterm/drive/internal/proto"
	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/require"
)

func signed(t *testing.T, exp time.Time) string {
	t.Helper()
	tok := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"sub": "u1",
		"exp": exp.Unix(),
	})
	s, err := tok.SignedString([]byte("test-secret"))
	require.NoError(t, err)
	return s
}

var alice = proto.User{ID: "u1", FirstName: "Alice", LastName: "Smith", Email: "alice@example.com"}

func TestSession_LoginLogoutInMemory(t *testing.T) {
	t.Parallel()

	s := New(nil)
	require.False(t, s.Authenticated())
	require.ErrorIs(t, s.Restore(), ErrNoSession)

	require.NoError(t, s.Login(alice, "opaque-token"))
	require.True(t, s.Authenticated())
	require.Equal(t, alice, s.User())
	require.Equal(t, "opaque-token", s.Token())

	require.NoError(t, s.Logout())
	require.False(t, s.Authenticated())
	require.True(t, s.User().IsZero())
}

func TestSession_PersistAndRestore(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "data", "session.json")
	token := signed(t, time.Now().Add(time.Hour))

	s := New(NewStore(path))
	require.NoError(t, s.Login(alice, token))

	if runtime.GOOS != "windows" {
		fi, err := os.Stat(path)
		require.NoError(t, err)
		require.Equal(t, os.FileMode(0o600), fi.Mode().Perm())
	}

	restored := New(NewStore(path))
	require.NoError(t, restored.Restore())
	require.Equal(t, alice, restored.User())
	require.Equal(t, token, restored.Token())

	require.NoError(t, restored.Logout())
	require.NoFileExists(t, path)
	require.NoError(t, restored.Logout())
}

func TestSession_RestoreExpired(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "session.json")
	store := NewStore(path)
	require.NoError(t, store.Save(Saved{User: alice, Token: signed(t, time.Now().Add(-time.Minute))}))

	s := New(store)
	require.ErrorIs(t, s.Restore(), ErrExpired)
	require.False(t, s.Authenticated())
	require.NoFileExists(t, path)
}

func TestStore_Corrupt(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "session.json")
	require.NoError(t, os.WriteFile(path, []byte("{not json"), 0o600))

	_, err := NewStore(path).Load()
	require.Error(t, err)
	require.NotErrorIs(t, err, ErrNoSession)
}

func TestExpiresAt(t *testing.T) {
	t.Parallel()

	exp := time.Now().Add(2 * time.Hour).Truncate(time.Second)
	got, ok := ExpiresAt(signed(t, exp))
	require.True(t, ok)
	require.True(t, exp.Equal(got))

	_, ok = ExpiresAt("opaque-token")
	require.False(t, ok)
	_, ok = ExpiresAt("")
	require.False(t, ok)

	require.False(t, Expired("opaque-token", time.Now()))
	require.True(t, Expired(signed(t, time.Now().Add(-time.Second)), time.Now()))
}
