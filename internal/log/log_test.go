package log

import (
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestMaskToken(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		token string
		want  string
	}{
		{"empty", "", "***EMPTY***"},
		{"tiny", "abcd", "****"},
		{"short", "abcdefgh", "ab****gh"},
		{"bearer prefix", "Bearer abcdefgh", "ab****gh"},
		{"jwt", "eyJhbGciOiJIUzI1NiJ9.payload.sig", "eyJhb" + strings.Repeat("*", 22) + "d.sig"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			require.Equal(t, tt.want, MaskToken(tt.token))
		})
	}
}

func TestRecoverPanic(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	cleaned := false

	func() {
		defer RecoverPanic(dir, "test", func() { cleaned = true })
		panic("boom")
	}()

	require.True(t, cleaned)
	matches, err := filepath.Glob(filepath.Join(dir, "drive-panic-test-*.log"))
	require.NoError(t, err)
	require.Len(t, matches, 1)

	data, err := os.ReadFile(matches[0])
	require.NoError(t, err)
	require.Contains(t, string(data), "Panic in test: boom")
	require.Contains(t, string(data), "Stack Trace:")
}

func TestRecoverPanic_NoPanic(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	func() {
		defer RecoverPanic(dir, "test", func() { t.Fatal("cleanup must not run") })
	}()

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	require.Empty(t, entries)
}

func TestHTTPRoundTripLogger(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "Bearer secret-token-value", r.Header.Get("Authorization"))
		w.WriteHeader(http.StatusTeapot)
	}))
	defer srv.Close()

	c := NewHTTPClient(time.Second)
	req, err := http.NewRequest(http.MethodGet, srv.URL, nil)
	require.NoError(t, err)
	req.Header.Set("Authorization", "Bearer secret-token-value")

	rsp, err := c.Do(req)
	require.NoError(t, err)
	defer rsp.Body.Close()
	require.Equal(t, http.StatusTeapot, rsp.StatusCode)
}
