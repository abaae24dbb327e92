// Package session holds the logged in user and the token issued by the
// backend.
package session

import (
	"errors"
	"sync"
	"time"

	"github.com/driveterm/drive/internal/proto"
	"github.com/golang-jwt/jwt/v5"
)

// ErrNoSession is returned when no user is logged in.
var ErrNoSession = errors.New("not logged in, run `drive login` first")

// ErrExpired is returned when the saved token is past its expiry.
var ErrExpired = errors.New("session expired, please log in again")

// Session is the in-memory auth state shared by the UI and the commands.
type Session struct {
	mu    sync.RWMutex
	user  proto.User
	token string
	store *Store
}

// New returns an empty session. store may be nil, in which case the
// session lives in memory only.
func New(store *Store) *Session {
	return &Session{store: store}
}

// Restore loads the persisted session, if any. Expired tokens are removed
// from disk and reported as [ErrExpired].
func (s *Session) Restore() error {
	if s.store == nil {
		return ErrNoSession
	}
	saved, err := s.store.Load()
	if err != nil {
		return err
	}
	if Expired(saved.Token, time.Now()) {
		_ = s.store.Clear()
		return ErrExpired
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.user = saved.User
	s.token = saved.Token
	return nil
}

// Login records the user and token returned by a successful login.
func (s *Session) Login(user proto.User, token string) error {
	s.mu.Lock()
	s.user = user
	s.token = token
	s.mu.Unlock()

	if s.store == nil {
		return nil
	}
	return s.store.Save(Saved{User: user, Token: token})
}

// Logout clears the session in memory and on disk.
func (s *Session) Logout() error {
	s.mu.Lock()
	s.user = proto.User{}
	s.token = ""
	s.mu.Unlock()

	if s.store == nil {
		return nil
	}
	return s.store.Clear()
}

func (s *Session) User() proto.User {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.user
}

func (s *Session) Token() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.token
}

// Authenticated reports whether a token is held.
func (s *Session) Authenticated() bool {
	return s.Token() != ""
}

// ExpiresAt returns the token expiry when the token is a JWT carrying an
// exp claim.
func (s *Session) ExpiresAt() (time.Time, bool) {
	return ExpiresAt(s.Token())
}

// ExpiresAt reads the exp claim of a JWT without verifying its signature.
// The backend verifies the token; the client only uses the expiry to avoid
// sending a token it knows is stale.
func ExpiresAt(token string) (time.Time, bool) {
	if token == "" {
		return time.Time{}, false
	}
	claims := jwt.MapClaims{}
	if _, _, err := jwt.NewParser().ParseUnverified(token, claims); err != nil {
		return time.Time{}, false
	}
	exp, err := claims.GetExpirationTime()
	if err != nil || exp == nil {
		return time.Time{}, false
	}
	return exp.Time, true
}

// Expired reports whether token carries an exp claim before now. Opaque
// tokens never expire client side.
func Expired(token string, now time.Time) bool {
	exp, ok := ExpiresAt(token)
	return ok && !now.Before(exp)
}
