// Package auth provides the session gate for mutating routes.
package auth

import (
	"errors"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/robfig/cron/v3"
)

// ErrInvalidPassword is returned by Login for a wrong credential.
var ErrInvalidPassword = errors.New("invalid password")

// Authenticator is the capability the HTTP layer depends on: a current
// identity or none. Concrete strategies (static-secret session, external
// identity provider) are injected behind this interface.
type Authenticator interface {
	// Login checks the credential and returns a fresh session token.
	Login(password string) (string, error)
	// Verify reports whether token names a live session.
	Verify(token string) bool
	// Logout drops the session. Unknown tokens are ignored.
	Logout(token string)
}

// SessionAuthenticator implements Authenticator with a fixed admin secret
// and an in-memory session table. Sessions expire after a fixed TTL; an
// hourly job sweeps expired entries.
type SessionAuthenticator struct {
	secret string
	ttl    time.Duration

	mu       sync.Mutex
	sessions map[string]time.Time // token -> expiry

	cron *cron.Cron
}

// NewSessionAuthenticator creates the authenticator and starts the expiry
// sweeper. Call Stop when done.
func NewSessionAuthenticator(secret string, ttl time.Duration) *SessionAuthenticator {
	a := &SessionAuthenticator{
		secret:   secret,
		ttl:      ttl,
		sessions: make(map[string]time.Time),
		cron:     cron.New(),
	}
	a.cron.AddFunc("@hourly", a.sweep)
	a.cron.Start()
	return a
}

// Stop halts the expiry sweeper.
func (a *SessionAuthenticator) Stop() {
	a.cron.Stop()
}

func (a *SessionAuthenticator) Login(password string) (string, error) {
	if password != a.secret {
		return "", ErrInvalidPassword
	}

	token := uuid.NewString()
	a.mu.Lock()
	a.sessions[token] = time.Now().Add(a.ttl)
	a.mu.Unlock()
	return token, nil
}

func (a *SessionAuthenticator) Verify(token string) bool {
	if token == "" {
		return false
	}

	a.mu.Lock()
	defer a.mu.Unlock()

	expiry, ok := a.sessions[token]
	if !ok {
		return false
	}
	if time.Now().After(expiry) {
		delete(a.sessions, token)
		return false
	}
	return true
}

func (a *SessionAuthenticator) Logout(token string) {
	a.mu.Lock()
	delete(a.sessions, token)
	a.mu.Unlock()
}

// sweep removes expired sessions so the table doesn't grow unbounded.
func (a *SessionAuthenticator) sweep() {
	now := time.Now()
	a.mu.Lock()
	for token, expiry := range a.sessions {
		if now.After(expiry) {
			delete(a.sessions, token)
		}
	}
	a.mu.Unlock()
}
