// Package admin implements the hidden studio unlock.
package admin

import (
	"errors"
	"strings"
	"sync"
)

// UnlockClicks is how many secret clicks reveal the login prompt.
const UnlockClicks = 5

// ErrIncorrectPassword is returned for a failed login.
var ErrIncorrectPassword = errors.New("incorrect password")

// Authenticator checks the studio password and mints an admin token.
type Authenticator interface {
	Authenticate(password string) (string, error)
}

// Status is what the front end needs to render the gate.
type Status struct {
	Authenticated bool `json:"authenticated"`
	ShowLogin     bool `json:"showLogin"`
	Clicks        int  `json:"clicks"`
}

// Gate is the per-session unlock flow. It only controls what the listener
// sees; admin writes are authorised by the token.
type Gate struct {
	mu            sync.Mutex
	clicks        int
	showLogin     bool
	authenticated bool
}

// SecretClick counts a click on the hidden trigger and reports whether the
// login prompt is now visible.
func (g *Gate) SecretClick() bool {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.clicks++
	if g.clicks >= UnlockClicks {
		g.showLogin = true
		g.clicks = 0
	}
	return g.showLogin
}

// Login checks the trimmed password and returns an admin token on success.
// Any attempt resets the click counter.
func (g *Gate) Login(auth Authenticator, password string) (string, error) {
	token, err := auth.Authenticate(strings.TrimSpace(password))

	g.mu.Lock()
	defer g.mu.Unlock()
	g.clicks = 0
	if err != nil {
		return "", err
	}
	g.authenticated = true
	g.showLogin = false
	return token, nil
}

// DismissLogin hides the prompt without logging in.
func (g *Gate) DismissLogin() {
	g.mu.Lock()
	g.showLogin = false
	g.mu.Unlock()
}

// Logout drops the session's admin flag.
func (g *Gate) Logout() {
	g.mu.Lock()
	g.authenticated = false
	g.mu.Unlock()
}

// Status returns a snapshot.
func (g *Gate) Status() Status {
	g.mu.Lock()
	defer g.mu.Unlock()
	return Status{Authenticated: g.authenticated, ShowLogin: g.showLogin, Clicks: g.clicks}
}
