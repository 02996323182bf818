package domain

import (
	"errors"
	"time"
)

var ErrSessionNotFound = errors.New("session not found")

// Session is the authenticated identity bound to one browser context.
type Session struct {
	ID              string    `json:"id"`
	UserID          string    `json:"user_id"`
	Email           string    `json:"email,omitempty"`
	IsAuthenticated bool      `json:"is_authenticated"`
	ProviderToken   string    `json:"provider_token,omitempty"`
	CreatedAt       time.Time `json:"created_at"`
	ExpiresAt       time.Time `json:"expires_at"`
}

func (s *Session) Expired(now time.Time) bool {
	return !s.ExpiresAt.IsZero() && !now.Before(s.ExpiresAt)
}

// Public returns a copy without the provider token.
func (s *Session) Public() *Session {
	if s == nil {
		return nil
	}
	cp := *s
	cp.ProviderToken = ""
	return &cp
}

// View is one of the two mutually exclusive screens.
type View int

const (
	LoggedOut View = iota
	LoggedIn
)

func (v View) String() string {
	if v == LoggedIn {
		return "logged_in"
	}
	return "logged_out"
}

const (
	RouteLogin = "/"
	RouteHome  = "/home"
)

// ViewFor derives the view from session presence alone.
func ViewFor(s *Session) View {
	if s != nil && s.IsAuthenticated && s.UserID != "" {
		return LoggedIn
	}
	return LoggedOut
}

// RouteFor maps a view to the path the browser should show.
func RouteFor(v View) string {
	if v == LoggedIn {
		return RouteHome
	}
	return RouteLogin
}

type EventType string

const (
	EventSignedIn       EventType = "signed_in"
	EventSignedOut      EventType = "signed_out"
	EventTokenRefreshed EventType = "token_refreshed"
)

// Event announces a session transition for one browser context.
// Session is nil for EventSignedOut.
type Event struct {
	Type      EventType `json:"type"`
	ContextID string    `json:"context_id"`
	Session   *Session  `json:"session,omitempty"`
	At        time.Time `json:"at"`
}

// Route is where a browser receiving this event should navigate.
func (e Event) Route() string {
	return RouteFor(ViewFor(e.Session))
}
