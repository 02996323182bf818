package http

import (
	"time"

	"github.com/launchpad-labs/project-starter/internal/session"
)

// CookieConfig controls the browser context cookie.
type CookieConfig struct {
	Name   string
	MaxAge time.Duration
	Secure bool
}

// Handler bundles the dependencies for session HTTP endpoints.
type Handler struct {
	manager   *session.Manager
	cookie    CookieConfig
	keepAlive time.Duration
}

func New(manager *session.Manager, cookie CookieConfig) *Handler {
	return &Handler{
		manager:   manager,
		cookie:    cookie,
		keepAlive: 15 * time.Second,
	}
}

type loginReq struct {
	IDToken string `json:"id_token"`
}

type refreshReq struct {
	IDToken string `json:"id_token,omitempty"`
}

type redirectPayload struct {
	Event string `json:"event"`
	Route string `json:"route"`
}
