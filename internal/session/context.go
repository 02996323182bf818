package session

import (
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/launchpad-labs/project-starter/internal/session/domain"
)

const (
	CtxContextID = "session_context_id"
	CtxSession   = "session"
	CtxUserID    = "firebase_uid"
)

// ContextID extracts the browser context id set by the session middleware.
func ContextID(c *gin.Context) string {
	return strings.TrimSpace(c.GetString(CtxContextID))
}

// FromGin returns the authenticated session, or nil.
func FromGin(c *gin.Context) *domain.Session {
	v, ok := c.Get(CtxSession)
	if !ok {
		return nil
	}
	s, _ := v.(*domain.Session)
	return s
}
