package http

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/launchpad-labs/project-starter/internal/session"
)

// Context gives every request a browser context id and resolves its session.
// Non-browser clients may send the id as a Bearer token instead of the cookie.
func (h *Handler) Context() gin.HandlerFunc {
	return func(c *gin.Context) {
		contextID := extractToken(c)
		if contextID == "" {
			contextID, _ = c.Cookie(h.cookie.Name)
		}
		if strings.TrimSpace(contextID) == "" {
			contextID = h.manager.NewContextID()
			h.setCookie(c, contextID)
		}
		c.Set(session.CtxContextID, contextID)

		if s := h.manager.CheckExistingSession(c.Request.Context(), contextID); s != nil {
			c.Set(session.CtxSession, s)
			c.Set(session.CtxUserID, s.UserID)
		}
		c.Next()
	}
}

// RequireSession rejects requests without an authenticated session.
func RequireSession() gin.HandlerFunc {
	return func(c *gin.Context) {
		if session.FromGin(c) == nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"ok": false, "error": "user not authenticated"})
			return
		}
		c.Next()
	}
}

func (h *Handler) setCookie(c *gin.Context, contextID string) {
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(h.cookie.Name, contextID, int(h.cookie.MaxAge.Seconds()), "/", "", h.cookie.Secure, true)
}

// extractToken extracts the Bearer token from the Authorization header
func extractToken(c *gin.Context) string {
	bearerToken := c.GetHeader("Authorization")
	if len(bearerToken) > 7 && strings.HasPrefix(bearerToken, "Bearer ") {
		return strings.TrimSpace(bearerToken[7:])
	}
	return ""
}
