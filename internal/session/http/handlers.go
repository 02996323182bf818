package http

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	authdomain "github.com/launchpad-labs/project-starter/internal/auth/domain"
	"github.com/launchpad-labs/project-starter/internal/session"
	"github.com/launchpad-labs/project-starter/internal/session/domain"
)

func (h *Handler) login(c *gin.Context) {
	var req loginReq
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"ok": false, "error": "invalid body"})
		return
	}

	s, err := h.manager.SignIn(c.Request.Context(), session.ContextID(c), req.IDToken)
	if err != nil {
		if errors.Is(err, authdomain.ErrInvalidToken) || errors.Is(err, authdomain.ErrMissingToken) {
			c.JSON(http.StatusUnauthorized, gin.H{"ok": false, "error": "invalid token"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"ok": false, "error": "failed to sign in"})
		return
	}

	h.setCookie(c, s.ID)
	c.JSON(http.StatusOK, gin.H{
		"ok":       true,
		"session":  s.Public(),
		"redirect": domain.RouteFor(domain.ViewFor(s)),
	})
}

func (h *Handler) refresh(c *gin.Context) {
	var req refreshReq
	if c.Request.ContentLength > 0 {
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"ok": false, "error": "invalid body"})
			return
		}
	}

	s, err := h.manager.Refresh(c.Request.Context(), session.ContextID(c), req.IDToken)
	if err != nil {
		if errors.Is(err, domain.ErrSessionNotFound) {
			c.JSON(http.StatusUnauthorized, gin.H{"ok": false, "error": "no session", "redirect": domain.RouteLogin})
			return
		}
		c.JSON(http.StatusUnauthorized, gin.H{"ok": false, "error": "refresh rejected"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"ok": true, "session": s.Public(), "redirect": domain.RouteHome})
}

func (h *Handler) logout(c *gin.Context) {
	h.manager.SignOut(c.Request.Context(), session.ContextID(c))
	c.JSON(http.StatusOK, gin.H{"ok": true, "redirect": domain.RouteLogin})
}

func (h *Handler) current(c *gin.Context) {
	s := session.FromGin(c)
	view := domain.ViewFor(s)
	c.JSON(http.StatusOK, gin.H{
		"ok":            true,
		"authenticated": view == domain.LoggedIn,
		"session":       s.Public(),
		"view":          view.String(),
		"route":         domain.RouteFor(view),
	})
}
