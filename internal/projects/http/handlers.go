package http

import (
	"context"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/launchpad-labs/project-starter/internal/projects/domain"
	"github.com/launchpad-labs/project-starter/internal/session"
)

func (h *Handler) options(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"ok": true, "options": optionsResp{
		ProjectTypes: domain.ProjectTypes,
		Languages:    domain.Languages,
	}})
}

// submit runs one project request and answers with the resulting form state.
// Generation failures are not reported; the previous result is returned.
func (h *Handler) submit(c *gin.Context) {
	var req submitReq
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"ok": false, "error": "invalid body"})
		return
	}

	form := h.forms.Get(session.ContextID(c))
	form.SetProjectName(req.ProjectName)
	form.SetProjectType(req.ProjectType)
	form.SetLanguage(req.Language)

	// Closing the page does not abort the request.
	ctx := context.WithoutCancel(c.Request.Context())
	if err := form.Submit(ctx); err != nil {
		if errors.Is(err, domain.ErrSubmissionInFlight) {
			c.JSON(http.StatusConflict, gin.H{"ok": false, "error": err.Error(), "form": form.State()})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"ok": false, "error": "failed to submit"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"ok": true, "form": form.State()})
}

func (h *Handler) state(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"ok": true, "form": h.forms.Get(session.ContextID(c)).State()})
}
