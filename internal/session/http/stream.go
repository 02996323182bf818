package http

import (
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/launchpad-labs/project-starter/internal/logging"
	"github.com/launchpad-labs/project-starter/internal/session"
	"github.com/launchpad-labs/project-starter/internal/session/domain"
)

// events streams session transitions for the caller's browser context using
// Server-Sent Events. Every transition becomes a "redirect" event carrying the
// route the page should navigate to.
func (h *Handler) events(c *gin.Context) {
	ctx := c.Request.Context()
	contextID := session.ContextID(c)

	flusher, ok := c.Writer.(http.Flusher)
	if !ok {
		c.JSON(http.StatusInternalServerError, gin.H{"ok": false, "error": "streaming unsupported"})
		return
	}

	updates := make(chan domain.Event, 8)
	sub, err := h.manager.OnSessionChange(ctx, contextID, func(ev domain.Event) {
		select {
		case updates <- ev:
		default:
			logging.NewLogger(ctx).LogWarnf("session_events", "dropping %s event for slow subscriber", ev.Type)
		}
	})
	if err != nil {
		logging.NewLogger(ctx).LogError("session_events", err)
		c.JSON(http.StatusServiceUnavailable, gin.H{"ok": false, "error": "event stream unavailable"})
		return
	}
	defer sub.Unsubscribe()

	c.Header("Content-Type", "text/event-stream")
	c.Header("Cache-Control", "no-cache")
	c.Header("Connection", "keep-alive")
	c.Header("X-Accel-Buffering", "no") // nginx: disable buffering
	c.Status(http.StatusOK)

	view := domain.ViewFor(session.FromGin(c))
	writeEvent(c, "state", redirectPayload{Event: view.String(), Route: domain.RouteFor(view)})
	flusher.Flush()

	ticker := time.NewTicker(h.keepAlive)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			fmt.Fprint(c.Writer, ": keep-alive\n\n")
			flusher.Flush()
		case ev := <-updates:
			writeEvent(c, "redirect", redirectPayload{Event: string(ev.Type), Route: ev.Route()})
			flusher.Flush()
		}
	}
}

func writeEvent(c *gin.Context, name string, payload any) {
	data, _ := json.Marshal(payload)
	fmt.Fprintf(c.Writer, "event: %s\ndata: %s\n\n", name, data)
}
