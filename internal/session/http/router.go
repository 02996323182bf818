package http

import "github.com/gin-gonic/gin"

// Register attaches session routes to the given router group. The group must
// already run h.Context().
func (h *Handler) Register(rg *gin.RouterGroup) {
	rg.GET("", h.current)
	rg.POST("/login", h.login)
	rg.POST("/refresh", h.refresh)
	rg.POST("/logout", h.logout)
	rg.GET("/events", h.events)
}
