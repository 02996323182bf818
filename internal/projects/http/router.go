package http

import "github.com/gin-gonic/gin"

// Register attaches project request routes to the given router group.
func (h *Handler) Register(rg *gin.RouterGroup) {
	rg.GET("/options", h.options)
	rg.POST("/requests", h.submit)
	rg.GET("/requests", h.state)
}
