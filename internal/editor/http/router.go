package http

import "github.com/gin-gonic/gin"

// Register attaches editor routes. The group must run the session middleware.
func (h *Handler) Register(rg *gin.RouterGroup) {
	rg.GET("", h.get)
	rg.PUT("/markup", h.updateMarkup)
	rg.POST("/generate", h.generate)
	rg.POST("/reset", h.reset)
	rg.POST("/template/:name", h.applyTemplate)
}
