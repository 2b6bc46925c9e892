package http

import "github.com/gin-gonic/gin"

// Register attaches diagram routes. Identity comes from the auth middleware on the group.
func (h *Handler) Register(rg *gin.RouterGroup) {
	rg.POST("", h.save)
	rg.GET("/mine", h.listMine)
	rg.GET("/public", h.listPublic)
	rg.GET("/:id", h.get)
	rg.DELETE("/:id", h.delete)
}
