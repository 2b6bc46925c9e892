package http

import "github.com/gin-gonic/gin"

// Register attaches catalog routes under /catalog and the pricing page data under /pricing.
func (h *Handler) Register(rg *gin.RouterGroup) {
	cg := rg.Group("/catalog")
	cg.GET("/templates", h.templates)
	cg.GET("/templates/:name", h.template)
	cg.GET("/prompts", h.prompts)
	cg.GET("/categories", h.categories)

	rg.GET("/pricing", h.pricing)
}
