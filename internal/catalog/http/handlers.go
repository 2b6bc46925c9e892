package http

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/GoSim-25-26J-441/mermaid-gen-backend/internal/catalog"
)

// Handler serves the read-only catalog.
type Handler struct {
	cat *catalog.Catalog
}

func New(cat *catalog.Catalog) *Handler {
	return &Handler{cat: cat}
}

func (h *Handler) templates(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"ok":              true,
		"default_diagram": h.cat.DefaultDiagram(),
		"templates":       h.cat.Templates(),
	})
}

func (h *Handler) template(c *gin.Context) {
	t, err := h.cat.Template(c.Param("name"))
	if errors.Is(err, catalog.ErrUnknownTemplate) {
		c.JSON(http.StatusNotFound, gin.H{"ok": false, "error": "template not found"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"ok": true, "template": t})
}

func (h *Handler) prompts(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"ok": true, "prompts": h.cat.Prompts()})
}

func (h *Handler) categories(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"ok": true, "categories": h.cat.Categories()})
}

func (h *Handler) pricing(c *gin.Context) {
	p := h.cat.Pricing()
	c.JSON(http.StatusOK, gin.H{"ok": true, "tiers": p.Tiers, "faq": p.FAQ})
}
