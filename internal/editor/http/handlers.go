package http

import (
	"net/http"

	"github.com/gin-gonic/gin"

	apihttp "github.com/GoSim-25-26J-441/mermaid-gen-backend/internal/api/http"
	"github.com/GoSim-25-26J-441/mermaid-gen-backend/internal/api/http/middleware"
	"github.com/GoSim-25-26J-441/mermaid-gen-backend/internal/editor"
)

type Handler struct {
	svc *editor.Service
}

func New(svc *editor.Service) *Handler {
	return &Handler{svc: svc}
}

func (h *Handler) get(c *gin.Context) {
	st := h.svc.Snapshot(c.Request.Context(), middleware.SessionID(c))
	c.JSON(http.StatusOK, gin.H{"ok": true, "editor": st})
}

type markupReq struct {
	Markup *string `json:"markup"`
}

func (h *Handler) updateMarkup(c *gin.Context) {
	var req markupReq
	if err := c.ShouldBindJSON(&req); err != nil || req.Markup == nil {
		c.JSON(http.StatusBadRequest, gin.H{"ok": false, "error": "invalid body"})
		return
	}
	st := h.svc.UpdateMarkup(c.Request.Context(), middleware.SessionID(c), *req.Markup)
	c.JSON(http.StatusOK, gin.H{"ok": true, "editor": st})
}

type generateReq struct {
	Prompt string `json:"prompt"`
}

func (h *Handler) generate(c *gin.Context) {
	var req generateReq
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"ok": false, "error": "invalid body"})
		return
	}

	st, err := h.svc.Generate(c.Request.Context(), middleware.SessionID(c), req.Prompt)
	if err != nil {
		apihttp.WriteError(c, err, gin.H{"editor": st})
		return
	}
	c.JSON(http.StatusOK, gin.H{"ok": true, "editor": st})
}

func (h *Handler) reset(c *gin.Context) {
	st := h.svc.Reset(c.Request.Context(), middleware.SessionID(c))
	c.JSON(http.StatusOK, gin.H{"ok": true, "editor": st})
}

func (h *Handler) applyTemplate(c *gin.Context) {
	st, err := h.svc.ApplyTemplate(c.Request.Context(), middleware.SessionID(c), c.Param("name"))
	if err != nil {
		apihttp.WriteError(c, err, nil)
		return
	}
	c.JSON(http.StatusOK, gin.H{"ok": true, "editor": st})
}
