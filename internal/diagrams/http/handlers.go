package http

import (
	"net/http"

	"github.com/gin-gonic/gin"

	apihttp "github.com/GoSim-25-26J-441/mermaid-gen-backend/internal/api/http"
	"github.com/GoSim-25-26J-441/mermaid-gen-backend/internal/api/http/middleware"
	"github.com/GoSim-25-26J-441/mermaid-gen-backend/internal/auth"
	"github.com/GoSim-25-26J-441/mermaid-gen-backend/internal/diagrams/domain"
	"github.com/GoSim-25-26J-441/mermaid-gen-backend/internal/diagrams/service"
)

// MarkupSource supplies the session's current editor markup when a save omits content.
type MarkupSource interface {
	Markup(sessionID string) string
}

type Handler struct {
	svc    *service.DiagramService
	markup MarkupSource
}

func New(svc *service.DiagramService, markup MarkupSource) *Handler {
	return &Handler{svc: svc, markup: markup}
}

type saveReq struct {
	ID           string  `json:"id"`
	Title        string  `json:"title"`
	Description  string  `json:"description"`
	Content      *string `json:"content"`
	ThumbnailURL string  `json:"thumbnail_url"`
	IsPublic     bool    `json:"is_public"`
}

func (h *Handler) save(c *gin.Context) {
	var req saveReq
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"ok": false, "error": "invalid body"})
		return
	}

	d := domain.Diagram{
		ID:           req.ID,
		Title:        req.Title,
		Description:  req.Description,
		ThumbnailURL: req.ThumbnailURL,
		IsPublic:     req.IsPublic,
	}
	if req.Content != nil {
		d.Content = *req.Content
	} else if h.markup != nil {
		d.Content = h.markup.Markup(middleware.SessionID(c))
	}

	saved, err := h.svc.Save(c.Request.Context(), auth.UserID(c), d)
	if err != nil {
		apihttp.WriteError(c, err, nil)
		return
	}

	status := http.StatusOK
	if req.ID == "" {
		status = http.StatusCreated
	}
	c.JSON(status, gin.H{"ok": true, "diagram": saved})
}

func (h *Handler) get(c *gin.Context) {
	d, err := h.svc.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		apihttp.WriteError(c, err, nil)
		return
	}
	c.JSON(http.StatusOK, gin.H{"ok": true, "diagram": d})
}

func (h *Handler) listMine(c *gin.Context) {
	items, err := h.svc.ListMine(c.Request.Context(), auth.UserID(c))
	if err != nil {
		apihttp.WriteError(c, err, nil)
		return
	}
	c.JSON(http.StatusOK, gin.H{"ok": true, "diagrams": items})
}

func (h *Handler) listPublic(c *gin.Context) {
	items, err := h.svc.ListPublic(c.Request.Context())
	if err != nil {
		apihttp.WriteError(c, err, nil)
		return
	}
	c.JSON(http.StatusOK, gin.H{"ok": true, "diagrams": items})
}

func (h *Handler) delete(c *gin.Context) {
	if err := h.svc.Delete(c.Request.Context(), c.Param("id"), auth.UserID(c)); err != nil {
		apihttp.WriteError(c, err, nil)
		return
	}
	c.JSON(http.StatusOK, gin.H{"ok": true})
}
