package http

import (
	"net/http"

	"github.com/gin-gonic/gin"

	apihttp "github.com/GoSim-25-26J-441/mermaid-gen-backend/internal/api/http"
	"github.com/GoSim-25-26J-441/mermaid-gen-backend/internal/api/http/middleware"
	"github.com/GoSim-25-26J-441/mermaid-gen-backend/internal/credentials"
)

// Handler manages the session's API key. The key itself is never returned.
type Handler struct {
	holder credentials.Holder
}

func New(holder credentials.Holder) *Handler {
	return &Handler{holder: holder}
}

func (h *Handler) status(c *gin.Context) {
	set, err := h.holder.IsSet(c.Request.Context(), middleware.SessionID(c))
	if err != nil {
		apihttp.WriteError(c, err, nil)
		return
	}
	c.JSON(http.StatusOK, gin.H{"ok": true, "is_set": set})
}

type setReq struct {
	APIKey string `json:"api_key"`
}

func (h *Handler) set(c *gin.Context) {
	var req setReq
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"ok": false, "error": "invalid body"})
		return
	}
	if err := h.holder.Set(c.Request.Context(), middleware.SessionID(c), req.APIKey); err != nil {
		apihttp.WriteError(c, err, nil)
		return
	}
	c.JSON(http.StatusOK, gin.H{"ok": true, "is_set": true})
}

func (h *Handler) clear(c *gin.Context) {
	if err := h.holder.Clear(c.Request.Context(), middleware.SessionID(c)); err != nil {
		apihttp.WriteError(c, err, nil)
		return
	}
	c.JSON(http.StatusOK, gin.H{"ok": true, "is_set": false})
}

// Register attaches /credential routes. The group must run the session middleware.
func (h *Handler) Register(rg *gin.RouterGroup) {
	rg.GET("/credential", h.status)
	rg.PUT("/credential", h.set)
	rg.DELETE("/credential", h.clear)
}
