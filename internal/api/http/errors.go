package http

import (
	"context"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/GoSim-25-26J-441/mermaid-gen-backend/internal/catalog"
	"github.com/GoSim-25-26J-441/mermaid-gen-backend/internal/credentials"
	"github.com/GoSim-25-26J-441/mermaid-gen-backend/internal/diagrams/domain"
	"github.com/GoSim-25-26J-441/mermaid-gen-backend/internal/editor"
	"github.com/GoSim-25-26J-441/mermaid-gen-backend/internal/generation"
	"github.com/GoSim-25-26J-441/mermaid-gen-backend/internal/logging"
)

// StatusClientClosedRequest is the nginx convention for a caller that went away.
const StatusClientClosedRequest = 499

// StatusFor maps a domain error to its HTTP status.
func StatusFor(err error) int {
	switch {
	case errors.Is(err, generation.ErrMissingCredential):
		return http.StatusPreconditionFailed
	case errors.Is(err, generation.ErrEmptyPrompt),
		errors.Is(err, domain.ErrInvalidDiagram),
		errors.Is(err, credentials.ErrBlankCredential):
		return http.StatusBadRequest
	case errors.Is(err, generation.ErrUpstream), errors.Is(err, generation.ErrEmptyGeneration):
		return http.StatusBadGateway
	case errors.Is(err, domain.ErrUnauthenticated):
		return http.StatusUnauthorized
	case errors.Is(err, domain.ErrNotFound), errors.Is(err, catalog.ErrUnknownTemplate):
		return http.StatusNotFound
	case errors.Is(err, editor.ErrGenerationInProgress):
		return http.StatusConflict
	case errors.Is(err, editor.ErrRateLimited):
		return http.StatusTooManyRequests
	case errors.Is(err, context.Canceled):
		return StatusClientClosedRequest
	case errors.Is(err, context.DeadlineExceeded):
		return http.StatusGatewayTimeout
	default:
		return http.StatusInternalServerError
	}
}

// Message is the user-facing text for err. Backend details stay in the logs.
func Message(err error) string {
	var perr *domain.PersistenceError
	if errors.As(err, &perr) {
		return "failed to " + perr.Op + " diagram, please try again"
	}
	if StatusFor(err) == http.StatusInternalServerError {
		return "internal error"
	}
	return editor.ErrorMessage(err)
}

// WriteError renders err as {"ok": false, "error": ...} merged with extra.
func WriteError(c *gin.Context, err error, extra gin.H) {
	status := StatusFor(err)
	if status == http.StatusInternalServerError {
		logging.NewLogger(c.Request.Context()).LogError(c.FullPath(), err)
	}

	body := gin.H{"ok": false, "error": Message(err)}
	for k, v := range extra {
		body[k] = v
	}
	c.JSON(status, body)
}
