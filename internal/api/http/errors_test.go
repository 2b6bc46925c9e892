package http

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/GoSim-25-26J-441/mermaid-gen-backend/internal/catalog"
	"github.com/GoSim-25-26J-441/mermaid-gen-backend/internal/credentials"
	"github.com/GoSim-25-26J-441/mermaid-gen-backend/internal/diagrams/domain"
	"github.com/GoSim-25-26J-441/mermaid-gen-backend/internal/editor"
	"github.com/GoSim-25-26J-441/mermaid-gen-backend/internal/generation"
)

func TestStatusFor(t *testing.T) {
	tests := []struct {
		err  error
		want int
	}{
		{generation.ErrMissingCredential, http.StatusPreconditionFailed},
		{generation.ErrEmptyPrompt, http.StatusBadRequest},
		{&generation.UpstreamError{Status: 401, Message: "bad key"}, http.StatusBadGateway},
		{generation.ErrEmptyGeneration, http.StatusBadGateway},
		{domain.ErrUnauthenticated, http.StatusUnauthorized},
		{domain.ErrNotFound, http.StatusNotFound},
		{fmt.Errorf("%w: content is required", domain.ErrInvalidDiagram), http.StatusBadRequest},
		{editor.ErrGenerationInProgress, http.StatusConflict},
		{editor.ErrRateLimited, http.StatusTooManyRequests},
		{&domain.PersistenceError{Op: "insert", Err: errors.New("boom")}, http.StatusInternalServerError},
		{credentials.ErrBlankCredential, http.StatusBadRequest},
		{fmt.Errorf("%w: mindmap", catalog.ErrUnknownTemplate), http.StatusNotFound},
		{context.Canceled, StatusClientClosedRequest},
		{fmt.Errorf("complete: %w", context.DeadlineExceeded), http.StatusGatewayTimeout},
		{errors.New("anything else"), http.StatusInternalServerError},
	}
	for _, tt := range tests {
		t.Run(tt.err.Error(), func(t *testing.T) {
			assert.Equal(t, tt.want, StatusFor(tt.err))
		})
	}
}

func TestWriteError(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.GET("/upstream", func(c *gin.Context) {
		WriteError(c, &generation.UpstreamError{Status: 401, Message: "Incorrect API key provided"}, gin.H{"extra": 1})
	})
	r.GET("/persist", func(c *gin.Context) {
		WriteError(c, &domain.PersistenceError{Op: "delete", Err: errors.New("pq: password authentication failed")}, nil)
	})

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/upstream", nil))
	assert.Equal(t, http.StatusBadGateway, w.Code)
	var body map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, false, body["ok"])
	assert.Equal(t, "Incorrect API key provided", body["error"])
	assert.Equal(t, float64(1), body["extra"])

	w = httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/persist", nil))
	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.NotContains(t, w.Body.String(), "password")
}

func TestMessage_AbandonedGeneration(t *testing.T) {
	assert.Equal(t, "The generation took too long. Please try again.", Message(context.DeadlineExceeded))
	assert.Equal(t, "The generation was cancelled.", Message(context.Canceled))
}
