package http

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/GoSim-25-26J-441/mermaid-gen-backend/internal/api/http/middleware"
	"github.com/GoSim-25-26J-441/mermaid-gen-backend/internal/auth"
	"github.com/GoSim-25-26J-441/mermaid-gen-backend/internal/diagrams/repository"
	"github.com/GoSim-25-26J-441/mermaid-gen-backend/internal/diagrams/service"
)

type staticMarkup string

func (m staticMarkup) Markup(string) string { return string(m) }

func setupRouter() *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	g := r.Group("/api/v1/diagrams")
	g.Use(middleware.SessionMiddleware(false), auth.HeaderIdentity(nil))
	svc := service.NewDiagramService(repository.NewMemoryStore())
	New(svc, staticMarkup("graph TD\nFrom-->Editor")).Register(g)
	return r
}

func call(t *testing.T, r *gin.Engine, method, path, user string, body any) (int, map[string]any) {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if user != "" {
		req.Header.Set("X-User-Id", user)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	var out map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &out))
	return w.Code, out
}

func TestDiagramRoutes(t *testing.T) {
	r := setupRouter()

	code, _ := call(t, r, http.MethodPost, "/api/v1/diagrams", "", gin.H{"title": "X", "content": "graph TD\nA-->B"})
	assert.Equal(t, http.StatusUnauthorized, code)

	code, body := call(t, r, http.MethodPost, "/api/v1/diagrams", "alice", gin.H{"title": "Login", "content": "graph TD\nA-->B", "is_public": true})
	require.Equal(t, http.StatusCreated, code)
	saved := body["diagram"].(map[string]any)
	id := saved["id"].(string)
	assert.Equal(t, "alice", saved["user_id"])

	code, body = call(t, r, http.MethodPost, "/api/v1/diagrams", "alice", gin.H{"is_public": false})
	require.Equal(t, http.StatusCreated, code)
	draft := body["diagram"].(map[string]any)
	assert.Equal(t, "Untitled", draft["title"])
	assert.Equal(t, "graph TD\nFrom-->Editor", draft["content"])

	code, _ = call(t, r, http.MethodPost, "/api/v1/diagrams", "alice", gin.H{"content": ""})
	assert.Equal(t, http.StatusBadRequest, code)

	code, body = call(t, r, http.MethodGet, "/api/v1/diagrams/"+id, "", nil)
	require.Equal(t, http.StatusOK, code)
	assert.Equal(t, "graph TD\nA-->B", body["diagram"].(map[string]any)["content"])

	code, _ = call(t, r, http.MethodGet, "/api/v1/diagrams/missing", "", nil)
	assert.Equal(t, http.StatusNotFound, code)

	code, body = call(t, r, http.MethodGet, "/api/v1/diagrams/mine", "alice", nil)
	require.Equal(t, http.StatusOK, code)
	assert.Len(t, body["diagrams"], 2)

	code, _ = call(t, r, http.MethodGet, "/api/v1/diagrams/mine", "", nil)
	assert.Equal(t, http.StatusUnauthorized, code)

	code, body = call(t, r, http.MethodGet, "/api/v1/diagrams/public", "", nil)
	require.Equal(t, http.StatusOK, code)
	assert.Len(t, body["diagrams"], 1)

	code, _ = call(t, r, http.MethodPost, "/api/v1/diagrams", "mallory", gin.H{"id": id, "content": "graph TD\nPwned"})
	assert.Equal(t, http.StatusNotFound, code)

	code, _ = call(t, r, http.MethodDelete, "/api/v1/diagrams/"+id, "mallory", nil)
	assert.Equal(t, http.StatusOK, code)
	code, _ = call(t, r, http.MethodGet, "/api/v1/diagrams/"+id, "", nil)
	assert.Equal(t, http.StatusOK, code)

	code, _ = call(t, r, http.MethodDelete, "/api/v1/diagrams/"+id, "alice", nil)
	assert.Equal(t, http.StatusOK, code)
	code, _ = call(t, r, http.MethodGet, "/api/v1/diagrams/"+id, "", nil)
	assert.Equal(t, http.StatusNotFound, code)
}
