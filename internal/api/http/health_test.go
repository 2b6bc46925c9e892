package http

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func getHealth(t *testing.T, h *HealthHandler, path string) (int, HealthResponse) {
	t.Helper()
	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.HandleMethodNotAllowed = true
	h.RegisterRoutes(router)

	rr := httptest.NewRecorder()
	router.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, path, nil))

	var resp HealthResponse
	if rr.Code == http.StatusOK {
		require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &resp))
	}
	return rr.Code, resp
}

func TestHealthCheck(t *testing.T) {
	for _, path := range []string{"/health", "/healthz"} {
		code, resp := getHealth(t, NewHealthHandler("test-service", "1.0.0", nil), path)
		require.Equal(t, http.StatusOK, code)
		assert.Equal(t, "healthy", resp.Status)
		assert.Equal(t, "test-service", resp.Service)
		assert.Equal(t, "1.0.0", resp.Version)
		assert.Empty(t, resp.Dependencies)
	}
}

func TestHealthCheck_Dependencies(t *testing.T) {
	mr, err := miniredis.Run()
	require.NoError(t, err)
	defer mr.Close()
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	defer client.Close()

	h := NewHealthHandler("svc", "1", map[string]Check{
		"redis": RedisCheck(client),
		"db":    func(context.Context) error { return errors.New("refused") },
	})

	code, resp := getHealth(t, h, "/health")
	require.Equal(t, http.StatusOK, code)
	assert.Equal(t, "degraded", resp.Status)
	assert.Equal(t, map[string]string{"redis": "up", "db": "down"}, resp.Dependencies)
}

func TestHealthCheckMethodNotAllowed(t *testing.T) {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.HandleMethodNotAllowed = true
	NewHealthHandler("test-service", "1.0.0", nil).RegisterRoutes(router)

	rr := httptest.NewRecorder()
	router.ServeHTTP(rr, httptest.NewRequest(http.MethodPost, "/health", nil))
	assert.Equal(t, http.StatusMethodNotAllowed, rr.Code)
}
