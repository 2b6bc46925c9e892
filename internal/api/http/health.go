package http

import (
	"context"
	"net/http"
	"sort"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"
)

type HealthResponse struct {
	Status       string            `json:"status"`
	Timestamp    time.Time         `json:"timestamp"`
	Service      string            `json:"service"`
	Version      string            `json:"version"`
	Dependencies map[string]string `json:"dependencies,omitempty"`
}

// Check pings one dependency.
type Check func(ctx context.Context) error

type HealthHandler struct {
	serviceName string
	version     string
	checks      map[string]Check
}

func NewHealthHandler(serviceName, version string, checks map[string]Check) *HealthHandler {
	return &HealthHandler{
		serviceName: serviceName,
		version:     version,
		checks:      checks,
	}
}

func PgxCheck(pool *pgxpool.Pool) Check {
	return func(ctx context.Context) error { return pool.Ping(ctx) }
}

func RedisCheck(client *redis.Client) Check {
	return func(ctx context.Context) error { return client.Ping(ctx).Err() }
}

// HealthCheck reports "degraded" (still 200) when a dependency is down; the process
// itself is serving.
func (h *HealthHandler) HealthCheck(c *gin.Context) {
	resp := HealthResponse{
		Status:    "healthy",
		Timestamp: time.Now().UTC(),
		Service:   h.serviceName,
		Version:   h.version,
	}

	if len(h.checks) > 0 {
		names := make([]string, 0, len(h.checks))
		for name := range h.checks {
			names = append(names, name)
		}
		sort.Strings(names)

		resp.Dependencies = make(map[string]string, len(names))
		for _, name := range names {
			pingCtx, cancel := context.WithTimeout(c.Request.Context(), 1*time.Second)
			err := h.checks[name](pingCtx)
			cancel()

			if err != nil {
				resp.Dependencies[name] = "down"
				resp.Status = "degraded"
			} else {
				resp.Dependencies[name] = "up"
			}
		}
	}

	c.JSON(http.StatusOK, resp)
}

func (h *HealthHandler) RegisterRoutes(r gin.IRouter) {
	r.GET("/health", h.HealthCheck)
	r.GET("/healthz", h.HealthCheck)
}
