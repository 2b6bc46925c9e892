package bootstrap

import (
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	httpapi "github.com/GoSim-25-26J-441/mermaid-gen-backend/internal/api/http"
	"github.com/GoSim-25-26J-441/mermaid-gen-backend/internal/api/http/middleware"
	"github.com/GoSim-25-26J-441/mermaid-gen-backend/internal/api/http/routes"
	"github.com/GoSim-25-26J-441/mermaid-gen-backend/internal/metrics"
)

type RouterDeps struct {
	ServiceName    string
	Version        string
	AllowedOrigins []string
	HealthChecks   map[string]httpapi.Check
	V1             routes.V1Deps
}

func BuildRouter(dep RouterDeps) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(middleware.RequestIDMiddleware())
	r.Use(cors.New(cors.Config{
		AllowOrigins:     dep.AllowedOrigins,
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization", middleware.RequestIDHeader, "X-User-Id"},
		ExposeHeaders:    []string{middleware.RequestIDHeader},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	healthHandler := httpapi.NewHealthHandler(dep.ServiceName, dep.Version, dep.HealthChecks)
	healthHandler.RegisterRoutes(r)
	r.GET("/metrics", gin.WrapH(metrics.Handler()))

	routes.RegisterV1(r, dep.V1)

	return r
}
