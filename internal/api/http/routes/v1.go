package routes

import (
	"github.com/gin-gonic/gin"

	"github.com/GoSim-25-26J-441/mermaid-gen-backend/internal/api/http/middleware"
	authhttp "github.com/GoSim-25-26J-441/mermaid-gen-backend/internal/auth/http"
	cataloghttp "github.com/GoSim-25-26J-441/mermaid-gen-backend/internal/catalog/http"
	"github.com/GoSim-25-26J-441/mermaid-gen-backend/internal/catalog"
	"github.com/GoSim-25-26J-441/mermaid-gen-backend/internal/credentials"
	credhttp "github.com/GoSim-25-26J-441/mermaid-gen-backend/internal/credentials/http"
	diagramhttp "github.com/GoSim-25-26J-441/mermaid-gen-backend/internal/diagrams/http"
	diagramsvc "github.com/GoSim-25-26J-441/mermaid-gen-backend/internal/diagrams/service"
	"github.com/GoSim-25-26J-441/mermaid-gen-backend/internal/editor"
	editorhttp "github.com/GoSim-25-26J-441/mermaid-gen-backend/internal/editor/http"
)

type V1Deps struct {
	Catalog     *catalog.Catalog
	Editor      *editor.Service
	Credentials credentials.Holder
	Diagrams    *diagramsvc.DiagramService
	// Identity resolves the signed-in user (bearer token or dev header).
	Identity      gin.HandlerFunc
	SecureCookies bool
}

func RegisterV1(r *gin.Engine, dep V1Deps) {
	api := r.Group("/api/v1")
	api.Use(middleware.SessionMiddleware(dep.SecureCookies))
	if dep.Identity != nil {
		api.Use(dep.Identity)
	}

	cataloghttp.New(dep.Catalog).Register(api)
	authhttp.Register(api)

	editorhttp.New(dep.Editor).Register(api.Group("/editor"))
	credhttp.New(dep.Credentials).Register(api.Group("/settings"))
	diagramhttp.New(dep.Diagrams, dep.Editor).Register(api.Group("/diagrams"))
}
