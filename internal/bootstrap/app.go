package bootstrap

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"

	"github.com/GoSim-25-26J-441/mermaid-gen-backend/config"
	httpapi "github.com/GoSim-25-26J-441/mermaid-gen-backend/internal/api/http"
	"github.com/GoSim-25-26J-441/mermaid-gen-backend/internal/api/http/routes"
	"github.com/GoSim-25-26J-441/mermaid-gen-backend/internal/auth"
	"github.com/GoSim-25-26J-441/mermaid-gen-backend/internal/catalog"
	"github.com/GoSim-25-26J-441/mermaid-gen-backend/internal/credentials"
	"github.com/GoSim-25-26J-441/mermaid-gen-backend/internal/diagrams/repository"
	diagramsvc "github.com/GoSim-25-26J-441/mermaid-gen-backend/internal/diagrams/service"
	"github.com/GoSim-25-26J-441/mermaid-gen-backend/internal/editor"
	"github.com/GoSim-25-26J-441/mermaid-gen-backend/internal/generation"
	"github.com/GoSim-25-26J-441/mermaid-gen-backend/internal/logging"
	"github.com/GoSim-25-26J-441/mermaid-gen-backend/internal/storage/postgres"
	"github.com/GoSim-25-26J-441/mermaid-gen-backend/internal/users"
)

const ServiceName = "mermaid-gen-backend"

// App holds the wired HTTP engine and everything that has to be released on shutdown.
type App struct {
	Router   *gin.Engine
	Registry *editor.Registry

	closers []func()
}

// Close stops background work and releases connections in reverse order of creation.
func (a *App) Close() {
	for i := len(a.closers) - 1; i >= 0; i-- {
		a.closers[i]()
	}
	a.closers = nil
}

func (a *App) onClose(f func()) {
	a.closers = append(a.closers, f)
}

// NewApp builds every component selected by cfg. On error, anything already opened
// is closed before returning.
func NewApp(ctx context.Context, cfg *config.Config) (app *App, err error) {
	app = &App{}
	defer func() {
		if err != nil {
			app.Close()
			app = nil
		}
	}()

	log := logging.Base().Sugar()
	checks := map[string]httpapi.Check{}

	var (
		store repository.Store
		pool  *pgxpool.Pool
	)
	switch cfg.App.StorageBackend {
	case "postgres":
		var db *sql.DB
		db, err = postgres.NewConnection(cfg.Database.PostgresDSN())
		if err != nil {
			return nil, err
		}
		app.onClose(func() { db.Close() })
		store = repository.NewPostgresStore(db)

		pool, err = OpenDB(ctx, DBOptions{DSN: cfg.Database.PostgresDSN(), MaxConns: 10})
		if err != nil {
			return nil, err
		}
		app.onClose(pool.Close)
		checks["postgres"] = httpapi.PgxCheck(pool)
	case "supabase":
		store = repository.NewSupabaseStore(cfg.Auth.SupabaseURL, cfg.Auth.SupabaseKey)
	case "memory":
		store = repository.NewMemoryStore()
	default:
		return nil, fmt.Errorf("unknown storage backend %q", cfg.App.StorageBackend)
	}
	log.Infow("diagram store ready", "backend", cfg.App.StorageBackend)

	var creds credentials.Holder
	switch cfg.App.CredentialStore {
	case "redis":
		var rdb *redis.Client
		rdb, err = OpenRedis(ctx, cfg.Redis.URL)
		if err != nil {
			return nil, err
		}
		app.onClose(func() { rdb.Close() })
		creds = credentials.NewRedisStore(rdb, cfg.Redis.CredentialTTL)
		checks["redis"] = httpapi.RedisCheck(rdb)
	default:
		creds = credentials.NewMemoryStore()
	}

	var syncer auth.UserSyncer
	if pool != nil {
		syncer = users.NewRepo(pool)
	}

	var identity gin.HandlerFunc
	switch cfg.Auth.Provider {
	case "firebase":
		client, ferr := auth.InitializeFirebase(ctx, cfg.Auth.FirebaseCredentials)
		if ferr != nil {
			return nil, ferr
		}
		identity = auth.Identify(auth.NewFirebaseVerifier(client), syncer)
	case "supabase":
		v, serr := auth.NewSupabaseVerifier(cfg.Auth.SupabaseURL, cfg.Auth.SupabaseKey)
		if serr != nil {
			return nil, serr
		}
		identity = auth.Identify(v, syncer)
	default:
		log.Warn("using X-User-Id header identity; do not run this in production")
		identity = auth.HeaderIdentity(syncer)
	}

	cat, err := catalog.Default()
	if err != nil {
		return nil, err
	}

	gen := generation.NewClient(generation.Config{
		BaseURL:     cfg.LLM.BaseURL,
		Model:       cfg.LLM.Model,
		Temperature: cfg.LLM.Temperature,
		MaxTokens:   cfg.LLM.MaxTokens,
		Timeout:     cfg.LLM.Timeout,
	})

	reg := editor.NewRegistry(editor.RegistryConfig{
		InitialMarkup:     cat.DefaultDiagram(),
		RenderDebounce:    cfg.Editor.RenderDebounce,
		IdleTTL:           cfg.Editor.IdleTTL,
		GeneratePerMinute: cfg.Editor.GenerateRate,
		GenerateBurst:     cfg.Editor.GenerateBurst,
	})
	if err = reg.StartEviction(); err != nil {
		return nil, err
	}
	app.onClose(reg.Stop)
	app.Registry = reg

	editorSvc := editor.NewService(reg, creds, gen, cat)

	app.Router = BuildRouter(RouterDeps{
		ServiceName:    ServiceName,
		Version:        cfg.App.Version,
		AllowedOrigins: cfg.Server.AllowedOrigins,
		HealthChecks:   checks,
		V1: routes.V1Deps{
			Catalog:       cat,
			Editor:        editorSvc,
			Credentials:   creds,
			Diagrams:      diagramsvc.NewDiagramService(store),
			Identity:      identity,
			SecureCookies: cfg.App.Environment == "production",
		},
	})
	return app, nil
}
