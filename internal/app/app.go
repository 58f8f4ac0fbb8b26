package app

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	goredis "github.com/redis/go-redis/v9"
	"go.uber.org/zap"
	"gorm.io/gorm"

	authhttp "github.com/teamhub/server/internal/adapter/inbound/http/auth"
	collabhttp "github.com/teamhub/server/internal/adapter/inbound/http/collaboration"
	projecthttp "github.com/teamhub/server/internal/adapter/inbound/http/project"
	userhttp "github.com/teamhub/server/internal/adapter/inbound/http/user"
	"github.com/teamhub/server/internal/infra/config"
	"github.com/teamhub/server/internal/infra/events"
	"github.com/teamhub/server/internal/utils/metrics"
	"github.com/teamhub/server/internal/utils/middleware"
)

// Dependencies holds all injected dependencies.
type Dependencies struct {
	Config  *config.Config
	Logger  *zap.Logger
	DB      *gorm.DB
	Redis   goredis.UniversalClient
	Metrics *metrics.Metrics
	Events  *events.Bus

	TokenValidator middleware.TokenValidator
	Limits         RouteLimits

	// HTTP handlers (inbound adapters)
	AuthHTTP          *authhttp.Handler
	UserHTTP          *userhttp.Handler
	CollaborationHTTP *collabhttp.Handler
	ProjectHTTP       *projecthttp.Handler
}

// App is the assembled HTTP application.
type App struct {
	deps    *Dependencies
	router  *gin.Engine
	cleanup func()
}

// New creates a new application instance.
func New(cfg *config.Config) (*App, error) {
	deps, cleanup, err := InitializeDependencies(cfg)
	if err != nil {
		return nil, fmt.Errorf("initialize dependencies: %w", err)
	}
	return &App{
		deps:    deps,
		router:  NewRouter(deps),
		cleanup: cleanup,
	}, nil
}

// Router returns the HTTP handler.
func (a *App) Router() *gin.Engine {
	return a.router
}

// Logger returns the application logger.
func (a *App) Logger() *zap.Logger {
	return a.deps.Logger
}

// Stop releases connections in reverse order of creation.
func (a *App) Stop() {
	if a.cleanup != nil {
		a.cleanup()
		a.cleanup = nil
	}
}

// NewRouter builds the gin engine with global middleware and every API route.
func NewRouter(deps *Dependencies) *gin.Engine {
	cfg := deps.Config
	gin.SetMode(cfg.Server.Mode)

	r := gin.New()

	// Apply global middleware
	r.Use(middleware.Recovery(deps.Logger))
	r.Use(middleware.RequestID())
	r.Use(middleware.Logging(deps.Logger))
	r.Use(middleware.CORS(middleware.NewCORSConfig(cfg.Server.CORSOrigins)))
	if deps.Metrics != nil {
		r.Use(middleware.Metrics(deps.Metrics))
	}

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	r.GET("/ready", readiness(deps))

	if cfg.Metrics.Enabled {
		r.GET(cfg.Metrics.Path, gin.WrapH(promhttp.Handler()))
	}

	authRequired := middleware.RequireAuth(deps.TokenValidator)
	limits := deps.Limits
	if limits.Auth == nil {
		limits.Auth = passThrough
	}
	if limits.Invitation == nil {
		limits.Invitation = passThrough
	}

	v1 := r.Group("/api/v1")
	deps.AuthHTTP.RegisterRoutes(v1, authRequired, limits.Auth)
	deps.UserHTTP.RegisterRoutes(v1, authRequired)
	deps.CollaborationHTTP.RegisterRoutes(v1, authRequired, limits.Invitation)
	deps.ProjectHTTP.RegisterRoutes(v1, authRequired)

	return r
}

// readiness reports whether the backing stores answer a ping.
func readiness(deps *Dependencies) gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
		defer cancel()

		checks := gin.H{}
		ready := true
		if deps.DB != nil {
			checks["database"] = "ok"
			if err := pingDB(ctx, deps.DB); err != nil {
				checks["database"] = err.Error()
				ready = false
			}
		}
		if deps.Redis != nil {
			checks["redis"] = "ok"
			if err := deps.Redis.Ping(ctx).Err(); err != nil {
				checks["redis"] = err.Error()
				ready = false
			}
		}

		status := http.StatusOK
		if !ready {
			status = http.StatusServiceUnavailable
		}
		c.JSON(status, gin.H{"ready": ready, "checks": checks})
	}
}

func pingDB(ctx context.Context, db *gorm.DB) error {
	sqlDB, err := db.DB()
	if err != nil {
		return err
	}
	return sqlDB.PingContext(ctx)
}
