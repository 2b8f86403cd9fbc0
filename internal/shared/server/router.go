package server

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"resume-builder/internal/enhance"
	"resume-builder/internal/resumes"
	"resume-builder/internal/shared/config"
	"resume-builder/internal/shared/metrics"
	"resume-builder/internal/shared/server/middleware"
	"resume-builder/internal/shared/server/respond"
	"resume-builder/internal/users"
)

// RouterDeps carries everything the HTTP surface needs.
type RouterDeps struct {
	Config  config.Config
	Users   *users.Handler
	Resumes *resumes.Handler
	Enhance *enhance.Handler
}

// NewRouter assembles the gin engine: shared middleware, public auth and
// health routes, and the authenticated API group.
func NewRouter(deps RouterDeps) *gin.Engine {
	if deps.Config.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()
	r.Use(
		middleware.RequestID(),
		middleware.Logging(),
		middleware.Recovery(),
		middleware.CORS(deps.Config.CORSAllowOrigins),
	)

	r.GET("/api/health", func(c *gin.Context) {
		respond.Success(c, http.StatusOK, gin.H{"status": "ok"}, "")
	})
	r.GET("/metrics", metrics.Handler())

	api := r.Group("/api")
	deps.Users.RegisterPublicRoutes(api)

	authed := api.Group("")
	authed.Use(middleware.Auth(deps.Config.JWTSecret))
	deps.Users.RegisterRoutes(authed)
	deps.Resumes.RegisterRoutes(authed)
	deps.Enhance.RegisterRoutes(authed)

	r.NoRoute(func(c *gin.Context) {
		respond.Error(c, http.StatusNotFound, "Route not found", nil)
	})

	return r
}

// Addr formats the listen address for the configured port.
func Addr(cfg config.Config) string {
	return ":" + cfg.Port
}
