package server

import (
	"github.com/gin-gonic/gin"

	"cv-backend/internal/services/health"
	"cv-backend/internal/shared/config"
	"cv-backend/internal/shared/metrics"
	"cv-backend/internal/shared/server/middleware"
	"cv-backend/internal/shared/server/respond"
	"cv-backend/internal/shared/storage/memdb"
	"cv-backend/internal/site"
	"cv-backend/internal/users"
)

// NewRouter constructs the Gin engine with middleware and routes registered.
// The memdb session is shared; the router never connects or disconnects it.
func NewRouter(cfg config.Config, db *memdb.DB) *gin.Engine {
	gin.SetMode(gin.ReleaseMode)
	r := gin.New()

	r.Use(
		middleware.RequestID(),
		middleware.Logging(),
		middleware.Recovery(),
		middleware.CORS(cfg.CORSAllowOrigin),
		middleware.RateLimit(middleware.RateLimitRule{Rate: 20, Burst: 40}, nil),
	)

	healthSvc := health.NewService(db)
	userHandler := users.NewHandler(users.NewService(users.NewMemDBRepo(db)))
	siteHandler := site.NewHandler(cfg.ResumeDir, cfg.ResumePDFName)

	siteHandler.RegisterRoutes(r)
	r.GET("/metrics", metrics.Handler())

	api := r.Group("/api/v1")
	api.GET("/health", func(c *gin.Context) {
		respond.OK(c, healthSvc.Status())
	})
	siteHandler.RegisterAPIRoutes(api)
	userHandler.RegisterRoutes(api)

	return r
}

// Addr normalizes the listen address.
func Addr(port string) string {
	if port == "" {
		return ":8080"
	}
	if port[0] == ':' {
		return port
	}
	return ":" + port
}
