package router

import (
	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"go.uber.org/zap"

	_ "uploadbroker/docs"
	"uploadbroker/internal/config"
	"uploadbroker/internal/handler"
	"uploadbroker/internal/metrics"
	"uploadbroker/internal/middleware"
)

// Handlers groups the HTTP handlers mounted by Setup.
type Handlers struct {
	Presign      *handler.PresignHandler
	DirectUpload *handler.DirectUploadHandler
	Prompt       *handler.PromptHandler
	Health       *handler.HealthHandler
}

// Setup configures the Gin engine with all routes and middleware.
func Setup(cfg *config.Config, h Handlers, m *metrics.Metrics, logger *zap.Logger) *gin.Engine {
	r := gin.New()

	// Global middleware
	r.Use(middleware.Recovery())
	r.Use(middleware.RequestID())
	r.Use(middleware.Logger(logger))
	r.Use(middleware.Metrics(m))
	r.Use(middleware.CORS(cfg.CORS.AllowedOrigins))

	// Health checks
	r.GET("/healthz", h.Health.Liveness)
	r.GET("/readyz", h.Health.Readiness)
	if m != nil {
		r.GET("/metrics", gin.WrapH(m.Handler()))
	}
	r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	api := r.Group("/api")
	api.GET("/env-check", h.Health.EnvCheck)

	// Broker routes - optionally guarded and rate limited
	protected := api.Group("")
	protected.Use(middleware.BearerAuth(cfg.Auth))
	protected.Use(middleware.RateLimit(cfg.RateLimit))

	s3 := protected.Group("/s3")
	s3.POST("/presign", h.Presign.Presign)
	s3.POST("/direct", h.DirectUpload.Upload)

	protected.POST("/aws/bedrock", h.Prompt.Complete)

	return r
}
