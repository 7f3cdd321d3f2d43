package routes

import (
	"time"

	"github.com/hari2128-cell/CureVox/internal/auth"
	"github.com/hari2128-cell/CureVox/internal/config"
	"github.com/hari2128-cell/CureVox/internal/handlers"
	"github.com/hari2128-cell/CureVox/internal/metrics"
	"github.com/hari2128-cell/CureVox/internal/middleware"
	"github.com/hari2128-cell/CureVox/internal/services"

	"github.com/gin-gonic/gin"
)

// RegisterRoutes mounts every HTTP route. Public endpoints go on /api
// directly; everything else sits behind the request gate.
func RegisterRoutes(
	ginRouter *gin.Engine,
	cfg *config.Config,
	appHandlers *handlers.AppHandlers,
	tokens *auth.TokenManager,
	authService services.AuthService,
	collector *metrics.Collector,
) {
	generalLimiter := middleware.NewRateLimiter(cfg.RateLimit.GeneralPerMinute, time.Minute, cfg.RateLimit.GeneralPerMinute)
	uploadLimiter := middleware.NewRateLimiter(cfg.RateLimit.UploadsPerHour, time.Hour, cfg.RateLimit.UploadsPerHour)

	ginRouter.GET("/metrics", gin.WrapH(collector.Handler()))

	api := ginRouter.Group("/api")
	api.Use(generalLimiter.Middleware())
	{
		appHandlers.HealthHandler.RegisterRoutes(api)
		appHandlers.AuthHandler.RegisterPublicRoutes(api)
	}

	protected := api.Group("")
	protected.Use(middleware.AuthMiddleware(tokens, authService, cfg.JWT.StrictRevocation))
	{
		appHandlers.AuthHandler.RegisterProtectedRoutes(protected)
		appHandlers.ReportHandler.RegisterRoutes(protected)
		appHandlers.DiagnosisHandler.RegisterRoutes(protected, uploadLimiter.Middleware())
	}
}
