package handlers

import (
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"github.com/ulule/limiter/v3"

	"github.com/subhoajk39-commits/invvvoice/cmd/docs"
	portssvc "github.com/subhoajk39-commits/invvvoice/internal/core/ports/services"
	"github.com/subhoajk39-commits/invvvoice/internal/middleware"
	"github.com/subhoajk39-commits/invvvoice/internal/platform/config"
)

// Limiters throttles the public login route and the authenticated API. Nil disables one.
type Limiters struct {
	Login *limiter.Limiter
	API   *limiter.Limiter
}

// RegisterRoutes sets up all application routes, injecting dependencies using interfaces
func RegisterRoutes(
	r *gin.Engine,
	cfg *config.Config,
	services *portssvc.ServiceContainer,
	limiters Limiters,
) {
	r.Use(corsMiddleware(cfg), middleware.PrometheusMiddleware())

	r.GET("/health", func(c *gin.Context) {
		c.String(http.StatusOK, "OK")
	})
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	registerAuthRoutes(r, services.Auth, limiters.Login)

	setupAPIV1Routes(r, cfg, services, limiters.API)

	setupSwaggerRoutes(r, cfg)
}

// setupAPIV1Routes configures the /api/v1 group and delegates to specific entity route registrations
func setupAPIV1Routes(
	r *gin.Engine,
	cfg *config.Config,
	services *portssvc.ServiceContainer,
	apiLimiter *limiter.Limiter,
) {
	v1 := r.Group("/api/v1", middleware.AuthMiddleware(cfg.JWTSecret, cfg.JWTIssuer))
	if apiLimiter != nil {
		v1.Use(middleware.RateLimit(apiLimiter, middleware.ByPrincipal))
	}

	registerPrincipalRoutes(v1, services.Principal)
	registerProjectRoutes(v1, services.Project)
	registerCategoryRoutes(v1, services.Category)
	registerWorkRecordRoutes(v1, services.WorkRecord, services.Reporting)
	registerReportingRoutes(v1, services.Reporting)
	registerInvoiceRoutes(v1, services.Invoice)
}

func corsMiddleware(cfg *config.Config) gin.HandlerFunc {
	corsCfg := cors.Config{
		AllowMethods:     []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodPatch, http.MethodDelete, http.MethodOptions},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization", "X-Request-ID"},
		ExposeHeaders:    []string{"Content-Disposition", "X-Request-ID", "X-Invoice-ID", "X-Invoice-Warning"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}
	if len(cfg.CORSAllowedOrigins) > 0 {
		corsCfg.AllowOrigins = cfg.CORSAllowedOrigins
	} else {
		corsCfg.AllowCredentials = false
		corsCfg.AllowAllOrigins = true
	}
	return cors.New(corsCfg)
}

// setupSwaggerRoutes configures the swagger documentation routes
func setupSwaggerRoutes(r *gin.Engine, cfg *config.Config) {
	if cfg.IsProduction {
		//no swagger in prod
		return
	}
	docs.SwaggerInfo.BasePath = "/api/v1"
	swagger := r.Group("/swagger")
	swagger.GET("/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
}
