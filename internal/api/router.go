package api

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/guttosm/candleview/internal/middleware"
	"github.com/guttosm/candleview/web"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

// RouterOptions tunes the router's middleware.
type RouterOptions struct {
	RateLimitPerMinute int           // 0 keeps the middleware default
	RequestTimeout     time.Duration // 0 means 30 seconds
}

// NewRouter creates a Gin engine with routes configured.
//
// Responsibilities:
//   - Registers global middlewares (RequestID, Logger, Recovery, ErrorHandler).
//   - Rate limits only the API group, so page loads and probes do not spend the chart quota.
//   - Adds a per-request timeout to the request context.
//   - Serves the dashboard page (/) and its static assets (/assets/*).
//   - Mounts Swagger docs (/swagger/*any).
//   - Configures API v1 routes (/api/v1).
//
// Note:
//   - Health and readiness endpoints (/healthz, /readyz) are registered in app.InitializeApp().
func NewRouter(handler *Handler, opts RouterOptions) *gin.Engine {
	router := gin.New()

	if opts.RateLimitPerMinute > 0 {
		middleware.SetRateLimit(opts.RateLimitPerMinute, time.Minute)
	}
	timeout := opts.RequestTimeout
	if timeout <= 0 {
		timeout = 30 * time.Second
	}

	// ─── Middlewares ───────────────────────────────
	router.Use(
		middleware.RequestID(),
		middleware.RequestLogger(),
		middleware.RecoveryMiddleware(),
		middleware.ErrorHandler,
	)

	// ─── Timeout ──────────────────────────────────
	router.Use(func(c *gin.Context) {
		ctx, cancel := context.WithTimeout(c.Request.Context(), timeout)
		defer cancel()
		c.Request = c.Request.WithContext(ctx)
		c.Next()
	})

	// ─── Dashboard ────────────────────────────────
	router.SetHTMLTemplate(web.Templates())
	router.StaticFS("/assets", http.FS(web.Assets()))
	router.GET("/", handler.Dashboard)

	// ─── Swagger ──────────────────────────────────
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	// ─── API v1 ───────────────────────────────────
	v1 := router.Group("/api/v1", middleware.RateLimiter())
	{
		v1.GET("/charts", handler.GetCharts)
		v1.GET("/defaults", handler.GetDefaults)
	}

	return router
}
