package api

import "github.com/gin-gonic/gin"

// HealthHandler provides liveness and readiness endpoints for the service.
//
// Responsibilities:
//   - /healthz: Basic liveness probe (always returns 200 OK).
//   - /readyz: Readiness probe (depends on the market data backend when it can be probed).
type HealthHandler struct {
	provider string
	ping     func() error // nil when the provider has nothing to probe
}

// NewHealthHandler constructs a HealthHandler.
//
// Parameters:
//   - provider (string): name of the configured market data provider, echoed in responses.
//   - ping (func() error): probes the backend; typically db.Ping for the postgres provider, nil otherwise.
func NewHealthHandler(provider string, ping func() error) *HealthHandler {
	return &HealthHandler{provider: provider, ping: ping}
}

// Register mounts the health and readiness endpoints into the provided Gin router.
//
// Routes:
//   - GET /healthz: Always returns 200 OK.
//   - GET /readyz: Returns 200 OK if ping succeeds (or there is nothing to ping), 503 otherwise.
func (h *HealthHandler) Register(r *gin.Engine) {
	// @Summary      Liveness probe
	// @Description  Always returns OK if the service is running
	// @Tags         health
	// @Produce      json
	// @Success      200  {object}  map[string]string
	// @Router       /healthz [get]
	r.GET("/healthz", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	})

	// @Summary      Readiness probe
	// @Description  Returns ready if the market data backend is reachable
	// @Tags         health
	// @Produce      json
	// @Success      200  {object}  map[string]string
	// @Failure      503  {object}  map[string]string
	// @Router       /readyz [get]
	r.GET("/readyz", func(c *gin.Context) {
		if h.ping != nil && h.ping() != nil {
			c.JSON(503, gin.H{"status": "degraded", "provider": h.provider})
			return
		}
		c.JSON(200, gin.H{"status": "ready", "provider": h.provider})
	})
}
