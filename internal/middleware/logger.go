package middleware

import (
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/guttosm/candleview/internal/logger"
	"github.com/rs/zerolog"
)

// RequestLogger is a Gin middleware that writes one structured entry per request.
//
// Behavior:
//   - Logs method, path, raw query, status, latency and request_id (if injected by RequestID()).
//   - Chart requests also carry the symbol and trigger count, so a slow upstream
//     fetch can be matched to the ticker that caused it.
//   - Level follows the outcome: 5xx at error, 4xx at warn, static assets at debug.
//
// Usage:
//
//	router := gin.New()
//	router.Use(middleware.RequestID(), middleware.RequestLogger())
//
// Example log output:
//
//	{"component":"http","request_id":"123e...","method":"GET","path":"/api/v1/charts","symbol":"AAPL","status":200,"latency_ms":412}
func RequestLogger() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		path := c.Request.URL.Path

		c.Next()

		status := c.Writer.Status()
		rid, _ := c.Get(RequestIDKey)
		log := logger.Component("http")

		ev := eventFor(&log, path, status)
		ev = ev.Str("request_id", toString(rid)).
			Str("method", c.Request.Method).
			Str("path", path).
			Str("query", c.Request.URL.RawQuery)
		if strings.HasPrefix(path, "/api/v1/charts") {
			ev = ev.Str("symbol", strings.ToUpper(c.Query("symbol"))).Str("n_clicks", c.Query("n_clicks"))
		}
		if len(c.Errors) > 0 {
			ev = ev.Str("errors", c.Errors.String())
		}
		ev.Int("status", status).
			Int64("latency_ms", time.Since(start).Milliseconds()).
			Str("client_ip", c.ClientIP()).
			Msg("http_request")
	}
}

func eventFor(log *zerolog.Logger, path string, status int) *zerolog.Event {
	switch {
	case status >= http.StatusInternalServerError:
		return log.Error()
	case status >= http.StatusBadRequest:
		return log.Warn()
	case strings.HasPrefix(path, "/assets/"):
		return log.Debug()
	default:
		return log.Info()
	}
}

func toString(v any) string {
	if s, ok := v.(string); ok {
		return s
	}
	return ""
}
