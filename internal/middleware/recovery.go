package middleware

import (
	"fmt"
	"net/http"
	"runtime/debug"

	"github.com/gin-gonic/gin"
	"github.com/guttosm/candleview/internal/domain/dto"
	"github.com/guttosm/candleview/internal/logger"
)

// RecoveryMiddleware recovers from panics in handlers, logs the stack trace and
// answers with a standardized 500 JSON error.
func RecoveryMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		defer func() {
			if r := recover(); r != nil {
				rid, _ := c.Get(RequestIDKey)
				logger.L().Error().
					Str("request_id", toString(rid)).
					Str("panic", fmt.Sprintf("%v", r)).
					Bytes("stack", debug.Stack()).
					Msg("panic recovered")

				c.AbortWithStatusJSON(http.StatusInternalServerError, dto.NewErrorResponse("Internal server error", fmt.Errorf("%v", r)))
			}
		}()

		c.Next()
	}
}

// ErrorHandler turns errors collected with c.Error into a JSON error response
// when the handler did not write one itself.
func ErrorHandler(c *gin.Context) {
	c.Next()

	if len(c.Errors) == 0 || c.Writer.Written() {
		return
	}

	err := c.Errors.Last()
	status := c.Writer.Status()
	if status < http.StatusBadRequest {
		status = http.StatusInternalServerError
	}
	logger.L().Warn().Err(err.Err).Int("status", status).Str("path", c.Request.URL.Path).Msg("request error")
	c.AbortWithStatusJSON(status, dto.NewErrorResponse(http.StatusText(status), err.Err))
}

// AbortWithError aborts the request with status and a standardized error body.
func AbortWithError(c *gin.Context, status int, message string, err error) {
	_ = c.Error(err)
	c.AbortWithStatusJSON(status, dto.NewErrorResponse(message, err))
}
