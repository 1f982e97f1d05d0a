// File: internal/middleware/error.go
package middleware

import (
	"net/http"

	"estatehub_backend/internal/common"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// ErrorHandler turns errors attached to the Gin context into the JSON error
// envelope. API errors pass through with their own status; anything else is
// logged and masked as a 500. Unmatched routes and bad methods get the same
// envelope so the API never emits Gin's plain-text defaults.
func ErrorHandler(logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()

		if len(c.Errors) > 0 {
			ginErr := c.Errors[0]
			if apiErr, ok := common.IsAPIError(ginErr.Err); ok {
				c.AbortWithStatusJSON(apiErr.StatusCode, apiErr)
				return
			}

			logger.Error("Unhandled application error",
				zap.Error(ginErr.Err),
				zap.String("method", c.Request.Method),
				zap.String("path", c.Request.URL.Path),
				zap.String("request_id", c.GetString(RequestIDContextKey)),
			)
			resp := common.ErrInternalServer.WithDetails("An unexpected error occurred.")
			if gin.Mode() == gin.DebugMode && ginErr.Err != nil {
				resp.Details = ginErr.Err.Error()
			}
			c.AbortWithStatusJSON(resp.StatusCode, resp)
			return
		}

		// Handlers respond through common.RespondWithError, which writes the
		// body itself. Only dress up statuses nothing has written for, i.e.
		// Gin's own no-route and no-method results.
		if c.Writer.Written() {
			return
		}
		switch c.Writer.Status() {
		case http.StatusNotFound:
			resp := common.ErrNotFound.WithDetails("The requested endpoint does not exist.")
			c.AbortWithStatusJSON(resp.StatusCode, resp)
		case http.StatusMethodNotAllowed:
			resp := common.NewAPIError(http.StatusMethodNotAllowed, "METHOD_NOT_ALLOWED", "The method is not allowed for the requested URL.")
			c.AbortWithStatusJSON(resp.StatusCode, resp)
		}
	}
}
