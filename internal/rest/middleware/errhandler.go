package middleware

import (
	"github.com/gin-gonic/gin"

	ierr "github.com/chairflow/chairflow/internal/errors"
	"github.com/chairflow/chairflow/internal/logger"
)

// ErrorHandler converts errors pushed onto the gin context into the
// standard error envelope. Handlers call c.Error(err) and return; this
// middleware picks the last error and renders it.
func ErrorHandler(log *logger.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()

		if len(c.Errors) == 0 {
			return
		}

		err := c.Errors.Last().Err
		status := ierr.HTTPStatusFromErr(err)
		if status >= 500 {
			log.Errorw("request failed",
				"method", c.Request.Method,
				"path", c.Request.URL.Path,
				"status", status,
				"error", err,
			)
		}

		c.AbortWithStatusJSON(status, ierr.NewErrorResponse(err))
	}
}
