package middleware

import (
	"errors"
	"net/http"

	"go-talentflow-backend/internal/delivery/http/response"
	"go-talentflow-backend/pkg/apperror"
	"go-talentflow-backend/pkg/logger"

	"github.com/gin-gonic/gin"
)

// ErrorHandler is the single place that maps errors onto HTTP statuses and
// the response envelope; nothing below the handlers formats HTTP.
func ErrorHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()

		// Check if there are errors appended to the context
		if len(c.Errors) > 0 {
			err := c.Errors.Last().Err
			var appErr *apperror.AppError
			if errors.As(err, &appErr) {
				var fields interface{}
				if appErr.Fields != nil {
					fields = appErr.Fields
				}
				response.Error(c, appErr.Code, appErr.Message, fields)
				return
			}

			// Never expose internal error details to clients. Log the real
			// error server-side; the user gets a generic message.
			logger.Log.Error("Internal server error",
				"error", err,
				"method", c.Request.Method,
				"path", c.FullPath(),
			)
			response.Error(c, http.StatusInternalServerError, "An unexpected error occurred. Please try again later.", nil)
		}
	}
}
