package middleware

import (
	"errors"
	"net/http"

	"go-agency-backend/internal/delivery/http/response"
	"go-agency-backend/pkg/apperror"
	"go-agency-backend/pkg/logger"

	"github.com/gin-gonic/gin"
)

// GenericErrorMessage is the only detail a client sees for unexpected failures
const GenericErrorMessage = "Internal server error"

func ErrorHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()

		if len(c.Errors) == 0 || c.Writer.Written() {
			return
		}

		err := c.Errors.Last().Err
		var appErr *apperror.AppError
		if errors.As(err, &appErr) {
			if appErr.Err != nil {
				logger.Log.Error("Request failed",
					"path", c.FullPath(),
					"status", appErr.Code,
					"request_id", c.GetString("RequestID"),
					"error", appErr.Err,
				)
			}
			response.Error(c, appErr.Code, appErr.Message)
			return
		}

		// Never expose internal error details to clients
		logger.Log.Error("Internal server error",
			"path", c.FullPath(),
			"request_id", c.GetString("RequestID"),
			"error", err,
		)
		response.Error(c, http.StatusInternalServerError, GenericErrorMessage)
	}
}
