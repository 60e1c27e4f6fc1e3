package middleware

import (
	"net/http"

	"go-agency-backend/internal/delivery/http/response"
	"go-agency-backend/pkg/security"

	"github.com/gin-gonic/gin"
)

// Recovery converts a panic anywhere below it into the generic 500 body.
// The panic value is logged, never returned.
func Recovery(audit *security.IntakeLogger) gin.HandlerFunc {
	return gin.CustomRecovery(func(c *gin.Context, recovered any) {
		audit.LogRequestFailed(c.Request.Context(), c.Request.URL.Path, c.GetString("RequestID"), recovered)
		response.Error(c, http.StatusInternalServerError, GenericErrorMessage)
		c.Abort()
	})
}
