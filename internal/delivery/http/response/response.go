package response

import (
	"github.com/gin-gonic/gin"
)

// Response is the JSON body returned by the intake endpoints.
// Success bodies carry Message and ID, failures carry Error only.
type Response struct {
	Message   string `json:"message,omitempty"`
	ID        string `json:"id,omitempty"`
	Error     string `json:"error,omitempty"`
	RequestID string `json:"request_id,omitempty"`
}

// Success sends a success response
func Success(c *gin.Context, code int, message, id string) {
	c.JSON(code, Response{
		Message:   message,
		ID:        id,
		RequestID: requestID(c),
	})
}

// Error sends an error response
func Error(c *gin.Context, code int, message string) {
	c.JSON(code, Response{
		Error:     message,
		RequestID: requestID(c),
	})
}

func requestID(c *gin.Context) string {
	reqID, _ := c.Get("RequestID")
	idStr, _ := reqID.(string)
	return idStr
}
