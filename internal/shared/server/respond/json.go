package respond

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// Envelope is the success body the web client expects.
type Envelope struct {
	StatusCode int         `json:"statusCode"`
	Data       interface{} `json:"data"`
	Message    string      `json:"message"`
	Success    bool        `json:"success"`
}

// JSON writes a JSON response with the given status.
func JSON(c *gin.Context, status int, payload interface{}) {
	c.JSON(status, payload)
}

// Success wraps data in the success envelope.
func Success(c *gin.Context, status int, data interface{}, message string) {
	JSON(c, status, Envelope{
		StatusCode: status,
		Data:       data,
		Message:    message,
		Success:    status < http.StatusBadRequest,
	})
}
