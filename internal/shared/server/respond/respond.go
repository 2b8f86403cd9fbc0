package respond

import (
	"github.com/gin-gonic/gin"

	"resume-builder/internal/shared/telemetry"
)

// SuccessBody is the envelope for successful responses.
type SuccessBody struct {
	Success bool        `json:"success"`
	Message string      `json:"message,omitempty"`
	Data    interface{} `json:"data"`
}

// ErrorBody is the envelope for failed responses. Errors carries
// field-level validation messages keyed by field name.
type ErrorBody struct {
	Success bool              `json:"success"`
	Message string            `json:"message"`
	Errors  map[string]string `json:"errors,omitempty"`
}

// Success writes a success envelope with the given status.
func Success(c *gin.Context, status int, data interface{}, message string) {
	c.JSON(status, SuccessBody{Success: true, Message: message, Data: data})
}

// Error writes a failure envelope and aborts the request.
func Error(c *gin.Context, status int, message string, fieldErrors map[string]string) {
	fields := map[string]any{
		"status":     status,
		"message":    message,
		"path":       c.Request.URL.Path,
		"method":     c.Request.Method,
		"request_id": c.GetString("requestId"),
	}
	if userID := c.GetString("userId"); userID != "" {
		fields["user_id"] = userID
	}
	telemetry.Error("http.error", fields)

	c.AbortWithStatusJSON(status, ErrorBody{Success: false, Message: message, Errors: fieldErrors})
}
