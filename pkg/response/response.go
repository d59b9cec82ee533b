package response

import (
	"github.com/gin-gonic/gin"
)

// The API keeps the flat wire surface of the original service: successes are
// the payload itself, failures are {"error": ..., "details": ...?}.

type errorBody struct {
	Error   string      `json:"error"`
	Details interface{} `json:"details,omitempty"`
}

// JSON writes a success payload as-is.
func JSON(c *gin.Context, status int, payload interface{}) {
	c.JSON(status, payload)
}

// Error writes a structured error payload. Internal detail (driver errors,
// stack traces) must never be passed through here.
func Error(c *gin.Context, status int, message string, details interface{}) {
	c.JSON(status, errorBody{Error: message, Details: details})
}

// AbortError writes an error payload and aborts the handler chain.
func AbortError(c *gin.Context, status int, message string, details interface{}) {
	c.AbortWithStatusJSON(status, errorBody{Error: message, Details: details})
}
