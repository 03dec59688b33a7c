package response

import (
	"github.com/gin-gonic/gin"
)

// The mobile client consumes exact payload shapes: success bodies are
// raw JSON objects, failures are {"message": "..."} with an optional
// per-field "errors" map.

// Message writes a plain {"message": ...} body with the given status.
func Message(c *gin.Context, status int, message string) {
	c.JSON(status, gin.H{"message": message})
}

// ValidationError writes a 400 with per-field messages. The client shows
// the server-provided message verbatim, so the strings here are part of
// the contract.
func ValidationError(c *gin.Context, status int, errors map[string]string) {
	c.JSON(status, gin.H{
		"message": "Validation error",
		"errors":  errors,
	})
}
