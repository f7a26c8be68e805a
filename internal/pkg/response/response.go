// Package response renders the uniform API envelope. Every endpoint answers
// either {"success": true, "data": ...} or
// {"success": false, "error": {"code": ..., "message": ...}}.
package response

import "github.com/gin-gonic/gin"

// Success writes data wrapped in the success envelope.
func Success(c *gin.Context, statusCode int, data any) {
	c.JSON(statusCode, gin.H{
		"success": true,
		"data":    data,
	})
}

// Error writes a machine-readable error code with a human-readable message.
// The message is client-facing: internal details (SQL text, stack traces,
// wrapped errors) never belong here.
func Error(c *gin.Context, statusCode int, code, message string) {
	c.JSON(statusCode, gin.H{
		"success": false,
		"error": gin.H{
			"code":    code,
			"message": message,
		},
	})
}

// ErrorWithDetails is Error plus a details payload, used for field-level
// validation failures.
func ErrorWithDetails(c *gin.Context, statusCode int, code, message string, details any) {
	c.JSON(statusCode, gin.H{
		"success": false,
		"error": gin.H{
			"code":    code,
			"message": message,
			"details": details,
		},
	})
}
