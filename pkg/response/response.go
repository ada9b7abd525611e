// Package response writes the uniform JSON envelope used by every API route:
// {"success": true, "data": ...} or {"success": false, "message": "..."}.
package response

import (
	"github.com/gin-gonic/gin"

	"github.com/cinenotes/cinenotes/backend/go-services/internal/apperr"
)

type Envelope struct {
	Success bool        `json:"success"`
	Data    interface{} `json:"data,omitempty"`
	Message string      `json:"message,omitempty"`
}

// Data writes a successful envelope carrying a payload.
func Data(c *gin.Context, status int, data interface{}) {
	c.JSON(status, Envelope{Success: true, Data: data})
}

// Message writes a successful envelope carrying only a message.
func Message(c *gin.Context, status int, msg string) {
	c.JSON(status, Envelope{Success: true, Message: msg})
}

// Fail writes a failure envelope with an explicit status.
func Fail(c *gin.Context, status int, msg string) {
	c.AbortWithStatusJSON(status, Envelope{Success: false, Message: msg})
}

// Error maps err onto its status and public message.
func Error(c *gin.Context, err error) {
	Fail(c, apperr.Status(err), apperr.PublicMessage(err))
}
