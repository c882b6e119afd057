// Package apperr defines the error taxonomy and the single responder that
// maps domain failures to HTTP responses. Handlers attach errors to the gin
// context and never touch status codes themselves.
package apperr

import (
	"errors"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"
)

// Detail points at one invalid field of a request.
type Detail struct {
	Path    string `json:"path"`
	Message string `json:"message"`
}

// Error is a domain failure with a fixed HTTP status.
type Error struct {
	Status  int
	Message string
	Details []Detail
}

func (e *Error) Error() string {
	return e.Message
}

// BadRequest marks malformed or invalid input (400).
func BadRequest(message string, details ...Detail) *Error {
	return &Error{Status: http.StatusBadRequest, Message: message, Details: details}
}

// Unauthorized marks missing/invalid credentials or insufficient
// role/ownership (401).
func Unauthorized(message string) *Error {
	return &Error{Status: http.StatusUnauthorized, Message: message}
}

// NotFound marks an absent entity (404).
func NotFound(message string) *Error {
	return &Error{Status: http.StatusNotFound, Message: message}
}

// Conflict marks a uniqueness or business-rule violation (409).
func Conflict(message string) *Error {
	return &Error{Status: http.StatusConflict, Message: message}
}

// Middleware responds from the last error attached to the context. Unknown
// errors become a 500 with the message suppressed in production mode.
func Middleware(production bool) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()

		if len(c.Errors) == 0 || c.Writer.Written() {
			return
		}

		err := c.Errors.Last().Err

		var appErr *Error
		if errors.As(err, &appErr) {
			body := gin.H{"error": appErr.Message}
			if len(appErr.Details) > 0 {
				body["details"] = appErr.Details
			}
			c.JSON(appErr.Status, body)
			return
		}

		log.Printf("⚠️ Unexpected error: %v", err)
		message := "Internal server error"
		if !production {
			message = err.Error()
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": message})
	}
}
