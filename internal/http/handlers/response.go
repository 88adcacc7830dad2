// Package handlers implements the public HTTP API: interview levels and
// question plans, session CRUD with resumption cursors, answer recording,
// draft generation, and question search.
//
// Every error leaves through fail(), so clients always see the same
// envelope: a stable machine-readable code, a display-safe message, and
// the request's correlation ID when one exists, e.g.
//
//	HTTP/1.1 404 Not Found
//	{
//	  "request_id": "123e4567-e89b-12d3-a456-426614174000",
//	  "code": "not_found",
//	  "message": "session not found"
//	}
package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/tbourn/go-biography-backend/internal/http/middleware"
)

// ErrorResponse is the error envelope shared by all endpoints. Code values
// are the constants in errors.go; Message is safe to surface to end users.
type ErrorResponse struct {
	RequestID string `json:"request_id,omitempty" example:"123e4567-e89b-12d3-a456-426614174000"`
	Code      string `json:"code" example:"not_found"`
	Message   string `json:"message" example:"session not found"`
}

// fail aborts the request with the standard envelope. Server-side failures
// (>= 500) are additionally logged through the request-scoped logger so an
// operator can chase the request_id.
func fail(c *gin.Context, status int, code, msg string) {
	reqID := c.Writer.Header().Get("X-Request-ID")

	if status >= http.StatusInternalServerError {
		middleware.LoggerFrom(c).Error().
			Int("status", status).
			Str("code", code).
			Str("message", msg).
			Msg("api error")
	}

	c.AbortWithStatusJSON(status, ErrorResponse{
		RequestID: reqID,
		Code:      code,
		Message:   msg,
	})
}

// Fail exposes fail for code outside this package (router-level 404/405
// handlers) so every response shares one envelope.
func Fail(c *gin.Context, status int, code, msg string) { fail(c, status, code, msg) }

func ok(c *gin.Context, status int, body any) {
	c.JSON(status, body)
}

func noContent(c *gin.Context) {
	c.Status(http.StatusNoContent)
}
