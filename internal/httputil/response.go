// Package httputil provides shared HTTP response helpers.
package httputil

import "github.com/gin-gonic/gin"

// Error codes shared by every HTTP surface.
const (
	CodeInvalidRequest    = "invalid_request"
	CodeInvalidNodeID     = "invalid_node_id"
	CodeUnsupportedFormat = "unsupported_format"
	CodeBodyTooLarge      = "body_too_large"
	CodeInternalError     = "internal_error"
)

// ErrorBody is the JSON envelope of every error response.
type ErrorBody struct {
	Code      string `json:"code"`
	Message   string `json:"message"`
	RequestID string `json:"request_id,omitempty"`
}

// RequestID returns the request id stored by the request ID middleware, or "".
func RequestID(c *gin.Context) string {
	if rid, exists := c.Get("request_id"); exists {
		if s, ok := rid.(string); ok {
			return s
		}
	}

	return ""
}

// RespondError writes a standardized JSON error response and aborts the request.
func RespondError(c *gin.Context, status int, code, message string) {
	c.AbortWithStatusJSON(status, ErrorBody{
		Code:      code,
		Message:   message,
		RequestID: RequestID(c),
	})
}
