// Package response renders the JSON bodies of the HTTP API.
package response

import (
	"net/http"

	deliverycontext "postboard/internal/delivery/context"

	"github.com/labstack/echo/v4"
)

// ErrorResponse is the body of every failed request.
type ErrorResponse struct {
	Message   string `json:"message"`           // User-facing message
	Code      string `json:"code"`              // Machine-readable error code, e.g. "VALIDATION_FAILED"
	Details   any    `json:"details,omitempty"` // Additional context, 4xx only
	RequestID string `json:"request_id,omitempty"` // Empty outside the request ID middleware
}

// MessageResponse is the body of requests that succeed without a resource to return.
type MessageResponse struct {
	Message string `json:"message"`
}

// Success renders data as the whole body.
func Success(c echo.Context, statusCode int, data any) error {
	return c.JSON(statusCode, data)
}

// Message renders {"message": message}.
func Message(c echo.Context, statusCode int, message string) error {
	return c.JSON(statusCode, MessageResponse{Message: message})
}

// Error returns an error response
func Error(c echo.Context, statusCode int, errorCode string, message string, details any) error {
	// Details should not be included for 5xx errors or authentication/authorization errors
	if statusCode >= http.StatusInternalServerError ||
		statusCode == http.StatusUnauthorized ||
		statusCode == http.StatusForbidden {
		details = nil
	}
	if s, ok := details.(string); ok && s == "" {
		details = nil
	}

	return c.JSON(statusCode, ErrorResponse{
		Message:   message,
		Code:      errorCode,
		Details:   details,
		RequestID: deliverycontext.RequestID(c.Request().Context()),
	})
}

// InternalServerError returns a 500 error
func InternalServerError(c echo.Context, errorCode string, message string) error {
	return Error(c, http.StatusInternalServerError, errorCode, message, nil)
}
