package middleware

import (
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"usersvc/internal/repositories"
	"usersvc/internal/validation"
)

// ErrorResponse is the body of every 4xx and 5xx response.
type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message"`
}

// HTTPError is a failure that carries its own status and error code.
type HTTPError struct {
	Status  int
	Code    string
	Message string
	Cause   error
}

// NewHTTPError creates an HTTPError.
func NewHTTPError(status int, code, message string) *HTTPError {
	return &HTTPError{Status: status, Code: code, Message: message}
}

func (e *HTTPError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s (caused by: %v)", e.Code, e.Message, e.Cause)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

func (e *HTTPError) Unwrap() error {
	return e.Cause
}

// Normalize maps a failure to its response status and body.
func Normalize(err error) (int, ErrorResponse) {
	var verr *validation.Error
	if errors.As(err, &verr) {
		return fiber.StatusBadRequest, ErrorResponse{Error: "ValidationError", Message: verr.Error()}
	}

	if repositories.IsDuplicateKey(err) {
		return fiber.StatusConflict, ErrorResponse{Error: "Conflict", Message: "User with this email already exists"}
	}

	var httpErr *HTTPError
	if errors.As(err, &httpErr) {
		status := httpErr.Status
		if http.StatusText(status) == "" || status < 400 {
			status = fiber.StatusInternalServerError
		}
		code := httpErr.Code
		if code == "" {
			code = "Error"
		}
		message := httpErr.Message
		if message == "" {
			message = "Unexpected error"
		}
		return status, ErrorResponse{Error: code, Message: message}
	}

	var fiberErr *fiber.Error
	if errors.As(err, &fiberErr) {
		status := fiberErr.Code
		code := strings.ReplaceAll(http.StatusText(status), " ", "")
		if code == "" {
			status, code = fiber.StatusInternalServerError, "Error"
		}
		message := fiberErr.Message
		if message == "" {
			message = "Unexpected error"
		}
		return status, ErrorResponse{Error: code, Message: message}
	}

	return fiber.StatusInternalServerError, ErrorResponse{Error: "InternalServerError", Message: "Something went wrong"}
}

// ErrorHandler is the Fiber error handler: every failure returned by a
// handler is logged as-is and answered with an ErrorResponse.
func ErrorHandler(log *zap.Logger) fiber.ErrorHandler {
	return func(c *fiber.Ctx, err error) error {
		status, body := Normalize(err)

		fields := []zap.Field{
			zap.Error(err),
			zap.String("method", c.Method()),
			zap.String("path", c.OriginalURL()),
			zap.Int("status", status),
		}
		if status >= fiber.StatusInternalServerError {
			log.Error("Unhandled error", fields...)
		} else {
			log.Warn("Request failed", fields...)
		}

		return c.Status(status).JSON(body)
	}
}

// NotFound answers requests that matched no route.
func NotFound(c *fiber.Ctx) error {
	return c.Status(fiber.StatusNotFound).JSON(ErrorResponse{
		Error:   "NotFound",
		Message: fmt.Sprintf("Route %s %s not found", c.Method(), c.OriginalURL()),
	})
}
