package http

import (
	"time"

	"mailmind_server/pkg/apperr"
	"mailmind_server/pkg/logger"

	"github.com/gofiber/fiber/v2"
)

// APIResponse is the standard response envelope.
type APIResponse struct {
	Success   bool        `json:"success"`
	Data      interface{} `json:"data,omitempty"`
	Error     *APIError   `json:"error,omitempty"`
	RequestID string      `json:"request_id,omitempty"`
	Timestamp string      `json:"timestamp"`
}

type APIError struct {
	Code    string                 `json:"code"`
	Message string                 `json:"message"`
	Details map[string]interface{} `json:"details,omitempty"`
}

// ErrorResponse sends a standardized JSON error response
func ErrorResponse(c *fiber.Ctx, status int, message string) error {
	return ErrorResponseWithCode(c, status, mapStatusToCode(status), message)
}

// ErrorResponseWithCode sends a standardized error response with custom code
func ErrorResponseWithCode(c *fiber.Ctx, status int, code, message string) error {
	requestID, _ := c.Locals("request_id").(string)
	return c.Status(status).JSON(APIResponse{
		Success:   false,
		Error:     &APIError{Code: code, Message: message},
		RequestID: requestID,
		Timestamp: time.Now().UTC().Format(time.RFC3339),
	})
}

// AppErrorResponse handles apperr.AppError and returns the mapped status
func AppErrorResponse(c *fiber.Ctx, err error) error {
	appErr := apperr.AsAppError(err)
	requestID, _ := c.Locals("request_id").(string)
	return c.Status(appErr.Status).JSON(APIResponse{
		Success:   false,
		Error:     &APIError{Code: appErr.Code, Message: appErr.Message, Details: appErr.Details},
		RequestID: requestID,
		Timestamp: time.Now().UTC().Format(time.RFC3339),
	})
}

// InternalErrorResponse returns a safe 500 without exposing internal details.
// The error is logged with context but only a generic message is returned.
func InternalErrorResponse(c *fiber.Ctx, err error, operation string) error {
	logger.WithError(err).WithField("operation", operation).Error("internal error")
	return ErrorResponseWithCode(c, 500, apperr.CodeInternalError, operation+" failed")
}

// SuccessResponse sends a standardized JSON success response
func SuccessResponse(c *fiber.Ctx, data any) error {
	requestID, _ := c.Locals("request_id").(string)
	return c.JSON(APIResponse{
		Success:   true,
		Data:      data,
		RequestID: requestID,
		Timestamp: time.Now().UTC().Format(time.RFC3339),
	})
}

func mapStatusToCode(status int) string {
	switch status {
	case 400:
		return apperr.CodeBadRequest
	case 404:
		return apperr.CodeNotFound
	case 429:
		return apperr.CodeRateLimited
	case 500:
		return apperr.CodeInternalError
	default:
		return "UNKNOWN_ERROR"
	}
}
