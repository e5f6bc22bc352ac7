package apperror

import (
	"fmt"

	"mcq-service/config"
	"mcq-service/pkg/apperror/status"
	"mcq-service/pkg/logger"

	"github.com/gofiber/fiber/v3"
)

// WriteError logs a structured warning and returns a standardized JSON error
func WriteError(module config.Module, c fiber.Ctx, httpStatus int, code string, message, details string) error {
	logger.WithFields(map[string]interface{}{
		"module":        module,
		"status_code":   httpStatus,
		"error_code":    code,
		"error_message": message,
		"details":       details,
		"http_method":   c.Method(),
		"path":          c.Path(),
		"ip":            c.IP(),
		"request_id":    c.Get("X-Request-ID"),
	}).Warnf("http error")

	return c.Status(httpStatus).JSON(ErrorResponse{
		Error:     message,
		Details:   details,
		ErrorCode: code,
	})
}

func errorCode(code status.ErrorCode) string {
	return fmt.Sprintf("AI-%d", code)
}

// BadRequest writes a 400 with the given code.
func BadRequest(module config.Module, c fiber.Ctx, code status.ErrorCode, message, details string) error {
	return WriteError(module, c, fiber.StatusBadRequest, errorCode(code), message, details)
}

// NotFound writes a 404 with the given code.
func NotFound(module config.Module, c fiber.Ctx, code status.ErrorCode, message string) error {
	return WriteError(module, c, fiber.StatusNotFound, errorCode(code), message, "")
}

// InternalError writes a 500. The code is taken from err when it carries one.
func InternalError(module config.Module, c fiber.Ctx, message string, err error) error {
	code := status.ErrorCodeInternal
	if ce, ok := err.(status.CodedError); ok {
		code = ce.ErrorCode()
	}
	return WriteError(module, c, fiber.StatusInternalServerError, errorCode(code), message, err.Error())
}

// Success writes a standardized JSON success envelope
func Success(c fiber.Ctx, message string, data any) error {
	return c.Status(fiber.StatusOK).JSON(FiberSuccessMessage{
		Code:       int(status.OK),
		Message:    message,
		TrackingID: c.Get("X-Request-ID"),
		Data:       data,
	})
}
