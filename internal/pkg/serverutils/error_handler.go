package serverutils

import (
	"errors"

	"lawpro-be/internal/pkg/logger"
	"lawpro-be/pkg/apperr"

	"github.com/gofiber/fiber/v2"
)

// StatusFor maps an error kind to the HTTP status the API answers with.
func StatusFor(kind apperr.Kind) int {
	switch kind {
	case apperr.KindNotFound, apperr.KindNoLawyersFound:
		return fiber.StatusNotFound
	case apperr.KindValidation, apperr.KindNoLocationSupplied:
		return fiber.StatusBadRequest
	case apperr.KindTurnInProgress:
		return fiber.StatusConflict
	case apperr.KindNoLocationFound:
		return fiber.StatusUnprocessableEntity
	case apperr.KindNetwork, apperr.KindMalformedResponse:
		return fiber.StatusBadGateway
	default:
		return fiber.StatusInternalServerError
	}
}

// ErrorHandlerMiddleware turns errors returned by downstream handlers into
// the response envelope. log may be nil.
func ErrorHandlerMiddleware(log logger.ILogger) fiber.Handler {
	return func(ctx *fiber.Ctx) error {
		err := ctx.Next()
		if err == nil {
			return nil
		}

		var fiberErr *fiber.Error
		if errors.As(err, &fiberErr) {
			return ctx.Status(fiberErr.Code).JSON(ErrorResponse(fiberErr.Code, fiberErr.Message))
		}

		var appErr *apperr.AppError
		if !errors.As(err, &appErr) {
			if log != nil {
				log.Error("HTTP", "Unhandled error", map[string]interface{}{
					"path":  ctx.Path(),
					"error": err.Error(),
				})
			}
			return ctx.Status(fiber.StatusInternalServerError).JSON(ErrorResponse(fiber.StatusInternalServerError, "Internal server error"))
		}

		status := StatusFor(appErr.Kind)
		if status >= fiber.StatusInternalServerError && log != nil {
			log.Error("HTTP", "Request failed", map[string]interface{}{
				"path":  ctx.Path(),
				"kind":  appErr.Kind.String(),
				"error": err.Error(),
			})
		}

		message := appErr.Message
		if status == fiber.StatusInternalServerError {
			message = "Internal server error"
		}
		return ctx.Status(status).JSON(ErrorResponse(status, message))
	}
}
