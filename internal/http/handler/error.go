package handler

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"pdfdecrypt/internal/decrypt"
	"pdfdecrypt/internal/http/middleware"
)

// Messages for failures raised outside the decrypt pipeline.
const (
	MsgBadRequest       = "Bad request."
	MsgNotFound         = "Resource not found."
	MsgMethodNotAllowed = "Method not allowed."
	MsgTooLarge         = "The uploaded file exceeds the maximum allowed size."
	MsgUnauthorized     = "Unauthorized"
	MsgUnavailable      = "Service unavailable."
)

// writeEnvelope renders env as-is. It is the only place response bytes are written.
func writeEnvelope(c *fiber.Ctx, env decrypt.Envelope) error {
	for k, v := range env.Headers {
		c.Set(k, v)
	}
	c.Set(fiber.HeaderContentType, env.ContentType)
	return c.Status(env.Status).Send(env.Body)
}

// writeError writes the single-field JSON error body. message must be safe
// to show the caller.
func writeError(c *fiber.Ctx, status int, message string) error {
	return writeEnvelope(c, decrypt.ErrorEnvelope(status, message))
}

// ErrorHandler returns a Fiber global error handler that renders every
// unhandled error in the same JSON shape as the decrypt endpoint.
func ErrorHandler(log *zap.Logger) fiber.ErrorHandler {
	if log == nil {
		log = zap.NewNop()
	}
	return func(c *fiber.Ctx, err error) error {
		status := fiber.StatusInternalServerError
		var fe *fiber.Error
		if errors.As(err, &fe) {
			status = fe.Code
		}

		switch status {
		case fiber.StatusBadRequest:
			return writeError(c, status, MsgBadRequest)
		case fiber.StatusUnauthorized:
			return writeError(c, status, MsgUnauthorized)
		case fiber.StatusNotFound:
			return writeError(c, status, MsgNotFound)
		case fiber.StatusMethodNotAllowed:
			return writeError(c, status, MsgMethodNotAllowed)
		case fiber.StatusRequestEntityTooLarge:
			return writeError(c, status, MsgTooLarge)
		case fiber.StatusServiceUnavailable:
			return writeError(c, status, MsgUnavailable)
		}

		log.Error("unhandled error",
			zap.String("request_id", middleware.RequestIDFrom(c)),
			zap.String("path", c.Path()),
			zap.Int("status", status),
			zap.Error(err),
		)
		if status < fiber.StatusInternalServerError {
			return writeError(c, status, MsgBadRequest)
		}
		return writeError(c, fiber.StatusInternalServerError, decrypt.MsgInternalError)
	}
}
