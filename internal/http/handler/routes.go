package handler

import (
	"context"
	"database/sql"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"pdfdecrypt/internal/database"
	"pdfdecrypt/internal/decrypt"
	"pdfdecrypt/internal/http/middleware"
	"pdfdecrypt/internal/service"
)

// Decrypter runs the decryption pipeline for one validated request.
type Decrypter interface {
	Decrypt(ctx context.Context, in decrypt.Input) decrypt.Outcome
}

// Dependencies are the collaborators the HTTP layer needs.
// DB and Audit are nil when the audit trail is disabled.
type Dependencies struct {
	DB        *sql.DB
	Validator *decrypt.Validator
	Engine    Decrypter
	Observer  decrypt.Observer
	Audit     service.AuditService
	Log       *zap.Logger
	APIKey    string
}

// RegisterRoutes attaches HTTP routes to the provided Fiber app.
func RegisterRoutes(app *fiber.App, d Dependencies) {
	if d.Log == nil {
		d.Log = zap.NewNop()
	}
	if d.Validator == nil {
		d.Validator = decrypt.NewValidator(nil)
	}

	app.Get("/health", HealthCheck(d.DB))
	app.Get("/healthz", LivenessProbe())

	guard := middleware.APIKey(d.APIKey, func(c *fiber.Ctx) error {
		return writeError(c, fiber.StatusUnauthorized, MsgUnauthorized)
	})

	decryptHandler := DecryptDocument(d)
	api := app.Group("/api", guard)
	api.Post("/decrypt", decryptHandler)
	// Path used by clients of the serverless deployment.
	app.Post("/decrypt", guard, decryptHandler)

	if d.Audit != nil {
		api.Get("/audit", ListAudit(d.Audit))
	}
}

// HealthCheck reports readiness. With an audit database configured it must answer a ping.
func HealthCheck(db *sql.DB) fiber.Handler {
	return func(c *fiber.Ctx) error {
		if db != nil {
			if err := database.Ping(c.UserContext(), db); err != nil {
				return writeError(c, fiber.StatusServiceUnavailable, MsgUnavailable)
			}
		}
		return c.Status(fiber.StatusOK).JSON(fiber.Map{"status": "healthy"})
	}
}

// LivenessProbe always answers 200 while the process serves requests.
func LivenessProbe() fiber.Handler {
	return func(c *fiber.Ctx) error {
		return c.SendStatus(fiber.StatusOK)
	}
}
