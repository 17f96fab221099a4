package middleware

import (
	"crypto/subtle"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/keyauth"
)

const (
	// APIKeyHeader carries the platform key.
	APIKeyHeader = "X-API-Key"
	// FunctionsKeyHeader is accepted for callers that still send the
	// serverless host's key header.
	FunctionsKeyHeader = "X-Functions-Key"
	// APIKeyQuery is the query parameter alternative to the headers.
	APIKeyQuery = "code"
)

// APIKey rejects requests that do not present key. An empty key disables
// the check. Rejections go through onDenied so the caller controls the body.
//
// keyauth reads a single location, so a key sent in FunctionsKeyHeader or
// APIKeyQuery is copied into APIKeyHeader first. APIKeyHeader wins when set.
func APIKey(key string, onDenied fiber.Handler) fiber.Handler {
	if key == "" {
		return func(c *fiber.Ctx) error { return c.Next() }
	}
	want := []byte(key)

	auth := keyauth.New(keyauth.Config{
		KeyLookup: "header:" + APIKeyHeader,
		Validator: func(_ *fiber.Ctx, got string) (bool, error) {
			if subtle.ConstantTimeCompare([]byte(got), want) != 1 {
				return false, keyauth.ErrMissingOrMalformedAPIKey
			}
			return true, nil
		},
		ErrorHandler: func(c *fiber.Ctx, _ error) error {
			return onDenied(c)
		},
	})

	return func(c *fiber.Ctx) error {
		if c.Get(APIKeyHeader) == "" {
			alt := c.Get(FunctionsKeyHeader)
			if alt == "" {
				alt = c.Query(APIKeyQuery)
			}
			if alt != "" {
				c.Request().Header.Set(APIKeyHeader, alt)
			}
		}
		return auth(c)
	}
}
