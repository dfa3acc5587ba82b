package middleware

import (
	"github.com/DharunKumar-K/eventpulse/config"
	"github.com/DharunKumar-K/eventpulse/errors"

	"github.com/gofiber/fiber/v2"
	jwtware "github.com/gofiber/jwt/v2"
	"github.com/golang-jwt/jwt/v4"
)

func Authorize() fiber.Handler {
	envval, _ := config.GetSecret("SIGN")

	return jwtware.New(jwtware.Config{
		SigningKey:   []byte(envval),
		ErrorHandler: jwtError,
		ContextKey:   "identity",
	})
}

func jwtError(c *fiber.Ctx, err error) error {
	if err.Error() == "Missing or malformed JWT" {
		return errors.RaiseBadRequestError(c, "Missing or malformed JWT")
	}
	return errors.RaiseUnauthenticatedError(c, "Invalid or expired JWT")
}

// RequireRoles is the single capability check applied before any handler
// logic: it reads the verified identity and denies unless the caller's role
// is in the allowed set. Must be registered after Authorize.
func RequireRoles(roles ...string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		token, ok := c.Locals("identity").(*jwt.Token)
		if !ok {
			return errors.RaiseUnauthenticatedError(c, "Invalid or expired JWT")
		}
		claims, ok := token.Claims.(jwt.MapClaims)
		if !ok {
			return errors.RaiseUnauthenticatedError(c, "Invalid or expired JWT")
		}

		role, _ := claims["role"].(string)
		for _, allowed := range roles {
			if role == allowed {
				return c.Next()
			}
		}
		return errors.RaisePermissionsError(c, "Not authorized to access this resource")
	}
}
