package auth

import (
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog/log"
	"github.com/spf13/viper"

	"github.com/sofialeaf/quillfeed/pkg/internal/models"
	"github.com/sofialeaf/quillfeed/pkg/internal/services"
)

const CookieKey = "identity"

// ContextMiddleware resolves the requester from the bearer token when one
// is present. Anonymous requests pass through untouched.
func ContextMiddleware(c *fiber.Ctx) error {
	token := retrieveToken(c)
	if len(token) > 0 {
		if claims, err := ReadToken(token); err == nil {
			if account, err := services.LoadOrCreateAccount(claims.Name, claims.Nick, claims.IsAdmin); err == nil {
				c.Locals("user", account)
			} else {
				log.Warn().Err(err).Str("name", claims.Name).Msg("Unable to mirror account from token claims...")
			}
		}
	}

	return c.Next()
}

func retrieveToken(c *fiber.Ctx) string {
	if raw := c.Get(fiber.HeaderAuthorization); len(raw) > 0 {
		return strings.TrimPrefix(raw, "Bearer ")
	}
	return c.Cookies(CookieKey)
}

func GetUser(c *fiber.Ctx) (models.Account, bool) {
	user, ok := c.Locals("user").(models.Account)
	return user, ok
}

// RedirectLogin sends anonymous requesters to the identity provider's
// login entry point.
func RedirectLogin(c *fiber.Ctx) error {
	return c.Redirect(viper.GetString("security.login_url"), fiber.StatusFound)
}

func EnsureAdmin(c *fiber.Ctx) error {
	user, ok := GetUser(c)
	if !ok {
		return fiber.NewError(fiber.StatusUnauthorized, "unauthenticated")
	}
	if !user.IsAdmin {
		return fiber.NewError(fiber.StatusForbidden, "admin permission required")
	}
	return nil
}
