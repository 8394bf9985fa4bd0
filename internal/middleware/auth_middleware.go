package middleware

import (
	"log"

	"olympusblog/internal/services"

	"github.com/gofiber/fiber/v2"
)

// SessionCookie is the name of the cookie carrying the signed session token.
const SessionCookie = "oblog"

// AuthRequired rejects requests without a valid session cookie and stores the
// resolved user id in the request locals.
func AuthRequired(authService *services.AuthService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		token := c.Cookies(SessionCookie)
		if token == "" {
			return c.SendStatus(fiber.StatusUnauthorized)
		}

		userID, err := authService.ValidateToken(token)
		if err != nil {
			log.Printf("Session validation failed: %v", err)
			return c.SendStatus(fiber.StatusUnauthorized)
		}

		c.Locals("user_id", userID)
		return c.Next()
	}
}

// AuthOptional resolves the session cookie when present but lets anonymous
// requests through. Handlers see an absent user id as the anonymous viewer.
func AuthOptional(authService *services.AuthService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		token := c.Cookies(SessionCookie)
		if token != "" {
			if userID, err := authService.ValidateToken(token); err == nil {
				c.Locals("user_id", userID)
			}
		}
		return c.Next()
	}
}
