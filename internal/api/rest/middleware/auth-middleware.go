package middleware

import (
	"github.com/SilverSkills/user_service/internal/helper"
	"github.com/SilverSkills/user_service/internal/interfaces"
	"github.com/SilverSkills/user_service/internal/services"
	"github.com/gofiber/fiber/v2"
)

// AuthMiddleware verifies the session cookie in two steps: the signature and
// expiry of the token itself, then the allowlist entry in the session store.
// A logged-out session fails the second step even with a valid token.
func AuthMiddleware(auth helper.Auth, sessions interfaces.SessionStore) fiber.Handler {
	return func(ctx *fiber.Ctx) error {
		claims, err := auth.VerifySessionToken(ctx.Cookies(helper.SessionCookieName))
		if err != nil {
			return ctx.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"error": "not authenticated",
			})
		}

		userID, err := sessions.GetSession(ctx.UserContext(), claims.SessionID)
		if err != nil || userID == 0 || userID != claims.UserID {
			return ctx.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"error": "invalid or expired session",
			})
		}

		ctx.Locals("userID", claims.UserID)
		ctx.Locals("session", claims)
		return ctx.Next()
	}
}

func AdminOnly(userSvc services.UserService) fiber.Handler {
	return func(ctx *fiber.Ctx) error {
		userID, ok := ctx.Locals("userID").(uint)
		if !ok || userID == 0 {
			return ctx.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"error": "unauthorized",
			})
		}

		isAdmin, err := userSvc.IsAdmin(userID)
		if err != nil {
			return ctx.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
				"error": err.Error(),
			})
		}

		if !isAdmin {
			return ctx.Status(fiber.StatusForbidden).JSON(fiber.Map{
				"error": "admin only",
			})
		}

		return ctx.Next()
	}
}
