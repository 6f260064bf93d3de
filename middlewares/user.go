package middlewares

import (
	"pokerclub/database"
	"pokerclub/helpers"
	"pokerclub/models"

	"github.com/gofiber/fiber/v2"
)

func UserAuthMiddleware(c *fiber.Ctx) error {
	sid := c.Get("X-Session-ID")
	if sid == "" {
		return helpers.JSONErrorStatus(c, fiber.StatusUnauthorized, "SESSION_REQUIRED")
	}

	var session models.Session
	if err := database.DB.Preload("User").Where("sid = ?", sid).First(&session).Error; err != nil {
		return helpers.JSONErrorStatus(c, fiber.StatusUnauthorized, "INVALID_SESSION")
	}

	if session.Expired() {
		return helpers.JSONErrorStatus(c, fiber.StatusUnauthorized, "SESSION_EXPIRED")
	}
	if !session.User.IsActive {
		return helpers.JSONErrorStatus(c, fiber.StatusUnauthorized, "USER_INACTIVE")
	}

	c.Locals("user", session.User)
	return c.Next()
}
