package auth

import (
	"pokerclub/database"
	"pokerclub/helpers"
	"pokerclub/models"

	"github.com/gofiber/fiber/v2"
	"golang.org/x/crypto/bcrypt"
)

type LoginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

func Login(c *fiber.Ctx) error {
	var req LoginRequest
	if err := c.BodyParser(&req); err != nil {
		return helpers.JSONError(c, "INVALID_JSON")
	}
	if req.Username == "" || req.Password == "" {
		return helpers.JSONError(c, "USERNAME_AND_PASSWORD_REQUIRED")
	}

	var user models.User
	if err := database.DB.Where("username = ? AND is_active = true", req.Username).First(&user).Error; err != nil {
		return helpers.JSONErrorStatus(c, fiber.StatusUnauthorized, "INVALID_CREDENTIALS")
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(req.Password)); err != nil {
		return helpers.JSONErrorStatus(c, fiber.StatusUnauthorized, "INVALID_CREDENTIALS")
	}

	session := models.Session{UserID: user.ID}
	if err := database.DB.Create(&session).Error; err != nil {
		return helpers.JSONErrorStatus(c, fiber.StatusInternalServerError, "FAILED_TO_CREATE_SESSION")
	}

	return helpers.JSONSuccess(c, "Logged in", fiber.Map{
		"session_id": session.SID,
		"expires_at": session.ExpiresAt,
		"user": fiber.Map{
			"id":       user.ID,
			"username": user.Username,
			"role":     user.Role,
		},
	})
}
