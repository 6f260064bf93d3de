package middlewares

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"os"
	"strconv"

	"pokerclub/helpers"

	"github.com/gofiber/fiber/v2"
)

// AdminAuth checks the HMAC signature configured for the back office. The
// admin panel signs ADMIN_API_CODE with ADMIN_API_SECRET and sends the hex
// digest plus its operator id on every request.
func AdminAuth() fiber.Handler {
	return func(c *fiber.Ctx) error {
		signature := c.Get("X-Admin-Signature")
		if signature == "" {
			return helpers.JSONErrorStatus(c, fiber.StatusUnauthorized, "SIGNATURE_REQUIRED")
		}

		adminCode := os.Getenv("ADMIN_API_CODE")
		adminSecret := os.Getenv("ADMIN_API_SECRET")

		h := hmac.New(sha256.New, []byte(adminSecret))
		h.Write([]byte(adminCode + adminSecret))
		expected := hex.EncodeToString(h.Sum(nil))

		if !hmac.Equal([]byte(signature), []byte(expected)) {
			return helpers.JSONErrorStatus(c, fiber.StatusUnauthorized, "INVALID_SIGNATURE")
		}

		adminID, err := strconv.ParseUint(c.Get("X-Admin-ID"), 10, 64)
		if err != nil || adminID == 0 {
			return helpers.JSONErrorStatus(c, fiber.StatusUnauthorized, "ADMIN_ID_REQUIRED")
		}
		c.Locals("admin_id", uint(adminID))

		return c.Next()
	}
}
