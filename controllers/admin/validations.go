package admin

import (
	"strconv"

	"pokerclub/database"
	"pokerclub/helpers"
	"pokerclub/roulette"

	"github.com/gofiber/fiber/v2"
)

// ListValidations returns the admin review queues: demo spins awaiting the
// human check, and real spins awaiting prize application.
func ListValidations(c *fiber.Ctx) error {
	pendingDemos, err := roulette.ListPendingValidations(database.DB)
	if err != nil {
		return helpers.RouletteError(c, err)
	}
	pendingPrizes, err := roulette.ListPendingPrizes(database.DB)
	if err != nil {
		return helpers.RouletteError(c, err)
	}

	return helpers.JSONSuccess(c, "Pending validations", fiber.Map{
		"pending_demos":  pendingDemos,
		"pending_prizes": pendingPrizes,
	})
}

func ApproveSpin(c *fiber.Ctx) error {
	spinID, err := strconv.ParseUint(c.Params("id"), 10, 64)
	if err != nil {
		return helpers.JSONError(c, "INVALID_SPIN_ID")
	}
	adminID, ok := c.Locals("admin_id").(uint)
	if !ok {
		return helpers.JSONErrorStatus(c, fiber.StatusUnauthorized, "ADMIN_ID_REQUIRED")
	}

	if err := roulette.ApproveSpin(database.DB, uint(spinID), adminID); err != nil {
		return helpers.RouletteError(c, err)
	}
	return helpers.JSONSuccess(c, "Spin approved", nil)
}

func RejectSpin(c *fiber.Ctx) error {
	spinID, err := strconv.ParseUint(c.Params("id"), 10, 64)
	if err != nil {
		return helpers.JSONError(c, "INVALID_SPIN_ID")
	}
	adminID, ok := c.Locals("admin_id").(uint)
	if !ok {
		return helpers.JSONErrorStatus(c, fiber.StatusUnauthorized, "ADMIN_ID_REQUIRED")
	}

	if err := roulette.RejectSpin(database.DB, uint(spinID), adminID); err != nil {
		return helpers.RouletteError(c, err)
	}
	return helpers.JSONSuccess(c, "Spin rejected", nil)
}
