package helpers

import (
	"errors"
	"log"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"pokerclub/roulette"
)

// RouletteError maps the roulette error taxonomy onto the response envelope.
// Domain denials come back with a machine code naming the violated
// precondition; anything else is a generic infrastructure failure.
func RouletteError(c *fiber.Ctx, err error) error {
	var confErr *roulette.ConfigurationError
	switch {
	case errors.Is(err, roulette.ErrAlreadyUsed):
		return JSONErrorStatus(c, fiber.StatusConflict, "DEMO_SPIN_ALREADY_USED")
	case errors.Is(err, roulette.ErrNotEligible):
		return JSONErrorStatus(c, fiber.StatusForbidden, "NOT_ELIGIBLE_FOR_SPIN")
	case errors.Is(err, roulette.ErrCodeInvalid):
		return JSONError(c, "INVALID_OR_EXPIRED_CODE")
	case errors.Is(err, roulette.ErrAlreadyApplied):
		log.Printf("⚠️  Duplicate prize application attempt: %v", err)
		return JSONErrorStatus(c, fiber.StatusConflict, "PRIZE_ALREADY_APPLIED")
	case errors.Is(err, roulette.ErrInvalidStateTransition):
		return JSONErrorStatus(c, fiber.StatusConflict, "INVALID_STATE_TRANSITION")
	case errors.Is(err, roulette.ErrPositionConflict):
		return JSONErrorStatus(c, fiber.StatusConflict, "PRIZE_POSITION_TAKEN")
	case errors.Is(err, roulette.ErrInvalidPrize):
		return JSONError(c, "INVALID_PRIZE_DEFINITION")
	case errors.Is(err, roulette.ErrNoActivePrizes):
		return JSONErrorStatus(c, fiber.StatusServiceUnavailable, "NO_ACTIVE_PRIZES")
	case errors.As(err, &confErr):
		return JSONErrorDetail(c, fiber.StatusUnprocessableEntity, "INVALID_PRIZE_CONFIGURATION", fiber.Map{
			"total":   confErr.Total,
			"missing": confErr.Missing,
		})
	case errors.Is(err, gorm.ErrRecordNotFound):
		return JSONErrorStatus(c, fiber.StatusNotFound, "RECORD_NOT_FOUND")
	default:
		log.Printf("❌ Roulette internal error: %v", err)
		return JSONErrorStatus(c, fiber.StatusInternalServerError, "INTERNAL_ERROR")
	}
}
