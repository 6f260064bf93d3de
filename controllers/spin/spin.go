package spin

import (
	"log"

	"pokerclub/database"
	"pokerclub/helpers"
	"pokerclub/models"
	"pokerclub/roulette"

	"github.com/gofiber/fiber/v2"
)

var rng roulette.Rand = roulette.CryptoRand{}

type SpinRequestBody struct {
	SpinType string `json:"spin_type"`
	Code     string `json:"code"`
}

func PostSpin(c *fiber.Ctx) error {
	user, ok := c.Locals("user").(models.User)
	if !ok {
		return helpers.JSONErrorStatus(c, fiber.StatusUnauthorized, "INVALID_SESSION")
	}

	var req SpinRequestBody
	if err := c.BodyParser(&req); err != nil {
		return helpers.JSONError(c, "INVALID_JSON")
	}
	if req.SpinType == "" {
		return helpers.JSONError(c, "SPIN_TYPE_REQUIRED")
	}

	record, err := roulette.Spin(database.DB, rng, user.ID, roulette.SpinRequest{
		SpinType: req.SpinType,
		Code:     req.Code,
	})
	if err != nil {
		if record == nil {
			return helpers.RouletteError(c, err)
		}
		// The spin committed but the immediate prize application failed.
		// The record is queued for an admin; tell the client so they
		// don't retry a spin they already own.
		log.Printf("⚠️  Spin %d committed but prize application failed: %v", record.ID, err)
		return helpers.JSONErrorDetail(c, fiber.StatusInternalServerError, "PRIZE_APPLICATION_FAILED", fiber.Map{
			"spin_id":      record.ID,
			"ref_id":       record.RefID,
			"spin_type":    record.SpinType,
			"prize_status": record.PrizeStatus,
		})
	}

	var prize models.PrizeDefinition
	if err := database.DB.Unscoped().First(&prize, record.PrizeID).Error; err != nil {
		return helpers.RouletteError(c, err)
	}

	return helpers.JSONSuccess(c, "Spin resolved", fiber.Map{
		"spin_id":      record.ID,
		"ref_id":       record.RefID,
		"spin_type":    record.SpinType,
		"prize_status": record.PrizeStatus,
		"is_real":      record.IsRealPrize,
		"prize": fiber.Map{
			"id":          prize.ID,
			"name":        prize.Name,
			"description": prize.Description,
			"prize_type":  prize.PrizeType,
			"position":    prize.Position,
		},
	})
}

func GetStatus(c *fiber.Ctx) error {
	user, ok := c.Locals("user").(models.User)
	if !ok {
		return helpers.JSONErrorStatus(c, fiber.StatusUnauthorized, "INVALID_SESSION")
	}

	status, err := roulette.EligibilityFor(database.DB, user.ID)
	if err != nil {
		return helpers.RouletteError(c, err)
	}
	return helpers.JSONSuccess(c, "Spin eligibility", status)
}

func GetHistory(c *fiber.Ctx) error {
	user, ok := c.Locals("user").(models.User)
	if !ok {
		return helpers.JSONErrorStatus(c, fiber.StatusUnauthorized, "INVALID_SESSION")
	}

	var spins []models.SpinRecord
	if err := database.DB.
		Where("user_id = ?", user.ID).
		Order("created_at desc").
		Limit(50).
		Preload("Prize").
		Find(&spins).Error; err != nil {
		return helpers.RouletteError(c, err)
	}

	return helpers.JSONSuccess(c, "Spin history", spins)
}

// GetWheel returns the active catalog in display order, without
// probabilities.
func GetWheel(c *fiber.Ctx) error {
	prizes, err := roulette.ListActivePrizes(database.DB)
	if err != nil {
		return helpers.RouletteError(c, err)
	}

	wheel := make([]fiber.Map, 0, len(prizes))
	for _, p := range prizes {
		wheel = append(wheel, fiber.Map{
			"id":          p.ID,
			"name":        p.Name,
			"description": p.Description,
			"prize_type":  p.PrizeType,
			"position":    p.Position,
		})
	}
	return helpers.JSONSuccess(c, "Active wheel", wheel)
}
