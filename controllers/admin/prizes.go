package admin

import (
	"encoding/json"
	"strconv"

	"pokerclub/database"
	"pokerclub/helpers"
	"pokerclub/models"
	"pokerclub/roulette"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/shopspring/decimal"
	"gorm.io/datatypes"
)

var validate = validator.New()

type CreatePrizeRequest struct {
	Name               string         `json:"name" validate:"required,max=64"`
	Description        string         `json:"description" validate:"max=255"`
	PrizeType          string         `json:"prize_type" validate:"max=32"`
	PrizeBehavior      string         `json:"prize_behavior" validate:"required,oneof=instant_cash bonus manual custom"`
	PrizeValue         float64        `json:"prize_value" validate:"gte=0"`
	CustomConfig       map[string]any `json:"custom_config"`
	Probability        float64        `json:"probability" validate:"gte=0,lte=100"`
	Position           int            `json:"position" validate:"required,min=1,max=20"`
	MinDepositRequired float64        `json:"min_deposit_required" validate:"gte=0"`
	IsActive           *bool          `json:"is_active"`
}

func ListPrizes(c *fiber.Ctx) error {
	var prizes []models.PrizeDefinition
	if err := database.DB.Order("position asc").Find(&prizes).Error; err != nil {
		return helpers.RouletteError(c, err)
	}
	return helpers.JSONSuccess(c, "Prize catalog", prizes)
}

func CreatePrize(c *fiber.Ctx) error {
	var req CreatePrizeRequest
	if err := c.BodyParser(&req); err != nil {
		return helpers.JSONError(c, "INVALID_JSON")
	}
	if err := validate.Struct(&req); err != nil {
		return helpers.JSONError(c, "INVALID_PRIZE_PAYLOAD")
	}

	prize := models.PrizeDefinition{
		Name:               req.Name,
		Description:        req.Description,
		PrizeType:          req.PrizeType,
		PrizeBehavior:      req.PrizeBehavior,
		PrizeValue:         decimal.NewFromFloat(req.PrizeValue),
		Probability:        decimal.NewFromFloat(req.Probability),
		Position:           req.Position,
		MinDepositRequired: decimal.NewFromFloat(req.MinDepositRequired),
		IsActive:           true,
	}
	if req.IsActive != nil {
		prize.IsActive = *req.IsActive
	}
	if req.CustomConfig != nil {
		raw, err := json.Marshal(req.CustomConfig)
		if err != nil {
			return helpers.JSONError(c, "INVALID_PRIZE_PAYLOAD")
		}
		prize.CustomConfig = datatypes.JSON(raw)
	}

	if err := roulette.CreatePrize(database.DB, &prize); err != nil {
		return helpers.RouletteError(c, err)
	}
	return helpers.JSONSuccess(c, "Prize created", prize)
}

type UpdatePrizeRequest struct {
	Name               *string        `json:"name" validate:"omitempty,max=64"`
	Description        *string        `json:"description" validate:"omitempty,max=255"`
	PrizeType          *string        `json:"prize_type" validate:"omitempty,max=32"`
	PrizeBehavior      *string        `json:"prize_behavior" validate:"omitempty,oneof=instant_cash bonus manual custom"`
	PrizeValue         *float64       `json:"prize_value" validate:"omitempty,gte=0"`
	CustomConfig       map[string]any `json:"custom_config"`
	Probability        *float64       `json:"probability" validate:"omitempty,gte=0,lte=100"`
	Position           *int           `json:"position" validate:"omitempty,min=1,max=20"`
	MinDepositRequired *float64       `json:"min_deposit_required" validate:"omitempty,gte=0"`
	IsActive           *bool          `json:"is_active"`
}

func UpdatePrize(c *fiber.Ctx) error {
	prizeID, err := strconv.ParseUint(c.Params("id"), 10, 64)
	if err != nil {
		return helpers.JSONError(c, "INVALID_PRIZE_ID")
	}

	var req UpdatePrizeRequest
	if err := c.BodyParser(&req); err != nil {
		return helpers.JSONError(c, "INVALID_JSON")
	}
	if err := validate.Struct(&req); err != nil {
		return helpers.JSONError(c, "INVALID_PRIZE_PAYLOAD")
	}

	update := roulette.PrizeUpdate{
		Name:          req.Name,
		Description:   req.Description,
		PrizeType:     req.PrizeType,
		PrizeBehavior: req.PrizeBehavior,
		Position:      req.Position,
		IsActive:      req.IsActive,
	}
	if req.PrizeValue != nil {
		v := decimal.NewFromFloat(*req.PrizeValue)
		update.PrizeValue = &v
	}
	if req.Probability != nil {
		v := decimal.NewFromFloat(*req.Probability)
		update.Probability = &v
	}
	if req.MinDepositRequired != nil {
		v := decimal.NewFromFloat(*req.MinDepositRequired)
		update.MinDepositRequired = &v
	}
	if req.CustomConfig != nil {
		raw, err := json.Marshal(req.CustomConfig)
		if err != nil {
			return helpers.JSONError(c, "INVALID_PRIZE_PAYLOAD")
		}
		update.CustomConfig = raw
	}

	prize, err := roulette.UpdatePrize(database.DB, uint(prizeID), &update)
	if err != nil {
		return helpers.RouletteError(c, err)
	}
	return helpers.JSONSuccess(c, "Prize updated", prize)
}

type ReconfigureRequest struct {
	Entries []roulette.CatalogEntry `json:"entries" validate:"required,min=1,dive"`
}

// Reconfigure rebalances several prizes in one shot. This is the only path
// that can deactivate a prize, since single edits cannot keep the active sum
// at 100 while removing probability mass.
func Reconfigure(c *fiber.Ctx) error {
	var req ReconfigureRequest
	if err := c.BodyParser(&req); err != nil {
		return helpers.JSONError(c, "INVALID_JSON")
	}
	if err := validate.Struct(&req); err != nil {
		return helpers.JSONError(c, "INVALID_PRIZE_PAYLOAD")
	}

	if err := roulette.ReconfigureCatalog(database.DB, req.Entries); err != nil {
		return helpers.RouletteError(c, err)
	}
	return helpers.JSONSuccess(c, "Catalog reconfigured", nil)
}

type DeactivateRequest struct {
	Rebalanced []roulette.CatalogEntry `json:"rebalanced" validate:"dive"`
}

func DeactivatePrize(c *fiber.Ctx) error {
	prizeID, err := strconv.ParseUint(c.Params("id"), 10, 64)
	if err != nil {
		return helpers.JSONError(c, "INVALID_PRIZE_ID")
	}

	var req DeactivateRequest
	if len(c.Body()) > 0 {
		if err := c.BodyParser(&req); err != nil {
			return helpers.JSONError(c, "INVALID_JSON")
		}
	}

	if err := roulette.DeactivatePrize(database.DB, uint(prizeID), req.Rebalanced); err != nil {
		return helpers.RouletteError(c, err)
	}
	return helpers.JSONSuccess(c, "Prize deactivated", nil)
}

// CheckCatalog reports the probability-sum invariant of the active wheel.
func CheckCatalog(c *fiber.Ctx) error {
	check, err := roulette.ValidateProbabilitySum(database.DB)
	if err != nil {
		return helpers.RouletteError(c, err)
	}
	return helpers.JSONSuccess(c, "Probability check", check)
}
