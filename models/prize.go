package models

import (
	"github.com/shopspring/decimal"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// Prize behaviors select the side effect executed when a won prize is applied.
const (
	PrizeBehaviorInstantCash = "instant_cash"
	PrizeBehaviorBonus       = "bonus"
	PrizeBehaviorManual      = "manual"
	PrizeBehaviorCustom      = "custom"
)

type PrizeDefinition struct {
	gorm.Model

	Name        string `gorm:"size:64;not null" json:"name"`
	Description string `gorm:"size:255" json:"description"`

	// PrizeType is display/grouping only; PrizeBehavior drives the applier.
	PrizeType     string          `gorm:"size:32" json:"prize_type"`
	PrizeBehavior string          `gorm:"size:16;not null" json:"prize_behavior"`
	PrizeValue    decimal.Decimal `gorm:"type:numeric(15,2);default:0" json:"prize_value"`
	CustomConfig  datatypes.JSON  `gorm:"type:jsonb" json:"custom_config"`

	Probability decimal.Decimal `gorm:"type:numeric(5,2);not null" json:"probability"`
	Position    int             `gorm:"not null;index" json:"position"`

	MinDepositRequired decimal.Decimal `gorm:"type:numeric(15,2);default:0" json:"min_deposit_required"`
	IsActive           bool            `gorm:"default:true" json:"is_active"`
}
