package models

import (
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// Bonus types consumed or produced by the roulette.
const (
	BonusTypeRouletteSpin  = "roulette_spin"
	BonusTypeRoulettePrize = "roulette_prize"
)

// Bonus statuses.
const (
	BonusStatusActive    = "active"
	BonusStatusClaimed   = "claimed"
	BonusStatusExpired   = "expired"
	BonusStatusCancelled = "cancelled"
)

type Bonus struct {
	gorm.Model

	UserID     uint            `gorm:"index" json:"user_id"`
	BonusType  string          `gorm:"size:32;index" json:"bonus_type"`
	Amount     decimal.Decimal `gorm:"type:numeric(15,2);default:0" json:"amount"`
	Percentage decimal.Decimal `gorm:"type:numeric(5,2);default:0" json:"percentage"`
	Status     string          `gorm:"size:16;index;default:'active'" json:"status"`
	ExpiresAt  *time.Time      `json:"expires_at,omitempty"`

	// SourceSpinID links a prize bonus back to the spin that produced it.
	SourceSpinID *uint `gorm:"index" json:"source_spin_id,omitempty"`

	Note string `gorm:"size:255" json:"note"`
}
