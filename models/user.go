package models

import (
	"github.com/shopspring/decimal"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

type User struct {
	gorm.Model

	Username string          `gorm:"uniqueIndex;size:32" json:"username"`
	Password string          `gorm:"size:128" json:"-"`
	Role     string          `gorm:"size:16;default:'player'" json:"role"`
	Balance  decimal.Decimal `gorm:"type:numeric(15,2);default:0" json:"balance"`
	Currency string          `gorm:"size:8;default:'PEN'" json:"currency"`
	IsActive bool            `gorm:"default:true" json:"is_active"`

	// Roulette eligibility flags.
	FirstSpinDemoUsed bool `gorm:"default:false" json:"first_spin_demo_used"`
	RealSpinAvailable bool `gorm:"default:false" json:"real_spin_available"`
	ValidatedForSpin  bool `gorm:"default:false" json:"validated_for_spin"`

	VipPoints        int64          `gorm:"default:0" json:"vip_points"`
	UnlockedFeatures datatypes.JSON `gorm:"type:jsonb" json:"unlocked_features"`

	Spins          []SpinRecord   `gorm:"foreignKey:UserID"`
	Bonuses        []Bonus        `gorm:"foreignKey:UserID"`
	BalanceEntries []BalanceEntry `gorm:"foreignKey:UserID"`
}

type BalanceEntry struct {
	gorm.Model

	UserID        uint            `gorm:"index"`
	TrxType       string          `gorm:"size:16"`
	Amount        decimal.Decimal `gorm:"type:numeric(15,2)" json:"amount"`
	BalanceBefore decimal.Decimal `gorm:"type:numeric(15,2)" json:"balance_before"`
	BalanceAfter  decimal.Decimal `gorm:"type:numeric(15,2)" json:"balance_after"`
	Currency      string          `gorm:"size:8" json:"currency"`
	Note          string          `gorm:"size:255"`
	RefID         string          `gorm:"size:64;index"`
}
