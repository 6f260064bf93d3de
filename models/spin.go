package models

import (
	"time"

	"gorm.io/gorm"
)

// Spin types.
const (
	SpinTypeDemo        = "demo"
	SpinTypeWelcomeReal = "welcome_real"
	SpinTypeCode        = "code"
	SpinTypeBonus       = "bonus"
)

// Spin prize statuses.
const (
	SpinStatusDemo              = "demo"
	SpinStatusPendingValidation = "pending_validation"
	SpinStatusApplied           = "applied"
	SpinStatusRejected          = "rejected"
)

type SpinRecord struct {
	gorm.Model

	UserID  uint `gorm:"index:idx_user_spin_type" json:"user_id"`
	PrizeID uint `gorm:"index" json:"prize_id"`

	SpinType    string  `gorm:"size:16;index:idx_user_spin_type" json:"spin_type"`
	IsRealPrize bool    `gorm:"default:false" json:"is_real_prize"`
	CodeUsed    *string `gorm:"size:32" json:"code_used,omitempty"`

	PrizeStatus string     `gorm:"size:24;index" json:"prize_status"`
	ValidatedBy *uint      `json:"validated_by,omitempty"`
	ValidatedAt *time.Time `json:"validated_at,omitempty"`

	PrizeExpiryDate *time.Time `json:"prize_expiry_date,omitempty"`

	RefID string `gorm:"size:36;uniqueIndex" json:"ref_id"`

	User  User            `gorm:"foreignKey:UserID" json:"user,omitempty"`
	Prize PrizeDefinition `gorm:"foreignKey:PrizeID" json:"prize,omitempty"`
}
