package models

import (
	"time"

	"gorm.io/gorm"
)

// SpinCode is a redeemable code granting roulette spins.
type SpinCode struct {
	gorm.Model

	Code       string     `gorm:"uniqueIndex;size:32;not null" json:"code"`
	GrantsSpin bool       `gorm:"default:true" json:"grants_spin"`
	MaxUses    int        `gorm:"default:1" json:"max_uses"`
	UsedCount  int        `gorm:"default:0" json:"used_count"`
	IsActive   bool       `gorm:"default:true" json:"is_active"`
	ExpiresAt  *time.Time `json:"expires_at,omitempty"`
}
