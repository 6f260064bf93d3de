package roulette

import (
	"errors"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"pokerclub/models"
)

// SpinRequest is a player's attempt to spin the wheel.
type SpinRequest struct {
	SpinType string
	Code     string
}

// Spin runs the eligibility gate, draws a prize and persists the spin record
// in one transaction. The consumed resource (demo flag, code usage, bonus
// grant) is written in the same transaction, so a crash can never leave a
// code burned without a recorded spin.
//
// Demo spins come back in demo status. welcome_real spins wait for an
// administrator in pending_validation. code and bonus spins are applied
// immediately after the creation transaction commits; if that application
// fails the record stays pending_validation for an admin to resolve.
func Spin(db *gorm.DB, rng Rand, userID uint, req SpinRequest) (*models.SpinRecord, error) {
	tx := db.Begin()
	if tx.Error != nil {
		return nil, tx.Error
	}
	defer func() {
		if r := recover(); r != nil {
			tx.Rollback()
			panic(r)
		}
	}()

	var user models.User
	if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
		First(&user, userID).Error; err != nil {
		tx.Rollback()
		return nil, err
	}
	if !user.IsActive {
		tx.Rollback()
		return nil, ErrNotEligible
	}

	var codeUsed *string
	switch req.SpinType {
	case models.SpinTypeDemo:
		if user.FirstSpinDemoUsed {
			tx.Rollback()
			return nil, ErrAlreadyUsed
		}
		user.FirstSpinDemoUsed = true
		if err := tx.Save(&user).Error; err != nil {
			tx.Rollback()
			return nil, err
		}

	case models.SpinTypeWelcomeReal:
		if !user.RealSpinAvailable {
			tx.Rollback()
			return nil, ErrNotEligible
		}
		user.RealSpinAvailable = false
		if err := tx.Save(&user).Error; err != nil {
			tx.Rollback()
			return nil, err
		}

	case models.SpinTypeCode:
		code, err := consumeSpinCode(tx, req.Code)
		if err != nil {
			tx.Rollback()
			return nil, err
		}
		codeUsed = &code.Code

	case models.SpinTypeBonus:
		if err := consumeBonusGrant(tx, user.ID); err != nil {
			tx.Rollback()
			return nil, err
		}

	default:
		tx.Rollback()
		return nil, ErrNotEligible
	}

	prizes, err := ListActivePrizes(tx)
	if err != nil {
		tx.Rollback()
		return nil, err
	}
	if check := CheckProbabilities(prizes); !check.Valid {
		tx.Rollback()
		return nil, &ConfigurationError{Total: check.Total, Missing: check.Missing}
	}

	prize, err := Draw(prizes, rng)
	if err != nil {
		tx.Rollback()
		return nil, err
	}

	record := &models.SpinRecord{
		UserID:      user.ID,
		PrizeID:     prize.ID,
		SpinType:    req.SpinType,
		IsRealPrize: req.SpinType != models.SpinTypeDemo,
		CodeUsed:    codeUsed,
		PrizeStatus: models.SpinStatusDemo,
		RefID:       uuid.New().String(),
	}
	if record.IsRealPrize {
		record.PrizeStatus = models.SpinStatusPendingValidation
	}
	if err := tx.Create(record).Error; err != nil {
		tx.Rollback()
		return nil, err
	}

	if err := tx.Commit().Error; err != nil {
		return nil, err
	}

	// code and bonus spins do not wait for admin sign-off.
	if req.SpinType == models.SpinTypeCode || req.SpinType == models.SpinTypeBonus {
		if err := ApplyPrize(db, record.ID, nil); err != nil {
			return record, err
		}
		if err := db.First(record, record.ID).Error; err != nil {
			return record, err
		}
	}

	return record, nil
}

// consumeSpinCode resolves and burns one use of a spin-granting code. The
// row is locked so two concurrent redemptions cannot both take the last use.
func consumeSpinCode(tx *gorm.DB, raw string) (*models.SpinCode, error) {
	if raw == "" {
		return nil, ErrCodeInvalid
	}
	var code models.SpinCode
	err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
		Where("code = ? AND is_active = true AND grants_spin = true", raw).
		First(&code).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrCodeInvalid
		}
		return nil, err
	}
	if code.ExpiresAt != nil && code.ExpiresAt.Before(time.Now()) {
		return nil, ErrCodeInvalid
	}
	if code.UsedCount >= code.MaxUses {
		return nil, ErrCodeInvalid
	}

	code.UsedCount++
	if code.UsedCount >= code.MaxUses {
		code.IsActive = false
	}
	if err := tx.Save(&code).Error; err != nil {
		return nil, err
	}
	return &code, nil
}

// consumeBonusGrant claims the oldest unexpired active roulette_spin bonus
// the user holds. Lapsed grants are swept to expired first so an old dead
// grant never shadows a later valid one. The locked read keeps two
// simultaneous requests from spending the same grant.
func consumeBonusGrant(tx *gorm.DB, userID uint) error {
	now := time.Now()
	if err := tx.Model(&models.Bonus{}).
		Where("user_id = ? AND bonus_type = ? AND status = ? AND expires_at IS NOT NULL AND expires_at < ?",
			userID, models.BonusTypeRouletteSpin, models.BonusStatusActive, now).
		Update("status", models.BonusStatusExpired).Error; err != nil {
		return err
	}

	var grant models.Bonus
	err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
		Where("user_id = ? AND bonus_type = ? AND status = ? AND (expires_at IS NULL OR expires_at >= ?)",
			userID, models.BonusTypeRouletteSpin, models.BonusStatusActive, now).
		Order("created_at asc").
		First(&grant).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrNotEligible
		}
		return err
	}

	grant.Status = models.BonusStatusClaimed
	return tx.Save(&grant).Error
}

// SpinStatus is the eligibility snapshot shown to a player.
type SpinStatus struct {
	DemoAvailable     bool  `json:"demo_available"`
	RealSpinAvailable bool  `json:"real_spin_available"`
	ValidatedForSpin  bool  `json:"validated_for_spin"`
	BonusSpins        int64 `json:"bonus_spins"`
}

// EligibilityFor reads the user's current spin eligibility. This is a plain
// read; the authoritative check happens again, under lock, inside Spin.
func EligibilityFor(db *gorm.DB, userID uint) (*SpinStatus, error) {
	var user models.User
	if err := db.First(&user, userID).Error; err != nil {
		return nil, err
	}

	var bonusSpins int64
	err := db.Model(&models.Bonus{}).
		Where("user_id = ? AND bonus_type = ? AND status = ?",
			userID, models.BonusTypeRouletteSpin, models.BonusStatusActive).
		Count(&bonusSpins).Error
	if err != nil {
		return nil, err
	}

	return &SpinStatus{
		DemoAvailable:     !user.FirstSpinDemoUsed,
		RealSpinAvailable: user.RealSpinAvailable,
		ValidatedForSpin:  user.ValidatedForSpin,
		BonusSpins:        bonusSpins,
	}, nil
}
