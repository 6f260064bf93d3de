package roulette

import (
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"pokerclub/models"
)

// transitions is the spin state machine. applied and rejected are absorbing.
var transitions = map[string][]string{
	models.SpinStatusDemo:              {models.SpinStatusPendingValidation},
	models.SpinStatusPendingValidation: {models.SpinStatusApplied, models.SpinStatusRejected},
	models.SpinStatusApplied:           {},
	models.SpinStatusRejected:          {},
}

// CanTransition reports whether a spin record may move between two statuses.
func CanTransition(from, to string) bool {
	for _, next := range transitions[from] {
		if next == to {
			return true
		}
	}
	return false
}

// ListPendingValidations returns the admin review queue: demo-status spins of
// users not yet validated, oldest first.
func ListPendingValidations(db *gorm.DB) ([]models.SpinRecord, error) {
	var spins []models.SpinRecord
	err := db.
		Joins("JOIN users ON users.id = spin_records.user_id").
		Where("spin_records.prize_status = ? AND users.validated_for_spin = false", models.SpinStatusDemo).
		Order("spin_records.created_at asc").
		Preload("User").
		Preload("Prize").
		Find(&spins).Error
	return spins, err
}

// ListPendingPrizes returns real spins still waiting for application,
// oldest first.
func ListPendingPrizes(db *gorm.DB) ([]models.SpinRecord, error) {
	var spins []models.SpinRecord
	err := db.
		Where("prize_status = ?", models.SpinStatusPendingValidation).
		Order("created_at asc").
		Preload("User").
		Preload("Prize").
		Find(&spins).Error
	return spins, err
}

// ApproveSpin resolves an admin confirmation.
//
// On a demo-status record it validates the player: validated_for_spin flips
// true, the welcome real spin is granted and the record is stamped, with no
// economic effect. On a pending_validation record it invokes the applier.
// Terminal records fail with ErrInvalidStateTransition.
func ApproveSpin(db *gorm.DB, spinID uint, adminID uint) error {
	var spin models.SpinRecord
	if err := db.First(&spin, spinID).Error; err != nil {
		return err
	}

	switch spin.PrizeStatus {
	case models.SpinStatusDemo:
		return validateDemoSpin(db, &spin, adminID)
	case models.SpinStatusPendingValidation:
		return ApplyPrize(db, spin.ID, &adminID)
	default:
		return ErrInvalidStateTransition
	}
}

// RejectSpin declines a pending_validation spin. Terminal; no side effect.
func RejectSpin(db *gorm.DB, spinID uint, adminID uint) error {
	tx := db.Begin()
	if tx.Error != nil {
		return tx.Error
	}
	defer func() {
		if r := recover(); r != nil {
			tx.Rollback()
			panic(r)
		}
	}()

	var spin models.SpinRecord
	if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
		First(&spin, spinID).Error; err != nil {
		tx.Rollback()
		return err
	}
	if !CanTransition(spin.PrizeStatus, models.SpinStatusRejected) {
		tx.Rollback()
		if spin.PrizeStatus == models.SpinStatusApplied {
			return ErrAlreadyApplied
		}
		return ErrInvalidStateTransition
	}

	now := time.Now()
	spin.PrizeStatus = models.SpinStatusRejected
	spin.ValidatedBy = &adminID
	spin.ValidatedAt = &now
	if err := tx.Save(&spin).Error; err != nil {
		tx.Rollback()
		return err
	}
	return tx.Commit().Error
}

// validateDemoSpin is the human check behind welcome_real eligibility: the
// admin confirms the demo spin and the player earns one real spin.
func validateDemoSpin(db *gorm.DB, spin *models.SpinRecord, adminID uint) error {
	return db.Transaction(func(tx *gorm.DB) error {
		var user models.User
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			First(&user, spin.UserID).Error; err != nil {
			return err
		}
		if user.ValidatedForSpin {
			return ErrInvalidStateTransition
		}
		user.ValidatedForSpin = true
		user.RealSpinAvailable = true
		if err := tx.Save(&user).Error; err != nil {
			return err
		}

		now := time.Now()
		spin.ValidatedBy = &adminID
		spin.ValidatedAt = &now
		return tx.Save(spin).Error
	})
}
