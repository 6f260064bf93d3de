package roulette

import (
	"errors"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"pokerclub/models"
)

const (
	minPosition = 1
	maxPosition = 20
)

// sumTolerance absorbs decimal drift when admins enter probabilities like 33.33.
var sumTolerance = decimal.NewFromFloat(0.01)

var hundred = decimal.NewFromInt(100)

// SumCheck reports whether the active catalog's probabilities add up to 100.
type SumCheck struct {
	Valid   bool            `json:"valid"`
	Total   decimal.Decimal `json:"total"`
	Missing decimal.Decimal `json:"missing"`
}

// CheckProbabilities validates the probability sum of the given active set.
func CheckProbabilities(prizes []models.PrizeDefinition) SumCheck {
	total := decimal.Zero
	for _, p := range prizes {
		if !p.IsActive {
			continue
		}
		total = total.Add(p.Probability)
	}
	missing := hundred.Sub(total)
	return SumCheck{
		Valid:   missing.Abs().LessThanOrEqual(sumTolerance),
		Total:   total,
		Missing: missing,
	}
}

// ListActivePrizes returns the wheel in position order.
func ListActivePrizes(db *gorm.DB) ([]models.PrizeDefinition, error) {
	var prizes []models.PrizeDefinition
	err := db.Where("is_active = true").Order("position asc").Find(&prizes).Error
	return prizes, err
}

// ValidateProbabilitySum checks the currently persisted active catalog.
func ValidateProbabilitySum(db *gorm.DB) (SumCheck, error) {
	prizes, err := ListActivePrizes(db)
	if err != nil {
		return SumCheck{}, err
	}
	return CheckProbabilities(prizes), nil
}

func validatePrizeFields(p *models.PrizeDefinition) error {
	switch p.PrizeBehavior {
	case models.PrizeBehaviorInstantCash, models.PrizeBehaviorBonus,
		models.PrizeBehaviorManual, models.PrizeBehaviorCustom:
	default:
		return ErrInvalidPrize
	}
	if p.Position < minPosition || p.Position > maxPosition {
		return ErrPositionConflict
	}
	if p.Probability.IsNegative() || p.Probability.GreaterThan(hundred) {
		return ErrInvalidPrize
	}
	if p.PrizeValue.IsNegative() {
		return ErrInvalidPrize
	}
	return nil
}

func positionTaken(tx *gorm.DB, position int, excludeID uint) (bool, error) {
	var count int64
	q := tx.Model(&models.PrizeDefinition{}).Where("position = ? AND is_active = true", position)
	if excludeID != 0 {
		q = q.Where("id <> ?", excludeID)
	}
	if err := q.Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

// checkResultingSum validates the active sum as it would look after the
// pending mutation. The mutated prize is passed separately so the check runs
// before anything is persisted.
func checkResultingSum(tx *gorm.DB, mutated *models.PrizeDefinition) error {
	prizes, err := ListActivePrizes(tx)
	if err != nil {
		return err
	}
	merged := make([]models.PrizeDefinition, 0, len(prizes)+1)
	for _, p := range prizes {
		if mutated != nil && p.ID == mutated.ID {
			continue
		}
		merged = append(merged, p)
	}
	if mutated != nil && mutated.IsActive {
		merged = append(merged, *mutated)
	}
	if check := CheckProbabilities(merged); !check.Valid {
		return &ConfigurationError{Total: check.Total, Missing: check.Missing}
	}
	return nil
}

// CreatePrize persists a new prize definition. Position uniqueness and the
// probability-sum invariant are checked inside the same transaction, before
// the row is written.
func CreatePrize(db *gorm.DB, prize *models.PrizeDefinition) error {
	if err := validatePrizeFields(prize); err != nil {
		return err
	}
	return db.Transaction(func(tx *gorm.DB) error {
		if prize.IsActive {
			taken, err := positionTaken(tx, prize.Position, 0)
			if err != nil {
				return err
			}
			if taken {
				return ErrPositionConflict
			}
		}
		if err := checkResultingSum(tx, prize); err != nil {
			return err
		}
		return tx.Create(prize).Error
	})
}

// PrizeUpdate carries the admin-editable prize fields. Nil means unchanged.
type PrizeUpdate struct {
	Name               *string
	Description        *string
	PrizeType          *string
	PrizeBehavior      *string
	PrizeValue         *decimal.Decimal
	CustomConfig       []byte
	Probability        *decimal.Decimal
	Position           *int
	MinDepositRequired *decimal.Decimal
	IsActive           *bool
}

func (u *PrizeUpdate) applyTo(p *models.PrizeDefinition) {
	if u.Name != nil {
		p.Name = *u.Name
	}
	if u.Description != nil {
		p.Description = *u.Description
	}
	if u.PrizeType != nil {
		p.PrizeType = *u.PrizeType
	}
	if u.PrizeBehavior != nil {
		p.PrizeBehavior = *u.PrizeBehavior
	}
	if u.PrizeValue != nil {
		p.PrizeValue = *u.PrizeValue
	}
	if u.CustomConfig != nil {
		p.CustomConfig = u.CustomConfig
	}
	if u.Probability != nil {
		p.Probability = *u.Probability
	}
	if u.Position != nil {
		p.Position = *u.Position
	}
	if u.MinDepositRequired != nil {
		p.MinDepositRequired = *u.MinDepositRequired
	}
	if u.IsActive != nil {
		p.IsActive = *u.IsActive
	}
}

// UpdatePrize edits a prize definition with the same pre-commit checks as
// creation. Position conflicts only count active prizes: an inactive prize
// may park on a taken position until it is reactivated.
func UpdatePrize(db *gorm.DB, prizeID uint, update *PrizeUpdate) (*models.PrizeDefinition, error) {
	var prize models.PrizeDefinition
	err := db.Transaction(func(tx *gorm.DB) error {
		if err := tx.First(&prize, prizeID).Error; err != nil {
			return err
		}
		update.applyTo(&prize)
		if err := validatePrizeFields(&prize); err != nil {
			return err
		}
		if prize.IsActive {
			taken, err := positionTaken(tx, prize.Position, prize.ID)
			if err != nil {
				return err
			}
			if taken {
				return ErrPositionConflict
			}
		}
		if err := checkResultingSum(tx, &prize); err != nil {
			return err
		}
		return tx.Save(&prize).Error
	})
	if err != nil {
		return nil, err
	}
	return &prize, nil
}

// CatalogEntry is one row of a bulk reconfiguration.
type CatalogEntry struct {
	PrizeID     uint            `json:"prize_id"`
	Probability decimal.Decimal `json:"probability"`
	Position    int             `json:"position"`
	IsActive    bool            `json:"is_active"`
}

// ReconfigureCatalog applies probability/position/active changes to several
// prizes at once and validates the resulting wheel as a whole. Single-prize
// edits can never deactivate a prize without breaking the sum; this is the
// operation admins use to rebalance the wheel.
func ReconfigureCatalog(db *gorm.DB, entries []CatalogEntry) error {
	return db.Transaction(func(tx *gorm.DB) error {
		seen := make(map[int]bool, len(entries))
		for _, e := range entries {
			if e.Position < minPosition || e.Position > maxPosition {
				return ErrPositionConflict
			}
			if e.IsActive && seen[e.Position] {
				return ErrPositionConflict
			}
			if e.IsActive {
				seen[e.Position] = true
			}
		}
		for _, e := range entries {
			var prize models.PrizeDefinition
			if err := tx.First(&prize, e.PrizeID).Error; err != nil {
				return err
			}
			prize.Probability = e.Probability
			prize.Position = e.Position
			prize.IsActive = e.IsActive
			if err := validatePrizeFields(&prize); err != nil {
				return err
			}
			if err := tx.Save(&prize).Error; err != nil {
				return err
			}
		}
		// Positions of untouched active prizes must not collide either.
		return checkActiveWheel(tx)
	})
}

// checkActiveWheel re-reads the persisted active catalog and verifies both
// wheel invariants: no two active prizes on the same position, and the
// probability sum at 100. Bulk mutations run this as their final gate.
func checkActiveWheel(tx *gorm.DB) error {
	var actives []models.PrizeDefinition
	if err := tx.Where("is_active = true").Find(&actives).Error; err != nil {
		return err
	}
	positions := make(map[int]bool, len(actives))
	for _, p := range actives {
		if positions[p.Position] {
			return ErrPositionConflict
		}
		positions[p.Position] = true
	}
	if check := CheckProbabilities(actives); !check.Valid {
		return &ConfigurationError{Total: check.Total, Missing: check.Missing}
	}
	return nil
}

// DeactivatePrize soft-removes a prize from the wheel, applying the caller's
// rebalanced probabilities for the surviving prizes in the same transaction
// so the active sum stays at 100. Prizes referenced by spin records are never
// hard-deleted; the applier resolves them even after removal.
func DeactivatePrize(db *gorm.DB, prizeID uint, rebalanced []CatalogEntry) error {
	return db.Transaction(func(tx *gorm.DB) error {
		var prize models.PrizeDefinition
		if err := tx.First(&prize, prizeID).Error; err != nil {
			return err
		}
		prize.IsActive = false
		if err := tx.Save(&prize).Error; err != nil {
			return err
		}
		for _, e := range rebalanced {
			if e.PrizeID == prizeID {
				return ErrInvalidPrize
			}
			var other models.PrizeDefinition
			if err := tx.First(&other, e.PrizeID).Error; err != nil {
				return err
			}
			other.Probability = e.Probability
			other.Position = e.Position
			other.IsActive = e.IsActive
			if err := tx.Save(&other).Error; err != nil {
				return err
			}
		}
		return checkActiveWheel(tx)
	})
}

// IsConfigurationError reports whether err carries a failed sum check.
func IsConfigurationError(err error) bool {
	var ce *ConfigurationError
	return errors.As(err, &ce)
}
