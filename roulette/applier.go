package roulette

import (
	"encoding/json"
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/datatypes"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"pokerclub/models"
)

// Notifier, when set, runs fire-and-forget after a prize application
// commits. A failed notification never rolls back the applied prize.
var Notifier func(user models.User, spin models.SpinRecord, prize models.PrizeDefinition)

// CustomHandler executes one named custom-prize action inside the
// application transaction.
type CustomHandler func(tx *gorm.DB, user *models.User, spin *models.SpinRecord, prize *models.PrizeDefinition, cfg map[string]any) error

var customHandlers = map[string]CustomHandler{}

// RegisterCustomAction adds a handler for a custom_config action name.
// The registered table keeps the set of possible prize effects closed and
// auditable; an action without a handler is acknowledged as a no-op.
func RegisterCustomAction(name string, h CustomHandler) {
	customHandlers[name] = h
}

func init() {
	RegisterCustomAction("add_vip_points", addVipPoints)
	RegisterCustomAction("unlock_feature", unlockFeature)
}

const defaultBonusExpiryDays = 30

// ApplyPrize executes the side effect of a won prize exactly once and flips
// the record to applied. The spin row is locked first, so a duplicate
// request blocks until the first commits and then fails with
// ErrAlreadyApplied instead of double-crediting.
//
// The prize definition is re-read live at application time; an admin edit
// between draw and validation changes the applied value. The drawn PrizeID
// stays on the record for audit.
func ApplyPrize(db *gorm.DB, spinID uint, validatedBy *uint) error {
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

	if spin.PrizeStatus == models.SpinStatusApplied {
		tx.Rollback()
		return ErrAlreadyApplied
	}
	if !spin.IsRealPrize || spin.PrizeStatus == models.SpinStatusDemo {
		tx.Rollback()
		return ErrNotEligible
	}
	if !CanTransition(spin.PrizeStatus, models.SpinStatusApplied) {
		tx.Rollback()
		return ErrInvalidStateTransition
	}

	// Soft-removed prizes still resolve here: a spin drawn before the
	// removal keeps its reference.
	var prize models.PrizeDefinition
	if err := tx.Unscoped().First(&prize, spin.PrizeID).Error; err != nil {
		tx.Rollback()
		return err
	}

	var user models.User
	if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
		First(&user, spin.UserID).Error; err != nil {
		tx.Rollback()
		return err
	}

	cfg := decodeCustomConfig(prize.CustomConfig)

	switch prize.PrizeBehavior {
	case models.PrizeBehaviorInstantCash:
		if err := creditBalance(tx, &user, prize.PrizeValue, &spin); err != nil {
			tx.Rollback()
			return err
		}

	case models.PrizeBehaviorBonus:
		if err := createPrizeBonus(tx, &user, &spin, &prize, cfg); err != nil {
			tx.Rollback()
			return err
		}

	case models.PrizeBehaviorCustom:
		action, _ := cfg["action"].(string)
		if handler, ok := customHandlers[action]; ok {
			if err := handler(tx, &user, &spin, &prize, cfg); err != nil {
				tx.Rollback()
				return err
			}
		}
		// Unknown actions are acknowledged: the spin is still marked
		// applied below.

	case models.PrizeBehaviorManual:
		// Fulfillment happens outside the system; applied only records
		// that no automation is needed.
	}

	now := time.Now()
	spin.PrizeStatus = models.SpinStatusApplied
	spin.ValidatedAt = &now
	spin.ValidatedBy = validatedBy
	if err := tx.Save(&spin).Error; err != nil {
		tx.Rollback()
		return err
	}

	if err := tx.Commit().Error; err != nil {
		return err
	}

	if Notifier != nil {
		go Notifier(user, spin, prize)
	}
	return nil
}

func creditBalance(tx *gorm.DB, user *models.User, amount decimal.Decimal, spin *models.SpinRecord) error {
	before := user.Balance
	user.Balance = user.Balance.Add(amount)
	if err := tx.Save(user).Error; err != nil {
		return err
	}
	return tx.Create(&models.BalanceEntry{
		UserID:        user.ID,
		TrxType:       "prize",
		Amount:        amount,
		BalanceBefore: before,
		BalanceAfter:  user.Balance,
		Currency:      user.Currency,
		Note:          "Roulette prize payout",
		RefID:         spin.RefID,
	}).Error
}

func createPrizeBonus(tx *gorm.DB, user *models.User, spin *models.SpinRecord, prize *models.PrizeDefinition, cfg map[string]any) error {
	amount := prize.PrizeValue
	if v, ok := cfgDecimal(cfg, "amount"); ok {
		amount = v
	}
	percentage := decimal.Zero
	if v, ok := cfgDecimal(cfg, "percentage"); ok {
		percentage = v
	}
	bonusType := models.BonusTypeRoulettePrize
	if v, ok := cfg["bonus_type"].(string); ok && v != "" {
		bonusType = v
	}
	expiryDays := defaultBonusExpiryDays
	if v, ok := cfg["expiry_days"].(float64); ok && v > 0 {
		expiryDays = int(v)
	}
	expiresAt := time.Now().AddDate(0, 0, expiryDays)

	bonus := models.Bonus{
		UserID:       user.ID,
		BonusType:    bonusType,
		Amount:       amount,
		Percentage:   percentage,
		Status:       models.BonusStatusActive,
		ExpiresAt:    &expiresAt,
		SourceSpinID: &spin.ID,
		Note:         "Roulette prize: " + prize.Name,
	}
	if err := tx.Create(&bonus).Error; err != nil {
		return err
	}
	spin.PrizeExpiryDate = &expiresAt
	return nil
}

func addVipPoints(tx *gorm.DB, user *models.User, _ *models.SpinRecord, prize *models.PrizeDefinition, cfg map[string]any) error {
	points := prize.PrizeValue.IntPart()
	if v, ok := cfg["points"].(float64); ok {
		points = int64(v)
	}
	user.VipPoints += points
	return tx.Save(user).Error
}

func unlockFeature(tx *gorm.DB, user *models.User, _ *models.SpinRecord, _ *models.PrizeDefinition, cfg map[string]any) error {
	feature, _ := cfg["feature"].(string)
	if feature == "" {
		return nil
	}

	var features []string
	if len(user.UnlockedFeatures) > 0 {
		if err := json.Unmarshal(user.UnlockedFeatures, &features); err != nil {
			features = nil
		}
	}
	for _, f := range features {
		if f == feature {
			return nil
		}
	}
	features = append(features, feature)

	raw, err := json.Marshal(features)
	if err != nil {
		return err
	}
	user.UnlockedFeatures = datatypes.JSON(raw)
	return tx.Save(user).Error
}

func decodeCustomConfig(raw datatypes.JSON) map[string]any {
	if len(raw) == 0 {
		return map[string]any{}
	}
	var cfg map[string]any
	if err := json.Unmarshal(raw, &cfg); err != nil {
		return map[string]any{}
	}
	return cfg
}

func cfgDecimal(cfg map[string]any, key string) (decimal.Decimal, bool) {
	switch v := cfg[key].(type) {
	case float64:
		return decimal.NewFromFloat(v), true
	case string:
		d, err := decimal.NewFromString(v)
		if err != nil {
			return decimal.Zero, false
		}
		return d, true
	default:
		return decimal.Zero, false
	}
}
