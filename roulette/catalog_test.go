package roulette

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"pokerclub/models"
)

func activePrize(position int, probability float64) models.PrizeDefinition {
	return models.PrizeDefinition{
		Name:          "prize",
		PrizeBehavior: models.PrizeBehaviorManual,
		Probability:   decimal.NewFromFloat(probability),
		Position:      position,
		IsActive:      true,
	}
}

func TestCheckProbabilitiesValidCatalog(t *testing.T) {
	prizes := []models.PrizeDefinition{
		activePrize(1, 20),
		activePrize(2, 15),
		activePrize(3, 15),
		activePrize(4, 15),
		activePrize(5, 10),
		activePrize(6, 5),
		activePrize(7, 20),
	}

	check := CheckProbabilities(prizes)
	require.True(t, check.Valid)
	assert.True(t, check.Total.Equal(decimal.NewFromInt(100)), "total = %s", check.Total)
	assert.True(t, check.Missing.IsZero(), "missing = %s", check.Missing)
}

func TestCheckProbabilitiesUndershoot(t *testing.T) {
	prizes := []models.PrizeDefinition{
		activePrize(1, 50),
		activePrize(2, 45),
	}

	check := CheckProbabilities(prizes)
	require.False(t, check.Valid)
	assert.True(t, check.Total.Equal(decimal.NewFromInt(95)))
	assert.True(t, check.Missing.Equal(decimal.NewFromInt(5)))
}

func TestCheckProbabilitiesTolerance(t *testing.T) {
	cases := []struct {
		name  string
		probs []float64
		valid bool
	}{
		{"exact", []float64{60, 40}, true},
		{"within tolerance low", []float64{60, 39.995}, true},
		{"within tolerance high", []float64{60, 40.005}, true},
		{"outside tolerance low", []float64{60, 39.98}, false},
		{"outside tolerance high", []float64{60, 40.02}, false},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			prizes := make([]models.PrizeDefinition, 0, len(tc.probs))
			for i, p := range tc.probs {
				prizes = append(prizes, activePrize(i+1, p))
			}
			assert.Equal(t, tc.valid, CheckProbabilities(prizes).Valid)
		})
	}
}

func TestCheckProbabilitiesIgnoresInactive(t *testing.T) {
	inactive := activePrize(3, 50)
	inactive.IsActive = false

	prizes := []models.PrizeDefinition{
		activePrize(1, 60),
		activePrize(2, 40),
		inactive,
	}

	check := CheckProbabilities(prizes)
	assert.True(t, check.Valid)
	assert.True(t, check.Total.Equal(decimal.NewFromInt(100)))
}

func TestCheckProbabilitiesEmptyCatalog(t *testing.T) {
	check := CheckProbabilities(nil)
	require.False(t, check.Valid)
	assert.True(t, check.Missing.Equal(decimal.NewFromInt(100)))
}

func TestValidatePrizeFields(t *testing.T) {
	base := activePrize(1, 100)

	t.Run("valid", func(t *testing.T) {
		p := base
		assert.NoError(t, validatePrizeFields(&p))
	})

	t.Run("unknown behavior", func(t *testing.T) {
		p := base
		p.PrizeBehavior = "raffle"
		assert.ErrorIs(t, validatePrizeFields(&p), ErrInvalidPrize)
	})

	t.Run("position below range", func(t *testing.T) {
		p := base
		p.Position = 0
		assert.ErrorIs(t, validatePrizeFields(&p), ErrPositionConflict)
	})

	t.Run("position above range", func(t *testing.T) {
		p := base
		p.Position = 21
		assert.ErrorIs(t, validatePrizeFields(&p), ErrPositionConflict)
	})

	t.Run("probability above 100", func(t *testing.T) {
		p := base
		p.Probability = decimal.NewFromInt(101)
		assert.ErrorIs(t, validatePrizeFields(&p), ErrInvalidPrize)
	})

	t.Run("negative value", func(t *testing.T) {
		p := base
		p.PrizeValue = decimal.NewFromInt(-1)
		assert.ErrorIs(t, validatePrizeFields(&p), ErrInvalidPrize)
	})
}
