package roulette

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/datatypes"
	"gorm.io/gorm"

	"pokerclub/models"
)

func TestDecodeCustomConfig(t *testing.T) {
	t.Run("nil", func(t *testing.T) {
		cfg := decodeCustomConfig(nil)
		assert.Empty(t, cfg)
	})

	t.Run("malformed json", func(t *testing.T) {
		cfg := decodeCustomConfig(datatypes.JSON(`{broken`))
		assert.Empty(t, cfg)
	})

	t.Run("values", func(t *testing.T) {
		cfg := decodeCustomConfig(datatypes.JSON(`{"action":"add_vip_points","points":250}`))
		assert.Equal(t, "add_vip_points", cfg["action"])
		assert.Equal(t, float64(250), cfg["points"])
	})
}

func TestCfgDecimal(t *testing.T) {
	cfg := map[string]any{
		"number": float64(12.5),
		"text":   "30.25",
		"bad":    "not-a-number",
		"bool":   true,
	}

	v, ok := cfgDecimal(cfg, "number")
	require.True(t, ok)
	assert.True(t, v.Equal(decimal.NewFromFloat(12.5)))

	v, ok = cfgDecimal(cfg, "text")
	require.True(t, ok)
	assert.True(t, v.Equal(decimal.NewFromFloat(30.25)))

	_, ok = cfgDecimal(cfg, "bad")
	assert.False(t, ok)

	_, ok = cfgDecimal(cfg, "bool")
	assert.False(t, ok)

	_, ok = cfgDecimal(cfg, "missing")
	assert.False(t, ok)
}

func TestRegisterCustomAction(t *testing.T) {
	const name = "test_action_registration"
	_, exists := customHandlers[name]
	require.False(t, exists)

	var noop CustomHandler = func(_ *gorm.DB, _ *models.User, _ *models.SpinRecord, _ *models.PrizeDefinition, _ map[string]any) error {
		return nil
	}
	RegisterCustomAction(name, noop)
	t.Cleanup(func() { delete(customHandlers, name) })

	_, exists = customHandlers[name]
	assert.True(t, exists)
}

func TestBuiltinCustomActionsRegistered(t *testing.T) {
	for _, action := range []string{"add_vip_points", "unlock_feature"} {
		_, ok := customHandlers[action]
		assert.True(t, ok, "handler %q must be registered", action)
	}
}
