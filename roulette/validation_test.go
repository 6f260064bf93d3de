package roulette

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"pokerclub/models"
)

func TestCanTransition(t *testing.T) {
	allowed := map[[2]string]bool{
		{models.SpinStatusDemo, models.SpinStatusPendingValidation}:     true,
		{models.SpinStatusPendingValidation, models.SpinStatusApplied}:  true,
		{models.SpinStatusPendingValidation, models.SpinStatusRejected}: true,
	}

	statuses := []string{
		models.SpinStatusDemo,
		models.SpinStatusPendingValidation,
		models.SpinStatusApplied,
		models.SpinStatusRejected,
	}

	for _, from := range statuses {
		for _, to := range statuses {
			want := allowed[[2]string{from, to}]
			assert.Equal(t, want, CanTransition(from, to), "%s -> %s", from, to)
		}
	}
}

func TestTerminalStatesAreAbsorbing(t *testing.T) {
	for _, terminal := range []string{models.SpinStatusApplied, models.SpinStatusRejected} {
		for _, to := range []string{
			models.SpinStatusDemo,
			models.SpinStatusPendingValidation,
			models.SpinStatusApplied,
			models.SpinStatusRejected,
		} {
			assert.False(t, CanTransition(terminal, to), "%s -> %s must be rejected", terminal, to)
		}
	}
}

func TestCanTransitionUnknownStatus(t *testing.T) {
	assert.False(t, CanTransition("limbo", models.SpinStatusApplied))
	assert.False(t, CanTransition(models.SpinStatusDemo, "limbo"))
}
