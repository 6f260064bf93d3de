package roulette

import (
	"errors"
	"fmt"

	"github.com/shopspring/decimal"
)

var (
	// ErrAlreadyUsed denies a demo spin for a user whose free demo is spent.
	ErrAlreadyUsed = errors.New("demo spin already used")

	// ErrNotEligible denies a spin whose preconditions do not hold, and a
	// prize application on a record with no economic effect.
	ErrNotEligible = errors.New("not eligible for spin")

	// ErrAlreadyApplied signals a duplicate application attempt.
	ErrAlreadyApplied = errors.New("prize already applied")

	// ErrInvalidStateTransition signals a validation-workflow misuse.
	ErrInvalidStateTransition = errors.New("invalid spin state transition")

	// ErrPositionConflict signals a wheel position already held by another prize.
	ErrPositionConflict = errors.New("prize position already taken")

	// ErrCodeInvalid denies a code spin when the code is unknown, inactive,
	// expired or exhausted.
	ErrCodeInvalid = errors.New("invalid or expired spin code")

	// ErrNoActivePrizes means the wheel has nothing to draw from.
	ErrNoActivePrizes = errors.New("no active prizes configured")

	// ErrInvalidPrize rejects a prize definition with an unknown behavior,
	// an out-of-range probability or a negative value.
	ErrInvalidPrize = errors.New("invalid prize definition")
)

// ConfigurationError rejects a catalog mutation that would leave the active
// probabilities summing to anything but 100.
type ConfigurationError struct {
	Total   decimal.Decimal
	Missing decimal.Decimal
}

func (e *ConfigurationError) Error() string {
	return fmt.Sprintf("active prize probabilities sum to %s, missing %s", e.Total, e.Missing)
}
