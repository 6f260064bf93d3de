package roulette

import (
	"github.com/shopspring/decimal"

	"pokerclub/models"
)

// Draw picks a prize from the active wheel. prizes must already be filtered
// to active rows and sorted by position ascending, as ListActivePrizes
// returns them.
//
// The draw walks the wheel in position order accumulating probability mass;
// the first prize whose cumulative upper bound exceeds r wins. Two servers
// holding the same catalog snapshot and the same r always pick the same
// prize. If the probabilities drift below 100, the last prize absorbs the
// remainder so a draw never comes back empty.
func Draw(prizes []models.PrizeDefinition, rng Rand) (*models.PrizeDefinition, error) {
	if len(prizes) == 0 {
		return nil, ErrNoActivePrizes
	}

	r := decimal.NewFromFloat(rng.Float64() * 100)

	cumulative := decimal.Zero
	for i := range prizes {
		cumulative = cumulative.Add(prizes[i].Probability)
		if r.LessThan(cumulative) {
			return &prizes[i], nil
		}
	}
	return &prizes[len(prizes)-1], nil
}
