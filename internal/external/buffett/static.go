package buffett

import (
	"context"
	"fmt"

	"github.com/ysato/planc/internal/contracts"
)

// Static serves fixed indicator values, used when the caller supplies the
// readings by hand instead of scraping. Manual values win over the scraper.
type Static struct {
	values map[contracts.MarketGroup]float64
}

// NewStatic creates a fixed-value source.
func NewStatic(home, foreign float64) *Static {
	return &Static{values: map[contracts.MarketGroup]float64{
		contracts.MarketHome:    home,
		contracts.MarketForeign: foreign,
	}}
}

// Valuation returns the fixed value for a market.
func (s *Static) Valuation(_ context.Context, market contracts.MarketGroup) (float64, error) {
	v, ok := s.values[market]
	if !ok {
		return 0, fmt.Errorf("no value for market %q", market)
	}
	return v, nil
}
