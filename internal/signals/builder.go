package signals

import (
	"context"
	"fmt"

	"github.com/ysato/planc/internal/contracts"
	"github.com/ysato/planc/pkg/logger"
)

// drawdownLookback is the number of trading days behind the 3-month index
// change, matching roughly 60 sessions.
const drawdownLookback = 60

// Thresholds holds the three crash-condition cutoffs.
type Thresholds struct {
	VolatilityHigh float64 // VIX strictly above
	ValuationLow   float64 // Buffett indicator strictly below, percent
	DrawdownSevere float64 // index change at or below, percent
}

// Symbols names the index symbols observed per evaluation.
type Symbols struct {
	VIX     string
	Home    string
	Foreign string
}

// Builder observes the market once per evaluation run and produces the
// per-market signal triples. An unavailable observation degrades its signal
// to false and is reported in the degraded notices; data problems must never
// trigger an additional investment.
type Builder struct {
	market     contracts.MarketDataProvider
	valuation  contracts.ValuationSource
	thresholds Thresholds
	symbols    Symbols
	logger     *logger.Logger
}

// NewBuilder creates a signal builder over the given providers.
func NewBuilder(
	market contracts.MarketDataProvider,
	valuation contracts.ValuationSource,
	thresholds Thresholds,
	symbols Symbols,
	log *logger.Logger,
) *Builder {
	return &Builder{
		market:     market,
		valuation:  valuation,
		thresholds: thresholds,
		symbols:    symbols,
		logger:     log,
	}
}

// Build fetches all observations and derives the signal triple for each
// market. The VIX observation is shared between both markets.
func (b *Builder) Build(ctx context.Context) (map[contracts.MarketGroup]contracts.MarketSignal, contracts.SignalReadings, []string) {
	var degraded []string

	readings := contracts.SignalReadings{
		Valuations:  make(map[contracts.MarketGroup]float64),
		IndexChange: make(map[contracts.MarketGroup]*float64),
	}

	// Shared volatility signal.
	volatilityHigh := false
	if vix, err := b.market.LastClose(ctx, b.symbols.VIX); err != nil {
		b.logger.WithError(err).Warn("VIX unavailable, volatility signal degraded to false")
		degraded = append(degraded, "volatility index unavailable")
	} else {
		readings.VIX = &vix
		volatilityHigh = vix > b.thresholds.VolatilityHigh
	}

	result := make(map[contracts.MarketGroup]contracts.MarketSignal, len(contracts.Markets))
	for _, g := range contracts.Markets {
		signal := contracts.MarketSignal{VolatilityHigh: volatilityHigh}

		if valuation, err := b.valuation.Valuation(ctx, g); err != nil {
			b.logger.WithError(err).WithField("market", g).Warn("Valuation unavailable, signal degraded to false")
			degraded = append(degraded, fmt.Sprintf("%s valuation unavailable", g))
		} else {
			readings.Valuations[g] = valuation
			signal.ValuationLow = valuation < b.thresholds.ValuationLow
		}

		symbol := b.symbols.Home
		if g == contracts.MarketForeign {
			symbol = b.symbols.Foreign
		}

		if change, err := b.market.ChangePercent(ctx, symbol, drawdownLookback); err != nil {
			b.logger.WithError(err).WithField("symbol", symbol).Warn("Index change unavailable, drawdown signal degraded to false")
			degraded = append(degraded, fmt.Sprintf("%s index change unavailable", g))
		} else {
			readings.IndexChange[g] = &change
			signal.DrawdownSevere = change <= b.thresholds.DrawdownSevere
		}

		result[g] = signal
	}

	b.logger.WithFields(map[string]interface{}{
		"home":     result[contracts.MarketHome],
		"foreign":  result[contracts.MarketForeign],
		"degraded": len(degraded),
	}).Info("Market signals built")

	return result, readings, degraded
}
