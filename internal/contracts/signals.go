package contracts

// MarketSignal holds the three boolean crash conditions for one market.
// A signal that could not be observed is false: data problems must never
// trigger an unplanned additional investment.
type MarketSignal struct {
	VolatilityHigh bool `json:"volatility_high"` // VIX above threshold (shared between markets)
	ValuationLow   bool `json:"valuation_low"`   // Buffett indicator below threshold
	DrawdownSevere bool `json:"drawdown_severe"` // 3-month index change at or below threshold
}

// Crashed reports whether all three conditions hold.
func (s MarketSignal) Crashed() bool {
	return s.VolatilityHigh && s.ValuationLow && s.DrawdownSevere
}

// SignalReadings carries the raw observed values behind the signals, for
// display and notification. Nil pointers mean the value was unavailable.
type SignalReadings struct {
	VIX         *float64                 `json:"vix,omitempty"`
	Valuations  map[MarketGroup]float64  `json:"valuations"`
	IndexChange map[MarketGroup]*float64 `json:"index_change"`
}

// CrashVerdict is the per-market crash decision.
type CrashVerdict struct {
	Home    bool `json:"home"`
	Foreign bool `json:"foreign"`
}

// Crashed reports the verdict for one market group.
func (v CrashVerdict) Crashed(g MarketGroup) bool {
	if g == MarketHome {
		return v.Home
	}
	return v.Foreign
}

// CrashPattern is the verdict pair as a single tagged value. The four
// patterns drive one allocation function instead of four branches.
type CrashPattern string

const (
	PatternNone        CrashPattern = "none"
	PatternHomeOnly    CrashPattern = "home_only"
	PatternForeignOnly CrashPattern = "foreign_only"
	PatternBoth        CrashPattern = "both"
)

// Pattern collapses the verdict pair into its pattern.
func (v CrashVerdict) Pattern() CrashPattern {
	switch {
	case v.Home && v.Foreign:
		return PatternBoth
	case v.Home:
		return PatternHomeOnly
	case v.Foreign:
		return PatternForeignOnly
	default:
		return PatternNone
	}
}

// CrashedMarkets returns the market groups in crash state, home first.
func (v CrashVerdict) CrashedMarkets() []MarketGroup {
	var groups []MarketGroup
	for _, g := range Markets {
		if v.Crashed(g) {
			groups = append(groups, g)
		}
	}
	return groups
}
