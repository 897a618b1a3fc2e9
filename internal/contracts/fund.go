package contracts

import "fmt"

// FundID identifies one of the seven funds in the plan.
type FundID string

const (
	FundJPStock     FundID = "jp_stock"     // domestic equity (TOPIX)
	FundJPReit      FundID = "jp_reit"      // domestic REIT
	FundJPBond      FundID = "jp_bond"      // domestic bonds
	FundGlobalStock FundID = "global_stock" // all-country equity ex Japan
	FundUSStock     FundID = "us_stock"     // US equity (S&P 500)
	FundOSReit      FundID = "os_reit"      // developed-market REIT
	FundOSBond      FundID = "os_bond"      // developed-market bonds
)

// AllFunds lists every fund in canonical order. The order is load-bearing:
// it is the tie-break order when a rounding remainder has to be assigned.
var AllFunds = []FundID{
	FundJPStock,
	FundJPReit,
	FundJPBond,
	FundGlobalStock,
	FundUSStock,
	FundOSReit,
	FundOSBond,
}

// MarketGroup splits the funds into the home (Japan) and foreign groups.
type MarketGroup string

const (
	MarketHome    MarketGroup = "home"
	MarketForeign MarketGroup = "foreign"
)

// Markets lists both market groups, home first.
var Markets = []MarketGroup{MarketHome, MarketForeign}

// Market returns the market group a fund belongs to.
func (f FundID) Market() MarketGroup {
	switch f {
	case FundJPStock, FundJPReit, FundJPBond:
		return MarketHome
	default:
		return MarketForeign
	}
}

// Valid reports whether f is one of the seven known funds.
func (f FundID) Valid() bool {
	for _, id := range AllFunds {
		if f == id {
			return true
		}
	}
	return false
}

// Funds returns the funds belonging to a market group, in canonical order.
func (g MarketGroup) Funds() []FundID {
	funds := make([]FundID, 0, len(AllFunds))
	for _, f := range AllFunds {
		if f.Market() == g {
			funds = append(funds, f)
		}
	}
	return funds
}

// PlanConfig holds the fixed plan parameters: per-fund budget fractions, the
// home/foreign target split, and the tsumitate (tax-advantaged) cap.
// It is immutable after construction and injected into every component.
type PlanConfig struct {
	FundRatios   map[FundID]float64
	MarketRatios map[MarketGroup]float64
	TsumitateCap Money
	// BalanceTolerance is the per-market drift below which a portfolio
	// counts as balanced.
	BalanceTolerance Money
}

// DefaultPlanConfig returns the Plan C parameters: 30% home / 70% foreign,
// seven funds, 100,000 yen tsumitate cap.
func DefaultPlanConfig() PlanConfig {
	return PlanConfig{
		FundRatios: map[FundID]float64{
			FundJPStock:     0.15,
			FundJPReit:      0.10,
			FundJPBond:      0.05,
			FundGlobalStock: 0.40,
			FundUSStock:     0.15,
			FundOSReit:      0.10,
			FundOSBond:      0.05,
		},
		MarketRatios: map[MarketGroup]float64{
			MarketHome:    0.30,
			MarketForeign: 0.70,
		},
		TsumitateCap:     100_000,
		BalanceTolerance: 10_000,
	}
}

// Validate checks the internal consistency of the plan parameters.
func (c PlanConfig) Validate() error {
	var total float64
	marketTotals := map[MarketGroup]float64{}

	for _, f := range AllFunds {
		ratio, ok := c.FundRatios[f]
		if !ok {
			return fmt.Errorf("missing fund ratio for %s", f)
		}
		if ratio <= 0 {
			return fmt.Errorf("fund ratio for %s must be positive, got %f", f, ratio)
		}
		total += ratio
		marketTotals[f.Market()] += ratio
	}

	const eps = 1e-9
	if diff := total - 1.0; diff > eps || diff < -eps {
		return fmt.Errorf("fund ratios must sum to 1.0, got %f", total)
	}

	for _, g := range Markets {
		want, ok := c.MarketRatios[g]
		if !ok {
			return fmt.Errorf("missing market ratio for %s", g)
		}
		if diff := marketTotals[g] - want; diff > eps || diff < -eps {
			return fmt.Errorf("%s fund ratios sum to %f, want %f", g, marketTotals[g], want)
		}
	}

	if c.TsumitateCap < 0 {
		return fmt.Errorf("tsumitate cap must not be negative, got %d", c.TsumitateCap)
	}

	return nil
}
