package contracts

import "fmt"

// Holdings maps every fund to its current balance. Balances must not be
// negative; funds with no position hold zero.
type Holdings map[FundID]Money

// Total sums the holdings across all funds.
func (h Holdings) Total() Money {
	var total Money
	for _, amount := range h {
		total += amount
	}
	return total
}

// MarketTotal sums the holdings for one market group.
func (h Holdings) MarketTotal(g MarketGroup) Money {
	var total Money
	for f, amount := range h {
		if f.Market() == g {
			total += amount
		}
	}
	return total
}

// Validate rejects unknown funds and negative balances.
func (h Holdings) Validate() error {
	for f, amount := range h {
		if !f.Valid() {
			return fmt.Errorf("%w: %s", ErrUnknownFund, f)
		}
		if amount < 0 {
			return fmt.Errorf("%w: %s is %d", ErrNegativeHolding, f, amount)
		}
	}
	return nil
}

// Strategy selects how a rebalancing plan is funded.
type Strategy string

const (
	// StrategyBudgetBounded reshapes the regular monthly budget toward the
	// shortfall funds, closing the gap over several months.
	StrategyBudgetBounded Strategy = "budget_bounded"
	// StrategyExtraCapital keeps the regular allocation and adds one-off
	// capital on top, aimed at closing the gap in a single purchase.
	StrategyExtraCapital Strategy = "extra_capital"
)

// Valid reports whether s is a known strategy.
func (s Strategy) Valid() bool {
	return s == StrategyBudgetBounded || s == StrategyExtraCapital
}

// FundBalance is the per-fund view of a rebalancing computation.
type FundBalance struct {
	Current Money `json:"current"`
	Target  Money `json:"target"`
	Delta   Money `json:"delta"` // target - current; positive means underweight
}

// Shortfall is an underweight fund and the amount it is short.
type Shortfall struct {
	Fund   FundID `json:"fund"`
	Amount Money  `json:"amount"`
}

// Classification is the overall balance state of the portfolio.
type Classification string

const (
	ClassBalanced     Classification = "balanced"
	ClassHomeShort    Classification = "home_short"
	ClassForeignShort Classification = "foreign_short"
)

// BalanceAssessment classifies the portfolio drift against the target split.
type BalanceAssessment struct {
	Classification Classification `json:"classification"`
	HomeDelta      Money          `json:"home_delta"`
	ForeignDelta   Money          `json:"foreign_delta"`
}

// RebalancePlan is the full output of the rebalancing engine.
type RebalancePlan struct {
	Strategy Strategy `json:"strategy"`

	// Current state
	Total    Money                  `json:"total"`
	Balances map[FundID]FundBalance `json:"balances"`

	Assessment BalanceAssessment `json:"assessment"`

	// Shortfalls lists underweight funds in canonical fund order.
	Shortfalls []Shortfall `json:"shortfalls"`

	// NextPeriod is the recommended purchase per fund for the coming
	// period(s); TotalInvestment is its exact sum.
	NextPeriod      FundAllocation `json:"next_period"`
	TotalInvestment Money          `json:"total_investment"`

	// RecommendedMonths is the headline number of months to keep the
	// adjusted amounts before reverting to the regular allocation.
	RecommendedMonths int            `json:"recommended_months"`
	FundMonths        map[FundID]int `json:"fund_months"`

	// Unclosable lists shortfall funds whose plan amount does not exceed
	// their regular allocation; they can never close under this plan.
	Unclosable []FundID `json:"unclosable,omitempty"`
}

// NeedsAction reports whether the portfolio drifted beyond tolerance.
func (p *RebalancePlan) NeedsAction() bool {
	return p.Assessment.Classification != ClassBalanced
}
