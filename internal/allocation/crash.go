package allocation

import (
	"fmt"

	"github.com/ysato/planc/internal/contracts"
	"github.com/ysato/planc/pkg/logger"
)

// CrashAllocator computes the crash-triggered additional purchase. Each
// market in crash state gets a lump sum equal to its share of one full base
// budget, redistributed over that market's funds with the same relative
// weights as the regular allocation.
type CrashAllocator struct {
	config contracts.PlanConfig
	logger *logger.Logger
}

// NewCrashAllocator creates a crash allocator with the given plan parameters.
func NewCrashAllocator(config contracts.PlanConfig, log *logger.Logger) *CrashAllocator {
	return &CrashAllocator{
		config: config,
		logger: log,
	}
}

// Allocate computes the additional allocation for the given verdict. All
// four crash patterns flow through this single function: markets not in
// crash contribute nothing, so PatternNone yields an empty allocation and
// PatternBoth doubles the total investment.
func (a *CrashAllocator) Allocate(
	verdict contracts.CrashVerdict,
	budget contracts.Money,
	regular contracts.RegularAllocation,
) (contracts.AdditionalAllocation, error) {
	if budget <= 0 {
		return contracts.AdditionalAllocation{}, fmt.Errorf("%w: got %d", contracts.ErrInvalidBudget, budget)
	}

	funds := make(contracts.FundAllocation, len(contracts.AllFunds))
	for _, f := range contracts.AllFunds {
		funds[f] = 0
	}

	crashFunds := make(map[contracts.MarketGroup]contracts.Money)

	for _, g := range verdict.CrashedMarkets() {
		marketRatio := a.config.MarketRatios[g]
		crashFund := contracts.RoundTo1000(float64(budget) * marketRatio)
		crashFunds[g] = crashFund

		// Redistribute the crash fund with the market's own relative
		// weights, preserving intra-market proportions.
		for _, f := range g.Funds() {
			funds[f] = contracts.RoundTo1000(float64(crashFund) * a.config.FundRatios[f] / marketRatio)
		}
	}

	result := contracts.AdditionalAllocation{
		Funds:       funds,
		GlobalStock: a.splitAdditional(funds[contracts.FundGlobalStock], regular.GlobalStock),
		CrashFunds:  crashFunds,
	}

	a.logger.WithFields(map[string]interface{}{
		"pattern": verdict.Pattern(),
		"total":   result.Total(),
	}).Debug("Crash allocation computed")

	return result, nil
}

// splitAdditional splits a global-stock addition between the tsumitate and
// growth buckets. When the regular allocation is already split the existing
// tsumitate ratio is preserved; otherwise the remaining tsumitate headroom
// is filled first and the excess goes to growth.
func (a *CrashAllocator) splitAdditional(add contracts.Money, regular contracts.BucketSplit) contracts.BucketSplit {
	if add <= 0 {
		return contracts.BucketSplit{}
	}

	if regular.Split() {
		ratio := float64(regular.Tsumitate) / float64(regular.Total())
		tsumitate := contracts.RoundTo1000(float64(add) * ratio)
		return contracts.BucketSplit{
			Tsumitate: tsumitate,
			Growth:    add - tsumitate,
		}
	}

	if regular.Total()+add <= a.config.TsumitateCap {
		return contracts.BucketSplit{Tsumitate: add}
	}

	headroom := a.config.TsumitateCap - regular.Tsumitate
	if headroom < 0 {
		headroom = 0
	}
	tsumitate := add
	if tsumitate > headroom {
		tsumitate = headroom
	}
	return contracts.BucketSplit{
		Tsumitate: tsumitate,
		Growth:    add - tsumitate,
	}
}

// TotalInvestment returns the combined regular and additional spend. When
// both markets crash the total is exactly twice the base budget: the two
// crash funds are sized as the 30/70 shares of one more full budget.
func TotalInvestment(regular contracts.RegularAllocation, additional contracts.AdditionalAllocation) contracts.Money {
	if len(additional.CrashFunds) == len(contracts.Markets) {
		return 2 * regular.BaseBudget
	}

	total := regular.BaseBudget
	for _, crashFund := range additional.CrashFunds {
		total += crashFund
	}
	return total
}
