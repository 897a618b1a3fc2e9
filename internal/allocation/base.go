package allocation

import (
	"fmt"

	"github.com/ysato/planc/internal/contracts"
	"github.com/ysato/planc/pkg/logger"
)

// BaseAllocator computes the regular monthly allocation from a base budget.
type BaseAllocator struct {
	config contracts.PlanConfig
	logger *logger.Logger
}

// NewBaseAllocator creates a base allocator with the given plan parameters.
func NewBaseAllocator(config contracts.PlanConfig, log *logger.Logger) *BaseAllocator {
	return &BaseAllocator{
		config: config,
		logger: log,
	}
}

// Allocate distributes the base budget over all seven funds by their fixed
// ratios, rounding each amount to 1,000 yen, and splits the global-stock
// amount into the tsumitate and growth buckets.
func (a *BaseAllocator) Allocate(budget contracts.Money) (contracts.RegularAllocation, error) {
	if budget <= 0 {
		return contracts.RegularAllocation{}, fmt.Errorf("%w: got %d", contracts.ErrInvalidBudget, budget)
	}

	funds := make(contracts.FundAllocation, len(contracts.AllFunds))
	for _, f := range contracts.AllFunds {
		funds[f] = contracts.RoundTo1000(float64(budget) * a.config.FundRatios[f])
	}

	result := contracts.RegularAllocation{
		BaseBudget:  budget,
		Funds:       funds,
		GlobalStock: splitTsumitate(funds[contracts.FundGlobalStock], a.config.TsumitateCap),
	}

	a.logger.WithFields(map[string]interface{}{
		"budget":    budget,
		"total":     result.Total(),
		"tsumitate": result.GlobalStock.Tsumitate,
		"growth":    result.GlobalStock.Growth,
	}).Debug("Regular allocation computed")

	return result, nil
}

// splitTsumitate fills the tsumitate bucket up to the cap and routes the
// excess to the growth bucket.
func splitTsumitate(total, cap contracts.Money) contracts.BucketSplit {
	if total <= cap {
		return contracts.BucketSplit{Tsumitate: total}
	}
	return contracts.BucketSplit{
		Tsumitate: cap,
		Growth:    total - cap,
	}
}
