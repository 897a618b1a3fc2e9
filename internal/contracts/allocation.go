package contracts

// FundAllocation maps every fund to a purchase amount.
type FundAllocation map[FundID]Money

// Total sums the allocation across all funds.
func (a FundAllocation) Total() Money {
	var total Money
	for _, amount := range a {
		total += amount
	}
	return total
}

// MarketTotal sums the allocation for one market group.
func (a FundAllocation) MarketTotal(g MarketGroup) Money {
	var total Money
	for f, amount := range a {
		if f.Market() == g {
			total += amount
		}
	}
	return total
}

// BucketSplit divides the global-stock amount between the capped tsumitate
// (tax-advantaged) bucket and the uncapped growth bucket.
type BucketSplit struct {
	Tsumitate Money `json:"tsumitate"`
	Growth    Money `json:"growth"`
}

// Total returns the combined amount of both buckets.
func (b BucketSplit) Total() Money {
	return b.Tsumitate + b.Growth
}

// Split reports whether the growth bucket is in use.
func (b BucketSplit) Split() bool {
	return b.Growth > 0
}

// RegularAllocation is the normal monthly allocation computed from the base
// budget. GlobalStock mirrors Funds[FundGlobalStock] as a bucket split.
type RegularAllocation struct {
	BaseBudget  Money          `json:"base_budget"`
	Funds       FundAllocation `json:"funds"`
	GlobalStock BucketSplit    `json:"global_stock"`
}

// Total sums the regular allocation across all funds.
func (r RegularAllocation) Total() Money {
	return r.Funds.Total()
}

// AdditionalAllocation is the crash-triggered extra purchase. Funds outside
// the crashed market(s) hold zero. CrashFunds carries the per-market lump
// sums that were distributed.
type AdditionalAllocation struct {
	Funds       FundAllocation         `json:"funds"`
	GlobalStock BucketSplit            `json:"global_stock"`
	CrashFunds  map[MarketGroup]Money  `json:"crash_funds"`
}

// Total sums the additional allocation across all funds.
func (a AdditionalAllocation) Total() Money {
	return a.Funds.Total()
}

// Empty reports whether nothing was allocated.
func (a AdditionalAllocation) Empty() bool {
	return a.Total() == 0
}
