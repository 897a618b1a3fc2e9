package rebalance

import (
	"fmt"

	"github.com/ysato/planc/internal/allocation"
	"github.com/ysato/planc/internal/contracts"
	"github.com/ysato/planc/pkg/logger"
)

// Engine computes corrective purchase plans that steer arbitrary current
// holdings back to the fixed target ratios. Overweight funds are corrected
// only by not buying more; the engine never sells.
type Engine struct {
	config contracts.PlanConfig
	base   *allocation.BaseAllocator
	logger *logger.Logger
}

// NewEngine creates a rebalancing engine with the given plan parameters.
func NewEngine(config contracts.PlanConfig, base *allocation.BaseAllocator, log *logger.Logger) *Engine {
	return &Engine{
		config: config,
		base:   base,
		logger: log,
	}
}

// Request carries the inputs of one rebalancing computation.
type Request struct {
	Holdings   contracts.Holdings
	BaseBudget contracts.Money
	Strategy   contracts.Strategy

	// MinPurchase is the per-fund floor under the budget-bounded
	// strategy; every fund keeps at least this much to stay diversified.
	MinPurchase contracts.Money

	// ExtraCapital is the one-off top-up under the extra-capital
	// strategy.
	ExtraCapital contracts.Money
}

func (r Request) validate() error {
	if err := r.Holdings.Validate(); err != nil {
		return err
	}
	if r.BaseBudget <= 0 {
		return fmt.Errorf("%w: got %d", contracts.ErrInvalidBudget, r.BaseBudget)
	}
	if !r.Strategy.Valid() {
		return fmt.Errorf("%w: %q", contracts.ErrInvalidStrategy, r.Strategy)
	}
	if r.MinPurchase < 0 {
		return fmt.Errorf("%w: got %d", contracts.ErrNegativeFloor, r.MinPurchase)
	}
	if r.ExtraCapital < 0 {
		return fmt.Errorf("%w: got %d", contracts.ErrNegativeCapital, r.ExtraCapital)
	}
	return nil
}

// Plan computes the full rebalancing plan for a request.
func (e *Engine) Plan(req Request) (*contracts.RebalancePlan, error) {
	if err := req.validate(); err != nil {
		return nil, err
	}

	total := req.Holdings.Total()
	if total == 0 {
		return nil, contracts.ErrNoHoldings
	}

	regular, err := e.base.Allocate(req.BaseBudget)
	if err != nil {
		return nil, err
	}

	plan := &contracts.RebalancePlan{
		Strategy: req.Strategy,
		Total:    total,
		Balances: e.balances(req.Holdings, total),
	}

	plan.Assessment = e.assess(plan.Balances)
	plan.Shortfalls = shortfalls(plan.Balances)

	switch req.Strategy {
	case contracts.StrategyBudgetBounded:
		err = e.planBudgetBounded(plan, req, regular)
	case contracts.StrategyExtraCapital:
		e.planExtraCapital(plan, req, regular)
	}
	if err != nil {
		return nil, err
	}

	e.estimateMonths(plan, regular)

	e.logger.WithFields(map[string]interface{}{
		"strategy":       plan.Strategy,
		"classification": plan.Assessment.Classification,
		"shortfalls":     len(plan.Shortfalls),
		"months":         plan.RecommendedMonths,
	}).Info("Rebalance plan computed")

	return plan, nil
}

// balances derives the per-fund target and delta from the grand total.
func (e *Engine) balances(holdings contracts.Holdings, total contracts.Money) map[contracts.FundID]contracts.FundBalance {
	result := make(map[contracts.FundID]contracts.FundBalance, len(contracts.AllFunds))
	for _, f := range contracts.AllFunds {
		target := contracts.RoundTo1000(float64(total) * e.config.FundRatios[f])
		current := holdings[f]
		result[f] = contracts.FundBalance{
			Current: current,
			Target:  target,
			Delta:   target - current,
		}
	}
	return result
}

// assess classifies the overall drift against the home/foreign split.
func (e *Engine) assess(balances map[contracts.FundID]contracts.FundBalance) contracts.BalanceAssessment {
	var homeDelta, foreignDelta contracts.Money
	for f, b := range balances {
		if f.Market() == contracts.MarketHome {
			homeDelta += b.Delta
		} else {
			foreignDelta += b.Delta
		}
	}

	assessment := contracts.BalanceAssessment{
		HomeDelta:    homeDelta,
		ForeignDelta: foreignDelta,
	}

	switch {
	case homeDelta.Abs() < e.config.BalanceTolerance && foreignDelta.Abs() < e.config.BalanceTolerance:
		assessment.Classification = contracts.ClassBalanced
	case homeDelta > 0:
		assessment.Classification = contracts.ClassHomeShort
	default:
		assessment.Classification = contracts.ClassForeignShort
	}

	return assessment
}

// shortfalls lists underweight funds in canonical order.
func shortfalls(balances map[contracts.FundID]contracts.FundBalance) []contracts.Shortfall {
	var result []contracts.Shortfall
	for _, f := range contracts.AllFunds {
		if delta := balances[f].Delta; delta > 0 {
			result = append(result, contracts.Shortfall{Fund: f, Amount: delta})
		}
	}
	return result
}

// planBudgetBounded reshapes the monthly budget: every fund keeps the
// purchase floor and the remainder is split over the shortfall funds in
// proportion to their share of the total shortfall.
func (e *Engine) planBudgetBounded(plan *contracts.RebalancePlan, req Request, regular contracts.RegularAllocation) error {
	fundCount := contracts.Money(len(contracts.AllFunds))
	if req.MinPurchase*fundCount >= req.BaseBudget {
		return fmt.Errorf("%w: %d x %d >= %d",
			contracts.ErrFloorExceedsBudget, req.MinPurchase, fundCount, req.BaseBudget)
	}

	if len(plan.Shortfalls) == 0 {
		// Nothing to steer toward; keep the regular allocation.
		plan.NextPeriod = regular.Funds
		plan.TotalInvestment = req.BaseBudget
		return nil
	}

	next := make(contracts.FundAllocation, len(contracts.AllFunds))
	for _, f := range contracts.AllFunds {
		next[f] = req.MinPurchase
	}

	allocatable := req.BaseBudget - req.MinPurchase*fundCount
	distribute(next, plan.Shortfalls, allocatable)
	reconcile(next, plan.Shortfalls, req.BaseBudget)

	plan.NextPeriod = next
	plan.TotalInvestment = req.BaseBudget
	return nil
}

// planExtraCapital keeps the regular allocation and layers the one-off
// capital over the shortfall funds in proportion to shortfall share.
func (e *Engine) planExtraCapital(plan *contracts.RebalancePlan, req Request, regular contracts.RegularAllocation) {
	next := make(contracts.FundAllocation, len(contracts.AllFunds))
	for _, f := range contracts.AllFunds {
		next[f] = regular.Funds[f]
	}

	if len(plan.Shortfalls) > 0 {
		distribute(next, plan.Shortfalls, req.ExtraCapital)
		reconcile(next, plan.Shortfalls, req.BaseBudget+req.ExtraCapital)
	}

	plan.NextPeriod = next
	plan.TotalInvestment = req.BaseBudget + req.ExtraCapital
}

// distribute adds amount to the shortfall funds proportionally to each
// fund's share of the total shortfall, rounding every slice to 1,000.
func distribute(next contracts.FundAllocation, shortfallList []contracts.Shortfall, amount contracts.Money) {
	var totalShortfall contracts.Money
	for _, s := range shortfallList {
		totalShortfall += s.Amount
	}
	if totalShortfall == 0 {
		return
	}

	for _, s := range shortfallList {
		share := float64(s.Amount) / float64(totalShortfall)
		next[s.Fund] += contracts.RoundTo1000(float64(amount) * share)
	}
}

// reconcile forces the plan total to equal the intended total exactly by
// assigning the rounding remainder to the largest shortfall; ties go to the
// first such fund in canonical order.
func reconcile(next contracts.FundAllocation, shortfallList []contracts.Shortfall, want contracts.Money) {
	diff := want - next.Total()
	if diff == 0 {
		return
	}

	largest := shortfallList[0]
	for _, s := range shortfallList[1:] {
		if s.Amount > largest.Amount {
			largest = s
		}
	}
	next[largest.Fund] += diff
}

// estimateMonths projects how many periods of the adjusted plan it takes to
// close every shortfall, assuming the per-period addition stays constant.
// Funds whose plan amount does not exceed their regular allocation can never
// close and are surfaced instead of silently dropped.
func (e *Engine) estimateMonths(plan *contracts.RebalancePlan, regular contracts.RegularAllocation) {
	plan.FundMonths = make(map[contracts.FundID]int)

	for _, s := range plan.Shortfalls {
		additional := plan.NextPeriod[s.Fund] - regular.Funds[s.Fund]
		if additional <= 0 {
			plan.Unclosable = append(plan.Unclosable, s.Fund)
			continue
		}

		months := int(s.Amount / additional)
		if s.Amount%additional > 0 {
			months++
		}
		plan.FundMonths[s.Fund] = months

		if months > plan.RecommendedMonths {
			plan.RecommendedMonths = months
		}
	}
}
