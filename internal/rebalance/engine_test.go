package rebalance

import (
	"errors"
	"testing"

	"github.com/ysato/planc/internal/allocation"
	"github.com/ysato/planc/internal/contracts"
	"github.com/ysato/planc/pkg/logger"
)

func newEngine() *Engine {
	cfg := contracts.DefaultPlanConfig()
	base := allocation.NewBaseAllocator(cfg, logger.NewNop())
	return NewEngine(cfg, base, logger.NewNop())
}

// balancedHoldings sits exactly on the target ratios at a 1,000,000 total.
func balancedHoldings() contracts.Holdings {
	return contracts.Holdings{
		contracts.FundJPStock:     150_000,
		contracts.FundJPReit:      100_000,
		contracts.FundJPBond:      50_000,
		contracts.FundGlobalStock: 400_000,
		contracts.FundUSStock:     150_000,
		contracts.FundOSReit:      100_000,
		contracts.FundOSBond:      50_000,
	}
}

// homeShortHoldings underweights the home funds against the same total.
// Deltas: jp_stock +100,000, jp_reit +50,000, global_stock -100,000,
// os_bond -50,000.
func homeShortHoldings() contracts.Holdings {
	return contracts.Holdings{
		contracts.FundJPStock:     50_000,
		contracts.FundJPReit:      50_000,
		contracts.FundJPBond:      50_000,
		contracts.FundGlobalStock: 500_000,
		contracts.FundUSStock:     150_000,
		contracts.FundOSReit:      100_000,
		contracts.FundOSBond:      100_000,
	}
}

func TestPlanBalancedHoldingsNeedNoAction(t *testing.T) {
	plan, err := newEngine().Plan(Request{
		Holdings:    balancedHoldings(),
		BaseBudget:  300_000,
		Strategy:    contracts.StrategyBudgetBounded,
		MinPurchase: 3_000,
	})
	if err != nil {
		t.Fatalf("Plan failed: %v", err)
	}

	if plan.Assessment.Classification != contracts.ClassBalanced {
		t.Errorf("classification = %s, want balanced", plan.Assessment.Classification)
	}
	if len(plan.Shortfalls) != 0 {
		t.Errorf("shortfalls = %v, want none", plan.Shortfalls)
	}
	if plan.NeedsAction() {
		t.Error("balanced holdings should not need action")
	}
	if plan.RecommendedMonths != 0 {
		t.Errorf("recommended months = %d, want 0", plan.RecommendedMonths)
	}

	// Falls back to the regular monthly allocation.
	if plan.NextPeriod[contracts.FundJPStock] != 45_000 {
		t.Errorf("next[jp_stock] = %d, want regular 45000", plan.NextPeriod[contracts.FundJPStock])
	}
	if plan.NextPeriod.Total() != 300_000 {
		t.Errorf("next period total = %d, want 300000", plan.NextPeriod.Total())
	}
}

func TestPlanClassifiesHomeShort(t *testing.T) {
	plan, err := newEngine().Plan(Request{
		Holdings:    homeShortHoldings(),
		BaseBudget:  300_000,
		Strategy:    contracts.StrategyBudgetBounded,
		MinPurchase: 3_000,
	})
	if err != nil {
		t.Fatalf("Plan failed: %v", err)
	}

	if plan.Assessment.Classification != contracts.ClassHomeShort {
		t.Errorf("classification = %s, want home_short", plan.Assessment.Classification)
	}
	if plan.Assessment.HomeDelta != 150_000 {
		t.Errorf("home delta = %d, want 150000", plan.Assessment.HomeDelta)
	}
	if plan.Assessment.ForeignDelta != -150_000 {
		t.Errorf("foreign delta = %d, want -150000", plan.Assessment.ForeignDelta)
	}

	// Shortfalls appear in canonical fund order.
	want := []contracts.Shortfall{
		{Fund: contracts.FundJPStock, Amount: 100_000},
		{Fund: contracts.FundJPReit, Amount: 50_000},
	}
	if len(plan.Shortfalls) != len(want) {
		t.Fatalf("shortfalls = %v, want %v", plan.Shortfalls, want)
	}
	for i, s := range want {
		if plan.Shortfalls[i] != s {
			t.Errorf("shortfall[%d] = %v, want %v", i, plan.Shortfalls[i], s)
		}
	}
}

func TestPlanBudgetBounded(t *testing.T) {
	plan, err := newEngine().Plan(Request{
		Holdings:    homeShortHoldings(),
		BaseBudget:  300_000,
		Strategy:    contracts.StrategyBudgetBounded,
		MinPurchase: 3_000,
	})
	if err != nil {
		t.Fatalf("Plan failed: %v", err)
	}

	// 279,000 allocatable: jp_stock gets 2/3, jp_reit gets 1/3.
	if got := plan.NextPeriod[contracts.FundJPStock]; got != 189_000 {
		t.Errorf("next[jp_stock] = %d, want 189000", got)
	}
	if got := plan.NextPeriod[contracts.FundJPReit]; got != 96_000 {
		t.Errorf("next[jp_reit] = %d, want 96000", got)
	}

	// Every fund keeps at least the floor and the total is exact.
	for _, f := range contracts.AllFunds {
		if plan.NextPeriod[f] < 3_000 {
			t.Errorf("next[%s] = %d, below the 3000 floor", f, plan.NextPeriod[f])
		}
	}
	if plan.NextPeriod.Total() != 300_000 {
		t.Errorf("next period total = %d, want exactly 300000", plan.NextPeriod.Total())
	}
	if plan.TotalInvestment != 300_000 {
		t.Errorf("total investment = %d, want 300000", plan.TotalInvestment)
	}

	// jp_stock closes 100,000 at +144,000/period, jp_reit 50,000 at +66,000.
	if plan.FundMonths[contracts.FundJPStock] != 1 {
		t.Errorf("months[jp_stock] = %d, want 1", plan.FundMonths[contracts.FundJPStock])
	}
	if plan.RecommendedMonths != 1 {
		t.Errorf("recommended months = %d, want 1", plan.RecommendedMonths)
	}
	if !plan.NeedsAction() {
		t.Error("plan with shortfalls should need action")
	}
}

func TestPlanBudgetBoundedRejectsFloorOverBudget(t *testing.T) {
	_, err := newEngine().Plan(Request{
		Holdings:    homeShortHoldings(),
		BaseBudget:  300_000,
		Strategy:    contracts.StrategyBudgetBounded,
		MinPurchase: 50_000, // 7 x 50,000 exceeds the budget
	})
	if !errors.Is(err, contracts.ErrFloorExceedsBudget) {
		t.Errorf("expected ErrFloorExceedsBudget, got %v", err)
	}
}

func TestPlanExtraCapital(t *testing.T) {
	plan, err := newEngine().Plan(Request{
		Holdings:     homeShortHoldings(),
		BaseBudget:   300_000,
		Strategy:     contracts.StrategyExtraCapital,
		ExtraCapital: 100_000,
	})
	if err != nil {
		t.Fatalf("Plan failed: %v", err)
	}

	// Regular amounts plus 2/3 and 1/3 of the extra capital.
	if got := plan.NextPeriod[contracts.FundJPStock]; got != 112_000 {
		t.Errorf("next[jp_stock] = %d, want 112000", got)
	}
	if got := plan.NextPeriod[contracts.FundJPReit]; got != 63_000 {
		t.Errorf("next[jp_reit] = %d, want 63000", got)
	}

	// Funds outside the shortfall keep their regular amounts.
	if got := plan.NextPeriod[contracts.FundGlobalStock]; got != 120_000 {
		t.Errorf("next[global_stock] = %d, want regular 120000", got)
	}

	if plan.NextPeriod.Total() != 400_000 {
		t.Errorf("next period total = %d, want exactly 400000", plan.NextPeriod.Total())
	}
	if plan.TotalInvestment != 400_000 {
		t.Errorf("total investment = %d, want 400000", plan.TotalInvestment)
	}

	if plan.FundMonths[contracts.FundJPStock] != 2 {
		t.Errorf("months[jp_stock] = %d, want 2", plan.FundMonths[contracts.FundJPStock])
	}
}

func TestPlanExtraCapitalMoreCapitalNeverSlower(t *testing.T) {
	e := newEngine()
	prev := int(^uint(0) >> 1)

	for _, extra := range []contracts.Money{50_000, 100_000, 200_000, 400_000} {
		plan, err := e.Plan(Request{
			Holdings:     homeShortHoldings(),
			BaseBudget:   300_000,
			Strategy:     contracts.StrategyExtraCapital,
			ExtraCapital: extra,
		})
		if err != nil {
			t.Fatalf("Plan(extra=%d) failed: %v", extra, err)
		}
		if plan.RecommendedMonths > prev {
			t.Errorf("extra %d: months %d exceeds previous %d", extra, plan.RecommendedMonths, prev)
		}
		prev = plan.RecommendedMonths
	}
}

func TestPlanSurfacesUnclosableFunds(t *testing.T) {
	// jp_bond is short by a sliver while global_stock dominates the
	// shortfall; jp_bond's proportional slice stays below its regular
	// allocation and can never close.
	holdings := contracts.Holdings{
		contracts.FundJPStock:     150_000,
		contracts.FundJPReit:      100_000,
		contracts.FundJPBond:      45_000,
		contracts.FundGlobalStock: 105_000,
		contracts.FundUSStock:     250_000,
		contracts.FundOSReit:      200_000,
		contracts.FundOSBond:      150_000,
	}

	plan, err := newEngine().Plan(Request{
		Holdings:    holdings,
		BaseBudget:  300_000,
		Strategy:    contracts.StrategyBudgetBounded,
		MinPurchase: 3_000,
	})
	if err != nil {
		t.Fatalf("Plan failed: %v", err)
	}

	if len(plan.Unclosable) != 1 || plan.Unclosable[0] != contracts.FundJPBond {
		t.Errorf("unclosable = %v, want [jp_bond]", plan.Unclosable)
	}
	if _, ok := plan.FundMonths[contracts.FundJPBond]; ok {
		t.Error("unclosable fund must not carry a months estimate")
	}
	if plan.FundMonths[contracts.FundGlobalStock] == 0 {
		t.Error("global_stock should still carry a months estimate")
	}
	if plan.NextPeriod.Total() != 300_000 {
		t.Errorf("next period total = %d, want 300000", plan.NextPeriod.Total())
	}
}

func TestPlanRejectsInvalidInputs(t *testing.T) {
	e := newEngine()

	cases := []struct {
		name string
		req  Request
		want error
	}{
		{
			name: "no holdings",
			req: Request{
				Holdings:   contracts.Holdings{},
				BaseBudget: 300_000,
				Strategy:   contracts.StrategyBudgetBounded,
			},
			want: contracts.ErrNoHoldings,
		},
		{
			name: "negative holding",
			req: Request{
				Holdings:   contracts.Holdings{contracts.FundJPStock: -1},
				BaseBudget: 300_000,
				Strategy:   contracts.StrategyBudgetBounded,
			},
			want: contracts.ErrNegativeHolding,
		},
		{
			name: "unknown strategy",
			req: Request{
				Holdings:   balancedHoldings(),
				BaseBudget: 300_000,
				Strategy:   contracts.Strategy("yolo"),
			},
			want: contracts.ErrInvalidStrategy,
		},
		{
			name: "zero budget",
			req: Request{
				Holdings: balancedHoldings(),
				Strategy: contracts.StrategyBudgetBounded,
			},
			want: contracts.ErrInvalidBudget,
		},
		{
			name: "negative floor",
			req: Request{
				Holdings:    balancedHoldings(),
				BaseBudget:  300_000,
				Strategy:    contracts.StrategyBudgetBounded,
				MinPurchase: -1,
			},
			want: contracts.ErrNegativeFloor,
		},
		{
			name: "negative extra capital",
			req: Request{
				Holdings:     balancedHoldings(),
				BaseBudget:   300_000,
				Strategy:     contracts.StrategyExtraCapital,
				ExtraCapital: -1,
			},
			want: contracts.ErrNegativeCapital,
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if _, err := e.Plan(tc.req); !errors.Is(err, tc.want) {
				t.Errorf("got %v, want %v", err, tc.want)
			}
		})
	}
}
