package evaluation

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/ysato/planc/internal/allocation"
	"github.com/ysato/planc/internal/contracts"
	"github.com/ysato/planc/internal/signals"
	"github.com/ysato/planc/pkg/logger"
)

type stubMarket struct {
	vix     float64
	changes map[string]float64
	err     error
}

func (m *stubMarket) LastClose(_ context.Context, _ string) (float64, error) {
	if m.err != nil {
		return 0, m.err
	}
	return m.vix, nil
}

func (m *stubMarket) ChangePercent(_ context.Context, symbol string, _ int) (float64, error) {
	if m.err != nil {
		return 0, m.err
	}
	return m.changes[symbol], nil
}

type stubValuation struct {
	values map[contracts.MarketGroup]float64
	err    error
}

func (v *stubValuation) Valuation(_ context.Context, market contracts.MarketGroup) (float64, error) {
	if v.err != nil {
		return 0, v.err
	}
	return v.values[market], nil
}

func newService(market contracts.MarketDataProvider, valuation contracts.ValuationSource) *Service {
	cfg := contracts.DefaultPlanConfig()
	log := logger.NewNop()
	builder := signals.NewBuilder(market, valuation,
		signals.Thresholds{VolatilityHigh: 30, ValuationLow: 80, DrawdownSevere: -20},
		signals.Symbols{VIX: "^VIX", Home: "^N225", Foreign: "^GSPC"},
		log)
	svc := NewService(builder,
		allocation.NewBaseAllocator(cfg, log),
		allocation.NewCrashAllocator(cfg, log),
		log)
	svc.now = func() time.Time { return time.Date(2026, 8, 14, 9, 0, 0, 0, time.UTC) }
	return svc
}

func TestEvaluateCalmMarket(t *testing.T) {
	svc := newService(
		&stubMarket{vix: 15.0, changes: map[string]float64{"^N225": 2.0, "^GSPC": 4.0}},
		&stubValuation{values: map[contracts.MarketGroup]float64{
			contracts.MarketHome:    120.0,
			contracts.MarketForeign: 180.0,
		}},
	)

	result, err := svc.Evaluate(context.Background(), 300_000)
	if err != nil {
		t.Fatalf("Evaluate failed: %v", err)
	}

	if result.Pattern != contracts.PatternNone {
		t.Errorf("pattern = %s, want none", result.Pattern)
	}
	if !result.Additional.Empty() {
		t.Errorf("calm market produced additions: %v", result.Additional.Funds)
	}
	if result.TotalInvestment != 300_000 {
		t.Errorf("total investment = %d, want 300000", result.TotalInvestment)
	}
	if result.IsDegraded() {
		t.Errorf("unexpected degraded notices: %v", result.Degraded)
	}
	if result.FundTotal(contracts.FundGlobalStock) != 120_000 {
		t.Errorf("global_stock total = %d, want 120000", result.FundTotal(contracts.FundGlobalStock))
	}
}

func TestEvaluateHomeCrash(t *testing.T) {
	svc := newService(
		&stubMarket{vix: 40.0, changes: map[string]float64{"^N225": -25.0, "^GSPC": -5.0}},
		&stubValuation{values: map[contracts.MarketGroup]float64{
			contracts.MarketHome:    70.0,
			contracts.MarketForeign: 150.0,
		}},
	)

	result, err := svc.Evaluate(context.Background(), 300_000)
	if err != nil {
		t.Fatalf("Evaluate failed: %v", err)
	}

	if result.Pattern != contracts.PatternHomeOnly {
		t.Fatalf("pattern = %s, want home_only", result.Pattern)
	}
	if result.TotalInvestment != 390_000 {
		t.Errorf("total investment = %d, want 390000", result.TotalInvestment)
	}
	if result.FundTotal(contracts.FundJPStock) != 90_000 {
		t.Errorf("jp_stock total = %d, want 45000 + 45000", result.FundTotal(contracts.FundJPStock))
	}
}

func TestEvaluateBothCrash(t *testing.T) {
	svc := newService(
		&stubMarket{vix: 55.0, changes: map[string]float64{"^N225": -30.0, "^GSPC": -28.0}},
		&stubValuation{values: map[contracts.MarketGroup]float64{
			contracts.MarketHome:    65.0,
			contracts.MarketForeign: 72.0,
		}},
	)

	result, err := svc.Evaluate(context.Background(), 300_000)
	if err != nil {
		t.Fatalf("Evaluate failed: %v", err)
	}

	if result.Pattern != contracts.PatternBoth {
		t.Fatalf("pattern = %s, want both", result.Pattern)
	}
	if result.TotalInvestment != 600_000 {
		t.Errorf("total investment = %d, want exactly 2x budget", result.TotalInvestment)
	}
}

func TestEvaluateDegradedNeverCrashes(t *testing.T) {
	svc := newService(
		&stubMarket{err: errors.New("upstream down")},
		&stubValuation{err: errors.New("upstream down")},
	)

	result, err := svc.Evaluate(context.Background(), 300_000)
	if err != nil {
		t.Fatalf("Evaluate must not fail on signal degradation: %v", err)
	}

	if result.Pattern != contracts.PatternNone {
		t.Errorf("pattern = %s, want none on degraded data", result.Pattern)
	}
	if !result.IsDegraded() {
		t.Error("result should carry degraded notices")
	}
	if result.TotalInvestment != 300_000 {
		t.Errorf("total investment = %d, want base budget only", result.TotalInvestment)
	}
}

func TestEvaluateRejectsNonPositiveBudget(t *testing.T) {
	svc := newService(&stubMarket{}, &stubValuation{})

	_, err := svc.Evaluate(context.Background(), 0)
	if !errors.Is(err, contracts.ErrInvalidBudget) {
		t.Errorf("expected ErrInvalidBudget, got %v", err)
	}
}
