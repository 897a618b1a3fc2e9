package contracts

import (
	"errors"
	"testing"
)

func TestHoldingsTotals(t *testing.T) {
	h := Holdings{
		FundJPStock:     300_000,
		FundJPReit:      200_000,
		FundGlobalStock: 500_000,
	}

	if got := h.Total(); got != 1_000_000 {
		t.Errorf("Total() = %d, want 1000000", got)
	}
	if got := h.MarketTotal(MarketHome); got != 500_000 {
		t.Errorf("MarketTotal(home) = %d, want 500000", got)
	}
	if got := h.MarketTotal(MarketForeign); got != 500_000 {
		t.Errorf("MarketTotal(foreign) = %d, want 500000", got)
	}
}

func TestHoldingsValidate(t *testing.T) {
	if err := (Holdings{FundJPStock: 1000}).Validate(); err != nil {
		t.Errorf("valid holdings rejected: %v", err)
	}

	err := Holdings{FundJPStock: -1}.Validate()
	if !errors.Is(err, ErrNegativeHolding) {
		t.Errorf("expected ErrNegativeHolding, got %v", err)
	}

	err = Holdings{FundID("btc"): 1000}.Validate()
	if !errors.Is(err, ErrUnknownFund) {
		t.Errorf("expected ErrUnknownFund, got %v", err)
	}
}

func TestStrategyValid(t *testing.T) {
	if !StrategyBudgetBounded.Valid() || !StrategyExtraCapital.Valid() {
		t.Error("built-in strategies should be valid")
	}
	if Strategy("yolo").Valid() {
		t.Error("unknown strategy should not be valid")
	}
}

func TestFundAllocationTotals(t *testing.T) {
	a := FundAllocation{
		FundJPStock: 45_000,
		FundJPBond:  15_000,
		FundUSStock: 45_000,
	}

	if got := a.Total(); got != 105_000 {
		t.Errorf("Total() = %d, want 105000", got)
	}
	if got := a.MarketTotal(MarketHome); got != 60_000 {
		t.Errorf("MarketTotal(home) = %d, want 60000", got)
	}
}

func TestBucketSplit(t *testing.T) {
	b := BucketSplit{Tsumitate: 100_000, Growth: 20_000}
	if b.Total() != 120_000 {
		t.Errorf("Total() = %d, want 120000", b.Total())
	}
	if !b.Split() {
		t.Error("split with growth > 0 should report Split()")
	}
	if (BucketSplit{Tsumitate: 80_000}).Split() {
		t.Error("split without growth should not report Split()")
	}
}
