package contracts

import "errors"

// Invalid-input errors. These reject a run immediately; no partial result is
// produced.
var (
	ErrInvalidBudget      = errors.New("base budget must be positive")
	ErrUnknownFund        = errors.New("unknown fund")
	ErrNegativeHolding    = errors.New("holdings must not be negative")
	ErrNegativeFloor      = errors.New("minimum purchase floor must not be negative")
	ErrNegativeCapital    = errors.New("extra capital must not be negative")
	ErrInvalidStrategy    = errors.New("unknown rebalancing strategy")
	ErrNoHoldings         = errors.New("no holdings to rebalance")
	ErrFloorExceedsBudget = errors.New("minimum purchase floors consume the whole budget")
)
