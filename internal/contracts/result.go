package contracts

import "time"

// EvaluationResult is the output of one full evaluation run: the regular
// allocation, the crash decision, and any crash-triggered additions.
type EvaluationResult struct {
	Date       time.Time `json:"date"`
	BaseBudget Money     `json:"base_budget"`

	Regular RegularAllocation `json:"regular"`

	Signals  map[MarketGroup]MarketSignal `json:"signals"`
	Readings SignalReadings               `json:"readings"`
	Verdict  CrashVerdict                 `json:"verdict"`
	Pattern  CrashPattern                 `json:"pattern"`

	Additional      AdditionalAllocation `json:"additional"`
	TotalInvestment Money                `json:"total_investment"`

	// Degraded lists signals that could not be observed and were treated
	// as false.
	Degraded []string `json:"degraded,omitempty"`
}

// FundTotal returns the combined regular and additional purchase for a fund.
func (r *EvaluationResult) FundTotal(f FundID) Money {
	return r.Regular.Funds[f] + r.Additional.Funds[f]
}

// IsDegraded reports whether any signal fell back to its conservative
// default because upstream data was unavailable.
func (r *EvaluationResult) IsDegraded() bool {
	return len(r.Degraded) > 0
}
