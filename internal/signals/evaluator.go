package signals

import "github.com/ysato/planc/internal/contracts"

// Verdict derives the per-market crash decision: a market is in crash state
// only when all three of its conditions hold. The shared volatility signal
// is carried inside each market's triple unchanged.
func Verdict(home, foreign contracts.MarketSignal) contracts.CrashVerdict {
	return contracts.CrashVerdict{
		Home:    home.Crashed(),
		Foreign: foreign.Crashed(),
	}
}
