package contracts

import "context"

// MarketDataProvider fetches index levels from a quote source.
// Implementations return an error when the value is unavailable; callers
// translate that into a false signal, never into a crash.
type MarketDataProvider interface {
	// LastClose returns the most recent closing value for a symbol.
	LastClose(ctx context.Context, symbol string) (float64, error)
	// ChangePercent returns the percent change between the close lookback
	// trading days ago and the latest close.
	ChangePercent(ctx context.Context, symbol string, lookback int) (float64, error)
}

// ValuationSource supplies the Buffett indicator (market cap over GDP, in
// percent) for a market group.
type ValuationSource interface {
	Valuation(ctx context.Context, market MarketGroup) (float64, error)
}

// NotificationSink pushes a formatted summary to the user.
type NotificationSink interface {
	Send(ctx context.Context, message string) error
}
