package market

import (
	"context"
	"fmt"
)

// LastClose returns the most recent daily close for a symbol.
func (c *Client) LastClose(ctx context.Context, symbol string) (float64, error) {
	closes, err := c.fetchCloses(ctx, symbol, "5d")
	if err != nil {
		return 0, err
	}
	return closes[len(closes)-1], nil
}

// ChangePercent returns the percent change of the last close against the
// close lookback sessions earlier. A six month range covers the 60 session
// lookback with room for holidays.
func (c *Client) ChangePercent(ctx context.Context, symbol string, lookback int) (float64, error) {
	closes, err := c.fetchCloses(ctx, symbol, "6mo")
	if err != nil {
		return 0, err
	}
	if len(closes) < lookback {
		return 0, fmt.Errorf("%w: %s has %d sessions, need %d", ErrNoData, symbol, len(closes), lookback)
	}

	ref := closes[len(closes)-lookback]
	if ref == 0 {
		return 0, fmt.Errorf("%w: %s reference close is zero", ErrNoData, symbol)
	}

	last := closes[len(closes)-1]
	return (last - ref) / ref * 100, nil
}
