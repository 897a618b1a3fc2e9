package market

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"

	"github.com/ysato/planc/pkg/httputil"
	"github.com/ysato/planc/pkg/logger"
)

// ErrNoData is returned when the chart endpoint answers without usable
// closing prices.
var ErrNoData = errors.New("no price data returned")

// Client fetches index quotes from the Yahoo Finance chart API. All quote
// and index-change observations go through this client.
type Client struct {
	httpClient *httputil.Client
	logger     *logger.Logger
	baseURL    string
}

// NewClient creates a Yahoo Finance chart client.
func NewClient(httpClient *httputil.Client, log *logger.Logger, baseURL string) *Client {
	return &Client{
		httpClient: httpClient,
		logger:     log,
		baseURL:    baseURL,
	}
}

// chartResponse mirrors the subset of the chart API payload we read.
type chartResponse struct {
	Chart struct {
		Result []struct {
			Indicators struct {
				Quote []struct {
					Close []*float64 `json:"close"`
				} `json:"quote"`
			} `json:"indicators"`
		} `json:"result"`
		Error *struct {
			Code        string `json:"code"`
			Description string `json:"description"`
		} `json:"error"`
	} `json:"chart"`
}

// fetchCloses fetches the daily closing series for a symbol over a range.
// Null entries (holidays, half sessions) are dropped.
func (c *Client) fetchCloses(ctx context.Context, symbol, rng string) ([]float64, error) {
	fullURL := fmt.Sprintf("%s/v8/finance/chart/%s?range=%s&interval=1d",
		c.baseURL, url.PathEscape(symbol), rng)

	resp, err := c.httpClient.Get(ctx, fullURL)
	if err != nil {
		return nil, fmt.Errorf("HTTP request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("unexpected status code: %d", resp.StatusCode)
	}

	var payload chartResponse
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return nil, fmt.Errorf("decode response failed: %w", err)
	}

	if payload.Chart.Error != nil {
		return nil, fmt.Errorf("chart API error: %s (%s)",
			payload.Chart.Error.Code, payload.Chart.Error.Description)
	}
	if len(payload.Chart.Result) == 0 || len(payload.Chart.Result[0].Indicators.Quote) == 0 {
		return nil, fmt.Errorf("%w: %s", ErrNoData, symbol)
	}

	var closes []float64
	for _, v := range payload.Chart.Result[0].Indicators.Quote[0].Close {
		if v != nil {
			closes = append(closes, *v)
		}
	}
	if len(closes) == 0 {
		return nil, fmt.Errorf("%w: %s", ErrNoData, symbol)
	}

	c.logger.WithFields(map[string]interface{}{
		"symbol": symbol,
		"range":  rng,
		"count":  len(closes),
	}).Debug("Fetched closes")
	return closes, nil
}
