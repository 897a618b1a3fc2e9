package buffett

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"regexp"
	"strconv"

	"github.com/PuerkitoBio/goquery"

	"github.com/ysato/planc/internal/contracts"
	"github.com/ysato/planc/pkg/httputil"
	"github.com/ysato/planc/pkg/logger"
)

// ErrNotFound is returned when no indicator value could be extracted from
// the page.
var ErrNotFound = errors.New("buffett indicator not found in page")

// percentRe matches the indicator reading, e.g. "132.5%".
var percentRe = regexp.MustCompile(`(\d{1,3}(?:\.\d+)?)\s*%`)

// Client scrapes the Buffett indicator (market cap over GDP, percent) from
// nikkeiyosoku.com. One page per market.
type Client struct {
	httpClient *httputil.Client
	logger     *logger.Logger
	urls       map[contracts.MarketGroup]string
}

// NewClient creates a Buffett indicator scraper. homeURL and foreignURL
// point at the per-market indicator pages.
func NewClient(httpClient *httputil.Client, log *logger.Logger, homeURL, foreignURL string) *Client {
	return &Client{
		httpClient: httpClient,
		logger:     log,
		urls: map[contracts.MarketGroup]string{
			contracts.MarketHome:    homeURL,
			contracts.MarketForeign: foreignURL,
		},
	}
}

// Valuation fetches and parses the current indicator value for a market.
func (c *Client) Valuation(ctx context.Context, market contracts.MarketGroup) (float64, error) {
	pageURL, ok := c.urls[market]
	if !ok {
		return 0, fmt.Errorf("no indicator page for market %q", market)
	}

	resp, err := c.httpClient.Get(ctx, pageURL)
	if err != nil {
		return 0, fmt.Errorf("HTTP request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return 0, fmt.Errorf("unexpected status code: %d", resp.StatusCode)
	}

	doc, err := goquery.NewDocumentFromReader(resp.Body)
	if err != nil {
		return 0, fmt.Errorf("parse HTML failed: %w", err)
	}

	value, err := parseIndicator(doc)
	if err != nil {
		return 0, err
	}

	c.logger.WithFields(map[string]interface{}{
		"market": market,
		"value":  value,
	}).Debug("Fetched buffett indicator")
	return value, nil
}

// parseIndicator extracts the headline reading. The page renders it as a
// percentage inside the first emphasised price block; scanning the candidate
// elements in document order keeps this tolerant of layout shuffles.
func parseIndicator(doc *goquery.Document) (float64, error) {
	var value float64
	var found bool

	doc.Find("strong, span, td, h2").EachWithBreak(func(_ int, sel *goquery.Selection) bool {
		m := percentRe.FindStringSubmatch(sel.Text())
		if m == nil {
			return true
		}

		v, err := strconv.ParseFloat(m[1], 64)
		if err != nil || v <= 0 {
			return true
		}

		value = v
		found = true
		return false
	})

	if !found {
		return 0, ErrNotFound
	}
	return value, nil
}
