package line

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"

	"github.com/ysato/planc/pkg/httputil"
	"github.com/ysato/planc/pkg/logger"
)

// ErrNotConfigured is returned when no access token is set. Callers treat
// this as "notifications off", distinct from a delivery failure.
var ErrNotConfigured = errors.New("LINE notify token not configured")

// Client sends push messages through the LINE Notify API.
type Client struct {
	httpClient *httputil.Client
	logger     *logger.Logger
	apiURL     string
	token      string
}

// NewClient creates a LINE Notify client. An empty token produces a client
// that rejects every send with ErrNotConfigured.
func NewClient(httpClient *httputil.Client, log *logger.Logger, apiURL, token string) *Client {
	return &Client{
		httpClient: httpClient,
		logger:     log,
		apiURL:     apiURL,
		token:      token,
	}
}

// Configured reports whether a token is present.
func (c *Client) Configured() bool {
	return c.token != ""
}

// Send pushes a text message to the configured LINE Notify channel.
func (c *Client) Send(ctx context.Context, message string) error {
	if !c.Configured() {
		return ErrNotConfigured
	}

	form := url.Values{}
	form.Set("message", message)

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.apiURL, strings.NewReader(form.Encode()))
	if err != nil {
		return fmt.Errorf("create request failed: %w", err)
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	req.Header.Set("Authorization", "Bearer "+c.token)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("HTTP request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return fmt.Errorf("unexpected status code: %d (%s)", resp.StatusCode, strings.TrimSpace(string(body)))
	}

	c.logger.WithField("length", len(message)).Info("LINE notification sent")
	return nil
}
