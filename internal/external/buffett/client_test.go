package buffett

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ysato/planc/internal/contracts"
	"github.com/ysato/planc/pkg/httputil"
	"github.com/ysato/planc/pkg/logger"
)

const samplePage = `<html><body>
<h1>バフェット指数</h1>
<div class="chart">グラフ</div>
<table><tr><td>現在値</td><td><strong>132.5%</strong></td></tr></table>
</body></html>`

func newTestClient(t *testing.T, handler http.HandlerFunc) *Client {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	log := logger.NewNop()
	return NewClient(httputil.New(log).DisableRetry(), log,
		server.URL+"/buffett/", server.URL+"/buffett_us/")
}

func TestValuation(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/buffett/", r.URL.Path)
		fmt.Fprint(w, samplePage)
	})

	got, err := client.Valuation(context.Background(), contracts.MarketHome)
	require.NoError(t, err)
	assert.Equal(t, 132.5, got)
}

func TestValuationForeignPage(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/buffett_us/", r.URL.Path)
		fmt.Fprint(w, `<html><body><span>185%</span></body></html>`)
	})

	got, err := client.Valuation(context.Background(), contracts.MarketForeign)
	require.NoError(t, err)
	assert.Equal(t, 185.0, got)
}

func TestValuationNotFound(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `<html><body><p>メンテナンス中</p></body></html>`)
	})

	_, err := client.Valuation(context.Background(), contracts.MarketHome)
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrNotFound))
}

func TestValuationBadStatus(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
	})

	_, err := client.Valuation(context.Background(), contracts.MarketHome)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "503")
}

func TestStatic(t *testing.T) {
	s := NewStatic(120.0, 180.0)

	home, err := s.Valuation(context.Background(), contracts.MarketHome)
	require.NoError(t, err)
	assert.Equal(t, 120.0, home)

	foreign, err := s.Valuation(context.Background(), contracts.MarketForeign)
	require.NoError(t, err)
	assert.Equal(t, 180.0, foreign)
}
