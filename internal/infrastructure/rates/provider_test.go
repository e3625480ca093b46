package rates_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"

	"nft_portal/internal/config"
	"nft_portal/internal/infrastructure/rates"
)

func newTestConfig(ethUsdURL, usdBrlURL string) config.Rates {
	return config.Rates{
		EthUsdURL:      ethUsdURL,
		UsdBrlURL:      usdBrlURL,
		Timeout:        time.Second,
		EthUsdFallback: decimal.RequireFromString("4713.59"),
		UsdBrlFallback: decimal.RequireFromString("5.42"),
	}
}

func TestRatesFromUpstream(t *testing.T) {
	rq := require.New(t)

	ethSrv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		rq.Equal("ethereum", r.URL.Query().Get("ids"))
		rq.Equal("usd", r.URL.Query().Get("vs_currencies"))
		_, _ = w.Write([]byte(`{"ethereum": {"usd": 2514.37}}`))
	}))
	defer ethSrv.Close()

	brlSrv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(`{"USDBRL": {"bid": "5.1034", "ask": "5.1100"}}`))
	}))
	defer brlSrv.Close()

	provider := rates.NewProvider(newTestConfig(ethSrv.URL, brlSrv.URL))

	ethUsd := provider.EthUsdRate(context.Background())
	rq.True(ethUsd.Equal(decimal.RequireFromString("2514.37")), "got %s", ethUsd)

	usdBrl := provider.UsdBrlRate(context.Background())
	rq.True(usdBrl.Equal(decimal.RequireFromString("5.1034")), "got %s", usdBrl)
}

func TestRatesFallbackOnServerError(t *testing.T) {
	rq := require.New(t)

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer srv.Close()

	provider := rates.NewProvider(newTestConfig(srv.URL, srv.URL))

	rq.True(provider.EthUsdRate(context.Background()).Equal(decimal.RequireFromString("4713.59")))
	rq.True(provider.UsdBrlRate(context.Background()).Equal(decimal.RequireFromString("5.42")))
}

func TestRatesFallbackOnDeadUpstream(t *testing.T) {
	rq := require.New(t)

	srv := httptest.NewServer(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {}))
	srv.Close()

	provider := rates.NewProvider(newTestConfig(srv.URL, srv.URL))

	rq.True(provider.EthUsdRate(context.Background()).Equal(decimal.RequireFromString("4713.59")))
	rq.True(provider.UsdBrlRate(context.Background()).Equal(decimal.RequireFromString("5.42")))
}

func TestRatesFallbackOnMissingField(t *testing.T) {
	rq := require.New(t)

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(`{}`))
	}))
	defer srv.Close()

	provider := rates.NewProvider(newTestConfig(srv.URL, srv.URL))

	rq.True(provider.EthUsdRate(context.Background()).Equal(decimal.RequireFromString("4713.59")))
	rq.True(provider.UsdBrlRate(context.Background()).Equal(decimal.RequireFromString("5.42")))
}

func TestRatesFallbackOnGarbageBody(t *testing.T) {
	rq := require.New(t)

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(`not json at all`))
	}))
	defer srv.Close()

	provider := rates.NewProvider(newTestConfig(srv.URL, srv.URL))

	rq.True(provider.EthUsdRate(context.Background()).Equal(decimal.RequireFromString("4713.59")))
	rq.True(provider.UsdBrlRate(context.Background()).Equal(decimal.RequireFromString("5.42")))
}
