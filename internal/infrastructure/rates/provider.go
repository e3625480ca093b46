package rates

import (
	"context"
	stdjson "encoding/json"
	"errors"
	"fmt"
	"net/http"

	jsoniter "github.com/json-iterator/go"
	"github.com/shopspring/decimal"

	"nft_portal/internal/config"
	"nft_portal/pkg/contextx"
	"nft_portal/pkg/httpx"
	"nft_portal/pkg/logx"
)

var (
	json   = jsoniter.ConfigCompatibleWithStandardLibrary //nolint:gochecknoglobals // skip
	logger = contextx.LoggerFromContextOrDefault          //nolint:gochecknoglobals
)

var errMissingRateField = errors.New("rate field missing in response")

// Provider тянет курсы ETH→USD (CoinGecko) и USD→BRL (AwesomeAPI).
// Любая проблема с источником — сеть, статус, формат — деградирует до
// fallback-курса с warning в логе; наружу ошибки не уходят.
type Provider struct {
	cfg        config.Rates
	httpClient *http.Client
}

func NewProvider(cfg config.Rates, opts ...httpx.Option) *Provider {
	return &Provider{
		cfg: cfg,
		httpClient: &http.Client{
			Timeout:   cfg.Timeout,
			Transport: httpx.NewLoggingRoundTripper(http.DefaultTransport, opts...),
		},
	}
}

type coingeckoResponse struct {
	Ethereum struct {
		Usd stdjson.Number `json:"usd"`
	} `json:"ethereum"`
}

func (p *Provider) EthUsdRate(ctx context.Context) decimal.Decimal {
	var body coingeckoResponse

	err := p.getJSON(ctx, p.cfg.EthUsdURL+"?ids=ethereum&vs_currencies=usd", &body)
	if err == nil {
		if body.Ethereum.Usd == "" {
			err = errMissingRateField
		} else if rate, parseErr := decimal.NewFromString(body.Ethereum.Usd.String()); parseErr == nil {
			return rate
		} else {
			err = parseErr
		}
	}

	logger(ctx).Warn("eth/usd rate fetch failed, using fallback",
		"fallback", p.cfg.EthUsdFallback,
		logx.Error(err),
	)

	return p.cfg.EthUsdFallback
}

type awesomeAPIResponse struct {
	USDBRL struct {
		Bid string `json:"bid"`
	} `json:"USDBRL"`
}

func (p *Provider) UsdBrlRate(ctx context.Context) decimal.Decimal {
	var body awesomeAPIResponse

	err := p.getJSON(ctx, p.cfg.UsdBrlURL, &body)
	if err == nil {
		if body.USDBRL.Bid == "" {
			err = errMissingRateField
		} else if rate, parseErr := decimal.NewFromString(body.USDBRL.Bid); parseErr == nil {
			return rate
		} else {
			err = parseErr
		}
	}

	logger(ctx).Warn("usd/brl rate fetch failed, using fallback",
		"fallback", p.cfg.UsdBrlFallback,
		logx.Error(err),
	)

	return p.cfg.UsdBrlFallback
}

func (p *Provider) getJSON(ctx context.Context, rawURL string, dest any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, http.NoBody)
	if err != nil {
		return err
	}

	req.Header.Set("Accept", "application/json")

	resp, err := p.httpClient.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("unexpected status %d", resp.StatusCode)
	}

	return json.NewDecoder(resp.Body).Decode(dest)
}
