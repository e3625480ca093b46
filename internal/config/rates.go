package config

import (
	"time"

	"github.com/shopspring/decimal"
)

// Rates — источники курсов и fallback-значения на случай их недоступности.
// Значения по умолчанию должны совпадать с историческими константами.
type Rates struct {
	EthUsdURL      string          `env:"RATES_ETH_USD_URL" envDefault:"https://api.coingecko.com/api/v3/simple/price"`
	UsdBrlURL      string          `env:"RATES_USD_BRL_URL" envDefault:"https://economia.awesomeapi.com.br/json/last/USD-BRL"`
	Timeout        time.Duration   `env:"RATES_TIMEOUT" envDefault:"10s"`
	EthUsdFallback decimal.Decimal `env:"RATES_ETH_USD_FALLBACK" envDefault:"4713.59"`
	UsdBrlFallback decimal.Decimal `env:"RATES_USD_BRL_FALLBACK" envDefault:"5.42"`
}
