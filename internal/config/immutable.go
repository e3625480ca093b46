package config

import "time"

// Immutable — настройки клиента стакана ордеров.
type Immutable struct {
	BaseURL  string        `env:"IMMUTABLE_BASE_URL" envDefault:"https://api.x.immutable.com/v3/orders"`
	Timeout  time.Duration `env:"IMMUTABLE_TIMEOUT" envDefault:"30s"`
	PageSize int           `env:"IMMUTABLE_PAGE_SIZE" envDefault:"200"`
}
