package config

import (
	"fmt"

	"github.com/caarlos0/env/v10"
	"github.com/joho/godotenv"
)

type Config struct {
	App       App
	Postgres  Postgres
	Redis     Redis
	Immutable Immutable
	Rates     Rates
	Worker    Worker
}

type App struct {
	Name            string `env:"APP_NAME" envDefault:"nft-portal"`
	Version         string `env:"APP_VERSION" envDefault:"dev"`
	HTTPAddress     string `env:"HTTP_ADDRESS" envDefault:":8080"`
	ProbeAddress    string `env:"PROBE_ADDRESS" envDefault:":8081"`
	MetricsAddress  string `env:"METRICS_ADDRESS" envDefault:":9090"`
	ShutdownTimeout int    `env:"SHUTDOWN_TIMEOUT_SECONDS" envDefault:"10"`
	LogFieldMaxLen  int    `env:"LOG_FIELD_MAX_LEN" envDefault:"2048"`
}

func Load() (Config, error) {
	_ = godotenv.Load()

	var config Config

	if err := env.Parse(&config); err != nil {
		return Config{}, fmt.Errorf("env.Parse: %w", err)
	}

	return config, nil
}
