package config

import "time"

type Worker struct {
	// Очередь asynq и расписание фоновых задач.
	Queue           string        `env:"WORKER_QUEUE" envDefault:"default"`
	Concurrency     int           `env:"WORKER_CONCURRENCY" envDefault:"5"`
	RefreshStagger  time.Duration `env:"WORKER_REFRESH_STAGGER" envDefault:"6s"`
	RefreshCron     string        `env:"WORKER_REFRESH_CRON" envDefault:"0 1 * * *"`
	CleanupCron     string        `env:"WORKER_CLEANUP_CRON" envDefault:"30 2 * * *"`
	AccessRetention time.Duration `env:"WORKER_ACCESS_RETENTION" envDefault:"720h"`
	DedupeTTL       time.Duration `env:"WORKER_DEDUPE_TTL" envDefault:"1m"`
}
