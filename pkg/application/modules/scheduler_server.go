package modules

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/hibiken/asynq"
	"golang.org/x/sync/errgroup"
)

type SchedulerEntry struct {
	Cronspec string
	Task     *asynq.Task
	Options  []asynq.Option
}

// SchedulerServer модуль, ответственный за периодическую постановку
// задач в очередь по cron-расписанию.
type SchedulerServer struct {
	RedisUsername string
	RedisPassword string
	RedisAddress  string
	RedisDB       int
}

func (s SchedulerServer) Run(
	ctx context.Context,
	g *errgroup.Group,
	entries ...SchedulerEntry,
) {
	g.Go(func() error {
		redisConnection := asynq.RedisClientOpt{
			Addr:     s.RedisAddress,
			Username: s.RedisUsername,
			Password: s.RedisPassword,
			DB:       s.RedisDB,
		}

		scheduler := asynq.NewScheduler(redisConnection, &asynq.SchedulerOpts{
			BaseContext: func() context.Context { return ctx },
		})

		for _, entry := range entries {
			if _, err := scheduler.Register(entry.Cronspec, entry.Task, entry.Options...); err != nil {
				return fmt.Errorf("scheduler.Register(%s): %w", entry.Task.Type(), err)
			}
		}

		go func() {
			<-ctx.Done()
			scheduler.Shutdown()
		}()

		logger(ctx).Info("scheduler started", slog.String("redis-address", s.RedisAddress), slog.Int("redis-db", s.RedisDB))

		if err := scheduler.Run(); err != nil {
			return fmt.Errorf("scheduler.Run: %w", err)
		}

		logger(ctx).Info("scheduler stopped", slog.String("redis-address", s.RedisAddress), slog.Int("redis-db", s.RedisDB))

		return nil
	})
}
