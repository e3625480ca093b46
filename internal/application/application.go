package application

import (
	"context"
	"fmt"
	"net"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/hibiken/asynq"
	"golang.org/x/sync/errgroup"

	"nft_portal/internal/config"
	"nft_portal/internal/domain/service/pricing"
	"nft_portal/internal/infrastructure/immutable"
	"nft_portal/internal/infrastructure/persistence"
	"nft_portal/internal/infrastructure/rates"
	"nft_portal/internal/server"
	"nft_portal/internal/worker"
	"nft_portal/pkg/application/connectors"
	"nft_portal/pkg/application/modules"
	"nft_portal/pkg/httpx"
	"nft_portal/pkg/logx"
	"nft_portal/pkg/middlewarex"
)

const httpServerReadHeaderTimeout = 5 * time.Second

// Run собирает зависимости и запускает все модули приложения: HTTP API,
// asynq-воркер, планировщик, probe- и metrics-серверы. Блокируется до
// отмены ctx либо падения любого из модулей.
func Run(ctx context.Context) error { //nolint:funlen
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("config.Load: %w", err)
	}

	g, ctx := errgroup.WithContext(ctx)

	pg := &connectors.Postgres{
		DSN:             cfg.Postgres.DSN,
		MaxOpenConns:    cfg.Postgres.MaxOpenConns,
		MaxIdleConns:    cfg.Postgres.MaxIdleConns,
		ConnMaxLifetime: cfg.Postgres.ConnMaxLifetime,
	}
	db := pg.Client(ctx)
	defer pg.Close(ctx)

	if err := db.PingContext(ctx); err != nil {
		return fmt.Errorf("db.PingContext: %w", err)
	}

	// asynq поднимает собственные соединения к Redis; здесь проверяем,
	// что Redis вообще доступен, до старта модулей.
	rds := &connectors.Redis{
		Username:       cfg.Redis.Username,
		Password:       cfg.Redis.Password,
		Address:        cfg.Redis.Address,
		DatabaseNumber: cfg.Redis.DB,
	}
	rds.Client(ctx)
	defer rds.Close(ctx)

	itemRepo := persistence.NewItemRepository(db)
	accessRepo := persistence.NewAccessRepository(db)

	masker := logx.NewSensitiveDataMasker()
	httpOpts := []httpx.Option{
		httpx.WithSensitiveDataMasker(masker),
		httpx.WithLogFieldMaxLen(cfg.App.LogFieldMaxLen),
	}

	orderBook := immutable.NewClient(cfg.Immutable, httpOpts...)
	rateProvider := rates.NewProvider(cfg.Rates, httpOpts...)
	resolver := pricing.NewService(orderBook, rateProvider)

	asynqClient := asynq.NewClient(asynq.RedisClientOpt{
		Addr:     cfg.Redis.Address,
		Username: cfg.Redis.Username,
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})
	defer asynqClient.Close() //nolint:errcheck

	refresher := worker.NewPriceRefresher(cfg.Worker, resolver, itemRepo, accessRepo, asynqClient)

	srv := server.NewServer(
		server.NewItemServer(resolver, itemRepo, accessRepo),
	)

	router := chi.NewRouter()
	router.Use(
		middlewarex.TraceID,
		middlewarex.Logger,
		middlewarex.Recovery,
		middlewarex.RequestLogging(masker, cfg.App.LogFieldMaxLen),
		middlewarex.ResponseLogging(masker, cfg.App.LogFieldMaxLen),
	)
	srv.RegisterRoutes(router)

	httpServer := &http.Server{ //nolint:exhaustruct
		Addr:              cfg.App.HTTPAddress,
		Handler:           router,
		ReadHeaderTimeout: httpServerReadHeaderTimeout,
		BaseContext:       func(net.Listener) context.Context { return ctx },
	}

	modules.ProbeServer{
		Name:          cfg.App.Name,
		Version:       cfg.App.Version,
		ListenAddress: cfg.App.ProbeAddress,
	}.Run(ctx, g)

	modules.MetricServer{
		ListenAddress: cfg.App.MetricsAddress,
	}.Run(ctx, g)

	modules.HTTPServer{
		ShutdownTimeout: time.Duration(cfg.App.ShutdownTimeout) * time.Second,
	}.Run(ctx, g, httpServer)

	modules.AsynqServer{
		RedisUsername: cfg.Redis.Username,
		RedisPassword: cfg.Redis.Password,
		RedisAddress:  cfg.Redis.Address,
		RedisDB:       cfg.Redis.DB,
	}.Run(ctx, g,
		modules.AsynqQueues{cfg.Worker.Queue: cfg.Worker.Concurrency},
		modules.AsynqHandler{Pattern: worker.TypeRefreshOne, Handle: refresher.HandleRefreshOne},
		modules.AsynqHandler{Pattern: worker.TypeRefreshAll, Handle: refresher.HandleRefreshAll},
		modules.AsynqHandler{Pattern: worker.TypeCleanupAccess, Handle: refresher.HandleCleanupAccess},
	)

	modules.SchedulerServer{
		RedisUsername: cfg.Redis.Username,
		RedisPassword: cfg.Redis.Password,
		RedisAddress:  cfg.Redis.Address,
		RedisDB:       cfg.Redis.DB,
	}.Run(ctx, g,
		modules.SchedulerEntry{
			Cronspec: cfg.Worker.RefreshCron,
			Task:     worker.NewRefreshAllTask(),
			Options:  []asynq.Option{asynq.Queue(cfg.Worker.Queue)},
		},
		modules.SchedulerEntry{
			Cronspec: cfg.Worker.CleanupCron,
			Task:     worker.NewCleanupAccessTask(),
			Options:  []asynq.Option{asynq.Queue(cfg.Worker.Queue)},
		},
	)

	if err := g.Wait(); err != nil {
		return fmt.Errorf("g.Wait: %w", err)
	}

	return nil
}
