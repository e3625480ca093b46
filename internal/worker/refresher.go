package worker

import (
	"context"
	"fmt"
	"time"

	"github.com/hibiken/asynq"
	"github.com/patrickmn/go-cache"

	"nft_portal/internal/config"
	"nft_portal/internal/domain/entity"
	"nft_portal/pkg/logx"
)

type priceResolver interface {
	Resolve(ctx context.Context, productCode string) (entity.Item, error)
}

type itemRepository interface {
	Upsert(ctx context.Context, item *entity.Item) (*entity.Item, bool, error)
	ListProductCodes(ctx context.Context) ([]string, error)
}

type accessRepository interface {
	DeleteOlderThan(ctx context.Context, cutoff time.Time) (int64, error)
}

type enqueuer interface {
	EnqueueContext(ctx context.Context, task *asynq.Task, opts ...asynq.Option) (*asynq.TaskInfo, error)
}

// PriceRefresher — обработчики фоновых задач обновления цен и чистки
// журнала просмотров.
type PriceRefresher struct {
	cfg      config.Worker
	resolver priceResolver
	items    itemRepository
	accesses accessRepository
	client   enqueuer

	// Защита от дублей при наложении запусков: product_code, обновлённый
	// недавно, пропускается без похода в стакан.
	processedCache *cache.Cache
}

func NewPriceRefresher(
	cfg config.Worker,
	resolver priceResolver,
	items itemRepository,
	accesses accessRepository,
	client enqueuer,
) *PriceRefresher {
	return &PriceRefresher{
		cfg:            cfg,
		resolver:       resolver,
		items:          items,
		accesses:       accesses,
		client:         client,
		processedCache: cache.New(cfg.DedupeTTL, 2*cfg.DedupeTTL),
	}
}

// HandleRefreshOne заново разрешает цену одного предмета и сохраняет
// карточку. Ошибка возвращается в asynq для ретрая по его политике.
func (p *PriceRefresher) HandleRefreshOne(ctx context.Context, task *asynq.Task) error {
	var payload RefreshOnePayload
	if err := json.Unmarshal(task.Payload(), &payload); err != nil {
		return fmt.Errorf("json.Unmarshal: %w: %w", err, asynq.SkipRetry)
	}

	if _, found := p.processedCache.Get(payload.ProductCode); found {
		logger(ctx).Debug("refresh skipped, recently processed", "product_code", payload.ProductCode)
		return nil
	}

	item, err := p.resolver.Resolve(ctx, payload.ProductCode)
	if err != nil {
		refreshesTotal.WithLabelValues("error").Inc()
		return fmt.Errorf("resolver.Resolve(%s): %w", payload.ProductCode, err)
	}

	if _, _, err := p.items.Upsert(ctx, &item); err != nil {
		refreshesTotal.WithLabelValues("error").Inc()
		return fmt.Errorf("items.Upsert(%s): %w", payload.ProductCode, err)
	}

	p.processedCache.Set(payload.ProductCode, true, cache.DefaultExpiration)
	refreshesTotal.WithLabelValues("ok").Inc()

	return nil
}

// HandleRefreshAll ставит по задаче TypeRefreshOne на каждый известный
// предмет. Задачи разносятся по времени, чтобы не упереться в rate
// limit стакана ордеров.
func (p *PriceRefresher) HandleRefreshAll(ctx context.Context, _ *asynq.Task) error {
	codes, err := p.items.ListProductCodes(ctx)
	if err != nil {
		return fmt.Errorf("items.ListProductCodes: %w", err)
	}

	var enqueued int

	for i, code := range codes {
		task, err := NewRefreshOneTask(code)
		if err != nil {
			return fmt.Errorf("NewRefreshOneTask(%s): %w", code, err)
		}

		_, err = p.client.EnqueueContext(ctx, task,
			asynq.Queue(p.cfg.Queue),
			asynq.ProcessIn(time.Duration(i)*p.cfg.RefreshStagger),
		)
		if err != nil {
			logger(ctx).Error("failed to enqueue refresh", "product_code", code, logx.Error(err))
			continue
		}

		enqueued++
	}

	refreshAllEnqueued.Add(float64(enqueued))

	logger(ctx).Info("catalog refresh scheduled",
		"items", len(codes),
		"enqueued", enqueued,
		"stagger", p.cfg.RefreshStagger,
	)

	return nil
}

// HandleCleanupAccess удаляет записи просмотров старше срока хранения.
func (p *PriceRefresher) HandleCleanupAccess(ctx context.Context, _ *asynq.Task) error {
	cutoff := time.Now().Add(-p.cfg.AccessRetention)

	deleted, err := p.accesses.DeleteOlderThan(ctx, cutoff)
	if err != nil {
		return fmt.Errorf("accesses.DeleteOlderThan: %w", err)
	}

	accessesDeleted.Add(float64(deleted))

	logger(ctx).Info("access log cleaned", "deleted", deleted, "cutoff", cutoff)

	return nil
}
