package pricing

import (
	"context"
	"fmt"
	"strings"
	"sync"

	"github.com/shopspring/decimal"

	"nft_portal/internal/domain"
	"nft_portal/internal/domain/entity"
	"nft_portal/pkg/errcodes"
)

// Source проставляется во все карточки, полученные из стакана бидов.
const Source = "immutable_bids"

type OrderBookClient interface {
	FetchActiveOrders(ctx context.Context, productCode string) ([]entity.Order, error)
}

// RateProvider отдаёт курсы конвертации. Ошибок не возвращает:
// при недоступности источника провайдер сам подставляет fallback-курс.
type RateProvider interface {
	EthUsdRate(ctx context.Context) decimal.Decimal
	UsdBrlRate(ctx context.Context) decimal.Decimal
}

type Service struct {
	orderBook OrderBookClient
	rates     RateProvider
}

func NewService(orderBook OrderBookClient, rates RateProvider) *Service {
	return &Service{
		orderBook: orderBook,
		rates:     rates,
	}
}

// Resolve запрашивает активные ордера по product_code, выбирает самый
// дешёвый, конвертирует цену Wei → ETH → USD → BRL и собирает карточку.
// Ошибки стакана пробрасываются наверх; ретраев на этом уровне нет.
func (s *Service) Resolve(ctx context.Context, productCode string) (entity.Item, error) {
	productCode = strings.TrimSpace(productCode)
	if productCode == "" {
		return entity.Item{}, domain.NewError(errcodes.InvalidProductCode, "product_code must not be empty")
	}

	orders, err := s.orderBook.FetchActiveOrders(ctx, productCode)
	if err != nil {
		return entity.Item{}, fmt.Errorf("fetch active orders: %w", err)
	}

	best := SelectBestOrder(orders)

	// Курсы независимы, тянем их параллельно.
	var (
		ethUsd, usdBrl decimal.Decimal
		wg             sync.WaitGroup
	)

	wg.Add(2)
	go func() {
		defer wg.Done()
		ethUsd = s.rates.EthUsdRate(ctx)
	}()
	go func() {
		defer wg.Done()
		usdBrl = s.rates.UsdBrlRate(ctx)
	}()
	wg.Wait()

	item := MapToItem(best, productCode, ethUsd, usdBrl)

	logger(ctx).Info("price resolved",
		"product_code", productCode,
		"orders", len(orders),
		"eth", item.LastPriceETH,
		"usd", item.LastPriceUSD,
		"brl", item.LastPriceBRL,
	)

	return item, nil
}
