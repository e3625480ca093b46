package server

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"net"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"nft_portal/internal/domain/entity"
	"nft_portal/internal/infrastructure/persistence"
	"nft_portal/pkg/httpx/reply"
	"nft_portal/pkg/httpx/req"
	"nft_portal/pkg/lox"
	"nft_portal/pkg/rest"
)

const (
	defaultListLimit = 50
	maxListLimit     = 200

	defaultTrendingDays  = 7
	defaultTrendingLimit = 4
	maxTrendingLimit     = 50
)

type priceResolver interface {
	Resolve(ctx context.Context, productCode string) (entity.Item, error)
}

type itemRepository interface {
	Upsert(ctx context.Context, item *entity.Item) (*entity.Item, bool, error)
	GetByProductCode(ctx context.Context, productCode string) (*entity.Item, error)
	List(ctx context.Context, filter persistence.ListFilter) ([]*entity.Item, int64, error)
}

type accessRepository interface {
	Create(ctx context.Context, access *entity.ItemAccess) error
	Trending(ctx context.Context, since time.Time, limit int) ([]*entity.Item, error)
}

type ItemServer struct {
	resolver priceResolver
	items    itemRepository
	accesses accessRepository
}

func NewItemServer(resolver priceResolver, items itemRepository, accesses accessRepository) ItemServer {
	return ItemServer{
		resolver: resolver,
		items:    items,
		accesses: accesses,
	}
}

// postV1Nft разрешает актуальную цену предмета через стакан ордеров и
// сохраняет карточку. Повторный запрос с тем же product_code обновляет
// существующую запись: 201 — создана, 200 — обновлена.
func (s ItemServer) postV1Nft(w http.ResponseWriter, r *http.Request) error {
	ctx := r.Context()

	var request rest.UpsertItemRequest
	if err := req.Read(r, &request); err != nil {
		return fmt.Errorf("req.Read: %w", err)
	}

	item, err := s.resolver.Resolve(ctx, request.ProductCode)
	if err != nil {
		return fmt.Errorf("resolver.Resolve: %w", err)
	}

	saved, created, err := s.items.Upsert(ctx, &item)
	if err != nil {
		return fmt.Errorf("items.Upsert: %w", err)
	}

	status := http.StatusOK
	if created {
		status = http.StatusCreated
		upsertsTotal.WithLabelValues("created").Inc()
	} else {
		upsertsTotal.WithLabelValues("updated").Inc()
	}

	reply.JSON(ctx, w, status, rest.UpsertItemResponse{
		Item:    newRESTItem(saved),
		Created: created,
	})

	return nil
}

func (s ItemServer) getV1NftItems(w http.ResponseWriter, r *http.Request) error {
	ctx := r.Context()

	filter, err := parseListFilter(r)
	if err != nil {
		return err
	}

	items, total, err := s.items.List(ctx, filter)
	if err != nil {
		return fmt.Errorf("items.List: %w", err)
	}

	reply.JSON(ctx, w, http.StatusOK, rest.ItemList{
		Results: lox.Map(items, newRESTItem),
		Total:   int(total),
		Limit:   filter.Limit,
		Offset:  filter.Offset,
	})

	return nil
}

func (s ItemServer) getV1NftItem(w http.ResponseWriter, r *http.Request) error {
	ctx := r.Context()

	item, err := s.items.GetByProductCode(ctx, r.PathValue("product_code"))
	if err != nil {
		return fmt.Errorf("items.GetByProductCode: %w", err)
	}

	reply.JSON(ctx, w, http.StatusOK, newRESTItem(item))

	return nil
}

// postV1NftItemsView фиксирует просмотр карточки. В БД попадают только
// SHA-256 хеши IP и User-Agent, сырые значения не сохраняются.
func (s ItemServer) postV1NftItemsView(w http.ResponseWriter, r *http.Request) error {
	ctx := r.Context()

	var request rest.RecordAccessRequest
	if err := req.Read(r, &request); err != nil {
		return fmt.Errorf("req.Read: %w", err)
	}

	item, err := s.items.GetByProductCode(ctx, request.ProductCode)
	if err != nil {
		return fmt.Errorf("items.GetByProductCode: %w", err)
	}

	access := entity.ItemAccess{
		ItemID:        item.ID,
		IPHash:        hashValue(clientIP(r)),
		UserAgentHash: hashValue(r.UserAgent()),
	}

	if err := s.accesses.Create(ctx, &access); err != nil {
		return fmt.Errorf("accesses.Create: %w", err)
	}

	reply.JSON(ctx, w, http.StatusOK, rest.RecordAccessResponse{OK: true})

	return nil
}

func (s ItemServer) getV1NftTrending(w http.ResponseWriter, r *http.Request) error {
	ctx := r.Context()

	days := defaultTrendingDays
	if n, err := strconv.Atoi(r.URL.Query().Get("days")); err == nil && n > 0 {
		days = n
	}

	limit := defaultTrendingLimit
	if n, err := strconv.Atoi(r.URL.Query().Get("limit")); err == nil && n > 0 {
		limit = min(n, maxTrendingLimit)
	}

	since := time.Now().AddDate(0, 0, -days)

	items, err := s.accesses.Trending(ctx, since, limit)
	if err != nil {
		return fmt.Errorf("accesses.Trending: %w", err)
	}

	reply.JSON(ctx, w, http.StatusOK, rest.TrendingResponse{
		Results: lox.Map(items, newRESTItem),
	})

	return nil
}

func parseListFilter(r *http.Request) (persistence.ListFilter, error) {
	q := r.URL.Query()

	filter := persistence.ListFilter{
		Rarity:      q.Get("rarity"),
		ItemType:    q.Get("item_type"),
		ItemSubType: q.Get("item_sub_type"),
		Material:    q.Get("material"),
		Source:      q.Get("source"),
		Search:      q.Get("search"),
		Ordering:    q.Get("ordering"),
		Limit:       defaultListLimit,
	}

	if raw := q.Get("is_crafted_item"); raw != "" {
		v, err := strconv.ParseBool(raw)
		if err != nil {
			return persistence.ListFilter{}, invalidParam("is_crafted_item", err)
		}
		filter.IsCraftedItem = &v
	}

	if raw := q.Get("is_craft_material"); raw != "" {
		v, err := strconv.ParseBool(raw)
		if err != nil {
			return persistence.ListFilter{}, invalidParam("is_craft_material", err)
		}
		filter.IsCraftMaterial = &v
	}

	if raw := q.Get("min_price_brl"); raw != "" {
		v, err := decimal.NewFromString(raw)
		if err != nil {
			return persistence.ListFilter{}, invalidParam("min_price_brl", err)
		}
		filter.MinPriceBRL = &v
	}

	if raw := q.Get("max_price_brl"); raw != "" {
		v, err := decimal.NewFromString(raw)
		if err != nil {
			return persistence.ListFilter{}, invalidParam("max_price_brl", err)
		}
		filter.MaxPriceBRL = &v
	}

	if raw := q.Get("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n <= 0 {
			return persistence.ListFilter{}, invalidParam("limit", err)
		}
		filter.Limit = min(n, maxListLimit)
	}

	if raw := q.Get("offset"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 0 {
			return persistence.ListFilter{}, invalidParam("offset", err)
		}
		filter.Offset = n
	}

	return filter, nil
}

func clientIP(r *http.Request) string {
	if forwarded := r.Header.Get("X-Forwarded-For"); forwarded != "" {
		first, _, _ := strings.Cut(forwarded, ",")
		return strings.TrimSpace(first)
	}

	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}

	return host
}

func hashValue(v string) string {
	sum := sha256.Sum256([]byte(v))
	return hex.EncodeToString(sum[:])
}
