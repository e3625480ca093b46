package server_test

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	jsoniter "github.com/json-iterator/go"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"

	"nft_portal/internal/domain"
	"nft_portal/internal/domain/entity"
	"nft_portal/internal/infrastructure/persistence"
	"nft_portal/internal/server"
	"nft_portal/pkg/errcodes"
	"nft_portal/pkg/rest"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary //nolint:gochecknoglobals // skip

func testItem() entity.Item {
	number := 42

	return entity.Item{
		ID:           7,
		ProductCode:  "F1_DELTA",
		Name:         "Delta Wing",
		Type:         "car_part",
		Source:       "immutable_bids",
		Rarity:       "Epic",
		ItemType:     "Gear",
		ItemSubType:  "Wing",
		Number:       &number,
		LastPriceETH: decimal.RequireFromString("1.5"),
		LastPriceUSD: decimal.RequireFromString("3000"),
		LastPriceBRL: decimal.RequireFromString("15000"),
		CreatedAt:    time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC),
		UpdatedAt:    time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC),
	}
}

type fakeResolver struct {
	item entity.Item
	err  error
}

func (f fakeResolver) Resolve(_ context.Context, productCode string) (entity.Item, error) {
	if f.err != nil {
		return entity.Item{}, f.err
	}

	item := f.item
	item.ProductCode = productCode

	return item, nil
}

type fakeItemRepo struct {
	item       *entity.Item
	created    bool
	getErr     error
	listFilter persistence.ListFilter
	listItems  []*entity.Item
	listTotal  int64
}

func (f *fakeItemRepo) Upsert(_ context.Context, item *entity.Item) (*entity.Item, bool, error) {
	saved := *item
	saved.ID = 7
	saved.CreatedAt = time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC)
	saved.UpdatedAt = saved.CreatedAt

	return &saved, f.created, nil
}

func (f *fakeItemRepo) GetByProductCode(context.Context, string) (*entity.Item, error) {
	if f.getErr != nil {
		return nil, f.getErr
	}

	return f.item, nil
}

func (f *fakeItemRepo) List(_ context.Context, filter persistence.ListFilter) ([]*entity.Item, int64, error) {
	f.listFilter = filter
	return f.listItems, f.listTotal, nil
}

type fakeAccessRepo struct {
	access   *entity.ItemAccess
	trending []*entity.Item
}

func (f *fakeAccessRepo) Create(_ context.Context, access *entity.ItemAccess) error {
	access.ID = 1
	access.AccessedAt = time.Now()
	f.access = access

	return nil
}

func (f *fakeAccessRepo) Trending(context.Context, time.Time, int) ([]*entity.Item, error) {
	return f.trending, nil
}

func newTestRouter(resolver fakeResolver, items *fakeItemRepo, accesses *fakeAccessRepo) http.Handler {
	router := chi.NewRouter()
	server.NewServer(server.NewItemServer(resolver, items, accesses)).RegisterRoutes(router)

	return router
}

func doRequest(t *testing.T, h http.Handler, method, target, body string) *httptest.ResponseRecorder {
	t.Helper()

	req := httptest.NewRequest(method, target, strings.NewReader(body))
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	return rec
}

func TestUpsertItem(t *testing.T) {
	testCases := []struct {
		name        string
		created     bool
		wantStatus  int
		wantCreated bool
	}{
		{name: "new item", created: true, wantStatus: http.StatusCreated, wantCreated: true},
		{name: "existing item", created: false, wantStatus: http.StatusOK, wantCreated: false},
	}

	for _, tc := range testCases {
		tc := tc

		t.Run(tc.name, func(t *testing.T) {
			rq := require.New(t)

			items := &fakeItemRepo{created: tc.created}
			router := newTestRouter(fakeResolver{item: testItem()}, items, &fakeAccessRepo{})

			rec := doRequest(t, router, http.MethodPost, "/v1/nft", `{"product_code": "F1_DELTA"}`)
			rq.Equal(tc.wantStatus, rec.Code)

			var resp rest.UpsertItemResponse
			rq.NoError(json.Unmarshal(rec.Body.Bytes(), &resp))
			rq.Equal(tc.wantCreated, resp.Created)
			rq.Equal("F1_DELTA", resp.ProductCode)
			rq.Equal("1.500000000000000000", resp.LastPriceETH)
			rq.Equal("3000.00", resp.LastPriceUSD)
			rq.Equal("15000.00", resp.LastPriceBRL)
		})
	}
}

func TestUpsertItemBadRequest(t *testing.T) {
	rq := require.New(t)

	router := newTestRouter(fakeResolver{item: testItem()}, &fakeItemRepo{}, &fakeAccessRepo{})

	rec := doRequest(t, router, http.MethodPost, "/v1/nft", `{not json`)
	rq.Equal(http.StatusBadRequest, rec.Code)

	rec = doRequest(t, router, http.MethodPost, "/v1/nft", `{}`)
	rq.Equal(http.StatusBadRequest, rec.Code)
}

func TestUpsertItemUpstreamFailures(t *testing.T) {
	testCases := []struct {
		name       string
		err        error
		wantStatus int
		wantCode   string
	}{
		{
			name:       "order book timeout",
			err:        domain.NewError(errcodes.UpstreamTimeout, "order book timed out"),
			wantStatus: http.StatusBadGateway,
			wantCode:   errcodes.UpstreamTimeout.String(),
		},
		{
			name:       "order book error",
			err:        domain.NewError(errcodes.UpstreamError, "order book HTTP 500"),
			wantStatus: http.StatusBadGateway,
			wantCode:   errcodes.UpstreamError.String(),
		},
		{
			name:       "rate limited",
			err:        domain.NewError(errcodes.RateLimited, "too many requests"),
			wantStatus: http.StatusBadRequest,
			wantCode:   errcodes.RateLimited.String(),
		},
		{
			name:       "blank product code",
			err:        domain.NewError(errcodes.InvalidProductCode, "product_code must not be empty"),
			wantStatus: http.StatusBadRequest,
			wantCode:   errcodes.InvalidProductCode.String(),
		},
	}

	for _, tc := range testCases {
		tc := tc

		t.Run(tc.name, func(t *testing.T) {
			rq := require.New(t)

			router := newTestRouter(fakeResolver{err: tc.err}, &fakeItemRepo{}, &fakeAccessRepo{})

			rec := doRequest(t, router, http.MethodPost, "/v1/nft", `{"product_code": "F1_DELTA"}`)
			rq.Equal(tc.wantStatus, rec.Code)

			var resp rest.Error
			rq.NoError(json.Unmarshal(rec.Body.Bytes(), &resp))
			rq.Equal(tc.wantCode, string(resp.Code))
		})
	}
}

func TestListItems(t *testing.T) {
	rq := require.New(t)

	item := testItem()
	items := &fakeItemRepo{listItems: []*entity.Item{&item}, listTotal: 25}
	router := newTestRouter(fakeResolver{}, items, &fakeAccessRepo{})

	rec := doRequest(t, router, http.MethodGet,
		"/v1/nft/items?rarity=Epic&is_crafted_item=true&min_price_brl=100.50&limit=10&offset=20&ordering=-last_price_brl", "")
	rq.Equal(http.StatusOK, rec.Code)

	var resp rest.ItemList
	rq.NoError(json.Unmarshal(rec.Body.Bytes(), &resp))
	rq.Len(resp.Results, 1)
	rq.Equal(25, resp.Total)
	rq.Equal(10, resp.Limit)
	rq.Equal(20, resp.Offset)

	rq.Equal("Epic", items.listFilter.Rarity)
	rq.NotNil(items.listFilter.IsCraftedItem)
	rq.True(*items.listFilter.IsCraftedItem)
	rq.NotNil(items.listFilter.MinPriceBRL)
	rq.True(items.listFilter.MinPriceBRL.Equal(decimal.RequireFromString("100.50")))
	rq.Equal("-last_price_brl", items.listFilter.Ordering)
	rq.Equal(10, items.listFilter.Limit)
	rq.Equal(20, items.listFilter.Offset)
}

func TestListItemsBadFilter(t *testing.T) {
	rq := require.New(t)

	router := newTestRouter(fakeResolver{}, &fakeItemRepo{}, &fakeAccessRepo{})

	for _, target := range []string{
		"/v1/nft/items?is_crafted_item=maybe",
		"/v1/nft/items?min_price_brl=cheap",
		"/v1/nft/items?limit=-1",
	} {
		rec := doRequest(t, router, http.MethodGet, target, "")
		rq.Equal(http.StatusBadRequest, rec.Code, target)
	}
}

func TestGetItem(t *testing.T) {
	rq := require.New(t)

	item := testItem()
	router := newTestRouter(fakeResolver{}, &fakeItemRepo{item: &item}, &fakeAccessRepo{})

	rec := doRequest(t, router, http.MethodGet, "/v1/nft/items/F1_DELTA", "")
	rq.Equal(http.StatusOK, rec.Code)

	var resp rest.Item
	rq.NoError(json.Unmarshal(rec.Body.Bytes(), &resp))
	rq.Equal("F1_DELTA", resp.ProductCode)
	rq.Equal("Delta Wing", resp.Name)
	rq.NotNil(resp.Number)
	rq.Equal(42, *resp.Number)
}

func TestGetItemNotFound(t *testing.T) {
	rq := require.New(t)

	items := &fakeItemRepo{getErr: domain.NewError(errcodes.ItemNotFound, "item not found")}
	router := newTestRouter(fakeResolver{}, items, &fakeAccessRepo{})

	rec := doRequest(t, router, http.MethodGet, "/v1/nft/items/MISSING", "")
	rq.Equal(http.StatusNotFound, rec.Code)
}

func TestRecordAccess(t *testing.T) {
	rq := require.New(t)

	item := testItem()
	accesses := &fakeAccessRepo{}
	router := newTestRouter(fakeResolver{}, &fakeItemRepo{item: &item}, accesses)

	req := httptest.NewRequest(http.MethodPost, "/v1/nft/items/view",
		strings.NewReader(`{"product_code": "F1_DELTA"}`))
	req.Header.Set("X-Forwarded-For", "203.0.113.7, 10.0.0.1")
	req.Header.Set("User-Agent", "portal-test/1.0")

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	rq.Equal(http.StatusOK, rec.Code)

	var resp rest.RecordAccessResponse
	rq.NoError(json.Unmarshal(rec.Body.Bytes(), &resp))
	rq.True(resp.OK)

	rq.NotNil(accesses.access)
	rq.Equal(item.ID, accesses.access.ItemID)

	ipSum := sha256.Sum256([]byte("203.0.113.7"))
	rq.Equal(hex.EncodeToString(ipSum[:]), accesses.access.IPHash)

	uaSum := sha256.Sum256([]byte("portal-test/1.0"))
	rq.Equal(hex.EncodeToString(uaSum[:]), accesses.access.UserAgentHash)
}

func TestRecordAccessUnknownItem(t *testing.T) {
	rq := require.New(t)

	items := &fakeItemRepo{getErr: domain.NewError(errcodes.ItemNotFound, "item not found")}
	router := newTestRouter(fakeResolver{}, items, &fakeAccessRepo{})

	rec := doRequest(t, router, http.MethodPost, "/v1/nft/items/view", `{"product_code": "MISSING"}`)
	rq.Equal(http.StatusNotFound, rec.Code)
}

func TestTrending(t *testing.T) {
	rq := require.New(t)

	item := testItem()
	accesses := &fakeAccessRepo{trending: []*entity.Item{&item}}
	router := newTestRouter(fakeResolver{}, &fakeItemRepo{}, accesses)

	rec := doRequest(t, router, http.MethodGet, "/v1/nft/trending?limit=5", "")
	rq.Equal(http.StatusOK, rec.Code)

	var resp rest.TrendingResponse
	rq.NoError(json.Unmarshal(rec.Body.Bytes(), &resp))
	rq.Len(resp.Results, 1)
	rq.Equal("F1_DELTA", resp.Results[0].ProductCode)
}
