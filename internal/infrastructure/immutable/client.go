package immutable

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"

	jsoniter "github.com/json-iterator/go"

	"nft_portal/internal/config"
	"nft_portal/internal/domain"
	"nft_portal/internal/domain/entity"
	"nft_portal/pkg/errcodes"
	"nft_portal/pkg/httpx"
)

// UseNumber обязателен: суммы в Wei не влезают во float64 без потерь,
// поэтому числовые quantity декодируются в json.Number, а не во float64.
//
//nolint:gochecknoglobals
var json = jsoniter.Config{
	EscapeHTML:             true,
	SortMapKeys:            true,
	ValidateJsonRawMessage: true,
	UseNumber:              true,
}.Froze()

// Client ходит в стакан ордеров Immutable X.
type Client struct {
	baseURL    string
	pageSize   int
	httpClient *http.Client
}

func NewClient(cfg config.Immutable, opts ...httpx.Option) *Client {
	return &Client{
		baseURL:  cfg.BaseURL,
		pageSize: cfg.PageSize,
		httpClient: &http.Client{
			Timeout:   cfg.Timeout,
			Transport: httpx.NewLoggingRoundTripper(http.DefaultTransport, opts...),
		},
	}
}

type ordersResponse struct {
	Result []entity.Order `json:"result"`
}

// FetchActiveOrders возвращает активные ордера по product_code, котируемые
// в ETH. Сортировка по цене — лишь подсказка серверу: выбор лучшего ордера
// всё равно просматривает весь результат. Пустой результат — не ошибка.
func (c *Client) FetchActiveOrders(ctx context.Context, productCode string) ([]entity.Order, error) {
	metadata, err := json.Marshal(map[string][]string{"productCode": {productCode}})
	if err != nil {
		return nil, fmt.Errorf("json.Marshal(sell_metadata): %w", err)
	}

	query := url.Values{}
	query.Set("status", "active")
	query.Set("buy_token_type", "ETH")
	query.Set("sell_metadata", string(metadata))
	query.Set("order_by", "buy_quantity_with_fees")
	query.Set("direction", "asc")
	query.Set("page_size", strconv.Itoa(c.pageSize))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"?"+query.Encode(), http.NoBody)
	if err != nil {
		return nil, fmt.Errorf("http.NewRequestWithContext: %w", err)
	}

	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		var urlErr *url.Error
		if errors.As(err, &urlErr) && urlErr.Timeout() {
			orderBookErrors.WithLabelValues("timeout").Inc()
			return nil, domain.WrapError(err, errcodes.UpstreamTimeout, "order book timed out")
		}

		orderBookErrors.WithLabelValues("network").Inc()

		return nil, domain.WrapError(err, errcodes.UpstreamError, "order book request failed")
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusTooManyRequests {
		detail, _ := io.ReadAll(resp.Body) //nolint:errcheck
		if len(detail) == 0 {
			detail = []byte("order book rate limit")
		}

		orderBookErrors.WithLabelValues("rate_limited").Inc()

		return nil, domain.NewError(errcodes.RateLimited, string(detail))
	}

	if resp.StatusCode != http.StatusOK {
		orderBookErrors.WithLabelValues("status").Inc()
		return nil, domain.NewError(errcodes.UpstreamError, fmt.Sprintf("order book HTTP %d", resp.StatusCode))
	}

	var body ordersResponse
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return nil, domain.WrapError(err, errcodes.UpstreamError, "order book response decode failed")
	}

	return body.Result, nil
}
