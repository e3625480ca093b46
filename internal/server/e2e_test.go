package server_test

import (
	"context"
	"net/http"
	"os"
	"testing"

	"github.com/stretchr/testify/require"

	"nft_portal/pkg/rest"
	"nft_portal/pkg/tests"
)

// Сквозной сценарий против развёрнутого приложения: задайте
// TEST_API_BASE_URL (например, http://localhost:8080), иначе skip.
func TestAPIEndToEnd(t *testing.T) {
	baseURL := os.Getenv("TEST_API_BASE_URL")
	if baseURL == "" {
		t.Skip("TEST_API_BASE_URL is not set")
	}

	rq := require.New(t)
	ctx := context.Background()
	client := tests.NewAPIClient(baseURL, nil)

	var (
		upserted rest.UpsertItemResponse
		apiErr   rest.Error
	)

	resp, err := client.Post(ctx, "/v1/nft", nil,
		rest.UpsertItemRequest{ProductCode: "F1_DELTA"}, &upserted, &apiErr)
	rq.NoError(err)
	rq.Contains([]int{http.StatusOK, http.StatusCreated}, resp.StatusCode, "api error: %+v", apiErr)
	rq.Equal("F1_DELTA", upserted.ProductCode)
	rq.NotEmpty(upserted.LastPriceBRL)

	var fetched rest.Item

	resp, err = client.Get(ctx, "/v1/nft/items/F1_DELTA", nil, &fetched, &apiErr)
	rq.NoError(err)
	rq.Equal(http.StatusOK, resp.StatusCode)
	rq.Equal(upserted.LastPriceBRL, fetched.LastPriceBRL)

	var list rest.ItemList

	resp, err = client.Get(ctx, "/v1/nft/items?search=F1_DELTA", nil, &list, &apiErr)
	rq.NoError(err)
	rq.Equal(http.StatusOK, resp.StatusCode)
	rq.NotEmpty(list.Results)

	var viewed rest.RecordAccessResponse

	resp, err = client.Post(ctx, "/v1/nft/items/view", nil,
		rest.RecordAccessRequest{ProductCode: "F1_DELTA"}, &viewed, &apiErr)
	rq.NoError(err)
	rq.Equal(http.StatusOK, resp.StatusCode)
	rq.True(viewed.OK)

	var trending rest.TrendingResponse

	resp, err = client.Get(ctx, "/v1/nft/trending", nil, &trending, &apiErr)
	rq.NoError(err)
	rq.Equal(http.StatusOK, resp.StatusCode)
	rq.NotEmpty(trending.Results)
}
