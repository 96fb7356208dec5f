package glassnode

import (
	"context"
	"net/http"
	"os"
	"sync"
	"testing"
	"time"

	"github.com/c9s/requestgen"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/c9s/glassnode/pkg/datasource/glassnode/glassnodeapi"
	"github.com/c9s/glassnode/pkg/datasource/glassnode/glassnodeapi/mocks"
	"github.com/c9s/glassnode/pkg/testing/httptesting"
)

const testAPIKey = "key"

func readFixture(t *testing.T, name string) string {
	t.Helper()

	f, err := os.ReadFile("glassnodeapi/testdata/" + name)
	require.NoError(t, err)
	return string(f)
}

func newTestClient(t *testing.T, httpClient *http.Client) *Client {
	t.Helper()

	client, err := New(Config{APIKey: testAPIKey}, WithHTTPClient(httpClient))
	require.NoError(t, err)
	return client
}

func TestNew(t *testing.T) {
	t.Run("default api url", func(t *testing.T) {
		client, err := New(Config{APIKey: "abc"})
		require.NoError(t, err)
		assert.Equal(t, "abc", client.APIKey())
		assert.Equal(t, "https://api.glassnode.com", client.APIURL())
	})

	t.Run("custom api url", func(t *testing.T) {
		client, err := New(Config{APIKey: "abc", APIURL: "http://localhost:8080/glassnode"})
		require.NoError(t, err)
		assert.Equal(t, "abc", client.APIKey())
		assert.Equal(t, "http://localhost:8080/glassnode", client.APIURL())
	})

	t.Run("empty api key", func(t *testing.T) {
		client, err := New(Config{APIURL: DefaultAPIURL})
		assert.Nil(t, client)

		var configErr *ConfigError
		require.True(t, errors.As(err, &configErr))
		assert.Equal(t, "apiKey", configErr.Field)
		assert.True(t, errors.Is(err, ErrEmptyAPIKey))
		assert.Equal(t, ErrEmptyAPIKey, errors.Cause(err))
		assert.Equal(t, "invalid glassnode config: apiKey: API key is required", err.Error())
	})

	for _, apiURL := range []string{"api.glassnode.com", "/v1", "http://", "://api.glassnode.com", "http://[::1"} {
		t.Run("invalid api url "+apiURL, func(t *testing.T) {
			_, err := New(Config{APIKey: "abc", APIURL: apiURL})

			var configErr *ConfigError
			require.True(t, errors.As(err, &configErr), "%v", err)
			assert.Equal(t, "apiUrl", configErr.Field)
		})
	}
}

func TestClient_GetAssetMetadata(t *testing.T) {
	ctx := context.Background()

	t.Run("succeeds", func(t *testing.T) {
		var saved *http.Request
		client := newTestClient(t, httptesting.HttpClientSaver(&saved, readFixture(t, "get_asset_metadata_request.json")))

		assets, err := client.GetAssetMetadata(ctx)
		require.NoError(t, err)
		require.Len(t, assets, 2)
		assert.Equal(t, glassnodeapi.AssetMetadata{
			ID:          "usd-coin",
			Symbol:      "USDC",
			Name:        "USD Coin",
			AssetType:   "token",
			ExternalIDs: glassnodeapi.ExternalIDs{glassnodeapi.ExternalIDSourceCoinGecko: "usd-coin"},
			Blockchains: []glassnodeapi.AssetBlockchain{
				{Blockchain: "ethereum", Address: "0xa0b86991c6218b36c1d19d4a2e9eb0ce3606eb48", Decimals: 6, OnChainSupport: true},
				{Blockchain: "solana", Address: "EPjFWdd5AufqSSqeM2qN1xzybapC8G4wEGGkZwyTDt1v", Decimals: 6, OnChainSupport: false},
			},
		}, assets[1])

		require.NotNil(t, saved)
		assert.Equal(t, "https://api.glassnode.com/v1/metadata/assets?api_key=key", saved.URL.String())
	})

	t.Run("bad request", func(t *testing.T) {
		client := newTestClient(t, httptesting.HttpClientWithStatus(http.StatusBadRequest, `{}`))

		assets, err := client.GetAssetMetadata(ctx)
		assert.Nil(t, assets)
		assert.EqualError(t, err, "Glassnode API error: Bad request: Bad Request")

		var apiErr *APIError
		require.True(t, errors.As(err, &apiErr))
		reqErr, ok := apiErr.RequestError()
		require.True(t, ok)
		assert.Equal(t, glassnodeapi.BadRequest, reqErr.Kind)
		assert.Equal(t, reqErr, errors.Cause(err))
	})

	t.Run("missing envelope", func(t *testing.T) {
		client := newTestClient(t, httptesting.HttpClientWithContent(`[]`))

		_, err := client.GetAssetMetadata(ctx)
		var validationErr *glassnodeapi.ValidationError
		require.True(t, errors.As(err, &validationErr))
		assert.Equal(t, glassnodeapi.SchemaDataEnvelope, validationErr.Schema)

		var apiErr *APIError
		assert.False(t, errors.As(err, &apiErr))
	})
}

func TestClient_GetMetricList(t *testing.T) {
	ctx := context.Background()

	t.Run("keeps the order", func(t *testing.T) {
		client := newTestClient(t, httptesting.HttpClientWithContent(readFixture(t, "get_metric_list_request.json")))

		metrics, err := client.GetMetricList(ctx)
		require.NoError(t, err)
		assert.Equal(t, glassnodeapi.MetricList{
			"/distribution/balance_exchanges",
			"/market/price_usd",
			"/market/volume_usd",
			"/indicators/sopr",
		}, metrics)
	})

	t.Run("prefix violation", func(t *testing.T) {
		client := newTestClient(t, httptesting.HttpClientWithJson([]string{"/market/price_usd", "indicators/sopr"}))

		metrics, err := client.GetMetricList(ctx)
		assert.Nil(t, metrics)

		validationErr, ok := err.(*glassnodeapi.ValidationError)
		require.True(t, ok, "validation errors are not wrapped, got %T", err)
		assert.Equal(t, []string{"[1]"}, validationErr.Paths())
	})

	t.Run("http error", func(t *testing.T) {
		client := newTestClient(t, httptesting.HttpClientWithStatus(http.StatusInternalServerError, ``))

		_, err := client.GetMetricList(ctx)
		assert.EqualError(t, err, "Glassnode API error: API request failed with status 500: Internal Server Error")
	})

	t.Run("network failure", func(t *testing.T) {
		client := newTestClient(t, httptesting.HttpClientWithError(errors.New("no such host")))

		_, err := client.GetMetricList(ctx)
		var apiErr *APIError
		require.True(t, errors.As(err, &apiErr))
		reqErr, ok := apiErr.RequestError()
		require.True(t, ok)
		assert.Equal(t, glassnodeapi.NetworkFailure, reqErr.Kind)
		assert.Contains(t, err.Error(), "Glassnode API error: ")
		assert.Contains(t, err.Error(), "no such host")
	})

	t.Run("malformed body", func(t *testing.T) {
		client := newTestClient(t, httptesting.HttpClientWithContent(`["/market/price_usd"`))

		_, err := client.GetMetricList(ctx)
		var apiErr *APIError
		require.True(t, errors.As(err, &apiErr))
		reqErr, ok := apiErr.RequestError()
		require.True(t, ok)
		assert.Equal(t, glassnodeapi.MalformedBody, reqErr.Kind)
	})
}

func TestClient_GetMetricMetadata(t *testing.T) {
	ctx := context.Background()

	var saved *http.Request
	client := newTestClient(t, httptesting.HttpClientSaver(&saved, readFixture(t, "get_metric_metadata_request.json")))

	meta, err := client.GetMetricMetadata(ctx, "/distribution/balance_exchanges", glassnodeapi.NewParams("a", "BTC"))
	require.NoError(t, err)

	require.NotNil(t, saved)
	assert.Equal(t, "/v1/metadata/metric", saved.URL.Path)
	assert.Equal(t, "path=%2Fdistribution%2Fbalance_exchanges&a=BTC&api_key=key", saved.URL.RawQuery)

	require.NotNil(t, meta.Modified)
	assert.Equal(t, int64(1733829848000), meta.Modified.UnixMilli())
	assert.Equal(t, []string{"native", "usd"}, meta.Parameters["c"])

	t.Run("without extra params", func(t *testing.T) {
		_, err := client.GetMetricMetadata(ctx, "/market/price_usd")
		require.NoError(t, err)
		assert.Equal(t, "path=%2Fmarket%2Fprice_usd&api_key=key", saved.URL.RawQuery)
	})

	t.Run("caller api_key is overridden", func(t *testing.T) {
		_, err := client.GetMetricMetadata(ctx, "/market/price_usd", glassnodeapi.NewParams("api_key", "other", "i", "24h"))
		require.NoError(t, err)
		assert.Equal(t, "path=%2Fmarket%2Fprice_usd&i=24h&api_key=key", saved.URL.RawQuery)
	})

	t.Run("idempotent", func(t *testing.T) {
		first, err := client.GetMetricMetadata(ctx, "/distribution/balance_exchanges", glassnodeapi.NewParams("a", "BTC"))
		require.NoError(t, err)

		second, err := client.GetMetricMetadata(ctx, "/distribution/balance_exchanges", glassnodeapi.NewParams("a", "BTC"))
		require.NoError(t, err)
		assert.Equal(t, first, second)
		assert.Equal(t, meta, first)
	})
}

func TestClient_CallMetric(t *testing.T) {
	ctx := context.Background()

	t.Run("raw passthrough", func(t *testing.T) {
		var saved *http.Request
		client := newTestClient(t, httptesting.HttpClientSaver(&saved, `{"anything": [1, "two", null]}`))

		raw, err := client.CallMetric(ctx, "/active_count", glassnodeapi.NewParams("a", "BTC", "i", "24h"))
		require.NoError(t, err)
		assert.JSONEq(t, `{"anything": [1, "two", null]}`, string(raw))
		assert.Equal(t, "https://api.glassnode.com/v1/metrics/addresses/active_count?a=BTC&i=24h&api_key=key", saved.URL.String())
	})

	t.Run("custom api url", func(t *testing.T) {
		var saved *http.Request
		client, err := New(Config{APIKey: testAPIKey, APIURL: "http://localhost:8080"},
			WithHTTPClient(httptesting.HttpClientSaver(&saved, `[]`)))
		require.NoError(t, err)

		_, err = client.CallMetric(ctx, "/active_count")
		require.NoError(t, err)
		assert.Equal(t, "http://localhost:8080/v1/metrics/addresses/active_count?api_key=key", saved.URL.String())
	})

	t.Run("bad request", func(t *testing.T) {
		client := newTestClient(t, httptesting.HttpClientWithStatus(http.StatusBadRequest, ``))

		raw, err := client.CallMetric(ctx, "/active_count")
		assert.Nil(t, raw)
		assert.EqualError(t, err, "Glassnode API error: Bad request: Bad Request")
	})
}

func TestClient_QueryTimeSeries(t *testing.T) {
	ctx := context.Background()

	transport := &httptesting.MockTransport{}
	transport.GET("/v1/metrics/market/price_usd", func(req *http.Request) (*http.Response, error) {
		return httptesting.BuildResponseString(http.StatusOK, readFixture(t, "get_time_series_request.json")), nil
	})
	transport.GET("/v1/metrics/market/marketcap_usd", func(req *http.Request) (*http.Response, error) {
		return httptesting.BuildResponseJson(http.StatusOK, []map[string]interface{}{
			{"t": 1614470400, "v": 8.9e11},
			{"t": 1614556800, "v": 9.2e11},
		}), nil
	})
	transport.GET("/v1/metrics/market/empty", func(req *http.Request) (*http.Response, error) {
		return httptesting.BuildResponseString(http.StatusOK, `[]`), nil
	})

	client := newTestClient(t, &http.Client{Transport: transport})

	t.Run("query options", func(t *testing.T) {
		since := time.Unix(1614556800, 0)
		until := time.Unix(1614729600, 0)
		interval := glassnodeapi.Interval24h
		currency := glassnodeapi.CurrencyNative

		series, err := client.QueryTimeSeries(ctx, "/market/price_usd", QueryOptions{
			Asset:    "BTC",
			Since:    &since,
			Until:    &until,
			Interval: &interval,
			Currency: &currency,
			Params:   glassnodeapi.NewParams("e", "aggregated"),
		})
		require.NoError(t, err)
		assert.Len(t, series, 3)

		sent := transport.Requests()
		assert.Equal(t,
			"a=BTC&s=1614556800&u=1614729600&i=24h&c=native&f=json&e=aggregated&api_key=key",
			sent[len(sent)-1].URL.RawQuery)
	})

	t.Run("market cap", func(t *testing.T) {
		marketCap, err := client.QueryMarketCapInUSD(ctx, "BTC")
		require.NoError(t, err)
		assert.Equal(t, 9.2e11, marketCap)

		sent := transport.Requests()
		query := sent[len(sent)-1].URL.Query()
		assert.Equal(t, "BTC", query.Get("a"))
		assert.Equal(t, "24h", query.Get("i"))
		assert.NotEmpty(t, query.Get("s"))
	})

	t.Run("undefined metric path", func(t *testing.T) {
		_, err := client.QueryTimeSeries(ctx, "/market/unknown", QueryOptions{})
		var apiErr *APIError
		require.True(t, errors.As(err, &apiErr))
		reqErr, ok := apiErr.RequestError()
		require.True(t, ok)
		assert.Equal(t, glassnodeapi.NetworkFailure, reqErr.Kind)
	})

	t.Run("empty series", func(t *testing.T) {
		series, err := client.QueryTimeSeries(ctx, "/market/empty", QueryOptions{})
		require.NoError(t, err)
		assert.Empty(t, series)
	})
}

func TestClient_Concurrent(t *testing.T) {
	ctx := context.Background()

	transport := &httptesting.MockTransport{}
	transport.GET(glassnodeapi.MetricListEndpoint, func(req *http.Request) (*http.Response, error) {
		return httptesting.BuildResponseString(http.StatusOK, readFixture(t, "get_metric_list_request.json")), nil
	})

	client := newTestClient(t, &http.Client{Transport: transport})

	const n = 8
	results := make([]glassnodeapi.MetricList, n)
	errs := make([]error, n)

	var wg sync.WaitGroup
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			results[i], errs[i] = client.GetMetricList(ctx)
		}(i)
	}
	wg.Wait()

	for i := 0; i < n; i++ {
		assert.NoError(t, errs[i])
		assert.Equal(t, results[0], results[i])
	}

	assert.Equal(t, n, transport.Calls(glassnodeapi.MetricListEndpoint))
}

func TestClient_WithAPIClient(t *testing.T) {
	ctx := context.Background()

	mockCtrl := gomock.NewController(t)
	defer mockCtrl.Finish()

	apiClient := mocks.NewMockAPIClient(mockCtrl)
	client, err := New(Config{APIKey: testAPIKey}, WithAPIClient(apiClient))
	require.NoError(t, err)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, "https://api.glassnode.com/v1/metadata/metric", nil)
	require.NoError(t, err)

	resp, err := requestgen.NewResponse(httptesting.BuildResponseString(http.StatusOK, readFixture(t, "get_metric_metadata_request.json")))
	require.NoError(t, err)

	apiClient.EXPECT().
		NewAuthenticatedRequest(gomock.Any(), http.MethodGet, glassnodeapi.MetricMetadataEndpoint,
			glassnodeapi.Params{{Key: "path", Value: "/distribution/balance_exchanges"}, {Key: "a", Value: "BTC"}}).
		Return(req, nil).
		Times(1)
	apiClient.EXPECT().SendRequest(req).Return(resp, nil).Times(1)

	meta, err := client.GetMetricMetadata(ctx, "/distribution/balance_exchanges", glassnodeapi.NewParams("a", "BTC"))
	require.NoError(t, err)
	assert.Equal(t, "/distribution/balance_exchanges", meta.Path)

	t.Run("send failure", func(t *testing.T) {
		apiClient.EXPECT().
			NewAuthenticatedRequest(gomock.Any(), http.MethodGet, glassnodeapi.MetricListEndpoint, gomock.Nil()).
			Return(req, nil).
			Times(1)
		apiClient.EXPECT().SendRequest(req).Return(nil, errors.New("connection reset by peer")).Times(1)

		_, err := client.GetMetricList(ctx)
		assert.EqualError(t, err, "Glassnode API error: connection reset by peer")
	})

	t.Run("build failure", func(t *testing.T) {
		apiClient.EXPECT().
			NewAuthenticatedRequest(gomock.Any(), http.MethodGet, glassnodeapi.AssetMetadataEndpoint, gomock.Nil()).
			Return(nil, errors.New("bad url")).
			Times(1)

		_, err := client.GetAssetMetadata(ctx)
		var apiErr *APIError
		require.True(t, errors.As(err, &apiErr))
		_, ok := apiErr.RequestError()
		assert.False(t, ok)
		assert.Contains(t, err.Error(), "bad url")
	})
}
