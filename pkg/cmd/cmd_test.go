package cmd

import (
	"bytes"
	"net/http"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/c9s/glassnode/pkg/datasource/glassnode"
	"github.com/c9s/glassnode/pkg/datasource/glassnode/glassnodeapi"
	"github.com/c9s/glassnode/pkg/testing/httptesting"
)

const fixtureDir = "../datasource/glassnode/glassnodeapi/testdata/"

func replyFixture(t *testing.T, name string) httptesting.RoundTripFunc {
	return func(req *http.Request) (*http.Response, error) {
		f, err := os.ReadFile(fixtureDir + name)
		require.NoError(t, err)
		return httptesting.BuildResponse(http.StatusOK, f), nil
	}
}

func mockClient(t *testing.T) *httptesting.MockTransport {
	transport := &httptesting.MockTransport{}
	transport.GET(glassnodeapi.AssetMetadataEndpoint, replyFixture(t, "get_asset_metadata_request.json"))
	transport.GET(glassnodeapi.MetricListEndpoint, replyFixture(t, "get_metric_list_request.json"))
	transport.GET(glassnodeapi.MetricMetadataEndpoint, replyFixture(t, "get_metric_metadata_request.json"))
	transport.GET("/v1/metrics/distribution/balance_exchanges", replyFixture(t, "get_time_series_request.json"))
	transport.GET("/v1/metrics/market/price_usd", replyFixture(t, "get_time_series_request.json"))
	transport.GET("/v1/metrics/addresses/active_count", replyFixture(t, "get_time_series_request.json"))

	original := newClient
	t.Cleanup(func() { newClient = original })

	newClient = func() (*glassnode.Client, error) {
		return glassnode.New(glassnode.Config{APIKey: "key"}, glassnode.WithHTTPClient(&http.Client{Transport: transport}))
	}

	return transport
}

func execute(t *testing.T, args ...string) (string, error) {
	var buf bytes.Buffer
	RootCmd.SetOut(&buf)
	RootCmd.SetArgs(args)
	defer RootCmd.SetOut(nil)

	err := RootCmd.Execute()
	return buf.String(), err
}

func TestCommands(t *testing.T) {
	transport := mockClient(t)

	t.Run("metrics", func(t *testing.T) {
		out, err := execute(t, "metrics", "--prefix", "/market/", "-o", "json")
		require.NoError(t, err)
		assert.JSONEq(t, `["/market/price_usd", "/market/volume_usd"]`, out)
	})

	t.Run("assets", func(t *testing.T) {
		out, err := execute(t, "assets", "--symbol", "usdc", "-o", "yaml")
		require.NoError(t, err)
		assert.Contains(t, out, "symbol: USDC")
		assert.Contains(t, out, "decimals: 6")
		assert.NotContains(t, out, "Bitcoin")
	})

	t.Run("metadata", func(t *testing.T) {
		out, err := execute(t, "metadata", "/distribution/balance_exchanges", "-p", "a=BTC", "-o", "json")
		require.NoError(t, err)
		assert.Contains(t, out, `"path": "/distribution/balance_exchanges"`)

		sent := transport.Requests()
		assert.Equal(t, "path=%2Fdistribution%2Fbalance_exchanges&a=BTC&api_key=key", sent[len(sent)-1].URL.RawQuery)
	})

	t.Run("call", func(t *testing.T) {
		out, err := execute(t, "call", "/active_count", "-p", "a=BTC", "-o", "json")
		require.NoError(t, err)
		assert.JSONEq(t, `[
			{"t": 1614556800, "v": 49631.24},
			{"t": 1614643200, "v": 48378.51},
			{"t": 1614729600, "v": null}
		]`, out)
	})

	t.Run("series", func(t *testing.T) {
		out, err := execute(t, "series", "/market/price_usd", "--asset", "ETH", "--since", "2021-03-01", "-o", "table")
		require.NoError(t, err)
		assert.Contains(t, out, "2021-03-01T00:00:00Z")
		assert.Contains(t, out, "49631.24")

		sent := transport.Requests()
		query := sent[len(sent)-1].URL.Query()
		assert.Equal(t, "ETH", query.Get("a"))
		assert.Equal(t, "1614556800", query.Get("s"))
		assert.Equal(t, "24h", query.Get("i"))
	})

	t.Run("dump", func(t *testing.T) {
		outDir := t.TempDir()
		out, err := execute(t, "dump", "--limit", "2", "--out", outDir, "-o", "table")
		require.NoError(t, err)
		assert.Contains(t, out, "/distribution/balance_exchanges")
		assert.Contains(t, out, "a=BTC&c=native&i=10m")

		for _, name := range []string{"distribution_balance_exchanges.json", "market_price_usd.json"} {
			_, err := os.Stat(filepath.Join(outDir, name))
			assert.NoError(t, err, name)
		}
	})

	t.Run("invalid output", func(t *testing.T) {
		_, err := execute(t, "metrics", "-o", "xml")
		assert.Error(t, err)
	})
}

func TestParseParams(t *testing.T) {
	params, err := parseParams([]string{"a=BTC", "i=24h", "a=ETH", "e="})
	require.NoError(t, err)
	assert.Equal(t, glassnodeapi.Params{{Key: "a", Value: "ETH"}, {Key: "i", Value: "24h"}, {Key: "e", Value: ""}}, params)

	_, err = parseParams([]string{"a"})
	assert.Error(t, err)

	_, err = parseParams([]string{"=BTC"})
	assert.Error(t, err)
}

func TestWriteValue(t *testing.T) {
	docs := "https://docs.glassnode.com"
	meta := &glassnodeapi.MetricMetadata{
		Path:       "/market/price_usd",
		Tier:       1,
		Refs:       glassnodeapi.MetricRefs{Docs: &docs},
		Parameters: map[string][]string{"a": {"BTC"}},
	}

	var buf bytes.Buffer
	require.NoError(t, writeValue(&buf, outputYAML, meta))
	assert.Contains(t, buf.String(), "path: /market/price_usd\ntier: 1\n")
	assert.Contains(t, buf.String(), "docs: https://docs.glassnode.com")

	buf.Reset()
	require.NoError(t, writeValue(&buf, outputJSON, glassnodeapi.MetricList{"/a"}))
	assert.JSONEq(t, `["/a"]`, buf.String())
}

func TestParseTime(t *testing.T) {
	now := time.Date(2025, 1, 2, 0, 0, 0, 0, time.UTC)

	for _, tc := range []struct {
		in   string
		want time.Time
	}{
		{"2021-03-01T00:00:00Z", time.Date(2021, 3, 1, 0, 0, 0, 0, time.UTC)},
		{"2021-03-01", time.Date(2021, 3, 1, 0, 0, 0, 0, time.UTC)},
		{"48h", time.Date(2024, 12, 31, 0, 0, 0, 0, time.UTC)},
	} {
		got, err := parseTime(tc.in, now)
		require.NoError(t, err, tc.in)
		assert.True(t, tc.want.Equal(got), "%s: %s", tc.in, got)
	}

	_, err := parseTime("yesterday", now)
	assert.Error(t, err)
}

func TestDumpHelpers(t *testing.T) {
	assert.Equal(t, "market_price_usd.json", dumpFilename("/market/price_usd"))

	meta := &glassnodeapi.MetricMetadata{Parameters: map[string][]string{
		"a": {"BTC"},
		"f": {"csv", "json"},
		"i": {"24h"},
	}}
	assert.Equal(t, "a=BTC&i=24h", dumpParams(meta).Encode())
}
