package glassnode

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/c9s/glassnode/pkg/datasource/glassnode/glassnodeapi"
	"github.com/c9s/glassnode/pkg/testutil"
)

func TestClient_Integration(t *testing.T) {
	key, ok := testutil.IntegrationTestConfigured(t, "GLASSNODE")
	if !ok {
		t.SkipNow()
	}

	ctx := context.Background()
	client, err := New(Config{APIKey: key})
	require.NoError(t, err)

	t.Run("metric list", func(t *testing.T) {
		metrics, err := client.GetMetricList(ctx)
		require.NoError(t, err)
		assert.NotEmpty(t, metrics)
		assert.Contains(t, metrics, "/market/price_usd")
	})

	t.Run("asset metadata", func(t *testing.T) {
		assets, err := client.GetAssetMetadata(ctx)
		require.NoError(t, err)
		assert.NotEmpty(t, assets)
	})

	t.Run("metric metadata", func(t *testing.T) {
		meta, err := client.GetMetricMetadata(ctx, "/market/price_usd", glassnodeapi.NewParams("a", "BTC"))
		require.NoError(t, err)
		assert.Equal(t, "/market/price_usd", meta.Path)
		assert.NotEmpty(t, meta.Parameters)
	})

	t.Run("market cap", func(t *testing.T) {
		marketCap, err := client.QueryMarketCapInUSD(ctx, "BTC")
		require.NoError(t, err)
		assert.Greater(t, marketCap, 0.0)
	})
}
