package glassnodeapi

import (
	"encoding/json"
	"sort"
	"strconv"
	"strings"
	"time"
)

type ExternalIDSource string

const (
	ExternalIDSourceCCData        ExternalIDSource = "ccdata"
	ExternalIDSourceCoinMarketCap ExternalIDSource = "coinmarketcap"
	ExternalIDSourceCoinGecko     ExternalIDSource = "coingecko"
)

var externalIDSources = []ExternalIDSource{
	ExternalIDSourceCCData,
	ExternalIDSourceCoinMarketCap,
	ExternalIDSourceCoinGecko,
}

func (s ExternalIDSource) Valid() bool {
	for _, source := range externalIDSources {
		if s == source {
			return true
		}
	}

	return false
}

// ExternalIDs maps an identifier source to the asset id used by that source.
// A source without an id is absent from the map.
type ExternalIDs map[ExternalIDSource]string

/*
sample:

	{
	  "id": "bitcoin",
	  "symbol": "BTC",
	  "name": "Bitcoin",
	  "asset_type": "coin",
	  "external_ids": {"coingecko": "bitcoin"},
	  "blockchains": [
	    {"blockchain": "bitcoin", "address": "", "decimals": 8, "on_chain_support": true}
	  ]
	}
*/
type AssetMetadata struct {
	ID          string            `json:"id"`
	Symbol      string            `json:"symbol"`
	Name        string            `json:"name"`
	AssetType   string            `json:"asset_type"`
	ExternalIDs ExternalIDs       `json:"external_ids"`
	Blockchains []AssetBlockchain `json:"blockchains"`
}

type AssetBlockchain struct {
	Blockchain     string `json:"blockchain"`
	Address        string `json:"address"`
	Decimals       int    `json:"decimals"`
	OnChainSupport bool   `json:"on_chain_support"`
}

// MetricList is the catalog of metric paths, e.g. "/market/price_usd".
type MetricList []string

// Filter returns the metric paths starting with prefix.
func (l MetricList) Filter(prefix string) MetricList {
	var out MetricList
	for _, path := range l {
		if strings.HasPrefix(path, prefix) {
			out = append(out, path)
		}
	}

	return out
}

type MetricRefs struct {
	Docs   *string `json:"docs,omitempty"`
	Studio *string `json:"studio,omitempty"`
}

/*
sample:

	{
	  "path": "/distribution/balance_exchanges",
	  "tier": 2,
	  "modified": 1733829848,
	  "parameters": {"c": ["native", "usd"], "i": ["10m", "1h", "24h"]},
	  "queried": {"a": "BTC", "path": "/distribution/balance_exchanges"},
	  "refs": {
	    "docs": "https://docs.glassnode.com/basic-api/endpoints/distribution#distribution.balanceexchanges",
	    "studio": "https://studio.glassnode.com/charts/distribution.BalanceExchanges"
	  }
	}
*/
type MetricMetadata struct {
	Path string `json:"path"`
	Tier int    `json:"tier"`

	// Modified is the last time the metadata was updated, converted from unix seconds.
	Modified *time.Time `json:"modified,omitempty"`

	NextParam *string    `json:"next_param,omitempty"`
	Refs      MetricRefs `json:"refs"`

	// Queried echoes the query parameters of the metadata request.
	Queried map[string]json.RawMessage `json:"queried"`

	// Parameters lists the allowed values of every parameter of the metric.
	Parameters map[string][]string `json:"parameters"`
}

// MetricTier is the named access tier of a metric.
type MetricTier string

const (
	MetricTierFree  MetricTier = "free"
	MetricTierTier1 MetricTier = "tier1"
	MetricTierTier2 MetricTier = "tier2"
	MetricTierTier3 MetricTier = "tier3"
	MetricTierTier4 MetricTier = "tier4"
	MetricTierTier5 MetricTier = "tier5"
)

func TierName(tier int) MetricTier {
	if tier <= 0 {
		return MetricTierFree
	}

	return MetricTier("tier" + strconv.Itoa(tier))
}

func (m *MetricMetadata) TierName() MetricTier {
	return TierName(m.Tier)
}

// QueriedString returns the queried parameter as a string when it was sent as a JSON string.
func (m *MetricMetadata) QueriedString(key string) (string, bool) {
	raw, ok := m.Queried[key]
	if !ok {
		return "", false
	}

	var s string
	if err := json.Unmarshal(raw, &s); err != nil {
		return "", false
	}

	return s, true
}

// DefaultParams picks the first allowed value of every parameter, keys in sorted order.
// Parameters without allowed values are skipped.
func (m *MetricMetadata) DefaultParams() Params {
	keys := make([]string, 0, len(m.Parameters))
	for key, values := range m.Parameters {
		if len(values) > 0 {
			keys = append(keys, key)
		}
	}
	sort.Strings(keys)

	params := make(Params, 0, len(keys))
	for _, key := range keys {
		params = append(params, Param{Key: key, Value: m.Parameters[key][0]})
	}

	return params
}
