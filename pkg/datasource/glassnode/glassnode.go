package glassnode

import (
	"context"
	"encoding/json"
	"net/http"
	"net/url"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/c9s/glassnode/pkg/datasource/glassnode/glassnodeapi"
)

// DefaultAPIURL is used when Config.APIURL is empty.
const DefaultAPIURL = glassnodeapi.DefaultBaseURL

type Config struct {
	APIKey string `json:"apiKey" yaml:"apiKey"`
	APIURL string `json:"apiUrl,omitempty" yaml:"apiUrl,omitempty"`
}

// Validate checks the config and returns a copy with the default API url filled in.
func (c Config) Validate() (Config, error) {
	if c.APIKey == "" {
		return c, &ConfigError{Field: "apiKey", Err: ErrEmptyAPIKey}
	}

	if c.APIURL == "" {
		c.APIURL = DefaultAPIURL
	}

	u, err := url.Parse(c.APIURL)
	if err != nil {
		return c, &ConfigError{Field: "apiUrl", Err: err}
	}

	if !u.IsAbs() || u.Host == "" {
		return c, &ConfigError{Field: "apiUrl", Err: ErrInvalidAPIURL}
	}

	return c, nil
}

type Option func(c *Client)

// WithHTTPClient replaces the http client used to reach the API.
func WithHTTPClient(httpClient *http.Client) Option {
	return func(c *Client) {
		c.rest.HttpClient = httpClient
	}
}

// WithAPIClient sends every request through client instead of the built-in rest client.
func WithAPIClient(client glassnodeapi.APIClient) Option {
	return func(c *Client) {
		c.api = client
	}
}

func WithLogger(logger logrus.FieldLogger) Option {
	return func(c *Client) {
		c.logger = logger
	}
}

// Client is the glassnode API client. It holds no mutable state and is safe for concurrent use;
// every operation issues exactly one request.
type Client struct {
	config Config

	rest *glassnodeapi.RestClient
	api  glassnodeapi.APIClient

	logger logrus.FieldLogger
}

func New(config Config, options ...Option) (*Client, error) {
	config, err := config.Validate()
	if err != nil {
		return nil, err
	}

	rest := glassnodeapi.NewRestClient()
	rest.BaseURL, _ = url.Parse(config.APIURL)
	rest.Auth(config.APIKey)

	c := &Client{
		config: config,
		rest:   rest,
		api:    rest,
		logger: logrus.WithField("datasource", "glassnode"),
	}

	for _, option := range options {
		option(c)
	}

	return c, nil
}

func (c *Client) APIKey() string {
	return c.config.APIKey
}

func (c *Client) APIURL() string {
	return c.config.APIURL
}

// GetAssetMetadata returns the metadata of all assets.
func (c *Client) GetAssetMetadata(ctx context.Context) ([]glassnodeapi.AssetMetadata, error) {
	c.logger.Debugf("querying asset metadata")

	assets, err := glassnodeapi.NewGetAssetMetadataRequest(c.api).Do(ctx)
	if err != nil {
		return nil, wrapError(err)
	}

	return assets, nil
}

// GetMetricList returns the paths of all metrics.
func (c *Client) GetMetricList(ctx context.Context) (glassnodeapi.MetricList, error) {
	c.logger.Debugf("querying metric list")

	metrics, err := glassnodeapi.NewGetMetricListRequest(c.api).Do(ctx)
	if err != nil {
		return nil, wrapError(err)
	}

	return metrics, nil
}

// GetMetricMetadata returns the metadata of the metric at metricPath, e.g. "/distribution/balance_exchanges".
// extraParams are sent after "path" in the given order.
func (c *Client) GetMetricMetadata(ctx context.Context, metricPath string, extraParams ...glassnodeapi.Params) (*glassnodeapi.MetricMetadata, error) {
	c.logger.WithField("metric", metricPath).Debugf("querying metric metadata")

	req := glassnodeapi.NewGetMetricMetadataRequest(c.api).Path(metricPath)
	for _, params := range extraParams {
		req.Params(params)
	}

	meta, err := req.Do(ctx)
	if err != nil {
		return nil, wrapError(err)
	}

	return meta, nil
}

// CallMetric calls the metric at /v1/metrics/addresses<metricPath> and returns the response body
// as it is. The caller decides how to decode it.
func (c *Client) CallMetric(ctx context.Context, metricPath string, params ...glassnodeapi.Params) (json.RawMessage, error) {
	c.logger.WithField("metric", metricPath).Debugf("calling metric")

	req := glassnodeapi.NewMetricRequest(c.api).Metric(metricPath)
	for _, p := range params {
		req.Params(p)
	}

	raw, err := req.Do(ctx)
	if err != nil {
		return nil, wrapError(err)
	}

	return raw, nil
}

// QueryTimeSeries queries the time-series of the metric at /v1/metrics<metricPath>,
// where metricPath is an entry of the metric list, e.g. "/market/price_usd".
func (c *Client) QueryTimeSeries(ctx context.Context, metricPath string, options QueryOptions) (glassnodeapi.TimeSeries, error) {
	c.logger.WithFields(logrus.Fields{
		"metric": metricPath,
		"asset":  options.Asset,
	}).Debugf("querying metric time-series")

	req := options.apply(glassnodeapi.NewTimeSeriesRequest(c.api).Metric(metricPath))
	series, err := req.Do(ctx)
	if err != nil {
		return nil, wrapError(err)
	}

	return series, nil
}

// QueryMarketCapInUSD returns the latest daily market cap of currency in USD.
func (c *Client) QueryMarketCapInUSD(ctx context.Context, currency string) (float64, error) {
	// 25 hours ago, so that at least one daily sample is included
	since := time.Now().Add(-25 * time.Hour)
	interval := glassnodeapi.Interval24h

	series, err := c.QueryTimeSeries(ctx, "/market/marketcap_usd", QueryOptions{
		Asset:    currency,
		Since:    &since,
		Interval: &interval,
	})
	if err != nil {
		return 0, err
	}

	last, ok := series.Last()
	if !ok || last.Value == nil {
		return 0, &glassnodeapi.ValidationError{
			Schema: glassnodeapi.SchemaTimeSeries,
			Issues: []*glassnodeapi.Issue{{
				Code:    glassnodeapi.IssueRequired,
				Message: "market cap of " + currency + " has no data point",
			}},
		}
	}

	return *last.Value, nil
}
