package glassnodeapi

import (
	"context"
	"strconv"
	"time"
)

// MetricsEndpoint is the base path of all metric time-series, e.g. /v1/metrics/market/price_usd.
const MetricsEndpoint = "/v1/metrics"

// TimeSeriesRequest queries a metric time-series and decodes it into a TimeSeries.
// The metric is the path listed by the metric catalog, e.g. "/market/price_usd".
type TimeSeriesRequest struct {
	client APIClient

	metric string

	asset           *string
	since           *time.Time
	until           *time.Time
	interval        *Interval
	currency        *Currency
	timestampFormat *string

	params Params
}

func (c *RestClient) NewTimeSeriesRequest() *TimeSeriesRequest {
	return NewTimeSeriesRequest(c)
}

func NewTimeSeriesRequest(client APIClient) *TimeSeriesRequest {
	return &TimeSeriesRequest{client: client}
}

func (r *TimeSeriesRequest) Metric(metric string) *TimeSeriesRequest {
	r.metric = metric
	return r
}

func (r *TimeSeriesRequest) Asset(asset string) *TimeSeriesRequest {
	r.asset = &asset
	return r
}

func (r *TimeSeriesRequest) Since(since time.Time) *TimeSeriesRequest {
	r.since = &since
	return r
}

func (r *TimeSeriesRequest) Until(until time.Time) *TimeSeriesRequest {
	r.until = &until
	return r
}

func (r *TimeSeriesRequest) Interval(interval Interval) *TimeSeriesRequest {
	r.interval = &interval
	return r
}

func (r *TimeSeriesRequest) Currency(currency Currency) *TimeSeriesRequest {
	r.currency = &currency
	return r
}

// TimestampFormat selects "unix" (default) or "humanized" timestamps.
func (r *TimeSeriesRequest) TimestampFormat(format string) *TimeSeriesRequest {
	r.timestampFormat = &format
	return r
}

func (r *TimeSeriesRequest) Param(key, value string) *TimeSeriesRequest {
	r.params = r.params.Set(key, value)
	return r
}

func (r *TimeSeriesRequest) Endpoint() string {
	return MetricsEndpoint + r.metric
}

// GetParameters renders the query parameters: a, s, u, i, c, f, timestamp_format, then the extra params.
func (r *TimeSeriesRequest) GetParameters() Params {
	var params Params
	if r.asset != nil {
		params = params.Set("a", *r.asset)
	}

	if r.since != nil {
		params = params.Set("s", strconv.FormatInt(r.since.Unix(), 10))
	}

	if r.until != nil {
		params = params.Set("u", strconv.FormatInt(r.until.Unix(), 10))
	}

	if r.interval != nil {
		params = params.Set("i", string(*r.interval))
	}

	if r.currency != nil {
		params = params.Set("c", string(*r.currency))
	}

	params = params.Set("f", string(FormatJSON))

	if r.timestampFormat != nil {
		params = params.Set("timestamp_format", *r.timestampFormat)
	}

	return params.Merge(r.params)
}

func (r *TimeSeriesRequest) Do(ctx context.Context) (TimeSeries, error) {
	v, err := Execute(ctx, r.client, r.Endpoint(), r.GetParameters())
	if err != nil {
		return nil, err
	}

	return ValidateTimeSeries(v)
}
