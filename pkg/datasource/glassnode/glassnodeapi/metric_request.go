package glassnodeapi

import (
	"context"
	"encoding/json"
)

// MetricAddressesEndpoint is the base path of the untyped metric call.
const MetricAddressesEndpoint = "/v1/metrics/addresses"

// MetricRequest calls a metric under MetricAddressesEndpoint and returns the response body
// without schema validation, since the payload shape differs from metric to metric.
type MetricRequest struct {
	client APIClient

	metric string
	params Params
}

func (c *RestClient) NewMetricRequest() *MetricRequest {
	return NewMetricRequest(c)
}

func NewMetricRequest(client APIClient) *MetricRequest {
	return &MetricRequest{client: client}
}

// Metric sets the metric path, e.g. "/active_count".
func (r *MetricRequest) Metric(metric string) *MetricRequest {
	r.metric = metric
	return r
}

func (r *MetricRequest) Param(key, value string) *MetricRequest {
	r.params = r.params.Set(key, value)
	return r
}

func (r *MetricRequest) Params(params Params) *MetricRequest {
	r.params = r.params.Merge(params)
	return r
}

func (r *MetricRequest) Endpoint() string {
	return MetricAddressesEndpoint + r.metric
}

func (r *MetricRequest) Do(ctx context.Context) (json.RawMessage, error) {
	return ExecuteRaw(ctx, r.client, r.Endpoint(), r.params)
}
