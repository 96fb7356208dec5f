package glassnodeapi

import "context"

const MetricListEndpoint = "/v1/metadata/metrics"

// GetMetricListRequest queries the paths of all metrics.
type GetMetricListRequest struct {
	client APIClient
}

func (c *RestClient) NewGetMetricListRequest() *GetMetricListRequest {
	return NewGetMetricListRequest(c)
}

func NewGetMetricListRequest(client APIClient) *GetMetricListRequest {
	return &GetMetricListRequest{client: client}
}

func (r *GetMetricListRequest) Do(ctx context.Context) (MetricList, error) {
	v, err := Execute(ctx, r.client, MetricListEndpoint, nil)
	if err != nil {
		return nil, err
	}

	return ValidateMetricList(v)
}
