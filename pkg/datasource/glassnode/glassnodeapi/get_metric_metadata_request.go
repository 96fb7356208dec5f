package glassnodeapi

import "context"

const MetricMetadataEndpoint = "/v1/metadata/metric"

// GetMetricMetadataRequest queries the metadata of one metric.
// The query string is "path" first, then the extra parameters in the order they were set.
type GetMetricMetadataRequest struct {
	client APIClient

	path   string
	params Params
}

func (c *RestClient) NewGetMetricMetadataRequest() *GetMetricMetadataRequest {
	return NewGetMetricMetadataRequest(c)
}

func NewGetMetricMetadataRequest(client APIClient) *GetMetricMetadataRequest {
	return &GetMetricMetadataRequest{client: client}
}

func (r *GetMetricMetadataRequest) Path(path string) *GetMetricMetadataRequest {
	r.path = path
	return r
}

// Asset narrows the "queried" section of the metadata to one asset.
func (r *GetMetricMetadataRequest) Asset(asset string) *GetMetricMetadataRequest {
	r.params = r.params.Set("a", asset)
	return r
}

func (r *GetMetricMetadataRequest) Param(key, value string) *GetMetricMetadataRequest {
	r.params = r.params.Set(key, value)
	return r
}

func (r *GetMetricMetadataRequest) Params(params Params) *GetMetricMetadataRequest {
	r.params = r.params.Merge(params)
	return r
}

// GetParameters returns the query parameters of the request, without the credential.
func (r *GetMetricMetadataRequest) GetParameters() Params {
	return Params{{Key: "path", Value: r.path}}.Merge(r.params)
}

func (r *GetMetricMetadataRequest) Do(ctx context.Context) (*MetricMetadata, error) {
	v, err := Execute(ctx, r.client, MetricMetadataEndpoint, r.GetParameters())
	if err != nil {
		return nil, err
	}

	return ValidateMetricMetadata(v)
}
