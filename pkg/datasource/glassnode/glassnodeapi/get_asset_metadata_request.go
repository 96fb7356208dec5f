package glassnodeapi

import "context"

const AssetMetadataEndpoint = "/v1/metadata/assets"

// GetAssetMetadataRequest queries the metadata of all assets.
// The response is wrapped in a {"data": [...]} envelope.
type GetAssetMetadataRequest struct {
	client APIClient
}

func (c *RestClient) NewGetAssetMetadataRequest() *GetAssetMetadataRequest {
	return NewGetAssetMetadataRequest(c)
}

func NewGetAssetMetadataRequest(client APIClient) *GetAssetMetadataRequest {
	return &GetAssetMetadataRequest{client: client}
}

func (r *GetAssetMetadataRequest) Do(ctx context.Context) ([]AssetMetadata, error) {
	v, err := Execute(ctx, r.client, AssetMetadataEndpoint, nil)
	if err != nil {
		return nil, err
	}

	data, err := UnwrapData(v)
	if err != nil {
		return nil, err
	}

	return ValidateAssetMetadataList(data)
}
