package glassnode

import (
	"time"

	"github.com/c9s/glassnode/pkg/datasource/glassnode/glassnodeapi"
)

// QueryOptions narrows a metric time-series query. Nil fields are not sent.
type QueryOptions struct {
	Asset    string
	Since    *time.Time
	Until    *time.Time
	Interval *glassnodeapi.Interval
	Currency *glassnodeapi.Currency

	// Params are sent after the options above and override them on collision.
	Params glassnodeapi.Params
}

func (o QueryOptions) apply(req *glassnodeapi.TimeSeriesRequest) *glassnodeapi.TimeSeriesRequest {
	if o.Asset != "" {
		req.Asset(o.Asset)
	}

	if o.Since != nil {
		req.Since(*o.Since)
	}

	if o.Until != nil {
		req.Until(*o.Until)
	}

	if o.Interval != nil {
		req.Interval(*o.Interval)
	}

	if o.Currency != nil {
		req.Currency(*o.Currency)
	}

	for _, param := range o.Params {
		req.Param(param.Key, param.Value)
	}

	return req
}
