package glassnodeapi

import (
	"encoding/json"
	"math"
	"strings"
	"time"

	"github.com/pkg/errors"
	"github.com/valyala/fastjson"
)

const (
	SchemaAssetMetadataList = "AssetMetadataList"
	SchemaMetricMetadata    = "MetricMetadata"
	SchemaMetricList        = "MetricList"
	SchemaDataEnvelope      = "DataEnvelope"
)

// integers above 2^53 can not be represented exactly by the upstream JSON numbers
const maxSafeInteger = 1<<53 - 1

// maxDateMillis is the largest millisecond offset from the unix epoch accepted as a date-time.
const maxDateMillis = 8.64e15

const metricPathPrefix = "/"

// ValidateAssetMetadataList validates an array of asset metadata records.
// Every offending element is reported.
func ValidateAssetMetadataList(v *fastjson.Value) ([]AssetMetadata, error) {
	var c issueCollector
	items, ok := c.array(v, rootPath)
	if !ok {
		return nil, c.result(SchemaAssetMetadataList)
	}

	assets := make([]AssetMetadata, 0, len(items))
	for i, item := range items {
		if asset, ok := c.assetMetadata(item, rootPath.Index(i)); ok {
			assets = append(assets, asset)
		}
	}

	if err := c.result(SchemaAssetMetadataList); err != nil {
		return nil, err
	}

	return assets, nil
}

// ValidateMetricMetadata validates a metric metadata object and converts its
// unix-seconds "modified" field into a time.Time.
func ValidateMetricMetadata(v *fastjson.Value) (*MetricMetadata, error) {
	var c issueCollector
	obj, ok := c.object(v, rootPath)
	if !ok {
		return nil, c.result(SchemaMetricMetadata)
	}

	meta := &MetricMetadata{}
	meta.Path, _ = c.str(obj.Get("path"), rootPath.Field("path"))
	meta.Tier, _ = c.nonNegativeInt(obj.Get("tier"), rootPath.Field("tier"))
	meta.Modified = c.optionalUnixSeconds(obj.Get("modified"), rootPath.Field("modified"))
	meta.NextParam = c.optionalStr(obj.Get("next_param"), rootPath.Field("next_param"))

	refsPath := rootPath.Field("refs")
	if refs, ok := c.object(obj.Get("refs"), refsPath); ok {
		meta.Refs.Docs = c.optionalStr(refs.Get("docs"), refsPath.Field("docs"))
		meta.Refs.Studio = c.optionalStr(refs.Get("studio"), refsPath.Field("studio"))
	}

	queriedPath := rootPath.Field("queried")
	if queried, ok := c.object(obj.Get("queried"), queriedPath); ok {
		meta.Queried = make(map[string]json.RawMessage, queried.Len())
		queried.Visit(func(key []byte, value *fastjson.Value) {
			meta.Queried[string(key)] = json.RawMessage(value.MarshalTo(nil))
		})
	}

	parametersPath := rootPath.Field("parameters")
	if parameters, ok := c.object(obj.Get("parameters"), parametersPath); ok {
		meta.Parameters = make(map[string][]string, parameters.Len())
		parameters.Visit(func(key []byte, value *fastjson.Value) {
			name := string(key)
			if values, ok := c.stringArray(value, parametersPath.Field(name)); ok {
				meta.Parameters[name] = values
			}
		})
	}

	if err := c.result(SchemaMetricMetadata); err != nil {
		return nil, err
	}

	return meta, nil
}

// ValidateMetricList validates an array of metric paths, each starting with "/".
func ValidateMetricList(v *fastjson.Value) (MetricList, error) {
	var c issueCollector
	items, ok := c.array(v, rootPath)
	if !ok {
		return nil, c.result(SchemaMetricList)
	}

	metrics := make(MetricList, 0, len(items))
	for i, item := range items {
		path := rootPath.Index(i)
		s, ok := c.str(item, path)
		if !ok {
			continue
		}

		if !strings.HasPrefix(s, metricPathPrefix) {
			c.add(path, IssueInvalidString, "Invalid input: must start with %q", metricPathPrefix)
			continue
		}

		metrics = append(metrics, s)
	}

	if err := c.result(SchemaMetricList); err != nil {
		return nil, err
	}

	return metrics, nil
}

// UnwrapData returns the "data" member of a {"data": ...} response envelope.
func UnwrapData(v *fastjson.Value) (*fastjson.Value, error) {
	var c issueCollector
	obj, ok := c.object(v, rootPath)
	if !ok {
		return nil, c.result(SchemaDataEnvelope)
	}

	data := obj.Get("data")
	if data == nil {
		c.add(rootPath.Field("data"), IssueRequired, "Required")
		return nil, c.result(SchemaDataEnvelope)
	}

	return data, nil
}

// DecodeAssetMetadataList parses and validates an asset metadata array.
func DecodeAssetMetadataList(data []byte) ([]AssetMetadata, error) {
	v, err := parseDocument(data)
	if err != nil {
		return nil, err
	}

	return ValidateAssetMetadataList(v)
}

// DecodeMetricMetadata parses and validates a metric metadata object.
func DecodeMetricMetadata(data []byte) (*MetricMetadata, error) {
	v, err := parseDocument(data)
	if err != nil {
		return nil, err
	}

	return ValidateMetricMetadata(v)
}

// DecodeMetricList parses and validates a metric path array.
func DecodeMetricList(data []byte) (MetricList, error) {
	v, err := parseDocument(data)
	if err != nil {
		return nil, err
	}

	return ValidateMetricList(v)
}

func parseDocument(data []byte) (*fastjson.Value, error) {
	var parser fastjson.Parser
	v, err := parser.ParseBytes(data)
	if err != nil {
		return nil, errors.Wrap(err, "failed to parse json document")
	}

	return v, nil
}

func (c *issueCollector) assetMetadata(v *fastjson.Value, path fieldPath) (AssetMetadata, bool) {
	var asset AssetMetadata

	obj, ok := c.object(v, path)
	if !ok {
		return asset, false
	}

	before := c.count()

	asset.ID, _ = c.str(obj.Get("id"), path.Field("id"))
	asset.Symbol, _ = c.str(obj.Get("symbol"), path.Field("symbol"))
	asset.Name, _ = c.str(obj.Get("name"), path.Field("name"))
	asset.AssetType, _ = c.str(obj.Get("asset_type"), path.Field("asset_type"))

	externalIDsPath := path.Field("external_ids")
	if externalIDs, ok := c.object(obj.Get("external_ids"), externalIDsPath); ok {
		asset.ExternalIDs = make(ExternalIDs, externalIDs.Len())
		externalIDs.Visit(func(key []byte, value *fastjson.Value) {
			source := ExternalIDSource(key)
			sourcePath := externalIDsPath.Field(string(key))
			if !source.Valid() {
				c.add(sourcePath, IssueInvalidEnumValue,
					"Invalid enum value. Expected 'ccdata' | 'coinmarketcap' | 'coingecko', received '%s'", source)
				return
			}

			if id, ok := c.str(value, sourcePath); ok {
				asset.ExternalIDs[source] = id
			}
		})
	}

	blockchainsPath := path.Field("blockchains")
	if blockchains, ok := c.array(obj.Get("blockchains"), blockchainsPath); ok {
		asset.Blockchains = make([]AssetBlockchain, 0, len(blockchains))
		for i, item := range blockchains {
			if blockchain, ok := c.assetBlockchain(item, blockchainsPath.Index(i)); ok {
				asset.Blockchains = append(asset.Blockchains, blockchain)
			}
		}
	}

	return asset, c.count() == before
}

func (c *issueCollector) assetBlockchain(v *fastjson.Value, path fieldPath) (AssetBlockchain, bool) {
	var blockchain AssetBlockchain

	obj, ok := c.object(v, path)
	if !ok {
		return blockchain, false
	}

	before := c.count()
	blockchain.Blockchain, _ = c.str(obj.Get("blockchain"), path.Field("blockchain"))
	blockchain.Address, _ = c.str(obj.Get("address"), path.Field("address"))
	blockchain.Decimals, _ = c.nonNegativeInt(obj.Get("decimals"), path.Field("decimals"))
	blockchain.OnChainSupport, _ = c.boolean(obj.Get("on_chain_support"), path.Field("on_chain_support"))
	return blockchain, c.count() == before
}

// required reports a missing value. A nil value means the field is absent.
func (c *issueCollector) required(v *fastjson.Value, path fieldPath) bool {
	if v == nil {
		c.add(path, IssueRequired, "Required")
		return false
	}

	return true
}

func (c *issueCollector) expect(v *fastjson.Value, path fieldPath, expected string, types ...fastjson.Type) bool {
	for _, t := range types {
		if v.Type() == t {
			return true
		}
	}

	c.add(path, IssueInvalidType, "Expected %s, received %s", expected, typeName(v))
	return false
}

func (c *issueCollector) object(v *fastjson.Value, path fieldPath) (*fastjson.Object, bool) {
	if !c.required(v, path) || !c.expect(v, path, "object", fastjson.TypeObject) {
		return nil, false
	}

	obj, err := v.Object()
	if err != nil {
		c.add(path, IssueInvalidType, "Expected object, received %s", typeName(v))
		return nil, false
	}

	return obj, true
}

func (c *issueCollector) array(v *fastjson.Value, path fieldPath) ([]*fastjson.Value, bool) {
	if !c.required(v, path) || !c.expect(v, path, "array", fastjson.TypeArray) {
		return nil, false
	}

	items, err := v.Array()
	if err != nil {
		c.add(path, IssueInvalidType, "Expected array, received %s", typeName(v))
		return nil, false
	}

	return items, true
}

func (c *issueCollector) str(v *fastjson.Value, path fieldPath) (string, bool) {
	if !c.required(v, path) || !c.expect(v, path, "string", fastjson.TypeString) {
		return "", false
	}

	b, err := v.StringBytes()
	if err != nil {
		c.add(path, IssueInvalidType, "Expected string, received %s", typeName(v))
		return "", false
	}

	return string(b), true
}

func (c *issueCollector) optionalStr(v *fastjson.Value, path fieldPath) *string {
	if v == nil {
		return nil
	}

	s, ok := c.str(v, path)
	if !ok {
		return nil
	}

	return &s
}

func (c *issueCollector) stringArray(v *fastjson.Value, path fieldPath) ([]string, bool) {
	items, ok := c.array(v, path)
	if !ok {
		return nil, false
	}

	before := c.count()
	values := make([]string, 0, len(items))
	for i, item := range items {
		if s, ok := c.str(item, path.Index(i)); ok {
			values = append(values, s)
		}
	}

	return values, c.count() == before
}

func (c *issueCollector) boolean(v *fastjson.Value, path fieldPath) (bool, bool) {
	if !c.required(v, path) || !c.expect(v, path, "boolean", fastjson.TypeTrue, fastjson.TypeFalse) {
		return false, false
	}

	return v.Type() == fastjson.TypeTrue, true
}

func (c *issueCollector) number(v *fastjson.Value, path fieldPath) (float64, bool) {
	if !c.required(v, path) || !c.expect(v, path, "number", fastjson.TypeNumber) {
		return 0, false
	}

	f, err := v.Float64()
	if err != nil || math.IsNaN(f) || math.IsInf(f, 0) {
		c.add(path, IssueInvalidType, "Expected number, received %s", v.String())
		return 0, false
	}

	return f, true
}

// nonNegativeInt accepts integral numbers, including the "2.0" notation, that are >= 0.
func (c *issueCollector) nonNegativeInt(v *fastjson.Value, path fieldPath) (int, bool) {
	f, ok := c.number(v, path)
	if !ok {
		return 0, false
	}

	n, ok := integral(v, f)
	if !ok {
		c.add(path, IssueNotInteger, "Expected integer, received float")
		return 0, false
	}

	if n < 0 {
		c.add(path, IssueTooSmall, "Number must be greater than or equal to 0")
		return 0, false
	}

	return int(n), true
}

// optionalUnixSeconds converts unix seconds to a UTC time with millisecond precision.
// Integer inputs are converted without going through floating point.
func (c *issueCollector) optionalUnixSeconds(v *fastjson.Value, path fieldPath) *time.Time {
	if v == nil {
		return nil
	}

	f, ok := c.number(v, path)
	if !ok {
		return nil
	}

	var millis int64
	if n, ok := integral(v, f); ok {
		if n > maxDateMillis/1000 || n < -maxDateMillis/1000 {
			c.add(path, IssueInvalidDate, "Invalid date")
			return nil
		}
		millis = n * 1000
	} else {
		ms := math.Trunc(f * 1000)
		if ms > maxDateMillis || ms < -maxDateMillis {
			c.add(path, IssueInvalidDate, "Invalid date")
			return nil
		}
		millis = int64(ms)
	}

	t := time.UnixMilli(millis).UTC()
	return &t
}

// integral returns the exact integer value of a JSON number, when it has one.
func integral(v *fastjson.Value, f float64) (int64, bool) {
	if n, err := v.Int64(); err == nil {
		return n, true
	}

	if f != math.Trunc(f) || math.Abs(f) > maxSafeInteger {
		return 0, false
	}

	return int64(f), true
}

func typeName(v *fastjson.Value) string {
	switch v.Type() {
	case fastjson.TypeTrue, fastjson.TypeFalse:
		return "boolean"
	}

	return v.Type().String()
}
