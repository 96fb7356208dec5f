package glassnodeapi

import (
	"time"

	"github.com/valyala/fastjson"
)

const SchemaTimeSeries = "TimeSeries"

type Interval string

const (
	Interval10m    Interval = "10m"
	Interval1h     Interval = "1h"
	Interval24h    Interval = "24h"
	Interval1w     Interval = "1w"
	Interval1month Interval = "1month"
)

type Format string

const (
	FormatJSON Format = "json"
	FormatCSV  Format = "csv"
)

type Currency string

const (
	CurrencyNative Currency = "native"
	CurrencyUSD    Currency = "usd"
)

// DataPoint is one sample of a metric time-series.
// Single-valued metrics set Value, multi-valued metrics set Options.
type DataPoint struct {
	Time    time.Time          `json:"t"`
	Value   *float64           `json:"v,omitempty"`
	Options map[string]float64 `json:"o,omitempty"`
}

type TimeSeries []DataPoint

// Last returns the latest data point.
func (s TimeSeries) Last() (DataPoint, bool) {
	if len(s) == 0 {
		return DataPoint{}, false
	}

	return s[len(s)-1], true
}

// ValidateTimeSeries validates a JSON time-series payload like [{"t": 1614556800, "v": 1.5}].
// "t" is either unix seconds or an RFC3339 string (timestamp_format=humanized).
func ValidateTimeSeries(v *fastjson.Value) (TimeSeries, error) {
	var c issueCollector
	items, ok := c.array(v, rootPath)
	if !ok {
		return nil, c.result(SchemaTimeSeries)
	}

	series := make(TimeSeries, 0, len(items))
	for i, item := range items {
		if point, ok := c.dataPoint(item, rootPath.Index(i)); ok {
			series = append(series, point)
		}
	}

	if err := c.result(SchemaTimeSeries); err != nil {
		return nil, err
	}

	return series, nil
}

// DecodeTimeSeries parses and validates a JSON time-series payload.
func DecodeTimeSeries(data []byte) (TimeSeries, error) {
	v, err := parseDocument(data)
	if err != nil {
		return nil, err
	}

	return ValidateTimeSeries(v)
}

func (c *issueCollector) dataPoint(v *fastjson.Value, path fieldPath) (DataPoint, bool) {
	var point DataPoint

	obj, ok := c.object(v, path)
	if !ok {
		return point, false
	}

	before := c.count()

	timePath := path.Field("t")
	if t := obj.Get("t"); t != nil && t.Type() == fastjson.TypeString {
		s, _ := c.str(t, timePath)
		parsed, err := time.Parse(time.RFC3339, s)
		if err != nil {
			c.add(timePath, IssueInvalidDate, "Invalid date %q", s)
		} else {
			point.Time = parsed.UTC()
		}
	} else if c.required(t, timePath) {
		if ts := c.optionalUnixSeconds(t, timePath); ts != nil {
			point.Time = *ts
		}
	}

	if value := obj.Get("v"); value != nil && value.Type() != fastjson.TypeNull {
		if f, ok := c.number(value, path.Field("v")); ok {
			point.Value = &f
		}
	}

	optionsPath := path.Field("o")
	if options := obj.Get("o"); options != nil {
		if o, ok := c.object(options, optionsPath); ok {
			point.Options = make(map[string]float64, o.Len())
			o.Visit(func(key []byte, value *fastjson.Value) {
				if value.Type() == fastjson.TypeNull {
					return
				}

				if f, ok := c.number(value, optionsPath.Field(string(key))); ok {
					point.Options[string(key)] = f
				}
			})
		}
	}

	return point, c.count() == before
}
