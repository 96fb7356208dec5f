package glassnodeapi

import (
	"net/url"
	"sort"
	"strings"
)

// Param is a single query parameter.
type Param struct {
	Key   string
	Value string
}

// Params is an ordered list of query parameters.
//
// url.Values sorts keys on Encode, but the API query strings are built in call order:
// declared parameters first, the credential last.
type Params []Param

// NewParams builds Params from alternating key, value pairs.
// A trailing key without a value is ignored.
func NewParams(kv ...string) Params {
	var params Params
	for i := 0; i+1 < len(kv); i += 2 {
		params = params.Set(kv[i], kv[i+1])
	}

	return params
}

// Set replaces the value of key in place, or appends it when the key is new.
func (p Params) Set(key, value string) Params {
	for i := range p {
		if p[i].Key == key {
			p[i].Value = value
			return p
		}
	}

	return append(p, Param{Key: key, Value: value})
}

// Get returns the value of key.
func (p Params) Get(key string) (string, bool) {
	for _, param := range p {
		if param.Key == key {
			return param.Value, true
		}
	}

	return "", false
}

// Del removes every occurrence of key.
func (p Params) Del(key string) Params {
	out := p[:0:0]
	for _, param := range p {
		if param.Key != key {
			out = append(out, param)
		}
	}

	return out
}

// Merge sets every parameter of others onto a copy of p.
func (p Params) Merge(others ...Params) Params {
	out := p.Clone()
	for _, other := range others {
		for _, param := range other {
			out = out.Set(param.Key, param.Value)
		}
	}

	return out
}

func (p Params) Clone() Params {
	if p == nil {
		return nil
	}

	out := make(Params, len(p))
	copy(out, p)
	return out
}

// Encode renders the parameters in "URL encoded" form, keeping their order.
func (p Params) Encode() string {
	var sb strings.Builder
	for i, param := range p {
		if i > 0 {
			sb.WriteByte('&')
		}

		sb.WriteString(url.QueryEscape(param.Key))
		sb.WriteByte('=')
		sb.WriteString(url.QueryEscape(param.Value))
	}

	return sb.String()
}

// Values converts the parameters to url.Values. The order is lost.
func (p Params) Values() url.Values {
	values := url.Values{}
	for _, param := range p {
		values.Set(param.Key, param.Value)
	}

	return values
}

// ParamsFromMap converts a map to Params with keys sorted, since map iteration order is random.
func ParamsFromMap(m map[string]string) Params {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	params := make(Params, 0, len(keys))
	for _, k := range keys {
		params = append(params, Param{Key: k, Value: m[k]})
	}

	return params
}
