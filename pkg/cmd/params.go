package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/pflag"

	"github.com/c9s/glassnode/pkg/datasource/glassnode/glassnodeapi"
)

// addParamFlag registers the repeatable "-p key=value" flag.
func addParamFlag(flags *pflag.FlagSet) {
	flags.StringArrayP("param", "p", nil, "query parameter as key=value, can be repeated")
}

// parseParams parses key=value pairs in the given order.
func parseParams(pairs []string) (glassnodeapi.Params, error) {
	var params glassnodeapi.Params
	for _, pair := range pairs {
		key, value, ok := strings.Cut(pair, "=")
		if !ok || key == "" {
			return nil, fmt.Errorf("invalid parameter %q, expected key=value", pair)
		}

		params = params.Set(key, value)
	}

	return params, nil
}

func paramsFromFlags(flags *pflag.FlagSet) (glassnodeapi.Params, error) {
	pairs, err := flags.GetStringArray("param")
	if err != nil {
		return nil, err
	}

	return parseParams(pairs)
}
