package cmd

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"

	"github.com/c9s/glassnode/pkg/datasource/glassnode"
	"github.com/c9s/glassnode/pkg/datasource/glassnode/glassnodeapi"
)

func init() {
	seriesCmd.Flags().String("asset", "BTC", "asset symbol")
	seriesCmd.Flags().String("interval", string(glassnodeapi.Interval24h), "resolution: 10m, 1h, 24h, 1w or 1month")
	seriesCmd.Flags().String("currency", "", "native or usd")
	seriesCmd.Flags().String("since", "", "start time, RFC3339, YYYY-MM-DD or a duration ago like 72h")
	seriesCmd.Flags().String("until", "", "end time, same formats as --since")
	addParamFlag(seriesCmd.Flags())
	RootCmd.AddCommand(seriesCmd)
}

// go run ./cmd/glassnode series /market/price_usd --asset=BTC --since=168h
var seriesCmd = &cobra.Command{
	Use:          "series METRIC_PATH [--asset BTC] [--interval 24h] [--since TIME] [--until TIME]",
	Short:        "Query the time-series of a metric",
	Args:         cobra.ExactArgs(1),
	SilenceUsage: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := context.Background()

		options, err := queryOptionsFromFlags(cmd, time.Now())
		if err != nil {
			return err
		}

		format, err := currentOutputFormat()
		if err != nil {
			return err
		}

		client, err := newClient()
		if err != nil {
			return err
		}

		series, err := client.QueryTimeSeries(ctx, args[0], options)
		if err != nil {
			return err
		}

		if format != outputTable {
			return writeValue(cmd.OutOrStdout(), format, series)
		}

		renderSeries(cmd, args[0], series)
		return nil
	},
}

func queryOptionsFromFlags(cmd *cobra.Command, now time.Time) (glassnode.QueryOptions, error) {
	var options glassnode.QueryOptions

	flags := cmd.Flags()
	asset, err := flags.GetString("asset")
	if err != nil {
		return options, err
	}
	options.Asset = asset

	interval, err := flags.GetString("interval")
	if err != nil {
		return options, err
	}

	if interval != "" {
		i := glassnodeapi.Interval(interval)
		options.Interval = &i
	}

	currency, err := flags.GetString("currency")
	if err != nil {
		return options, err
	}

	if currency != "" {
		c := glassnodeapi.Currency(currency)
		options.Currency = &c
	}

	for name, dst := range map[string]**time.Time{"since": &options.Since, "until": &options.Until} {
		s, err := flags.GetString(name)
		if err != nil {
			return options, err
		}

		if s == "" {
			continue
		}

		t, err := parseTime(s, now)
		if err != nil {
			return options, fmt.Errorf("invalid --%s: %w", name, err)
		}
		*dst = &t
	}

	options.Params, err = paramsFromFlags(flags)
	return options, err
}

// parseTime parses an absolute time, or a duration counted back from now.
func parseTime(s string, now time.Time) (time.Time, error) {
	if t, err := time.Parse(time.RFC3339, s); err == nil {
		return t, nil
	}

	if t, err := time.Parse(time.DateOnly, s); err == nil {
		return t, nil
	}

	du, err := time.ParseDuration(s)
	if err != nil {
		return time.Time{}, fmt.Errorf("%q is neither a time nor a duration", s)
	}

	return now.Add(-du), nil
}

func renderSeries(cmd *cobra.Command, title string, series glassnodeapi.TimeSeries) {
	// multi-valued metrics get one column per option
	var optionKeys []string
	seen := map[string]struct{}{}
	for _, point := range series {
		for key := range point.Options {
			if _, ok := seen[key]; !ok {
				seen[key] = struct{}{}
				optionKeys = append(optionKeys, key)
			}
		}
	}
	sort.Strings(optionKeys)

	header := table.Row{"Time"}
	if len(optionKeys) == 0 {
		header = append(header, "Value")
	}
	for _, key := range optionKeys {
		header = append(header, key)
	}

	t := newTable(cmd.OutOrStdout(), title, header)
	for _, point := range series {
		row := table.Row{point.Time.Format(time.RFC3339)}
		if len(optionKeys) == 0 {
			row = append(row, formatValue(point.Value))
		}

		for _, key := range optionKeys {
			if v, ok := point.Options[key]; ok {
				row = append(row, v)
			} else {
				row = append(row, "-")
			}
		}

		t.AppendRow(row)
	}
	t.Render()
}

func formatValue(v *float64) string {
	if v == nil {
		return "-"
	}

	return fmt.Sprintf("%g", *v)
}
