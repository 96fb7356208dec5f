package cmd

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"
)

func init() {
	addParamFlag(metadataCmd.Flags())
	RootCmd.AddCommand(metadataCmd)
}

// go run ./cmd/glassnode metadata /distribution/balance_exchanges -p a=BTC
var metadataCmd = &cobra.Command{
	Use:          "metadata METRIC_PATH [-p key=value ...]",
	Short:        "Show the metadata of a metric",
	Args:         cobra.ExactArgs(1),
	SilenceUsage: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := context.Background()

		params, err := paramsFromFlags(cmd.Flags())
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

		meta, err := client.GetMetricMetadata(ctx, args[0], params)
		if err != nil {
			return err
		}

		if format != outputTable {
			return writeValue(cmd.OutOrStdout(), format, meta)
		}

		t := newTable(cmd.OutOrStdout(), meta.Path, table.Row{"Field", "Value"})
		t.AppendRow(table.Row{"Tier", meta.TierName()})
		if meta.Modified != nil {
			t.AppendRow(table.Row{"Modified", meta.Modified.Format(time.RFC3339)})
		}
		if meta.NextParam != nil {
			t.AppendRow(table.Row{"Next Param", *meta.NextParam})
		}
		if meta.Refs.Docs != nil {
			t.AppendRow(table.Row{"Docs", *meta.Refs.Docs})
		}
		if meta.Refs.Studio != nil {
			t.AppendRow(table.Row{"Studio", *meta.Refs.Studio})
		}

		t.AppendSeparator()
		for _, key := range sortedKeys(meta.Parameters) {
			t.AppendRow(table.Row{"Parameter " + key, formatAllowedValues(meta.Parameters[key])})
		}

		t.AppendSeparator()
		for _, key := range sortedKeys(meta.Queried) {
			t.AppendRow(table.Row{"Queried " + key, string(meta.Queried[key])})
		}

		t.Render()
		return nil
	},
}

// formatAllowedValues shows the first values of a parameter, like "10m, 1h, 24h (+2)".
func formatAllowedValues(values []string) string {
	const limit = 3
	if len(values) <= limit {
		return strings.Join(values, ", ")
	}

	return fmt.Sprintf("%s (+%d)", strings.Join(values[:limit], ", "), len(values)-limit)
}

func sortedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
