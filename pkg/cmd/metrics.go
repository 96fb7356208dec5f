package cmd

import (
	"context"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"
)

func init() {
	metricsCmd.Flags().String("prefix", "", "only show metrics starting with this prefix, e.g. /market/")
	RootCmd.AddCommand(metricsCmd)
}

// go run ./cmd/glassnode metrics --prefix=/market/
var metricsCmd = &cobra.Command{
	Use:          "metrics [--prefix PREFIX]",
	Short:        "List the metric paths",
	SilenceUsage: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := context.Background()

		prefix, err := cmd.Flags().GetString("prefix")
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

		metrics, err := client.GetMetricList(ctx)
		if err != nil {
			return err
		}

		if prefix != "" {
			metrics = metrics.Filter(prefix)
		}

		if format != outputTable {
			return writeValue(cmd.OutOrStdout(), format, metrics)
		}

		t := newTable(cmd.OutOrStdout(), "Metrics", table.Row{"#", "Path"})
		for i, path := range metrics {
			t.AppendRow(table.Row{i + 1, path})
		}
		t.Render()
		return nil
	},
}
