package cmd

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"
)

func init() {
	addParamFlag(callCmd.Flags())
	RootCmd.AddCommand(callCmd)
}

// go run ./cmd/glassnode call /active_count -p a=BTC -p i=24h
var callCmd = &cobra.Command{
	Use:          "call METRIC_PATH [-p key=value ...]",
	Short:        "Call a metric under /v1/metrics/addresses and print the raw response",
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

		raw, err := client.CallMetric(ctx, args[0], params)
		if err != nil {
			return err
		}

		if format == outputYAML {
			return writeValue(cmd.OutOrStdout(), format, raw)
		}

		var buf bytes.Buffer
		if err := json.Indent(&buf, raw, "", "  "); err != nil {
			return err
		}

		_, err = fmt.Fprintln(cmd.OutOrStdout(), buf.String())
		return err
	},
}
