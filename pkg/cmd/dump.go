package cmd

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/fatih/color"
	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/c9s/glassnode/pkg/datasource/glassnode"
	"github.com/c9s/glassnode/pkg/datasource/glassnode/glassnodeapi"
	"github.com/c9s/glassnode/pkg/envvar"
)

func init() {
	limit, _ := envvar.Int("DUMP_LIMIT", 10)

	dumpCmd.Flags().Int("limit", limit, "number of metrics to dump, 0 for all")
	dumpCmd.Flags().String("prefix", "", "only dump metrics starting with this prefix")
	dumpCmd.Flags().String("out", "", "write every time-series to this directory")
	RootCmd.AddCommand(dumpCmd)
}

// go run ./cmd/glassnode dump --prefix=/market/ --limit=3 --out=dump
var dumpCmd = &cobra.Command{
	Use:          "dump [--limit N] [--prefix PREFIX] [--out DIR]",
	Short:        "Query every metric with the first allowed value of each of its parameters",
	SilenceUsage: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := context.Background()

		limit, err := cmd.Flags().GetInt("limit")
		if err != nil {
			return err
		}

		prefix, err := cmd.Flags().GetString("prefix")
		if err != nil {
			return err
		}

		outDir, err := cmd.Flags().GetString("out")
		if err != nil {
			return err
		}

		if outDir != "" {
			if err := os.MkdirAll(outDir, 0o755); err != nil {
				return err
			}
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

		if limit > 0 && len(metrics) > limit {
			metrics = metrics[:limit]
		}

		d := &dumper{client: client, out: cmd.OutOrStdout(), outDir: outDir}
		failed := 0
		for _, metric := range metrics {
			if err := d.dump(ctx, metric); err != nil {
				failed++
				log.WithError(err).Debugf("unable to dump metric %s", metric)
				fmt.Fprintln(d.out, color.RedString("FAIL %s: %v", metric, err))
			}
		}

		if failed > 0 {
			return fmt.Errorf("%d of %d metrics failed", failed, len(metrics))
		}

		return nil
	},
}

type dumper struct {
	client *glassnode.Client
	out    io.Writer
	outDir string
}

func (d *dumper) dump(ctx context.Context, metric string) error {
	meta, err := d.client.GetMetricMetadata(ctx, metric)
	if err != nil {
		return err
	}

	params := dumpParams(meta)
	series, err := d.client.QueryTimeSeries(ctx, metric, glassnode.QueryOptions{Params: params})
	if err != nil {
		return err
	}

	first := "no data"
	if len(series) > 0 {
		first = series[0].Time.Format(time.RFC3339) + " " + formatValue(series[0].Value)
	}

	fmt.Fprintln(d.out, color.GreenString("OK   %s", metric), params.Encode(), fmt.Sprintf("(%d points, first: %s)", len(series), first))

	if d.outDir == "" {
		return nil
	}

	f, err := os.Create(filepath.Join(d.outDir, dumpFilename(metric)))
	if err != nil {
		return err
	}
	defer f.Close()

	return writeValue(f, outputJSON, series)
}

// dumpParams picks the first allowed value of every parameter, leaving the
// response format to the time-series request.
func dumpParams(meta *glassnodeapi.MetricMetadata) glassnodeapi.Params {
	return meta.DefaultParams().Del("f").Del("timestamp_format")
}

// dumpFilename maps "/market/price_usd" to "market_price_usd.json".
func dumpFilename(metric string) string {
	return strings.ReplaceAll(strings.Trim(metric, "/"), "/", "_") + ".json"
}
