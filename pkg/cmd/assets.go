package cmd

import (
	"context"
	"sort"
	"strings"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"

	"github.com/c9s/glassnode/pkg/datasource/glassnode/glassnodeapi"
)

func init() {
	assetsCmd.Flags().String("symbol", "", "only show the asset of this symbol, e.g. USDC")
	assetsCmd.Flags().String("type", "", "only show assets of this type, e.g. coin or token")
	RootCmd.AddCommand(assetsCmd)
}

// go run ./cmd/glassnode assets --symbol=USDC
var assetsCmd = &cobra.Command{
	Use:          "assets [--symbol SYMBOL] [--type TYPE]",
	Short:        "List the asset metadata",
	SilenceUsage: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := context.Background()

		symbol, err := cmd.Flags().GetString("symbol")
		if err != nil {
			return err
		}

		assetType, err := cmd.Flags().GetString("type")
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

		assets, err := client.GetAssetMetadata(ctx)
		if err != nil {
			return err
		}

		assets = filterAssets(assets, symbol, assetType)
		if format != outputTable {
			return writeValue(cmd.OutOrStdout(), format, assets)
		}

		t := newTable(cmd.OutOrStdout(), "Assets", table.Row{"ID", "Symbol", "Name", "Type", "Blockchains", "External IDs"})
		for _, asset := range assets {
			t.AppendRow(table.Row{
				asset.ID,
				asset.Symbol,
				asset.Name,
				asset.AssetType,
				formatBlockchains(asset.Blockchains),
				formatExternalIDs(asset.ExternalIDs),
			})
		}
		t.AppendFooter(table.Row{"", "", "", "", "", len(assets)})
		t.Render()
		return nil
	},
}

func filterAssets(assets []glassnodeapi.AssetMetadata, symbol, assetType string) []glassnodeapi.AssetMetadata {
	if symbol == "" && assetType == "" {
		return assets
	}

	var out []glassnodeapi.AssetMetadata
	for _, asset := range assets {
		if symbol != "" && !strings.EqualFold(asset.Symbol, symbol) {
			continue
		}

		if assetType != "" && !strings.EqualFold(asset.AssetType, assetType) {
			continue
		}

		out = append(out, asset)
	}

	return out
}

func formatBlockchains(blockchains []glassnodeapi.AssetBlockchain) string {
	names := make([]string, 0, len(blockchains))
	for _, b := range blockchains {
		names = append(names, b.Blockchain)
	}

	return strings.Join(names, ", ")
}

func formatExternalIDs(ids glassnodeapi.ExternalIDs) string {
	pairs := make([]string, 0, len(ids))
	for source, id := range ids {
		pairs = append(pairs, string(source)+"="+id)
	}
	sort.Strings(pairs)

	return strings.Join(pairs, " ")
}
