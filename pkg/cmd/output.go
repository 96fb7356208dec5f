package cmd

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/fatih/color"
	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"

	"github.com/c9s/glassnode/pkg/style"
)

type outputFormat string

const (
	outputTable outputFormat = "table"
	outputJSON  outputFormat = "json"
	outputYAML  outputFormat = "yaml"
)

func parseOutputFormat(s string) (outputFormat, error) {
	switch f := outputFormat(s); f {
	case outputTable, outputJSON, outputYAML:
		return f, nil
	}

	return "", fmt.Errorf("unsupported output format %q, expected table, json or yaml", s)
}

func currentOutputFormat() (outputFormat, error) {
	return parseOutputFormat(viper.GetString("output"))
}

// writeValue encodes v as indented json or yaml.
func writeValue(w io.Writer, format outputFormat, v interface{}) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return err
	}

	switch format {
	case outputYAML:
		// yaml is a superset of json; decoding into a node keeps the key order
		var node yaml.Node
		if err := yaml.Unmarshal(data, &node); err != nil {
			return err
		}
		blockStyle(&node)

		encoder := yaml.NewEncoder(w)
		encoder.SetIndent(2)
		if err := encoder.Encode(&node); err != nil {
			return err
		}
		return encoder.Close()

	default:
		_, err = fmt.Fprintln(w, string(data))
		return err
	}
}

// blockStyle drops the json flow style and quoting inherited from the decoded document.
func blockStyle(node *yaml.Node) {
	node.Style = 0
	for _, child := range node.Content {
		blockStyle(child)
	}
}

func newTable(w io.Writer, title string, header table.Row) table.Writer {
	return style.NewTable(w, title, header, color.NoColor)
}
