// Copyright © 2024 The Sonnet authors

package cmd

import (
	"fmt"
	"os"

	"github.com/sonnetlang/sonnet/lang"
	"github.com/sonnetlang/sonnet/reader"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var (
	manifestFormat string
	manifestIndent int
	manifestMulti  bool
)

// manifestCmd represents the manifest command
var manifestCmd = &cobra.Command{
	Use:   "manifest [file]",
	Short: "Manifest a JSON document under an output format",
	Long: `Read a JSON document and manifest it under the requested output format.
With no file argument, or with "-", the document is read from stdin.

Formats:
  json         structural JSON (--indent 0 minifies)
  yaml         block-style YAML
  yaml-stream  "---" separated YAML documents, one per array element
  tostring     booleans and null as words, strings verbatim, rest as JSON
  string       the value must already be a string; emitted verbatim

With --multi the value must be an object; each visible field manifests as
its own document prefixed by the field name.`,
	Args: cobra.MaximumNArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		v, err := readInput(args)
		if err != nil {
			fatal(err)
		}
		format, err := outputFormat()
		if err != nil {
			fatalUsage("%v", err)
		}
		if manifestMulti {
			docs, err := v.ManifestMulti(format)
			if err != nil {
				fatal(err)
			}
			for _, doc := range docs {
				fmt.Printf("%s:\n%s\n", doc.Name, doc.Body)
			}
			return
		}
		out, err := v.Manifest(format)
		if err != nil {
			fatal(err)
		}
		fmt.Println(out)
	},
}

func readInput(args []string) (*lang.Value, error) {
	if len(args) == 0 || args[0] == "-" {
		return reader.ReadJSON("<stdin>", os.Stdin)
	}
	f, err := os.Open(args[0])
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return reader.ReadJSON(args[0], f)
}

// outputFormat builds the manifest format from flags, with viper supplying
// config-file and environment defaults.
func outputFormat() (*lang.Format, error) {
	name := manifestFormat
	if name == "" {
		name = viper.GetString("format")
	}
	indent := manifestIndent
	if indent < 0 {
		return nil, fmt.Errorf("indent must not be negative: %d", indent)
	}
	switch name {
	case "", "json":
		return lang.JSONFormat(indent), nil
	case "yaml":
		return lang.YAMLFormat(indent), nil
	case "yaml-stream":
		return lang.YAMLStreamFormat(lang.YAMLFormat(indent)), nil
	case "tostring":
		return lang.ToStringFormat(), nil
	case "string":
		return lang.StringFormat(), nil
	default:
		return nil, fmt.Errorf("unknown output format: %s", name)
	}
}

func init() {
	rootCmd.AddCommand(manifestCmd)

	manifestCmd.Flags().StringVarP(&manifestFormat, "format", "f", "",
		`Output format: "json", "yaml", "yaml-stream", "tostring", or "string"`)
	manifestCmd.Flags().IntVarP(&manifestIndent, "indent", "i", 0,
		"Spaces per nesting level (json: 0 minifies; yaml: 0 means 2)")
	manifestCmd.Flags().BoolVarP(&manifestMulti, "multi", "m", false,
		"Manifest each visible field of an object as its own document")
}
