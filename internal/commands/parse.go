package commands

import (
	"bytes"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/cleared-dev/cfonb/internal/export"
	"github.com/cleared-dev/cfonb/internal/importer"
)

func newParseCommand(opts *options) *cobra.Command {
	var format, output string
	var strict bool

	cmd := &cobra.Command{
		Use:   "parse <file>",
		Short: "Decode a CFONB file and print it",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := opts.load(".")
			if err != nil {
				return err
			}
			if cmd.Flags().Changed("format") {
				cfg.Parse.Format = format
			}
			if cmd.Flags().Changed("strict") {
				cfg.Parse.Strict = strict
			}
			if cmd.Flags().Changed("output") {
				cfg.Output.Format = output
			}

			data, err := os.ReadFile(args[0])
			if err != nil {
				return fmt.Errorf("reading %s: %w", args[0], err)
			}

			log := newLogger(cmd, cfg)
			parser, err := selectParser(importer.DefaultRegistry(log), cfg.Parse.Format, string(data))
			if err != nil {
				return fmt.Errorf("%s: %w", args[0], err)
			}

			batch, err := parser.Parse(bytes.NewReader(data), cfg.Parse.Strict)
			if err != nil {
				return fmt.Errorf("%s: %w", args[0], err)
			}

			aggregates, operations := batch.Counts()
			log.Debug().Str("file", args[0]).Str("format", batch.Format).
				Int("aggregates", aggregates).Int("operations", operations).Msg("parsed")

			return export.Write(cmd.OutOrStdout(), cfg.Output.Format, batch)
		},
	}

	cmd.Flags().StringVar(&format, "format", "auto", "input layout: 120, 240 or auto")
	cmd.Flags().BoolVar(&strict, "strict", true, "fail on malformed optional fields")
	cmd.Flags().StringVarP(&output, "output", "o", "json", "output format: json, yaml, msgpack or csv")

	return cmd
}

// selectParser resolves a layout name, or detects it from content when the
// name is "auto" or empty. "120" and "240" are accepted as short names.
func selectParser(reg *importer.Registry, format, content string) (importer.Parser, error) {
	switch strings.ToLower(format) {
	case "", "auto":
		detected, err := importer.Detect(content)
		if err != nil {
			return nil, err
		}
		format = detected
	case "120":
		format = importer.FormatStatement
	case "240":
		format = importer.FormatTransfer
	}

	p := reg.Get(format)
	if p == nil {
		return nil, fmt.Errorf("unknown format %q (available: %s)", format, strings.Join(reg.Formats(), ", "))
	}
	return p, nil
}
