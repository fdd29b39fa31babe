package main

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/termgrid/termgrid"
	"pkt.systems/pslog"
)

// NewRootCommand builds the root CLI command. It reads a raw terminal stream
// from a file argument or stdin and writes the interpreted projection.
func NewRootCommand() *cobra.Command {
	var cols int
	var rows int
	var offset int
	var limit int
	var format string
	var output string

	v := viper.New()
	v.SetEnvPrefix("TERMGRID")
	v.AutomaticEnv()
	v.SetDefault("cols", 0)
	v.SetDefault("rows", 0)
	v.SetDefault("format", "json")

	cmd := &cobra.Command{
		Use:   "termgrid [file]",
		Short: "Interpret an ANSI/VT byte stream into JSON, text, or HTML",
		Long: `termgrid feeds a raw terminal stream through a VT emulator and prints the
resulting screen. Escape sequences are interpreted, not stripped: cursor
motion, erases, colors, and scrolling all apply before extraction.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			logger := pslog.Ctx(cmd.Context()).With("component", "cli")

			if !cmd.Flags().Changed("cols") {
				cols = v.GetInt("cols")
			}
			if !cmd.Flags().Changed("rows") {
				rows = v.GetInt("rows")
			}
			if !cmd.Flags().Changed("format") {
				format = v.GetString("format")
			}

			data, source, err := readInput(args)
			if err != nil {
				return err
			}
			logger.Debug("read input", "source", source, "bytes", len(data))

			var result string
			switch format {
			case "json":
				result, err = termgrid.ToJSON(data, cols, rows, offset, limit)
			case "text":
				result, err = termgrid.ToText(data, cols, rows)
			case "html":
				result, err = termgrid.ToHTML(data, cols, rows)
			default:
				return fmt.Errorf("unknown format %q (want json, text, or html)", format)
			}
			if err != nil {
				return fmt.Errorf("interpret %s: %w", source, err)
			}

			if output != "" {
				return os.WriteFile(output, []byte(result), 0o644)
			}
			_, err = fmt.Fprintln(cmd.OutOrStdout(), result)
			return err
		},
	}

	flags := cmd.Flags()
	flags.IntVar(&cols, "cols", 0, "terminal width (0 = per-format default)")
	flags.IntVar(&rows, "rows", 0, "terminal height (0 = per-format default)")
	flags.IntVar(&offset, "offset", 0, "rows to skip before emission (json only)")
	flags.IntVar(&limit, "limit", 0, "maximum rows to emit, 0 = unlimited (json only)")
	flags.StringVar(&format, "format", "json", "output format: json, text, or html")
	flags.StringVarP(&output, "output", "o", "", "write result to file instead of stdout")

	return cmd
}

// readInput loads the stream from the file argument, or stdin when absent.
func readInput(args []string) ([]byte, string, error) {
	if len(args) == 1 && args[0] != "-" {
		data, err := os.ReadFile(args[0])
		if err != nil {
			return nil, args[0], err
		}
		return data, args[0], nil
	}
	data, err := io.ReadAll(os.Stdin)
	if err != nil {
		return nil, "stdin", err
	}
	return data, "stdin", nil
}
