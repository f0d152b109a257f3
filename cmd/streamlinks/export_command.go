package main

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/conorfabian/streamlinks/internal/catalog"
)

func newExportCommand(ctx *commandContext) *cobra.Command {
	var (
		format string
		output string
	)
	cmd := &cobra.Command{
		Use:   "export",
		Short: "Write the loaded catalog as TOML or CSV",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			var w io.Writer = cmd.OutOrStdout()
			if output != "" && output != "-" {
				f, err := os.Create(output)
				if err != nil {
					return fmt.Errorf("create %s: %w", output, err)
				}
				defer f.Close()
				w = f
			}
			sites := ctx.catalog.All()
			switch strings.ToLower(format) {
			case "toml":
				return catalog.WriteTOML(w, sites)
			case "csv":
				return catalog.WriteCSV(w, sites)
			default:
				return fmt.Errorf("unsupported format %q (want toml or csv)", format)
			}
		},
	}
	cmd.Flags().StringVarP(&format, "format", "f", "toml", "Output format: toml or csv")
	cmd.Flags().StringVarP(&output, "output", "o", "-", "Output file, - for stdout")
	return cmd
}
