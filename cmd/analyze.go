package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/kvattis/svgfit/internal/analyzer"
	"github.com/kvattis/svgfit/internal/config"
	"github.com/kvattis/svgfit/internal/document"
	"github.com/kvattis/svgfit/internal/observability"
	"github.com/kvattis/svgfit/internal/report"
)

// newAnalyzeCmd creates the `analyze` command: run the bounds engine and
// emit the per-element JSON report without touching the document.
func newAnalyzeCmd(v *viper.Viper) *cobra.Command {
	analyzeCmd := &cobra.Command{
		Use:   "analyze <input.svg>",
		Short: "Report animated bounds per element as JSON",
		Args:  cobra.ExactArgs(1),
		PreRunE: func(cmd *cobra.Command, args []string) error {
			if err := v.BindPFlag("analyzer.buffer", cmd.Flags().Lookup("buffer")); err != nil {
				return err
			}
			return v.BindPFlag("analyzer.parallelism", cmd.Flags().Lookup("parallelism"))
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			logger := observability.GetLogger()

			cfg, err := config.NewConfigFromViper(v)
			if err != nil {
				return err
			}
			input := args[0]

			doc, err := document.LoadFile(input)
			if err != nil {
				return fmt.Errorf("failed to load %s: %w", input, err)
			}

			a := analyzer.New(doc, analyzer.Config{
				Buffer:      cfg.Analyzer.Buffer,
				Parallelism: cfg.Analyzer.Parallelism,
			}, logger)
			res, err := a.AnalyzeDocument(ctx)
			if err != nil {
				return fmt.Errorf("analysis failed: %w", err)
			}

			r := report.Build(input, res)

			out := cmd.OutOrStdout()
			if path, _ := cmd.Flags().GetString("output"); path != "" {
				f, err := os.Create(path)
				if err != nil {
					return fmt.Errorf("failed to create report file: %w", err)
				}
				defer f.Close()
				out = f
			}
			return r.Encode(out)
		},
	}

	analyzeCmd.Flags().StringP("output", "o", "", "Report file path. Defaults to stdout.")
	analyzeCmd.Flags().Float64P("buffer", "b", 10.0, "Padding in user units around the computed envelope. (Overrides config/env)")
	analyzeCmd.Flags().IntP("parallelism", "j", 4, "Number of concurrent element analyses. (Overrides config/env)")

	return analyzeCmd
}
