package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"

	"github.com/kvattis/svgfit/internal/analyzer"
	"github.com/kvattis/svgfit/internal/config"
	"github.com/kvattis/svgfit/internal/document"
	"github.com/kvattis/svgfit/internal/observability"
)

// newFitCmd creates the `fit` command: compute the animation-aware envelope
// and rewrite the document's viewBox in place or into a new file.
func newFitCmd(v *viper.Viper) *cobra.Command {
	fitCmd := &cobra.Command{
		Use:   "fit <input.svg>",
		Short: "Tighten an SVG's viewBox to its animated content bounds",
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
			cfg.Fit.Input = args[0]
			cfg.Fit.Output, _ = cmd.Flags().GetString("output")
			cfg.Fit.DryRun, _ = cmd.Flags().GetBool("dry-run")
			if cfg.Fit.Output == "" {
				cfg.Fit.Output = cfg.Fit.Input
			}

			doc, err := document.LoadFile(cfg.Fit.Input)
			if err != nil {
				return fmt.Errorf("failed to load %s: %w", cfg.Fit.Input, err)
			}

			a := analyzer.New(doc, analyzer.Config{
				Buffer:      cfg.Analyzer.Buffer,
				Parallelism: cfg.Analyzer.Parallelism,
			}, logger)
			res, err := a.AnalyzeDocument(ctx)
			if err != nil {
				return fmt.Errorf("analysis failed: %w", err)
			}
			if !res.HasContent {
				logger.Warn("Document has no contributing content; viewBox left unchanged",
					zap.String("input", cfg.Fit.Input))
				return nil
			}

			logger.Info("Computed viewBox",
				zap.Float64("x", res.ViewBox.X),
				zap.Float64("y", res.ViewBox.Y),
				zap.Float64("width", res.ViewBox.Width),
				zap.Float64("height", res.ViewBox.Height),
			)

			if cfg.Fit.DryRun {
				fmt.Fprintf(cmd.OutOrStdout(), "viewBox %g %g %g %g\n",
					res.ViewBox.X, res.ViewBox.Y, res.ViewBox.Width, res.ViewBox.Height)
				return nil
			}

			doc.SetViewBox(res.ViewBox, cfg.Analyzer.Precision)
			if err := doc.WriteToFile(cfg.Fit.Output); err != nil {
				return fmt.Errorf("failed to write %s: %w", cfg.Fit.Output, err)
			}
			logger.Info("Wrote fitted document", zap.String("output", cfg.Fit.Output))
			return nil
		},
	}

	fitCmd.Flags().StringP("output", "o", "", "Output file path. Defaults to rewriting the input in place.")
	fitCmd.Flags().Bool("dry-run", false, "Print the computed viewBox without writing any file.")
	fitCmd.Flags().Float64P("buffer", "b", 10.0, "Padding in user units around the computed envelope. (Overrides config/env)")
	fitCmd.Flags().IntP("parallelism", "j", 4, "Number of concurrent element analyses. (Overrides config/env)")

	return fitCmd
}
