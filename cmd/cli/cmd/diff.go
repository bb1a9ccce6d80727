package cmd

import (
	"strings"

	"github.com/spf13/cobra"

	"service-basket/core/engine"
	"service-basket/core/output"
	"service-basket/core/types"
	"service-basket/internal/bootstrap"
	"service-basket/internal/config"
)

var (
	diffYear    int
	diffBase    []string
	diffHead    []string
	diffFormat  string
	diffNoColor bool
)

var diffCmd = &cobra.Command{
	Use:   "diff",
	Short: "Compare the price of two selections",
	Long: `Price two selections for the same year and show how each service's
contribution changes between them.

Examples:
  basket diff --year 2021 --base Photography --head Photography,VideoRecording
  basket diff --base WeddingSession --head WeddingSession,Photography --format json`,
	RunE: runDiff,
}

func init() {
	diffCmd.Flags().IntVarP(&diffYear, "year", "y", 0, "pricing year (default: configured or latest catalog year)")
	diffCmd.Flags().StringSliceVar(&diffBase, "base", nil, "base selection, comma-separated")
	diffCmd.Flags().StringSliceVar(&diffHead, "head", nil, "head selection, comma-separated")
	diffCmd.Flags().StringVarP(&diffFormat, "format", "f", "", "output format (cli, json)")
	diffCmd.Flags().BoolVar(&diffNoColor, "no-color", false, "disable colored output")

	rootCmd.AddCommand(diffCmd)
}

func runDiff(cmd *cobra.Command, args []string) error {
	cfg := config.Get()
	ctx := commandContext(cmd)

	format, err := output.ParseFormat(firstNonEmpty(diffFormat, cfg.Output.DefaultFormat))
	if err != nil {
		return err
	}

	e, err := bootstrap.NewEngine(ctx, cfg)
	if err != nil {
		return err
	}

	year := types.Year(diffYear)
	if year == 0 {
		year = bootstrap.DefaultYear(cfg, e.Catalog())
	}

	cmp, err := e.Compare(ctx,
		engine.QuoteRequest{Selection: splitSelection(diffBase), Year: year},
		engine.QuoteRequest{Selection: splitSelection(diffHead), Year: year})
	if err != nil {
		return err
	}

	return output.RenderComparison(cmd.OutOrStdout(), format, cmp, output.Options{
		NoColor: diffNoColor || cfg.Output.NoColor,
	})
}

func splitSelection(names []string) types.Selection {
	sel := make(types.Selection, 0, len(names))
	for _, n := range names {
		if n = strings.TrimSpace(n); n != "" {
			sel = append(sel, types.Service(n))
		}
	}
	return sel
}
