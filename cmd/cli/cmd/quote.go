package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"service-basket/core/engine"
	"service-basket/core/output"
	"service-basket/core/types"
	"service-basket/internal/bootstrap"
	"service-basket/internal/config"
)

var (
	quoteYear      int
	quoteFormat    string
	quoteStart     []string
	quoteNoColor   bool
	quoteSelection bool
)

var quoteCmd = &cobra.Command{
	Use:   "quote [actions...]",
	Short: "Apply selection actions and price the result",
	Long: `Apply a sequence of selection actions to an (optionally non-empty)
starting selection and price the resulting basket for one year.

Actions are applied in order:
  Photography / +Photography / select:Photography     select
  -Photography / deselect:Photography                 deselect

Deselecting a main service also removes sub-services no other selected
main service supports. Selecting a sub-service without any of its main
services has no effect.

Examples:
  basket quote --year 2021 Photography VideoRecording
  basket quote --year 2020 --start WeddingSession,Photography,TwoDayEvent deselect:Photography
  basket quote --year 2022 --format json -- +VideoRecording -VideoRecording`,
	RunE: runQuote,
}

func init() {
	quoteCmd.Flags().IntVarP(&quoteYear, "year", "y", 0, "pricing year (default: configured or latest catalog year)")
	quoteCmd.Flags().StringVarP(&quoteFormat, "format", "f", "", "output format (cli, json)")
	quoteCmd.Flags().StringSliceVar(&quoteStart, "start", nil, "starting selection, comma-separated")
	quoteCmd.Flags().BoolVar(&quoteNoColor, "no-color", false, "disable colored output")
	quoteCmd.Flags().BoolVar(&quoteSelection, "selection-only", false, "print the resulting selection without pricing it")

	rootCmd.AddCommand(quoteCmd)
}

func runQuote(cmd *cobra.Command, args []string) error {
	cfg := config.Get()
	ctx := commandContext(cmd)

	actions, err := parseActions(args)
	if err != nil {
		return err
	}

	format, err := output.ParseFormat(firstNonEmpty(quoteFormat, cfg.Output.DefaultFormat))
	if err != nil {
		return err
	}

	e, err := bootstrap.NewEngine(ctx, cfg)
	if err != nil {
		return fmt.Errorf("failed to load catalog: %w", err)
	}

	start := splitSelection(quoteStart)

	if quoteSelection {
		sel, _, err := e.Apply(start, actions...)
		if err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), sel)
		return nil
	}

	year := types.Year(quoteYear)
	if year == 0 {
		year = bootstrap.DefaultYear(cfg, e.Catalog())
	}

	q, err := e.Quote(ctx, engine.QuoteRequest{
		Selection: start,
		Actions:   actions,
		Year:      year,
	})
	if err != nil {
		return err
	}

	return output.RenderQuote(cmd.OutOrStdout(), format, q, output.Options{
		NoColor: quoteNoColor || cfg.Output.NoColor,
	})
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}
