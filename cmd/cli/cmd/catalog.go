package cmd

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	catalogfile "service-basket/adapters/catalog"
	"service-basket/core/output"
	"service-basket/core/ui"
	"service-basket/internal/bootstrap"
	"service-basket/internal/config"
	"service-basket/internal/errors"
)

var (
	catalogFormat  string
	catalogNoColor bool
	exportFormat   string
)

var catalogCmd = &cobra.Command{
	Use:   "catalog",
	Short: "Inspect and validate service catalogs",
	Long: `Inspect the active catalog, validate catalog files, or export the
active catalog so it can be edited and loaded with --catalog.`,
}

var catalogShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show services, prerequisites, prices and bundles",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg := config.Get()
		format, err := output.ParseFormat(firstNonEmpty(catalogFormat, cfg.Output.DefaultFormat))
		if err != nil {
			return err
		}

		c, err := bootstrap.LoadCatalog(commandContext(cmd), cfg)
		if err != nil {
			return err
		}

		return output.RenderCatalog(cmd.OutOrStdout(), format, c, output.Options{
			NoColor: catalogNoColor || cfg.Output.NoColor,
		})
	},
}

var catalogValidateCmd = &cobra.Command{
	Use:   "validate <file>",
	Short: "Validate a catalog file",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		w := ui.NewWriter(cmd.OutOrStdout(), catalogNoColor || config.Get().Output.NoColor)

		c, err := catalogfile.Load(commandContext(cmd), args[0])
		if err != nil {
			w.Error("%s is invalid (%s)", args[0], errors.TypeOf(err))
			return err
		}

		stats := c.Stats()
		w.Success("%s is valid", args[0])
		w.Println("  services: %d (%d constrained)", stats.Services, stats.Constrained)
		w.Println("  years:    %d", stats.Years)
		w.Println("  bundles:  %d discounts, %d absorbing", stats.Discounts, stats.Bundles)
		return nil
	},
}

var catalogExportCmd = &cobra.Command{
	Use:   "export",
	Short: "Export the active catalog as YAML or JSON",
	RunE: func(cmd *cobra.Command, args []string) error {
		c, err := bootstrap.LoadCatalog(commandContext(cmd), config.Get())
		if err != nil {
			return err
		}

		format := catalogfile.Format(exportFormat)
		if format != catalogfile.FormatYAML && format != catalogfile.FormatJSON {
			return fmt.Errorf("unsupported export format %q (yaml, json)", exportFormat)
		}
		return catalogfile.Export(cmd.OutOrStdout(), c, format)
	},
}

func init() {
	catalogShowCmd.Flags().StringVarP(&catalogFormat, "format", "f", "", "output format (cli, json)")
	catalogCmd.PersistentFlags().BoolVar(&catalogNoColor, "no-color", false, "disable colored output")
	catalogExportCmd.Flags().StringVarP(&exportFormat, "format", "f", "yaml", "export format (yaml, json)")

	catalogCmd.AddCommand(catalogShowCmd)
	catalogCmd.AddCommand(catalogValidateCmd)
	catalogCmd.AddCommand(catalogExportCmd)
	rootCmd.AddCommand(catalogCmd)
}

func commandContext(cmd *cobra.Command) context.Context {
	if ctx := cmd.Context(); ctx != nil {
		return ctx
	}
	return context.Background()
}
