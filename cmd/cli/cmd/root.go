// Package cmd provides the CLI commands for service-basket.
package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"service-basket/internal/config"
	"service-basket/internal/logging"
)

// Version is the CLI version
const Version = "0.1.0"

var (
	cfgFile     string
	catalogPath string
	verbose     bool
)

// rootCmd represents the base command
var rootCmd = &cobra.Command{
	Use:   "basket",
	Short: "Select bundled services and price them",
	Long: `basket manages a service-selection basket for a bundled offering and
prices it under year-dependent bundle discounts.

Examples:
  basket quote --year 2021 Photography VideoRecording
  basket quote --year 2022 -- +VideoRecording +BlurayPackage -VideoRecording
  basket catalog show
  basket catalog validate ./catalog.hcl
  basket serve --addr :8080`,
	SilenceUsage: true,
}

// Execute runs the CLI
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is $HOME/.service-basket.json)")
	rootCmd.PersistentFlags().StringVar(&catalogPath, "catalog", "", "catalog file (.hcl, .yaml, .json); default is the built-in wedding catalog")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable verbose output")

	rootCmd.AddCommand(versionCmd)
}

func initConfig() {
	path := cfgFile
	if path == "" {
		path = config.DefaultPath()
	}

	cfg, err := config.Load(path)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading config: %v\n", err)
		os.Exit(1)
	}
	if catalogPath != "" {
		cfg.Catalog.Path = catalogPath
	}
	if verbose {
		cfg.Logging.Level = "debug"
	}
	config.Set(cfg)

	if err := logging.Initialize(cfg.Logging); err != nil {
		fmt.Fprintf(os.Stderr, "Error initializing logging: %v\n", err)
	}
}

// versionCmd prints version information
var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print version information",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Fprintf(cmd.OutOrStdout(), "basket version %s\n", Version)
	},
}
