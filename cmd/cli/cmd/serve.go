package cmd

import (
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"service-basket/api"
	"service-basket/internal/bootstrap"
	"service-basket/internal/config"
	"service-basket/internal/logging"
)

var (
	serveAddr    string
	serveMetrics bool
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the basket over HTTP",
	Long: `Serve selection updates and quotes over a JSON HTTP API.

Routes:
  GET  /health      liveness
  GET  /version     build version
  GET  /catalog     services, prerequisites, prices and bundles
  POST /selection   apply actions to a selection
  POST /quote       apply actions and price the result
  POST /diff        price two selections and compare them
  GET  /metrics     Prometheus metrics (unless disabled)`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg := config.Get()
		if cmd.Flags().Changed("addr") {
			cfg.Server.Addr = serveAddr
		}
		if cmd.Flags().Changed("metrics") {
			cfg.Server.Metrics = serveMetrics
		}

		defer logging.Sync()

		ctx, stop := signal.NotifyContext(commandContext(cmd), syscall.SIGINT, syscall.SIGTERM)
		defer stop()

		e, err := bootstrap.NewEngine(ctx, cfg)
		if err != nil {
			return err
		}

		srv := api.NewServer(e, api.Options{
			Version:     Version,
			DefaultYear: bootstrap.DefaultYear(cfg, e.Catalog()),
			Metrics:     cfg.Server.Metrics,
		})
		if err := srv.Run(ctx, cfg.Server.Addr, time.Duration(cfg.Server.ShutdownTimeoutSeconds)*time.Second); err != nil {
			logging.Error("server stopped", zap.Error(err))
			return err
		}
		return nil
	},
}

func init() {
	serveCmd.Flags().StringVar(&serveAddr, "addr", ":8080", "listen address")
	serveCmd.Flags().BoolVar(&serveMetrics, "metrics", true, "expose /metrics")

	rootCmd.AddCommand(serveCmd)
}
