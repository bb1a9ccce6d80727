// Package main - Entry point for the basket HTTP server
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"service-basket/api"
	"service-basket/internal/bootstrap"
	"service-basket/internal/config"
	"service-basket/internal/logging"
)

const version = "1.0.0"

func main() {
	cfgPath := flag.String("config", "", "Config file (JSON)")
	addr := flag.String("addr", "", "Server address (overrides config)")
	catalogPath := flag.String("catalog", "", "Catalog file (overrides config)")
	flag.Parse()

	if err := run(*cfgPath, *addr, *catalogPath); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func run(cfgPath, addr, catalogPath string) error {
	cfg, err := config.Load(cfgPath)
	if err != nil {
		return err
	}
	if addr != "" {
		cfg.Server.Addr = addr
	}
	if catalogPath != "" {
		cfg.Catalog.Path = catalogPath
	}

	if err := logging.Initialize(cfg.Logging); err != nil {
		return err
	}
	defer logging.Sync()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	e, err := bootstrap.NewEngine(ctx, cfg)
	if err != nil {
		return err
	}

	srv := api.NewServer(e, api.Options{
		Version:     version,
		DefaultYear: bootstrap.DefaultYear(cfg, e.Catalog()),
		Metrics:     cfg.Server.Metrics,
	})
	return srv.Run(ctx, cfg.Server.Addr, time.Duration(cfg.Server.ShutdownTimeoutSeconds)*time.Second)
}
