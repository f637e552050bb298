package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"topology-builder/internal/api"
	"topology-builder/internal/api/handler"
	"topology-builder/internal/config"
	"topology-builder/internal/ctxlog"
	"topology-builder/internal/store"
	"topology-builder/internal/translation"
	"topology-builder/pkg/router"
	"topology-builder/pkg/utils"
)

func main() {
	configPath := flag.String("config", os.Getenv("TOPOLOGY_CONFIG"), "HCL configuration file")
	flag.Parse()

	if err := run(*configPath); err != nil {
		slog.Error("Server stopped.", "error", err)
		os.Exit(1)
	}
}

func run(configPath string) error {
	cfg, err := config.Load(configPath)
	if err != nil {
		return err
	}
	logger := ctxlog.New(cfg.LogLevel, cfg.LogFormat, os.Stderr)
	slog.SetDefault(logger)

	// Init DB
	st, err := store.Open(cfg.Database)
	if err != nil {
		return fmt.Errorf("failed to open database %s: %w", cfg.Database, err)
	}
	defer st.Close()

	ws := utils.NewWorkspace(cfg.OutputDir)
	runner := translation.NewRunner(st, ws, cfg)

	// Create router and register API routes
	r := router.New(logger)
	api.RegisterRoutes(r, handler.New(st, runner, ws))

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	return r.Start(ctx, cfg.ListenAddr, utils.ParseDuration(cfg.ReadTimeout, 15*time.Second))
}
