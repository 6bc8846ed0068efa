package cmd

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/mbaumer/orderlink/app"
	"github.com/mbaumer/orderlink/config"
	"github.com/mbaumer/orderlink/infra/logger"
	"github.com/mbaumer/orderlink/infra/metrics"
)

var cfgPath string

var rootCmd = &cobra.Command{
	Use:   "orderlink",
	Short: "File-based order interchange store for scheduling engines and ERPs",
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&cfgPath, "config", "c", "config.yaml", "configuration file")
}

// Execute runs the CLI.
func Execute() error { return rootCmd.Execute() }

// withService loads the configuration, builds the service and hands it to fn.
// The prometheus endpoint, when enabled, is served for the lifetime of the
// command.
func withService(fn func(*app.Service) error) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cfg, err := config.Load(cfgPath)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	svc, err := app.New(cfg)
	if err != nil {
		return err
	}
	defer func() {
		if err := svc.Close(); err != nil {
			logger.New("main").Errorf("service close: %v", err)
		}
	}()

	if cfg.Metrics.PrometheusEnabled {
		go func() {
			if err := metrics.StartPromServer(ctx, ":"+cfg.Metrics.PrometheusPort); err != nil {
				logger.New("main").Errorf("prom server: %v", err)
			}
		}()
	}
	return fn(svc)
}

func printJSON(v any) error {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
