package app

import (
	"context"
	"fmt"
	"log/slog"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	syncapp "github.com/stacklok/commerce-sync/internal/app"
	"github.com/stacklok/commerce-sync/internal/telemetry"
	"github.com/stacklok/commerce-sync/internal/versions"
)

const defaultGracefulTimeout = 30 * time.Second

func newServeCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the recovery coordinator and the operational endpoints",
		Long: `Run the background recovery loop and serve /health, /readiness, /version and
/metrics.

Every pass fails syncs stuck in running, schedules retries for failed syncs and,
when a source is configured, re-runs due retries with a freshly fetched batch.`,
		RunE: runServe,
	}

	cmd.Flags().String("address", ":8080", "Address to listen on")
	if err := viper.BindPFlag("address", cmd.Flags().Lookup("address")); err != nil {
		panic(err)
	}
	return cmd
}

func runServe(_ *cobra.Command, _ []string) error {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	cfg, pool, err := openPool(ctx)
	if err != nil {
		return err
	}
	defer pool.Close()

	var telCfg *telemetry.Config
	if cfg.Telemetry != nil {
		c := *cfg.Telemetry
		if c.ServiceVersion == "" {
			c.ServiceVersion = versions.GetVersionInfo().Version
		}
		telCfg = &c
	}
	tel, err := telemetry.New(ctx, telemetry.WithTelemetryConfig(telCfg))
	if err != nil {
		return fmt.Errorf("failed to initialize telemetry: %w", err)
	}
	defer func() {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), defaultGracefulTimeout)
		defer cancel()
		if err := tel.Shutdown(shutdownCtx); err != nil {
			slog.Error("Failed to shut down telemetry", "error", err)
		}
	}()

	app, err := syncapp.NewSyncApp(ctx,
		syncapp.WithConfig(cfg),
		syncapp.WithPool(pool),
		syncapp.WithTelemetry(tel),
		syncapp.WithAddress(viper.GetString("address")),
	)
	if err != nil {
		return fmt.Errorf("failed to build sync app: %w", err)
	}

	errCh := make(chan error, 1)
	go func() {
		errCh <- app.Start()
	}()

	select {
	case <-ctx.Done():
		slog.Info("Shutdown signal received")
	case err := <-errCh:
		// A component failed before any signal arrived
		if stopErr := app.Stop(defaultGracefulTimeout); stopErr != nil {
			slog.Error("Failed to stop sync app", "error", stopErr)
		}
		return err
	}

	if err := app.Stop(defaultGracefulTimeout); err != nil {
		return err
	}
	return <-errCh
}
