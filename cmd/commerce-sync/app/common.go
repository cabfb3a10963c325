package app

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	syncapp "github.com/stacklok/commerce-sync/internal/app"
	"github.com/stacklok/commerce-sync/internal/config"
	"github.com/stacklok/commerce-sync/internal/db"
	pkgsync "github.com/stacklok/commerce-sync/internal/sync"
)

const (
	formatTable = "table"
	formatJSON  = "json"
)

// loadConfig loads the file named by --config or COMMERCE_SYNC_CONFIG
func loadConfig() (*config.Config, error) {
	configPath := viper.GetString("config")
	if configPath == "" {
		return nil, fmt.Errorf("configuration file is required (--config or %s_CONFIG)", config.EnvPrefix)
	}

	cfg, err := config.LoadConfig(config.WithConfigPath(configPath))
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}
	return cfg, nil
}

// openPool loads the configuration and connects to the database.
// The caller closes the returned pool.
func openPool(ctx context.Context) (*config.Config, *pgxpool.Pool, error) {
	cfg, err := loadConfig()
	if err != nil {
		return nil, nil, err
	}

	pool, err := db.NewPool(ctx, cfg.Database)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to connect to database: %w", err)
	}
	return cfg, pool, nil
}

// storeIDFlag reads and parses the --store flag
func storeIDFlag(cmd *cobra.Command) (uuid.UUID, error) {
	raw, err := cmd.Flags().GetString("store")
	if err != nil {
		return uuid.Nil, fmt.Errorf("failed to get store flag: %w", err)
	}
	id, err := uuid.Parse(raw)
	if err != nil {
		return uuid.Nil, fmt.Errorf("invalid store id %q: %w", raw, err)
	}
	return id, nil
}

// syncLogIDArg parses a positional sync log id
func syncLogIDArg(raw string) (uuid.UUID, error) {
	id, err := uuid.Parse(raw)
	if err != nil {
		return uuid.Nil, fmt.Errorf("invalid sync log id %q: %w", raw, err)
	}
	return id, nil
}

// kindFlag reads and parses the --kind flag
func kindFlag(cmd *cobra.Command) (pkgsync.EntityKind, error) {
	raw, err := cmd.Flags().GetString("kind")
	if err != nil {
		return "", fmt.Errorf("failed to get kind flag: %w", err)
	}
	return pkgsync.ParseEntityKind(raw)
}

func addStoreFlag(cmd *cobra.Command) {
	cmd.Flags().String("store", "", "Store id (required)")
	if err := cmd.MarkFlagRequired("store"); err != nil {
		panic(err)
	}
}

func addFormatFlag(cmd *cobra.Command) {
	cmd.Flags().StringP("output", "o", formatTable, "Output format (table or json)")
}

func outputFormat(cmd *cobra.Command) (string, error) {
	format, err := cmd.Flags().GetString("output")
	if err != nil {
		return "", fmt.Errorf("failed to get output flag: %w", err)
	}
	switch format {
	case formatTable, formatJSON:
		return format, nil
	}
	return "", fmt.Errorf("unsupported output format %q (expected %q or %q)", format, formatTable, formatJSON)
}

// withComponents connects to the database, wires the sync engine and runs fn
func withComponents(cmd *cobra.Command, fn func(ctx context.Context, c *syncapp.AppComponents) error) error {
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	cfg, pool, err := openPool(ctx)
	if err != nil {
		return err
	}
	defer pool.Close()

	components, err := syncapp.NewComponents(pool, cfg, nil)
	if err != nil {
		return err
	}
	return fn(ctx, components)
}
