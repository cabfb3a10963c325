package app

import (
	"fmt"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/stacklok/commerce-sync/database"
)

func newMigrateCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "migrate",
		Short: "Database migration tool",
		Long:  `Database migration tool for managing schema versions. Use with 'up' or 'down' subcommands.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return cmd.Usage()
		},
	}

	cmd.PersistentFlags().BoolP("yes", "y", false, "Answer yes to all questions")
	cmd.PersistentFlags().UintP("num-steps", "n", 0, "Number of steps to migrate (0 = all)")

	cmd.AddCommand(
		&cobra.Command{
			Use:   "up",
			Short: "Apply pending database migrations",
			Long: `Apply all pending database migrations to bring the schema up to date.
The connection parameters are read from the database section of the config file.`,
			RunE: func(cmd *cobra.Command, _ []string) error {
				return runMigrate(cmd, "apply", database.MigrateUp)
			},
		},
		&cobra.Command{
			Use:   "down",
			Short: "Roll back database migrations",
			Long: `Roll back database migrations. Without --num-steps every migration is rolled
back and all synced data is dropped.`,
			RunE: func(cmd *cobra.Command, _ []string) error {
				return runMigrate(cmd, "roll back", database.MigrateDown)
			},
		},
	)

	return cmd
}

func runMigrate(cmd *cobra.Command, verb string, migrateFn func(connString string, steps uint) error) error {
	yes, err := cmd.Flags().GetBool("yes")
	if err != nil {
		return fmt.Errorf("failed to get yes flag: %w", err)
	}
	steps, err := cmd.Flags().GetUint("num-steps")
	if err != nil {
		return fmt.Errorf("failed to get num-steps flag: %w", err)
	}

	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	connString, err := cfg.Database.GetConnectionString()
	if err != nil {
		return fmt.Errorf("failed to get connection string: %w", err)
	}

	if !yes {
		confirmed, err := confirm(cmd, fmt.Sprintf("About to %s migrations on database %s@%s:%d/%s",
			verb, cfg.Database.User, cfg.Database.Host, cfg.Database.Port, cfg.Database.Database))
		if err != nil {
			return err
		}
		if !confirmed {
			slog.Info("Migration cancelled by user")
			return nil
		}
	}

	slog.Info("Running database migrations", "action", verb, "steps", steps)
	if err := migrateFn(connString, steps); err != nil {
		return err
	}

	version, dirty, err := database.GetVersion(connString)
	switch {
	case err != nil:
		slog.Warn("Unable to get migration version", "error", err)
	case dirty:
		slog.Warn("Database is in a dirty state", "version", version)
	default:
		slog.Info("Migrations finished", "version", version)
	}
	return nil
}

// confirm asks a yes/no question on the command's input
func confirm(cmd *cobra.Command, prompt string) (bool, error) {
	if _, err := fmt.Fprintf(cmd.OutOrStdout(), "%s\nContinue? (yes/no): ", prompt); err != nil {
		return false, err
	}
	var response string
	if _, err := fmt.Fscanln(cmd.InOrStdin(), &response); err != nil {
		return false, fmt.Errorf("failed to read user input: %w", err)
	}
	return response == "yes" || response == "y", nil
}
