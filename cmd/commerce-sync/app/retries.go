package app

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	syncapp "github.com/stacklok/commerce-sync/internal/app"
)

func newRetriesCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "retries",
		Short: "Inspect and drive failed sync retries",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return cmd.Usage()
		},
	}

	cmd.AddCommand(
		newRetriesDueCmd(),
		newRetriesScheduleCmd(),
		newRetriesStartCmd(),
		newRetriesReapCmd(),
		newRetriesRunCmd(),
	)
	return cmd
}

func newRetriesDueCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "due",
		Short: "List failed syncs whose retry is due",
		RunE: func(cmd *cobra.Command, _ []string) error {
			storeID, err := storeIDFlag(cmd)
			if err != nil {
				return err
			}
			format, err := outputFormat(cmd)
			if err != nil {
				return err
			}
			return withComponents(cmd, func(ctx context.Context, c *syncapp.AppComponents) error {
				logs, err := c.Scheduler.GetDueRetries(ctx, storeID)
				if err != nil {
					return err
				}
				return printSyncLogs(cmd.OutOrStdout(), format, logs)
			})
		},
	}
	addStoreFlag(cmd)
	addFormatFlag(cmd)
	return cmd
}

func newRetriesScheduleCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "schedule [sync-log-id]",
		Short: "Schedule the retry of a failed sync",
		Long: `Increment the retry count of a failed sync and set its next retry time with
exponential backoff. With --all-failed every failed sync of the store that has no
retry scheduled yet is processed.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			storeID, err := storeIDFlag(cmd)
			if err != nil {
				return err
			}
			all, err := cmd.Flags().GetBool("all-failed")
			if err != nil {
				return fmt.Errorf("failed to get all-failed flag: %w", err)
			}
			if all == (len(args) == 1) {
				return fmt.Errorf("pass either a sync log id or --all-failed")
			}
			format, err := outputFormat(cmd)
			if err != nil {
				return err
			}

			return withComponents(cmd, func(ctx context.Context, c *syncapp.AppComponents) error {
				var ids []uuid.UUID
				if all {
					failures, err := c.Scheduler.GetUnscheduledFailures(ctx, storeID)
					if err != nil {
						return err
					}
					for _, failure := range failures {
						ids = append(ids, failure.ID)
					}
				} else {
					id, err := syncLogIDArg(args[0])
					if err != nil {
						return err
					}
					ids = append(ids, id)
				}

				scheduled := make([]scheduledRetry, 0, len(ids))
				for _, id := range ids {
					result, err := c.Scheduler.ScheduleRetry(ctx, storeID, id)
					if err != nil {
						if !all {
							return err
						}
						slog.Warn("Failed to schedule retry", "sync_log_id", id, "error", err)
						continue
					}
					scheduled = append(scheduled, scheduledRetry{SyncLogID: id, ScheduleResult: result})
				}
				return printScheduledRetries(cmd.OutOrStdout(), format, scheduled)
			})
		},
	}
	addStoreFlag(cmd)
	addFormatFlag(cmd)
	cmd.Flags().Bool("all-failed", false, "Schedule every failed sync without a scheduled retry")
	return cmd
}

func newRetriesStartCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "start <sync-log-id>",
		Short: "Mark a failed sync as running again and count the attempt",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			storeID, err := storeIDFlag(cmd)
			if err != nil {
				return err
			}
			id, err := syncLogIDArg(args[0])
			if err != nil {
				return err
			}
			return withComponents(cmd, func(ctx context.Context, c *syncapp.AppComponents) error {
				if err := c.Scheduler.MarkRetryStarted(ctx, storeID, id); err != nil {
					return err
				}
				_, err := fmt.Fprintf(cmd.OutOrStdout(), "sync log %s is running\n", id)
				return err
			})
		},
	}
	addStoreFlag(cmd)
	return cmd
}

func newRetriesReapCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "reap",
		Short: "Fail syncs stuck in running for longer than the stale threshold",
		RunE: func(cmd *cobra.Command, _ []string) error {
			all, err := cmd.Flags().GetBool("all-stores")
			if err != nil {
				return fmt.Errorf("failed to get all-stores flag: %w", err)
			}
			raw, err := cmd.Flags().GetString("store")
			if err != nil {
				return fmt.Errorf("failed to get store flag: %w", err)
			}
			if all == (raw != "") {
				return fmt.Errorf("pass either --store or --all-stores")
			}

			return withComponents(cmd, func(ctx context.Context, c *syncapp.AppComponents) error {
				reaped, err := reap(ctx, cmd, c, all)
				if err != nil {
					return err
				}
				_, err = fmt.Fprintf(cmd.OutOrStdout(), "%d stale syncs marked failed\n", reaped)
				return err
			})
		},
	}
	cmd.Flags().String("store", "", "Store id")
	cmd.Flags().Bool("all-stores", false, "Reap stale syncs of every store")
	return cmd
}

func reap(ctx context.Context, cmd *cobra.Command, c *syncapp.AppComponents, all bool) (int64, error) {
	if all {
		return c.Reaper.DetectAllStaleSyncs(ctx)
	}
	storeID, err := storeIDFlag(cmd)
	if err != nil {
		return 0, err
	}
	return c.Reaper.DetectStaleSyncs(ctx, storeID)
}

func newRetriesRunCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "run",
		Short: "Run one recovery pass over every store and exit",
		RunE: func(cmd *cobra.Command, _ []string) error {
			format, err := outputFormat(cmd)
			if err != nil {
				return err
			}
			return withComponents(cmd, func(ctx context.Context, c *syncapp.AppComponents) error {
				return printPassSummary(cmd.OutOrStdout(), format, c.Coordinator.RunOnce(ctx))
			})
		},
	}
	addFormatFlag(cmd)
	return cmd
}
