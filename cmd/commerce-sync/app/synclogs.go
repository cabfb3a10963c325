package app

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	syncapp "github.com/stacklok/commerce-sync/internal/app"
	"github.com/stacklok/commerce-sync/internal/sync/state"
)

const defaultSyncLogLimit = 20

func newSyncLogsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "synclogs",
		Aliases: []string{"sync-logs"},
		Short:   "Inspect sync logs",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return cmd.Usage()
		},
	}

	list := &cobra.Command{
		Use:   "list",
		Short: "List the most recent sync logs of a store",
		RunE: func(cmd *cobra.Command, _ []string) error {
			storeID, err := storeIDFlag(cmd)
			if err != nil {
				return err
			}
			limit, err := cmd.Flags().GetInt("limit")
			if err != nil {
				return fmt.Errorf("failed to get limit flag: %w", err)
			}
			if limit <= 0 {
				return fmt.Errorf("limit must be positive, got %d", limit)
			}
			format, err := outputFormat(cmd)
			if err != nil {
				return err
			}

			return withComponents(cmd, func(ctx context.Context, c *syncapp.AppComponents) error {
				logs, err := c.Recorder.ListRecent(ctx, storeID, limit)
				if err != nil {
					return err
				}
				return printSyncLogs(cmd.OutOrStdout(), format, logs)
			})
		},
	}
	addStoreFlag(list)
	addFormatFlag(list)
	list.Flags().Int("limit", defaultSyncLogLimit, "Maximum number of sync logs to show")

	get := &cobra.Command{
		Use:   "get <sync-log-id>",
		Short: "Show one sync log",
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
			format, err := outputFormat(cmd)
			if err != nil {
				return err
			}

			return withComponents(cmd, func(ctx context.Context, c *syncapp.AppComponents) error {
				log, err := c.Recorder.Get(ctx, storeID, id)
				if err != nil {
					return err
				}
				return printSyncLogs(cmd.OutOrStdout(), format, []state.SyncLog{*log})
			})
		},
	}
	addStoreFlag(get)
	addFormatFlag(get)

	cmd.AddCommand(list, get)
	return cmd
}
