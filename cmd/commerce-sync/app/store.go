package app

import (
	"context"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	syncapp "github.com/stacklok/commerce-sync/internal/app"
	"github.com/stacklok/commerce-sync/internal/db/sqlc"
)

func newStoreCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "store",
		Short: "Manage tenant stores",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return cmd.Usage()
		},
	}

	create := &cobra.Command{
		Use:   "create",
		Short: "Create a store and print its id",
		RunE: func(cmd *cobra.Command, _ []string) error {
			name, err := cmd.Flags().GetString("name")
			if err != nil {
				return fmt.Errorf("failed to get name flag: %w", err)
			}
			name = strings.TrimSpace(name)
			if name == "" {
				return fmt.Errorf("store name cannot be empty")
			}
			format, err := outputFormat(cmd)
			if err != nil {
				return err
			}

			return withComponents(cmd, func(ctx context.Context, c *syncapp.AppComponents) error {
				store, err := c.Queries.CreateStore(ctx, name)
				if err != nil {
					return fmt.Errorf("failed to create store: %w", err)
				}
				return printStores(cmd.OutOrStdout(), format, []sqlc.Store{store})
			})
		},
	}
	create.Flags().String("name", "", "Store name (required)")
	if err := create.MarkFlagRequired("name"); err != nil {
		panic(err)
	}
	addFormatFlag(create)

	list := &cobra.Command{
		Use:   "list",
		Short: "List stores",
		RunE: func(cmd *cobra.Command, _ []string) error {
			format, err := outputFormat(cmd)
			if err != nil {
				return err
			}
			return withComponents(cmd, func(ctx context.Context, c *syncapp.AppComponents) error {
				stores, err := c.Queries.ListStores(ctx)
				if err != nil {
					return fmt.Errorf("failed to list stores: %w", err)
				}
				return printStores(cmd.OutOrStdout(), format, stores)
			})
		},
	}
	addFormatFlag(list)

	cmd.AddCommand(create, list)
	return cmd
}
