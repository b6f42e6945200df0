package main

import (
	"context"
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/shashiranjanraj/mayorista/config"
	"github.com/shashiranjanraj/mayorista/database/seeders"
	"github.com/shashiranjanraj/mayorista/internal/server"
	"github.com/shashiranjanraj/mayorista/pkg/database"
	"github.com/shashiranjanraj/mayorista/pkg/migration"
)

var errMongoMigrations = errors.New("STORE_DRIVER=mongo has no versioned migrations; indexes are ensured on boot")

// migrator loads config and opens the SQL database.
func migrator(ctx context.Context, cmd *cobra.Command) (*migration.Runner, func(), error) {
	if err := config.Load(); err != nil {
		return nil, nil, err
	}
	if config.StoreDriver() == "mongo" {
		return nil, nil, errMongoMigrations
	}
	if err := database.Connect(ctx); err != nil {
		return nil, nil, err
	}
	return migration.New(database.DB, cmd.OutOrStdout()), func() { database.Close(context.Background()) }, nil
}

// mayorista migrate
var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Run all pending database migrations",
	RunE: func(cmd *cobra.Command, args []string) error {
		if config.StoreDriver() == "mongo" {
			// Mongo has no schema; make sure the indexes exist instead.
			_, closeStore, err := server.OpenStore(cmd.Context())
			if err != nil {
				return err
			}
			closeStore()
			fmt.Fprintln(cmd.OutOrStdout(), "Mongo indexes ensured.")
			return nil
		}
		m, done, err := migrator(cmd.Context(), cmd)
		if err != nil {
			return err
		}
		defer done()
		fmt.Fprintln(cmd.OutOrStdout(), "Running migrations…")
		return m.Run()
	},
}

// mayorista migrate:rollback
var migrateRollbackCmd = &cobra.Command{
	Use:   "migrate:rollback",
	Short: "Roll back the last batch of migrations",
	RunE: func(cmd *cobra.Command, args []string) error {
		m, done, err := migrator(cmd.Context(), cmd)
		if err != nil {
			return err
		}
		defer done()
		fmt.Fprintln(cmd.OutOrStdout(), "Rolling back last batch…")
		return m.Rollback()
	},
}

// mayorista migrate:status
var migrateStatusCmd = &cobra.Command{
	Use:   "migrate:status",
	Short: "Show the status of each migration",
	RunE: func(cmd *cobra.Command, args []string) error {
		m, done, err := migrator(cmd.Context(), cmd)
		if err != nil {
			return err
		}
		defer done()
		return m.Status()
	},
}

// mayorista seed
var seedCmd = &cobra.Command{
	Use:   "seed",
	Short: "Insert the sample catalog (existing SKUs are skipped)",
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := config.Load(); err != nil {
			return err
		}
		store, closeStore, err := server.OpenStore(cmd.Context())
		if err != nil {
			return err
		}
		defer closeStore()
		fmt.Fprintln(cmd.OutOrStdout(), "Running seeders…")
		return seeders.RunAll(cmd.Context(), store, cmd.OutOrStdout())
	},
}
