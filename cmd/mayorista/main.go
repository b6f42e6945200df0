package main

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	// Registers schema migrations.
	_ "github.com/shashiranjanraj/mayorista/database/migrations"
)

func main() {
	if err := rootCmd.ExecuteContext(context.Background()); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:           "mayorista",
	Short:         "Wholesale catalog storefront",
	SilenceUsage:  true,
	SilenceErrors: true,
}

func init() {
	// Server
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(routeListCmd)

	// Database
	rootCmd.AddCommand(migrateCmd)
	rootCmd.AddCommand(migrateRollbackCmd)
	rootCmd.AddCommand(migrateStatusCmd)
	rootCmd.AddCommand(seedCmd)
	rootCmd.AddCommand(makeMigrationCmd)

	// Catalog
	rootCmd.AddCommand(productsReorderCmd)
}
