package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	// Imported for their init() registrations.
	_ "github.com/prasetyadi/gerai/database/migrations"
	_ "github.com/prasetyadi/gerai/database/seeders"
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "gerai",
	Short: "Gerai — storefront server and management CLI",
}

func init() {
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(routeListCmd)

	rootCmd.AddCommand(migrateCmd)
	rootCmd.AddCommand(migrateRollbackCmd)
	rootCmd.AddCommand(migrateStatusCmd)
	rootCmd.AddCommand(seedCmd)
}
