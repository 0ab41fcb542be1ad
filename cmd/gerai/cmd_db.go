package main

import (
	"fmt"

	"github.com/spf13/cobra"
	"gorm.io/gorm"

	"github.com/prasetyadi/gerai/config"
	"github.com/prasetyadi/gerai/database/seeders"
	"github.com/prasetyadi/gerai/pkg/database"
	"github.com/prasetyadi/gerai/pkg/migration"
)

func bootDB() (*gorm.DB, error) {
	if err := config.Load(); err != nil {
		return nil, err
	}
	return database.Connect()
}

// gerai migrate
var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Run all pending database migrations",
	RunE: func(cmd *cobra.Command, args []string) error {
		db, err := bootDB()
		if err != nil {
			return err
		}
		return migration.New(db).Up()
	},
}

// gerai migrate:rollback
var migrateRollbackCmd = &cobra.Command{
	Use:   "migrate:rollback",
	Short: "Roll back the last batch of migrations",
	RunE: func(cmd *cobra.Command, args []string) error {
		db, err := bootDB()
		if err != nil {
			return err
		}
		return migration.New(db).Rollback()
	},
}

// gerai migrate:status
var migrateStatusCmd = &cobra.Command{
	Use:   "migrate:status",
	Short: "Show which migrations have run",
	RunE: func(cmd *cobra.Command, args []string) error {
		db, err := bootDB()
		if err != nil {
			return err
		}

		rows, err := migration.New(db).Status()
		if err != nil {
			return err
		}

		fmt.Printf("%-50s  %-8s  %s\n", "MIGRATION", "STATUS", "BATCH")
		for _, row := range rows {
			if row.Ran {
				fmt.Printf("%-50s  %-8s  %d\n", row.Name, "ran", row.Batch)
			} else {
				fmt.Printf("%-50s  %-8s  -\n", row.Name, "pending")
			}
		}
		return nil
	},
}

// gerai seed
var seedCmd = &cobra.Command{
	Use:   "seed",
	Short: "Run every registered database seeder",
	RunE: func(cmd *cobra.Command, args []string) error {
		db, err := bootDB()
		if err != nil {
			return err
		}
		return seeders.RunAll(db)
	},
}
