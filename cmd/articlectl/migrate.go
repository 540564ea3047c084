package main

import (
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"article-service/internal/adapters/secondary/postgres"
	"article-service/internal/adapters/secondary/sqlstore"
	"article-service/internal/config"
)

var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Create the node table in the configured storage",
	Long:  `Applies the node schema to the storage selected by STORAGE_DRIVER. Safe to run repeatedly.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()

		switch cfg.Storage.Driver {
		case config.StorageDriverSQLite:
			db, err := sqlstore.Open(cfg.Storage.SQLitePath)
			if err != nil {
				return err
			}
			if sqlDB, err := db.DB(); err == nil {
				defer sqlDB.Close()
			}
			log.WithField("path", cfg.Storage.SQLitePath).Info("sqlite schema applied")

		default:
			pool, err := pgxpool.New(ctx, cfg.Database.DSN())
			if err != nil {
				return fmt.Errorf("create db pool: %w", err)
			}
			defer pool.Close()

			if err := postgres.Migrate(ctx, pool); err != nil {
				return err
			}
			log.WithField("database", cfg.Database.Name).Info("postgres schema applied")
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(migrateCmd)
}
