package main

import (
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/commstack/org-access/internal/config"
	"github.com/commstack/org-access/internal/store"
	"github.com/commstack/org-access/pkg/log"
)

var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Migrate the db",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.New()
		if err != nil {
			return err
		}

		logger := log.InitLog(cfg.Service.LogLevel)
		defer func() { _ = logger.Sync() }()
		undo := zap.ReplaceGlobals(logger)
		defer undo()

		zap.S().Named("org_api").Info("Initializing data store")
		db, err := store.InitDB(cfg)
		if err != nil {
			zap.S().Named("org_api").Fatalf("initializing data store: %v", err)
		}

		s := store.NewStore(db)
		defer s.Close()

		if err := s.InitialMigration(); err != nil {
			zap.S().Named("org_api").Fatalf("running initial migration: %v", err)
		}

		zap.S().Named("org_api").Info("Db migrated")
		return nil
	},
}
