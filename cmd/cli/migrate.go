package main

import (
	"github.com/amirasaad/fintrack/infra"
	"github.com/amirasaad/fintrack/infra/initializer"
	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

func migrateCmd(e *env) *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "Apply pending database migrations",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			logger := initializer.SetupLogger(e.cfg.Log)
			db, err := initializer.OpenDatabase(e.cfg, logger)
			if err != nil {
				return err
			}
			defer func() {
				if sqlDB, err := db.DB(); err == nil {
					_ = sqlDB.Close()
				}
			}()

			if err := infra.RunMigrations(db, e.cfg.DB.Url); err != nil {
				return err
			}
			driver, _ := infra.Driver(e.cfg.DB.Url)
			color.New(color.FgGreen).Fprintf(cmd.OutOrStdout(), "Migrations applied (%s)\n", driver) //nolint:errcheck
			return nil
		},
	}
}
