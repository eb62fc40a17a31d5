package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/fysikteknologsektionen/ftek-login/config"
	"github.com/fysikteknologsektionen/ftek-login/database"
)

func newMigrateCmd() *cobra.Command {
	var status bool

	cmd := &cobra.Command{
		Use:   "migrate",
		Short: "Apply pending database migrations",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load()
			if err != nil {
				return err
			}
			logger, err := newLogger(cfg.LogLevel, cfg.LogFormat)
			if err != nil {
				return err
			}

			db, err := database.OpenDB(cfg.DBPath)
			if err != nil {
				return err
			}
			defer db.Close()

			out := cmd.OutOrStdout()
			if status {
				pending, err := database.PendingMigrations(db)
				if err != nil {
					return err
				}
				fmt.Fprintf(out, "%d pending migrations\n", len(pending))
				for _, m := range pending {
					fmt.Fprintf(out, "  %s\n", m.Filename)
				}
				return nil
			}

			applied, err := database.RunMigrations(db, logger)
			if err != nil {
				return err
			}
			fmt.Fprintf(out, "applied %d migrations\n", len(applied))
			return nil
		},
	}

	cmd.Flags().BoolVar(&status, "status", false, "list pending migrations without applying them")
	return cmd
}
