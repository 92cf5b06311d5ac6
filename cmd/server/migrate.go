package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/mmynk/healthtracker/internal/storage/sqlite"
)

func newMigrateCmd(st *cliState) *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "Create or update the database schema and exit",
		Long: `Create the SQLite database at DB_PATH if needed and apply the schema.

Migrations are idempotent; running this against an existing database only
adds what is missing. The server applies them on startup as well.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			store, err := sqlite.New(cmd.Context(), st.cfg.DBPath)
			if err != nil {
				return fmt.Errorf("failed to migrate %s: %w", st.cfg.DBPath, err)
			}
			st.logger.Info("Schema up to date", "database", st.cfg.DBPath)
			return store.Close()
		},
	}
}
