package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"rental-records/internal/mirror"
)

func ExportDBCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "export-db",
		Short: "Copy all records into a SQL database",
		Long:  "Creates the mirror tables if needed and replaces their contents with the current records. Defaults come from DATABASE_DRIVER and DATABASE_URL.",
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := openSession(cmd, nil)
			if err != nil {
				return err
			}

			driver := s.cfg.Database.Driver
			if cmd.Flags().Changed("driver") {
				driver, _ = cmd.Flags().GetString("driver")
			}
			dsn := s.cfg.Database.URL
			if cmd.Flags().Changed("dsn") {
				dsn, _ = cmd.Flags().GetString("dsn")
			}

			db, err := mirror.Open(driver, dsn)
			if err != nil {
				return err
			}
			if sqlDB, err := db.DB(); err == nil {
				defer sqlDB.Close()
			}

			counts, err := mirror.Export(cmd.Context(), db, mirror.FromCatalog(s.catalog))
			if err != nil {
				return fmt.Errorf("failed to export records: %w", err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Exported %d people, %d properties, %d payments, %d agreements (%d parties)\n",
				counts.People, counts.Properties, counts.Payments, counts.Agreements, counts.Parties)
			return nil
		},
	}

	cmd.Flags().String("driver", "", "Database driver (sqlite or postgres)")
	cmd.Flags().String("dsn", "", "Database connection string or sqlite file")

	return cmd
}
