package commands

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"rental-records/internal/mirror"
)

func HistoryCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "history",
		Short: "Show database export history",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, _, err := loadConfig(cmd)
			if err != nil {
				return err
			}
			driver, dsn := cfg.Database.Driver, cfg.Database.URL
			if cmd.Flags().Changed("driver") {
				driver, _ = cmd.Flags().GetString("driver")
			}
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

			records, err := mirror.History(cmd.Context(), db)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			if len(records) == 0 {
				fmt.Fprintln(out, "No exports have been made yet.")
				return nil
			}

			fmt.Fprintf(out, "%-24s  %-30s  %7s  %10s  %8s  %10s\n", "Exported At", "Source", "People", "Properties", "Payments", "Agreements")
			for _, r := range records {
				fmt.Fprintf(out, "%-24s  %-30s  %7d  %10d  %8d  %10d\n",
					r.ExportedAt.Format(time.RFC3339), r.Source, r.People, r.Properties, r.Payments, r.Agreements)
			}
			return nil
		},
	}

	cmd.Flags().String("driver", "", "Database driver (sqlite or postgres)")
	cmd.Flags().String("dsn", "", "Database connection string or sqlite file")

	return cmd
}
