package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"rental-records/internal/config"
	"rental-records/internal/records"
)

func ValidateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "validate",
		Short: "Check every record file for lines that cannot be loaded",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, logger, err := loadConfig(cmd)
			if err != nil {
				return err
			}
			dir, err := config.CheckDataPath(cfg.DataDir)
			if err != nil {
				return err
			}
			catalog := records.New(dir, records.Options{Logger: logger})
			reports, err := catalog.LoadAll()
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			invalid := 0
			for _, r := range reports {
				switch {
				case r.Missing:
					fmt.Fprintf(out, "%s: missing\n", r.Path)
				case len(r.Skipped) == 0:
					fmt.Fprintf(out, "%s: %d records OK\n", r.Path, r.Loaded)
				default:
					fmt.Fprintf(out, "%s: %d records, %d invalid\n", r.Path, r.Loaded, len(r.Skipped))
					for _, le := range r.Skipped {
						fmt.Fprintf(out, "  line %d: %v\n", le.Line, le.Err)
					}
				}
				invalid += len(r.Skipped)
			}
			if invalid > 0 {
				return fmt.Errorf("%d invalid records", invalid)
			}
			return nil
		},
	}
}
