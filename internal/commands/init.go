package commands

import (
	"fmt"

	"github.com/spf13/cobra"
)

func InitCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "init",
		Short: "Create empty record files in the data directory",
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := openSession(cmd, boolPtr(true))
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			for _, t := range s.catalog.Tables() {
				fmt.Fprintf(out, "%-28s %d records\n", t.Path(), t.Len())
			}
			return nil
		},
	}
}
