package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"rental-records/internal/prompt"
	"rental-records/internal/records"
)

func UpdateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "update [entity] [id]",
		Short: "Replace a record, reading its new fields from standard input",
		Long:  "Asks for every field of the record again, keeping its ID, and rewrites the entity's file. An agreement keeps its contract date.",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := openSession(cmd, nil)
			if err != nil {
				return err
			}
			t, err := s.table(args[0])
			if err != nil {
				return err
			}
			if !t.Has(args[1]) {
				return fmt.Errorf("%s %s not found", t.Name(), args[1])
			}

			in := prompt.NewScanner(cmd.InOrStdin(), cmd.OutOrStdout())
			b := records.NewBuilder(s.catalog, in)
			b.Keep = args[1]
			if _, err := build(b, args[0], true); err != nil {
				return fmt.Errorf("failed to update %s %s: %w", t.Name(), args[1], err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Updated %s %s\n", t.Name(), args[1])
			return nil
		},
	}
}
