package commands

import (
	"github.com/spf13/cobra"
)

func ListCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "list [entity]",
		Short: "List all records of an entity",
		Long:  "Lists tenants, owners, hosts, commercial, residential, payments or agreements in file order, or by ID with --sort.",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			sorted, _ := cmd.Flags().GetBool("sort")

			s, err := openSession(cmd, nil)
			if err != nil {
				return err
			}
			t, err := s.table(args[0])
			if err != nil {
				return err
			}
			if sorted {
				t.SortByID()
			}
			return printTable(cmd.OutOrStdout(), t.Records())
		},
	}

	cmd.Flags().Bool("sort", false, "Sort records by the numeric part of their ID")

	return cmd
}
