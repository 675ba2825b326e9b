package commands

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"rental-records/internal/prompt"
)

func RemoveCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "remove [entity] [id]",
		Short: "Remove a record and rewrite its file",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			yes, _ := cmd.Flags().GetBool("yes")
			force, _ := cmd.Flags().GetBool("force")

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
			if refs := s.catalog.Referrers(args[0], args[1]); len(refs) > 0 && !force {
				return fmt.Errorf("%s %s is referenced by %s; remove those first or use --force",
					t.Name(), args[1], strings.Join(refs, ", "))
			}

			if !yes {
				in := prompt.NewScanner(cmd.InOrStdin(), cmd.OutOrStdout())
				ok, err := prompt.Confirm(in, fmt.Sprintf("Remove %s %s?", t.Name(), args[1]))
				if err != nil {
					return err
				}
				if !ok {
					fmt.Fprintln(cmd.OutOrStdout(), "Nothing removed.")
					return nil
				}
			}

			if err := s.catalog.Remove(args[0], args[1], force); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Removed %s %s\n", t.Name(), args[1])
			return nil
		},
	}

	cmd.Flags().BoolP("yes", "y", false, "Do not ask for confirmation")
	cmd.Flags().Bool("force", false, "Remove a tenant, owner or host even if agreements or payments refer to it")

	return cmd
}
