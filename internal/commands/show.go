package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"rental-records/internal/model"
	"rental-records/internal/records"
)

func ShowCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "show [entity] [id]",
		Short: "Show one record and its relations",
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
			rec, ok := t.Record(args[1])
			if !ok {
				return fmt.Errorf("%s %s not found", t.Name(), args[1])
			}
			return printRecord(cmd.OutOrStdout(), rec, relations(s.catalog, rec)...)
		},
	}
}

func relations(c *records.Catalog, rec any) []field {
	switch r := rec.(type) {
	case model.Tenant:
		return []field{
			{"Agreements", ids(c.TenantAgreements(r.ID))},
			{"Payments", ids(c.TenantPayments(r.ID))},
		}
	case model.Owner:
		return []field{
			{"Properties", ids(c.OwnerProperties(r.ID))},
			{"Hosts", ids(c.OwnerHosts(r.ID))},
		}
	case model.Host:
		return []field{
			{"Properties", ids(c.HostProperties(r.ID))},
			{"Owners", ids(c.HostOwners(r.ID))},
		}
	case model.RentalAgreement:
		return []field{{"Address", r.Property.Base().Address}, {"Terms", r.Terms}}
	}
	return nil
}
