package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"rental-records/internal/model"
)

func AgreementsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "agreements",
		Short: "Search rental agreements",
		Long:  "Lists rental agreements matching every given filter. Owner name and address match ignoring case.",
		RunE: func(cmd *cobra.Command, args []string) error {
			owner, _ := cmd.Flags().GetString("owner")
			address, _ := cmd.Flags().GetString("address")
			status, _ := cmd.Flags().GetString("status")
			tenant, _ := cmd.Flags().GetString("tenant")

			var want model.AgreementStatus
			if status != "" {
				var err error
				if want, err = model.ParseAgreementStatus(model.Normalize(status)); err != nil {
					return err
				}
			}

			s, err := openSession(cmd, nil)
			if err != nil {
				return err
			}
			c := s.catalog

			result := c.Agreements.All()
			if owner != "" {
				result = intersect(result, c.AgreementsByOwnerName(owner))
			}
			if address != "" {
				result = intersect(result, c.AgreementsByPropertyAddress(address))
			}
			if want != "" {
				result = intersect(result, c.AgreementsByStatus(want))
			}
			if tenant != "" {
				result = intersect(result, c.TenantAgreements(tenant))
			}
			return printTable(cmd.OutOrStdout(), asAny(result))
		},
	}

	cmd.Flags().String("owner", "", "Owner full name")
	cmd.Flags().String("address", "", "Property address")
	cmd.Flags().String("status", "", "Agreement status (NEW, ACTIVE, COMPLETED)")
	cmd.Flags().String("tenant", "", "Main or sub-tenant ID")

	return cmd
}

func intersect(all, matched []model.RentalAgreement) []model.RentalAgreement {
	keep := make(map[string]struct{}, len(matched))
	for _, a := range matched {
		keep[a.ID] = struct{}{}
	}
	var out []model.RentalAgreement
	for _, a := range all {
		if _, ok := keep[a.ID]; ok {
			out = append(out, a)
		}
	}
	return out
}

func PaymentsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "payments",
		Short: "List the payments made by a tenant",
		RunE: func(cmd *cobra.Command, args []string) error {
			tenant, _ := cmd.Flags().GetString("tenant")

			s, err := openSession(cmd, nil)
			if err != nil {
				return err
			}
			if !s.catalog.Tenants.Has(tenant) {
				return fmt.Errorf("tenant %s not found", tenant)
			}
			payments := s.catalog.TenantPayments(tenant)
			if err := printTable(cmd.OutOrStdout(), asAny(payments)); err != nil {
				return err
			}
			var total float64
			for _, p := range payments {
				total += p.Amount
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Total: %s\n", money(total))
			return nil
		},
	}

	cmd.Flags().String("tenant", "", "Tenant ID")
	_ = cmd.MarkFlagRequired("tenant")

	return cmd
}
