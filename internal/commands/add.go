package commands

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"rental-records/internal/prompt"
	"rental-records/internal/records"
	"rental-records/internal/repository"
)

func AddCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "add [entity]",
		Short: "Add a record, reading its fields from standard input",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := openSession(cmd, nil)
			if err != nil {
				return err
			}
			t, err := s.table(args[0])
			if err != nil {
				return err
			}

			in := prompt.NewScanner(cmd.InOrStdin(), cmd.OutOrStdout())
			id, err := build(records.NewBuilder(s.catalog, in), args[0], false)
			if err != nil {
				return fmt.Errorf("failed to read %s: %w", t.Name(), err)
			}
			if err := t.Save(); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Added %s %s\n", t.Name(), id)
			return nil
		},
	}
}

// build asks for a record of the given entity and stores it in the catalog.
// With update set the record replaces the one named by the builder's Keep ID
// and its file is rewritten.
func build(b *records.Builder, entity string, update bool) (string, error) {
	c := b.Catalog
	switch strings.ToLower(strings.TrimSpace(entity)) {
	case records.EntityTenants:
		v, err := b.Tenant()
		return store(c.Tenants, v, err, update)
	case records.EntityOwners:
		v, err := b.Owner()
		return store(c.Owners, v, err, update)
	case records.EntityHosts:
		v, err := b.Host()
		return store(c.Hosts, v, err, update)
	case records.EntityCommercial:
		v, err := b.Commercial()
		return store(c.Commercial, v, err, update)
	case records.EntityResidential:
		v, err := b.Residential()
		return store(c.Residential, v, err, update)
	case records.EntityPayments:
		v, err := b.Payment()
		return store(c.Payments, v, err, update)
	case records.EntityAgreements:
		v, err := b.Agreement()
		return store(c.Agreements, v, err, update)
	}
	return "", fmt.Errorf("%w %q", records.ErrUnknownEntity, entity)
}

func store[T any](r *repository.Repository[T], item T, err error, update bool) (string, error) {
	if err != nil {
		return "", err
	}
	if update {
		return r.Key(item), r.Update(item)
	}
	return r.Key(item), r.Add(item)
}
