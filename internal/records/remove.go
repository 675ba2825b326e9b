package records

import (
	"errors"
	"fmt"
	"strings"

	"rental-records/internal/model"
)

// ErrInUse is returned when removing a record that agreements or payments
// still refer to
var ErrInUse = errors.New("record is still referenced")

// Referrers names the agreements and payments that refer to the record id of
// entity. Properties are embedded in their agreements and never have referrers.
func (c *Catalog) Referrers(entity, id string) []string {
	var agreements []model.RentalAgreement
	var payments []model.Payment
	switch strings.ToLower(strings.TrimSpace(entity)) {
	case EntityTenants:
		agreements = c.TenantAgreements(id)
		payments = c.TenantPayments(id)
	case EntityOwners:
		agreements = c.agreements(func(a model.RentalAgreement) bool { return a.Owner.ID == id })
	case EntityHosts:
		agreements = c.agreements(hasHost(id))
	}

	var out []string
	for _, a := range agreements {
		out = append(out, c.Agreements.Name()+" "+a.ID)
	}
	for _, p := range payments {
		out = append(out, c.Payments.Name()+" "+p.ID)
	}
	return out
}

// Remove deletes the record id of entity and rewrites its file. A tenant,
// owner or host with referrers is refused with ErrInUse unless force is set.
func (c *Catalog) Remove(entity, id string, force bool) error {
	t, err := c.Table(entity)
	if err != nil {
		return err
	}
	if refs := c.Referrers(entity, id); len(refs) > 0 {
		if !force {
			return fmt.Errorf("%s %s: %w by %s", t.Name(), id, ErrInUse, strings.Join(refs, ", "))
		}
		c.logger.Warn("removing referenced record", "entity", t.Name(), "id", id, "referrers", refs)
	}
	return t.Remove(id)
}
