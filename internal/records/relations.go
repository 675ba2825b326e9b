package records

import "rental-records/internal/model"

// Relations between people and properties are not stored on the people
// themselves. They are derived from the agreements each time they are asked for.

// TenantAgreements returns the agreements where the tenant is the main tenant
// or a sub-tenant
func (c *Catalog) TenantAgreements(tenantID string) []model.RentalAgreement {
	return c.Agreements.ByCustomerID(tenantID)
}

// TenantPayments returns the payments made by the tenant
func (c *Catalog) TenantPayments(tenantID string) []model.Payment {
	return c.Payments.ByCustomerID(tenantID)
}

// OwnerProperties returns the distinct properties under the owner's agreements
func (c *Catalog) OwnerProperties(ownerID string) []model.Property {
	return distinct(c.agreements(func(a model.RentalAgreement) bool { return a.Owner.ID == ownerID }),
		func(a model.RentalAgreement) []model.Property { return []model.Property{a.Property} },
		model.Property.Key)
}

// OwnerHosts returns the distinct hosts managing the owner's agreements
func (c *Catalog) OwnerHosts(ownerID string) []model.Host {
	return distinct(c.agreements(func(a model.RentalAgreement) bool { return a.Owner.ID == ownerID }),
		func(a model.RentalAgreement) []model.Host { return a.Hosts },
		model.Host.Key)
}

// HostProperties returns the distinct properties the host manages
func (c *Catalog) HostProperties(hostID string) []model.Property {
	return distinct(c.agreements(hasHost(hostID)),
		func(a model.RentalAgreement) []model.Property { return []model.Property{a.Property} },
		model.Property.Key)
}

// HostOwners returns the distinct owners the host cooperates with
func (c *Catalog) HostOwners(hostID string) []model.Owner {
	return distinct(c.agreements(hasHost(hostID)),
		func(a model.RentalAgreement) []model.Owner { return []model.Owner{a.Owner} },
		model.Owner.Key)
}

func (c *Catalog) agreements(keep func(model.RentalAgreement) bool) []model.RentalAgreement {
	return c.Agreements.Filter(keep)
}

func hasHost(hostID string) func(model.RentalAgreement) bool {
	return func(a model.RentalAgreement) bool {
		for _, h := range a.Hosts {
			if h.ID == hostID {
				return true
			}
		}
		return false
	}
}

// distinct collects the values produced by each agreement, keeping the first
// occurrence of every key
func distinct[T any](agreements []model.RentalAgreement, values func(model.RentalAgreement) []T, key func(T) string) []T {
	var out []T
	seen := make(map[string]struct{})
	for _, a := range agreements {
		for _, v := range values(a) {
			k := key(v)
			if _, ok := seen[k]; ok {
				continue
			}
			seen[k] = struct{}{}
			out = append(out, v)
		}
	}
	return out
}
