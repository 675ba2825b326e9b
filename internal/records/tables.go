package records

import (
	"fmt"
	"strings"

	"rental-records/internal/model"
	"rental-records/internal/repository"
)

// Entity names used on the command line, in load order
const (
	EntityTenants     = "tenants"
	EntityOwners      = "owners"
	EntityHosts       = "hosts"
	EntityCommercial  = "commercial"
	EntityResidential = "residential"
	EntityPayments    = "payments"
	EntityAgreements  = "agreements"
)

// Entities lists every entity name in load order
var Entities = []string{
	EntityTenants, EntityOwners, EntityHosts,
	EntityCommercial, EntityResidential,
	EntityPayments, EntityAgreements,
}

// Table is the type-erased view of a repository
type Table interface {
	Name() string
	Prefix() string
	Path() string
	Len() int
	IDs() []string
	Has(id string) bool
	Record(id string) (any, bool)
	Records() []any
	Remove(id string) error
	SortByID()
	ValidateID(id string) bool
	Load() (repository.LoadReport, error)
	Save() error
	SaveBackup(path string) error
	Encode() ([]string, error)
}

type table[T any] struct {
	*repository.Repository[T]
}

func (t table[T]) Record(id string) (any, bool) {
	v, ok := t.Get(id)
	if !ok {
		return nil, false
	}
	return v, true
}

func (t table[T]) Records() []any {
	all := t.All()
	out := make([]any, len(all))
	for i, v := range all {
		out[i] = v
	}
	return out
}

// Tables returns every repository in load order
func (c *Catalog) Tables() []Table {
	return []Table{
		table[model.Tenant]{c.Tenants},
		table[model.Owner]{c.Owners},
		table[model.Host]{c.Hosts},
		table[model.CommercialProperty]{c.Commercial},
		table[model.ResidentialProperty]{c.Residential},
		table[model.Payment]{c.Payments},
		table[model.RentalAgreement]{c.Agreements},
	}
}

// Table returns the repository for an entity name such as "tenants"
func (c *Catalog) Table(entity string) (Table, error) {
	tables := c.Tables()
	for i, name := range Entities {
		if strings.EqualFold(name, strings.TrimSpace(entity)) {
			return tables[i], nil
		}
	}
	return nil, fmt.Errorf("%w %q, expected one of %s", ErrUnknownEntity, entity, strings.Join(Entities, ", "))
}
