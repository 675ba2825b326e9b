// Package records ties the entity repositories together: it loads them in
// dependency order, resolves cross references and answers questions that
// span more than one collection.
package records

import (
	"errors"
	"fmt"
	"log/slog"
	"path/filepath"
	"strings"

	"rental-records/internal/codec"
	"rental-records/internal/linestore"
	"rental-records/internal/model"
	"rental-records/internal/repository"
)

// Default file names inside the data directory
const (
	TenantsFile     = "tenants.txt"
	OwnersFile      = "owners.txt"
	HostsFile       = "hosts.txt"
	CommercialFile  = "commercial_properties.txt"
	ResidentialFile = "residential_properties.txt"
	PaymentsFile    = "payments.txt"
	AgreementsFile  = "rental_agreements.txt"
)

// ID prefixes
const (
	TenantPrefix      = "T"
	OwnerPrefix       = "O"
	HostPrefix        = "H"
	CommercialPrefix  = "CP"
	ResidentialPrefix = "RP"
	PaymentPrefix     = "P"
	AgreementPrefix   = "RA"
)

// ErrUnknownEntity is returned for a collection name that is not recognized
var ErrUnknownEntity = errors.New("unknown entity")

// Options configures a Catalog
type Options struct {
	// CreateMissing creates empty files for collections that have none
	CreateMissing bool
	Logger        *slog.Logger
	Store         *linestore.Store
}

// Catalog holds one repository per entity, all backed by files in one directory
type Catalog struct {
	Dir string

	Tenants     *repository.Repository[model.Tenant]
	Owners      *repository.Repository[model.Owner]
	Hosts       *repository.Repository[model.Host]
	Commercial  *repository.Repository[model.CommercialProperty]
	Residential *repository.Repository[model.ResidentialProperty]
	Payments    *repository.Repository[model.Payment]
	Agreements  *repository.Repository[model.RentalAgreement]

	logger *slog.Logger
}

// New creates a catalog over dir. Nothing is read until LoadAll.
func New(dir string, opts Options) *Catalog {
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}
	store := opts.Store
	if store == nil {
		store = linestore.New()
	}
	c := &Catalog{Dir: dir, logger: logger}
	path := func(name string) string { return filepath.Join(dir, name) }

	c.Tenants = repository.New(repository.Config[model.Tenant]{
		Name: "tenant", Prefix: TenantPrefix, Path: path(TenantsFile),
		Key:   model.Tenant.Key,
		Codec: codec.NewTenantCodec(), CreateMissing: opts.CreateMissing,
	}, store, logger)
	c.Owners = repository.New(repository.Config[model.Owner]{
		Name: "owner", Prefix: OwnerPrefix, Path: path(OwnersFile),
		Key:   model.Owner.Key,
		Codec: codec.NewOwnerCodec(), CreateMissing: opts.CreateMissing,
	}, store, logger)
	c.Hosts = repository.New(repository.Config[model.Host]{
		Name: "host", Prefix: HostPrefix, Path: path(HostsFile),
		Key:   model.Host.Key,
		Codec: codec.NewHostCodec(), CreateMissing: opts.CreateMissing,
	}, store, logger)
	c.Commercial = repository.New(repository.Config[model.CommercialProperty]{
		Name: "commercial property", Prefix: CommercialPrefix, Path: path(CommercialFile),
		Key:   model.CommercialProperty.Key,
		Codec: codec.CommercialCodec{}, CreateMissing: opts.CreateMissing,
	}, store, logger)
	c.Residential = repository.New(repository.Config[model.ResidentialProperty]{
		Name: "residential property", Prefix: ResidentialPrefix, Path: path(ResidentialFile),
		Key:   model.ResidentialProperty.Key,
		Codec: codec.ResidentialCodec{}, CreateMissing: opts.CreateMissing,
	}, store, logger)
	c.Payments = repository.New(repository.Config[model.Payment]{
		Name: "payment", Prefix: PaymentPrefix, Path: path(PaymentsFile),
		Key:           model.Payment.Key,
		Codec:         codec.PaymentCodec{Tenants: c.Tenants},
		CustomerKeys:  func(p model.Payment) []string { return []string{p.Tenant.ID} },
		CreateMissing: opts.CreateMissing,
	}, store, logger)
	c.Agreements = repository.New(repository.Config[model.RentalAgreement]{
		Name: "rental agreement", Prefix: AgreementPrefix, Path: path(AgreementsFile),
		Key: model.RentalAgreement.Key,
		Codec: codec.AgreementCodec{
			Refs:   codec.References{Tenants: c.Tenants, Owners: c.Owners, Hosts: c.Hosts},
			Logger: logger,
		},
		CustomerKeys:  model.RentalAgreement.TenantIDs,
		Clone:         model.RentalAgreement.Clone,
		CreateMissing: opts.CreateMissing,
	}, store, logger)
	return c
}

// LoadAll loads every collection. People and properties are loaded before
// payments and agreements so their references resolve against current data.
func (c *Catalog) LoadAll() ([]repository.LoadReport, error) {
	reports := make([]repository.LoadReport, 0, len(Entities))
	for _, t := range c.Tables() {
		report, err := t.Load()
		if err != nil {
			return reports, fmt.Errorf("failed to load %s: %w", t.Name(), err)
		}
		if len(report.Skipped) > 0 {
			c.logger.Warn("records skipped", "file", report.Path, "loaded", report.Loaded, "skipped", len(report.Skipped))
		}
		reports = append(reports, report)
	}
	return reports, nil
}

// SaveAll writes every collection to its file
func (c *Catalog) SaveAll() error {
	var errs []error
	for _, t := range c.Tables() {
		if err := t.Save(); err != nil {
			errs = append(errs, fmt.Errorf("failed to save %s: %w", t.Name(), err))
		}
	}
	return errors.Join(errs...)
}

// Property finds a commercial or residential property by ID
func (c *Catalog) Property(id string) (model.Property, bool) {
	if p, ok := c.Commercial.Get(id); ok {
		return model.NewCommercial(p), true
	}
	if p, ok := c.Residential.Get(id); ok {
		return model.NewResidential(p), true
	}
	return model.Property{}, false
}

// AgreementsByOwnerName returns agreements whose owner's full name matches,
// ignoring case and surrounding spaces
func (c *Catalog) AgreementsByOwnerName(name string) []model.RentalAgreement {
	name = strings.TrimSpace(name)
	return c.Agreements.Filter(func(a model.RentalAgreement) bool {
		return strings.EqualFold(strings.TrimSpace(a.Owner.FullName), name)
	})
}

// AgreementsByPropertyAddress returns agreements for the property at address,
// ignoring case and surrounding spaces
func (c *Catalog) AgreementsByPropertyAddress(address string) []model.RentalAgreement {
	address = strings.TrimSpace(address)
	return c.Agreements.Filter(func(a model.RentalAgreement) bool {
		return strings.EqualFold(strings.TrimSpace(a.Property.Base().Address), address)
	})
}

// AgreementsByStatus returns agreements in the given state
func (c *Catalog) AgreementsByStatus(status model.AgreementStatus) []model.RentalAgreement {
	return c.Agreements.Filter(func(a model.RentalAgreement) bool {
		return a.Status == status
	})
}
