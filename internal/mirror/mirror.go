// Package mirror copies the record files into a relational database so they
// can be queried with SQL. The text files stay authoritative; every export
// replaces the database contents.
package mirror

import (
	"context"
	"fmt"
	"time"

	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"rental-records/internal/model"
	"rental-records/internal/records"
)

const batchSize = 100

// Open connects to a sqlite file or a postgres DSN
func Open(driver, dsn string) (*gorm.DB, error) {
	if dsn == "" {
		return nil, fmt.Errorf("database DSN not set")
	}
	var dialector gorm.Dialector
	switch driver {
	case "sqlite", "":
		dialector = sqlite.Open(dsn)
	case "postgres", "postgresql":
		dialector = postgres.Open(dsn)
	default:
		return nil, fmt.Errorf("unsupported database driver %q", driver)
	}
	db, err := gorm.Open(dialector, &gorm.Config{})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to %s database: %v", driver, err)
	}
	return db, nil
}

// Snapshot is the content of every collection at one point in time
type Snapshot struct {
	// Source names where the records came from, usually the data directory
	Source string

	Tenants     []model.Tenant
	Owners      []model.Owner
	Hosts       []model.Host
	Commercial  []model.CommercialProperty
	Residential []model.ResidentialProperty
	Payments    []model.Payment
	Agreements  []model.RentalAgreement
}

// FromCatalog takes a snapshot of every loaded collection
func FromCatalog(c *records.Catalog) Snapshot {
	return Snapshot{
		Source:      c.Dir,
		Tenants:     c.Tenants.All(),
		Owners:      c.Owners.All(),
		Hosts:       c.Hosts.All(),
		Commercial:  c.Commercial.All(),
		Residential: c.Residential.All(),
		Payments:    c.Payments.All(),
		Agreements:  c.Agreements.All(),
	}
}

// Counts reports how many rows were written per table
type Counts struct {
	People     int
	Properties int
	Payments   int
	Agreements int
	Parties    int
}

// Export creates missing tables and replaces their contents with snap inside
// one transaction
func Export(ctx context.Context, db *gorm.DB, snap Snapshot) (Counts, error) {
	rows := toRows(snap)
	counts := Counts{
		People:     len(rows.people),
		Properties: len(rows.properties),
		Payments:   len(rows.payments),
		Agreements: len(rows.agreements),
		Parties:    len(rows.parties),
	}

	err := db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.AutoMigrate(append(Models(), &ExportRecord{})...); err != nil {
			return fmt.Errorf("failed to migrate mirror tables: %v", err)
		}
		all := tx.Session(&gorm.Session{AllowGlobalUpdate: true})
		for _, m := range Models() {
			if err := all.Delete(m).Error; err != nil {
				return fmt.Errorf("failed to clear %T: %v", m, err)
			}
		}
		if err := insert(tx, rows.people); err != nil {
			return err
		}
		if err := insert(tx, rows.properties); err != nil {
			return err
		}
		if err := insert(tx, rows.payments); err != nil {
			return err
		}
		if err := insert(tx, rows.agreements); err != nil {
			return err
		}
		if err := insert(tx, rows.parties); err != nil {
			return err
		}
		record := ExportRecord{
			Source:     snap.Source,
			People:     counts.People,
			Properties: counts.Properties,
			Payments:   counts.Payments,
			Agreements: counts.Agreements,
			Parties:    counts.Parties,
			ExportedAt: time.Now().UTC(),
		}
		if err := tx.Create(&record).Error; err != nil {
			return fmt.Errorf("failed to record export: %v", err)
		}
		return nil
	})
	if err != nil {
		return Counts{}, err
	}
	return counts, nil
}

// History returns past exports, newest first. A database that was never
// exported to has no history.
func History(ctx context.Context, db *gorm.DB) ([]ExportRecord, error) {
	db = db.WithContext(ctx)
	if !db.Migrator().HasTable(&ExportRecord{}) {
		return nil, nil
	}
	var records []ExportRecord
	if err := db.Order("exported_at DESC, id DESC").Find(&records).Error; err != nil {
		return nil, fmt.Errorf("failed to get export history: %v", err)
	}
	return records, nil
}

func insert[T any](tx *gorm.DB, rows []T) error {
	if len(rows) == 0 {
		return nil
	}
	if err := tx.CreateInBatches(&rows, batchSize).Error; err != nil {
		var zero T
		return fmt.Errorf("failed to insert %T rows: %v", zero, err)
	}
	return nil
}

type rowSet struct {
	people     []Person
	properties []Property
	payments   []Payment
	agreements []RentalAgreement
	parties    []AgreementParty
}

func personRow(p model.Person, role string) Person {
	row := Person{ID: p.ID, Role: role, FullName: p.FullName, ContactInfo: p.ContactInfo}
	if p.HasDateOfBirth() {
		dob := p.DateOfBirth
		row.DateOfBirth = &dob
	}
	return row
}

func propertyRow(p model.Property) Property {
	b := p.Base()
	row := Property{
		ID:      b.ID,
		Kind:    string(p.Kind),
		Address: b.Address,
		Pricing: b.Pricing,
		Status:  string(b.Status),
	}
	switch p.Kind {
	case model.KindCommercial:
		row.BusinessType = p.Commercial.BusinessType
		row.ParkingSpaces = p.Commercial.ParkingSpaces
		row.SquareFootage = p.Commercial.SquareFootage
	case model.KindResidential:
		row.NumBedrooms = p.Residential.NumBedrooms
		row.GardenAvailability = p.Residential.GardenAvailability
		row.PetFriendliness = p.Residential.PetFriendliness
	}
	return row
}

func toRows(snap Snapshot) rowSet {
	var rs rowSet
	for _, t := range snap.Tenants {
		rs.people = append(rs.people, personRow(t.Person, RoleTenant))
	}
	for _, o := range snap.Owners {
		rs.people = append(rs.people, personRow(o.Person, RoleOwner))
	}
	for _, h := range snap.Hosts {
		rs.people = append(rs.people, personRow(h.Person, RoleHost))
	}

	seen := make(map[string]struct{})
	addProperty := func(p model.Property) {
		if _, ok := seen[p.Key()]; ok {
			return
		}
		seen[p.Key()] = struct{}{}
		rs.properties = append(rs.properties, propertyRow(p))
	}
	for _, p := range snap.Commercial {
		addProperty(model.NewCommercial(p))
	}
	for _, p := range snap.Residential {
		addProperty(model.NewResidential(p))
	}

	for _, p := range snap.Payments {
		rs.payments = append(rs.payments, Payment{
			ID:       p.ID,
			TenantID: p.Tenant.ID,
			Amount:   p.Amount,
			Date:     p.Date,
			Method:   p.Method,
		})
	}

	for _, a := range snap.Agreements {
		// agreements carry their own copy of the property, which may no
		// longer be in the property files
		addProperty(a.Property)
		rs.agreements = append(rs.agreements, RentalAgreement{
			ID:           a.ID,
			ContractDate: a.ContractDate,
			OwnerID:      a.Owner.ID,
			MainTenantID: a.MainTenant.ID,
			PropertyID:   a.Property.Key(),
			Cycle:        string(a.Cycle),
			Duration:     a.Duration,
			Terms:        a.Terms,
			RentalFee:    a.RentalFee,
			Status:       string(a.Status),
		})
		parties := make(map[AgreementParty]struct{})
		addParty := func(id, role string, pos int) {
			key := AgreementParty{AgreementID: a.ID, PersonID: id, Role: role}
			if _, ok := parties[key]; ok {
				return
			}
			parties[key] = struct{}{}
			key.Position = pos
			rs.parties = append(rs.parties, key)
		}
		for i, t := range a.SubTenants {
			addParty(t.ID, RoleSubTenant, i)
		}
		for i, h := range a.Hosts {
			addParty(h.ID, RoleHost, i)
		}
	}
	return rs
}
