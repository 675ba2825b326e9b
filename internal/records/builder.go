package records

import (
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"

	"rental-records/internal/codec"
	"rental-records/internal/model"
	"rental-records/internal/prompt"
)

// Builder constructs new records from user input. Invalid answers are
// reported through the provider and the question is asked again; only input
// errors (such as end of input) are returned.
type Builder struct {
	Catalog *Catalog
	In      prompt.Provider
	// Now supplies the contract date of new agreements
	Now func() time.Time
	// Keep is the ID of an existing record being replaced. When set the ID
	// is not asked for and an agreement keeps its contract date.
	Keep string
}

// NewBuilder creates a builder that dates agreements with the current day
func NewBuilder(c *Catalog, in prompt.Provider) *Builder {
	return &Builder{Catalog: c, In: in, Now: time.Now}
}

func ask[T any](b *Builder, label string, parse func(string) (T, error)) (T, error) {
	for {
		answer, err := b.In.Ask(label)
		if err != nil {
			var zero T
			return zero, err
		}
		v, err := parse(answer)
		if err == nil {
			return v, nil
		}
		b.In.Say("Invalid value: " + err.Error())
	}
}

// id returns Keep, or asks for a new ID
func (b *Builder) id(label string, parse func(string) (string, error)) (string, error) {
	if b.Keep != "" {
		return b.Keep, nil
	}
	return ask(b, label, parse)
}

type idSet interface {
	Name() string
	Prefix() string
	Has(id string) bool
	ValidateID(id string) bool
}

func newID(set idSet) func(string) (string, error) {
	return func(s string) (string, error) {
		if !set.ValidateID(s) {
			return "", fmt.Errorf("%s ID must be %s followed by digits", set.Name(), set.Prefix())
		}
		if set.Has(s) {
			return "", fmt.Errorf("%s %s already exists", set.Name(), s)
		}
		return s, nil
	}
}

func text(s string) (string, error) {
	if strings.ContainsAny(s, codec.FieldSep+codec.SubSep) {
		return "", errors.New("commas and semicolons are not allowed")
	}
	return s, nil
}

func optionalDate(s string) (time.Time, error) {
	if s == "" {
		return time.Time{}, nil
	}
	return date(s)
}

func date(s string) (time.Time, error) {
	t, err := time.Parse(codec.PersonDateLayout, s)
	if err != nil {
		return time.Time{}, errors.New("date must be dd-MM-yyyy")
	}
	return t, nil
}

func finite(s string) (float64, bool) {
	v, err := strconv.ParseFloat(s, 64)
	return v, err == nil && !math.IsNaN(v) && !math.IsInf(v, 0)
}

func nonNegativeFloat(s string) (float64, error) {
	v, ok := finite(s)
	if !ok || v < 0 {
		return 0, errors.New("expected a number of zero or more")
	}
	return v, nil
}

func positiveFloat(s string) (float64, error) {
	v, ok := finite(s)
	if !ok || v <= 0 {
		return 0, errors.New("expected a number greater than zero")
	}
	return v, nil
}

func nonNegativeInt(s string) (int, error) {
	v, err := strconv.Atoi(s)
	if err != nil || v < 0 {
		return 0, errors.New("expected a whole number of zero or more")
	}
	return v, nil
}

func positiveInt(s string) (int, error) {
	v, err := strconv.Atoi(s)
	if err != nil || v <= 0 {
		return 0, errors.New("expected a whole number greater than zero")
	}
	return v, nil
}

func yesNo(s string) (bool, error) {
	switch strings.ToLower(s) {
	case "y", "yes", "true":
		return true, nil
	case "n", "no", "false":
		return false, nil
	}
	return false, errors.New("expected yes or no")
}

func enum[T ~string](parse func(string) (T, error)) func(string) (T, error) {
	return func(s string) (T, error) {
		return parse(model.Normalize(s))
	}
}

func idList(s string) []string {
	return strings.Fields(strings.NewReplacer(",", " ", ";", " ").Replace(s))
}

func (b *Builder) person(set idSet) (model.Person, error) {
	var (
		p   model.Person
		err error
	)
	if p.ID, err = b.id("ID", newID(set)); err != nil {
		return p, err
	}
	if p.FullName, err = ask(b, "Full name", text); err != nil {
		return p, err
	}
	if p.DateOfBirth, err = ask(b, "Date of birth (dd-MM-yyyy, blank if unknown)", optionalDate); err != nil {
		return p, err
	}
	if p.ContactInfo, err = ask(b, "Contact info", text); err != nil {
		return p, err
	}
	return p, nil
}

// Tenant asks for a new tenant
func (b *Builder) Tenant() (model.Tenant, error) {
	p, err := b.person(b.Catalog.Tenants)
	return model.Tenant{Person: p}, err
}

// Owner asks for a new owner
func (b *Builder) Owner() (model.Owner, error) {
	p, err := b.person(b.Catalog.Owners)
	return model.Owner{Person: p}, err
}

// Host asks for a new host
func (b *Builder) Host() (model.Host, error) {
	p, err := b.person(b.Catalog.Hosts)
	return model.Host{Person: p}, err
}

func (b *Builder) propertyBase(set idSet) (model.PropertyBase, error) {
	var (
		p   model.PropertyBase
		err error
	)
	if p.ID, err = b.id("Property ID", func(s string) (string, error) {
		if _, taken := b.Catalog.Property(s); taken {
			return "", fmt.Errorf("property %s already exists", s)
		}
		return newID(set)(s)
	}); err != nil {
		return p, err
	}
	if p.Address, err = ask(b, "Address", text); err != nil {
		return p, err
	}
	if p.Pricing, err = ask(b, "Pricing", nonNegativeFloat); err != nil {
		return p, err
	}
	if p.Status, err = ask(b, "Status (AVAILABLE, RENTED, UNDER_MAINTENANCE)", enum(model.ParsePropertyStatus)); err != nil {
		return p, err
	}
	return p, nil
}

// Commercial asks for a new commercial property
func (b *Builder) Commercial() (model.CommercialProperty, error) {
	var (
		p   model.CommercialProperty
		err error
	)
	if p.PropertyBase, err = b.propertyBase(b.Catalog.Commercial); err != nil {
		return p, err
	}
	if p.BusinessType, err = ask(b, "Business type", text); err != nil {
		return p, err
	}
	if p.ParkingSpaces, err = ask(b, "Parking spaces", nonNegativeInt); err != nil {
		return p, err
	}
	if p.SquareFootage, err = ask(b, "Square footage", nonNegativeFloat); err != nil {
		return p, err
	}
	return p, nil
}

// Residential asks for a new residential property
func (b *Builder) Residential() (model.ResidentialProperty, error) {
	var (
		p   model.ResidentialProperty
		err error
	)
	if p.PropertyBase, err = b.propertyBase(b.Catalog.Residential); err != nil {
		return p, err
	}
	if p.NumBedrooms, err = ask(b, "Bedrooms", nonNegativeInt); err != nil {
		return p, err
	}
	if p.GardenAvailability, err = ask(b, "Garden available (y/n)", yesNo); err != nil {
		return p, err
	}
	if p.PetFriendliness, err = ask(b, "Pet friendly (y/n)", yesNo); err != nil {
		return p, err
	}
	return p, nil
}

func (b *Builder) tenant(label string) (model.Tenant, error) {
	return ask(b, label, func(s string) (model.Tenant, error) {
		t, ok := b.Catalog.Tenants.Get(s)
		if !ok {
			return t, fmt.Errorf("tenant %q not found", s)
		}
		return t, nil
	})
}

// Payment asks for a new payment by an existing tenant
func (b *Builder) Payment() (model.Payment, error) {
	var (
		p   model.Payment
		err error
	)
	if p.ID, err = b.id("Payment ID", newID(b.Catalog.Payments)); err != nil {
		return p, err
	}
	if p.Tenant, err = b.tenant("Tenant ID"); err != nil {
		return p, err
	}
	if p.Amount, err = ask(b, "Amount", positiveFloat); err != nil {
		return p, err
	}
	if p.Date, err = ask(b, "Date (dd-MM-yyyy)", date); err != nil {
		return p, err
	}
	if p.Method, err = ask(b, "Payment method", text); err != nil {
		return p, err
	}
	return p, nil
}

// Agreement asks for a rental agreement between existing records. The
// contract date of a new agreement is today.
func (b *Builder) Agreement() (model.RentalAgreement, error) {
	var (
		a   model.RentalAgreement
		err error
	)
	c := b.Catalog
	if a.ID, err = b.id("Contract ID", newID(c.Agreements)); err != nil {
		return a, err
	}
	if old, ok := c.Agreements.Get(b.Keep); ok {
		a.ContractDate = old.ContractDate
	} else {
		now := b.Now()
		a.ContractDate = time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
	}

	if a.Owner, err = ask(b, "Owner ID", func(s string) (model.Owner, error) {
		o, ok := c.Owners.Get(s)
		if !ok {
			return o, fmt.Errorf("owner %q not found", s)
		}
		return o, nil
	}); err != nil {
		return a, err
	}
	if a.MainTenant, err = b.tenant("Main tenant ID"); err != nil {
		return a, err
	}
	if a.SubTenants, err = ask(b, "Sub-tenant IDs (space separated, blank for none)", func(s string) ([]model.Tenant, error) {
		var out []model.Tenant
		for _, id := range idList(s) {
			if id == a.MainTenant.ID {
				return nil, fmt.Errorf("%s is already the main tenant", id)
			}
			t, ok := c.Tenants.Get(id)
			if !ok {
				return nil, fmt.Errorf("tenant %q not found", id)
			}
			out = append(out, t)
		}
		return out, nil
	}); err != nil {
		return a, err
	}
	if a.Property, err = ask(b, "Property ID", func(s string) (model.Property, error) {
		p, ok := c.Property(s)
		if !ok {
			return p, fmt.Errorf("property %q not found", s)
		}
		return p, nil
	}); err != nil {
		return a, err
	}
	if a.Hosts, err = ask(b, "Host IDs (space separated, blank for none)", func(s string) ([]model.Host, error) {
		var out []model.Host
		for _, id := range idList(s) {
			h, ok := c.Hosts.Get(id)
			if !ok {
				return nil, fmt.Errorf("host %q not found", id)
			}
			out = append(out, h)
		}
		return out, nil
	}); err != nil {
		return a, err
	}
	if a.Cycle, err = ask(b, "Rental cycle (DAILY, WEEKLY, FORTNIGHTLY, MONTHLY, YEARLY)", enum(model.ParseRentalCycle)); err != nil {
		return a, err
	}
	if a.Duration, err = ask(b, "Duration (cycles)", positiveInt); err != nil {
		return a, err
	}
	if a.Terms, err = ask(b, "Contract terms", text); err != nil {
		return a, err
	}
	if a.RentalFee, err = ask(b, "Rental fee", positiveFloat); err != nil {
		return a, err
	}
	if a.Status, err = ask(b, "Status (NEW, ACTIVE, COMPLETED)", enum(model.ParseAgreementStatus)); err != nil {
		return a, err
	}
	return a, nil
}
