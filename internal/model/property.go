package model

import "fmt"

// PropertyKind discriminates the variants of Property. The values double as
// the type tag written in front of an embedded property record.
type PropertyKind string

const (
	KindCommercial  PropertyKind = "CommercialProperty"
	KindResidential PropertyKind = "ResidentialProperty"
)

// ParsePropertyKind converts a discriminator literal into a PropertyKind
func ParsePropertyKind(s string) (PropertyKind, error) {
	switch PropertyKind(s) {
	case KindCommercial, KindResidential:
		return PropertyKind(s), nil
	}
	return "", fmt.Errorf("unknown property kind %q", s)
}

// PropertyBase holds the fields shared by every property variant
type PropertyBase struct {
	ID      string
	Address string
	Pricing float64
	Status  PropertyStatus
}

// CommercialProperty represents a property rented to a business
type CommercialProperty struct {
	PropertyBase
	BusinessType  string
	ParkingSpaces int
	SquareFootage float64
}

// Key returns the identity of the property
func (p CommercialProperty) Key() string {
	return p.ID
}

// ResidentialProperty represents a property rented as a home
type ResidentialProperty struct {
	PropertyBase
	NumBedrooms        int
	GardenAvailability bool
	PetFriendliness    bool
}

// Key returns the identity of the property
func (p ResidentialProperty) Key() string {
	return p.ID
}

// Property is a tagged union over the property variants. Exactly one of
// Commercial or Residential is meaningful, selected by Kind.
type Property struct {
	Kind        PropertyKind
	Commercial  CommercialProperty
	Residential ResidentialProperty
}

// NewCommercial wraps a commercial property
func NewCommercial(p CommercialProperty) Property {
	return Property{Kind: KindCommercial, Commercial: p}
}

// NewResidential wraps a residential property
func NewResidential(p ResidentialProperty) Property {
	return Property{Kind: KindResidential, Residential: p}
}

// Base returns the shared fields of the selected variant
func (p Property) Base() PropertyBase {
	switch p.Kind {
	case KindCommercial:
		return p.Commercial.PropertyBase
	case KindResidential:
		return p.Residential.PropertyBase
	}
	return PropertyBase{}
}

// Key returns the identity of the selected variant
func (p Property) Key() string {
	return p.Base().ID
}

// IsZero reports whether no variant is selected
func (p Property) IsZero() bool {
	return p.Kind == ""
}
