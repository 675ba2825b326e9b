package codec

import (
	"fmt"
	"strings"

	"rental-records/internal/model"
)

const propertyFields = 7

func commercialFields(p model.CommercialProperty) ([]string, error) {
	if err := checkTexts("commercial property", "id", p.ID, "address", p.Address, "business type", p.BusinessType); err != nil {
		return nil, err
	}
	return []string{
		p.ID,
		p.Address,
		formatFloat(p.Pricing),
		string(p.Status),
		p.BusinessType,
		fmt.Sprint(p.ParkingSpaces),
		formatFloat(p.SquareFootage),
	}, nil
}

func commercialFromFields(f []string) (model.CommercialProperty, error) {
	const entity = "commercial property"
	var p model.CommercialProperty
	var err error
	if p.ID, err = recordKey(entity, f[0]); err != nil {
		return p, err
	}
	p.Address, p.BusinessType = f[1], f[4]
	if p.Pricing, err = parseFloat(entity, "pricing", f[2]); err != nil {
		return p, err
	}
	if p.Status, err = model.ParsePropertyStatus(f[3]); err != nil {
		return p, malformed(entity, "%v", err)
	}
	if p.ParkingSpaces, err = parseInt(entity, "parking spaces", f[5]); err != nil {
		return p, err
	}
	if p.SquareFootage, err = parseFloat(entity, "square footage", f[6]); err != nil {
		return p, err
	}
	return p, nil
}

func residentialFields(p model.ResidentialProperty) ([]string, error) {
	if err := checkTexts("residential property", "id", p.ID, "address", p.Address); err != nil {
		return nil, err
	}
	return []string{
		p.ID,
		p.Address,
		formatFloat(p.Pricing),
		string(p.Status),
		fmt.Sprint(p.NumBedrooms),
		fmt.Sprint(p.GardenAvailability),
		fmt.Sprint(p.PetFriendliness),
	}, nil
}

func residentialFromFields(f []string) (model.ResidentialProperty, error) {
	const entity = "residential property"
	var p model.ResidentialProperty
	var err error
	if p.ID, err = recordKey(entity, f[0]); err != nil {
		return p, err
	}
	p.Address = f[1]
	if p.Pricing, err = parseFloat(entity, "pricing", f[2]); err != nil {
		return p, err
	}
	if p.Status, err = model.ParsePropertyStatus(f[3]); err != nil {
		return p, malformed(entity, "%v", err)
	}
	if p.NumBedrooms, err = parseInt(entity, "bedrooms", f[4]); err != nil {
		return p, err
	}
	if p.GardenAvailability, err = parseBool(entity, "garden availability", f[5]); err != nil {
		return p, err
	}
	if p.PetFriendliness, err = parseBool(entity, "pet friendliness", f[6]); err != nil {
		return p, err
	}
	return p, nil
}

// CommercialCodec handles commercial_properties.txt
type CommercialCodec struct{}

func (CommercialCodec) Encode(p model.CommercialProperty) (string, error) {
	f, err := commercialFields(p)
	if err != nil {
		return "", err
	}
	return strings.Join(f, FieldSep), nil
}

func (CommercialCodec) Decode(line string) (model.CommercialProperty, error) {
	f, err := split("commercial property", line, FieldSep, propertyFields)
	if err != nil {
		return model.CommercialProperty{}, err
	}
	return commercialFromFields(f)
}

// ResidentialCodec handles residential_properties.txt
type ResidentialCodec struct{}

func (ResidentialCodec) Encode(p model.ResidentialProperty) (string, error) {
	f, err := residentialFields(p)
	if err != nil {
		return "", err
	}
	return strings.Join(f, FieldSep), nil
}

func (ResidentialCodec) Decode(line string) (model.ResidentialProperty, error) {
	f, err := split("residential property", line, FieldSep, propertyFields)
	if err != nil {
		return model.ResidentialProperty{}, err
	}
	return residentialFromFields(f)
}

// EncodeProperty writes a property as a SubSep-joined record prefixed with
// its kind, e.g. "CommercialProperty;CP1;1 Main St;2500;AVAILABLE;Retail;4;120.5"
func EncodeProperty(p model.Property) (string, error) {
	var (
		f   []string
		err error
	)
	switch p.Kind {
	case model.KindCommercial:
		f, err = commercialFields(p.Commercial)
	case model.KindResidential:
		f, err = residentialFields(p.Residential)
	default:
		return "", fmt.Errorf("%w: property kind %q", ErrUnknownVariant, p.Kind)
	}
	if err != nil {
		return "", err
	}
	return string(p.Kind) + SubSep + strings.Join(f, SubSep), nil
}

// DecodeProperty parses a record written by EncodeProperty
func DecodeProperty(s string) (model.Property, error) {
	tag, rest, _ := strings.Cut(s, SubSep)
	kind, err := model.ParsePropertyKind(tag)
	if err != nil {
		return model.Property{}, fmt.Errorf("%w: %v", ErrUnknownVariant, err)
	}
	f, err := split(string(kind), rest, SubSep, propertyFields)
	if err != nil {
		return model.Property{}, err
	}
	switch kind {
	case model.KindCommercial:
		cp, err := commercialFromFields(f)
		if err != nil {
			return model.Property{}, err
		}
		return model.NewCommercial(cp), nil
	default:
		rp, err := residentialFromFields(f)
		if err != nil {
			return model.Property{}, err
		}
		return model.NewResidential(rp), nil
	}
}
