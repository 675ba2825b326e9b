package codec

import (
	"strings"
	"time"

	"rental-records/internal/model"
)

const personFields = 4

// PersonCodec encodes any record built on model.Person as
// id,fullName,dateOfBirth,contactInfo
type PersonCodec[T any] struct {
	entity string
	wrap   func(model.Person) T
	unwrap func(T) model.Person
}

// NewTenantCodec returns the codec for tenants.txt
func NewTenantCodec() PersonCodec[model.Tenant] {
	return PersonCodec[model.Tenant]{
		entity: "tenant",
		wrap:   func(p model.Person) model.Tenant { return model.Tenant{Person: p} },
		unwrap: func(t model.Tenant) model.Person { return t.Person },
	}
}

// NewOwnerCodec returns the codec for owners.txt
func NewOwnerCodec() PersonCodec[model.Owner] {
	return PersonCodec[model.Owner]{
		entity: "owner",
		wrap:   func(p model.Person) model.Owner { return model.Owner{Person: p} },
		unwrap: func(o model.Owner) model.Person { return o.Person },
	}
}

// NewHostCodec returns the codec for hosts.txt
func NewHostCodec() PersonCodec[model.Host] {
	return PersonCodec[model.Host]{
		entity: "host",
		wrap:   func(p model.Person) model.Host { return model.Host{Person: p} },
		unwrap: func(h model.Host) model.Person { return h.Person },
	}
}

func (c PersonCodec[T]) Encode(item T) (string, error) {
	p := c.unwrap(item)
	if err := checkTexts(c.entity, "id", p.ID, "full name", p.FullName, "contact info", p.ContactInfo); err != nil {
		return "", err
	}
	dob := ""
	if p.HasDateOfBirth() {
		dob = p.DateOfBirth.Format(PersonDateLayout)
	}
	return strings.Join([]string{p.ID, p.FullName, dob, p.ContactInfo}, FieldSep), nil
}

func (c PersonCodec[T]) Decode(line string) (T, error) {
	var zero T
	f, err := split(c.entity, line, FieldSep, personFields)
	if err != nil {
		return zero, err
	}
	id, err := recordKey(c.entity, f[0])
	if err != nil {
		return zero, err
	}
	var dob time.Time
	if strings.TrimSpace(f[2]) != "" {
		if dob, err = parseDate(c.entity, "date of birth", PersonDateLayout, f[2]); err != nil {
			return zero, err
		}
	}
	return c.wrap(model.Person{ID: id, FullName: f[1], DateOfBirth: dob, ContactInfo: f[3]}), nil
}
