package model

import "time"

// Person holds the fields shared by tenants, owners and hosts
type Person struct {
	ID          string
	FullName    string
	DateOfBirth time.Time // zero when unknown
	ContactInfo string
}

// Key returns the identity of the person
func (p Person) Key() string {
	return p.ID
}

// HasDateOfBirth reports whether a date of birth was recorded
func (p Person) HasDateOfBirth() bool {
	return !p.DateOfBirth.IsZero()
}

// Tenant represents a person renting a property
type Tenant struct {
	Person
}

// Owner represents a person owning one or more properties
type Owner struct {
	Person
}

// Host represents a person managing properties on behalf of owners
type Host struct {
	Person
}

// NewTenant builds a tenant from its fields
func NewTenant(id, fullName string, dateOfBirth time.Time, contactInfo string) Tenant {
	return Tenant{Person: Person{ID: id, FullName: fullName, DateOfBirth: dateOfBirth, ContactInfo: contactInfo}}
}

// NewOwner builds an owner from its fields
func NewOwner(id, fullName string, dateOfBirth time.Time, contactInfo string) Owner {
	return Owner{Person: Person{ID: id, FullName: fullName, DateOfBirth: dateOfBirth, ContactInfo: contactInfo}}
}

// NewHost builds a host from its fields
func NewHost(id, fullName string, dateOfBirth time.Time, contactInfo string) Host {
	return Host{Person: Person{ID: id, FullName: fullName, DateOfBirth: dateOfBirth, ContactInfo: contactInfo}}
}
