package model

import (
	"slices"
	"time"
)

// Payment represents money received from a tenant
type Payment struct {
	ID     string
	Tenant Tenant
	Amount float64
	Date   time.Time
	Method string
}

// Key returns the identity of the payment
func (p Payment) Key() string {
	return p.ID
}

// RentalAgreement represents a contract between an owner and one or more tenants
type RentalAgreement struct {
	ID           string
	ContractDate time.Time
	Owner        Owner
	MainTenant   Tenant
	SubTenants   []Tenant
	Property     Property
	Hosts        []Host
	Cycle        RentalCycle
	Duration     int
	Terms        string
	RentalFee    float64
	Status       AgreementStatus
}

// Key returns the identity of the agreement
func (a RentalAgreement) Key() string {
	return a.ID
}

// InvolvesTenant reports whether the tenant is the main tenant or a sub-tenant
func (a RentalAgreement) InvolvesTenant(tenantID string) bool {
	if a.MainTenant.ID == tenantID {
		return true
	}
	for _, t := range a.SubTenants {
		if t.ID == tenantID {
			return true
		}
	}
	return false
}

// TenantIDs returns the main tenant followed by every sub-tenant
func (a RentalAgreement) TenantIDs() []string {
	ids := make([]string, 0, len(a.SubTenants)+1)
	ids = append(ids, a.MainTenant.ID)
	for _, t := range a.SubTenants {
		ids = append(ids, t.ID)
	}
	return ids
}

// Clone returns a copy that shares no slices with a
func (a RentalAgreement) Clone() RentalAgreement {
	a.SubTenants = slices.Clone(a.SubTenants)
	a.Hosts = slices.Clone(a.Hosts)
	return a
}
