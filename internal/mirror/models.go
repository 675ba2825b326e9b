package mirror

import "time"

// Roles stored in Person.Role and AgreementParty.Role
const (
	RoleTenant    = "tenant"
	RoleOwner     = "owner"
	RoleHost      = "host"
	RoleSubTenant = "sub_tenant"
)

// Person is a tenant, owner or host. The same ID may appear once per role.
type Person struct {
	ID          string `gorm:"primaryKey;size:64"`
	Role        string `gorm:"primaryKey;size:16"`
	FullName    string
	DateOfBirth *time.Time
	ContactInfo string
}

func (Person) TableName() string { return "people" }

// Property holds both property kinds; columns that do not apply stay zero
type Property struct {
	ID                 string `gorm:"primaryKey;size:64"`
	Kind               string `gorm:"size:32;index"`
	Address            string
	Pricing            float64
	Status             string `gorm:"size:32"`
	BusinessType       string
	ParkingSpaces      int
	SquareFootage      float64
	NumBedrooms        int
	GardenAvailability bool
	PetFriendliness    bool
}

func (Property) TableName() string { return "properties" }

type Payment struct {
	ID       string `gorm:"primaryKey;size:64"`
	TenantID string `gorm:"size:64;index"`
	Amount   float64
	Date     time.Time
	Method   string
}

func (Payment) TableName() string { return "payments" }

type RentalAgreement struct {
	ID           string `gorm:"primaryKey;size:64"`
	ContractDate time.Time
	OwnerID      string `gorm:"size:64;index"`
	MainTenantID string `gorm:"size:64;index"`
	PropertyID   string `gorm:"size:64;index"`
	Cycle        string `gorm:"size:32"`
	Duration     int
	Terms        string
	RentalFee    float64
	Status       string `gorm:"size:32;index"`
}

func (RentalAgreement) TableName() string { return "rental_agreements" }

// AgreementParty links an agreement to its sub-tenants and hosts
type AgreementParty struct {
	AgreementID string `gorm:"primaryKey;size:64"`
	PersonID    string `gorm:"primaryKey;size:64"`
	Role        string `gorm:"primaryKey;size:16"`
	Position    int
}

func (AgreementParty) TableName() string { return "agreement_parties" }

// Models lists every table in creation order
func Models() []interface{} {
	return []interface{}{
		&Person{},
		&Property{},
		&Payment{},
		&RentalAgreement{},
		&AgreementParty{},
	}
}

// ExportRecord is one completed export. It is kept across exports.
type ExportRecord struct {
	ID         uint      `gorm:"primaryKey"`
	Source     string    `gorm:"not null"`
	People     int
	Properties int
	Payments   int
	Agreements int
	Parties    int
	ExportedAt time.Time `gorm:"not null;index"`
}

func (ExportRecord) TableName() string { return "export_history" }
