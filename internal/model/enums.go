package model

import (
	"fmt"
	"strings"
)

// PropertyStatus is the availability state of a property
type PropertyStatus string

const (
	StatusAvailable        PropertyStatus = "AVAILABLE"
	StatusRented           PropertyStatus = "RENTED"
	StatusUnderMaintenance PropertyStatus = "UNDER_MAINTENANCE"
)

// PropertyStatuses lists every valid property status in declaration order
var PropertyStatuses = []PropertyStatus{StatusAvailable, StatusRented, StatusUnderMaintenance}

// ParsePropertyStatus converts an exact literal into a PropertyStatus
func ParsePropertyStatus(s string) (PropertyStatus, error) {
	for _, v := range PropertyStatuses {
		if string(v) == s {
			return v, nil
		}
	}
	return "", fmt.Errorf("unknown property status %q", s)
}

// RentalCycle is the billing period of an agreement
type RentalCycle string

const (
	CycleDaily       RentalCycle = "DAILY"
	CycleWeekly      RentalCycle = "WEEKLY"
	CycleFortnightly RentalCycle = "FORTNIGHTLY"
	CycleMonthly     RentalCycle = "MONTHLY"
	CycleYearly      RentalCycle = "YEARLY"
)

// RentalCycles lists every valid rental cycle in declaration order
var RentalCycles = []RentalCycle{CycleDaily, CycleWeekly, CycleFortnightly, CycleMonthly, CycleYearly}

// ParseRentalCycle converts an exact literal into a RentalCycle
func ParseRentalCycle(s string) (RentalCycle, error) {
	for _, v := range RentalCycles {
		if string(v) == s {
			return v, nil
		}
	}
	return "", fmt.Errorf("unknown rental cycle %q", s)
}

// AgreementStatus is the lifecycle state of a rental agreement
type AgreementStatus string

const (
	AgreementNew       AgreementStatus = "NEW"
	AgreementActive    AgreementStatus = "ACTIVE"
	AgreementCompleted AgreementStatus = "COMPLETED"
)

// AgreementStatuses lists every valid agreement status in declaration order
var AgreementStatuses = []AgreementStatus{AgreementNew, AgreementActive, AgreementCompleted}

// ParseAgreementStatus converts an exact literal into an AgreementStatus
func ParseAgreementStatus(s string) (AgreementStatus, error) {
	for _, v := range AgreementStatuses {
		if string(v) == s {
			return v, nil
		}
	}
	return "", fmt.Errorf("unknown agreement status %q", s)
}

// Normalize upper-cases and trims user input so it can be matched against enum literals.
func Normalize(s string) string {
	return strings.ToUpper(strings.TrimSpace(s))
}
