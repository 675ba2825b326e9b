package codec

import (
	"fmt"
	"log/slog"
	"strings"

	"rental-records/internal/logging"
	"rental-records/internal/model"
)

const agreementFields = 12

// References holds the already-loaded collections an agreement line points into
type References struct {
	Tenants Lookup[model.Tenant]
	Owners  Lookup[model.Owner]
	Hosts   Lookup[model.Host]
}

// AgreementCodec handles rental_agreements.txt.
//
// The owner and main tenant must resolve or the record is rejected with
// ErrUnresolvedReference. Sub-tenants and hosts that do not resolve are
// dropped one by one and reported on Logger.
type AgreementCodec struct {
	Refs   References
	Logger *slog.Logger
}

func (c AgreementCodec) logger() *slog.Logger {
	if c.Logger == nil {
		return logging.Discard()
	}
	return c.Logger
}

func (c AgreementCodec) Encode(a model.RentalAgreement) (string, error) {
	const entity = "rental agreement"
	if err := checkTexts(entity, "id", a.ID, "owner id", a.Owner.ID, "main tenant id", a.MainTenant.ID, "terms", a.Terms); err != nil {
		return "", err
	}
	if a.Owner.ID == "" || a.MainTenant.ID == "" {
		return "", fmt.Errorf("%w: agreement %s needs an owner and a main tenant", ErrUnresolvedReference, a.ID)
	}
	if err := checkTerms(entity, a.Duration, a.RentalFee); err != nil {
		return "", err
	}
	property, err := EncodeProperty(a.Property)
	if err != nil {
		return "", fmt.Errorf("agreement %s: %w", a.ID, err)
	}

	subTenants := make([]string, 0, len(a.SubTenants))
	for _, t := range a.SubTenants {
		if err := checkText(entity, "sub-tenant id", t.ID); err != nil {
			return "", err
		}
		subTenants = append(subTenants, t.ID)
	}
	hosts := make([]string, 0, len(a.Hosts))
	for _, h := range a.Hosts {
		if err := checkText(entity, "host id", h.ID); err != nil {
			return "", err
		}
		hosts = append(hosts, h.ID)
	}

	return strings.Join([]string{
		a.ID,
		a.ContractDate.Format(AgreementDateLayout),
		a.Owner.ID,
		a.MainTenant.ID,
		joinIDs(subTenants),
		property,
		joinIDs(hosts),
		string(a.Cycle),
		fmt.Sprint(a.Duration),
		a.Terms,
		formatFloat(a.RentalFee),
		string(a.Status),
	}, FieldSep), nil
}

func (c AgreementCodec) Decode(line string) (model.RentalAgreement, error) {
	const entity = "rental agreement"
	var a model.RentalAgreement
	f, err := split(entity, line, FieldSep, agreementFields)
	if err != nil {
		return a, err
	}
	if a.ID, err = recordKey(entity, f[0]); err != nil {
		return a, err
	}
	a.Terms = f[9]
	if a.ContractDate, err = parseDate(entity, "contract date", AgreementDateLayout, f[1]); err != nil {
		return a, err
	}
	if a.Property, err = DecodeProperty(f[5]); err != nil {
		return a, fmt.Errorf("agreement %s: %w", a.ID, err)
	}
	if a.Cycle, err = model.ParseRentalCycle(f[7]); err != nil {
		return a, malformed(entity, "%v", err)
	}
	if a.Duration, err = parseInt(entity, "duration", f[8]); err != nil {
		return a, err
	}
	if a.RentalFee, err = parseFloat(entity, "rental fee", f[10]); err != nil {
		return a, err
	}
	if a.Status, err = model.ParseAgreementStatus(f[11]); err != nil {
		return a, malformed(entity, "%v", err)
	}
	if err = checkTerms(entity, a.Duration, a.RentalFee); err != nil {
		return a, err
	}

	ownerID := strings.TrimSpace(f[2])
	owner, ok := lookup(c.Refs.Owners, ownerID)
	if !ok {
		return a, fmt.Errorf("%w: agreement %s: owner %q", ErrUnresolvedReference, a.ID, ownerID)
	}
	a.Owner = owner

	mainID := strings.TrimSpace(f[3])
	main, ok := lookup(c.Refs.Tenants, mainID)
	if !ok {
		return a, fmt.Errorf("%w: agreement %s: main tenant %q", ErrUnresolvedReference, a.ID, mainID)
	}
	a.MainTenant = main

	for _, id := range splitIDs(f[4]) {
		t, ok := lookup(c.Refs.Tenants, id)
		if !ok {
			c.logger().Warn("dropping unresolved sub-tenant", "agreement", a.ID, "id", id)
			continue
		}
		a.SubTenants = append(a.SubTenants, t)
	}
	for _, id := range splitIDs(f[6]) {
		h, ok := lookup(c.Refs.Hosts, id)
		if !ok {
			c.logger().Warn("dropping unresolved host", "agreement", a.ID, "id", id)
			continue
		}
		a.Hosts = append(a.Hosts, h)
	}
	return a, nil
}

func checkTerms(entity string, duration int, fee float64) error {
	if duration <= 0 {
		return malformed(entity, "duration must be positive, got %d", duration)
	}
	if fee <= 0 {
		return malformed(entity, "rental fee must be positive, got %s", formatFloat(fee))
	}
	return nil
}
