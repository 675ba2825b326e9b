package codec

import (
	"bytes"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"rental-records/internal/model"
)

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func sampleCommercial() model.CommercialProperty {
	return model.CommercialProperty{
		PropertyBase:  model.PropertyBase{ID: "CP1", Address: "1 Main St", Pricing: 2500, Status: model.StatusAvailable},
		BusinessType:  "Retail",
		ParkingSpaces: 0,
		SquareFootage: 120.5,
	}
}

func sampleResidential() model.ResidentialProperty {
	return model.ResidentialProperty{
		PropertyBase:       model.PropertyBase{ID: "RP7", Address: "9 Elm Rd", Pricing: 1800.25, Status: model.StatusUnderMaintenance},
		NumBedrooms:        3,
		GardenAvailability: true,
		PetFriendliness:    false,
	}
}

func refs() References {
	return References{
		Tenants: MapLookup[model.Tenant]{
			"T1": model.NewTenant("T1", "Alice Ng", date(1990, 4, 2), "alice@example.com"),
			"T2": model.NewTenant("T2", "Bob Ray", time.Time{}, ""),
		},
		Owners: MapLookup[model.Owner]{
			"O1": model.NewOwner("O1", "Olga Ito", date(1970, 1, 31), "0400 000 000"),
		},
		Hosts: MapLookup[model.Host]{
			"H1": model.NewHost("H1", "Hana Lee", time.Time{}, "hana@example.com"),
		},
	}
}

func TestPersonRoundTrip(t *testing.T) {
	c := NewTenantCodec()
	tests := []struct {
		name   string
		tenant model.Tenant
		line   string
	}{
		{"full", model.NewTenant("T1", "Alice Ng", date(1990, 4, 2), "alice@example.com"), "T1,Alice Ng,02-04-1990,alice@example.com"},
		{"empty contact", model.NewTenant("T2", "Bob Ray", date(2001, 12, 25), ""), "T2,Bob Ray,25-12-2001,"},
		{"no date of birth", model.NewTenant("T3", "Cy", time.Time{}, "cy@example.com"), "T3,Cy,,cy@example.com"},
		{"nothing but id", model.NewTenant("T4", "", time.Time{}, ""), "T4,,,"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			line, err := c.Encode(tt.tenant)
			require.NoError(t, err)
			assert.Equal(t, tt.line, line)

			got, err := c.Decode(line)
			require.NoError(t, err)
			assert.Equal(t, tt.tenant, got)
		})
	}
}

func TestPersonDecodeErrors(t *testing.T) {
	c := NewHostCodec()
	for _, line := range []string{
		"H1,Ann",
		"",
		",Ann,,",
		"H1,Ann,1990-01-01,ann@example.com",
		"H1,Ann,31-02-1990,",
	} {
		_, err := c.Decode(line)
		assert.ErrorIs(t, err, ErrMalformedRecord, "line %q", line)
	}
}

func TestPersonDecodeIgnoresExtraFields(t *testing.T) {
	got, err := NewOwnerCodec().Decode("O1,Olga Ito,31-01-1970,0400,extra")
	require.NoError(t, err)
	assert.Equal(t, "0400", got.ContactInfo)
}

func TestDecodeTrimsRecordKeys(t *testing.T) {
	tenant, err := NewTenantCodec().Decode(" T1 ,Ann Lee,,0400")
	require.NoError(t, err)
	assert.Equal(t, "T1", tenant.ID)

	cp, err := CommercialCodec{}.Decode(" CP1,1 Main St,2500,AVAILABLE,Retail,0,120.5")
	require.NoError(t, err)
	assert.Equal(t, "CP1", cp.ID)

	rp, err := ResidentialCodec{}.Decode("RP7 ,9 Elm Rd,1800,RENTED,2,true,false")
	require.NoError(t, err)
	assert.Equal(t, "RP7", rp.ID)

	p, err := PaymentCodec{Tenants: refs().Tenants}.Decode(" P1,T1,10,09-03-2024,Cash")
	require.NoError(t, err)
	assert.Equal(t, "P1", p.ID)

	c := AgreementCodec{Refs: refs()}
	line, err := c.Encode(sampleAgreement(refs()))
	require.NoError(t, err)
	a, err := c.Decode(" " + line)
	require.NoError(t, err)
	assert.Equal(t, "RA1", a.ID)

	_, err = NewTenantCodec().Decode("   ,Ann Lee,,0400")
	assert.ErrorIs(t, err, ErrMalformedRecord)
}

func TestPersonEncodeRejectsDelimiters(t *testing.T) {
	c := NewOwnerCodec()
	for _, contact := range []string{"a,b", "a;b", "a\nb"} {
		_, err := c.Encode(model.NewOwner("O1", "Olga", time.Time{}, contact))
		assert.ErrorIs(t, err, ErrUnencodableField)
	}
}

func TestPropertyCodecs(t *testing.T) {
	cp := sampleCommercial()
	line, err := CommercialCodec{}.Encode(cp)
	require.NoError(t, err)
	assert.Equal(t, "CP1,1 Main St,2500,AVAILABLE,Retail,0,120.5", line)
	gotCP, err := CommercialCodec{}.Decode(line)
	require.NoError(t, err)
	assert.Equal(t, cp, gotCP)

	rp := sampleResidential()
	line, err = ResidentialCodec{}.Encode(rp)
	require.NoError(t, err)
	assert.Equal(t, "RP7,9 Elm Rd,1800.25,UNDER_MAINTENANCE,3,true,false", line)
	gotRP, err := ResidentialCodec{}.Decode(line)
	require.NoError(t, err)
	assert.Equal(t, rp, gotRP)
}

func TestPropertyDecodeErrors(t *testing.T) {
	for _, line := range []string{
		"CP1,1 Main St,2500,available,Retail,0,120.5",
		"CP1,1 Main St,abc,AVAILABLE,Retail,0,120.5",
		"CP1,1 Main St,2500,AVAILABLE,Retail,1.5,120.5",
		"CP1,1 Main St,NaN,AVAILABLE,Retail,0,120.5",
		"CP1,1 Main St,2500,AVAILABLE",
	} {
		_, err := CommercialCodec{}.Decode(line)
		assert.ErrorIs(t, err, ErrMalformedRecord, "line %q", line)
	}
	_, err := ResidentialCodec{}.Decode("RP1,x,1,RENTED,2,maybe,true")
	assert.ErrorIs(t, err, ErrMalformedRecord)
}

func TestEmbeddedProperty(t *testing.T) {
	p := model.NewResidential(sampleResidential())
	s, err := EncodeProperty(p)
	require.NoError(t, err)
	assert.Equal(t, "ResidentialProperty;RP7;9 Elm Rd;1800.25;UNDER_MAINTENANCE;3;true;false", s)

	got, err := DecodeProperty(s)
	require.NoError(t, err)
	assert.Equal(t, p, got)

	_, err = DecodeProperty("Warehouse;W1;x;1;AVAILABLE;a;1;1")
	assert.ErrorIs(t, err, ErrUnknownVariant)

	_, err = DecodeProperty("")
	assert.ErrorIs(t, err, ErrUnknownVariant)

	_, err = EncodeProperty(model.Property{})
	assert.ErrorIs(t, err, ErrUnknownVariant)
}

func TestPaymentCodec(t *testing.T) {
	c := PaymentCodec{Tenants: refs().Tenants}
	tenant, _ := c.Tenants.Get("T1")
	p := model.Payment{ID: "P1", Tenant: tenant, Amount: 0.01, Date: date(2024, 3, 9), Method: "Card"}

	line, err := c.Encode(p)
	require.NoError(t, err)
	assert.Equal(t, "P1,T1,0.01,09-03-2024,Card", line)

	got, err := c.Decode(line)
	require.NoError(t, err)
	assert.Equal(t, p, got)

	_, err = c.Decode("P2,T9,10,09-03-2024,Cash")
	assert.ErrorIs(t, err, ErrUnresolvedReference)

	_, err = PaymentCodec{}.Decode(line)
	assert.ErrorIs(t, err, ErrUnresolvedReference)

	_, err = c.Decode("P3,T1,10,2024-03-09,Cash")
	assert.ErrorIs(t, err, ErrMalformedRecord)
}

func sampleAgreement(r References) model.RentalAgreement {
	owner, _ := r.Owners.Get("O1")
	main, _ := r.Tenants.Get("T1")
	sub, _ := r.Tenants.Get("T2")
	host, _ := r.Hosts.Get("H1")
	return model.RentalAgreement{
		ID:           "RA1",
		ContractDate: date(2024, 1, 15),
		Owner:        owner,
		MainTenant:   main,
		SubTenants:   []model.Tenant{sub},
		Property:     model.NewCommercial(sampleCommercial()),
		Hosts:        []model.Host{host},
		Cycle:        model.CycleMonthly,
		Duration:     12,
		Terms:        "No smoking",
		RentalFee:    0.01,
		Status:       model.AgreementActive,
	}
}

func TestAgreementRoundTrip(t *testing.T) {
	r := refs()
	c := AgreementCodec{Refs: r}
	a := sampleAgreement(r)

	line, err := c.Encode(a)
	require.NoError(t, err)
	assert.Equal(t,
		"RA1,2024-01-15,O1,T1,T2;,CommercialProperty;CP1;1 Main St;2500;AVAILABLE;Retail;0;120.5,H1;,MONTHLY,12,No smoking,0.01,ACTIVE",
		line)

	got, err := c.Decode(line)
	require.NoError(t, err)
	assert.Equal(t, a, got)
	assert.Equal(t, "T1", got.MainTenant.ID)
}

func TestAgreementWithoutSubTenantsOrHosts(t *testing.T) {
	r := refs()
	c := AgreementCodec{Refs: r}
	a := sampleAgreement(r)
	a.SubTenants, a.Hosts = nil, nil

	line, err := c.Encode(a)
	require.NoError(t, err)
	got, err := c.Decode(line)
	require.NoError(t, err)
	assert.Equal(t, a, got)
}

func TestAgreementDropsUnresolvedSubTenant(t *testing.T) {
	var buf bytes.Buffer
	c := AgreementCodec{Refs: refs(), Logger: slog.New(slog.NewTextHandler(&buf, nil))}

	got, err := c.Decode("RA2,2024-01-15,O1,T1,T9;T2;,ResidentialProperty;RP7;9 Elm Rd;1800.25;RENTED;3;true;false,H5;H1;,WEEKLY,4,,100,NEW")
	require.NoError(t, err)
	require.Len(t, got.SubTenants, 1)
	assert.Equal(t, "T2", got.SubTenants[0].ID)
	require.Len(t, got.Hosts, 1)
	assert.Equal(t, "H1", got.Hosts[0].ID)
	assert.Contains(t, buf.String(), "id=T9")
	assert.Contains(t, buf.String(), "id=H5")
}

func TestAgreementRequiredReferences(t *testing.T) {
	c := AgreementCodec{Refs: refs()}
	const property = "CommercialProperty;CP1;1 Main St;2500;AVAILABLE;Retail;0;120.5"

	_, err := c.Decode("RA3,2024-01-15,O9,T1,," + property + ",,MONTHLY,12,x,10,NEW")
	assert.ErrorIs(t, err, ErrUnresolvedReference)

	_, err = c.Decode("RA3,2024-01-15,O1,T9,," + property + ",,MONTHLY,12,x,10,NEW")
	assert.ErrorIs(t, err, ErrUnresolvedReference)

	_, err = c.Decode("RA3,2024-01-15,O1,T1,,Shed;S1,,MONTHLY,12,x,10,NEW")
	assert.ErrorIs(t, err, ErrUnknownVariant)
}

func TestAgreementMalformed(t *testing.T) {
	c := AgreementCodec{Refs: refs()}
	const property = "CommercialProperty;CP1;1 Main St;2500;AVAILABLE;Retail;0;120.5"
	for _, line := range []string{
		"RA4,2024-01-15,O1,T1",
		"RA4,15-01-2024,O1,T1,," + property + ",,MONTHLY,12,x,10,NEW",
		"RA4,2024-01-15,O1,T1,," + property + ",,HOURLY,12,x,10,NEW",
		"RA4,2024-01-15,O1,T1,," + property + ",,MONTHLY,0,x,10,NEW",
		"RA4,2024-01-15,O1,T1,," + property + ",,MONTHLY,12,x,0,NEW",
		"RA4,2024-01-15,O1,T1,," + property + ",,MONTHLY,12,x,10,DONE",
	} {
		_, err := c.Decode(line)
		assert.ErrorIs(t, err, ErrMalformedRecord, "line %q", line)
	}
}

func TestAgreementEncodeValidation(t *testing.T) {
	r := refs()
	c := AgreementCodec{Refs: r}

	a := sampleAgreement(r)
	a.Terms = "pay, then stay"
	_, err := c.Encode(a)
	assert.ErrorIs(t, err, ErrUnencodableField)

	a = sampleAgreement(r)
	a.RentalFee = 0
	_, err = c.Encode(a)
	assert.ErrorIs(t, err, ErrMalformedRecord)

	a = sampleAgreement(r)
	a.Property = model.Property{}
	_, err = c.Encode(a)
	assert.ErrorIs(t, err, ErrUnknownVariant)
}
