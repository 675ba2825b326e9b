package records

import (
	"bytes"
	"log/slog"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"rental-records/internal/model"
)

const (
	agreementRA1 = "RA1,2024-01-15,O1,T1,T2;,CommercialProperty;CP1;1 Main St;2500;RENTED;Retail;4;120.5,H1;,MONTHLY,12,No pets,2500,ACTIVE"
	agreementRA2 = "RA2,2024-02-01,O2,T2,,ResidentialProperty;RP1;9 Elm Rd;1800;RENTED;3;true;false,H1;H2;,WEEKLY,8,,450,NEW"
	agreementRA3 = "RA3,2023-06-30,O1,T3,,ResidentialProperty;RP1;9 Elm Rd;1800;RENTED;3;true;false,H2;,YEARLY,1,,20000,COMPLETED"
)

func writeFiles(t *testing.T, dir string, files map[string]string) {
	t.Helper()
	for name, content := range files {
		require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte(content), 0o644))
	}
}

func seed(t *testing.T, dir string) {
	writeFiles(t, dir, map[string]string{
		TenantsFile:     "T1,Alice Ng,02-04-1990,alice@example.com\nT2,Bob Ray,,\nT3,Cy Oh,,cy@example.com\n",
		OwnersFile:      "O1,Olga Ito,31-01-1970,0400 000 000\nO2,Omar Diaz,,\n",
		HostsFile:       "H1,Hana Lee,,hana@example.com\nH2,Ivo Kim,,\n",
		CommercialFile:  "CP1,1 Main St,2500,RENTED,Retail,4,120.5\n",
		ResidentialFile: "RP1,9 Elm Rd,1800,RENTED,3,true,false\n",
		PaymentsFile:    "P1,T1,2500,01-02-2024,Card\nP2,T2,450,08-02-2024,Cash\nP3,T1,2500,01-03-2024,Card\n",
		AgreementsFile:  agreementRA1 + "\n" + agreementRA2 + "\n" + agreementRA3 + "\n",
	})
}

func loaded(t *testing.T, dir string, logger *slog.Logger) *Catalog {
	t.Helper()
	c := New(dir, Options{Logger: logger})
	_, err := c.LoadAll()
	require.NoError(t, err)
	return c
}

func quiet() *slog.Logger {
	return slog.New(slog.NewTextHandler(&bytes.Buffer{}, nil))
}

func TestLoadAllResolvesReferences(t *testing.T) {
	dir := t.TempDir()
	seed(t, dir)
	c := loaded(t, dir, quiet())

	assert.Equal(t, 3, c.Tenants.Len())
	assert.Equal(t, 3, c.Payments.Len())
	assert.Equal(t, 3, c.Agreements.Len())

	ra1, ok := c.Agreements.Get("RA1")
	require.True(t, ok)
	assert.Equal(t, "T1", ra1.MainTenant.ID)
	assert.Equal(t, "Alice Ng", ra1.MainTenant.FullName)
	assert.Equal(t, "Olga Ito", ra1.Owner.FullName)
	require.Len(t, ra1.SubTenants, 1)
	assert.Equal(t, "Bob Ray", ra1.SubTenants[0].FullName)
	assert.Equal(t, model.KindCommercial, ra1.Property.Kind)
	assert.Equal(t, time.Date(2024, 1, 15, 0, 0, 0, 0, time.UTC), ra1.ContractDate)

	p1, ok := c.Payments.Get("P1")
	require.True(t, ok)
	assert.Equal(t, "alice@example.com", p1.Tenant.ContactInfo)
}

func TestAgreementRoundTripThroughFiles(t *testing.T) {
	dir := t.TempDir()
	seed(t, dir)
	writeFiles(t, dir, map[string]string{AgreementsFile: "", PaymentsFile: ""})
	c := loaded(t, dir, quiet())

	tenant, _ := c.Tenants.Get("T1")
	owner, _ := c.Owners.Get("O1")
	host, _ := c.Hosts.Get("H1")
	property, ok := c.Property("CP1")
	require.True(t, ok)

	ra := model.RentalAgreement{
		ID:           "RA9",
		ContractDate: time.Date(2024, 5, 1, 0, 0, 0, 0, time.UTC),
		Owner:        owner,
		MainTenant:   tenant,
		Property:     property,
		Hosts:        []model.Host{host},
		Cycle:        model.CycleFortnightly,
		Duration:     6,
		Terms:        "Quiet hours after ten",
		RentalFee:    0.01,
		Status:       model.AgreementNew,
	}
	require.NoError(t, c.Agreements.Add(ra))
	require.NoError(t, c.Agreements.Save())

	fresh := loaded(t, dir, quiet())
	got, ok := fresh.Agreements.Get("RA9")
	require.True(t, ok)
	assert.Equal(t, "T1", got.MainTenant.ID)
	assert.Equal(t, ra, got)
}

func TestUnresolvedSubTenantIsDropped(t *testing.T) {
	dir := t.TempDir()
	seed(t, dir)
	writeFiles(t, dir, map[string]string{
		AgreementsFile: "RA5,2024-01-15,O1,T1,T9;T2;,CommercialProperty;CP1;1 Main St;2500;RENTED;Retail;4;120.5,,MONTHLY,12,,100,ACTIVE\n",
	})

	var buf bytes.Buffer
	c := loaded(t, dir, slog.New(slog.NewTextHandler(&buf, nil)))

	ra, ok := c.Agreements.Get("RA5")
	require.True(t, ok)
	require.Len(t, ra.SubTenants, 1)
	assert.Equal(t, "T2", ra.SubTenants[0].ID)
	assert.Contains(t, buf.String(), "dropping unresolved sub-tenant")
	assert.Contains(t, buf.String(), "id=T9")
}

func TestLoadAllOnEmptyDirectory(t *testing.T) {
	dir := t.TempDir()
	c := New(dir, Options{CreateMissing: true, Logger: quiet()})

	reports, err := c.LoadAll()
	require.NoError(t, err)
	require.Len(t, reports, len(Entities))
	for _, r := range reports {
		assert.True(t, r.Missing, r.Path)
		_, err := os.Stat(r.Path)
		assert.NoError(t, err)
	}
}

func TestSaveAllAndReload(t *testing.T) {
	dir := t.TempDir()
	seed(t, dir)
	c := loaded(t, dir, quiet())
	require.NoError(t, c.Tenants.Add(model.NewTenant("T4", "Dee", time.Time{}, "")))
	require.NoError(t, c.SaveAll())

	fresh := loaded(t, dir, quiet())
	assert.ElementsMatch(t, c.Tenants.IDs(), fresh.Tenants.IDs())
	assert.Equal(t, c.Agreements.All(), fresh.Agreements.All())
	assert.Equal(t, c.Payments.All(), fresh.Payments.All())
}

func TestAgreementQueries(t *testing.T) {
	dir := t.TempDir()
	seed(t, dir)
	c := loaded(t, dir, quiet())

	ids := func(as []model.RentalAgreement) []string {
		var out []string
		for _, a := range as {
			out = append(out, a.ID)
		}
		return out
	}

	assert.Equal(t, []string{"RA1", "RA3"}, ids(c.AgreementsByOwnerName("  olga ITO ")))
	assert.Empty(t, c.AgreementsByOwnerName("Nobody"))
	assert.Equal(t, []string{"RA2", "RA3"}, ids(c.AgreementsByPropertyAddress("9 ELM RD")))
	assert.Equal(t, []string{"RA2"}, ids(c.AgreementsByStatus(model.AgreementNew)))
}

func TestRelations(t *testing.T) {
	dir := t.TempDir()
	seed(t, dir)
	c := loaded(t, dir, quiet())

	assert.Len(t, c.TenantAgreements("T2"), 2)
	assert.Len(t, c.TenantPayments("T1"), 2)
	assert.Empty(t, c.TenantPayments("T3"))

	props := c.OwnerProperties("O1")
	require.Len(t, props, 2)
	assert.Equal(t, "CP1", props[0].Key())
	assert.Equal(t, "RP1", props[1].Key())

	hosts := c.OwnerHosts("O1")
	require.Len(t, hosts, 2)
	assert.Equal(t, "H1", hosts[0].ID)
	assert.Equal(t, "H2", hosts[1].ID)

	hp := c.HostProperties("H2")
	require.Len(t, hp, 1)
	assert.Equal(t, "RP1", hp[0].Key())

	owners := c.HostOwners("H2")
	require.Len(t, owners, 2)
	assert.Equal(t, "O2", owners[0].ID)
	assert.Equal(t, "O1", owners[1].ID)
}

func TestTableLookup(t *testing.T) {
	c := New(t.TempDir(), Options{Logger: quiet()})

	tbl, err := c.Table("Residential")
	require.NoError(t, err)
	assert.Equal(t, "residential property", tbl.Name())
	assert.Equal(t, ResidentialPrefix, tbl.Prefix())

	_, err = c.Table("garages")
	assert.ErrorIs(t, err, ErrUnknownEntity)

	for _, name := range Entities {
		_, err := c.Table(name)
		assert.NoError(t, err, name)
	}
}

func TestTableRecords(t *testing.T) {
	dir := t.TempDir()
	seed(t, dir)
	c := loaded(t, dir, quiet())

	tbl, err := c.Table(EntityHosts)
	require.NoError(t, err)
	rec, ok := tbl.Record("H2")
	require.True(t, ok)
	host, ok := rec.(model.Host)
	require.True(t, ok)
	assert.Equal(t, "Ivo Kim", host.FullName)
	assert.Len(t, tbl.Records(), 2)
}

func TestRemoveRefusesReferencedRecords(t *testing.T) {
	dir := t.TempDir()
	seed(t, dir)
	c := loaded(t, dir, quiet())

	assert.Equal(t, []string{
		"rental agreement RA1", "rental agreement RA2",
		"payment P2",
	}, c.Referrers(EntityTenants, "T2"))
	assert.Equal(t, []string{"rental agreement RA2"}, c.Referrers(EntityOwners, "O2"))
	assert.Empty(t, c.Referrers(EntityCommercial, "CP1"))

	for _, tt := range []struct{ entity, id string }{
		{EntityTenants, "T1"},
		{EntityOwners, "O1"},
		{EntityHosts, "H1"},
	} {
		err := c.Remove(tt.entity, tt.id, false)
		assert.ErrorIs(t, err, ErrInUse, tt.id)
	}

	c = loaded(t, dir, quiet())
	assert.Equal(t, []string{"T1", "T2", "T3"}, c.Tenants.IDs())
	assert.Equal(t, []string{"RA1", "RA2", "RA3"}, c.Agreements.IDs())
	assert.Equal(t, []string{"P1", "P2", "P3"}, c.Payments.IDs())
}

func TestRemoveOnceReferrersAreGone(t *testing.T) {
	dir := t.TempDir()
	seed(t, dir)
	c := loaded(t, dir, quiet())

	assert.ErrorIs(t, c.Remove(EntityTenants, "T3", false), ErrInUse)
	require.NoError(t, c.Remove(EntityAgreements, "RA3", false))
	require.NoError(t, c.Remove(EntityTenants, "T3", false))

	c = loaded(t, dir, quiet())
	assert.False(t, c.Tenants.Has("T3"))
	assert.Equal(t, []string{"RA1", "RA2"}, c.Agreements.IDs())
}

func TestForcedRemoveDropsReference(t *testing.T) {
	dir := t.TempDir()
	seed(t, dir)
	var logs bytes.Buffer
	c := loaded(t, dir, slog.New(slog.NewTextHandler(&logs, nil)))

	require.NoError(t, c.Remove(EntityHosts, "H2", true))
	assert.Contains(t, logs.String(), "removing referenced record")

	c = loaded(t, dir, quiet())
	ra2, ok := c.Agreements.Get("RA2")
	require.True(t, ok)
	require.Len(t, ra2.Hosts, 1)
	assert.Equal(t, "H1", ra2.Hosts[0].ID)
}
