package commands

import (
	"fmt"
	"io"
	"strings"
	"text/tabwriter"
	"time"

	"rental-records/internal/codec"
	"rental-records/internal/model"
)

type field struct {
	name  string
	value string
}

func formatDate(t time.Time, layout string) string {
	if t.IsZero() {
		return "-"
	}
	return t.Format(layout)
}

func money(v float64) string {
	return fmt.Sprintf("%.2f", v)
}

func personFields(p model.Person) []field {
	return []field{
		{"ID", p.ID},
		{"Name", p.FullName},
		{"Born", formatDate(p.DateOfBirth, codec.PersonDateLayout)},
		{"Contact", p.ContactInfo},
	}
}

func propertyFields(p model.Property) []field {
	b := p.Base()
	fields := []field{
		{"ID", b.ID},
		{"Kind", string(p.Kind)},
		{"Address", b.Address},
		{"Pricing", money(b.Pricing)},
		{"Status", string(b.Status)},
	}
	switch p.Kind {
	case model.KindCommercial:
		fields = append(fields,
			field{"Business", p.Commercial.BusinessType},
			field{"Parking", fmt.Sprint(p.Commercial.ParkingSpaces)},
			field{"Sq ft", fmt.Sprint(p.Commercial.SquareFootage)},
		)
	case model.KindResidential:
		fields = append(fields,
			field{"Bedrooms", fmt.Sprint(p.Residential.NumBedrooms)},
			field{"Garden", fmt.Sprint(p.Residential.GardenAvailability)},
			field{"Pets", fmt.Sprint(p.Residential.PetFriendliness)},
		)
	}
	return fields
}

func ids[T interface{ Key() string }](items []T) string {
	keys := make([]string, len(items))
	for i, item := range items {
		keys[i] = item.Key()
	}
	if len(keys) == 0 {
		return "-"
	}
	return strings.Join(keys, " ")
}

// describe lists the displayable fields of any record type
func describe(rec any) []field {
	switch r := rec.(type) {
	case model.Tenant:
		return personFields(r.Person)
	case model.Owner:
		return personFields(r.Person)
	case model.Host:
		return personFields(r.Person)
	case model.CommercialProperty:
		return propertyFields(model.NewCommercial(r))
	case model.ResidentialProperty:
		return propertyFields(model.NewResidential(r))
	case model.Payment:
		return []field{
			{"ID", r.ID},
			{"Tenant", r.Tenant.ID},
			{"Amount", money(r.Amount)},
			{"Date", formatDate(r.Date, codec.PersonDateLayout)},
			{"Method", r.Method},
		}
	case model.RentalAgreement:
		return []field{
			{"ID", r.ID},
			{"Date", formatDate(r.ContractDate, codec.AgreementDateLayout)},
			{"Owner", r.Owner.ID},
			{"Tenant", r.MainTenant.ID},
			{"Sub-tenants", ids(r.SubTenants)},
			{"Property", r.Property.Key()},
			{"Hosts", ids(r.Hosts)},
			{"Cycle", string(r.Cycle)},
			{"Duration", fmt.Sprint(r.Duration)},
			{"Fee", money(r.RentalFee)},
			{"Status", string(r.Status)},
		}
	}
	return []field{{"Value", fmt.Sprint(rec)}}
}

// printTable writes records as aligned columns headed by their field names
func printTable(w io.Writer, recs []any) error {
	if len(recs) == 0 {
		_, err := fmt.Fprintln(w, "No records found.")
		return err
	}
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	header := describe(recs[0])
	names := make([]string, len(header))
	for i, f := range header {
		names[i] = f.name
	}
	fmt.Fprintln(tw, strings.Join(names, "\t"))
	for _, rec := range recs {
		fields := describe(rec)
		values := make([]string, len(fields))
		for i, f := range fields {
			values[i] = f.value
		}
		fmt.Fprintln(tw, strings.Join(values, "\t"))
	}
	return tw.Flush()
}

// printRecord writes one field per line
func printRecord(w io.Writer, rec any, extra ...field) error {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	for _, f := range append(describe(rec), extra...) {
		fmt.Fprintf(tw, "%s:\t%s\n", f.name, f.value)
	}
	return tw.Flush()
}

func asAny[T any](items []T) []any {
	out := make([]any, len(items))
	for i, v := range items {
		out[i] = v
	}
	return out
}
