package codec

import (
	"fmt"
	"strings"

	"rental-records/internal/model"
)

const paymentFields = 5

// PaymentCodec handles payments.txt. The tenant is stored by ID and resolved
// through Tenants on decode.
type PaymentCodec struct {
	Tenants Lookup[model.Tenant]
}

func (c PaymentCodec) Encode(p model.Payment) (string, error) {
	if err := checkTexts("payment", "id", p.ID, "tenant id", p.Tenant.ID, "method", p.Method); err != nil {
		return "", err
	}
	if p.Tenant.ID == "" {
		return "", fmt.Errorf("%w: payment %s has no tenant", ErrUnresolvedReference, p.ID)
	}
	return strings.Join([]string{
		p.ID,
		p.Tenant.ID,
		formatFloat(p.Amount),
		p.Date.Format(PersonDateLayout),
		p.Method,
	}, FieldSep), nil
}

func (c PaymentCodec) Decode(line string) (model.Payment, error) {
	const entity = "payment"
	var p model.Payment
	f, err := split(entity, line, FieldSep, paymentFields)
	if err != nil {
		return p, err
	}
	if p.ID, err = recordKey(entity, f[0]); err != nil {
		return p, err
	}
	p.Method = f[4]
	if p.Amount, err = parseFloat(entity, "amount", f[2]); err != nil {
		return p, err
	}
	if p.Date, err = parseDate(entity, "date", PersonDateLayout, f[3]); err != nil {
		return p, err
	}
	tenant, ok := lookup(c.Tenants, strings.TrimSpace(f[1]))
	if !ok {
		return p, fmt.Errorf("%w: payment %s: tenant %q", ErrUnresolvedReference, p.ID, f[1])
	}
	p.Tenant = tenant
	return p, nil
}

func lookup[T any](l Lookup[T], id string) (T, bool) {
	var zero T
	if l == nil || id == "" {
		return zero, false
	}
	return l.Get(id)
}
