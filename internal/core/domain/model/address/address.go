package address

import (
	"errors"
	"fmt"
	"strings"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/pkg/errs"
)

var ErrAddressIsNotConstructed = errors.New("Address must be created via NewAddress constructor")

// Type tells whether an address is the pickup or the delivery end of a shipment.
type Type string

const (
	TypePickup   Type = "pickup"
	TypeDelivery Type = "delivery"
)

func (t Type) Validate() error {
	if t != TypePickup && t != TypeDelivery {
		return errs.NewValueIsInvalidErrorWithCause("type", fmt.Errorf("%q is not pickup or delivery", string(t)))
	}
	return nil
}

// Details carries the postal fields of an address.
type Details struct {
	Name          string
	Phone         string
	Email         string
	Line1         string
	Line2         string
	City          string
	State         string
	Country       string
	Zip           string
	IsResidential bool
	Instructions  string
	Metadata      kernel.Metadata
}

// Address is an immutable postal address owned by a single shipment.
type Address struct {
	id      kernel.UUID
	typ     Type
	details Details

	isConstructed bool
}

// NewAddress validates the mandatory fields (line1, city, state, country, phone)
// and reports every missing one at once.
func NewAddress(id kernel.UUID, typ Type, details Details) (*Address, error) {
	details = trimDetails(details)

	if err := errors.Join(
		id.Validate(),
		typ.Validate(),
		requireField("line1", details.Line1),
		requireField("city", details.City),
		requireField("state", details.State),
		requireField("country", details.Country),
		requireField("phone", details.Phone),
	); err != nil {
		return nil, err
	}

	if details.Metadata == nil {
		details.Metadata = kernel.Metadata{}
	}

	return &Address{
		id:            id,
		typ:           typ,
		details:       details,
		isConstructed: true,
	}, nil
}

// RestoreAddress rebuilds an address loaded from storage.
func RestoreAddress(id kernel.UUID, typ Type, details Details) (*Address, error) {
	return NewAddress(id, typ, details)
}

func (a *Address) Validate() error {
	if a == nil || !a.isConstructed {
		return ErrAddressIsNotConstructed
	}
	return nil
}

func (a *Address) ID() kernel.UUID { return a.id }

func (a *Address) Type() Type { return a.typ }

// Details returns a copy of the postal fields.
func (a *Address) Details() Details {
	d := a.details
	d.Metadata = a.details.Metadata.Clone()
	return d
}

func (a *Address) City() string { return a.details.City }

func (a *Address) Name() string { return a.details.Name }

func (a *Address) Phone() string { return a.details.Phone }

func (a *Address) Email() string { return a.details.Email }

func requireField(name, value string) error {
	if value == "" {
		return errs.NewValueIsRequiredError(name)
	}
	return nil
}

func trimDetails(d Details) Details {
	d.Name = strings.TrimSpace(d.Name)
	d.Phone = strings.TrimSpace(d.Phone)
	d.Email = strings.TrimSpace(d.Email)
	d.Line1 = strings.TrimSpace(d.Line1)
	d.Line2 = strings.TrimSpace(d.Line2)
	d.City = strings.TrimSpace(d.City)
	d.State = strings.TrimSpace(d.State)
	d.Country = strings.TrimSpace(d.Country)
	d.Zip = strings.TrimSpace(d.Zip)
	d.Instructions = strings.TrimSpace(d.Instructions)
	return d
}
