package commands

import (
	"fmt"
	"strings"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/shipment"
	"fulfillment/internal/pkg/errs"
)

// AddressPayload is a postal address as submitted by the caller.
type AddressPayload struct {
	Name          string         `json:"name"`
	Phone         string         `json:"phone"`
	Email         string         `json:"email,omitempty"`
	Line1         string         `json:"line1"`
	Line2         string         `json:"line2,omitempty"`
	City          string         `json:"city"`
	State         string         `json:"state"`
	Country       string         `json:"country"`
	Zip           string         `json:"zip,omitempty"`
	IsResidential bool           `json:"isResidential"`
	Instructions  string         `json:"instructions,omitempty"`
	Metadata      map[string]any `json:"metadata,omitempty"`
}

// ItemPayload is one line of a creation request. Price fields are optional
// and resolved by the shipment aggregate.
type ItemPayload struct {
	Name        string               `json:"name"`
	Description string               `json:"description,omitempty"`
	Quantity    *int                 `json:"quantity,omitempty"`
	UnitPrice   *float64             `json:"unitPrice,omitempty"`
	Price       *float64             `json:"price,omitempty"`
	Value       *float64             `json:"value,omitempty"`
	TotalPrice  *float64             `json:"totalPrice,omitempty"`
	Weight      *float64             `json:"weight,omitempty"`
	Dimensions  *shipment.Dimensions `json:"dimensions,omitempty"`
	Currency    string               `json:"currency,omitempty"`
	Metadata    map[string]any       `json:"metadata,omitempty"`
}

// DispatcherPayload is the nested dispatcher object some storefronts send
// instead of a top level carrier slug.
type DispatcherPayload struct {
	Name        string `json:"name,omitempty"`
	CarrierSlug string `json:"carrierSlug,omitempty"`
}

// ShipmentPayload is the body of a shipment creation request.
type ShipmentPayload struct {
	OrderReference           string             `json:"orderReference"`
	VendorName               string             `json:"vendorName"`
	PickupAddress            *AddressPayload    `json:"pickupAddress"`
	DeliveryAddress          *AddressPayload    `json:"deliveryAddress"`
	Items                    []ItemPayload      `json:"items"`
	TransportMode            string             `json:"transportMode"`
	ServiceLevel             string             `json:"serviceLevel"`
	CarrierName              string             `json:"carrierName"`
	CarrierSlug              string             `json:"carrierSlug"`
	Dispatcher               *DispatcherPayload `json:"dispatcher,omitempty"`
	ExternalCarrierReference string             `json:"externalCarrierReference,omitempty"`
	ExternalRateID           string             `json:"externalRateId,omitempty"`
	ShippingFee              *float64           `json:"shippingFee,omitempty"`
	Currency                 string             `json:"currency,omitempty"`
	IsInsured                bool               `json:"isInsured"`
	InsuranceAmount          float64            `json:"insuranceAmount"`
	EstimatedDelivery        string             `json:"estimatedDelivery,omitempty"`
	Notes                    string             `json:"notes,omitempty"`
	Metadata                 map[string]any     `json:"metadata,omitempty"`
}

// ValidationResult lists every problem found in a payload.
type ValidationResult struct {
	Valid  bool
	Errors []string
}

// ValidationError carries a failed ValidationResult through error returns.
// It matches errs.ErrValueIsInvalid.
type ValidationError struct {
	Errors []string
}

func (e *ValidationError) Error() string {
	return "validation failed: " + strings.Join(e.Errors, "; ")
}

func (e *ValidationError) Unwrap() error {
	return errs.ErrValueIsInvalid
}

// ValidateShipmentPayload checks the shape of a creation request and collects
// every violation instead of stopping at the first one. It has no side effects.
func ValidateShipmentPayload(p ShipmentPayload) ValidationResult {
	v := &violations{}

	v.address("pickupAddress", p.PickupAddress)
	v.address("deliveryAddress", p.DeliveryAddress)

	if len(p.Items) == 0 {
		v.add("items must contain at least one item")
	}
	for i, item := range p.Items {
		v.item(i, item)
	}

	if _, err := kernel.ParseTransportMode(p.TransportMode); err != nil {
		v.add("transportMode must be one of road, air, sea")
	}
	if _, err := kernel.ParseServiceLevel(p.ServiceLevel); err != nil {
		v.add("serviceLevel must be one of Express, Standard, Economy")
	}

	if p.ShippingFee != nil && *p.ShippingFee < 0 {
		v.add("shippingFee must not be negative")
	}
	if p.InsuranceAmount < 0 {
		v.add("insuranceAmount must not be negative")
	}
	v.metadata("metadata", p.Metadata)

	return ValidationResult{Valid: len(v.list) == 0, Errors: v.list}
}

type violations struct {
	list []string
}

func (v *violations) add(format string, args ...any) {
	v.list = append(v.list, fmt.Sprintf(format, args...))
}

func (v *violations) address(name string, a *AddressPayload) {
	if a == nil {
		v.add("%s is required", name)
		return
	}

	required := []struct{ field, value string }{
		{"line1", a.Line1},
		{"city", a.City},
		{"state", a.State},
		{"country", a.Country},
		{"phone", a.Phone},
	}
	for _, r := range required {
		if strings.TrimSpace(r.value) == "" {
			v.add("%s.%s is required", name, r.field)
		}
	}
	v.metadata(name+".metadata", a.Metadata)
}

func (v *violations) item(i int, item ItemPayload) {
	prefix := fmt.Sprintf("items[%d]", i)

	if strings.TrimSpace(item.Name) == "" {
		v.add("%s.name is required", prefix)
	}
	if item.Quantity != nil && *item.Quantity < 1 {
		v.add("%s.quantity must be at least 1", prefix)
	}
	if item.Weight != nil && *item.Weight < 0 {
		v.add("%s.weight must not be negative", prefix)
	}
	v.metadata(prefix+".metadata", item.Metadata)
}

func (v *violations) metadata(name string, raw map[string]any) {
	if raw == nil {
		return
	}
	if _, err := kernel.NewMetadata(raw); err != nil {
		v.add("%s is invalid: %v", name, err)
	}
}
