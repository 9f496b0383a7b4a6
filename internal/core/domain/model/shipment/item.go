package shipment

import (
	"errors"
	"fmt"
	"strings"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/pkg/errs"
)

// Dimensions of a parcel. Unit defaults to cm.
type Dimensions struct {
	Length float64 `json:"length"`
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
	Unit   string  `json:"unit,omitempty"`
}

// ItemDraft is an item as submitted by the caller. The optional price fields
// mirror what storefronts send: some provide a unit price, some a line total,
// some only a declared value.
type ItemDraft struct {
	Name        string
	Description string
	Quantity    int
	UnitPrice   *float64
	Price       *float64
	Value       *float64
	TotalPrice  *float64
	Weight      float64
	Dimensions  *Dimensions
	Currency    string
	Metadata    kernel.Metadata
}

// quantity treats a missing quantity as one unit.
func (d ItemDraft) quantity() int {
	if d.Quantity == 0 {
		return 1
	}
	return d.Quantity
}

// declaredValue is the item's contribution to the shipment value:
// totalPrice, else value, else price.
func (d ItemDraft) declaredValue() float64 {
	return firstOf(d.TotalPrice, d.Value, d.Price)
}

// Item is an immutable line of a shipment.
type Item struct {
	id          kernel.UUID
	shipmentID  kernel.UUID
	itemID      string
	name        string
	description string
	quantity    int
	unitPrice   float64
	totalPrice  float64
	weight      float64
	dimensions  *Dimensions
	currency    string
	metadata    kernel.Metadata
}

// ItemSequenceID formats the n-th (1-based) item identifier: ITEM-001, ITEM-002, ...
func ItemSequenceID(n int) string {
	return fmt.Sprintf("ITEM-%03d", n)
}

func newItem(id, shipmentID kernel.UUID, seq int, draft ItemDraft, currency string) (*Item, error) {
	name := strings.TrimSpace(draft.Name)
	qty := draft.quantity()

	var problems []error
	if name == "" {
		problems = append(problems, errs.NewValueIsRequiredError("name"))
	}
	if qty < 1 {
		problems = append(problems, errs.NewValueIsOutOfRangeError("quantity", qty, 1, "unbounded"))
	}
	if draft.Weight < 0 {
		problems = append(problems, errs.NewValueIsOutOfRangeError("weight", draft.Weight, 0, "unbounded"))
	}
	if err := errors.Join(problems...); err != nil {
		return nil, fmt.Errorf("%s: %w", ItemSequenceID(seq), err)
	}

	unitPrice := firstOf(draft.UnitPrice, draft.Price, draft.Value)
	totalPrice := unitPrice * float64(qty)
	if draft.TotalPrice != nil {
		totalPrice = *draft.TotalPrice
	}

	if c := strings.TrimSpace(draft.Currency); c != "" {
		currency = strings.ToUpper(c)
	}

	metadata := draft.Metadata
	if metadata == nil {
		metadata = kernel.Metadata{}
	}

	return &Item{
		id:          id,
		shipmentID:  shipmentID,
		itemID:      ItemSequenceID(seq),
		name:        name,
		description: strings.TrimSpace(draft.Description),
		quantity:    qty,
		unitPrice:   unitPrice,
		totalPrice:  totalPrice,
		weight:      draft.Weight,
		dimensions:  draft.Dimensions,
		currency:    currency,
		metadata:    metadata,
	}, nil
}

// RestoreItem rebuilds an item from storage.
func RestoreItem(
	id, shipmentID kernel.UUID,
	itemID, name, description string,
	quantity int,
	unitPrice, totalPrice, weight float64,
	dimensions *Dimensions,
	currency string,
	metadata kernel.Metadata,
) *Item {
	if metadata == nil {
		metadata = kernel.Metadata{}
	}
	return &Item{
		id:          id,
		shipmentID:  shipmentID,
		itemID:      itemID,
		name:        name,
		description: description,
		quantity:    quantity,
		unitPrice:   unitPrice,
		totalPrice:  totalPrice,
		weight:      weight,
		dimensions:  dimensions,
		currency:    currency,
		metadata:    metadata,
	}
}

func (i *Item) ID() kernel.UUID { return i.id }

func (i *Item) ShipmentID() kernel.UUID { return i.shipmentID }

func (i *Item) ItemID() string { return i.itemID }

func (i *Item) Name() string { return i.name }

func (i *Item) Description() string { return i.description }

func (i *Item) Quantity() int { return i.quantity }

func (i *Item) UnitPrice() float64 { return i.unitPrice }

func (i *Item) TotalPrice() float64 { return i.totalPrice }

func (i *Item) Weight() float64 { return i.weight }

func (i *Item) Dimensions() *Dimensions { return i.dimensions }

func (i *Item) Currency() string { return i.currency }

func (i *Item) Metadata() kernel.Metadata { return i.metadata.Clone() }

func firstOf(values ...*float64) float64 {
	for _, v := range values {
		if v != nil {
			return *v
		}
	}
	return 0
}
