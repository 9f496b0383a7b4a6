package shipment

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"fulfillment/internal/core/domain/model/address"
	"fulfillment/internal/core/domain/model/driver"
	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/pkg/errs"
)

var (
	ErrShipmentIsNotConstructed = errors.New("Shipment must be created via NewShipment constructor")
	ErrDriverAlreadyAssigned    = errors.New("shipment already has a driver")
	ErrDriverNotAllowed         = errors.New("only internal shipments can be assigned a fleet driver")
	ErrDriverIsNotActive        = errors.New("driver is not active")
)

// Draft holds everything a caller supplies to open a shipment.
type Draft struct {
	OrderReference           string
	UserID                   kernel.UUID
	VendorName               string
	CarrierName              string
	CarrierSlug              string
	DispatcherSlug           string
	ExternalCarrierReference string
	ExternalRateID           string
	TransportMode            kernel.TransportMode
	ServiceLevel             kernel.ServiceLevel
	ShippingFee              float64
	Currency                 string
	IsInsured                bool
	InsuranceAmount          float64
	EstimatedDelivery        string
	Notes                    string
	Metadata                 kernel.Metadata
	Items                    []ItemDraft
}

// State is the persisted shape of a shipment. Repositories read it through
// Snapshot and hand it back to RestoreShipment.
type State struct {
	ID                       kernel.UUID
	Reference                string
	OrderReference           string
	UserID                   kernel.UUID
	VendorName               string
	CarrierType              CarrierType
	CarrierName              string
	CarrierSlug              string
	ExternalCarrierReference string
	ExternalRateID           string
	TransportMode            kernel.TransportMode
	ServiceLevel             kernel.ServiceLevel
	DeliveryAddressID        kernel.UUID
	PickupAddressID          kernel.UUID
	ProductValue             float64
	ShippingFee              float64
	Currency                 string
	TotalWeight              float64
	TotalItems               int
	Status                   Status
	EstimatedDelivery        string
	ActualDeliveryAt         *time.Time
	IsInsured                bool
	InsuranceAmount          float64
	DriverID                 *kernel.UUID
	Metadata                 kernel.Metadata
	Notes                    string
	CreatedAt                time.Time
	UpdatedAt                time.Time
	Items                    []*Item
}

// StatusChange describes one requested move of the state machine.
type StatusChange struct {
	Status      Status
	Description string
	Location    string
	Notes       string
	Source      Source
	PerformedBy string
	Metadata    kernel.Metadata
}

// Shipment is the aggregate root of the fulfillment domain. It owns its items
// and its tracking history; the history is append-only and every status change
// writes exactly one tracking event.
//
// New tracking events stay pending on the aggregate until a repository stores
// them. Domain events stay recorded until the unit of work moves them to the outbox.
type Shipment struct {
	state State

	// pickup and delivery cities are only known while the shipment is being created.
	pickupCity   string
	deliveryCity string

	pendingTracking []*TrackingEvent
	domainEvents    []kernel.DomainEvent

	isConstructed bool
}

// NewShipment opens a pending shipment: it resolves the carrier type, draws a
// reference, numbers the items, computes totals and appends the created event.
//
// Totals:
//   - totalWeight = Σ weight × quantity
//   - productValue = Σ (totalPrice ?? value ?? price)
//   - totalItems = Σ quantity
func NewShipment(
	id kernel.UUID,
	draft Draft,
	pickup *address.Address,
	delivery *address.Address,
	now time.Time,
) (*Shipment, error) {
	if err := errors.Join(
		id.Validate(),
		draft.UserID.Validate(),
		validateAddress("pickupAddress", pickup, address.TypePickup),
		validateAddress("deliveryAddress", delivery, address.TypeDelivery),
		validateDraft(draft),
	); err != nil {
		return nil, err
	}

	now = now.UTC()
	currency := strings.ToUpper(strings.TrimSpace(draft.Currency))
	carrierType := ResolveCarrierType(draft.CarrierSlug, draft.DispatcherSlug)

	items := make([]*Item, 0, len(draft.Items))
	var (
		itemErrs     []error
		totalWeight  float64
		productValue float64
		totalItems   int
	)
	for i, d := range draft.Items {
		item, err := newItem(kernel.NewUUID(), id, i+1, d, currency)
		if err != nil {
			itemErrs = append(itemErrs, err)
			continue
		}
		items = append(items, item)
		totalWeight += item.weight * float64(item.quantity)
		productValue += d.declaredValue()
		totalItems += item.quantity
	}
	if err := errors.Join(itemErrs...); err != nil {
		return nil, err
	}

	metadata := draft.Metadata
	if metadata == nil {
		metadata = kernel.Metadata{}
	}

	carrierSlug := strings.ToLower(strings.TrimSpace(draft.CarrierSlug))
	if carrierSlug == "" && carrierType == CarrierInternal {
		carrierSlug = InternalCarrierSlug
	}

	s := &Shipment{
		state: State{
			ID:                       id,
			Reference:                NewReference(carrierType, now),
			OrderReference:           strings.TrimSpace(draft.OrderReference),
			UserID:                   draft.UserID,
			VendorName:               strings.TrimSpace(draft.VendorName),
			CarrierType:              carrierType,
			CarrierName:              strings.TrimSpace(draft.CarrierName),
			CarrierSlug:              carrierSlug,
			ExternalCarrierReference: strings.TrimSpace(draft.ExternalCarrierReference),
			ExternalRateID:           strings.TrimSpace(draft.ExternalRateID),
			TransportMode:            draft.TransportMode,
			ServiceLevel:             draft.ServiceLevel,
			DeliveryAddressID:        delivery.ID(),
			PickupAddressID:          pickup.ID(),
			ProductValue:             productValue,
			ShippingFee:              draft.ShippingFee,
			Currency:                 currency,
			TotalWeight:              totalWeight,
			TotalItems:               totalItems,
			Status:                   StatusPending,
			EstimatedDelivery:        strings.TrimSpace(draft.EstimatedDelivery),
			IsInsured:                draft.IsInsured,
			InsuranceAmount:          draft.InsuranceAmount,
			Metadata:                 metadata,
			Notes:                    strings.TrimSpace(draft.Notes),
			CreatedAt:                now,
			UpdatedAt:                now,
			Items:                    items,
		},
		pickupCity:    pickup.City(),
		deliveryCity:  delivery.City(),
		isConstructed: true,
	}

	s.appendTracking(StatusPending.TrackingStatus(), StatusChange{
		Description: "Shipment created",
		Source:      SourceSystem,
	}, kernel.Metadata{}, now)

	s.record(CreatedEvent{
		eventHeader:       s.header(now),
		UserID:            s.state.UserID,
		VendorName:        s.state.VendorName,
		CarrierType:       s.state.CarrierType,
		CarrierName:       s.state.CarrierName,
		PickupCity:        pickup.City(),
		DeliveryCity:      delivery.City(),
		Recipient:         Contact{Name: delivery.Name(), Email: delivery.Email(), Phone: delivery.Phone()},
		Sender:            Contact{Name: pickup.Name(), Email: pickup.Email(), Phone: pickup.Phone()},
		ProductValue:      s.state.ProductValue,
		ShippingFee:       s.state.ShippingFee,
		Currency:          s.state.Currency,
		TotalItems:        s.state.TotalItems,
		EstimatedDelivery: s.state.EstimatedDelivery,
	})

	return s, nil
}

// RestoreShipment rebuilds a shipment from storage. No events are recorded.
func RestoreShipment(state State) (*Shipment, error) {
	if err := errors.Join(state.ID.Validate(), state.UserID.Validate()); err != nil {
		return nil, err
	}
	if state.Metadata == nil {
		state.Metadata = kernel.Metadata{}
	}
	return &Shipment{state: state, isConstructed: true}, nil
}

func (s *Shipment) Validate() error {
	if s == nil || !s.isConstructed {
		return ErrShipmentIsNotConstructed
	}
	return nil
}

// Snapshot returns a copy of the persisted state.
func (s *Shipment) Snapshot() State {
	st := s.state
	st.Metadata = s.state.Metadata.Clone()
	st.Items = append([]*Item(nil), s.state.Items...)
	return st
}

func (s *Shipment) ID() kernel.UUID { return s.state.ID }

func (s *Shipment) Reference() string { return s.state.Reference }

func (s *Shipment) UserID() kernel.UUID { return s.state.UserID }

func (s *Shipment) Status() Status { return s.state.Status }

func (s *Shipment) CarrierType() CarrierType { return s.state.CarrierType }

func (s *Shipment) CarrierName() string { return s.state.CarrierName }

func (s *Shipment) CarrierSlug() string { return s.state.CarrierSlug }

func (s *Shipment) ExternalCarrierReference() string { return s.state.ExternalCarrierReference }

func (s *Shipment) TransportMode() kernel.TransportMode { return s.state.TransportMode }

func (s *Shipment) ServiceLevel() kernel.ServiceLevel { return s.state.ServiceLevel }

func (s *Shipment) TotalWeight() float64 { return s.state.TotalWeight }

func (s *Shipment) ShippingFee() float64 { return s.state.ShippingFee }

func (s *Shipment) EstimatedDelivery() string { return s.state.EstimatedDelivery }

func (s *Shipment) DriverID() *kernel.UUID { return s.state.DriverID }

func (s *Shipment) PickupAddressID() kernel.UUID { return s.state.PickupAddressID }

func (s *Shipment) DeliveryAddressID() kernel.UUID { return s.state.DeliveryAddressID }

func (s *Shipment) ActualDeliveryAt() *time.Time { return s.state.ActualDeliveryAt }

func (s *Shipment) Notes() string { return s.state.Notes }

func (s *Shipment) Metadata() kernel.Metadata { return s.state.Metadata.Clone() }

func (s *Shipment) Items() []*Item { return append([]*Item(nil), s.state.Items...) }

// RegenerateReference draws a new reference after a storage collision and
// rewrites the recorded events that carry the old one.
func (s *Shipment) RegenerateReference(now time.Time) {
	s.state.Reference = NewReference(s.state.CarrierType, now)

	for i, e := range s.domainEvents {
		switch ev := e.(type) {
		case CreatedEvent:
			ev.ShipmentReference = s.state.Reference
			s.domainEvents[i] = ev
		case DriverAssignedEvent:
			ev.ShipmentReference = s.state.Reference
			s.domainEvents[i] = ev
		case StatusChangedEvent:
			ev.ShipmentReference = s.state.Reference
			s.domainEvents[i] = ev
		}
	}
}

// PriceWith sets the shipping fee and estimated delivery from a route quote.
func (s *Shipment) PriceWith(fee float64, estimatedDelivery string, now time.Time) error {
	if fee < 0 {
		return errs.NewValueIsOutOfRangeError("shippingFee", fee, 0, "unbounded")
	}
	s.state.ShippingFee = fee
	if estimatedDelivery != "" {
		s.state.EstimatedDelivery = estimatedDelivery
	}
	s.state.UpdatedAt = now.UTC()

	for i, e := range s.domainEvents {
		if ev, ok := e.(CreatedEvent); ok {
			ev.ShippingFee = s.state.ShippingFee
			ev.EstimatedDelivery = s.state.EstimatedDelivery
			s.domainEvents[i] = ev
		}
	}
	return nil
}

// AssignDriver attaches a fleet driver. Only internal shipments take a driver,
// and only once.
func (s *Shipment) AssignDriver(d *driver.Driver, now time.Time) error {
	if err := d.Validate(); err != nil {
		return err
	}
	if s.state.CarrierType != CarrierInternal {
		return ErrDriverNotAllowed
	}
	if s.state.DriverID != nil {
		return ErrDriverAlreadyAssigned
	}
	if !d.IsActive() {
		return ErrDriverIsNotActive
	}

	id := d.ID()
	s.state.DriverID = &id
	s.state.UpdatedAt = now.UTC()

	md := d.Metadata()
	name, _ := md.String("name")
	email, _ := md.String("email")
	phone, _ := md.String("phone")

	s.record(DriverAssignedEvent{
		eventHeader:  s.header(now),
		DriverID:     id,
		DriverCode:   d.Code(),
		Driver:       Contact{Name: name, Email: email, Phone: phone},
		PickupCity:   s.pickupCity,
		DeliveryCity: s.deliveryCity,
	})
	return nil
}

// ChangeStatus applies a status change and returns the previous status.
//
// Entering delivered stamps ActualDeliveryAt. The tracking event carries the
// previous status in its metadata under "previousStatus".
func (s *Shipment) ChangeStatus(change StatusChange, now time.Time) (Status, error) {
	previous := s.state.Status
	if err := previous.ValidateTransition(change.Status); err != nil {
		return previous, err
	}

	s.apply(change, now)
	return previous, nil
}

// Cancel moves a pending shipment to cancelled and keeps the reason in notes.
// Any other current status is rejected with ErrCancelNotAllowed and nothing changes.
func (s *Shipment) Cancel(reason string, source Source, performedBy string, now time.Time) error {
	if s.state.Status != StatusPending {
		return fmt.Errorf("%w (current status is %s)", ErrCancelNotAllowed, s.state.Status)
	}

	reason = strings.TrimSpace(reason)
	s.state.Notes = reason

	s.apply(StatusChange{
		Status:      StatusCancelled,
		Description: "Shipment cancelled",
		Notes:       reason,
		Source:      source,
		PerformedBy: performedBy,
		Metadata:    kernel.Metadata{"reason": reason},
	}, now)
	return nil
}

// AttachMetadata stores value under key in the shipment metadata.
func (s *Shipment) AttachMetadata(key string, value any) error {
	updated, err := s.state.Metadata.With(key, value)
	if err != nil {
		return err
	}
	s.state.Metadata = updated
	return nil
}

// PendingTrackingEvents returns tracking events not yet stored.
func (s *Shipment) PendingTrackingEvents() []*TrackingEvent {
	return append([]*TrackingEvent(nil), s.pendingTracking...)
}

// ClearPendingTrackingEvents is called by repositories once events are stored.
func (s *Shipment) ClearPendingTrackingEvents() {
	s.pendingTracking = nil
}

func (s *Shipment) DomainEvents() []kernel.DomainEvent {
	return append([]kernel.DomainEvent(nil), s.domainEvents...)
}

func (s *Shipment) ClearDomainEvents() {
	s.domainEvents = nil
}

func (s *Shipment) apply(change StatusChange, now time.Time) {
	now = now.UTC()
	previous := s.state.Status

	s.state.Status = change.Status
	s.state.UpdatedAt = now
	if change.Status == StatusDelivered && previous != StatusDelivered {
		s.state.ActualDeliveryAt = &now
	}

	if change.Source == "" {
		change.Source = SourceSystem
	}

	s.appendTracking(change.Status.TrackingStatus(), change,
		kernel.Metadata{"previousStatus": string(previous)}, now)

	s.record(StatusChangedEvent{
		eventHeader:       s.header(now),
		UserID:            s.state.UserID,
		DeliveryAddressID: s.state.DeliveryAddressID,
		PreviousStatus:    previous,
		Status:            change.Status,
		Source:            change.Source,
		Description:       change.Description,
		Location:          change.Location,
	})
}

func (s *Shipment) appendTracking(status TrackingStatus, change StatusChange, extra kernel.Metadata, now time.Time) {
	metadata := change.Metadata
	if metadata == nil {
		metadata = kernel.Metadata{}
	}

	s.pendingTracking = append(s.pendingTracking, &TrackingEvent{
		id:          kernel.NewUUID(),
		shipmentID:  s.state.ID,
		status:      status,
		location:    strings.TrimSpace(change.Location),
		description: strings.TrimSpace(change.Description),
		notes:       strings.TrimSpace(change.Notes),
		source:      change.Source,
		performedBy: strings.TrimSpace(change.PerformedBy),
		metadata:    metadata.Merge(extra),
		createdAt:   now,
	})
}

func (s *Shipment) header(now time.Time) eventHeader {
	return eventHeader{
		ID:                kernel.NewUUID(),
		ShipmentID:        s.state.ID,
		ShipmentReference: s.state.Reference,
		OrderReference:    s.state.OrderReference,
		Occurred:          now.UTC(),
	}
}

func (s *Shipment) record(e kernel.DomainEvent) {
	s.domainEvents = append(s.domainEvents, e)
}

func validateAddress(name string, a *address.Address, want address.Type) error {
	if err := a.Validate(); err != nil {
		return errs.NewValueIsRequiredErrorWithCause(name, err)
	}
	if a.Type() != want {
		return errs.NewValueIsInvalidErrorWithCause(name, fmt.Errorf("expected a %s address, got %s", want, a.Type()))
	}
	return nil
}

func validateDraft(d Draft) error {
	var problems []error
	if len(d.Items) == 0 {
		problems = append(problems, errs.NewValueIsRequiredError("items"))
	}
	if !d.TransportMode.IsValid() {
		problems = append(problems, errs.NewValueIsInvalidError("transportMode"))
	}
	if _, err := kernel.ParseServiceLevel(string(d.ServiceLevel)); err != nil {
		problems = append(problems, err)
	}
	if strings.TrimSpace(d.Currency) == "" {
		problems = append(problems, errs.NewValueIsRequiredError("currency"))
	}
	if d.ShippingFee < 0 {
		problems = append(problems, errs.NewValueIsOutOfRangeError("shippingFee", d.ShippingFee, 0, "unbounded"))
	}
	if d.InsuranceAmount < 0 {
		problems = append(problems, errs.NewValueIsOutOfRangeError("insuranceAmount", d.InsuranceAmount, 0, "unbounded"))
	}
	return errors.Join(problems...)
}
