package commands

import (
	"context"
	"errors"
	"strings"
	"time"

	"fulfillment/internal/core/domain/model/address"
	"fulfillment/internal/core/domain/model/driver"
	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/shipment"
	"fulfillment/internal/core/domain/services"
	"fulfillment/internal/core/ports"

	"go.uber.org/zap"
)

// maxReferenceAttempts bounds the retries after a shipment reference collision.
const maxReferenceAttempts = 5

// CreateShipmentResult is what the caller learns about a new shipment.
type CreateShipmentResult struct {
	ShipmentID        kernel.UUID
	Reference         string
	CarrierType       shipment.CarrierType
	CarrierName       string
	Status            shipment.Status
	ShippingFee       float64
	EstimatedDelivery string
	ExternalReference string
	DriverID          *kernel.UUID
}

// CreateShipmentCommandHandler runs the shipment creation transaction.
//
// Within one unit of work it registers the delivery and pickup addresses,
// builds the shipment, prices it from the route catalog when no fee was given
// (internal carrier only), claims a driver (internal carrier only) and stores
// the shipment with its items and the created tracking event. Post-commit side
// effects are driven by the outbox rows the unit of work writes on commit.
//
// Driver assignment and quoting are best effort: their failures are logged and
// the shipment is created without them.
type CreateShipmentCommandHandler struct {
	uowFactory      CreateShipmentUoWFactory
	matcher         services.RouteMatcher
	selector        services.DriverSelector
	defaultCurrency string
	logger          *zap.Logger
}

func NewCreateShipmentCommandHandler(
	uowFactory CreateShipmentUoWFactory,
	defaultCurrency string,
	logger *zap.Logger,
) CreateShipmentCommandHandler {
	return CreateShipmentCommandHandler{
		uowFactory:      uowFactory,
		matcher:         services.NewRouteMatcher(),
		selector:        services.NewDriverSelector(),
		defaultCurrency: defaultCurrency,
		logger:          logger.With(zap.String("component", "create_shipment")),
	}
}

func (h *CreateShipmentCommandHandler) Handle(ctx context.Context, cmd CreateShipmentCommand) (CreateShipmentResult, error) {
	if err := cmd.Validate(); err != nil {
		return CreateShipmentResult{}, err
	}

	now := time.Now().UTC()
	draft := cmd.Draft()
	if strings.TrimSpace(draft.Currency) == "" {
		draft.Currency = h.defaultCurrency
	}

	delivery, err := address.NewAddress(kernel.NewUUID(), address.TypeDelivery, cmd.DeliveryAddress())
	if err != nil {
		return CreateShipmentResult{}, err
	}
	pickup, err := address.NewAddress(kernel.NewUUID(), address.TypePickup, cmd.PickupAddress())
	if err != nil {
		return CreateShipmentResult{}, err
	}

	s, err := shipment.NewShipment(cmd.ShipmentID(), draft, pickup, delivery, now)
	if err != nil {
		return CreateShipmentResult{}, err
	}

	uow := h.uowFactory.Create()
	if err = uow.Begin(ctx); err != nil {
		return CreateShipmentResult{}, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	addressRepo := uow.AddressRepository()
	if err = addressRepo.Add(ctx, delivery); err != nil {
		return CreateShipmentResult{}, err
	}
	if err = addressRepo.Add(ctx, pickup); err != nil {
		return CreateShipmentResult{}, err
	}

	if s.CarrierType() == shipment.CarrierInternal {
		if cmd.NeedsQuote() {
			h.quote(ctx, uow.RouteRepository(), s, pickup.City(), delivery.City(), now)
		}
		h.assignDriver(ctx, uow.DriverRepository(), s, now)
	}

	if err = h.add(ctx, uow.ShipmentRepository(), s, now); err != nil {
		return CreateShipmentResult{}, err
	}

	if err = uow.Commit(ctx); err != nil {
		return CreateShipmentResult{}, err
	}

	h.logger.Info("shipment created",
		zap.String("shipment_id", s.ID().String()),
		zap.String("reference", s.Reference()),
		zap.String("carrier_type", s.CarrierType().String()),
	)

	return CreateShipmentResult{
		ShipmentID:        s.ID(),
		Reference:         s.Reference(),
		CarrierType:       s.CarrierType(),
		CarrierName:       s.CarrierName(),
		Status:            s.Status(),
		ShippingFee:       s.ShippingFee(),
		EstimatedDelivery: s.EstimatedDelivery(),
		ExternalReference: s.ExternalCarrierReference(),
		DriverID:          s.DriverID(),
	}, nil
}

// add inserts the shipment, drawing a fresh reference when the generated one is taken.
func (h *CreateShipmentCommandHandler) add(ctx context.Context, repo ports.ShipmentRepository, s *shipment.Shipment, now time.Time) error {
	for attempt := 1; ; attempt++ {
		err := repo.Add(ctx, s)
		if err == nil {
			return nil
		}
		if !errors.Is(err, ports.ErrDuplicateShipmentReference) || attempt >= maxReferenceAttempts {
			return err
		}

		h.logger.Warn("shipment reference collision, regenerating",
			zap.String("reference", s.Reference()),
			zap.Int("attempt", attempt),
		)
		s.RegenerateReference(now)
	}
}

func (h *CreateShipmentCommandHandler) quote(
	ctx context.Context,
	repo ports.RouteRepository,
	s *shipment.Shipment,
	origin, destination string,
	now time.Time,
) {
	templates, err := repo.List(ctx)
	if err != nil {
		h.logger.Warn("route catalog unavailable, shipment left unpriced", zap.Error(err))
		return
	}

	match, err := h.matcher.Match(services.RouteQuery{
		OriginCity:      origin,
		DestinationCity: destination,
		TransportMode:   s.TransportMode().String(),
		ServiceLevel:    s.ServiceLevel().String(),
		Weight:          s.TotalWeight(),
	}, templates)
	if err != nil {
		h.logger.Info("no route for shipment, shipment left unpriced",
			zap.String("origin", origin),
			zap.String("destination", destination),
			zap.Float64("weight", s.TotalWeight()),
			zap.Error(err),
		)
		return
	}

	if err = s.PriceWith(match.Bracket.Price, match.Bracket.ETA, now); err != nil {
		h.logger.Warn("route price rejected", zap.Error(err))
	}
}

func (h *CreateShipmentCommandHandler) assignDriver(
	ctx context.Context,
	repo ports.DriverRepository,
	s *shipment.Shipment,
	now time.Time,
) {
	candidates, err := repo.ListAvailableForUpdate(ctx, driver.VehiclesFor(s.TransportMode()), 1)
	if err != nil {
		h.logger.Warn("driver lookup failed, shipment left unassigned", zap.Error(err))
		return
	}

	chosen, err := h.selector.Assign(s, candidates, now)
	if err != nil {
		h.logger.Info("no driver assigned",
			zap.String("transport_mode", s.TransportMode().String()),
			zap.Error(err),
		)
		return
	}

	h.logger.Info("driver assigned",
		zap.String("shipment_id", s.ID().String()),
		zap.String("driver_code", chosen.Code()),
	)
}
