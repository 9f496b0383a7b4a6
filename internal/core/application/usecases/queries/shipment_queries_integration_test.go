package queries_test

import (
	"context"
	"strings"
	"testing"
	"time"

	"fulfillment/internal/adapters/out/postgres/addressrepo"
	"fulfillment/internal/adapters/out/postgres/driverrepo"
	"fulfillment/internal/adapters/out/postgres/pgtest"
	"fulfillment/internal/adapters/out/postgres/shipmentrepo"
	"fulfillment/internal/core/application/usecases/queries"
	"fulfillment/internal/core/domain/model/driver"
	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/shipment"
	"fulfillment/internal/pkg/errs"

	"github.com/stretchr/testify/suite"
)

type nopTracker struct{}

func (nopTracker) TrackAggregate(kernel.UUID, any) {}

type ShipmentQueriesTestSuite struct {
	suite.Suite
	database     *pgtest.Database
	trackHandler queries.TrackShipmentQueryHandler
	listHandler  queries.ListShipmentsQueryHandler
}

func (suite *ShipmentQueriesTestSuite) SetupSuite() {
	database, err := pgtest.Start(context.Background())
	suite.Require().NoError(err)

	suite.database = database
	suite.trackHandler = queries.NewTrackShipmentQueryHandler(database.DB)
	suite.listHandler = queries.NewListShipmentsQueryHandler(database.DB)
}

func (suite *ShipmentQueriesTestSuite) SetupTest() {
	suite.Require().NoError(suite.database.Truncate())
}

func (suite *ShipmentQueriesTestSuite) TearDownSuite() {
	suite.Require().NoError(suite.database.Terminate(context.Background()))
}

func (suite *ShipmentQueriesTestSuite) TestTrack_AdminSeesEverything() {
	ctx := context.Background()
	s := suite.store(ctx, shipment.InternalCarrierSlug, nil, shipment.StatusPending)

	resp, err := suite.track(ctx, kernel.RoleAdmin, kernel.NewUUID(), strings.ToLower(s.Reference()))
	suite.Require().NoError(err)

	suite.Equal(s.ID().Bytes(), resp.Shipment.ID)
	suite.Equal("pending", resp.Shipment.Status)
	suite.Equal("web", resp.Shipment.Metadata["channel"])

	suite.Require().Len(resp.Items, 2)
	suite.Equal(shipment.ItemSequenceID(1), resp.Items[0].ItemID)
	suite.Require().NotNil(resp.Items[1].Dimensions)
	suite.InDelta(10, resp.Items[1].Dimensions.Length, 1e-9)

	suite.Equal("Lagos", resp.PickupAddress.City)
	suite.Equal("Abuja", resp.DeliveryAddress.City)
	suite.Equal("Near the mosque", resp.DeliveryAddress.Metadata["landmark"])

	suite.Require().Len(resp.TrackingEvents, 1)
	suite.Equal("created", resp.TrackingEvents[0].Status)
	suite.Equal("system", resp.TrackingEvents[0].Source)
}

func (suite *ShipmentQueriesTestSuite) TestTrack_CustomerScope() {
	ctx := context.Background()
	s := suite.store(ctx, shipment.InternalCarrierSlug, nil, shipment.StatusPending)

	_, err := suite.track(ctx, kernel.RoleCustomer, s.UserID(), s.Reference())
	suite.Require().NoError(err, "Owner should see the shipment")

	_, err = suite.track(ctx, kernel.RoleCustomer, kernel.NewUUID(), s.Reference())
	suite.Require().ErrorIs(err, errs.ErrObjectNotFound, "Other customers should not")
}

func (suite *ShipmentQueriesTestSuite) TestTrack_DriverScope() {
	ctx := context.Background()
	driverUser := kernel.NewUUID()
	d, err := driver.RestoreDriver(kernel.NewUUID(), "DRV-010", &driverUser, driver.VehicleBike, "LAG-010",
		driver.StatusActive, 0, 0, nil)
	suite.Require().NoError(err)
	suite.Require().NoError(driverrepo.NewGormDriverRepository(suite.database.DB, nopTracker{}).Add(ctx, d))

	assigned := suite.store(ctx, shipment.InternalCarrierSlug, d, shipment.StatusPending)
	other := suite.store(ctx, shipment.InternalCarrierSlug, nil, shipment.StatusPending)

	_, err = suite.track(ctx, kernel.RoleDriver, driverUser, assigned.Reference())
	suite.Require().NoError(err)

	_, err = suite.track(ctx, kernel.RoleDriver, driverUser, other.Reference())
	suite.Require().ErrorIs(err, errs.ErrObjectNotFound)
}

func (suite *ShipmentQueriesTestSuite) TestTrack_UnknownReference() {
	_, err := suite.track(context.Background(), kernel.RoleAdmin, kernel.NewUUID(), "OBANA-20250101-00000000")
	suite.Require().ErrorIs(err, errs.ErrObjectNotFound)
}

func (suite *ShipmentQueriesTestSuite) TestList_FiltersAndStats() {
	ctx := context.Background()
	suite.store(ctx, shipment.InternalCarrierSlug, nil, shipment.StatusPending)
	suite.store(ctx, shipment.InternalCarrierSlug, nil, shipment.StatusInTransit)
	external := suite.store(ctx, "gig", nil, shipment.StatusPending)

	all, err := suite.list(queries.ShipmentFilter{})
	suite.Require().NoError(err)
	suite.EqualValues(3, all.Total)
	suite.Len(all.Shipments, 3)
	suite.Equal(1, all.Page)
	suite.Equal(queries.DefaultPageSize, all.Limit)
	suite.Equal(map[string]int64{"pending": 2, "in_transit": 1}, all.Stats.ByStatus)
	suite.Equal(map[string]int64{"internal": 2, "external": 1}, all.Stats.ByCarrier)
	suite.Require().Len(all.Stats.Last7Days, 7)
	suite.EqualValues(3, all.Stats.Last7Days[6].Count)
	suite.Equal(time.Now().UTC().Format("2006-01-02"), all.Stats.Last7Days[6].Date)

	pending, err := suite.list(queries.ShipmentFilter{Status: "PENDING"})
	suite.Require().NoError(err)
	suite.EqualValues(2, pending.Total)

	externals, err := suite.list(queries.ShipmentFilter{CarrierType: "external"})
	suite.Require().NoError(err)
	suite.Require().Len(externals.Shipments, 1)
	suite.Equal(external.Reference(), externals.Shipments[0].ShipmentReference)

	ref := external.Reference()
	searched, err := suite.list(queries.ShipmentFilter{Search: strings.ToLower(ref[len(ref)-8:])})
	suite.Require().NoError(err)
	suite.Require().EqualValues(1, searched.Total)
	suite.Equal(ref, searched.Shipments[0].ShipmentReference)

	future := time.Now().Add(time.Hour)
	none, err := suite.list(queries.ShipmentFilter{From: &future})
	suite.Require().NoError(err)
	suite.EqualValues(0, none.Total)
	suite.Empty(none.Shipments)
	suite.EqualValues(3, none.Stats.ByCarrier["internal"]+none.Stats.ByCarrier["external"],
		"Statistics ignore the filters")
}

func (suite *ShipmentQueriesTestSuite) TestList_Pagination() {
	ctx := context.Background()
	for range 3 {
		suite.store(ctx, shipment.InternalCarrierSlug, nil, shipment.StatusPending)
	}

	page, err := suite.list(queries.ShipmentFilter{Page: 2, Limit: 2})
	suite.Require().NoError(err)
	suite.EqualValues(3, page.Total)
	suite.Len(page.Shipments, 1)
}

func (suite *ShipmentQueriesTestSuite) TestNewListShipmentsQuery_Invalid() {
	from := time.Now()
	to := from.Add(-time.Hour)

	_, err := queries.NewListShipmentsQuery(queries.ShipmentFilter{
		Page: -1, Limit: 500, Status: "lost", CarrierType: "drone", From: &from, To: &to,
	})

	suite.Require().ErrorIs(err, errs.ErrValueIsOutOfRange)
	suite.Require().ErrorIs(err, errs.ErrValueIsInvalid)
}

func (suite *ShipmentQueriesTestSuite) track(
	ctx context.Context,
	role kernel.Role,
	userID kernel.UUID,
	reference string,
) (queries.TrackShipmentQueryResponse, error) {
	p, err := kernel.NewPrincipal(userID, role)
	suite.Require().NoError(err)
	query, err := queries.NewTrackShipmentQuery(p, reference)
	suite.Require().NoError(err)
	return suite.trackHandler.Handle(ctx, query)
}

func (suite *ShipmentQueriesTestSuite) list(f queries.ShipmentFilter) (queries.ListShipmentsQueryResponse, error) {
	query, err := queries.NewListShipmentsQuery(f)
	suite.Require().NoError(err)
	return suite.listHandler.Handle(context.Background(), query)
}

// store persists a shipment in the given status, optionally assigned to d.
func (suite *ShipmentQueriesTestSuite) store(
	ctx context.Context,
	carrierSlug string,
	d *driver.Driver,
	status shipment.Status,
) *shipment.Shipment {
	db := suite.database.DB
	pickup, delivery := pgtest.Addresses(suite.T())
	addresses := addressrepo.NewGormAddressRepository(db)
	suite.Require().NoError(addresses.Add(ctx, pickup))
	suite.Require().NoError(addresses.Add(ctx, delivery))

	s := pgtest.Shipment(suite.T(), carrierSlug, pickup, delivery)
	if d != nil {
		suite.Require().NoError(s.AssignDriver(d, time.Now()))
	}

	repo := shipmentrepo.NewGormShipmentRepository(db, nopTracker{})
	suite.Require().NoError(repo.Add(ctx, s))

	if status != shipment.StatusPending {
		_, err := s.ChangeStatus(shipment.StatusChange{Status: status, Source: shipment.SourceAdmin}, time.Now())
		suite.Require().NoError(err)
		suite.Require().NoError(repo.Update(ctx, s))
	}
	return s
}

func TestShipmentQueriesTestSuite(t *testing.T) {
	suite.Run(t, new(ShipmentQueriesTestSuite))
}
