package queries_test

import (
	"context"
	"testing"
	"time"

	"marketplace/internal/adapters/out/postgres/orderrepo"
	"marketplace/internal/core/application/usecases/queries"
	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/core/domain/model/order"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
	gormpostgres "gorm.io/driver/postgres"
	"gorm.io/gorm"
)

// GetProviderOrdersQueryHandlerTestSuite exercises the provider order list
// read model, which doubles as the realtime reload payload.
type GetProviderOrdersQueryHandlerTestSuite struct {
	suite.Suite
	container *postgres.PostgresContainer
	db        *gorm.DB
	handler   queries.GetProviderOrdersQueryHandler
}

func (suite *GetProviderOrdersQueryHandlerTestSuite) SetupSuite() {
	ctx := context.Background()

	container, err := postgres.Run(ctx,
		"postgres:15-alpine",
		postgres.WithDatabase("testdb"),
		postgres.WithUsername("testuser"),
		postgres.WithPassword("testpass"),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(30*time.Second),
		),
	)
	suite.Require().NoError(err)
	suite.container = container

	connStr, err := container.ConnectionString(ctx, "sslmode=disable")
	suite.Require().NoError(err)

	db, err := gorm.Open(gormpostgres.Open(connStr), &gorm.Config{})
	suite.Require().NoError(err)
	suite.db = db

	suite.Require().NoError(db.AutoMigrate(&orderrepo.OrderDTO{}))

	suite.handler = queries.NewGetProviderOrdersQueryHandler(db)
}

func (suite *GetProviderOrdersQueryHandlerTestSuite) SetupTest() {
	suite.Require().NoError(suite.db.Exec("TRUNCATE TABLE orders").Error)
}

func (suite *GetProviderOrdersQueryHandlerTestSuite) TearDownSuite() {
	if suite.container != nil {
		suite.Require().NoError(suite.container.Terminate(context.Background()))
	}
}

func (suite *GetProviderOrdersQueryHandlerTestSuite) TestHandle_EmptyDatabase_ReturnsEmptySlice() {
	query, err := queries.NewGetProviderOrdersQuery(kernel.NewUUID())
	suite.Require().NoError(err)

	result, err := suite.handler.Handle(context.Background(), query)

	suite.Require().NoError(err)
	suite.NotNil(result)
	suite.Empty(result)
}

func (suite *GetProviderOrdersQueryHandlerTestSuite) TestHandle_ReturnsOnlyOwnOrdersNewestFirst() {
	base := time.Date(2025, 3, 10, 12, 0, 0, 0, time.UTC)
	providerID := kernel.NewUUID()
	otherProviderID := kernel.NewUUID()

	oldest := suite.seedOrder(providerID, "ORD-1001", base)
	newest := suite.seedOrder(providerID, "ORD-1003", base.Add(2*time.Hour))
	middle := suite.seedOrder(providerID, "ORD-1002", base.Add(time.Hour))
	suite.seedOrder(otherProviderID, "ORD-9001", base.Add(3*time.Hour))

	query, err := queries.NewGetProviderOrdersQuery(providerID)
	suite.Require().NoError(err)

	result, err := suite.handler.Handle(context.Background(), query)

	suite.Require().NoError(err)
	suite.Require().Len(result, 3)
	suite.True(result[0].ID.IsEqual(newest))
	suite.True(result[1].ID.IsEqual(middle))
	suite.True(result[2].ID.IsEqual(oldest))
}

func (suite *GetProviderOrdersQueryHandlerTestSuite) TestHandle_MapsAllStatusAxesAndHoldFields() {
	providerID := kernel.NewUUID()
	orderID := kernel.NewUUID()

	createdAt := time.Date(2025, 3, 10, 12, 0, 0, 0, time.UTC)
	acceptedAt := createdAt.Add(5 * time.Minute)
	preparingAt := createdAt.Add(10 * time.Minute)
	readyAt := createdAt.Add(25 * time.Minute)
	outForDeliveryAt := createdAt.Add(30 * time.Minute)
	deliveredAt := createdAt.Add(55 * time.Minute)
	holdReason := "refund_pending"
	holdUntil := createdAt.Add(72 * time.Hour)

	suite.Require().NoError(suite.db.Create(&orderrepo.OrderDTO{
		ID:               orderID.Bytes(),
		ProviderID:       providerID.Bytes(),
		OrderNumber:      "ORD-1001",
		Total:            149.5,
		PaymentMethod:    "cash",
		Status:           "delivered",
		PaymentStatus:    "completed",
		SettlementStatus: "on_hold",
		HoldReason:       &holdReason,
		HoldUntil:        &holdUntil,
		CreatedAt:        createdAt,
		AcceptedAt:       &acceptedAt,
		PreparingAt:      &preparingAt,
		ReadyAt:          &readyAt,
		OutForDeliveryAt: &outForDeliveryAt,
		DeliveredAt:      &deliveredAt,
	}).Error)

	query, err := queries.NewGetProviderOrdersQuery(providerID)
	suite.Require().NoError(err)

	result, err := suite.handler.Handle(context.Background(), query)

	suite.Require().NoError(err)
	suite.Require().Len(result, 1)

	row := result[0]
	suite.True(row.ID.IsEqual(orderID))
	suite.Equal("ORD-1001", row.OrderNumber)
	suite.InDelta(149.5, row.Total, 0.001)
	suite.Equal(order.Cash, row.PaymentMethod)
	suite.Equal(order.Delivered, row.Status)
	suite.Equal(order.PaymentCompleted, row.PaymentStatus)
	suite.Equal(order.OnHold, row.SettlementStatus)

	suite.Require().NotNil(row.HoldReason)
	suite.Equal(holdReason, *row.HoldReason)
	suite.Require().NotNil(row.HoldUntil)
	suite.WithinDuration(holdUntil, *row.HoldUntil, time.Millisecond)

	suite.WithinDuration(createdAt, row.CreatedAt, time.Millisecond)
	suite.Require().NotNil(row.AcceptedAt)
	suite.WithinDuration(acceptedAt, *row.AcceptedAt, time.Millisecond)
	suite.Require().NotNil(row.DeliveredAt)
	suite.WithinDuration(deliveredAt, *row.DeliveredAt, time.Millisecond)
	suite.Nil(row.CancelledAt)
}

func (suite *GetProviderOrdersQueryHandlerTestSuite) TestHandle_InvalidQuery_ReturnsError() {
	invalidQuery := queries.GetProviderOrdersQuery{}

	result, err := suite.handler.Handle(context.Background(), invalidQuery)

	suite.Require().Error(err)
	suite.Nil(result)
	suite.Contains(err.Error(), "must be created via NewGetProviderOrdersQuery constructor")
}

// seedOrder inserts a fresh pending cash order with the given creation time.
func (suite *GetProviderOrdersQueryHandlerTestSuite) seedOrder(
	providerID kernel.UUID,
	orderNumber string,
	createdAt time.Time,
) kernel.UUID {
	orderID := kernel.NewUUID()
	suite.Require().NoError(suite.db.Create(&orderrepo.OrderDTO{
		ID:               orderID.Bytes(),
		ProviderID:       providerID.Bytes(),
		OrderNumber:      orderNumber,
		Total:            99,
		PaymentMethod:    "cash",
		Status:           "pending",
		PaymentStatus:    "pending",
		SettlementStatus: "eligible",
		CreatedAt:        createdAt,
	}).Error)
	return orderID
}

func TestGetProviderOrdersQueryHandlerTestSuite(t *testing.T) {
	suite.Run(t, new(GetProviderOrdersQueryHandlerTestSuite))
}

func TestNewGetProviderOrdersQuery(t *testing.T) {
	t.Run("should create query with valid provider id", func(t *testing.T) {
		providerID := kernel.NewUUID()

		query, err := queries.NewGetProviderOrdersQuery(providerID)

		require.NoError(t, err)
		require.NoError(t, query.Validate())
		assert.True(t, query.ProviderID().IsEqual(providerID))
	})

	t.Run("should fail with invalid provider id", func(t *testing.T) {
		var invalidID kernel.UUID

		_, err := queries.NewGetProviderOrdersQuery(invalidID)

		require.Error(t, err)
	})
}
