package usecase

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	domain "github.com/tn0901/shop-api/internal/entity"
	"github.com/tn0901/shop-api/internal/logging"
)

type mockOrderRepo struct {
	mock.Mock
}

func (m *mockOrderRepo) Save(ctx context.Context, o *domain.Order) error {
	args := m.Called(ctx, o)
	return args.Error(0)
}

func (m *mockOrderRepo) FindByUser(ctx context.Context, userID string) ([]domain.Order, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Order), args.Error(1)
}

func (m *mockOrderRepo) FindAll(ctx context.Context) ([]domain.Order, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Order), args.Error(1)
}

func (m *mockOrderRepo) Count(ctx context.Context) (int64, error) {
	args := m.Called(ctx)
	return args.Get(0).(int64), args.Error(1)
}

type mockGateway struct {
	mock.Mock
}

func (m *mockGateway) GetByID(ctx context.Context, id string) (*ProductInfo, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*ProductInfo), args.Error(1)
}

func (m *mockGateway) GetAll(ctx context.Context) ([]ProductInfo, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]ProductInfo), args.Error(1)
}

type mockEvents struct {
	mock.Mock
}

func (m *mockEvents) PublishValidated(ctx context.Context, msg OrderValidatedMsg) error {
	args := m.Called(ctx, msg)
	return args.Error(0)
}

func quietCtx() context.Context {
	discard := slog.New(slog.NewTextHandler(io.Discard, nil))
	return logging.WithCtx(context.Background(), discard)
}

func TestCreateOrder_Success(t *testing.T) {
	repo := new(mockOrderRepo)
	gw := new(mockGateway)
	uc := NewCreateOrder(repo, gw, nil)

	gw.On("GetByID", mock.Anything, "P1").
		Return(&ProductInfo{ID: "P1", Name: "Mouse", Price: 25.0, Quantity: 50}, nil)
	gw.On("GetByID", mock.Anything, "P2").
		Return(&ProductInfo{ID: "P2", Name: "Keyboard", Price: 80.0, Quantity: 30}, nil)
	repo.On("Save", mock.Anything, mock.AnythingOfType("*domain.Order")).Return(nil)

	order, err := uc.Execute(quietCtx(), CreateOrderInput{
		UserID: "user-1",
		Items: []ItemInput{
			{ProductID: "P1", Quantity: 2},
			{ProductID: "P2", Quantity: 1},
		},
	})

	require.NoError(t, err)
	assert.Equal(t, domain.StatusValidated, order.Status)
	assert.Equal(t, "user-1", order.UserID)
	assert.NotEmpty(t, order.ID)
	require.Len(t, order.Items, 2)
	// items keep the caller-supplied order
	assert.Equal(t, "P1", order.Items[0].ProductID)
	assert.Equal(t, "P2", order.Items[1].ProductID)
	assert.Equal(t, 25.0, order.Items[0].Price)
	assert.Equal(t, 80.0, order.Items[1].Price)
	assert.Equal(t, 2*25.0+1*80.0, order.TotalAmount)
	repo.AssertExpectations(t)
	gw.AssertExpectations(t)
}

func TestCreateOrder_SingleItemSnapshot(t *testing.T) {
	repo := new(mockOrderRepo)
	gw := new(mockGateway)
	uc := NewCreateOrder(repo, gw, nil)

	gw.On("GetByID", mock.Anything, "P1").
		Return(&ProductInfo{ID: "P1", Name: "Mouse", Price: 25.0, Quantity: 50}, nil)
	repo.On("Save", mock.Anything, mock.Anything).Return(nil)

	order, err := uc.Execute(quietCtx(), CreateOrderInput{
		UserID: "user-1",
		Items:  []ItemInput{{ProductID: "P1", Quantity: 2}},
	})

	require.NoError(t, err)
	require.Len(t, order.Items, 1)
	assert.Equal(t, 2, order.Items[0].Quantity)
	assert.Equal(t, 25.0, order.Items[0].Price)
	assert.Equal(t, 50.0, order.TotalAmount)
	assert.Equal(t, domain.StatusValidated, order.Status)
}

func TestCreateOrder_InsufficientStock(t *testing.T) {
	repo := new(mockOrderRepo)
	gw := new(mockGateway)
	uc := NewCreateOrder(repo, gw, nil)

	gw.On("GetByID", mock.Anything, "P1").
		Return(&ProductInfo{ID: "P1", Name: "Mouse", Price: 25.0, Quantity: 50}, nil)
	gw.On("GetByID", mock.Anything, "P2").
		Return(&ProductInfo{ID: "P2", Name: "Monitor 4K", Price: 400.0, Quantity: 10}, nil)

	order, err := uc.Execute(quietCtx(), CreateOrderInput{
		UserID: "user-1",
		Items: []ItemInput{
			{ProductID: "P1", Quantity: 2},
			{ProductID: "P2", Quantity: 100},
		},
	})

	require.Error(t, err)
	assert.Nil(t, order)

	var stock *InsufficientStockError
	require.ErrorAs(t, err, &stock)
	assert.Equal(t, "Monitor 4K", stock.Name)
	assert.Equal(t, 10, stock.Available)
	assert.Equal(t, 100, stock.Requested)

	// nothing persisted, even though P1 had already validated
	repo.AssertNotCalled(t, "Save", mock.Anything, mock.Anything)
}

func TestCreateOrder_ProductNotFound(t *testing.T) {
	repo := new(mockOrderRepo)
	gw := new(mockGateway)
	uc := NewCreateOrder(repo, gw, nil)

	gw.On("GetByID", mock.Anything, "P1").
		Return(&ProductInfo{ID: "P1", Name: "Mouse", Price: 25.0, Quantity: 50}, nil)
	gw.On("GetByID", mock.Anything, "ghost").Return(nil, ErrProductNotFound)

	order, err := uc.Execute(quietCtx(), CreateOrderInput{
		UserID: "user-1",
		Items: []ItemInput{
			{ProductID: "P1", Quantity: 1},
			{ProductID: "ghost", Quantity: 1},
			{ProductID: "P3", Quantity: 1},
		},
	})

	require.ErrorIs(t, err, ErrProductNotFound)
	assert.Nil(t, order)
	repo.AssertNotCalled(t, "Save", mock.Anything, mock.Anything)
	// validation short-circuits: the third item is never looked up
	gw.AssertNotCalled(t, "GetByID", mock.Anything, "P3")
}

func TestCreateOrder_InventoryUnavailable(t *testing.T) {
	repo := new(mockOrderRepo)
	gw := new(mockGateway)
	uc := NewCreateOrder(repo, gw, nil)

	gw.On("GetByID", mock.Anything, "P1").
		Return(&ProductInfo{ID: "P1", Name: "Mouse", Price: 25.0, Quantity: 50}, nil)
	gw.On("GetByID", mock.Anything, "P2").Return(nil, ErrInventoryUnavailable)

	order, err := uc.Execute(quietCtx(), CreateOrderInput{
		UserID: "user-1",
		Items: []ItemInput{
			{ProductID: "P1", Quantity: 1},
			{ProductID: "P2", Quantity: 1},
		},
	})

	require.ErrorIs(t, err, ErrInventoryUnavailable)
	assert.Nil(t, order)
	repo.AssertNotCalled(t, "Save", mock.Anything, mock.Anything)
}

func TestCreateOrder_CancellationAbortsWithoutPersisting(t *testing.T) {
	repo := new(mockOrderRepo)
	gw := new(mockGateway)
	uc := NewCreateOrder(repo, gw, nil)

	gw.On("GetByID", mock.Anything, "P1").
		Return(&ProductInfo{ID: "P1", Name: "Mouse", Price: 25.0, Quantity: 50}, nil)
	// the context dies mid-validation, surfaced by the lookup on the second item
	gw.On("GetByID", mock.Anything, "P2").Return(nil, context.Canceled)

	order, err := uc.Execute(quietCtx(), CreateOrderInput{
		UserID: "user-1",
		Items: []ItemInput{
			{ProductID: "P1", Quantity: 1},
			{ProductID: "P2", Quantity: 1},
			{ProductID: "P3", Quantity: 1},
		},
	})

	require.ErrorIs(t, err, context.Canceled)
	assert.Nil(t, order)
	repo.AssertNotCalled(t, "Save", mock.Anything, mock.Anything)
	gw.AssertNotCalled(t, "GetByID", mock.Anything, "P3")
}

func TestCreateOrder_SaveFailure(t *testing.T) {
	repo := new(mockOrderRepo)
	gw := new(mockGateway)
	uc := NewCreateOrder(repo, gw, nil)

	gw.On("GetByID", mock.Anything, "P1").
		Return(&ProductInfo{ID: "P1", Name: "Mouse", Price: 25.0, Quantity: 50}, nil)
	dbErr := errors.New("connection lost")
	repo.On("Save", mock.Anything, mock.Anything).Return(dbErr)

	order, err := uc.Execute(quietCtx(), CreateOrderInput{
		UserID: "user-1",
		Items:  []ItemInput{{ProductID: "P1", Quantity: 1}},
	})

	require.ErrorIs(t, err, dbErr)
	assert.Nil(t, order)
}

func TestCreateOrder_NoDeduplication(t *testing.T) {
	repo := new(mockOrderRepo)
	gw := new(mockGateway)
	uc := NewCreateOrder(repo, gw, nil)

	gw.On("GetByID", mock.Anything, "P1").
		Return(&ProductInfo{ID: "P1", Name: "Mouse", Price: 25.0, Quantity: 50}, nil)
	repo.On("Save", mock.Anything, mock.Anything).Return(nil)

	in := CreateOrderInput{
		UserID: "user-1",
		Items:  []ItemInput{{ProductID: "P1", Quantity: 1}},
	}

	first, err := uc.Execute(quietCtx(), in)
	require.NoError(t, err)
	second, err := uc.Execute(quietCtx(), in)
	require.NoError(t, err)

	// identical input, two distinct persisted orders
	assert.NotEqual(t, first.ID, second.ID)
	repo.AssertNumberOfCalls(t, "Save", 2)
}

func TestCreateOrder_PublishesEventAfterCommit(t *testing.T) {
	repo := new(mockOrderRepo)
	gw := new(mockGateway)
	events := new(mockEvents)
	uc := NewCreateOrder(repo, gw, events)

	gw.On("GetByID", mock.Anything, "P1").
		Return(&ProductInfo{ID: "P1", Name: "Mouse", Price: 25.0, Quantity: 50}, nil)
	repo.On("Save", mock.Anything, mock.Anything).Return(nil)
	events.On("PublishValidated", mock.Anything, mock.MatchedBy(func(msg OrderValidatedMsg) bool {
		return msg.UserID == "user-1" && msg.TotalAmount == 50.0 && msg.ItemCount == 1
	})).Return(nil)

	_, err := uc.Execute(quietCtx(), CreateOrderInput{
		UserID: "user-1",
		Items:  []ItemInput{{ProductID: "P1", Quantity: 2}},
	})

	require.NoError(t, err)
	events.AssertExpectations(t)
}

func TestCreateOrder_PublishFailureDoesNotFailOrder(t *testing.T) {
	repo := new(mockOrderRepo)
	gw := new(mockGateway)
	events := new(mockEvents)
	uc := NewCreateOrder(repo, gw, events)

	gw.On("GetByID", mock.Anything, "P1").
		Return(&ProductInfo{ID: "P1", Name: "Mouse", Price: 25.0, Quantity: 50}, nil)
	repo.On("Save", mock.Anything, mock.Anything).Return(nil)
	events.On("PublishValidated", mock.Anything, mock.Anything).Return(errors.New("broker down"))

	order, err := uc.Execute(quietCtx(), CreateOrderInput{
		UserID: "user-1",
		Items:  []ItemInput{{ProductID: "P1", Quantity: 1}},
	})

	require.NoError(t, err)
	assert.Equal(t, domain.StatusValidated, order.Status)
}

func TestCreateOrder_NoEventOnValidationFailure(t *testing.T) {
	repo := new(mockOrderRepo)
	gw := new(mockGateway)
	events := new(mockEvents)
	uc := NewCreateOrder(repo, gw, events)

	gw.On("GetByID", mock.Anything, "P1").Return(nil, ErrProductNotFound)

	_, err := uc.Execute(quietCtx(), CreateOrderInput{
		UserID: "user-1",
		Items:  []ItemInput{{ProductID: "P1", Quantity: 1}},
	})

	require.ErrorIs(t, err, ErrProductNotFound)
	events.AssertNotCalled(t, "PublishValidated", mock.Anything, mock.Anything)
}
