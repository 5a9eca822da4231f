package usecase

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	domain "github.com/tn0901/shop-api/internal/entity"
	"github.com/tn0901/shop-api/internal/logging"
)

type ItemInput struct {
	ProductID string
	Quantity  int
}

type CreateOrderInput struct {
	UserID string
	Items  []ItemInput
}

// CreateOrder validates every requested item against the catalog service,
// snapshots prices, and commits the whole order in one write. Stock is only
// read here, never decremented: two concurrent orders can both pass
// validation for the same product and oversell it. Closing that race needs
// a reservation step behind ProductGateway; this flow deliberately doesn't
// have one.
type CreateOrder struct {
	repo    OrderRepo
	gateway ProductGateway
	events  OrderEvents // optional
}

func NewCreateOrder(repo OrderRepo, gateway ProductGateway, events OrderEvents) *CreateOrder {
	return &CreateOrder{repo: repo, gateway: gateway, events: events}
}

// Execute builds and persists a VALIDATED order, or returns the first
// failure without persisting anything. Items are validated strictly in the
// order the caller supplied; one remote read per item, exactly one durable
// write on success. No retries, no dedup: identical calls create distinct
// orders.
func (uc *CreateOrder) Execute(ctx context.Context, in CreateOrderInput) (*domain.Order, error) {
	order := domain.NewOrder(uuid.NewString(), in.UserID, time.Now().UTC())

	for _, item := range in.Items {
		product, err := uc.gateway.GetByID(ctx, item.ProductID)
		if err != nil {
			return nil, err
		}

		if product.Quantity < item.Quantity {
			return nil, &InsufficientStockError{
				Name:      product.Name,
				Available: product.Quantity,
				Requested: item.Quantity,
			}
		}

		// Snapshot the unit price as returned right now; later catalog
		// price changes must not touch a placed order.
		order.AddItem(uuid.NewString(), product.ID, item.Quantity, product.Price)
	}

	order.MarkValidated()

	if err := uc.repo.Save(ctx, order); err != nil {
		return nil, fmt.Errorf("save order: %w", err)
	}

	if uc.events != nil {
		msg := OrderValidatedMsg{
			OrderID:     order.ID,
			UserID:      order.UserID,
			TotalAmount: order.TotalAmount,
			ItemCount:   len(order.Items),
			OccurredAt:  order.OrderDate,
		}
		if err := uc.events.PublishValidated(ctx, msg); err != nil {
			// The order is already durable; the event is best effort.
			logging.FromCtx(ctx).Warn("order event publish failed",
				"order_id", order.ID, "error", err)
		}
	}

	return order, nil
}
