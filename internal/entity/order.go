package domain

import "time"

type Status string

const (
	StatusPending   Status = "PENDING"
	StatusValidated Status = "VALIDATED"
	StatusFailed    Status = "FAILED"
)

// Order is the aggregate root. Items are owned exclusively by their order
// and only come to exist through AddItem.
type Order struct {
	ID          string
	UserID      string
	OrderDate   time.Time
	Status      Status
	Items       []OrderItem
	TotalAmount float64
}

type OrderItem struct {
	ID        string
	ProductID string
	Quantity  int
	Price     float64 // unit price snapshot taken at validation time
}

func NewOrder(id, userID string, orderDate time.Time) *Order {
	return &Order{
		ID:        id,
		UserID:    userID,
		OrderDate: orderDate,
		Status:    StatusPending,
	}
}

// AddItem appends a validated line item and accrues the running total.
// Items keep the order they were added in.
func (o *Order) AddItem(id, productID string, quantity int, unitPrice float64) {
	o.Items = append(o.Items, OrderItem{
		ID:        id,
		ProductID: productID,
		Quantity:  quantity,
		Price:     unitPrice,
	})
	o.TotalAmount += unitPrice * float64(quantity)
}

// MarkValidated is the only transition out of PENDING reachable through
// order creation.
func (o *Order) MarkValidated() {
	if o.Status == StatusPending {
		o.Status = StatusValidated
	}
}
