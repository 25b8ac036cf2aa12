package models

import "time"

// OrderStatus is the lifecycle state of an order.
type OrderStatus string

const (
	StatusPending        OrderStatus = "pending"
	StatusConfirmed      OrderStatus = "confirmed"
	StatusPreparing      OrderStatus = "preparing"
	StatusOutForDelivery OrderStatus = "out-for-delivery"
	StatusDelivered      OrderStatus = "delivered"
	StatusCancelled      OrderStatus = "cancelled"
)

// transitions holds the only legal moves between statuses.
var transitions = map[OrderStatus][]OrderStatus{
	StatusPending:        {StatusConfirmed, StatusCancelled},
	StatusConfirmed:      {StatusPreparing, StatusCancelled},
	StatusPreparing:      {StatusOutForDelivery},
	StatusOutForDelivery: {StatusDelivered},
}

func (s OrderStatus) Valid() bool {
	switch s {
	case StatusPending, StatusConfirmed, StatusPreparing,
		StatusOutForDelivery, StatusDelivered, StatusCancelled:
		return true
	}
	return false
}

// CanTransition reports whether moving from s to target is a legal
// lifecycle step. Terminal statuses have no outgoing transitions.
func (s OrderStatus) CanTransition(target OrderStatus) bool {
	for _, next := range transitions[s] {
		if next == target {
			return true
		}
	}
	return false
}

func (s OrderStatus) Terminal() bool {
	return s == StatusDelivered || s == StatusCancelled
}

// OrderLine is one ordered item with its name and unit price snapshotted
// from the catalog at creation time. Price is in paise.
type OrderLine struct {
	MenuItemID string `json:"menuItem" bson:"menu_item_id"`
	Name       string `json:"name" bson:"name"`
	Quantity   int    `json:"quantity" bson:"quantity"`
	Price      int    `json:"price" bson:"price"`
}

// StatusChange is one append-only entry in an order's status history.
type StatusChange struct {
	Status    OrderStatus `json:"status" bson:"status"`
	ChangedAt time.Time   `json:"timestamp" bson:"changed_at"`
	ChangedBy string      `json:"changedBy" bson:"changed_by"`
}

type Order struct {
	OrderID       string         `json:"_id" bson:"order_id"`
	UserID        string         `json:"user" bson:"user_id"`
	CustomerName  string         `json:"customerName" bson:"customer_name"`
	Phone         string         `json:"phoneNumber" bson:"phone"`
	Address       string         `json:"address" bson:"address"`
	Items         []OrderLine    `json:"items" bson:"items"`
	TotalAmount   int            `json:"totalAmount" bson:"total_amount"`
	PaymentMethod string         `json:"paymentMethod" bson:"payment_method"`
	Status        OrderStatus    `json:"orderStatus" bson:"status"`
	StatusHistory []StatusChange `json:"statusHistory" bson:"status_history"`
	CreatedAt     time.Time      `json:"createdAt" bson:"created_at"`
}

// OrderLineRequest carries the caller's (item, quantity) pair. The price
// field is accepted for compatibility with older clients and ignored; the
// catalog price is authoritative.
type OrderLineRequest struct {
	MenuItem string `json:"menuItem" validate:"required"`
	Quantity int    `json:"quantity" validate:"required,min=1"`
	Price    int    `json:"price"`
}

type CreateOrderRequest struct {
	CustomerName  string             `json:"customerName" validate:"required,min=2,max=100"`
	Phone         string             `json:"phoneNumber" validate:"required"`
	Address       string             `json:"address" validate:"required"`
	Items         []OrderLineRequest `json:"items" validate:"required,min=1,dive"`
	PaymentMethod string             `json:"paymentMethod" validate:"required,eq=cash|eq=card|eq=phonepe"`
	TotalAmount   int                `json:"totalAmount"`
}

type UpdateOrderStatusRequest struct {
	Status OrderStatus `json:"status" validate:"required"`
}
