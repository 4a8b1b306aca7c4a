package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type OrderStatus string

const (
	OrderStatusPending  OrderStatus = "pending"
	OrderStatusPaid     OrderStatus = "paid"
	OrderStatusRefunded OrderStatus = "refunded"
	OrderStatusFailed   OrderStatus = "failed"
)

// TicketOrder is a customer's purchase of tickets for one published event.
// Funds movement is Stripe's problem; the order only mirrors payment state
// reported by the webhook.
type TicketOrder struct {
	ID          primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	OrderNumber string             `json:"orderNumber" bson:"orderNumber"` // e.g., TIX-100234
	UserID      primitive.ObjectID `json:"userId" bson:"userId"`
	EventID     primitive.ObjectID `json:"eventId" bson:"eventId"`

	EventTitle string  `json:"eventTitle" bson:"eventTitle"`
	EventSlug  string  `json:"eventSlug" bson:"eventSlug"`
	UnitPrice  float64 `json:"unitPrice" bson:"unitPrice"`
	Quantity   int     `json:"quantity" bson:"quantity"`
	Total      float64 `json:"total" bson:"total"`

	Status        OrderStatus `json:"status" bson:"status"`
	PaymentStatus string      `json:"paymentStatus" bson:"paymentStatus"`
	PaymentID     string      `json:"paymentId" bson:"paymentId"`
	RefundID      string      `json:"refundId,omitempty" bson:"refundId,omitempty"`

	CreatedAt time.Time `json:"createdAt" bson:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt" bson:"updatedAt"`
}

type PlaceOrderInput struct {
	EventID  string `json:"eventId" binding:"required"`
	Quantity int    `json:"quantity" binding:"required,gte=1"`
}
