package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// OrderStatus tracks an order after checkout hand-off.
type OrderStatus string

const (
	OrderPending   OrderStatus = "pending"
	OrderConfirmed OrderStatus = "confirmed"
	OrderShipped   OrderStatus = "shipped"
	OrderDelivered OrderStatus = "delivered"
	OrderReturned  OrderStatus = "returned"
)

// Order is the checkout snapshot of a cart. Payment is not collected here.
type Order struct {
	ID              string          `json:"id"`
	SessionID       string          `json:"-"`
	Status          OrderStatus     `json:"status"`
	Currency        string          `json:"currency"`
	Total           decimal.Decimal `json:"total"`
	DeliveryAddress string          `json:"deliveryAddress"`
	CreatedAt       time.Time       `json:"createdAt"`
	Lines           []OrderLine     `json:"items,omitempty"`
}

type OrderLine struct {
	ID           string                 `json:"id"`
	OrderID      string                 `json:"orderId"`
	ProductID    string                 `json:"productId"`
	Type         TransactionType        `json:"type"`
	Quantity     int                    `json:"quantity"`
	DeliveryDate *time.Time             `json:"deliveryDate,omitempty"`
	ReturnDate   *time.Time             `json:"returnDate,omitempty"`
	RentDays     int                    `json:"rentDays,omitempty"`
	UnitPrice    decimal.Decimal        `json:"unitPrice"`
	Deposit      decimal.Decimal        `json:"securityDeposit"`
	Total        decimal.Decimal        `json:"total"`
	Snapshot     map[string]interface{} `json:"snapshot,omitempty"`
	CreatedAt    time.Time              `json:"createdAt"`
}
