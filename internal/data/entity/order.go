package entity

import (
	"github.com/google/uuid"
)

type OrderStatus string

const (
	OrderStatusCreated OrderStatus = "created"
	OrderStatusPaid    OrderStatus = "paid"
	OrderStatusFailed  OrderStatus = "failed"
)

// Order mirrors a gateway-tracked payment transaction for one booking.
// AmountMinor is in minor currency units (paise).
type Order struct {
	BaseNoDelete
	GatewayOrderID string      `db:"gateway_order_id"`
	Receipt        string      `db:"receipt"`
	UserID         uuid.UUID   `db:"user_id"`
	PackageID      uuid.UUID   `db:"package_id"`
	BookingID      uuid.UUID   `db:"booking_id"`
	AmountMinor    int64       `db:"amount_minor"`
	Currency       string      `db:"currency"`
	Status         OrderStatus `db:"status"`
	PaymentID      *string     `db:"payment_id"`
	Signature      *string     `db:"signature"`
	Notes          []byte      `db:"notes"`
}
