package entity

import (
	"time"

	"github.com/google/uuid"
)

// Entitlement records that a user owns a purchased package. The unique
// constraint on (user_id, package_id, gateway_order_id, payment_id) makes
// the grant idempotent under replayed verifications and webhooks.
type Entitlement struct {
	BaseSimple
	UserID         uuid.UUID `db:"user_id"`
	PackageID      uuid.UUID `db:"package_id"`
	GatewayOrderID string    `db:"gateway_order_id"`
	PaymentID      string    `db:"payment_id"`
	AmountMinor    int64     `db:"amount_minor"`
	Status         string    `db:"status"`
	PurchasedAt    time.Time `db:"purchased_at"`
}
