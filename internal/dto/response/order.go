package response

import (
	"time"

	"travel-booking/internal/data/entity"
)

// CheckoutResponse is what the payment widget on the storefront needs to
// open the gateway checkout.
type CheckoutResponse struct {
	GatewayOrderID string  `json:"gateway_order_id"`
	GatewayKeyID   string  `json:"gateway_key_id"`
	BookingID      string  `json:"booking_id"`
	AmountMinor    int64   `json:"amount_minor"`
	Currency       string  `json:"currency"`
	PackageName    string  `json:"package_name"`
	PricePerPerson float64 `json:"price_per_person"`
	Guests         int     `json:"guests"`

	// Set only when express checkout provisioned an account on this call.
	Token             string  `json:"token,omitempty"`
	TemporaryPassword *string `json:"temporary_password,omitempty"`
}

// PaymentSummaryResponse is the post-verification read model shown on the
// confirmation page.
type PaymentSummaryResponse struct {
	GatewayOrderID string    `json:"gateway_order_id"`
	PaymentID      string    `json:"payment_id"`
	AmountMinor    int64     `json:"amount_minor"`
	Currency       string    `json:"currency"`
	PackageName    string    `json:"package_name"`
	CustomerName   string    `json:"customer_name"`
	CustomerEmail  string    `json:"customer_email"`
	CustomerPhone  *string   `json:"customer_phone,omitempty"`
	StartDate      string    `json:"start_date,omitempty"`
	EndDate        string    `json:"end_date,omitempty"`
	Guests         int       `json:"guests"`
	PaidAt         time.Time `json:"paid_at"`
}

type PurchaseResponse struct {
	PackageID      string    `json:"package_id"`
	PackageName    string    `json:"package_name"`
	GatewayOrderID string    `json:"gateway_order_id"`
	PaymentID      string    `json:"payment_id"`
	AmountMinor    int64     `json:"amount_minor"`
	Status         string    `json:"status"`
	PurchasedAt    time.Time `json:"purchased_at"`
}

func EntitlementToPurchase(ent *entity.Entitlement, packageName string) PurchaseResponse {
	return PurchaseResponse{
		PackageID:      ent.PackageID.String(),
		PackageName:    packageName,
		GatewayOrderID: ent.GatewayOrderID,
		PaymentID:      ent.PaymentID,
		AmountMinor:    ent.AmountMinor,
		Status:         ent.Status,
		PurchasedAt:    ent.PurchasedAt,
	}
}
