package request

// CreateOrderRequest creates a payment order for a booking. When
// BookingID is absent the customer/selection fields provision a fresh
// booking first (guest checkout without a prior booking-create call).
type CreateOrderRequest struct {
	PackageID string  `json:"package_id" validate:"required,uuid"`
	BookingID *string `json:"booking_id,omitempty" validate:"omitempty,uuid"`

	// Fallback selection, only consulted when BookingID is absent.
	CustomerName  string  `json:"customer_name,omitempty" validate:"omitempty,max=100"`
	CustomerEmail string  `json:"customer_email,omitempty" validate:"omitempty,email"`
	CustomerPhone *string `json:"customer_phone,omitempty" validate:"omitempty,min=7,max=15"`
	StartDate     *string `json:"start_date,omitempty" validate:"omitempty,datetime=2006-01-02"`
	EndDate       *string `json:"end_date,omitempty" validate:"omitempty,datetime=2006-01-02"`
	Guests        int     `json:"guests,omitempty" validate:"omitempty,min=1,max=50"`
}

type VerifyPaymentRequest struct {
	GatewayOrderID   string `json:"gateway_order_id" validate:"required"`
	GatewayPaymentID string `json:"gateway_payment_id" validate:"required"`
	GatewaySignature string `json:"gateway_signature" validate:"required"`
}
