package request

// CreateBookingRequest creates a booking or updates one in place when
// BookingID is supplied. Dates use YYYY-MM-DD.
type CreateBookingRequest struct {
	BookingID       *string `json:"booking_id,omitempty" validate:"omitempty,uuid"`
	PackageID       string  `json:"package_id" validate:"required,uuid"`
	CustomerName    string  `json:"customer_name,omitempty" validate:"omitempty,max=100"`
	CustomerEmail   string  `json:"customer_email" validate:"required,email"`
	CustomerPhone   *string `json:"customer_phone,omitempty" validate:"omitempty,min=7,max=15"`
	Address         *string `json:"address,omitempty" validate:"omitempty,max=500"`
	StartDate       *string `json:"start_date,omitempty" validate:"omitempty,datetime=2006-01-02"`
	EndDate         *string `json:"end_date,omitempty" validate:"omitempty,datetime=2006-01-02"`
	Guests          int     `json:"guests,omitempty" validate:"omitempty,min=1,max=50"`
	PricePerPerson  float64 `json:"price_per_person,omitempty" validate:"omitempty,min=0"`
	TotalAmount     float64 `json:"total_amount,omitempty" validate:"omitempty,min=0"`
	SpecialRequests *string `json:"special_requests,omitempty" validate:"omitempty,max=1000"`
}
