package entity

import (
	"time"

	"github.com/google/uuid"
)

type BookingStatus string

const (
	BookingStatusPending BookingStatus = "pending"
	BookingStatusPaid    BookingStatus = "paid"
	BookingStatusFailed  BookingStatus = "failed"
)

// Booking is a customer's reservation for a package. PackageName is a
// snapshot taken at booking time so renames do not rewrite history.
// GatewayOrderID is set once an order has been created for the booking.
type Booking struct {
	BaseNoDelete
	UserID          uuid.UUID     `db:"user_id"`
	PackageID       uuid.UUID     `db:"package_id"`
	PackageName     string        `db:"package_name"`
	CustomerName    string        `db:"customer_name"`
	CustomerEmail   string        `db:"customer_email"`
	CustomerPhone   *string       `db:"customer_phone"`
	Address         *string       `db:"address"`
	StartDate       *time.Time    `db:"start_date"`
	EndDate         *time.Time    `db:"end_date"`
	Guests          int           `db:"guests"`
	PricePerPerson  float64       `db:"price_per_person"`
	TotalAmount     float64       `db:"total_amount"`
	Status          BookingStatus `db:"status"`
	GatewayOrderID  *string       `db:"gateway_order_id"`
	SpecialRequests *string       `db:"special_requests"`
}
