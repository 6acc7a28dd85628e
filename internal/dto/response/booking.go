package response

import (
	"time"

	"travel-booking/internal/data/entity"
)

type BookingResponse struct {
	ID              string               `json:"id"`
	PackageID       string               `json:"package_id"`
	PackageName     string               `json:"package_name"`
	CustomerName    string               `json:"customer_name"`
	CustomerEmail   string               `json:"customer_email"`
	CustomerPhone   *string              `json:"customer_phone,omitempty"`
	StartDate       string               `json:"start_date,omitempty"`
	EndDate         string               `json:"end_date,omitempty"`
	Guests          int                  `json:"guests"`
	PricePerPerson  float64              `json:"price_per_person"`
	TotalAmount     float64              `json:"total_amount"`
	Status          entity.BookingStatus `json:"status"`
	GatewayOrderID  *string              `json:"gateway_order_id,omitempty"`
	SpecialRequests *string              `json:"special_requests,omitempty"`
	CreatedAt       time.Time            `json:"created_at"`
}

// CreateBookingResponse carries the resolved user alongside the booking.
// TemporaryPassword is present only when guest checkout provisioned a
// fresh account on this call; it is never returned again.
type CreateBookingResponse struct {
	Booking           BookingResponse `json:"booking"`
	User              UserResponse    `json:"user"`
	Token             string          `json:"token,omitempty"`
	TemporaryPassword *string         `json:"temporary_password,omitempty"`
}

// OrderStatusResponse is the payment slice of the admin booking view.
type OrderStatusResponse struct {
	GatewayOrderID string    `json:"gateway_order_id"`
	Receipt        string    `json:"receipt"`
	AmountMinor    int64     `json:"amount_minor"`
	Currency       string    `json:"currency"`
	Status         string    `json:"status"`
	PaymentID      *string   `json:"payment_id,omitempty"`
	CreatedAt      time.Time `json:"created_at"`
}

// BookingDetailResponse is the admin view: the booking plus its payment
// order, when one was opened.
type BookingDetailResponse struct {
	Booking BookingResponse      `json:"booking"`
	Order   *OrderStatusResponse `json:"order,omitempty"`
}

func OrderToStatusResponse(order *entity.Order) *OrderStatusResponse {
	return &OrderStatusResponse{
		GatewayOrderID: order.GatewayOrderID,
		Receipt:        order.Receipt,
		AmountMinor:    order.AmountMinor,
		Currency:       order.Currency,
		Status:         string(order.Status),
		PaymentID:      order.PaymentID,
		CreatedAt:      order.CreatedAt,
	}
}

func BookingToResponse(booking *entity.Booking) BookingResponse {
	resp := BookingResponse{
		ID:              booking.ID.String(),
		PackageID:       booking.PackageID.String(),
		PackageName:     booking.PackageName,
		CustomerName:    booking.CustomerName,
		CustomerEmail:   booking.CustomerEmail,
		CustomerPhone:   booking.CustomerPhone,
		Guests:          booking.Guests,
		PricePerPerson:  booking.PricePerPerson,
		TotalAmount:     booking.TotalAmount,
		Status:          booking.Status,
		GatewayOrderID:  booking.GatewayOrderID,
		SpecialRequests: booking.SpecialRequests,
		CreatedAt:       booking.CreatedAt,
	}

	if booking.StartDate != nil {
		resp.StartDate = booking.StartDate.Format("2006-01-02")
	}
	if booking.EndDate != nil {
		resp.EndDate = booking.EndDate.Format("2006-01-02")
	}

	return resp
}
