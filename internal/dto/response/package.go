package response

import (
	"time"

	"travel-booking/internal/data/entity"
)

type PackageResponse struct {
	ID             string    `json:"id"`
	Name           string    `json:"name"`
	Description    string    `json:"description"`
	Location       string    `json:"location"`
	PricePerPerson float64   `json:"price_per_person"`
	DurationDays   int       `json:"duration_days"`
	ImageURL       *string   `json:"image_url,omitempty"`
	IsActive       bool      `json:"is_active"`
	CreatedAt      time.Time `json:"created_at"`
}

type PromoPreviewResponse struct {
	Code            string `json:"code"`
	BaseAmountMinor int64  `json:"base_amount_minor"`
	DiscountMinor   int64  `json:"discount_minor"`
	PayAmountMinor  int64  `json:"pay_amount_minor"`
}

func PackageToResponse(pkg *entity.TravelPackage) PackageResponse {
	return PackageResponse{
		ID:             pkg.ID.String(),
		Name:           pkg.Name,
		Description:    pkg.Description,
		Location:       pkg.Location,
		PricePerPerson: pkg.PricePerPerson,
		DurationDays:   pkg.DurationDays,
		ImageURL:       pkg.ImageURL,
		IsActive:       pkg.IsActive,
		CreatedAt:      pkg.CreatedAt,
	}
}
