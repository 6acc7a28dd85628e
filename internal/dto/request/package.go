package request

type UpsertPackageRequest struct {
	Name           string  `json:"name" validate:"required,min=2,max=200"`
	Description    string  `json:"description" validate:"omitempty,max=5000"`
	Location       string  `json:"location" validate:"required,max=200"`
	PricePerPerson float64 `json:"price_per_person" validate:"required,min=0"`
	DurationDays   int     `json:"duration_days" validate:"required,min=1,max=365"`
	ImageURL       *string `json:"image_url,omitempty" validate:"omitempty,url"`
	IsActive       *bool   `json:"is_active,omitempty"`
}
