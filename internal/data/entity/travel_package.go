package entity

type TravelPackage struct {
	BaseNoDelete
	Name           string  `db:"name"`
	Description    string  `db:"description"`
	Location       string  `db:"location"`
	PricePerPerson float64 `db:"price_per_person"`
	DurationDays   int     `db:"duration_days"`
	ImageURL       *string `db:"image_url"`
	IsActive       bool    `db:"is_active"`
}
