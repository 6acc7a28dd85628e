package request

type PromoPreviewRequest struct {
	Code      string `json:"code" validate:"required,min=2,max=32"`
	PackageID string `json:"package_id" validate:"required,uuid"`
	Guests    int    `json:"guests,omitempty" validate:"omitempty,min=1,max=50"`
}
