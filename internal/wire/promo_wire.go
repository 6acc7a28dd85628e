package wire

import (
	"travel-booking/internal/adaptor"

	"github.com/go-chi/chi/v5"
)

func wirePromo(r chi.Router, promoHandler *adaptor.PromoHandler) {
	// POST /api/promo/preview - evaluate a promo code (public)
	r.Post("/api/promo/preview", promoHandler.PreviewDiscount)
}
