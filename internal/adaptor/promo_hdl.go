package adaptor

import (
	"encoding/json"
	"net/http"

	"travel-booking/internal/dto/request"
	"travel-booking/internal/usecase"
	"travel-booking/pkg/utils"

	"go.uber.org/zap"
)

type PromoHandler struct {
	service usecase.PromoService
	log     *zap.Logger
}

func NewPromoHandler(service usecase.PromoService, log *zap.Logger) *PromoHandler {
	return &PromoHandler{
		service: service,
		log:     log.With(zap.String("handler", "promo")),
	}
}

// PreviewDiscount handles POST /api/promo/preview (public)
func (h *PromoHandler) PreviewDiscount(w http.ResponseWriter, r *http.Request) {
	var req request.PromoPreviewRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.ResponseBadRequest(w, "Invalid request body", nil)
		return
	}

	if validationErrors := utils.ValidateStruct(req); len(validationErrors) > 0 {
		utils.ResponseBadRequest(w, "Validation failed", validationErrors)
		return
	}

	preview, err := h.service.PreviewDiscount(r.Context(), &req)
	if err != nil {
		respondError(w, h.log, err, "preview discount")
		return
	}

	utils.ResponseSuccess(w, "success", preview)
}
