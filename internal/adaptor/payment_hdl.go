package adaptor

import (
	"encoding/json"
	"net/http"
	"time"

	"travel-booking/internal/dto/request"
	"travel-booking/internal/usecase"
	"travel-booking/pkg/utils"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

type PaymentHandler struct {
	service usecase.OrderService
	log     *zap.Logger
}

func NewPaymentHandler(service usecase.OrderService, log *zap.Logger) *PaymentHandler {
	return &PaymentHandler{
		service: service,
		log:     log.With(zap.String("handler", "payment")),
	}
}

// CreateOrder handles POST /api/payment/order (optional auth)
func (h *PaymentHandler) CreateOrder(w http.ResponseWriter, r *http.Request) {
	var req request.CreateOrderRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.ResponseBadRequest(w, "Invalid request body", nil)
		return
	}

	if validationErrors := utils.ValidateStruct(req); len(validationErrors) > 0 {
		utils.ResponseBadRequest(w, "Validation failed", validationErrors)
		return
	}

	userID, _ := utils.GetUserIDFromContext(r.Context())

	checkout, err := h.service.CreateOrder(r.Context(), userID, &req)
	if err != nil {
		respondError(w, h.log, err, "create order")
		return
	}

	setSession(w, checkout.Token, time.Now().Add(24*time.Hour))

	utils.ResponseCreated(w, "success", checkout)
}

// VerifyPayment handles POST /api/payment/verify (optional auth)
func (h *PaymentHandler) VerifyPayment(w http.ResponseWriter, r *http.Request) {
	var req request.VerifyPaymentRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.ResponseBadRequest(w, "Invalid request body", nil)
		return
	}

	if validationErrors := utils.ValidateStruct(req); len(validationErrors) > 0 {
		utils.ResponseBadRequest(w, "Validation failed", validationErrors)
		return
	}

	userID, _ := utils.GetUserIDFromContext(r.Context())

	summary, err := h.service.VerifyPayment(r.Context(), userID, &req)
	if err != nil {
		respondError(w, h.log, err, "verify payment")
		return
	}

	utils.ResponseSuccess(w, "success", summary)
}

// GetPaymentSummary handles GET /api/payment/summary/{orderID} (protected)
func (h *PaymentHandler) GetPaymentSummary(w http.ResponseWriter, r *http.Request) {
	userID, ok := utils.GetUserIDFromContext(r.Context())
	if !ok {
		userID = uuid.Nil
	}

	gatewayOrderID := chi.URLParam(r, "orderID")
	if gatewayOrderID == "" {
		utils.ResponseBadRequest(w, "Order ID is required", nil)
		return
	}

	summary, err := h.service.GetPaymentSummary(r.Context(), userID, gatewayOrderID)
	if err != nil {
		respondError(w, h.log, err, "get payment summary")
		return
	}

	utils.ResponseSuccess(w, "success", summary)
}
