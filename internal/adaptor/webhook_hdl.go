package adaptor

import (
	"io"
	"net/http"

	"travel-booking/internal/usecase"
	"travel-booking/pkg/gateway"
	"travel-booking/pkg/utils"

	"go.uber.org/zap"
)

// maxWebhookBody bounds the webhook payload read; gateway events are
// small and an unbounded read is a trivial DoS vector.
const maxWebhookBody = 1 << 20

type WebhookHandler struct {
	service usecase.OrderService
	log     *zap.Logger
}

func NewWebhookHandler(service usecase.OrderService, log *zap.Logger) *WebhookHandler {
	return &WebhookHandler{
		service: service,
		log:     log.With(zap.String("handler", "webhook")),
	}
}

// HandleWebhook handles POST /api/payment/webhook (gateway only).
// The signature is computed over the raw body, so the body must be read
// verbatim before any decoding.
func (h *WebhookHandler) HandleWebhook(w http.ResponseWriter, r *http.Request) {
	body, err := io.ReadAll(io.LimitReader(r.Body, maxWebhookBody))
	if err != nil {
		utils.ResponseBadRequest(w, "Failed to read request body", nil)
		return
	}

	signature := r.Header.Get(gateway.SignatureHeader)
	if signature == "" {
		utils.ResponseBadRequest(w, "Missing webhook signature", nil)
		return
	}

	if err := h.service.HandleWebhook(r.Context(), body, signature); err != nil {
		respondError(w, h.log, err, "handle webhook")
		return
	}

	utils.ResponseSuccess(w, "ok", nil)
}
