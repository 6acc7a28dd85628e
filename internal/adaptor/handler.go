package adaptor

import (
	"net/http"

	"travel-booking/internal/usecase"
	"travel-booking/pkg/apperr"
	"travel-booking/pkg/utils"

	"go.uber.org/zap"
)

type Handler struct {
	Auth    *AuthHandler
	User    *UserHandler
	Package *PackageHandler
	Booking *BookingHandler
	Payment *PaymentHandler
	Webhook *WebhookHandler
	Promo   *PromoHandler
}

func NewHandler(service *usecase.Service, log *zap.Logger) *Handler {
	return &Handler{
		Auth:    NewAuthHandler(service.Auth, log),
		User:    NewUserHandler(service.User, log),
		Package: NewPackageHandler(service.Package, log),
		Booking: NewBookingHandler(service.Booking, log),
		Payment: NewPaymentHandler(service.Order, log),
		Webhook: NewWebhookHandler(service.Order, log),
		Promo:   NewPromoHandler(service.Promo, log),
	}
}

// respondError maps a service error to a response. Only errors flagged
// safe carry their message to the client; everything else gets a generic
// line while the detail goes to the log.
func respondError(w http.ResponseWriter, log *zap.Logger, err error, operation string) {
	status := apperr.HTTPStatus(err)

	msg := err.Error()
	if !apperr.Safe(err) {
		if apperr.IsKind(err, apperr.KindGateway) {
			msg = "Payment gateway error"
		} else {
			msg = "Internal server error"
		}
	}

	if status >= http.StatusInternalServerError {
		log.Error(operation+" failed", zap.Error(err), zap.Int("status", status))
	} else {
		log.Warn(operation+" rejected", zap.Error(err), zap.Int("status", status))
	}

	utils.ResponseJSON(w, status, false, msg, nil, nil)
}
