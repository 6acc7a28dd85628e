package wire

import (
	"travel-booking/internal/adaptor"
	"travel-booking/pkg/middleware"
	"travel-booking/pkg/utils"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

func wirePayment(
	r chi.Router,
	paymentHandler *adaptor.PaymentHandler,
	webhookHandler *adaptor.WebhookHandler,
	config *utils.Config,
	log *zap.Logger,
) {
	// ==================== OPTIONAL-AUTH ROUTES ====================
	// Checkout works for guests and signed-in customers alike; identity,
	// when present, tightens the ownership checks.
	r.Group(func(r chi.Router) {
		r.Use(middleware.AuthSessionOptional(config.Session.Secret, log))

		r.Post("/api/payment/order", paymentHandler.CreateOrder)
		r.Post("/api/payment/verify", paymentHandler.VerifyPayment)
	})

	// ==================== PROTECTED ROUTES (require auth) ====================
	// The summary read has no gateway signature to prove ownership, so it
	// needs a session; guests get one from booking- and order-create.
	r.Group(func(r chi.Router) {
		r.Use(middleware.AuthSession(config.Session.Secret, log))

		r.Get("/api/payment/summary/{orderID}", paymentHandler.GetPaymentSummary)
	})

	// ==================== GATEWAY ROUTES ====================
	// Authenticated by the webhook signature, not a session.
	r.Post("/api/payment/webhook", webhookHandler.HandleWebhook)
}
