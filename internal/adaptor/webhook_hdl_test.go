package adaptor

import (
	"bytes"
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"travel-booking/internal/dto/request"
	"travel-booking/internal/dto/response"
	"travel-booking/pkg/apperr"
	"travel-booking/pkg/gateway"

	"github.com/google/uuid"
	"go.uber.org/zap/zaptest"
)

// stubOrderService captures the webhook payload handed to the usecase layer.
type stubOrderService struct {
	gotBody      []byte
	gotSignature string
	err          error
}

func (s *stubOrderService) CreateOrder(ctx context.Context, userID uuid.UUID, req *request.CreateOrderRequest) (*response.CheckoutResponse, error) {
	return nil, nil
}

func (s *stubOrderService) VerifyPayment(ctx context.Context, userID uuid.UUID, req *request.VerifyPaymentRequest) (*response.PaymentSummaryResponse, error) {
	return nil, nil
}

func (s *stubOrderService) HandleWebhook(ctx context.Context, body []byte, signature string) error {
	s.gotBody = body
	s.gotSignature = signature
	return s.err
}

func (s *stubOrderService) GetPaymentSummary(ctx context.Context, userID uuid.UUID, gatewayOrderID string) (*response.PaymentSummaryResponse, error) {
	return nil, nil
}

func postWebhook(handler *WebhookHandler, body, signature string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, "/api/payment/webhook", bytes.NewBufferString(body))
	if signature != "" {
		req.Header.Set(gateway.SignatureHeader, signature)
	}
	rec := httptest.NewRecorder()
	handler.HandleWebhook(rec, req)
	return rec
}

func TestHandleWebhookPassesRawBody(t *testing.T) {
	service := &stubOrderService{}
	handler := NewWebhookHandler(service, zaptest.NewLogger(t))

	body := `{"event":"payment.captured","payload":{}}`
	rec := postWebhook(handler, body, "deadbeef")

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, body %s", rec.Code, rec.Body.String())
	}
	if string(service.gotBody) != body {
		t.Errorf("usecase received body %q, want verbatim %q", service.gotBody, body)
	}
	if service.gotSignature != "deadbeef" {
		t.Errorf("usecase received signature %q", service.gotSignature)
	}
}

func TestHandleWebhookMissingSignature(t *testing.T) {
	service := &stubOrderService{}
	handler := NewWebhookHandler(service, zaptest.NewLogger(t))

	rec := postWebhook(handler, `{}`, "")

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", rec.Code)
	}
	if service.gotBody != nil {
		t.Errorf("usecase called despite missing signature")
	}
}

func TestHandleWebhookSignatureError(t *testing.T) {
	service := &stubOrderService{err: apperr.New(apperr.KindSignature, "webhook signature mismatch")}
	handler := NewWebhookHandler(service, zaptest.NewLogger(t))

	rec := postWebhook(handler, `{}`, "bad")

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", rec.Code)
	}
}

func TestHandleWebhookInternalErrorHidesDetail(t *testing.T) {
	service := &stubOrderService{err: apperr.Wrap(apperr.KindStorage, "update order", context.DeadlineExceeded)}
	handler := NewWebhookHandler(service, zaptest.NewLogger(t))

	rec := postWebhook(handler, `{}`, "sig")

	if rec.Code != http.StatusInternalServerError {
		t.Fatalf("status = %d, want 500", rec.Code)
	}
	if bytes.Contains(rec.Body.Bytes(), []byte("deadline")) {
		t.Errorf("internal detail leaked to response: %s", rec.Body.String())
	}
}
