package usecase

import (
	"context"
	"encoding/json"
	"time"

	"travel-booking/internal/data/entity"
	"travel-booking/internal/data/repository"
	"travel-booking/internal/dto/request"
	"travel-booking/internal/dto/response"
	"travel-booking/pkg/apperr"
	"travel-booking/pkg/gateway"
	"travel-booking/pkg/mailer"
	"travel-booking/pkg/receipt"
	"travel-booking/pkg/utils"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

type OrderService interface {
	// CreateOrder opens a payment order at the gateway for a booking and
	// records it locally. userID may be uuid.Nil for guest checkout, in
	// which case the request's customer fields resolve or provision the
	// account. The server-side package price is authoritative: whatever
	// amount the client displayed is recomputed here before the gateway
	// sees it.
	CreateOrder(ctx context.Context, userID uuid.UUID, req *request.CreateOrderRequest) (*response.CheckoutResponse, error)

	// VerifyPayment checks the checkout callback signature and converges
	// the order, booking and entitlement to paid. Safe to replay.
	VerifyPayment(ctx context.Context, userID uuid.UUID, req *request.VerifyPaymentRequest) (*response.PaymentSummaryResponse, error)

	// HandleWebhook processes a gateway webhook delivery. It converges
	// state exactly like VerifyPayment, so whichever notification lands
	// first wins and the other becomes a no-op.
	HandleWebhook(ctx context.Context, body []byte, signature string) error

	// GetPaymentSummary returns the confirmation read model. Requires a
	// session: unlike VerifyPayment there is no signature proving the
	// caller was party to the payment.
	GetPaymentSummary(ctx context.Context, userID uuid.UUID, gatewayOrderID string) (*response.PaymentSummaryResponse, error)
}

type orderService struct {
	repo   *repository.Repository
	txm    repository.TxManager
	gw     gateway.Client
	mail   mailer.Mailer
	config *utils.Config
	log    *zap.Logger
}

func NewOrderService(
	repo *repository.Repository,
	txm repository.TxManager,
	gw gateway.Client,
	mail mailer.Mailer,
	config *utils.Config,
	log *zap.Logger,
) OrderService {
	return &orderService{
		repo:   repo,
		txm:    txm,
		gw:     gw,
		mail:   mail,
		config: config,
		log:    log.With(zap.String("service", "order")),
	}
}

func (s *orderService) CreateOrder(ctx context.Context, userID uuid.UUID, req *request.CreateOrderRequest) (*response.CheckoutResponse, error) {
	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		return nil, apperr.Validation(utils.FormatValidationErrors(errs))
	}

	packageID, err := utils.ParseUUID(req.PackageID)
	if err != nil {
		return nil, apperr.Validation("invalid package ID")
	}

	var (
		checkout *response.CheckoutResponse
		user     *entity.User
		tempPass *string
	)

	err = s.txm.InTx(ctx, func(r *repository.Repository) error {
		booking, err := s.resolveBooking(ctx, r, userID, packageID, req, &user, &tempPass)
		if err != nil {
			return err
		}

		if booking.Status == entity.BookingStatusPaid {
			return apperr.Conflict("booking is already paid")
		}

		pkg, err := r.Package.FindByID(ctx, booking.PackageID)
		if err != nil {
			return apperr.Storage("load package", err)
		}
		if pkg == nil {
			return apperr.NotFound("package not found")
		}

		// Recompute from the stored package price. Client-sent totals
		// never reach the gateway.
		guests := booking.Guests
		if guests < 1 {
			guests = 1
		}
		totalAmount := pkg.PricePerPerson * float64(guests)
		amountMinor := utils.ToMinorUnits(totalAmount)
		if amountMinor <= 0 {
			return apperr.Validation("order amount must be positive")
		}

		booking.PricePerPerson = pkg.PricePerPerson
		booking.TotalAmount = totalAmount
		booking.Guests = guests
		booking.UpdatedAt = time.Now()
		if err := r.Booking.UpdateMerge(ctx, booking); err != nil {
			return apperr.Storage("update booking amounts", err)
		}

		receiptRef := utils.GenerateReceiptRef(pkg.ID.String())

		notes := map[string]string{
			"booking_id":   booking.ID.String(),
			"package_id":   pkg.ID.String(),
			"package_name": pkg.Name,
		}

		gwOrder, err := s.gw.CreateOrder(ctx, &gateway.CreateOrderRequest{
			Amount:   amountMinor,
			Currency: s.config.Gateway.Currency,
			Receipt:  receiptRef,
			Notes:    notes,
		})
		if err != nil {
			return apperr.Gateway("create gateway order", err)
		}

		notesJSON, _ := json.Marshal(notes)
		now := time.Now()
		order := &entity.Order{
			BaseNoDelete: entity.BaseNoDelete{
				ID:        utils.GenerateUUID(),
				CreatedAt: now,
				UpdatedAt: now,
			},
			GatewayOrderID: gwOrder.ID,
			Receipt:        receiptRef,
			UserID:         booking.UserID,
			PackageID:      pkg.ID,
			BookingID:      booking.ID,
			AmountMinor:    amountMinor,
			Currency:       s.config.Gateway.Currency,
			Status:         entity.OrderStatusCreated,
			Notes:          notesJSON,
		}

		if err := r.Order.Create(ctx, order); err != nil {
			return apperr.Storage("record order", err)
		}

		if err := r.Booking.SetGatewayOrderID(ctx, booking.ID, gwOrder.ID); err != nil {
			return apperr.Storage("link order to booking", err)
		}

		checkout = &response.CheckoutResponse{
			GatewayOrderID: gwOrder.ID,
			GatewayKeyID:   s.gw.KeyID(),
			BookingID:      booking.ID.String(),
			AmountMinor:    amountMinor,
			Currency:       order.Currency,
			PackageName:    pkg.Name,
			PricePerPerson: pkg.PricePerPerson,
			Guests:         guests,
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	if user != nil {
		token, _, err := issueSession(s.config, user)
		if err != nil {
			s.log.Error("Failed to issue session after order create", zap.Error(err))
		} else {
			checkout.Token = token
		}
		checkout.TemporaryPassword = tempPass
	}

	s.log.Info("Order created",
		zap.String("gateway_order_id", checkout.GatewayOrderID),
		zap.String("booking_id", checkout.BookingID),
		zap.Int64("amount_minor", checkout.AmountMinor),
	)

	return checkout, nil
}

// resolveBooking locks the booking the order applies to. With a booking ID
// the row is locked and ownership enforced; without one a fresh booking is
// provisioned from the request's customer fields (guest express checkout).
func (s *orderService) resolveBooking(
	ctx context.Context,
	r *repository.Repository,
	userID uuid.UUID,
	packageID uuid.UUID,
	req *request.CreateOrderRequest,
	user **entity.User,
	tempPass **string,
) (*entity.Booking, error) {
	if req.BookingID != nil {
		bookingID, err := utils.ParseUUID(*req.BookingID)
		if err != nil {
			return nil, apperr.Validation("invalid booking ID")
		}

		booking, err := r.Booking.FindByIDForUpdate(ctx, bookingID)
		if err != nil {
			return nil, apperr.Storage("lock booking", err)
		}
		if booking == nil {
			return nil, apperr.NotFound("booking not found")
		}

		switch {
		case userID != uuid.Nil:
			if booking.UserID != userID {
				return nil, apperr.Forbidden("booking belongs to another customer")
			}
		case req.CustomerEmail != "":
			if utils.NormalizeEmail(req.CustomerEmail) != booking.CustomerEmail {
				return nil, apperr.Forbidden("booking belongs to another customer")
			}
		default:
			return nil, apperr.Unauthorized("authentication required")
		}

		return booking, nil
	}

	// Express checkout: no prior booking.
	if req.CustomerEmail == "" && userID == uuid.Nil {
		return nil, apperr.Validation("customer email is required")
	}

	pkg, err := r.Package.FindByID(ctx, packageID)
	if err != nil {
		return nil, apperr.Storage("load package", err)
	}
	if pkg == nil || !pkg.IsActive {
		return nil, apperr.NotFound("package not found")
	}

	var u *entity.User
	if userID != uuid.Nil {
		u, err = r.User.FindByID(ctx, userID)
		if err != nil {
			return nil, apperr.Storage("load user", err)
		}
		if u == nil {
			return nil, apperr.Unauthorized("account not found")
		}
	} else {
		var tp *string
		u, tp, err = ensureUser(ctx, r, s.log, req.CustomerEmail, req.CustomerName, req.CustomerPhone)
		if err != nil {
			return nil, err
		}
		*tempPass = tp
	}
	*user = u

	startDate, err := parseDate(req.StartDate)
	if err != nil {
		return nil, apperr.Validation("invalid start date")
	}
	endDate, err := parseDate(req.EndDate)
	if err != nil {
		return nil, apperr.Validation("invalid end date")
	}

	guests := req.Guests
	if guests < 1 {
		guests = 1
	}

	customerName := req.CustomerName
	if customerName == "" {
		customerName = u.Name
	}
	customerEmail := utils.NormalizeEmail(req.CustomerEmail)
	if customerEmail == "" {
		customerEmail = u.Email
	}

	now := time.Now()
	booking := &entity.Booking{
		BaseNoDelete: entity.BaseNoDelete{
			ID:        utils.GenerateUUID(),
			CreatedAt: now,
			UpdatedAt: now,
		},
		UserID:         u.ID,
		PackageID:      pkg.ID,
		PackageName:    pkg.Name,
		CustomerName:   customerName,
		CustomerEmail:  customerEmail,
		CustomerPhone:  req.CustomerPhone,
		StartDate:      startDate,
		EndDate:        endDate,
		Guests:         guests,
		PricePerPerson: pkg.PricePerPerson,
		TotalAmount:    pkg.PricePerPerson * float64(guests),
		Status:         entity.BookingStatusPending,
	}

	if err := r.Booking.Create(ctx, booking); err != nil {
		return nil, apperr.Storage("create booking", err)
	}

	return booking, nil
}

func (s *orderService) VerifyPayment(ctx context.Context, userID uuid.UUID, req *request.VerifyPaymentRequest) (*response.PaymentSummaryResponse, error) {
	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		return nil, apperr.Validation(utils.FormatValidationErrors(errs))
	}

	if !s.gw.VerifyPaymentSignature(req.GatewayOrderID, req.GatewayPaymentID, req.GatewaySignature) {
		s.log.Warn("Payment signature mismatch",
			zap.String("gateway_order_id", req.GatewayOrderID),
			zap.String("payment_id", req.GatewayPaymentID),
		)
		return nil, apperr.Signature("payment signature verification failed")
	}

	order, err := s.repo.Order.FindByGatewayOrderID(ctx, req.GatewayOrderID)
	if err != nil {
		return nil, apperr.Storage("load order", err)
	}
	if order == nil {
		return nil, apperr.NotFound("order not found")
	}
	if userID != uuid.Nil && order.UserID != userID {
		return nil, apperr.Forbidden("order belongs to another customer")
	}

	transitioned, err := s.markPaid(ctx, order.GatewayOrderID, req.GatewayPaymentID, req.GatewaySignature)
	if err != nil {
		return nil, err
	}

	if transitioned {
		s.log.Info("Payment verified",
			zap.String("gateway_order_id", order.GatewayOrderID),
			zap.String("payment_id", req.GatewayPaymentID),
		)
		go s.sendConfirmation(order.GatewayOrderID)
	}

	return s.buildSummary(ctx, order.GatewayOrderID)
}

// markPaid converges order, booking and entitlement inside one
// transaction. The conditional updates and the entitlement's conflict
// clause make the whole transition idempotent: a replay finds the order
// already paid and changes nothing.
func (s *orderService) markPaid(ctx context.Context, gatewayOrderID, paymentID, signature string) (bool, error) {
	var transitioned bool

	err := s.txm.InTx(ctx, func(r *repository.Repository) error {
		var err error
		transitioned, err = r.Order.MarkPaid(ctx, gatewayOrderID, paymentID, signature)
		if err != nil {
			return apperr.Storage("mark order paid", err)
		}
		if !transitioned {
			return nil
		}

		if err := r.Booking.MarkPaidByGatewayOrderID(ctx, gatewayOrderID); err != nil {
			return apperr.Storage("mark booking paid", err)
		}

		order, err := r.Order.FindByGatewayOrderID(ctx, gatewayOrderID)
		if err != nil || order == nil {
			return apperr.Storage("reload order", err)
		}

		now := time.Now()
		ent := &entity.Entitlement{
			BaseSimple: entity.BaseSimple{
				ID:        utils.GenerateUUID(),
				CreatedAt: now,
			},
			UserID:         order.UserID,
			PackageID:      order.PackageID,
			GatewayOrderID: order.GatewayOrderID,
			PaymentID:      paymentID,
			AmountMinor:    order.AmountMinor,
			Status:         "active",
			PurchasedAt:    now,
		}
		if err := r.Entitlement.Grant(ctx, ent); err != nil {
			return apperr.Storage("grant entitlement", err)
		}

		return nil
	})
	if err != nil {
		return false, err
	}

	return transitioned, nil
}

func (s *orderService) HandleWebhook(ctx context.Context, body []byte, signature string) error {
	if !s.gw.VerifyWebhookSignature(body, signature) {
		s.log.Warn("Webhook signature mismatch")
		return apperr.Signature("webhook signature verification failed")
	}

	var event gateway.WebhookEvent
	if err := json.Unmarshal(body, &event); err != nil {
		return apperr.Validation("malformed webhook payload")
	}

	payment := event.Payload.Payment.Entity
	if payment.OrderID == "" {
		return apperr.Validation("webhook payload missing order id")
	}

	order, err := s.repo.Order.FindByGatewayOrderID(ctx, payment.OrderID)
	if err != nil {
		return apperr.Storage("load order", err)
	}
	if order == nil {
		// Not ours (e.g. another product on the same gateway account).
		// Acknowledge so the gateway stops retrying.
		s.log.Warn("Webhook for unknown order",
			zap.String("gateway_order_id", payment.OrderID),
			zap.String("event", event.Event),
		)
		return nil
	}

	switch event.Event {
	case gateway.EventPaymentCaptured:
		transitioned, err := s.markPaid(ctx, order.GatewayOrderID, payment.ID, "")
		if err != nil {
			return err
		}
		if transitioned {
			s.log.Info("Webhook converged order to paid",
				zap.String("gateway_order_id", order.GatewayOrderID),
				zap.String("payment_id", payment.ID),
			)
			go s.sendConfirmation(order.GatewayOrderID)
		}
		return nil

	case gateway.EventPaymentFailed:
		return s.txm.InTx(ctx, func(r *repository.Repository) error {
			if err := r.Order.MarkFailed(ctx, order.GatewayOrderID); err != nil {
				return apperr.Storage("mark order failed", err)
			}
			if err := r.Booking.MarkFailedByGatewayOrderID(ctx, order.GatewayOrderID); err != nil {
				return apperr.Storage("mark booking failed", err)
			}
			s.log.Info("Webhook marked order failed",
				zap.String("gateway_order_id", order.GatewayOrderID))
			return nil
		})

	default:
		s.log.Debug("Ignoring webhook event", zap.String("event", event.Event))
		return nil
	}
}

func (s *orderService) GetPaymentSummary(ctx context.Context, userID uuid.UUID, gatewayOrderID string) (*response.PaymentSummaryResponse, error) {
	// Unlike VerifyPayment, this read carries no gateway signature, so a
	// session is the only proof of ownership. Guests hold one too: both
	// booking-create and order-create set the session cookie.
	if userID == uuid.Nil {
		return nil, apperr.Unauthorized("authentication required")
	}

	order, err := s.repo.Order.FindByGatewayOrderID(ctx, gatewayOrderID)
	if err != nil {
		return nil, apperr.Storage("load order", err)
	}
	if order == nil {
		return nil, apperr.NotFound("order not found")
	}
	if order.UserID != userID {
		return nil, apperr.Forbidden("order belongs to another customer")
	}

	return s.buildSummary(ctx, gatewayOrderID)
}

func (s *orderService) buildSummary(ctx context.Context, gatewayOrderID string) (*response.PaymentSummaryResponse, error) {
	order, err := s.repo.Order.FindByGatewayOrderID(ctx, gatewayOrderID)
	if err != nil || order == nil {
		return nil, apperr.Storage("load order for summary", err)
	}

	booking, err := s.repo.Booking.FindByID(ctx, order.BookingID)
	if err != nil || booking == nil {
		return nil, apperr.Storage("load booking for summary", err)
	}

	summary := &response.PaymentSummaryResponse{
		GatewayOrderID: order.GatewayOrderID,
		AmountMinor:    order.AmountMinor,
		Currency:       order.Currency,
		PackageName:    booking.PackageName,
		CustomerName:   booking.CustomerName,
		CustomerEmail:  booking.CustomerEmail,
		CustomerPhone:  booking.CustomerPhone,
		Guests:         booking.Guests,
		PaidAt:         order.UpdatedAt,
	}
	if order.PaymentID != nil {
		summary.PaymentID = *order.PaymentID
	}
	if booking.StartDate != nil {
		summary.StartDate = booking.StartDate.Format("2006-01-02")
	}
	if booking.EndDate != nil {
		summary.EndDate = booking.EndDate.Format("2006-01-02")
	}

	return summary, nil
}

// sendConfirmation renders the PDF receipt and emails it. Best-effort:
// failures are logged, never surfaced to the payment flow.
func (s *orderService) sendConfirmation(gatewayOrderID string) {
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	order, err := s.repo.Order.FindByGatewayOrderID(ctx, gatewayOrderID)
	if err != nil || order == nil {
		s.log.Error("Confirmation: order lookup failed",
			zap.Error(err), zap.String("gateway_order_id", gatewayOrderID))
		return
	}

	booking, err := s.repo.Booking.FindByID(ctx, order.BookingID)
	if err != nil || booking == nil {
		s.log.Error("Confirmation: booking lookup failed",
			zap.Error(err), zap.String("gateway_order_id", gatewayOrderID))
		return
	}

	paymentID := ""
	if order.PaymentID != nil {
		paymentID = *order.PaymentID
	}

	pdf, err := receipt.Render(&receipt.Payment{
		OrderID:      order.GatewayOrderID,
		PaymentID:    paymentID,
		CustomerName: booking.CustomerName,
		Email:        booking.CustomerEmail,
		PackageName:  booking.PackageName,
		Guests:       booking.Guests,
		AmountMinor:  order.AmountMinor,
		Currency:     order.Currency,
		PaidAt:       order.UpdatedAt,
	})
	if err != nil {
		s.log.Error("Confirmation: receipt render failed",
			zap.Error(err), zap.String("gateway_order_id", gatewayOrderID))
		pdf = nil
	}

	confirmation := &mailer.BookingConfirmation{
		CustomerName: booking.CustomerName,
		PackageName:  booking.PackageName,
		StartDate:    booking.StartDate,
		EndDate:      booking.EndDate,
		Guests:       booking.Guests,
		AmountMinor:  order.AmountMinor,
		Currency:     order.Currency,
		OrderID:      order.GatewayOrderID,
		PaymentID:    paymentID,
	}

	if err := s.mail.SendBookingConfirmation(booking.CustomerEmail, confirmation, pdf); err != nil {
		s.log.Warn("Confirmation mail not sent",
			zap.Error(err), zap.String("email", booking.CustomerEmail))
		return
	}

	s.log.Info("Confirmation mail sent",
		zap.String("gateway_order_id", gatewayOrderID),
		zap.String("email", booking.CustomerEmail),
	)
}
