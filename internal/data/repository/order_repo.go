package repository

import (
	"context"
	"fmt"

	"travel-booking/internal/data/entity"
	"travel-booking/pkg/database"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"
)

type OrderRepository interface {
	Create(ctx context.Context, order *entity.Order) error
	FindByGatewayOrderID(ctx context.Context, gatewayOrderID string) (*entity.Order, error)
	FindByBookingID(ctx context.Context, bookingID uuid.UUID) (*entity.Order, error)
	// MarkPaid sets payment id and signature along with the paid status,
	// guarded so a replay never rewrites a completed order. Returns
	// whether a row actually transitioned.
	MarkPaid(ctx context.Context, gatewayOrderID, paymentID, signature string) (bool, error)
	MarkFailed(ctx context.Context, gatewayOrderID string) error
}

type orderRepository struct {
	db  database.Querier
	log *zap.Logger
}

func NewOrderRepository(db database.Querier, log *zap.Logger) OrderRepository {
	return &orderRepository{
		db:  db,
		log: log.With(zap.String("repository", "order")),
	}
}

const orderColumns = `id, gateway_order_id, receipt, user_id, package_id, booking_id,
		amount_minor, currency, status, payment_id, signature, notes, created_at, updated_at`

func scanOrder(row pgx.Row) (*entity.Order, error) {
	var order entity.Order
	err := row.Scan(
		&order.ID,
		&order.GatewayOrderID,
		&order.Receipt,
		&order.UserID,
		&order.PackageID,
		&order.BookingID,
		&order.AmountMinor,
		&order.Currency,
		&order.Status,
		&order.PaymentID,
		&order.Signature,
		&order.Notes,
		&order.CreatedAt,
		&order.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &order, nil
}

func (r *orderRepository) Create(ctx context.Context, order *entity.Order) error {
	query := `
		INSERT INTO orders (id, gateway_order_id, receipt, user_id, package_id, booking_id,
		                    amount_minor, currency, status, payment_id, signature, notes,
		                    created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14)
	`

	_, err := r.db.Exec(ctx, query,
		order.ID,
		order.GatewayOrderID,
		order.Receipt,
		order.UserID,
		order.PackageID,
		order.BookingID,
		order.AmountMinor,
		order.Currency,
		order.Status,
		order.PaymentID,
		order.Signature,
		order.Notes,
		order.CreatedAt,
		order.UpdatedAt,
	)
	if err != nil {
		r.log.Error("Failed to create order",
			zap.Error(err),
			zap.String("gateway_order_id", order.GatewayOrderID),
			zap.String("booking_id", order.BookingID.String()),
		)
		return fmt.Errorf("create order %s: %w", order.GatewayOrderID, err)
	}

	return nil
}

func (r *orderRepository) FindByGatewayOrderID(ctx context.Context, gatewayOrderID string) (*entity.Order, error) {
	query := fmt.Sprintf(`SELECT %s FROM orders WHERE gateway_order_id = $1`, orderColumns)

	order, err := scanOrder(r.db.QueryRow(ctx, query, gatewayOrderID))
	if err == pgx.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		r.log.Error("Failed to find order by gateway order ID",
			zap.Error(err),
			zap.String("gateway_order_id", gatewayOrderID),
		)
		return nil, fmt.Errorf("find order by gateway order ID %s: %w", gatewayOrderID, err)
	}

	return order, nil
}

func (r *orderRepository) FindByBookingID(ctx context.Context, bookingID uuid.UUID) (*entity.Order, error) {
	query := fmt.Sprintf(`
		SELECT %s FROM orders
		WHERE booking_id = $1
		ORDER BY created_at DESC
		LIMIT 1
	`, orderColumns)

	order, err := scanOrder(r.db.QueryRow(ctx, query, bookingID))
	if err == pgx.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		r.log.Error("Failed to find order by booking ID",
			zap.Error(err),
			zap.String("booking_id", bookingID.String()),
		)
		return nil, fmt.Errorf("find order by booking ID %s: %w", bookingID.String(), err)
	}

	return order, nil
}

func (r *orderRepository) MarkPaid(ctx context.Context, gatewayOrderID, paymentID, signature string) (bool, error) {
	query := `
		UPDATE orders
		SET status = 'paid', payment_id = $2, signature = $3, updated_at = NOW()
		WHERE gateway_order_id = $1 AND status <> 'paid'
	`

	result, err := r.db.Exec(ctx, query, gatewayOrderID, paymentID, signature)
	if err != nil {
		r.log.Error("Failed to mark order paid",
			zap.Error(err),
			zap.String("gateway_order_id", gatewayOrderID),
			zap.String("payment_id", paymentID),
		)
		return false, fmt.Errorf("mark order %s paid: %w", gatewayOrderID, err)
	}

	return result.RowsAffected() > 0, nil
}

func (r *orderRepository) MarkFailed(ctx context.Context, gatewayOrderID string) error {
	query := `
		UPDATE orders SET status = 'failed', updated_at = NOW()
		WHERE gateway_order_id = $1 AND status <> 'paid'
	`

	if _, err := r.db.Exec(ctx, query, gatewayOrderID); err != nil {
		r.log.Error("Failed to mark order failed",
			zap.Error(err),
			zap.String("gateway_order_id", gatewayOrderID),
		)
		return fmt.Errorf("mark order %s failed: %w", gatewayOrderID, err)
	}

	return nil
}
