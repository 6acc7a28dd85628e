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

type BookingRepository interface {
	Create(ctx context.Context, booking *entity.Booking) error
	FindByID(ctx context.Context, id uuid.UUID) (*entity.Booking, error)
	// FindByIDForUpdate takes a row lock so concurrent order-creation
	// attempts on the same booking serialize. Only valid inside a
	// transaction.
	FindByIDForUpdate(ctx context.Context, id uuid.UUID) (*entity.Booking, error)
	FindByGatewayOrderID(ctx context.Context, gatewayOrderID string) (*entity.Booking, error)
	FindByUserID(ctx context.Context, userID uuid.UUID, limit, offset int) ([]*entity.Booking, error)
	CountByUserID(ctx context.Context, userID uuid.UUID) (int64, error)
	// UpdateMerge writes booking fields with keep-existing-if-absent
	// semantics so a repeated call never erases collected data.
	UpdateMerge(ctx context.Context, booking *entity.Booking) error
	SetGatewayOrderID(ctx context.Context, bookingID uuid.UUID, gatewayOrderID string) error
	MarkPaidByGatewayOrderID(ctx context.Context, gatewayOrderID string) error
	MarkFailedByGatewayOrderID(ctx context.Context, gatewayOrderID string) error
}

type bookingRepository struct {
	db  database.Querier
	log *zap.Logger
}

func NewBookingRepository(db database.Querier, log *zap.Logger) BookingRepository {
	return &bookingRepository{
		db:  db,
		log: log.With(zap.String("repository", "booking")),
	}
}

const bookingColumns = `id, user_id, package_id, package_name, customer_name, customer_email,
		customer_phone, address, start_date, end_date, guests, price_per_person,
		total_amount, status, gateway_order_id, special_requests, created_at, updated_at`

func scanBooking(row pgx.Row) (*entity.Booking, error) {
	var booking entity.Booking
	err := row.Scan(
		&booking.ID,
		&booking.UserID,
		&booking.PackageID,
		&booking.PackageName,
		&booking.CustomerName,
		&booking.CustomerEmail,
		&booking.CustomerPhone,
		&booking.Address,
		&booking.StartDate,
		&booking.EndDate,
		&booking.Guests,
		&booking.PricePerPerson,
		&booking.TotalAmount,
		&booking.Status,
		&booking.GatewayOrderID,
		&booking.SpecialRequests,
		&booking.CreatedAt,
		&booking.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &booking, nil
}

func (r *bookingRepository) Create(ctx context.Context, booking *entity.Booking) error {
	query := `
		INSERT INTO bookings (id, user_id, package_id, package_name, customer_name, customer_email,
		                      customer_phone, address, start_date, end_date, guests, price_per_person,
		                      total_amount, status, gateway_order_id, special_requests, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18)
	`

	_, err := r.db.Exec(ctx, query,
		booking.ID,
		booking.UserID,
		booking.PackageID,
		booking.PackageName,
		booking.CustomerName,
		booking.CustomerEmail,
		booking.CustomerPhone,
		booking.Address,
		booking.StartDate,
		booking.EndDate,
		booking.Guests,
		booking.PricePerPerson,
		booking.TotalAmount,
		booking.Status,
		booking.GatewayOrderID,
		booking.SpecialRequests,
		booking.CreatedAt,
		booking.UpdatedAt,
	)
	if err != nil {
		r.log.Error("Failed to create booking",
			zap.Error(err),
			zap.String("booking_id", booking.ID.String()),
			zap.String("user_id", booking.UserID.String()),
		)
		return fmt.Errorf("create booking %s: %w", booking.ID.String(), err)
	}

	return nil
}

func (r *bookingRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.Booking, error) {
	query := fmt.Sprintf(`SELECT %s FROM bookings WHERE id = $1`, bookingColumns)

	booking, err := scanBooking(r.db.QueryRow(ctx, query, id))
	if err == pgx.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		r.log.Error("Failed to find booking by ID",
			zap.Error(err),
			zap.String("booking_id", id.String()),
		)
		return nil, fmt.Errorf("find booking by ID %s: %w", id.String(), err)
	}

	return booking, nil
}

func (r *bookingRepository) FindByIDForUpdate(ctx context.Context, id uuid.UUID) (*entity.Booking, error) {
	query := fmt.Sprintf(`SELECT %s FROM bookings WHERE id = $1 FOR UPDATE`, bookingColumns)

	booking, err := scanBooking(r.db.QueryRow(ctx, query, id))
	if err == pgx.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		r.log.Error("Failed to lock booking row",
			zap.Error(err),
			zap.String("booking_id", id.String()),
		)
		return nil, fmt.Errorf("lock booking %s: %w", id.String(), err)
	}

	return booking, nil
}

func (r *bookingRepository) FindByGatewayOrderID(ctx context.Context, gatewayOrderID string) (*entity.Booking, error) {
	query := fmt.Sprintf(`SELECT %s FROM bookings WHERE gateway_order_id = $1`, bookingColumns)

	booking, err := scanBooking(r.db.QueryRow(ctx, query, gatewayOrderID))
	if err == pgx.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		r.log.Error("Failed to find booking by gateway order ID",
			zap.Error(err),
			zap.String("gateway_order_id", gatewayOrderID),
		)
		return nil, fmt.Errorf("find booking by gateway order ID %s: %w", gatewayOrderID, err)
	}

	return booking, nil
}

func (r *bookingRepository) FindByUserID(ctx context.Context, userID uuid.UUID, limit, offset int) ([]*entity.Booking, error) {
	query := fmt.Sprintf(`
		SELECT %s FROM bookings
		WHERE user_id = $1
		ORDER BY created_at DESC
		LIMIT $2 OFFSET $3
	`, bookingColumns)

	rows, err := r.db.Query(ctx, query, userID, limit, offset)
	if err != nil {
		r.log.Error("Failed to find bookings by user ID",
			zap.Error(err),
			zap.String("user_id", userID.String()),
		)
		return nil, fmt.Errorf("find bookings by user ID %s: %w", userID.String(), err)
	}
	defer rows.Close()

	var bookings []*entity.Booking
	for rows.Next() {
		booking, err := scanBooking(rows)
		if err != nil {
			r.log.Error("Failed to scan booking row", zap.Error(err))
			return nil, fmt.Errorf("scan booking row: %w", err)
		}
		bookings = append(bookings, booking)
	}

	return bookings, nil
}

func (r *bookingRepository) CountByUserID(ctx context.Context, userID uuid.UUID) (int64, error) {
	query := `SELECT COUNT(*) FROM bookings WHERE user_id = $1`

	var count int64
	if err := r.db.QueryRow(ctx, query, userID).Scan(&count); err != nil {
		r.log.Error("Failed to count bookings by user ID",
			zap.Error(err),
			zap.String("user_id", userID.String()),
		)
		return 0, fmt.Errorf("count bookings by user ID %s: %w", userID.String(), err)
	}

	return count, nil
}

// UpdateMerge keeps the stored value whenever the new one is NULL/zero,
// so partial payloads never wipe contact or trip data already captured.
func (r *bookingRepository) UpdateMerge(ctx context.Context, booking *entity.Booking) error {
	query := `
		UPDATE bookings
		SET customer_name    = COALESCE(NULLIF($2, ''), customer_name),
		    customer_email   = COALESCE(NULLIF($3, ''), customer_email),
		    customer_phone   = COALESCE($4, customer_phone),
		    address          = COALESCE($5, address),
		    start_date       = COALESCE($6, start_date),
		    end_date         = COALESCE($7, end_date),
		    guests           = CASE WHEN $8 > 0 THEN $8 ELSE guests END,
		    price_per_person = $9,
		    total_amount     = $10,
		    special_requests = COALESCE($11, special_requests),
		    updated_at       = $12
		WHERE id = $1
	`

	result, err := r.db.Exec(ctx, query,
		booking.ID,
		booking.CustomerName,
		booking.CustomerEmail,
		booking.CustomerPhone,
		booking.Address,
		booking.StartDate,
		booking.EndDate,
		booking.Guests,
		booking.PricePerPerson,
		booking.TotalAmount,
		booking.SpecialRequests,
		booking.UpdatedAt,
	)
	if err != nil {
		r.log.Error("Failed to merge booking",
			zap.Error(err),
			zap.String("booking_id", booking.ID.String()),
		)
		return fmt.Errorf("merge booking %s: %w", booking.ID.String(), err)
	}

	if result.RowsAffected() == 0 {
		return fmt.Errorf("booking %s not found", booking.ID.String())
	}

	return nil
}

func (r *bookingRepository) SetGatewayOrderID(ctx context.Context, bookingID uuid.UUID, gatewayOrderID string) error {
	query := `UPDATE bookings SET gateway_order_id = $2, updated_at = NOW() WHERE id = $1`

	result, err := r.db.Exec(ctx, query, bookingID, gatewayOrderID)
	if err != nil {
		r.log.Error("Failed to set booking gateway order ID",
			zap.Error(err),
			zap.String("booking_id", bookingID.String()),
			zap.String("gateway_order_id", gatewayOrderID),
		)
		return fmt.Errorf("set booking %s gateway order: %w", bookingID.String(), err)
	}

	if result.RowsAffected() == 0 {
		return fmt.Errorf("booking %s not found", bookingID.String())
	}

	return nil
}

// MarkPaidByGatewayOrderID promotes the booking to paid. The status guard
// makes replays from either notification channel no-ops.
func (r *bookingRepository) MarkPaidByGatewayOrderID(ctx context.Context, gatewayOrderID string) error {
	query := `
		UPDATE bookings SET status = 'paid', updated_at = NOW()
		WHERE gateway_order_id = $1 AND status <> 'paid'
	`

	if _, err := r.db.Exec(ctx, query, gatewayOrderID); err != nil {
		r.log.Error("Failed to mark booking paid",
			zap.Error(err),
			zap.String("gateway_order_id", gatewayOrderID),
		)
		return fmt.Errorf("mark booking paid for order %s: %w", gatewayOrderID, err)
	}

	return nil
}

// MarkFailedByGatewayOrderID records a failed payment. A booking already
// paid is never demoted.
func (r *bookingRepository) MarkFailedByGatewayOrderID(ctx context.Context, gatewayOrderID string) error {
	query := `
		UPDATE bookings SET status = 'failed', updated_at = NOW()
		WHERE gateway_order_id = $1 AND status <> 'paid'
	`

	if _, err := r.db.Exec(ctx, query, gatewayOrderID); err != nil {
		r.log.Error("Failed to mark booking failed",
			zap.Error(err),
			zap.String("gateway_order_id", gatewayOrderID),
		)
		return fmt.Errorf("mark booking failed for order %s: %w", gatewayOrderID, err)
	}

	return nil
}
