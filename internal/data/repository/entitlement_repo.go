package repository

import (
	"context"
	"fmt"

	"travel-booking/internal/data/entity"
	"travel-booking/pkg/database"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

type EntitlementRepository interface {
	// Grant inserts the entitlement if absent. The unique constraint on
	// (user_id, package_id, gateway_order_id, payment_id) plus ON
	// CONFLICT DO NOTHING makes replays no-ops.
	Grant(ctx context.Context, ent *entity.Entitlement) error
	FindByUserID(ctx context.Context, userID uuid.UUID) ([]*entity.Entitlement, error)
	Exists(ctx context.Context, userID, packageID uuid.UUID) (bool, error)
}

type entitlementRepository struct {
	db  database.Querier
	log *zap.Logger
}

func NewEntitlementRepository(db database.Querier, log *zap.Logger) EntitlementRepository {
	return &entitlementRepository{
		db:  db,
		log: log.With(zap.String("repository", "entitlement")),
	}
}

func (r *entitlementRepository) Grant(ctx context.Context, ent *entity.Entitlement) error {
	query := `
		INSERT INTO user_packages (id, user_id, package_id, gateway_order_id, payment_id,
		                           amount_minor, status, purchased_at, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		ON CONFLICT (user_id, package_id, gateway_order_id, payment_id) DO NOTHING
	`

	_, err := r.db.Exec(ctx, query,
		ent.ID,
		ent.UserID,
		ent.PackageID,
		ent.GatewayOrderID,
		ent.PaymentID,
		ent.AmountMinor,
		ent.Status,
		ent.PurchasedAt,
		ent.CreatedAt,
	)
	if err != nil {
		r.log.Error("Failed to grant entitlement",
			zap.Error(err),
			zap.String("user_id", ent.UserID.String()),
			zap.String("package_id", ent.PackageID.String()),
		)
		return fmt.Errorf("grant entitlement for user %s: %w", ent.UserID.String(), err)
	}

	return nil
}

func (r *entitlementRepository) FindByUserID(ctx context.Context, userID uuid.UUID) ([]*entity.Entitlement, error) {
	query := `
		SELECT id, user_id, package_id, gateway_order_id, payment_id,
		       amount_minor, status, purchased_at, created_at
		FROM user_packages
		WHERE user_id = $1
		ORDER BY purchased_at DESC
	`

	rows, err := r.db.Query(ctx, query, userID)
	if err != nil {
		r.log.Error("Failed to find entitlements by user ID",
			zap.Error(err),
			zap.String("user_id", userID.String()),
		)
		return nil, fmt.Errorf("find entitlements by user ID %s: %w", userID.String(), err)
	}
	defer rows.Close()

	var ents []*entity.Entitlement
	for rows.Next() {
		var ent entity.Entitlement
		err := rows.Scan(
			&ent.ID,
			&ent.UserID,
			&ent.PackageID,
			&ent.GatewayOrderID,
			&ent.PaymentID,
			&ent.AmountMinor,
			&ent.Status,
			&ent.PurchasedAt,
			&ent.CreatedAt,
		)
		if err != nil {
			r.log.Error("Failed to scan entitlement row", zap.Error(err))
			return nil, fmt.Errorf("scan entitlement row: %w", err)
		}
		ents = append(ents, &ent)
	}

	return ents, nil
}

func (r *entitlementRepository) Exists(ctx context.Context, userID, packageID uuid.UUID) (bool, error) {
	query := `SELECT EXISTS (SELECT 1 FROM user_packages WHERE user_id = $1 AND package_id = $2)`

	var exists bool
	if err := r.db.QueryRow(ctx, query, userID, packageID).Scan(&exists); err != nil {
		r.log.Error("Failed to check entitlement",
			zap.Error(err),
			zap.String("user_id", userID.String()),
			zap.String("package_id", packageID.String()),
		)
		return false, fmt.Errorf("check entitlement: %w", err)
	}

	return exists, nil
}
