package repository

import (
	"context"
	"fmt"
	"strings"

	"travel-booking/internal/data/entity"
	"travel-booking/pkg/database"

	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"
)

type PromoRepository interface {
	FindByCode(ctx context.Context, code string) (*entity.PromoCode, error)
}

type promoRepository struct {
	db  database.Querier
	log *zap.Logger
}

func NewPromoRepository(db database.Querier, log *zap.Logger) PromoRepository {
	return &promoRepository{
		db:  db,
		log: log.With(zap.String("repository", "promo")),
	}
}

func (r *promoRepository) FindByCode(ctx context.Context, code string) (*entity.PromoCode, error) {
	query := `
		SELECT id, code, percent_off, fixed_off_minor, min_amount_minor,
		       is_active, expires_at, created_at, updated_at
		FROM promo_codes
		WHERE code = $1
	`

	var promo entity.PromoCode
	err := r.db.QueryRow(ctx, query, strings.ToUpper(strings.TrimSpace(code))).Scan(
		&promo.ID,
		&promo.Code,
		&promo.PercentOff,
		&promo.FixedOffMinor,
		&promo.MinAmountMinor,
		&promo.IsActive,
		&promo.ExpiresAt,
		&promo.CreatedAt,
		&promo.UpdatedAt,
	)

	if err == pgx.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		r.log.Error("Failed to find promo by code",
			zap.Error(err),
			zap.String("code", code),
		)
		return nil, fmt.Errorf("find promo by code %s: %w", code, err)
	}

	return &promo, nil
}
