package repository

import (
	"context"
	"errors"
	"fmt"

	"travel-booking/pkg/database"

	"github.com/jackc/pgx/v5/pgconn"
	"go.uber.org/zap"
)

// ErrDuplicate is returned when an insert hits a unique constraint.
// Callers that find-or-create re-select on it instead of failing.
var ErrDuplicate = errors.New("duplicate key")

func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == "23505"
}

type Repository struct {
	User        UserRepository
	Package     PackageRepository
	Booking     BookingRepository
	Order       OrderRepository
	Entitlement EntitlementRepository
	Promo       PromoRepository
}

// NewRepository builds the repository set over a querier, which may be
// the pool or an open transaction.
func NewRepository(db database.Querier, probe *SchemaProbe, log *zap.Logger) *Repository {
	return &Repository{
		User:        NewUserRepository(db, probe, log),
		Package:     NewPackageRepository(db, log),
		Booking:     NewBookingRepository(db, log),
		Order:       NewOrderRepository(db, log),
		Entitlement: NewEntitlementRepository(db, log),
		Promo:       NewPromoRepository(db, log),
	}
}

// TxManager runs a function against a transaction-bound Repository.
// The transaction commits when fn returns nil and rolls back otherwise;
// there is no partial visibility of anything fn wrote.
type TxManager interface {
	InTx(ctx context.Context, fn func(r *Repository) error) error
}

type pgxTxManager struct {
	db    database.PgxIface
	probe *SchemaProbe
	log   *zap.Logger
}

func NewTxManager(db database.PgxIface, probe *SchemaProbe, log *zap.Logger) TxManager {
	return &pgxTxManager{db: db, probe: probe, log: log}
}

func (m *pgxTxManager) InTx(ctx context.Context, fn func(r *Repository) error) error {
	tx, err := m.db.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	if err := fn(NewRepository(tx, m.probe, m.log)); err != nil {
		return err
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}

	return nil
}
