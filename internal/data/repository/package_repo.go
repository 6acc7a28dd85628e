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

type PackageRepository interface {
	Create(ctx context.Context, pkg *entity.TravelPackage) error
	FindByID(ctx context.Context, id uuid.UUID) (*entity.TravelPackage, error)
	FindAllActive(ctx context.Context, limit, offset int) ([]*entity.TravelPackage, error)
	CountActive(ctx context.Context) (int64, error)
	Update(ctx context.Context, pkg *entity.TravelPackage) error
	Deactivate(ctx context.Context, id uuid.UUID) error
}

type packageRepository struct {
	db  database.Querier
	log *zap.Logger
}

func NewPackageRepository(db database.Querier, log *zap.Logger) PackageRepository {
	return &packageRepository{
		db:  db,
		log: log.With(zap.String("repository", "package")),
	}
}

const packageColumns = `id, name, description, location, price_per_person, duration_days, image_url, is_active, created_at, updated_at`

func scanPackage(row pgx.Row) (*entity.TravelPackage, error) {
	var pkg entity.TravelPackage
	err := row.Scan(
		&pkg.ID,
		&pkg.Name,
		&pkg.Description,
		&pkg.Location,
		&pkg.PricePerPerson,
		&pkg.DurationDays,
		&pkg.ImageURL,
		&pkg.IsActive,
		&pkg.CreatedAt,
		&pkg.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &pkg, nil
}

func (pr *packageRepository) Create(ctx context.Context, pkg *entity.TravelPackage) error {
	query := `
		INSERT INTO travel_packages (id, name, description, location, price_per_person,
		                             duration_days, image_url, is_active, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
	`

	_, err := pr.db.Exec(ctx, query,
		pkg.ID,
		pkg.Name,
		pkg.Description,
		pkg.Location,
		pkg.PricePerPerson,
		pkg.DurationDays,
		pkg.ImageURL,
		pkg.IsActive,
		pkg.CreatedAt,
		pkg.UpdatedAt,
	)
	if err != nil {
		pr.log.Error("Failed to create package",
			zap.Error(err),
			zap.String("name", pkg.Name),
		)
		return fmt.Errorf("create package %s: %w", pkg.Name, err)
	}

	return nil
}

func (pr *packageRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.TravelPackage, error) {
	query := fmt.Sprintf(`SELECT %s FROM travel_packages WHERE id = $1`, packageColumns)

	pkg, err := scanPackage(pr.db.QueryRow(ctx, query, id))
	if err == pgx.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		pr.log.Error("Failed to find package by ID",
			zap.Error(err),
			zap.String("package_id", id.String()),
		)
		return nil, fmt.Errorf("find package by ID %s: %w", id.String(), err)
	}

	return pkg, nil
}

func (pr *packageRepository) FindAllActive(ctx context.Context, limit, offset int) ([]*entity.TravelPackage, error) {
	query := fmt.Sprintf(`
		SELECT %s FROM travel_packages
		WHERE is_active = TRUE
		ORDER BY created_at DESC
		LIMIT $1 OFFSET $2
	`, packageColumns)

	rows, err := pr.db.Query(ctx, query, limit, offset)
	if err != nil {
		pr.log.Error("Failed to list packages", zap.Error(err))
		return nil, fmt.Errorf("list packages: %w", err)
	}
	defer rows.Close()

	var packages []*entity.TravelPackage
	for rows.Next() {
		pkg, err := scanPackage(rows)
		if err != nil {
			pr.log.Error("Failed to scan package row", zap.Error(err))
			return nil, fmt.Errorf("scan package row: %w", err)
		}
		packages = append(packages, pkg)
	}

	return packages, nil
}

func (pr *packageRepository) CountActive(ctx context.Context) (int64, error) {
	query := `SELECT COUNT(*) FROM travel_packages WHERE is_active = TRUE`

	var count int64
	if err := pr.db.QueryRow(ctx, query).Scan(&count); err != nil {
		pr.log.Error("Failed to count packages", zap.Error(err))
		return 0, fmt.Errorf("count packages: %w", err)
	}

	return count, nil
}

func (pr *packageRepository) Update(ctx context.Context, pkg *entity.TravelPackage) error {
	query := `
		UPDATE travel_packages
		SET name = $2, description = $3, location = $4, price_per_person = $5,
		    duration_days = $6, image_url = $7, is_active = $8, updated_at = $9
		WHERE id = $1
	`

	result, err := pr.db.Exec(ctx, query,
		pkg.ID,
		pkg.Name,
		pkg.Description,
		pkg.Location,
		pkg.PricePerPerson,
		pkg.DurationDays,
		pkg.ImageURL,
		pkg.IsActive,
		pkg.UpdatedAt,
	)
	if err != nil {
		pr.log.Error("Failed to update package",
			zap.Error(err),
			zap.String("package_id", pkg.ID.String()),
		)
		return fmt.Errorf("update package %s: %w", pkg.ID.String(), err)
	}

	if result.RowsAffected() == 0 {
		return fmt.Errorf("package %s not found", pkg.ID.String())
	}

	return nil
}

func (pr *packageRepository) Deactivate(ctx context.Context, id uuid.UUID) error {
	query := `UPDATE travel_packages SET is_active = FALSE, updated_at = NOW() WHERE id = $1`

	result, err := pr.db.Exec(ctx, query, id)
	if err != nil {
		pr.log.Error("Failed to deactivate package",
			zap.Error(err),
			zap.String("package_id", id.String()),
		)
		return fmt.Errorf("deactivate package %s: %w", id.String(), err)
	}

	if result.RowsAffected() == 0 {
		return fmt.Errorf("package %s not found", id.String())
	}

	return nil
}
