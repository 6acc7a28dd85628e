package usecase

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"travel-booking/internal/data/entity"
	"travel-booking/internal/data/repository"
	"travel-booking/internal/dto/request"
	"travel-booking/internal/dto/response"
	"travel-booking/pkg/apperr"
	"travel-booking/pkg/utils"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

const (
	packageCacheTTL     = 5 * time.Minute
	packageCacheVersion = "packages:version"
)

type PackageService interface {
	ListPackages(ctx context.Context, req *request.PaginatedRequest) (*response.PaginatedResponse[response.PackageResponse], error)
	GetPackageByID(ctx context.Context, id string) (*response.PackageResponse, error)

	// Admin catalog management.
	CreatePackage(ctx context.Context, req *request.UpsertPackageRequest) (*response.PackageResponse, error)
	UpdatePackage(ctx context.Context, id string, req *request.UpsertPackageRequest) (*response.PackageResponse, error)
	DeactivatePackage(ctx context.Context, id string) error
}

// packageService serves the catalog through a read-through Redis cache.
// List keys embed a version counter; admin writes bump the counter so
// stale pages expire without key scans. A nil Redis client disables
// caching entirely.
type packageService struct {
	repo *repository.Repository
	rdb  *redis.Client
	log  *zap.Logger
}

func NewPackageService(repo *repository.Repository, rdb *redis.Client, log *zap.Logger) PackageService {
	return &packageService{
		repo: repo,
		rdb:  rdb,
		log:  log.With(zap.String("service", "package")),
	}
}

func (s *packageService) ListPackages(ctx context.Context, req *request.PaginatedRequest) (*response.PaginatedResponse[response.PackageResponse], error) {
	cacheKey := s.listCacheKey(ctx, req)

	if cacheKey != "" {
		if cached, err := s.rdb.Get(ctx, cacheKey).Bytes(); err == nil {
			var resp response.PaginatedResponse[response.PackageResponse]
			if json.Unmarshal(cached, &resp) == nil {
				return &resp, nil
			}
		}
	}

	packages, err := s.repo.Package.FindAllActive(ctx, req.Limit(), req.Offset())
	if err != nil {
		return nil, apperr.Storage("list packages", err)
	}

	total, err := s.repo.Package.CountActive(ctx)
	if err != nil {
		return nil, apperr.Storage("count packages", err)
	}

	items := make([]response.PackageResponse, 0, len(packages))
	for _, pkg := range packages {
		items = append(items, response.PackageToResponse(pkg))
	}

	resp := response.NewPaginatedResponse(items, req.Page, req.PerPage, total)

	if cacheKey != "" {
		if payload, err := json.Marshal(resp); err == nil {
			if err := s.rdb.Set(ctx, cacheKey, payload, packageCacheTTL).Err(); err != nil {
				s.log.Warn("Failed to cache package listing", zap.Error(err))
			}
		}
	}

	return resp, nil
}

func (s *packageService) GetPackageByID(ctx context.Context, id string) (*response.PackageResponse, error) {
	packageID, err := utils.ParseUUID(id)
	if err != nil {
		return nil, apperr.Validation("invalid package ID")
	}

	cacheKey := fmt.Sprintf("package:%s", packageID)

	if s.rdb != nil {
		if cached, err := s.rdb.Get(ctx, cacheKey).Bytes(); err == nil {
			var resp response.PackageResponse
			if json.Unmarshal(cached, &resp) == nil {
				return &resp, nil
			}
		}
	}

	pkg, err := s.repo.Package.FindByID(ctx, packageID)
	if err != nil {
		return nil, apperr.Storage("load package", err)
	}
	if pkg == nil || !pkg.IsActive {
		return nil, apperr.NotFound("package not found")
	}

	resp := response.PackageToResponse(pkg)

	if s.rdb != nil {
		if payload, err := json.Marshal(resp); err == nil {
			if err := s.rdb.Set(ctx, cacheKey, payload, packageCacheTTL).Err(); err != nil {
				s.log.Warn("Failed to cache package", zap.Error(err))
			}
		}
	}

	return &resp, nil
}

func (s *packageService) CreatePackage(ctx context.Context, req *request.UpsertPackageRequest) (*response.PackageResponse, error) {
	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		return nil, apperr.Validation(utils.FormatValidationErrors(errs))
	}

	isActive := true
	if req.IsActive != nil {
		isActive = *req.IsActive
	}

	now := time.Now()
	pkg := &entity.TravelPackage{
		BaseNoDelete: entity.BaseNoDelete{
			ID:        utils.GenerateUUID(),
			CreatedAt: now,
			UpdatedAt: now,
		},
		Name:           req.Name,
		Description:    req.Description,
		Location:       req.Location,
		PricePerPerson: utils.SafeFloat(req.PricePerPerson),
		DurationDays:   req.DurationDays,
		ImageURL:       req.ImageURL,
		IsActive:       isActive,
	}

	if err := s.repo.Package.Create(ctx, pkg); err != nil {
		return nil, apperr.Storage("create package", err)
	}

	s.invalidate(ctx, pkg.ID.String())
	s.log.Info("Package created",
		zap.String("package_id", pkg.ID.String()),
		zap.String("name", pkg.Name),
	)

	resp := response.PackageToResponse(pkg)
	return &resp, nil
}

func (s *packageService) UpdatePackage(ctx context.Context, id string, req *request.UpsertPackageRequest) (*response.PackageResponse, error) {
	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		return nil, apperr.Validation(utils.FormatValidationErrors(errs))
	}

	packageID, err := utils.ParseUUID(id)
	if err != nil {
		return nil, apperr.Validation("invalid package ID")
	}

	pkg, err := s.repo.Package.FindByID(ctx, packageID)
	if err != nil {
		return nil, apperr.Storage("load package", err)
	}
	if pkg == nil {
		return nil, apperr.NotFound("package not found")
	}

	pkg.Name = req.Name
	pkg.Description = req.Description
	pkg.Location = req.Location
	pkg.PricePerPerson = utils.SafeFloat(req.PricePerPerson)
	pkg.DurationDays = req.DurationDays
	pkg.ImageURL = req.ImageURL
	if req.IsActive != nil {
		pkg.IsActive = *req.IsActive
	}
	pkg.UpdatedAt = time.Now()

	if err := s.repo.Package.Update(ctx, pkg); err != nil {
		return nil, apperr.Storage("update package", err)
	}

	s.invalidate(ctx, pkg.ID.String())

	resp := response.PackageToResponse(pkg)
	return &resp, nil
}

func (s *packageService) DeactivatePackage(ctx context.Context, id string) error {
	packageID, err := utils.ParseUUID(id)
	if err != nil {
		return apperr.Validation("invalid package ID")
	}

	if err := s.repo.Package.Deactivate(ctx, packageID); err != nil {
		return apperr.Storage("deactivate package", err)
	}

	s.invalidate(ctx, packageID.String())
	s.log.Info("Package deactivated", zap.String("package_id", packageID.String()))
	return nil
}

// listCacheKey returns "" when caching is unavailable.
func (s *packageService) listCacheKey(ctx context.Context, req *request.PaginatedRequest) string {
	if s.rdb == nil {
		return ""
	}

	version, err := s.rdb.Get(ctx, packageCacheVersion).Int64()
	if err != nil && err != redis.Nil {
		return ""
	}

	return fmt.Sprintf("packages:v%d:p%d:n%d", version, req.Page, req.Limit())
}

func (s *packageService) invalidate(ctx context.Context, packageID string) {
	if s.rdb == nil {
		return
	}

	if err := s.rdb.Incr(ctx, packageCacheVersion).Err(); err != nil {
		s.log.Warn("Failed to bump package cache version", zap.Error(err))
	}
	if err := s.rdb.Del(ctx, fmt.Sprintf("package:%s", packageID)).Err(); err != nil {
		s.log.Warn("Failed to drop package cache entry", zap.Error(err))
	}
}
