package usecase

import (
	"context"
	"time"

	"travel-booking/internal/data/repository"
	"travel-booking/internal/dto/request"
	"travel-booking/internal/dto/response"
	"travel-booking/pkg/apperr"
	"travel-booking/pkg/utils"

	"go.uber.org/zap"
)

type PromoService interface {
	// PreviewDiscount evaluates a promo code against a package selection
	// and returns the resulting amounts. Preview only: the discount is
	// not persisted and the order flow recomputes from stored prices.
	PreviewDiscount(ctx context.Context, req *request.PromoPreviewRequest) (*response.PromoPreviewResponse, error)
}

type promoService struct {
	repo *repository.Repository
	log  *zap.Logger
}

func NewPromoService(repo *repository.Repository, log *zap.Logger) PromoService {
	return &promoService{
		repo: repo,
		log:  log.With(zap.String("service", "promo")),
	}
}

func (s *promoService) PreviewDiscount(ctx context.Context, req *request.PromoPreviewRequest) (*response.PromoPreviewResponse, error) {
	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		return nil, apperr.Validation(utils.FormatValidationErrors(errs))
	}

	packageID, err := utils.ParseUUID(req.PackageID)
	if err != nil {
		return nil, apperr.Validation("invalid package ID")
	}

	pkg, err := s.repo.Package.FindByID(ctx, packageID)
	if err != nil {
		return nil, apperr.Storage("load package", err)
	}
	if pkg == nil || !pkg.IsActive {
		return nil, apperr.NotFound("package not found")
	}

	guests := req.Guests
	if guests < 1 {
		guests = 1
	}
	baseMinor := utils.ToMinorUnits(pkg.PricePerPerson * float64(guests))

	promo, err := s.repo.Promo.FindByCode(ctx, req.Code)
	if err != nil {
		return nil, apperr.Storage("load promo code", err)
	}
	// An unusable code is a problem with the submitted input, not a
	// missing resource; only the package 404s.
	if promo == nil || !promo.IsActive || promo.Expired(time.Now()) {
		return nil, apperr.Validation("promo code is invalid or expired")
	}

	if baseMinor < promo.MinAmountMinor {
		return nil, apperr.Validation("order amount is below the promo minimum")
	}

	discount := baseMinor*int64(promo.PercentOff)/100 + promo.FixedOffMinor
	if discount > baseMinor {
		discount = baseMinor
	}
	if discount < 0 {
		discount = 0
	}

	return &response.PromoPreviewResponse{
		Code:            promo.Code,
		BaseAmountMinor: baseMinor,
		DiscountMinor:   discount,
		PayAmountMinor:  baseMinor - discount,
	}, nil
}
