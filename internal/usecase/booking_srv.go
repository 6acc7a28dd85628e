package usecase

import (
	"context"
	"time"

	"travel-booking/internal/data/entity"
	"travel-booking/internal/data/repository"
	"travel-booking/internal/dto/request"
	"travel-booking/internal/dto/response"
	"travel-booking/pkg/apperr"
	"travel-booking/pkg/utils"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

type BookingService interface {
	// CreateOrUpdateBooking records a trip reservation. The caller does
	// not need an account: the customer email resolves to an existing
	// user or provisions one on the spot. When BookingID is supplied the
	// existing record is merged instead of creating a new one.
	CreateOrUpdateBooking(ctx context.Context, req *request.CreateBookingRequest) (*response.CreateBookingResponse, error)
	GetUserBookings(ctx context.Context, userID string, req *request.PaginatedRequest) (*response.PaginatedResponse[response.BookingResponse], error)

	// GetBookingDetail is the admin view of one booking together with its
	// payment order, if one was opened.
	GetBookingDetail(ctx context.Context, bookingID string) (*response.BookingDetailResponse, error)
}

type bookingService struct {
	repo   *repository.Repository
	txm    repository.TxManager
	config *utils.Config
	log    *zap.Logger
}

func NewBookingService(repo *repository.Repository, txm repository.TxManager, config *utils.Config, log *zap.Logger) BookingService {
	return &bookingService{
		repo:   repo,
		txm:    txm,
		config: config,
		log:    log.With(zap.String("service", "booking")),
	}
}

func (s *bookingService) CreateOrUpdateBooking(ctx context.Context, req *request.CreateBookingRequest) (*response.CreateBookingResponse, error) {
	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		return nil, apperr.Validation(utils.FormatValidationErrors(errs))
	}

	packageID, err := utils.ParseUUID(req.PackageID)
	if err != nil {
		return nil, apperr.Validation("invalid package ID")
	}

	startDate, err := parseDate(req.StartDate)
	if err != nil {
		return nil, apperr.Validation("invalid start date")
	}
	endDate, err := parseDate(req.EndDate)
	if err != nil {
		return nil, apperr.Validation("invalid end date")
	}
	if startDate != nil && endDate != nil && endDate.Before(*startDate) {
		return nil, apperr.Validation("end date is before start date")
	}

	var (
		user         *entity.User
		tempPassword *string
		booking      *entity.Booking
	)

	err = s.txm.InTx(ctx, func(r *repository.Repository) error {
		pkg, err := r.Package.FindByID(ctx, packageID)
		if err != nil {
			return apperr.Storage("load package", err)
		}
		if pkg == nil || !pkg.IsActive {
			return apperr.NotFound("package not found")
		}

		user, tempPassword, err = ensureUser(ctx, r, s.log, req.CustomerEmail, req.CustomerName, req.CustomerPhone)
		if err != nil {
			return err
		}

		guests := req.Guests
		if guests < 1 {
			guests = 1
		}

		pricePerPerson := utils.SafeFloat(req.PricePerPerson)
		if pricePerPerson <= 0 {
			pricePerPerson = pkg.PricePerPerson
		}
		totalAmount := utils.SafeFloat(req.TotalAmount)
		if totalAmount <= 0 {
			totalAmount = pricePerPerson * float64(guests)
		}

		customerName := req.CustomerName
		if customerName == "" {
			customerName = user.Name
		}

		now := time.Now()

		if req.BookingID != nil {
			bookingID, err := utils.ParseUUID(*req.BookingID)
			if err != nil {
				return apperr.Validation("invalid booking ID")
			}

			existing, err := r.Booking.FindByIDForUpdate(ctx, bookingID)
			if err != nil {
				return apperr.Storage("load booking", err)
			}
			if existing == nil {
				return apperr.NotFound("booking not found")
			}
			if existing.UserID != user.ID {
				return apperr.Forbidden("booking belongs to another customer")
			}
			if existing.Status == entity.BookingStatusPaid {
				return apperr.Conflict("booking is already paid")
			}

			existing.CustomerName = req.CustomerName
			existing.CustomerEmail = utils.NormalizeEmail(req.CustomerEmail)
			existing.CustomerPhone = req.CustomerPhone
			existing.Address = req.Address
			existing.StartDate = startDate
			existing.EndDate = endDate
			existing.Guests = req.Guests
			existing.PricePerPerson = pricePerPerson
			existing.TotalAmount = totalAmount
			existing.SpecialRequests = req.SpecialRequests
			existing.UpdatedAt = now

			if err := r.Booking.UpdateMerge(ctx, existing); err != nil {
				return apperr.Storage("merge booking", err)
			}

			booking, err = r.Booking.FindByID(ctx, bookingID)
			if err != nil || booking == nil {
				return apperr.Storage("reload booking", err)
			}
			return nil
		}

		booking = &entity.Booking{
			BaseNoDelete: entity.BaseNoDelete{
				ID:        utils.GenerateUUID(),
				CreatedAt: now,
				UpdatedAt: now,
			},
			UserID:          user.ID,
			PackageID:       pkg.ID,
			PackageName:     pkg.Name,
			CustomerName:    customerName,
			CustomerEmail:   utils.NormalizeEmail(req.CustomerEmail),
			CustomerPhone:   req.CustomerPhone,
			Address:         req.Address,
			StartDate:       startDate,
			EndDate:         endDate,
			Guests:          guests,
			PricePerPerson:  pricePerPerson,
			TotalAmount:     totalAmount,
			Status:          entity.BookingStatusPending,
			SpecialRequests: req.SpecialRequests,
		}

		if err := r.Booking.Create(ctx, booking); err != nil {
			return apperr.Storage("create booking", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	token, _, err := issueSession(s.config, user)
	if err != nil {
		s.log.Error("Failed to issue session after booking", zap.Error(err))
		token = ""
	}

	s.log.Info("Booking recorded",
		zap.String("booking_id", booking.ID.String()),
		zap.String("user_id", user.ID.String()),
		zap.String("package_id", booking.PackageID.String()),
	)

	return &response.CreateBookingResponse{
		Booking:           response.BookingToResponse(booking),
		User:              response.UserToResponse(user),
		Token:             token,
		TemporaryPassword: tempPassword,
	}, nil
}

func (s *bookingService) GetUserBookings(ctx context.Context, userID string, req *request.PaginatedRequest) (*response.PaginatedResponse[response.BookingResponse], error) {
	userUUID, err := uuid.Parse(userID)
	if err != nil {
		return nil, apperr.Validation("invalid user ID")
	}

	bookings, err := s.repo.Booking.FindByUserID(ctx, userUUID, req.Limit(), req.Offset())
	if err != nil {
		return nil, apperr.Storage("list bookings", err)
	}

	total, err := s.repo.Booking.CountByUserID(ctx, userUUID)
	if err != nil {
		return nil, apperr.Storage("count bookings", err)
	}

	items := make([]response.BookingResponse, 0, len(bookings))
	for _, b := range bookings {
		items = append(items, response.BookingToResponse(b))
	}

	return response.NewPaginatedResponse(items, req.Page, req.PerPage, total), nil
}

func (s *bookingService) GetBookingDetail(ctx context.Context, bookingID string) (*response.BookingDetailResponse, error) {
	id, err := utils.ParseUUID(bookingID)
	if err != nil {
		return nil, apperr.Validation("invalid booking ID")
	}

	booking, err := s.repo.Booking.FindByID(ctx, id)
	if err != nil {
		return nil, apperr.Storage("load booking", err)
	}
	if booking == nil {
		return nil, apperr.NotFound("booking not found")
	}

	detail := &response.BookingDetailResponse{
		Booking: response.BookingToResponse(booking),
	}

	order, err := s.repo.Order.FindByBookingID(ctx, id)
	if err != nil {
		return nil, apperr.Storage("load order", err)
	}
	if order != nil {
		detail.Order = response.OrderToStatusResponse(order)
	}

	return detail, nil
}

// parseDate parses an optional YYYY-MM-DD string.
func parseDate(value *string) (*time.Time, error) {
	if value == nil || *value == "" {
		return nil, nil
	}

	t, err := time.Parse("2006-01-02", *value)
	if err != nil {
		return nil, err
	}
	return &t, nil
}
