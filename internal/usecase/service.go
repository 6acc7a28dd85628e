package usecase

import (
	"travel-booking/internal/data/repository"
	"travel-booking/pkg/gateway"
	"travel-booking/pkg/mailer"
	"travel-booking/pkg/utils"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

type Service struct {
	Auth    AuthService
	User    UserService
	Package PackageService
	Booking BookingService
	Order   OrderService
	Promo   PromoService
}

func NewService(
	repo *repository.Repository,
	txm repository.TxManager,
	gw gateway.Client,
	mail mailer.Mailer,
	rdb *redis.Client,
	config *utils.Config,
	log *zap.Logger,
) *Service {
	return &Service{
		Auth:    NewAuthService(repo, config, log),
		User:    NewUserService(repo, log),
		Package: NewPackageService(repo, rdb, log),
		Booking: NewBookingService(repo, txm, config, log),
		Order:   NewOrderService(repo, txm, gw, mail, config, log),
		Promo:   NewPromoService(repo, log),
	}
}
