package wire

import (
	"net/http"

	"travel-booking/internal/adaptor"
	"travel-booking/internal/data/repository"
	"travel-booking/internal/usecase"
	"travel-booking/pkg/gateway"
	"travel-booking/pkg/mailer"
	"travel-booking/pkg/middleware"
	"travel-booking/pkg/utils"

	"github.com/go-chi/chi/v5"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

type App struct {
	Router *chi.Mux
}

// Wiring assembles services, handlers and routes.
func Wiring(
	repo *repository.Repository,
	txm repository.TxManager,
	gw gateway.Client,
	mail mailer.Mailer,
	rdb *redis.Client,
	config *utils.Config,
	logger *zap.Logger,
) *App {
	service := usecase.NewService(repo, txm, gw, mail, rdb, config, logger)
	handler := adaptor.NewHandler(service, logger)

	router := setupRouter(handler, config, logger)

	return &App{
		Router: router,
	}
}

func setupRouter(handler *adaptor.Handler, config *utils.Config, logger *zap.Logger) *chi.Mux {
	r := chi.NewRouter()

	r.Use(middleware.Logger(logger))
	r.Use(middleware.Recover(logger))
	r.Use(middleware.CORS())

	wireAuth(r, handler.Auth, config, logger)
	wireUser(r, handler.User, config, logger)
	wirePackage(r, handler.Package, config, logger)
	wireBooking(r, handler.Booking, config, logger)
	wirePromo(r, handler.Promo)

	// Payment routes sign requests with the gateway secrets; without
	// credentials they are not mounted at all.
	if config.HasGateway() {
		wirePayment(r, handler.Payment, handler.Webhook, config, logger)
	} else {
		logger.Warn("Payment gateway not configured; payment routes disabled")
	}

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("OK"))
	})

	return r
}
