package wire

import (
	"travel-booking/internal/adaptor"
	"travel-booking/pkg/middleware"
	"travel-booking/pkg/utils"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

func wirePackage(
	r chi.Router,
	packageHandler *adaptor.PackageHandler,
	config *utils.Config,
	log *zap.Logger,
) {
	// ==================== PUBLIC ROUTES ====================
	r.Get("/api/packages", packageHandler.ListPackages)
	r.Get("/api/packages/{id}", packageHandler.GetPackage)

	// ==================== ADMIN ROUTES ====================
	r.Route("/api/admin/packages", func(r chi.Router) {
		r.Use(middleware.AuthSession(config.Session.Secret, log))
		r.Use(middleware.Admin(log))

		r.Post("/", packageHandler.CreatePackage)
		r.Put("/{id}", packageHandler.UpdatePackage)
		r.Delete("/{id}", packageHandler.DeactivatePackage)
	})
}
