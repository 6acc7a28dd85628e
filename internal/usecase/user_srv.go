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

	"go.uber.org/zap"
)

type UserService interface {
	GetProfile(ctx context.Context, userID string) (*response.UserResponse, error)
	UpdateProfile(ctx context.Context, userID string, req *request.UpdateProfileRequest) (*response.UserResponse, error)
	GetPurchases(ctx context.Context, userID string) ([]response.PurchaseResponse, error)

	// Admin user management.
	ListUsers(ctx context.Context, req *request.PaginatedRequest) (*response.PaginatedResponse[response.UserResponse], error)
	UpdateRole(ctx context.Context, targetID string, req *request.UpdateRoleRequest) error
	DeleteUser(ctx context.Context, actorID, targetID string) error
}

type userService struct {
	repo *repository.Repository
	log  *zap.Logger
}

func NewUserService(repo *repository.Repository, log *zap.Logger) UserService {
	return &userService{
		repo: repo,
		log:  log.With(zap.String("service", "user")),
	}
}

func (s *userService) GetProfile(ctx context.Context, userID string) (*response.UserResponse, error) {
	user, err := s.findUser(ctx, userID)
	if err != nil {
		return nil, err
	}

	resp := response.UserToResponse(user)
	return &resp, nil
}

func (s *userService) UpdateProfile(ctx context.Context, userID string, req *request.UpdateProfileRequest) (*response.UserResponse, error) {
	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		return nil, apperr.Validation(utils.FormatValidationErrors(errs))
	}

	user, err := s.findUser(ctx, userID)
	if err != nil {
		return nil, err
	}

	user.Name = req.Name
	if req.Phone != nil {
		user.Phone = req.Phone
	}
	user.UpdatedAt = time.Now()

	if err := s.repo.User.Update(ctx, user); err != nil {
		return nil, apperr.Storage("update profile", err)
	}

	resp := response.UserToResponse(user)
	return &resp, nil
}

func (s *userService) GetPurchases(ctx context.Context, userID string) ([]response.PurchaseResponse, error) {
	user, err := s.findUser(ctx, userID)
	if err != nil {
		return nil, err
	}

	ents, err := s.repo.Entitlement.FindByUserID(ctx, user.ID)
	if err != nil {
		return nil, apperr.Storage("list purchases", err)
	}

	purchases := make([]response.PurchaseResponse, 0, len(ents))
	for _, ent := range ents {
		packageName := ""
		if pkg, err := s.repo.Package.FindByID(ctx, ent.PackageID); err == nil && pkg != nil {
			packageName = pkg.Name
		}
		purchases = append(purchases, response.EntitlementToPurchase(ent, packageName))
	}

	return purchases, nil
}

func (s *userService) ListUsers(ctx context.Context, req *request.PaginatedRequest) (*response.PaginatedResponse[response.UserResponse], error) {
	users, err := s.repo.User.FindAll(ctx, req.Limit(), req.Offset())
	if err != nil {
		return nil, apperr.Storage("list users", err)
	}

	total, err := s.repo.User.CountAll(ctx)
	if err != nil {
		return nil, apperr.Storage("count users", err)
	}

	items := make([]response.UserResponse, 0, len(users))
	for _, u := range users {
		items = append(items, response.UserToResponse(u))
	}

	return response.NewPaginatedResponse(items, req.Page, req.PerPage, total), nil
}

func (s *userService) UpdateRole(ctx context.Context, targetID string, req *request.UpdateRoleRequest) error {
	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		return apperr.Validation(utils.FormatValidationErrors(errs))
	}

	target, err := s.findUser(ctx, targetID)
	if err != nil {
		return err
	}

	newRole := entity.UserRole(req.Role)
	if target.Role == newRole {
		return nil
	}

	// Demoting the last admin would lock everyone out of the admin panel.
	if target.Role == entity.RoleAdmin && newRole != entity.RoleAdmin {
		admins, err := s.repo.User.CountAdmins(ctx)
		if err != nil {
			return apperr.Storage("count admins", err)
		}
		if admins <= 1 {
			return apperr.Conflict("cannot demote the last admin")
		}
	}

	if err := s.repo.User.UpdateRole(ctx, target.ID, newRole); err != nil {
		return apperr.Storage("update role", err)
	}

	s.log.Info("User role changed",
		zap.String("user_id", target.ID.String()),
		zap.String("role", string(newRole)),
	)
	return nil
}

func (s *userService) DeleteUser(ctx context.Context, actorID, targetID string) error {
	if actorID == targetID {
		return apperr.Conflict("cannot delete your own account")
	}

	target, err := s.findUser(ctx, targetID)
	if err != nil {
		return err
	}

	if target.Role == entity.RoleAdmin {
		admins, err := s.repo.User.CountAdmins(ctx)
		if err != nil {
			return apperr.Storage("count admins", err)
		}
		if admins <= 1 {
			return apperr.Conflict("cannot delete the last admin")
		}
	}

	if err := s.repo.User.Delete(ctx, target.ID); err != nil {
		return apperr.Storage("delete user", err)
	}

	return nil
}

func (s *userService) findUser(ctx context.Context, userID string) (*entity.User, error) {
	id, err := utils.ParseUUID(userID)
	if err != nil {
		return nil, apperr.Validation("invalid user ID")
	}

	user, err := s.repo.User.FindByID(ctx, id)
	if err != nil {
		return nil, apperr.Storage("load user", err)
	}
	if user == nil {
		return nil, apperr.NotFound("user not found")
	}

	return user, nil
}
