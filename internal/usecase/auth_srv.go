package usecase

import (
	"context"
	"errors"
	"time"

	"travel-booking/internal/data/entity"
	"travel-booking/internal/data/repository"
	"travel-booking/internal/dto/request"
	"travel-booking/internal/dto/response"
	"travel-booking/pkg/apperr"
	"travel-booking/pkg/utils"

	"go.uber.org/zap"
)

type AuthService interface {
	Register(ctx context.Context, req *request.RegisterRequest) (*response.AuthResponse, error)
	Login(ctx context.Context, req *request.LoginRequest) (*response.AuthResponse, error)
}

type authService struct {
	repo   *repository.Repository
	config *utils.Config
	log    *zap.Logger
}

func NewAuthService(repo *repository.Repository, config *utils.Config, log *zap.Logger) AuthService {
	return &authService{
		repo:   repo,
		config: config,
		log:    log.With(zap.String("service", "auth")),
	}
}

func (s *authService) Register(ctx context.Context, req *request.RegisterRequest) (*response.AuthResponse, error) {
	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		return nil, apperr.Validation(utils.FormatValidationErrors(errs))
	}

	email := utils.NormalizeEmail(req.Email)

	hash, err := utils.HashPassword(req.Password)
	if err != nil {
		return nil, apperr.Provisioning("hash password", err)
	}

	now := time.Now()
	user := &entity.User{
		Base: entity.Base{
			ID:        utils.GenerateUUID(),
			CreatedAt: now,
			UpdatedAt: now,
		},
		Name:         req.Name,
		Email:        email,
		PasswordHash: hash,
		Phone:        req.Phone,
		Role:         entity.RoleUser,
		IsActive:     true,
	}

	if err := s.repo.User.Create(ctx, user); err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			return nil, apperr.Conflict("email already registered")
		}
		return nil, apperr.Storage("create user", err)
	}

	s.log.Info("User registered",
		zap.String("user_id", user.ID.String()),
		zap.String("email", user.Email),
	)

	return s.buildAuthResponse(user)
}

func (s *authService) Login(ctx context.Context, req *request.LoginRequest) (*response.AuthResponse, error) {
	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		return nil, apperr.Validation(utils.FormatValidationErrors(errs))
	}

	user, err := s.repo.User.FindByEmail(ctx, utils.NormalizeEmail(req.Email))
	if err != nil {
		return nil, apperr.Storage("look up user", err)
	}
	if user == nil || !utils.CheckPasswordHash(req.Password, user.PasswordHash) {
		return nil, apperr.Unauthorized("invalid email or password")
	}
	if !user.IsActive {
		return nil, apperr.Forbidden("account is disabled")
	}

	s.log.Info("User logged in", zap.String("user_id", user.ID.String()))

	return s.buildAuthResponse(user)
}

func (s *authService) buildAuthResponse(user *entity.User) (*response.AuthResponse, error) {
	token, expiresAt, err := issueSession(s.config, user)
	if err != nil {
		return nil, apperr.Provisioning("issue session token", err)
	}

	return &response.AuthResponse{
		User:      response.UserToResponse(user),
		Token:     token,
		ExpiresAt: expiresAt,
	}, nil
}

// issueSession signs a session token for the user, or returns an empty
// token when no signing secret is configured.
func issueSession(config *utils.Config, user *entity.User) (string, time.Time, error) {
	if !config.HasSession() {
		return "", time.Time{}, nil
	}

	expiry := time.Duration(config.Session.ExpiryHours) * time.Hour
	return utils.IssueSessionToken(config.Session.Secret, user.ID, user.Email, user.Name, string(user.Role), expiry)
}

// ensureUser resolves the account for an email, provisioning one with a
// random temporary credential when none exists. The plaintext credential
// is returned only on the call that created the account; concurrent
// creations collapse onto the surviving row.
func ensureUser(ctx context.Context, repo *repository.Repository, log *zap.Logger, email, name string, phone *string) (*entity.User, *string, error) {
	email = utils.NormalizeEmail(email)
	if email == "" {
		return nil, nil, apperr.Validation("customer email is required")
	}

	user, err := repo.User.FindByEmail(ctx, email)
	if err != nil {
		return nil, nil, apperr.Storage("look up user", err)
	}
	if user != nil {
		if !user.IsActive {
			return nil, nil, apperr.Forbidden("account is disabled")
		}
		return user, nil, nil
	}

	tempPassword, err := utils.GenerateTempCredential()
	if err != nil {
		return nil, nil, apperr.Provisioning("generate temporary credential", err)
	}

	hash, err := utils.HashPassword(tempPassword)
	if err != nil {
		return nil, nil, apperr.Provisioning("hash temporary credential", err)
	}

	if name == "" {
		name = utils.EmailLocalPart(email)
	}

	now := time.Now()
	user = &entity.User{
		Base: entity.Base{
			ID:        utils.GenerateUUID(),
			CreatedAt: now,
			UpdatedAt: now,
		},
		Name:         name,
		Email:        email,
		PasswordHash: hash,
		Phone:        phone,
		Role:         entity.RoleUser,
		IsActive:     true,
	}

	if err := repo.User.Create(ctx, user); err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			// Lost the race; the account exists now.
			user, err = repo.User.FindByEmail(ctx, email)
			if err != nil {
				return nil, nil, apperr.Storage("reload user after duplicate", err)
			}
			if user == nil {
				return nil, nil, apperr.Provisioning("account vanished after duplicate insert", nil)
			}
			return user, nil, nil
		}
		return nil, nil, apperr.Provisioning("provision account", err)
	}

	log.Info("Provisioned account for guest checkout",
		zap.String("user_id", user.ID.String()),
		zap.String("email", user.Email),
	)

	return user, &tempPassword, nil
}
