package auth

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/surjohq/surjo-backend/internal/users"
	pkgAuth "github.com/surjohq/surjo-backend/pkg/auth"
	"github.com/surjohq/surjo-backend/pkg/config"
	"github.com/surjohq/surjo-backend/pkg/db/models"
	pkgerrors "github.com/surjohq/surjo-backend/pkg/errors"
	"github.com/surjohq/surjo-backend/pkg/logger"
	"github.com/surjohq/surjo-backend/pkg/security"
)

const (
	invalidCredentialsMessage = "invalid credentials"
	accountDisabledMessage    = "account is disabled"
)

// Service defines the behavior needed by the auth controller.
type Service interface {
	Login(ctx context.Context, req LoginRequest) (*LoginResponse, error)
	GoogleLogin(ctx context.Context, req GoogleLoginRequest) (*LoginResponse, error)
}

type service struct {
	users       userRepository
	permissions permissionResolver
	jwtCfg      config.JWTConfig
	logg        *logger.Logger
}

type userRepository interface {
	FindByEmail(ctx context.Context, email string) (*models.User, error)
}

type permissionResolver interface {
	IsAdmin(ctx context.Context, userID uuid.UUID) (bool, error)
}

// ServiceParams bundles the dependencies required to build an auth service.
type ServiceParams struct {
	UserRepo       userRepository
	PermissionRepo permissionResolver
	JWTConfig      config.JWTConfig
	Logger         *logger.Logger
}

// NewService constructs a login service with the provided dependencies.
func NewService(params ServiceParams) (Service, error) {
	if params.UserRepo == nil {
		return nil, fmt.Errorf("user repository is required")
	}
	if params.PermissionRepo == nil {
		return nil, fmt.Errorf("permission resolver is required")
	}
	if params.Logger == nil {
		return nil, fmt.Errorf("logger is required")
	}
	return &service{
		users:       params.UserRepo,
		permissions: params.PermissionRepo,
		jwtCfg:      params.JWTConfig,
		logg:        params.Logger,
	}, nil
}

// Login authenticates the credentials and mints a session token carrying
// the admin snapshot at login time. Later grants or revocations do not
// touch outstanding tokens.
func (s *service) Login(ctx context.Context, req LoginRequest) (*LoginResponse, error) {
	user, err := s.users.FindByEmail(ctx, req.Email)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeUnauthorized, invalidCredentialsMessage)
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "lookup user")
	}

	if !user.IsActive {
		return nil, pkgerrors.New(pkgerrors.CodeUnauthorized, accountDisabledMessage)
	}

	// federated-only accounts have no hash and cannot password-login
	if user.PasswordHash == nil || !security.VerifyPassword(req.Password, *user.PasswordHash) {
		return nil, pkgerrors.New(pkgerrors.CodeUnauthorized, invalidCredentialsMessage)
	}

	isAdmin, err := s.permissions.IsAdmin(ctx, user.ID)
	if err != nil {
		// a broken resolver downgrades to a non-admin session rather
		// than blocking login
		s.logg.Warn(s.logg.WithUserID(ctx, user.ID.String()), "admin resolution failed, defaulting to non-admin")
		isAdmin = false
	}

	token, err := pkgAuth.MintSessionToken(s.jwtCfg, time.Now().UTC(), pkgAuth.SessionPayload{
		UserID:  user.ID,
		Email:   user.Email,
		IsAdmin: isAdmin,
	})
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "mint jwt")
	}

	return &LoginResponse{
		Token: token,
		User:  users.FromModel(user),
	}, nil
}
