package users

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/surjohq/surjo-backend/pkg/config"
	"github.com/surjohq/surjo-backend/pkg/db"
	"github.com/surjohq/surjo-backend/pkg/db/models"
	pkgerrors "github.com/surjohq/surjo-backend/pkg/errors"
	"github.com/surjohq/surjo-backend/pkg/security"
)

const (
	emailTakenMessage   = "email already exists"
	userNotFoundMessage = "user not found"
)

// CreateUserRequest is the POST body for account creation. Password is
// optional so federated-only accounts can be pre-provisioned.
type CreateUserRequest struct {
	Email     string  `json:"email" validate:"required,email"`
	Password  *string `json:"password" validate:"omitempty,min=1"`
	FirstName *string `json:"first_name"`
	LastName  *string `json:"last_name"`
}

// Service wraps the repository with hashing and error taxonomy mapping.
type Service struct {
	repo        repository
	passwordCfg config.PasswordConfig
}

type repository interface {
	Create(ctx context.Context, dto CreateUserDTO) (*models.User, error)
	FindByID(ctx context.Context, id uuid.UUID) (*models.User, error)
	List(ctx context.Context) ([]models.User, error)
	Update(ctx context.Context, id uuid.UUID, patch UpdateUserPatch) (*models.User, error)
	Deactivate(ctx context.Context, id uuid.UUID) error
}

// NewService constructs the user service.
func NewService(repo repository, passwordCfg config.PasswordConfig) (*Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("user repository is required")
	}
	return &Service{repo: repo, passwordCfg: passwordCfg}, nil
}

// Create provisions a new account. The stored credential is a salted
// Argon2id hash; the raw password is never persisted.
func (s *Service) Create(ctx context.Context, req CreateUserRequest) (*UserDTO, error) {
	var hash *string
	if req.Password != nil && *req.Password != "" {
		hashed, err := security.HashPassword(*req.Password, s.passwordCfg)
		if err != nil {
			return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "hash password")
		}
		hash = &hashed
	}

	user, err := s.repo.Create(ctx, CreateUserDTO{
		Email:        req.Email,
		PasswordHash: hash,
		FirstName:    req.FirstName,
		LastName:     req.LastName,
	})
	if err != nil {
		if db.IsUniqueViolation(err) {
			return nil, pkgerrors.New(pkgerrors.CodeConflict, emailTakenMessage)
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "create user")
	}

	return FromModel(user), nil
}

// Get loads a single user.
func (s *Service) Get(ctx context.Context, id uuid.UUID) (*UserDTO, error) {
	user, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, userNotFoundMessage)
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "find user")
	}
	return FromModel(user), nil
}

// List returns every account, newest first.
func (s *Service) List(ctx context.Context) ([]UserDTO, error) {
	list, err := s.repo.List(ctx)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "list users")
	}
	return FromModels(list), nil
}

// Update applies a partial patch and returns the fresh state.
func (s *Service) Update(ctx context.Context, id uuid.UUID, patch UpdateUserPatch) (*UserDTO, error) {
	user, err := s.repo.Update(ctx, id, patch)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, userNotFoundMessage)
		}
		if db.IsUniqueViolation(err) {
			return nil, pkgerrors.New(pkgerrors.CodeConflict, emailTakenMessage)
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "update user")
	}
	return FromModel(user), nil
}

// Deactivate soft-disables the account. The row and its email stay
// reserved.
func (s *Service) Deactivate(ctx context.Context, id uuid.UUID) error {
	if err := s.repo.Deactivate(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return pkgerrors.New(pkgerrors.CodeNotFound, userNotFoundMessage)
		}
		return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "deactivate user")
	}
	return nil
}
