// Package permissions resolves and grants user capabilities. Admin status
// is the existence of a join row linking the user to the "admin"
// permission.
package permissions

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/surjohq/surjo-backend/pkg/db"
	"github.com/surjohq/surjo-backend/pkg/db/models"
)

// Repository exposes permission persistence operations.
type Repository struct {
	db *gorm.DB
}

// NewRepository constructs a permissions repo bound to the provided GORM DB.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// IsAdmin reports whether the user holds the admin permission.
func (r *Repository) IsAdmin(ctx context.Context, userID uuid.UUID) (bool, error) {
	return r.Has(ctx, userID, models.AdminPermission)
}

// Has reports whether the user holds the named permission.
func (r *Repository) Has(ctx context.Context, userID uuid.UUID, name string) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&models.UserPermission{}).
		Joins("JOIN permissions ON permissions.id = user_permissions.permission_id").
		Where("user_permissions.user_id = ? AND permissions.name = ?", userID, name).
		Count(&count).Error
	if err != nil {
		return false, err
	}
	return count > 0, nil
}

// Grant ensures the named permission exists and links it to the user.
// Granting an already-held permission is a no-op.
func (r *Repository) Grant(ctx context.Context, userID uuid.UUID, name string) error {
	perm, err := r.findOrCreatePermission(ctx, name)
	if err != nil {
		return err
	}

	link := &models.UserPermission{UserID: userID, PermissionID: perm.ID}
	if err := r.db.WithContext(ctx).Create(link).Error; err != nil {
		// concurrent or repeated grant hits the (user_id, permission_id)
		// unique index
		if db.IsUniqueViolation(err) {
			return nil
		}
		return err
	}
	return nil
}

func (r *Repository) findOrCreatePermission(ctx context.Context, name string) (*models.Permission, error) {
	var perm models.Permission
	err := r.db.WithContext(ctx).Where("name = ?", name).First(&perm).Error
	if err == nil {
		return &perm, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	perm = models.Permission{Name: name}
	if createErr := r.db.WithContext(ctx).Create(&perm).Error; createErr != nil {
		if db.IsUniqueViolation(createErr) {
			// lost the race, read the winner
			var existing models.Permission
			if readErr := r.db.WithContext(ctx).Where("name = ?", name).First(&existing).Error; readErr != nil {
				return nil, readErr
			}
			return &existing, nil
		}
		return nil, createErr
	}
	return &perm, nil
}
