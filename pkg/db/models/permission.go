package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// AdminPermission is the capability name gating admin behavior.
const AdminPermission = "admin"

// Permission names a grantable capability.
type Permission struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey"`
	Name      string    `gorm:"type:text;not null;uniqueIndex"`
	CreatedAt time.Time `gorm:"column:created_at;autoCreateTime"`
}

func (p *Permission) BeforeCreate(tx *gorm.DB) error {
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	return nil
}

// UserPermission joins a user to a permission. Existence of the row is the
// grant; there is no negative state.
type UserPermission struct {
	ID           uuid.UUID `gorm:"type:uuid;primaryKey"`
	UserID       uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_user_permission"`
	PermissionID uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_user_permission"`
	GrantedAt    time.Time `gorm:"column:granted_at;autoCreateTime"`
}

func (up *UserPermission) BeforeCreate(tx *gorm.DB) error {
	if up.ID == uuid.Nil {
		up.ID = uuid.New()
	}
	return nil
}
