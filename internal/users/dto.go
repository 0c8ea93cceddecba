package users

import (
	"bytes"
	"encoding/json"
	"time"

	"github.com/google/uuid"

	"github.com/surjohq/surjo-backend/pkg/db/models"
)

// UserDTO is the transport shape that omits the credential hash.
type UserDTO struct {
	ID        uuid.UUID `json:"id"`
	Email     string    `json:"email"`
	FirstName *string   `json:"first_name"`
	LastName  *string   `json:"last_name"`
	IsActive  bool      `json:"is_active"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// CreateUserDTO holds the data required by the repo to persist a new user.
// PasswordHash is nil for federated-only accounts.
type CreateUserDTO struct {
	Email        string
	PasswordHash *string
	FirstName    *string
	LastName     *string
}

// OptionalString distinguishes "absent", "null", and "set to a value" in a
// partial update body. Absent fields keep their stored value; null clears.
type OptionalString struct {
	Set   bool
	Valid bool
	Value string
}

func (o *OptionalString) UnmarshalJSON(data []byte) error {
	o.Set = true
	if bytes.Equal(data, []byte("null")) {
		o.Valid = false
		o.Value = ""
		return nil
	}
	if err := json.Unmarshal(data, &o.Value); err != nil {
		return err
	}
	o.Valid = true
	return nil
}

// Ptr converts the optional into the nullable column representation.
func (o OptionalString) Ptr() *string {
	if !o.Valid {
		return nil
	}
	v := o.Value
	return &v
}

// UpdateUserPatch carries the mutable user fields of a partial update.
type UpdateUserPatch struct {
	Email     OptionalString `json:"email"`
	FirstName OptionalString `json:"first_name"`
	LastName  OptionalString `json:"last_name"`
}

// Empty reports whether the patch changes nothing.
func (p UpdateUserPatch) Empty() bool {
	return !p.Email.Set && !p.FirstName.Set && !p.LastName.Set
}

func FromModel(u *models.User) *UserDTO {
	if u == nil {
		return nil
	}

	return &UserDTO{
		ID:        u.ID,
		Email:     u.Email,
		FirstName: u.FirstName,
		LastName:  u.LastName,
		IsActive:  u.IsActive,
		CreatedAt: u.CreatedAt,
		UpdatedAt: u.UpdatedAt,
	}
}

// FromModels maps a model slice preserving order.
func FromModels(list []models.User) []UserDTO {
	out := make([]UserDTO, 0, len(list))
	for i := range list {
		out = append(out, *FromModel(&list[i]))
	}
	return out
}

func (c CreateUserDTO) ToModel() *models.User {
	return &models.User{
		Email:        c.Email,
		PasswordHash: c.PasswordHash,
		FirstName:    c.FirstName,
		LastName:     c.LastName,
		IsActive:     true,
	}
}
