package controllers

import (
	"context"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/surjohq/surjo-backend/api/responses"
	"github.com/surjohq/surjo-backend/api/validators"
	"github.com/surjohq/surjo-backend/internal/users"
	pkgerrors "github.com/surjohq/surjo-backend/pkg/errors"
	"github.com/surjohq/surjo-backend/pkg/logger"
)

type permissionGranter interface {
	Grant(ctx context.Context, userID uuid.UUID, name string) error
}

func userIDParam(r *http.Request) (uuid.UUID, error) {
	raw := chi.URLParam(r, "id")
	id, err := uuid.Parse(raw)
	if err != nil {
		// an unparseable id can never match a row
		return uuid.Nil, pkgerrors.New(pkgerrors.CodeNotFound, "user not found")
	}
	return id, nil
}

// UsersCreate provisions a new account and answers 201 with its public
// projection.
func UsersCreate(svc *users.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var body users.CreateUserRequest
		if err := validators.DecodeJSONBody(r, &body); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		dto, err := svc.Create(r.Context(), body)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccessStatus(w, http.StatusCreated, dto)
	}
}

// UsersGet answers with a single user's projection.
func UsersGet(svc *users.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := userIDParam(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		dto, err := svc.Get(r.Context(), id)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, dto)
	}
}

// UsersUpdate applies a partial patch: omitted fields keep their value,
// explicit nulls clear nullable ones.
func UsersUpdate(svc *users.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := userIDParam(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		var patch users.UpdateUserPatch
		if err := validators.DecodeJSONBody(r, &patch); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		if patch.Email.Set {
			if !patch.Email.Valid {
				responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeValidation, "validation failed").
					WithDetails(map[string]string{"email": "cannot be null"}))
				return
			}
			if err := validators.ValidateVar("email", patch.Email.Value, "required,email"); err != nil {
				responses.WriteError(r.Context(), logg, w, err)
				return
			}
		}

		dto, err := svc.Update(r.Context(), id, patch)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, dto)
	}
}

// UsersList returns every account, newest first.
func UsersList(svc *users.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		list, err := svc.List(r.Context())
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, list)
	}
}

// UsersDeactivate soft-disables an account; its email stays reserved and
// its sessions expire naturally.
func UsersDeactivate(svc *users.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := userIDParam(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		if err := svc.Deactivate(r.Context(), id); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, map[string]string{"status": "deactivated"})
	}
}

type grantPermissionRequest struct {
	Name string `json:"name" validate:"required,min=1,max=64"`
}

// UsersGrantPermission links a named permission to the user. Granting an
// already-held permission succeeds without a second row.
func UsersGrantPermission(svc *users.Service, perms permissionGranter, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := userIDParam(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		var body grantPermissionRequest
		if err := validators.DecodeJSONBody(r, &body); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		// the grant target must exist
		if _, err := svc.Get(r.Context(), id); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		if err := perms.Grant(r.Context(), id, validators.SanitizeString(body.Name, 64)); err != nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "grant permission"))
			return
		}

		responses.WriteSuccess(w, map[string]string{"status": "granted"})
	}
}
