package auth

import "github.com/surjohq/surjo-backend/internal/users"

// LoginRequest carries password-login credentials.
type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// LoginResponse is the successful login payload: a signed session token
// plus the user snapshot it was minted from.
type LoginResponse struct {
	Token string         `json:"token"`
	User  *users.UserDTO `json:"user"`
}

// GoogleLoginRequest carries the authorization code from the federated
// flow. Accepted and validated at the edge even though the exchange is not
// live yet.
type GoogleLoginRequest struct {
	Code string `json:"code" validate:"required"`
}
