package auth

import (
	"context"

	pkgerrors "github.com/surjohq/surjo-backend/pkg/errors"
)

// GoogleLogin is the federated login slot. The request shape is accepted
// and validated so clients can integrate against the final contract, but
// the token exchange itself is not live yet.
//
// TODO: exchange the authorization code for a verified email,
// find-or-create the user, then mint a session the same way Login does.
func (s *service) GoogleLogin(ctx context.Context, req GoogleLoginRequest) (*LoginResponse, error) {
	return nil, pkgerrors.New(pkgerrors.CodeNotImplemented, "Google login is not implemented")
}
