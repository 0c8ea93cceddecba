package users

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/surjohq/surjo-backend/pkg/config"
	pkgerrors "github.com/surjohq/surjo-backend/pkg/errors"
	"github.com/surjohq/surjo-backend/pkg/security"
)

func testPasswordConfig() config.PasswordConfig {
	return config.PasswordConfig{
		ArgonMemoryKB:    8,
		ArgonTime:        1,
		ArgonParallelism: 1,
		ArgonSaltLen:     8,
		ArgonKeyLen:      16,
	}
}

func newTestService(t *testing.T) *Service {
	t.Helper()
	svc, err := NewService(NewRepository(setupUsersTestDB(t)), testPasswordConfig())
	require.NoError(t, err)
	return svc
}

func TestServiceCreateHashesPassword(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	dto, err := svc.Create(ctx, CreateUserRequest{
		Email:    "a@x.com",
		Password: strPtr("pw123"),
	})
	require.NoError(t, err)
	assert.Equal(t, "a@x.com", dto.Email)

	stored, err := svc.repo.FindByID(ctx, dto.ID)
	require.NoError(t, err)
	require.NotNil(t, stored.PasswordHash)
	assert.NotContains(t, *stored.PasswordHash, "pw123")
	assert.True(t, security.VerifyPassword("pw123", *stored.PasswordHash))
}

func TestServiceCreateWithoutPassword(t *testing.T) {
	svc := newTestService(t)

	dto, err := svc.Create(context.Background(), CreateUserRequest{Email: "fed@x.com"})
	require.NoError(t, err)

	stored, err := svc.repo.FindByID(context.Background(), dto.ID)
	require.NoError(t, err)
	assert.Nil(t, stored.PasswordHash)
}

func TestServiceCreateDuplicateEmailIsConflict(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	_, err := svc.Create(ctx, CreateUserRequest{Email: "a@x.com"})
	require.NoError(t, err)

	_, err = svc.Create(ctx, CreateUserRequest{Email: "a@x.com"})
	typed := pkgerrors.As(err)
	require.NotNil(t, typed)
	assert.Equal(t, pkgerrors.CodeConflict, typed.Code())
	assert.Equal(t, emailTakenMessage, typed.Message())
}

func TestServiceGetUnknownIsNotFound(t *testing.T) {
	svc := newTestService(t)

	_, err := svc.Get(context.Background(), uuid.New())
	typed := pkgerrors.As(err)
	require.NotNil(t, typed)
	assert.Equal(t, pkgerrors.CodeNotFound, typed.Code())
	assert.Equal(t, userNotFoundMessage, typed.Message())
}

func TestServiceUpdateUnknownIsNotFound(t *testing.T) {
	svc := newTestService(t)

	patch := UpdateUserPatch{FirstName: OptionalString{Set: true, Valid: true, Value: "x"}}
	_, err := svc.Update(context.Background(), uuid.New(), patch)
	typed := pkgerrors.As(err)
	require.NotNil(t, typed)
	assert.Equal(t, pkgerrors.CodeNotFound, typed.Code())
}

func TestServiceUpdateEmailToTakenIsConflict(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	_, err := svc.Create(ctx, CreateUserRequest{Email: "a@x.com"})
	require.NoError(t, err)
	second, err := svc.Create(ctx, CreateUserRequest{Email: "b@x.com"})
	require.NoError(t, err)

	patch := UpdateUserPatch{Email: OptionalString{Set: true, Valid: true, Value: "a@x.com"}}
	_, err = svc.Update(ctx, second.ID, patch)
	typed := pkgerrors.As(err)
	require.NotNil(t, typed)
	assert.Equal(t, pkgerrors.CodeConflict, typed.Code())
}

func TestServiceDeactivate(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	created, err := svc.Create(ctx, CreateUserRequest{Email: "a@x.com"})
	require.NoError(t, err)

	require.NoError(t, svc.Deactivate(ctx, created.ID))

	got, err := svc.Get(ctx, created.ID)
	require.NoError(t, err)
	assert.False(t, got.IsActive)

	err = svc.Deactivate(ctx, uuid.New())
	typed := pkgerrors.As(err)
	require.NotNil(t, typed)
	assert.Equal(t, pkgerrors.CodeNotFound, typed.Code())
}
