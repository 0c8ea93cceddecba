package users

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/surjohq/surjo-backend/pkg/db"
)

func setupUsersTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	conn, err := gorm.Open(sqlite.Open("file:users_repo_test?mode=memory&cache=shared"), &gorm.Config{})
	require.NoError(t, err)

	sqlDB, err := conn.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	require.NoError(t, conn.Exec(`DROP TABLE IF EXISTS users`).Error)
	require.NoError(t, conn.Exec(`
CREATE TABLE users (
  id TEXT PRIMARY KEY,
  email TEXT NOT NULL UNIQUE,
  password_hash TEXT,
  first_name TEXT,
  last_name TEXT,
  is_active INTEGER NOT NULL DEFAULT 1,
  created_at DATETIME,
  updated_at DATETIME
);`).Error)
	return conn
}

func strPtr(s string) *string { return &s }

func TestCreateAssignsIDAndDefaults(t *testing.T) {
	repo := NewRepository(setupUsersTestDB(t))
	ctx := context.Background()

	user, err := repo.Create(ctx, CreateUserDTO{
		Email:        "a@x.com",
		PasswordHash: strPtr("$argon2id$..."),
		FirstName:    strPtr("Ada"),
	})
	require.NoError(t, err)

	assert.NotEqual(t, uuid.Nil, user.ID)
	assert.True(t, user.IsActive)
	assert.Nil(t, user.LastName)
	assert.False(t, user.CreatedAt.IsZero())
}

func TestCreateDuplicateEmailIsUniqueViolation(t *testing.T) {
	repo := NewRepository(setupUsersTestDB(t))
	ctx := context.Background()

	_, err := repo.Create(ctx, CreateUserDTO{Email: "a@x.com"})
	require.NoError(t, err)

	_, err = repo.Create(ctx, CreateUserDTO{Email: "a@x.com"})
	require.Error(t, err)
	assert.True(t, db.IsUniqueViolation(err))
}

func TestFindByEmailIsCaseSensitive(t *testing.T) {
	conn := setupUsersTestDB(t)
	repo := NewRepository(conn)
	ctx := context.Background()

	_, err := repo.Create(ctx, CreateUserDTO{Email: "a@x.com"})
	require.NoError(t, err)

	found, err := repo.FindByEmail(ctx, "a@x.com")
	require.NoError(t, err)
	assert.Equal(t, "a@x.com", found.Email)

	// sqlite compares BINARY by default, matching the postgres behavior
	_, err = repo.FindByEmail(ctx, "A@X.COM")
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)
}

func TestFindByIDUnknownIsNotFound(t *testing.T) {
	repo := NewRepository(setupUsersTestDB(t))

	_, err := repo.FindByID(context.Background(), uuid.New())
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)
}

func TestListNewestFirst(t *testing.T) {
	conn := setupUsersTestDB(t)
	repo := NewRepository(conn)
	ctx := context.Background()

	older, err := repo.Create(ctx, CreateUserDTO{Email: "old@x.com"})
	require.NoError(t, err)
	newer, err := repo.Create(ctx, CreateUserDTO{Email: "new@x.com"})
	require.NoError(t, err)

	// force distinct timestamps; sqlite DATETIME resolution is coarse
	require.NoError(t, conn.Exec(
		`UPDATE users SET created_at = ? WHERE id = ?`,
		older.CreatedAt.Add(-time.Hour), older.ID,
	).Error)

	list, err := repo.List(ctx)
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, newer.ID, list[0].ID)
	assert.Equal(t, older.ID, list[1].ID)
}

func TestUpdateAppliesOnlySetFields(t *testing.T) {
	repo := NewRepository(setupUsersTestDB(t))
	ctx := context.Background()

	created, err := repo.Create(ctx, CreateUserDTO{
		Email:     "a@x.com",
		FirstName: strPtr("Ada"),
		LastName:  strPtr("Lovelace"),
	})
	require.NoError(t, err)

	var patch UpdateUserPatch
	require.NoError(t, json.Unmarshal([]byte(`{"first_name":"Grace","last_name":null}`), &patch))

	updated, err := repo.Update(ctx, created.ID, patch)
	require.NoError(t, err)

	assert.Equal(t, "a@x.com", updated.Email)
	require.NotNil(t, updated.FirstName)
	assert.Equal(t, "Grace", *updated.FirstName)
	assert.Nil(t, updated.LastName)
}

func TestUpdateEmptyPatchReturnsRow(t *testing.T) {
	repo := NewRepository(setupUsersTestDB(t))
	ctx := context.Background()

	created, err := repo.Create(ctx, CreateUserDTO{Email: "a@x.com"})
	require.NoError(t, err)

	var patch UpdateUserPatch
	require.NoError(t, json.Unmarshal([]byte(`{}`), &patch))
	require.True(t, patch.Empty())

	got, err := repo.Update(ctx, created.ID, patch)
	require.NoError(t, err)
	assert.Equal(t, created.ID, got.ID)
}

func TestUpdateUnknownIDIsNotFound(t *testing.T) {
	repo := NewRepository(setupUsersTestDB(t))

	var patch UpdateUserPatch
	require.NoError(t, json.Unmarshal([]byte(`{"first_name":"x"}`), &patch))

	_, err := repo.Update(context.Background(), uuid.New(), patch)
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)
}

func TestDeactivate(t *testing.T) {
	repo := NewRepository(setupUsersTestDB(t))
	ctx := context.Background()

	created, err := repo.Create(ctx, CreateUserDTO{Email: "a@x.com"})
	require.NoError(t, err)

	require.NoError(t, repo.Deactivate(ctx, created.ID))

	got, err := repo.FindByID(ctx, created.ID)
	require.NoError(t, err)
	assert.False(t, got.IsActive)

	assert.ErrorIs(t, repo.Deactivate(ctx, uuid.New()), gorm.ErrRecordNotFound)
}

func TestUserDTOOmitsPasswordHash(t *testing.T) {
	repo := NewRepository(setupUsersTestDB(t))

	created, err := repo.Create(context.Background(), CreateUserDTO{
		Email:        "a@x.com",
		PasswordHash: strPtr("$argon2id$..."),
	})
	require.NoError(t, err)

	b, err := json.Marshal(FromModel(created))
	require.NoError(t, err)
	assert.NotContains(t, string(b), "password")
	assert.Contains(t, string(b), `"email":"a@x.com"`)
}
