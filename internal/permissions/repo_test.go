package permissions

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/surjohq/surjo-backend/pkg/db/models"
)

func setupPermissionsTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	conn, err := gorm.Open(sqlite.Open("file:permissions_repo_test?mode=memory&cache=shared"), &gorm.Config{})
	require.NoError(t, err)

	sqlDB, err := conn.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	require.NoError(t, conn.Exec(`DROP TABLE IF EXISTS user_permissions`).Error)
	require.NoError(t, conn.Exec(`DROP TABLE IF EXISTS permissions`).Error)
	require.NoError(t, conn.Exec(`
CREATE TABLE permissions (
  id TEXT PRIMARY KEY,
  name TEXT NOT NULL UNIQUE,
  created_at DATETIME
);`).Error)
	require.NoError(t, conn.Exec(`
CREATE TABLE user_permissions (
  id TEXT PRIMARY KEY,
  user_id TEXT NOT NULL,
  permission_id TEXT NOT NULL,
  granted_at DATETIME,
  UNIQUE (user_id, permission_id)
);`).Error)
	return conn
}

func TestIsAdminDefaultsFalse(t *testing.T) {
	repo := NewRepository(setupPermissionsTestDB(t))

	isAdmin, err := repo.IsAdmin(context.Background(), uuid.New())
	require.NoError(t, err)
	assert.False(t, isAdmin)
}

func TestGrantThenIsAdmin(t *testing.T) {
	repo := NewRepository(setupPermissionsTestDB(t))
	ctx := context.Background()
	userID := uuid.New()

	require.NoError(t, repo.Grant(ctx, userID, models.AdminPermission))

	isAdmin, err := repo.IsAdmin(ctx, userID)
	require.NoError(t, err)
	assert.True(t, isAdmin)

	// another user is unaffected
	other, err := repo.IsAdmin(ctx, uuid.New())
	require.NoError(t, err)
	assert.False(t, other)
}

func TestGrantIsIdempotent(t *testing.T) {
	conn := setupPermissionsTestDB(t)
	repo := NewRepository(conn)
	ctx := context.Background()
	userID := uuid.New()

	require.NoError(t, repo.Grant(ctx, userID, models.AdminPermission))
	require.NoError(t, repo.Grant(ctx, userID, models.AdminPermission))

	var links int64
	require.NoError(t, conn.Model(&models.UserPermission{}).Count(&links).Error)
	assert.Equal(t, int64(1), links)

	var perms int64
	require.NoError(t, conn.Model(&models.Permission{}).Count(&perms).Error)
	assert.Equal(t, int64(1), perms)
}

func TestGrantReusesExistingPermissionRow(t *testing.T) {
	conn := setupPermissionsTestDB(t)
	repo := NewRepository(conn)
	ctx := context.Background()

	require.NoError(t, repo.Grant(ctx, uuid.New(), "reports"))
	require.NoError(t, repo.Grant(ctx, uuid.New(), "reports"))

	var perms int64
	require.NoError(t, conn.Model(&models.Permission{}).Count(&perms).Error)
	assert.Equal(t, int64(1), perms)
}

func TestHasDistinguishesPermissions(t *testing.T) {
	repo := NewRepository(setupPermissionsTestDB(t))
	ctx := context.Background()
	userID := uuid.New()

	require.NoError(t, repo.Grant(ctx, userID, "reports"))

	hasReports, err := repo.Has(ctx, userID, "reports")
	require.NoError(t, err)
	assert.True(t, hasReports)

	isAdmin, err := repo.IsAdmin(ctx, userID)
	require.NoError(t, err)
	assert.False(t, isAdmin)
}
