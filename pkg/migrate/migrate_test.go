package migrate

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/surjohq/surjo-backend/pkg/config"
)

func TestDialect(t *testing.T) {
	if d, err := Dialect(config.DriverPostgres); err != nil || d != "postgres" {
		t.Fatalf("postgres dialect: got %q, %v", d, err)
	}
	if d, err := Dialect(config.DriverSQLite); err != nil || d != "sqlite3" {
		t.Fatalf("sqlite dialect: got %q, %v", d, err)
	}
	if _, err := Dialect("oracle"); err == nil {
		t.Fatalf("expected error for unsupported driver")
	}
}

func TestShippedMigrationsValidate(t *testing.T) {
	if err := ValidateDir("migrations"); err != nil {
		t.Fatalf("shipped migrations failed validation: %v", err)
	}
}

func TestShippedMigrationsCoverSchema(t *testing.T) {
	entries, err := os.ReadDir("migrations")
	if err != nil {
		t.Fatalf("read migrations dir: %v", err)
	}

	var all strings.Builder
	for _, e := range entries {
		b, err := os.ReadFile(filepath.Join("migrations", e.Name()))
		if err != nil {
			t.Fatalf("read %s: %v", e.Name(), err)
		}
		all.Write(b)
	}

	for _, want := range []string{
		"CREATE TABLE users",
		"CREATE TABLE permissions",
		"CREATE TABLE user_permissions",
		"idx_users_email",
		"idx_user_permission",
		"'admin'",
	} {
		if !strings.Contains(all.String(), want) {
			t.Fatalf("migrations missing %q", want)
		}
	}
}

func TestValidateDirRejectsBadFilename(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "not_versioned.sql")
	if err := os.WriteFile(path, []byte("-- +goose Up\n-- +goose Down\n"), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}
	if err := ValidateDir(dir); err == nil {
		t.Fatalf("expected filename validation failure")
	}
}

func TestCreateSQLMigration(t *testing.T) {
	dir := t.TempDir()
	path, err := CreateSQLMigration(dir, "Add Widget Table!")
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if !strings.HasSuffix(path, "_add_widget_table.sql") {
		t.Fatalf("unexpected filename %q", path)
	}
	if err := ValidateDir(dir); err != nil {
		t.Fatalf("generated migration failed validation: %v", err)
	}
}
