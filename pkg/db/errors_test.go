package db

import (
	"errors"
	"fmt"
	"testing"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/lib/pq"
)

func TestIsUniqueViolationPgx(t *testing.T) {
	err := fmt.Errorf("create: %w", &pgconn.PgError{Code: "23505", ConstraintName: "users_email_key"})
	if !IsUniqueViolation(err) {
		t.Fatalf("expected pgx unique violation to classify")
	}
	if IsUniqueViolation(&pgconn.PgError{Code: "23503"}) {
		t.Fatalf("foreign key violation must not classify as unique")
	}
}

func TestIsUniqueViolationPq(t *testing.T) {
	if !IsUniqueViolation(&pq.Error{Code: "23505"}) {
		t.Fatalf("expected pq unique violation to classify")
	}
}

func TestIsUniqueViolationSQLiteText(t *testing.T) {
	err := errors.New("UNIQUE constraint failed: users.email")
	if !IsUniqueViolation(err) {
		t.Fatalf("expected sqlite constraint text to classify")
	}
}

func TestIsUniqueViolationNegative(t *testing.T) {
	if IsUniqueViolation(nil) {
		t.Fatalf("nil must not classify")
	}
	if IsUniqueViolation(errors.New("connection refused")) {
		t.Fatalf("io failure must not classify")
	}
}
