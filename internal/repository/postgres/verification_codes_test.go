package postgres

import (
	"context"
	"errors"
	"testing"
	"time"

	pgxmock "github.com/pashagolub/pgxmock/v2"

	"github.com/chanwihad/DashboardAppApi/internal/core/domain"
	"github.com/chanwihad/DashboardAppApi/internal/repository"
)

func TestVerificationCodeRepository_Insert(t *testing.T) {
	mock, err := pgxmock.NewPool()
	if err != nil {
		t.Fatalf("pgxmock.NewPool: %v", err)
	}
	defer mock.Close()

	repo := NewVerificationCodeRepository(mock)

	expiresAt := time.Now().UTC().Add(5 * time.Minute)
	code := domain.VerificationCode{
		Email:     "jdoe@example.com",
		Code:      "482913",
		ExpiresAt: expiresAt,
	}

	mock.ExpectQuery(`INSERT INTO can_passwordresets`).
		WithArgs(code.Email, code.Code, code.ExpiresAt).
		WillReturnRows(pgxmock.NewRows([]string{"id"}).AddRow(11))

	id, err := repo.Insert(context.Background(), code)
	if err != nil {
		t.Fatalf("Insert returned error: %v", err)
	}
	if id != 11 {
		t.Fatalf("expected id 11, got %d", id)
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestVerificationCodeRepository_Find(t *testing.T) {
	mock, err := pgxmock.NewPool()
	if err != nil {
		t.Fatalf("pgxmock.NewPool: %v", err)
	}
	defer mock.Close()

	repo := NewVerificationCodeRepository(mock)

	expiresAt := time.Now().UTC().Add(3 * time.Minute)
	rows := pgxmock.NewRows([]string{"id", "email", "code", "expires_at"}).
		AddRow(11, "jdoe@example.com", "482913", expiresAt)

	mock.ExpectQuery(`SELECT .*FROM can_passwordresets`).
		WithArgs("482913", "jdoe@example.com").
		WillReturnRows(rows)

	rec, err := repo.Find(context.Background(), "jdoe@example.com", "482913")
	if err != nil {
		t.Fatalf("Find returned error: %v", err)
	}
	if rec.ID != 11 {
		t.Fatalf("expected id 11, got %d", rec.ID)
	}
	if !rec.ExpiresAt.Equal(expiresAt) {
		t.Fatalf("expected expiry %v, got %v", expiresAt, rec.ExpiresAt)
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestVerificationCodeRepository_Find_NotFound(t *testing.T) {
	mock, err := pgxmock.NewPool()
	if err != nil {
		t.Fatalf("pgxmock.NewPool: %v", err)
	}
	defer mock.Close()

	repo := NewVerificationCodeRepository(mock)

	mock.ExpectQuery(`SELECT .*FROM can_passwordresets`).
		WithArgs("000000", "jdoe@example.com").
		WillReturnRows(pgxmock.NewRows([]string{"id", "email", "code", "expires_at"}))

	_, err = repo.Find(context.Background(), "jdoe@example.com", "000000")
	if !errors.Is(err, repository.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestVerificationCodeRepository_DeleteByEmail(t *testing.T) {
	mock, err := pgxmock.NewPool()
	if err != nil {
		t.Fatalf("pgxmock.NewPool: %v", err)
	}
	defer mock.Close()

	repo := NewVerificationCodeRepository(mock)

	mock.ExpectExec(`DELETE FROM can_passwordresets`).
		WithArgs("jdoe@example.com").
		WillReturnResult(pgxmock.NewResult("DELETE", 2))

	if err := repo.DeleteByEmail(context.Background(), "jdoe@example.com"); err != nil {
		t.Fatalf("DeleteByEmail returned error: %v", err)
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}
