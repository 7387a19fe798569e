package postgres

import (
	"context"
	"errors"
	"testing"

	pgxmock "github.com/pashagolub/pgxmock/v2"

	"github.com/chanwihad/DashboardAppApi/internal/core/domain"
	"github.com/chanwihad/DashboardAppApi/internal/core/port"
	"github.com/chanwihad/DashboardAppApi/internal/repository"
)

func TestUserRepository_Create(t *testing.T) {
	mock, err := pgxmock.NewPool()
	if err != nil {
		t.Fatalf("pgxmock.NewPool: %v", err)
	}
	defer mock.Close()

	repo := NewUserRepository(mock)

	user := domain.User{
		Username:     "jdoe",
		FullName:     "Jane Doe",
		Email:        "jdoe@example.com",
		PasswordHash: "argon2id$v=19$m=65536,t=3,p=4$salt$hash",
		Status:       domain.UserStatusActive,
		MaxRetry:     3,
	}

	mock.ExpectQuery(`INSERT INTO can_users`).
		WithArgs(
			user.Username,
			user.FullName,
			user.Email,
			user.PasswordHash,
			user.Status,
			user.MaxRetry,
			user.Retry,
		).
		WillReturnRows(pgxmock.NewRows([]string{"id"}).AddRow(7))

	id, err := repo.Create(context.Background(), user)
	if err != nil {
		t.Fatalf("Create returned error: %v", err)
	}
	if id != 7 {
		t.Fatalf("expected id 7, got %d", id)
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestUserRepository_GetByUsername(t *testing.T) {
	mock, err := pgxmock.NewPool()
	if err != nil {
		t.Fatalf("pgxmock.NewPool: %v", err)
	}
	defer mock.Close()

	repo := NewUserRepository(mock)

	rows := pgxmock.NewRows([]string{
		"id", "username", "full_name", "email", "password", "status", "max_retry", "retry",
	}).AddRow(
		5, "jdoe", "Jane Doe", "jdoe@example.com", "hash", domain.UserStatusActive, 3, 1,
	)

	mock.ExpectQuery(`SELECT .*FROM can_users`).WithArgs("jdoe").WillReturnRows(rows)

	user, err := repo.GetByUsername(context.Background(), "jdoe")
	if err != nil {
		t.Fatalf("GetByUsername returned error: %v", err)
	}
	if user.ID != 5 {
		t.Fatalf("expected user id 5, got %d", user.ID)
	}
	if user.Status != domain.UserStatusActive {
		t.Fatalf("expected active status, got %s", user.Status)
	}
	if user.Retry != 1 {
		t.Fatalf("expected retry 1, got %d", user.Retry)
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestUserRepository_GetByID_NotFound(t *testing.T) {
	mock, err := pgxmock.NewPool()
	if err != nil {
		t.Fatalf("pgxmock.NewPool: %v", err)
	}
	defer mock.Close()

	repo := NewUserRepository(mock)

	mock.ExpectQuery(`SELECT .*FROM can_users`).
		WithArgs(99).
		WillReturnRows(pgxmock.NewRows([]string{
			"id", "username", "full_name", "email", "password", "status", "max_retry", "retry",
		}))

	_, err = repo.GetByID(context.Background(), 99)
	if !errors.Is(err, repository.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestUserRepository_List(t *testing.T) {
	mock, err := pgxmock.NewPool()
	if err != nil {
		t.Fatalf("pgxmock.NewPool: %v", err)
	}
	defer mock.Close()

	repo := NewUserRepository(mock)

	mock.ExpectQuery(`SELECT COUNT\(\*\) FROM can_users`).
		WithArgs("%doe%", "%doe%", "%doe%", "%doe%").
		WillReturnRows(pgxmock.NewRows([]string{"count"}).AddRow(2))

	rows := pgxmock.NewRows([]string{
		"id", "username", "full_name", "email", "status", "max_retry", "retry", "role_id", "role_name",
	}).AddRow(
		9, "jdoe", "Jane Doe", "jdoe@example.com", domain.UserStatusActive, 3, 0, 2, "Admin",
	).AddRow(
		4, "rdoe", "Rick Doe", "rdoe@example.com", domain.UserStatusLocked, 3, 3, 5, "Viewer",
	)

	mock.ExpectQuery(`SELECT .*FROM can_users u INNER JOIN can_userroles`).
		WithArgs("%doe%", "%doe%", "%doe%", "%doe%").
		WillReturnRows(rows)

	users, total, err := repo.List(context.Background(), port.UserFilter{Search: "doe", Limit: 10})
	if err != nil {
		t.Fatalf("List returned error: %v", err)
	}
	if total != 2 {
		t.Fatalf("expected total 2, got %d", total)
	}
	if len(users) != 2 {
		t.Fatalf("expected two users, got %d", len(users))
	}
	if users[0].ID != 9 || users[0].RoleName != "Admin" {
		t.Fatalf("unexpected first row: %+v", users[0])
	}
	if users[1].Status != domain.UserStatusLocked {
		t.Fatalf("expected second row locked, got %s", users[1].Status)
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestUserRepository_UpdatePassword_NotFound(t *testing.T) {
	mock, err := pgxmock.NewPool()
	if err != nil {
		t.Fatalf("pgxmock.NewPool: %v", err)
	}
	defer mock.Close()

	repo := NewUserRepository(mock)

	mock.ExpectExec(`UPDATE can_users`).
		WithArgs("newhash", 42).
		WillReturnResult(pgxmock.NewResult("UPDATE", 0))

	err = repo.UpdatePassword(context.Background(), 42, "newhash")
	if !errors.Is(err, repository.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestUserRepository_UpdateRetry(t *testing.T) {
	mock, err := pgxmock.NewPool()
	if err != nil {
		t.Fatalf("pgxmock.NewPool: %v", err)
	}
	defer mock.Close()

	repo := NewUserRepository(mock)

	mock.ExpectExec(`UPDATE can_users`).
		WithArgs(3, domain.UserStatusLocked, 8).
		WillReturnResult(pgxmock.NewResult("UPDATE", 1))

	if err := repo.UpdateRetry(context.Background(), 8, 3, domain.UserStatusLocked); err != nil {
		t.Fatalf("UpdateRetry returned error: %v", err)
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestUserRepository_ReplaceRole(t *testing.T) {
	mock, err := pgxmock.NewPool()
	if err != nil {
		t.Fatalf("pgxmock.NewPool: %v", err)
	}
	defer mock.Close()

	repo := NewUserRepository(mock)

	mock.ExpectExec(`DELETE FROM can_userroles`).
		WithArgs(8).
		WillReturnResult(pgxmock.NewResult("DELETE", 1))
	mock.ExpectExec(`INSERT INTO can_userroles`).
		WithArgs(8, 2).
		WillReturnResult(pgxmock.NewResult("INSERT", 1))

	if err := repo.ReplaceRole(context.Background(), 8, 2); err != nil {
		t.Fatalf("ReplaceRole returned error: %v", err)
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestUserRepository_ReplaceRole_ClearOnly(t *testing.T) {
	mock, err := pgxmock.NewPool()
	if err != nil {
		t.Fatalf("pgxmock.NewPool: %v", err)
	}
	defer mock.Close()

	repo := NewUserRepository(mock)

	mock.ExpectExec(`DELETE FROM can_userroles`).
		WithArgs(8).
		WillReturnResult(pgxmock.NewResult("DELETE", 1))

	if err := repo.ReplaceRole(context.Background(), 8, 0); err != nil {
		t.Fatalf("ReplaceRole returned error: %v", err)
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}
