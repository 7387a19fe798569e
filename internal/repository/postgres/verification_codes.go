package postgres

import (
	"context"
	"errors"
	"fmt"

	squirrel "github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"

	"github.com/chanwihad/DashboardAppApi/internal/core/domain"
	"github.com/chanwihad/DashboardAppApi/internal/repository"
)

// VerificationCodeRepository implements port.VerificationCodeRepository
// using PostgreSQL.
type VerificationCodeRepository struct {
	exec    pgExecutor
	builder squirrel.StatementBuilderType
}

// NewVerificationCodeRepository wires a PostgreSQL-backed code repository.
func NewVerificationCodeRepository(exec pgExecutor) *VerificationCodeRepository {
	return &VerificationCodeRepository{exec: exec, builder: builder()}
}

// Insert stores a freshly issued code and returns the generated id.
func (r *VerificationCodeRepository) Insert(ctx context.Context, code domain.VerificationCode) (int, error) {
	stmt, args, err := r.builder.Insert("can_passwordresets").
		Columns("email", "code", "expires_at").
		Values(code.Email, code.Code, code.ExpiresAt).
		Suffix("RETURNING id").
		ToSql()
	if err != nil {
		return 0, fmt.Errorf("build insert verification code sql: %w", err)
	}

	var id int
	if err := r.exec.QueryRow(ctx, stmt, args...).Scan(&id); err != nil {
		return 0, fmt.Errorf("insert verification code: %w", err)
	}

	return id, nil
}

// Find returns the newest matching code for the email, if any.
func (r *VerificationCodeRepository) Find(ctx context.Context, email, code string) (*domain.VerificationCode, error) {
	stmt, args, err := r.builder.
		Select("id", "email", "code", "expires_at").
		From("can_passwordresets").
		Where(squirrel.Eq{"email": email, "code": code}).
		OrderBy("id DESC").
		Limit(1).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build select verification code sql: %w", err)
	}

	var rec domain.VerificationCode
	if err := r.exec.QueryRow(ctx, stmt, args...).Scan(
		&rec.ID,
		&rec.Email,
		&rec.Code,
		&rec.ExpiresAt,
	); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, repository.ErrNotFound
		}
		return nil, fmt.Errorf("scan verification code: %w", err)
	}

	return &rec, nil
}

// DeleteByEmail removes all codes issued to the email.
func (r *VerificationCodeRepository) DeleteByEmail(ctx context.Context, email string) error {
	stmt, args, err := r.builder.Delete("can_passwordresets").
		Where(squirrel.Eq{"email": email}).
		ToSql()
	if err != nil {
		return fmt.Errorf("build delete verification codes sql: %w", err)
	}

	if _, err := r.exec.Exec(ctx, stmt, args...); err != nil {
		return fmt.Errorf("delete verification codes: %w", err)
	}

	return nil
}
