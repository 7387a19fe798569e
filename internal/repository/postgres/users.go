package postgres

import (
	"context"
	"errors"
	"fmt"

	squirrel "github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"

	"github.com/chanwihad/DashboardAppApi/internal/core/domain"
	"github.com/chanwihad/DashboardAppApi/internal/core/port"
	"github.com/chanwihad/DashboardAppApi/internal/repository"
)

var userColumns = []string{
	"id",
	"username",
	"full_name",
	"email",
	"password",
	"status",
	"max_retry",
	"retry",
}

// UserRepository implements port.UserRepository using PostgreSQL.
type UserRepository struct {
	exec    pgExecutor
	builder squirrel.StatementBuilderType
}

// NewUserRepository wires a PostgreSQL-backed user repository.
func NewUserRepository(exec pgExecutor) *UserRepository {
	return &UserRepository{exec: exec, builder: builder()}
}

// Create inserts a new user row and returns the generated id.
func (r *UserRepository) Create(ctx context.Context, user domain.User) (int, error) {
	stmt, args, err := r.builder.Insert("can_users").
		Columns("username", "full_name", "email", "password", "status", "max_retry", "retry").
		Values(user.Username, user.FullName, user.Email, user.PasswordHash, user.Status, user.MaxRetry, user.Retry).
		Suffix("RETURNING id").
		ToSql()
	if err != nil {
		return 0, fmt.Errorf("build insert user sql: %w", err)
	}

	var id int
	if err := r.exec.QueryRow(ctx, stmt, args...).Scan(&id); err != nil {
		return 0, fmt.Errorf("insert user: %w", err)
	}

	return id, nil
}

// GetByID retrieves a user by identifier.
func (r *UserRepository) GetByID(ctx context.Context, id int) (*domain.User, error) {
	return r.getOne(ctx, squirrel.Eq{"id": id})
}

// GetByUsername retrieves a user by username.
func (r *UserRepository) GetByUsername(ctx context.Context, username string) (*domain.User, error) {
	return r.getOne(ctx, squirrel.Eq{"username": username})
}

// GetByEmail retrieves a user by email address.
func (r *UserRepository) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	return r.getOne(ctx, squirrel.Eq{"email": email})
}

func (r *UserRepository) getOne(ctx context.Context, where squirrel.Eq) (*domain.User, error) {
	stmt, args, err := r.builder.
		Select(userColumns...).
		From("can_users").
		Where(where).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build select user sql: %w", err)
	}

	var user domain.User
	if err := r.exec.QueryRow(ctx, stmt, args...).Scan(
		&user.ID,
		&user.Username,
		&user.FullName,
		&user.Email,
		&user.PasswordHash,
		&user.Status,
		&user.MaxRetry,
		&user.Retry,
	); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, repository.ErrNotFound
		}
		return nil, fmt.Errorf("scan user: %w", err)
	}

	return &user, nil
}

// List returns users joined with their role, filtered by a case-insensitive
// substring match, newest first, paged by limit/offset. The total count
// before paging is returned alongside.
func (r *UserRepository) List(ctx context.Context, filter port.UserFilter) ([]port.UserWithRole, int, error) {
	base := r.builder.
		Select(
			"u.id",
			"u.username",
			"u.full_name",
			"u.email",
			"u.status",
			"u.max_retry",
			"u.retry",
			"r.id AS role_id",
			"r.name AS role_name",
		).
		From("can_users u").
		InnerJoin("can_userroles ur ON u.id = ur.user_id").
		InnerJoin("can_roles r ON ur.role_id = r.id")

	countQuery := r.builder.
		Select("COUNT(*)").
		From("can_users u").
		InnerJoin("can_userroles ur ON u.id = ur.user_id").
		InnerJoin("can_roles r ON ur.role_id = r.id")

	if filter.Search != "" {
		pattern := "%" + filter.Search + "%"
		cond := squirrel.Or{
			squirrel.ILike{"u.username": pattern},
			squirrel.ILike{"u.full_name": pattern},
			squirrel.ILike{"u.email": pattern},
			squirrel.ILike{"u.status": pattern},
		}
		base = base.Where(cond)
		countQuery = countQuery.Where(cond)
	}

	base = base.OrderBy("u.id DESC")
	if filter.Limit > 0 {
		base = base.Limit(uint64(filter.Limit)).Offset(uint64(filter.Offset))
	}

	countStmt, countArgs, err := countQuery.ToSql()
	if err != nil {
		return nil, 0, fmt.Errorf("build count users sql: %w", err)
	}

	var total int
	if err := r.exec.QueryRow(ctx, countStmt, countArgs...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("count users: %w", err)
	}

	stmt, args, err := base.ToSql()
	if err != nil {
		return nil, 0, fmt.Errorf("build list users sql: %w", err)
	}

	rows, err := r.exec.Query(ctx, stmt, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("list users: %w", err)
	}
	defer rows.Close()

	var users []port.UserWithRole
	for rows.Next() {
		var row port.UserWithRole
		if err := rows.Scan(
			&row.ID,
			&row.Username,
			&row.FullName,
			&row.Email,
			&row.Status,
			&row.MaxRetry,
			&row.Retry,
			&row.RoleID,
			&row.RoleName,
		); err != nil {
			return nil, 0, fmt.Errorf("scan user row: %w", err)
		}
		users = append(users, row)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("iterate users: %w", err)
	}

	return users, total, nil
}

// Update rewrites the mutable user fields. Password is updated separately.
func (r *UserRepository) Update(ctx context.Context, user domain.User) error {
	stmt, args, err := r.builder.Update("can_users").
		Set("username", user.Username).
		Set("full_name", user.FullName).
		Set("email", user.Email).
		Set("status", user.Status).
		Set("max_retry", user.MaxRetry).
		Set("retry", user.Retry).
		Where(squirrel.Eq{"id": user.ID}).
		ToSql()
	if err != nil {
		return fmt.Errorf("build update user sql: %w", err)
	}

	tag, err := r.exec.Exec(ctx, stmt, args...)
	if err != nil {
		return fmt.Errorf("update user: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return repository.ErrNotFound
	}

	return nil
}

// UpdatePassword replaces the stored password hash.
func (r *UserRepository) UpdatePassword(ctx context.Context, id int, passwordHash string) error {
	stmt, args, err := r.builder.Update("can_users").
		Set("password", passwordHash).
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		return fmt.Errorf("build update password sql: %w", err)
	}

	tag, err := r.exec.Exec(ctx, stmt, args...)
	if err != nil {
		return fmt.Errorf("update password: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return repository.ErrNotFound
	}

	return nil
}

// UpdateRetry persists the retry counter and status after an authentication
// attempt.
func (r *UserRepository) UpdateRetry(ctx context.Context, id int, retry int, status domain.UserStatus) error {
	stmt, args, err := r.builder.Update("can_users").
		Set("retry", retry).
		Set("status", status).
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		return fmt.Errorf("build update retry sql: %w", err)
	}

	tag, err := r.exec.Exec(ctx, stmt, args...)
	if err != nil {
		return fmt.Errorf("update retry: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return repository.ErrNotFound
	}

	return nil
}

// Delete removes a user row; role associations cascade in the store.
func (r *UserRepository) Delete(ctx context.Context, id int) error {
	stmt, args, err := r.builder.Delete("can_users").
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		return fmt.Errorf("build delete user sql: %w", err)
	}

	tag, err := r.exec.Exec(ctx, stmt, args...)
	if err != nil {
		return fmt.Errorf("delete user: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return repository.ErrNotFound
	}

	return nil
}

// ReplaceRole swaps the user's single role assignment. Passing roleID 0
// clears the assignment.
func (r *UserRepository) ReplaceRole(ctx context.Context, userID, roleID int) error {
	delStmt, delArgs, err := r.builder.Delete("can_userroles").
		Where(squirrel.Eq{"user_id": userID}).
		ToSql()
	if err != nil {
		return fmt.Errorf("build delete user role sql: %w", err)
	}

	if _, err := r.exec.Exec(ctx, delStmt, delArgs...); err != nil {
		return fmt.Errorf("delete user role: %w", err)
	}

	if roleID == 0 {
		return nil
	}

	insStmt, insArgs, err := r.builder.Insert("can_userroles").
		Columns("user_id", "role_id").
		Values(userID, roleID).
		ToSql()
	if err != nil {
		return fmt.Errorf("build insert user role sql: %w", err)
	}

	if _, err := r.exec.Exec(ctx, insStmt, insArgs...); err != nil {
		return fmt.Errorf("insert user role: %w", err)
	}

	return nil
}
