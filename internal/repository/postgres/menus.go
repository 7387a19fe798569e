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

var menuColumns = []string{
	"id",
	"name",
	"description",
	"level1",
	"level2",
	"level3",
	"level4",
	"icon",
	"url",
}

// MenuRepository implements port.MenuRepository using PostgreSQL.
type MenuRepository struct {
	exec    pgExecutor
	builder squirrel.StatementBuilderType
}

// NewMenuRepository wires a PostgreSQL-backed menu repository.
func NewMenuRepository(exec pgExecutor) *MenuRepository {
	return &MenuRepository{exec: exec, builder: builder()}
}

// Create inserts a new menu row and returns the generated id.
func (r *MenuRepository) Create(ctx context.Context, menu domain.Menu) (int, error) {
	stmt, args, err := r.builder.Insert("can_menus").
		Columns("name", "description", "level1", "level2", "level3", "level4", "icon", "url").
		Values(menu.Name, menu.Description, menu.Level1, menu.Level2, menu.Level3, menu.Level4, menu.Icon, menu.URL).
		Suffix("RETURNING id").
		ToSql()
	if err != nil {
		return 0, fmt.Errorf("build insert menu sql: %w", err)
	}

	var id int
	if err := r.exec.QueryRow(ctx, stmt, args...).Scan(&id); err != nil {
		return 0, fmt.Errorf("insert menu: %w", err)
	}

	return id, nil
}

// GetByID retrieves a menu by identifier.
func (r *MenuRepository) GetByID(ctx context.Context, id int) (*domain.Menu, error) {
	stmt, args, err := r.builder.
		Select(menuColumns...).
		From("can_menus").
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build select menu sql: %w", err)
	}

	var menu domain.Menu
	if err := r.exec.QueryRow(ctx, stmt, args...).Scan(
		&menu.ID,
		&menu.Name,
		&menu.Description,
		&menu.Level1,
		&menu.Level2,
		&menu.Level3,
		&menu.Level4,
		&menu.Icon,
		&menu.URL,
	); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, repository.ErrNotFound
		}
		return nil, fmt.Errorf("scan menu: %w", err)
	}

	return &menu, nil
}

// List returns menus filtered by a case-insensitive substring match over
// name, description and url, newest first, paged by limit/offset.
func (r *MenuRepository) List(ctx context.Context, filter port.MenuFilter) ([]domain.Menu, int, error) {
	base := r.builder.Select(menuColumns...).From("can_menus")
	countQuery := r.builder.Select("COUNT(*)").From("can_menus")

	if filter.Search != "" {
		pattern := "%" + filter.Search + "%"
		cond := squirrel.Or{
			squirrel.ILike{"name": pattern},
			squirrel.ILike{"description": pattern},
			squirrel.ILike{"url": pattern},
		}
		base = base.Where(cond)
		countQuery = countQuery.Where(cond)
	}

	base = base.OrderBy("id DESC")
	if filter.Limit > 0 {
		base = base.Limit(uint64(filter.Limit)).Offset(uint64(filter.Offset))
	}

	countStmt, countArgs, err := countQuery.ToSql()
	if err != nil {
		return nil, 0, fmt.Errorf("build count menus sql: %w", err)
	}

	var total int
	if err := r.exec.QueryRow(ctx, countStmt, countArgs...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("count menus: %w", err)
	}

	stmt, args, err := base.ToSql()
	if err != nil {
		return nil, 0, fmt.Errorf("build list menus sql: %w", err)
	}

	rows, err := r.exec.Query(ctx, stmt, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("list menus: %w", err)
	}
	defer rows.Close()

	var menus []domain.Menu
	for rows.Next() {
		var menu domain.Menu
		if err := rows.Scan(
			&menu.ID,
			&menu.Name,
			&menu.Description,
			&menu.Level1,
			&menu.Level2,
			&menu.Level3,
			&menu.Level4,
			&menu.Icon,
			&menu.URL,
		); err != nil {
			return nil, 0, fmt.Errorf("scan menu row: %w", err)
		}
		menus = append(menus, menu)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("iterate menus: %w", err)
	}

	return menus, total, nil
}

// Update rewrites the menu fields.
func (r *MenuRepository) Update(ctx context.Context, menu domain.Menu) error {
	stmt, args, err := r.builder.Update("can_menus").
		Set("name", menu.Name).
		Set("description", menu.Description).
		Set("level1", menu.Level1).
		Set("level2", menu.Level2).
		Set("level3", menu.Level3).
		Set("level4", menu.Level4).
		Set("icon", menu.Icon).
		Set("url", menu.URL).
		Where(squirrel.Eq{"id": menu.ID}).
		ToSql()
	if err != nil {
		return fmt.Errorf("build update menu sql: %w", err)
	}

	tag, err := r.exec.Exec(ctx, stmt, args...)
	if err != nil {
		return fmt.Errorf("update menu: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return repository.ErrNotFound
	}

	return nil
}

// Delete removes a menu row; role grants cascade in the store.
func (r *MenuRepository) Delete(ctx context.Context, id int) error {
	stmt, args, err := r.builder.Delete("can_menus").
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		return fmt.Errorf("build delete menu sql: %w", err)
	}

	tag, err := r.exec.Exec(ctx, stmt, args...)
	if err != nil {
		return fmt.Errorf("delete menu: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return repository.ErrNotFound
	}

	return nil
}
