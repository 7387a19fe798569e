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

var roleColumns = []string{
	"id",
	"name",
	"description",
	"can_view",
	"can_create",
	"can_update",
	"can_delete",
}

// RoleRepository implements port.RoleRepository using PostgreSQL.
type RoleRepository struct {
	exec    pgExecutor
	builder squirrel.StatementBuilderType
}

// NewRoleRepository wires a PostgreSQL-backed role repository.
func NewRoleRepository(exec pgExecutor) *RoleRepository {
	return &RoleRepository{exec: exec, builder: builder()}
}

// Create inserts a new role row and returns the generated id.
func (r *RoleRepository) Create(ctx context.Context, role domain.Role) (int, error) {
	stmt, args, err := r.builder.Insert("can_roles").
		Columns("name", "description", "can_view", "can_create", "can_update", "can_delete").
		Values(role.Name, role.Description, role.CanView, role.CanCreate, role.CanUpdate, role.CanDelete).
		Suffix("RETURNING id").
		ToSql()
	if err != nil {
		return 0, fmt.Errorf("build insert role sql: %w", err)
	}

	var id int
	if err := r.exec.QueryRow(ctx, stmt, args...).Scan(&id); err != nil {
		return 0, fmt.Errorf("insert role: %w", err)
	}

	return id, nil
}

// GetByID retrieves a role by identifier.
func (r *RoleRepository) GetByID(ctx context.Context, id int) (*domain.Role, error) {
	stmt, args, err := r.builder.
		Select(roleColumns...).
		From("can_roles").
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build select role sql: %w", err)
	}

	var role domain.Role
	if err := r.exec.QueryRow(ctx, stmt, args...).Scan(
		&role.ID,
		&role.Name,
		&role.Description,
		&role.CanView,
		&role.CanCreate,
		&role.CanUpdate,
		&role.CanDelete,
	); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, repository.ErrNotFound
		}
		return nil, fmt.Errorf("scan role: %w", err)
	}

	return &role, nil
}

// GetWithMenus loads a role together with its accessible menu set.
func (r *RoleRepository) GetWithMenus(ctx context.Context, id int) (*domain.RoleWithMenus, error) {
	role, err := r.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	menus, err := r.menusForRole(ctx, id)
	if err != nil {
		return nil, err
	}

	return &domain.RoleWithMenus{Role: *role, Menus: menus}, nil
}

// GetByUser resolves the role assigned to a user. When stray extra
// assignments exist the lowest role id wins, keeping resolution
// deterministic.
func (r *RoleRepository) GetByUser(ctx context.Context, userID int) (*domain.RoleWithMenus, error) {
	stmt, args, err := r.builder.
		Select(
			"r.id",
			"r.name",
			"r.description",
			"r.can_view",
			"r.can_create",
			"r.can_update",
			"r.can_delete",
		).
		From("can_roles r").
		InnerJoin("can_userroles ur ON r.id = ur.role_id").
		Where(squirrel.Eq{"ur.user_id": userID}).
		OrderBy("r.id ASC").
		Limit(1).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build select user role sql: %w", err)
	}

	var role domain.Role
	if err := r.exec.QueryRow(ctx, stmt, args...).Scan(
		&role.ID,
		&role.Name,
		&role.Description,
		&role.CanView,
		&role.CanCreate,
		&role.CanUpdate,
		&role.CanDelete,
	); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, repository.ErrNotFound
		}
		return nil, fmt.Errorf("scan user role: %w", err)
	}

	menus, err := r.menusForRole(ctx, role.ID)
	if err != nil {
		return nil, err
	}

	return &domain.RoleWithMenus{Role: role, Menus: menus}, nil
}

func (r *RoleRepository) menusForRole(ctx context.Context, roleID int) ([]domain.Menu, error) {
	stmt, args, err := r.builder.
		Select(
			"m.id",
			"m.name",
			"m.description",
			"m.level1",
			"m.level2",
			"m.level3",
			"m.level4",
			"m.icon",
			"m.url",
		).
		From("can_menus m").
		InnerJoin("can_rolemenus rm ON m.id = rm.menu_id").
		Where(squirrel.Eq{"rm.role_id": roleID}).
		OrderBy("m.id ASC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build select role menus sql: %w", err)
	}

	rows, err := r.exec.Query(ctx, stmt, args...)
	if err != nil {
		return nil, fmt.Errorf("select role menus: %w", err)
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
			return nil, fmt.Errorf("scan role menu: %w", err)
		}
		menus = append(menus, menu)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate role menus: %w", err)
	}

	return menus, nil
}

// List returns roles filtered by a case-insensitive substring match over
// name and description, newest first, paged by limit/offset.
func (r *RoleRepository) List(ctx context.Context, filter port.RoleFilter) ([]domain.Role, int, error) {
	base := r.builder.Select(roleColumns...).From("can_roles")
	countQuery := r.builder.Select("COUNT(*)").From("can_roles")

	if filter.Search != "" {
		pattern := "%" + filter.Search + "%"
		cond := squirrel.Or{
			squirrel.ILike{"name": pattern},
			squirrel.ILike{"description": pattern},
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
		return nil, 0, fmt.Errorf("build count roles sql: %w", err)
	}

	var total int
	if err := r.exec.QueryRow(ctx, countStmt, countArgs...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("count roles: %w", err)
	}

	stmt, args, err := base.ToSql()
	if err != nil {
		return nil, 0, fmt.Errorf("build list roles sql: %w", err)
	}

	rows, err := r.exec.Query(ctx, stmt, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("list roles: %w", err)
	}
	defer rows.Close()

	var roles []domain.Role
	for rows.Next() {
		var role domain.Role
		if err := rows.Scan(
			&role.ID,
			&role.Name,
			&role.Description,
			&role.CanView,
			&role.CanCreate,
			&role.CanUpdate,
			&role.CanDelete,
		); err != nil {
			return nil, 0, fmt.Errorf("scan role row: %w", err)
		}
		roles = append(roles, role)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("iterate roles: %w", err)
	}

	return roles, total, nil
}

// Update rewrites the role fields.
func (r *RoleRepository) Update(ctx context.Context, role domain.Role) error {
	stmt, args, err := r.builder.Update("can_roles").
		Set("name", role.Name).
		Set("description", role.Description).
		Set("can_view", role.CanView).
		Set("can_create", role.CanCreate).
		Set("can_update", role.CanUpdate).
		Set("can_delete", role.CanDelete).
		Where(squirrel.Eq{"id": role.ID}).
		ToSql()
	if err != nil {
		return fmt.Errorf("build update role sql: %w", err)
	}

	tag, err := r.exec.Exec(ctx, stmt, args...)
	if err != nil {
		return fmt.Errorf("update role: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return repository.ErrNotFound
	}

	return nil
}

// Delete removes a role row; menu grants cascade in the store.
func (r *RoleRepository) Delete(ctx context.Context, id int) error {
	stmt, args, err := r.builder.Delete("can_roles").
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		return fmt.Errorf("build delete role sql: %w", err)
	}

	tag, err := r.exec.Exec(ctx, stmt, args...)
	if err != nil {
		return fmt.Errorf("delete role: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return repository.ErrNotFound
	}

	return nil
}

// ReplaceMenus swaps the role's menu grants for the provided set.
func (r *RoleRepository) ReplaceMenus(ctx context.Context, roleID int, menuIDs []int) error {
	delStmt, delArgs, err := r.builder.Delete("can_rolemenus").
		Where(squirrel.Eq{"role_id": roleID}).
		ToSql()
	if err != nil {
		return fmt.Errorf("build delete role menus sql: %w", err)
	}

	if _, err := r.exec.Exec(ctx, delStmt, delArgs...); err != nil {
		return fmt.Errorf("delete role menus: %w", err)
	}

	if len(menuIDs) == 0 {
		return nil
	}

	ins := r.builder.Insert("can_rolemenus").Columns("role_id", "menu_id")
	for _, menuID := range menuIDs {
		ins = ins.Values(roleID, menuID)
	}

	insStmt, insArgs, err := ins.ToSql()
	if err != nil {
		return fmt.Errorf("build insert role menus sql: %w", err)
	}

	if _, err := r.exec.Exec(ctx, insStmt, insArgs...); err != nil {
		return fmt.Errorf("insert role menus: %w", err)
	}

	return nil
}
