package port

import (
	"context"

	"github.com/chanwihad/DashboardAppApi/internal/core/domain"
)

// RoleFilter narrows and pages role listings.
type RoleFilter struct {
	Search string
	Limit  int
	Offset int
}

// RoleRepository handles role persistence and the role-menu association.
type RoleRepository interface {
	Create(ctx context.Context, role domain.Role) (int, error)
	GetByID(ctx context.Context, id int) (*domain.Role, error)
	// GetWithMenus loads a role together with its accessible menu set.
	GetWithMenus(ctx context.Context, id int) (*domain.RoleWithMenus, error)
	// GetByUser resolves the single role assigned to a user, lowest role id
	// first so selection is deterministic when stray extra rows exist.
	GetByUser(ctx context.Context, userID int) (*domain.RoleWithMenus, error)
	List(ctx context.Context, filter RoleFilter) ([]domain.Role, int, error)
	Update(ctx context.Context, role domain.Role) error
	Delete(ctx context.Context, id int) error
	// ReplaceMenus swaps the role's menu grants for the provided set.
	ReplaceMenus(ctx context.Context, roleID int, menuIDs []int) error
}
