package usecase

import (
	"context"
	"fmt"

	"github.com/chanwihad/DashboardAppApi/internal/core/domain"
	"github.com/chanwihad/DashboardAppApi/internal/core/port"
)

// RoleService handles the administrative role CRUD surface, including menu
// grants.
type RoleService struct {
	roles port.RoleRepository
}

// NewRoleService constructs a RoleService instance.
func NewRoleService(roles port.RoleRepository) *RoleService {
	return &RoleService{roles: roles}
}

// Create stores a new role with its menu grants.
func (s *RoleService) Create(ctx context.Context, role domain.Role, menuIDs []int) (int, error) {
	if role.Name == "" {
		return 0, fmt.Errorf("role name is required")
	}

	id, err := s.roles.Create(ctx, role)
	if err != nil {
		return 0, err
	}

	if len(menuIDs) > 0 {
		if err := s.roles.ReplaceMenus(ctx, id, menuIDs); err != nil {
			return 0, fmt.Errorf("grant menus: %w", err)
		}
	}

	return id, nil
}

// Get returns a role with its accessible menus.
func (s *RoleService) Get(ctx context.Context, id int) (*domain.RoleWithMenus, error) {
	return s.roles.GetWithMenus(ctx, id)
}

// List returns roles filtered and paged.
func (s *RoleService) List(ctx context.Context, filter port.RoleFilter) ([]domain.Role, int, error) {
	return s.roles.List(ctx, filter)
}

// Update rewrites the role's fields and replaces its menu grants.
func (s *RoleService) Update(ctx context.Context, role domain.Role, menuIDs []int) error {
	if role.ID == 0 {
		return fmt.Errorf("role id is required")
	}

	if err := s.roles.Update(ctx, role); err != nil {
		return err
	}

	if err := s.roles.ReplaceMenus(ctx, role.ID, menuIDs); err != nil {
		return fmt.Errorf("grant menus: %w", err)
	}

	return nil
}

// Delete removes the role and its grants.
func (s *RoleService) Delete(ctx context.Context, id int) error {
	return s.roles.Delete(ctx, id)
}
