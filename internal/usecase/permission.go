package usecase

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/chanwihad/DashboardAppApi/internal/core/domain"
	"github.com/chanwihad/DashboardAppApi/internal/core/port"
	"github.com/chanwihad/DashboardAppApi/internal/repository"
)

// PermissionService resolves whether a user may perform an action on a
// resource. Every decision re-reads the role and menu grants, so permission
// edits take effect on the next request rather than at next login.
type PermissionService struct {
	roles port.RoleRepository
}

// NewPermissionService constructs a PermissionService instance.
func NewPermissionService(roles port.RoleRepository) *PermissionService {
	return &PermissionService{roles: roles}
}

// HasPermission grants access only when the user's role carries the action
// flag AND one of its menus matches the resource path case-insensitively.
// A user without a role is denied, not an error.
func (s *PermissionService) HasPermission(ctx context.Context, userID int, action domain.Action, resource string) (bool, error) {
	role, err := s.roles.GetByUser(ctx, userID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return false, nil
		}
		return false, fmt.Errorf("resolve role: %w", err)
	}

	if !role.Allows(action) {
		return false, nil
	}

	for _, menu := range role.Menus {
		if strings.EqualFold(menu.URL, resource) {
			return true, nil
		}
	}

	return false, nil
}
