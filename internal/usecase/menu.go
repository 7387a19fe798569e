package usecase

import (
	"context"
	"fmt"

	"github.com/chanwihad/DashboardAppApi/internal/core/domain"
	"github.com/chanwihad/DashboardAppApi/internal/core/port"
)

// MenuService handles the administrative menu CRUD surface.
type MenuService struct {
	menus port.MenuRepository
}

// NewMenuService constructs a MenuService instance.
func NewMenuService(menus port.MenuRepository) *MenuService {
	return &MenuService{menus: menus}
}

// Create stores a new menu entry.
func (s *MenuService) Create(ctx context.Context, menu domain.Menu) (int, error) {
	if menu.Name == "" {
		return 0, fmt.Errorf("menu name is required")
	}
	if menu.URL == "" {
		return 0, fmt.Errorf("menu url is required")
	}
	return s.menus.Create(ctx, menu)
}

// Get returns a menu by id.
func (s *MenuService) Get(ctx context.Context, id int) (*domain.Menu, error) {
	return s.menus.GetByID(ctx, id)
}

// List returns menus filtered and paged.
func (s *MenuService) List(ctx context.Context, filter port.MenuFilter) ([]domain.Menu, int, error) {
	return s.menus.List(ctx, filter)
}

// Update rewrites the menu's fields.
func (s *MenuService) Update(ctx context.Context, menu domain.Menu) error {
	if menu.ID == 0 {
		return fmt.Errorf("menu id is required")
	}
	return s.menus.Update(ctx, menu)
}

// Delete removes the menu.
func (s *MenuService) Delete(ctx context.Context, id int) error {
	return s.menus.Delete(ctx, id)
}
