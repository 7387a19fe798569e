package port

import (
	"context"

	"github.com/chanwihad/DashboardAppApi/internal/core/domain"
)

// MenuFilter narrows and pages menu listings.
type MenuFilter struct {
	Search string
	Limit  int
	Offset int
}

// MenuRepository handles menu persistence.
type MenuRepository interface {
	Create(ctx context.Context, menu domain.Menu) (int, error)
	GetByID(ctx context.Context, id int) (*domain.Menu, error)
	List(ctx context.Context, filter MenuFilter) ([]domain.Menu, int, error)
	Update(ctx context.Context, menu domain.Menu) error
	Delete(ctx context.Context, id int) error
}
