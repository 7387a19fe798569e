package port

import (
	"context"

	"github.com/chanwihad/DashboardAppApi/internal/core/domain"
)

// ProductFilter narrows and pages product listings.
type ProductFilter struct {
	Search string
	Limit  int
	Offset int
}

// ProductRepository handles product persistence.
type ProductRepository interface {
	Create(ctx context.Context, product domain.Product) (int, error)
	GetByID(ctx context.Context, id int) (*domain.Product, error)
	List(ctx context.Context, filter ProductFilter) ([]domain.Product, int, error)
	Update(ctx context.Context, product domain.Product) error
	Delete(ctx context.Context, id int) error
}
