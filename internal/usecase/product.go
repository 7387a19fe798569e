package usecase

import (
	"context"
	"fmt"

	"github.com/chanwihad/DashboardAppApi/internal/core/domain"
	"github.com/chanwihad/DashboardAppApi/internal/core/port"
)

// ProductService handles the product CRUD surface.
type ProductService struct {
	products port.ProductRepository
}

// NewProductService constructs a ProductService instance.
func NewProductService(products port.ProductRepository) *ProductService {
	return &ProductService{products: products}
}

// Create stores a new product.
func (s *ProductService) Create(ctx context.Context, product domain.Product) (int, error) {
	if product.Name == "" {
		return 0, fmt.Errorf("product name is required")
	}
	if product.Price < 0 {
		return 0, fmt.Errorf("price must not be negative")
	}
	if product.Stock < 0 {
		return 0, fmt.Errorf("stock must not be negative")
	}
	return s.products.Create(ctx, product)
}

// Get returns a product by id.
func (s *ProductService) Get(ctx context.Context, id int) (*domain.Product, error) {
	return s.products.GetByID(ctx, id)
}

// List returns products filtered and paged.
func (s *ProductService) List(ctx context.Context, filter port.ProductFilter) ([]domain.Product, int, error) {
	return s.products.List(ctx, filter)
}

// Update rewrites the product's fields.
func (s *ProductService) Update(ctx context.Context, product domain.Product) error {
	if product.ID == 0 {
		return fmt.Errorf("product id is required")
	}
	if product.Price < 0 {
		return fmt.Errorf("price must not be negative")
	}
	if product.Stock < 0 {
		return fmt.Errorf("stock must not be negative")
	}
	return s.products.Update(ctx, product)
}

// Delete removes the product.
func (s *ProductService) Delete(ctx context.Context, id int) error {
	return s.products.Delete(ctx, id)
}
