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

var productColumns = []string{
	"id",
	"name",
	"description",
	"price",
	"stock",
}

// ProductRepository implements port.ProductRepository using PostgreSQL.
type ProductRepository struct {
	exec    pgExecutor
	builder squirrel.StatementBuilderType
}

// NewProductRepository wires a PostgreSQL-backed product repository.
func NewProductRepository(exec pgExecutor) *ProductRepository {
	return &ProductRepository{exec: exec, builder: builder()}
}

// Create inserts a new product row and returns the generated id.
func (r *ProductRepository) Create(ctx context.Context, product domain.Product) (int, error) {
	stmt, args, err := r.builder.Insert("can_products").
		Columns("name", "description", "price", "stock").
		Values(product.Name, product.Description, product.Price, product.Stock).
		Suffix("RETURNING id").
		ToSql()
	if err != nil {
		return 0, fmt.Errorf("build insert product sql: %w", err)
	}

	var id int
	if err := r.exec.QueryRow(ctx, stmt, args...).Scan(&id); err != nil {
		return 0, fmt.Errorf("insert product: %w", err)
	}

	return id, nil
}

// GetByID retrieves a product by identifier.
func (r *ProductRepository) GetByID(ctx context.Context, id int) (*domain.Product, error) {
	stmt, args, err := r.builder.
		Select(productColumns...).
		From("can_products").
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build select product sql: %w", err)
	}

	var product domain.Product
	if err := r.exec.QueryRow(ctx, stmt, args...).Scan(
		&product.ID,
		&product.Name,
		&product.Description,
		&product.Price,
		&product.Stock,
	); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, repository.ErrNotFound
		}
		return nil, fmt.Errorf("scan product: %w", err)
	}

	return &product, nil
}

// List returns products filtered by a case-insensitive substring match over
// name and description, newest first, paged by limit/offset.
func (r *ProductRepository) List(ctx context.Context, filter port.ProductFilter) ([]domain.Product, int, error) {
	base := r.builder.Select(productColumns...).From("can_products")
	countQuery := r.builder.Select("COUNT(*)").From("can_products")

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
		return nil, 0, fmt.Errorf("build count products sql: %w", err)
	}

	var total int
	if err := r.exec.QueryRow(ctx, countStmt, countArgs...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("count products: %w", err)
	}

	stmt, args, err := base.ToSql()
	if err != nil {
		return nil, 0, fmt.Errorf("build list products sql: %w", err)
	}

	rows, err := r.exec.Query(ctx, stmt, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("list products: %w", err)
	}
	defer rows.Close()

	var products []domain.Product
	for rows.Next() {
		var product domain.Product
		if err := rows.Scan(
			&product.ID,
			&product.Name,
			&product.Description,
			&product.Price,
			&product.Stock,
		); err != nil {
			return nil, 0, fmt.Errorf("scan product row: %w", err)
		}
		products = append(products, product)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("iterate products: %w", err)
	}

	return products, total, nil
}

// Update rewrites the product fields.
func (r *ProductRepository) Update(ctx context.Context, product domain.Product) error {
	stmt, args, err := r.builder.Update("can_products").
		Set("name", product.Name).
		Set("description", product.Description).
		Set("price", product.Price).
		Set("stock", product.Stock).
		Where(squirrel.Eq{"id": product.ID}).
		ToSql()
	if err != nil {
		return fmt.Errorf("build update product sql: %w", err)
	}

	tag, err := r.exec.Exec(ctx, stmt, args...)
	if err != nil {
		return fmt.Errorf("update product: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return repository.ErrNotFound
	}

	return nil
}

// Delete removes a product row.
func (r *ProductRepository) Delete(ctx context.Context, id int) error {
	stmt, args, err := r.builder.Delete("can_products").
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		return fmt.Errorf("build delete product sql: %w", err)
	}

	tag, err := r.exec.Exec(ctx, stmt, args...)
	if err != nil {
		return fmt.Errorf("delete product: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return repository.ErrNotFound
	}

	return nil
}
