package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/MrJamesThe3rd/vitrine/internal/catalog"
	"github.com/MrJamesThe3rd/vitrine/internal/database"
)

type Store struct {
	db *sql.DB
}

func New(db *sql.DB) *Store {
	return &Store{db: db}
}

// scanner is satisfied by both *sql.Row and *sql.Rows.
type scanner interface {
	Scan(dest ...any) error
}

const selectProductColumns = `
	id, user_id, category_id, name, description, price, stock,
	available_for_sale, featured, created_at, updated_at
`

func scanProduct(s scanner) (*catalog.Product, error) {
	var p catalog.Product

	var categoryID sql.NullInt64

	if err := s.Scan(
		&p.ID, &p.UserID, &categoryID, &p.Name, &p.Description, &p.Price, &p.Stock,
		&p.AvailableForSale, &p.Featured, &p.CreatedAt, &p.UpdatedAt,
	); err != nil {
		return nil, err
	}

	if categoryID.Valid {
		p.CategoryID = &categoryID.Int64
	}

	return &p, nil
}

const selectCategoryColumns = `id, user_id, name, description, active, created_at, updated_at`

func scanCategory(s scanner) (*catalog.Category, error) {
	var c catalog.Category
	if err := s.Scan(&c.ID, &c.UserID, &c.Name, &c.Description, &c.Active, &c.CreatedAt, &c.UpdatedAt); err != nil {
		return nil, err
	}

	return &c, nil
}

func (s *Store) CreateProduct(ctx context.Context, p *catalog.Product) error {
	query := `
		INSERT INTO products (user_id, category_id, name, description, price, stock, available_for_sale, featured, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, NOW())
		RETURNING id, created_at
	`

	err := database.Conn(ctx, s.db).QueryRowContext(ctx, query,
		p.UserID,
		p.CategoryID,
		p.Name,
		p.Description,
		p.Price,
		p.Stock,
		p.AvailableForSale,
		p.Featured,
	).Scan(&p.ID, &p.CreatedAt)
	if err != nil {
		return fmt.Errorf("creating product: %w", err)
	}

	return nil
}

func (s *Store) GetProduct(ctx context.Context, userID, id int64) (*catalog.Product, error) {
	query := `SELECT ` + selectProductColumns + `
		FROM products
		WHERE id = $1 AND user_id = $2 AND deleted_at IS NULL`

	return s.getProduct(ctx, query, id, userID)
}

func (s *Store) LockProduct(ctx context.Context, userID, id int64) (*catalog.Product, error) {
	query := `SELECT ` + selectProductColumns + `
		FROM products
		WHERE id = $1 AND user_id = $2 AND deleted_at IS NULL
		FOR UPDATE`

	return s.getProduct(ctx, query, id, userID)
}

func (s *Store) GetProductByID(ctx context.Context, id int64) (*catalog.Product, error) {
	query := `SELECT ` + selectProductColumns + ` FROM products WHERE id = $1`

	return s.getProduct(ctx, query, id)
}

func (s *Store) getProduct(ctx context.Context, query string, args ...any) (*catalog.Product, error) {
	p, err := scanProduct(database.Conn(ctx, s.db).QueryRowContext(ctx, query, args...))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, catalog.ErrProductNotFound
		}

		return nil, fmt.Errorf("getting product: %w", err)
	}

	return p, nil
}

func (s *Store) ListProducts(ctx context.Context, userID int64, filter catalog.ProductFilter) ([]*catalog.Product, error) {
	query := `SELECT ` + selectProductColumns + `
		FROM products
		WHERE user_id = $1 AND deleted_at IS NULL`

	args := []any{userID}

	argIdx := 2

	if filter.CategoryID != nil {
		query += fmt.Sprintf(" AND category_id = $%d", argIdx)

		args = append(args, *filter.CategoryID)
		argIdx++
	}

	if filter.Featured != nil {
		query += fmt.Sprintf(" AND featured = $%d", argIdx)

		args = append(args, *filter.Featured)
		argIdx++
	}

	if filter.Available != nil {
		query += fmt.Sprintf(" AND available_for_sale = $%d", argIdx)

		args = append(args, *filter.Available)
		argIdx++
	}

	query += " ORDER BY name ASC, id ASC"

	if filter.Limit > 0 {
		query += fmt.Sprintf(" LIMIT $%d", argIdx)

		args = append(args, filter.Limit)
	}

	rows, err := database.Conn(ctx, s.db).QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("listing products: %w", err)
	}
	defer rows.Close()

	products := []*catalog.Product{}

	for rows.Next() {
		p, err := scanProduct(rows)
		if err != nil {
			return nil, fmt.Errorf("scanning product: %w", err)
		}

		products = append(products, p)
	}

	return products, rows.Err()
}

func (s *Store) UpdateProduct(ctx context.Context, p *catalog.Product) error {
	query := `
		UPDATE products
		SET category_id = $1, name = $2, description = $3, price = $4,
			available_for_sale = $5, featured = $6, updated_at = NOW()
		WHERE id = $7 AND user_id = $8 AND deleted_at IS NULL
	`

	res, err := database.Conn(ctx, s.db).ExecContext(ctx, query,
		p.CategoryID,
		p.Name,
		p.Description,
		p.Price,
		p.AvailableForSale,
		p.Featured,
		p.ID,
		p.UserID,
	)
	if err != nil {
		return fmt.Errorf("updating product: %w", err)
	}

	if n, _ := res.RowsAffected(); n == 0 {
		return catalog.ErrProductNotFound
	}

	return nil
}

func (s *Store) DeleteProduct(ctx context.Context, userID, id int64) error {
	query := `
		UPDATE products
		SET deleted_at = NOW(), available_for_sale = FALSE
		WHERE id = $1 AND user_id = $2 AND deleted_at IS NULL
	`

	res, err := database.Conn(ctx, s.db).ExecContext(ctx, query, id, userID)
	if err != nil {
		return fmt.Errorf("deleting product: %w", err)
	}

	if n, _ := res.RowsAffected(); n == 0 {
		return catalog.ErrProductNotFound
	}

	return nil
}

// DecrementStock reports false when the product has fewer than quantity
// units left.
func (s *Store) DecrementStock(ctx context.Context, id int64, quantity int) (bool, error) {
	query := `
		UPDATE products
		SET stock = stock - $1, updated_at = NOW()
		WHERE id = $2 AND stock >= $1
	`

	res, err := database.Conn(ctx, s.db).ExecContext(ctx, query, quantity, id)
	if err != nil {
		return false, fmt.Errorf("decrementing stock: %w", err)
	}

	n, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("decrementing stock: %w", err)
	}

	return n == 1, nil
}

func (s *Store) SetStock(ctx context.Context, id int64, stock int) error {
	query := `UPDATE products SET stock = $1, updated_at = NOW() WHERE id = $2`

	res, err := database.Conn(ctx, s.db).ExecContext(ctx, query, stock, id)
	if err != nil {
		return fmt.Errorf("setting stock: %w", err)
	}

	if n, _ := res.RowsAffected(); n == 0 {
		return catalog.ErrProductNotFound
	}

	return nil
}

func (s *Store) IncrementStock(ctx context.Context, id int64, quantity int) error {
	query := `
		UPDATE products
		SET stock = stock + $1, updated_at = NOW()
		WHERE id = $2
	`

	res, err := database.Conn(ctx, s.db).ExecContext(ctx, query, quantity, id)
	if err != nil {
		return fmt.Errorf("incrementing stock: %w", err)
	}

	if n, _ := res.RowsAffected(); n == 0 {
		return catalog.ErrProductNotFound
	}

	return nil
}

func (s *Store) CreateCategory(ctx context.Context, c *catalog.Category) error {
	query := `
		INSERT INTO categories (user_id, name, description, active, created_at)
		VALUES ($1, $2, $3, $4, NOW())
		RETURNING id, created_at
	`

	err := database.Conn(ctx, s.db).QueryRowContext(ctx, query,
		c.UserID,
		c.Name,
		c.Description,
		c.Active,
	).Scan(&c.ID, &c.CreatedAt)
	if err != nil {
		return fmt.Errorf("creating category: %w", err)
	}

	return nil
}

func (s *Store) GetCategory(ctx context.Context, userID, id int64) (*catalog.Category, error) {
	query := `SELECT ` + selectCategoryColumns + `
		FROM categories
		WHERE id = $1 AND user_id = $2 AND deleted_at IS NULL`

	return s.getCategory(ctx, query, id, userID)
}

func (s *Store) FindCategoryByName(ctx context.Context, userID int64, name string) (*catalog.Category, error) {
	query := `SELECT ` + selectCategoryColumns + `
		FROM categories
		WHERE user_id = $1 AND LOWER(name) = LOWER($2) AND deleted_at IS NULL
		ORDER BY id ASC
		LIMIT 1`

	return s.getCategory(ctx, query, userID, name)
}

func (s *Store) getCategory(ctx context.Context, query string, args ...any) (*catalog.Category, error) {
	c, err := scanCategory(database.Conn(ctx, s.db).QueryRowContext(ctx, query, args...))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, catalog.ErrCategoryNotFound
		}

		return nil, fmt.Errorf("getting category: %w", err)
	}

	return c, nil
}

func (s *Store) ListCategories(ctx context.Context, userID int64, filter catalog.CategoryFilter) ([]*catalog.Category, error) {
	query := `SELECT ` + selectCategoryColumns + `
		FROM categories
		WHERE user_id = $1 AND deleted_at IS NULL`

	args := []any{userID}

	if filter.Active != nil {
		query += " AND active = $2"

		args = append(args, *filter.Active)
	}

	query += " ORDER BY name ASC"

	rows, err := database.Conn(ctx, s.db).QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("listing categories: %w", err)
	}
	defer rows.Close()

	categories := []*catalog.Category{}

	for rows.Next() {
		c, err := scanCategory(rows)
		if err != nil {
			return nil, fmt.Errorf("scanning category: %w", err)
		}

		categories = append(categories, c)
	}

	return categories, rows.Err()
}

func (s *Store) UpdateCategory(ctx context.Context, c *catalog.Category) error {
	query := `
		UPDATE categories
		SET name = $1, description = $2, active = $3, updated_at = NOW()
		WHERE id = $4 AND user_id = $5 AND deleted_at IS NULL
	`

	res, err := database.Conn(ctx, s.db).ExecContext(ctx, query, c.Name, c.Description, c.Active, c.ID, c.UserID)
	if err != nil {
		return fmt.Errorf("updating category: %w", err)
	}

	if n, _ := res.RowsAffected(); n == 0 {
		return catalog.ErrCategoryNotFound
	}

	return nil
}

func (s *Store) DeleteCategory(ctx context.Context, userID, id int64) error {
	query := `
		UPDATE categories
		SET deleted_at = NOW()
		WHERE id = $1 AND user_id = $2 AND deleted_at IS NULL
	`

	res, err := database.Conn(ctx, s.db).ExecContext(ctx, query, id, userID)
	if err != nil {
		return fmt.Errorf("deleting category: %w", err)
	}

	if n, _ := res.RowsAffected(); n == 0 {
		return catalog.ErrCategoryNotFound
	}

	return nil
}

func (s *Store) DetachCategory(ctx context.Context, userID, categoryID int64) error {
	query := `
		UPDATE products
		SET category_id = NULL, updated_at = NOW()
		WHERE category_id = $1 AND user_id = $2
	`

	if _, err := database.Conn(ctx, s.db).ExecContext(ctx, query, categoryID, userID); err != nil {
		return fmt.Errorf("detaching category: %w", err)
	}

	return nil
}
