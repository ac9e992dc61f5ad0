package catalog

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/MrJamesThe3rd/vitrine/internal/apperr"
	"github.com/MrJamesThe3rd/vitrine/internal/database"
)

var (
	ErrProductNotFound  = apperr.New(apperr.ErrNotFound, "produto não encontrado")
	ErrCategoryNotFound = apperr.New(apperr.ErrNotFound, "categoria não encontrada")
	ErrNameRequired     = apperr.New(apperr.ErrInvalidInput, "nome é obrigatório")
	ErrNegativePrice    = apperr.New(apperr.ErrInvalidInput, "o preço não pode ser negativo")
	ErrNegativeStock    = apperr.New(apperr.ErrInvalidInput, "o estoque não pode ser negativo")
	ErrInvalidQuantity  = apperr.New(apperr.ErrInvalidInput, "a quantidade deve ser maior que zero")
)

//go:generate mockgen -source=service.go -destination=repository_mock.go -package=catalog
type Repository interface {
	CreateProduct(ctx context.Context, p *Product) error
	GetProduct(ctx context.Context, userID, id int64) (*Product, error)
	GetProductByID(ctx context.Context, id int64) (*Product, error)
	// LockProduct reads the tenant's product with a row lock. It must run
	// inside a transaction.
	LockProduct(ctx context.Context, userID, id int64) (*Product, error)
	ListProducts(ctx context.Context, userID int64, filter ProductFilter) ([]*Product, error)
	// UpdateProduct writes every editable field except stock.
	UpdateProduct(ctx context.Context, p *Product) error
	SetStock(ctx context.Context, id int64, stock int) error
	DeleteProduct(ctx context.Context, userID, id int64) error
	DecrementStock(ctx context.Context, id int64, quantity int) (bool, error)
	IncrementStock(ctx context.Context, id int64, quantity int) error

	CreateCategory(ctx context.Context, c *Category) error
	GetCategory(ctx context.Context, userID, id int64) (*Category, error)
	FindCategoryByName(ctx context.Context, userID int64, name string) (*Category, error)
	ListCategories(ctx context.Context, userID int64, filter CategoryFilter) ([]*Category, error)
	UpdateCategory(ctx context.Context, c *Category) error
	DeleteCategory(ctx context.Context, userID, id int64) error
	DetachCategory(ctx context.Context, userID, categoryID int64) error
}

type Service struct {
	repo Repository
	tx   database.Transactor
}

func NewService(repo Repository, tx database.Transactor) *Service {
	return &Service{repo: repo, tx: tx}
}

type ProductFilter struct {
	CategoryID *int64
	Featured   *bool
	Available  *bool
	Limit      int
}

type CategoryFilter struct {
	Active *bool
}

type ProductParams struct {
	CategoryID       *int64
	Name             string
	Description      string
	Price            decimal.Decimal
	Stock            int
	AvailableForSale *bool
	Featured         bool
}

// ProductUpdate holds a partial update; nil fields are left untouched.
type ProductUpdate struct {
	CategoryID       *int64
	ClearCategory    bool
	Name             *string
	Description      *string
	Price            *decimal.Decimal
	Stock            *int
	AvailableForSale *bool
	Featured         *bool
}

type CategoryParams struct {
	Name        string
	Description string
	Active      *bool
}

type CategoryUpdate struct {
	Name        *string
	Description *string
	Active      *bool
}

func (s *Service) ListProducts(ctx context.Context, userID int64, filter ProductFilter) ([]*Product, error) {
	return s.repo.ListProducts(ctx, userID, filter)
}

func (s *Service) GetProduct(ctx context.Context, userID, id int64) (*Product, error) {
	return s.repo.GetProduct(ctx, userID, id)
}

func (s *Service) CreateProduct(ctx context.Context, userID int64, params ProductParams) (*Product, error) {
	p := &Product{
		UserID:           userID,
		CategoryID:       params.CategoryID,
		Name:             strings.TrimSpace(params.Name),
		Description:      strings.TrimSpace(params.Description),
		Price:            params.Price,
		Stock:            params.Stock,
		AvailableForSale: true,
		Featured:         params.Featured,
	}
	if params.AvailableForSale != nil {
		p.AvailableForSale = *params.AvailableForSale
	}

	if err := s.validateProduct(ctx, p); err != nil {
		return nil, err
	}

	if err := s.repo.CreateProduct(ctx, p); err != nil {
		return nil, err
	}

	return p, nil
}

// UpdateProduct applies a partial edit under a row lock. Stock is only
// written when the caller sets it.
func (s *Service) UpdateProduct(ctx context.Context, userID, id int64, upd ProductUpdate) (*Product, error) {
	var p *Product

	err := s.tx.WithinTx(ctx, func(ctx context.Context) error {
		var err error

		p, err = s.repo.LockProduct(ctx, userID, id)
		if err != nil {
			return err
		}

		upd.apply(p)

		if err := s.validateProduct(ctx, p); err != nil {
			return err
		}

		if err := s.repo.UpdateProduct(ctx, p); err != nil {
			return err
		}

		if upd.Stock != nil {
			return s.repo.SetStock(ctx, p.ID, p.Stock)
		}

		return nil
	})
	if err != nil {
		return nil, err
	}

	return p, nil
}

func (upd ProductUpdate) apply(p *Product) {
	if upd.Name != nil {
		p.Name = strings.TrimSpace(*upd.Name)
	}

	if upd.Description != nil {
		p.Description = strings.TrimSpace(*upd.Description)
	}

	if upd.Price != nil {
		p.Price = *upd.Price
	}

	if upd.Stock != nil {
		p.Stock = *upd.Stock
	}

	if upd.AvailableForSale != nil {
		p.AvailableForSale = *upd.AvailableForSale
	}

	if upd.Featured != nil {
		p.Featured = *upd.Featured
	}

	switch {
	case upd.ClearCategory:
		p.CategoryID = nil
	case upd.CategoryID != nil:
		p.CategoryID = upd.CategoryID
	}
}

func (s *Service) DeleteProduct(ctx context.Context, userID, id int64) error {
	return s.repo.DeleteProduct(ctx, userID, id)
}

func (s *Service) validateProduct(ctx context.Context, p *Product) error {
	if p.Name == "" {
		return ErrNameRequired
	}

	if p.Price.IsNegative() {
		return ErrNegativePrice
	}

	if p.Stock < 0 {
		return ErrNegativeStock
	}

	if p.CategoryID != nil {
		// A foreign category is reported as missing.
		if _, err := s.repo.GetCategory(ctx, p.UserID, *p.CategoryID); err != nil {
			return err
		}
	}

	return nil
}

// ReserveCheck returns the tenant's product when quantity units could be
// sold right now. It never changes stock.
func (s *Service) ReserveCheck(ctx context.Context, userID, productID int64, quantity int) (*Product, error) {
	if quantity <= 0 {
		return nil, ErrInvalidQuantity
	}

	p, err := s.repo.GetProduct(ctx, userID, productID)
	if err != nil {
		return nil, err
	}

	if !p.AvailableForSale {
		return nil, apperr.Newf(apperr.ErrInvalidInput, "produto %q indisponível para venda", p.Name)
	}

	if quantity > p.Stock {
		return nil, insufficientStock(p)
	}

	return p, nil
}

// CommitDecrement removes quantity units in a single conditional update, so
// concurrent approvals can never take stock below zero.
func (s *Service) CommitDecrement(ctx context.Context, productID int64, quantity int) error {
	if quantity <= 0 {
		return ErrInvalidQuantity
	}

	ok, err := s.repo.DecrementStock(ctx, productID, quantity)
	if err != nil {
		return err
	}

	if ok {
		return nil
	}

	p, err := s.repo.GetProductByID(ctx, productID)
	if err != nil {
		return err
	}

	return insufficientStock(p)
}

func (s *Service) Restock(ctx context.Context, productID int64, quantity int) error {
	if quantity <= 0 {
		return ErrInvalidQuantity
	}

	return s.repo.IncrementStock(ctx, productID, quantity)
}

func insufficientStock(p *Product) error {
	return apperr.Newf(apperr.ErrInsufficientStock, "estoque insuficiente para %q (disponível: %d)", p.Name, p.Stock)
}

func (s *Service) ListCategories(ctx context.Context, userID int64, filter CategoryFilter) ([]*Category, error) {
	return s.repo.ListCategories(ctx, userID, filter)
}

func (s *Service) GetCategory(ctx context.Context, userID, id int64) (*Category, error) {
	return s.repo.GetCategory(ctx, userID, id)
}

func (s *Service) CreateCategory(ctx context.Context, userID int64, params CategoryParams) (*Category, error) {
	c := &Category{
		UserID:      userID,
		Name:        strings.TrimSpace(params.Name),
		Description: strings.TrimSpace(params.Description),
		Active:      true,
	}
	if params.Active != nil {
		c.Active = *params.Active
	}

	if c.Name == "" {
		return nil, ErrNameRequired
	}

	if err := s.repo.CreateCategory(ctx, c); err != nil {
		return nil, err
	}

	return c, nil
}

func (s *Service) UpdateCategory(ctx context.Context, userID, id int64, upd CategoryUpdate) (*Category, error) {
	c, err := s.repo.GetCategory(ctx, userID, id)
	if err != nil {
		return nil, err
	}

	if upd.Name != nil {
		c.Name = strings.TrimSpace(*upd.Name)
	}

	if upd.Description != nil {
		c.Description = strings.TrimSpace(*upd.Description)
	}

	if upd.Active != nil {
		c.Active = *upd.Active
	}

	if c.Name == "" {
		return nil, ErrNameRequired
	}

	if err := s.repo.UpdateCategory(ctx, c); err != nil {
		return nil, err
	}

	return c, nil
}

// DeleteCategory removes the category and leaves its products uncategorised.
func (s *Service) DeleteCategory(ctx context.Context, userID, id int64) error {
	return s.tx.WithinTx(ctx, func(ctx context.Context) error {
		if _, err := s.repo.GetCategory(ctx, userID, id); err != nil {
			return err
		}

		if err := s.repo.DetachCategory(ctx, userID, id); err != nil {
			return err
		}

		return s.repo.DeleteCategory(ctx, userID, id)
	})
}

// ImportRow is one parsed line of a product spreadsheet.
type ImportRow struct {
	Line         int
	CategoryName string
	Params       ProductParams
}

// Import creates every row or none. Categories are matched by name inside the
// tenant and created when missing.
func (s *Service) Import(ctx context.Context, userID int64, rows []ImportRow) ([]*Product, error) {
	if len(rows) == 0 {
		return nil, apperr.New(apperr.ErrInvalidInput, "nenhum produto encontrado no arquivo")
	}

	var created []*Product

	err := s.tx.WithinTx(ctx, func(ctx context.Context) error {
		categories := make(map[string]int64)

		for _, row := range rows {
			params := row.Params

			if name := strings.TrimSpace(row.CategoryName); name != "" {
				id, err := s.resolveCategory(ctx, userID, name, categories)
				if err != nil {
					return fmt.Errorf("resolving category on line %d: %w", row.Line, err)
				}

				params.CategoryID = &id
			}

			p, err := s.CreateProduct(ctx, userID, params)
			if err != nil {
				if msg, ok := apperr.Message(err); ok && errors.Is(err, apperr.ErrInvalidInput) {
					return apperr.Newf(apperr.ErrInvalidInput, "linha %d: %s", row.Line, msg)
				}

				return err
			}

			created = append(created, p)
		}

		return nil
	})
	if err != nil {
		return nil, err
	}

	return created, nil
}

func (s *Service) resolveCategory(ctx context.Context, userID int64, name string, cache map[string]int64) (int64, error) {
	key := strings.ToLower(name)
	if id, ok := cache[key]; ok {
		return id, nil
	}

	c, err := s.repo.FindCategoryByName(ctx, userID, name)
	if err != nil && !errors.Is(err, ErrCategoryNotFound) {
		return 0, err
	}

	if c == nil {
		c, err = s.CreateCategory(ctx, userID, CategoryParams{Name: name})
		if err != nil {
			return 0, err
		}
	}

	cache[key] = c.ID

	return c.ID, nil
}
