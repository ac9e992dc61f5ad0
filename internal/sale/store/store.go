package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/MrJamesThe3rd/vitrine/internal/database"
	"github.com/MrJamesThe3rd/vitrine/internal/sale"
)

type Store struct {
	db *sql.DB
}

func New(db *sql.DB) *Store {
	return &Store{db: db}
}

type scanner interface {
	Scan(dest ...any) error
}

const selectSaleColumns = `
	id, user_id, total, status, payment_status, payment_method, external_transaction_id,
	payment_link, qr_code, gateway_payment_id, customer_name, customer_email, notes,
	stock_committed, paid_at, created_at, updated_at
`

func scanSale(sc scanner) (*sale.Sale, error) {
	var (
		s                             sale.Sale
		status, paymentStatus, method string
	)

	err := sc.Scan(
		&s.ID,
		&s.UserID,
		&s.Total,
		&status,
		&paymentStatus,
		&method,
		&s.ExternalTransactionID,
		&s.PaymentLink,
		&s.QRCode,
		&s.GatewayPaymentID,
		&s.CustomerName,
		&s.CustomerEmail,
		&s.Notes,
		&s.StockCommitted,
		&s.PaidAt,
		&s.CreatedAt,
		&s.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	s.Status = sale.Status(status)
	s.PaymentStatus = sale.PaymentStatus(paymentStatus)
	s.PaymentMethod = sale.PaymentMethod(method)

	return &s, nil
}

func (s *Store) CreateSale(ctx context.Context, sl *sale.Sale) error {
	query := `
		INSERT INTO sales (
			user_id, total, status, payment_status, payment_method, external_transaction_id,
			payment_link, qr_code, gateway_payment_id, customer_name, customer_email, notes, created_at
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, NOW())
		RETURNING id, created_at
	`

	err := database.Conn(ctx, s.db).QueryRowContext(ctx, query,
		sl.UserID,
		sl.Total,
		sl.Status,
		sl.PaymentStatus,
		sl.PaymentMethod,
		sl.ExternalTransactionID,
		sl.PaymentLink,
		sl.QRCode,
		sl.GatewayPaymentID,
		sl.CustomerName,
		sl.CustomerEmail,
		sl.Notes,
	).Scan(&sl.ID, &sl.CreatedAt)
	if err != nil {
		return fmt.Errorf("creating sale: %w", err)
	}

	return nil
}

func (s *Store) CreateItems(ctx context.Context, items []*sale.LineItem) error {
	query := `
		INSERT INTO sale_items (sale_id, product_id, product_name, quantity, unit_price, subtotal, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, NOW())
		RETURNING id, created_at
	`

	conn := database.Conn(ctx, s.db)

	for _, item := range items {
		err := conn.QueryRowContext(ctx, query,
			item.SaleID,
			item.ProductID,
			item.ProductName,
			item.Quantity,
			item.UnitPrice,
			item.Subtotal,
		).Scan(&item.ID, &item.CreatedAt)
		if err != nil {
			return fmt.Errorf("creating sale item for product %d: %w", item.ProductID, err)
		}
	}

	return nil
}

func (s *Store) GetSale(ctx context.Context, userID, id int64) (*sale.Sale, error) {
	query := `SELECT ` + selectSaleColumns + ` FROM sales WHERE id = $1 AND user_id = $2`

	return s.getOne(ctx, query, id, userID)
}

func (s *Store) GetByExternalID(ctx context.Context, externalID string) (*sale.Sale, error) {
	query := `SELECT ` + selectSaleColumns + ` FROM sales WHERE external_transaction_id = $1`

	return s.getOne(ctx, query, externalID)
}

// LockSale must run inside a transaction; the row stays locked until it ends.
func (s *Store) LockSale(ctx context.Context, id int64) (*sale.Sale, error) {
	query := `SELECT ` + selectSaleColumns + ` FROM sales WHERE id = $1 FOR UPDATE`

	return s.getOne(ctx, query, id)
}

func (s *Store) getOne(ctx context.Context, query string, args ...any) (*sale.Sale, error) {
	sl, err := scanSale(database.Conn(ctx, s.db).QueryRowContext(ctx, query, args...))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, sale.ErrNotFound
		}

		return nil, fmt.Errorf("getting sale: %w", err)
	}

	return sl, nil
}

func (s *Store) ListItems(ctx context.Context, saleID int64) ([]*sale.LineItem, error) {
	query := `
		SELECT id, sale_id, product_id, product_name, quantity, unit_price, subtotal, created_at
		FROM sale_items
		WHERE sale_id = $1
		ORDER BY id ASC
	`

	rows, err := database.Conn(ctx, s.db).QueryContext(ctx, query, saleID)
	if err != nil {
		return nil, fmt.Errorf("listing sale items: %w", err)
	}
	defer rows.Close()

	items := []*sale.LineItem{}

	for rows.Next() {
		var item sale.LineItem

		if err := rows.Scan(
			&item.ID, &item.SaleID, &item.ProductID, &item.ProductName,
			&item.Quantity, &item.UnitPrice, &item.Subtotal, &item.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("scanning sale item: %w", err)
		}

		items = append(items, &item)
	}

	return items, rows.Err()
}

func (s *Store) ListSales(ctx context.Context, userID int64, filter sale.ListFilter) ([]*sale.Sale, error) {
	var (
		conditions = []string{"user_id = $1"}
		args       = []any{userID}
	)

	add := func(cond string, arg any) {
		args = append(args, arg)
		conditions = append(conditions, fmt.Sprintf(cond, len(args)))
	}

	if filter.Status != nil {
		add("status = $%d", string(*filter.Status))
	}

	if filter.PaymentStatus != nil {
		add("payment_status = $%d", string(*filter.PaymentStatus))
	}

	if filter.From != nil {
		add("created_at >= $%d", *filter.From)
	}

	if filter.To != nil {
		add("created_at < $%d", *filter.To)
	}

	query := `SELECT ` + selectSaleColumns + ` FROM sales WHERE ` + strings.Join(conditions, " AND ") +
		` ORDER BY created_at DESC, id DESC`

	if filter.Limit > 0 {
		args = append(args, filter.Limit)
		query += fmt.Sprintf(" LIMIT $%d", len(args))
	}

	rows, err := database.Conn(ctx, s.db).QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("listing sales: %w", err)
	}
	defer rows.Close()

	sales := []*sale.Sale{}

	for rows.Next() {
		sl, err := scanSale(rows)
		if err != nil {
			return nil, fmt.Errorf("scanning sale: %w", err)
		}

		sales = append(sales, sl)
	}

	return sales, rows.Err()
}

func (s *Store) UpdateDetails(ctx context.Context, sl *sale.Sale) error {
	query := `
		UPDATE sales
		SET notes = $1, customer_name = $2, customer_email = $3, updated_at = NOW()
		WHERE id = $4
		RETURNING updated_at
	`

	err := database.Conn(ctx, s.db).QueryRowContext(ctx, query,
		sl.Notes, sl.CustomerName, sl.CustomerEmail, sl.ID,
	).Scan(&sl.UpdatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return sale.ErrNotFound
		}

		return fmt.Errorf("updating sale: %w", err)
	}

	return nil
}

func (s *Store) UpdatePayment(ctx context.Context, sl *sale.Sale) error {
	query := `
		UPDATE sales
		SET status = $1, payment_status = $2, gateway_payment_id = $3, notes = $4,
			stock_committed = $5, paid_at = $6, updated_at = NOW()
		WHERE id = $7
		RETURNING updated_at
	`

	err := database.Conn(ctx, s.db).QueryRowContext(ctx, query,
		sl.Status,
		sl.PaymentStatus,
		sl.GatewayPaymentID,
		sl.Notes,
		sl.StockCommitted,
		sl.PaidAt,
		sl.ID,
	).Scan(&sl.UpdatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return sale.ErrNotFound
		}

		return fmt.Errorf("updating sale payment: %w", err)
	}

	return nil
}

// ApprovedTotal sums the totals of the seller's approved sales.
func (s *Store) ApprovedTotal(ctx context.Context, userID int64) (decimal.Decimal, error) {
	query := `SELECT COALESCE(SUM(total), 0) FROM sales WHERE user_id = $1 AND payment_status = 'approved'`

	var total decimal.Decimal

	if err := database.Conn(ctx, s.db).QueryRowContext(ctx, query, userID).Scan(&total); err != nil {
		return decimal.Zero, fmt.Errorf("summing approved sales: %w", err)
	}

	return total, nil
}
