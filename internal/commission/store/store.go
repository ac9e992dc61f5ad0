package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/MrJamesThe3rd/vitrine/internal/apperr"
	"github.com/MrJamesThe3rd/vitrine/internal/commission"
	"github.com/MrJamesThe3rd/vitrine/internal/database"
)

var errNotFound = apperr.New(apperr.ErrNotFound, "comissão não encontrada")

type Store struct {
	db *sql.DB
}

func New(db *sql.DB) *Store {
	return &Store{db: db}
}

type scanner interface {
	Scan(dest ...any) error
}

const selectCommissionColumns = `
	c.id, c.sale_id, c.shop_id, c.user_id, c.sale_total, c.fixed_fee, c.percent_fee,
	c.amount, c.created_at, COALESCE(s.name, '')
`

func scanCommission(s scanner) (*commission.Commission, error) {
	var c commission.Commission

	var shopID sql.NullInt64

	if err := s.Scan(
		&c.ID, &c.SaleID, &shopID, &c.UserID, &c.SaleTotal, &c.FixedFee, &c.PercentFee,
		&c.Amount, &c.CreatedAt, &c.ShopName,
	); err != nil {
		return nil, err
	}

	if shopID.Valid {
		c.ShopID = &shopID.Int64
	}

	return &c, nil
}

// InsertIfAbsent relies on UNIQUE(sale_id): a concurrent second insert for
// the same sale is a no-op.
func (s *Store) InsertIfAbsent(ctx context.Context, c *commission.Commission) (bool, error) {
	query := `
		INSERT INTO commissions (sale_id, shop_id, user_id, sale_total, fixed_fee, percent_fee, amount, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, NOW())
		ON CONFLICT (sale_id) DO NOTHING
		RETURNING id, created_at
	`

	err := database.Conn(ctx, s.db).QueryRowContext(ctx, query,
		c.SaleID,
		c.ShopID,
		c.UserID,
		c.SaleTotal,
		c.FixedFee,
		c.PercentFee,
		c.Amount,
	).Scan(&c.ID, &c.CreatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return false, nil
		}

		return false, fmt.Errorf("recording commission: %w", err)
	}

	return true, nil
}

func (s *Store) GetBySale(ctx context.Context, saleID int64) (*commission.Commission, error) {
	query := `SELECT ` + selectCommissionColumns + `
		FROM commissions c
		LEFT JOIN shops s ON s.id = c.shop_id
		WHERE c.sale_id = $1`

	c, err := scanCommission(database.Conn(ctx, s.db).QueryRowContext(ctx, query, saleID))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, errNotFound
		}

		return nil, fmt.Errorf("getting commission: %w", err)
	}

	return c, nil
}

func (s *Store) List(ctx context.Context, filter commission.ListFilter) ([]*commission.Commission, error) {
	query := `SELECT ` + selectCommissionColumns + `
		FROM commissions c
		LEFT JOIN shops s ON s.id = c.shop_id`

	var args []any

	if filter.ShopID != nil {
		query += " WHERE c.shop_id = $1"

		args = append(args, *filter.ShopID)
	}

	query += " ORDER BY c.created_at DESC"

	rows, err := database.Conn(ctx, s.db).QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("listing commissions: %w", err)
	}
	defer rows.Close()

	commissions := []*commission.Commission{}

	for rows.Next() {
		c, err := scanCommission(rows)
		if err != nil {
			return nil, fmt.Errorf("scanning commission: %w", err)
		}

		commissions = append(commissions, c)
	}

	return commissions, rows.Err()
}
