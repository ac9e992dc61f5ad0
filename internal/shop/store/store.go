package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/MrJamesThe3rd/vitrine/internal/database"
	"github.com/MrJamesThe3rd/vitrine/internal/shop"
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

const selectShopColumns = `s.id, s.owner_id, s.name, s.description, s.phone, s.logo_url, s.created_at, s.updated_at`

func scanShop(sc scanner, extra ...any) (*shop.Shop, error) {
	var sh shop.Shop

	dest := append([]any{
		&sh.ID, &sh.OwnerID, &sh.Name, &sh.Description, &sh.Phone, &sh.LogoURL, &sh.CreatedAt, &sh.UpdatedAt,
	}, extra...)

	if err := sc.Scan(dest...); err != nil {
		return nil, err
	}

	return &sh, nil
}

func (s *Store) GetByOwner(ctx context.Context, ownerID int64) (*shop.Shop, error) {
	query := `SELECT ` + selectShopColumns + ` FROM shops s WHERE s.owner_id = $1`

	sh, err := scanShop(database.Conn(ctx, s.db).QueryRowContext(ctx, query, ownerID))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, shop.ErrNotFound
		}

		return nil, fmt.Errorf("getting shop: %w", err)
	}

	return sh, nil
}

// CreateIfMissing is safe against two requests creating the same owner's
// shop at once: the loser reads the winner's row.
func (s *Store) CreateIfMissing(ctx context.Context, ownerID int64, name string) (*shop.Shop, error) {
	query := `
		INSERT INTO shops (owner_id, name, created_at)
		VALUES ($1, $2, NOW())
		ON CONFLICT (owner_id) DO NOTHING
	`

	if _, err := database.Conn(ctx, s.db).ExecContext(ctx, query, ownerID, name); err != nil {
		return nil, fmt.Errorf("creating shop: %w", err)
	}

	return s.GetByOwner(ctx, ownerID)
}

func (s *Store) UpdateShop(ctx context.Context, sh *shop.Shop) error {
	query := `
		UPDATE shops
		SET name = $1, description = $2, phone = $3, logo_url = $4, updated_at = NOW()
		WHERE id = $5
		RETURNING updated_at
	`

	err := database.Conn(ctx, s.db).QueryRowContext(ctx, query,
		sh.Name,
		sh.Description,
		sh.Phone,
		sh.LogoURL,
		sh.ID,
	).Scan(&sh.UpdatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return shop.ErrNotFound
		}

		return fmt.Errorf("updating shop: %w", err)
	}

	return nil
}

func (s *Store) UpsertCredential(ctx context.Context, c *shop.GatewayCredential) error {
	query := `
		INSERT INTO gateway_credentials (shop_id, type, holder_name, document, pix_key, pix_key_type, configured, active, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, NOW())
		ON CONFLICT (shop_id, type) DO UPDATE
		SET holder_name = EXCLUDED.holder_name,
			document = EXCLUDED.document,
			pix_key = EXCLUDED.pix_key,
			pix_key_type = EXCLUDED.pix_key_type,
			configured = EXCLUDED.configured,
			active = EXCLUDED.active,
			updated_at = NOW()
		RETURNING id, created_at, updated_at
	`

	err := database.Conn(ctx, s.db).QueryRowContext(ctx, query,
		c.ShopID,
		c.Type,
		c.HolderName,
		c.Document,
		c.PixKey,
		c.PixKeyType,
		c.Configured,
		c.Active,
	).Scan(&c.ID, &c.CreatedAt, &c.UpdatedAt)
	if err != nil {
		return fmt.Errorf("upserting gateway credential: %w", err)
	}

	return nil
}

func (s *Store) ListCredentials(ctx context.Context, shopID int64) ([]*shop.GatewayCredential, error) {
	query := `
		SELECT id, shop_id, type, holder_name, document, pix_key, pix_key_type, configured, active, created_at, updated_at
		FROM gateway_credentials
		WHERE shop_id = $1
		ORDER BY type ASC
	`

	rows, err := database.Conn(ctx, s.db).QueryContext(ctx, query, shopID)
	if err != nil {
		return nil, fmt.Errorf("listing gateway credentials: %w", err)
	}
	defer rows.Close()

	creds := []*shop.GatewayCredential{}

	for rows.Next() {
		var c shop.GatewayCredential

		var credType string

		if err := rows.Scan(
			&c.ID, &c.ShopID, &credType, &c.HolderName, &c.Document, &c.PixKey, &c.PixKeyType,
			&c.Configured, &c.Active, &c.CreatedAt, &c.UpdatedAt,
		); err != nil {
			return nil, fmt.Errorf("scanning gateway credential: %w", err)
		}

		c.Type = shop.CredentialType(credType)
		creds = append(creds, &c)
	}

	return creds, rows.Err()
}

func (s *Store) ListSummaries(ctx context.Context) ([]*shop.Summary, error) {
	query := `SELECT ` + selectShopColumns + `,
			u.name, u.email,
			COUNT(sa.id),
			COUNT(sa.id) FILTER (WHERE sa.payment_status = 'approved'),
			COALESCE(SUM(sa.total) FILTER (WHERE sa.payment_status = 'approved'), 0)
		FROM shops s
		JOIN users u ON u.id = s.owner_id
		LEFT JOIN sales sa ON sa.user_id = s.owner_id
		GROUP BY s.id, u.id
		ORDER BY s.id ASC
	`

	rows, err := database.Conn(ctx, s.db).QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("listing shops: %w", err)
	}
	defer rows.Close()

	summaries := []*shop.Summary{}

	for rows.Next() {
		var sum shop.Summary

		sh, err := scanShop(rows,
			&sum.OwnerName, &sum.OwnerEmail,
			&sum.SalesCount, &sum.ApprovedCount, &sum.ApprovedAmount,
		)
		if err != nil {
			return nil, fmt.Errorf("scanning shop summary: %w", err)
		}

		sum.Shop = *sh
		summaries = append(summaries, &sum)
	}

	return summaries, rows.Err()
}
