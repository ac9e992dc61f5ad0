package catalog

import (
	"time"

	"github.com/shopspring/decimal"
)

// Category groups a tenant's products.
type Category struct {
	ID          int64
	UserID      int64
	Name        string
	Description string
	Active      bool
	CreatedAt   time.Time
	UpdatedAt   *time.Time
}

// Product is a sellable item. Stock only goes down when a payment is
// approved.
type Product struct {
	ID               int64
	UserID           int64
	CategoryID       *int64
	Name             string
	Description      string
	Price            decimal.Decimal
	Stock            int
	AvailableForSale bool
	Featured         bool
	CreatedAt        time.Time
	UpdatedAt        *time.Time
}
