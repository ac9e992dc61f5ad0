package commission

import (
	"time"

	"github.com/shopspring/decimal"
)

// Commission is the platform fee charged on an approved wallet sale. It is
// written once and never changed.
type Commission struct {
	ID         int64
	SaleID     int64
	ShopID     *int64
	UserID     int64
	SaleTotal  decimal.Decimal
	FixedFee   decimal.Decimal
	PercentFee decimal.Decimal
	Amount     decimal.Decimal
	CreatedAt  time.Time

	// ShopName is filled on listings.
	ShopName string
}

// Calculate returns fixed + total*percent/100 rounded to cents.
func Calculate(total, fixed, percent decimal.Decimal) decimal.Decimal {
	return fixed.Add(total.Mul(percent).Div(decimal.NewFromInt(100))).Round(2)
}

type StoreTotal struct {
	ShopID   *int64
	ShopName string
	Total    decimal.Decimal
	Count    int
}

type Report struct {
	Total       decimal.Decimal
	Commissions []*Commission
	ByStore     []*StoreTotal
}
