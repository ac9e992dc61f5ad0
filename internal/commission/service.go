package commission

import (
	"context"

	"github.com/shopspring/decimal"

	"github.com/MrJamesThe3rd/vitrine/internal/apperr"
)

//go:generate mockgen -source=service.go -destination=repository_mock.go -package=commission
type Repository interface {
	// InsertIfAbsent reports false when the sale already has a commission.
	InsertIfAbsent(ctx context.Context, c *Commission) (bool, error)
	GetBySale(ctx context.Context, saleID int64) (*Commission, error)
	List(ctx context.Context, filter ListFilter) ([]*Commission, error)
}

type Service struct {
	repo       Repository
	fixedFee   decimal.Decimal
	percentFee decimal.Decimal
}

func NewService(repo Repository, fixedFee, percentFee decimal.Decimal) *Service {
	return &Service{repo: repo, fixedFee: fixedFee, percentFee: percentFee}
}

type ListFilter struct {
	ShopID *int64
}

// Record charges the configured fees on a sale. Calling it again for the same
// sale returns the stored commission with created=false.
func (s *Service) Record(ctx context.Context, saleID int64, shopID *int64, userID int64, saleTotal decimal.Decimal) (*Commission, bool, error) {
	if saleTotal.IsNegative() {
		return nil, false, apperr.New(apperr.ErrInvalidInput, "total da venda negativo")
	}

	c := &Commission{
		SaleID:     saleID,
		ShopID:     shopID,
		UserID:     userID,
		SaleTotal:  saleTotal,
		FixedFee:   s.fixedFee,
		PercentFee: s.percentFee,
		Amount:     Calculate(saleTotal, s.fixedFee, s.percentFee),
	}

	created, err := s.repo.InsertIfAbsent(ctx, c)
	if err != nil {
		return nil, false, err
	}

	if created {
		return c, true, nil
	}

	existing, err := s.repo.GetBySale(ctx, saleID)
	if err != nil {
		return nil, false, err
	}

	return existing, false, nil
}

// List returns the matching commissions with their sum and per-store totals.
func (s *Service) List(ctx context.Context, filter ListFilter) (*Report, error) {
	commissions, err := s.repo.List(ctx, filter)
	if err != nil {
		return nil, err
	}

	report := &Report{
		Total:       decimal.Zero,
		Commissions: commissions,
		ByStore:     []*StoreTotal{},
	}

	groups := make(map[int64]*StoreTotal)

	for _, c := range commissions {
		report.Total = report.Total.Add(c.Amount)

		var key int64
		if c.ShopID != nil {
			key = *c.ShopID
		}

		g, ok := groups[key]
		if !ok {
			g = &StoreTotal{ShopID: c.ShopID, ShopName: c.ShopName, Total: decimal.Zero}
			groups[key] = g
			report.ByStore = append(report.ByStore, g)
		}

		g.Total = g.Total.Add(c.Amount)
		g.Count++
	}

	return report, nil
}
