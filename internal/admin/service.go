// Package admin gathers the cross-tenant listings only a super-admin may see.
package admin

import (
	"context"

	"github.com/MrJamesThe3rd/vitrine/internal/apperr"
	"github.com/MrJamesThe3rd/vitrine/internal/commission"
	"github.com/MrJamesThe3rd/vitrine/internal/shop"
	"github.com/MrJamesThe3rd/vitrine/internal/wallet"
)

var ErrInvalidStatus = apperr.New(apperr.ErrInvalidInput, "status inválido")

//go:generate mockgen -source=service.go -destination=deps_mock.go -package=admin
type Admins interface {
	RequireSuperAdmin(ctx context.Context, id int64) error
}

type Shops interface {
	ListWithStats(ctx context.Context) ([]*shop.Summary, error)
}

type Commissions interface {
	List(ctx context.Context, filter commission.ListFilter) (*commission.Report, error)
}

type Wallets interface {
	ListAllWithdrawals(ctx context.Context, filter wallet.WithdrawalFilter) ([]*wallet.Withdrawal, error)
	ListEnrollments(ctx context.Context, filter wallet.EnrollmentFilter) ([]*wallet.Enrollment, error)
}

type Service struct {
	admins      Admins
	shops       Shops
	commissions Commissions
	wallets     Wallets
}

func NewService(admins Admins, shops Shops, commissions Commissions, wallets Wallets) *Service {
	return &Service{admins: admins, shops: shops, commissions: commissions, wallets: wallets}
}

// ListStoresWithStats returns every store with its owner's sales counters.
func (s *Service) ListStoresWithStats(ctx context.Context, actorID int64) ([]*shop.Summary, error) {
	if err := s.admins.RequireSuperAdmin(ctx, actorID); err != nil {
		return nil, err
	}

	return s.shops.ListWithStats(ctx)
}

func (s *Service) ListCommissions(ctx context.Context, actorID int64, filter commission.ListFilter) (*commission.Report, error) {
	if err := s.admins.RequireSuperAdmin(ctx, actorID); err != nil {
		return nil, err
	}

	return s.commissions.List(ctx, filter)
}

func (s *Service) ListWithdrawals(ctx context.Context, actorID int64, filter wallet.WithdrawalFilter) ([]*wallet.Withdrawal, error) {
	if err := s.admins.RequireSuperAdmin(ctx, actorID); err != nil {
		return nil, err
	}

	if filter.Status != nil && !filter.Status.Valid() {
		return nil, ErrInvalidStatus
	}

	return s.wallets.ListAllWithdrawals(ctx, filter)
}

func (s *Service) ListEnrollments(ctx context.Context, actorID int64, filter wallet.EnrollmentFilter) ([]*wallet.Enrollment, error) {
	if err := s.admins.RequireSuperAdmin(ctx, actorID); err != nil {
		return nil, err
	}

	if filter.Status != nil && !filter.Status.Valid() {
		return nil, ErrInvalidStatus
	}

	return s.wallets.ListEnrollments(ctx, filter)
}
