package sale

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/MrJamesThe3rd/vitrine/internal/shop"
)

// transitions lists the payment statuses reachable from each status.
// Moving to the current status is always allowed and changes nothing.
var transitions = map[PaymentStatus][]PaymentStatus{
	PaymentPending:    {PaymentProcessing, PaymentApproved, PaymentRejected, PaymentCancelled},
	PaymentProcessing: {PaymentApproved, PaymentRejected, PaymentCancelled},
	PaymentApproved:   {PaymentRefunded},
}

func CanTransition(from, to PaymentStatus) bool {
	if from == to {
		return true
	}

	for _, next := range transitions[from] {
		if next == to {
			return true
		}
	}

	return false
}

// TransitionParams are optional fields stored along with a status change.
type TransitionParams struct {
	Notes            *string
	GatewayPaymentID *string
}

func (p TransitionParams) empty() bool {
	return p.Notes == nil && p.GatewayPaymentID == nil
}

// SetPaymentStatus moves a sale to next and applies its side effects in one
// transaction holding the sale row lock. A tenant of 0 is a privileged caller
// allowed to touch any sale.
//
// Approval decrements stock for every item, credits the seller's wallet and,
// for wallet sales, records the platform commission. Repeating the current
// status is a no-op, so a sale is never approved twice.
func (s *Service) SetPaymentStatus(ctx context.Context, tenant, saleID int64, next PaymentStatus, params TransitionParams) (*Sale, error) {
	if !next.Valid() {
		return nil, ErrInvalidStatus
	}

	var (
		sale     *Sale
		approved bool
	)

	err := s.Tx.WithinTx(ctx, func(ctx context.Context) error {
		var err error

		sale, err = s.Repo.LockSale(ctx, saleID)
		if err != nil {
			return err
		}

		if tenant != 0 && sale.UserID != tenant {
			return ErrNotFound
		}

		if !CanTransition(sale.PaymentStatus, next) {
			return fmt.Errorf("%w: %s -> %s", ErrInvalidTransition, sale.PaymentStatus, next)
		}

		sale.Items, err = s.Repo.ListItems(ctx, sale.ID)
		if err != nil {
			return err
		}

		if sale.PaymentStatus == next {
			if params.empty() {
				return nil
			}

			applyParams(sale, params)

			return s.Repo.UpdatePayment(ctx, sale)
		}

		switch next {
		case PaymentApproved:
			if err := s.approve(ctx, sale); err != nil {
				return err
			}

			approved = true
		case PaymentRefunded:
			if err := s.refund(ctx, sale); err != nil {
				return err
			}
		}

		applyParams(sale, params)
		sale.PaymentStatus = next
		sale.Status = StatusFor(next)

		return s.Repo.UpdatePayment(ctx, sale)
	})
	if err != nil {
		return nil, err
	}

	if approved {
		s.Notifier.PaymentApproved(ctx, event(sale))
	}

	return sale, nil
}

func applyParams(sale *Sale, params TransitionParams) {
	if params.Notes != nil {
		sale.Notes = *params.Notes
	}

	if params.GatewayPaymentID != nil {
		sale.GatewayPaymentID = *params.GatewayPaymentID
	}
}

// approve runs before the sale row is marked approved: the wallet credit
// reconciles against approved sales, which must not include this one yet.
func (s *Service) approve(ctx context.Context, sale *Sale) error {
	if !sale.StockCommitted {
		for _, item := range sale.Items {
			if err := s.Catalog.CommitDecrement(ctx, item.ProductID, item.Quantity); err != nil {
				return err
			}
		}

		sale.StockCommitted = true
	}

	if sale.PaymentMethod == MethodWallet {
		shopID, err := s.shopOf(ctx, sale.UserID)
		if err != nil {
			return err
		}

		c, created, err := s.Ledger.Record(ctx, sale.ID, shopID, sale.UserID, sale.Total)
		if err != nil {
			return err
		}

		if created {
			slog.Info("commission recorded", "sale_id", sale.ID, "amount", c.Amount.StringFixed(2))
		}
	}

	if err := s.Wallet.CreditSale(ctx, sale.UserID, sale.Total); err != nil {
		return err
	}

	now := s.now()
	sale.PaidAt = &now

	return nil
}

func (s *Service) refund(ctx context.Context, sale *Sale) error {
	if err := s.Wallet.ReverseSale(ctx, sale.UserID, sale.Total); err != nil {
		return err
	}

	if !s.opts.RestockOnReversal || !sale.StockCommitted {
		return nil
	}

	for _, item := range sale.Items {
		if err := s.Catalog.Restock(ctx, item.ProductID, item.Quantity); err != nil {
			return err
		}
	}

	sale.StockCommitted = false

	return nil
}

// shopOf returns nil for sellers that never configured a shop.
func (s *Service) shopOf(ctx context.Context, ownerID int64) (*int64, error) {
	sh, err := s.Shops.GetByOwner(ctx, ownerID)
	if err != nil {
		if errors.Is(err, shop.ErrNotFound) {
			return nil, nil
		}

		return nil, err
	}

	return &sh.ID, nil
}
