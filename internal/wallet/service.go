package wallet

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"github.com/MrJamesThe3rd/vitrine/internal/apperr"
	"github.com/MrJamesThe3rd/vitrine/internal/database"
	"github.com/MrJamesThe3rd/vitrine/internal/shop"
)

var (
	ErrInvalidAmount       = apperr.New(apperr.ErrInvalidInput, "o valor do saque deve ser maior que zero")
	ErrInsufficientBalance = apperr.New(apperr.ErrInsufficientBalance, "saldo disponível insuficiente")
	ErrWithdrawalNotFound  = apperr.New(apperr.ErrNotFound, "saque não encontrado")
	ErrWithdrawalFinished  = apperr.New(apperr.ErrInvalidInput, "saque já finalizado")
	ErrInvalidDecision     = apperr.New(apperr.ErrInvalidInput, "decisão inválida")
	ErrEnrollmentNotFound  = apperr.New(apperr.ErrNotFound, "solicitação não encontrada")
	ErrEnrollmentPending   = apperr.New(apperr.ErrConflict, "já existe uma solicitação pendente")
	ErrEnrollmentDecided   = apperr.New(apperr.ErrInvalidInput, "solicitação já processada")
)

//go:generate mockgen -source=service.go -destination=repository_mock.go -package=wallet
type Repository interface {
	// GetBalance returns nil when the user has no stored balance.
	GetBalance(ctx context.Context, userID int64) (*Balance, error)
	// LockBalance creates an empty row when the user has none, then locks it.
	// created reports whether the row was just inserted.
	LockBalance(ctx context.Context, userID int64) (b *Balance, created bool, err error)
	SaveBalance(ctx context.Context, b *Balance) error

	CreateWithdrawal(ctx context.Context, w *Withdrawal) error
	LockWithdrawal(ctx context.Context, id int64) (*Withdrawal, error)
	UpdateWithdrawal(ctx context.Context, w *Withdrawal) error
	ListWithdrawals(ctx context.Context, filter WithdrawalFilter) ([]*Withdrawal, error)

	CreateEnrollment(ctx context.Context, e *Enrollment) error
	LockEnrollment(ctx context.Context, id int64) (*Enrollment, error)
	UpdateEnrollment(ctx context.Context, e *Enrollment) error
	ListEnrollments(ctx context.Context, filter EnrollmentFilter) ([]*Enrollment, error)
}

// SalesLedger sums a seller's approved sales.
type SalesLedger interface {
	ApprovedTotal(ctx context.Context, userID int64) (decimal.Decimal, error)
}

type AdminChecker interface {
	RequireSuperAdmin(ctx context.Context, userID int64) error
}

type Shops interface {
	EnsureForOwner(ctx context.Context, ownerID int64) (*shop.Shop, error)
	UpsertGatewayCredential(ctx context.Context, c *shop.GatewayCredential) error
}

type Service struct {
	repo   Repository
	sales  SalesLedger
	admins AdminChecker
	shops  Shops
	tx     database.Transactor
	now    func() time.Time
}

func NewService(repo Repository, sales SalesLedger, admins AdminChecker, shops Shops, tx database.Transactor) *Service {
	return &Service{
		repo:   repo,
		sales:  sales,
		admins: admins,
		shops:  shops,
		tx:     tx,
		now:    time.Now,
	}
}

type WithdrawalFilter struct {
	UserID *int64
	Status *WithdrawalStatus
}

type EnrollmentFilter struct {
	Status *EnrollmentStatus
}

func (s *Service) GetBalance(ctx context.Context, userID int64) (*Balance, error) {
	approved, err := s.sales.ApprovedTotal(ctx, userID)
	if err != nil {
		return nil, err
	}

	stored, err := s.repo.GetBalance(ctx, userID)
	if err != nil {
		return nil, err
	}

	b := reconcile(userID, stored, approved)

	return &b, nil
}

// lockBalance must run inside a transaction. Approved sales are summed after
// the row is locked, so credits committed while waiting are included.
func (s *Service) lockBalance(ctx context.Context, userID int64) (*Balance, error) {
	locked, created, err := s.repo.LockBalance(ctx, userID)
	if err != nil {
		return nil, err
	}

	approved, err := s.sales.ApprovedTotal(ctx, userID)
	if err != nil {
		return nil, err
	}

	if created {
		locked = nil
	}

	b := reconcile(userID, locked, approved)

	return &b, nil
}

// CreditSale adds an approved sale to the seller's balance. It must run
// before the sale itself is marked approved.
func (s *Service) CreditSale(ctx context.Context, userID int64, amount decimal.Decimal) error {
	return s.tx.WithinTx(ctx, func(ctx context.Context) error {
		b, err := s.lockBalance(ctx, userID)
		if err != nil {
			return err
		}

		b.Total = b.Total.Add(amount)
		b.Available = b.Available.Add(amount)

		return s.repo.SaveBalance(ctx, b)
	})
}

// ReverseSale takes a refunded sale back out of the balance, never below
// zero. It must run before the sale leaves the approved status.
func (s *Service) ReverseSale(ctx context.Context, userID int64, amount decimal.Decimal) error {
	return s.tx.WithinTx(ctx, func(ctx context.Context) error {
		b, err := s.lockBalance(ctx, userID)
		if err != nil {
			return err
		}

		b.Total = floorZero(b.Total.Sub(amount))
		b.Available = floorZero(b.Available.Sub(amount))

		return s.repo.SaveBalance(ctx, b)
	})
}

// RequestWithdrawal moves amount from available to pending and files a
// pending withdrawal.
func (s *Service) RequestWithdrawal(ctx context.Context, userID int64, amount decimal.Decimal) (*Withdrawal, error) {
	amount = amount.Round(2)
	if !amount.IsPositive() {
		return nil, ErrInvalidAmount
	}

	w := &Withdrawal{
		UserID: userID,
		Amount: amount,
		Status: WithdrawalPending,
	}

	err := s.tx.WithinTx(ctx, func(ctx context.Context) error {
		b, err := s.lockBalance(ctx, userID)
		if err != nil {
			return err
		}

		if w.Amount.GreaterThan(b.Available) {
			return ErrInsufficientBalance
		}

		b.Available = b.Available.Sub(w.Amount)
		b.Pending = b.Pending.Add(w.Amount)

		if err := s.repo.SaveBalance(ctx, b); err != nil {
			return err
		}

		return s.repo.CreateWithdrawal(ctx, w)
	})
	if err != nil {
		return nil, err
	}

	return w, nil
}

// RequestWithdrawalFor lets a super-admin file a withdrawal on a seller's
// behalf.
func (s *Service) RequestWithdrawalFor(ctx context.Context, adminID, userID int64, amount decimal.Decimal) (*Withdrawal, error) {
	if err := s.admins.RequireSuperAdmin(ctx, adminID); err != nil {
		return nil, err
	}

	return s.RequestWithdrawal(ctx, userID, amount)
}

func (s *Service) ListWithdrawals(ctx context.Context, userID int64) ([]*Withdrawal, error) {
	return s.repo.ListWithdrawals(ctx, WithdrawalFilter{UserID: &userID})
}

func (s *Service) ListAllWithdrawals(ctx context.Context, filter WithdrawalFilter) ([]*Withdrawal, error) {
	return s.repo.ListWithdrawals(ctx, filter)
}

// DecideWithdrawal moves a withdrawal forward. Rejecting a pending withdrawal
// returns the amount to available; completing takes it out of pending and
// total.
func (s *Service) DecideWithdrawal(ctx context.Context, adminID, id int64, decision WithdrawalStatus, notes *string) (*Withdrawal, error) {
	if err := s.admins.RequireSuperAdmin(ctx, adminID); err != nil {
		return nil, err
	}

	switch decision {
	case WithdrawalProcessing, WithdrawalCompleted, WithdrawalRejected:
	default:
		return nil, ErrInvalidDecision
	}

	var w *Withdrawal

	err := s.tx.WithinTx(ctx, func(ctx context.Context) error {
		var err error

		w, err = s.repo.LockWithdrawal(ctx, id)
		if err != nil {
			return err
		}

		if w.Status.Terminal() {
			return ErrWithdrawalFinished
		}

		if decision.Terminal() {
			if err := s.settle(ctx, w, decision); err != nil {
				return err
			}
		}

		now := s.now()
		w.Status = decision
		w.ProcessedAt = &now
		w.ProcessedBy = &adminID

		if notes != nil {
			w.Notes = *notes
		}

		return s.repo.UpdateWithdrawal(ctx, w)
	})
	if err != nil {
		return nil, err
	}

	return w, nil
}

func (s *Service) settle(ctx context.Context, w *Withdrawal, decision WithdrawalStatus) error {
	b, err := s.lockBalance(ctx, w.UserID)
	if err != nil {
		return err
	}

	switch decision {
	case WithdrawalRejected:
		// Only a withdrawal nobody has started paying out goes back to available.
		if w.Status == WithdrawalPending {
			b.Available = b.Available.Add(w.Amount)
			b.Pending = floorZero(b.Pending.Sub(w.Amount))
		}
	case WithdrawalCompleted:
		b.Pending = floorZero(b.Pending.Sub(w.Amount))
		b.Total = floorZero(b.Total.Sub(w.Amount))
	}

	return s.repo.SaveBalance(ctx, b)
}
