package wallet

import (
	"time"

	"github.com/shopspring/decimal"
)

// Balance caches a seller's funds. The approved sales are the source of
// truth: a stored figure above the approved total is never reported.
type Balance struct {
	UserID    int64
	Total     decimal.Decimal
	Available decimal.Decimal
	Pending   decimal.Decimal
	UpdatedAt time.Time
}

type WithdrawalStatus string

const (
	WithdrawalPending    WithdrawalStatus = "pending"
	WithdrawalProcessing WithdrawalStatus = "processing"
	WithdrawalCompleted  WithdrawalStatus = "completed"
	WithdrawalRejected   WithdrawalStatus = "rejected"
)

func (s WithdrawalStatus) Valid() bool {
	switch s {
	case WithdrawalPending, WithdrawalProcessing, WithdrawalCompleted, WithdrawalRejected:
		return true
	}

	return false
}

// Terminal statuses can no longer be decided.
func (s WithdrawalStatus) Terminal() bool {
	return s == WithdrawalCompleted || s == WithdrawalRejected
}

type Withdrawal struct {
	ID          int64
	UserID      int64
	Amount      decimal.Decimal
	Status      WithdrawalStatus
	Notes       string
	ProcessedAt *time.Time
	ProcessedBy *int64
	CreatedAt   time.Time
	UpdatedAt   *time.Time
}

type EnrollmentStatus string

const (
	EnrollmentPending  EnrollmentStatus = "pending"
	EnrollmentApproved EnrollmentStatus = "approved"
	EnrollmentRejected EnrollmentStatus = "rejected"
)

func (s EnrollmentStatus) Valid() bool {
	switch s {
	case EnrollmentPending, EnrollmentApproved, EnrollmentRejected:
		return true
	}

	return false
}

// Enrollment is a seller's request to receive payouts through the wallet.
type Enrollment struct {
	ID          int64
	UserID      int64
	HolderName  string
	Document    string
	PixKey      string
	PixKeyType  string
	BankName    string
	Status      EnrollmentStatus
	Notes       string
	ProcessedAt *time.Time
	ProcessedBy *int64
	CreatedAt   time.Time
	UpdatedAt   *time.Time
}

// reconcile caps the stored balance at the approved sales total. With no
// stored row, the whole approved total is available.
func reconcile(userID int64, stored *Balance, approved decimal.Decimal) Balance {
	if stored == nil {
		return Balance{
			UserID:    userID,
			Total:     approved,
			Available: approved,
			Pending:   decimal.Zero,
		}
	}

	b := *stored
	b.Total = decimal.Min(b.Total, approved)
	b.Available = decimal.Min(b.Available, approved)

	return b
}

func floorZero(d decimal.Decimal) decimal.Decimal {
	return decimal.Max(d, decimal.Zero)
}
