package sale

import (
	"time"

	"github.com/shopspring/decimal"
)

// Status is the business state of a sale. It is always derived from the
// payment status, see StatusFor.
type Status string

const (
	StatusPending   Status = "pending"
	StatusCompleted Status = "completed"
	StatusCancelled Status = "cancelled"
)

func (s Status) Valid() bool {
	switch s {
	case StatusPending, StatusCompleted, StatusCancelled:
		return true
	}

	return false
}

type PaymentStatus string

const (
	PaymentPending    PaymentStatus = "pending"
	PaymentProcessing PaymentStatus = "processing"
	PaymentApproved   PaymentStatus = "approved"
	PaymentRejected   PaymentStatus = "rejected"
	PaymentCancelled  PaymentStatus = "cancelled"
	PaymentRefunded   PaymentStatus = "refunded"
)

func (s PaymentStatus) Valid() bool {
	switch s {
	case PaymentPending, PaymentProcessing, PaymentApproved, PaymentRejected, PaymentCancelled, PaymentRefunded:
		return true
	}

	return false
}

type PaymentMethod string

const (
	MethodCash       PaymentMethod = "cash"
	MethodCreditCard PaymentMethod = "credit_card"
	MethodDebitCard  PaymentMethod = "debit_card"
	MethodPix        PaymentMethod = "pix"
	MethodInvoice    PaymentMethod = "invoice"
	MethodTransfer   PaymentMethod = "transfer"
	MethodWallet     PaymentMethod = "wallet"
)

func (m PaymentMethod) Valid() bool {
	switch m {
	case MethodCash, MethodCreditCard, MethodDebitCard, MethodPix, MethodInvoice, MethodTransfer, MethodWallet:
		return true
	}

	return false
}

// StatusFor derives the sale status from its payment status. Completed
// always means approved. Cancelled covers rejected and cancelled payments
// and also refunded ones, since a refunded sale is no longer live.
func StatusFor(ps PaymentStatus) Status {
	switch ps {
	case PaymentApproved:
		return StatusCompleted
	case PaymentRejected, PaymentCancelled, PaymentRefunded:
		return StatusCancelled
	default:
		return StatusPending
	}
}

// Sale is an order placed against a tenant's catalog.
type Sale struct {
	ID                    int64
	UserID                int64
	Total                 decimal.Decimal
	Status                Status
	PaymentStatus         PaymentStatus
	PaymentMethod         PaymentMethod
	ExternalTransactionID string
	PaymentLink           string
	QRCode                string
	GatewayPaymentID      string
	CustomerName          string
	CustomerEmail         string
	Notes                 string
	StockCommitted        bool // stock was decremented for this sale
	PaidAt                *time.Time
	CreatedAt             time.Time
	UpdatedAt             *time.Time
	Items                 []*LineItem // loaded on demand
}

// LineItem holds the product name and price as they were when the sale was
// created.
type LineItem struct {
	ID          int64
	SaleID      int64
	ProductID   int64
	ProductName string
	Quantity    int
	UnitPrice   decimal.Decimal
	Subtotal    decimal.Decimal
	CreatedAt   time.Time
}
