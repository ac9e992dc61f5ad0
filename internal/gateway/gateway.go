// Package gateway talks to the external payment provider. Every call is
// bounded by a timeout and none of them runs inside a database transaction.
package gateway

import (
	"context"
	"errors"

	"github.com/shopspring/decimal"
)

var ErrUnsupportedMethod = errors.New("payment method not supported by gateway")

type PaymentRequest struct {
	ExternalID  string
	Method      string
	Amount      decimal.Decimal
	Description string
	PayerEmail  string
	PayerName   string
}

// Payment is the provider's view of a charge. Status is the provider's raw
// status string.
type Payment struct {
	ID                string
	ExternalReference string
	Status            string
	Link              string
	QRCode            string
}

type Client interface {
	Supports(method string) bool
	CreatePayment(ctx context.Context, req PaymentRequest) (*Payment, error)
	GetPayment(ctx context.Context, id string) (*Payment, error)
}
