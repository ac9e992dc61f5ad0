package shop

import (
	"time"

	"github.com/shopspring/decimal"
)

// Shop is the storefront configuration of one owner.
type Shop struct {
	ID          int64
	OwnerID     int64
	Name        string
	Description string
	Phone       string
	LogoURL     string
	CreatedAt   time.Time
	UpdatedAt   *time.Time
}

type CredentialType string

const (
	CredentialWallet      CredentialType = "wallet"
	CredentialMercadoPago CredentialType = "mercadopago"
)

// GatewayCredential is the payout identity a shop uses with one provider.
type GatewayCredential struct {
	ID         int64
	ShopID     int64
	Type       CredentialType
	HolderName string
	Document   string
	PixKey     string
	PixKeyType string
	Configured bool
	Active     bool
	CreatedAt  time.Time
	UpdatedAt  *time.Time
}

// Summary is a shop with its owner and sales figures, as listed to the
// super-admin.
type Summary struct {
	Shop           Shop
	OwnerName      string
	OwnerEmail     string
	SalesCount     int
	ApprovedCount  int
	ApprovedAmount decimal.Decimal
}
