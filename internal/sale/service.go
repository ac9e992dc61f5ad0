package sale

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/MrJamesThe3rd/vitrine/internal/apperr"
	"github.com/MrJamesThe3rd/vitrine/internal/catalog"
	"github.com/MrJamesThe3rd/vitrine/internal/commission"
	"github.com/MrJamesThe3rd/vitrine/internal/database"
	"github.com/MrJamesThe3rd/vitrine/internal/gateway"
	"github.com/MrJamesThe3rd/vitrine/internal/notify"
	"github.com/MrJamesThe3rd/vitrine/internal/shop"
)

var (
	ErrNotFound          = apperr.New(apperr.ErrNotFound, "venda não encontrada")
	ErrNoItems           = apperr.New(apperr.ErrInvalidInput, "a venda precisa de ao menos um item")
	ErrInvalidQuantity   = apperr.New(apperr.ErrInvalidInput, "a quantidade deve ser maior que zero")
	ErrInvalidMethod     = apperr.New(apperr.ErrInvalidInput, "forma de pagamento inválida")
	ErrInvalidStatus     = apperr.New(apperr.ErrInvalidInput, "status de pagamento inválido")
	ErrInvalidTransition = apperr.New(apperr.ErrInvalidInput, "transição inválida")
)

//go:generate mockgen -source=service.go -destination=repository_mock.go -package=sale
type Repository interface {
	CreateSale(ctx context.Context, s *Sale) error
	CreateItems(ctx context.Context, items []*LineItem) error
	GetSale(ctx context.Context, userID, id int64) (*Sale, error)
	GetByExternalID(ctx context.Context, externalID string) (*Sale, error)
	LockSale(ctx context.Context, id int64) (*Sale, error)
	ListItems(ctx context.Context, saleID int64) ([]*LineItem, error)
	ListSales(ctx context.Context, userID int64, filter ListFilter) ([]*Sale, error)
	UpdateDetails(ctx context.Context, s *Sale) error
	UpdatePayment(ctx context.Context, s *Sale) error
}

type Catalog interface {
	ReserveCheck(ctx context.Context, userID, productID int64, quantity int) (*catalog.Product, error)
	CommitDecrement(ctx context.Context, productID int64, quantity int) error
	Restock(ctx context.Context, productID int64, quantity int) error
}

type Ledger interface {
	Record(ctx context.Context, saleID int64, shopID *int64, userID int64, saleTotal decimal.Decimal) (*commission.Commission, bool, error)
}

type Wallet interface {
	CreditSale(ctx context.Context, userID int64, amount decimal.Decimal) error
	ReverseSale(ctx context.Context, userID int64, amount decimal.Decimal) error
}

type Shops interface {
	GetByOwner(ctx context.Context, ownerID int64) (*shop.Shop, error)
}

type Notifier interface {
	SaleCreated(ctx context.Context, ev notify.Event)
	PaymentApproved(ctx context.Context, ev notify.Event)
}

// Deps are the collaborators of Service. Gateway may be nil.
type Deps struct {
	Repo     Repository
	Catalog  Catalog
	Ledger   Ledger
	Wallet   Wallet
	Shops    Shops
	Gateway  gateway.Client
	Notifier Notifier
	Tx       database.Transactor
}

type Options struct {
	// FallbackBaseURL prefixes the payment link used when the gateway is
	// unavailable.
	FallbackBaseURL string
	// RestockOnReversal returns stock when an approved sale is refunded.
	RestockOnReversal bool
}

type Service struct {
	Deps
	opts Options
	now  func() time.Time
}

func NewService(deps Deps, opts Options) *Service {
	return &Service{Deps: deps, opts: opts, now: time.Now}
}

type ItemParams struct {
	ProductID int64
	Quantity  int
}

type CreateParams struct {
	Items              []ItemParams
	PaymentMethod      PaymentMethod
	Notes              string
	CustomerName       string
	CustomerEmail      string
	RequestPaymentLink bool
}

type ListFilter struct {
	Status        *Status
	PaymentStatus *PaymentStatus
	From          *time.Time
	To            *time.Time
	Limit         int
}

// UpdateParams holds a partial update; nil fields are left untouched.
type UpdateParams struct {
	Notes         *string
	CustomerName  *string
	CustomerEmail *string
}

// CreateSale validates stock for every item and stores a pending sale with
// the current prices locked in. Stock is not touched until the payment is
// approved.
func (s *Service) CreateSale(ctx context.Context, userID int64, params CreateParams) (*Sale, error) {
	if len(params.Items) == 0 {
		return nil, ErrNoItems
	}

	if !params.PaymentMethod.Valid() {
		return nil, ErrInvalidMethod
	}

	quantities, order, err := aggregate(params.Items)
	if err != nil {
		return nil, err
	}

	sale := &Sale{
		UserID:                userID,
		Total:                 decimal.Zero,
		Status:                StatusPending,
		PaymentStatus:         PaymentPending,
		PaymentMethod:         params.PaymentMethod,
		ExternalTransactionID: uuid.NewString(),
		CustomerName:          strings.TrimSpace(params.CustomerName),
		CustomerEmail:         strings.TrimSpace(params.CustomerEmail),
		Notes:                 strings.TrimSpace(params.Notes),
	}

	for _, productID := range order {
		qty := quantities[productID]

		p, err := s.Catalog.ReserveCheck(ctx, userID, productID, qty)
		if err != nil {
			return nil, err
		}

		subtotal := p.Price.Mul(decimal.NewFromInt(int64(qty)))

		sale.Items = append(sale.Items, &LineItem{
			ProductID:   p.ID,
			ProductName: p.Name,
			Quantity:    qty,
			UnitPrice:   p.Price,
			Subtotal:    subtotal,
		})
		sale.Total = sale.Total.Add(subtotal)
	}

	if params.RequestPaymentLink {
		s.attachPaymentLink(ctx, sale)
	}

	err = s.Tx.WithinTx(ctx, func(ctx context.Context) error {
		if err := s.Repo.CreateSale(ctx, sale); err != nil {
			return err
		}

		for _, item := range sale.Items {
			item.SaleID = sale.ID
		}

		return s.Repo.CreateItems(ctx, sale.Items)
	})
	if err != nil {
		return nil, err
	}

	s.Notifier.SaleCreated(ctx, event(sale))

	return sale, nil
}

// aggregate sums the quantities of repeated products, keeping the order in
// which products first appear.
func aggregate(items []ItemParams) (map[int64]int, []int64, error) {
	quantities := make(map[int64]int, len(items))

	var order []int64

	for _, item := range items {
		if item.Quantity <= 0 {
			return nil, nil, ErrInvalidQuantity
		}

		if item.ProductID <= 0 {
			return nil, nil, catalog.ErrProductNotFound
		}

		if _, seen := quantities[item.ProductID]; !seen {
			order = append(order, item.ProductID)
		}

		quantities[item.ProductID] += item.Quantity
	}

	return quantities, order, nil
}

// attachPaymentLink asks the gateway for a payment link and falls back to a
// local link when the gateway is missing, does not support the method, or
// fails.
func (s *Service) attachPaymentLink(ctx context.Context, sale *Sale) {
	method := string(sale.PaymentMethod)

	if s.Gateway != nil && s.Gateway.Supports(method) {
		p, err := s.Gateway.CreatePayment(ctx, gateway.PaymentRequest{
			ExternalID:  sale.ExternalTransactionID,
			Method:      method,
			Amount:      sale.Total,
			Description: fmt.Sprintf("Venda %s", sale.ExternalTransactionID),
			PayerEmail:  sale.CustomerEmail,
			PayerName:   sale.CustomerName,
		})
		if err == nil {
			sale.GatewayPaymentID = p.ID
			sale.PaymentLink = p.Link
			sale.QRCode = p.QRCode
		} else {
			slog.Warn("failed to create gateway payment, using fallback link",
				"external_transaction_id", sale.ExternalTransactionID, "error", err)
		}
	}

	if sale.PaymentLink == "" {
		sale.PaymentLink = fmt.Sprintf("%s/%s/%s",
			strings.TrimRight(s.opts.FallbackBaseURL, "/"), method, sale.ExternalTransactionID)
	}
}

func (s *Service) GetSale(ctx context.Context, userID, id int64) (*Sale, error) {
	sale, err := s.Repo.GetSale(ctx, userID, id)
	if err != nil {
		return nil, err
	}

	sale.Items, err = s.Repo.ListItems(ctx, sale.ID)
	if err != nil {
		return nil, err
	}

	return sale, nil
}

func (s *Service) ListSales(ctx context.Context, userID int64, filter ListFilter) ([]*Sale, error) {
	if filter.Status != nil && !filter.Status.Valid() {
		return nil, apperr.New(apperr.ErrInvalidInput, "status inválido")
	}

	if filter.PaymentStatus != nil && !filter.PaymentStatus.Valid() {
		return nil, ErrInvalidStatus
	}

	return s.Repo.ListSales(ctx, userID, filter)
}

func (s *Service) UpdateSale(ctx context.Context, userID, id int64, params UpdateParams) (*Sale, error) {
	sale, err := s.Repo.GetSale(ctx, userID, id)
	if err != nil {
		return nil, err
	}

	if params.Notes != nil {
		sale.Notes = strings.TrimSpace(*params.Notes)
	}

	if params.CustomerName != nil {
		sale.CustomerName = strings.TrimSpace(*params.CustomerName)
	}

	if params.CustomerEmail != nil {
		sale.CustomerEmail = strings.TrimSpace(*params.CustomerEmail)
	}

	if err := s.Repo.UpdateDetails(ctx, sale); err != nil {
		return nil, err
	}

	return sale, nil
}

func event(sale *Sale) notify.Event {
	return notify.Event{
		SaleID:     sale.ID,
		ExternalID: sale.ExternalTransactionID,
		Total:      sale.Total,
		Method:     string(sale.PaymentMethod),
		Customer:   sale.CustomerName,
	}
}
