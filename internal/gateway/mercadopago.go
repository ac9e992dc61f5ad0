package gateway

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/mercadopago/sdk-go/pkg/config"
	"github.com/mercadopago/sdk-go/pkg/payment"
)

// paymentAPI is the part of the Mercado Pago payment client we use.
type paymentAPI interface {
	Create(ctx context.Context, request payment.Request) (*payment.Response, error)
	Get(ctx context.Context, id int) (*payment.Response, error)
}

// methods maps our payment methods to Mercado Pago payment_method_id values.
var methods = map[string]string{
	"pix": "pix",
}

type MercadoPago struct {
	api             paymentAPI
	notificationURL string
	timeout         time.Duration
}

func NewMercadoPago(accessToken, notificationURL string, timeout time.Duration) (*MercadoPago, error) {
	cfg, err := config.New(accessToken)
	if err != nil {
		return nil, fmt.Errorf("configuring mercado pago: %w", err)
	}

	return newMercadoPago(payment.NewClient(cfg), notificationURL, timeout), nil
}

func newMercadoPago(api paymentAPI, notificationURL string, timeout time.Duration) *MercadoPago {
	return &MercadoPago{
		api:             api,
		notificationURL: notificationURL,
		timeout:         timeout,
	}
}

func (m *MercadoPago) Supports(method string) bool {
	_, ok := methods[method]
	return ok
}

func (m *MercadoPago) CreatePayment(ctx context.Context, req PaymentRequest) (*Payment, error) {
	methodID, ok := methods[req.Method]
	if !ok {
		return nil, ErrUnsupportedMethod
	}

	ctx, cancel := context.WithTimeout(ctx, m.timeout)
	defer cancel()

	res, err := m.api.Create(ctx, payment.Request{
		TransactionAmount: req.Amount.InexactFloat64(),
		Description:       req.Description,
		PaymentMethodID:   methodID,
		ExternalReference: req.ExternalID,
		NotificationURL:   m.notificationURL,
		Payer: &payment.PayerRequest{
			Email:     req.PayerEmail,
			FirstName: req.PayerName,
		},
	})
	if err != nil {
		return nil, fmt.Errorf("creating mercado pago payment: %w", err)
	}

	return toPayment(res), nil
}

func (m *MercadoPago) GetPayment(ctx context.Context, id string) (*Payment, error) {
	n, err := strconv.Atoi(id)
	if err != nil {
		return nil, fmt.Errorf("invalid mercado pago payment id %q: %w", id, err)
	}

	ctx, cancel := context.WithTimeout(ctx, m.timeout)
	defer cancel()

	res, err := m.api.Get(ctx, n)
	if err != nil {
		return nil, fmt.Errorf("getting mercado pago payment %d: %w", n, err)
	}

	return toPayment(res), nil
}

func toPayment(res *payment.Response) *Payment {
	p := &Payment{
		ID:                strconv.Itoa(res.ID),
		ExternalReference: res.ExternalReference,
		Status:            res.Status,
		QRCode:            res.PointOfInteraction.TransactionData.QRCode,
		Link:              res.PointOfInteraction.TransactionData.TicketURL,
	}

	return p
}
