package gateway

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/mercadopago/sdk-go/pkg/payment"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeAPI struct {
	created  payment.Request
	deadline bool
	response *payment.Response
	err      error
}

func (f *fakeAPI) Create(ctx context.Context, req payment.Request) (*payment.Response, error) {
	f.created = req
	_, f.deadline = ctx.Deadline()

	return f.response, f.err
}

func (f *fakeAPI) Get(ctx context.Context, id int) (*payment.Response, error) {
	_, f.deadline = ctx.Deadline()

	if f.response != nil && f.response.ID != id {
		return nil, errors.New("not found")
	}

	return f.response, f.err
}

func pixResponse() *payment.Response {
	res := &payment.Response{
		ID:                123,
		Status:            "pending",
		ExternalReference: "ext-1",
	}
	res.PointOfInteraction.TransactionData.QRCode = "00020126...pix"
	res.PointOfInteraction.TransactionData.TicketURL = "https://mp.example/ticket/123"

	return res
}

func TestMercadoPago_CreatePayment(t *testing.T) {
	api := &fakeAPI{response: pixResponse()}
	mp := newMercadoPago(api, "https://api.vitrine.app/pagamentos/webhook", time.Second)

	got, err := mp.CreatePayment(context.Background(), PaymentRequest{
		ExternalID:  "ext-1",
		Method:      "pix",
		Amount:      decimal.RequireFromString("35.00"),
		Description: "Venda ext-1",
		PayerEmail:  "cliente@x.com",
	})
	require.NoError(t, err)

	assert.Equal(t, "123", got.ID)
	assert.Equal(t, "00020126...pix", got.QRCode)
	assert.Equal(t, "https://mp.example/ticket/123", got.Link)

	assert.InDelta(t, 35.0, api.created.TransactionAmount, 0.001)
	assert.Equal(t, "pix", api.created.PaymentMethodID)
	assert.Equal(t, "ext-1", api.created.ExternalReference)
	assert.Equal(t, "https://api.vitrine.app/pagamentos/webhook", api.created.NotificationURL)
	assert.True(t, api.deadline)
}

func TestMercadoPago_CreatePayment_Unsupported(t *testing.T) {
	mp := newMercadoPago(&fakeAPI{}, "", time.Second)

	assert.False(t, mp.Supports("cash"))
	assert.True(t, mp.Supports("pix"))

	_, err := mp.CreatePayment(context.Background(), PaymentRequest{Method: "cash"})
	assert.ErrorIs(t, err, ErrUnsupportedMethod)
}

func TestMercadoPago_CreatePayment_ProviderError(t *testing.T) {
	mp := newMercadoPago(&fakeAPI{err: errors.New("401 unauthorized")}, "", time.Second)

	_, err := mp.CreatePayment(context.Background(), PaymentRequest{Method: "pix", Amount: decimal.NewFromInt(1)})
	assert.ErrorContains(t, err, "401 unauthorized")
}

func TestMercadoPago_GetPayment(t *testing.T) {
	res := pixResponse()
	res.Status = "approved"

	api := &fakeAPI{response: res}
	mp := newMercadoPago(api, "", time.Second)

	got, err := mp.GetPayment(context.Background(), "123")
	require.NoError(t, err)
	assert.Equal(t, "approved", got.Status)
	assert.Equal(t, "ext-1", got.ExternalReference)
	assert.True(t, api.deadline)

	_, err = mp.GetPayment(context.Background(), "abc")
	assert.Error(t, err)
}
