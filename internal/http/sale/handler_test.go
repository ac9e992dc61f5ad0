package sale_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/MrJamesThe3rd/vitrine/internal/auth"
	"github.com/MrJamesThe3rd/vitrine/internal/catalog"
	saleHandler "github.com/MrJamesThe3rd/vitrine/internal/http/sale"
	"github.com/MrJamesThe3rd/vitrine/internal/sale"
)

type passthroughTx struct{}

func (passthroughTx) WithinTx(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

type mocks struct {
	repo     *sale.MockRepository
	catalog  *sale.MockCatalog
	wallet   *sale.MockWallet
	notifier *sale.MockNotifier
}

func newRouter(t *testing.T, secret string) (http.Handler, mocks) {
	ctrl := gomock.NewController(t)

	m := mocks{
		repo:     sale.NewMockRepository(ctrl),
		catalog:  sale.NewMockCatalog(ctrl),
		wallet:   sale.NewMockWallet(ctrl),
		notifier: sale.NewMockNotifier(ctrl),
	}

	svc := sale.NewService(sale.Deps{
		Repo:     m.repo,
		Catalog:  m.catalog,
		Ledger:   sale.NewMockLedger(ctrl),
		Wallet:   m.wallet,
		Shops:    sale.NewMockShops(ctrl),
		Notifier: m.notifier,
		Tx:       passthroughTx{},
	}, sale.Options{FallbackBaseURL: "https://pay.test"})

	h := saleHandler.NewHandler(svc, secret)

	r := chi.NewRouter()
	r.Route("/pagamentos", func(r chi.Router) {
		h.WebhookRoutes(r)

		r.Group(func(r chi.Router) {
			r.Use(withUser(1))
			h.PaymentRoutes(r)
		})
	})
	r.Route("/vendas", func(r chi.Router) {
		r.Use(withUser(1))
		h.SaleRoutes(r)
	})

	return r, m
}

func withUser(id int64) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			next.ServeHTTP(w, r.WithContext(auth.WithIdentity(r.Context(), auth.Identity{UserID: id})))
		})
	}
}

func do(t *testing.T, h http.Handler, method, path, body string, header map[string]string) *httptest.ResponseRecorder {
	t.Helper()

	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")

	for k, v := range header {
		req.Header.Set(k, v)
	}

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	return rec
}

func pendingSale() *sale.Sale {
	return &sale.Sale{
		ID:                    5,
		UserID:                1,
		Total:                 decimal.RequireFromString("35"),
		Status:                sale.StatusPending,
		PaymentStatus:         sale.PaymentPending,
		PaymentMethod:         sale.MethodPix,
		ExternalTransactionID: "ext-5",
	}
}

func TestHandler_CreatePayment(t *testing.T) {
	router, m := newRouter(t, "")

	m.catalog.EXPECT().ReserveCheck(gomock.Any(), int64(1), int64(10), 2).Return(&catalog.Product{
		ID: 10, Name: "Bolo", Price: decimal.RequireFromString("17.5"), Stock: 4, AvailableForSale: true,
	}, nil)
	m.repo.EXPECT().CreateSale(gomock.Any(), gomock.Any()).DoAndReturn(func(_ context.Context, s *sale.Sale) error {
		s.ID = 5
		return nil
	})
	m.repo.EXPECT().CreateItems(gomock.Any(), gomock.Any()).Return(nil)
	m.notifier.EXPECT().SaleCreated(gomock.Any(), gomock.Any())

	rec := do(t, router, http.MethodPost, "/pagamentos",
		`{"items":[{"product_id":10,"quantity":2}],"payment_method":"pix"}`, nil)

	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

	var body map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))

	assert.Equal(t, "35.00", body["total"])
	assert.Equal(t, "pending", body["payment_status"])
	assert.True(t, strings.HasPrefix(body["payment_link"].(string), "https://pay.test/pix/"))
}

func TestHandler_CreateSale_UnknownField(t *testing.T) {
	router, _ := newRouter(t, "")

	rec := do(t, router, http.MethodPost, "/vendas",
		`{"items":[{"product_id":10,"quantity":2}],"payment_method":"pix","discount":5}`, nil)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestHandler_UpdatePayment(t *testing.T) {
	type testCase struct {
		name       string
		body       string
		setupMock  func(m mocks)
		wantStatus int
	}

	tests := []testCase{
		{
			name: "Reject",
			body: `{"payment_status":"rejected"}`,
			setupMock: func(m mocks) {
				m.repo.EXPECT().LockSale(gomock.Any(), int64(5)).Return(pendingSale(), nil)
				m.repo.EXPECT().ListItems(gomock.Any(), int64(5)).Return([]*sale.LineItem{}, nil)
				m.repo.EXPECT().UpdatePayment(gomock.Any(), gomock.Any()).Return(nil)

				rejected := pendingSale()
				rejected.PaymentStatus = sale.PaymentRejected
				rejected.Status = sale.StatusCancelled
				m.repo.EXPECT().GetSale(gomock.Any(), int64(1), int64(5)).Return(rejected, nil)
				m.repo.EXPECT().ListItems(gomock.Any(), int64(5)).Return([]*sale.LineItem{}, nil)
			},
			wantStatus: http.StatusOK,
		},
		{
			name: "InvalidTransition",
			body: `{"payment_status":"refunded"}`,
			setupMock: func(m mocks) {
				m.repo.EXPECT().LockSale(gomock.Any(), int64(5)).Return(pendingSale(), nil)
			},
			wantStatus: http.StatusBadRequest,
		},
		{
			name:       "MissingStatus",
			body:       `{}`,
			wantStatus: http.StatusBadRequest,
		},
		{
			name: "OtherTenant",
			body: `{"payment_status":"approved"}`,
			setupMock: func(m mocks) {
				s := pendingSale()
				s.UserID = 2
				m.repo.EXPECT().LockSale(gomock.Any(), int64(5)).Return(s, nil)
			},
			wantStatus: http.StatusNotFound,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			router, m := newRouter(t, "")
			if tt.setupMock != nil {
				tt.setupMock(m)
			}

			rec := do(t, router, http.MethodPut, "/pagamentos/5", tt.body, nil)

			assert.Equal(t, tt.wantStatus, rec.Code, rec.Body.String())
		})
	}
}

func TestHandler_ListSales_BadDate(t *testing.T) {
	router, _ := newRouter(t, "")

	rec := do(t, router, http.MethodGet, "/vendas?data_inicio=01/02/2025", "", nil)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestHandler_ListSales_InclusiveEndDate(t *testing.T) {
	router, m := newRouter(t, "")

	m.repo.EXPECT().ListSales(gomock.Any(), int64(1), gomock.Any()).
		DoAndReturn(func(_ context.Context, _ int64, f sale.ListFilter) ([]*sale.Sale, error) {
			require.NotNil(t, f.To)
			assert.Equal(t, "2025-03-02", f.To.Format("2006-01-02"))
			assert.Equal(t, 10, f.Limit)
			return []*sale.Sale{}, nil
		})

	rec := do(t, router, http.MethodGet, "/vendas?data_fim=2025-03-01&limit=10", "", nil)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `[]`, rec.Body.String())
}

func TestHandler_Webhook(t *testing.T) {
	type testCase struct {
		name       string
		secret     string
		header     map[string]string
		body       string
		setupMock  func(m mocks)
		wantStatus int
	}

	tests := []testCase{
		{
			name:       "WrongSecret",
			secret:     "s3cret",
			header:     map[string]string{"X-Webhook-Secret": "nope"},
			body:       `{"external_transaction_id":"ext-5","status":"rejected"}`,
			wantStatus: http.StatusUnauthorized,
		},
		{
			name:   "Rejected",
			secret: "s3cret",
			header: map[string]string{"X-Webhook-Secret": "s3cret"},
			body:   `{"external_transaction_id":"ext-5","status":"rejected"}`,
			setupMock: func(m mocks) {
				m.repo.EXPECT().GetByExternalID(gomock.Any(), "ext-5").Return(pendingSale(), nil)
				m.repo.EXPECT().LockSale(gomock.Any(), int64(5)).Return(pendingSale(), nil)
				m.repo.EXPECT().ListItems(gomock.Any(), int64(5)).Return([]*sale.LineItem{}, nil)
				m.repo.EXPECT().UpdatePayment(gomock.Any(), gomock.Any()).Return(nil)
			},
			wantStatus: http.StatusOK,
		},
		{
			name:       "MissingSecret",
			secret:     "s3cret",
			body:       `{"external_transaction_id":"ext-5","status":"approved"}`,
			wantStatus: http.StatusUnauthorized,
		},
		{
			// Without a configured secret a pushed status can never be trusted.
			name:       "StatusWithoutConfiguredSecret",
			header:     map[string]string{"X-Webhook-Secret": ""},
			body:       `{"external_transaction_id":"ext-5","status":"approved"}`,
			wantStatus: http.StatusUnauthorized,
		},
		{
			name:   "UnknownSale",
			secret: "s3cret",
			header: map[string]string{"X-Webhook-Secret": "s3cret"},
			body:   `{"external_transaction_id":"missing","status":"approved"}`,
			setupMock: func(m mocks) {
				m.repo.EXPECT().GetByExternalID(gomock.Any(), "missing").Return(nil, sale.ErrNotFound)
			},
			wantStatus: http.StatusNotFound,
		},
		{
			name:       "GatewayTopicNeedsNoSecret",
			secret:     "s3cret",
			body:       `{"type":"merchant_order","data":{"id":123},"live_mode":true}`,
			wantStatus: http.StatusOK,
		},
		{
			name:       "IgnoresOtherTopics",
			body:       `{"type":"merchant_order","data":{"id":"123"}}`,
			wantStatus: http.StatusOK,
		},
		{
			name:       "Empty",
			body:       ``,
			wantStatus: http.StatusBadRequest,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			router, m := newRouter(t, tt.secret)
			if tt.setupMock != nil {
				tt.setupMock(m)
			}

			rec := do(t, router, http.MethodPost, "/pagamentos/webhook", tt.body, tt.header)

			assert.Equal(t, tt.wantStatus, rec.Code, rec.Body.String())
		})
	}
}
