package http_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/MrJamesThe3rd/vitrine/internal/admin"
	"github.com/MrJamesThe3rd/vitrine/internal/auth"
	"github.com/MrJamesThe3rd/vitrine/internal/catalog"
	vitrineHttp "github.com/MrJamesThe3rd/vitrine/internal/http"
	adminHandler "github.com/MrJamesThe3rd/vitrine/internal/http/admin"
	catalogHandler "github.com/MrJamesThe3rd/vitrine/internal/http/catalog"
	saleHandler "github.com/MrJamesThe3rd/vitrine/internal/http/sale"
	shopHandler "github.com/MrJamesThe3rd/vitrine/internal/http/shop"
	userHandler "github.com/MrJamesThe3rd/vitrine/internal/http/user"
	walletHandler "github.com/MrJamesThe3rd/vitrine/internal/http/wallet"
	"github.com/MrJamesThe3rd/vitrine/internal/importer"
	"github.com/MrJamesThe3rd/vitrine/internal/sale"
	"github.com/MrJamesThe3rd/vitrine/internal/shop"
	"github.com/MrJamesThe3rd/vitrine/internal/user"
	"github.com/MrJamesThe3rd/vitrine/internal/wallet"
)

type passthroughTx struct{}

func (passthroughTx) WithinTx(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

// admins treats user 1 as the only super-admin.
type admins struct{}

func (admins) IsSuperAdmin(_ context.Context, id int64) (bool, error) {
	return id == 1, nil
}

func newRouter(t *testing.T) (http.Handler, *auth.Tokens) {
	ctrl := gomock.NewController(t)
	tokens := auth.NewTokens("router-secret", time.Hour, "vitrine-test")
	tx := passthroughTx{}

	userSvc := user.NewService(user.NewMockRepository(ctrl))
	catalogSvc := catalog.NewService(catalog.NewMockRepository(ctrl), tx)
	shopSvc := shop.NewService(shop.NewMockRepository(ctrl), shop.NewMockOwners(ctrl), tx)
	walletSvc := wallet.NewService(wallet.NewMockRepository(ctrl), wallet.NewMockSalesLedger(ctrl),
		wallet.NewMockAdminChecker(ctrl), wallet.NewMockShops(ctrl), tx)
	adminSvc := admin.NewService(admin.NewMockAdmins(ctrl), admin.NewMockShops(ctrl), admin.NewMockCommissions(ctrl), walletSvc)
	saleSvc := sale.NewService(sale.Deps{
		Repo:     sale.NewMockRepository(ctrl),
		Catalog:  sale.NewMockCatalog(ctrl),
		Ledger:   sale.NewMockLedger(ctrl),
		Wallet:   sale.NewMockWallet(ctrl),
		Shops:    sale.NewMockShops(ctrl),
		Notifier: sale.NewMockNotifier(ctrl),
		Tx:       tx,
	}, sale.Options{})

	router := vitrineHttp.New(vitrineHttp.Options{
		AllowedOrigins: []string{"https://painel.example.com"},
		CookieName:     "token",
	}, tokens, admins{}, vitrineHttp.Handlers{
		User:    userHandler.NewHandler(userSvc, tokens, userHandler.CookieConfig{Name: "token"}),
		Catalog: catalogHandler.NewHandler(catalogSvc, importer.NewService(catalogSvc)),
		Sale:    saleHandler.NewHandler(saleSvc, "webhook-secret"),
		Wallet:  walletHandler.NewHandler(walletSvc, adminSvc),
		Shop:    shopHandler.NewHandler(shopSvc),
		Admin:   adminHandler.NewHandler(adminSvc),
	})

	return router, tokens
}

func bearer(t *testing.T, tokens *auth.Tokens, userID int64) string {
	t.Helper()

	token, _, err := tokens.Issue(auth.Identity{UserID: userID, Email: "user@example.com"})
	require.NoError(t, err)

	return "Bearer " + token
}

func TestRouter(t *testing.T) {
	type testCase struct {
		name       string
		method     string
		path       string
		userID     int64
		header     map[string]string
		body       string
		wantStatus int
	}

	tests := []testCase{
		{name: "Health", method: http.MethodGet, path: "/health", wantStatus: http.StatusOK},
		{name: "ProductsNeedToken", method: http.MethodGet, path: "/produtos", wantStatus: http.StatusUnauthorized},
		{name: "SalesNeedToken", method: http.MethodGet, path: "/vendas", wantStatus: http.StatusUnauthorized},
		{name: "PaymentsNeedToken", method: http.MethodGet, path: "/pagamentos", wantStatus: http.StatusUnauthorized},
		{name: "AdminNeedsToken", method: http.MethodGet, path: "/admin/lojas", wantStatus: http.StatusUnauthorized},
		{name: "AdminForbidden", method: http.MethodGet, path: "/admin/lojas", userID: 2, wantStatus: http.StatusForbidden},
		{
			name:       "WebhookIsPublicButChecksSecret",
			method:     http.MethodPost,
			path:       "/pagamentos/webhook",
			body:       `{"external_transaction_id":"ext-1","status":"approved"}`,
			wantStatus: http.StatusUnauthorized,
		},
		{
			name:   "Preflight",
			method: http.MethodOptions,
			path:   "/produtos",
			header: map[string]string{
				"Origin":                        "https://painel.example.com",
				"Access-Control-Request-Method": "POST",
			},
			wantStatus: http.StatusOK,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			router, tokens := newRouter(t)

			req := httptest.NewRequest(tt.method, tt.path, strings.NewReader(tt.body))
			if tt.userID != 0 {
				req.Header.Set("Authorization", bearer(t, tokens, tt.userID))
			}

			for k, v := range tt.header {
				req.Header.Set(k, v)
			}

			rec := httptest.NewRecorder()
			router.ServeHTTP(rec, req)

			assert.Equal(t, tt.wantStatus, rec.Code, rec.Body.String())
		})
	}
}
