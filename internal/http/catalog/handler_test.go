package catalog_test

import (
	"bytes"
	"context"
	"encoding/json"
	"mime/multipart"
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
	catalogHandler "github.com/MrJamesThe3rd/vitrine/internal/http/catalog"
	"github.com/MrJamesThe3rd/vitrine/internal/importer"
)

type passthroughTx struct{}

func (passthroughTx) WithinTx(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

func newRouter(t *testing.T) (http.Handler, *catalog.MockRepository) {
	ctrl := gomock.NewController(t)
	repo := catalog.NewMockRepository(ctrl)

	svc := catalog.NewService(repo, passthroughTx{})
	h := catalogHandler.NewHandler(svc, importer.NewService(svc))

	r := chi.NewRouter()
	r.Use(func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			next.ServeHTTP(w, r.WithContext(auth.WithIdentity(r.Context(), auth.Identity{UserID: 1})))
		})
	})
	r.Route("/produtos", h.ProductRoutes)
	r.Route("/categorias", h.CategoryRoutes)

	return r, repo
}

func TestHandler_CreateProduct(t *testing.T) {
	type testCase struct {
		name       string
		body       string
		setupMock  func(m *catalog.MockRepository)
		wantStatus int
		wantPrice  string
	}

	tests := []testCase{
		{
			name: "Success",
			body: `{"name":"Bolo","price":"12.5","stock":3}`,
			setupMock: func(m *catalog.MockRepository) {
				m.EXPECT().CreateProduct(gomock.Any(), gomock.Any()).
					DoAndReturn(func(_ context.Context, p *catalog.Product) error {
						p.ID = 1
						return nil
					})
			},
			wantStatus: http.StatusCreated,
			wantPrice:  "12.50",
		},
		{
			name:       "NumericPrice",
			body:       `{"name":"Bolo","price":-1,"stock":3}`,
			wantStatus: http.StatusBadRequest,
		},
		{
			name:       "UnknownField",
			body:       `{"name":"Bolo","preco":"1"}`,
			wantStatus: http.StatusBadRequest,
		},
		{
			name:       "EmptyBody",
			body:       ``,
			wantStatus: http.StatusBadRequest,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			router, repo := newRouter(t)
			if tt.setupMock != nil {
				tt.setupMock(repo)
			}

			req := httptest.NewRequest(http.MethodPost, "/produtos", strings.NewReader(tt.body))
			rec := httptest.NewRecorder()
			router.ServeHTTP(rec, req)

			require.Equal(t, tt.wantStatus, rec.Code, rec.Body.String())

			if tt.wantPrice != "" {
				var body map[string]any
				require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
				assert.Equal(t, tt.wantPrice, body["price"])
			}
		})
	}
}

func TestHandler_ListProducts_Filters(t *testing.T) {
	router, repo := newRouter(t)

	repo.EXPECT().ListProducts(gomock.Any(), int64(1), gomock.Any()).
		DoAndReturn(func(_ context.Context, _ int64, f catalog.ProductFilter) ([]*catalog.Product, error) {
			require.NotNil(t, f.CategoryID)
			assert.Equal(t, int64(3), *f.CategoryID)
			require.NotNil(t, f.Featured)
			assert.True(t, *f.Featured)
			assert.Nil(t, f.Available)
			return []*catalog.Product{{ID: 1, Name: "Bolo", Price: decimal.NewFromInt(2)}}, nil
		})

	req := httptest.NewRequest(http.MethodGet, "/produtos?categoria=3&destaque=true", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"price":"2.00"`)
}

func TestHandler_ListProducts_BadFilter(t *testing.T) {
	router, _ := newRouter(t)

	req := httptest.NewRequest(http.MethodGet, "/produtos?destaque=talvez", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestHandler_GetProduct_OtherTenant(t *testing.T) {
	router, repo := newRouter(t)

	repo.EXPECT().GetProduct(gomock.Any(), int64(1), int64(9)).Return(nil, catalog.ErrProductNotFound)

	req := httptest.NewRequest(http.MethodGet, "/produtos/9", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.JSONEq(t, `{"error":"produto não encontrado"}`, rec.Body.String())
}

func multipartFile(t *testing.T, content string) (*bytes.Buffer, string) {
	t.Helper()

	var buf bytes.Buffer

	mw := multipart.NewWriter(&buf)

	fw, err := mw.CreateFormFile("file", "produtos.csv")
	require.NoError(t, err)

	_, err = fw.Write([]byte(content))
	require.NoError(t, err)
	require.NoError(t, mw.Close())

	return &buf, mw.FormDataContentType()
}

func TestHandler_ImportProducts(t *testing.T) {
	router, repo := newRouter(t)

	repo.EXPECT().FindCategoryByName(gomock.Any(), int64(1), "Doces").Return(nil, catalog.ErrCategoryNotFound)
	repo.EXPECT().CreateCategory(gomock.Any(), gomock.Any()).DoAndReturn(func(_ context.Context, c *catalog.Category) error {
		c.ID = 4
		return nil
	})
	repo.EXPECT().GetCategory(gomock.Any(), int64(1), int64(4)).Return(&catalog.Category{ID: 4}, nil).Times(2)
	repo.EXPECT().CreateProduct(gomock.Any(), gomock.Any()).Return(nil).Times(2)

	body, contentType := multipartFile(t, "Nome;Preço;Estoque;Categoria\nBolo;1.234,50;3;Doces\nTorta;10;1;doces\n")

	req := httptest.NewRequest(http.MethodPost, "/produtos/importar", body)
	req.Header.Set("Content-Type", contentType)

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

	var resp struct {
		Imported int `json:"imported"`
		Products []struct {
			Price string `json:"price"`
		} `json:"products"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))

	assert.Equal(t, 2, resp.Imported)
	assert.Equal(t, "1234.50", resp.Products[0].Price)
}

func TestHandler_ImportProducts_MissingFile(t *testing.T) {
	router, _ := newRouter(t)

	var buf bytes.Buffer

	mw := multipart.NewWriter(&buf)
	require.NoError(t, mw.WriteField("other", "x"))
	require.NoError(t, mw.Close())

	req := httptest.NewRequest(http.MethodPost, "/produtos/importar", &buf)
	req.Header.Set("Content-Type", mw.FormDataContentType())

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}
