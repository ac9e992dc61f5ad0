package catalog

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/shopspring/decimal"

	"github.com/MrJamesThe3rd/vitrine/internal/apperr"
	"github.com/MrJamesThe3rd/vitrine/internal/auth"
	"github.com/MrJamesThe3rd/vitrine/internal/catalog"
	"github.com/MrJamesThe3rd/vitrine/internal/http/respond"
	"github.com/MrJamesThe3rd/vitrine/internal/importer"
)

const maxUploadBytes = 10 << 20

type Handler struct {
	svc      *catalog.Service
	importer *importer.Service
}

func NewHandler(svc *catalog.Service, importSvc *importer.Service) *Handler {
	return &Handler{svc: svc, importer: importSvc}
}

func (h *Handler) ProductRoutes(r chi.Router) {
	r.Get("/", h.listProducts)
	r.Post("/", h.createProduct)
	r.Post("/importar", h.importProducts)
	r.Get("/{id}", h.getProduct)
	r.Put("/{id}", h.updateProduct)
	r.Delete("/{id}", h.deleteProduct)
}

func (h *Handler) CategoryRoutes(r chi.Router) {
	r.Get("/", h.listCategories)
	r.Post("/", h.createCategory)
	r.Get("/{id}", h.getCategory)
	r.Put("/{id}", h.updateCategory)
	r.Delete("/{id}", h.deleteCategory)
}

func (h *Handler) listProducts(w http.ResponseWriter, r *http.Request) {
	var filter catalog.ProductFilter

	categoryID, err := respond.QueryInt(r, "categoria")
	if err != nil {
		respond.Error(w, r, err)
		return
	}

	if categoryID > 0 {
		filter.CategoryID = &categoryID
	}

	if filter.Featured, err = respond.QueryBool(r, "destaque"); err != nil {
		respond.Error(w, r, err)
		return
	}

	if filter.Available, err = respond.QueryBool(r, "disponivel"); err != nil {
		respond.Error(w, r, err)
		return
	}

	limit, err := respond.QueryInt(r, "limit")
	if err != nil {
		respond.Error(w, r, err)
		return
	}

	filter.Limit = int(limit)

	products, err := h.svc.ListProducts(r.Context(), auth.UserID(r.Context()), filter)
	if err != nil {
		respond.Error(w, r, err)
		return
	}

	respond.JSON(w, http.StatusOK, toProductList(products))
}

func (h *Handler) getProduct(w http.ResponseWriter, r *http.Request) {
	id, err := respond.IDParam(r, "id")
	if err != nil {
		respond.Error(w, r, err)
		return
	}

	p, err := h.svc.GetProduct(r.Context(), auth.UserID(r.Context()), id)
	if err != nil {
		respond.Error(w, r, err)
		return
	}

	respond.JSON(w, http.StatusOK, toProductResponse(p))
}

type createProductRequest struct {
	CategoryID       *int64          `json:"category_id"`
	Name             string          `json:"name"`
	Description      string          `json:"description"`
	Price            decimal.Decimal `json:"price"`
	Stock            int             `json:"stock"`
	AvailableForSale *bool           `json:"available_for_sale"`
	Featured         bool            `json:"featured"`
}

func (h *Handler) createProduct(w http.ResponseWriter, r *http.Request) {
	var req createProductRequest
	if err := respond.Decode(r, &req); err != nil {
		respond.Error(w, r, err)
		return
	}

	p, err := h.svc.CreateProduct(r.Context(), auth.UserID(r.Context()), catalog.ProductParams{
		CategoryID:       req.CategoryID,
		Name:             req.Name,
		Description:      req.Description,
		Price:            req.Price,
		Stock:            req.Stock,
		AvailableForSale: req.AvailableForSale,
		Featured:         req.Featured,
	})
	if err != nil {
		respond.Error(w, r, err)
		return
	}

	respond.JSON(w, http.StatusCreated, toProductResponse(p))
}

type updateProductRequest struct {
	CategoryID       *int64           `json:"category_id,omitempty"`
	ClearCategory    bool             `json:"clear_category,omitempty"`
	Name             *string          `json:"name,omitempty"`
	Description      *string          `json:"description,omitempty"`
	Price            *decimal.Decimal `json:"price,omitempty"`
	Stock            *int             `json:"stock,omitempty"`
	AvailableForSale *bool            `json:"available_for_sale,omitempty"`
	Featured         *bool            `json:"featured,omitempty"`
}

func (h *Handler) updateProduct(w http.ResponseWriter, r *http.Request) {
	id, err := respond.IDParam(r, "id")
	if err != nil {
		respond.Error(w, r, err)
		return
	}

	var req updateProductRequest
	if err := respond.Decode(r, &req); err != nil {
		respond.Error(w, r, err)
		return
	}

	p, err := h.svc.UpdateProduct(r.Context(), auth.UserID(r.Context()), id, catalog.ProductUpdate{
		CategoryID:       req.CategoryID,
		ClearCategory:    req.ClearCategory,
		Name:             req.Name,
		Description:      req.Description,
		Price:            req.Price,
		Stock:            req.Stock,
		AvailableForSale: req.AvailableForSale,
		Featured:         req.Featured,
	})
	if err != nil {
		respond.Error(w, r, err)
		return
	}

	respond.JSON(w, http.StatusOK, toProductResponse(p))
}

func (h *Handler) deleteProduct(w http.ResponseWriter, r *http.Request) {
	id, err := respond.IDParam(r, "id")
	if err != nil {
		respond.Error(w, r, err)
		return
	}

	if err := h.svc.DeleteProduct(r.Context(), auth.UserID(r.Context()), id); err != nil {
		respond.Error(w, r, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) importProducts(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, maxUploadBytes)

	if err := r.ParseMultipartForm(maxUploadBytes); err != nil {
		respond.Error(w, r, apperr.New(apperr.ErrInvalidInput, "formulário inválido"))
		return
	}

	file, _, err := r.FormFile("file")
	if err != nil {
		respond.Error(w, r, apperr.New(apperr.ErrInvalidInput, "o campo file é obrigatório"))
		return
	}
	defer file.Close()

	products, err := h.importer.Import(r.Context(), auth.UserID(r.Context()), file)
	if err != nil {
		respond.Error(w, r, err)
		return
	}

	respond.JSON(w, http.StatusCreated, importResponse{
		Imported: len(products),
		Products: toProductList(products),
	})
}

func (h *Handler) listCategories(w http.ResponseWriter, r *http.Request) {
	active, err := respond.QueryBool(r, "ativo")
	if err != nil {
		respond.Error(w, r, err)
		return
	}

	categories, err := h.svc.ListCategories(r.Context(), auth.UserID(r.Context()), catalog.CategoryFilter{Active: active})
	if err != nil {
		respond.Error(w, r, err)
		return
	}

	respond.JSON(w, http.StatusOK, toCategoryList(categories))
}

func (h *Handler) getCategory(w http.ResponseWriter, r *http.Request) {
	id, err := respond.IDParam(r, "id")
	if err != nil {
		respond.Error(w, r, err)
		return
	}

	c, err := h.svc.GetCategory(r.Context(), auth.UserID(r.Context()), id)
	if err != nil {
		respond.Error(w, r, err)
		return
	}

	respond.JSON(w, http.StatusOK, toCategoryResponse(c))
}

type categoryRequest struct {
	Name        string `json:"name"`
	Description string `json:"description"`
	Active      *bool  `json:"active"`
}

func (h *Handler) createCategory(w http.ResponseWriter, r *http.Request) {
	var req categoryRequest
	if err := respond.Decode(r, &req); err != nil {
		respond.Error(w, r, err)
		return
	}

	c, err := h.svc.CreateCategory(r.Context(), auth.UserID(r.Context()), catalog.CategoryParams{
		Name:        req.Name,
		Description: req.Description,
		Active:      req.Active,
	})
	if err != nil {
		respond.Error(w, r, err)
		return
	}

	respond.JSON(w, http.StatusCreated, toCategoryResponse(c))
}

type updateCategoryRequest struct {
	Name        *string `json:"name,omitempty"`
	Description *string `json:"description,omitempty"`
	Active      *bool   `json:"active,omitempty"`
}

func (h *Handler) updateCategory(w http.ResponseWriter, r *http.Request) {
	id, err := respond.IDParam(r, "id")
	if err != nil {
		respond.Error(w, r, err)
		return
	}

	var req updateCategoryRequest
	if err := respond.Decode(r, &req); err != nil {
		respond.Error(w, r, err)
		return
	}

	c, err := h.svc.UpdateCategory(r.Context(), auth.UserID(r.Context()), id, catalog.CategoryUpdate{
		Name:        req.Name,
		Description: req.Description,
		Active:      req.Active,
	})
	if err != nil {
		respond.Error(w, r, err)
		return
	}

	respond.JSON(w, http.StatusOK, toCategoryResponse(c))
}

func (h *Handler) deleteCategory(w http.ResponseWriter, r *http.Request) {
	id, err := respond.IDParam(r, "id")
	if err != nil {
		respond.Error(w, r, err)
		return
	}

	if err := h.svc.DeleteCategory(r.Context(), auth.UserID(r.Context()), id); err != nil {
		respond.Error(w, r, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
