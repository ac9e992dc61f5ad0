package sale

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/MrJamesThe3rd/vitrine/internal/apperr"
	"github.com/MrJamesThe3rd/vitrine/internal/auth"
	"github.com/MrJamesThe3rd/vitrine/internal/http/respond"
	"github.com/MrJamesThe3rd/vitrine/internal/sale"
)

type Handler struct {
	svc           *sale.Service
	webhookSecret string
}

func NewHandler(svc *sale.Service, webhookSecret string) *Handler {
	return &Handler{svc: svc, webhookSecret: webhookSecret}
}

// SaleRoutes are mounted under /vendas.
func (h *Handler) SaleRoutes(r chi.Router) {
	r.Get("/", h.list)
	r.Post("/", h.create(false))
	r.Get("/{id}", h.get)
	r.Put("/{id}", h.update)
}

// PaymentRoutes are mounted under /pagamentos. Creating a payment is creating
// a sale with a payment link.
func (h *Handler) PaymentRoutes(r chi.Router) {
	r.Get("/", h.list)
	r.Post("/", h.create(true))
	r.Get("/{id}", h.get)
	r.Put("/{id}", h.updatePayment)
}

// WebhookRoutes are mounted under /pagamentos without authentication.
func (h *Handler) WebhookRoutes(r chi.Router) {
	r.Post("/webhook", h.webhook)
}

func (h *Handler) list(w http.ResponseWriter, r *http.Request) {
	filter, err := parseListFilter(r)
	if err != nil {
		respond.Error(w, r, err)
		return
	}

	sales, err := h.svc.ListSales(r.Context(), auth.UserID(r.Context()), filter)
	if err != nil {
		respond.Error(w, r, err)
		return
	}

	respond.JSON(w, http.StatusOK, toResponseList(sales))
}

func parseListFilter(r *http.Request) (sale.ListFilter, error) {
	var filter sale.ListFilter

	q := r.URL.Query()

	if s := q.Get("status"); s != "" {
		{
			v := sale.Status(s)
			filter.Status = &v
		}
	}

	if s := q.Get("payment_status"); s != "" {
		{
			v := sale.PaymentStatus(s)
			filter.PaymentStatus = &v
		}
	}

	if s := q.Get("data_inicio"); s != "" {
		t, err := time.Parse(time.DateOnly, s)
		if err != nil {
			return filter, apperr.New(apperr.ErrInvalidInput, "data_inicio inválida, use AAAA-MM-DD")
		}

		filter.From = &t
	}

	// data_fim is inclusive.
	if s := q.Get("data_fim"); s != "" {
		t, err := time.Parse(time.DateOnly, s)
		if err != nil {
			return filter, apperr.New(apperr.ErrInvalidInput, "data_fim inválida, use AAAA-MM-DD")
		}

		{
			v := t.AddDate(0, 0, 1)
			filter.To = &v
		}
	}

	limit, err := respond.QueryInt(r, "limit")
	if err != nil {
		return filter, err
	}

	filter.Limit = int(limit)

	return filter, nil
}

type itemRequest struct {
	ProductID int64 `json:"product_id"`
	Quantity  int   `json:"quantity"`
}

type createRequest struct {
	Items              []itemRequest      `json:"items"`
	PaymentMethod      sale.PaymentMethod `json:"payment_method"`
	Notes              string             `json:"notes"`
	CustomerName       string             `json:"customer_name"`
	CustomerEmail      string             `json:"customer_email"`
	RequestPaymentLink bool               `json:"request_payment_link"`
}

func (h *Handler) create(withLink bool) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req createRequest
		if err := respond.Decode(r, &req); err != nil {
			respond.Error(w, r, err)
			return
		}

		params := sale.CreateParams{
			Items:              make([]sale.ItemParams, len(req.Items)),
			PaymentMethod:      req.PaymentMethod,
			Notes:              req.Notes,
			CustomerName:       req.CustomerName,
			CustomerEmail:      req.CustomerEmail,
			RequestPaymentLink: withLink || req.RequestPaymentLink,
		}

		for i, item := range req.Items {
			params.Items[i] = sale.ItemParams{ProductID: item.ProductID, Quantity: item.Quantity}
		}

		s, err := h.svc.CreateSale(r.Context(), auth.UserID(r.Context()), params)
		if err != nil {
			respond.Error(w, r, err)
			return
		}

		respond.JSON(w, http.StatusCreated, toResponse(s))
	}
}

func (h *Handler) get(w http.ResponseWriter, r *http.Request) {
	id, err := respond.IDParam(r, "id")
	if err != nil {
		respond.Error(w, r, err)
		return
	}

	s, err := h.svc.GetSale(r.Context(), auth.UserID(r.Context()), id)
	if err != nil {
		respond.Error(w, r, err)
		return
	}

	respond.JSON(w, http.StatusOK, toResponse(s))
}

type updateRequest struct {
	PaymentStatus    *sale.PaymentStatus `json:"payment_status,omitempty"`
	GatewayPaymentID *string             `json:"gateway_payment_id,omitempty"`
	Notes            *string             `json:"notes,omitempty"`
	CustomerName     *string             `json:"customer_name,omitempty"`
	CustomerEmail    *string             `json:"customer_email,omitempty"`
}

// update edits the sale details and, when payment_status is present, moves
// the sale through the payment state machine.
func (h *Handler) update(w http.ResponseWriter, r *http.Request) {
	id, err := respond.IDParam(r, "id")
	if err != nil {
		respond.Error(w, r, err)
		return
	}

	var req updateRequest
	if err := respond.Decode(r, &req); err != nil {
		respond.Error(w, r, err)
		return
	}

	userID := auth.UserID(r.Context())

	if req.CustomerName != nil || req.CustomerEmail != nil || (req.Notes != nil && req.PaymentStatus == nil) {
		_, err := h.svc.UpdateSale(r.Context(), userID, id, sale.UpdateParams{
			Notes:         req.Notes,
			CustomerName:  req.CustomerName,
			CustomerEmail: req.CustomerEmail,
		})
		if err != nil {
			respond.Error(w, r, err)
			return
		}
	}

	if req.PaymentStatus != nil {
		_, err := h.svc.SetPaymentStatus(r.Context(), userID, id, *req.PaymentStatus, sale.TransitionParams{
			Notes:            req.Notes,
			GatewayPaymentID: req.GatewayPaymentID,
		})
		if err != nil {
			respond.Error(w, r, err)
			return
		}
	}

	h.get(w, r)
}

type updatePaymentRequest struct {
	PaymentStatus    sale.PaymentStatus `json:"payment_status"`
	GatewayPaymentID *string            `json:"gateway_payment_id,omitempty"`
	Notes            *string            `json:"notes,omitempty"`
}

func (h *Handler) updatePayment(w http.ResponseWriter, r *http.Request) {
	id, err := respond.IDParam(r, "id")
	if err != nil {
		respond.Error(w, r, err)
		return
	}

	var req updatePaymentRequest
	if err := respond.Decode(r, &req); err != nil {
		respond.Error(w, r, err)
		return
	}

	if req.PaymentStatus == "" {
		respond.Error(w, r, apperr.New(apperr.ErrInvalidInput, "payment_status é obrigatório"))
		return
	}

	_, err = h.svc.SetPaymentStatus(r.Context(), auth.UserID(r.Context()), id, req.PaymentStatus, sale.TransitionParams{
		Notes:            req.Notes,
		GatewayPaymentID: req.GatewayPaymentID,
	})
	if err != nil {
		respond.Error(w, r, err)
		return
	}

	h.get(w, r)
}
