package wallet

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/shopspring/decimal"

	"github.com/MrJamesThe3rd/vitrine/internal/admin"
	"github.com/MrJamesThe3rd/vitrine/internal/auth"
	"github.com/MrJamesThe3rd/vitrine/internal/http/respond"
	"github.com/MrJamesThe3rd/vitrine/internal/wallet"
)

type Handler struct {
	svc   *wallet.Service
	admin *admin.Service
}

func NewHandler(svc *wallet.Service, adminSvc *admin.Service) *Handler {
	return &Handler{svc: svc, admin: adminSvc}
}

// Routes are mounted under /carteira.
func (h *Handler) Routes(r chi.Router) {
	r.Get("/saldo", h.balance)
	r.Get("/saques", h.listWithdrawals)
	r.Post("/saques", h.requestWithdrawal)
}

// EnrollmentRoutes are mounted under /admin for any authenticated user.
func (h *Handler) EnrollmentRoutes(r chi.Router) {
	r.Post("/carteira-pendente", h.submitEnrollment)
}

// AdminRoutes are mounted under /admin behind auth.RequireSuperAdmin.
func (h *Handler) AdminRoutes(r chi.Router) {
	r.Get("/saques", h.listAllWithdrawals)
	r.Post("/saques", h.requestWithdrawalFor)
	r.Put("/saques/{id}", h.decideWithdrawal)
	r.Get("/carteira-pendente", h.listEnrollments)
	r.Put("/carteira-pendente/{id}", h.decideEnrollment)
}

func (h *Handler) balance(w http.ResponseWriter, r *http.Request) {
	b, err := h.svc.GetBalance(r.Context(), auth.UserID(r.Context()))
	if err != nil {
		respond.Error(w, r, err)
		return
	}

	respond.JSON(w, http.StatusOK, toBalanceResponse(b))
}

func (h *Handler) listWithdrawals(w http.ResponseWriter, r *http.Request) {
	ws, err := h.svc.ListWithdrawals(r.Context(), auth.UserID(r.Context()))
	if err != nil {
		respond.Error(w, r, err)
		return
	}

	respond.JSON(w, http.StatusOK, toWithdrawalList(ws))
}

type withdrawalRequest struct {
	Amount decimal.Decimal `json:"amount"`
}

func (h *Handler) requestWithdrawal(w http.ResponseWriter, r *http.Request) {
	var req withdrawalRequest
	if err := respond.Decode(r, &req); err != nil {
		respond.Error(w, r, err)
		return
	}

	wd, err := h.svc.RequestWithdrawal(r.Context(), auth.UserID(r.Context()), req.Amount)
	if err != nil {
		respond.Error(w, r, err)
		return
	}

	respond.JSON(w, http.StatusCreated, toWithdrawalResponse(wd))
}

type withdrawalForRequest struct {
	UserID int64           `json:"user_id"`
	Amount decimal.Decimal `json:"amount"`
}

func (h *Handler) requestWithdrawalFor(w http.ResponseWriter, r *http.Request) {
	var req withdrawalForRequest
	if err := respond.Decode(r, &req); err != nil {
		respond.Error(w, r, err)
		return
	}

	wd, err := h.svc.RequestWithdrawalFor(r.Context(), auth.UserID(r.Context()), req.UserID, req.Amount)
	if err != nil {
		respond.Error(w, r, err)
		return
	}

	respond.JSON(w, http.StatusCreated, toWithdrawalResponse(wd))
}

func (h *Handler) listAllWithdrawals(w http.ResponseWriter, r *http.Request) {
	var filter wallet.WithdrawalFilter

	if s := r.URL.Query().Get("status"); s != "" {
		{
			v := wallet.WithdrawalStatus(s)
			filter.Status = &v
		}
	}

	userID, err := respond.QueryInt(r, "user_id")
	if err != nil {
		respond.Error(w, r, err)
		return
	}

	if userID > 0 {
		filter.UserID = &userID
	}

	ws, err := h.admin.ListWithdrawals(r.Context(), auth.UserID(r.Context()), filter)
	if err != nil {
		respond.Error(w, r, err)
		return
	}

	respond.JSON(w, http.StatusOK, toWithdrawalList(ws))
}

type decideWithdrawalRequest struct {
	Status wallet.WithdrawalStatus `json:"status"`
	Notes  *string                 `json:"notes,omitempty"`
}

func (h *Handler) decideWithdrawal(w http.ResponseWriter, r *http.Request) {
	id, err := respond.IDParam(r, "id")
	if err != nil {
		respond.Error(w, r, err)
		return
	}

	var req decideWithdrawalRequest
	if err := respond.Decode(r, &req); err != nil {
		respond.Error(w, r, err)
		return
	}

	wd, err := h.svc.DecideWithdrawal(r.Context(), auth.UserID(r.Context()), id, req.Status, req.Notes)
	if err != nil {
		respond.Error(w, r, err)
		return
	}

	respond.JSON(w, http.StatusOK, toWithdrawalResponse(wd))
}

type enrollmentRequest struct {
	HolderName string `json:"holder_name"`
	Document   string `json:"document"`
	PixKey     string `json:"pix_key"`
	PixKeyType string `json:"pix_key_type"`
	BankName   string `json:"bank_name"`
}

func (h *Handler) submitEnrollment(w http.ResponseWriter, r *http.Request) {
	var req enrollmentRequest
	if err := respond.Decode(r, &req); err != nil {
		respond.Error(w, r, err)
		return
	}

	e, err := h.svc.SubmitEnrollment(r.Context(), auth.UserID(r.Context()), wallet.EnrollmentParams{
		HolderName: req.HolderName,
		Document:   req.Document,
		PixKey:     req.PixKey,
		PixKeyType: req.PixKeyType,
		BankName:   req.BankName,
	})
	if err != nil {
		respond.Error(w, r, err)
		return
	}

	respond.JSON(w, http.StatusCreated, toEnrollmentResponse(e))
}

func (h *Handler) listEnrollments(w http.ResponseWriter, r *http.Request) {
	var filter wallet.EnrollmentFilter

	if s := r.URL.Query().Get("status"); s != "" {
		{
			v := wallet.EnrollmentStatus(s)
			filter.Status = &v
		}
	}

	es, err := h.admin.ListEnrollments(r.Context(), auth.UserID(r.Context()), filter)
	if err != nil {
		respond.Error(w, r, err)
		return
	}

	respond.JSON(w, http.StatusOK, toEnrollmentList(es))
}

type decideEnrollmentRequest struct {
	Status wallet.EnrollmentStatus `json:"status"`
	Notes  *string                 `json:"notes,omitempty"`
}

func (h *Handler) decideEnrollment(w http.ResponseWriter, r *http.Request) {
	id, err := respond.IDParam(r, "id")
	if err != nil {
		respond.Error(w, r, err)
		return
	}

	var req decideEnrollmentRequest
	if err := respond.Decode(r, &req); err != nil {
		respond.Error(w, r, err)
		return
	}

	e, err := h.svc.DecideEnrollment(r.Context(), auth.UserID(r.Context()), id, req.Status, req.Notes)
	if err != nil {
		respond.Error(w, r, err)
		return
	}

	respond.JSON(w, http.StatusOK, toEnrollmentResponse(e))
}
