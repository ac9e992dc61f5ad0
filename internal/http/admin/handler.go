package admin

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/MrJamesThe3rd/vitrine/internal/admin"
	"github.com/MrJamesThe3rd/vitrine/internal/auth"
	"github.com/MrJamesThe3rd/vitrine/internal/commission"
	"github.com/MrJamesThe3rd/vitrine/internal/http/respond"
	"github.com/MrJamesThe3rd/vitrine/internal/shop"
)

type Handler struct {
	svc *admin.Service
}

func NewHandler(svc *admin.Service) *Handler {
	return &Handler{svc: svc}
}

// Routes are mounted under /admin behind auth.RequireSuperAdmin.
func (h *Handler) Routes(r chi.Router) {
	r.Get("/lojas", h.listStores)
	r.Get("/comissoes", h.listCommissions)
}

type storeResponse struct {
	ID             int64  `json:"id"`
	Name           string `json:"name"`
	OwnerID        int64  `json:"owner_id"`
	OwnerName      string `json:"owner_name"`
	OwnerEmail     string `json:"owner_email"`
	TotalSales     int    `json:"total_sales_count"`
	ApprovedCount  int    `json:"approved_count"`
	ApprovedAmount string `json:"approved_revenue"`
}

func toStoreList(summaries []*shop.Summary) []storeResponse {
	resp := make([]storeResponse, len(summaries))
	for i, s := range summaries {
		resp[i] = storeResponse{
			ID:             s.Shop.ID,
			Name:           s.Shop.Name,
			OwnerID:        s.Shop.OwnerID,
			OwnerName:      s.OwnerName,
			OwnerEmail:     s.OwnerEmail,
			TotalSales:     s.SalesCount,
			ApprovedCount:  s.ApprovedCount,
			ApprovedAmount: s.ApprovedAmount.StringFixed(2),
		}
	}

	return resp
}

func (h *Handler) listStores(w http.ResponseWriter, r *http.Request) {
	summaries, err := h.svc.ListStoresWithStats(r.Context(), auth.UserID(r.Context()))
	if err != nil {
		respond.Error(w, r, err)
		return
	}

	respond.JSON(w, http.StatusOK, toStoreList(summaries))
}

type commissionResponse struct {
	ID         int64  `json:"id"`
	SaleID     int64  `json:"sale_id"`
	StoreID    *int64 `json:"store_id"`
	StoreName  string `json:"store_name"`
	UserID     int64  `json:"user_id"`
	SaleTotal  string `json:"sale_total"`
	FixedFee   string `json:"fixed_fee"`
	PercentFee string `json:"percent_fee"`
	Amount     string `json:"amount"`
}

type storeTotalResponse struct {
	StoreID   *int64 `json:"store_id"`
	StoreName string `json:"store_name"`
	Total     string `json:"total"`
	Count     int    `json:"count"`
}

type reportResponse struct {
	Total       string               `json:"total"`
	Commissions []commissionResponse `json:"commissions"`
	ByStore     []storeTotalResponse `json:"by_store"`
}

func toReportResponse(rep *commission.Report) reportResponse {
	resp := reportResponse{
		Total:       rep.Total.StringFixed(2),
		Commissions: make([]commissionResponse, len(rep.Commissions)),
		ByStore:     make([]storeTotalResponse, len(rep.ByStore)),
	}

	for i, c := range rep.Commissions {
		resp.Commissions[i] = commissionResponse{
			ID:         c.ID,
			SaleID:     c.SaleID,
			StoreID:    c.ShopID,
			StoreName:  c.ShopName,
			UserID:     c.UserID,
			SaleTotal:  c.SaleTotal.StringFixed(2),
			FixedFee:   c.FixedFee.StringFixed(2),
			PercentFee: c.PercentFee.String(),
			Amount:     c.Amount.StringFixed(2),
		}
	}

	for i, st := range rep.ByStore {
		resp.ByStore[i] = storeTotalResponse{
			StoreID:   st.ShopID,
			StoreName: st.ShopName,
			Total:     st.Total.StringFixed(2),
			Count:     st.Count,
		}
	}

	return resp
}

func (h *Handler) listCommissions(w http.ResponseWriter, r *http.Request) {
	var filter commission.ListFilter

	shopID, err := respond.QueryInt(r, "loja_id")
	if err != nil {
		respond.Error(w, r, err)
		return
	}

	if shopID > 0 {
		filter.ShopID = &shopID
	}

	rep, err := h.svc.ListCommissions(r.Context(), auth.UserID(r.Context()), filter)
	if err != nil {
		respond.Error(w, r, err)
		return
	}

	respond.JSON(w, http.StatusOK, toReportResponse(rep))
}
