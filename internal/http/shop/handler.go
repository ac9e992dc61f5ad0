package shop

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/MrJamesThe3rd/vitrine/internal/auth"
	"github.com/MrJamesThe3rd/vitrine/internal/http/respond"
	"github.com/MrJamesThe3rd/vitrine/internal/shop"
)

type Handler struct {
	svc *shop.Service
}

func NewHandler(svc *shop.Service) *Handler {
	return &Handler{svc: svc}
}

func (h *Handler) Routes(r chi.Router) {
	r.Get("/", h.get)
	r.Put("/", h.update)
}

type credentialResponse struct {
	Type       shop.CredentialType `json:"type"`
	HolderName string              `json:"holder_name"`
	PixKey     string              `json:"pix_key"`
	PixKeyType string              `json:"pix_key_type"`
	Configured bool                `json:"configured"`
	Active     bool                `json:"active"`
}

type shopResponse struct {
	ID          int64                `json:"id,omitempty"`
	Name        string               `json:"name"`
	Description string               `json:"description"`
	Phone       string               `json:"phone"`
	LogoURL     string               `json:"logo_url"`
	Credentials []credentialResponse `json:"credentials"`
	CreatedAt   *time.Time           `json:"created_at,omitempty"`
	UpdatedAt   *time.Time           `json:"updated_at,omitempty"`
}

func toResponse(sh *shop.Shop, creds []*shop.GatewayCredential) shopResponse {
	resp := shopResponse{
		ID:          sh.ID,
		Name:        sh.Name,
		Description: sh.Description,
		Phone:       sh.Phone,
		LogoURL:     sh.LogoURL,
		Credentials: make([]credentialResponse, len(creds)),
		UpdatedAt:   sh.UpdatedAt,
	}

	if !sh.CreatedAt.IsZero() {
		resp.CreatedAt = &sh.CreatedAt
	}

	for i, c := range creds {
		resp.Credentials[i] = credentialResponse{
			Type:       c.Type,
			HolderName: c.HolderName,
			PixKey:     c.PixKey,
			PixKeyType: c.PixKeyType,
			Configured: c.Configured,
			Active:     c.Active,
		}
	}

	return resp
}

func (h *Handler) get(w http.ResponseWriter, r *http.Request) {
	sh, creds, err := h.svc.Current(r.Context(), auth.UserID(r.Context()))
	if err != nil {
		respond.Error(w, r, err)
		return
	}

	respond.JSON(w, http.StatusOK, toResponse(sh, creds))
}

type updateRequest struct {
	Name        *string `json:"name,omitempty"`
	Description *string `json:"description,omitempty"`
	Phone       *string `json:"phone,omitempty"`
	LogoURL     *string `json:"logo_url,omitempty"`
}

func (h *Handler) update(w http.ResponseWriter, r *http.Request) {
	var req updateRequest
	if err := respond.Decode(r, &req); err != nil {
		respond.Error(w, r, err)
		return
	}

	ownerID := auth.UserID(r.Context())

	if _, err := h.svc.Update(r.Context(), ownerID, shop.UpdateParams{
		Name:        req.Name,
		Description: req.Description,
		Phone:       req.Phone,
		LogoURL:     req.LogoURL,
	}); err != nil {
		respond.Error(w, r, err)
		return
	}

	sh, creds, err := h.svc.Current(r.Context(), ownerID)
	if err != nil {
		respond.Error(w, r, err)
		return
	}

	respond.JSON(w, http.StatusOK, toResponse(sh, creds))
}
