package sale

import (
	"bytes"
	"crypto/subtle"
	"encoding/json"
	"io"
	"net/http"

	"github.com/MrJamesThe3rd/vitrine/internal/apperr"
	"github.com/MrJamesThe3rd/vitrine/internal/http/respond"
	"github.com/MrJamesThe3rd/vitrine/internal/sale"
)

const maxWebhookBytes = 64 << 10

// gatewayID accepts the payment id as a JSON string or number.
type gatewayID string

func (id *gatewayID) UnmarshalJSON(b []byte) error {
	var s string
	if err := json.Unmarshal(b, &s); err == nil {
		*id = gatewayID(s)
		return nil
	}

	var n json.Number
	if err := json.Unmarshal(b, &n); err != nil {
		return err
	}

	*id = gatewayID(n.String())

	return nil
}

// webhookRequest is either our own {external_transaction_id, status} body or
// a Mercado Pago notification. Unknown fields are ignored.
type webhookRequest struct {
	ExternalTransactionID string `json:"external_transaction_id"`
	Status                string `json:"status"`
	Type                  string `json:"type"`
	Data                  struct {
		ID gatewayID `json:"id"`
	} `json:"data"`
}

type webhookResponse struct {
	Received      bool               `json:"received"`
	SaleID        int64              `json:"sale_id,omitempty"`
	PaymentStatus sale.PaymentStatus `json:"payment_status,omitempty"`
}

// verified reports whether the request carries the configured secret. With
// no secret configured nothing is verified, so only gateway notifications
// are accepted.
func (h *Handler) verified(r *http.Request) bool {
	if h.webhookSecret == "" {
		return false
	}

	got := r.Header.Get("X-Webhook-Secret")

	return subtle.ConstantTimeCompare([]byte(got), []byte(h.webhookSecret)) == 1
}

func (h *Handler) webhook(w http.ResponseWriter, r *http.Request) {
	body, err := io.ReadAll(io.LimitReader(r.Body, maxWebhookBytes))
	if err != nil {
		respond.Error(w, r, apperr.New(apperr.ErrInvalidInput, "corpo da requisição inválido"))
		return
	}

	var req webhookRequest

	if len(bytes.TrimSpace(body)) > 0 {
		if err := json.Unmarshal(body, &req); err != nil {
			respond.Error(w, r, apperr.New(apperr.ErrInvalidInput, "corpo da requisição inválido"))
			return
		}
	}

	// Mercado Pago may also send the notification as query parameters.
	q := r.URL.Query()
	if req.Type == "" {
		req.Type = q.Get("type")
	}

	if req.Data.ID == "" {
		req.Data.ID = gatewayID(q.Get("data.id"))
	}

	if req.ExternalTransactionID == "" && req.Type == "" {
		respond.Error(w, r, apperr.New(apperr.ErrInvalidInput, "notificação sem external_transaction_id ou type"))
		return
	}

	s, err := h.svc.HandleNotification(r.Context(), sale.Notification{
		ExternalTransactionID: req.ExternalTransactionID,
		Status:                req.Status,
		Type:                  req.Type,
		DataID:                string(req.Data.ID),
		Verified:              h.verified(r),
	})
	if err != nil {
		respond.Error(w, r, err)
		return
	}

	resp := webhookResponse{Received: true}
	if s != nil {
		resp.SaleID = s.ID
		resp.PaymentStatus = s.PaymentStatus
	}

	respond.JSON(w, http.StatusOK, resp)
}
