package sale

import (
	"time"

	"github.com/MrJamesThe3rd/vitrine/internal/sale"
)

type itemResponse struct {
	ID          int64  `json:"id"`
	ProductID   int64  `json:"product_id"`
	ProductName string `json:"product_name"`
	Quantity    int    `json:"quantity"`
	UnitPrice   string `json:"unit_price"`
	Subtotal    string `json:"subtotal"`
}

type saleResponse struct {
	ID                    int64              `json:"id"`
	Total                 string             `json:"total"`
	Status                sale.Status        `json:"status"`
	PaymentStatus         sale.PaymentStatus `json:"payment_status"`
	PaymentMethod         sale.PaymentMethod `json:"payment_method"`
	ExternalTransactionID string             `json:"external_transaction_id"`
	PaymentLink           string             `json:"payment_link,omitempty"`
	QRCode                string             `json:"qr_code,omitempty"`
	GatewayPaymentID      string             `json:"gateway_payment_id,omitempty"`
	CustomerName          string             `json:"customer_name"`
	CustomerEmail         string             `json:"customer_email"`
	Notes                 string             `json:"notes"`
	PaidAt                *time.Time         `json:"paid_at,omitempty"`
	Items                 []itemResponse     `json:"items,omitempty"`
	CreatedAt             time.Time          `json:"created_at"`
	UpdatedAt             *time.Time         `json:"updated_at,omitempty"`
}

func toResponse(s *sale.Sale) saleResponse {
	resp := saleResponse{
		ID:                    s.ID,
		Total:                 s.Total.StringFixed(2),
		Status:                s.Status,
		PaymentStatus:         s.PaymentStatus,
		PaymentMethod:         s.PaymentMethod,
		ExternalTransactionID: s.ExternalTransactionID,
		PaymentLink:           s.PaymentLink,
		QRCode:                s.QRCode,
		GatewayPaymentID:      s.GatewayPaymentID,
		CustomerName:          s.CustomerName,
		CustomerEmail:         s.CustomerEmail,
		Notes:                 s.Notes,
		PaidAt:                s.PaidAt,
		CreatedAt:             s.CreatedAt,
		UpdatedAt:             s.UpdatedAt,
	}

	for _, item := range s.Items {
		resp.Items = append(resp.Items, itemResponse{
			ID:          item.ID,
			ProductID:   item.ProductID,
			ProductName: item.ProductName,
			Quantity:    item.Quantity,
			UnitPrice:   item.UnitPrice.StringFixed(2),
			Subtotal:    item.Subtotal.StringFixed(2),
		})
	}

	return resp
}

func toResponseList(sales []*sale.Sale) []saleResponse {
	resp := make([]saleResponse, len(sales))
	for i, s := range sales {
		resp[i] = toResponse(s)
	}

	return resp
}
