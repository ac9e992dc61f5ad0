package wallet

import (
	"time"

	"github.com/MrJamesThe3rd/vitrine/internal/wallet"
)

type balanceResponse struct {
	Total     string `json:"total"`
	Available string `json:"available"`
	Pending   string `json:"pending"`
}

type withdrawalResponse struct {
	ID          int64                   `json:"id"`
	UserID      int64                   `json:"user_id"`
	Amount      string                  `json:"amount"`
	Status      wallet.WithdrawalStatus `json:"status"`
	Notes       string                  `json:"notes"`
	ProcessedAt *time.Time              `json:"processed_at,omitempty"`
	ProcessedBy *int64                  `json:"processed_by,omitempty"`
	CreatedAt   time.Time               `json:"created_at"`
}

type enrollmentResponse struct {
	ID          int64                   `json:"id"`
	UserID      int64                   `json:"user_id"`
	HolderName  string                  `json:"holder_name"`
	Document    string                  `json:"document"`
	PixKey      string                  `json:"pix_key"`
	PixKeyType  string                  `json:"pix_key_type"`
	BankName    string                  `json:"bank_name"`
	Status      wallet.EnrollmentStatus `json:"status"`
	Notes       string                  `json:"notes"`
	ProcessedAt *time.Time              `json:"processed_at,omitempty"`
	CreatedAt   time.Time               `json:"created_at"`
}

func toBalanceResponse(b *wallet.Balance) balanceResponse {
	return balanceResponse{
		Total:     b.Total.StringFixed(2),
		Available: b.Available.StringFixed(2),
		Pending:   b.Pending.StringFixed(2),
	}
}

func toWithdrawalResponse(w *wallet.Withdrawal) withdrawalResponse {
	return withdrawalResponse{
		ID:          w.ID,
		UserID:      w.UserID,
		Amount:      w.Amount.StringFixed(2),
		Status:      w.Status,
		Notes:       w.Notes,
		ProcessedAt: w.ProcessedAt,
		ProcessedBy: w.ProcessedBy,
		CreatedAt:   w.CreatedAt,
	}
}

func toWithdrawalList(ws []*wallet.Withdrawal) []withdrawalResponse {
	resp := make([]withdrawalResponse, len(ws))
	for i, w := range ws {
		resp[i] = toWithdrawalResponse(w)
	}

	return resp
}

func toEnrollmentResponse(e *wallet.Enrollment) enrollmentResponse {
	return enrollmentResponse{
		ID:          e.ID,
		UserID:      e.UserID,
		HolderName:  e.HolderName,
		Document:    e.Document,
		PixKey:      e.PixKey,
		PixKeyType:  e.PixKeyType,
		BankName:    e.BankName,
		Status:      e.Status,
		Notes:       e.Notes,
		ProcessedAt: e.ProcessedAt,
		CreatedAt:   e.CreatedAt,
	}
}

func toEnrollmentList(es []*wallet.Enrollment) []enrollmentResponse {
	resp := make([]enrollmentResponse, len(es))
	for i, e := range es {
		resp[i] = toEnrollmentResponse(e)
	}

	return resp
}
