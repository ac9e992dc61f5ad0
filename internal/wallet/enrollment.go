package wallet

import (
	"context"
	"strings"
	"unicode"

	"github.com/MrJamesThe3rd/vitrine/internal/apperr"
	"github.com/MrJamesThe3rd/vitrine/internal/shop"
)

type EnrollmentParams struct {
	HolderName string
	Document   string
	PixKey     string
	PixKeyType string
	BankName   string
}

// SubmitEnrollment files a request to join the wallet. A user can only have
// one pending request.
func (s *Service) SubmitEnrollment(ctx context.Context, userID int64, params EnrollmentParams) (*Enrollment, error) {
	e := &Enrollment{
		UserID:     userID,
		HolderName: strings.TrimSpace(params.HolderName),
		Document:   digits(params.Document),
		PixKey:     strings.TrimSpace(params.PixKey),
		PixKeyType: strings.TrimSpace(params.PixKeyType),
		BankName:   strings.TrimSpace(params.BankName),
		Status:     EnrollmentPending,
	}

	if e.HolderName == "" || e.PixKey == "" {
		return nil, apperr.New(apperr.ErrInvalidInput, "titular e chave pix são obrigatórios")
	}

	// CPF has 11 digits, CNPJ 14.
	if len(e.Document) != 11 && len(e.Document) != 14 {
		return nil, apperr.New(apperr.ErrInvalidInput, "documento deve ser um CPF ou CNPJ")
	}

	if err := s.repo.CreateEnrollment(ctx, e); err != nil {
		return nil, err
	}

	return e, nil
}

func (s *Service) ListEnrollments(ctx context.Context, filter EnrollmentFilter) ([]*Enrollment, error) {
	return s.repo.ListEnrollments(ctx, filter)
}

// DecideEnrollment approves or rejects a pending request. Approval enables the
// wallet credential on the requester's shop, creating the shop if needed.
func (s *Service) DecideEnrollment(ctx context.Context, adminID, id int64, decision EnrollmentStatus, notes *string) (*Enrollment, error) {
	if err := s.admins.RequireSuperAdmin(ctx, adminID); err != nil {
		return nil, err
	}

	if decision != EnrollmentApproved && decision != EnrollmentRejected {
		return nil, ErrInvalidDecision
	}

	var e *Enrollment

	err := s.tx.WithinTx(ctx, func(ctx context.Context) error {
		var err error

		e, err = s.repo.LockEnrollment(ctx, id)
		if err != nil {
			return err
		}

		if e.Status != EnrollmentPending {
			return ErrEnrollmentDecided
		}

		if decision == EnrollmentApproved {
			if err := s.enableWallet(ctx, e); err != nil {
				return err
			}
		}

		now := s.now()
		e.Status = decision
		e.ProcessedAt = &now
		e.ProcessedBy = &adminID

		if notes != nil {
			e.Notes = *notes
		}

		return s.repo.UpdateEnrollment(ctx, e)
	})
	if err != nil {
		return nil, err
	}

	return e, nil
}

func (s *Service) enableWallet(ctx context.Context, e *Enrollment) error {
	sh, err := s.shops.EnsureForOwner(ctx, e.UserID)
	if err != nil {
		return err
	}

	return s.shops.UpsertGatewayCredential(ctx, &shop.GatewayCredential{
		ShopID:     sh.ID,
		Type:       shop.CredentialWallet,
		HolderName: e.HolderName,
		Document:   e.Document,
		PixKey:     e.PixKey,
		PixKeyType: e.PixKeyType,
		Configured: true,
		Active:     true,
	})
}

func digits(s string) string {
	return strings.Map(func(r rune) rune {
		if unicode.IsDigit(r) {
			return r
		}

		return -1
	}, s)
}
