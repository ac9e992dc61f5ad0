package shop

import (
	"context"
	"errors"
	"strings"

	"github.com/MrJamesThe3rd/vitrine/internal/apperr"
	"github.com/MrJamesThe3rd/vitrine/internal/database"
	"github.com/MrJamesThe3rd/vitrine/internal/user"
)

var ErrNotFound = apperr.New(apperr.ErrNotFound, "loja não encontrada")

//go:generate mockgen -source=service.go -destination=repository_mock.go -package=shop
type Repository interface {
	GetByOwner(ctx context.Context, ownerID int64) (*Shop, error)
	CreateIfMissing(ctx context.Context, ownerID int64, name string) (*Shop, error)
	UpdateShop(ctx context.Context, s *Shop) error
	UpsertCredential(ctx context.Context, c *GatewayCredential) error
	ListCredentials(ctx context.Context, shopID int64) ([]*GatewayCredential, error)
	ListSummaries(ctx context.Context) ([]*Summary, error)
}

// Owners resolves the user a shop belongs to.
type Owners interface {
	Get(ctx context.Context, id int64) (*user.User, error)
}

type Service struct {
	repo   Repository
	owners Owners
	tx     database.Transactor
}

func NewService(repo Repository, owners Owners, tx database.Transactor) *Service {
	return &Service{repo: repo, owners: owners, tx: tx}
}

// UpdateParams holds a partial update; nil fields are left untouched.
type UpdateParams struct {
	Name        *string
	Description *string
	Phone       *string
	LogoURL     *string
}

// GetByOwner returns ErrNotFound until the owner configures a shop.
func (s *Service) GetByOwner(ctx context.Context, ownerID int64) (*Shop, error) {
	return s.repo.GetByOwner(ctx, ownerID)
}

// Current returns the owner's shop, or an unsaved zero shop when none was
// configured yet.
func (s *Service) Current(ctx context.Context, ownerID int64) (*Shop, []*GatewayCredential, error) {
	sh, err := s.repo.GetByOwner(ctx, ownerID)
	if errors.Is(err, ErrNotFound) {
		return &Shop{OwnerID: ownerID}, []*GatewayCredential{}, nil
	}

	if err != nil {
		return nil, nil, err
	}

	creds, err := s.repo.ListCredentials(ctx, sh.ID)
	if err != nil {
		return nil, nil, err
	}

	return sh, creds, nil
}

// EnsureForOwner creates the owner's shop on first use, named after the
// owner.
func (s *Service) EnsureForOwner(ctx context.Context, ownerID int64) (*Shop, error) {
	sh, err := s.repo.GetByOwner(ctx, ownerID)
	if err == nil {
		return sh, nil
	}

	if !errors.Is(err, ErrNotFound) {
		return nil, err
	}

	owner, err := s.owners.Get(ctx, ownerID)
	if err != nil {
		return nil, err
	}

	return s.repo.CreateIfMissing(ctx, ownerID, user.DisplayName(owner))
}

func (s *Service) Update(ctx context.Context, ownerID int64, params UpdateParams) (*Shop, error) {
	var sh *Shop

	err := s.tx.WithinTx(ctx, func(ctx context.Context) error {
		var err error

		sh, err = s.EnsureForOwner(ctx, ownerID)
		if err != nil {
			return err
		}

		if params.Name != nil {
			sh.Name = strings.TrimSpace(*params.Name)
		}

		if params.Description != nil {
			sh.Description = strings.TrimSpace(*params.Description)
		}

		if params.Phone != nil {
			sh.Phone = strings.TrimSpace(*params.Phone)
		}

		if params.LogoURL != nil {
			sh.LogoURL = strings.TrimSpace(*params.LogoURL)
		}

		if sh.Name == "" {
			return apperr.New(apperr.ErrInvalidInput, "nome da loja é obrigatório")
		}

		return s.repo.UpdateShop(ctx, sh)
	})
	if err != nil {
		return nil, err
	}

	return sh, nil
}

func (s *Service) UpsertGatewayCredential(ctx context.Context, c *GatewayCredential) error {
	if c.ShopID == 0 || c.Type == "" {
		return apperr.New(apperr.ErrInvalidInput, "credencial sem loja ou tipo")
	}

	return s.repo.UpsertCredential(ctx, c)
}

func (s *Service) ListGatewayCredentials(ctx context.Context, shopID int64) ([]*GatewayCredential, error) {
	return s.repo.ListCredentials(ctx, shopID)
}

// ListWithStats returns every shop with its owner's sales figures. Owners
// without a registered name get one derived from their e-mail.
func (s *Service) ListWithStats(ctx context.Context) ([]*Summary, error) {
	summaries, err := s.repo.ListSummaries(ctx)
	if err != nil {
		return nil, err
	}

	for _, sum := range summaries {
		sum.OwnerName = user.DisplayName(&user.User{Name: sum.OwnerName, Email: sum.OwnerEmail})
	}

	return summaries, nil
}
