package shop_test

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/MrJamesThe3rd/vitrine/internal/apperr"
	"github.com/MrJamesThe3rd/vitrine/internal/shop"
	"github.com/MrJamesThe3rd/vitrine/internal/user"
)

type passthroughTx struct{}

func (passthroughTx) WithinTx(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

func newService(t *testing.T) (*shop.Service, *shop.MockRepository, *shop.MockOwners) {
	t.Helper()

	ctrl := gomock.NewController(t)
	repo := shop.NewMockRepository(ctrl)
	owners := shop.NewMockOwners(ctrl)

	return shop.NewService(repo, owners, passthroughTx{}), repo, owners
}

func TestService_EnsureForOwner(t *testing.T) {
	t.Run("Existing", func(t *testing.T) {
		svc, repo, _ := newService(t)

		repo.EXPECT().GetByOwner(gomock.Any(), int64(1)).Return(&shop.Shop{ID: 4, OwnerID: 1}, nil)

		got, err := svc.EnsureForOwner(context.Background(), 1)
		require.NoError(t, err)
		assert.Equal(t, int64(4), got.ID)
	})

	t.Run("CreatedNamedAfterOwner", func(t *testing.T) {
		svc, repo, owners := newService(t)

		repo.EXPECT().GetByOwner(gomock.Any(), int64(1)).Return(nil, shop.ErrNotFound)
		owners.EXPECT().Get(gomock.Any(), int64(1)).Return(&user.User{ID: 1, Email: "doces.da.ana@x.com"}, nil)
		repo.EXPECT().CreateIfMissing(gomock.Any(), int64(1), "Doces Da Ana").Return(&shop.Shop{ID: 9, OwnerID: 1}, nil)

		got, err := svc.EnsureForOwner(context.Background(), 1)
		require.NoError(t, err)
		assert.Equal(t, int64(9), got.ID)
	})
}

func TestService_Update(t *testing.T) {
	svc, repo, _ := newService(t)

	name := "  Doceria  "
	phone := "11 99999-0000"

	repo.EXPECT().GetByOwner(gomock.Any(), int64(1)).Return(&shop.Shop{ID: 4, OwnerID: 1, Name: "Antigo", Description: "desc"}, nil)
	repo.EXPECT().UpdateShop(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, sh *shop.Shop) error {
			assert.Equal(t, "Doceria", sh.Name)
			assert.Equal(t, "desc", sh.Description)
			assert.Equal(t, phone, sh.Phone)
			return nil
		})

	got, err := svc.Update(context.Background(), 1, shop.UpdateParams{Name: &name, Phone: &phone})
	require.NoError(t, err)
	assert.Equal(t, "Doceria", got.Name)

	empty := " "
	repo.EXPECT().GetByOwner(gomock.Any(), int64(1)).Return(&shop.Shop{ID: 4, OwnerID: 1, Name: "Antigo"}, nil)

	_, err = svc.Update(context.Background(), 1, shop.UpdateParams{Name: &empty})
	assert.ErrorIs(t, err, apperr.ErrInvalidInput)
}

func TestService_Current_NoShopYet(t *testing.T) {
	svc, repo, _ := newService(t)

	repo.EXPECT().GetByOwner(gomock.Any(), int64(3)).Return(nil, shop.ErrNotFound)

	sh, creds, err := svc.Current(context.Background(), 3)
	require.NoError(t, err)
	assert.Equal(t, int64(0), sh.ID)
	assert.Equal(t, int64(3), sh.OwnerID)
	assert.Empty(t, creds)
}

func TestService_ListWithStats_DerivesOwnerName(t *testing.T) {
	svc, repo, _ := newService(t)

	repo.EXPECT().ListSummaries(gomock.Any()).Return([]*shop.Summary{
		{Shop: shop.Shop{ID: 1}, OwnerName: "Ana", OwnerEmail: "ana@x.com", ApprovedAmount: decimal.NewFromInt(35)},
		{Shop: shop.Shop{ID: 2}, OwnerEmail: "joao_silva@x.com"},
	}, nil)

	got, err := svc.ListWithStats(context.Background())
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, "Ana", got[0].OwnerName)
	assert.Equal(t, "Joao Silva", got[1].OwnerName)
}

func TestService_UpsertGatewayCredential_Validates(t *testing.T) {
	svc, _, _ := newService(t)

	err := svc.UpsertGatewayCredential(context.Background(), &shop.GatewayCredential{Type: shop.CredentialWallet})
	assert.ErrorIs(t, err, apperr.ErrInvalidInput)
}
