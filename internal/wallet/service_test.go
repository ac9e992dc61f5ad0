package wallet_test

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/MrJamesThe3rd/vitrine/internal/apperr"
	"github.com/MrJamesThe3rd/vitrine/internal/shop"
	"github.com/MrJamesThe3rd/vitrine/internal/wallet"
)

func dec(s string) decimal.Decimal { return decimal.RequireFromString(s) }

type passthroughTx struct{}

func (passthroughTx) WithinTx(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

// memoryRepo is an in-memory Repository for scenario tests.
type memoryRepo struct {
	balances    map[int64]*wallet.Balance
	withdrawals map[int64]*wallet.Withdrawal
	enrollments map[int64]*wallet.Enrollment
	nextID      int64
	locks       int
}

func newMemoryRepo() *memoryRepo {
	return &memoryRepo{
		balances:    map[int64]*wallet.Balance{},
		withdrawals: map[int64]*wallet.Withdrawal{},
		enrollments: map[int64]*wallet.Enrollment{},
	}
}

func (m *memoryRepo) GetBalance(_ context.Context, userID int64) (*wallet.Balance, error) {
	b, ok := m.balances[userID]
	if !ok {
		return nil, nil
	}

	cp := *b

	return &cp, nil
}

func (m *memoryRepo) LockBalance(_ context.Context, userID int64) (*wallet.Balance, bool, error) {
	m.locks++

	_, ok := m.balances[userID]
	if !ok {
		m.balances[userID] = &wallet.Balance{UserID: userID}
	}

	cp := *m.balances[userID]

	return &cp, !ok, nil
}

func (m *memoryRepo) SaveBalance(_ context.Context, b *wallet.Balance) error {
	cp := *b
	m.balances[b.UserID] = &cp

	return nil
}

func (m *memoryRepo) CreateWithdrawal(_ context.Context, w *wallet.Withdrawal) error {
	m.nextID++
	w.ID = m.nextID
	cp := *w
	m.withdrawals[w.ID] = &cp

	return nil
}

func (m *memoryRepo) LockWithdrawal(_ context.Context, id int64) (*wallet.Withdrawal, error) {
	w, ok := m.withdrawals[id]
	if !ok {
		return nil, wallet.ErrWithdrawalNotFound
	}

	cp := *w

	return &cp, nil
}

func (m *memoryRepo) UpdateWithdrawal(_ context.Context, w *wallet.Withdrawal) error {
	cp := *w
	m.withdrawals[w.ID] = &cp

	return nil
}

func (m *memoryRepo) ListWithdrawals(_ context.Context, filter wallet.WithdrawalFilter) ([]*wallet.Withdrawal, error) {
	var out []*wallet.Withdrawal

	for _, w := range m.withdrawals {
		if filter.UserID != nil && w.UserID != *filter.UserID {
			continue
		}

		if filter.Status != nil && w.Status != *filter.Status {
			continue
		}

		out = append(out, w)
	}

	return out, nil
}

func (m *memoryRepo) CreateEnrollment(_ context.Context, e *wallet.Enrollment) error {
	for _, existing := range m.enrollments {
		if existing.UserID == e.UserID && existing.Status == wallet.EnrollmentPending {
			return wallet.ErrEnrollmentPending
		}
	}

	m.nextID++
	e.ID = m.nextID
	cp := *e
	m.enrollments[e.ID] = &cp

	return nil
}

func (m *memoryRepo) LockEnrollment(_ context.Context, id int64) (*wallet.Enrollment, error) {
	e, ok := m.enrollments[id]
	if !ok {
		return nil, wallet.ErrEnrollmentNotFound
	}

	cp := *e

	return &cp, nil
}

func (m *memoryRepo) UpdateEnrollment(_ context.Context, e *wallet.Enrollment) error {
	cp := *e
	m.enrollments[e.ID] = &cp

	return nil
}

func (m *memoryRepo) ListEnrollments(_ context.Context, _ wallet.EnrollmentFilter) ([]*wallet.Enrollment, error) {
	out := make([]*wallet.Enrollment, 0, len(m.enrollments))
	for _, e := range m.enrollments {
		out = append(out, e)
	}

	return out, nil
}

type fixedLedger map[int64]decimal.Decimal

func (f fixedLedger) ApprovedTotal(_ context.Context, userID int64) (decimal.Decimal, error) {
	return f[userID], nil
}

// lateLedger reports after once a balance row has been locked, standing in
// for an approval that commits while the caller waits on the lock.
type lateLedger struct {
	repo          *memoryRepo
	before, after decimal.Decimal
}

func (l lateLedger) ApprovedTotal(_ context.Context, _ int64) (decimal.Decimal, error) {
	if l.repo.locks == 0 {
		return l.before, nil
	}

	return l.after, nil
}

type fixture struct {
	svc    *wallet.Service
	repo   *memoryRepo
	ledger fixedLedger
	admins *wallet.MockAdminChecker
	shops  *wallet.MockShops
}

func newFixture(t *testing.T) *fixture {
	t.Helper()

	ctrl := gomock.NewController(t)

	f := &fixture{
		repo:   newMemoryRepo(),
		ledger: fixedLedger{},
		admins: wallet.NewMockAdminChecker(ctrl),
		shops:  wallet.NewMockShops(ctrl),
	}

	f.admins.EXPECT().RequireSuperAdmin(gomock.Any(), int64(1)).Return(nil).AnyTimes()
	f.admins.EXPECT().RequireSuperAdmin(gomock.Any(), gomock.Not(int64(1))).
		Return(apperr.New(apperr.ErrForbidden, "acesso restrito ao administrador")).AnyTimes()

	f.svc = wallet.NewService(f.repo, f.ledger, f.admins, f.shops, passthroughTx{})

	return f
}

func assertBalance(t *testing.T, f *fixture, userID int64, total, available, pending string) {
	t.Helper()

	b, err := f.svc.GetBalance(context.Background(), userID)
	require.NoError(t, err)

	assert.True(t, dec(total).Equal(b.Total), "total: got %s want %s", b.Total, total)
	assert.True(t, dec(available).Equal(b.Available), "available: got %s want %s", b.Available, available)
	assert.True(t, dec(pending).Equal(b.Pending), "pending: got %s want %s", b.Pending, pending)
}

func TestService_GetBalance_NoRowUsesApprovedSales(t *testing.T) {
	f := newFixture(t)
	f.ledger[7] = dec("100")

	assertBalance(t, f, 7, "100", "100", "0")
}

func TestService_GetBalance_CappedByApprovedSales(t *testing.T) {
	f := newFixture(t)
	f.ledger[7] = dec("40")
	f.repo.balances[7] = &wallet.Balance{UserID: 7, Total: dec("100"), Available: dec("90"), Pending: dec("10")}

	assertBalance(t, f, 7, "40", "40", "10")
}

func TestService_WithdrawalRequestThenReject(t *testing.T) {
	ctx := context.Background()

	f := newFixture(t)
	f.ledger[7] = dec("100")

	w, err := f.svc.RequestWithdrawal(ctx, 7, dec("50"))
	require.NoError(t, err)
	assert.Equal(t, wallet.WithdrawalPending, w.Status)
	assertBalance(t, f, 7, "100", "50", "50")

	_, err = f.svc.RequestWithdrawal(ctx, 7, dec("50.01"))
	assert.ErrorIs(t, err, apperr.ErrInsufficientBalance)
	assertBalance(t, f, 7, "100", "50", "50")

	notes := "dados bancários divergentes"
	decided, err := f.svc.DecideWithdrawal(ctx, 1, w.ID, wallet.WithdrawalRejected, &notes)
	require.NoError(t, err)
	assert.Equal(t, wallet.WithdrawalRejected, decided.Status)
	assert.Equal(t, notes, decided.Notes)
	require.NotNil(t, decided.ProcessedBy)
	assert.Equal(t, int64(1), *decided.ProcessedBy)
	assert.NotNil(t, decided.ProcessedAt)
	assertBalance(t, f, 7, "100", "100", "0")

	_, err = f.svc.DecideWithdrawal(ctx, 1, w.ID, wallet.WithdrawalCompleted, nil)
	assert.ErrorIs(t, err, wallet.ErrWithdrawalFinished)
}

func TestService_WithdrawalProcessingThenComplete(t *testing.T) {
	ctx := context.Background()

	f := newFixture(t)
	f.ledger[7] = dec("100")

	w, err := f.svc.RequestWithdrawal(ctx, 7, dec("30"))
	require.NoError(t, err)

	_, err = f.svc.DecideWithdrawal(ctx, 1, w.ID, wallet.WithdrawalProcessing, nil)
	require.NoError(t, err)
	assertBalance(t, f, 7, "100", "70", "30")

	_, err = f.svc.DecideWithdrawal(ctx, 1, w.ID, wallet.WithdrawalCompleted, nil)
	require.NoError(t, err)
	assertBalance(t, f, 7, "70", "70", "0")
}

func TestService_RejectProcessing_KeepsFundsPending(t *testing.T) {
	ctx := context.Background()

	f := newFixture(t)
	f.ledger[7] = dec("100")

	w, err := f.svc.RequestWithdrawal(ctx, 7, dec("30"))
	require.NoError(t, err)

	_, err = f.svc.DecideWithdrawal(ctx, 1, w.ID, wallet.WithdrawalProcessing, nil)
	require.NoError(t, err)

	rejected, err := f.svc.DecideWithdrawal(ctx, 1, w.ID, wallet.WithdrawalRejected, nil)
	require.NoError(t, err)
	assert.Equal(t, wallet.WithdrawalRejected, rejected.Status)
	assertBalance(t, f, 7, "100", "70", "30")
}

func TestService_RequestWithdrawal_InvalidAmount(t *testing.T) {
	f := newFixture(t)

	for _, amount := range []string{"0", "-5", "0.004"} {
		_, err := f.svc.RequestWithdrawal(context.Background(), 7, dec(amount))
		assert.ErrorIs(t, err, wallet.ErrInvalidAmount)
	}
}

func TestService_RequestWithdrawal_RoundsToCents(t *testing.T) {
	f := newFixture(t)
	f.ledger[7] = dec("100")

	w, err := f.svc.RequestWithdrawal(context.Background(), 7, dec("10.005"))
	require.NoError(t, err)

	assert.True(t, dec("10.01").Equal(w.Amount), "amount: got %s", w.Amount)
	assertBalance(t, f, 7, "100", "89.99", "10.01")
}

func TestService_CreditSale_ReadsApprovedSalesAfterLock(t *testing.T) {
	repo := newMemoryRepo()
	repo.balances[7] = &wallet.Balance{UserID: 7, Total: dec("10"), Available: dec("10"), Pending: decimal.Zero}

	ledger := lateLedger{repo: repo, before: decimal.Zero, after: dec("10")}
	svc := wallet.NewService(repo, ledger, nil, nil, passthroughTx{})

	require.NoError(t, svc.CreditSale(context.Background(), 7, dec("20")))

	stored := repo.balances[7]
	assert.True(t, dec("30").Equal(stored.Total), "total: got %s", stored.Total)
	assert.True(t, dec("30").Equal(stored.Available), "available: got %s", stored.Available)
}

func TestService_CreditSale_NewRowStartsFromApprovedSales(t *testing.T) {
	f := newFixture(t)
	f.ledger[7] = dec("15")

	require.NoError(t, f.svc.CreditSale(context.Background(), 7, dec("5")))

	stored := f.repo.balances[7]
	assert.True(t, dec("20").Equal(stored.Total), "total: got %s", stored.Total)
	assert.True(t, dec("20").Equal(stored.Available), "available: got %s", stored.Available)
	assert.True(t, stored.Pending.IsZero())
}

func TestService_DecideWithdrawal_Guards(t *testing.T) {
	ctx := context.Background()

	f := newFixture(t)
	f.ledger[7] = dec("100")

	w, err := f.svc.RequestWithdrawal(ctx, 7, dec("10"))
	require.NoError(t, err)

	type testCase struct {
		name     string
		adminID  int64
		id       int64
		decision wallet.WithdrawalStatus
		wantErr  error
	}

	tests := []testCase{
		{name: "NotAdmin", adminID: 7, id: w.ID, decision: wallet.WithdrawalCompleted, wantErr: apperr.ErrForbidden},
		{name: "BadDecision", adminID: 1, id: w.ID, decision: wallet.WithdrawalPending, wantErr: apperr.ErrInvalidInput},
		{name: "Missing", adminID: 1, id: 999, decision: wallet.WithdrawalCompleted, wantErr: apperr.ErrNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := f.svc.DecideWithdrawal(ctx, tt.adminID, tt.id, tt.decision, nil)
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}

	assertBalance(t, f, 7, "100", "90", "10")
}

func TestService_CreditAndReverseSale(t *testing.T) {
	ctx := context.Background()

	f := newFixture(t)

	// The sale is credited while still pending, so the ledger has not seen it.
	require.NoError(t, f.svc.CreditSale(ctx, 7, dec("35")))
	f.ledger[7] = dec("35")
	assertBalance(t, f, 7, "35", "35", "0")

	require.NoError(t, f.svc.CreditSale(ctx, 7, dec("15")))
	f.ledger[7] = dec("50")
	assertBalance(t, f, 7, "50", "50", "0")

	_, err := f.svc.RequestWithdrawal(ctx, 7, dec("45"))
	require.NoError(t, err)

	require.NoError(t, f.svc.ReverseSale(ctx, 7, dec("35")))
	f.ledger[7] = dec("15")
	assertBalance(t, f, 7, "15", "0", "45")
}

func TestService_RequestWithdrawalFor(t *testing.T) {
	f := newFixture(t)
	f.ledger[7] = dec("20")

	_, err := f.svc.RequestWithdrawalFor(context.Background(), 7, 7, dec("5"))
	assert.ErrorIs(t, err, apperr.ErrForbidden)

	w, err := f.svc.RequestWithdrawalFor(context.Background(), 1, 7, dec("5"))
	require.NoError(t, err)
	assert.Equal(t, int64(7), w.UserID)
}

func TestService_Enrollment(t *testing.T) {
	ctx := context.Background()

	f := newFixture(t)

	params := wallet.EnrollmentParams{
		HolderName: "Ana Souza",
		Document:   "123.456.789-09",
		PixKey:     "ana@loja.com",
		PixKeyType: "email",
	}

	e, err := f.svc.SubmitEnrollment(ctx, 7, params)
	require.NoError(t, err)
	assert.Equal(t, "12345678909", e.Document)

	_, err = f.svc.SubmitEnrollment(ctx, 7, params)
	assert.ErrorIs(t, err, apperr.ErrConflict)

	f.shops.EXPECT().EnsureForOwner(gomock.Any(), int64(7)).Return(&shop.Shop{ID: 3, OwnerID: 7}, nil)
	f.shops.EXPECT().UpsertGatewayCredential(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, c *shop.GatewayCredential) error {
			assert.Equal(t, int64(3), c.ShopID)
			assert.Equal(t, shop.CredentialWallet, c.Type)
			assert.Equal(t, "ana@loja.com", c.PixKey)
			assert.True(t, c.Configured)
			assert.True(t, c.Active)
			return nil
		})

	decided, err := f.svc.DecideEnrollment(ctx, 1, e.ID, wallet.EnrollmentApproved, nil)
	require.NoError(t, err)
	assert.Equal(t, wallet.EnrollmentApproved, decided.Status)

	_, err = f.svc.DecideEnrollment(ctx, 1, e.ID, wallet.EnrollmentRejected, nil)
	assert.ErrorIs(t, err, wallet.ErrEnrollmentDecided)

	// A new request is allowed once the previous one is decided.
	_, err = f.svc.SubmitEnrollment(ctx, 7, params)
	assert.NoError(t, err)
}

func TestService_SubmitEnrollment_Validation(t *testing.T) {
	f := newFixture(t)

	type testCase struct {
		name   string
		params wallet.EnrollmentParams
	}

	tests := []testCase{
		{name: "MissingHolder", params: wallet.EnrollmentParams{Document: "12345678909", PixKey: "k"}},
		{name: "MissingPixKey", params: wallet.EnrollmentParams{HolderName: "Ana", Document: "12345678909"}},
		{name: "BadDocument", params: wallet.EnrollmentParams{HolderName: "Ana", Document: "123", PixKey: "k"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := f.svc.SubmitEnrollment(context.Background(), 7, tt.params)
			assert.ErrorIs(t, err, apperr.ErrInvalidInput)
		})
	}
}

func TestService_DecideEnrollment_RejectDoesNotTouchShop(t *testing.T) {
	f := newFixture(t)

	e, err := f.svc.SubmitEnrollment(context.Background(), 7, wallet.EnrollmentParams{
		HolderName: "Ana", Document: "12.345.678/0001-90", PixKey: "k",
	})
	require.NoError(t, err)

	_, err = f.svc.DecideEnrollment(context.Background(), 7, e.ID, wallet.EnrollmentRejected, nil)
	assert.ErrorIs(t, err, apperr.ErrForbidden)

	decided, err := f.svc.DecideEnrollment(context.Background(), 1, e.ID, wallet.EnrollmentRejected, nil)
	require.NoError(t, err)
	assert.Equal(t, wallet.EnrollmentRejected, decided.Status)
}
