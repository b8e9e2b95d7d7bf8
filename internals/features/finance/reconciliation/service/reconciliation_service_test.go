package service

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"coursedesk_backend/internals/features/integrations/stripegw"
	helper "coursedesk_backend/internals/helpers"
	"coursedesk_backend/internals/helpers/dbtime"
)

type memTx struct {
	payoutID     *string
	paymentPI    string
	reconciled   bool
	reconciledAt *time.Time
	payoutDate   dbtime.Date
	amount       int64
}

type memStore struct {
	mu      sync.Mutex
	rows    map[uuid.UUID]*memTx
	updates int
}

func newMemStore() *memStore { return &memStore{rows: map[uuid.UUID]*memTx{}} }

func (m *memStore) ListUnreconciled(context.Context) ([]UnreconciledRow, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []UnreconciledRow
	for id, r := range m.rows {
		if r.payoutID == nil || r.reconciled {
			continue
		}
		out = append(out, UnreconciledRow{TransactionID: id, PayoutID: *r.payoutID, PayoutDate: r.payoutDate, PaymentAmountCents: r.amount})
	}
	return out, nil
}

func (m *memStore) GetReconcileState(_ context.Context, id uuid.UUID) (*ReconcileState, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	r, ok := m.rows[id]
	if !ok {
		return nil, helper.NotFound("transaction")
	}
	return &ReconcileState{PayoutID: r.payoutID, Reconciled: r.reconciled, ReconciledAt: r.reconciledAt}, nil
}

func (m *memStore) MarkReconciled(_ context.Context, id uuid.UUID, at time.Time) (int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	r, ok := m.rows[id]
	if !ok || r.reconciled {
		return 0, nil
	}
	m.updates++
	r.reconciled = true
	r.reconciledAt = &at
	return 1, nil
}

func (m *memStore) StampPayout(_ context.Context, pi, payoutID string, day dbtime.Date, amount int64) (int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var n int64
	for _, r := range m.rows {
		if r.paymentPI == pi && r.payoutID == nil {
			id := payoutID
			r.payoutID = &id
			r.payoutDate = day
			r.amount = amount
			n++
		}
	}
	return n, nil
}

func strPtr(s string) *string { return &s }

func TestGroupByPayout(t *testing.T) {
	rows := []UnreconciledRow{
		{PayoutID: "po_1", PayoutDate: dbtime.MustParseDate("2025-05-01"), PaymentAmountCents: 1000},
		{PayoutID: "po_2", PayoutDate: dbtime.MustParseDate("2025-05-08"), PaymentAmountCents: 250},
		{PayoutID: "po_1", PayoutDate: dbtime.MustParseDate("2025-05-01"), PaymentAmountCents: 2500},
	}

	groups := GroupByPayout(rows)
	require.Len(t, groups, 2)

	assert.Equal(t, "po_2", groups[0].PayoutID)
	assert.Equal(t, int64(250), groups[0].PayoutTotalCents)

	assert.Equal(t, "po_1", groups[1].PayoutID)
	assert.Equal(t, int64(3500), groups[1].PayoutTotalCents)
	assert.Equal(t, "2025-05-01", groups[1].PayoutDate.String())
	assert.Len(t, groups[1].Transactions, 2)
}

func TestGroupByPayout_Empty(t *testing.T) {
	assert.Empty(t, GroupByPayout(nil))
}

func TestReconcile_Idempotent(t *testing.T) {
	store := newMemStore()
	id := uuid.New()
	store.rows[id] = &memTx{payoutID: strPtr("po_1")}

	fixed := time.Date(2025, 6, 1, 9, 0, 0, 0, time.UTC)
	svc := NewService(store)
	svc.Now = func() time.Time { return fixed }

	first, err := svc.Reconcile(context.Background(), id)
	require.NoError(t, err)
	assert.True(t, first.Reconciled)
	assert.False(t, first.AlreadyDone)

	second, err := svc.Reconcile(context.Background(), id)
	require.NoError(t, err)
	assert.True(t, second.Reconciled)
	assert.True(t, second.AlreadyDone)
	assert.Equal(t, first.ReconciledAt, second.ReconciledAt)

	assert.Equal(t, 1, store.updates)
	assert.True(t, store.rows[id].reconciled)
}

func TestReconcile_ConcurrentCallsAllSucceed(t *testing.T) {
	store := newMemStore()
	id := uuid.New()
	store.rows[id] = &memTx{payoutID: strPtr("po_1")}
	svc := NewService(store)

	var wg sync.WaitGroup
	errs := make(chan error, 8)
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := svc.Reconcile(context.Background(), id)
			errs <- err
		}()
	}
	wg.Wait()
	close(errs)

	for err := range errs {
		assert.NoError(t, err)
	}
	assert.Equal(t, 1, store.updates)
}

func TestReconcile_NotPaidOut(t *testing.T) {
	store := newMemStore()
	id := uuid.New()
	store.rows[id] = &memTx{}

	_, err := NewService(store).Reconcile(context.Background(), id)
	var fe *fiber.Error
	require.ErrorAs(t, err, &fe)
	assert.Equal(t, fiber.StatusConflict, fe.Code)
}

func TestReconcile_Missing(t *testing.T) {
	_, err := NewService(newMemStore()).Reconcile(context.Background(), uuid.New())
	var fe *fiber.Error
	require.ErrorAs(t, err, &fe)
	assert.Equal(t, fiber.StatusNotFound, fe.Code)
}

type fakePayouts struct {
	payouts []stripegw.Payout
	charges map[string][]stripegw.PayoutCharge
	err     error
}

func (f *fakePayouts) ListPaidPayouts(context.Context, time.Time) ([]stripegw.Payout, error) {
	return f.payouts, f.err
}

func (f *fakePayouts) ListPayoutCharges(_ context.Context, id string) ([]stripegw.PayoutCharge, error) {
	return f.charges[id], nil
}

func TestSyncPayouts_StampsOnce(t *testing.T) {
	store := newMemStore()
	a, b := uuid.New(), uuid.New()
	store.rows[a] = &memTx{paymentPI: "pi_a"}
	store.rows[b] = &memTx{paymentPI: "pi_b"}

	src := &fakePayouts{
		payouts: []stripegw.Payout{{ID: "po_9", ArrivalDate: time.Date(2025, 5, 3, 0, 0, 0, 0, time.UTC)}},
		charges: map[string][]stripegw.PayoutCharge{
			"po_9": {{PaymentIntentID: "pi_a", AmountCents: 25000}, {PaymentIntentID: "pi_unknown", AmountCents: 100}},
		},
	}
	svc := NewService(store)

	sum, err := svc.SyncPayouts(context.Background(), src, time.Time{})
	require.NoError(t, err)
	assert.Equal(t, SyncSummary{Payouts: 1, Charges: 2, Transactions: 1}, sum)
	assert.Equal(t, "po_9", *store.rows[a].payoutID)
	assert.Equal(t, "2025-05-03", store.rows[a].payoutDate.String())
	assert.Nil(t, store.rows[b].payoutID)

	again, err := svc.SyncPayouts(context.Background(), src, time.Time{})
	require.NoError(t, err)
	assert.Zero(t, again.Transactions)

	groups, err := svc.ListGroups(context.Background())
	require.NoError(t, err)
	require.Len(t, groups, 1)
	assert.Equal(t, int64(25000), groups[0].PayoutTotalCents)
}

func TestSyncPayouts_SourceError(t *testing.T) {
	_, err := NewService(newMemStore()).SyncPayouts(context.Background(), &fakePayouts{err: errors.New("stripe down")}, time.Time{})
	assert.Error(t, err)
}
