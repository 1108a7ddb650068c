package service

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/puzzlepizza/pos-admin/internal/domain/entity"
	"github.com/puzzlepizza/pos-admin/internal/infrastructure/backend"
	"github.com/puzzlepizza/pos-admin/pkg/apperror"
	"github.com/puzzlepizza/pos-admin/pkg/pagination"
)

type fakeInvoiceRepo struct {
	mu          sync.Mutex
	createCalls int
	createErr   error
	created     *entity.Invoice
	listPages   map[int][]entity.Invoice
	listErr     error
	blockCreate chan struct{} // when non-nil, Create waits on it
}

func (f *fakeInvoiceRepo) ListPage(ctx context.Context, page int) ([]entity.Invoice, error) {
	if f.listErr != nil {
		return nil, f.listErr
	}
	return f.listPages[page], nil
}

func (f *fakeInvoiceRepo) GetByID(ctx context.Context, id int) (*entity.Invoice, error) {
	return nil, apperror.NewNotFoundError("Invoice")
}

func (f *fakeInvoiceRepo) Create(ctx context.Context, inv *entity.Invoice) (*entity.Invoice, error) {
	f.mu.Lock()
	f.createCalls++
	block := f.blockCreate
	f.mu.Unlock()
	if block != nil {
		<-block
	}
	if f.createErr != nil {
		return nil, f.createErr
	}
	if f.created != nil {
		return f.created, nil
	}
	out := *inv
	out.ID = 42
	out.Total = out.ComputedTotal()
	out.CreatedAt = time.Now()
	return &out, nil
}

func (f *fakeInvoiceRepo) calls() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.createCalls
}

type fakeCatalogRepo struct {
	items   []entity.Item
	listErr error
}

func (f *fakeCatalogRepo) List(ctx context.Context) ([]entity.Item, error) {
	if f.listErr != nil {
		return nil, f.listErr
	}
	return f.items, nil
}

func (f *fakeCatalogRepo) ListPage(ctx context.Context, page int) ([]entity.Item, error) {
	return f.items, nil
}

func (f *fakeCatalogRepo) Create(ctx context.Context, item *entity.Item) (*entity.Item, error) {
	return item, nil
}

func (f *fakeCatalogRepo) Update(ctx context.Context, item *entity.Item) (*entity.Item, error) {
	return item, nil
}

func (f *fakeCatalogRepo) Delete(ctx context.Context, id int) error {
	return nil
}

func testCatalog() *fakeCatalogRepo {
	return &fakeCatalogRepo{items: []entity.Item{
		{ID: 1, Name: "Margherita", Type: "pizza", Price: decimal.NewFromInt(500)},
		{ID: 2, Name: "Coke", Type: "beverage", Price: decimal.NewFromInt(100)},
	}}
}

func newTestService(invoiceRepo *fakeInvoiceRepo, catalogRepo *fakeCatalogRepo) *InvoiceService {
	return NewInvoiceService(invoiceRepo, catalogRepo, NewSessionStore(time.Hour))
}

// buildDraft walks a session through the editing flow: two lines, both
// selected, quantities 2 and 3, tax 10%.
func buildDraft(t *testing.T, svc *InvoiceService, session *Session) {
	t.Helper()
	ctx := context.Background()

	_, err := svc.SetCustomer(session, "Ada")
	require.NoError(t, err)
	_, err = svc.SetTax(session, decimal.NewFromInt(10))
	require.NoError(t, err)

	_, err = svc.AddLine(session)
	require.NoError(t, err)
	_, err = svc.SelectItem(ctx, session, 0, 1)
	require.NoError(t, err)
	_, err = svc.SetQuantity(session, 0, 2)
	require.NoError(t, err)

	_, err = svc.AddLine(session)
	require.NoError(t, err)
	_, err = svc.SelectItem(ctx, session, 1, 2)
	require.NoError(t, err)
	_, err = svc.SetQuantity(session, 1, 3)
	require.NoError(t, err)
}

func TestSessionLiveTotals(t *testing.T) {
	svc := newTestService(&fakeInvoiceRepo{}, testCatalog())
	session := svc.StartSession()

	buildDraft(t, svc, session)

	view := svc.Snapshot(session)
	assert.Equal(t, StateEditing, view.State)
	assert.Equal(t, "1300.00", view.Totals.Subtotal.StringFixed(2))
	assert.Equal(t, "130.00", view.Totals.TaxAmount.StringFixed(2))
	assert.Equal(t, "1430.00", view.Totals.Total.StringFixed(2))
}

func TestSelectItemSnapshotsPrice(t *testing.T) {
	catalog := testCatalog()
	svc := newTestService(&fakeInvoiceRepo{}, catalog)
	session := svc.StartSession()

	_, err := svc.AddLine(session)
	require.NoError(t, err)
	_, err = svc.SelectItem(context.Background(), session, 0, 1)
	require.NoError(t, err)

	// Catalog price changes after selection; the line keeps its snapshot.
	catalog.items[0].Price = decimal.NewFromInt(999)

	view := svc.Snapshot(session)
	require.Len(t, view.Lines, 1)
	assert.Equal(t, "500", view.Lines[0].UnitPrice.String())
	assert.Equal(t, "Margherita", view.Lines[0].DisplayName)
}

func TestSelectItemUnknownItem(t *testing.T) {
	svc := newTestService(&fakeInvoiceRepo{}, testCatalog())
	session := svc.StartSession()

	_, err := svc.AddLine(session)
	require.NoError(t, err)
	_, err = svc.SelectItem(context.Background(), session, 0, 99)
	assert.True(t, apperror.IsAppError(err))
	assert.Equal(t, apperror.KindNotFound, apperror.GetAppError(err).Kind)
}

func TestRemoveLine(t *testing.T) {
	svc := newTestService(&fakeInvoiceRepo{}, testCatalog())
	session := svc.StartSession()
	buildDraft(t, svc, session)

	view, err := svc.RemoveLine(session, 0)
	require.NoError(t, err)
	require.Len(t, view.Lines, 1)
	assert.Equal(t, "Coke", view.Lines[0].DisplayName)
	assert.Equal(t, "300.00", view.Totals.Subtotal.StringFixed(2))

	_, err = svc.RemoveLine(session, 5)
	assert.True(t, apperror.IsValidation(err))
}

func TestSetTaxRejectsNegative(t *testing.T) {
	svc := newTestService(&fakeInvoiceRepo{}, testCatalog())
	session := svc.StartSession()

	_, err := svc.SetTax(session, decimal.NewFromInt(-5))
	assert.True(t, apperror.IsValidation(err))
}

func TestValidateDraft(t *testing.T) {
	selected := []entity.DraftLine{{ItemID: 1, Quantity: 1, UnitPrice: decimal.NewFromInt(500)}}

	tests := []struct {
		name         string
		customerName string
		lines        []entity.DraftLine
		wantErr      error
	}{
		{"valid", "Ada", selected, nil},
		{"blank customer", "   ", selected, apperror.ErrCustomerNameRequired},
		{"no lines", "Ada", nil, apperror.ErrNoItems},
		{"unselected line", "Ada", []entity.DraftLine{{Quantity: 1}}, apperror.ErrInvalidLine},
		{"zero quantity", "Ada", []entity.DraftLine{{ItemID: 1, Quantity: 0}}, apperror.ErrInvalidLine},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateDraft(tt.customerName, tt.lines)
			if tt.wantErr == nil {
				assert.NoError(t, err)
			} else {
				assert.ErrorIs(t, err, tt.wantErr)
			}
		})
	}
}

func TestSubmitValidationFailureMakesNoNetworkCall(t *testing.T) {
	repo := &fakeInvoiceRepo{}
	svc := newTestService(repo, testCatalog())
	session := svc.StartSession()

	// Customer name missing.
	view, err := svc.Submit(context.Background(), session)
	assert.ErrorIs(t, err, apperror.ErrCustomerNameRequired)
	assert.Equal(t, 0, repo.calls(), "validation failure must not reach the backend")
	assert.Equal(t, StateEditing, view.State, "draft stays editable")
	assert.Equal(t, apperror.ErrCustomerNameRequired.Error(), view.LastError)
}

func TestSubmitSuccess(t *testing.T) {
	repo := &fakeInvoiceRepo{}
	svc := newTestService(repo, testCatalog())
	session := svc.StartSession()
	buildDraft(t, svc, session)

	view, err := svc.Submit(context.Background(), session)
	require.NoError(t, err)
	assert.Equal(t, StateCreated, view.State)
	require.NotNil(t, view.Invoice)
	assert.Equal(t, 42, view.Invoice.ID)
	assert.Equal(t, "1430.00", view.Invoice.Total.StringFixed(2))
	assert.Equal(t, 1, repo.calls())

	// A created session refuses further edits and resubmission.
	_, err = svc.SetCustomer(session, "Bob")
	assert.True(t, apperror.IsValidation(err))
	_, err = svc.Submit(context.Background(), session)
	assert.True(t, apperror.IsValidation(err))
	assert.Equal(t, 1, repo.calls())
}

func TestSubmitFailureKeepsDraft(t *testing.T) {
	repo := &fakeInvoiceRepo{createErr: apperror.NewNetworkError("backend unreachable")}
	svc := newTestService(repo, testCatalog())
	session := svc.StartSession()
	buildDraft(t, svc, session)

	view, err := svc.Submit(context.Background(), session)
	require.Error(t, err)
	assert.Equal(t, StateFailed, view.State)
	assert.Equal(t, "backend unreachable", view.LastError)
	assert.Len(t, view.Lines, 2, "draft survives a failed submission")

	// An edit folds the session back into editing and clears the error.
	view, err = svc.SetCustomer(session, "Ada Lovelace")
	require.NoError(t, err)
	assert.Equal(t, StateEditing, view.State)
	assert.Empty(t, view.LastError)

	// Resubmission works once the backend recovers.
	repo.createErr = nil
	view, err = svc.Submit(context.Background(), session)
	require.NoError(t, err)
	assert.Equal(t, StateCreated, view.State)
	assert.Equal(t, 2, repo.calls())
}

func TestSubmitRejectsConcurrentSubmission(t *testing.T) {
	block := make(chan struct{})
	repo := &fakeInvoiceRepo{blockCreate: block}
	svc := newTestService(repo, testCatalog())
	session := svc.StartSession()
	buildDraft(t, svc, session)

	done := make(chan error, 1)
	go func() {
		_, err := svc.Submit(context.Background(), session)
		done <- err
	}()

	// Wait for the first submit to enter the in-flight state.
	require.Eventually(t, func() bool {
		return svc.Snapshot(session).State == StateSubmitting
	}, time.Second, 5*time.Millisecond)

	_, err := svc.Submit(context.Background(), session)
	assert.True(t, apperror.IsValidation(err), "second submit while in flight is rejected")

	// Edits are rejected too while in flight.
	_, err = svc.SetQuantity(session, 0, 9)
	assert.True(t, apperror.IsValidation(err))

	close(block)
	require.NoError(t, <-done)
	assert.Equal(t, 1, repo.calls(), "exactly one creation request per submission")
}

func TestResetStartsFreshDraft(t *testing.T) {
	repo := &fakeInvoiceRepo{}
	svc := newTestService(repo, testCatalog())
	session := svc.StartSession()
	buildDraft(t, svc, session)

	_, err := svc.Submit(context.Background(), session)
	require.NoError(t, err)

	view, err := svc.Reset(session)
	require.NoError(t, err)
	assert.Equal(t, StateEditing, view.State)
	assert.Empty(t, view.CustomerName)
	assert.Empty(t, view.Lines)
	assert.Nil(t, view.Invoice)
	assert.Equal(t, "0.00", view.Totals.Total.StringFixed(2))
}

func TestListPageDiscardsStaleResponse(t *testing.T) {
	repo := &fakeInvoiceRepo{listPages: map[int][]entity.Invoice{
		1: {{ID: 1}, {ID: 2}},
		2: {{ID: 3}},
	}}
	svc := newTestService(repo, testCatalog())
	ctx := context.Background()

	// Tag a request for page 1 but let a later request for page 2 resolve
	// first; the page 1 response must then be discarded in favor of page 2.
	staleSeq := svc.pageView.Issue()

	page2, err := svc.ListPage(ctx, 2)
	require.NoError(t, err)
	assert.Equal(t, 2, page2.Page)

	stale, err := repo.ListPage(ctx, 1)
	require.NoError(t, err)
	accepted := svc.pageView.Accept(staleSeq, pagination.NewPage(stale, 1, backend.InvoicesPageSize))
	assert.False(t, accepted)
	assert.Equal(t, 2, svc.pageView.Current().Page)
}

func TestSessionStoreCleanup(t *testing.T) {
	store := NewSessionStore(time.Hour)
	fresh := store.Create()
	stale := store.Create()

	stale.mu.Lock()
	stale.touchedAt = time.Now().Add(-2 * time.Hour)
	stale.mu.Unlock()

	store.cleanup()

	assert.NotNil(t, store.Get(fresh.ID))
	assert.Nil(t, store.Get(stale.ID))
}

func TestSessionStoreCleanupSparesInFlightSessions(t *testing.T) {
	store := NewSessionStore(time.Hour)
	session := store.Create()

	session.mu.Lock()
	session.State = StateSubmitting
	session.touchedAt = time.Now().Add(-2 * time.Hour)
	session.mu.Unlock()

	store.cleanup()

	assert.NotNil(t, store.Get(session.ID), "in-flight sessions are never reaped")
}
