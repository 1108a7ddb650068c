package service

import (
	"context"
	"strings"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/puzzlepizza/pos-admin/internal/domain/entity"
	"github.com/puzzlepizza/pos-admin/internal/domain/repository"
	"github.com/puzzlepizza/pos-admin/internal/infrastructure/backend"
	"github.com/puzzlepizza/pos-admin/pkg/apperror"
	"github.com/puzzlepizza/pos-admin/pkg/pagination"
)

// InvoiceService handles invoice listing, the invoice-creation session flow
// and the live totals preview. All persistence lives in the backend; the
// service owns only the per-session draft state.
type InvoiceService struct {
	invoiceRepo repository.InvoiceRepository
	catalogRepo repository.CatalogRepository
	sessions    *SessionStore
	pageView    pagination.View[entity.Invoice]
}

// NewInvoiceService creates a new invoice service
func NewInvoiceService(
	invoiceRepo repository.InvoiceRepository,
	catalogRepo repository.CatalogRepository,
	sessions *SessionStore,
) *InvoiceService {
	return &InvoiceService{
		invoiceRepo: invoiceRepo,
		catalogRepo: catalogRepo,
		sessions:    sessions,
	}
}

// ListPage returns one page of invoice summaries. Like the catalog listing,
// fetches are sequence-tagged so out-of-order responses never clobber a more
// recently requested page.
func (s *InvoiceService) ListPage(ctx context.Context, page int) (pagination.Page[entity.Invoice], error) {
	seq := s.pageView.Issue()
	invoices, err := s.invoiceRepo.ListPage(ctx, page)
	if err != nil {
		return pagination.Page[entity.Invoice]{}, err
	}
	fetched := pagination.NewPage(invoices, page, backend.InvoicesPageSize)
	if s.pageView.Accept(seq, fetched) {
		return fetched, nil
	}
	return s.pageView.Current(), nil
}

// GetByID fetches the full invoice detail.
func (s *InvoiceService) GetByID(ctx context.Context, id int) (*entity.Invoice, error) {
	return s.invoiceRepo.GetByID(ctx, id)
}

// StartSession begins a new invoice-creation session in the editing state.
func (s *InvoiceService) StartSession() *Session {
	return s.sessions.Create()
}

// GetSession returns the session with the given id.
func (s *InvoiceService) GetSession(id uuid.UUID) (*Session, error) {
	session := s.sessions.Get(id)
	if session == nil {
		return nil, apperror.NewNotFoundError("Session")
	}
	return session, nil
}

// SessionView is a snapshot of a session's draft state with recomputed
// totals, safe to serialize without holding the session lock.
type SessionView struct {
	ID           uuid.UUID          `json:"id"`
	State        SessionState       `json:"state"`
	CustomerName string             `json:"customer_name"`
	TaxPercent   string             `json:"tax_percent"`
	Lines        []entity.DraftLine `json:"lines"`
	Totals       entity.Totals      `json:"totals"`
	LastError    string             `json:"last_error,omitempty"`
	Invoice      *entity.Invoice    `json:"invoice,omitempty"`
}

func snapshotLocked(session *Session) SessionView {
	lines := make([]entity.DraftLine, len(session.Lines))
	copy(lines, session.Lines)
	return SessionView{
		ID:           session.ID,
		State:        session.State,
		CustomerName: session.CustomerName,
		TaxPercent:   session.TaxPercent.String(),
		Lines:        lines,
		Totals:       entity.ComputeTotals(lines, session.TaxPercent),
		LastError:    session.LastError,
		Invoice:      session.Invoice,
	}
}

// Snapshot returns the session's current state with live totals.
func (s *InvoiceService) Snapshot(session *Session) SessionView {
	session.mu.Lock()
	defer session.mu.Unlock()
	return snapshotLocked(session)
}

// editingLocked ensures the session accepts draft mutations, folding a Failed
// session back into Editing. Callers hold session.mu.
func editingLocked(session *Session) error {
	switch session.State {
	case StateSubmitting:
		return apperror.NewValidationError("submission in progress")
	case StateCreated:
		return apperror.NewValidationError("invoice already created; start a new session")
	case StateFailed:
		session.State = StateEditing
		session.LastError = ""
	}
	return nil
}

// AddLine appends an empty draft line (no item selected, quantity 1).
func (s *InvoiceService) AddLine(session *Session) (SessionView, error) {
	session.mu.Lock()
	defer session.mu.Unlock()
	if err := editingLocked(session); err != nil {
		return snapshotLocked(session), err
	}
	session.Lines = append(session.Lines, entity.DraftLine{Quantity: 1})
	session.touch()
	return snapshotLocked(session), nil
}

// RemoveLine deletes the draft line at the given index.
func (s *InvoiceService) RemoveLine(session *Session, index int) (SessionView, error) {
	session.mu.Lock()
	defer session.mu.Unlock()
	if err := editingLocked(session); err != nil {
		return snapshotLocked(session), err
	}
	if index < 0 || index >= len(session.Lines) {
		return snapshotLocked(session), apperror.NewValidationError("no such line")
	}
	session.Lines = append(session.Lines[:index], session.Lines[index+1:]...)
	session.touch()
	return snapshotLocked(session), nil
}

// SelectItem assigns a catalog item to the draft line at index, snapshotting
// the item's current price and name into the line. The snapshot is what gets
// invoiced, even if the catalog price changes afterwards.
func (s *InvoiceService) SelectItem(ctx context.Context, session *Session, index, itemID int) (SessionView, error) {
	items, err := s.catalogRepo.List(ctx)
	if err != nil {
		return s.Snapshot(session), err
	}
	lookup := entity.NewItemLookup(items)
	item, ok := lookup[itemID]
	if !ok {
		return s.Snapshot(session), apperror.NewNotFoundError("Item")
	}

	session.mu.Lock()
	defer session.mu.Unlock()
	if err := editingLocked(session); err != nil {
		return snapshotLocked(session), err
	}
	if index < 0 || index >= len(session.Lines) {
		return snapshotLocked(session), apperror.NewValidationError("no such line")
	}
	line := &session.Lines[index]
	line.ItemID = item.ID
	line.UnitPrice = item.Price
	line.DisplayName = item.Name
	session.touch()
	return snapshotLocked(session), nil
}

// SetQuantity updates the quantity of the draft line at index.
func (s *InvoiceService) SetQuantity(session *Session, index, quantity int) (SessionView, error) {
	session.mu.Lock()
	defer session.mu.Unlock()
	if err := editingLocked(session); err != nil {
		return snapshotLocked(session), err
	}
	if index < 0 || index >= len(session.Lines) {
		return snapshotLocked(session), apperror.NewValidationError("no such line")
	}
	session.Lines[index].Quantity = quantity
	session.touch()
	return snapshotLocked(session), nil
}

// SetCustomer updates the customer name on the draft.
func (s *InvoiceService) SetCustomer(session *Session, name string) (SessionView, error) {
	session.mu.Lock()
	defer session.mu.Unlock()
	if err := editingLocked(session); err != nil {
		return snapshotLocked(session), err
	}
	session.CustomerName = name
	session.touch()
	return snapshotLocked(session), nil
}

// SetTax updates the tax rate (percent units) on the draft.
func (s *InvoiceService) SetTax(session *Session, taxPercent decimal.Decimal) (SessionView, error) {
	session.mu.Lock()
	defer session.mu.Unlock()
	if err := editingLocked(session); err != nil {
		return snapshotLocked(session), err
	}
	if taxPercent.IsNegative() {
		return snapshotLocked(session), apperror.NewValidationError("tax rate must be >= 0")
	}
	session.TaxPercent = taxPercent
	session.touch()
	return snapshotLocked(session), nil
}

// ValidateDraft checks a draft for submission. It is pure: no network call
// is made, and the draft is left untouched.
func ValidateDraft(customerName string, lines []entity.DraftLine) error {
	if strings.TrimSpace(customerName) == "" {
		return apperror.ErrCustomerNameRequired
	}
	if len(lines) == 0 {
		return apperror.ErrNoItems
	}
	for _, line := range lines {
		if line.ItemID == 0 || line.Quantity < 1 {
			return apperror.ErrInvalidLine
		}
	}
	return nil
}

// Submit validates the draft and creates the invoice on the backend.
//
// Validation failures block the network call entirely and leave the draft
// unchanged. While the request is in flight the session is in Submitting and
// concurrent submits are rejected; there is no client-side retry and no
// idempotency key, so at most one creation request exists per session. On
// failure the session moves to Failed with the draft intact; on success it
// holds the server's canonical invoice, whose total is authoritative.
func (s *InvoiceService) Submit(ctx context.Context, session *Session) (SessionView, error) {
	session.mu.Lock()
	switch session.State {
	case StateSubmitting:
		view := snapshotLocked(session)
		session.mu.Unlock()
		return view, apperror.NewValidationError("submission in progress")
	case StateCreated:
		view := snapshotLocked(session)
		session.mu.Unlock()
		return view, apperror.NewValidationError("invoice already created; start a new session")
	}

	if err := ValidateDraft(session.CustomerName, session.Lines); err != nil {
		session.State = StateEditing
		session.LastError = err.Error()
		view := snapshotLocked(session)
		session.mu.Unlock()
		return view, err
	}

	draft := &entity.Invoice{
		CustomerName: session.CustomerName,
		Tax:          session.TaxPercent,
		Lines:        make([]entity.InvoiceLine, 0, len(session.Lines)),
	}
	for _, line := range session.Lines {
		draft.Lines = append(draft.Lines, entity.InvoiceLine{
			ItemID:   line.ItemID,
			Quantity: line.Quantity,
			Price:    line.UnitPrice,
		})
	}
	session.State = StateSubmitting
	session.LastError = ""
	session.touch()
	session.mu.Unlock()

	created, err := s.invoiceRepo.Create(ctx, draft)

	session.mu.Lock()
	defer session.mu.Unlock()
	if err != nil {
		session.State = StateFailed
		session.LastError = apperror.GetAppError(err).Message
		session.touch()
		return snapshotLocked(session), err
	}
	session.State = StateCreated
	session.Invoice = created
	session.touch()
	return snapshotLocked(session), nil
}

// Reset discards a finalized (or failed) session back to a fresh editing
// state: the "create another invoice" action.
func (s *InvoiceService) Reset(session *Session) (SessionView, error) {
	session.mu.Lock()
	defer session.mu.Unlock()
	if session.State == StateSubmitting {
		return snapshotLocked(session), apperror.NewValidationError("submission in progress")
	}
	session.State = StateEditing
	session.CustomerName = ""
	session.TaxPercent = decimal.Zero
	session.Lines = []entity.DraftLine{}
	session.LastError = ""
	session.Invoice = nil
	session.touch()
	return snapshotLocked(session), nil
}
