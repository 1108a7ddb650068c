package service

import (
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/puzzlepizza/pos-admin/internal/domain/entity"
)

// SessionState is the lifecycle state of an invoice-creation session.
type SessionState string

const (
	// StateEditing: the draft is being composed; totals recompute live.
	StateEditing SessionState = "editing"
	// StateSubmitting: a creation request is in flight; further submits are
	// rejected so at most one creation request exists per session.
	StateSubmitting SessionState = "submitting"
	// StateCreated: the backend persisted the invoice; the session holds the
	// canonical record and may print it any number of times.
	StateCreated SessionState = "created"
	// StateFailed: the last submission failed. The draft is intact and the
	// error surfaced; any edit or resubmission moves back through Editing.
	StateFailed SessionState = "failed"
)

// Session holds the transient draft state for one invoice-creation flow.
type Session struct {
	mu sync.Mutex

	ID           uuid.UUID
	State        SessionState
	CustomerName string
	TaxPercent   decimal.Decimal
	Lines        []entity.DraftLine
	LastError    string
	Invoice      *entity.Invoice // set once State == StateCreated
	touchedAt    time.Time
}

func (s *Session) touch() {
	s.touchedAt = time.Now()
}

// SessionStore keeps active sessions in memory, keyed by session id.
// Sessions idle past the TTL are dropped by a background sweep.
type SessionStore struct {
	mu       sync.RWMutex
	sessions map[uuid.UUID]*Session
	ttl      time.Duration
}

// NewSessionStore creates a session store and starts its cleanup loop.
func NewSessionStore(ttl time.Duration) *SessionStore {
	store := &SessionStore{
		sessions: make(map[uuid.UUID]*Session),
		ttl:      ttl,
	}
	go store.cleanupLoop()
	return store
}

// Create starts a new editing session.
func (st *SessionStore) Create() *Session {
	session := &Session{
		ID:         uuid.New(),
		State:      StateEditing,
		TaxPercent: decimal.Zero,
		Lines:      []entity.DraftLine{},
	}
	session.touch()

	st.mu.Lock()
	st.sessions[session.ID] = session
	st.mu.Unlock()
	return session
}

// Get returns the session with the given id, or nil.
func (st *SessionStore) Get(id uuid.UUID) *Session {
	st.mu.RLock()
	defer st.mu.RUnlock()
	return st.sessions[id]
}

func (st *SessionStore) cleanupLoop() {
	ticker := time.NewTicker(st.ttl / 2)
	defer ticker.Stop()

	for range ticker.C {
		st.cleanup()
	}
}

func (st *SessionStore) cleanup() {
	cutoff := time.Now().Add(-st.ttl)

	st.mu.Lock()
	defer st.mu.Unlock()
	for id, session := range st.sessions {
		session.mu.Lock()
		stale := session.touchedAt.Before(cutoff) && session.State != StateSubmitting
		session.mu.Unlock()
		if stale {
			delete(st.sessions, id)
		}
	}
}
