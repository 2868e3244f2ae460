package cart

import (
	"context"
	"sync"
)

// Overrides carries the transient checkout-form values for one
// session. They take precedence over the saved profile for a single
// order and are never persisted to the database.
type Overrides struct {
	Phone         string `json:"phone"`
	Notes         string `json:"notes"`
	PaymentMethod string `json:"payment_method"`
}

// Session is the unit stored per cart session id.
type Session struct {
	Cart      Cart      `json:"cart"`
	Overrides Overrides `json:"overrides"`
}

// Store persists cart sessions keyed by session id. A missing
// session loads as an empty one.
type Store interface {
	Load(ctx context.Context, sessionID string) (*Session, error)
	Save(ctx context.Context, sessionID string, session *Session) error
	Delete(ctx context.Context, sessionID string) error
}

// MemoryStore is an in-process Store used by tests and local
// development without Redis.
type MemoryStore struct {
	mu       sync.Mutex
	sessions map[string]Session
}

// NewMemoryStore builds an empty in-process store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{sessions: make(map[string]Session)}
}

// Load returns a copy of the stored session, or an empty session when
// none exists.
func (s *MemoryStore) Load(_ context.Context, sessionID string) (*Session, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	stored, ok := s.sessions[sessionID]
	if !ok {
		return &Session{}, nil
	}
	stored.Cart.Lines = append([]Line(nil), stored.Cart.Lines...)
	return &stored, nil
}

// Save stores a copy of the session.
func (s *MemoryStore) Save(_ context.Context, sessionID string, session *Session) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	stored := *session
	stored.Cart.Lines = append([]Line(nil), session.Cart.Lines...)
	s.sessions[sessionID] = stored
	return nil
}

// Delete removes the session if present.
func (s *MemoryStore) Delete(_ context.Context, sessionID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.sessions, sessionID)
	return nil
}
