package dao

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"

	"frontdesk/model"
)

// MemoryStore is a process-local implementation of SessionStore and
// TicketStore, used in tests and in redis-less deployments. Records are
// deep-copied through JSON on the way in and out so callers never share
// memory with the store.
type MemoryStore struct {
	mu       sync.RWMutex
	sessions map[string]*model.ConversationState
	tickets  map[string]*model.Ticket
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		sessions: make(map[string]*model.ConversationState),
		tickets:  make(map[string]*model.Ticket),
	}
}

func (s *MemoryStore) Get(ctx context.Context, sessionID string) (*model.ConversationState, error) {
	if sessionID == "" {
		return nil, fmt.Errorf("%w: sessionID is empty", ErrInvalidParam)
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	state, ok := s.sessions[sessionID]
	if !ok {
		return nil, nil
	}
	return copyRecord(state)
}

func (s *MemoryStore) Save(ctx context.Context, sessionID string, state *model.ConversationState) error {
	if sessionID == "" {
		return fmt.Errorf("%w: sessionID is empty", ErrInvalidParam)
	}
	if state == nil {
		return fmt.Errorf("%w: state is nil", ErrInvalidParam)
	}

	stored, err := copyRecord(state)
	if err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.sessions[sessionID] = stored
	return nil
}

func (s *MemoryStore) FindBySession(ctx context.Context, sessionID string) (*model.Ticket, error) {
	if sessionID == "" {
		return nil, fmt.Errorf("%w: sessionID is empty", ErrInvalidParam)
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	ticket, ok := s.tickets[sessionID]
	if !ok {
		return nil, nil
	}
	return copyRecord(ticket)
}

func (s *MemoryStore) Upsert(ctx context.Context, ticket *model.Ticket) error {
	if ticket == nil || ticket.SessionID == "" {
		return fmt.Errorf("%w: ticket or ticket.SessionID is empty", ErrInvalidParam)
	}

	stored, err := copyRecord(ticket)
	if err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.tickets[ticket.SessionID] = stored
	return nil
}

func (s *MemoryStore) List(ctx context.Context) ([]*model.Ticket, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	tickets := make([]*model.Ticket, 0, len(s.tickets))
	for _, t := range s.tickets {
		copied, err := copyRecord(t)
		if err != nil {
			return nil, err
		}
		tickets = append(tickets, copied)
	}
	return tickets, nil
}

func copyRecord[T any](v *T) (*T, error) {
	data, err := json.Marshal(v)
	if err != nil {
		return nil, err
	}
	var out T
	if err := json.Unmarshal(data, &out); err != nil {
		return nil, err
	}
	return &out, nil
}
