package dao

import (
	"context"
	"errors"

	"frontdesk/model"
)

var (
	ErrInvalidParam  = errors.New("invalid parameter")
	ErrStateConflict = errors.New("state conflict: stored state is newer")
	ErrMaxRetries    = errors.New("max retries exceeded")
)

// SessionStore persists one ConversationState per session id. Get returns
// (nil, nil) when the session is unknown; the core then starts a fresh
// state. Implementations must keep different sessions' records independent;
// serializing concurrent turns for the same session is the caller's job.
type SessionStore interface {
	Get(ctx context.Context, sessionID string) (*model.ConversationState, error)
	Save(ctx context.Context, sessionID string, state *model.ConversationState) error
}

// TicketStore persists at most one ticket per session. FindBySession
// returns (nil, nil) when no ticket exists yet.
type TicketStore interface {
	FindBySession(ctx context.Context, sessionID string) (*model.Ticket, error)
	Upsert(ctx context.Context, ticket *model.Ticket) error
	List(ctx context.Context) ([]*model.Ticket, error)
}
