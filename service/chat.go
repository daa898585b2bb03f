package service

import (
	"context"
	"strings"
	"time"

	"github.com/rs/zerolog/log"

	"frontdesk/dao"
	"frontdesk/internal/notify"
	"frontdesk/model"
)

// ChatService runs the per-turn pipeline: classify, merge, infer topic,
// extract contact slots, reply, plan and execute actions, persist. One
// turn is computed to completion before the state is saved; turns for the
// same session must be serialized by the caller.
type ChatService struct {
	sessions dao.SessionStore
	tickets  dao.TicketStore
	exec     *Executor
	now      func() time.Time
}

func NewChatService(sessions dao.SessionStore, tickets dao.TicketStore, notifier notify.Notifier) *ChatService {
	return &ChatService{
		sessions: sessions,
		tickets:  tickets,
		exec:     NewExecutor(tickets, notifier),
		now:      time.Now,
	}
}

// Executor exposes the service's executor for wiring test hooks.
func (s *ChatService) Executor() *Executor {
	return s.exec
}

// WithClock overrides the service's time source. Test hook.
func (s *ChatService) WithClock(now func() time.Time) *ChatService {
	s.now = now
	s.exec.WithClock(now)
	return s
}

func (s *ChatService) nowISO() string {
	return s.now().UTC().Format(time.RFC3339)
}

// ProcessTurn handles one utterance for one session. Every input, however
// malformed, produces a valid response; store failures are the only errors
// surfaced.
func (s *ChatService) ProcessTurn(ctx context.Context, req model.ChatRequest) (*model.ChatResponse, error) {
	state, err := s.loadState(ctx, req)
	if err != nil {
		return nil, err
	}

	msg := strings.TrimSpace(req.UserMessage)
	if msg != "" {
		state.Details = append(state.Details, msg)
	}

	// Classification never clears prior values: a no-detection turn keeps
	// the conversation's intent and procedure as they were.
	if intent := ClassifyIntent(msg); intent != model.IntentNone {
		state.Intent = intent
	}
	if procedure := ClassifyProcedure(msg); procedure != model.ProcedureNone {
		state.Procedure = procedure
	}

	state.Topic = InferTopic(state.Intent, state.Procedure)

	ExtractContact(state, msg)

	reply := NextReply(state)

	actions := PlanActions(state)
	executed := s.exec.RunActions(ctx, req.SessionID, state, actions)
	ticketID := TicketIDFromResults(executed)

	state.UpdatedAt = s.nowISO()
	if err := s.sessions.Save(ctx, req.SessionID, state); err != nil {
		return nil, err
	}

	log.Info().
		Str("session", req.SessionID).
		Str("intent", string(state.Intent)).
		Str("procedure", string(state.Procedure)).
		Str("step", string(state.Step)).
		Int("actions", len(actions)).
		Str("ticket_id", ticketID).
		Msg("turn processed")

	return &model.ChatResponse{
		SessionID:       req.SessionID,
		ReplyText:       reply,
		State:           state,
		ActionsExecuted: executed,
		TicketID:        ticketID,
	}, nil
}

// loadState resolves the turn's starting state: an explicit prior_state
// from the caller wins, then the stored session, then a fresh record.
func (s *ChatService) loadState(ctx context.Context, req model.ChatRequest) (*model.ConversationState, error) {
	if req.PriorState != nil {
		return req.PriorState, nil
	}

	state, err := s.sessions.Get(ctx, req.SessionID)
	if err != nil {
		return nil, err
	}
	if state != nil {
		return state, nil
	}

	return model.NewConversationState(s.nowISO()), nil
}

// ResolveSession is the ticket-closure path: it moves the session's step
// to RESOLVED and re-upserts the ticket, which flips its status to closed.
// Returns the closed ticket, or (nil, nil) when the session has none.
func (s *ChatService) ResolveSession(ctx context.Context, sessionID string) (*model.Ticket, error) {
	ticket, err := s.tickets.FindBySession(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	if ticket == nil {
		return nil, nil
	}

	state, err := s.sessions.Get(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	if state == nil {
		state = model.NewConversationState(s.nowISO())
	}
	state.Step = model.StepResolved
	state.UpdatedAt = s.nowISO()

	res := s.exec.upsertTicket(ctx, sessionID, state)
	if !res.OK {
		if msg, ok := res.Data["error"].(string); ok {
			log.Error().Str("session", sessionID).Str("error", msg).Msg("ticket close failed")
		}
	}
	if err := s.sessions.Save(ctx, sessionID, state); err != nil {
		return nil, err
	}

	return s.tickets.FindBySession(ctx, sessionID)
}

// SessionState exposes a session's raw state for debug views. Returns
// (nil, nil) for unknown sessions.
func (s *ChatService) SessionState(ctx context.Context, sessionID string) (*model.ConversationState, error) {
	return s.sessions.Get(ctx, sessionID)
}

// Tickets exposes all tickets for debug views.
func (s *ChatService) Tickets(ctx context.Context) ([]*model.Ticket, error) {
	return s.tickets.List(ctx)
}
