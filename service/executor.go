package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"frontdesk/dao"
	"frontdesk/internal/notify"
	"frontdesk/model"
)

// Executor dispatches planned actions to their handlers. A failed or
// unknown action is reported in its result and never aborts the batch.
type Executor struct {
	tickets  dao.TicketStore
	notifier notify.Notifier
	now      func() time.Time
	newID    func() string
}

func NewExecutor(tickets dao.TicketStore, notifier notify.Notifier) *Executor {
	return &Executor{
		tickets:  tickets,
		notifier: notifier,
		now:      time.Now,
		newID:    newTicketID,
	}
}

// WithClock overrides the executor's time source. Test hook.
func (e *Executor) WithClock(now func() time.Time) *Executor {
	e.now = now
	return e
}

// WithIDGenerator overrides ticket id minting. Test hook.
func (e *Executor) WithIDGenerator(gen func() string) *Executor {
	e.newID = gen
	return e
}

// newTicketID mints a short opaque ticket id.
func newTicketID() string {
	return uuid.NewString()[:8]
}

// RunActions executes the batch in order and returns one result per
// action. After the batch, notify_staff results missing a ticket id are
// back-filled from the upsert_ticket result of the same batch.
func (e *Executor) RunActions(ctx context.Context, sessionID string, state *model.ConversationState, actions []model.Action) []model.ActionResult {
	executed := make([]model.ActionResult, 0, len(actions))

	for _, a := range actions {
		switch a.Type {
		case model.ActionUpsertTicket:
			executed = append(executed, e.upsertTicket(ctx, sessionID, state))
		case model.ActionNotifyStaff:
			executed = append(executed, e.notifyStaff(ctx, sessionID, a.Params["ticket_id"]))
		case model.ActionHandoff:
			executed = append(executed, model.ActionResult{
				Type: model.ActionHandoff,
				OK:   true,
				Data: map[string]any{"handoff_checked": true},
			})
		default:
			executed = append(executed, model.ActionResult{
				Type: a.Type,
				OK:   false,
				Data: map[string]any{"error": fmt.Sprintf("Unknown action type: %s", a.Type)},
			})
		}
	}

	if tid := TicketIDFromResults(executed); tid != "" {
		for i := range executed {
			if executed[i].Type == model.ActionNotifyStaff && executed[i].OK {
				if _, has := executed[i].Data["ticket_id"]; !has {
					executed[i].Data["ticket_id"] = tid
				}
			}
		}
	}

	return executed
}

// TicketIDFromResults returns the ticket id minted or reused by a
// successful upsert_ticket in the batch, or "" when none ran.
func TicketIDFromResults(results []model.ActionResult) string {
	for _, r := range results {
		if r.Type == model.ActionUpsertTicket && r.OK {
			if tid, ok := r.Data["ticket_id"].(string); ok {
				return tid
			}
		}
	}
	return ""
}

func (e *Executor) upsertTicket(ctx context.Context, sessionID string, state *model.ConversationState) model.ActionResult {
	now := e.now().UTC().Format(time.RFC3339)

	existing, err := e.tickets.FindBySession(ctx, sessionID)
	if err != nil {
		return model.ActionResult{
			Type: model.ActionUpsertTicket,
			OK:   false,
			Data: map[string]any{"error": err.Error()},
		}
	}

	ticketID := e.newID()
	createdAt := now
	if existing != nil {
		ticketID = existing.TicketID
		createdAt = existing.CreatedAt
	}

	topic := state.Topic
	if topic == "" {
		topic = InferTopic(state.Intent, state.Procedure)
	}

	status := model.TicketOpen
	if state.Step == model.StepResolved {
		status = model.TicketClosed
	}

	ticket := &model.Ticket{
		TicketID:          ticketID,
		SessionID:         sessionID,
		CreatedAt:         createdAt,
		UpdatedAt:         now,
		Intent:            state.Intent,
		Procedure:         state.Procedure,
		Topic:             topic,
		Summary:           buildSummary(state),
		Contact:           state.Collected,
		ConversationFacts: lastN(state.Details, 10),
		Status:            status,
	}

	if err := e.tickets.Upsert(ctx, ticket); err != nil {
		return model.ActionResult{
			Type: model.ActionUpsertTicket,
			OK:   false,
			Data: map[string]any{"error": err.Error()},
		}
	}

	return model.ActionResult{
		Type: model.ActionUpsertTicket,
		OK:   true,
		Data: map[string]any{"ticket_id": ticketID},
	}
}

// notifyStaff hands the session's ticket to the notification channel. The
// channel is outside this service's contract, so delivery failures are
// logged and the result keeps its fixed shape.
func (e *Executor) notifyStaff(ctx context.Context, sessionID, ticketID string) model.ActionResult {
	ticket, err := e.tickets.FindBySession(ctx, sessionID)
	if err == nil && ticket != nil {
		if nerr := e.notifier.NotifyStaff(ctx, ticket); nerr != nil {
			log.Warn().Err(nerr).Str("session", sessionID).Msg("staff notification failed")
		}
	}

	data := map[string]any{"notified": true}
	if ticketID != "" {
		data["ticket_id"] = ticketID
	}
	return model.ActionResult{
		Type: model.ActionNotifyStaff,
		OK:   true,
		Data: data,
	}
}

// buildSummary renders the staff-facing summary: one labeled line per
// non-empty source field, newest three utterances last.
func buildSummary(state *model.ConversationState) string {
	var parts []string

	if state.Intent != model.IntentNone {
		parts = append(parts, "Intent: "+string(state.Intent))
	}
	if state.Procedure != model.ProcedureNone {
		parts = append(parts, "Procedure: "+string(state.Procedure))
	}
	if state.Topic != "" {
		parts = append(parts, "Topic: "+state.Topic)
	}
	if state.Collected.AnyFilled() {
		parts = append(parts, fmt.Sprintf("Contact: name=%s, phone=%s, best_time=%s",
			state.Collected.Name, state.Collected.Phone, state.Collected.BestTime))
	}
	if len(state.Details) > 0 {
		parts = append(parts, "User said: "+strings.Join(lastN(state.Details, 3), " | "))
	}

	return strings.Join(parts, "\n")
}

func lastN(items []string, n int) []string {
	if len(items) <= n {
		return items
	}
	return items[len(items)-n:]
}
