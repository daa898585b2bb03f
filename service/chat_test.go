package service

import (
	"context"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"frontdesk/dao"
	"frontdesk/internal/notify"
	"frontdesk/model"
)

func newTestService() (*ChatService, *dao.MemoryStore) {
	store := dao.NewMemoryStore()
	svc := NewChatService(store, store, notify.Noop{}).WithClock(newTestClock().Now)
	seq := 0
	svc.Executor().WithIDGenerator(func() string {
		seq++
		return fmt.Sprintf("tkt-%04d", seq)
	})
	return svc, store
}

func turn(t *testing.T, svc *ChatService, sessionID, msg string) *model.ChatResponse {
	t.Helper()
	resp, err := svc.ProcessTurn(context.Background(), model.ChatRequest{
		SessionID:   sessionID,
		UserMessage: msg,
	})
	require.NoError(t, err)
	require.NotNil(t, resp)
	return resp
}

func TestProcessTurnBookingFlow(t *testing.T) {
	svc, _ := newTestService()

	resp := turn(t, svc, "s1", "I'd like to book an appointment")
	assert.Equal(t, model.StepCollectContact, resp.State.Step)
	assert.Contains(t, resp.ReplyText, "may I have your name")

	resp = turn(t, svc, "s1", "Alex")
	assert.Equal(t, "Alex", resp.State.Collected.Name)
	assert.Contains(t, resp.ReplyText, "Thanks, Alex")

	resp = turn(t, svc, "s1", "+49 170 123 4567")
	assert.Equal(t, "+491701234567", resp.State.Collected.Phone)
	assert.Contains(t, resp.ReplyText, "best time")

	resp = turn(t, svc, "s1", "tomorrow morning")
	assert.Equal(t, "tomorrow morning", resp.State.Collected.BestTime)
	assert.Equal(t, model.StepReadyToHandoff, resp.State.Step)
	assert.Contains(t, resp.ReplyText, "confirm the appointment")

	// Intent survived three no-detection turns.
	assert.Equal(t, model.IntentBookAppt, resp.State.Intent)

	// Resubmitting a name-like message after the name is set changes nothing.
	resp = turn(t, svc, "s1", "Bob")
	assert.Equal(t, "Alex", resp.State.Collected.Name)
}

func TestProcessTurnOpeningHoursCreatesNoTicket(t *testing.T) {
	svc, store := newTestService()

	resp := turn(t, svc, "s1", "what are your opening hours")

	assert.Contains(t, resp.ReplyText, "Monday–Friday: 09:00–18:00")
	assert.Empty(t, resp.TicketID)
	assert.Empty(t, resp.ActionsExecuted)

	tickets, err := store.List(context.Background())
	require.NoError(t, err)
	assert.Empty(t, tickets)
}

func TestProcessTurnEmergencyActions(t *testing.T) {
	svc, _ := newTestService()

	resp := turn(t, svc, "s1", "I have severe pain, this is urgent")

	require.NotEmpty(t, resp.TicketID)
	assert.Equal(t, model.StepReadyToHandoff, resp.State.Step)

	var sawNotify, sawHandoff bool
	for _, r := range resp.ActionsExecuted {
		switch r.Type {
		case model.ActionNotifyStaff:
			sawNotify = true
			assert.Equal(t, resp.TicketID, r.Data["ticket_id"])
		case model.ActionHandoff:
			sawHandoff = true
		}
	}
	assert.True(t, sawNotify, "expected a notify_staff result")
	assert.True(t, sawHandoff, "expected a handoff_if_needed result")
}

func TestProcessTurnTicketIDStableAcrossTurns(t *testing.T) {
	svc, store := newTestService()

	first := turn(t, svc, "s1", "how much is an implant")
	require.NotEmpty(t, first.TicketID)

	ticket, err := store.FindBySession(context.Background(), "s1")
	require.NoError(t, err)
	createdAt := ticket.CreatedAt

	second := turn(t, svc, "s1", "and do you take insurance for implants")
	assert.Equal(t, first.TicketID, second.TicketID)

	ticket, err = store.FindBySession(context.Background(), "s1")
	require.NoError(t, err)
	assert.Equal(t, createdAt, ticket.CreatedAt)
	assert.True(t, ticket.UpdatedAt > createdAt)
}

func TestProcessTurnMedicalAdvicePriority(t *testing.T) {
	svc, _ := newTestService()

	resp := turn(t, svc, "s1", "can I book an appointment to get antibiotics?")

	assert.Equal(t, model.IntentMedicalAdv, resp.State.Intent)
	assert.Equal(t, model.StepLimitedReply, resp.State.Step)
	assert.Contains(t, resp.ReplyText, "can’t safely provide medical advice")
}

func TestProcessTurnEmptyMessage(t *testing.T) {
	svc, _ := newTestService()

	resp := turn(t, svc, "s1", "   ")

	assert.Equal(t, model.StepTriage, resp.State.Step)
	assert.Empty(t, resp.State.Details)
	assert.Contains(t, resp.ReplyText, "How can I help you today?")
	assert.Empty(t, resp.ActionsExecuted)
}

func TestProcessTurnNoDetectionKeepsIntent(t *testing.T) {
	svc, _ := newTestService()

	resp := turn(t, svc, "s1", "how much is a cleaning")
	assert.Equal(t, model.IntentPricing, resp.State.Intent)

	resp = turn(t, svc, "s1", "hmm let me think")
	assert.Equal(t, model.IntentPricing, resp.State.Intent)
	assert.Equal(t, model.ProcedureCleaning, resp.State.Procedure)
}

func TestProcessTurnPriorStateOverridesStore(t *testing.T) {
	svc, _ := newTestService()

	turn(t, svc, "s1", "what services do you offer")

	prior := model.NewConversationState("2026-01-01T00:00:00Z")
	prior.Step = model.StepCollectContact
	prior.Intent = model.IntentBookAppt

	resp, err := svc.ProcessTurn(context.Background(), model.ChatRequest{
		SessionID:   "s1",
		UserMessage: "Alex",
		PriorState:  prior,
	})
	require.NoError(t, err)

	assert.Equal(t, model.IntentBookAppt, resp.State.Intent)
	assert.Equal(t, "Alex", resp.State.Collected.Name)
}

func TestProcessTurnFreshSessionInitialized(t *testing.T) {
	svc, _ := newTestService()

	resp := turn(t, svc, "brand-new", "hello there")

	require.NotNil(t, resp.State)
	assert.NotEmpty(t, resp.State.CreatedAt)
	assert.Equal(t, []string{"hello there"}, resp.State.Details)
}

func TestResolveSessionClosesTicket(t *testing.T) {
	svc, store := newTestService()

	resp := turn(t, svc, "s1", "I need to book a cleaning")
	require.NotEmpty(t, resp.TicketID)

	ticket, err := svc.ResolveSession(context.Background(), "s1")
	require.NoError(t, err)
	require.NotNil(t, ticket)

	assert.Equal(t, resp.TicketID, ticket.TicketID)
	assert.Equal(t, model.TicketClosed, ticket.Status)

	state, err := store.Get(context.Background(), "s1")
	require.NoError(t, err)
	assert.Equal(t, model.StepResolved, state.Step)
}

func TestResolveSessionWithoutTicket(t *testing.T) {
	svc, _ := newTestService()

	ticket, err := svc.ResolveSession(context.Background(), "nobody")
	require.NoError(t, err)
	assert.Nil(t, ticket)
}
