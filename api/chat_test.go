package api

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"frontdesk/dao"
	"frontdesk/internal/notify"
	"frontdesk/model"
	"frontdesk/service"
)

func newTestRouter() *gin.Engine {
	gin.SetMode(gin.TestMode)
	store := dao.NewMemoryStore()
	svc := service.NewChatService(store, store, notify.Noop{})

	r := gin.New()
	r.POST("/chat", ChatHandler(svc))
	r.GET("/debug/tickets", DebugTicketsHandler(svc))
	r.GET("/debug/session/:session_id", DebugSessionHandler(svc))
	r.POST("/debug/tickets/:session_id/resolve", ResolveSessionHandler(svc))
	return r
}

func postChat(t *testing.T, r *gin.Engine, req model.ChatRequest) model.ChatResponse {
	t.Helper()
	body, err := json.Marshal(req)
	require.NoError(t, err)

	w := httptest.NewRecorder()
	httpReq := httptest.NewRequest(http.MethodPost, "/chat", bytes.NewReader(body))
	httpReq.Header.Set("Content-Type", "application/json")
	r.ServeHTTP(w, httpReq)

	require.Equal(t, http.StatusOK, w.Code)

	var resp model.ChatResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	return resp
}

func TestChatHandlerRoundTrip(t *testing.T) {
	r := newTestRouter()

	resp := postChat(t, r, model.ChatRequest{
		SessionID:   "s1",
		UserMessage: "I'd like to book an appointment",
	})

	assert.Equal(t, "s1", resp.SessionID)
	assert.Contains(t, resp.ReplyText, "may I have your name")
	require.NotNil(t, resp.State)
	assert.Equal(t, model.StepCollectContact, resp.State.Step)
	assert.NotEmpty(t, resp.TicketID)
}

func TestChatHandlerRejectsMissingSessionID(t *testing.T) {
	r := newTestRouter()

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/chat", bytes.NewReader([]byte(`{"user_message":"hi"}`)))
	req.Header.Set("Content-Type", "application/json")
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestDebugEndpoints(t *testing.T) {
	r := newTestRouter()

	postChat(t, r, model.ChatRequest{SessionID: "s1", UserMessage: "how much is an implant"})

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/debug/tickets", nil))
	require.Equal(t, http.StatusOK, w.Code)

	var ticketsResp struct {
		Tickets []model.Ticket `json:"tickets"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &ticketsResp))
	require.Len(t, ticketsResp.Tickets, 1)
	assert.Equal(t, "s1", ticketsResp.Tickets[0].SessionID)

	w = httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/debug/session/s1", nil))
	require.Equal(t, http.StatusOK, w.Code)

	var sessionResp struct {
		SessionID string                   `json:"session_id"`
		State     *model.ConversationState `json:"state"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &sessionResp))
	require.NotNil(t, sessionResp.State)
	assert.Equal(t, model.IntentPricing, sessionResp.State.Intent)
}

func TestResolveEndpointClosesTicket(t *testing.T) {
	r := newTestRouter()

	resp := postChat(t, r, model.ChatRequest{SessionID: "s1", UserMessage: "book a cleaning please"})
	require.NotEmpty(t, resp.TicketID)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/debug/tickets/s1/resolve", nil))
	require.Equal(t, http.StatusOK, w.Code)

	var ticket model.Ticket
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &ticket))
	assert.Equal(t, resp.TicketID, ticket.TicketID)
	assert.Equal(t, model.TicketClosed, ticket.Status)

	// Resolving a session without a ticket is a 404, not an error.
	w = httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/debug/tickets/nobody/resolve", nil))
	assert.Equal(t, http.StatusNotFound, w.Code)
}
