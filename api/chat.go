package api

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"frontdesk/model"
	"frontdesk/service"
)

func ChatHandler(chatSvc *service.ChatService) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req model.ChatRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "bad request"})
			return
		}

		resp, err := chatSvc.ProcessTurn(c.Request.Context(), req)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}

		c.JSON(http.StatusOK, resp)
	}
}

func DebugTicketsHandler(chatSvc *service.ChatService) gin.HandlerFunc {
	return func(c *gin.Context) {
		tickets, err := chatSvc.Tickets(c.Request.Context())
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}
		if tickets == nil {
			tickets = []*model.Ticket{}
		}
		c.JSON(http.StatusOK, gin.H{"tickets": tickets})
	}
}

func DebugSessionHandler(chatSvc *service.ChatService) gin.HandlerFunc {
	return func(c *gin.Context) {
		sessionID := c.Param("session_id")
		state, err := chatSvc.SessionState(c.Request.Context(), sessionID)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusOK, gin.H{"session_id": sessionID, "state": state})
	}
}

// ResolveSessionHandler closes a session's ticket. This is the external
// path through which a session reaches RESOLVED.
func ResolveSessionHandler(chatSvc *service.ChatService) gin.HandlerFunc {
	return func(c *gin.Context) {
		sessionID := c.Param("session_id")
		ticket, err := chatSvc.ResolveSession(c.Request.Context(), sessionID)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}
		if ticket == nil {
			c.JSON(http.StatusNotFound, gin.H{"error": "no ticket for session"})
			return
		}
		c.JSON(http.StatusOK, ticket)
	}
}

func HealthHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"ok": true, "time": time.Now().UTC().Format(time.RFC3339)})
	}
}
