package route

import (
	"net/http"
	"os"

	"github.com/gin-gonic/gin"

	"frontdesk/api"
	"frontdesk/service"
)

func Register(r *gin.Engine, chatSvc *service.ChatService) {

	r.GET("/health", api.HealthHandler())

	// Static chat page
	r.GET("/", func(c *gin.Context) {
		const page = "web/chat.html"
		if _, err := os.Stat(page); err != nil {
			c.Data(http.StatusOK, "text/html; charset=utf-8",
				[]byte("<h3>chat.html not found</h3><p>Put chat.html under web/ and refresh.</p>"))
			return
		}
		c.File(page)
	})

	chatGroup := r.Group("/chat")
	{
		chatGroup.POST("", api.ChatHandler(chatSvc)) // POST /chat
	}

	debugGroup := r.Group("/debug")
	{
		debugGroup.GET("/tickets", api.DebugTicketsHandler(chatSvc))
		debugGroup.GET("/session/:session_id", api.DebugSessionHandler(chatSvc))
		debugGroup.POST("/tickets/:session_id/resolve", api.ResolveSessionHandler(chatSvc))
	}
}
