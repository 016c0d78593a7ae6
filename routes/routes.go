package routes

import (
	"chatproxy/controllers"
	"chatproxy/middlewares"

	"github.com/gin-gonic/gin"
)

func SetupRouter(chat *controllers.ChatController) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery(), middlewares.Logger(), middlewares.CORS())

	r.GET("/", chat.Welcome)
	r.GET("/health", chat.Health)

	r.POST("/ask/:conversation_id", chat.Ask)

	r.POST("/conversation", chat.CreateConversation)
	r.GET("/conversation/:conversation_id", chat.GetConversation)
	r.DELETE("/conversation/:conversation_id", chat.DeleteConversation)

	return r
}
