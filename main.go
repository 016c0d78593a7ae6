package main

import (
	"log"

	"chatproxy/config"
	"chatproxy/controllers"
	"chatproxy/routes"
	"chatproxy/services"

	"github.com/gin-gonic/gin"
)

func main() {
	cfg, err := config.Load(config.DefaultEnvFile)
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}
	gin.SetMode(cfg.GinMode)

	store := services.NewConversationStore(services.DefaultHistoryWindow)
	generator := services.NewOpenAIGenerator(cfg.LLM)
	chat := services.NewChatService(store, generator, cfg.LLM.Timeout)

	router := routes.SetupRouter(controllers.NewChatController(chat))

	addr := ":" + cfg.Port
	log.Printf("Server starting on %s (model %s via %s)", addr, cfg.LLM.Model, cfg.LLM.BaseURL)
	if err := router.Run(addr); err != nil {
		log.Fatalf("Server failed to start: %v", err)
	}
}
