package controllers

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"time"

	"chatproxy/models"
	"chatproxy/services"

	"github.com/gin-gonic/gin"
)

type ChatController struct {
	chat *services.ChatService
}

func NewChatController(chat *services.ChatService) *ChatController {
	return &ChatController{chat: chat}
}

func (cc *ChatController) Welcome(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"message": "Welcome to the chat proxy API"})
}

func (cc *ChatController) Health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":    "healthy",
		"timestamp": time.Now().Format(time.RFC3339),
	})
}

func (cc *ChatController) Ask(c *gin.Context) {
	var request struct {
		Question string `json:"question" binding:"required"`
	}
	if err := c.ShouldBindJSON(&request); err != nil {
		log.Printf("Error binding JSON: %v", err)
		c.JSON(http.StatusBadRequest, gin.H{"error": "question is required"})
		return
	}

	id := c.Param("conversation_id")

	// The backend call outlives a disconnecting client; only the
	// service timeout stops it.
	ctx := context.WithoutCancel(c.Request.Context())
	result, err := cc.chat.Ask(ctx, id, request.Question)
	if err != nil {
		if errors.Is(err, services.ErrEmptyQuestion) {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		log.Printf("Error answering conversation %s: %v", id, err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"answer":               result.Answer,
		"conversation_history": result.History,
	})
}

func (cc *ChatController) GetConversation(c *gin.Context) {
	id := c.Param("conversation_id")

	turns, err := cc.chat.Conversation(id)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Conversation not found"})
		return
	}

	c.JSON(http.StatusOK, models.Conversation{ID: id, Messages: turns})
}

func (cc *ChatController) DeleteConversation(c *gin.Context) {
	id := c.Param("conversation_id")

	if err := cc.chat.DeleteConversation(id); err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Conversation not found"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": fmt.Sprintf("Conversation %s deleted successfully", id)})
}

// CreateConversation hands out a server-assigned conversation id.
func (cc *ChatController) CreateConversation(c *gin.Context) {
	id := cc.chat.StartConversation()
	c.JSON(http.StatusCreated, gin.H{"conversation_id": id})
}
