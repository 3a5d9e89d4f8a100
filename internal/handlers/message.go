package handlers

import (
	"net/http"

	"github.com/feed-system/social-demo/internal/models"
	"github.com/feed-system/social-demo/internal/services"
	"github.com/feed-system/social-demo/pkg/logger"
	"github.com/gin-gonic/gin"
)

type MessageHandler struct {
	messageService *services.MessageService
	logger         *logger.Logger
}

func NewMessageHandler(messageService *services.MessageService, logger *logger.Logger) *MessageHandler {
	return &MessageHandler{
		messageService: messageService,
		logger:         logger,
	}
}

func (h *MessageHandler) RegisterRoutes(r *gin.RouterGroup) {
	messages := r.Group("/messages")
	{
		messages.GET("", h.ListMessages)
		messages.POST("", h.SendMessage)
		messages.GET("/:id", h.GetMessage)
		messages.PUT("/:id", h.UpdateMessage)
		messages.DELETE("/:id", h.DeleteMessage)
		messages.POST("/:id/read", h.MarkAsRead)
	}

	conversations := r.Group("/conversations")
	{
		conversations.GET("", h.GetConversations)
		conversations.GET("/:partnerId/messages", h.GetConversationMessages)
		conversations.POST("/:partnerId/read", h.MarkConversationAsRead)
	}
}

func (h *MessageHandler) ListMessages(c *gin.Context) {
	messages, err := h.messageService.GetAll(c.Request.Context())
	if err != nil {
		respondError(c, h.logger, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"messages": messages})
}

// SendMessage sends as the current user unless the body names a sender.
func (h *MessageHandler) SendMessage(c *gin.Context) {
	var req models.SendMessageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if req.ReceiverID == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Receiver ID is required"})
		return
	}
	req.SenderID = currentOr(req.SenderID)

	msg, err := h.messageService.Create(c.Request.Context(), &req)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"message": "Message sent successfully",
		"data":    msg,
	})
}

func (h *MessageHandler) GetMessage(c *gin.Context) {
	msg, err := h.messageService.GetByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, h.logger, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": msg})
}

func (h *MessageHandler) UpdateMessage(c *gin.Context) {
	var patch models.MessagePatch
	if err := c.ShouldBindJSON(&patch); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	msg, err := h.messageService.Update(c.Request.Context(), c.Param("id"), &patch)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Message updated successfully",
		"data":    msg,
	})
}

func (h *MessageHandler) DeleteMessage(c *gin.Context) {
	if err := h.messageService.Delete(c.Request.Context(), c.Param("id")); err != nil {
		respondError(c, h.logger, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true})
}

func (h *MessageHandler) MarkAsRead(c *gin.Context) {
	msg, err := h.messageService.MarkAsRead(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, h.logger, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": msg})
}

func (h *MessageHandler) GetConversations(c *gin.Context) {
	conversations, err := h.messageService.GetConversations(c.Request.Context(), currentOr(c.Query("user_id")))
	if err != nil {
		respondError(c, h.logger, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"conversations": conversations})
}

func (h *MessageHandler) GetConversationMessages(c *gin.Context) {
	messages, err := h.messageService.GetMessages(c.Request.Context(), currentOr(c.Query("user_id")), c.Param("partnerId"))
	if err != nil {
		respondError(c, h.logger, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"messages": messages})
}

func (h *MessageHandler) MarkConversationAsRead(c *gin.Context) {
	err := h.messageService.MarkConversationAsRead(c.Request.Context(), currentOr(c.Query("user_id")), c.Param("partnerId"))
	if err != nil {
		respondError(c, h.logger, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true})
}
