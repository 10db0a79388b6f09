package handlers

import (
	"net/http"

	portssvc "github.com/SscSPs/loandesk_backend/internal/core/ports/services"
	"github.com/SscSPs/loandesk_backend/internal/dto"
	"github.com/gin-gonic/gin"
)

type messageHandler struct {
	messageService portssvc.MessageSvcFacade
}

func registerMessageRoutes(rg *gin.RouterGroup, messageService portssvc.MessageSvcFacade) {
	h := &messageHandler{messageService: messageService}

	messages := rg.Group("/messages")
	{
		messages.POST("", h.sendMessage)
		messages.GET("", h.listMessages)
		messages.GET("/unread-count", h.unreadCount)
		messages.POST("/:message_id/read", h.markRead)
	}
}

// sendMessage godoc
// @Summary Send a message to a member of the agency
// @Tags messages
// @Accept  json
// @Produce  json
// @Param   message body dto.SendMessageRequest true "Message"
// @Success 201 {object} domain.Message
// @Failure 400 {object} dto.ErrorResponse
// @Security BearerAuth
// @Router /api/v1/messages [post]
func (h *messageHandler) sendMessage(c *gin.Context) {
	var req dto.SendMessageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, err)
		return
	}
	caller, ok := callerFrom(c)
	if !ok {
		return
	}
	msg, err := h.messageService.SendMessage(c.Request.Context(), caller, req)
	if err != nil {
		respondError(c, err, "Failed to send message")
		return
	}
	c.JSON(http.StatusCreated, msg)
}

// listMessages godoc
// @Summary List the inbox or outbox
// @Tags messages
// @Produce  json
// @Param   box query string false "inbox or outbox" default(inbox)
// @Param   limit query int false "Limit" default(50)
// @Param   offset query int false "Offset" default(0)
// @Success 200 {object} dto.ListMessagesResponse
// @Security BearerAuth
// @Router /api/v1/messages [get]
func (h *messageHandler) listMessages(c *gin.Context) {
	var params dto.ListMessagesParams
	if err := c.ShouldBindQuery(&params); err != nil {
		bindError(c, err)
		return
	}
	caller, ok := callerFrom(c)
	if !ok {
		return
	}
	msgs, err := h.messageService.ListMessages(c.Request.Context(), caller, params)
	if err != nil {
		respondError(c, err, "Failed to list messages")
		return
	}
	c.JSON(http.StatusOK, dto.ListMessagesResponse{Messages: msgs})
}

// markRead godoc
// @Summary Mark a received message as read
// @Tags messages
// @Param   message_id path string true "Message ID"
// @Success 204
// @Failure 404 {object} dto.ErrorResponse
// @Security BearerAuth
// @Router /api/v1/messages/{message_id}/read [post]
func (h *messageHandler) markRead(c *gin.Context) {
	caller, ok := callerFrom(c)
	if !ok {
		return
	}
	if err := h.messageService.MarkRead(c.Request.Context(), caller, c.Param("message_id")); err != nil {
		respondError(c, err, "Failed to mark message as read")
		return
	}
	c.Status(http.StatusNoContent)
}

// unreadCount godoc
// @Summary Number of unread messages
// @Tags messages
// @Produce  json
// @Success 200 {object} dto.UnreadCountResponse
// @Security BearerAuth
// @Router /api/v1/messages/unread-count [get]
func (h *messageHandler) unreadCount(c *gin.Context) {
	caller, ok := callerFrom(c)
	if !ok {
		return
	}
	n, err := h.messageService.UnreadCount(c.Request.Context(), caller)
	if err != nil {
		respondError(c, err, "Failed to count messages")
		return
	}
	c.JSON(http.StatusOK, dto.UnreadCountResponse{Unread: n})
}
