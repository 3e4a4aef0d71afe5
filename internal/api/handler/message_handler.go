package handler

import (
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/hercules-fit/hercules-api/internal/api/middleware"
	"github.com/hercules-fit/hercules-api/pkg/response"
)

type sendMessageRequest struct {
	RecipientID uint   `json:"recipient_id" binding:"required"`
	Body        string `json:"body" binding:"required"`
}

// SendMessage sends a direct message from the caller
// @Summary Send a direct message
// @Tags messages
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body sendMessageRequest true "message"
// @Success 201 {object} response.Response
// @Failure 404 {object} response.Response
// @Router /messages [post]
func (h *Handler) SendMessage(c *gin.Context) {
	var req sendMessageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}
	if err := h.messages.Send(c.Request.Context(), middleware.UserID(c), req.RecipientID, req.Body); err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, nil)
}

// Conversation returns every message between the caller and another user,
// oldest first
// @Summary Get a conversation
// @Tags messages
// @Produce json
// @Security BearerAuth
// @Param id path int true "other user id"
// @Success 200 {object} response.Response{data=[]service.MessageView}
// @Router /conversations/{id} [get]
func (h *Handler) Conversation(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		response.BadRequest(c, "invalid user id")
		return
	}
	msgs, err := h.messages.Conversation(c.Request.Context(), middleware.UserID(c), uint(id))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, msgs)
}

// Inbox returns every message the caller sent or received, newest first
// @Summary Get the caller's inbox
// @Tags messages
// @Produce json
// @Security BearerAuth
// @Success 200 {object} response.Response{data=[]service.MessageView}
// @Router /messages [get]
func (h *Handler) Inbox(c *gin.Context) {
	msgs, err := h.messages.Inbox(c.Request.Context(), middleware.UserID(c))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, msgs)
}

// MarkMessageRead marks a message as read. Already-read messages stay read.
// @Summary Mark a message as read
// @Tags messages
// @Produce json
// @Security BearerAuth
// @Param id path int true "message id"
// @Success 200 {object} response.Response
// @Failure 404 {object} response.Response
// @Router /messages/{id}/read [put]
func (h *Handler) MarkMessageRead(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		response.BadRequest(c, "invalid message id")
		return
	}
	if err := h.messages.MarkRead(c.Request.Context(), uint(id)); err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, nil)
}
