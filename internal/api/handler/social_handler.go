package handler

import (
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/hercules-fit/hercules-api/internal/api/middleware"
	"github.com/hercules-fit/hercules-api/pkg/response"
)

type friendRequestBody struct {
	UserID uint `json:"user_id" binding:"required"`
}

// SendFriendRequest creates a pending edge from the caller
// @Summary Send a friend request
// @Tags friends
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body friendRequestBody true "recipient"
// @Success 201 {object} response.Response
// @Failure 400 {object} response.Response
// @Router /friends/requests [post]
func (h *Handler) SendFriendRequest(c *gin.Context) {
	var req friendRequestBody
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}
	if err := h.social.SendRequest(c.Request.Context(), middleware.UserID(c), req.UserID); err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, nil)
}

// AcceptFriendRequest accepts a pending request sent to the caller
// @Summary Accept a friend request
// @Tags friends
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body friendRequestBody true "requester"
// @Success 200 {object} response.Response
// @Failure 404 {object} response.Response
// @Router /friends/requests/accept [put]
func (h *Handler) AcceptFriendRequest(c *gin.Context) {
	var req friendRequestBody
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}
	// The stored edge points requester -> recipient; the caller is the
	// recipient here.
	if err := h.social.AcceptRequest(c.Request.Context(), req.UserID, middleware.UserID(c)); err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, nil)
}

// RejectFriendRequest deletes a pending request sent to the caller
// @Summary Reject a friend request
// @Tags friends
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body friendRequestBody true "requester"
// @Success 200 {object} response.Response
// @Router /friends/requests/reject [delete]
func (h *Handler) RejectFriendRequest(c *gin.Context) {
	var req friendRequestBody
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}
	if err := h.social.RejectRequest(c.Request.Context(), req.UserID, middleware.UserID(c)); err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, nil)
}

// ListPendingRequests lists incoming friend requests
// @Summary List incoming friend requests
// @Tags friends
// @Produce json
// @Security BearerAuth
// @Success 200 {object} response.Response{data=[]service.PendingRequest}
// @Router /friends/requests [get]
func (h *Handler) ListPendingRequests(c *gin.Context) {
	list, err := h.social.PendingFor(c.Request.Context(), middleware.UserID(c))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, list)
}

// AreFriends checks for an accepted edge between two users
// @Summary Check friendship between two users
// @Tags friends
// @Produce json
// @Security BearerAuth
// @Param a path int true "first user id"
// @Param b path int true "second user id"
// @Success 200 {object} response.Response
// @Router /friends/status/{a}/{b} [get]
func (h *Handler) AreFriends(c *gin.Context) {
	a, errA := strconv.ParseUint(c.Param("a"), 10, 32)
	b, errB := strconv.ParseUint(c.Param("b"), 10, 32)
	if errA != nil || errB != nil {
		response.BadRequest(c, "invalid user id")
		return
	}
	ok, err := h.social.AreFriends(c.Request.Context(), uint(a), uint(b))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, gin.H{"friends": ok})
}

// ListFriends lists the accepted friends of a user, annotated with whether
// each is also a friend of the caller
// @Summary List a user's friends
// @Tags friends
// @Produce json
// @Security BearerAuth
// @Param id path int true "user id"
// @Success 200 {object} response.Response{data=[]service.FriendInfo}
// @Router /users/{id}/friends [get]
func (h *Handler) ListFriends(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		response.BadRequest(c, "invalid user id")
		return
	}
	list, err := h.social.FriendsOf(c.Request.Context(), uint(id), middleware.UserID(c))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, list)
}

type searchRequest struct {
	Name string `json:"name" binding:"required"`
}

// SearchUsers matches usernames partially, case-insensitively
// @Summary Search users
// @Tags users
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body searchRequest true "name fragment"
// @Success 200 {object} response.Response{data=[]service.SearchResult}
// @Router /users/search [post]
func (h *Handler) SearchUsers(c *gin.Context) {
	var req searchRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}
	list, err := h.social.Search(c.Request.Context(), req.Name, middleware.UserID(c))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, list)
}
