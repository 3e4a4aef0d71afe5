package handler

import (
	"io"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/hercules-fit/hercules-api/internal/api/middleware"
	"github.com/hercules-fit/hercules-api/internal/service"
	"github.com/hercules-fit/hercules-api/pkg/response"
)

// CreatePost publishes a new post from a multipart form. The form carries a
// description, an optional duration as HH:MM:SS, an optional GPX file under
// "gpx" and any number of image files under "images".
// @Summary Create a post
// @Tags posts
// @Accept multipart/form-data
// @Produce json
// @Security BearerAuth
// @Param description formData string false "post description"
// @Param duration formData string false "duration as HH:MM:SS"
// @Param gpx formData file false "GPX track"
// @Param images formData file false "post images"
// @Success 201 {object} response.Response
// @Failure 400 {object} response.Response
// @Router /posts [post]
func (h *Handler) CreatePost(c *gin.Context) {
	form, err := c.MultipartForm()
	if err != nil {
		response.BadRequest(c, "invalid multipart form")
		return
	}

	in := service.CreatePostInput{
		Description: c.PostForm("description"),
		Images:      form.File["images"],
	}

	if d := c.PostForm("duration"); d != "" {
		secs, err := service.ParseDuration(d)
		if err != nil {
			response.BadRequest(c, "invalid duration, expected HH:MM:SS")
			return
		}
		in.DurationSec = secs
	}

	if fhs := form.File["gpx"]; len(fhs) > 0 {
		f, err := fhs[0].Open()
		if err != nil {
			response.BadRequest(c, "could not read GPX file")
			return
		}
		data, err := io.ReadAll(f)
		f.Close()
		if err != nil {
			response.BadRequest(c, "could not read GPX file")
			return
		}
		in.GPX = data
	}

	id, err := h.content.CreatePost(c.Request.Context(), middleware.UserID(c), in)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, gin.H{"post_id": id})
}

// GetPost returns a single post with images, comments and like state
// @Summary Get a post
// @Tags posts
// @Produce json
// @Security BearerAuth
// @Param id path int true "post id"
// @Success 200 {object} response.Response{data=service.PostDetail}
// @Failure 404 {object} response.Response
// @Router /posts/{id} [get]
func (h *Handler) GetPost(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		response.BadRequest(c, "invalid post id")
		return
	}
	detail, err := h.content.GetPost(c.Request.Context(), uint(id), middleware.UserID(c))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, detail)
}

// DeletePost removes a post owned by the caller along with its comments,
// likes and stored images
// @Summary Delete a post
// @Tags posts
// @Produce json
// @Security BearerAuth
// @Param id path int true "post id"
// @Success 200 {object} response.Response
// @Failure 401 {object} response.Response
// @Failure 404 {object} response.Response
// @Router /posts/{id} [delete]
func (h *Handler) DeletePost(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		response.BadRequest(c, "invalid post id")
		return
	}
	if err := h.content.DeletePost(c.Request.Context(), uint(id), middleware.UserID(c)); err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, nil)
}

// GetTrack returns the decoded GPS points of a post, or an empty list when
// the post has no track
// @Summary Get a post's GPS track
// @Tags posts
// @Produce json
// @Security BearerAuth
// @Param id path int true "post id"
// @Success 200 {object} response.Response{data=[]service.TrackPoint}
// @Failure 404 {object} response.Response
// @Router /posts/{id}/track [get]
func (h *Handler) GetTrack(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		response.BadRequest(c, "invalid post id")
		return
	}
	points, err := h.content.GetTrack(c.Request.Context(), uint(id))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, points)
}

type commentRequest struct {
	Content string `json:"content" binding:"required"`
}

// AddComment attaches a comment to a post
// @Summary Comment on a post
// @Tags posts
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "post id"
// @Param request body commentRequest true "comment"
// @Success 201 {object} response.Response
// @Failure 404 {object} response.Response
// @Router /posts/{id}/comments [post]
func (h *Handler) AddComment(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		response.BadRequest(c, "invalid post id")
		return
	}
	var req commentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}
	if err := h.content.AddComment(c.Request.Context(), uint(id), middleware.UserID(c), req.Content); err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, nil)
}

// ListComments lists a post's comments oldest first
// @Summary List a post's comments
// @Tags posts
// @Produce json
// @Security BearerAuth
// @Param id path int true "post id"
// @Success 200 {object} response.Response{data=[]service.CommentView}
// @Router /posts/{id}/comments [get]
func (h *Handler) ListComments(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		response.BadRequest(c, "invalid post id")
		return
	}
	comments, err := h.content.ListComments(c.Request.Context(), uint(id))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, comments)
}

// LikePost records the caller's like. Liking an already liked post is a
// no-op.
// @Summary Like a post
// @Tags posts
// @Produce json
// @Security BearerAuth
// @Param id path int true "post id"
// @Success 200 {object} response.Response
// @Failure 404 {object} response.Response
// @Router /posts/{id}/like [post]
func (h *Handler) LikePost(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		response.BadRequest(c, "invalid post id")
		return
	}
	if err := h.content.Like(c.Request.Context(), uint(id), middleware.UserID(c)); err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, nil)
}

// UnlikePost removes the caller's like. Removing an absent like is a no-op.
// @Summary Unlike a post
// @Tags posts
// @Produce json
// @Security BearerAuth
// @Param id path int true "post id"
// @Success 200 {object} response.Response
// @Router /posts/{id}/like [delete]
func (h *Handler) UnlikePost(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		response.BadRequest(c, "invalid post id")
		return
	}
	if err := h.content.Unlike(c.Request.Context(), uint(id), middleware.UserID(c)); err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, nil)
}

// Feed returns posts from the caller and the caller's friends, newest first
// @Summary Get the caller's feed
// @Tags posts
// @Produce json
// @Security BearerAuth
// @Success 200 {object} response.Response{data=[]service.PostSummary}
// @Router /feed [get]
func (h *Handler) Feed(c *gin.Context) {
	posts, err := h.content.Feed(c.Request.Context(), middleware.UserID(c))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, posts)
}
