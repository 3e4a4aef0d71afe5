package handler

import (
	"mime"
	"net/http"
	"path/filepath"

	"github.com/gin-gonic/gin"

	"github.com/hercules-fit/hercules-api/internal/apperr"
	"github.com/hercules-fit/hercules-api/internal/storage"
	"github.com/hercules-fit/hercules-api/pkg/response"
)

// ProfilePhoto streams a stored profile photo
// @Summary Download a profile photo
// @Tags media
// @Produce image/*
// @Param filename path string true "stored filename"
// @Success 200 {file} binary
// @Failure 404 {object} response.Response
// @Router /media/profile/{filename} [get]
func (h *Handler) ProfilePhoto(c *gin.Context) {
	h.streamMedia(c, storage.KindProfile)
}

// PostImage streams a stored post image
// @Summary Download a post image
// @Tags media
// @Produce image/*
// @Param filename path string true "stored filename"
// @Success 200 {file} binary
// @Failure 404 {object} response.Response
// @Router /media/posts/{filename} [get]
func (h *Handler) PostImage(c *gin.Context) {
	h.streamMedia(c, storage.KindPosts)
}

// streamMedia writes a stored image to the response in fixed-size chunks,
// bypassing the JSON envelope.
func (h *Handler) streamMedia(c *gin.Context, kind storage.Kind) {
	name := c.Param("filename")
	if !storage.AllowedExtension(name) {
		response.NotFound(c, "file not found")
		return
	}

	// Probe before any header is written so a missing file can still get a
	// JSON 404.
	f, err := h.media.Open(kind, name)
	if err != nil {
		if apperr.KindOf(err) == apperr.KindNotFound {
			response.NotFound(c, "file not found")
			return
		}
		response.InternalError(c, err)
		return
	}
	f.Close()

	contentType := mime.TypeByExtension(filepath.Ext(name))
	if contentType == "" {
		contentType = "application/octet-stream"
	}
	c.Header("Content-Type", contentType)
	c.Header("Cache-Control", "no-cache")
	c.Header("Access-Control-Allow-Origin", "*")
	c.Status(http.StatusOK)

	// A copy error here usually means the client went away.
	_ = h.media.Stream(c.Writer, kind, name)
}
