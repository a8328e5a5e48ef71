package handler

import (
	"context"
	"errors"
	"net/http"
	"time"

	"videohub/internal/metrics"
	"videohub/internal/microservices/http-api/dto"
	"videohub/internal/storage"

	"github.com/gin-gonic/gin"
)

type MediaHandler struct {
	store   storage.MediaStore
	maxSize int64
}

func NewMediaHandler(store storage.MediaStore, maxSize int64) *MediaHandler {
	return &MediaHandler{store: store, maxSize: maxSize}
}

// Upload takes multipart fields kind (thumbnail|video) and file and returns
// the stored path to put into a video's thumbnail or video_file.
func (h *MediaHandler) Upload(c *gin.Context) {
	// room for the multipart envelope on top of the file itself
	c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, h.maxSize+1<<20)

	if err := c.Request.ParseMultipartForm(32 << 20); err != nil {
		var maxErr *http.MaxBytesError
		if errors.As(err, &maxErr) {
			c.JSON(http.StatusRequestEntityTooLarge, dto.ErrorResponse{Error: "file too large", Field: "file"})
			return
		}
		c.JSON(http.StatusBadRequest, dto.ErrorResponse{Error: "expected multipart form data"})
		return
	}

	kind, err := storage.ParseKind(c.PostForm("kind"))
	if err != nil {
		c.JSON(http.StatusBadRequest, dto.ErrorResponse{Error: err.Error(), Field: "kind"})
		return
	}

	fh, err := c.FormFile("file")
	if err != nil {
		c.JSON(http.StatusBadRequest, dto.ErrorResponse{Error: "file is required", Field: "file"})
		return
	}
	if fh.Size > h.maxSize {
		c.JSON(http.StatusRequestEntityTooLarge, dto.ErrorResponse{Error: "file too large", Field: "file"})
		return
	}

	f, err := fh.Open()
	if err != nil {
		respondError(c, err)
		return
	}
	defer f.Close()

	// uploads get longer than the usual 5s
	ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Minute)
	defer cancel()

	path, err := h.store.Save(ctx, kind, fh.Filename, f, fh.Size, fh.Header.Get("Content-Type"))
	if err != nil {
		respondError(c, err)
		return
	}

	metrics.MediaUploadBytes.WithLabelValues(string(kind)).Observe(float64(fh.Size))
	c.JSON(http.StatusCreated, dto.MediaUploadResponse{Path: path})
}
