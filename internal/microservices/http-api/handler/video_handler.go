package handler

import (
	"context"
	"net/http"
	"strconv"
	"time"

	"videohub/internal/microservices/http-api/dto"
	"videohub/internal/microservices/http-api/middleware"
	"videohub/internal/microservices/http-api/repository"
	"videohub/internal/microservices/http-api/service"

	"github.com/gin-gonic/gin"
)

type VideoHandler struct {
	svc service.VideoService
}

func NewVideoHandler(svc service.VideoService) *VideoHandler {
	return &VideoHandler{svc: svc}
}

func (h *VideoHandler) List(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
	defer cancel()

	// invalid numbers fall back to defaults
	f := repository.VideoFilter{Query: c.Query("q")}
	if p, err := strconv.Atoi(c.Query("page")); err == nil {
		f.Page = p
	}
	if ps, err := strconv.Atoi(c.Query("page_size")); err == nil {
		f.PageSize = ps
	}
	if g := c.Query("genre"); g != "" {
		id, err := strconv.ParseInt(g, 10, 64)
		if err != nil || id <= 0 {
			c.JSON(http.StatusBadRequest, dto.ErrorResponse{Error: "invalid genre", Field: "genre"})
			return
		}
		f.GenreID = id
	}

	resp, err := h.svc.List(ctx, f, middleware.ViewerID(c))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (h *VideoHandler) Get(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
	defer cancel()

	v, err := h.svc.Get(ctx, id, middleware.ViewerID(c))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, v)
}

func (h *VideoHandler) Create(c *gin.Context) {
	var in dto.CreateVideoDTO
	if err := c.ShouldBindJSON(&in); err != nil {
		bindError(c, err)
		return
	}
	ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
	defer cancel()

	uploaderID, _ := middleware.GetUserID(c)
	v, err := h.svc.Create(ctx, in, uploaderID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, v)
}

// Replace handles PUT: every editable field is required.
func (h *VideoHandler) Replace(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	var in dto.CreateVideoDTO
	if err := c.ShouldBindJSON(&in); err != nil {
		bindError(c, err)
		return
	}
	ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
	defer cancel()

	v, err := h.svc.Replace(ctx, id, in, middleware.ViewerID(c))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, v)
}

func (h *VideoHandler) Patch(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	var in dto.UpdateVideoDTO
	if err := c.ShouldBindJSON(&in); err != nil {
		bindError(c, err)
		return
	}
	ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
	defer cancel()

	v, err := h.svc.Patch(ctx, id, in, middleware.ViewerID(c))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, v)
}

func (h *VideoHandler) Delete(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
	defer cancel()

	if err := h.svc.Delete(ctx, id); err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
