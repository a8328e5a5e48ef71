package handler

import (
	"context"
	"net/http"
	"time"

	"videohub/internal/microservices/http-api/dto"
	"videohub/internal/microservices/http-api/middleware"
	"videohub/internal/microservices/http-api/service"

	"github.com/gin-gonic/gin"
)

// InteractionHandler serves likes, favorites and ratings. Every route is
// behind AccessAuthenticated, so the caller id is always present.
type InteractionHandler struct {
	svc service.InteractionService
}

func NewInteractionHandler(svc service.InteractionService) *InteractionHandler {
	return &InteractionHandler{svc: svc}
}

func (h *InteractionHandler) ToggleLike(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
	defer cancel()

	state, err := h.svc.ToggleLike(ctx, id, middleware.ViewerID(c))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.MessageResponse{Message: state.Message()})
}

func (h *InteractionHandler) ToggleFavorite(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
	defer cancel()

	state, err := h.svc.ToggleFavorite(ctx, id, middleware.ViewerID(c))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.MessageResponse{Message: state.Message()})
}

func (h *InteractionHandler) MyFavorites(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
	defer cancel()

	list, err := h.svc.ListFavorites(ctx, middleware.ViewerID(c))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, list)
}

// Rate accepts {"rating": <int 1..5>}. A missing, non-integer or out of
// range value gets the same 400 answer, after the video has been found.
func (h *InteractionHandler) Rate(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}

	value := 0
	var in dto.RateVideoDTO
	if err := c.ShouldBindJSON(&in); err == nil && in.Rating != nil {
		value = *in.Rating
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
	defer cancel()

	res, err := h.svc.Rate(ctx, id, middleware.ViewerID(c), value)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.RateVideoResponse{Message: "Rating saved", Rating: res.Rating.Rating})
}

func (h *InteractionHandler) MyRating(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
	defer cancel()

	value, err := h.svc.MyRating(ctx, id, middleware.ViewerID(c))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.MyRatingResponse{VideoID: id, Rating: value})
}
