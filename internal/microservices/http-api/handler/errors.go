package handler

import (
	"errors"
	"net/http"
	"strconv"

	"videohub/internal/microservices/http-api/dto"
	"videohub/internal/microservices/http-api/service"
	"videohub/internal/storage"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"
)

// respondError maps service errors to status codes. Unknown errors are
// logged and hidden behind a generic 500.
func respondError(c *gin.Context, err error) {
	var vErr *service.ValidationError
	switch {
	case errors.As(err, &vErr):
		c.JSON(http.StatusBadRequest, dto.ErrorResponse{Error: vErr.Message, Field: vErr.Field})
	case errors.Is(err, storage.ErrUnknownKind), errors.Is(err, storage.ErrUnsupportedFormat):
		c.JSON(http.StatusBadRequest, dto.ErrorResponse{Error: err.Error()})
	case errors.Is(err, service.ErrVideoNotFound),
		errors.Is(err, service.ErrGenreNotFound),
		errors.Is(err, service.ErrUserNotFound),
		errors.Is(err, service.ErrRatingNotFound):
		c.JSON(http.StatusNotFound, dto.ErrorResponse{Error: err.Error()})
	case errors.Is(err, service.ErrGenreNameTaken),
		errors.Is(err, service.ErrNameInUse),
		errors.Is(err, service.ErrEmailInUse):
		c.JSON(http.StatusConflict, dto.ErrorResponse{Error: err.Error()})
	case errors.Is(err, service.ErrInvalidCredentials),
		errors.Is(err, service.ErrInvalidRefreshToken),
		errors.Is(err, service.ErrInvalidToken),
		errors.Is(err, service.ErrExpiredToken),
		errors.Is(err, service.ErrAccountGone):
		c.JSON(http.StatusUnauthorized, dto.ErrorResponse{Error: err.Error()})
	default:
		_ = c.Error(err)
		log.Ctx(c.Request.Context()).Error().Err(err).Str("route", c.FullPath()).Msg("request failed")
		c.JSON(http.StatusInternalServerError, dto.ErrorResponse{Error: "internal server error"})
	}
}

// pathID parses the :id path parameter; on failure it answers 400 and returns false.
func pathID(c *gin.Context) (int64, bool) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		c.JSON(http.StatusBadRequest, dto.ErrorResponse{Error: "invalid id"})
		return 0, false
	}
	return id, true
}

func bindError(c *gin.Context, err error) {
	c.JSON(http.StatusBadRequest, dto.ErrorResponse{Error: err.Error()})
}
