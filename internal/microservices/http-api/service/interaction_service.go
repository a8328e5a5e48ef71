package service

import (
	"context"
	"fmt"

	"videohub/internal/metrics"
	"videohub/internal/microservices/http-api/dto"
	"videohub/internal/microservices/http-api/models"
	"videohub/internal/microservices/http-api/repository"
)

// LikeState is the liker-set membership after a toggle.
type LikeState int

const (
	LikeRemoved LikeState = iota
	LikeToggled
)

func (s LikeState) Message() string {
	if s == LikeToggled {
		return "Liked"
	}
	return "Unliked"
}

// FavoriteState is the favorites membership after a toggle.
type FavoriteState int

const (
	FavoriteRemoved FavoriteState = iota
	FavoriteAdded
)

func (s FavoriteState) Message() string {
	if s == FavoriteAdded {
		return "Added to favorites"
	}
	return "Removed from favorites"
}

type RateResult struct {
	Rating  *models.Rating
	Created bool
}

type InteractionService interface {
	ToggleLike(ctx context.Context, videoID int64, userID string) (LikeState, error)
	ToggleFavorite(ctx context.Context, videoID int64, userID string) (FavoriteState, error)
	ListFavorites(ctx context.Context, userID string) ([]dto.VideoResponse, error)
	Rate(ctx context.Context, videoID int64, userID string, value int) (*RateResult, error)
	AverageRating(ctx context.Context, videoID int64) (float64, error)
	MyRating(ctx context.Context, videoID int64, userID string) (int, error)
}

type interactionService struct {
	videoRepo    repository.VideoRepository
	likeRepo     repository.LikeRepository
	favoriteRepo repository.FavoriteRepository
	ratingRepo   repository.RatingRepository
	projector    *Projector
}

func NewInteractionService(
	videoRepo repository.VideoRepository,
	likeRepo repository.LikeRepository,
	favoriteRepo repository.FavoriteRepository,
	ratingRepo repository.RatingRepository,
	projector *Projector,
) InteractionService {
	return &interactionService{
		videoRepo:    videoRepo,
		likeRepo:     likeRepo,
		favoriteRepo: favoriteRepo,
		ratingRepo:   ratingRepo,
		projector:    projector,
	}
}

func (s *interactionService) ensureVideo(ctx context.Context, videoID int64) error {
	ok, err := s.videoRepo.Exists(ctx, videoID)
	if err != nil {
		return err
	}
	if !ok {
		return ErrVideoNotFound
	}
	return nil
}

// writeErr resolves a foreign key failure on an interaction row. Either the
// video was deleted after ensureVideo, or the caller's user row is gone.
func (s *interactionService) writeErr(ctx context.Context, op string, videoID int64, err error) error {
	if !repository.IsForeignKeyViolation(err) {
		return fmt.Errorf("%s: %w", op, err)
	}
	if ok, exErr := s.videoRepo.Exists(ctx, videoID); exErr == nil && ok {
		return ErrAccountGone
	}
	return ErrVideoNotFound
}

func (s *interactionService) ToggleLike(ctx context.Context, videoID int64, userID string) (LikeState, error) {
	if err := s.ensureVideo(ctx, videoID); err != nil {
		return LikeRemoved, err
	}

	liked, err := s.likeRepo.Toggle(ctx, userID, videoID)
	if err != nil {
		return LikeRemoved, s.writeErr(ctx, "toggle like", videoID, err)
	}

	if liked {
		metrics.RecordInteraction("like", "added")
		return LikeToggled, nil
	}
	metrics.RecordInteraction("like", "removed")
	return LikeRemoved, nil
}

func (s *interactionService) ToggleFavorite(ctx context.Context, videoID int64, userID string) (FavoriteState, error) {
	if err := s.ensureVideo(ctx, videoID); err != nil {
		return FavoriteRemoved, err
	}

	added, err := s.favoriteRepo.Toggle(ctx, userID, videoID)
	if err != nil {
		return FavoriteRemoved, s.writeErr(ctx, "toggle favorite", videoID, err)
	}

	if added {
		metrics.RecordInteraction("favorite", "added")
		return FavoriteAdded, nil
	}
	metrics.RecordInteraction("favorite", "removed")
	return FavoriteRemoved, nil
}

func (s *interactionService) ListFavorites(ctx context.Context, userID string) ([]dto.VideoResponse, error) {
	videos, err := s.favoriteRepo.List(ctx, userID)
	if err != nil {
		return nil, err
	}
	return s.projector.Project(ctx, videos, userID)
}

// Rate validates value before touching storage, so an invalid call writes nothing.
func (s *interactionService) Rate(ctx context.Context, videoID int64, userID string, value int) (*RateResult, error) {
	// an unknown video is reported before a bad value
	if err := s.ensureVideo(ctx, videoID); err != nil {
		return nil, err
	}
	if value < models.MinRating || value > models.MaxRating {
		metrics.RecordInteraction("rating", "rejected")
		return nil, ErrInvalidRating
	}

	rating := &models.Rating{UserID: userID, VideoID: videoID, Rating: value}
	created, err := s.ratingRepo.Upsert(ctx, rating)
	if err != nil {
		return nil, s.writeErr(ctx, "rate video", videoID, err)
	}

	if created {
		metrics.RecordInteraction("rating", "created")
	} else {
		metrics.RecordInteraction("rating", "updated")
	}
	return &RateResult{Rating: rating, Created: created}, nil
}

func (s *interactionService) AverageRating(ctx context.Context, videoID int64) (float64, error) {
	if err := s.ensureVideo(ctx, videoID); err != nil {
		return 0, err
	}
	avg, err := s.ratingRepo.CalculateAverageRating(ctx, videoID)
	if err != nil {
		return 0, fmt.Errorf("average rating: %w", err)
	}
	return avg, nil
}

func (s *interactionService) MyRating(ctx context.Context, videoID int64, userID string) (int, error) {
	if err := s.ensureVideo(ctx, videoID); err != nil {
		return 0, err
	}
	r, err := s.ratingRepo.GetByUserAndVideo(ctx, userID, videoID)
	if err != nil {
		if repository.IsNotFound(err) {
			return 0, ErrRatingNotFound
		}
		return 0, fmt.Errorf("get rating: %w", err)
	}
	return r.Rating, nil
}
