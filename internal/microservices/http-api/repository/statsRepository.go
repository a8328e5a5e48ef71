package repository

import (
	"context"
	"fmt"

	"videohub/internal/microservices/http-api/models"

	"gorm.io/gorm"
)

// VideoStats holds the derived, never-stored figures of one video.
type VideoStats struct {
	LikesCount    int64
	AverageRating float64
	RatingsCount  int64
	HasLiked      bool
}

type VideoStatsRepository interface {
	// Stats computes VideoStats for every id in videoIDs. HasLiked is only
	// looked up when viewerID is non-empty. Ids with no likes and no ratings
	// still get a zero entry.
	Stats(ctx context.Context, videoIDs []int64, viewerID string) (map[int64]VideoStats, error)
}

type videoStatsRepository struct {
	db *gorm.DB
}

func NewVideoStatsRepository(db *gorm.DB) VideoStatsRepository {
	return &videoStatsRepository{db: db}
}

func (r *videoStatsRepository) Stats(ctx context.Context, videoIDs []int64, viewerID string) (map[int64]VideoStats, error) {
	out := make(map[int64]VideoStats, len(videoIDs))
	if len(videoIDs) == 0 {
		return out, nil
	}
	for _, id := range videoIDs {
		out[id] = VideoStats{}
	}

	db := r.db.WithContext(ctx)

	var likes []struct {
		VideoID int64
		Total   int64
	}
	if err := db.Model(&models.VideoLike{}).
		Select("video_id, COUNT(*) AS total").
		Where("video_id IN ?", videoIDs).
		Group("video_id").
		Scan(&likes).Error; err != nil {
		return nil, fmt.Errorf("count likes: %w", err)
	}
	for _, l := range likes {
		s := out[l.VideoID]
		s.LikesCount = l.Total
		out[l.VideoID] = s
	}

	var ratings []struct {
		VideoID int64
		Average float64
		Total   int64
	}
	if err := db.Model(&models.Rating{}).
		Select("video_id, AVG(rating)::float8 AS average, COUNT(*) AS total").
		Where("video_id IN ?", videoIDs).
		Group("video_id").
		Scan(&ratings).Error; err != nil {
		return nil, fmt.Errorf("average ratings: %w", err)
	}
	for _, rt := range ratings {
		s := out[rt.VideoID]
		s.AverageRating = rt.Average
		s.RatingsCount = rt.Total
		out[rt.VideoID] = s
	}

	if viewerID == "" {
		return out, nil
	}

	var liked []int64
	if err := db.Model(&models.VideoLike{}).
		Where("user_id = ? AND video_id IN ?", viewerID, videoIDs).
		Pluck("video_id", &liked).Error; err != nil {
		return nil, fmt.Errorf("viewer likes: %w", err)
	}
	for _, id := range liked {
		s := out[id]
		s.HasLiked = true
		out[id] = s
	}

	return out, nil
}
