package repository

import (
	"context"
	"fmt"
	"time"

	"videohub/internal/microservices/http-api/models"

	"gorm.io/gorm"
)

type RatingRepository interface {
	// Upsert writes rating.Rating for (rating.UserID, rating.VideoID) and fills
	// rating.ID and timestamps. created is true when a new row was inserted.
	Upsert(ctx context.Context, rating *models.Rating) (created bool, err error)
	GetByUserAndVideo(ctx context.Context, userID string, videoID int64) (*models.Rating, error)
	CalculateAverageRating(ctx context.Context, videoID int64) (float64, error)
	CountRatings(ctx context.Context, videoID int64) (int64, error)
}

type ratingRepository struct {
	db *gorm.DB
}

func NewRatingRepository(db *gorm.DB) RatingRepository {
	return &ratingRepository{db: db}
}

// upsertRatingSQL relies on the unique index idx_ratings_user_video; one
// statement means concurrent first ratings converge on a single row.
// xmax is 0 only for freshly inserted tuples.
const upsertRatingSQL = `
INSERT INTO ratings (user_id, video_id, rating, created_at, updated_at)
VALUES (?, ?, ?, ?, ?)
ON CONFLICT (user_id, video_id)
DO UPDATE SET rating = EXCLUDED.rating, updated_at = EXCLUDED.updated_at
RETURNING id, created_at, updated_at, (xmax = 0) AS inserted`

func (r *ratingRepository) Upsert(ctx context.Context, rating *models.Rating) (bool, error) {
	var row struct {
		ID        int64
		CreatedAt time.Time
		UpdatedAt time.Time
		Inserted  bool
	}

	now := time.Now().UTC()
	err := r.db.WithContext(ctx).
		Raw(upsertRatingSQL, rating.UserID, rating.VideoID, rating.Rating, now, now).
		Scan(&row).Error
	if err != nil {
		return false, fmt.Errorf("upsert rating: %w", err)
	}

	rating.ID = row.ID
	rating.CreatedAt = row.CreatedAt
	rating.UpdatedAt = row.UpdatedAt
	return row.Inserted, nil
}

// GetByUserAndVideo retrieves a user's rating for a specific video
func (r *ratingRepository) GetByUserAndVideo(ctx context.Context, userID string, videoID int64) (*models.Rating, error) {
	var rating models.Rating
	err := r.db.WithContext(ctx).
		Where("user_id = ? AND video_id = ?", userID, videoID).
		First(&rating).Error
	if err != nil {
		return nil, err
	}
	return &rating, nil
}

// CalculateAverageRating is the mean of the live ratings of a video, 0 when there are none
func (r *ratingRepository) CalculateAverageRating(ctx context.Context, videoID int64) (float64, error) {
	var avg struct {
		Average float64
	}

	err := r.db.WithContext(ctx).Model(&models.Rating{}).
		Select("COALESCE(AVG(rating), 0)::float8 AS average").
		Where("video_id = ?", videoID).
		Scan(&avg).Error
	if err != nil {
		return 0, err
	}

	return avg.Average, nil
}

// CountRatings counts the total number of ratings for a video
func (r *ratingRepository) CountRatings(ctx context.Context, videoID int64) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&models.Rating{}).Where("video_id = ?", videoID).Count(&count).Error
	return count, err
}
