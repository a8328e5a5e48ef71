package repository

import (
	"context"
	"fmt"

	"videohub/internal/microservices/http-api/models"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type LikeRepository interface {
	// Toggle flips membership of userID in the liker set of videoID and
	// reports whether the user is a liker afterwards.
	Toggle(ctx context.Context, userID string, videoID int64) (bool, error)
	Exists(ctx context.Context, userID string, videoID int64) (bool, error)
	Count(ctx context.Context, videoID int64) (int64, error)
}

type likeRepository struct {
	db *gorm.DB
}

func NewLikeRepository(db *gorm.DB) LikeRepository {
	return &likeRepository{db: db}
}

// Toggle deletes the row and inserts it only when nothing was deleted.
// Two concurrent toggles by the same user may both insert; the composite
// primary key plus DO NOTHING keeps the set free of duplicates and the
// later writer wins.
func (r *likeRepository) Toggle(ctx context.Context, userID string, videoID int64) (bool, error) {
	var liked bool
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		result := tx.Where("user_id = ? AND video_id = ?", userID, videoID).Delete(&models.VideoLike{})
		if result.Error != nil {
			return fmt.Errorf("unlike video: %w", result.Error)
		}
		if result.RowsAffected > 0 {
			liked = false
			return nil
		}

		like := &models.VideoLike{UserID: userID, VideoID: videoID}
		if err := tx.Clauses(clause.OnConflict{DoNothing: true}).Create(like).Error; err != nil {
			return fmt.Errorf("like video: %w", err)
		}
		liked = true
		return nil
	})
	return liked, err
}

func (r *likeRepository) Exists(ctx context.Context, userID string, videoID int64) (bool, error) {
	var count int64
	if err := r.db.WithContext(ctx).
		Model(&models.VideoLike{}).
		Where("user_id = ? AND video_id = ?", userID, videoID).
		Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

func (r *likeRepository) Count(ctx context.Context, videoID int64) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&models.VideoLike{}).Where("video_id = ?", videoID).Count(&count).Error
	return count, err
}
