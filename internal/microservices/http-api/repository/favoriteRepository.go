package repository

import (
	"context"
	"fmt"

	"videohub/internal/microservices/http-api/models"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type FavoriteRepository interface {
	// Toggle flips videoID in the favorites of userID and reports whether
	// the video is a favorite afterwards.
	Toggle(ctx context.Context, userID string, videoID int64) (bool, error)
	List(ctx context.Context, userID string) ([]models.Video, error)
	Exists(ctx context.Context, userID string, videoID int64) (bool, error)
}

type favoriteRepository struct {
	db *gorm.DB
}

func NewFavoriteRepository(db *gorm.DB) FavoriteRepository {
	return &favoriteRepository{db: db}
}

// Toggle has the same delete-or-insert shape as likeRepository.Toggle.
func (r *favoriteRepository) Toggle(ctx context.Context, userID string, videoID int64) (bool, error) {
	var added bool
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		result := tx.Where("user_id = ? AND video_id = ?", userID, videoID).Delete(&models.UserFavorite{})
		if result.Error != nil {
			return fmt.Errorf("remove favorite: %w", result.Error)
		}
		if result.RowsAffected > 0 {
			added = false
			return nil
		}

		fav := &models.UserFavorite{UserID: userID, VideoID: videoID}
		if err := tx.Clauses(clause.OnConflict{DoNothing: true}).Create(fav).Error; err != nil {
			return fmt.Errorf("add favorite: %w", err)
		}
		added = true
		return nil
	})
	return added, err
}

// List returns the favorite videos of userID, most recently added first.
func (r *favoriteRepository) List(ctx context.Context, userID string) ([]models.Video, error) {
	var list []models.Video
	if err := r.db.WithContext(ctx).
		Model(&models.Video{}).
		Joins("JOIN user_favorites uf ON uf.video_id = videos.id").
		Where("uf.user_id = ?", userID).
		Preload("Genres").
		Preload("UploadedBy").
		Order("uf.created_at desc, videos.id desc").
		Find(&list).Error; err != nil {
		return nil, fmt.Errorf("list favorites: %w", err)
	}
	return list, nil
}

func (r *favoriteRepository) Exists(ctx context.Context, userID string, videoID int64) (bool, error) {
	var count int64
	if err := r.db.WithContext(ctx).
		Model(&models.UserFavorite{}).
		Where("user_id = ? AND video_id = ?", userID, videoID).
		Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}
