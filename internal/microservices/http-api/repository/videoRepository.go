package repository

import (
	"context"
	"fmt"
	"strings"

	"videohub/internal/microservices/http-api/models"

	"gorm.io/gorm"
)

// VideoFilter narrows the catalog listing. Zero values mean "no filter".
type VideoFilter struct {
	Query    string
	GenreID  int64
	Page     int
	PageSize int
}

type VideoRepository interface {
	List(ctx context.Context, f VideoFilter) ([]models.Video, int64, error)
	GetByID(ctx context.Context, id int64) (*models.Video, error)
	Exists(ctx context.Context, id int64) (bool, error)
	Create(ctx context.Context, v *models.Video, genreIDs []int64) error
	Update(ctx context.Context, v *models.Video, genreIDs []int64) error
	Delete(ctx context.Context, id int64) error
}

type VideoRepo struct {
	db *gorm.DB
}

var _ VideoRepository = (*VideoRepo)(nil)

func NewVideoRepo(db *gorm.DB) *VideoRepo {
	return &VideoRepo{db: db}
}

// List returns one page of videos, newest first, plus the total match count.
// Title search splits the query into tokens, every token must appear in the title.
func (r *VideoRepo) List(ctx context.Context, f VideoFilter) ([]models.Video, int64, error) {
	var list []models.Video
	var total int64

	q := r.db.WithContext(ctx).Model(&models.Video{})
	for _, t := range strings.Fields(f.Query) {
		q = q.Where(`videos.title ILIKE ? ESCAPE '\'`, containsPattern(t))
	}
	if f.GenreID > 0 {
		q = q.Joins("JOIN video_genres vg ON vg.video_id = videos.id").Where("vg.genre_id = ?", f.GenreID)
	}

	if err := q.Count(&total).Error; err != nil {
		return nil, 0, fmt.Errorf("count videos: %w", err)
	}

	offset := (f.Page - 1) * f.PageSize
	if err := q.
		Preload("Genres").
		Preload("UploadedBy").
		Order("videos.created_at desc, videos.id desc").
		Limit(f.PageSize).
		Offset(offset).
		Find(&list).Error; err != nil {
		return nil, 0, fmt.Errorf("list videos: %w", err)
	}

	return list, total, nil
}

var likeEscaper = strings.NewReplacer(`\`, `\\`, "%", `\%`, "_", `\_`)

// containsPattern builds an ILIKE pattern matching s literally anywhere.
func containsPattern(s string) string {
	return "%" + likeEscaper.Replace(s) + "%"
}

func (r *VideoRepo) GetByID(ctx context.Context, id int64) (*models.Video, error) {
	var v models.Video
	if err := r.db.WithContext(ctx).Preload("Genres").Preload("UploadedBy").First(&v, id).Error; err != nil {
		return nil, err
	}
	return &v, nil
}

func (r *VideoRepo) Exists(ctx context.Context, id int64) (bool, error) {
	var count int64
	if err := r.db.WithContext(ctx).Model(&models.Video{}).Where("id = ?", id).Count(&count).Error; err != nil {
		return false, fmt.Errorf("check video: %w", err)
	}
	return count > 0, nil
}

// Create inserts the video and links genreIDs in one transaction.
func (r *VideoRepo) Create(ctx context.Context, v *models.Video, genreIDs []int64) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		// genres are linked below, skip the association upsert
		if err := tx.Omit("Genres", "UploadedBy").Create(v).Error; err != nil {
			return fmt.Errorf("create video: %w", err)
		}
		return replaceGenres(tx, v.ID, genreIDs)
	})
}

// Update saves the editable columns. uploaded_by_id and created_at are never written.
// A nil genreIDs leaves the genre links untouched.
func (r *VideoRepo) Update(ctx context.Context, v *models.Video, genreIDs []int64) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		result := tx.Model(&models.Video{ID: v.ID}).
			Select("title", "description", "release_date", "producer", "star_actors", "thumbnail", "video_file").
			Updates(v)
		if result.Error != nil {
			return fmt.Errorf("update video: %w", result.Error)
		}
		if result.RowsAffected == 0 {
			return gorm.ErrRecordNotFound
		}
		if genreIDs == nil {
			return nil
		}
		return replaceGenres(tx, v.ID, genreIDs)
	})
}

func (r *VideoRepo) Delete(ctx context.Context, id int64) error {
	result := r.db.WithContext(ctx).Delete(&models.Video{}, id)
	if result.Error != nil {
		return fmt.Errorf("delete video: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func replaceGenres(tx *gorm.DB, videoID int64, genreIDs []int64) error {
	if err := tx.Where("video_id = ?", videoID).Delete(&models.VideoGenre{}).Error; err != nil {
		return fmt.Errorf("clear genres: %w", err)
	}
	if len(genreIDs) == 0 {
		return nil
	}
	links := make([]models.VideoGenre, 0, len(genreIDs))
	seen := make(map[int64]bool, len(genreIDs))
	for _, id := range genreIDs {
		if seen[id] {
			continue
		}
		seen[id] = true
		links = append(links, models.VideoGenre{VideoID: videoID, GenreID: id})
	}
	if err := tx.Create(&links).Error; err != nil {
		return fmt.Errorf("link genres: %w", err)
	}
	return nil
}
