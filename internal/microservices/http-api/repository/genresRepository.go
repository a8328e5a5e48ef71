package repository

import (
	"context"
	"fmt"

	"videohub/internal/microservices/http-api/models"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type GenreRepository interface {
	GetAll(ctx context.Context) ([]models.Genre, error)
	GetByID(ctx context.Context, id int64) (*models.Genre, error)
	FindOrCreate(ctx context.Context, name string) (*models.Genre, bool, error)
	Rename(ctx context.Context, id int64, name string) error
	Delete(ctx context.Context, id int64) error
	CountExisting(ctx context.Context, ids []int64) (int64, error)
	MergeDuplicates(ctx context.Context) ([]MergeReport, error)
	GetVideosByGenre(ctx context.Context, genreID int64) ([]models.Video, error)
}

type GenreRepo struct {
	db *gorm.DB
}

var _ GenreRepository = (*GenreRepo)(nil)

func NewGenreRepo(db *gorm.DB) *GenreRepo {
	return &GenreRepo{db: db}
}

func (r *GenreRepo) GetAll(ctx context.Context) ([]models.Genre, error) {
	var list []models.Genre
	if err := r.db.WithContext(ctx).Order("name asc").Find(&list).Error; err != nil {
		return nil, fmt.Errorf("get genres: %w", err)
	}
	return list, nil
}

func (r *GenreRepo) GetByID(ctx context.Context, id int64) (*models.Genre, error) {
	var g models.Genre
	if err := r.db.WithContext(ctx).First(&g, id).Error; err != nil {
		return nil, err
	}
	return &g, nil
}

// FindOrCreate returns the genre called name, inserting it when missing.
// The insert is ON CONFLICT DO NOTHING so concurrent callers converge on one row.
func (r *GenreRepo) FindOrCreate(ctx context.Context, name string) (*models.Genre, bool, error) {
	g := models.Genre{Name: name}
	result := r.db.WithContext(ctx).
		Clauses(clause.OnConflict{Columns: []clause.Column{{Name: "name"}}, DoNothing: true}).
		Create(&g)
	if result.Error != nil {
		return nil, false, fmt.Errorf("create genre: %w", result.Error)
	}
	if result.RowsAffected == 1 {
		return &g, true, nil
	}

	var existing models.Genre
	if err := r.db.WithContext(ctx).Where("name = ?", name).First(&existing).Error; err != nil {
		return nil, false, fmt.Errorf("lookup genre: %w", err)
	}
	return &existing, false, nil
}

func (r *GenreRepo) Rename(ctx context.Context, id int64, name string) error {
	result := r.db.WithContext(ctx).Model(&models.Genre{}).Where("id = ?", id).Update("name", name)
	if result.Error != nil {
		return fmt.Errorf("rename genre: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (r *GenreRepo) Delete(ctx context.Context, id int64) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("genre_id = ?", id).Delete(&models.VideoGenre{}).Error; err != nil {
			return fmt.Errorf("unlink genre: %w", err)
		}
		result := tx.Delete(&models.Genre{}, id)
		if result.Error != nil {
			return fmt.Errorf("delete genre: %w", result.Error)
		}
		if result.RowsAffected == 0 {
			return gorm.ErrRecordNotFound
		}
		return nil
	})
}

// CountExisting counts how many of ids are real genres.
func (r *GenreRepo) CountExisting(ctx context.Context, ids []int64) (int64, error) {
	if len(ids) == 0 {
		return 0, nil
	}
	var count int64
	if err := r.db.WithContext(ctx).Model(&models.Genre{}).Where("id IN ?", ids).Count(&count).Error; err != nil {
		return 0, fmt.Errorf("count genres: %w", err)
	}
	return count, nil
}

// MergeReport describes one group of duplicate genre names folded together.
type MergeReport struct {
	Name    string
	KeptID  int64
	Removed []int64
}

// MergeDuplicates folds genres whose normalized names collide into the one with
// the lowest id. Video links are moved to the kept genre before the duplicates
// are deleted, all inside a single transaction.
func (r *GenreRepo) MergeDuplicates(ctx context.Context) ([]MergeReport, error) {
	var reports []MergeReport

	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var all []models.Genre
		if err := tx.Order("id asc").Find(&all).Error; err != nil {
			return fmt.Errorf("load genres: %w", err)
		}

		kept := make(map[string]int64)
		byName := make(map[string]*MergeReport)
		var order []string
		for _, g := range all {
			name := models.NormalizeGenreName(g.Name)
			keepID, ok := kept[name]
			if !ok {
				kept[name] = g.ID
				continue
			}
			rep, ok := byName[name]
			if !ok {
				rep = &MergeReport{Name: name, KeptID: keepID}
				byName[name] = rep
				order = append(order, name)
			}
			rep.Removed = append(rep.Removed, g.ID)

			// repoint links, skipping videos that already carry the kept genre
			if err := tx.Exec(`INSERT INTO video_genres (video_id, genre_id)
				SELECT video_id, ? FROM video_genres WHERE genre_id = ?
				ON CONFLICT DO NOTHING`, keepID, g.ID).Error; err != nil {
				return fmt.Errorf("move links of genre %d: %w", g.ID, err)
			}
			if err := tx.Where("genre_id = ?", g.ID).Delete(&models.VideoGenre{}).Error; err != nil {
				return fmt.Errorf("drop links of genre %d: %w", g.ID, err)
			}
			if err := tx.Delete(&models.Genre{}, g.ID).Error; err != nil {
				return fmt.Errorf("delete genre %d: %w", g.ID, err)
			}
		}

		// store every surviving name in normalized form
		for name, id := range kept {
			if err := tx.Model(&models.Genre{}).Where("id = ? AND name <> ?", id, name).Update("name", name).Error; err != nil {
				return fmt.Errorf("normalize genre %d: %w", id, err)
			}
		}

		for _, name := range order {
			reports = append(reports, *byName[name])
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return reports, nil
}

// GetVideosByGenre returns videos tagged with genreID, newest first.
func (r *GenreRepo) GetVideosByGenre(ctx context.Context, genreID int64) ([]models.Video, error) {
	var list []models.Video
	if err := r.db.WithContext(ctx).
		Model(&models.Video{}).
		Joins("JOIN video_genres vg ON vg.video_id = videos.id").
		Where("vg.genre_id = ?", genreID).
		Preload("Genres").
		Preload("UploadedBy").
		Order("videos.created_at desc").
		Find(&list).Error; err != nil {
		return nil, fmt.Errorf("get videos by genre: %w", err)
	}
	return list, nil
}
