package service

import (
	"context"
	"fmt"
	"strings"
	"time"
	"unicode/utf8"

	"videohub/internal/microservices/http-api/dto"
	"videohub/internal/microservices/http-api/models"
	"videohub/internal/microservices/http-api/repository"
)

const (
	DefaultPageSize = 20
	MaxPageSize     = 100

	maxTitleLen       = 100
	maxDescriptionLen = 300
)

type VideoService interface {
	List(ctx context.Context, f repository.VideoFilter, viewerID string) (*dto.VideoListResponse, error)
	Get(ctx context.Context, id int64, viewerID string) (*dto.VideoResponse, error)
	Create(ctx context.Context, in dto.CreateVideoDTO, uploaderID string) (*dto.VideoResponse, error)
	Replace(ctx context.Context, id int64, in dto.CreateVideoDTO, viewerID string) (*dto.VideoResponse, error)
	Patch(ctx context.Context, id int64, in dto.UpdateVideoDTO, viewerID string) (*dto.VideoResponse, error)
	Delete(ctx context.Context, id int64) error
}

type videoService struct {
	repo      repository.VideoRepository
	genreRepo repository.GenreRepository
	projector *Projector
}

func NewVideoService(repo repository.VideoRepository, genreRepo repository.GenreRepository, projector *Projector) VideoService {
	return &videoService{repo: repo, genreRepo: genreRepo, projector: projector}
}

// NormalizePage clamps page and page size to usable values.
func NormalizePage(page, pageSize int) (int, int) {
	if page < 1 {
		page = 1
	}
	if pageSize < 1 {
		pageSize = DefaultPageSize
	}
	if pageSize > MaxPageSize {
		pageSize = MaxPageSize
	}
	return page, pageSize
}

func (s *videoService) List(ctx context.Context, f repository.VideoFilter, viewerID string) (*dto.VideoListResponse, error) {
	f.Page, f.PageSize = NormalizePage(f.Page, f.PageSize)
	f.Query = strings.TrimSpace(f.Query)

	videos, total, err := s.repo.List(ctx, f)
	if err != nil {
		return nil, err
	}

	data, err := s.projector.Project(ctx, videos, viewerID)
	if err != nil {
		return nil, err
	}

	return &dto.VideoListResponse{
		Data:       data,
		Pagination: dto.NewPagination(f.Page, f.PageSize, total),
	}, nil
}

func (s *videoService) Get(ctx context.Context, id int64, viewerID string) (*dto.VideoResponse, error) {
	v, err := s.load(ctx, id)
	if err != nil {
		return nil, err
	}
	return s.projector.ProjectOne(ctx, v, viewerID)
}

func (s *videoService) load(ctx context.Context, id int64) (*models.Video, error) {
	v, err := s.repo.GetByID(ctx, id)
	if err != nil {
		if repository.IsNotFound(err) {
			return nil, ErrVideoNotFound
		}
		return nil, fmt.Errorf("get video: %w", err)
	}
	return v, nil
}

func (s *videoService) Create(ctx context.Context, in dto.CreateVideoDTO, uploaderID string) (*dto.VideoResponse, error) {
	v := &models.Video{UploadedByID: uploaderID}
	if err := applyFull(v, in); err != nil {
		return nil, err
	}
	if err := s.checkGenres(ctx, in.GenreIDs); err != nil {
		return nil, err
	}

	if err := s.repo.Create(ctx, v, in.GenreIDs); err != nil {
		return nil, fmt.Errorf("create video: %w", err)
	}
	return s.Get(ctx, v.ID, uploaderID)
}

// Replace overwrites every editable field; omitted genre_ids clears the genres.
func (s *videoService) Replace(ctx context.Context, id int64, in dto.CreateVideoDTO, viewerID string) (*dto.VideoResponse, error) {
	v, err := s.load(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := applyFull(v, in); err != nil {
		return nil, err
	}
	genreIDs := in.GenreIDs
	if genreIDs == nil {
		genreIDs = []int64{}
	}
	if err := s.checkGenres(ctx, genreIDs); err != nil {
		return nil, err
	}

	if err := s.save(ctx, v, genreIDs); err != nil {
		return nil, err
	}
	return s.Get(ctx, id, viewerID)
}

func (s *videoService) Patch(ctx context.Context, id int64, in dto.UpdateVideoDTO, viewerID string) (*dto.VideoResponse, error) {
	v, err := s.load(ctx, id)
	if err != nil {
		return nil, err
	}

	if in.Title != nil {
		if err := setTitle(v, *in.Title); err != nil {
			return nil, err
		}
	}
	if in.Description.Set {
		if err := setDescription(v, in.Description.Value); err != nil {
			return nil, err
		}
	}
	if in.ReleaseDate != nil {
		if err := setReleaseDate(v, *in.ReleaseDate); err != nil {
			return nil, err
		}
	}
	if in.Producer != nil {
		v.Producer = strings.TrimSpace(*in.Producer)
	}
	if in.StarActors != nil {
		v.StarActors = strings.TrimSpace(*in.StarActors)
	}
	if in.Thumbnail != nil {
		v.Thumbnail = *in.Thumbnail
	}
	if in.VideoFile != nil {
		v.VideoFile = *in.VideoFile
	}

	var genreIDs []int64
	if in.GenreIDs != nil {
		genreIDs = *in.GenreIDs
		if genreIDs == nil {
			genreIDs = []int64{}
		}
		if err := s.checkGenres(ctx, genreIDs); err != nil {
			return nil, err
		}
	}

	if err := s.save(ctx, v, genreIDs); err != nil {
		return nil, err
	}
	return s.Get(ctx, id, viewerID)
}

func (s *videoService) save(ctx context.Context, v *models.Video, genreIDs []int64) error {
	if err := s.repo.Update(ctx, v, genreIDs); err != nil {
		if repository.IsNotFound(err) {
			return ErrVideoNotFound
		}
		return fmt.Errorf("update video: %w", err)
	}
	return nil
}

func (s *videoService) Delete(ctx context.Context, id int64) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		if repository.IsNotFound(err) {
			return ErrVideoNotFound
		}
		return err
	}
	return nil
}

// checkGenres fails with ErrGenreNotFound unless every id names a genre.
func (s *videoService) checkGenres(ctx context.Context, ids []int64) error {
	if len(ids) == 0 {
		return nil
	}
	unique := make(map[int64]struct{}, len(ids))
	for _, id := range ids {
		unique[id] = struct{}{}
	}
	n, err := s.genreRepo.CountExisting(ctx, ids)
	if err != nil {
		return err
	}
	if n != int64(len(unique)) {
		return ErrGenreNotFound
	}
	return nil
}

func applyFull(v *models.Video, in dto.CreateVideoDTO) error {
	if err := setTitle(v, in.Title); err != nil {
		return err
	}
	if err := setDescription(v, in.Description); err != nil {
		return err
	}
	if err := setReleaseDate(v, in.ReleaseDate); err != nil {
		return err
	}
	v.Producer = strings.TrimSpace(in.Producer)
	v.StarActors = strings.TrimSpace(in.StarActors)
	v.Thumbnail = in.Thumbnail
	v.VideoFile = in.VideoFile
	return nil
}

func setTitle(v *models.Video, title string) error {
	title = strings.TrimSpace(title)
	if title == "" {
		return newValidationError("title", "title is required")
	}
	if utf8.RuneCountInString(title) > maxTitleLen {
		return newValidationError("title", "title must be at most 100 characters")
	}
	v.Title = title
	return nil
}

func setDescription(v *models.Video, desc *string) error {
	if desc == nil {
		v.Description = nil
		return nil
	}
	if utf8.RuneCountInString(*desc) > maxDescriptionLen {
		return newValidationError("description", "description must be at most 300 characters")
	}
	d := *desc
	v.Description = &d
	return nil
}

func setReleaseDate(v *models.Video, raw string) error {
	t, err := time.Parse(dto.DateLayout, strings.TrimSpace(raw))
	if err != nil {
		return newValidationError("release_date", "release_date must be a date in YYYY-MM-DD format")
	}
	v.ReleaseDate = t
	return nil
}
