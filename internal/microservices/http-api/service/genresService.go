package service

import (
	"context"
	"fmt"

	"videohub/internal/microservices/http-api/dto"
	"videohub/internal/microservices/http-api/models"
	"videohub/internal/microservices/http-api/repository"
)

type GenreService interface {
	GetAll(ctx context.Context) ([]models.Genre, error)
	Get(ctx context.Context, id int64) (*models.Genre, error)
	// Create returns the genre called name, created reports whether it is new.
	Create(ctx context.Context, name string) (genre *models.Genre, created bool, err error)
	Rename(ctx context.Context, id int64, name string) (*models.Genre, error)
	Delete(ctx context.Context, id int64) error
	VideosByGenre(ctx context.Context, id int64, viewerID string) ([]dto.VideoResponse, error)
	MergeDuplicates(ctx context.Context) ([]repository.MergeReport, error)
}

type genreService struct {
	repo      repository.GenreRepository
	projector *Projector
}

func NewGenreService(r repository.GenreRepository, projector *Projector) GenreService {
	return &genreService{repo: r, projector: projector}
}

func (s *genreService) GetAll(ctx context.Context) ([]models.Genre, error) {
	return s.repo.GetAll(ctx)
}

func (s *genreService) Get(ctx context.Context, id int64) (*models.Genre, error) {
	g, err := s.repo.GetByID(ctx, id)
	if err != nil {
		if repository.IsNotFound(err) {
			return nil, ErrGenreNotFound
		}
		return nil, fmt.Errorf("get genre: %w", err)
	}
	return g, nil
}

func normalizeName(name string) (string, error) {
	n := models.NormalizeGenreName(name)
	if n == "" {
		return "", newValidationError("name", "genre name required")
	}
	return n, nil
}

func (s *genreService) Create(ctx context.Context, name string) (*models.Genre, bool, error) {
	n, err := normalizeName(name)
	if err != nil {
		return nil, false, err
	}
	return s.repo.FindOrCreate(ctx, n)
}

func (s *genreService) Rename(ctx context.Context, id int64, name string) (*models.Genre, error) {
	n, err := normalizeName(name)
	if err != nil {
		return nil, err
	}
	if err := s.repo.Rename(ctx, id, n); err != nil {
		switch {
		case repository.IsNotFound(err):
			return nil, ErrGenreNotFound
		case repository.IsUniqueViolation(err):
			return nil, ErrGenreNameTaken
		}
		return nil, err
	}
	return &models.Genre{ID: id, Name: n}, nil
}

func (s *genreService) Delete(ctx context.Context, id int64) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		if repository.IsNotFound(err) {
			return ErrGenreNotFound
		}
		return err
	}
	return nil
}

func (s *genreService) VideosByGenre(ctx context.Context, id int64, viewerID string) ([]dto.VideoResponse, error) {
	if _, err := s.Get(ctx, id); err != nil {
		return nil, err
	}
	videos, err := s.repo.GetVideosByGenre(ctx, id)
	if err != nil {
		return nil, err
	}
	return s.projector.Project(ctx, videos, viewerID)
}

func (s *genreService) MergeDuplicates(ctx context.Context) ([]repository.MergeReport, error) {
	return s.repo.MergeDuplicates(ctx)
}
