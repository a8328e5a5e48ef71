package dto

import "videohub/internal/microservices/http-api/models"

// CreateGenreDTO for POST /api/genres and PUT/PATCH /api/genres/:id
type CreateGenreDTO struct {
	Name string `json:"name" binding:"required,max=255"`
}

type GenreResponse struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

func GenreFromModel(g models.Genre) GenreResponse {
	return GenreResponse{
		ID:   g.ID,
		Name: g.Name,
	}
}

func GenresFromModels(list []models.Genre) []GenreResponse {
	out := make([]GenreResponse, 0, len(list))
	for _, g := range list {
		out = append(out, GenreFromModel(g))
	}
	return out
}
