package service

import (
	"context"
	"fmt"

	"videohub/internal/microservices/http-api/dto"
	"videohub/internal/microservices/http-api/models"
	"videohub/internal/microservices/http-api/repository"
)

// Projector shapes stored videos into the read view for one viewer. An empty
// viewerID is an anonymous viewer and never has_liked.
type Projector struct {
	stats repository.VideoStatsRepository
}

func NewProjector(stats repository.VideoStatsRepository) *Projector {
	return &Projector{stats: stats}
}

// Project keeps the order of videos. Stats for the whole slice come from one batch.
func (p *Projector) Project(ctx context.Context, videos []models.Video, viewerID string) ([]dto.VideoResponse, error) {
	out := make([]dto.VideoResponse, 0, len(videos))
	if len(videos) == 0 {
		return out, nil
	}

	ids := make([]int64, 0, len(videos))
	for _, v := range videos {
		ids = append(ids, v.ID)
	}

	stats, err := p.stats.Stats(ctx, ids, viewerID)
	if err != nil {
		return nil, fmt.Errorf("video stats: %w", err)
	}

	for i := range videos {
		out = append(out, project(&videos[i], stats[videos[i].ID], viewerID))
	}
	return out, nil
}

func (p *Projector) ProjectOne(ctx context.Context, v *models.Video, viewerID string) (*dto.VideoResponse, error) {
	list, err := p.Project(ctx, []models.Video{*v}, viewerID)
	if err != nil {
		return nil, err
	}
	return &list[0], nil
}

func project(v *models.Video, st repository.VideoStats, viewerID string) dto.VideoResponse {
	resp := dto.VideoResponse{
		ID:            v.ID,
		Title:         v.Title,
		Description:   v.Description,
		ReleaseDate:   v.ReleaseDate.Format(dto.DateLayout),
		Producer:      v.Producer,
		StarActors:    v.StarActors,
		Thumbnail:     v.Thumbnail,
		VideoFile:     v.VideoFile,
		Genres:        dto.GenresFromModels(v.Genres),
		LikesCount:    st.LikesCount,
		AverageRating: st.AverageRating,
		HasLiked:      viewerID != "" && st.HasLiked,
		CreatedAt:     v.CreatedAt,
	}
	if v.UploadedBy != nil {
		resp.UploadedBy = v.UploadedBy.Username
	}
	return resp
}
