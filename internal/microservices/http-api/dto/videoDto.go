package dto

import (
	"encoding/json"
	"time"
)

// DateLayout is the wire format of release_date.
const DateLayout = "2006-01-02"

// CreateVideoDTO used for POST /api/videos and PUT /api/videos/:id
type CreateVideoDTO struct {
	Title       string  `json:"title" binding:"required,max=100"`
	Description *string `json:"description,omitempty" binding:"omitempty,max=300"`
	ReleaseDate string  `json:"release_date" binding:"required"`
	Producer    string  `json:"producer" binding:"required,max=255"`
	StarActors  string  `json:"star_actors" binding:"required,max=255"`
	Thumbnail   string  `json:"thumbnail" binding:"required"`
	VideoFile   string  `json:"video_file" binding:"required"`
	GenreIDs    []int64 `json:"genre_ids,omitempty"`
}

// UpdateVideoDTO used for PATCH /api/videos/:id (partial updates allowed)
type UpdateVideoDTO struct {
	Title       *string        `json:"title,omitempty" binding:"omitempty,max=100"`
	Description NullableString `json:"description"`
	ReleaseDate *string        `json:"release_date,omitempty"`
	Producer    *string        `json:"producer,omitempty" binding:"omitempty,max=255"`
	StarActors  *string        `json:"star_actors,omitempty" binding:"omitempty,max=255"`
	Thumbnail   *string        `json:"thumbnail,omitempty"`
	VideoFile   *string        `json:"video_file,omitempty"`
	GenreIDs    *[]int64       `json:"genre_ids,omitempty"`
}

// NullableString tells an omitted JSON field (Set false) from an explicit
// null (Set true, Value nil).
type NullableString struct {
	Set   bool
	Value *string
}

func (n *NullableString) UnmarshalJSON(data []byte) error {
	n.Set = true
	if string(data) == "null" {
		n.Value = nil
		return nil
	}
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	n.Value = &s
	return nil
}

// VideoResponse is the projection of a video for one (possibly anonymous) viewer.
type VideoResponse struct {
	ID            int64           `json:"id"`
	Title         string          `json:"title"`
	Description   *string         `json:"description"`
	ReleaseDate   string          `json:"release_date"`
	Producer      string          `json:"producer"`
	StarActors    string          `json:"star_actors"`
	Thumbnail     string          `json:"thumbnail"`
	VideoFile     string          `json:"video_file"`
	UploadedBy    string          `json:"uploaded_by"`
	Genres        []GenreResponse `json:"genres"`
	LikesCount    int64           `json:"likes_count"`
	AverageRating float64         `json:"average_rating"`
	HasLiked      bool            `json:"has_liked"`
	CreatedAt     time.Time       `json:"created_at"`
}

// Pagination block of list responses
type Pagination struct {
	Page       int   `json:"page"`
	PageSize   int   `json:"page_size"`
	Total      int64 `json:"total"`
	TotalPages int64 `json:"total_pages"`
}

func NewPagination(page, pageSize int, total int64) Pagination {
	return Pagination{
		Page:       page,
		PageSize:   pageSize,
		Total:      total,
		TotalPages: (total + int64(pageSize) - 1) / int64(pageSize),
	}
}

type VideoListResponse struct {
	Data       []VideoResponse `json:"data"`
	Pagination Pagination      `json:"pagination"`
}

// MediaUploadResponse is returned by POST /api/videos/media
type MediaUploadResponse struct {
	Path string `json:"path"`
}
