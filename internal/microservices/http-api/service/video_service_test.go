package service

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"videohub/internal/microservices/http-api/dto"
	"videohub/internal/microservices/http-api/models"
	"videohub/internal/microservices/http-api/repository"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

type videoServiceFixture struct {
	videos *MockVideoRepository
	genres *MockGenreRepository
	stats  *MockStatsRepository
	svc    VideoService
}

func newVideoServiceFixture() *videoServiceFixture {
	f := &videoServiceFixture{
		videos: new(MockVideoRepository),
		genres: new(MockGenreRepository),
		stats:  new(MockStatsRepository),
	}
	f.svc = NewVideoService(f.videos, f.genres, NewProjector(f.stats))
	f.stats.On("Stats", mock.Anything, mock.Anything, mock.Anything).Return(map[int64]repository.VideoStats{}, nil)
	return f
}

func validCreate() dto.CreateVideoDTO {
	return dto.CreateVideoDTO{
		Title:       "  The Long Road ",
		ReleaseDate: "2019-08-30",
		Producer:    "Studio",
		StarActors:  "X, Y",
		Thumbnail:   "thumbnails/a.jpg",
		VideoFile:   "videos/a.mp4",
		GenreIDs:    []int64{1, 2, 2},
	}
}

func TestVideoService_Create(t *testing.T) {
	f := newVideoServiceFixture()
	f.genres.On("CountExisting", mock.Anything, []int64{1, 2, 2}).Return(int64(2), nil)
	f.videos.On("Create", mock.Anything, mock.AnythingOfType("*models.Video"), []int64{1, 2, 2}).
		Run(func(args mock.Arguments) {
			v := args.Get(1).(*models.Video)
			assert.Equal(t, "The Long Road", v.Title)
			assert.Equal(t, "admin-1", v.UploadedByID)
			assert.Equal(t, time.Date(2019, 8, 30, 0, 0, 0, 0, time.UTC), v.ReleaseDate)
			v.ID = 10
		}).
		Return(nil)
	f.videos.On("GetByID", mock.Anything, int64(10)).Return(&models.Video{
		ID:          10,
		Title:       "The Long Road",
		ReleaseDate: time.Date(2019, 8, 30, 0, 0, 0, 0, time.UTC),
		UploadedBy:  &models.User{Username: "root"},
	}, nil)

	resp, err := f.svc.Create(context.Background(), validCreate(), "admin-1")
	require.NoError(t, err)
	assert.Equal(t, int64(10), resp.ID)
	assert.Equal(t, "root", resp.UploadedBy)
	assert.Equal(t, "2019-08-30", resp.ReleaseDate)
}

func TestVideoService_Create_Validation(t *testing.T) {
	tests := []struct {
		name  string
		edit  func(*dto.CreateVideoDTO)
		field string
	}{
		{"blank title", func(d *dto.CreateVideoDTO) { d.Title = "   " }, "title"},
		{"bad date", func(d *dto.CreateVideoDTO) { d.ReleaseDate = "30/08/2019" }, "release_date"},
		{"long description", func(d *dto.CreateVideoDTO) {
			long := string(make([]byte, 301))
			d.Description = &long
		}, "description"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newVideoServiceFixture()
			in := validCreate()
			tt.edit(&in)

			_, err := f.svc.Create(context.Background(), in, "admin-1")

			var vErr *ValidationError
			require.ErrorAs(t, err, &vErr)
			assert.Equal(t, tt.field, vErr.Field)
			f.videos.AssertNotCalled(t, "Create", mock.Anything, mock.Anything, mock.Anything)
		})
	}
}

func TestVideoService_Create_UnknownGenre(t *testing.T) {
	f := newVideoServiceFixture()
	f.genres.On("CountExisting", mock.Anything, mock.Anything).Return(int64(1), nil)

	_, err := f.svc.Create(context.Background(), validCreate(), "admin-1")
	assert.ErrorIs(t, err, ErrGenreNotFound)
	f.videos.AssertNotCalled(t, "Create", mock.Anything, mock.Anything, mock.Anything)
}

func TestVideoService_Get_NotFound(t *testing.T) {
	f := newVideoServiceFixture()
	f.videos.On("GetByID", mock.Anything, int64(5)).Return(nil, gorm.ErrRecordNotFound)

	_, err := f.svc.Get(context.Background(), 5, "")
	assert.ErrorIs(t, err, ErrVideoNotFound)
}

func TestVideoService_Patch_KeepsUntouchedFields(t *testing.T) {
	f := newVideoServiceFixture()
	desc := "kept"
	existing := &models.Video{
		ID:           3,
		Title:        "Old",
		Description:  &desc,
		ReleaseDate:  time.Date(2000, 1, 1, 0, 0, 0, 0, time.UTC),
		Producer:     "P",
		UploadedByID: "admin-1",
	}
	f.videos.On("GetByID", mock.Anything, int64(3)).Return(existing, nil)
	f.videos.On("Update", mock.Anything, mock.AnythingOfType("*models.Video"), []int64(nil)).
		Run(func(args mock.Arguments) {
			v := args.Get(1).(*models.Video)
			assert.Equal(t, "New", v.Title)
			assert.Equal(t, "kept", *v.Description)
			assert.Equal(t, "P", v.Producer)
			assert.Equal(t, "admin-1", v.UploadedByID)
		}).
		Return(nil)

	title := "New"
	_, err := f.svc.Patch(context.Background(), 3, dto.UpdateVideoDTO{Title: &title}, "")
	require.NoError(t, err)
	f.genres.AssertNotCalled(t, "CountExisting", mock.Anything, mock.Anything)
}

func TestVideoService_Patch_Description(t *testing.T) {
	tests := []struct {
		name string
		body string
		want *string
	}{
		{"omitted keeps", `{"title":"New"}`, strPtr("kept")},
		{"null clears", `{"description":null}`, nil},
		{"value replaces", `{"description":"fresh"}`, strPtr("fresh")},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newVideoServiceFixture()
			existing := &models.Video{ID: 3, Title: "Old", Description: strPtr("kept")}
			f.videos.On("GetByID", mock.Anything, int64(3)).Return(existing, nil)
			var saved *models.Video
			f.videos.On("Update", mock.Anything, mock.AnythingOfType("*models.Video"), []int64(nil)).
				Run(func(args mock.Arguments) { saved = args.Get(1).(*models.Video) }).
				Return(nil)

			var in dto.UpdateVideoDTO
			require.NoError(t, json.Unmarshal([]byte(tt.body), &in))
			_, err := f.svc.Patch(context.Background(), 3, in, "")
			require.NoError(t, err)

			require.NotNil(t, saved)
			assert.Equal(t, tt.want, saved.Description)
		})
	}
}

func strPtr(s string) *string { return &s }

func TestVideoService_Replace_ClearsGenresWhenOmitted(t *testing.T) {
	f := newVideoServiceFixture()
	f.videos.On("GetByID", mock.Anything, int64(3)).Return(&models.Video{ID: 3}, nil)
	f.videos.On("Update", mock.Anything, mock.Anything, []int64{}).Return(nil)

	in := validCreate()
	in.GenreIDs = nil
	_, err := f.svc.Replace(context.Background(), 3, in, "")
	require.NoError(t, err)
	f.videos.AssertCalled(t, "Update", mock.Anything, mock.Anything, []int64{})
}

func TestVideoService_Delete_NotFound(t *testing.T) {
	f := newVideoServiceFixture()
	f.videos.On("Delete", mock.Anything, int64(9)).Return(gorm.ErrRecordNotFound)

	assert.ErrorIs(t, f.svc.Delete(context.Background(), 9), ErrVideoNotFound)
}

func TestVideoService_List_NormalizesPaging(t *testing.T) {
	f := newVideoServiceFixture()
	f.videos.On("List", mock.Anything, repository.VideoFilter{Query: "road", Page: 1, PageSize: MaxPageSize}).
		Return([]models.Video{{ID: 1}}, int64(1), nil)

	resp, err := f.svc.List(context.Background(), repository.VideoFilter{Query: " road ", Page: 0, PageSize: 1000}, "")
	require.NoError(t, err)
	assert.Len(t, resp.Data, 1)
	assert.Equal(t, 1, resp.Pagination.Page)
	assert.Equal(t, MaxPageSize, resp.Pagination.PageSize)
	assert.Equal(t, int64(1), resp.Pagination.TotalPages)
}

func TestNormalizePage(t *testing.T) {
	p, s := NormalizePage(-3, 0)
	assert.Equal(t, 1, p)
	assert.Equal(t, DefaultPageSize, s)

	p, s = NormalizePage(4, 50)
	assert.Equal(t, 4, p)
	assert.Equal(t, 50, s)
}
