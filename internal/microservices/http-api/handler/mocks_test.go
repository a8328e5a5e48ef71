package handler_test

import (
	"context"
	"io"
	"time"

	"videohub/internal/microservices/http-api/dto"
	"videohub/internal/microservices/http-api/handler"
	"videohub/internal/microservices/http-api/models"
	"videohub/internal/microservices/http-api/repository"
	"videohub/internal/microservices/http-api/service"
	"videohub/internal/storage"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/mock"
)

// --- MOCK SERVICES ---

type MockVideoService struct {
	mock.Mock
}

func (m *MockVideoService) List(ctx context.Context, f repository.VideoFilter, viewerID string) (*dto.VideoListResponse, error) {
	args := m.Called(ctx, f, viewerID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*dto.VideoListResponse), args.Error(1)
}

func (m *MockVideoService) Get(ctx context.Context, id int64, viewerID string) (*dto.VideoResponse, error) {
	args := m.Called(ctx, id, viewerID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*dto.VideoResponse), args.Error(1)
}

func (m *MockVideoService) Create(ctx context.Context, in dto.CreateVideoDTO, uploaderID string) (*dto.VideoResponse, error) {
	args := m.Called(ctx, in, uploaderID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*dto.VideoResponse), args.Error(1)
}

func (m *MockVideoService) Replace(ctx context.Context, id int64, in dto.CreateVideoDTO, viewerID string) (*dto.VideoResponse, error) {
	args := m.Called(ctx, id, in, viewerID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*dto.VideoResponse), args.Error(1)
}

func (m *MockVideoService) Patch(ctx context.Context, id int64, in dto.UpdateVideoDTO, viewerID string) (*dto.VideoResponse, error) {
	args := m.Called(ctx, id, in, viewerID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*dto.VideoResponse), args.Error(1)
}

func (m *MockVideoService) Delete(ctx context.Context, id int64) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

type MockInteractionService struct {
	mock.Mock
}

func (m *MockInteractionService) ToggleLike(ctx context.Context, videoID int64, userID string) (service.LikeState, error) {
	args := m.Called(ctx, videoID, userID)
	return args.Get(0).(service.LikeState), args.Error(1)
}

func (m *MockInteractionService) ToggleFavorite(ctx context.Context, videoID int64, userID string) (service.FavoriteState, error) {
	args := m.Called(ctx, videoID, userID)
	return args.Get(0).(service.FavoriteState), args.Error(1)
}

func (m *MockInteractionService) ListFavorites(ctx context.Context, userID string) ([]dto.VideoResponse, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]dto.VideoResponse), args.Error(1)
}

func (m *MockInteractionService) Rate(ctx context.Context, videoID int64, userID string, value int) (*service.RateResult, error) {
	args := m.Called(ctx, videoID, userID, value)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*service.RateResult), args.Error(1)
}

func (m *MockInteractionService) AverageRating(ctx context.Context, videoID int64) (float64, error) {
	args := m.Called(ctx, videoID)
	return args.Get(0).(float64), args.Error(1)
}

func (m *MockInteractionService) MyRating(ctx context.Context, videoID int64, userID string) (int, error) {
	args := m.Called(ctx, videoID, userID)
	return args.Int(0), args.Error(1)
}

type MockGenreService struct {
	mock.Mock
}

func (m *MockGenreService) GetAll(ctx context.Context) ([]models.Genre, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Genre), args.Error(1)
}

func (m *MockGenreService) Get(ctx context.Context, id int64) (*models.Genre, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Genre), args.Error(1)
}

func (m *MockGenreService) Create(ctx context.Context, name string) (*models.Genre, bool, error) {
	args := m.Called(ctx, name)
	if args.Get(0) == nil {
		return nil, false, args.Error(2)
	}
	return args.Get(0).(*models.Genre), args.Bool(1), args.Error(2)
}

func (m *MockGenreService) Rename(ctx context.Context, id int64, name string) (*models.Genre, error) {
	args := m.Called(ctx, id, name)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Genre), args.Error(1)
}

func (m *MockGenreService) Delete(ctx context.Context, id int64) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockGenreService) VideosByGenre(ctx context.Context, id int64, viewerID string) ([]dto.VideoResponse, error) {
	args := m.Called(ctx, id, viewerID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]dto.VideoResponse), args.Error(1)
}

func (m *MockGenreService) MergeDuplicates(ctx context.Context) ([]repository.MergeReport, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]repository.MergeReport), args.Error(1)
}

type MockAuthService struct {
	mock.Mock
}

func (m *MockAuthService) Register(ctx context.Context, username, password, email string) (*models.User, error) {
	args := m.Called(ctx, username, password, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func (m *MockAuthService) Login(ctx context.Context, username, password string) (string, string, *models.User, error) {
	args := m.Called(ctx, username, password)
	if args.Get(2) == nil {
		return "", "", nil, args.Error(3)
	}
	return args.String(0), args.String(1), args.Get(2).(*models.User), args.Error(3)
}

func (m *MockAuthService) RefreshAccessToken(ctx context.Context, refreshToken string) (string, error) {
	args := m.Called(ctx, refreshToken)
	return args.String(0), args.Error(1)
}

func (m *MockAuthService) RevokeToken(ctx context.Context, refreshToken string) error {
	args := m.Called(ctx, refreshToken)
	return args.Error(0)
}

// ValidateToken recognizes two fixed test tokens without touching the mock.
func (m *MockAuthService) ValidateToken(token string) (*service.Claims, error) {
	switch token {
	case userToken:
		return &service.Claims{UserID: "user-1", Username: "alice", Role: models.RoleUser}, nil
	case adminToken:
		return &service.Claims{UserID: "admin-1", Username: "root", Role: models.RoleAdmin}, nil
	}
	return nil, service.ErrInvalidToken
}

func (m *MockAuthService) Me(ctx context.Context, userID string) (*models.User, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func (m *MockAuthService) AccessTokenTTL() time.Duration {
	return 15 * time.Minute
}

func (m *MockAuthService) PromoteToAdmin(ctx context.Context, username string) (*models.User, error) {
	args := m.Called(ctx, username)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func (m *MockAuthService) CreateAdmin(ctx context.Context, username, password, email string) (*models.User, error) {
	args := m.Called(ctx, username, password, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

type MockMediaStore struct {
	mock.Mock
}

func (m *MockMediaStore) Save(ctx context.Context, kind storage.MediaKind, filename string, r io.Reader, size int64, contentType string) (string, error) {
	data, _ := io.ReadAll(r)
	args := m.Called(ctx, kind, filename, string(data), size, contentType)
	return args.String(0), args.Error(1)
}

func (m *MockMediaStore) Ping(ctx context.Context) error {
	return m.Called(ctx).Error(0)
}

// --- SETUP ---

const (
	userToken  = "user-token"
	adminToken = "admin-token"
)

type testServer struct {
	router       *gin.Engine
	videos       *MockVideoService
	interactions *MockInteractionService
	genres       *MockGenreService
	auth         *MockAuthService
	media        *MockMediaStore
}

func setupRouter() *testServer {
	gin.SetMode(gin.TestMode)
	ts := &testServer{
		videos:       new(MockVideoService),
		interactions: new(MockInteractionService),
		genres:       new(MockGenreService),
		auth:         new(MockAuthService),
		media:        new(MockMediaStore),
	}

	ts.router = handler.NewRouter(handler.RouterConfig{
		Logger: zerolog.Nop(),
		Tokens: ts.auth,
	}, handler.Handlers{
		Auth:         handler.NewAuthHandler(ts.auth),
		Videos:       handler.NewVideoHandler(ts.videos),
		Interactions: handler.NewInteractionHandler(ts.interactions),
		Genres:       handler.NewGenreHandler(ts.genres),
		Media:        handler.NewMediaHandler(ts.media, 1<<20),
		Health: handler.NewHealthHandler(map[string]handler.PingFunc{
			"database": func(context.Context) error { return nil },
		}),
	})
	return ts
}
