package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"

	"videohub/database"
	"videohub/internal/config"
	"videohub/internal/logging"
	"videohub/internal/microservices/http-api/handler"
	"videohub/internal/microservices/http-api/middleware"
	"videohub/internal/microservices/http-api/repository"
	"videohub/internal/microservices/http-api/service"
	"videohub/internal/storage"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.LoadConfig()
	if err != nil {
		return fmt.Errorf("could not load config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return err
	}

	logger := logging.New(logging.Config{Level: cfg.LogLevel, Format: cfg.LogFormat})

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	db, err := database.Connect(cfg, logger)
	if err != nil {
		return err
	}
	defer database.Close(db)

	// Repositories
	videoRepo := repository.NewVideoRepo(db)
	genreRepo := repository.NewGenreRepo(db)
	statsRepo := repository.NewVideoStatsRepository(db)
	refreshTokenRepo := repository.NewRefreshTokenRepository(db)

	// Services
	projector := service.NewProjector(statsRepo)
	authService := service.NewAuthService(repository.NewUserRepository(db), refreshTokenRepo, cfg)
	videoService := service.NewVideoService(videoRepo, genreRepo, projector)
	genreService := service.NewGenreService(genreRepo, projector)
	interactionService := service.NewInteractionService(
		videoRepo,
		repository.NewLikeRepository(db),
		repository.NewFavoriteRepository(db),
		repository.NewRatingRepository(db),
		projector,
	)

	media, err := newMediaStore(ctx, cfg)
	if err != nil {
		return err
	}

	limiter, closeLimiter, err := newLimiter(ctx, cfg, logger)
	if err != nil {
		return err
	}
	defer closeLimiter()

	go purgeRefreshTokens(ctx, refreshTokenRepo, logger)

	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}

	router := handler.NewRouter(handler.RouterConfig{
		Logger:         logger,
		Tokens:         authService,
		Limiter:        limiter,
		CORSOrigins:    cfg.CORSOrigins,
		MetricsEnabled: cfg.PrometheusEnabled,
	}, handler.Handlers{
		Auth:         handler.NewAuthHandler(authService),
		Videos:       handler.NewVideoHandler(videoService),
		Interactions: handler.NewInteractionHandler(interactionService),
		Genres:       handler.NewGenreHandler(genreService),
		Media:        handler.NewMediaHandler(media, cfg.UploadMaxSize),
		Health: handler.NewHealthHandler(map[string]handler.PingFunc{
			"database": func(ctx context.Context) error { return database.Ping(ctx, db) },
			"media":    media.Ping,
		}),
	})

	srv := &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.HTTPPort),
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info().Str("addr", srv.Addr).Msg("http server listening")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		if err != nil {
			return fmt.Errorf("http server: %w", err)
		}
	case <-ctx.Done():
	}

	logger.Info().Msg("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("graceful shutdown: %w", err)
	}
	return nil
}

func newMediaStore(ctx context.Context, cfg *config.Config) (storage.MediaStore, error) {
	if cfg.MediaEndpoint == "" {
		return storage.NewLocalStore(cfg.MediaLocalPath)
	}
	return storage.NewMinioStore(ctx, storage.MinioConfig{
		Endpoint:  cfg.MediaEndpoint,
		AccessKey: cfg.MediaAccessKey,
		SecretKey: cfg.MediaSecretKey,
		Bucket:    cfg.MediaBucket,
		UseSSL:    cfg.MediaUseSSL,
	})
}

// newLimiter uses Redis when REDIS_URL is set so replicas share one budget.
func newLimiter(ctx context.Context, cfg *config.Config, logger zerolog.Logger) (middleware.Limiter, func(), error) {
	if cfg.RedisURL == "" {
		local := middleware.NewLocalLimiter(cfg.RateLimitRPS, cfg.RateLimitBurst)
		go local.RunSweeper(ctx, time.Minute)
		return local, func() {}, nil
	}

	opts, err := redis.ParseURL(cfg.RedisURL)
	if err != nil {
		return nil, nil, fmt.Errorf("invalid REDIS_URL: %w", err)
	}
	client := redis.NewClient(opts)

	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := client.Ping(pingCtx).Err(); err != nil {
		// the limiter fails open, so an unreachable Redis is not fatal
		logger.Warn().Err(err).Msg("redis not reachable at startup")
	}

	return middleware.NewRedisLimiter(client, cfg.RateLimitBurst), func() { _ = client.Close() }, nil
}

func purgeRefreshTokens(ctx context.Context, repo repository.RefreshTokenRepository, logger zerolog.Logger) {
	ticker := time.NewTicker(time.Hour)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case now := <-ticker.C:
			n, err := repo.DeleteExpired(ctx, now)
			if err != nil {
				logger.Warn().Err(err).Msg("refresh token purge failed")
				continue
			}
			if n > 0 {
				logger.Debug().Int64("removed", n).Msg("purged refresh tokens")
			}
		}
	}
}
