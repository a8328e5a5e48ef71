package database

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"videohub/internal/config"
	"videohub/internal/microservices/http-api/models"
)

// Connect opens the PostgreSQL pool, verifies it and applies the schema.
func Connect(cfg *config.Config, logger zerolog.Logger) (*gorm.DB, error) {
	db, err := Open(cfg, logger)
	if err != nil {
		return nil, err
	}

	if err := Migrate(db); err != nil {
		Close(db)
		return nil, fmt.Errorf("failed to run migrations: %w", err)
	}

	logger.Info().Msg("connected to the database, schema up to date")
	return db, nil
}

// Open connects without touching the schema. The admin CLI uses it so that
// legacy data (duplicate genre names) can be repaired before Migrate adds
// the unique indexes.
func Open(cfg *config.Config, logger zerolog.Logger) (*gorm.DB, error) {
	level := gormlogger.Warn
	if cfg.IsDevelopment() && cfg.LogLevel == "debug" {
		level = gormlogger.Info
	}

	db, err := gorm.Open(postgres.Open(cfg.DatabaseURL), &gorm.Config{
		Logger: gormlogger.New(&logger, gormlogger.Config{
			SlowThreshold:             200 * time.Millisecond,
			LogLevel:                  level,
			IgnoreRecordNotFoundError: true,
		}),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get sql.DB: %w", err)
	}
	sqlDB.SetMaxOpenConns(25)
	sqlDB.SetMaxIdleConns(5)
	sqlDB.SetConnMaxLifetime(time.Hour)

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := sqlDB.PingContext(ctx); err != nil {
		// close the handle if ping fails to avoid resource leak
		sqlDB.Close()
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	return db, nil
}

// Migrate creates or updates every table the API uses.
func Migrate(db *gorm.DB) error {
	if err := db.SetupJoinTable(&models.User{}, "Favorites", &models.UserFavorite{}); err != nil {
		return fmt.Errorf("setup favorites join table: %w", err)
	}
	if err := db.SetupJoinTable(&models.Video{}, "Genres", &models.VideoGenre{}); err != nil {
		return fmt.Errorf("setup genres join table: %w", err)
	}

	return db.AutoMigrate(
		&models.User{},
		&models.RefreshToken{},
		&models.Genre{},
		&models.Video{},
		&models.VideoGenre{},
		&models.VideoLike{},
		&models.UserFavorite{},
		&models.Rating{},
	)
}

// Close releases the underlying connection pool.
func Close(db *gorm.DB) error {
	sqlDB, err := db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}

// Ping is used by the health endpoint.
func Ping(ctx context.Context, db *gorm.DB) error {
	sqlDB, err := db.DB()
	if err != nil {
		return err
	}
	return sqlDB.PingContext(ctx)
}
