// Package bootstrap wires shared infrastructure (database, cache, media
// store) for the server binary.
package bootstrap

import (
	"context"
	"fmt"

	"inkwell/internal/cache"
	"inkwell/internal/config"
	"inkwell/internal/database"
	"inkwell/internal/media"
	"inkwell/internal/middleware"
	"inkwell/internal/seed"

	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

// Options control runtime initialization behavior.
type Options struct {
	SeedDemoData bool
}

// InitRuntime connects to the database and Redis, builds the configured
// media store, and optionally seeds demo data. The Redis client may be
// nil when the cache is unreachable; the application runs without it.
func InitRuntime(ctx context.Context, cfg *config.Config, opts Options) (*gorm.DB, *redis.Client, media.Store, error) {
	db, err := database.Connect(cfg)
	if err != nil {
		return nil, nil, nil, fmt.Errorf("database connection failed: %w", err)
	}

	cache.InitRedis(cfg.RedisURL)
	r := cache.GetClient()

	store, err := NewMediaStore(ctx, cfg)
	if err != nil {
		return nil, nil, nil, fmt.Errorf("media store initialization failed: %w", err)
	}

	if opts.SeedDemoData {
		if cfg.IsProduction() {
			middleware.Logger.Warn("demo data seeding requested in production, skipping")
		} else if err := seed.Run(db, seed.DefaultOptions()); err != nil {
			return nil, nil, nil, fmt.Errorf("demo data seeding failed: %w", err)
		}
	}

	return db, r, store, nil
}

// NewMediaStore builds the media store selected by MEDIA_BACKEND.
func NewMediaStore(ctx context.Context, cfg *config.Config) (media.Store, error) {
	switch cfg.MediaBackend {
	case "s3":
		return media.NewS3Store(ctx, media.S3Config{
			Bucket:          cfg.S3Bucket,
			Region:          cfg.S3Region,
			Endpoint:        cfg.S3Endpoint,
			AccessKey:       cfg.S3AccessKey,
			SecretKey:       cfg.S3SecretKey,
			BaseURL:         cfg.MediaBaseURL,
			MaxUploadSizeMB: cfg.MediaMaxUploadSizeMB,
		})
	default:
		return media.NewFSStore(cfg.MediaUploadDir, cfg.MediaBaseURL, cfg.MediaMaxUploadSizeMB)
	}
}
