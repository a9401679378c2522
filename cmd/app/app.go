package app

import (
	"context"
	"fmt"

	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"

	"yatube/internal/cache"
	"yatube/internal/config"
	"yatube/internal/database"
	"yatube/internal/repository"
	"yatube/internal/service"
	"yatube/internal/storage"
)

// Application holds the long-lived dependencies shared by the entry points.
type Application struct {
	DB       *database.DB
	Repo     *repository.Repository
	Services *service.Service
	Cache    cache.PageCache
	Storage  storage.Storage

	redis *redis.Client
	log   *logrus.Logger
}

// App connects the backing services. Nothing stays open when it fails.
func App(ctx context.Context, cfg *config.Config, log *logrus.Logger) (*Application, error) {
	// connection DB
	db, err := database.ConnectDB(cfg, log)
	if err != nil {
		return nil, err
	}

	// connection MinIO
	minioClient, err := storage.NewMinIOClient(ctx, cfg)
	if err != nil {
		_ = db.CloseDB()
		return nil, fmt.Errorf("failed to initialize MinIO: %w", err)
	}

	pageCache, redisClient := NewPageCache(ctx, cfg, log)

	// enabling dependencies
	repo := repository.NewRepository(db.DB)

	services := service.NewService(repo, cfg, minioClient, log)

	return &Application{
		DB:       db,
		Repo:     repo,
		Services: services,
		Cache:    pageCache,
		Storage:  minioClient,
		redis:    redisClient,
		log:      log,
	}, nil
}

// NewPageCache uses Redis when it is configured and reachable, and process
// memory otherwise. The returned client is nil for the memory cache.
func NewPageCache(ctx context.Context, cfg *config.Config, log *logrus.Logger) (cache.PageCache, *redis.Client) {
	if cfg.Redis.Addr == "" {
		log.Info("REDIS_ADDR is not set, caching pages in memory")
		return cache.NewMemoryCache(0, cfg.IndexCacheTTL), nil
	}

	client, err := cache.Connect(ctx, cfg.Redis.Addr, cfg.Redis.Password, cfg.Redis.DB)
	if err != nil {
		log.WithError(err).Warn("redis is unavailable, caching pages in memory")
		return cache.NewMemoryCache(0, cfg.IndexCacheTTL), nil
	}

	log.WithField("addr", cfg.Redis.Addr).Info("caching pages in redis")
	return cache.NewRedisCache(client, cfg.IndexCacheTTL), client
}

func (a *Application) Close() {
	if a.redis != nil {
		if err := a.redis.Close(); err != nil {
			a.log.WithError(err).Warn("failed to close redis client")
		}
	}
	if err := a.DB.CloseDB(); err != nil {
		a.log.WithError(err).Warn("failed to close database")
	}
}
