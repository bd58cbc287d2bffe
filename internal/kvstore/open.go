package kvstore

import (
	"context"
	"fmt"

	"github.com/redis/go-redis/v9"

	"github.com/sjperalta/lumina-api/internal/config"
	"github.com/sjperalta/lumina-api/internal/database"
)

// Open builds the store and locker selected by cfg.StoreDriver
func Open(ctx context.Context, cfg *config.Config) (Store, Locker, error) {
	switch cfg.StoreDriver {
	case config.StoreMemory:
		return NewMemoryStore(), NewMutexLocker(), nil

	case config.StoreFile:
		store, err := NewFileStore(cfg.StorePath)
		if err != nil {
			return nil, nil, err
		}
		return store, NewMutexLocker(), nil

	case config.StoreRedis:
		client := redis.NewClient(&redis.Options{
			Addr:     cfg.RedisAddress,
			Password: cfg.RedisPassword,
			DB:       cfg.RedisDB,
		})
		if err := client.Ping(ctx).Err(); err != nil {
			client.Close()
			return nil, nil, fmt.Errorf("failed to connect to redis: %w", err)
		}
		return NewRedisStore(client, cfg.RedisPrefix), NewRedisLocker(client, cfg.RedisPrefix), nil

	case config.StorePostgres, config.StoreMySQL:
		db, err := database.Connect(cfg.StoreDriver, cfg.DatabaseURL, cfg.IsProduction())
		if err != nil {
			return nil, nil, err
		}
		store, err := NewGormStore(db)
		if err != nil {
			return nil, nil, err
		}
		return store, NewMutexLocker(), nil
	}

	return nil, nil, fmt.Errorf("unknown store driver: %s", cfg.StoreDriver)
}
