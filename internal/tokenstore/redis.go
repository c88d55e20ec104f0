package tokenstore

import (
	"context"
	"fmt"

	"github.com/redis/go-redis/v9"

	"github.com/subflow/admin-client/internal/config"
)

// Redis хранит токены в redis. Используется в headless-окружениях,
// где несколько процессов делят одну административную сессию.
type Redis struct {
	Db     *redis.Client
	prefix string
}

// NewRedis подключается к redis по настройкам из конфига и проверяет соединение.
func NewRedis(ctx context.Context, cfg config.RedisConnection, prefix string) (*Redis, error) {
	const op = "tokenstore.NewRedis"
	db := redis.NewClient(&redis.Options{
		Addr:         cfg.AddressRedis,
		Password:     cfg.Password,
		DB:           cfg.DB,
		Username:     cfg.User,
		MaxRetries:   cfg.MaxRetries,
		DialTimeout:  cfg.DialTimeout,
		ReadTimeout:  cfg.TimeoutRedis,
		WriteTimeout: cfg.TimeoutRedis,
	})

	if err := db.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return &Redis{Db: db, prefix: prefix}, nil
}

func (r *Redis) key(name string) string {
	return r.prefix + ":" + name
}

func (r *Redis) SaveAccess(ctx context.Context, token string) error {
	const op = "tokenstore.Redis.SaveAccess"
	if err := r.Db.Set(ctx, r.key(AccessKey), token, 0).Err(); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	return nil
}

func (r *Redis) SaveRefresh(ctx context.Context, token string) error {
	const op = "tokenstore.Redis.SaveRefresh"
	if err := r.Db.Set(ctx, r.key(RefreshKey), token, 0).Err(); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	return nil
}

func (r *Redis) Load(ctx context.Context) (string, string, error) {
	const op = "tokenstore.Redis.Load"
	access, err := r.Db.Get(ctx, r.key(AccessKey)).Result()
	if err != nil && err != redis.Nil {
		return "", "", fmt.Errorf("%s: %w", op, err)
	}
	refresh, err := r.Db.Get(ctx, r.key(RefreshKey)).Result()
	if err != nil && err != redis.Nil {
		return "", "", fmt.Errorf("%s: %w", op, err)
	}
	return access, refresh, nil
}

func (r *Redis) Clear(ctx context.Context) error {
	const op = "tokenstore.Redis.Clear"
	if err := r.Db.Del(ctx, r.key(AccessKey), r.key(RefreshKey)).Err(); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	return nil
}
