package kvstore

import (
	"context"
	"errors"
	"fmt"
	"time"

	errorvalues "github.com/limbo/sovet/internal/error_values"
	"github.com/limbo/sovet/pkg/cleanup"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

type RedisCfg struct {
	Address  string
	Password string
	DB       int
}

type Redis struct {
	client redis.UniversalClient
}

// NewRedis dials the server, pings it and registers the client for closing on shutdown.
func NewRedis(cfg *RedisCfg, logger *zap.Logger) (*Redis, error) {
	client := redis.NewClient(&redis.Options{
		Addr:         cfg.Address,
		Password:     cfg.Password,
		DB:           cfg.DB,
		DialTimeout:  5 * time.Second,
		ReadTimeout:  3 * time.Second,
		WriteTimeout: 3 * time.Second,
		PoolSize:     10,
	})
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := client.Ping(ctx).Err(); err != nil {
		logger.Error("redis_connection_failed", zap.Error(err), zap.String("addr", cfg.Address))
		client.Close()
		return nil, fmt.Errorf("%w: pinging redis: %v", errorvalues.ErrStoreUnavailable, err)
	}
	logger.Info("redis_connected", zap.String("addr", cfg.Address))
	cleanup.Register(&cleanup.Job{
		Name: "closing redis client",
		F:    client.Close,
	})
	return &Redis{client: client}, nil
}

func NewRedisWithClient(client redis.UniversalClient) *Redis {
	return &Redis{client: client}
}

func (r *Redis) Set(ctx context.Context, key string, value []byte, ttl time.Duration) error {
	if err := r.client.Set(ctx, key, value, ttl).Err(); err != nil {
		return fmt.Errorf("%w: set %s: %v", errorvalues.ErrStoreUnavailable, key, err)
	}
	return nil
}

func (r *Redis) Get(ctx context.Context, key string) ([]byte, error) {
	val, err := r.client.Get(ctx, key).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("%w: get %s: %v", errorvalues.ErrStoreUnavailable, key, err)
	}
	return val, nil
}

func (r *Redis) AddToSet(ctx context.Context, key, member string, ttl time.Duration) error {
	_, err := r.client.Pipelined(ctx, func(pipe redis.Pipeliner) error {
		pipe.SAdd(ctx, key, member)
		if ttl > 0 {
			pipe.Expire(ctx, key, ttl)
		}
		return nil
	})
	if err != nil {
		return fmt.Errorf("%w: sadd %s: %v", errorvalues.ErrStoreUnavailable, key, err)
	}
	return nil
}

func (r *Redis) Members(ctx context.Context, key string) ([]string, error) {
	members, err := r.client.SMembers(ctx, key).Result()
	if err != nil {
		return nil, fmt.Errorf("%w: smembers %s: %v", errorvalues.ErrStoreUnavailable, key, err)
	}
	return members, nil
}
