package persistence

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

const redisKeyPrefix = "accountkeeper:state:"

// redisClient is the part of *redis.Client the persister needs.
type redisClient interface {
	Get(ctx context.Context, key string) *redis.StringCmd
	Set(ctx context.Context, key string, value any, expiration time.Duration) *redis.StatusCmd
}

// RedisPersister stores each document as a Redis string. A non-zero ttl
// is refreshed on every save, so an idle session expires after ttl.
type RedisPersister struct {
	client redisClient
	ttl    time.Duration
}

func NewRedisPersister(client redisClient, ttl time.Duration) *RedisPersister {
	return &RedisPersister{client: client, ttl: ttl}
}

// NewRedisClient connects to addr and verifies the connection with PING.
func NewRedisClient(ctx context.Context, addr, password string, db int) (*redis.Client, error) {
	rdb := redis.NewClient(&redis.Options{
		Addr:         addr,
		Password:     password,
		DB:           db,
		DialTimeout:  5 * time.Second,
		ReadTimeout:  3 * time.Second,
		WriteTimeout: 3 * time.Second,
	})

	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	if err := rdb.Ping(ctx).Err(); err != nil {
		_ = rdb.Close()
		return nil, fmt.Errorf("failed to connect to redis: %w", err)
	}
	return rdb, nil
}

func (p *RedisPersister) Get(ctx context.Context, key string) ([]byte, error) {
	v, err := p.client.Get(ctx, redisKeyPrefix+key).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("redis get %s: %w", key, err)
	}
	return v, nil
}

func (p *RedisPersister) Set(ctx context.Context, key string, value []byte) error {
	if err := p.client.Set(ctx, redisKeyPrefix+key, value, p.ttl).Err(); err != nil {
		return fmt.Errorf("redis set %s: %w", key, err)
	}
	return nil
}
