package repository

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"innkeep/internal/config"
	"innkeep/internal/models"

	"github.com/redis/go-redis/v9"
)

type RedisDraftRepository struct {
	client *redis.Client
	ttl    time.Duration
}

// NewRedisClient создает новый клиент Redis на основе конфигурации
func NewRedisClient(cfg config.RedisConfig) *redis.Client {
	options := &redis.Options{
		Addr:     cfg.Address,
		Password: cfg.Password,
		DB:       cfg.DB,
		PoolSize: cfg.PoolSize,
	}

	client := redis.NewClient(options)

	return client
}

func NewRedisDraftRepository(client *redis.Client, ttl time.Duration) *RedisDraftRepository {
	return &RedisDraftRepository{
		client: client,
		ttl:    ttl,
	}
}

func (r *RedisDraftRepository) GetDraft(ctx context.Context, clientID string) (*models.BookingDraft, error) {
	if r.client == nil {
		return nil, fmt.Errorf("redis client is nil")
	}
	key := fmt.Sprintf("booking_draft:%s", clientID)
	val, err := r.client.Get(ctx, key).Result()
	if err == redis.Nil {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get draft from redis: %w", err)
	}

	var draft models.BookingDraft
	if err := json.Unmarshal([]byte(val), &draft); err != nil {
		return nil, fmt.Errorf("failed to unmarshal draft: %w", err)
	}

	return &draft, nil
}

func (r *RedisDraftRepository) SetDraft(ctx context.Context, draft *models.BookingDraft) error {
	if r.client == nil {
		return fmt.Errorf("redis client is nil")
	}
	key := fmt.Sprintf("booking_draft:%s", draft.ID)
	data, err := json.Marshal(draft)
	if err != nil {
		return fmt.Errorf("failed to marshal draft: %w", err)
	}

	if err := r.client.Set(ctx, key, data, r.ttl).Err(); err != nil {
		return fmt.Errorf("failed to set draft in redis: %w", err)
	}

	return nil
}

func (r *RedisDraftRepository) ClearDraft(ctx context.Context, clientID string) error {
	if r.client == nil {
		return fmt.Errorf("redis client is nil")
	}
	key := fmt.Sprintf("booking_draft:%s", clientID)
	if err := r.client.Del(ctx, key).Err(); err != nil {
		return fmt.Errorf("failed to delete draft from redis: %w", err)
	}
	return nil
}

func (r *RedisDraftRepository) CheckRateLimit(ctx context.Context, clientID string, limit int, window time.Duration) (bool, error) {
	if r.client == nil {
		return false, fmt.Errorf("redis client is nil")
	}
	key := fmt.Sprintf("rate_limit:%s", clientID)
	count, err := r.client.Incr(ctx, key).Result()
	if err != nil {
		return false, fmt.Errorf("failed to increment rate limit: %w", err)
	}

	if count == 1 {
		r.client.Expire(ctx, key, window)
	}

	return count <= int64(limit), nil
}

// Ping проверяет соединение с Redis
func Ping(ctx context.Context, client *redis.Client) error {
	_, err := client.Ping(ctx).Result()
	if err != nil {
		return fmt.Errorf("failed to ping Redis: %w", err)
	}
	return nil
}

// Close закрывает соединение с Redis
func Close(client *redis.Client) error {
	if client != nil {
		return client.Close()
	}
	return nil
}
