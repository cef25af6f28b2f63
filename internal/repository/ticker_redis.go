package repository

import (
	"context"
	"errors"
	"fmt"
	"marketpulse/internal/model"

	"github.com/redis/go-redis/v9"
)

const TickersKey = "marketpulse:tickers"

// RedisTickerRepository keeps the universe as one JSON document so that a
// Save is a single SET.
type RedisTickerRepository struct {
	client *redis.Client
	key    string
}

func NewRedisTickerRepository(client *redis.Client) *RedisTickerRepository {
	return &RedisTickerRepository{client: client, key: TickersKey}
}

func (r *RedisTickerRepository) Load(ctx context.Context) ([]model.TickerRecord, error) {
	data, err := r.client.Get(ctx, r.key).Bytes()
	if errors.Is(err, redis.Nil) {
		return []model.TickerRecord{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("redis get %s: %w", r.key, err)
	}

	records, err := decodeTickers(data)
	if err != nil {
		return nil, fmt.Errorf("decode %s: %w", r.key, err)
	}
	return records, nil
}

func (r *RedisTickerRepository) Save(ctx context.Context, records []model.TickerRecord) error {
	data, err := encodeTickers(records)
	if err != nil {
		return err
	}
	if err := r.client.Set(ctx, r.key, data, 0).Err(); err != nil {
		return fmt.Errorf("redis set %s: %w", r.key, err)
	}
	return nil
}
