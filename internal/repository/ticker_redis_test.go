package repository

import (
	"context"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/go-playground/assert/v2"
	"github.com/redis/go-redis/v9"
)

func newTestRedisRepository(t *testing.T) (*RedisTickerRepository, *miniredis.Miniredis) {
	t.Helper()

	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { client.Close() })

	return NewRedisTickerRepository(client), mr
}

func TestRedisTickerRoundTrip(t *testing.T) {
	repo, mr := newTestRedisRepository(t)
	ctx := context.Background()

	err := repo.Save(ctx, sampleTickers())
	assert.Equal(t, nil, err)
	assert.Equal(t, true, mr.Exists(TickersKey))

	got, err := repo.Load(ctx)
	assert.Equal(t, nil, err)
	assert.Equal(t, sortedBySymbol(sampleTickers()), sortedBySymbol(got))
}

func TestRedisTickerLoadMissingKey(t *testing.T) {
	repo, _ := newTestRedisRepository(t)

	got, err := repo.Load(context.Background())

	assert.Equal(t, nil, err)
	assert.Equal(t, 0, len(got))
}

func TestRedisTickerSaveOverwrites(t *testing.T) {
	repo, _ := newTestRedisRepository(t)
	ctx := context.Background()

	assert.Equal(t, nil, repo.Save(ctx, sampleTickers()))
	assert.Equal(t, nil, repo.Save(ctx, sampleTickers()[:1]))

	got, err := repo.Load(ctx)
	assert.Equal(t, nil, err)
	assert.Equal(t, sampleTickers()[:1], got)
}

func TestOpenTickerStoreRedis(t *testing.T) {
	mr := miniredis.RunT(t)

	store, closeStore, err := OpenTickerStore(context.Background(), "redis://"+mr.Addr())
	assert.Equal(t, nil, err)
	defer closeStore()

	_, ok := store.(*RedisTickerRepository)
	assert.Equal(t, true, ok)
}
