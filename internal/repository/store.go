package repository

import (
	"context"
	"marketpulse/db"
	"strings"
)

// OpenTickerStore picks a backend from the location: postgres:// and
// postgresql:// URLs use Postgres, redis:// and rediss:// use Redis, anything
// else is a JSON file path. The returned close func releases connections.
func OpenTickerStore(ctx context.Context, location string) (TickerStore, func(), error) {
	switch {
	case strings.HasPrefix(location, "postgres://"), strings.HasPrefix(location, "postgresql://"):
		conn, err := db.Connect(ctx, location)
		if err != nil {
			return nil, nil, err
		}
		repo := NewPostgresTickerRepository(conn)
		if err := repo.EnsureSchema(ctx); err != nil {
			conn.Close()
			return nil, nil, err
		}
		return repo, func() { conn.Close() }, nil

	case strings.HasPrefix(location, "redis://"), strings.HasPrefix(location, "rediss://"):
		client, err := db.ConnectRedis(ctx, location)
		if err != nil {
			return nil, nil, err
		}
		return NewRedisTickerRepository(client), func() { client.Close() }, nil

	default:
		return NewFileTickerRepository(location), func() {}, nil
	}
}
