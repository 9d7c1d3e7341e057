package store

import (
	"context"
	"errors"
	"fmt"
)

// Supported persistence backends.
const (
	BackendSQLite   = "sqlite"
	BackendMemory   = "memory"
	BackendRedis    = "redis"
	BackendMongo    = "mongo"
	BackendPostgres = "postgres"
)

// Config selects and configures the persistence backend.
type Config struct {
	Backend  string         `mapstructure:"backend"`
	SQLite   SQLiteConfig   `mapstructure:"sqlite"`
	Redis    RedisConfig    `mapstructure:"redis"`
	Mongo    MongoConfig    `mapstructure:"mongo"`
	Postgres PostgresConfig `mapstructure:"postgres"`
}

// SQLiteConfig locates the local database. It also holds the LLM event
// log, whichever backend serves the kv.
type SQLiteConfig struct {
	Path string `mapstructure:"path"` // empty means DefaultDBPath
}

// OpenKV returns the KV for cfg.Backend. The sqlite backend reuses s, which
// must be non-nil; an empty backend means sqlite.
func OpenKV(ctx context.Context, cfg Config, s *Store) (KV, error) {
	switch cfg.Backend {
	case "", BackendSQLite:
		if s == nil {
			return nil, errors.New("sqlite backend requires an open store")
		}
		return s.KV(), nil
	case BackendMemory:
		return NewMemoryKV(), nil
	case BackendRedis:
		return NewRedisKV(ctx, cfg.Redis)
	case BackendMongo:
		return NewMongoKV(ctx, cfg.Mongo)
	case BackendPostgres:
		return NewPostgresKV(cfg.Postgres)
	default:
		return nil, fmt.Errorf("unknown store backend %q (want sqlite, memory, redis, mongo or postgres)", cfg.Backend)
	}
}
