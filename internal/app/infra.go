package app

import (
	"context"
	"database/sql"
	"time"

	"presto-auth/internal/config"
	"presto-auth/internal/db"
	"presto-auth/internal/logger"
	"presto-auth/internal/redis"

	_ "github.com/lib/pq"
)

type Infra struct {
	DB    *db.DB
	Redis *redis.Client
}

func setupInfra(ctx context.Context, cfg config.Config) (*Infra, error) {
	sqlDB, err := sql.Open("postgres", cfg.DatabaseDSN)
	if err != nil {
		return nil, err
	}

	// Login traffic is short bursts of small transactions; keep the
	// pool modest and recycle connections so Postgres restarts are
	// picked up.
	sqlDB.SetMaxOpenConns(20)
	sqlDB.SetMaxIdleConns(5)
	sqlDB.SetConnMaxLifetime(30 * time.Minute)

	if err := sqlDB.PingContext(ctx); err != nil {
		return nil, err
	}

	if err := db.Migrate(ctx, sqlDB); err != nil {
		return nil, err
	}

	logger.Info("database ready", map[string]any{
		"max_open_conns": 20,
	})

	redisClient, err := redis.New(cfg.RedisAddr, cfg.RedisPassword)
	if err != nil {
		return nil, err
	}

	logger.Info("redis ready", map[string]any{
		"addr": cfg.RedisAddr,
	})

	return &Infra{
		DB:    &db.DB{DB: sqlDB},
		Redis: redisClient,
	}, nil
}
