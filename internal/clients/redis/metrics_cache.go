package redis

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/google/uuid"
	goredis "github.com/redis/go-redis/v9"

	"github.com/paceline/paceline-backend/internal/logger"
	"github.com/paceline/paceline-backend/internal/types"
)

// MetricsCache holds the latest computed DailyMetric per user so dashboard
// polls skip Postgres. Best effort only: every caller must treat a miss or a
// redis error as "go read the database".
type MetricsCache interface {
	SetLatest(ctx context.Context, metric *types.DailyMetric) error
	GetLatest(ctx context.Context, userID uuid.UUID) (*types.DailyMetric, error)
	Invalidate(ctx context.Context, userID uuid.UUID) error
	Close() error
}

type metricsCache struct {
	log *logger.Logger
	rdb *goredis.Client
	ttl time.Duration
}

func NewMetricsCache(log *logger.Logger) (MetricsCache, error) {
	if log == nil {
		return nil, fmt.Errorf("logger required")
	}

	addr := strings.TrimSpace(os.Getenv("REDIS_ADDR"))
	if addr == "" {
		return nil, fmt.Errorf("missing REDIS_ADDR")
	}

	rdb := goredis.NewClient(&goredis.Options{
		Addr:        addr,
		DialTimeout: 5 * time.Second,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := rdb.Ping(ctx).Err(); err != nil {
		_ = rdb.Close()
		return nil, fmt.Errorf("redis ping: %w", err)
	}

	return &metricsCache{
		log: log.With("service", "RedisMetricsCache"),
		rdb: rdb,
		ttl: 6 * time.Hour,
	}, nil
}

func metricsKey(userID uuid.UUID) string {
	return "metrics:latest:" + userID.String()
}

func (c *metricsCache) SetLatest(ctx context.Context, metric *types.DailyMetric) error {
	if c == nil || c.rdb == nil {
		return fmt.Errorf("metrics cache not initialized")
	}
	if metric == nil || metric.UserID == uuid.Nil {
		return nil
	}
	raw, err := json.Marshal(metric)
	if err != nil {
		return err
	}
	return c.rdb.Set(ctx, metricsKey(metric.UserID), raw, c.ttl).Err()
}

func (c *metricsCache) GetLatest(ctx context.Context, userID uuid.UUID) (*types.DailyMetric, error) {
	if c == nil || c.rdb == nil {
		return nil, fmt.Errorf("metrics cache not initialized")
	}
	if userID == uuid.Nil {
		return nil, nil
	}

	raw, err := c.rdb.Get(ctx, metricsKey(userID)).Bytes()
	if err == goredis.Nil {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	var metric types.DailyMetric
	if err := json.Unmarshal(raw, &metric); err != nil {
		c.log.Warn("bad cached metric payload, dropping it", "error", err)
		_ = c.rdb.Del(ctx, metricsKey(userID)).Err()
		return nil, nil
	}
	return &metric, nil
}

func (c *metricsCache) Invalidate(ctx context.Context, userID uuid.UUID) error {
	if c == nil || c.rdb == nil {
		return fmt.Errorf("metrics cache not initialized")
	}
	if userID == uuid.Nil {
		return nil
	}
	return c.rdb.Del(ctx, metricsKey(userID)).Err()
}

func (c *metricsCache) Close() error {
	if c == nil || c.rdb == nil {
		return nil
	}
	return c.rdb.Close()
}
