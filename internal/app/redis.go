package app

import (
	"context"
	"fmt"
	"net"
	"time"

	"github.com/newrelic/go-agent/v3/newrelic"
	"github.com/redis/go-redis/v9"

	"github.com/zvanbay-arch/transfer-test/internal/config"
)

// NewRedisClient creates a new Redis client.
func NewRedisClient(cfg config.RedisConfig, nrApp *newrelic.Application) (*redis.Client, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     cfg.Addr,
		Password: cfg.Password,
		DB:       cfg.DB,
	})

	if nrApp != nil {
		client.AddHook(nrRedisHook{})
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		client.Close()
		return nil, fmt.Errorf("failed to ping redis: %w", err)
	}

	return client, nil
}

// nrRedisHook instruments Redis commands as New Relic datastore segments.
type nrRedisHook struct{}

func (nrRedisHook) DialHook(next redis.DialHook) redis.DialHook {
	return func(ctx context.Context, network, addr string) (net.Conn, error) {
		return next(ctx, network, addr)
	}
}

func (nrRedisHook) ProcessHook(next redis.ProcessHook) redis.ProcessHook {
	return func(ctx context.Context, cmd redis.Cmder) error {
		txn := newrelic.FromContext(ctx)
		if txn == nil {
			return next(ctx, cmd)
		}
		segment := newrelic.DatastoreSegment{
			StartTime: txn.StartSegmentNow(),
			Product:   newrelic.DatastoreRedis,
			Operation: cmd.Name(),
		}
		defer segment.End()
		return next(ctx, cmd)
	}
}

func (nrRedisHook) ProcessPipelineHook(next redis.ProcessPipelineHook) redis.ProcessPipelineHook {
	return func(ctx context.Context, cmds []redis.Cmder) error {
		txn := newrelic.FromContext(ctx)
		if txn == nil {
			return next(ctx, cmds)
		}
		segment := newrelic.DatastoreSegment{
			StartTime: txn.StartSegmentNow(),
			Product:   newrelic.DatastoreRedis,
			Operation: "pipeline",
		}
		defer segment.End()
		return next(ctx, cmds)
	}
}
