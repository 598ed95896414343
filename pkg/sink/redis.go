package sink

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/redis/go-redis/v9"
)

const (
	redisSolveList = "trainer:solves"
	redisSolveHash = "trainer:solves:by_key"
)

// RedisSink appends solve records to a Redis list (run
// history, newest first) and a hash keyed by scenario (latest
// record per scenario).
type RedisSink struct {
	client *redis.Client
}

// NewRedisSink connects to Redis and verifies the connection
// with a ping.
func NewRedisSink(
	ctx context.Context, addr, password string, db int,
) (*RedisSink, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
		DB:       db,
	})

	if err := client.Ping(ctx).Err(); err != nil {
		client.Close()
		return nil, fmt.Errorf(
			"failed to connect to redis at %s: %w", addr, err,
		)
	}

	return &RedisSink{client: client}, nil
}

// RecordSolve persists the record.
func (s *RedisSink) RecordSolve(
	ctx context.Context, rec SolveRecord,
) error {
	data, err := json.Marshal(rec)
	if err != nil {
		return fmt.Errorf(
			"failed to marshal solve record: %w", err,
		)
	}

	pipe := s.client.Pipeline()
	pipe.LPush(ctx, redisSolveList, data)
	pipe.HSet(ctx, redisSolveHash, string(rec.Key), data)
	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf(
			"failed to record solve %s: %w", rec.Key, err,
		)
	}
	return nil
}

// Close closes the Redis connection.
func (s *RedisSink) Close() error {
	return s.client.Close()
}
