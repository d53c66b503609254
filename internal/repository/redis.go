package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

type redisStore struct {
	client *redis.Client
	prefix string
}

// NewRedisStore connects to Redis and returns a Store keeping all scores in a
// single sorted set under prefix.
func NewRedisStore(addr, prefix string) (Store, error) {
	opt := &redis.Options{
		Addr:         addr,
		DialTimeout:  5 * time.Second,
		ReadTimeout:  3 * time.Second,
		WriteTimeout: 3 * time.Second,
	}
	client := redis.NewClient(opt)
	if err := client.Ping(context.Background()).Err(); err != nil {
		return nil, fmt.Errorf("redis ping: %w", err)
	}
	return &redisStore{client: client, prefix: prefix}, nil
}

// NewRedisStoreWithClient wraps an existing client. Tests use this to point
// the store at miniredis.
func NewRedisStoreWithClient(client *redis.Client, prefix string) Store {
	return &redisStore{client: client, prefix: prefix}
}

func (r *redisStore) scoresKey() string { return r.prefix + ":scores" }

func (r *redisStore) rateKey(key string) string { return r.prefix + ":rate:" + key }

func (r *redisStore) Score(ctx context.Context, user string) (int64, error) {
	score, err := r.client.ZScore(ctx, r.scoresKey(), user).Result()
	if err == redis.Nil {
		return 0, nil
	}
	if err != nil {
		return 0, err
	}
	return int64(score), nil
}

func (r *redisStore) IncrScore(ctx context.Context, user string) (int64, error) {
	score, err := r.client.ZIncrBy(ctx, r.scoresKey(), 1, user).Result()
	if err != nil {
		return 0, err
	}
	return int64(score), nil
}

func (r *redisStore) TopScores(ctx context.Context, n int64) ([]Entry, error) {
	if n <= 0 {
		return []Entry{}, nil
	}
	zs, err := r.client.ZRevRangeWithScores(ctx, r.scoresKey(), 0, n-1).Result()
	if err != nil {
		return nil, err
	}
	entries := make([]Entry, 0, len(zs))
	for _, z := range zs {
		user, ok := z.Member.(string)
		if !ok {
			return nil, fmt.Errorf("unexpected member type %T", z.Member)
		}
		entries = append(entries, Entry{User: user, Score: int64(z.Score)})
	}
	return entries, nil
}

func (r *redisStore) RemoveUser(ctx context.Context, user string) (bool, error) {
	removed, err := r.client.ZRem(ctx, r.scoresKey(), user).Result()
	if err != nil {
		return false, err
	}
	return removed > 0, nil
}

func (r *redisStore) ResetScores(ctx context.Context) (int64, error) {
	pipe := r.client.TxPipeline()
	card := pipe.ZCard(ctx, r.scoresKey())
	pipe.Del(ctx, r.scoresKey())
	if _, err := pipe.Exec(ctx); err != nil {
		return 0, err
	}
	return card.Val(), nil
}

func (r *redisStore) CountUsers(ctx context.Context) (int64, error) {
	return r.client.ZCard(ctx, r.scoresKey()).Result()
}

func (r *redisStore) RateTick(ctx context.Context, key string, window time.Duration) (int64, error) {
	now := time.Now().UnixMilli()
	zkey := r.rateKey(key)
	pipe := r.client.TxPipeline()
	// unique members so ticks landing in the same millisecond still count
	pipe.ZAdd(ctx, zkey, redis.Z{Score: float64(now), Member: uuid.NewString()})
	pipe.ZRemRangeByScore(ctx, zkey, "-inf", fmt.Sprintf("%d", now-window.Milliseconds()))
	cnt := pipe.ZCard(ctx, zkey)
	pipe.PExpire(ctx, zkey, window*2)
	if _, err := pipe.Exec(ctx); err != nil {
		return 0, err
	}
	return cnt.Val(), nil
}

func (r *redisStore) Ping(ctx context.Context) error {
	return r.client.Ping(ctx).Err()
}

func (r *redisStore) Close() error {
	return r.client.Close()
}
