package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/Behyna/sms-services/smscampaign/internal/config"
	"github.com/redis/go-redis/v9"
)

// SentCache remembers the provider message id of every delivered queue row so a
// redelivered send command does not reach the provider twice.
type SentCache interface {
	Get(ctx context.Context, queueID int64) (string, bool, error)
	Store(ctx context.Context, queueID int64, messageID string, sentAt time.Time) error
}

type sentValue struct {
	MessageID string    `json:"messageId"`
	SentAt    time.Time `json:"sentAt"`
}

type RedisSentCache struct {
	rdb *redis.Client
	ttl time.Duration
}

func NewRedisClient(cfg *config.Config) *redis.Client {
	return redis.NewClient(&redis.Options{
		Addr:     cfg.Redis.Addr,
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})
}

func NewSentCache(rdb *redis.Client, cfg *config.Config) SentCache {
	return NewRedisSentCache(rdb, cfg.Redis.SentTTL)
}

func NewRedisSentCache(rdb *redis.Client, ttl time.Duration) *RedisSentCache {
	return &RedisSentCache{rdb: rdb, ttl: ttl}
}

func sentKey(queueID int64) string {
	return fmt.Sprintf("smscampaign:sent:%d", queueID)
}

func (c *RedisSentCache) Get(ctx context.Context, queueID int64) (string, bool, error) {
	raw, err := c.rdb.Get(ctx, sentKey(queueID)).Bytes()
	if errors.Is(err, redis.Nil) {
		return "", false, nil
	}
	if err != nil {
		return "", false, err
	}

	var value sentValue
	if err := json.Unmarshal(raw, &value); err != nil {
		return "", false, err
	}

	return value.MessageID, true, nil
}

func (c *RedisSentCache) Store(ctx context.Context, queueID int64, messageID string, sentAt time.Time) error {
	b, err := json.Marshal(sentValue{MessageID: messageID, SentAt: sentAt.UTC()})
	if err != nil {
		return err
	}

	return c.rdb.Set(ctx, sentKey(queueID), b, c.ttl).Err()
}
