package redis

import (
	"context"
	"encoding/json"
	"errors"
	"strconv"
	"time"

	feedPort "socialgraph/internal/ports/feed"

	"github.com/go-redis/redis/v8"
)

const (
	feedKeyPrefix = "feed:"
	genKeyPrefix  = "feed:gen:"
)

// FeedCacheRedis پیاده‌سازی FeedCache با کلیدهای feed:<userID> و TTL؛
// نسخه هر فید در feed:gen:<userID> نگه داشته می‌شود
type FeedCacheRedis struct {
	Client *redis.Client
	TTL    time.Duration
}

func NewFeedCacheRedis(client *redis.Client, ttl time.Duration) *FeedCacheRedis {
	return &FeedCacheRedis{
		Client: client,
		TTL:    ttl,
	}
}

func feedKey(userID string) string {
	return feedKeyPrefix + userID
}

func genKey(userID string) string {
	return genKeyPrefix + userID
}

// Get فید و نسخه را با یک MGET می‌خواند
func (r *FeedCacheRedis) Get(ctx context.Context, userID string) ([]*feedPort.FeedItemDTO, int64, bool, error) {
	vals, err := r.Client.MGet(ctx, feedKey(userID), genKey(userID)).Result()
	if err != nil {
		return nil, 0, false, err
	}

	gen, err := parseGen(vals[1])
	if err != nil {
		return nil, 0, false, err
	}
	raw, ok := vals[0].(string)
	if !ok {
		return nil, gen, false, nil
	}

	items := []*feedPort.FeedItemDTO{}
	if err := json.Unmarshal([]byte(raw), &items); err != nil {
		return nil, gen, false, err
	}
	return items, gen, true, nil
}

// Set با WATCH روی کلید نسخه؛ اگر نسخه عوض شده باشد چیزی نوشته نمی‌شود
func (r *FeedCacheRedis) Set(ctx context.Context, userID string, gen int64, items []*feedPort.FeedItemDTO) error {
	raw, err := json.Marshal(items)
	if err != nil {
		return err
	}

	gk := genKey(userID)
	err = r.Client.Watch(ctx, func(tx *redis.Tx) error {
		val, err := tx.Get(ctx, gk).Result()
		if err != nil && !errors.Is(err, redis.Nil) {
			return err
		}
		current, err := parseGen(val)
		if err != nil {
			return err
		}
		if current != gen {
			return nil
		}
		_, err = tx.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
			pipe.Set(ctx, feedKey(userID), raw, r.TTL)
			return nil
		})
		return err
	}, gk)
	if errors.Is(err, redis.TxFailedErr) {
		return nil
	}
	return err
}

// Invalidate حذف فید کش‌شده چند کاربر و افزایش نسخه‌شان در یک pipeline
func (r *FeedCacheRedis) Invalidate(ctx context.Context, userIDs ...string) error {
	if len(userIDs) == 0 {
		return nil
	}
	keys := make([]string, 0, len(userIDs))
	for _, id := range userIDs {
		keys = append(keys, feedKey(id))
	}
	_, err := r.Client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		pipe.Del(ctx, keys...)
		for _, id := range userIDs {
			pipe.Incr(ctx, genKey(id))
		}
		return nil
	})
	return err
}

func parseGen(v interface{}) (int64, error) {
	s, ok := v.(string)
	if !ok || s == "" {
		return 0, nil
	}
	return strconv.ParseInt(s, 10, 64)
}
