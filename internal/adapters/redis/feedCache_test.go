package redis

import (
	"context"
	"testing"
	"time"

	"github.com/go-redis/redis/v8"
	"github.com/stretchr/testify/assert"
)

func TestFeedKey(t *testing.T) {
	assert.Equal(t, "feed:abc", feedKey("abc"))
	assert.Equal(t, "feed:gen:abc", genKey("abc"))
}

func TestParseGen(t *testing.T) {
	gen, err := parseGen(nil)
	assert.NoError(t, err)
	assert.Equal(t, int64(0), gen)

	gen, err = parseGen("7")
	assert.NoError(t, err)
	assert.Equal(t, int64(7), gen)

	_, err = parseGen("x")
	assert.Error(t, err)
}

func TestInvalidateNothingSkipsRedis(t *testing.T) {
	c := NewFeedCacheRedis(nil, time.Second)
	assert.NoError(t, c.Invalidate(context.Background()))
}

func TestUnreachableRedisReturnsError(t *testing.T) {
	client := redis.NewClient(&redis.Options{
		Addr:        "127.0.0.1:1",
		DialTimeout: 100 * time.Millisecond,
		MaxRetries:  -1,
	})
	defer client.Close()
	c := NewFeedCacheRedis(client, time.Second)

	items, _, ok, err := c.Get(context.Background(), "u1")
	assert.Error(t, err)
	assert.False(t, ok)
	assert.Nil(t, items)
	assert.Error(t, c.Set(context.Background(), "u1", 0, nil))
	assert.Error(t, c.Invalidate(context.Background(), "u1"))
}
