package config

import (
	"context"
	"fmt"

	"github.com/go-redis/redis/v8"
	"go.uber.org/zap"
)

// NewRedis اتصال به Redis را راه‌اندازی می‌کند؛ اگر REDIS_ADDR خالی باشد nil برمی‌گرداند
func NewRedis(ctx context.Context, s *Settings, logger *zap.Logger) (*redis.Client, error) {
	if s.RedisAddr == "" {
		logger.Info("REDIS_ADDR is not set, feed cache disabled")
		return nil, nil
	}

	client := redis.NewClient(&redis.Options{
		Addr:     s.RedisAddr,     // آدرس Redis
		Password: s.RedisPassword, // رمز عبور
		DB:       s.RedisDB,       // شماره دیتابیس
	})

	// بررسی اتصال به Redis
	pong, err := client.Ping(ctx).Result()
	if err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("connect to redis: %w", err)
	}
	logger.Info("✅ Connected to Redis", zap.String("addr", s.RedisAddr), zap.String("ping", pong))
	return client, nil
}
