package config

import (
	"errors"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Settings تنظیمات برنامه که از .env و متغیرهای محیطی خوانده می‌شود
type Settings struct {
	AppPort  string
	GinMode  string
	LogMode  string
	DBDriver string
	DBDSN    string

	DBMaxOpenConns int

	RedisAddr     string
	RedisPassword string
	RedisDB       int
	FeedCacheTTL  time.Duration

	KafkaBrokers []string
	KafkaTopic   string

	FanoutBatchSize int
	FanoutInterval  time.Duration

	CORSOrigins []string
}

// Load بارگذاری .env و خواندن تنظیمات با مقادیر پیش‌فرض
func Load() (*Settings, error) {
	// نبودن .env خطا نیست؛ متغیرهای محیطی سیستم استفاده می‌شوند
	_ = godotenv.Load()

	v := viper.New()
	v.SetDefault("APP_PORT", "8080")
	v.SetDefault("GIN_MODE", "release")
	v.SetDefault("LOG_MODE", "development")
	v.SetDefault("DB_DRIVER", "mysql")
	v.SetDefault("DB_MAX_OPEN_CONNS", 25)
	v.SetDefault("REDIS_DB", 0)
	v.SetDefault("FEED_CACHE_TTL", "30s")
	v.SetDefault("KAFKA_TOPIC", "social-posts")
	v.SetDefault("FANOUT_BATCH_SIZE", 100)
	v.SetDefault("FANOUT_INTERVAL", "1s")
	v.SetDefault("CORS_ORIGINS", "*")
	v.AutomaticEnv()

	s := &Settings{
		AppPort:         v.GetString("APP_PORT"),
		GinMode:         v.GetString("GIN_MODE"),
		LogMode:         v.GetString("LOG_MODE"),
		DBDriver:        strings.ToLower(v.GetString("DB_DRIVER")),
		DBDSN:           v.GetString("DB_DSN"),
		DBMaxOpenConns:  v.GetInt("DB_MAX_OPEN_CONNS"),
		RedisAddr:       v.GetString("REDIS_ADDR"),
		RedisPassword:   v.GetString("REDIS_PASSWORD"),
		RedisDB:         v.GetInt("REDIS_DB"),
		FeedCacheTTL:    parseDuration(v.GetString("FEED_CACHE_TTL"), 30*time.Second),
		KafkaBrokers:    splitList(v.GetString("KAFKA_BROKERS")),
		KafkaTopic:      v.GetString("KAFKA_TOPIC"),
		FanoutBatchSize: v.GetInt("FANOUT_BATCH_SIZE"),
		FanoutInterval:  parseDuration(v.GetString("FANOUT_INTERVAL"), time.Second),
		CORSOrigins:     splitList(v.GetString("CORS_ORIGINS")),
	}

	if s.FanoutBatchSize <= 0 {
		s.FanoutBatchSize = 100 // مقدار پیش‌فرض
	}

	switch s.DBDriver {
	case DriverMySQL, DriverPostgres:
		if s.DBDSN == "" {
			return nil, errors.New("DB_DSN is not set")
		}
	case DriverMemory:
	default:
		return nil, errors.New("unsupported DB_DRIVER: " + s.DBDriver)
	}

	return s, nil
}

func parseDuration(s string, def time.Duration) time.Duration {
	if d, err := time.ParseDuration(s); err == nil && d > 0 {
		return d
	}
	return def
}

func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	return out
}
